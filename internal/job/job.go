// Package job runs one conversion from source location to output location.
package job

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log"

	"github.com/koki-develop/img2ascii/internal/ascii"
	"github.com/koki-develop/img2ascii/internal/config"
	"github.com/koki-develop/img2ascii/internal/imageio"
	"github.com/koki-develop/img2ascii/internal/resize"
	"github.com/koki-develop/img2ascii/internal/storage"
)

type Job struct {
	opt     *config.Options
	resolve storage.Resolver
	screen  resize.Screen
	logger  *log.Logger
}

type Option func(*Job)

func WithResolver(r storage.Resolver) Option {
	return func(j *Job) {
		j.resolve = r
	}
}

func WithScreen(s resize.Screen) Option {
	return func(j *Job) {
		j.screen = s
	}
}

func WithLogger(l *log.Logger) Option {
	return func(j *Job) {
		j.logger = l
	}
}

func New(opt *config.Options, opts ...Option) *Job {
	j := &Job{
		opt:     opt,
		resolve: storage.For,
		logger:  log.Default(),
	}
	for _, o := range opts {
		o(j)
	}
	return j
}

func (j *Job) Source() string {
	return j.opt.Source
}

func (j *Job) Output() string {
	return j.opt.Output
}

// Summary describes a finished run.
type Summary struct {
	Source string
	Format string
	Size   ascii.Dimensions
	Output string
	Result *ascii.Result

	// WriteErr is the write failure that was logged and ignored, if any.
	WriteErr error
}

func (s *Summary) String() string {
	p := s.Result.Plan
	if s.WriteErr != nil {
		return fmt.Sprintf("converted %d lines (%dx%d) but could not write %s", len(s.Result.Lines), p.Columns, p.Rows, s.Output)
	}
	return fmt.Sprintf("wrote %d lines (%dx%d) to %s", len(s.Result.Lines), p.Columns, p.Rows, s.Output)
}

// Run reads, decodes, converts and writes. Nothing is written unless the
// conversion succeeds.
func (j *Job) Run(ctx context.Context) (*Summary, error) {
	if err := j.opt.Validate(); err != nil {
		return nil, err
	}
	for _, w := range j.opt.Warnings() {
		j.logger.Printf("warning: %s", w)
	}

	screen := j.screen
	if screen == nil && j.opt.Fit {
		screen = resize.NewScreen()
	}
	constraints, err := j.opt.Constraints(screen)
	if err != nil {
		return nil, err
	}
	mode, err := resize.ParseMode(j.opt.Sample)
	if err != nil {
		return nil, err
	}

	img, format, err := j.decode(ctx)
	if err != nil {
		return nil, err
	}
	size := ascii.Dimensions{Width: img.Bounds().Dx(), Height: img.Bounds().Dy()}
	j.logger.Printf("decoded %s image %s from %s", format, size, j.opt.Source)

	conv := ascii.NewConverter(
		ascii.WithRamp(j.opt.Ramp),
		ascii.WithConstraints(constraints),
		ascii.WithWorkers(j.opt.Workers),
	)
	res, err := resize.NewResizer(mode).Convert(img, conv)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	p := res.Plan
	j.logger.Printf("converted with %s sampling: max %s, grid %dx%d, chunk %dx%d", mode, p.Max, p.Columns, p.Rows, p.ChunkWidth, p.ChunkHeight)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := &Summary{
		Source: j.opt.Source,
		Format: format,
		Size:   size,
		Output: j.opt.Output,
		Result: res,
	}
	if err := j.write(ctx, res.Lines); err != nil {
		if !j.opt.IgnoreWriteErrors {
			return nil, err
		}
		j.logger.Printf("ignoring write error: %v", err)
		s.WriteErr = err
		return s, nil
	}
	j.logger.Printf("wrote %d lines to %s", len(res.Lines), j.opt.Output)

	return s, nil
}

func (j *Job) decode(ctx context.Context) (image.Image, string, error) {
	store, name, err := j.resolve(ctx, j.opt.Source)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve source: %w", err)
	}
	rc, err := store.Open(ctx, name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}
	defer rc.Close()

	return imageio.Decode(rc)
}

func (j *Job) write(ctx context.Context, lines []string) error {
	store, name, err := j.resolve(ctx, j.opt.Output)
	if err != nil {
		return fmt.Errorf("failed to resolve output: %w", err)
	}
	if err := store.Put(ctx, name, bytes.NewReader(imageio.EncodeLines(lines))); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
