package ascii

import (
	"image"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Converter turns pixel grids into lines of characters. A Converter is
// immutable and safe for concurrent use.
type Converter struct {
	ramp        string
	constraints Constraints
	workers     int
}

type Option func(*Converter)

// WithRamp sets the characters to draw with, darkest first.
func WithRamp(ramp string) Option {
	return func(c *Converter) {
		c.ramp = ramp
	}
}

// WithConstraints sets the size limits of the output grid.
func WithConstraints(constraints Constraints) Option {
	return func(c *Converter) {
		c.constraints = constraints
	}
}

// WithWorkers converts up to n rows at once. n <= 1 converts sequentially.
// The output does not depend on n.
func WithWorkers(n int) Option {
	return func(c *Converter) {
		c.workers = n
	}
}

func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		ramp:        DefaultRamp,
		constraints: DefaultConstraints(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// With returns a copy of c with opts applied on top.
func (c *Converter) With(opts ...Option) *Converter {
	cc := *c
	for _, opt := range opts {
		opt(&cc)
	}
	return &cc
}

// Ramp returns the configured ramp, or ErrInvalidRamp if it is empty.
func (c *Converter) Ramp() (Ramp, error) {
	return NewRamp(c.ramp)
}

// Plan returns the chunk layout Convert would use for a width x height image.
func (c *Converter) Plan(width, height int) (*Plan, error) {
	return NewPlan(width, height, c.constraints)
}

// Result is the output of one conversion.
type Result struct {
	Plan  *Plan
	Lines []string
}

// String joins the lines, each terminated by a newline.
func (r *Result) String() string {
	b := new(strings.Builder)
	for _, line := range r.Lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (c *Converter) ImageToASCII(img image.Image) (*Result, error) {
	return c.Convert(NewPixelGrid(img))
}

// Convert maps every chunk of g to a ramp character. Line i covers source
// rows [i*ChunkHeight, (i+1)*ChunkHeight).
func (c *Converter) Convert(g *PixelGrid) (*Result, error) {
	ramp, err := c.Ramp()
	if err != nil {
		return nil, err
	}

	p, err := c.Plan(g.Width(), g.Height())
	if err != nil {
		return nil, err
	}

	lines := make([]string, p.Rows)
	if c.workers <= 1 {
		for row := range lines {
			lines[row] = convertRow(g, p, ramp, row)
		}
		return &Result{Plan: p, Lines: lines}, nil
	}

	var eg errgroup.Group
	eg.SetLimit(c.workers)
	for row := range lines {
		eg.Go(func() error {
			lines[row] = convertRow(g, p, ramp, row)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return &Result{Plan: p, Lines: lines}, nil
}

func convertRow(g *PixelGrid, p *Plan, ramp Ramp, row int) string {
	b := new(strings.Builder)
	b.Grow(p.Columns)
	for col := 0; col < p.Columns; col++ {
		b.WriteRune(ramp.Char(AverageLuminance(g, p.Chunk(row, col))))
	}
	return b.String()
}
