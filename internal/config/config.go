// Package config holds the settings of a single conversion.
package config

import (
	"errors"
	"fmt"

	"github.com/koki-develop/img2ascii/internal/ascii"
	"github.com/koki-develop/img2ascii/internal/resize"
	"github.com/mattn/go-runewidth"
)

const DefaultOutput = "out.txt"

type Options struct {
	// Source is a local path, "-" for stdin, or s3://bucket/key.
	Source string
	// Output is a local path, "-" for stdout, or s3://bucket/key.
	Output string

	MaxWidth  int
	MaxHeight int
	// FontSize selects a size preset from 1 to 12 and overrides MaxWidth,
	// MaxHeight and Fit. 0 means unset.
	FontSize int
	// Fit takes MaxWidth and MaxHeight from the current terminal.
	Fit bool

	Ramp    string
	Sample  string
	Workers int

	// IgnoreWriteErrors logs write failures instead of failing the run.
	IgnoreWriteErrors bool
}

func Default() *Options {
	return &Options{
		Output:    DefaultOutput,
		MaxWidth:  ascii.DefaultMaxWidth,
		MaxHeight: ascii.DefaultMaxHeight,
		Ramp:      ascii.DefaultRamp,
		Sample:    string(resize.ModeAverage),
	}
}

func (o *Options) Validate() error {
	if o.Source == "" {
		return errors.New("missing image file")
	}
	if o.Output == "" {
		return errors.New("missing output file")
	}
	if _, err := ascii.NewRamp(o.Ramp); err != nil {
		return err
	}
	if _, err := resize.ParseMode(o.Sample); err != nil {
		return err
	}
	if o.Workers < 0 {
		return fmt.Errorf("workers must not be negative: %d", o.Workers)
	}
	if o.FontSize == 0 && !o.Fit && (o.MaxWidth <= 0 || o.MaxHeight <= 0) {
		return fmt.Errorf("%w: width and height must be positive, got %dx%d", ascii.ErrInvalidDimensions, o.MaxWidth, o.MaxHeight)
	}
	return nil
}

// Constraints resolves the size limits. A font size wins over Fit, which
// wins over the explicit width and height.
func (o *Options) Constraints(screen resize.Screen) (ascii.Constraints, error) {
	c := ascii.Constraints{
		MaxWidth:  o.MaxWidth,
		MaxHeight: o.MaxHeight,
		FontSize:  o.FontSize,
	}
	if o.FontSize != 0 || !o.Fit {
		return c, nil
	}

	d, err := resize.FitScreen(screen)
	if err != nil {
		return ascii.Constraints{}, err
	}
	c.MaxWidth, c.MaxHeight = d.Width, d.Height
	return c, nil
}

// Warnings lists settings that are accepted but likely to render badly.
func (o *Options) Warnings() []string {
	var warns []string
	if !SingleWidth(o.Ramp) {
		warns = append(warns, fmt.Sprintf("ramp %q has characters that are not one column wide; lines will not align", o.Ramp))
	}
	if o.FontSize < 0 || o.FontSize > 12 {
		warns = append(warns, fmt.Sprintf("font size %d is out of range 1-12; using the default size", o.FontSize))
	}
	return warns
}

// SingleWidth reports whether every character of s occupies one terminal
// column.
func SingleWidth(s string) bool {
	for _, r := range s {
		if runewidth.RuneWidth(r) != 1 {
			return false
		}
	}
	return true
}
