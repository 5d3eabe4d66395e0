package resize

import (
	"fmt"
	"image"

	"github.com/koki-develop/img2ascii/internal/ascii"
	"github.com/nfnt/resize"
)

// Mode selects how a chunk of pixels becomes one character.
type Mode string

const (
	// ModeAverage averages the luminance of every pixel in the chunk.
	ModeAverage Mode = "average"
	// ModeNearest shrinks the image to the character grid with the
	// nearest-neighbour resampler, then maps each resulting pixel.
	ModeNearest Mode = "nearest"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeAverage, ModeNearest:
		return Mode(s), nil
	case "":
		return ModeAverage, nil
	}
	return "", fmt.Errorf("unknown sample mode: %s", s)
}

type Resizer struct {
	mode Mode
}

func NewResizer(mode Mode) *Resizer {
	return &Resizer{mode: mode}
}

func (r *Resizer) Mode() Mode {
	return r.mode
}

// Convert renders img with conv. In nearest mode the image is first resampled
// to the grid conv would produce, so the line geometry matches average mode.
func (r *Resizer) Convert(img image.Image, conv *ascii.Converter) (*ascii.Result, error) {
	if r.mode != ModeNearest {
		return conv.ImageToASCII(img)
	}

	if _, err := conv.Ramp(); err != nil {
		return nil, err
	}

	sz := img.Bounds()
	p, err := conv.Plan(sz.Dx(), sz.Dy())
	if err != nil {
		return nil, err
	}

	small := resize.Resize(uint(p.Columns), uint(p.Rows), img, resize.NearestNeighbor)
	grid := conv.With(ascii.WithConstraints(ascii.Constraints{
		MaxWidth:  p.Columns,
		MaxHeight: p.Rows,
	}))
	return grid.ImageToASCII(small)
}
