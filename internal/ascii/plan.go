package ascii

import (
	"fmt"
	"image"
	"math"
)

const (
	DefaultMaxWidth  = 240
	DefaultMaxHeight = 65
)

// Dimensions is a width/height pair, in pixels or characters depending on
// context.
type Dimensions struct {
	Width  int
	Height int
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// fontSizePresets approximates how many characters fill a terminal at font
// sizes 1 through 12.
var fontSizePresets = [...]Dimensions{
	{1910, 975},
	{950, 240},
	{950, 195},
	{610, 160},
	{470, 105},
	{380, 105},
	{380, 95},
	{270, 75},
	{270, 65},
	{240, 65},
	{210, 50},
	{190, 50},
}

// FontSizePreset returns the maximum output size for a font size between 1
// and 12. Any other value gets the default 240x65.
func FontSizePreset(size int) Dimensions {
	if size < 1 || size > len(fontSizePresets) {
		return Dimensions{DefaultMaxWidth, DefaultMaxHeight}
	}
	return fontSizePresets[size-1]
}

// Constraints bound the output grid. A non-zero FontSize replaces MaxWidth
// and MaxHeight with the matching preset.
type Constraints struct {
	MaxWidth  int
	MaxHeight int
	FontSize  int
}

// DefaultConstraints returns the 240x65 limits with no font size.
func DefaultConstraints() Constraints {
	return Constraints{MaxWidth: DefaultMaxWidth, MaxHeight: DefaultMaxHeight}
}

// Max resolves the effective maximum output size.
func (c Constraints) Max() Dimensions {
	if c.FontSize != 0 {
		return FontSizePreset(c.FontSize)
	}
	return Dimensions{c.MaxWidth, c.MaxHeight}
}

// ScaleToFit shrinks width x height until it fits maxWidth x maxHeight,
// keeping the aspect ratio.
//
// The order is fixed: height is clamped first, then the already scaled
// width. This is not a symmetric fit; for tall narrow and short wide images
// the two orders give different results and this one must be kept.
// Products are computed in float32 and floored. A side that floors to zero
// is raised to one.
func ScaleToFit(width, height, maxWidth, maxHeight int) (Dimensions, error) {
	if width <= 0 || height <= 0 {
		return Dimensions{}, fmt.Errorf("%w: source image is %dx%d", ErrInvalidDimensions, width, height)
	}
	if maxWidth <= 0 || maxHeight <= 0 {
		return Dimensions{}, fmt.Errorf("%w: maximum size is %dx%d", ErrInvalidDimensions, maxWidth, maxHeight)
	}

	if height > maxHeight {
		width = floorScale(width, maxHeight, height)
		height = maxHeight
	}
	if width > maxWidth {
		height = floorScale(height, maxWidth, width)
		width = maxWidth
	}

	return Dimensions{max(width, 1), max(height, 1)}, nil
}

func floorScale(v, num, den int) int {
	return int(math.Floor(float64(float32(v) * float32(num) / float32(den))))
}

func ceilDiv(a, b int) int {
	return int(math.Ceil(float64(float32(a) / float32(b))))
}

// Plan describes how a source image is cut into chunks, one per output
// character.
type Plan struct {
	// Source is the image size in pixels.
	Source Dimensions
	// Max is the resolved constraint the output was fitted into.
	Max Dimensions
	// Output is the fitted character grid size.
	Output Dimensions

	ChunkWidth  int
	ChunkHeight int

	// Columns and Rows count the chunks actually produced by stepping the
	// source by ChunkWidth and ChunkHeight. They never exceed Output and
	// are smaller when the chunk size rounds up past the grid.
	Columns int
	Rows    int
}

// NewPlan fits a width x height source into c.
func NewPlan(width, height int, c Constraints) (*Plan, error) {
	m := c.Max()
	out, err := ScaleToFit(width, height, m.Width, m.Height)
	if err != nil {
		return nil, err
	}

	p := &Plan{
		Source:      Dimensions{width, height},
		Max:         m,
		Output:      out,
		ChunkWidth:  ceilDiv(width, out.Width),
		ChunkHeight: ceilDiv(height, out.Height),
	}
	p.Columns = (width + p.ChunkWidth - 1) / p.ChunkWidth
	p.Rows = (height + p.ChunkHeight - 1) / p.ChunkHeight
	return p, nil
}

// Chunk returns the source rectangle behind the character at row, col. The
// last chunk of a row or column is clipped to the source.
func (p *Plan) Chunk(row, col int) image.Rectangle {
	x0 := col * p.ChunkWidth
	y0 := row * p.ChunkHeight
	return image.Rect(
		x0, y0,
		min(p.Source.Width, x0+p.ChunkWidth),
		min(p.Source.Height, y0+p.ChunkHeight),
	)
}
