package ascii

import (
	"fmt"
	"image"
)

// AverageLuminance returns the mean luminance of the pixels inside r, using
// truncating integer division.
//
// r must be non-empty and lie within the grid; anything else is a bug in
// the caller and panics.
func AverageLuminance(g *PixelGrid, r image.Rectangle) int {
	if r.Empty() || !r.In(g.Bounds()) {
		panic(fmt.Sprintf("ascii: invalid chunk %v for grid %v", r, g.Bounds()))
	}

	sum := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			sum += Luminance(g.At(x, y))
		}
	}
	return sum / (r.Dx() * r.Dy())
}
