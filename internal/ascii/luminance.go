package ascii

import (
	"image/color"
	"math"
)

const (
	weightRed   = 0.299
	weightGreen = 0.587
	weightBlue  = 0.114
)

// Luminance returns the perceived brightness of c in [0, 255].
//
// A fully transparent pixel is treated as white background. Partially
// transparent pixels are not blended: their color channels are used as they
// are.
func Luminance(c color.NRGBA) int {
	if c.A == 0 {
		return 255
	}

	// explicit conversions keep each product rounded, so no FMA contraction
	gray := float64(weightRed*float64(c.R)) +
		float64(weightGreen*float64(c.G)) +
		float64(weightBlue*float64(c.B))

	// round half up
	return int(math.Floor(gray + 0.5))
}
