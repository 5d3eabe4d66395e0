package ascii

import (
	"fmt"
	"math"
)

// DefaultRamp runs from dark to light.
const DefaultRamp = "@%#*+=-:. "

// Ramp is an ordered set of characters, darkest first.
type Ramp []rune

// NewRamp splits s into characters. An empty s is rejected.
func NewRamp(s string) (Ramp, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: ramp must contain at least one character", ErrInvalidRamp)
	}
	return Ramp(s), nil
}

// Index returns the ramp position for luminance l. l is clamped to [0, 255];
// the result is non-decreasing in l, 0 for black and len(r)-1 for white.
func (r Ramp) Index(l int) int {
	l = min(max(l, 0), 255)
	return int(math.Ceil(float64((len(r)-1)*l) / 255.0))
}

// Char returns the character for luminance l.
func (r Ramp) Char(l int) rune {
	return r[r.Index(l)]
}

func (r Ramp) String() string {
	return string(r)
}
