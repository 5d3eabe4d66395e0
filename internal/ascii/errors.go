package ascii

import "errors"

var (
	// ErrInvalidRamp is returned when the character ramp has no characters.
	ErrInvalidRamp = errors.New("invalid ramp")

	// ErrInvalidDimensions is returned when the source image or the size
	// constraints cannot produce a non-empty character grid.
	ErrInvalidDimensions = errors.New("invalid dimensions")
)
