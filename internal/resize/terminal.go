package resize

import (
	"fmt"

	"github.com/koki-develop/img2ascii/internal/ascii"
	"github.com/qeesung/image2ascii/terminal"
)

// Screen reports the size of the terminal in characters.
type Screen interface {
	ScreenSize() (width, height int, err error)
}

func NewScreen() Screen {
	return terminal.NewTerminalAccessor()
}

// FitScreen returns the largest grid that fits s, keeping the last row free
// for the shell prompt.
func FitScreen(s Screen) (ascii.Dimensions, error) {
	w, h, err := s.ScreenSize()
	if err != nil {
		return ascii.Dimensions{}, fmt.Errorf("failed to get terminal size: %w", err)
	}

	d := ascii.Dimensions{Width: w, Height: h - 1}
	if d.Width <= 0 || d.Height <= 0 {
		return ascii.Dimensions{}, fmt.Errorf("%w: terminal is %dx%d", ascii.ErrInvalidDimensions, w, h)
	}
	return d, nil
}
