// Package imageio decodes source images and encodes converted lines.
package imageio

import (
	"bufio"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode reads an image in any registered format (gif, jpeg, png, bmp, tiff,
// webp) and returns it with the format name.
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, "", fmt.Errorf("failed to decode image: %s image is empty (%dx%d)", format, b.Dx(), b.Dy())
	}
	return img, format, nil
}

// WriteLines writes each line followed by a newline.
func WriteLines(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for _, line := range lines {
		if _, err := bw.WriteString(line); err != nil {
			return fmt.Errorf("failed to write line: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("failed to write line: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write line: %w", err)
	}
	return nil
}

// EncodeLines returns the bytes WriteLines would write.
func EncodeLines(lines []string) []byte {
	n := 0
	for _, line := range lines {
		n += len(line) + 1
	}
	b := make([]byte, 0, n)
	for _, line := range lines {
		b = append(b, line...)
		b = append(b, '\n')
	}
	return b
}
