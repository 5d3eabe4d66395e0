package imageio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func testImage() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 6, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 40), uint8(y * 60), 0, 255})
		}
	}
	return img
}

func TestDecode(t *testing.T) {
	encoders := map[string]func(io.Writer, image.Image) error{
		"png":  png.Encode,
		"bmp":  bmp.Encode,
		"jpeg": func(w io.Writer, m image.Image) error { return jpeg.Encode(w, m, nil) },
		"gif":  func(w io.Writer, m image.Image) error { return gif.Encode(w, m, nil) },
		"tiff": func(w io.Writer, m image.Image) error { return tiff.Encode(w, m, nil) },
	}

	for format, encode := range encoders {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, encode(&buf, testImage()))

			img, got, err := Decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, format, got)
			assert.Equal(t, image.Rect(0, 0, 6, 4), img.Bounds())
		})
	}
}

func TestDecode_Invalid(t *testing.T) {
	_, _, err := Decode(strings.NewReader("This is not image data"))
	assert.ErrorIs(t, err, image.ErrFormat)

	_, _, err = Decode(bytes.NewReader(nil))
	assert.Error(t, err)
}

func TestWriteLines(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLines(&buf, []string{"@@", "  ", "░▒"}))
	assert.Equal(t, "@@\n  \n░▒\n", buf.String())

	assert.Equal(t, []byte("a\nb\n"), EncodeLines([]string{"a", "b"}))
	assert.Empty(t, EncodeLines(nil))
}

func TestEncodeLines_MatchesWriteLines(t *testing.T) {
	lines := []string{"@%#", "", "░▒▓", " . "}

	var buf bytes.Buffer
	require.NoError(t, WriteLines(&buf, lines))
	assert.Equal(t, buf.Bytes(), EncodeLines(lines))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteLines_Error(t *testing.T) {
	err := WriteLines(failingWriter{}, []string{"abc"})
	assert.ErrorContains(t, err, "disk full")
}
