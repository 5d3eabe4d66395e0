package job

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/koki-develop/img2ascii/internal/ascii"
	"github.com/koki-develop/img2ascii/internal/config"
	"github.com/koki-develop/img2ascii/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	objects map[string][]byte
	putErr  error
}

func (m *memStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	b, ok := m.objects[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (m *memStore) Put(ctx context.Context, name string, r io.Reader) error {
	if m.putErr != nil {
		return m.putErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.objects[name] = b
	return nil
}

func (m *memStore) resolve(ctx context.Context, location string) (storage.Store, string, error) {
	return m, location, nil
}

// pngHalves encodes a w x h png, white on the left half and black on the right.
func pngHalves(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{255, 255, 255, 255}
			if x >= w/2 {
				c = color.NRGBA{0, 0, 0, 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newOptions() *config.Options {
	o := config.Default()
	o.Source = "in.png"
	o.Output = "out.txt"
	o.Ramp = "01"
	o.MaxWidth = 2
	o.MaxHeight = 1
	return o
}

func quiet() Option {
	return WithLogger(log.New(io.Discard, "", 0))
}

func TestJob_Run(t *testing.T) {
	for _, sample := range []string{"average", "nearest"} {
		t.Run(sample, func(t *testing.T) {
			store := &memStore{objects: map[string][]byte{"in.png": pngHalves(t, 8, 2)}}
			o := newOptions()
			o.Sample = sample

			s, err := New(o, WithResolver(store.resolve), quiet()).Run(context.Background())
			require.NoError(t, err)
			assert.Equal(t, "png", s.Format)
			assert.Equal(t, ascii.Dimensions{Width: 8, Height: 2}, s.Size)
			assert.Equal(t, []string{"10"}, s.Result.Lines)
			assert.Equal(t, "10\n", string(store.objects["out.txt"]))
			assert.Equal(t, "wrote 1 lines (2x1) to out.txt", s.String())
		})
	}
}

func TestJob_RunLocalFiles(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	require.NoError(t, os.WriteFile(in, pngHalves(t, 40, 20), 0o644))

	o := config.Default()
	o.Source = in
	o.Output = filepath.Join(dir, "out.txt")
	o.MaxWidth = 4
	o.MaxHeight = 4
	o.Workers = 2

	s, err := New(o, quiet()).Run(context.Background())
	require.NoError(t, err)

	b, err := os.ReadFile(o.Output)
	require.NoError(t, err)
	assert.Equal(t, s.Result.String(), string(b))
	assert.Equal(t, "  @@\n  @@\n", string(b))
}

func TestJob_RunFontSize(t *testing.T) {
	store := &memStore{objects: map[string][]byte{"in.png": pngHalves(t, 4000, 10)}}
	o := newOptions()
	o.FontSize = 2

	s, err := New(o, WithResolver(store.resolve), quiet()).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ascii.Dimensions{Width: 950, Height: 240}, s.Result.Plan.Max)
}

func TestJob_RunFit(t *testing.T) {
	store := &memStore{objects: map[string][]byte{"in.png": pngHalves(t, 100, 100)}}
	o := newOptions()
	o.Fit = true

	s, err := New(o, WithResolver(store.resolve), WithScreen(fakeScreen{w: 80, h: 11}), quiet()).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ascii.Dimensions{Width: 80, Height: 10}, s.Result.Plan.Max)
	assert.Len(t, s.Result.Lines, 10)
}

type fakeScreen struct{ w, h int }

func (s fakeScreen) ScreenSize() (int, int, error) {
	return s.w, s.h, nil
}

func TestJob_RunErrors(t *testing.T) {
	t.Run("empty ramp", func(t *testing.T) {
		store := &memStore{objects: map[string][]byte{}}
		o := newOptions()
		o.Ramp = ""

		_, err := New(o, WithResolver(store.resolve), quiet()).Run(context.Background())
		assert.ErrorIs(t, err, ascii.ErrInvalidRamp)
		assert.Empty(t, store.objects)
	})

	t.Run("missing source", func(t *testing.T) {
		store := &memStore{objects: map[string][]byte{}}
		_, err := New(newOptions(), WithResolver(store.resolve), quiet()).Run(context.Background())
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("corrupt source", func(t *testing.T) {
		store := &memStore{objects: map[string][]byte{"in.png": []byte("not a png")}}
		_, err := New(newOptions(), WithResolver(store.resolve), quiet()).Run(context.Background())
		assert.ErrorIs(t, err, image.ErrFormat)
		assert.NotContains(t, store.objects, "out.txt")
	})

	t.Run("canceled", func(t *testing.T) {
		store := &memStore{objects: map[string][]byte{"in.png": pngHalves(t, 8, 2)}}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := New(newOptions(), WithResolver(store.resolve), quiet()).Run(ctx)
		assert.ErrorIs(t, err, context.Canceled)
		assert.NotContains(t, store.objects, "out.txt")
	})
}

func TestJob_WriteErrors(t *testing.T) {
	boom := errors.New("disk full")
	store := &memStore{
		objects: map[string][]byte{"in.png": pngHalves(t, 8, 2)},
		putErr:  boom,
	}

	_, err := New(newOptions(), WithResolver(store.resolve), quiet()).Run(context.Background())
	assert.ErrorIs(t, err, boom)

	var logs bytes.Buffer
	o := newOptions()
	o.IgnoreWriteErrors = true
	s, err := New(o, WithResolver(store.resolve), WithLogger(log.New(&logs, "", 0))).Run(context.Background())
	require.NoError(t, err)
	assert.ErrorIs(t, s.WriteErr, boom)
	assert.Equal(t, []string{"10"}, s.Result.Lines)
	assert.Contains(t, logs.String(), "ignoring write error")
	assert.Contains(t, s.String(), "could not write out.txt")
}
