package ascii

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// PixelGrid is a read-only view of an image as straight (non-premultiplied)
// 8-bit RGBA samples, anchored at (0, 0).
type PixelGrid struct {
	img *image.NRGBA
}

// NewPixelGrid copies img into a grid. An *image.NRGBA whose bounds already
// start at the origin is used as is.
//
// Straight-alpha sources (NRGBA, NRGBA64 and paletted images) keep their
// colour channels exactly. Other sources go through draw.Draw, which only
// sees premultiplied colour.
func NewPixelGrid(img image.Image) *PixelGrid {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	switch src := img.(type) {
	case *image.NRGBA:
		if b.Min == (image.Point{}) {
			return &PixelGrid{img: src}
		}
		for y := 0; y < b.Dy(); y++ {
			i := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(dst.Pix[y*dst.Stride:y*dst.Stride+4*b.Dx()], src.Pix[i:i+4*b.Dx()])
		}
	case *image.NRGBA64:
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				c := src.NRGBA64At(b.Min.X+x, b.Min.Y+y)
				dst.SetNRGBA(x, y, color.NRGBA{uint8(c.R >> 8), uint8(c.G >> 8), uint8(c.B >> 8), uint8(c.A >> 8)})
			}
		}
	case *image.Paletted:
		pal := make([]color.NRGBA, len(src.Palette))
		for i, c := range src.Palette {
			pal[i] = toNRGBA(c)
		}
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				// out of range indices stay transparent
				if i := int(src.ColorIndexAt(b.Min.X+x, b.Min.Y+y)); i < len(pal) {
					dst.SetNRGBA(x, y, pal[i])
				}
			}
		}
	default:
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	}
	return &PixelGrid{img: dst}
}

func toNRGBA(c color.Color) color.NRGBA {
	switch c := c.(type) {
	case color.NRGBA:
		return c
	case color.NRGBA64:
		return color.NRGBA{uint8(c.R >> 8), uint8(c.G >> 8), uint8(c.B >> 8), uint8(c.A >> 8)}
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

func (g *PixelGrid) Width() int {
	return g.img.Rect.Dx()
}

func (g *PixelGrid) Height() int {
	return g.img.Rect.Dy()
}

func (g *PixelGrid) Bounds() image.Rectangle {
	return g.img.Rect
}

// At returns the pixel at column x, row y.
func (g *PixelGrid) At(x, y int) color.NRGBA {
	return g.img.NRGBAAt(x, y)
}

// Image exposes the backing image. Callers must not modify it.
func (g *PixelGrid) Image() image.Image {
	return g.img
}
