package sprite

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/bodgit/packmaker/tint"
	xdraw "golang.org/x/image/draw"
)

// Surface is anything that can draw a recoloured, scaled region of a source
// image. The matrix is applied to the source pixels before they are
// composited over the destination rectangle.
type Surface interface {
	Draw(m tint.Matrix, src image.Image, sr, dr image.Rectangle)
}

// Canvas is a software Surface backed by a non-premultiplied RGBA image.
// Scaling is nearest neighbour so pixel art stays sharp.
type Canvas struct {
	img *image.NRGBA
}

// NewCanvas returns a transparent canvas of the given size
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		img: image.NewNRGBA(image.Rect(0, 0, width, height)),
	}
}

// Fill replaces every pixel with col
func (c *Canvas) Fill(col color.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// Clear makes the whole canvas transparent
func (c *Canvas) Clear() {
	c.Fill(color.Transparent)
}

// Draw implements Surface
func (c *Canvas) Draw(m tint.Matrix, src image.Image, sr, dr image.Rectangle) {
	if sr.Empty() || dr.Empty() {
		return
	}

	tinted := image.NewNRGBA(image.Rect(0, 0, sr.Dx(), sr.Dy()))
	for y := 0; y < sr.Dy(); y++ {
		for x := 0; x < sr.Dx(); x++ {
			p := color.NRGBAModel.Convert(src.At(sr.Min.X+x, sr.Min.Y+y)).(color.NRGBA)
			tinted.SetNRGBA(x, y, m.Apply(p))
		}
	}

	xdraw.NearestNeighbor.Scale(c.img, dr, tinted, tinted.Bounds(), xdraw.Over, nil)
}

// Bounds returns the canvas dimensions
func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Bounds()
}

// At returns the pixel at (x, y)
func (c *Canvas) At(x, y int) color.NRGBA {
	return c.img.NRGBAAt(x, y)
}

// Image returns the live backing image. It changes with every draw, use
// Snapshot to keep a copy.
func (c *Canvas) Image() *image.NRGBA {
	return c.img
}

// Snapshot returns a copy of the current canvas contents
func (c *Canvas) Snapshot() *image.NRGBA {
	dup := image.NewNRGBA(c.img.Bounds())
	copy(dup.Pix, c.img.Pix)
	return dup
}

// EncodePNG writes the canvas to w as a PNG
func (c *Canvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}
