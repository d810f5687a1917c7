package bmflayout

import (
	"image"
	"image/color"

	"github.com/npillmayer/bitfont/bmf"
	"golang.org/x/image/draw"
)

// Canvas is a Bitmap drawing onto an image. Blit paints glyph pixels with Ink,
// Clear paints them with Paper. Pixels not set in a glyph are left alone.
type Canvas struct {
	Image   draw.Image
	Ink     color.Color
	Paper   color.Color
	touched image.Rectangle
}

// NewCanvas creates a canvas with opaque black ink on transparent paper.
func NewCanvas(img draw.Image) *Canvas {
	return &Canvas{
		Image: img,
		Ink:   color.Black,
		Paper: color.Transparent,
	}
}

// Blit is part of interface Bitmap.
func (c *Canvas) Blit(p image.Point, g bmf.Glyph) {
	r := c.clip(p, g)
	if r.Empty() {
		return
	}
	// mask origin shifts with clipping at the top/left edges
	mp := r.Min.Sub(p)
	draw.DrawMask(c.Image, r, image.NewUniform(c.Ink), image.Point{}, g, mp, draw.Over)
}

// Clear is part of interface Bitmap. Set glyph pixels are replaced by Paper,
// which may be transparent.
func (c *Canvas) Clear(p image.Point, g bmf.Glyph) {
	r := c.clip(p, g)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if g.Pixel(x-p.X, y-p.Y) {
				c.Image.Set(x, y, c.Paper)
			}
		}
	}
}

// clip returns the part of the image covered by g placed at p, and records
// it as touched.
func (c *Canvas) clip(p image.Point, g bmf.Glyph) image.Rectangle {
	r := g.Bounds().Add(p).Intersect(c.Image.Bounds())
	if !r.Empty() {
		c.touched = c.touched.Union(r)
	}
	return r
}

// Touched returns the bounding box of all pixels painted so far.
func (c *Canvas) Touched() image.Rectangle {
	return c.touched
}

// ResetTouched forgets the painted region.
func (c *Canvas) ResetTouched() {
	c.touched = image.Rectangle{}
}
