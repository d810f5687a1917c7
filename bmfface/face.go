/*
Package bmfface makes packed bitmap fonts usable as golang.org/x/image/font.Face.

The glyph cell of a packed font is hung from the pen's y position minus the
ascent, where the ascent is the font's maximum cell height. Glyph y-offsets
count downwards from the top of the cell. This lets clients use font.Drawer
with packed fonts:

	d := font.Drawer{Dst: img, Src: image.Black, Face: bmfface.New(f), Dot: fixed.P(0, 16)}
	d.DrawString("Hello")

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package bmfface

import (
	"image"

	"github.com/npillmayer/bitfont/bmf"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Face is a font.Face for a packed bitmap font.
//
// As the underlying font, a Face is not safe for concurrent use. The mask
// returned by Glyph is valid until the next call to Glyph.
type Face struct {
	font *bmf.Font
}

var _ font.Face = (*Face)(nil)

// New creates a face for f.
func New(f *bmf.Font) *Face {
	return &Face{font: f}
}

// Close is part of the font.Face interface. It does not close the font.
func (face *Face) Close() error {
	return nil
}

func (face *Face) ascent() int {
	return int(face.font.Header.MaxHeight)
}

// Glyph is part of the font.Face interface.
func (face *Face) Glyph(dot fixed.Point26_6, r rune) (
	dr image.Rectangle, mask image.Image, maskp image.Point, advance fixed.Int26_6, ok bool) {
	//
	if r == ' ' {
		return image.Rectangle{}, image.Transparent, image.Point{}, fixed.I(face.font.SpaceSize()), true
	}
	rec, g, err := face.font.ResolveRune(r)
	if err != nil {
		return
	}
	x := dot.X.Round() + int(rec.XOffset)
	y := dot.Y.Round() - face.ascent() + int(rec.YOffset)
	dr = image.Rect(x, y, x+g.Width, y+g.Height)
	return dr, g, image.Point{}, fixed.I(int(rec.XAdvance)), true
}

// GlyphBounds is part of the font.Face interface.
func (face *Face) GlyphBounds(r rune) (bounds fixed.Rectangle26_6, advance fixed.Int26_6, ok bool) {
	if r == ' ' {
		return fixed.Rectangle26_6{}, fixed.I(face.font.SpaceSize()), true
	}
	rec, err := face.character(r)
	if err != nil {
		return
	}
	top := -face.ascent() + int(rec.YOffset)
	bounds = fixed.R(int(rec.XOffset), top, int(rec.XOffset)+int(rec.Width), top+int(rec.Height))
	return bounds, fixed.I(int(rec.XAdvance)), true
}

// GlyphAdvance is part of the font.Face interface.
func (face *Face) GlyphAdvance(r rune) (advance fixed.Int26_6, ok bool) {
	if r == ' ' {
		return fixed.I(face.font.SpaceSize()), true
	}
	rec, err := face.character(r)
	if err != nil {
		return 0, false
	}
	return fixed.I(int(rec.XAdvance)), true
}

// Kern is part of the font.Face interface. As with bmflayout, a space never
// kerns with the character following it.
func (face *Face) Kern(r0, r1 rune) fixed.Int26_6 {
	if r0 == ' ' {
		return 0
	}
	return fixed.I(face.font.KerningRunes(r0, r1))
}

// Metrics is part of the font.Face interface. The line height includes the
// font's letter spacing.
func (face *Face) Metrics() font.Metrics {
	h := face.ascent()
	return font.Metrics{
		Height:    fixed.I(h + face.font.LetterSpacing()),
		Ascent:    fixed.I(h),
		Descent:   0,
		XHeight:   fixed.I(h / 2),
		CapHeight: fixed.I(h),
		CaretSlope: image.Point{
			X: 0,
			Y: 1,
		},
	}
}

func (face *Face) character(r rune) (bmf.CharacterRecord, error) {
	index, err := face.font.CharsetIndex(r, face.font.IsASCII())
	if err != nil {
		return bmf.CharacterRecord{}, err
	}
	return face.font.Character(index)
}
