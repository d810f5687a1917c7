/*
Package bmflayout measures and renders single lines of text set in packed
bitmap fonts.

Text is processed code point by code point. The space character is a fast path:
it advances the pen by the font's space size without consulting the glyph table.
Every other character is resolved to a glyph, and the pen advances by the
glyph's advance plus the kerning between the character and the next one in the
text. The last character of a text is never kerned.

Text is either UTF-8, mapped to the font's charset by package bmf, or already
encoded in the font's own 8-bit charset (MeasureBytes, RenderBytes, EraseBytes),
where every byte is a character code.

There is no line breaking, wrapping or alignment in this package. Widgets
needing these will build them on top of Measure.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package bmflayout

import (
	"fmt"
	"image"
	"unicode/utf8"

	"github.com/npillmayer/bitfont/bmf"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'bitfont.layout'
func tracer() tracing.Trace {
	return tracing.Select("bitfont.layout")
}

// Bitmap is a destination for glyphs. Blit sets the pixels of a glyph with
// the glyph's top left corner at p, Clear resets them.
type Bitmap interface {
	Blit(p image.Point, g bmf.Glyph)
	Clear(p image.Point, g bmf.Glyph)
}

// Layout sets text in a font.
//
// A Layout shares the font's scratch buffer and is therefore not safe for
// concurrent use, as is the font.
type Layout struct {
	font *bmf.Font
}

// New creates a layout for a font.
func New(f *bmf.Font) *Layout {
	return &Layout{font: f}
}

// Font returns the font of the layout.
func (l *Layout) Font() *bmf.Font {
	return l.font
}

// Measure returns the width of text in pixels, i.e. the final pen position.
// If a character cannot be resolved, Measure fails for the whole text.
func (l *Layout) Measure(text string) (int, error) {
	return l.walk(text, false, image.Point{}, nil)
}

// MeasureBytes is Measure for text encoded in the font's own 8-bit charset.
// Every byte is a character code.
func (l *Layout) MeasureBytes(text []byte) (int, error) {
	return l.walk(string(text), true, image.Point{}, nil)
}

// Render draws text onto dst, with the pen starting at origin. Glyphs are placed
// at origin + (pen + x-offset, y-offset).
//
// Text is validated before anything is drawn: if a character cannot be resolved,
// Render fails and dst remains untouched.
func (l *Layout) Render(text string, dst Bitmap, origin image.Point) error {
	return l.draw(text, false, origin, dst.Blit)
}

// RenderBytes is Render for text encoded in the font's own 8-bit charset.
func (l *Layout) RenderBytes(text []byte, dst Bitmap, origin image.Point) error {
	return l.draw(string(text), true, origin, dst.Blit)
}

// Erase clears the pixels Render would set for text at origin.
func (l *Layout) Erase(text string, dst Bitmap, origin image.Point) error {
	return l.draw(text, false, origin, dst.Clear)
}

// EraseBytes is Erase for text encoded in the font's own 8-bit charset.
func (l *Layout) EraseBytes(text []byte, dst Bitmap, origin image.Point) error {
	return l.draw(string(text), true, origin, dst.Clear)
}

func (l *Layout) draw(text string, bytewise bool, origin image.Point, op func(image.Point, bmf.Glyph)) error {
	if _, err := l.walk(text, bytewise, origin, nil); err != nil {
		return err
	}
	_, err := l.walk(text, bytewise, origin, op)
	return err
}

// decode returns the first character code of text and its length in bytes.
func decode(text string, bytewise bool) (rune, int) {
	if bytewise {
		return rune(text[0]), 1
	}
	return utf8.DecodeRuneInString(text)
}

// walk advances the pen over text and calls op for every non-empty glyph.
// If bytewise is set, text holds codes of the font's charset, one per byte.
func (l *Layout) walk(text string, bytewise bool, origin image.Point, op func(image.Point, bmf.Glyph)) (int, error) {
	f := l.font
	pen := 0
	for i := 0; i < len(text); {
		r, size := decode(text[i:], bytewise)
		at := i
		i += size
		if r == ' ' {
			pen += f.SpaceSize()
			continue
		}
		rec, g, err := l.resolve(r, bytewise)
		if err != nil {
			tracer().Debugf("layout of %q stops at byte %d", text, at)
			return pen, fmt.Errorf("cannot set %q at byte %d: %w", r, at, err)
		}
		if op != nil && !g.Empty() {
			p := origin.Add(image.Pt(pen+int(rec.XOffset), int(rec.YOffset)))
			op(p, g)
		}
		pen += int(rec.XAdvance)
		if i < len(text) { // the last character is never kerned
			next, _ := decode(text[i:], bytewise)
			pen += l.kerning(r, next, bytewise)
		}
	}
	return pen, nil
}

func (l *Layout) resolve(r rune, bytewise bool) (bmf.CharacterRecord, bmf.Glyph, error) {
	if bytewise {
		return l.font.ResolveCode(uint16(r))
	}
	return l.font.ResolveRune(r)
}

func (l *Layout) kerning(r, next rune, bytewise bool) int {
	if bytewise {
		return int(l.font.Kerning(uint16(r), uint16(next)))
	}
	return l.font.KerningRunes(r, next)
}
