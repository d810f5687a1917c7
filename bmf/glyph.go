package bmf

import (
	"image"
	"image/color"
)

// Glyph is a 1-bit-per-pixel glyph bitmap of Width × Height pixels. Rows are
// Stride bytes long; the most significant bit of a byte is the leftmost pixel.
//
// A glyph returned by Font.Resolve is a borrowed view. It stays valid only until
// the next glyph resolution on the same font. Use Clone to keep it longer.
//
// Glyph implements image.Image with an alpha color model, making it usable as a
// mask for image drawing.
type Glyph struct {
	Width  int
	Height int
	Stride int
	Bits   []byte
}

// Empty reports whether the glyph has no pixels.
func (g Glyph) Empty() bool {
	return g.Width <= 0 || g.Height <= 0
}

// Pixel reports whether the pixel at (x, y) is set. Pixels outside the glyph
// are never set.
func (g Glyph) Pixel(x, y int) bool {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return false
	}
	return g.Bits[y*g.Stride+x/8]&(0x80>>(x%8)) != 0
}

// Clone returns a copy of g which owns its pixel memory.
func (g Glyph) Clone() Glyph {
	c := g
	if g.Bits != nil {
		c.Bits = append([]byte(nil), g.Bits...)
	}
	return c
}

// ColorModel is part of the image.Image interface.
func (g Glyph) ColorModel() color.Model {
	return color.AlphaModel
}

// Bounds is part of the image.Image interface. It returns (0,0)-(Width,Height).
func (g Glyph) Bounds() image.Rectangle {
	if g.Empty() {
		return image.Rectangle{}
	}
	return image.Rect(0, 0, g.Width, g.Height)
}

// At is part of the image.Image interface.
func (g Glyph) At(x, y int) color.Color {
	if g.Pixel(x, y) {
		return color.Opaque
	}
	return color.Transparent
}

// --- Resolution ------------------------------------------------------------

// Resolve maps a character code to its character record and glyph bitmap.
// If isASCII is set, code is mapped from ASCII (or from the font's charmap)
// to a charset index, otherwise code is used as the charset index.
//
// The returned glyph is valid until the next resolution on f.
func (f *Font) Resolve(code rune, isASCII bool) (CharacterRecord, Glyph, error) {
	index, err := f.CharsetIndex(code, isASCII)
	if err != nil {
		return CharacterRecord{}, Glyph{}, err
	}
	return f.ResolveIndex(index)
}

// ResolveRune is Resolve, with the mapping mode configured for the font.
func (f *Font) ResolveRune(r rune) (CharacterRecord, Glyph, error) {
	return f.Resolve(r, !f.rawCodes)
}

// ResolveCode is Resolve for a code of the font's own charset, e.g. a byte of
// text already encoded with the font's 8-bit charmap. The charmap is not
// applied.
func (f *Font) ResolveCode(code uint16) (CharacterRecord, Glyph, error) {
	index, err := f.CodeIndex(code)
	if err != nil {
		return CharacterRecord{}, Glyph{}, err
	}
	return f.ResolveIndex(index)
}

// ResolveIndex returns the character record and glyph bitmap for a charset index.
func (f *Font) ResolveIndex(index int) (CharacterRecord, Glyph, error) {
	rec, err := f.Character(index)
	if err != nil {
		return rec, Glyph{}, err
	}
	glyph, err := f.glyphBitmap(index, rec)
	if err != nil {
		return rec, Glyph{}, err
	}
	return rec, glyph, nil
}

// Character returns the character record for a charset index.
func (f *Font) Character(index int) (CharacterRecord, error) {
	if f.src == nil {
		return CharacterRecord{}, fontError(ErrClosed, "character", -1, "index %d", index)
	}
	if index < 0 {
		return CharacterRecord{}, fontError(ErrIndexOutOfRange, "character", -1,
			"negative charset index %d", index)
	}
	if uint64(index) >= uint64(f.Header.CharacterCount) {
		return CharacterRecord{}, fontError(ErrGlyphNotFound, "character", -1,
			"index %d, font has %d characters", index, f.Header.CharacterCount)
	}
	if f.cached != nil && f.cached.Test(uint(index)) {
		return f.records[index], nil
	}
	off := f.Header.CharacterRecordOffset(index)
	if total := f.src.size(); total >= 0 && off+CharacterRecordSize > total {
		return CharacterRecord{}, fontError(ErrGlyphNotFound, "character", off,
			"index %d beyond character table of font with %d bytes", index, total)
	}
	b, err := f.src.fetch(off, f.recbuf[:])
	if err != nil {
		return CharacterRecord{}, fontError(ErrGlyphDataCorrupt, "character", off,
			"index %d: %v", index, err)
	}
	rec := decodeCharacterRecord(b)
	if f.cached != nil {
		if index >= len(f.records) {
			grown := make([]CharacterRecord, index+1, max(index+1, 2*len(f.records)))
			copy(grown, f.records)
			f.records = grown
		}
		f.records[index] = rec
		f.cached.Set(uint(index))
	}
	return rec, nil
}

func (f *Font) glyphBitmap(index int, rec CharacterRecord) (Glyph, error) {
	glyph := Glyph{Width: int(rec.Width), Height: int(rec.Height), Stride: rec.Stride()}
	n := rec.BitmapSize()
	if n == 0 {
		return glyph, nil
	}
	bits, err := f.bitmapBytes(int64(rec.Offset), n)
	if err != nil {
		return Glyph{}, fontError(ErrGlyphDataCorrupt, "glyph", int64(rec.Offset),
			"bitmap of index %d needs %d bytes: %v", index, n, err)
	}
	glyph.Bits = bits
	tracer().Debugf("resolved glyph #%d %s", index, rec)
	return glyph, nil
}

// bitmapBytes returns n bytes of glyph data at off. Memory-backed fonts return
// a view into the arena, stream-backed fonts read into the scratch buffer.
func (f *Font) bitmapBytes(off int64, n int) ([]byte, error) {
	if a, ok := f.src.(arena); ok {
		return a.view(off, n)
	}
	if cap(f.scratch) < n {
		f.scratch = make([]byte, n, max(n, 2*cap(f.scratch)))
	}
	return f.src.fetch(off, f.scratch[:n])
}
