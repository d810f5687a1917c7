/*
Package builder creates packed bitmap fonts.

Fonts may be assembled glyph by glyph, e.g. from ASCII art for tests or from
pixel editors, or rasterized from an OpenType font (see FromOpenType).

	b := builder.New()
	b.SetGlyphRune('A', builder.GlyphFromRows(4, ".#.", "#.#", "###", "#.#"))
	b.AddKerningPair('A', 'V', -1)
	data, err := b.Bytes()

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package builder

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/bits-and-blooms/bitset"
	"github.com/npillmayer/bitfont/bmf"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'bitfont.builder'
func tracer() tracing.Trace {
	return tracing.Select("bitfont.builder")
}

// Builder collects glyphs and kerning pairs and encodes them as a packed
// bitmap font.
type Builder struct {
	glyphs       []Glyph // by charset index
	defined      bitset.BitSet
	kerning      []bmf.KerningPair
	minByteWidth int
	minHeight    int
}

// New creates an empty builder.
func New() *Builder {
	return &Builder{}
}

// SetGlyph sets the glyph for a charset index, replacing any previous glyph.
func (b *Builder) SetGlyph(index int, g Glyph) error {
	if index < 0 {
		return fmt.Errorf("invalid charset index %d", index)
	}
	if err := g.check(); err != nil {
		return fmt.Errorf("charset index %d: %w", index, err)
	}
	if index >= len(b.glyphs) {
		b.glyphs = append(b.glyphs, make([]Glyph, index+1-len(b.glyphs))...)
	}
	b.glyphs[index] = g
	b.defined.Set(uint(index))
	return nil
}

// SetGlyphRune sets the glyph for a printable ASCII rune (or an 8-bit code of a
// charmap), i.e. for charset index r − ' '.
func (b *Builder) SetGlyphRune(r rune, g Glyph) error {
	if r < bmf.FirstASCIICode {
		return fmt.Errorf("rune %#U below printable range", r)
	}
	return b.SetGlyph(int(r-bmf.FirstASCIICode), g)
}

// Defined reports whether a glyph has been set for a charset index.
func (b *Builder) Defined(index int) bool {
	return index >= 0 && b.defined.Test(uint(index))
}

// GlyphCount is the number of glyphs set.
func (b *Builder) GlyphCount() int {
	return int(b.defined.Count())
}

// AddKerningPair appends a kerning pair. Pairs are written in the order they are
// added; duplicates are kept.
func (b *Builder) AddKerningPair(first, second rune, kerning int) error {
	if first < 0 || first > math.MaxUint16 || second < 0 || second > math.MaxUint16 {
		return fmt.Errorf("kerning pair (%#U,%#U) not representable", first, second)
	}
	if kerning < math.MinInt16 || kerning > math.MaxInt16 {
		return fmt.Errorf("kerning %d out of range", kerning)
	}
	b.kerning = append(b.kerning, bmf.KerningPair{
		First:   uint16(first),
		Second:  uint16(second),
		Kerning: int16(kerning),
	})
	return nil
}

// SetCellSize sets minimum values for the glyph cell bounds of the header.
// The builder will enlarge them to fit all glyphs.
func (b *Builder) SetCellSize(width, height int) {
	b.minByteWidth = (max(0, width) + 7) / 8 * 8
	b.minHeight = max(0, height)
}

// Header returns the font header the builder will write.
func (b *Builder) Header() bmf.FontHeader {
	w, h := b.minByteWidth, b.minHeight
	for i, g := range b.glyphs {
		if !b.defined.Test(uint(i)) {
			continue
		}
		w = max(w, g.Stride()*8)
		h = max(h, max(0, g.YOffset)+g.Height)
	}
	return bmf.FontHeader{
		MaxByteWidth:   uint16(min(w, math.MaxUint16)),
		MaxHeight:      uint16(min(h, math.MaxUint16)),
		KerningPairs:   uint32(len(b.kerning)),
		CharacterCount: uint32(len(b.glyphs)),
	}
}

// Bytes encodes the font.
func (b *Builder) Bytes() ([]byte, error) {
	h := b.Header()
	glyphData := h.GlyphDataOffset()
	size := glyphData
	for _, g := range b.glyphs {
		size += int64(len(g.Bits))
	}
	if size > math.MaxUint32 {
		return nil, fmt.Errorf("font of %d bytes exceeds 32-bit offsets", size)
	}
	buf := make([]byte, 0, size)
	buf = bmf.AppendHeader(buf, h)
	for _, p := range b.kerning {
		buf = bmf.AppendKerningPair(buf, p)
	}
	offset := uint32(glyphData)
	for _, g := range b.glyphs {
		rec := bmf.CharacterRecord{
			Width:    uint8(g.Width),
			Height:   uint8(g.Height),
			XOffset:  int8(g.XOffset),
			YOffset:  int8(g.YOffset),
			XAdvance: uint8(g.XAdvance),
		}
		if len(g.Bits) > 0 {
			rec.Offset = offset
			offset += uint32(len(g.Bits))
		}
		buf = bmf.AppendCharacterRecord(buf, rec)
	}
	for _, g := range b.glyphs {
		buf = append(buf, g.Bits...)
	}
	tracer().Debugf("encoded font %s with %d glyphs, %d bytes", h, b.GlyphCount(), len(buf))
	return buf, nil
}

// WriteTo writes the encoded font to w.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	data, err := b.Bytes()
	if err != nil {
		return 0, err
	}
	return bytes.NewReader(data).WriteTo(w)
}
