/*
Package bmfquery provides convenience queries on packed bitmap fonts, such as
header information, glyph coverage and glyph metrics.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package bmfquery

import (
	"errors"

	"github.com/bits-and-blooms/bitset"
	"github.com/npillmayer/bitfont/bmf"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'font.bitmap'
func tracer() tracing.Trace {
	return tracing.Select("font.bitmap")
}

// FontInfo contains general information about a font.
type FontInfo struct {
	MaxByteWidth    int   // glyph cell width, rounded to whole bytes
	MaxHeight       int   // glyph cell height
	KerningPairs    int   // number of kerning pairs
	CharacterCount  int   // number of character records
	SpaceSize       int   // advance of the space character
	LetterSpacing   int   // spacing between lines
	MemoryBacked    bool  // glyphs are views into memory
	GlyphDataOffset int64 // first byte after the character table
}

// HeaderInfo returns general information about a font.
func HeaderInfo(f *bmf.Font) FontInfo {
	h := f.Header
	return FontInfo{
		MaxByteWidth:    int(h.MaxByteWidth),
		MaxHeight:       int(h.MaxHeight),
		KerningPairs:    int(h.KerningPairs),
		CharacterCount:  int(h.CharacterCount),
		SpaceSize:       f.SpaceSize(),
		LetterSpacing:   f.LetterSpacing(),
		MemoryBacked:    f.IsMemoryBacked(),
		GlyphDataOffset: h.GlyphDataOffset(),
	}
}

// GlyphMetricsInfo contains the metrics of a glyph.
type GlyphMetricsInfo struct {
	Index    int // charset index
	Width    int
	Height   int
	XOffset  int
	YOffset  int
	Advance  int
	ByteSize int // size of the glyph bitmap
}

// GlyphMetrics returns the metrics of the glyph for a rune, mapped with the
// font's configured mode. Returns false if the rune has no character record.
func GlyphMetrics(f *bmf.Font, r rune) (GlyphMetricsInfo, bool) {
	index, err := f.CharsetIndex(r, f.IsASCII())
	if err != nil {
		return GlyphMetricsInfo{}, false
	}
	return GlyphMetricsAt(f, index)
}

// GlyphMetricsAt returns the metrics of the glyph at a charset index.
func GlyphMetricsAt(f *bmf.Font, index int) (GlyphMetricsInfo, bool) {
	rec, err := f.Character(index)
	if err != nil {
		return GlyphMetricsInfo{}, false
	}
	return GlyphMetricsInfo{
		Index:    index,
		Width:    int(rec.Width),
		Height:   int(rec.Height),
		XOffset:  int(rec.XOffset),
		YOffset:  int(rec.YOffset),
		Advance:  int(rec.XAdvance),
		ByteSize: rec.BitmapSize(),
	}, true
}

// Coverage checks every character record of a font. It returns the set of
// charset indices with a non-empty, readable glyph, and the set of indices whose
// glyph data is corrupt. Checking stops at the first index beyond the
// character table.
//
// Coverage resolves glyphs, thus invalidates glyph views of f.
func Coverage(f *bmf.Font) (covered, corrupt *bitset.BitSet) {
	// the header count is untrusted, sets grow with the records actually read
	n := int(f.Header.CharacterCount)
	covered, corrupt = bitset.New(0), bitset.New(0)
	for i := 0; i < n; i++ {
		_, g, err := f.ResolveIndex(i)
		if errors.Is(err, bmf.ErrGlyphNotFound) || errors.Is(err, bmf.ErrClosed) {
			tracer().Infof("coverage check stops at index %d: %v", i, err)
			break
		} else if err != nil {
			corrupt.Set(uint(i))
		} else if !g.Empty() {
			covered.Set(uint(i))
		}
	}
	return
}

// CoveredRunes lists the runes of an ASCII-mode font which have a non-empty glyph.
// For fonts using raw codes, the charset indices are returned as runes.
func CoveredRunes(f *bmf.Font) []rune {
	covered, _ := Coverage(f)
	runes := make([]rune, 0, covered.Count())
	for i, ok := covered.NextSet(0); ok; i, ok = covered.NextSet(i + 1) {
		r := rune(i)
		if f.IsASCII() {
			r += bmf.FirstASCIICode
		}
		runes = append(runes, r)
	}
	return runes
}

// KerningFor returns the kerning pairs with first as their first code, in table order.
func KerningFor(f *bmf.Font, first uint16) []bmf.KerningPair {
	var pairs []bmf.KerningPair
	for _, p := range f.KerningPairs() {
		if p.First == first {
			pairs = append(pairs, p)
		}
	}
	return pairs
}

// KerningEntry is a kerning pair of a font's kerning table.
type KerningEntry struct {
	bmf.KerningPair
	Shadowed bool // an earlier pair has the same codes, so this one never applies
}

// KerningTable lists the kerning table of a font in table order.
func KerningTable(f *bmf.Font) []KerningEntry {
	pairs := f.KerningPairs()
	entries := make([]KerningEntry, len(pairs))
	seen := make(map[[2]uint16]struct{}, len(pairs))
	for i, p := range pairs {
		key := [2]uint16{p.First, p.Second}
		_, dup := seen[key]
		entries[i] = KerningEntry{KerningPair: p, Shadowed: dup}
		seen[key] = struct{}{}
	}
	return entries
}

// ShadowedKerningPairs returns the kerning pairs which can never take effect,
// because an earlier pair of the table has the same codes.
func ShadowedKerningPairs(f *bmf.Font) []bmf.KerningPair {
	var shadowed []bmf.KerningPair
	for _, e := range KerningTable(f) {
		if e.Shadowed {
			shadowed = append(shadowed, e.KerningPair)
		}
	}
	return shadowed
}
