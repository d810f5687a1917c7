package bmf_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/npillmayer/bitfont/bmf"
	"github.com/npillmayer/bitfont/builder"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

var glyphA = []string{
	"..##..",
	".#..#.",
	"#....#",
	"######",
	"#....#",
	"#....#",
	"#....#",
}

var glyphB = []string{
	"#####.",
	"#....#",
	"#####.",
	"#....#",
	"#....#",
	"#....#",
	"#####.",
}

var glyphV = []string{
	"#.......#",
	"#.......#",
	".#.....#.",
	".#.....#.",
	"..#...#..",
	"...#.#...",
	"....#....",
}

// makeTestFont builds a font with glyphs for ' ', 'A', 'B' and 'V', and
// kerning pairs (A,B,-2), (A,V,-1), (A,V,-3).
func makeTestFont(t *testing.T) []byte {
	b := builder.New()
	b.SetCellSize(16, 10)
	space := builder.Glyph{XAdvance: 3}
	require.NoError(t, b.SetGlyphRune(' ', space))
	a := builder.GlyphFromRows(7, glyphA...)
	a.YOffset = 2
	require.NoError(t, b.SetGlyphRune('A', a))
	bb := builder.GlyphFromRows(7, glyphB...)
	bb.XOffset, bb.YOffset = 1, 2
	require.NoError(t, b.SetGlyphRune('B', bb))
	v := builder.GlyphFromRows(10, glyphV...)
	v.YOffset = 2
	require.NoError(t, b.SetGlyphRune('V', v))
	require.NoError(t, b.AddKerningPair('A', 'B', -2))
	require.NoError(t, b.AddKerningPair('A', 'V', -1))
	require.NoError(t, b.AddKerningPair('A', 'V', -3))
	data, err := b.Bytes()
	require.NoError(t, err)
	return data
}

func TestOpenHeader(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.bitmap")
	defer teardown()
	//
	f, err := bmf.Parse(makeTestFont(t))
	require.NoError(t, err)
	t.Logf("header = %s", f.Header)
	assert.Equal(t, uint16(16), f.Header.MaxByteWidth)
	assert.Equal(t, uint16(10), f.Header.MaxHeight)
	assert.Equal(t, uint32(3), f.Header.KerningPairs)
	assert.Equal(t, uint32('V'-' '+1), f.Header.CharacterCount)
	assert.Equal(t, 4, f.SpaceSize(), "space size defaults to max byte width / 4")
	assert.Equal(t, 1, f.LetterSpacing(), "letter spacing defaults to max height / 8")
	assert.True(t, f.IsMemoryBacked())
	assert.True(t, f.IsASCII())
}

func TestOpenOptions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.bitmap")
	defer teardown()
	//
	f, err := bmf.Parse(makeTestFont(t), bmf.WithSpaceSize(9), bmf.WithLetterSpacing(0))
	require.NoError(t, err)
	assert.Equal(t, 9, f.SpaceSize())
	assert.Equal(t, 0, f.LetterSpacing())
	f.SetSpaceSize(-5)
	assert.Equal(t, 0, f.SpaceSize())
}

func TestTruncatedHeader(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.bitmap")
	defer teardown()
	//
	data := makeTestFont(t)
	for _, n := range []int{0, 1, 5, bmf.HeaderSize - 1} {
		f, err := bmf.Parse(data[:n])
		assert.Nil(t, f, "expected no font handle for %d bytes", n)
		assert.ErrorIs(t, err, bmf.ErrTruncatedHeader)
		f, err = bmf.OpenReader(bytes.NewReader(data[:n]), 0)
		assert.Nil(t, f)
		assert.ErrorIs(t, err, bmf.ErrTruncatedHeader)
	}
	var ferr *bmf.FontError
	_, err := bmf.Parse(data[:3])
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, "header", ferr.Section)
}

func TestTruncatedKerningTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.bitmap")
	defer teardown()
	//
	data := makeTestFont(t)
	cut := bmf.HeaderSize + 2*bmf.KerningPairSize + 1
	f, err := bmf.Parse(data[:cut])
	assert.Nil(t, f)
	assert.ErrorIs(t, err, bmf.ErrTruncatedKerningTable)
	f, err = bmf.OpenReader(bytes.NewReader(data[:cut]), 0)
	assert.Nil(t, f)
	assert.ErrorIs(t, err, bmf.ErrTruncatedKerningTable)
	// header claims more pairs than allowed
	h := bmf.AppendHeader(nil, bmf.FontHeader{KerningPairs: bmf.MaxKerningPairs + 1})
	_, err = bmf.Parse(h)
	assert.ErrorIs(t, err, bmf.ErrTruncatedKerningTable)
}

func TestKerning(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.bitmap")
	defer teardown()
	//
	for _, opts := range [][]bmf.Option{nil, {bmf.WithKerningIndex()}} {
		f, err := bmf.Parse(makeTestFont(t), opts...)
		require.NoError(t, err)
		assert.Equal(t, int16(-2), f.Kerning(65, 66))
		assert.Equal(t, int16(0), f.Kerning(66, 65))
		assert.Equal(t, int16(-1), f.Kerning('A', 'V'), "expected first of duplicate pairs to win")
		assert.Equal(t, int16(0), f.Kerning('V', 'V'))
		assert.Equal(t, -2, f.KerningRunes('A', 'B'))
		assert.Equal(t, 0, f.KerningRunes('A', 'V'+1), "no pair (A,W)")
	}
}

func TestKerningEmptyTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.bitmap")
	defer teardown()
	//
	b := builder.New()
	require.NoError(t, b.SetGlyphRune('A', builder.GlyphFromRows(7, glyphA...)))
	data, err := b.Bytes()
	require.NoError(t, err)
	f, err := bmf.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, int16(0), f.Kerning(65, 66))
	assert.Empty(t, f.KerningPairs())
}

func TestKerningRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.bitmap")
	defer teardown()
	//
	pairs := []bmf.KerningPair{
		{'T', 'o', -3}, {'L', 'T', -4}, {'A', 'V', -2}, {'T', 'o', 5}, {'f', 'f', 1},
	}
	b := builder.New()
	for _, p := range pairs {
		require.NoError(t, b.AddKerningPair(rune(p.First), rune(p.Second), int(p.Kerning)))
	}
	data, err := b.Bytes()
	require.NoError(t, err)
	f, err := bmf.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, pairs, f.KerningPairs(), "expected on-disk order to be preserved")
	assert.Equal(t, int16(-3), f.Kerning('T', 'o'), "expected first match for duplicated pair")
	for _, p := range pairs[1:3] {
		assert.Equal(t, p.Kerning, f.Kerning(p.First, p.Second))
	}
}

func TestResolveGlyphs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.bitmap")
	defer teardown()
	//
	f, err := bmf.Parse(makeTestFont(t))
	require.NoError(t, err)
	for _, r := range "AB V" {
		rec, g, err := f.ResolveRune(r)
		require.NoError(t, err, "rune %q", r)
		assert.Equal(t, bmf.GlyphByteSize(int(rec.Width), int(rec.Height)), len(g.Bits))
		assert.Equal(t, (int(rec.Width)+7)/8*int(rec.Height), len(g.Bits))
	}
	rec, g, err := f.Resolve('A', true)
	require.NoError(t, err)
	assert.Equal(t, uint8(7), rec.XAdvance)
	assert.Equal(t, int8(2), rec.YOffset)
	assert.Equal(t, glyphA, builder.Rows(g))
	// raw mode uses the code as index
	_, g, err = f.Resolve('B'-' ', false)
	require.NoError(t, err)
	assert.Equal(t, glyphB, builder.Rows(g))
	// undefined slots resolve to empty glyphs
	_, g, err = f.ResolveRune('C')
	require.NoError(t, err)
	assert.True(t, g.Empty())
}

func TestResolveBounds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.bitmap")
	defer teardown()
	//
	f, err := bmf.Parse(makeTestFont(t))
	require.NoError(t, err)
	last := int(f.Header.CharacterCount) - 1
	_, _, err = f.ResolveIndex(last)
	assert.NoError(t, err)
	_, _, err = f.ResolveIndex(last + 1)
	assert.ErrorIs(t, err, bmf.ErrGlyphNotFound)
	_, _, err = f.ResolveRune('W')
	assert.ErrorIs(t, err, bmf.ErrGlyphNotFound)
	_, _, err = f.ResolveRune('\n')
	assert.ErrorIs(t, err, bmf.ErrIndexOutOfRange)
	_, _, err = f.Resolve(-1, false)
	assert.ErrorIs(t, err, bmf.ErrIndexOutOfRange)
	_, err = f.Character(-1)
	assert.ErrorIs(t, err, bmf.ErrIndexOutOfRange)
}

func TestResolveTruncatedCharacterTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.bitmap")
	defer teardown()
	//
	data := makeTestFont(t)
	f, err := bmf.Parse(makeTestFont(t))
	require.NoError(t, err)
	// cut the blob right after the record of 'A'
	cut := f.Header.CharacterRecordOffset('A'-' ') + bmf.CharacterRecordSize
	f, err = bmf.Parse(data[:cut])
	require.NoError(t, err, "opening must not depend on the character table")
	_, err = f.Character('A' - ' ')
	assert.NoError(t, err)
	_, err = f.Character('B' - ' ')
	assert.ErrorIs(t, err, bmf.ErrGlyphNotFound)
	_, _, err = f.ResolveRune('A')
	assert.ErrorIs(t, err, bmf.ErrGlyphDataCorrupt, "bitmap lies beyond the blob")
}

func TestResolveCorruptOffset(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.bitmap")
	defer teardown()
	//
	data := makeTestFont(t)
	f, err := bmf.Parse(data)
	require.NoError(t, err)
	off := f.Header.CharacterRecordOffset('B' - ' ')
	data[off], data[off+1], data[off+2], data[off+3] = 0xff, 0xff, 0xff, 0x7f
	for _, f := range openBoth(t, data) {
		_, _, err = f.ResolveRune('B')
		assert.ErrorIs(t, err, bmf.ErrGlyphDataCorrupt)
		// the font remains usable
		_, g, err := f.ResolveRune('A')
		require.NoError(t, err)
		assert.Equal(t, glyphA, builder.Rows(g))
		assert.Equal(t, int16(-2), f.Kerning('A', 'B'))
	}
}

func TestFileBackedFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.bitmap")
	defer teardown()
	//
	data := makeTestFont(t)
	prefix := []byte("some leading container bytes")
	f, err := bmf.OpenReader(bytes.NewReader(append(prefix, data...)), int64(len(prefix)))
	require.NoError(t, err)
	assert.False(t, f.IsMemoryBacked())
	assert.Equal(t, uint32(3), f.Header.KerningPairs)
	_, a, err := f.ResolveRune('A')
	require.NoError(t, err)
	assert.Equal(t, glyphA, builder.Rows(a))
	keep := a.Clone()
	_, b, err := f.ResolveRune('B')
	require.NoError(t, err)
	assert.Equal(t, glyphB, builder.Rows(b))
	assert.Equal(t, glyphA, builder.Rows(keep), "clone must survive the next resolution")
	assert.Same(t, &b.Bits[0], &a.Bits[0], "expected scratch buffer to be reused")
	require.NoError(t, f.Close())
	_, _, err = f.ResolveRune('A')
	assert.ErrorIs(t, err, bmf.ErrClosed)
}

func TestRecordCache(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.bitmap")
	defer teardown()
	//
	f, err := bmf.Parse(makeTestFont(t), bmf.WithRecordCache())
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		for _, r := range "VAB" {
			rec, _, err := f.ResolveRune(r)
			require.NoError(t, err)
			plain, err := bmf.Parse(makeTestFont(t))
			require.NoError(t, err)
			want, err := plain.Character(int(r - ' '))
			require.NoError(t, err)
			assert.Equal(t, want, rec)
		}
	}
}

func TestCharmap(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.bitmap")
	defer teardown()
	//
	b := builder.New()
	require.NoError(t, b.SetGlyphRune('A', builder.GlyphFromRows(7, glyphA...)))
	require.NoError(t, b.SetGlyphRune(0xe9, builder.GlyphFromRows(7, glyphB...))) // é in Latin-1
	require.NoError(t, b.AddKerningPair(0xe9, 'A', -1))
	data, err := b.Bytes()
	require.NoError(t, err)
	f, err := bmf.Parse(data, bmf.WithCharmap(charmap.ISO8859_1))
	require.NoError(t, err)
	_, g, err := f.ResolveRune('é')
	require.NoError(t, err)
	assert.Equal(t, glyphB, builder.Rows(g))
	_, _, err = f.ResolveRune('€')
	assert.ErrorIs(t, err, bmf.ErrIndexOutOfRange)
	assert.Equal(t, -1, f.KerningRunes('é', 'A'))
}

func TestResolveCode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.bitmap")
	defer teardown()
	//
	b := builder.New()
	require.NoError(t, b.SetGlyphRune('A', builder.GlyphFromRows(7, glyphA...)))
	require.NoError(t, b.SetGlyphRune(0xe9, builder.GlyphFromRows(7, glyphB...)))
	data, err := b.Bytes()
	require.NoError(t, err)
	// codes bypass the charmap: 0xe9 is 'й' in windows-1251
	for _, cm := range []*charmap.Charmap{charmap.ISO8859_1, charmap.Windows1251} {
		f, err := bmf.Parse(data, bmf.WithCharmap(cm))
		require.NoError(t, err)
		_, g, err := f.ResolveCode(0xe9)
		require.NoError(t, err, "charmap %v", cm)
		assert.Equal(t, glyphB, builder.Rows(g))
		_, _, err = f.ResolveCode('\t')
		assert.ErrorIs(t, err, bmf.ErrIndexOutOfRange)
		_, _, err = f.ResolveCode(0xff)
		assert.ErrorIs(t, err, bmf.ErrGlyphNotFound)
	}
	raw, err := bmf.Parse(data, bmf.WithRawCodes())
	require.NoError(t, err)
	index, err := raw.CodeIndex('A' - ' ')
	require.NoError(t, err)
	assert.Equal(t, int('A'-' '), index)
	_, g, err := raw.ResolveCode('A' - ' ')
	require.NoError(t, err)
	assert.Equal(t, glyphA, builder.Rows(g))
}

func TestKerningOfCodeZero(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.bitmap")
	defer teardown()
	//
	b := builder.New()
	require.NoError(t, b.SetGlyph(0, builder.GlyphFromRows(4, "##")))
	require.NoError(t, b.SetGlyph(1, builder.GlyphFromRows(3, "#")))
	require.NoError(t, b.AddKerningPair(0, 1, -2))
	require.NoError(t, b.AddKerningPair(1, 0, -1))
	data, err := b.Bytes()
	require.NoError(t, err)
	f, err := bmf.Parse(data, bmf.WithRawCodes())
	require.NoError(t, err)
	assert.Equal(t, -2, f.KerningRunes(0, 1))
	assert.Equal(t, -1, f.KerningRunes(1, 0))
	assert.Equal(t, 0, f.KerningRunes(0, 0))
}

func openBoth(t *testing.T, data []byte) []*bmf.Font {
	mem, err := bmf.Parse(data)
	require.NoError(t, err)
	file, err := bmf.OpenReader(bytes.NewReader(data), 0)
	require.NoError(t, err)
	return []*bmf.Font{mem, file}
}
