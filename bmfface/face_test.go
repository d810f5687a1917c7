package bmfface

import (
	"image"
	"testing"

	"github.com/npillmayer/bitfont/bmf"
	"github.com/npillmayer/bitfont/bmflayout"
	"github.com/npillmayer/bitfont/builder"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

func testFont(t *testing.T) *bmf.Font {
	b := builder.New()
	b.SetCellSize(8, 9)
	a := builder.GlyphFromRows(6, ".##.", "#..#", "####", "#..#", "#..#")
	a.YOffset = 2
	require.NoError(t, b.SetGlyphRune('A', a))
	v := builder.GlyphFromRows(6, "#...#", "#...#", ".#.#.", "..#..")
	v.XOffset, v.YOffset = -1, 3
	require.NoError(t, b.SetGlyphRune('V', v))
	require.NoError(t, b.AddKerningPair('A', 'V', -2))
	data, err := b.Bytes()
	require.NoError(t, err)
	f, err := bmf.Parse(data)
	require.NoError(t, err)
	return f
}

func TestFaceMetrics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.bitmap")
	defer teardown()
	//
	face := New(testFont(t))
	m := face.Metrics()
	assert.Equal(t, fixed.I(9), m.Ascent)
	assert.Equal(t, fixed.I(9+1), m.Height)
	adv, ok := face.GlyphAdvance('A')
	assert.True(t, ok)
	assert.Equal(t, fixed.I(6), adv)
	adv, ok = face.GlyphAdvance(' ')
	assert.True(t, ok)
	assert.Equal(t, fixed.I(2), adv)
	_, ok = face.GlyphAdvance('\x01')
	assert.False(t, ok)
	bounds, _, ok := face.GlyphBounds('V')
	assert.True(t, ok)
	assert.Equal(t, fixed.R(-1, -9+3, -1+5, -9+3+4), bounds)
	assert.Equal(t, fixed.I(-2), face.Kern('A', 'V'))
	assert.Equal(t, fixed.Int26_6(0), face.Kern('V', 'A'))
}

func TestFaceGlyph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.bitmap")
	defer teardown()
	//
	face := New(testFont(t))
	dr, mask, maskp, adv, ok := face.Glyph(fixed.P(10, 20), 'A')
	require.True(t, ok)
	assert.Equal(t, image.Rect(10, 20-9+2, 14, 20-9+2+5), dr)
	assert.Equal(t, image.Point{}, maskp)
	assert.Equal(t, fixed.I(6), adv)
	_, _, _, a := mask.At(1, 0).RGBA()
	assert.Equal(t, uint32(0xffff), a)
	_, _, _, a = mask.At(0, 0).RGBA()
	assert.Equal(t, uint32(0), a)
	_, _, _, _, ok = face.Glyph(fixed.P(0, 0), 'Z')
	assert.False(t, ok)
}

func TestDrawerMatchesLayout(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.bitmap")
	defer teardown()
	//
	f := testFont(t)
	const text = "AV AVA"
	drawn := image.NewAlpha(image.Rect(0, 0, 48, 12))
	d := font.Drawer{
		Dst:  drawn,
		Src:  image.Opaque,
		Face: New(f),
		Dot:  fixed.P(2, 1+9),
	}
	d.DrawString(text)
	rendered := image.NewAlpha(drawn.Bounds())
	l := bmflayout.New(f)
	require.NoError(t, l.Render(text, bmflayout.NewCanvas(rendered), image.Pt(2, 1)))
	assert.Equal(t, rendered.Pix, drawn.Pix)
	w, err := l.Measure(text)
	require.NoError(t, err)
	assert.Equal(t, fixed.I(2+w), d.Dot.X)
}
