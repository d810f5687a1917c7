package builder

import (
	"fmt"

	"github.com/npillmayer/bitfont/bmf"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// RasterOptions controls rasterization of OpenType fonts.
// Zero values select defaults.
type RasterOptions struct {
	Size      float64 // font size in points, default 12
	DPI       float64 // default 72, i.e. 1pt = 1px
	First     rune    // first rune to rasterize, default ' '
	Last      rune    // last rune to rasterize, default '~'
	Threshold uint8   // alpha above which a pixel is set, default 0x7f
	Kerning   bool    // extract kerning pairs from the font
	Hinting   font.Hinting
}

func (o RasterOptions) withDefaults() RasterOptions {
	if o.Size <= 0 {
		o.Size = 12
	}
	if o.DPI <= 0 {
		o.DPI = 72
	}
	if o.First < bmf.FirstASCIICode {
		o.First = bmf.FirstASCIICode
	}
	if o.Last < o.First {
		o.Last = '~'
	}
	if o.Threshold == 0 {
		o.Threshold = 0x7f
	}
	return o
}

// FromOpenType rasterizes the runes First…Last of an OpenType font (TTF or OTF)
// and returns a builder holding the resulting bitmap glyphs, indexed from ' '.
// Runes missing from the font are left undefined, i.e. they will have empty
// glyphs.
func FromOpenType(data []byte, opts RasterOptions) (*Builder, error) {
	opts = opts.withDefaults()
	otf, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("cannot parse OpenType font: %w", err)
	}
	face, err := opentype.NewFace(otf, &opentype.FaceOptions{
		Size:    opts.Size,
		DPI:     opts.DPI,
		Hinting: opts.Hinting,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot create face: %w", err)
	}
	defer face.Close()
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	b := New()
	b.SetCellSize(0, ascent+metrics.Descent.Ceil())
	// the pen is placed at the baseline, so y offsets count from the cell top
	dot := fixed.P(0, ascent)
	for r := opts.First; r <= opts.Last; r++ {
		dr, mask, maskp, advance, ok := face.Glyph(dot, r)
		if !ok {
			tracer().Debugf("font has no glyph for %#U", r)
			continue
		}
		g := GlyphFromMask(mask, dr.Sub(dr.Min).Add(maskp), opts.Threshold)
		g.XOffset = dr.Min.X
		g.YOffset = dr.Min.Y
		g.XAdvance = advance.Round()
		if err := b.SetGlyphRune(r, g); err != nil {
			return nil, fmt.Errorf("rune %#U: %w", r, err)
		}
	}
	if opts.Kerning {
		for r1 := opts.First; r1 <= opts.Last; r1++ {
			for r2 := opts.First; r2 <= opts.Last; r2++ {
				if k := face.Kern(r1, r2).Round(); k != 0 {
					if err := b.AddKerningPair(r1, r2, k); err != nil {
						return nil, err
					}
				}
			}
		}
	}
	tracer().Infof("rasterized %d glyphs at %.1fpt, %d kerning pairs", b.GlyphCount(),
		opts.Size, len(b.kerning))
	return b, nil
}
