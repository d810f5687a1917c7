package builder

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/npillmayer/bitfont/bmf"
)

// Glyph is a glyph to be packed into a font.
// Bits holds ceil(Width/8) × Height bytes, rows padded to whole bytes, most
// significant bit leftmost.
type Glyph struct {
	Width    int
	Height   int
	XOffset  int
	YOffset  int
	XAdvance int
	Bits     []byte
}

// Stride is the number of bytes per bitmap row.
func (g Glyph) Stride() int {
	return (g.Width + 7) / 8
}

func (g Glyph) set(x, y int) {
	g.Bits[y*g.Stride()+x/8] |= 0x80 >> (x % 8)
}

func (g Glyph) check() error {
	switch {
	case g.Width < 0 || g.Width > math.MaxUint8:
		return fmt.Errorf("glyph width %d out of range", g.Width)
	case g.Height < 0 || g.Height > math.MaxUint8:
		return fmt.Errorf("glyph height %d out of range", g.Height)
	case g.XOffset < math.MinInt8 || g.XOffset > math.MaxInt8:
		return fmt.Errorf("glyph x offset %d out of range", g.XOffset)
	case g.YOffset < math.MinInt8 || g.YOffset > math.MaxInt8:
		return fmt.Errorf("glyph y offset %d out of range", g.YOffset)
	case g.XAdvance < 0 || g.XAdvance > math.MaxUint8:
		return fmt.Errorf("glyph advance %d out of range", g.XAdvance)
	case len(g.Bits) != bmf.GlyphByteSize(g.Width, g.Height):
		return fmt.Errorf("glyph of %dx%d pixels needs %d bytes, has %d", g.Width, g.Height,
			bmf.GlyphByteSize(g.Width, g.Height), len(g.Bits))
	}
	return nil
}

// GlyphFromRows creates a glyph from rows of text, where '#' and 'X' denote
// set pixels and any other character an unset pixel. The glyph is as wide as
// its longest row.
//
//	g := GlyphFromRows(4,
//		".#.",
//		"#.#",
//		"###",
//		"#.#")
func GlyphFromRows(xadvance int, rows ...string) Glyph {
	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	g := Glyph{Width: width, Height: len(rows), XAdvance: xadvance}
	g.Bits = make([]byte, bmf.GlyphByteSize(g.Width, g.Height))
	for y, row := range rows {
		for x, c := range []byte(row) {
			if c == '#' || c == 'X' {
				g.set(x, y)
			}
		}
	}
	return g
}

// GlyphFromMask creates a glyph from the alpha channel of r within mask.
// Pixels with an alpha above threshold are set.
func GlyphFromMask(mask image.Image, r image.Rectangle, threshold uint8) Glyph {
	r = r.Canon()
	g := Glyph{Width: r.Dx(), Height: r.Dy()}
	g.Bits = make([]byte, bmf.GlyphByteSize(g.Width, g.Height))
	limit := uint32(threshold) * 0x101
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			_, _, _, a := mask.At(r.Min.X+x, r.Min.Y+y).RGBA()
			if a > limit {
				g.set(x, y)
			}
		}
	}
	return g
}

// Rows renders a glyph as rows of text, the inverse of GlyphFromRows.
func Rows(g bmf.Glyph) []string {
	rows := make([]string, g.Height)
	var sb strings.Builder
	for y := 0; y < g.Height; y++ {
		sb.Reset()
		for x := 0; x < g.Width; x++ {
			if g.Pixel(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		rows[y] = sb.String()
	}
	return rows
}
