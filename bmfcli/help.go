package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Infof("help %v", topic)
	switch strings.ToLower(strings.TrimSpace(topic)) {
	case "format", "font":
		pterm.Info.Println("Packed bitmap font")
		pterm.Println(`
	All numbers are little-endian.
	+---------------------------------------------------------------+
	| header: max byte width u16 | max height u16 | kerning pairs u32 |
	|         character count u32                                   |
	+---------------------------------------------------------------+
	| kerning pairs: first u16 | second u16 | kerning i16           |
	+---------------------------------------------------------------+
	| characters: offset u32 | w u8 | h u8 | x-off i8 | y-off i8 | advance u8 |
	+---------------------------------------------------------------+
	| glyph bitmaps, 1 bit per pixel, rows padded to bytes          |
	+---------------------------------------------------------------+
	Character records are indexed from ' ' in ASCII mode.
	`)
	case "kerning", "kern", "pairs":
		pterm.Info.Println("Kerning")
		pterm.Println(`
	kern AV     shows the kerning applied between 'A' and 'V'
	pairs       lists the kerning table
	pairs A     lists the kerning pairs starting with 'A'
	The first pair in the table wins; later duplicates are marked 'shadowed'.
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	info            font header and settings
	glyph <c|#n>    glyph metrics and bitmap for a character or a charset index
	kern <ab>       kerning between two characters
	pairs [<c>]     kerning table
	coverage        characters with glyphs
	measure <text>  width of text in pixels
	render <text>   render text
	help [format|kerning]
	quit
	`)
	}
}
