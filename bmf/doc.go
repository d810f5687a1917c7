/*
Package bmf provides access to packed bitmap fonts.

A packed bitmap font ("bmf") is a small binary blob made for embedded targets.
It consists of four consecutive parts:

▪︎ a fixed-size header with the glyph cell bounds and table sizes,

▪︎ a table of kerning pairs,

▪︎ a table of fixed-size character records, one per charset index,

▪︎ 1-bit-per-pixel glyph bitmaps, referenced by offset from the character records.

All integers are stored little-endian. Offsets are counted from the first byte
of the header, which we call the data origin.

	+----------------------------------------------------------+
	| header: max byte width, max height, #kerning, #characters |  12 bytes
	+----------------------------------------------------------+
	| kerning pair: first u16 | second u16 | kerning i16        |  6 bytes each
	+----------------------------------------------------------+
	| character: offset u32 | w u8 | h u8 | dx i8 | dy i8 | adv u8 |  9 bytes each
	+----------------------------------------------------------+
	| glyph bitmaps, rows padded to whole bytes, MSB leftmost   |
	+----------------------------------------------------------+

A font may either be held in memory (see Parse) or be read on demand from a
random access stream, e.g. a file (see OpenReader). Package bmf will read the
header and the kerning table when opening a font; character records and glyph
bitmaps are fetched lazily for every lookup.

Fonts are not safe for concurrent use. Resolving a glyph may overwrite a scratch
buffer owned by the font, and glyph views returned by a previous resolution are
invalidated. Clients must serialize access or use one font instance per goroutine.
The header and the kerning table are immutable after opening.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package bmf

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'font.bitmap'
func tracer() tracing.Trace {
	return tracing.Select("font.bitmap")
}
