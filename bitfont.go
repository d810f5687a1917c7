/*
Package bitfont is for packed bitmap fonts, as used on small displays.

A packed bitmap font is a single binary blob: a header, a kerning table, a
table of character records, and 1-bit glyph bitmaps. Sub-packages handle
the details:

▪︎ bmf parses fonts and resolves characters to glyphs and kerning.

▪︎ bmflayout measures, renders and erases single lines of text.

▪︎ bmfface adapts fonts to golang.org/x/image/font.Face.

▪︎ bmfquery offers informational queries on fonts.

▪︎ builder encodes fonts and rasterizes OpenType fonts into packed ones.

This package offers loading of font files and a registry for loaded fonts.

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package bitfont

import (
	"fmt"

	"github.com/npillmayer/bitfont/bmf"
	"github.com/npillmayer/bitfont/internal/fontload"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'bitfont'
func tracer() tracing.Trace {
	return tracing.Select("bitfont")
}

// FromBinary parses a packed bitmap font from memory.
// data must not change while the font is in use.
func FromBinary(data []byte, opts ...bmf.Option) (*bmf.Font, error) {
	return bmf.Parse(data, opts...)
}

// ReadFont reads a font file into memory and parses it.
func ReadFont(path string, opts ...bmf.Option) (*bmf.Font, error) {
	data, err := fontload.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := bmf.Parse(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", path, err)
	}
	return f, nil
}

// LoadFont opens a font file for file-backed access. Only the header and the
// kerning table are read in advance; character records and glyphs are read on
// demand. Closing the font closes the file.
func LoadFont(path string, opts ...bmf.Option) (*bmf.Font, error) {
	file, err := fontload.OpenFile(path)
	if err != nil {
		return nil, err
	}
	f, err := bmf.OpenReader(file, 0, opts...)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("font %s: %w", path, err)
	}
	tracer().Debugf("opened font %s, %s", path, f.Header)
	return f, nil
}
