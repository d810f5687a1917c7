package bmf

import (
	"errors"
	"fmt"
)

// Errors reported by package bmf. Concrete errors are of type *FontError and wrap
// one of these, so clients may test with errors.Is.
var (
	// ErrTruncatedHeader is returned if a font source ends within the header.
	ErrTruncatedHeader = errors.New("truncated font header")
	// ErrTruncatedKerningTable is returned if a font source ends within the kerning table.
	ErrTruncatedKerningTable = errors.New("truncated kerning table")
	// ErrIndexOutOfRange is returned for character codes which cannot be mapped to
	// a charset index.
	ErrIndexOutOfRange = errors.New("character code not in charset")
	// ErrGlyphNotFound is returned for charset indices beyond the character table.
	ErrGlyphNotFound = errors.New("glyph not found")
	// ErrGlyphDataCorrupt is returned if a character record or glyph bitmap
	// cannot be read completely.
	ErrGlyphDataCorrupt = errors.New("glyph data corrupt")
	// ErrClosed is returned for lookups on a font which has been closed.
	ErrClosed = errors.New("font is closed")
)

// FontError is an error encountered while reading a font.
type FontError struct {
	Section string // part of the font, e.g. "header", "kerning", "glyph"
	Issue   string // human readable description of the issue
	Offset  int64  // byte offset relative to the data origin, or -1 if unknown
	Err     error  // one of the Err… sentinels of this package
}

// Error implements the error interface.
func (e *FontError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("bitmap font %s at offset %d: %s: %v", e.Section, e.Offset, e.Issue, e.Err)
	}
	return fmt.Sprintf("bitmap font %s: %s: %v", e.Section, e.Issue, e.Err)
}

// Unwrap returns the sentinel error, making FontError usable with errors.Is.
func (e *FontError) Unwrap() error {
	return e.Err
}

func fontError(sentinel error, section string, offset int64, format string, args ...any) error {
	err := &FontError{
		Section: section,
		Issue:   fmt.Sprintf(format, args...),
		Offset:  offset,
		Err:     sentinel,
	}
	tracer().Debugf(err.Error())
	return err
}
