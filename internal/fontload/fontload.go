/*
Package fontload locates and reads font files for the tools of this module.
Packed bitmap fonts are either read into memory or opened for file-backed
access. OpenType fonts are read for rasterization.
*/
package fontload

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// tracer writes to trace with key 'bitfont'
func tracer() tracing.Trace {
	return tracing.Select("bitfont")
}

// Extension is the file extension of packed bitmap font files.
const Extension = ".bmf"

// Find locates a font file. If name is not an existing file, it is searched for
// in dirs, with and without Extension appended.
func Find(name string, dirs ...string) (string, error) {
	if isFile(name) {
		return name, nil
	}
	candidates := []string{name}
	if filepath.Ext(name) == "" {
		candidates = append(candidates, name+Extension)
	}
	for _, dir := range dirs {
		for _, c := range candidates {
			p := filepath.Join(dir, c)
			if isFile(p) {
				tracer().Debugf("found font %s as %s", name, p)
				return p, nil
			}
		}
	}
	return "", fmt.Errorf("font %q: %w", name, fs.ErrNotExist)
}

func isFile(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && fi.Mode().IsRegular()
}

// ReadFile reads a font file into memory.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("read %d bytes of font %s", len(data), path)
	return data, nil
}

// OpenFile opens a font file for random access. The file is to be closed by
// the caller, usually by closing the font opened from it.
func OpenFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if fi, err := f.Stat(); err != nil || fi.IsDir() {
		f.Close()
		if err == nil {
			err = errors.New("is a directory")
		}
		return nil, fmt.Errorf("font file %s: %w", path, err)
	}
	return f, nil
}

// ScalableFont is a parsed OpenType font with its original bytes.
type ScalableFont struct {
	Fontname string
	Binary   []byte
	SFNT     *sfnt.Font
}

// LoadOpenTypeFont loads an OpenType font (TTF or OTF) from a file.
func LoadOpenTypeFont(path string) (*ScalableFont, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseOpenTypeFont(data)
}

// ParseOpenTypeFont parses an OpenType font (TTF or OTF) from memory.
// Fonts without a full name get their family name as Fontname.
func ParseOpenTypeFont(data []byte) (*ScalableFont, error) {
	f := &ScalableFont{Binary: data}
	var err error
	if f.SFNT, err = sfnt.Parse(data); err != nil {
		return nil, err
	}
	if f.Fontname, err = f.SFNT.Name(nil, sfnt.NameIDFull); err != nil {
		f.Fontname, _ = f.SFNT.Name(nil, sfnt.NameIDFamily)
	}
	tracer().Debugf("parsed OpenType font %q with %d glyphs", f.Fontname, f.SFNT.NumGlyphs())
	return f, nil
}

// LookupCharmap finds an 8-bit charmap by its IANA name, e.g. "ISO-8859-1"
// or "windows-1252".
func LookupCharmap(name string) (*charmap.Charmap, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("charset %q: %w", name, err)
	}
	cm, ok := enc.(*charmap.Charmap)
	if !ok {
		return nil, fmt.Errorf("charset %q is not an 8-bit charset", name)
	}
	return cm, nil
}
