package main

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/bitfont/bmf"
	"github.com/npillmayer/bitfont/bmflayout"
	"github.com/npillmayer/bitfont/bmfquery"
	"github.com/npillmayer/bitfont/builder"
	"github.com/pterm/pterm"
)

func infoOp(intp *Intp, op *Op) (error, bool) {
	info := bmfquery.HeaderInfo(intp.font)
	data := [][]string{
		{"Property", "Value"},
		{"max byte width", strconv.Itoa(info.MaxByteWidth)},
		{"max height", strconv.Itoa(info.MaxHeight)},
		{"characters", strconv.Itoa(info.CharacterCount)},
		{"kerning pairs", strconv.Itoa(info.KerningPairs)},
		{"space size", strconv.Itoa(info.SpaceSize)},
		{"letter spacing", strconv.Itoa(info.LetterSpacing)},
		{"glyph data at", strconv.FormatInt(info.GlyphDataOffset, 10)},
		{"memory-backed", strconv.FormatBool(info.MemoryBacked)},
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

// glyphOp shows a glyph. The argument is a character, or '#' followed by a
// charset index.
func glyphOp(intp *Intp, op *Op) (error, bool) {
	index, err := intp.charsetIndex(op.arg)
	if err != nil {
		return err, false
	}
	rec, g, err := intp.font.ResolveIndex(index)
	if err != nil {
		return err, false
	}
	pterm.Printf("glyph #%d: %s\n", index, rec)
	for _, row := range builder.Rows(g) {
		pterm.Println("  " + row)
	}
	return nil, false
}

func (intp *Intp) charsetIndex(arg string) (int, error) {
	arg = strings.TrimSpace(arg)
	if len(arg) > 1 && arg[0] == '#' {
		return strconv.Atoi(arg[1:])
	}
	r, size := utf8.DecodeRuneInString(arg)
	if size == 0 || size != len(arg) {
		return 0, errors.New("expected a single character or #index")
	}
	return intp.font.CharsetIndex(r, intp.font.IsASCII())
}

func kernOp(intp *Intp, op *Op) (error, bool) {
	runes := []rune(strings.TrimSpace(op.arg))
	if len(runes) != 2 {
		return errors.New("kern needs a pair of characters, e.g. 'kern AV'"), false
	}
	k := intp.font.KerningRunes(runes[0], runes[1])
	pterm.Printf("kerning(%q, %q) = %d\n", runes[0], runes[1], k)
	return nil, false
}

// pairsOp lists the kerning table, or the pairs for a first character.
func pairsOp(intp *Intp, op *Op) (error, bool) {
	entries := bmfquery.KerningTable(intp.font)
	if arg := strings.TrimSpace(op.arg); arg != "" {
		r, _ := utf8.DecodeRuneInString(arg)
		code, ok := intp.font.CharCode(r)
		if !ok {
			return fmt.Errorf("character %q has no code in font", r), false
		}
		filtered := entries[:0]
		for _, e := range entries {
			if e.First == code {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}
	pterm.Printf("%d kerning pairs\n", len(entries))
	if len(entries) == 0 {
		return nil, false
	}
	data := [][]string{{"First", "Second", "Kerning", "Note"}}
	for _, e := range entries {
		note := ""
		if e.Shadowed {
			note = "shadowed"
		}
		data = append(data, []string{codeString(e.First), codeString(e.Second),
			strconv.Itoa(int(e.Kerning)), note})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

func codeString(c uint16) string {
	if c >= ' ' && c < 0x7f {
		return fmt.Sprintf("%q", rune(c))
	}
	return fmt.Sprintf("0x%02x", c)
}

func coverageOp(intp *Intp, op *Op) (error, bool) {
	covered, corrupt := bmfquery.Coverage(intp.font)
	pterm.Printf("%d of %d glyphs have pixels\n", covered.Count(), intp.font.Header.CharacterCount)
	if intp.font.IsASCII() {
		pterm.Printf("covered: %s\n", string(bmfquery.CoveredRunes(intp.font)))
	}
	if corrupt.Count() > 0 {
		pterm.Error.Printf("corrupt glyph data at indices %v\n", corrupt)
	}
	return nil, false
}

func measureOp(intp *Intp, op *Op) (error, bool) {
	w, err := intp.layout.Measure(op.arg)
	if err != nil {
		return err, false
	}
	pterm.Printf("width(%q) = %d\n", op.arg, w)
	return nil, false
}

// renderOp renders text onto an alpha image and prints it as ASCII art.
func renderOp(intp *Intp, op *Op) (error, bool) {
	rows, err := renderRows(intp.font, op.arg)
	if err != nil {
		return err, false
	}
	for _, row := range rows {
		pterm.Println(row)
	}
	return nil, false
}

func renderRows(f *bmf.Font, text string) ([]string, error) {
	l := bmflayout.New(f)
	w, err := l.Measure(text)
	if err != nil {
		return nil, err
	}
	img := image.NewAlpha(image.Rect(0, 0, max(w, 1), int(f.Header.MaxHeight)))
	if err := l.Render(text, bmflayout.NewCanvas(img), image.Point{}); err != nil {
		return nil, err
	}
	b := img.Bounds()
	rows := make([]string, 0, b.Dy())
	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y++ {
		sb.Reset()
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.AlphaAt(x, y).A > 0 {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		rows = append(rows, sb.String())
	}
	return rows, nil
}
