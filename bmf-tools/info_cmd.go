package main

import (
	"fmt"

	"github.com/npillmayer/bitfont/bmfquery"
	"github.com/npillmayer/bitfont/builder"
	"github.com/thatisuday/commando"
)

func runInfoCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	fontPath := requiredArg(args, "font")
	f := mustLoadFont(fontPath, flags)
	defer f.Close()

	info := bmfquery.HeaderInfo(f)
	fmt.Printf("Path: %s\n", fontPath)
	fmt.Printf("Cell: %d x %d pixels\n", info.MaxByteWidth, info.MaxHeight)
	fmt.Printf("Characters: %d\n", info.CharacterCount)
	fmt.Printf("Kerning pairs: %d\n", info.KerningPairs)
	fmt.Printf("Space size: %d, letter spacing: %d\n", info.SpaceSize, info.LetterSpacing)
	fmt.Printf("Glyph data at: %d\n", info.GlyphDataOffset)

	covered, corrupt := bmfquery.Coverage(f)
	fmt.Printf("Issues: covered=%d corrupt=%d shadowed-pairs=%d\n", covered.Count(),
		corrupt.Count(), len(bmfquery.ShadowedKerningPairs(f)))
	if mustFlagBool(flags["coverage"], "coverage") {
		fmt.Printf("Coverage: %s\n", string(bmfquery.CoveredRunes(f)))
	}
	if mustFlagBool(flags["pairs"], "pairs") {
		for _, e := range bmfquery.KerningTable(f) {
			note := ""
			if e.Shadowed {
				note = " (shadowed)"
			}
			fmt.Printf("kern %q %q = %d%s\n", rune(e.First), rune(e.Second), e.Kerning, note)
		}
	}
}

func runGlyphCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	fontPath := requiredArg(args, "font")
	chars := requiredArg(args, "chars")
	f := mustLoadFont(fontPath, flags)
	defer f.Close()

	for _, r := range chars {
		rec, g, err := f.ResolveRune(r)
		if err != nil {
			fmt.Printf("%q: %v\n", r, err)
			continue
		}
		fmt.Printf("%q: %s\n", r, rec)
		for _, row := range builder.Rows(g) {
			fmt.Printf("  %s\n", row)
		}
	}
}
