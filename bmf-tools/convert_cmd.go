package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/bitfont/builder"
	"github.com/npillmayer/bitfont/internal/fontload"
	"github.com/thatisuday/commando"
)

func runConvertCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	otfPath := requiredArg(args, "otf")
	outPath := requiredArg(args, "output")
	otf, err := fontload.LoadOpenTypeFont(otfPath)
	if err != nil {
		fatalf("cannot load OpenType font %s: %v", otfPath, err)
	}
	threshold := mustFlagInt(flags["threshold"], "threshold")
	if threshold < 1 || threshold > 255 {
		fatalf("invalid --threshold flag: %d", threshold)
	}
	b, err := builder.FromOpenType(otf.Binary, builder.RasterOptions{
		Size:      float64(mustFlagInt(flags["size"], "size")),
		DPI:       72,
		First:     rune(mustFlagInt(flags["first"], "first")),
		Last:      rune(mustFlagInt(flags["last"], "last")),
		Threshold: uint8(threshold),
		Kerning:   mustFlagBool(flags["kerning"], "kerning"),
	})
	if err != nil {
		fatalf("cannot rasterize %s: %v", otf.Fontname, err)
	}
	out, err := os.Create(outPath)
	if err != nil {
		fatalf("cannot create output file: %v", err)
	}
	n, err := b.WriteTo(out)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		fatalf("cannot write %s: %v", outPath, err)
	}
	fmt.Printf("converted %s: %d glyphs, %s, %d bytes\n", otf.Fontname, b.GlyphCount(), b.Header(), n)
}
