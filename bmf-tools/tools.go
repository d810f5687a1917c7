package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/bitfont"
	"github.com/npillmayer/bitfont/bmf"
	"github.com/npillmayer/bitfont/internal/fontload"
	"github.com/thatisuday/commando"
)

func main() {
	commando.
		SetExecutableName("bmf-tools").
		SetVersion("v0.0.1").
		SetDescription("CLI for inspecting, rendering and creating packed bitmap fonts.")

	commando.
		Register("info").
		SetDescription("Print header information, coverage and kerning table of a packed bitmap font.").
		SetShortDescription("font diagnostics").
		AddArgument("font", "packed bitmap font file path", "").
		AddFlag("pairs,p", "list the kerning table", commando.Bool, nil).
		AddFlag("coverage,c", "list characters with glyphs", commando.Bool, nil).
		SetAction(runInfoCommand)

	commando.
		Register("glyph").
		SetDescription("Print the metrics and bitmap of glyphs of a packed bitmap font.").
		SetShortDescription("show glyphs").
		AddArgument("font", "packed bitmap font file path", "").
		AddArgument("chars", "characters to show", "").
		AddFlag("charset,C", "8-bit charset of the font (IANA name, e.g. ISO-8859-1)", commando.String, "-").
		SetAction(runGlyphCommand)

	commando.
		Register("render").
		SetDescription("Render a line of text with a packed bitmap font to a PNG image.").
		SetShortDescription("text to image").
		AddArgument("font", "packed bitmap font file path", "").
		AddArgument("text...", "text to render (variadic argument parts joined by spaces)", "").
		AddFlag("charset,C", "8-bit charset of the font (IANA name, e.g. ISO-8859-1)", commando.String, "-").
		AddFlag("output,o", "output PNG file", commando.String, "bmf-tools-render.png").
		AddFlag("scale,s", "integer scale factor of the image", commando.Int, 1).
		AddFlag("margin,m", "margin around the text in pixels", commando.Int, 2).
		AddFlag("invert,i", "render white text on black", commando.Bool, nil).
		SetAction(runRenderCommand)

	commando.
		Register("convert").
		SetDescription("Rasterize an OpenType font (TTF/OTF) into a packed bitmap font.").
		SetShortDescription("OpenType to packed bitmap").
		AddArgument("otf", "OpenType font file path", "").
		AddArgument("output", "packed bitmap font output path", "").
		AddFlag("size,s", "font size in pixels", commando.Int, 16).
		AddFlag("first", "first character code to rasterize", commando.Int, 0x20).
		AddFlag("last", "last character code to rasterize", commando.Int, 0x7e).
		AddFlag("threshold,t", "alpha threshold for set pixels (1-255)", commando.Int, 0x7f).
		AddFlag("kerning,k", "extract kerning pairs", commando.Bool, nil).
		SetAction(runConvertCommand)

	commando.Parse(nil)
}

func mustLoadFont(path string, flags map[string]commando.FlagValue) *bmf.Font {
	opts := []bmf.Option{bmf.WithKerningIndex()}
	if flag, ok := flags["charset"]; ok {
		if name := mustFlagString(flag, "charset"); name != "-" && name != "" {
			cm, err := fontload.LookupCharmap(name)
			if err != nil {
				fatalf("%v", err)
			}
			opts = append(opts, bmf.WithCharmap(cm))
		}
	}
	f, err := bitfont.ReadFont(path, opts...)
	if err != nil {
		fatalf("cannot load font %s: %v", path, err)
	}
	return f
}

func requiredArg(args map[string]commando.ArgValue, name string) string {
	v := strings.TrimSpace(args[name].Value)
	if v == "" {
		fatalf("%s is required", name)
	}
	return v
}

func mustFlagInt(flag commando.FlagValue, name string) int {
	n, err := flag.GetInt()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return n
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func mustFlagString(flag commando.FlagValue, name string) string {
	s, err := flag.GetString()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return s
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "bmf-tools: "+format+"\n", args...)
	os.Exit(1)
}
