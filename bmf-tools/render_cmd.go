package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/bitfont/bmf"
	"github.com/npillmayer/bitfont/bmflayout"
	"github.com/thatisuday/commando"
	"golang.org/x/image/draw"
)

func runRenderCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	fontPath := requiredArg(args, "font")
	text := strings.ReplaceAll(requiredArg(args, "text"), ",", " ")
	f := mustLoadFont(fontPath, flags)
	defer f.Close()

	opts := renderOptions{
		scale:  mustFlagInt(flags["scale"], "scale"),
		margin: mustFlagInt(flags["margin"], "margin"),
		invert: mustFlagBool(flags["invert"], "invert"),
	}
	img, err := renderText(f, text, opts)
	if err != nil {
		fatalf("cannot render %q: %v", text, err)
	}
	outPath := mustFlagString(flags["output"], "output")
	if err := writePNG(img, outPath); err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("wrote %s (%dx%d)\n", outPath, img.Bounds().Dx(), img.Bounds().Dy())
}

type renderOptions struct {
	scale  int
	margin int
	invert bool
}

// renderText renders a line of text to an RGBA image, scaled up with
// nearest-neighbor interpolation to keep pixels crisp.
func renderText(f *bmf.Font, text string, opts renderOptions) (*image.RGBA, error) {
	l := bmflayout.New(f)
	w, err := l.Measure(text)
	if err != nil {
		return nil, err
	}
	m := max(0, opts.margin)
	img := image.NewRGBA(image.Rect(0, 0, w+2*m, int(f.Header.MaxHeight)+2*m))
	canvas := bmflayout.NewCanvas(img)
	canvas.Ink, canvas.Paper = color.Black, color.White
	if opts.invert {
		canvas.Ink, canvas.Paper = color.White, color.Black
	}
	draw.Draw(img, img.Bounds(), image.NewUniform(canvas.Paper), image.Point{}, draw.Src)
	if err := l.Render(text, canvas, image.Pt(m, m)); err != nil {
		return nil, err
	}
	if opts.scale <= 1 {
		return img, nil
	}
	b := img.Bounds()
	scaled := image.NewRGBA(image.Rect(0, 0, b.Dx()*opts.scale, b.Dy()*opts.scale))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, b, draw.Src, nil)
	return scaled, nil
}

func writePNG(img image.Image, outPath string) error {
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create output directory: %w", err)
		}
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("cannot create output file: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("cannot encode png: %w", err)
	}
	return nil
}
