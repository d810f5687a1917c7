package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/bitfont"
	"github.com/npillmayer/bitfont/bmf"
	"github.com/npillmayer/bitfont/bmflayout"
	"github.com/npillmayer/bitfont/internal/fontload"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'bitfont'
func tracer() tracing.Trace {
	return tracing.Select("bitfont")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":   "go",
		"trace.bitfont":     "Info",
		"trace.font.bitmap": "Error",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "", "Font file to load")
	charset := flag.String("charset", "", "8-bit charset of the font, e.g. ISO-8859-1")
	inMemory := flag.Bool("mem", false, "Read the font into memory")
	raw := flag.Bool("raw", false, "Use character codes as charset indices")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError)          // will set the correct level later
	pterm.Info.Println("Welcome to the bitmap font CLI") // colored welcome message
	//
	// set up REPL
	repl, err := readline.New("bmf > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{repl: repl}
	//
	// load font to use
	opts, err := fontOptions(*charset, *raw)
	if err == nil {
		err = intp.loadFont(*fontname, *inMemory, opts)
	}
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(4)
	}
	defer intp.font.Close()
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	switch *tlevel {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	font   *bmf.Font
	layout *bmflayout.Layout
	name   string
	repl   *readline.Instance
}

func (intp *Intp) String() string {
	if intp == nil || intp.font == nil {
		return "()"
	}
	return fmt.Sprintf("( font=%s %s )", intp.name, intp.font.Header)
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if intp.execute(parseCommand(line)) {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Op is a parsed command line.
type Op struct {
	code int
	arg  string
}

const (
	QUIT int = iota
	HELP
	INFO
	GLYPH
	KERN
	PAIRS
	COVERAGE
	MEASURE
	RENDER
)

var opMap = map[string]int{
	"quit":     QUIT,
	"help":     HELP,
	"info":     INFO,
	"glyph":    GLYPH,
	"kern":     KERN,
	"pairs":    PAIRS,
	"coverage": COVERAGE,
	"measure":  MEASURE,
	"render":   RENDER,
}

var commandFn = map[int]func(*Intp, *Op) (error, bool){
	QUIT:     quitOp,
	HELP:     helpOp,
	INFO:     infoOp,
	GLYPH:    glyphOp,
	KERN:     kernOp,
	PAIRS:    pairsOp,
	COVERAGE: coverageOp,
	MEASURE:  measureOp,
	RENDER:   renderOp,
}

// parseCommand splits a line into a command word and its argument, which is
// the rest of the line. Unknown commands are turned into a request for help.
func parseCommand(line string) *Op {
	word, arg, _ := strings.Cut(strings.TrimLeft(line, " \t"), " ")
	code, ok := opMap[strings.ToLower(word)]
	if !ok {
		tracer().Infof("unknown command %q", word)
		return &Op{code: HELP}
	}
	tracer().Debugf("parsed command: %s %q", word, arg)
	return &Op{code: code, arg: arg}
}

// execute runs a command and reports its error, if any. It returns true if
// the REPL should stop.
func (intp *Intp) execute(op *Op) bool {
	f, ok := commandFn[op.code]
	if !ok {
		pterm.Error.Printf("unknown command code: %d\n", op.code)
		return false
	}
	err, stop := f(intp, op)
	if err != nil {
		pterm.Error.Println(err)
	}
	return stop
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	return nil, true
}

// --- Font Loading -----------------------------------------------------

var errNoFont = errors.New("no font file given, use flag -font")

func (intp *Intp) loadFont(path string, inMemory bool, opts []bmf.Option) (err error) {
	if path == "" {
		return errNoFont
	}
	if inMemory {
		intp.font, err = bitfont.ReadFont(path, opts...)
	} else {
		intp.font, err = bitfont.LoadFont(path, opts...)
	}
	if err != nil {
		return err
	}
	intp.name = bitfont.NormalizeFontname(path)
	intp.layout = bmflayout.New(intp.font)
	tracer().Infof("loaded font %s, memory-backed=%v", intp.name, intp.font.IsMemoryBacked())
	return nil
}

// fontOptions translates command line flags to font options.
func fontOptions(charset string, raw bool) ([]bmf.Option, error) {
	var opts []bmf.Option
	if raw {
		opts = append(opts, bmf.WithRawCodes())
	}
	if charset != "" {
		cm, err := fontload.LookupCharmap(charset)
		if err != nil {
			return nil, err
		}
		opts = append(opts, bmf.WithCharmap(cm))
	}
	return append(opts, bmf.WithRecordCache(), bmf.WithKerningIndex()), nil
}
