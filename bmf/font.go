package bmf

import (
	"io"

	"github.com/bits-and-blooms/bitset"
	"golang.org/x/text/encoding/charmap"
)

// MaxKerningPairs limits the number of kerning pairs a font header may claim.
// It prevents corrupt headers from triggering excessive allocations for sources
// of unknown size.
const MaxKerningPairs = 1 << 20

// Font is an opened packed bitmap font.
//
// A Font needs ongoing access to its source. For memory-backed fonts the byte
// slice handed to Parse must not change while the font is in use.
type Font struct {
	Header FontHeader // immutable after opening

	src           source
	kerning       []KerningPair    // on-disk order
	kernIndex     map[uint32]int16 // optional, first pair wins
	spaceSize     int
	letterSpacing int
	rawCodes      bool
	charmap       *charmap.Charmap
	records       []CharacterRecord // optional record cache
	cached        *bitset.BitSet    // valid entries of records
	scratch       []byte            // glyph bitmaps of stream-backed fonts
	recbuf        [CharacterRecordSize]byte
}

// Option configures a font when it is opened.
type Option func(*config)

type config struct {
	spaceSize     int // < 0: derive from header
	letterSpacing int // < 0: derive from header
	rawCodes      bool
	charmap       *charmap.Charmap
	cacheRecords  bool
	indexKerning  bool
}

// WithSpaceSize overrides the advance of the space character, which by default
// is a quarter of the header's MaxByteWidth.
func WithSpaceSize(n int) Option {
	return func(c *config) { c.spaceSize = max(0, n) }
}

// WithLetterSpacing overrides the letter spacing, which by default is an eighth
// of the header's MaxHeight.
func WithLetterSpacing(n int) Option {
	return func(c *config) { c.letterSpacing = max(0, n) }
}

// WithRawCodes makes ResolveRune use character codes directly as charset indices,
// instead of mapping them from ASCII.
func WithRawCodes() Option {
	return func(c *config) { c.rawCodes = true }
}

// WithCharmap sets an 8-bit character map. In ASCII mode, runes are translated
// to their 8-bit code with cm before being mapped to a charset index. Kerning
// pairs are then expected to hold 8-bit codes as well.
func WithCharmap(cm *charmap.Charmap) Option {
	return func(c *config) { c.charmap = cm }
}

// WithRecordCache enables caching of character records. As font data is
// immutable, cached records never become stale.
func WithRecordCache() Option {
	return func(c *config) { c.cacheRecords = true }
}

// WithKerningIndex builds an index of the kerning table at load time, making
// kerning lookups O(1). For duplicate pairs the first pair in the table wins,
// as it does for linear lookup.
func WithKerningIndex() Option {
	return func(c *config) { c.indexKerning = true }
}

// Parse opens a font held in memory. Glyph bitmaps returned for this font are
// views into data.
func Parse(data []byte, opts ...Option) (*Font, error) {
	return open(arena(data), opts)
}

// OpenReader opens a font read on demand from r, with the data origin at offset.
// If r implements io.Closer, it is closed by Font.Close.
func OpenReader(r io.ReaderAt, offset int64, opts ...Option) (*Font, error) {
	return open(stream{r: r, base: offset}, opts)
}

func open(src source, opts []Option) (*Font, error) {
	conf := config{spaceSize: -1, letterSpacing: -1}
	for _, opt := range opts {
		opt(&conf)
	}
	f := &Font{src: src, rawCodes: conf.rawCodes, charmap: conf.charmap}
	if err := f.loadHeader(); err != nil {
		return nil, err
	}
	if err := f.loadKerningTable(); err != nil {
		return nil, err
	}
	f.spaceSize = int(f.Header.MaxByteWidth) / 4
	if conf.spaceSize >= 0 {
		f.spaceSize = conf.spaceSize
	}
	f.letterSpacing = int(f.Header.MaxHeight) / 8
	if conf.letterSpacing >= 0 {
		f.letterSpacing = conf.letterSpacing
	}
	if conf.indexKerning {
		f.buildKerningIndex()
	}
	if conf.cacheRecords {
		f.cached = bitset.New(0)
	}
	tracer().Debugf("opened bitmap font %s, space=%d, spacing=%d", f.Header, f.spaceSize, f.letterSpacing)
	return f, nil
}

func (f *Font) loadHeader() error {
	var buf [HeaderSize]byte
	b, err := f.src.fetch(0, buf[:])
	if err != nil {
		return fontError(ErrTruncatedHeader, "header", 0, "need %d bytes: %v", HeaderSize, err)
	}
	f.Header = decodeHeader(b)
	return nil
}

func (f *Font) loadKerningTable() error {
	h := f.Header
	if h.KerningPairs == 0 {
		return nil
	}
	if h.KerningPairs > MaxKerningPairs {
		return fontError(ErrTruncatedKerningTable, "kerning", HeaderSize,
			"kerning pair count %d exceeds limit", h.KerningPairs)
	}
	size := h.KerningTableSize()
	if total := f.src.size(); total >= 0 && size > total-HeaderSize {
		return fontError(ErrTruncatedKerningTable, "kerning", HeaderSize,
			"table of %d bytes exceeds font size %d", size, total)
	}
	b, err := f.src.fetch(HeaderSize, make([]byte, size))
	if err != nil {
		return fontError(ErrTruncatedKerningTable, "kerning", HeaderSize,
			"need %d bytes: %v", size, err)
	}
	f.kerning = make([]KerningPair, h.KerningPairs)
	for i := range f.kerning {
		f.kerning[i] = decodeKerningPair(b[i*KerningPairSize:])
	}
	return nil
}

// Close releases the font's source. The font must not be used afterwards.
func (f *Font) Close() error {
	if f == nil || f.src == nil {
		return nil
	}
	err := f.src.close()
	f.src = nil
	return err
}

// SpaceSize is the advance of the space character.
func (f *Font) SpaceSize() int {
	return f.spaceSize
}

// SetSpaceSize overrides the advance of the space character.
func (f *Font) SetSpaceSize(n int) {
	f.spaceSize = max(0, n)
}

// LetterSpacing is the spacing between lines of text, used by clients stacking
// lines of text.
func (f *Font) LetterSpacing() int {
	return f.letterSpacing
}

// SetLetterSpacing overrides the letter spacing.
func (f *Font) SetLetterSpacing(n int) {
	f.letterSpacing = max(0, n)
}

// IsASCII reports whether ResolveRune maps runes from ASCII.
func (f *Font) IsASCII() bool {
	return !f.rawCodes
}

// IsMemoryBacked reports whether glyph bitmaps are views into an in-memory blob.
func (f *Font) IsMemoryBacked() bool {
	_, ok := f.src.(arena)
	return ok
}
