package bmf

import (
	"encoding/binary"
	"fmt"
)

// Sizes of the fixed-size structures of a packed bitmap font, in bytes.
const (
	HeaderSize          = 12
	KerningPairSize     = 6
	CharacterRecordSize = 9
)

// FirstASCIICode is the character code of charset index 0 in ASCII mode.
const FirstASCIICode = ' '

var le = binary.LittleEndian

// FontHeader is the fixed-size header at the data origin of a font.
//
// MaxByteWidth is the width of the widest glyph cell in pixels, rounded up to
// whole bytes. MaxHeight is the height of the highest glyph cell in pixels.
type FontHeader struct {
	MaxByteWidth   uint16
	MaxHeight      uint16
	KerningPairs   uint32
	CharacterCount uint32
}

func (h FontHeader) String() string {
	return fmt.Sprintf("[cell=%dx%d kerning=%d chars=%d]", h.MaxByteWidth, h.MaxHeight,
		h.KerningPairs, h.CharacterCount)
}

// KerningTableSize is the byte length of the kerning table.
func (h FontHeader) KerningTableSize() int64 {
	return int64(h.KerningPairs) * KerningPairSize
}

// CharacterTableOffset is the offset of the first character record.
func (h FontHeader) CharacterTableOffset() int64 {
	return HeaderSize + h.KerningTableSize()
}

// CharacterRecordOffset is the offset of the character record for a charset index.
func (h FontHeader) CharacterRecordOffset(index int) int64 {
	return h.CharacterTableOffset() + int64(index)*CharacterRecordSize
}

// GlyphDataOffset is the offset of the first byte after the character table.
// Glyph bitmaps usually start here.
func (h FontHeader) GlyphDataOffset() int64 {
	return h.CharacterRecordOffset(int(h.CharacterCount))
}

func decodeHeader(b []byte) FontHeader {
	_ = b[HeaderSize-1] // bounds check hint to compiler
	return FontHeader{
		MaxByteWidth:   le.Uint16(b[0:]),
		MaxHeight:      le.Uint16(b[2:]),
		KerningPairs:   le.Uint32(b[4:]),
		CharacterCount: le.Uint32(b[8:]),
	}
}

// AppendHeader appends the binary representation of h to buf.
func AppendHeader(buf []byte, h FontHeader) []byte {
	buf = le.AppendUint16(buf, h.MaxByteWidth)
	buf = le.AppendUint16(buf, h.MaxHeight)
	buf = le.AppendUint32(buf, h.KerningPairs)
	return le.AppendUint32(buf, h.CharacterCount)
}

// KerningPair is an adjustment of the advance between two consecutive
// character codes.
type KerningPair struct {
	First   uint16
	Second  uint16
	Kerning int16
}

func decodeKerningPair(b []byte) KerningPair {
	_ = b[KerningPairSize-1]
	return KerningPair{
		First:   le.Uint16(b[0:]),
		Second:  le.Uint16(b[2:]),
		Kerning: int16(le.Uint16(b[4:])),
	}
}

// AppendKerningPair appends the binary representation of p to buf.
func AppendKerningPair(buf []byte, p KerningPair) []byte {
	buf = le.AppendUint16(buf, p.First)
	buf = le.AppendUint16(buf, p.Second)
	return le.AppendUint16(buf, uint16(p.Kerning))
}

// CharacterRecord holds the metrics of a glyph and the location of its bitmap.
//
// Offset is relative to the data origin. XOffset and YOffset position the
// glyph bitmap relative to the pen position, with YOffset counting downwards
// from the top of the glyph cell.
type CharacterRecord struct {
	Offset   uint32
	Width    uint8
	Height   uint8
	XOffset  int8
	YOffset  int8
	XAdvance uint8
}

func (r CharacterRecord) String() string {
	return fmt.Sprintf("[@%d %dx%d off=(%d,%d) adv=%d]", r.Offset, r.Width, r.Height,
		r.XOffset, r.YOffset, r.XAdvance)
}

// Stride is the number of bytes per bitmap row.
func (r CharacterRecord) Stride() int {
	return (int(r.Width) + 7) / 8
}

// BitmapSize is the number of bytes of the glyph bitmap.
func (r CharacterRecord) BitmapSize() int {
	return GlyphByteSize(int(r.Width), int(r.Height))
}

// GlyphByteSize returns the size of a packed 1-bit bitmap of width × height
// pixels, i.e. ceil(width/8) × height.
func GlyphByteSize(width, height int) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	return (width + 7) / 8 * height
}

func decodeCharacterRecord(b []byte) CharacterRecord {
	_ = b[CharacterRecordSize-1]
	return CharacterRecord{
		Offset:   le.Uint32(b[0:]),
		Width:    b[4],
		Height:   b[5],
		XOffset:  int8(b[6]),
		YOffset:  int8(b[7]),
		XAdvance: b[8],
	}
}

// AppendCharacterRecord appends the binary representation of r to buf.
func AppendCharacterRecord(buf []byte, r CharacterRecord) []byte {
	buf = le.AppendUint32(buf, r.Offset)
	return append(buf, r.Width, r.Height, byte(r.XOffset), byte(r.YOffset), r.XAdvance)
}
