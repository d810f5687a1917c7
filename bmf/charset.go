package bmf

import "math"

// CharsetIndex maps a character code to a charset index. If isASCII is set,
// code is translated with the font's charmap (if any) and mapped from ' ',
// otherwise it is used as the index.
func (f *Font) CharsetIndex(code rune, isASCII bool) (int, error) {
	if !isASCII {
		if code < 0 {
			return 0, fontError(ErrIndexOutOfRange, "charset", -1, "invalid code %d", code)
		}
		return int(code), nil
	}
	c, ok := f.translate(code)
	if !ok {
		return 0, fontError(ErrIndexOutOfRange, "charset", -1, "code %#U not in charmap", code)
	}
	if c < FirstASCIICode {
		return 0, fontError(ErrIndexOutOfRange, "charset", -1, "code %#U below printable range", code)
	}
	return int(c - FirstASCIICode), nil
}

// CodeIndex maps a code of the font's own charset to a charset index. In ASCII
// mode the index is counted from ' ', otherwise the code is the index.
func (f *Font) CodeIndex(code uint16) (int, error) {
	if f.rawCodes {
		return int(code), nil
	}
	if code < FirstASCIICode {
		return 0, fontError(ErrIndexOutOfRange, "charset", -1, "code %#02x below printable range", code)
	}
	return int(code - FirstASCIICode), nil
}

// translate applies the font's charmap, if any.
func (f *Font) translate(code rune) (rune, bool) {
	if f.charmap == nil || code < FirstASCIICode {
		return code, true
	}
	b, ok := f.charmap.EncodeRune(code)
	if !ok {
		return 0, false
	}
	return rune(b), true
}

// CharCode returns the code a rune is known by in the font's tables, i.e. the
// code used for kerning pairs. In ASCII mode with a charmap this is the rune's
// 8-bit code. Runes without a 16-bit code yield false.
func (f *Font) CharCode(r rune) (uint16, bool) {
	if !f.rawCodes {
		var ok bool
		if r, ok = f.translate(r); !ok {
			return 0, false
		}
	}
	if r < 0 || r > math.MaxUint16 {
		return 0, false
	}
	return uint16(r), true
}
