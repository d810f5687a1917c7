package bmf

import "slices"

// Kerning returns the adjustment of the advance between two consecutive
// character codes. If the table holds more than one pair for first and second,
// the first one wins. Returns 0 if there is no matching pair.
func (f *Font) Kerning(first, second uint16) int16 {
	if f.kernIndex != nil {
		return f.kernIndex[kernKey(first, second)]
	}
	for _, p := range f.kerning {
		if p.First == first && p.Second == second {
			return p.Kerning
		}
	}
	return 0
}

// KerningRunes is Kerning for two runes, mapped to character codes with CharCode.
// Runes without a code never kern.
func (f *Font) KerningRunes(r1, r2 rune) int {
	c1, ok1 := f.CharCode(r1)
	c2, ok2 := f.CharCode(r2)
	if !ok1 || !ok2 {
		return 0
	}
	return int(f.Kerning(c1, c2))
}

// KerningPairs returns a copy of the kerning table, in on-disk order.
func (f *Font) KerningPairs() []KerningPair {
	return slices.Clone(f.kerning)
}

func (f *Font) buildKerningIndex() {
	f.kernIndex = make(map[uint32]int16, len(f.kerning))
	for _, p := range f.kerning {
		key := kernKey(p.First, p.Second)
		if _, ok := f.kernIndex[key]; !ok {
			f.kernIndex[key] = p.Kerning
		}
	}
}

func kernKey(first, second uint16) uint32 {
	return uint32(first)<<16 | uint32(second)
}
