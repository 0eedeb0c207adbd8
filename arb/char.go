package arb

import "math/rand"

type charCore struct{ lo, hi rune }

func (c charCore) bounds() (rune, rune) {
	lo, hi := c.lo, c.hi
	if lo == 0 && hi == 0 {
		lo, hi = 0x20, 0x7e // printable ASCII, matching the teacher's AlphabetASCII range
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi
}

func (c charCore) generate(r *rand.Rand, _ Range) (Pick[rune], Shrinker[rune]) {
	lo, hi := c.bounds()
	v := lo + rune(r.Intn(int(hi-lo)+1))
	val, s := intShrinkInit(int(v), int(lo), int(hi))
	return Pick[rune]{Value: rune(val)}, func(accept bool) (rune, bool) {
		nv, ok := s(accept)
		return rune(nv), ok
	}
}

func (c charCore) cornerCases() []Pick[rune] {
	lo, hi := c.bounds()
	seen := map[rune]struct{}{}
	out := make([]Pick[rune], 0, 3)
	for _, v := range []rune{lo, hi, 'a'} {
		if v < lo || v > hi {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, Pick[rune]{Value: v})
	}
	return out
}

func (c charCore) size() Size {
	lo, hi := c.bounds()
	return Size{Kind: SizeExact, Value: float64(hi-lo) + 1}
}

func (c charCore) calculateIndex(p Pick[rune], _ int) (int64, bool) {
	lo, _ := c.bounds()
	return int64(p.Value - lo), true
}

func (c charCore) canGenerate(p Pick[rune]) bool {
	lo, hi := c.bounds()
	return p.Value >= lo && p.Value <= hi
}

// Char generates runes in [lo, hi], defaulting to printable ASCII
// (spec.md's Char variant).
func Char(lo, hi rune) Arbitrary[rune] { return wrap[rune](charCore{lo: lo, hi: hi}) }
