package arb

import "math/rand"

type uintCore struct{ local Range }

func (c uintCore) generate(r *rand.Rand, hint Range) (Pick[uint], Shrinker[uint]) {
	min, max := autoRangeU(c.local, hint)
	v := min + uint(r.Int63n(int64(max-min)+1))
	val, s := unsignedShrinkInit(v, min, max)
	return Pick[uint]{Value: val}, s
}

func (c uintCore) cornerCases() []Pick[uint] {
	min, max := autoRangeU(c.local, Range{})
	seen := map[uint]struct{}{}
	out := make([]Pick[uint], 0, 3)
	for _, v := range []uint{min, 1, max} {
		if v < min || v > max {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, Pick[uint]{Value: v})
	}
	return out
}

func (c uintCore) size() Size {
	min, max := autoRangeU(c.local, Range{})
	return Size{Kind: SizeExact, Value: float64(max-min) + 1}
}

func (c uintCore) calculateIndex(p Pick[uint], _ int) (int64, bool) {
	min, _ := autoRangeU(c.local, Range{})
	return int64(p.Value - min), true
}

func (c uintCore) canGenerate(p Pick[uint]) bool {
	min, max := autoRangeU(c.local, Range{})
	return p.Value >= min && p.Value <= max
}

// Uint generates uints in [0, M] where M scales with local/the runner's
// Size hint, defaulting to 100 (mirrors the teacher's gen.Uint, generalized
// via unsignedShrinkInit).
func Uint(local Range) Arbitrary[uint] { return wrap[uint](uintCore{local: local}) }

// UintRange generates uints uniformly in [min, max].
func UintRange(min, max uint) Arbitrary[uint] {
	if min > max {
		min, max = max, min
	}
	return wrap[uint](fixedUintCore{min: min, max: max})
}

type fixedUintCore struct{ min, max uint }

func (c fixedUintCore) generate(r *rand.Rand, _ Range) (Pick[uint], Shrinker[uint]) {
	v := c.min + uint(r.Int63n(int64(c.max-c.min)+1))
	val, s := unsignedShrinkInit(v, c.min, c.max)
	return Pick[uint]{Value: val}, s
}
func (c fixedUintCore) cornerCases() []Pick[uint] {
	seen := map[uint]struct{}{}
	out := make([]Pick[uint], 0, 3)
	for _, v := range []uint{c.min, 1, c.max} {
		if v < c.min || v > c.max {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, Pick[uint]{Value: v})
	}
	return out
}
func (c fixedUintCore) size() Size {
	return Size{Kind: SizeExact, Value: float64(c.max-c.min) + 1}
}
func (c fixedUintCore) calculateIndex(p Pick[uint], _ int) (int64, bool) {
	return int64(p.Value - c.min), true
}
func (c fixedUintCore) canGenerate(p Pick[uint]) bool {
	return p.Value >= c.min && p.Value <= c.max
}

func autoRangeU(local, fromRunner Range) (uint, uint) {
	m := 0
	for _, s := range []Range{local, fromRunner} {
		m = maxInt(m, s.Max)
	}
	if m <= 0 {
		m = 100
	}
	return 0, uint(m)
}
