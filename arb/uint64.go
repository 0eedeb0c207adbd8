package arb

import "math/rand"

type uint64Core struct{ local Range }

func (c uint64Core) generate(r *rand.Rand, hint Range) (Pick[uint64], Shrinker[uint64]) {
	min, max := autoRangeU64(c.local, hint)
	v := min + uint64(r.Int63n(int64(max-min)+1))
	val, s := unsignedShrinkInit(v, min, max)
	return Pick[uint64]{Value: val}, s
}

func (c uint64Core) cornerCases() []Pick[uint64] {
	min, max := autoRangeU64(c.local, Range{})
	seen := map[uint64]struct{}{}
	out := make([]Pick[uint64], 0, 3)
	for _, v := range []uint64{min, 1, max} {
		if v < min || v > max {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, Pick[uint64]{Value: v})
	}
	return out
}

func (c uint64Core) size() Size {
	min, max := autoRangeU64(c.local, Range{})
	return Size{Kind: SizeExact, Value: float64(max-min) + 1}
}

func (c uint64Core) calculateIndex(p Pick[uint64], _ int) (int64, bool) {
	min, _ := autoRangeU64(c.local, Range{})
	return int64(p.Value - min), true
}

func (c uint64Core) canGenerate(p Pick[uint64]) bool {
	min, max := autoRangeU64(c.local, Range{})
	return p.Value >= min && p.Value <= max
}

// Uint64 generates uint64s the same way Uint generates uints.
func Uint64(local Range) Arbitrary[uint64] { return wrap[uint64](uint64Core{local: local}) }

// Uint64Range generates uint64s uniformly in [min, max].
func Uint64Range(min, max uint64) Arbitrary[uint64] {
	if min > max {
		min, max = max, min
	}
	return wrap[uint64](fixedUint64Core{min: min, max: max})
}

type fixedUint64Core struct{ min, max uint64 }

func (c fixedUint64Core) generate(r *rand.Rand, _ Range) (Pick[uint64], Shrinker[uint64]) {
	v := c.min + uint64(r.Int63n(int64(c.max-c.min)+1))
	val, s := unsignedShrinkInit(v, c.min, c.max)
	return Pick[uint64]{Value: val}, s
}
func (c fixedUint64Core) cornerCases() []Pick[uint64] {
	seen := map[uint64]struct{}{}
	out := make([]Pick[uint64], 0, 3)
	for _, v := range []uint64{c.min, 1, c.max} {
		if v < c.min || v > c.max {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, Pick[uint64]{Value: v})
	}
	return out
}
func (c fixedUint64Core) size() Size {
	return Size{Kind: SizeExact, Value: float64(c.max-c.min) + 1}
}
func (c fixedUint64Core) calculateIndex(p Pick[uint64], _ int) (int64, bool) {
	return int64(p.Value - c.min), true
}
func (c fixedUint64Core) canGenerate(p Pick[uint64]) bool {
	return p.Value >= c.min && p.Value <= c.max
}

func autoRangeU64(local, fromRunner Range) (uint64, uint64) {
	m := 0
	for _, s := range []Range{local, fromRunner} {
		m = maxInt(m, s.Max)
	}
	if m <= 0 {
		m = 100
	}
	return 0, uint64(m)
}
