package arb

import "math/rand"

type intCore struct {
	local Range
}

func (c intCore) generate(r *rand.Rand, hint Range) (Pick[int], Shrinker[int]) {
	min, max := autoRange(c.local, hint)
	v := min + r.Intn(max-min+1)
	val, s := intShrinkInit(v, min, max)
	return Pick[int]{Value: val}, func(accept bool) (int, bool) { return s(accept) }
}

func (c intCore) cornerCases() []Pick[int] {
	min, max := autoRange(c.local, Range{})
	seen := map[int]struct{}{}
	out := make([]Pick[int], 0, 4)
	for _, v := range []int{0, 1, -1, min, max} {
		if v < min || v > max {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, Pick[int]{Value: v})
	}
	return out
}

func (c intCore) size() Size {
	min, max := autoRange(c.local, Range{})
	return Size{Kind: SizeExact, Value: float64(max-min) + 1}
}

func (c intCore) calculateIndex(p Pick[int], _ int) (int64, bool) {
	min, _ := autoRange(c.local, Range{})
	return int64(p.Value - min), true
}

func (c intCore) canGenerate(p Pick[int]) bool {
	min, max := autoRange(c.local, Range{})
	return p.Value >= min && p.Value <= max
}

// Int generates ints. local optionally biases the automatic range (spec.md's
// Integer variant); an unset Range falls back to the runner's Size hint or,
// failing that, [-100, 100], matching the teacher's gen.Int.
func Int(local Range) Arbitrary[int] { return wrap[int](intCore{local: local}) }

// IntRange generates ints uniformly in [min, max], ignoring any Size hint.
func IntRange(min, max int) Arbitrary[int] {
	if min > max {
		min, max = max, min
	}
	return wrap[int](fixedIntCore{min: min, max: max})
}

type fixedIntCore struct{ min, max int }

func (c fixedIntCore) generate(r *rand.Rand, _ Range) (Pick[int], Shrinker[int]) {
	v := c.min + r.Intn(c.max-c.min+1)
	val, s := intShrinkInit(v, c.min, c.max)
	return Pick[int]{Value: val}, s
}
func (c fixedIntCore) cornerCases() []Pick[int] {
	seen := map[int]struct{}{}
	out := make([]Pick[int], 0, 5)
	for _, v := range []int{0, 1, -1, c.min, c.max} {
		if v < c.min || v > c.max {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, Pick[int]{Value: v})
	}
	return out
}
func (c fixedIntCore) size() Size { return Size{Kind: SizeExact, Value: float64(c.max-c.min) + 1} }
func (c fixedIntCore) calculateIndex(p Pick[int], _ int) (int64, bool) {
	return int64(p.Value - c.min), true
}
func (c fixedIntCore) canGenerate(p Pick[int]) bool { return p.Value >= c.min && p.Value <= c.max }

// autoRange combines a locally requested Range with the runner's hint,
// preferring whichever informs the larger magnitude, defaulting to
// [-100, 100] when neither does (mirrors the teacher's gen.autoRange).
func autoRange(local, fromRunner Range) (int, int) {
	m := 0
	for _, s := range []Range{local, fromRunner} {
		m = maxInt(m, absInt(s.Min))
		m = maxInt(m, absInt(s.Max))
	}
	if m == 0 {
		m = 100
	}
	return -m, m
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
