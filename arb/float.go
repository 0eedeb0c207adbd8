package arb

import (
	"math"
	"math/rand"
)

// floatFlavor carries the NaN/Inf inclusion policy for a Real arbitrary
// alongside its numeric bounds, per spec.md's Real variant.
type floatFlavor struct {
	min, max           float64
	allowNaN, allowInf bool
}

type floatCore struct {
	local Range
	flav  *floatFlavor // nil: use autoRangeF(local, hint), no specials
}

func (c floatCore) bounds(hint Range) (float64, float64, bool, bool) {
	if c.flav != nil {
		return c.flav.min, c.flav.max, c.flav.allowNaN, c.flav.allowInf
	}
	min, max := autoRangeF(c.local, hint)
	return min, max, false, false
}

func (c floatCore) generate(r *rand.Rand, hint Range) (Pick[float64], Shrinker[float64]) {
	min, max, allowNaN, allowInf := c.bounds(hint)
	if min > max {
		min, max = max, min
	}
	v := uniformF64(r, min, max)
	if allowNaN && r.Intn(50) == 0 {
		v = math.NaN()
	} else if allowInf && r.Intn(50) == 1 {
		if r.Intn(2) == 0 {
			v = math.Inf(1)
		} else {
			v = math.Inf(-1)
		}
	}
	val, s := floatShrinkInit(v, min, max, allowNaN, allowInf)
	return Pick[float64]{Value: val}, s
}

func (c floatCore) cornerCases() []Pick[float64] {
	min, max, allowNaN, allowInf := c.bounds(Range{})
	vals := []float64{0, 1, -1, min, max}
	if allowNaN {
		vals = append(vals, math.NaN())
	}
	if allowInf {
		vals = append(vals, math.Inf(1), math.Inf(-1))
	}
	seen := map[uint64]struct{}{}
	out := make([]Pick[float64], 0, len(vals))
	for _, v := range vals {
		if isFinite(v) && (v < min || v > max) {
			continue
		}
		k := f64key(v)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, Pick[float64]{Value: v})
	}
	return out
}

func (c floatCore) size() Size {
	return Size{Kind: SizeEstimated, Value: math.MaxFloat64}
}

func (c floatCore) calculateIndex(Pick[float64], int) (int64, bool) { return 0, false }

func (c floatCore) canGenerate(p Pick[float64]) bool {
	min, max, allowNaN, allowInf := c.bounds(Range{})
	if math.IsNaN(p.Value) {
		return allowNaN
	}
	if math.IsInf(p.Value, 0) {
		return allowInf
	}
	return p.Value >= min && p.Value <= max
}

// Float64 generates real numbers with automatic range from local/the
// runner's Size hint, excluding NaN/Inf (spec.md's Real variant, default
// flavor).
func Float64(local Range) Arbitrary[float64] { return wrap[float64](floatCore{local: local}) }

// Float64Range generates reals uniformly in [min, max], optionally
// including NaN and/or +/-Inf as occasional special values.
func Float64Range(min, max float64, includeNaN, includeInf bool) Arbitrary[float64] {
	if min > max {
		min, max = max, min
	}
	return wrap[float64](floatCore{flav: &floatFlavor{min: min, max: max, allowNaN: includeNaN, allowInf: includeInf}})
}

func autoRangeF(local, fromRunner Range) (float64, float64) {
	m := 0
	for _, s := range []Range{local, fromRunner} {
		m = maxInt(m, absInt(s.Min))
		m = maxInt(m, absInt(s.Max))
	}
	if m == 0 {
		m = 100
	}
	return -float64(m), float64(m)
}

func isFinite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
func f64key(x float64) uint64 { return math.Float64bits(x) }

func clampF64(x, min, max float64) float64 {
	if !isFinite(x) {
		return x
	}
	if isFinite(min) && x < min {
		return min
	}
	if isFinite(max) && x > max {
		return max
	}
	return x
}

func uniformF64(r *rand.Rand, min, max float64) float64 {
	if isFinite(min) && isFinite(max) && max >= min {
		if min == max {
			return min
		}
		return min + r.Float64()*(max-min)
	}
	return -100 + r.Float64()*200
}

func float64Target(min, max float64) float64 {
	if isFinite(min) && isFinite(max) && min <= 0 && 0 <= max {
		return 0
	}
	if !isFinite(min) && !isFinite(max) {
		return 0
	}
	if math.Abs(min) < math.Abs(max) {
		return min
	}
	return max
}

func midpointTowardsF64(a, b float64) float64 {
	if a == b {
		return a
	}
	return a + (b-a)/2
}

// floatShrinkInit mirrors the teacher's float64ShrinkInit: specials (NaN,
// Inf) shrink towards 0/bounds first, finite values bisect towards the
// target the same way intShrinkInit does.
func floatShrinkInit(start, min, max float64, allowNaN, allowInf bool) (float64, Shrinker[float64]) {
	cur := clampF64(start, min, max)
	last := cur

	queue := make([]float64, 0, 32)
	seen := map[uint64]struct{}{f64key(cur): {}}

	push := func(x float64) {
		if math.IsNaN(x) && !allowNaN {
			return
		}
		if math.IsInf(x, 0) && !allowInf {
			return
		}
		if isFinite(x) && isFinite(min) && isFinite(max) && (x < min || x > max) {
			return
		}
		k := f64key(x)
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		queue = append(queue, x)
	}

	grow := func(base float64) {
		queue = queue[:0]
		if math.IsNaN(base) {
			push(0)
			push(1)
			push(-1)
			if allowInf {
				push(math.Inf(1))
				push(math.Inf(-1))
			}
			if isFinite(min) {
				push(min)
			}
			if isFinite(max) {
				push(max)
			}
			return
		}
		if math.IsInf(base, 0) {
			if math.IsInf(base, 1) && isFinite(max) {
				push(max)
			}
			if math.IsInf(base, -1) && isFinite(min) {
				push(min)
			}
			push(0)
			return
		}

		target := float64Target(min, max)
		if base != target {
			push(target)
			next := midpointTowardsF64(base, target)
			if next != base {
				push(next)
			}
			series := next
			for i := 0; i < 8 && series != target; i++ {
				series = midpointTowardsF64(series, target)
				if series != base {
					push(series)
				}
			}
			step := math.Nextafter(base, target)
			if step != base {
				push(step)
			}
		}
		if target == 0 && base != 0 {
			push(-base)
		}
		if isFinite(min) && base != min {
			push(min)
		}
		if isFinite(max) && base != max {
			push(max)
		}
	}
	grow(cur)

	pop := func() (float64, bool) {
		if len(queue) == 0 {
			return 0, false
		}
		if shrinkStrategy == StrategyDFS {
			v := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			return v, true
		}
		v := queue[0]
		queue = queue[1:]
		return v, true
	}

	return cur, func(accept bool) (float64, bool) {
		if accept && f64key(last) != f64key(cur) {
			cur = last
			grow(cur)
		}
		nxt, ok := pop()
		if !ok {
			return 0, false
		}
		last = nxt
		return nxt, true
	}
}
