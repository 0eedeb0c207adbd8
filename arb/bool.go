package arb

import "math/rand"

type boolCore struct{}

func (boolCore) generate(r *rand.Rand, _ Range) (Pick[bool], Shrinker[bool]) {
	cur := r.Intn(2) == 0
	last := cur

	queue := make([]bool, 0, 2)
	seen := map[bool]struct{}{cur: {}}
	push := func(b bool) {
		if _, ok := seen[b]; ok {
			return
		}
		seen[b] = struct{}{}
		queue = append(queue, b)
	}
	grow := func(base bool) {
		queue = queue[:0]
		if base {
			push(false)
		}
	}
	grow(cur)

	pop := func() (bool, bool) {
		if len(queue) == 0 {
			return false, false
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

	s := func(accept bool) (bool, bool) {
		if accept && last != cur {
			cur = last
			grow(cur)
		}
		nxt, ok := pop()
		if !ok {
			return false, false
		}
		last = nxt
		return nxt, true
	}
	return Pick[bool]{Value: cur}, s
}

func (boolCore) cornerCases() []Pick[bool] {
	return []Pick[bool]{{Value: false}, {Value: true}}
}
func (boolCore) size() Size { return Size{Kind: SizeExact, Value: 2} }
func (boolCore) calculateIndex(p Pick[bool], _ int) (int64, bool) {
	if p.Value {
		return 1, true
	}
	return 0, true
}
func (boolCore) canGenerate(Pick[bool]) bool { return true }

// Bool generates booleans uniformly, shrinking toward false (spec.md's
// Boolean variant).
func Bool() Arbitrary[bool] { return wrap[bool](boolCore{}) }
