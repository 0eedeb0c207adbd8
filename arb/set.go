package arb

import "math/rand"

type setCore[T any] struct {
	members []T
}

func (s setCore[T]) generate(r *rand.Rand, _ Range) (Pick[T], Shrinker[T]) {
	idx := r.Intn(len(s.members))
	cur := idx
	last := idx

	queue := make([]int, 0, len(s.members)-1)
	seen := map[int]struct{}{idx: {}}
	push := func(i int) {
		if _, ok := seen[i]; ok {
			return
		}
		seen[i] = struct{}{}
		queue = append(queue, i)
	}
	grow := func(base int) {
		queue = queue[:0]
		for i := 0; i < base; i++ {
			push(i)
		}
	}
	grow(cur)

	pop := func() (int, bool) {
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

	val := Pick[T]{Value: s.members[idx], HasIndex: true, Index: int64(idx)}
	return val, func(accept bool) (T, bool) {
		if accept && last != cur {
			cur = last
			grow(cur)
		}
		nxt, ok := pop()
		if !ok {
			var z T
			return z, false
		}
		last = nxt
		return s.members[nxt], true
	}
}

func (s setCore[T]) cornerCases() []Pick[T] {
	out := make([]Pick[T], len(s.members))
	for i, v := range s.members {
		out[i] = Pick[T]{Value: v, HasIndex: true, Index: int64(i)}
	}
	return out
}

func (s setCore[T]) size() Size { return Size{Kind: SizeExact, Value: float64(len(s.members))} }

func (s setCore[T]) calculateIndex(p Pick[T], _ int) (int64, bool) {
	if p.HasIndex {
		return p.Index, true
	}
	for i, v := range s.members {
		if sig(v) == sig(p.Value) {
			return int64(i), true
		}
	}
	return 0, false
}

func (s setCore[T]) canGenerate(p Pick[T]) bool {
	for _, v := range s.members {
		if sig(v) == sig(p.Value) {
			return true
		}
	}
	return false
}

// Set picks uniformly from a fixed, finite collection of members, shrinking
// towards the front of the list (spec.md's Set variant).
func Set[T any](members ...T) Arbitrary[T] {
	if len(members) == 0 {
		return Empty[T]()
	}
	return wrap[T](setCore[T]{members: members})
}
