package arb

import "math/rand"

type constCore[T any] struct{ v T }

func (c constCore[T]) generate(_ *rand.Rand, _ Range) (Pick[T], Shrinker[T]) {
	return Pick[T]{Value: c.v}, noopShrinker[T]()
}
func (c constCore[T]) cornerCases() []Pick[T] { return []Pick[T]{{Value: c.v}} }
func (c constCore[T]) size() Size             { return Size{Kind: SizeExact, Value: 1} }
func (c constCore[T]) calculateIndex(Pick[T], int) (int64, bool) { return 0, true }
func (c constCore[T]) canGenerate(p Pick[T]) bool                { return sig(p.Value) == sig(c.v) }

// Constant always produces v, with no shrink candidates (spec.md's
// Constant variant).
func Constant[T any](v T) Arbitrary[T] { return wrap[T](constCore[T]{v: v}) }

type unionCore[T any] struct {
	members []Arbitrary[T]
	weight  func(T) float64
}

func (u unionCore[T]) generate(r *rand.Rand, hint Range) (Pick[T], Shrinker[T]) {
	idx := u.pickIndex(r)
	val, shrink := u.members[idx].c.generate(r, hint)

	neighbors := make([]int, 0, len(u.members)-1)
	for i := range u.members {
		if i != idx {
			neighbors = append(neighbors, i)
		}
	}

	return val, func(accept bool) (T, bool) {
		migrate := func() (T, bool) {
			for len(neighbors) > 0 {
				j := neighbors[0]
				neighbors = neighbors[1:]
				nv, ns := u.members[j].c.generate(r, hint)
				idx = j
				shrink = ns
				return nv.Value, true
			}
			var z T
			return z, false
		}
		if next, ok := shrink(accept); ok {
			return next, true
		}
		return migrate()
	}
}

// pickIndex chooses a member uniformly unless weight is set, in which case
// it samples one value from each candidate and weights by it (spec.md's
// Weighted variant collapses into Union when weight is nil).
func (u unionCore[T]) pickIndex(r *rand.Rand) int {
	if u.weight == nil {
		return r.Intn(len(u.members))
	}
	total := 0.0
	ws := make([]float64, len(u.members))
	for i, m := range u.members {
		sample := m.Sample(1, r)
		w := 1.0
		if len(sample) > 0 {
			w = u.weight(sample[0].Value)
		}
		if w < 0 {
			w = 0
		}
		ws[i] = w
		total += w
	}
	if total <= 0 {
		return r.Intn(len(u.members))
	}
	pick := r.Float64() * total
	acc := 0.0
	for i, w := range ws {
		acc += w
		if pick <= acc {
			return i
		}
	}
	return len(u.members) - 1
}

func (u unionCore[T]) cornerCases() []Pick[T] {
	out := []Pick[T]{}
	for _, m := range u.members {
		out = append(out, m.CornerCases()...)
	}
	return out
}

func (u unionCore[T]) size() Size {
	total := 0.0
	for _, m := range u.members {
		s := m.Size()
		if s.Kind == SizeEstimated {
			return Size{Kind: SizeEstimated, Value: -1, CredibleLo: 0, CredibleHi: -1}
		}
		total += s.Value
	}
	return Size{Kind: SizeExact, Value: total}
}

func (u unionCore[T]) calculateIndex(Pick[T], int) (int64, bool) { return 0, false }

func (u unionCore[T]) canGenerate(p Pick[T]) bool {
	for _, m := range u.members {
		if m.CanGenerate(p) {
			return true
		}
	}
	return false
}

// Union (a.k.a. OneOf) picks uniformly among members, shrinking within the
// chosen member before migrating to a neighbor (spec.md's Union variant).
func Union[T any](members ...Arbitrary[T]) Arbitrary[T] {
	return wrap[T](unionCore[T]{members: members})
}

// Weighted picks among members with probability proportional to weight(v)
// evaluated against a sample from each candidate (spec.md's Weighted
// variant).
func Weighted[T any](weight func(T) float64, members ...Arbitrary[T]) Arbitrary[T] {
	return wrap[T](unionCore[T]{members: members, weight: weight})
}
