package arb

import "math/rand"

// shrinkAdapter turns a live Shrinker closure (the mechanism every variant
// actually uses internally) into an Arbitrary, so that ShrinkArbitrary can
// satisfy spec.md's `shrink(around) -> Arbitrary` signature without a
// second, data-based shrink representation. Its domain is exactly the
// stream of candidates the original Shrinker would propose; Generate pops
// the next candidate each call, ignoring r and sz (there is nothing left
// to randomize: the candidates are already determined by the arbitrary's
// own shrink heuristic).
type shrinkAdapter[A any] struct {
	seed A
	next Shrinker[A]
}

func (s *shrinkAdapter[A]) generate(_ *rand.Rand, _ Range) (Pick[A], Shrinker[A]) {
	v, ok := s.next(false)
	if !ok {
		return Pick[A]{Value: s.seed}, noopShrinker[A]()
	}
	return Pick[A]{Value: v}, noopShrinker[A]()
}

func (s *shrinkAdapter[A]) cornerCases() []Pick[A] { return nil }

func (s *shrinkAdapter[A]) size() Size {
	return Size{Kind: SizeEstimated, Value: 0, CredibleLo: 0, CredibleHi: 0}
}

func (s *shrinkAdapter[A]) calculateIndex(Pick[A], int) (int64, bool) { return 0, false }

// canGenerate is conservative: any value the original domain could have
// proposed is accepted, since the adapter doesn't retain the parent's
// invariants beyond "comes from the shrink stream".
func (s *shrinkAdapter[A]) canGenerate(Pick[A]) bool { return true }

func noopShrinker[A any]() Shrinker[A] {
	return func(bool) (A, bool) { var z A; return z, false }
}

// ShrinkArbitrary returns an Arbitrary whose domain is the candidates the
// Shrinker attached to around would still propose: values closer to the
// zero/empty of the type than around.Value, per spec.md's Arbitrary
// capability set.
func (a Arbitrary[A]) ShrinkArbitrary(around Pick[A], live Shrinker[A]) Arbitrary[A] {
	return wrap[A](&shrinkAdapter[A]{seed: around.Value, next: live})
}
