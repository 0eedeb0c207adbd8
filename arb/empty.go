package arb

import "math/rand"

type emptyCore[T any] struct{}

func (emptyCore[T]) generate(_ *rand.Rand, _ Range) (Pick[T], Shrinker[T]) {
	var z T
	return Pick[T]{Value: z}, noopShrinker[T]()
}
func (emptyCore[T]) cornerCases() []Pick[T] { return nil }
func (emptyCore[T]) size() Size             { return Size{Kind: SizeExact, Value: 0} }
func (emptyCore[T]) calculateIndex(Pick[T], int) (int64, bool) { return 0, false }
func (emptyCore[T]) canGenerate(Pick[T]) bool                  { return false }

// Empty is the arbitrary with no values (spec.md's Empty variant): its size
// is exactly 0, it has no corner cases and CanGenerate is always false. Pick
// and Sample still return T's zero value (Sample returns n of them), and
// Map/Filter/Chain/Unique over Empty wrap it like any other base rather than
// returning Empty.
func Empty[T any]() Arbitrary[T] { return wrap[T](emptyCore[T]{}) }
