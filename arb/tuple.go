package arb

import "math/rand"

// Pair is the value type produced by Tuple2.
type Pair[A, B any] struct {
	First  A
	Second B
}

type tuple2Core[A, B any] struct {
	a Arbitrary[A]
	b Arbitrary[B]
}

func (t tuple2Core[A, B]) generate(r *rand.Rand, hint Range) (Pick[Pair[A, B]], Shrinker[Pair[A, B]]) {
	pa, sa := t.a.c.generate(r, hint)
	pb, sb := t.b.c.generate(r, hint)
	cur := Pair[A, B]{First: pa.Value, Second: pb.Value}

	state := 0 // 0: shrink second, 1: shrink first
	return Pick[Pair[A, B]]{Value: cur}, func(accept bool) (Pair[A, B], bool) {
		switch state {
		case 0:
			if nb, ok := sb(accept); ok {
				cur.Second = nb
				return cur, true
			}
			state = 1
			accept = false
			fallthrough
		case 1:
			na, ok := sa(accept)
			if !ok {
				return Pair[A, B]{}, false
			}
			cur.First = na
			return cur, true
		default:
			return Pair[A, B]{}, false
		}
	}
}

func (t tuple2Core[A, B]) cornerCases() []Pick[Pair[A, B]] {
	out := make([]Pick[Pair[A, B]], 0)
	ca, cb := t.a.CornerCases(), t.b.CornerCases()
	for _, x := range ca {
		for _, y := range cb {
			out = append(out, Pick[Pair[A, B]]{Value: Pair[A, B]{First: x.Value, Second: y.Value}})
		}
	}
	return out
}

func (t tuple2Core[A, B]) size() Size {
	sa, sb := t.a.Size(), t.b.Size()
	if sa.Kind == SizeEstimated || sb.Kind == SizeEstimated {
		return Size{Kind: SizeEstimated, Value: sa.Value * sb.Value}
	}
	return Size{Kind: SizeExact, Value: sa.Value * sb.Value}
}

func (t tuple2Core[A, B]) calculateIndex(Pick[Pair[A, B]], int) (int64, bool) { return 0, false }

func (t tuple2Core[A, B]) canGenerate(p Pick[Pair[A, B]]) bool {
	return t.a.CanGenerate(Pick[A]{Value: p.Value.First}) && t.b.CanGenerate(Pick[B]{Value: p.Value.Second})
}

// Tuple2 pairs a and b, shrinking the second component to exhaustion before
// the first (spec.md's Tuple variant, 2-arity).
func Tuple2[A, B any](a Arbitrary[A], b Arbitrary[B]) Arbitrary[Pair[A, B]] {
	return wrap[Pair[A, B]](tuple2Core[A, B]{a: a, b: b})
}

// Triple is the value type produced by Tuple3.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// Tuple3 combines a, b, c via nested Tuple2 pairing, following the teacher's
// practice of deriving n-arity combinators from the 2-arity base rather than
// hand-rolling each width.
func Tuple3[A, B, C any](a Arbitrary[A], b Arbitrary[B], c Arbitrary[C]) Arbitrary[Triple[A, B, C]] {
	inner := Tuple2(a, Tuple2(b, c))
	return Map(inner, func(p Pair[A, Pair[B, C]]) Triple[A, B, C] {
		return Triple[A, B, C]{First: p.First, Second: p.Second.First, Third: p.Second.Second}
	})
}
