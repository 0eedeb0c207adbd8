package arb

import (
	"math/rand"

	"github.com/fluentgo/fluentgo/stats"
)

// -------------------------------------------------------------------
// Map: A -> B, preserving the shrink stream (spec.md Mapped).
// -------------------------------------------------------------------

type mapCore[A, B any] struct {
	base Arbitrary[A]
	f    func(A) B
}

func (m mapCore[A, B]) generate(r *rand.Rand, hint Range) (Pick[B], Shrinker[B]) {
	pa, sa := m.base.c.generate(r, hint)
	pb := Pick[B]{Value: m.f(pa.Value), Original: pa, HasIndex: pa.HasIndex, Index: pa.Index}
	return pb, func(accept bool) (B, bool) {
		na, ok := sa(accept)
		if !ok {
			var z B
			return z, false
		}
		return m.f(na), true
	}
}

func (m mapCore[A, B]) cornerCases() []Pick[B] {
	cs := m.base.CornerCases()
	out := make([]Pick[B], 0, len(cs))
	for _, c := range cs {
		out = append(out, Pick[B]{Value: m.f(c.Value), Original: c, HasIndex: c.HasIndex, Index: c.Index})
	}
	return out
}

// size equals the base's size: an upper bound, since a non-injective map
// may overestimate the number of distinct B values (spec.md Mapped
// invariant).
func (m mapCore[A, B]) size() Size { return m.base.Size() }

func (m mapCore[A, B]) calculateIndex(p Pick[B], depth int) (int64, bool) {
	if orig, ok := p.Original.(Pick[A]); ok {
		return m.base.CalculateIndex(orig, depth)
	}
	return 0, false
}

// canGenerate is conservative: without the preserved Original it can only
// confirm that *some* base pick maps to this value is unknowable, so it
// defers to the preserved Original when present and otherwise accepts —
// spec.md's design notes flag this conservatism explicitly for chained
// map/filter pipelines.
func (m mapCore[A, B]) canGenerate(p Pick[B]) bool {
	if orig, ok := p.Original.(Pick[A]); ok {
		return m.base.CanGenerate(orig)
	}
	return true
}

// Map applies f: A -> B, carrying the shrink stream and Original pick
// through so downstream Filter/canGenerate checks can still round-trip.
func Map[A, B any](base Arbitrary[A], f func(A) B) Arbitrary[B] {
	return wrap[B](mapCore[A, B]{base: base, f: f})
}

// -------------------------------------------------------------------
// Filter: keep only values satisfying pred, with rebase-on-accept shrink.
// -------------------------------------------------------------------

type filterCore[A any] struct {
	base     Arbitrary[A]
	pred     func(A) bool
	maxTries int
	passes   *betaCounter
}

func (f filterCore[A]) generate(r *rand.Rand, hint Range) (Pick[A], Shrinker[A]) {
	var v Pick[A]
	var s Shrinker[A]
	ok := false
	for i := 0; i < f.maxTries; i++ {
		v, s = f.base.c.generate(r, hint)
		f.passes.total++
		if f.pred(v.Value) {
			f.passes.hits++
			ok = true
			break
		}
	}
	if !ok {
		var z A
		return Pick[A]{Value: z}, noopShrinker[A]()
	}
	return v, func(accept bool) (A, bool) {
		for {
			nv, good := s(accept)
			if !good {
				var z A
				return z, false
			}
			if f.pred(nv) {
				return nv, true
			}
			accept = false
		}
	}
}

func (f filterCore[A]) cornerCases() []Pick[A] {
	cs := f.base.CornerCases()
	out := make([]Pick[A], 0, len(cs))
	for _, c := range cs {
		if f.pred(c.Value) {
			out = append(out, c)
		}
	}
	return out
}

// size is estimated via a Beta-Binomial conjugate update over the observed
// pass rate, per spec.md's Filtered invariant.
func (f filterCore[A]) size() Size {
	base := f.base.Size()
	alpha, beta := float64(f.passes.hits)+1, float64(f.passes.total-f.passes.hits)+1
	mean := alpha / (alpha + beta)
	lo, hi := stats.CredibleInterval(alpha, beta, 0.95)
	return Size{
		Kind:       SizeEstimated,
		Value:      mean * base.Value,
		CredibleLo: lo * base.Value,
		CredibleHi: hi * base.Value,
	}
}

func (f filterCore[A]) calculateIndex(p Pick[A], depth int) (int64, bool) {
	return f.base.CalculateIndex(p, depth)
}

func (f filterCore[A]) canGenerate(p Pick[A]) bool {
	return f.pred(p.Value) && f.base.CanGenerate(p)
}

// betaCounter tracks the observed pass/fail tally behind a Filtered
// arbitrary's size estimate.
type betaCounter struct{ total, hits int }

// Filter keeps only values satisfying pred, retrying up to maxTries
// (defaulting to 50 per spec.md §4.2). When no draw passes, it returns A's
// zero value with a shrinker that proposes nothing; the pick carries no mark
// of the failure, and the zero value is not checked against pred.
func Filter[A any](base Arbitrary[A], pred func(A) bool, maxTries int) Arbitrary[A] {
	if maxTries <= 0 {
		maxTries = 50
	}
	return wrap[A](filterCore[A]{base: base, pred: pred, maxTries: maxTries, passes: &betaCounter{}})
}

// -------------------------------------------------------------------
// Chain (a.k.a. Bind/flatMap): draw A, then delegate to k(A) for B.
// -------------------------------------------------------------------

type chainCore[A, B any] struct {
	base Arbitrary[A]
	k    func(A) Arbitrary[B]
}

func (c chainCore[A, B]) generate(r *rand.Rand, hint Range) (Pick[B], Shrinker[B]) {
	pa, sa := c.base.c.generate(r, hint)
	gb := c.k(pa.Value)
	pb, sb := gb.c.generate(r, hint)
	pb.Original = pa

	state := 0 // 0: shrink B; 1: shrink A and regenerate B
	curA := pa.Value

	return pb, func(accept bool) (B, bool) {
		switch state {
		case 0:
			if nb, ok := sb(accept); ok {
				return nb, true
			}
			state = 1
			accept = false
			fallthrough
		case 1:
			na, ok := sa(accept)
			if !ok {
				var z B
				return z, false
			}
			curA = na
			nb, nsb := c.k(curA).c.generate(r, hint)
			sb = nsb
			return nb.Value, true
		default:
			var z B
			return z, false
		}
	}
}

func (c chainCore[A, B]) cornerCases() []Pick[B] {
	cs := c.base.CornerCases()
	out := make([]Pick[B], 0, len(cs))
	for _, a := range cs {
		out = append(out, c.k(a.Value).CornerCases()...)
	}
	return out
}

func (c chainCore[A, B]) size() Size {
	return Size{Kind: SizeEstimated, Value: -1, CredibleLo: 0, CredibleHi: -1}
}

func (c chainCore[A, B]) calculateIndex(Pick[B], int) (int64, bool) { return 0, false }

// canGenerate requires both layers to accept: spec.md's Chain invariant.
// A pick whose Original is not the base pick (a corner case, for one) is
// accepted unchecked.
func (c chainCore[A, B]) canGenerate(p Pick[B]) bool {
	if orig, ok := p.Original.(Pick[A]); ok {
		return c.base.CanGenerate(orig) && c.k(orig.Value).CanGenerate(Pick[B]{Value: p.Value})
	}
	return true
}

// Chain draws x from base then delegates generation to k(x) for the
// subsequent arbitrary (spec.md's Chained variant).
func Chain[A, B any](base Arbitrary[A], k func(A) Arbitrary[B]) Arbitrary[B] {
	return wrap[B](chainCore[A, B]{base: base, k: k})
}

// -------------------------------------------------------------------
// Unique: guarantee no two picks within one sampling session share Value.
// -------------------------------------------------------------------

type uniqueCore[A any] struct {
	base Arbitrary[A]
	seen map[string]struct{}
}

func (u uniqueCore[A]) generate(r *rand.Rand, hint Range) (Pick[A], Shrinker[A]) {
	const maxTries = 200
	for i := 0; i < maxTries; i++ {
		p, s := u.base.c.generate(r, hint)
		k := sig(p.Value)
		if _, dup := u.seen[k]; dup {
			continue
		}
		u.seen[k] = struct{}{}
		return p, s
	}
	var z A
	return Pick[A]{Value: z}, noopShrinker[A]()
}

func (u uniqueCore[A]) cornerCases() []Pick[A] { return u.base.CornerCases() }
func (u uniqueCore[A]) size() Size             { return u.base.Size() }
func (u uniqueCore[A]) calculateIndex(p Pick[A], depth int) (int64, bool) {
	return u.base.CalculateIndex(p, depth)
}
func (u uniqueCore[A]) canGenerate(p Pick[A]) bool { return u.base.CanGenerate(p) }

// Unique wraps base so that, across a single sampling session, no two
// returned picks share a Value (spec.md's Unique variant). The
// deduplication set is owned by the returned Arbitrary's closure, scoped
// to calls made through it — matching the "owned by one exploration run"
// lifecycle of spec.md §3.5.
func Unique[A any](base Arbitrary[A]) Arbitrary[A] {
	return wrap[A](uniqueCore[A]{base: base, seen: make(map[string]struct{})})
}
