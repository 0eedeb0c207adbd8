// Package arb provides the arbitrary algebra for property-based testing:
// composable value generators with sampling, corner-case enumeration,
// shrinking, deterministic indexing, and size estimation.
package arb

import (
	"fmt"
	"math/rand"
)

// Pick is a single generated value together with the raw material it was
// derived from and, when meaningful, a deterministic position-in-domain
// index. Combinators preserve Original so that filters and maps can
// round-trip through CanGenerate checks on the underlying arbitrary.
type Pick[A any] struct {
	Value    A
	Original any
	HasIndex bool
	Index    int64
}

// Shrinker proposes progressively smaller candidates. accept reports
// whether the PREVIOUS candidate reproduced the failure (for a forall) or
// preserved the success (for an exists); this lets the shrinker rebase on
// the new minimum and grow fresh neighbors from there.
type Shrinker[A any] func(accept bool) (next A, ok bool)

// SizeKind distinguishes an exact cardinality from a credible-interval
// estimate (used for Filtered and other non-enumerable domains).
type SizeKind int

const (
	SizeExact SizeKind = iota
	SizeEstimated
)

// Size reports how many distinct values an arbitrary can produce.
type Size struct {
	Kind SizeKind
	// Value is the point estimate (exact cardinality, or posterior mean
	// for an estimated size).
	Value float64
	// CredibleLo/CredibleHi bound a 95% credible interval; only
	// meaningful when Kind == SizeEstimated.
	CredibleLo, CredibleHi float64
}

// Range bounds a scalar domain; either side may be left unset by callers
// who want the library to pick a sensible default.
type Range struct {
	Min, Max int
}

// Shrinking strategy, shared process-wide like the teacher's generators:
// every arbitrary's internal shrink-candidate queue drains BFS or DFS.
const (
	StrategyBFS = "bfs"
	StrategyDFS = "dfs"
)

var shrinkStrategy = StrategyBFS

// SetShrinkStrategy sets the shrink traversal order for all arbitraries.
// Any value other than StrategyDFS is treated as StrategyBFS.
func SetShrinkStrategy(s string) {
	if s == StrategyDFS {
		shrinkStrategy = StrategyDFS
	} else {
		shrinkStrategy = StrategyBFS
	}
}

// GetShrinkStrategy returns the current shrink traversal order.
func GetShrinkStrategy() string { return shrinkStrategy }

// core is the minimal per-variant contract. Every leaf (Integer, Boolean,
// String, ...) and every combinator (Mapped, Filtered, Chained, ...)
// implements core; Arbitrary supplies the shared capability set (Sample,
// SampleWithBias, SampleUnique, Map, Filter, Chain, Unique) once, on top
// of core, rather than each variant re-implementing it. This is the
// tagged-variant-with-blanket-dispatch shape spec.md's design notes call
// for instead of a class hierarchy.
type core[A any] interface {
	generate(r *rand.Rand, hint Range) (Pick[A], Shrinker[A])
	cornerCases() []Pick[A]
	size() Size
	calculateIndex(p Pick[A], depth int) (int64, bool)
	canGenerate(p Pick[A]) bool
}

// Arbitrary is a generator of values of type A, augmented with corner-case
// enumeration, shrinking, deterministic indexing, and size estimation. It
// is immutable and shared; every combinator returns a new Arbitrary rather
// than mutating the receiver.
type Arbitrary[A any] struct {
	c core[A]
}

func wrap[A any](c core[A]) Arbitrary[A] { return Arbitrary[A]{c: c} }

func freshRand() *rand.Rand {
	return rand.New(rand.NewSource(rand.Int63()))
}

// Pick draws a single value plus the shrinker that will minimize it. A
// nil *rand.Rand draws an unseeded source, matching the teacher's
// generators (useful for ad-hoc calls outside a Sampler-driven run).
func (a Arbitrary[A]) Pick(r *rand.Rand, hint Range) (Pick[A], Shrinker[A]) {
	if r == nil {
		r = freshRand()
	}
	return a.c.generate(r, hint)
}

// Sample draws up to n values uniformly.
func (a Arbitrary[A]) Sample(n int, r *rand.Rand) []Pick[A] {
	if r == nil {
		r = freshRand()
	}
	out := make([]Pick[A], 0, n)
	for i := 0; i < n; i++ {
		p, _ := a.c.generate(r, Range{})
		out = append(out, p)
	}
	return out
}

// SampleWithBias emits corner cases first (in the arbitrary's own order),
// then fills uniformly from the base generator, never exceeding n.
func (a Arbitrary[A]) SampleWithBias(n int, r *rand.Rand) []Pick[A] {
	if r == nil {
		r = freshRand()
	}
	corners := a.c.cornerCases()
	out := make([]Pick[A], 0, n)
	for _, c := range corners {
		if len(out) >= n {
			return out
		}
		out = append(out, c)
	}
	for len(out) < n {
		p, _ := a.c.generate(r, Range{})
		out = append(out, p)
	}
	return out
}

// SampleUnique draws up to n values with no two sharing a Value, bounded
// by a retry budget so a narrow domain can't spin forever.
func (a Arbitrary[A]) SampleUnique(n int, r *rand.Rand) []Pick[A] {
	if r == nil {
		r = freshRand()
	}
	seen := make(map[string]struct{}, n)
	out := make([]Pick[A], 0, n)
	const budgetMultiplier = 50
	tries := 0
	maxTries := n*budgetMultiplier + 10
	for len(out) < n && tries < maxTries {
		tries++
		p, _ := a.c.generate(r, Range{})
		k := sig(p.Value)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, p)
	}
	return out
}

// CornerCases returns the finite, deduplicated, ordered set of
// distinguished values the arbitrary promises to try first.
func (a Arbitrary[A]) CornerCases() []Pick[A] { return a.c.cornerCases() }

// Size reports the arbitrary's cardinality, exact or estimated.
func (a Arbitrary[A]) Size() Size { return a.c.size() }

// CalculateIndex computes the deterministic position-in-domain index for
// p, at the given discretisation depth (only meaningful for continuous
// domains such as Real; ignored by discrete ones).
func (a Arbitrary[A]) CalculateIndex(p Pick[A], depth int) (int64, bool) {
	return a.c.calculateIndex(p, depth)
}

// CanGenerate reports whether p could have come from a, i.e. whether p's
// invariants (range membership, predicate satisfaction, ...) still hold.
func (a Arbitrary[A]) CanGenerate(p Pick[A]) bool { return a.c.canGenerate(p) }

// sig builds a deduplication key for an arbitrary value, the same
// textual-signature trick the teacher's slice/array shrinkers use to dedup
// candidate queues.
func sig(v any) string { return fmt.Sprintf("%#v", v) }
