// Package sampler provides layered decorators over a base PRNG-driven
// sampler, per spec.md's Sampler stack: Random, Biased, Cached, Deduping,
// each composable by explicit wrapping.
package sampler

import (
	"fmt"
	"math/rand"

	"github.com/fluentgo/fluentgo/arb"
)

// Sampler draws picks from an arbitrary.
type Sampler interface {
	Sample(a arb.Arbitrary[any], n int) []arb.Pick[any]
	SampleWithBias(a arb.Arbitrary[any], n int) []arb.Pick[any]
}

// Random is the base decorator: sample and sampleWithBias both draw
// uniformly via the arbitrary's own Sample, against a shared PRNG so a
// fixed seed reproduces the same sequence (spec.md's ordering guarantee).
type Random struct {
	Rng *rand.Rand
}

// NewRandom builds a Random sampler seeded deterministically.
func NewRandom(seed int64) *Random {
	return &Random{Rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) Sample(a arb.Arbitrary[any], n int) []arb.Pick[any] {
	return a.Sample(n, r.Rng)
}

func (r *Random) SampleWithBias(a arb.Arbitrary[any], n int) []arb.Pick[any] {
	return a.Sample(n, r.Rng)
}

// Biased wraps a base sampler so SampleWithBias emits corner cases first,
// then fills uniformly from the base, never exceeding n.
type Biased struct {
	Base Sampler
}

func (b *Biased) Sample(a arb.Arbitrary[any], n int) []arb.Pick[any] {
	return b.Base.Sample(a, n)
}

func (b *Biased) SampleWithBias(a arb.Arbitrary[any], n int) []arb.Pick[any] {
	corners := a.CornerCases()
	out := make([]arb.Pick[any], 0, n)
	for _, c := range corners {
		if len(out) >= n {
			return out
		}
		out = append(out, c)
	}
	if len(out) < n {
		out = append(out, b.Base.Sample(a, n-len(out))...)
	}
	return out
}

// cacheKey separates the unbiased sequence from the biased one. It does not
// identify the arbitrary: a Cached value answers every later call in a mode
// from the sequence its first call in that mode memoized, whatever arbitrary
// the later call passes.
type cacheKey struct {
	biased bool
}

// Cached memoizes the first Sample call and the first SampleWithBias call
// made through it; subsequent calls in the same mode return a prefix of the
// cached sequence (all of it when n exceeds its length).
// This mirrors a single exploration run's sampler cache, cleared at the
// run boundary by simply discarding the Cached value.
type Cached struct {
	Base  Sampler
	cache map[cacheKey][]arb.Pick[any]
}

// NewCached wraps base with memoization.
func NewCached(base Sampler) *Cached {
	return &Cached{Base: base, cache: make(map[cacheKey][]arb.Pick[any])}
}

func (c *Cached) Sample(a arb.Arbitrary[any], n int) []arb.Pick[any] {
	return c.sample(a, n, false)
}

func (c *Cached) SampleWithBias(a arb.Arbitrary[any], n int) []arb.Pick[any] {
	return c.sample(a, n, true)
}

func (c *Cached) sample(a arb.Arbitrary[any], n int, biased bool) []arb.Pick[any] {
	key := cacheKey{biased: biased}
	if cached, ok := c.cache[key]; ok {
		if n <= len(cached) {
			return cached[:n]
		}
		return cached
	}
	var out []arb.Pick[any]
	if biased {
		out = c.Base.SampleWithBias(a, n)
	} else {
		out = c.Base.Sample(a, n)
	}
	c.cache[key] = out
	return out
}

// Deduping guarantees all returned values are distinct within one call,
// retrying up to a bounded budget before yielding fewer than n.
type Deduping struct {
	Base        Sampler
	RetryBudget int // per missing item; default 50
}

// NewDeduping wraps base with a dedup retry loop.
func NewDeduping(base Sampler) *Deduping {
	return &Deduping{Base: base, RetryBudget: 50}
}

func (d *Deduping) Sample(a arb.Arbitrary[any], n int) []arb.Pick[any] {
	return d.dedupe(a, n, false)
}

func (d *Deduping) SampleWithBias(a arb.Arbitrary[any], n int) []arb.Pick[any] {
	return d.dedupe(a, n, true)
}

func (d *Deduping) dedupe(a arb.Arbitrary[any], n int, biased bool) []arb.Pick[any] {
	budget := d.RetryBudget
	if budget <= 0 {
		budget = 50
	}
	seen := make(map[string]struct{}, n)
	out := make([]arb.Pick[any], 0, n)
	tries := 0
	maxTries := n * budget
	for len(out) < n && tries < maxTries {
		tries++
		var batch []arb.Pick[any]
		if biased {
			batch = d.Base.SampleWithBias(a, 1)
		} else {
			batch = d.Base.Sample(a, 1)
		}
		if len(batch) == 0 {
			continue
		}
		p := batch[0]
		k := arbSig(p.Value)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, p)
	}
	return out
}

func arbSig(v any) string { return fmt.Sprintf("%#v", v) }
