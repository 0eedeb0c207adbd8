package sampler

import (
	"testing"

	"github.com/fluentgo/fluentgo/arb"
)

func anyInts(lo, hi int) arb.Arbitrary[any] {
	return arb.Map(arb.IntRange(lo, hi), func(n int) any { return n })
}

func TestRandomSampleDeterministicForFixedSeed(t *testing.T) {
	a := anyInts(0, 1000)
	first := NewRandom(42).Sample(a, 20)
	second := NewRandom(42).Sample(a, 20)
	if len(first) != len(second) {
		t.Fatalf("expected equal-length samples, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Value != second[i].Value {
			t.Fatalf("expected identical sequences from the same seed, diverged at index %d", i)
		}
	}
}

func TestBiasedPrefersCornerCasesFirst(t *testing.T) {
	base := NewRandom(1)
	biased := &Biased{Base: base}
	a := arb.Map(arb.Bool(), func(b bool) any { return b })

	out := biased.SampleWithBias(a, 2)
	corners := a.CornerCases()
	if len(out) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(out))
	}
	for i, c := range corners {
		if i >= len(out) {
			break
		}
		if out[i].Value != c.Value {
			t.Fatalf("expected corner case %v at position %d, got %v", c.Value, i, out[i].Value)
		}
	}
}

func TestCachedReturnsSameSequenceOnRepeatCalls(t *testing.T) {
	a := anyInts(0, 1000)
	cached := NewCached(NewRandom(7))

	first := cached.Sample(a, 10)
	second := cached.Sample(a, 10)
	if len(first) != len(second) {
		t.Fatalf("expected cached calls to return equal length, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Value != second[i].Value {
			t.Fatalf("expected cached sequence to repeat, diverged at index %d", i)
		}
	}
}

func TestCachedReturnsPrefixForSmallerN(t *testing.T) {
	a := anyInts(0, 1000)
	cached := NewCached(NewRandom(7))

	full := cached.Sample(a, 10)
	prefix := cached.Sample(a, 3)
	if len(prefix) != 3 {
		t.Fatalf("expected a 3-length prefix, got %d", len(prefix))
	}
	for i := range prefix {
		if prefix[i].Value != full[i].Value {
			t.Fatalf("expected prefix to match the cached full sequence at index %d", i)
		}
	}
}

func TestDedupingReturnsDistinctValues(t *testing.T) {
	a := anyInts(0, 5)
	d := NewDeduping(NewRandom(3))

	out := d.Sample(a, 6)
	seen := make(map[any]bool, len(out))
	for _, p := range out {
		if seen[p.Value] {
			t.Fatalf("expected distinct values, got a repeat of %v", p.Value)
		}
		seen[p.Value] = true
	}
	if len(out) > 6 {
		t.Fatalf("expected at most 6 values, got %d", len(out))
	}
}

func TestDedupingYieldsFewerThanNWhenSpaceExhausted(t *testing.T) {
	a := anyInts(0, 1)
	d := NewDeduping(NewRandom(9))

	out := d.Sample(a, 10)
	if len(out) > 2 {
		t.Fatalf("expected at most 2 distinct values from a 2-valued domain, got %d", len(out))
	}
}
