package shrink

import (
	"math/rand"
	"testing"

	"github.com/fluentgo/fluentgo/arb"
	"github.com/fluentgo/fluentgo/ferr"
	"github.com/fluentgo/fluentgo/scenario"
)

func pickFor(t *testing.T, a arb.Arbitrary[int], seed int64) (int, arb.Shrinker[int]) {
	t.Helper()
	r := rand.New(rand.NewSource(seed))
	var v int
	var shrinker arb.Shrinker[int]
	for i := 0; i < 200; i++ {
		p, s := a.Pick(r, arb.Range{})
		if p.Value > 500 {
			v, shrinker = p.Value, s
			break
		}
	}
	if shrinker == nil {
		t.Fatal("failed to draw a starting value > 500 within 200 tries")
	}
	return v, shrinker
}

func anyShrinker(s arb.Shrinker[int]) arb.Shrinker[any] {
	return func(accept bool) (any, bool) {
		v, ok := s(accept)
		return v, ok
	}
}

func TestMinimizeShrinksForAllCounterexample(t *testing.T) {
	qs := []scenario.Node{{Kind: scenario.KindQuantifier, Name: "x", QuantifierKind: scenario.ForAll}}

	start, shrinker := pickFor(t, arb.IntRange(1, 1000), 1)
	current := map[string]any{"x": start}
	shrinkers := map[string]arb.Shrinker[any]{"x": anyShrinker(shrinker)}

	eval := func(bindings map[string]any) (bool, bool) {
		return bindings["x"].(int) <= 500, false
	}

	res := Minimize(qs, current, shrinkers, false, eval, DefaultConfig())
	x := res.Minimized["x"].(int)
	if x <= 500 {
		t.Fatalf("expected a minimized counterexample with x > 500, got %d", x)
	}
	if x >= start {
		t.Fatalf("expected shrinking to reduce x below its start %d, got %d", start, x)
	}
}

func TestMinimizeShrinksExistsWitness(t *testing.T) {
	qs := []scenario.Node{{Kind: scenario.KindQuantifier, Name: "x", QuantifierKind: scenario.Exists}}

	r := rand.New(rand.NewSource(2))
	p, shrinker := arb.IntRange(10, 1000).Pick(r, arb.Range{})
	current := map[string]any{"x": p.Value}
	shrinkers := map[string]arb.Shrinker[any]{"x": anyShrinker(shrinker)}

	eval := func(bindings map[string]any) (bool, bool) {
		return bindings["x"].(int) >= 10, false
	}

	res := Minimize(qs, current, shrinkers, true, eval, DefaultConfig())
	x := res.Minimized["x"].(int)
	if x < 10 {
		t.Fatalf("expected the witness to remain valid (x >= 10), got %d", x)
	}
}

func TestMinimizeTreatsPreconditionDiscardAsNoProgress(t *testing.T) {
	qs := []scenario.Node{{Kind: scenario.KindQuantifier, Name: "x", QuantifierKind: scenario.ForAll}}

	start, shrinker := pickFor(t, arb.IntRange(1, 1000), 9)
	current := map[string]any{"x": start}
	shrinkers := map[string]arb.Shrinker[any]{"x": anyShrinker(shrinker)}

	eval := func(bindings map[string]any) (bool, bool) {
		x := bindings["x"].(int)
		if x%2 == 0 {
			panic(ferr.NewPrecondition("even values are discarded"))
		}
		return x <= 500, false
	}

	res := Minimize(qs, current, shrinkers, false, eval, DefaultConfig())
	x := res.Minimized["x"].(int)
	if x <= 500 {
		t.Fatalf("expected minimized x > 500, got %d", x)
	}
	if x%2 == 0 {
		t.Fatalf("expected the minimized example to satisfy the non-discard condition (odd), got %d", x)
	}
}

func TestMinimizeStopsAtAttemptBudget(t *testing.T) {
	qs := []scenario.Node{{Kind: scenario.KindQuantifier, Name: "x", QuantifierKind: scenario.ForAll}}
	start, shrinker := pickFor(t, arb.IntRange(1, 1000), 5)
	current := map[string]any{"x": start}
	shrinkers := map[string]arb.Shrinker[any]{"x": anyShrinker(shrinker)}

	eval := func(bindings map[string]any) (bool, bool) {
		return bindings["x"].(int) <= 500, false
	}

	cfg := Config{MaxAttempts: 3, MaxRounds: 50, BatchSize: 1}
	res := Minimize(qs, current, shrinkers, false, eval, cfg)
	if res.Attempts > 3 {
		t.Fatalf("expected attempts to be capped at 3, got %d", res.Attempts)
	}
}

func TestMinimizeNoShrinkerIsANoop(t *testing.T) {
	qs := []scenario.Node{{Kind: scenario.KindQuantifier, Name: "x", QuantifierKind: scenario.ForAll}}
	current := map[string]any{"x": 999}
	eval := func(bindings map[string]any) (bool, bool) { return false, false }

	res := Minimize(qs, current, nil, false, eval, DefaultConfig())
	if res.Minimized["x"].(int) != 999 {
		t.Fatalf("expected unchanged value with no shrinker, got %#v", res.Minimized["x"])
	}
	if res.Attempts != 0 {
		t.Fatalf("expected zero attempts with no shrinker, got %d", res.Attempts)
	}
}
