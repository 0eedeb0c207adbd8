package explorer

import (
	"testing"

	"github.com/fluentgo/fluentgo/arb"
	"github.com/fluentgo/fluentgo/scenario"
)

func intArb(lo, hi int) arb.Arbitrary[any] {
	return arb.Map(arb.IntRange(lo, hi), func(n int) any { return n })
}

func TestRunForAllSatisfiable(t *testing.T) {
	sc := scenario.Empty().
		ForAll("a", intArb(-100, 100)).
		ForAll("b", intArb(-100, 100)).
		Assert(func(bindings map[string]any) bool {
			a, b := bindings["a"].(int), bindings["b"].(int)
			return a+b == b+a
		})

	res := Run(sc, DefaultConfig(), 1)
	if !res.Satisfiable {
		t.Fatalf("expected satisfiable, got counterexample %#v", res.Example)
	}
	if res.TestsRun == 0 {
		t.Fatal("expected at least one test to run")
	}
}

func TestRunForAllFindsCounterexample(t *testing.T) {
	sc := scenario.Empty().
		ForAll("x", intArb(1, 1000)).
		Assert(func(bindings map[string]any) bool {
			return bindings["x"].(int) <= 500
		})

	cfg := DefaultConfig()
	res := Run(sc, cfg, 99)
	if res.Satisfiable {
		t.Fatal("expected an unsatisfiable result")
	}
	if res.Example == nil {
		t.Fatal("expected a counterexample")
	}
	if res.ExampleShrinkers["x"] == nil {
		t.Fatal("expected a live shrinker captured for x")
	}
}

func TestRunExistsFindsWitness(t *testing.T) {
	sc := scenario.Empty().
		Exists("z", intArb(-50, 50)).
		Assert(func(bindings map[string]any) bool {
			return bindings["z"].(int) == 0
		})

	res := Run(sc, DefaultConfig(), 7)
	if !res.Satisfiable {
		t.Fatal("expected a witness to be found")
	}
	if res.Example["z"].(int) != 0 {
		t.Fatalf("expected witness z=0, got %#v", res.Example)
	}
}

func TestRunExistsExhaustsWithoutWitness(t *testing.T) {
	sc := scenario.Empty().
		Exists("z", intArb(1, 10)).
		Assert(func(bindings map[string]any) bool {
			return bindings["z"].(int) == 1000
		})

	cfg := DefaultConfig()
	cfg.SampleSize = 50
	res := Run(sc, cfg, 3)
	if res.Satisfiable {
		t.Fatal("expected no witness to be found")
	}
}

func TestRunEmptyScenarioPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected a panic for a non-runnable scenario")
		}
	}()
	Run(scenario.Empty(), DefaultConfig(), 1)
}

func TestRunNestedQuantifiersThreadShrinkers(t *testing.T) {
	sc := scenario.Empty().
		ForAll("a", intArb(-20, 20)).
		ForAll("b", intArb(1, 20)).
		Assert(func(bindings map[string]any) bool {
			a, b := bindings["a"].(int), bindings["b"].(int)
			return a/b != 7
		})

	res := Run(sc, DefaultConfig(), 42)
	if res.Example != nil {
		if res.ExampleShrinkers["a"] == nil || res.ExampleShrinkers["b"] == nil {
			t.Fatalf("expected shrinkers for both quantifiers, got %#v", res.ExampleShrinkers)
		}
	}
}

func TestRunReportsConfidenceDrivenTermination(t *testing.T) {
	sc := scenario.Empty().
		ForAll("n", intArb(1, 10)).
		Assert(func(bindings map[string]any) bool { return true })

	cfg := DefaultConfig()
	cfg.SampleSize = 10000
	res := Run(sc, cfg, 5)
	if !res.Satisfiable {
		t.Fatal("expected a trivially true property to be satisfiable")
	}
	if res.TestsRun >= cfg.SampleSize {
		t.Fatalf("expected confidence termination to stop well short of sample size, ran %d", res.TestsRun)
	}
}
