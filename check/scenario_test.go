package check

import (
	"testing"

	"github.com/fluentgo/fluentgo/arb"
)

func TestAdditionCommutativity(t *testing.T) {
	res := Scenario().
		ForAll("a", arb.Map(arb.IntRange(-10, 10), func(n int) any { return n })).
		ForAll("b", arb.Map(arb.IntRange(-10, 10), func(n int) any { return n })).
		Then(func(bindings map[string]any) bool {
			a, b := bindings["a"].(int), bindings["b"].(int)
			return a+b == b+a
		}).
		WithGenerator(12345).
		Check()

	res.AssertSatisfiable(t)
}

func TestExistenceOfZero(t *testing.T) {
	res := Scenario().
		Exists("b", arb.Map(arb.IntRange(-10, 10), func(n int) any { return n })).
		ForAll("a", arb.Map(arb.IntRange(-100, 100), func(n int) any { return n })).
		Then(func(bindings map[string]any) bool {
			a, b := bindings["a"].(int), bindings["b"].(int)
			return a+b == a
		}).
		WithGenerator(7).
		Check()

	res.AssertSatisfiable(t)
	res.AssertExample(t, map[string]any{"b": 0})
}

func TestThresholdViolationShrinksToMinimum(t *testing.T) {
	res := Scenario().
		ForAll("x", arb.Map(arb.IntRange(1, 100), func(n int) any { return n })).
		Then(func(bindings map[string]any) bool {
			return bindings["x"].(int) <= 50
		}).
		WithGenerator(99).
		Check()

	res.AssertNotSatisfiable(t)
	if x, ok := res.Example["x"].(int); !ok || x <= 50 {
		t.Fatalf("expected a minimal counterexample with x > 50, got %#v", res.Example)
	}
}

func TestFilterCorrectness(t *testing.T) {
	small := arb.Filter(arb.Map(arb.IntRange(0, 100), func(n int) any { return n }), func(v any) bool {
		return v.(int) < 10
	}, 50)

	res := Scenario().
		ForAll("n", small).
		Then(func(bindings map[string]any) bool {
			return bindings["n"].(int) < 10
		}).
		WithGenerator(5).
		Check()

	res.AssertSatisfiable(t)
}

func TestPreconditionDiscardsRatherThanFails(t *testing.T) {
	res := Scenario().
		ForAll("n", arb.Map(arb.IntRange(-10, 10), func(n int) any { return n })).
		Then(func(bindings map[string]any) bool {
			n := bindings["n"].(int)
			Pre(n != 0)
			return 10/n != 0 || n > 10
		}).
		Config(Strategy{SampleSize: 200, ConfidenceLevel: 0.95, PassRateThreshold: 0.999}).
		WithGenerator(3).
		Check()

	if res.TestsDiscarded == 0 {
		t.Error("expected at least one discarded test case for n == 0")
	}
}
