package main

import (
	"fmt"
	"sort"

	"github.com/fluentgo/fluentgo/arb"
	"github.com/fluentgo/fluentgo/check"
	"github.com/fluentgo/fluentgo/stateful"
	"github.com/fluentgo/fluentgo/stats"
)

// outcome is the CLI's format-agnostic view over either a check.Result or a
// stateful.Result, the two shapes spec.md §8's end-to-end scenario list
// produces.
type outcome struct {
	Satisfiable bool
	Seed        int64
	Summary     string
	Statistics  *stats.Context
	TestsRun    int
}

type boundScenario func(seed int64, strategy check.Strategy) outcome

// scenarios bundles spec.md §8's end-to-end testable properties as runnable
// examples, the set `fluentgo run <name>` dispatches against.
var scenarios = map[string]boundScenario{
	"addition-commutativity": runAdditionCommutativity,
	"zero-existence":         runZeroExistence,
	"threshold-violation":    runThresholdViolation,
	"filter-correctness":     runFilterCorrectness,
	"counter-stateful":       runCounterStateful,
}

// scenarioNames returns the bundled scenario names, sorted for stable help
// text and listing output.
func scenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func asInt(n int) any { return n }

func runAdditionCommutativity(seed int64, strategy check.Strategy) outcome {
	res := check.Scenario().
		ForAll("a", arb.Map(arb.IntRange(-1000, 1000), asInt)).
		ForAll("b", arb.Map(arb.IntRange(-1000, 1000), asInt)).
		Then(func(bindings map[string]any) bool {
			a, b := bindings["a"].(int), bindings["b"].(int)
			return a+b == b+a
		}).
		Config(strategy).
		WithGenerator(seed).
		Check()
	return fromCheckResult(res)
}

func runZeroExistence(seed int64, strategy check.Strategy) outcome {
	res := check.Scenario().
		Exists("z", arb.Map(arb.IntRange(-100, 100), asInt)).
		ForAll("a", arb.Map(arb.IntRange(-1000, 1000), asInt)).
		Then(func(bindings map[string]any) bool {
			a, z := bindings["a"].(int), bindings["z"].(int)
			return a+z == a
		}).
		Config(strategy).
		WithGenerator(seed).
		Check()
	return fromCheckResult(res)
}

func runThresholdViolation(seed int64, strategy check.Strategy) outcome {
	res := check.Scenario().
		ForAll("x", arb.Map(arb.IntRange(1, 1000), asInt)).
		Then(func(bindings map[string]any) bool {
			return bindings["x"].(int) <= 500
		}).
		Config(strategy).
		WithGenerator(seed).
		Check()
	return fromCheckResult(res)
}

func runFilterCorrectness(seed int64, strategy check.Strategy) outcome {
	small := arb.Filter(arb.Map(arb.IntRange(0, 1000), asInt), func(v any) bool {
		return v.(int) < 10
	}, 50)
	res := check.Scenario().
		ForAll("n", small).
		Then(func(bindings map[string]any) bool {
			return bindings["n"].(int) < 10
		}).
		Config(strategy).
		WithGenerator(seed).
		Check()
	return fromCheckResult(res)
}

func fromCheckResult(res check.Result) outcome {
	summary := "no example"
	if res.Example != nil {
		summary = fmt.Sprintf("%v", res.Example)
	}
	return outcome{
		Satisfiable: res.Satisfiable,
		Seed:        res.Seed,
		Summary:     fmt.Sprintf("tests=%d passed=%d discarded=%d example=%s", res.TestsRun, res.TestsPassed, res.TestsDiscarded, summary),
		Statistics:  res.Statistics,
		TestsRun:    res.TestsRun,
	}
}

// counterModel/counterSut ground the stateful command-sequence runner's
// bundled example: an in-memory counter whose Sut intentionally diverges
// from its Model once the running total exceeds a threshold, giving the
// shrinker a reliably reproducible invariant violation to minimize.
type counterModel struct{ value int }
type counterSut struct{ value *int }

func newCounterSut() counterSut {
	v := 0
	return counterSut{value: &v}
}

func runCounterStateful(seed int64, strategy check.Strategy) outcome {
	sm := stateful.StateMachine[counterModel, counterSut]{
		ModelFactory: func() counterModel { return counterModel{} },
		SutFactory:   newCounterSut,
		Commands: []stateful.Command[counterModel, counterSut]{
			{
				Name:        "incr",
				Arbitraries: map[string]arb.Arbitrary[any]{"delta": arb.Map(arb.IntRange(1, 20), asInt)},
				Execute: func(args map[string]any, model *counterModel, sut counterSut) (any, error) {
					delta := args["delta"].(int)
					model.value += delta
					if model.value <= 100 {
						*sut.value += delta
					}
					return nil, nil
				},
			},
		},
		Invariants: []func(model counterModel, sut counterSut) bool{
			func(model counterModel, sut counterSut) bool { return model.value == *sut.value },
		},
	}

	res := stateful.Check(sm, stateful.Config{NumRuns: 100, MaxCommands: 30, Seed: seed})
	summary := fmt.Sprintf("runs=%d steps=%d", res.RunsExecuted, len(res.FailingSequence))
	if !res.Satisfiable {
		summary = fmt.Sprintf("%s reason=%q", summary, res.FailureReason)
	}
	return outcome{Satisfiable: res.Satisfiable, Seed: res.Seed, Summary: summary, TestsRun: res.RunsExecuted}
}
