package stateful

import (
	"errors"
	"testing"

	"github.com/fluentgo/fluentgo/arb"
)

// counterModel/counterSut mirror a trivial in-memory counter: the SUT is
// allowed to drift from the model by an injected bug, which the invariant
// below is meant to catch.
type counterModel struct{ value int }

type counterSut struct{ value *int }

func newCounterSut() counterSut {
	v := 0
	return counterSut{value: &v}
}

func TestCheckStateMachinePasses(t *testing.T) {
	sm := StateMachine[counterModel, counterSut]{
		ModelFactory: func() counterModel { return counterModel{} },
		SutFactory:   newCounterSut,
		Commands: []Command[counterModel, counterSut]{
			{
				Name:        "incr",
				Arbitraries: map[string]arb.Arbitrary[any]{"delta": arb.Map(arb.IntRange(1, 10), func(n int) any { return n })},
				Execute: func(args map[string]any, model *counterModel, sut counterSut) (any, error) {
					delta := args["delta"].(int)
					model.value += delta
					*sut.value += delta
					return nil, nil
				},
			},
		},
		Invariants: []func(model counterModel, sut counterSut) bool{
			func(model counterModel, sut counterSut) bool { return model.value == *sut.value },
		},
	}

	res := Check(sm, Config{NumRuns: 20, MaxCommands: 10, Seed: 1})
	if !res.Satisfiable {
		t.Fatalf("expected satisfiable, got failure: %s at step %d", res.FailureReason, res.FailedStep)
	}
}

func TestCheckStateMachineFindsDrift(t *testing.T) {
	sm := StateMachine[counterModel, counterSut]{
		ModelFactory: func() counterModel { return counterModel{} },
		SutFactory:   newCounterSut,
		Commands: []Command[counterModel, counterSut]{
			{
				Name:        "incr",
				Arbitraries: map[string]arb.Arbitrary[any]{"delta": arb.Map(arb.IntRange(1, 10), func(n int) any { return n })},
				Execute: func(args map[string]any, model *counterModel, sut counterSut) (any, error) {
					delta := args["delta"].(int)
					model.value += delta
					// Deliberately buggy: the SUT drops deltas over 5.
					if delta <= 5 {
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

	res := Check(sm, Config{NumRuns: 50, MaxCommands: 20, Seed: 7})
	if res.Satisfiable {
		t.Fatal("expected the drift bug to be caught")
	}
	if res.FailureReason != "invariant violated" {
		t.Errorf("expected invariant violation, got %q", res.FailureReason)
	}
	// The shrunk failing sequence should contain only commands needed to
	// trigger the drift: at least one delta over 5.
	bigDelta := false
	for _, step := range res.FailingSequence {
		if step.CommandName != "incr" {
			t.Errorf("unexpected command %q in shrunk sequence", step.CommandName)
		}
		if d, ok := step.Args["delta"].(int); ok && d > 5 {
			bigDelta = true
		}
	}
	if !bigDelta {
		t.Errorf("expected a delta over 5 in the shrunk sequence, got %+v", res.FailingSequence)
	}
}

func TestCheckStateMachinePreconditionGatesCommands(t *testing.T) {
	sm := StateMachine[counterModel, counterSut]{
		ModelFactory: func() counterModel { return counterModel{} },
		SutFactory:   newCounterSut,
		Commands: []Command[counterModel, counterSut]{
			{
				Name: "decr",
				Precondition: func(model counterModel) bool {
					return model.value > 0
				},
				Execute: func(args map[string]any, model *counterModel, sut counterSut) (any, error) {
					model.value--
					*sut.value--
					return nil, nil
				},
			},
		},
	}

	res := Check(sm, Config{NumRuns: 10, MaxCommands: 10, Seed: 3})
	if !res.Satisfiable {
		t.Fatalf("expected satisfiable (decr never enabled from 0), got failure: %s", res.FailureReason)
	}
}

func TestCheckStateMachineExecuteError(t *testing.T) {
	sm := StateMachine[counterModel, counterSut]{
		ModelFactory: func() counterModel { return counterModel{} },
		SutFactory:   newCounterSut,
		Commands: []Command[counterModel, counterSut]{
			{
				Name: "fail",
				Execute: func(args map[string]any, model *counterModel, sut counterSut) (any, error) {
					return nil, errors.New("boom")
				},
			},
		},
	}

	res := Check(sm, Config{NumRuns: 5, MaxCommands: 3, Seed: 9})
	if res.Satisfiable {
		t.Fatal("expected the always-erroring command to fail the run")
	}
}

func TestStatefulBuilder(t *testing.T) {
	res := Stateful[counterModel, counterSut]().
		Model(func() counterModel { return counterModel{} }).
		Sut(newCounterSut).
		Command("incr").
		ForAll("delta", arb.Map(arb.IntRange(1, 5), func(n int) any { return n })).
		Run(func(args map[string]any, model *counterModel, sut counterSut) (any, error) {
			delta := args["delta"].(int)
			model.value += delta
			*sut.value += delta
			return nil, nil
		}).
		Post(func(args map[string]any, model counterModel, sut counterSut, result any) bool {
			return model.value == *sut.value
		}).
		Invariant(func(model counterModel, sut counterSut) bool { return model.value == *sut.value }).
		Check(Config{NumRuns: 10, MaxCommands: 5, Seed: 42})

	if !res.Satisfiable {
		t.Fatalf("expected builder-assembled machine to pass, got: %s", res.FailureReason)
	}
}
