// Package stateful runs command sequences against a model/SUT pair,
// checking pre/postconditions and invariants at every step and shrinking a
// failing sequence down to a minimal reproduction, per spec.md §4.6.
package stateful

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/fluentgo/fluentgo/arb"
)

// Command describes one state transition: Arbitraries supplies the
// arguments to draw, Precondition gates when the command is enabled against
// the current model, Execute mutates the model and drives the SUT, and
// Postcondition checks the transition's outcome. Precondition and
// Postcondition are optional; Execute is required.
type Command[M, S any] struct {
	Name          string
	Arbitraries   map[string]arb.Arbitrary[any]
	Precondition  func(model M) bool
	Execute       func(args map[string]any, model *M, sut S) (result any, err error)
	Postcondition func(args map[string]any, model M, sut S, result any) bool
}

// StateMachine is a complete model/SUT system under test: a fresh model and
// SUT are built per run from ModelFactory/SutFactory, mutated in lockstep by
// Commands, and checked after every step by Invariants.
type StateMachine[M, S any] struct {
	ModelFactory func() M
	SutFactory   func() S
	Commands     []Command[M, S]
	Invariants   []func(model M, sut S) bool
}

// Config bounds a stateful check run.
type Config struct {
	NumRuns     int   // default 100
	MaxCommands int   // default 50
	Seed        int64 // default: derived from time
	Verbose     bool  // log command errors seen during generation
}

// DefaultConfig matches spec.md's documented defaults.
func DefaultConfig() Config { return Config{NumRuns: 100, MaxCommands: 50} }

func (c Config) effectiveSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

// Step is one entry of a command sequence: the command's name and drawn
// arguments, plus (once executed) its result.
type Step[M, S any] struct {
	CommandName string
	Args        map[string]any
	Result      any
	Err         error
}

// Result reports a Check run's verdict.
type Result[M, S any] struct {
	Satisfiable     bool
	FailingSequence []Step[M, S]
	FailureReason   string
	FailedStep      int
	Seed            int64
	RunsExecuted    int
}

// Check runs up to cfg.NumRuns generated command sequences against sm,
// returning the first failure (minimized) or a satisfiable verdict if none
// fail.
func Check[M, S any](sm StateMachine[M, S], cfg Config) Result[M, S] {
	if cfg.NumRuns <= 0 {
		cfg.NumRuns = 100
	}
	if cfg.MaxCommands <= 0 {
		cfg.MaxCommands = 50
	}
	seed := cfg.effectiveSeed()
	rng := rand.New(rand.NewSource(seed))

	for run := 0; run < cfg.NumRuns; run++ {
		seq := generateSequence(sm, cfg, rng)
		res := execute(sm, seq)
		if res.Satisfiable {
			continue
		}
		minimized := shrinkSequence(sm, seq)
		final := execute(sm, minimized)
		final.Seed = seed
		final.RunsExecuted = run + 1
		return final
	}

	return Result[M, S]{Satisfiable: true, Seed: seed, RunsExecuted: cfg.NumRuns}
}

// generateSequence draws a command sequence of length uniform in
// [0, cfg.MaxCommands], filtering by precondition over the model at each
// step and picking uniformly among enabled commands. Per spec.md §4.6, the
// SUT should be a null-proxy during generation so only the model drives
// precondition consistency; Go generics give us no universal no-op value
// for an arbitrary SUT type S, so generation instead runs against a
// throwaway SUT built from the same factory and discarded afterward — the
// one place this runner's behavior deviates from the strict null-proxy
// wording, recorded as a documented tradeoff rather than a silent gap.
func generateSequence[M, S any](sm StateMachine[M, S], cfg Config, rng *rand.Rand) []Step[M, S] {
	length := rng.Intn(cfg.MaxCommands + 1)
	model := sm.ModelFactory()
	scratchSut := sm.SutFactory()

	steps := make([]Step[M, S], 0, length)
	for i := 0; i < length; i++ {
		enabled := enabledCommands(sm.Commands, model)
		if len(enabled) == 0 {
			break
		}
		cmd := enabled[rng.Intn(len(enabled))]
		args := drawArgs(cmd, rng)
		if _, err := safeExecute(cmd, args, &model, scratchSut); err != nil && cfg.Verbose {
			fmt.Printf("[stateful] generation: command %q errored: %v\n", cmd.Name, err)
		}
		steps = append(steps, Step[M, S]{CommandName: cmd.Name, Args: args})
	}
	return steps
}

func enabledCommands[M, S any](cmds []Command[M, S], model M) []Command[M, S] {
	out := make([]Command[M, S], 0, len(cmds))
	for _, c := range cmds {
		if c.Precondition == nil || c.Precondition(model) {
			out = append(out, c)
		}
	}
	return out
}

func drawArgs[M, S any](cmd Command[M, S], rng *rand.Rand) map[string]any {
	args := make(map[string]any, len(cmd.Arbitraries))
	for name, a := range cmd.Arbitraries {
		pick, _ := a.Pick(rng, arb.Range{})
		args[name] = pick.Value
	}
	return args
}

// execute replays seq from a fresh model/SUT pair, checking precondition,
// execute errors, postcondition, and every invariant after each step, per
// spec.md §4.6's four-point execution order.
func execute[M, S any](sm StateMachine[M, S], seq []Step[M, S]) Result[M, S] {
	model := sm.ModelFactory()
	sut := sm.SutFactory()
	history := make([]Step[M, S], 0, len(seq))

	for i, st := range seq {
		cmd, ok := findCommand(sm.Commands, st.CommandName)
		if !ok {
			continue
		}
		if cmd.Precondition != nil && !safePrecondition(cmd.Precondition, model) {
			return Result[M, S]{FailingSequence: history, FailureReason: "precondition violated", FailedStep: i}
		}

		result, err := safeExecute(cmd, st.Args, &model, sut)
		step := Step[M, S]{CommandName: cmd.Name, Args: st.Args, Result: result, Err: err}
		history = append(history, step)
		if err != nil {
			return Result[M, S]{FailingSequence: history, FailureReason: fmt.Sprintf("execute error: %v", err), FailedStep: i}
		}

		if cmd.Postcondition != nil && !safePostcondition(cmd, st.Args, model, sut, result) {
			return Result[M, S]{FailingSequence: history, FailureReason: "postcondition violated", FailedStep: i}
		}

		for _, inv := range sm.Invariants {
			if !safeInvariant(inv, model, sut) {
				return Result[M, S]{FailingSequence: history, FailureReason: "invariant violated", FailedStep: i}
			}
		}
	}
	return Result[M, S]{Satisfiable: true, FailingSequence: history}
}

func findCommand[M, S any](cmds []Command[M, S], name string) (Command[M, S], bool) {
	for _, c := range cmds {
		if c.Name == name {
			return c, true
		}
	}
	var zero Command[M, S]
	return zero, false
}

// safePrecondition/safeExecute/safePostcondition/safeInvariant all guard
// user callbacks: a panic is treated the same as a false/error result
// rather than crashing the run, per spec.md §4.6's "unhandled exception ->
// fail" wording.
func safePrecondition[M any](pred func(M) bool, model M) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()
	return pred(model)
}

func safeExecute[M, S any](cmd Command[M, S], args map[string]any, model *M, sut S) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return cmd.Execute(args, model, sut)
}

func safePostcondition[M, S any](cmd Command[M, S], args map[string]any, model M, sut S, result any) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()
	return cmd.Postcondition(args, model, sut, result)
}

func safeInvariant[M, S any](inv func(model M, sut S) bool, model M, sut S) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()
	return inv(model, sut)
}

// shrinkSequence applies spec.md §4.6's two-phase shrink: a binary search
// for the shortest failing prefix, then greedy single-command deletion
// until no removal preserves the failure.
func shrinkSequence[M, S any](sm StateMachine[M, S], seq []Step[M, S]) []Step[M, S] {
	prefix := shrinkPrefix(sm, seq)
	return shrinkDelete(sm, prefix)
}

func shrinkPrefix[M, S any](sm StateMachine[M, S], seq []Step[M, S]) []Step[M, S] {
	if len(seq) == 0 {
		return seq
	}
	lo, hi := 1, len(seq)
	for lo < hi {
		mid := (lo + hi) / 2
		if !execute(sm, seq[:mid]).Satisfiable {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return seq[:lo]
}

func shrinkDelete[M, S any](sm StateMachine[M, S], seq []Step[M, S]) []Step[M, S] {
	current := seq
	for {
		removed := false
		for i := range current {
			candidate := make([]Step[M, S], 0, len(current)-1)
			candidate = append(candidate, current[:i]...)
			candidate = append(candidate, current[i+1:]...)
			if !execute(sm, candidate).Satisfiable {
				current = candidate
				removed = true
				break
			}
		}
		if !removed {
			return current
		}
	}
}
