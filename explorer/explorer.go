// Package explorer implements the traversal algorithm of spec.md §4.3: it
// walks a scenario's quantifier chain via nested sample loops, evaluates
// the assertion at each leaf, and decides satisfiability — handing back
// the deciding example with its live shrinkers (the check package runs
// shrink on them), and checking Bayesian confidence termination and a
// wall-clock deadline along the way.
package explorer

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/fluentgo/fluentgo/arb"
	"github.com/fluentgo/fluentgo/ferr"
	"github.com/fluentgo/fluentgo/scenario"
	"github.com/fluentgo/fluentgo/stats"
)

// Config parameterizes one exploration run; it is the Explorer's view of
// spec.md §6.3's strategy options.
type Config struct {
	SampleSize       int
	ShrinkSize       int
	Bias             bool
	Dedup            bool
	Confidence       stats.ConfidenceConfig
	TimeoutMs        int64
	Logger           zerolog.Logger
	OnProgress       func(testsRun, testsPassed int)
	ProgressInterval int
	// InnerWitnessTries bounds how many draws a quantifier nested under an
	// outer one gets before that outer case counts as resolved (found/not
	// found a witness, or exhausted without a counterexample); only the
	// root quantifier uses SampleSize. spec.md doesn't name this budget
	// explicitly — it falls out of needing *some* bound on the nested
	// search so it can't run unbounded.
	InnerWitnessTries int
}

// DefaultConfig matches spec.md's documented defaults.
func DefaultConfig() Config {
	return Config{
		SampleSize:        1000,
		ShrinkSize:        500,
		Confidence:        stats.DefaultConfidenceConfig(),
		ProgressInterval:  100,
		InnerWitnessTries: 200,
		Logger:            zerolog.Nop(),
	}
}

// Result is the Explorer's verdict before the Shrinker runs (the check
// package invokes shrink.Minimize on the Result's Example, whether a
// counterexample or a witness).
type Result struct {
	Satisfiable     bool
	Example         map[string]any
	// ExampleShrinkers carries the live shrinker each quantifier's bound
	// value was generated together with, keyed by quantifier name. A
	// shrinker is only meaningful paired with the exact value it was
	// produced alongside, so the Explorer hands these over rather than
	// making shrink re-derive a shrinker from a bare value.
	ExampleShrinkers map[string]arb.Shrinker[any]
	Seed             int64
	TestsRun         int
	TestsPassed      int
	TestsDiscarded   int
	ExecutionTimeMs  int64
	Statistics       *stats.Context
	FailureCause     error
}

type runState struct {
	sc        scenario.Scenario
	cfg       Config
	rng       *rand.Rand
	bindings  map[string]any
	shrinkers map[string]arb.Shrinker[any]
	deadline  time.Time
	res       *Result
}

// Run evaluates sc against cfg, seeded by seed, returning a verdict.
func Run(sc scenario.Scenario, cfg Config, seed int64) Result {
	if !sc.Runnable() {
		panic(ferr.NewMisuse("scenario has no assertion leaf"))
	}
	start := time.Now()
	statsCtx := stats.NewContext()
	quantifiers := sc.Quantifiers()

	res := Result{Seed: seed, Statistics: statsCtx}
	var deadline time.Time
	if cfg.TimeoutMs > 0 {
		deadline = start.Add(time.Duration(cfg.TimeoutMs) * time.Millisecond)
	}
	if cfg.InnerWitnessTries <= 0 {
		cfg.InnerWitnessTries = 200
	}
	if cfg.SampleSize <= 0 {
		cfg.SampleSize = 1000
	}

	for _, q := range quantifiers {
		if q.Arbitrary.Size().Kind == arb.SizeExact && q.Arbitrary.Size().Value == 0 {
			res.Satisfiable = q.QuantifierKind != scenario.Exists
			res.ExecutionTimeMs = millisSince(start)
			return res
		}
	}

	st := &runState{
		sc:        sc,
		cfg:       cfg,
		rng:       rand.New(rand.NewSource(seed)),
		bindings:  make(map[string]any, len(quantifiers)),
		shrinkers: make(map[string]arb.Shrinker[any], len(quantifiers)),
		deadline:  deadline,
		res:       &res,
	}

	if len(quantifiers) == 0 {
		pass, discarded, cause := st.evalCase(statsCtx)
		if !discarded {
			res.TestsRun++
			if pass {
				res.TestsPassed++
			}
		}
		res.Satisfiable = pass
		res.FailureCause = cause
		res.ExecutionTimeMs = millisSince(start)
		return res
	}

	satisfied, example, shrinkers, cause := st.recurse(quantifiers, 0, statsCtx)
	res.Satisfiable = satisfied
	res.Example = example
	res.ExampleShrinkers = shrinkers
	res.FailureCause = cause
	res.ExecutionTimeMs = millisSince(start)
	return res
}

// recurse resolves qs[idx] by drawing samples and, for each, either
// evaluating the leaf assertion (idx is the innermost quantifier) or
// recursing to qs[idx+1]. ForAll stops at the first failing draw; Exists
// stops at the first succeeding one. Only idx==0 drives TestsRun/progress/
// confidence-termination/deadline — nested levels use a fixed witness
// budget, per spec.md §4.3.
func (st *runState) recurse(qs []scenario.Node, idx int, statsCtx *stats.Context) (bool, map[string]any, map[string]arb.Shrinker[any], error) {
	q := qs[idx]
	isRoot := idx == 0
	isLeafLevel := idx == len(qs)-1

	tries := st.cfg.InnerWitnessTries
	if isRoot {
		tries = st.cfg.SampleSize
	}

	real, attempted := 0, 0
	maxAttempts := tries * 10
	for real < tries && attempted < maxAttempts {
		attempted++
		if isRoot && st.deadlineHit() {
			break
		}
		pick, shrinker := q.Arbitrary.Pick(st.rng, arb.Range{})
		st.bindings[q.Name] = pick.Value
		st.shrinkers[q.Name] = shrinker

		var pass, discarded bool
		var cause error
		var nestedShrinkers map[string]arb.Shrinker[any]
		if isLeafLevel {
			pass, discarded, cause = st.evalCase(statsCtx)
		} else {
			pass, _, nestedShrinkers, cause = st.recurse(qs, idx+1, statsCtx)
		}

		if discarded {
			st.res.TestsDiscarded++
			continue
		}
		real++
		if isRoot {
			st.res.TestsRun++
			if pass {
				st.res.TestsPassed++
			}
			st.emitProgress()
		}

		if q.QuantifierKind == scenario.ForAll {
			if !pass {
				return false, cloneBindings(st.bindings), st.cloneShrinkers(nestedShrinkers), cause
			}
			if isRoot && stats.ShouldStop(st.cfg.Confidence, st.res.TestsRun, st.res.TestsPassed, st.res.TestsRun-st.res.TestsPassed) {
				return true, nil, nil, nil
			}
		} else {
			if pass {
				return true, cloneBindings(st.bindings), st.cloneShrinkers(nestedShrinkers), nil
			}
		}
	}

	if q.QuantifierKind == scenario.ForAll {
		return true, nil, nil, nil
	}
	return false, nil, nil, nil
}

// cloneShrinkers merges st.shrinkers (the current level's and its
// ancestors') with any nested-level shrinkers returned from deeper in the
// recursion, keyed by quantifier name, into a fresh map safe to hand back
// to the caller.
func (st *runState) cloneShrinkers(nested map[string]arb.Shrinker[any]) map[string]arb.Shrinker[any] {
	out := make(map[string]arb.Shrinker[any], len(st.shrinkers))
	for k, v := range st.shrinkers {
		out[k] = v
	}
	for k, v := range nested {
		out[k] = v
	}
	return out
}

func (st *runState) evalCase(statsCtx *stats.Context) (pass bool, discarded bool, failCause error) {
	statsCtx.BeginCase()
	stats.Install(statsCtx)
	defer stats.Clear()
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(*ferr.PreconditionFailure); ok {
				discarded = true
				return
			}
			if err, ok := r.(error); ok {
				failCause = err
				return
			}
			failCause = fmt.Errorf("panic: %v", r)
		}
	}()
	for _, n := range st.sc.Nodes {
		switch n.Kind {
		case scenario.KindGivenConstant:
			st.bindings[n.Name] = n.ConstValue
		case scenario.KindGivenMutable:
			st.bindings[n.Name] = n.Factory()
		case scenario.KindWhen:
			n.WhenFn(st.bindings)
		case scenario.KindAssert:
			pass = n.Predicate(st.bindings)
			return
		}
	}
	return
}

func (st *runState) deadlineHit() bool {
	return !st.deadline.IsZero() && time.Now().After(st.deadline)
}

func (st *runState) emitProgress() {
	if st.cfg.OnProgress == nil {
		return
	}
	interval := st.cfg.ProgressInterval
	if interval <= 0 {
		interval = 100
	}
	if st.res.TestsRun%interval != 0 {
		return
	}
	func() {
		defer func() {
			if r := recover(); r != nil {
				st.cfg.Logger.Warn().Interface("panic", r).Msg("onProgress callback failed")
			}
		}()
		st.cfg.OnProgress(st.res.TestsRun, st.res.TestsPassed)
	}()
}

func cloneBindings(b map[string]any) map[string]any {
	out := make(map[string]any, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

func millisSince(start time.Time) int64 { return time.Since(start).Milliseconds() }
