package check

import (
	"math/rand"
	"time"

	"github.com/fluentgo/fluentgo/arb"
	"github.com/fluentgo/fluentgo/explorer"
	"github.com/fluentgo/fluentgo/ferr"
	"github.com/fluentgo/fluentgo/scenario"
	"github.com/fluentgo/fluentgo/shrink"
)

// Builder is the fluent scenario builder of spec.md §6.1. Scenario()
// starts a chain of .ForAll/.Exists/.Given/.When calls terminated by .Then
// (optionally extended with .And) and run via .Check.
type Builder struct {
	sc         scenario.Scenario
	predicates []func(bindings map[string]any) bool
	strategy   Strategy
	seed       int64
	hasSeed    bool
}

// Scenario starts a new scenario builder.
func Scenario() *Builder {
	return &Builder{sc: scenario.Empty(), strategy: DefaultStrategy()}
}

// ForAll adds a universally quantified variable.
func (b *Builder) ForAll(name string, a arb.Arbitrary[any]) *Builder {
	b.sc = b.sc.ForAll(name, a)
	return b
}

// Exists adds an existentially quantified variable.
func (b *Builder) Exists(name string, a arb.Arbitrary[any]) *Builder {
	b.sc = b.sc.Exists(name, a)
	return b
}

// Given binds name to a constant value in every test case.
func (b *Builder) Given(name string, value any) *Builder {
	b.sc = b.sc.GivenConstant(name, value)
	return b
}

// GivenFactory binds name to a fresh value produced by factory per test
// case, spec.md §6.1's "given(name, factory)" form.
func (b *Builder) GivenFactory(name string, factory func() any) *Builder {
	b.sc = b.sc.GivenMutable(name, factory)
	return b
}

// When adds a side-effecting step over the current binding record.
func (b *Builder) When(fn func(bindings map[string]any)) *Builder {
	b.sc = b.sc.When(fn)
	return b
}

// Then sets the scenario's terminal predicate. Calling Then twice replaces
// the predicate set entirely; use And to conjoin further predicates.
func (b *Builder) Then(predicate func(bindings map[string]any) bool) *Builder {
	b.predicates = []func(map[string]any) bool{predicate}
	return b
}

// And conjoins an additional predicate onto the one set by Then.
func (b *Builder) And(predicate func(bindings map[string]any) bool) *Builder {
	b.predicates = append(b.predicates, predicate)
	return b
}

// Config overrides the strategy used by Check.
func (b *Builder) Config(strategy Strategy) *Builder {
	b.strategy = strategy
	return b
}

// WithGenerator pins the PRNG seed Check uses, per spec.md §6.1's
// withGenerator(prngFactory, seed?). This engine's Explorer always draws
// from its own math/rand source seeded deterministically, so only the seed
// half of that option is meaningful here; a custom prngFactory has no
// analogue without making every Arbitrary generic over the RNG
// implementation, which spec.md's own design notes don't ask for.
func (b *Builder) WithGenerator(seed int64) *Builder {
	b.seed = seed
	b.hasSeed = true
	return b
}

// Check runs the assembled scenario and returns a Result.
func (b *Builder) Check() Result {
	sc := b.sc
	if len(b.predicates) > 0 {
		preds := append([]func(map[string]any) bool{}, b.predicates...)
		sc = sc.Assert(func(bindings map[string]any) bool {
			for _, p := range preds {
				if !p(bindings) {
					return false
				}
			}
			return true
		})
	}

	seed := b.seed
	if !b.hasSeed {
		seed = rand.New(rand.NewSource(time.Now().UnixNano())).Int63()
	}

	explRes := explorer.Run(sc, b.strategy.explorerConfig(), seed)
	res := Result{
		Satisfiable:     explRes.Satisfiable,
		Example:         explRes.Example,
		Seed:            explRes.Seed,
		TestsRun:        explRes.TestsRun,
		TestsPassed:     explRes.TestsPassed,
		TestsDiscarded:  explRes.TestsDiscarded,
		ExecutionTimeMs: explRes.ExecutionTimeMs,
		Statistics:      explRes.Statistics,
		FailureCause:    explRes.FailureCause,
	}

	if explRes.Example != nil {
		quantifiers := sc.Quantifiers()
		desired := explRes.Satisfiable
		minimized := shrink.Minimize(quantifiers, explRes.Example, explRes.ExampleShrinkers, desired, func(bindings map[string]any) (bool, bool) {
			return evalPredicate(sc, bindings)
		}, b.strategy.shrinkConfig())
		res.Example = minimized.Minimized
		res.ShrinkAttempts = minimized.Attempts
		res.ShrinkRounds = minimized.Rounds
	}

	return res
}

// evalPredicate replays sc's Given/When chain with bindings pre-seeded by
// the quantifier values under shrink, then evaluates the terminal
// assertion, recovering ferr.PreconditionFailure as a discard just like
// the Explorer does.
func evalPredicate(sc scenario.Scenario, bindings map[string]any) (pass bool, discarded bool) {
	live := make(map[string]any, len(bindings))
	for k, v := range bindings {
		live[k] = v
	}
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(*ferr.PreconditionFailure); ok {
				discarded = true
				return
			}
			pass = false
		}
	}()
	for _, n := range sc.Nodes {
		switch n.Kind {
		case scenario.KindGivenConstant:
			live[n.Name] = n.ConstValue
		case scenario.KindGivenMutable:
			live[n.Name] = n.Factory()
		case scenario.KindWhen:
			n.WhenFn(live)
		case scenario.KindAssert:
			pass = n.Predicate(live)
			return
		}
	}
	return
}
