// Package shrink implements per-quantifier counterexample (and witness)
// minimization under a bounded budget, per spec.md §4.4.
package shrink

import (
	"github.com/fluentgo/fluentgo/arb"
	"github.com/fluentgo/fluentgo/ferr"
	"github.com/fluentgo/fluentgo/scenario"
)

// Config bounds a shrink run.
type Config struct {
	MaxAttempts int // default 500
	MaxRounds   int // default 50
	BatchSize   int // candidates drawn per quantifier per round; default 100
}

// DefaultConfig matches spec.md's documented defaults.
func DefaultConfig() Config { return Config{MaxAttempts: 500, MaxRounds: 50, BatchSize: 100} }

// Result reports the minimized bindings plus the effort spent reaching
// them.
type Result struct {
	Minimized map[string]any
	Attempts  int
	Rounds    int
}

// predicate evaluates bindings, returning the outcome (pass/fail) and
// whether the call was a precondition discard (which never counts as
// progress, per spec.md §4.4's edge case).
type predicate func(bindings map[string]any) (pass bool, discarded bool)

// Minimize shrinks current (a failing-forall counterexample or a
// succeeding-exists witness) across every quantifier in declared order,
// stopping once a round makes no progress or the budget is exhausted.
// desired is the outcome that keeps a candidate "still interesting": false
// for a forall counterexample (still fails), true for an exists witness
// (still passes). shrinkers carries the live Shrinker each quantifier's
// current value was generated together with — a shrinker is only
// meaningful paired with the exact value it was produced alongside, so
// Minimize drives those closures directly rather than re-deriving a
// shrinker from a bare value.
func Minimize(qs []scenario.Node, current map[string]any, shrinkers map[string]arb.Shrinker[any], desired bool, eval predicate, cfg Config) Result {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 500
	}
	if cfg.MaxRounds <= 0 {
		cfg.MaxRounds = 50
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}

	res := Result{Minimized: cloneMap(current)}
	attempts := 0
	rounds := 0
	// pending marks a quantifier whose last candidate was accepted, so the
	// next call on its shrinker passes accept=true and rebases around it.
	pending := make(map[string]bool, len(qs))

	for rounds < cfg.MaxRounds && attempts < cfg.MaxAttempts {
		progressed := false
	restart:
		for _, q := range qs {
			if rounds >= cfg.MaxRounds {
				break
			}
			shrinker, ok := shrinkers[q.Name]
			if !ok || shrinker == nil {
				continue
			}
			remaining := cfg.MaxAttempts - attempts
			if remaining <= 0 {
				break
			}
			batch := cfg.BatchSize
			if batch > remaining {
				batch = remaining
			}
			accept := pending[q.Name]
			pending[q.Name] = false
			for i := 0; i < batch; i++ {
				candidate, more := shrinker(accept)
				if !more {
					break
				}
				attempts++
				trial := cloneMap(res.Minimized)
				trial[q.Name] = candidate
				pass, discarded := safeEval(eval, trial)
				if discarded {
					accept = false
					continue
				}
				if pass != desired {
					accept = false
					continue
				}
				res.Minimized = trial
				pending[q.Name] = true
				progressed = true
				rounds++
				goto restart
			}
		}
		if !progressed {
			break
		}
	}

	res.Attempts = attempts
	res.Rounds = rounds
	return res
}

func safeEval(eval predicate, bindings map[string]any) (pass bool, discarded bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(*ferr.PreconditionFailure); ok {
				discarded = true
				return
			}
			// Any other panic is a valid shrunk counterexample: the
			// predicate erroring counts as "failed," per spec.md §4.4.
			pass = false
		}
	}()
	return eval(bindings)
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
