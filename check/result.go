package check

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/fluentgo/fluentgo/stats"
)

// Result is spec.md §3.4's FluentResult: a scenario Check()'s verdict plus
// the fluent assertions of §6.4.
type Result struct {
	Satisfiable     bool
	Example         map[string]any
	Seed            int64
	TestsRun        int
	TestsPassed     int
	TestsDiscarded  int
	ExecutionTimeMs int64
	Statistics      *stats.Context
	FailureCause    error
	ShrinkAttempts  int
	ShrinkRounds    int
}

func label(msg []string) string {
	if len(msg) == 0 {
		return ""
	}
	return msg[0] + ": "
}

// AssertSatisfiable fails t if the scenario was not satisfiable, reporting
// the counterexample and seed.
func (r Result) AssertSatisfiable(t *testing.T, msg ...string) {
	t.Helper()
	if r.Satisfiable {
		return
	}
	t.Fatalf("%sexpected satisfiable, got counterexample %#v (seed=%d, cause=%v)",
		label(msg), r.Example, r.Seed, r.FailureCause)
}

// AssertNotSatisfiable fails t if the scenario was satisfiable when it
// should not have been (e.g. an existence check expected to find no
// witness).
func (r Result) AssertNotSatisfiable(t *testing.T, msg ...string) {
	t.Helper()
	if !r.Satisfiable {
		return
	}
	t.Fatalf("%sexpected unsatisfiable, got witness %#v (seed=%d)",
		label(msg), r.Example, r.Seed)
}

// AssertExample fails t unless every key in partial is present in the
// result's Example with an equal value, diffed with go-cmp for a readable
// mismatch message.
func (r Result) AssertExample(t *testing.T, partial map[string]any, msg ...string) {
	t.Helper()
	if r.Example == nil {
		t.Fatalf("%sexpected an example to check against %#v, got none (seed=%d)", label(msg), partial, r.Seed)
		return
	}
	for k, want := range partial {
		got, ok := r.Example[k]
		if !ok {
			t.Fatalf("%sexample missing key %q (seed=%d)", label(msg), k, r.Seed)
			continue
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("%sexample[%q] mismatch (-want +got, seed=%d):\n%s", label(msg), k, r.Seed, diff)
		}
	}
}
