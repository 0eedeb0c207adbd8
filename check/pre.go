package check

import (
	"github.com/fluentgo/fluentgo/ferr"
	"github.com/fluentgo/fluentgo/stats"
)

// Pre raises a PreconditionFailure when cond is false, per spec.md §6.5.
// Called inside a .Then/.And predicate, it is caught by the Explorer and
// counted as a discarded test rather than a failing one.
func Pre(cond bool, msg ...string) {
	if cond {
		return
	}
	m := ""
	if len(msg) > 0 {
		m = msg[0]
	}
	panic(ferr.NewPrecondition(m))
}

// Event records a named event against the currently running test case's
// statistics context; it panics with a MisuseError if called outside a
// property callback, per spec.md §7.8 — the one error kind the public API
// propagates directly.
func Event(name string, payload any) {
	if err := stats.Event(name, payload); err != nil {
		panic(ferr.NewMisuse(err.Error()))
	}
}

// Target records a real-valued observation under label against the
// currently running test case's statistics context; same misuse handling
// as Event.
func Target(value float64, label string) {
	if err := stats.Target(value, label); err != nil {
		panic(ferr.NewMisuse(err.Error()))
	}
}
