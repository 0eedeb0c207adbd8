package stats

import (
	"fmt"
	"math"
	"sync"
)

// Context is the per-run ambient cell described in spec.md §4.5.4 and §5:
// it accumulates event tallies and target observations across an entire
// run, while exposing an Event/Target surface that a user predicate can
// call without threading a parameter through. Event is idempotent within
// a single test case (deduplicated by name) but tallies across the whole
// run; every finite Target call is recorded as an observation.
type Context struct {
	mu sync.Mutex

	cases   int
	seen    map[string]struct{} // dedup within the current case
	tallies map[string]*eventTally
	targets map[string]*Stream

	onNonFinite func(label string)
}

type eventTally struct {
	count    int
	payloads []any
}

// EventSummary is one named event's tally and share of total test cases.
type EventSummary struct {
	Name    string
	Count   int
	Percent float64
}

// TargetSummary mirrors a Stream's aggregates for one named target, plus
// the quantile/histogram detail the report package needs for its
// detailed/includeHistograms output options.
type TargetSummary struct {
	Name               string
	Count              int64
	Mean, Min, Max, SD float64
	P50, P90, P99      float64
	HistBins           []int
	HistLo, HistHi     float64
}

// NewContext creates an empty per-run statistics context.
func NewContext() *Context {
	return &Context{
		seen:    make(map[string]struct{}),
		tallies: make(map[string]*eventTally),
		targets: make(map[string]*Stream),
	}
}

// OnNonFiniteTarget installs a callback invoked whenever Target receives a
// non-finite value (it is otherwise ignored, per spec.md §4.5.4).
func (c *Context) OnNonFiniteTarget(f func(label string)) { c.onNonFinite = f }

// BeginCase clears the per-case dedup set and counts a new test case
// towards event percentages. The Explorer calls this once per generated
// test case, before installing the context for the predicate call.
func (c *Context) BeginCase() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cases++
	c.seen = make(map[string]struct{})
}

// Event records that name occurred in the current test case, with an
// optional payload. Idempotent within a case: a second call with the same
// name in the same case is a no-op.
func (c *Context) Event(name string, payload any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, dup := c.seen[name]; dup {
		return
	}
	c.seen[name] = struct{}{}
	t, ok := c.tallies[name]
	if !ok {
		t = &eventTally{}
		c.tallies[name] = t
	}
	t.count++
	if payload != nil {
		t.payloads = append(t.payloads, payload)
	}
}

// Target records an observation of a real-valued metric under label,
// maintaining streaming stats. Non-finite values are ignored, with
// onNonFinite (if installed) notified for diagnostic logging.
func (c *Context) Target(value float64, label string) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		if c.onNonFinite != nil {
			c.onNonFinite(label)
		}
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.targets[label]
	if !ok {
		s = NewStream()
		c.targets[label] = s
	}
	s.Update(value)
}

// Events returns a stable-ordered snapshot of every recorded event's tally
// and percentage of total test cases.
func (c *Context) Events() []EventSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]EventSummary, 0, len(c.tallies))
	for name, t := range c.tallies {
		pct := 0.0
		if c.cases > 0 {
			pct = 100 * float64(t.count) / float64(c.cases)
		}
		out = append(out, EventSummary{Name: name, Count: t.count, Percent: pct})
	}
	return out
}

// Targets returns a snapshot of every recorded target's streaming stats.
func (c *Context) Targets() []TargetSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]TargetSummary, 0, len(c.targets))
	for name, s := range c.targets {
		bins, lo, hi := s.Histogram()
		out = append(out, TargetSummary{
			Name: name, Count: s.Count(), Mean: s.Mean(), Min: s.Min(), Max: s.Max(),
			SD:       math.Sqrt(s.Variance()),
			P50:      s.Quantile(0.5),
			P90:      s.Quantile(0.9),
			P99:      s.Quantile(0.99),
			HistBins: bins, HistLo: lo, HistHi: hi,
		})
	}
	return out
}

// ---------------------------------------------------------------------
// Ambient cell: install on entry to a predicate, clear on every exit path.
// ---------------------------------------------------------------------

var (
	ambientMu sync.Mutex
	ambient   *Context
)

// Install makes ctx the active ambient context for Event/Target calls
// made from inside a user predicate. Callers must pair every Install with
// a deferred Clear, including on panic, per spec.md §5.
func Install(ctx *Context) { ambientMu.Lock(); ambient = ctx; ambientMu.Unlock() }

// Clear removes the active ambient context.
func Clear() { ambientMu.Lock(); ambient = nil; ambientMu.Unlock() }

// ErrNoAmbientContext is returned (wrapped as a MisuseError by callers
// higher up) when Event/Target is called outside an installed window.
var ErrNoAmbientContext = fmt.Errorf("stats: event/target called outside an active property callback")

// Event records an event against the currently installed ambient context.
// It reports ErrNoAmbientContext if none is installed, per spec.md §7's
// MisuseError.
func Event(name string, payload any) error {
	ambientMu.Lock()
	ctx := ambient
	ambientMu.Unlock()
	if ctx == nil {
		return ErrNoAmbientContext
	}
	ctx.Event(name, payload)
	return nil
}

// Target records a target observation against the currently installed
// ambient context.
func Target(value float64, label string) error {
	ambientMu.Lock()
	ctx := ambient
	ambientMu.Unlock()
	if ctx == nil {
		return ErrNoAmbientContext
	}
	ctx.Target(value, label)
	return nil
}
