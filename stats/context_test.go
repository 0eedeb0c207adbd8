package stats

import (
	"errors"
	"math"
	"testing"
)

func TestContextEventDedupedWithinCase(t *testing.T) {
	ctx := NewContext()
	ctx.BeginCase()
	ctx.Event("discarded", nil)
	ctx.Event("discarded", nil)
	ctx.BeginCase()
	ctx.Event("discarded", nil)

	summaries := ctx.Events()
	if len(summaries) != 1 {
		t.Fatalf("expected one event summary, got %d", len(summaries))
	}
	if summaries[0].Count != 2 {
		t.Fatalf("expected count 2 across two cases, got %d", summaries[0].Count)
	}
	if summaries[0].Percent != 100 {
		t.Fatalf("expected 100%% (2 of 2 cases), got %v", summaries[0].Percent)
	}
}

func TestContextTargetAggregates(t *testing.T) {
	ctx := NewContext()
	ctx.BeginCase()
	ctx.Target(10, "latency")
	ctx.BeginCase()
	ctx.Target(20, "latency")

	targets := ctx.Targets()
	if len(targets) != 1 {
		t.Fatalf("expected one target summary, got %d", len(targets))
	}
	tgt := targets[0]
	if tgt.Name != "latency" || tgt.Count != 2 {
		t.Fatalf("unexpected target summary: %#v", tgt)
	}
	if math.Abs(tgt.Mean-15) > 1e-9 {
		t.Fatalf("expected mean 15, got %v", tgt.Mean)
	}
}

func TestContextTargetIgnoresNonFiniteValues(t *testing.T) {
	ctx := NewContext()
	var flagged string
	ctx.OnNonFiniteTarget(func(label string) { flagged = label })

	ctx.BeginCase()
	ctx.Target(math.NaN(), "bad")
	ctx.Target(math.Inf(1), "bad")

	if len(ctx.Targets()) != 0 {
		t.Fatal("expected non-finite observations to be ignored entirely")
	}
	if flagged != "bad" {
		t.Fatalf("expected the non-finite callback to fire with label 'bad', got %q", flagged)
	}
}

func TestAmbientEventRequiresInstall(t *testing.T) {
	Clear()
	if err := Event("x", nil); !errors.Is(err, ErrNoAmbientContext) {
		t.Fatalf("expected ErrNoAmbientContext, got %v", err)
	}
}

func TestAmbientEventAndTargetDelegateToInstalledContext(t *testing.T) {
	ctx := NewContext()
	ctx.BeginCase()
	Install(ctx)
	defer Clear()

	if err := Event("installed", nil); err != nil {
		t.Fatalf("unexpected error recording an ambient event: %v", err)
	}
	if err := Target(3.5, "m"); err != nil {
		t.Fatalf("unexpected error recording an ambient target: %v", err)
	}

	events := ctx.Events()
	if len(events) != 1 || events[0].Name != "installed" {
		t.Fatalf("expected the ambient event to land on the installed context, got %#v", events)
	}
	targets := ctx.Targets()
	if len(targets) != 1 || targets[0].Name != "m" {
		t.Fatalf("expected the ambient target to land on the installed context, got %#v", targets)
	}
}

func TestAmbientTargetAfterClearReportsMisuse(t *testing.T) {
	ctx := NewContext()
	Install(ctx)
	Clear()
	if err := Target(1, "m"); !errors.Is(err, ErrNoAmbientContext) {
		t.Fatalf("expected ErrNoAmbientContext after Clear, got %v", err)
	}
}
