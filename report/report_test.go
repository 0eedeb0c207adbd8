package report

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/fluentgo/fluentgo/stats"
)

func sampleContext() *stats.Context {
	ctx := stats.NewContext()
	ctx.BeginCase()
	ctx.Event("discarded", nil)
	ctx.Target(1.0, "latency")
	ctx.BeginCase()
	ctx.Target(2.0, "latency")
	ctx.Target(3.0, "latency")
	return ctx
}

func TestFormatStatisticsText(t *testing.T) {
	out, err := FormatStatistics(sampleContext(), Options{Format: FormatText})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "discarded") || !strings.Contains(out, "latency") {
		t.Fatalf("expected text report to mention events and targets, got:\n%s", out)
	}
}

func TestFormatStatisticsMarkdownDetailed(t *testing.T) {
	out, err := FormatStatistics(sampleContext(), Options{Format: FormatMarkdown, Detailed: true, IncludeHistograms: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "| P50 | P90 | P99 |") {
		t.Fatalf("expected detailed markdown header, got:\n%s", out)
	}
	if !strings.Contains(out, "histogram") {
		t.Fatalf("expected a histogram section, got:\n%s", out)
	}
}

func TestFormatStatisticsJSON(t *testing.T) {
	out, err := FormatStatistics(sampleContext(), Options{Format: FormatJSON})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var parsed jsonReport
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("expected valid JSON, got error %v for:\n%s", err, out)
	}
	if len(parsed.Events) != 1 || parsed.Events[0].Name != "discarded" {
		t.Fatalf("expected one discarded event, got %#v", parsed.Events)
	}
	if len(parsed.Targets) != 1 || parsed.Targets[0].Name != "latency" || parsed.Targets[0].Count != 3 {
		t.Fatalf("expected one latency target with count 3, got %#v", parsed.Targets)
	}
}

func TestFormatStatisticsNilContext(t *testing.T) {
	out, err := FormatStatistics(nil, Options{Format: FormatText})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "PROPERTY RUN STATISTICS") {
		t.Fatalf("expected header even for an empty context, got:\n%s", out)
	}
}

func TestFormatStatisticsUnsupportedFormat(t *testing.T) {
	if _, err := FormatStatistics(sampleContext(), Options{Format: "xml"}); err == nil {
		t.Fatal("expected an error for an unsupported format")
	}
}

func TestFormatStatisticsMaxLabelRows(t *testing.T) {
	ctx := stats.NewContext()
	ctx.BeginCase()
	ctx.Target(1.0, "a")
	ctx.BeginCase()
	ctx.Target(1.0, "b")
	ctx.BeginCase()
	ctx.Target(1.0, "c")

	out, err := FormatStatistics(ctx, Options{Format: FormatJSON, MaxLabelRows: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var parsed jsonReport
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(parsed.Targets) != 2 {
		t.Fatalf("expected MaxLabelRows to clip targets to 2, got %d", len(parsed.Targets))
	}
}
