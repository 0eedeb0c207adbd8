// Package report implements spec.md §6.4's FluentReporter.formatStatistics:
// rendering a run's stats.Context as text, Markdown, or JSON, grounded on
// the text/markdown table layout and logger-wrapped JSON encoding this
// corpus's chaos-utils reporting package uses for its own test reports.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/fluentgo/fluentgo/stats"
)

// Format selects formatStatistics's output encoding.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// Options mirrors spec.md §6.4's formatStatistics options.
type Options struct {
	Format            Format
	Detailed          bool
	IncludeHistograms bool
	MaxLabelRows      int // 0 means unlimited
}

// jsonReport is the shape emitted when Options.Format is FormatJSON; field
// names are stable output, not Go-internal, so they get explicit json tags
// the way chaos-utils' TestReport does for its own serialized reports.
type jsonReport struct {
	Events  []stats.EventSummary  `json:"events"`
	Targets []jsonTargetSummary   `json:"targets"`
}

type jsonTargetSummary struct {
	Name      string  `json:"name"`
	Count     int64   `json:"count"`
	Mean      float64 `json:"mean"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	SD        float64 `json:"sd"`
	P50       float64 `json:"p50,omitempty"`
	P90       float64 `json:"p90,omitempty"`
	P99       float64 `json:"p99,omitempty"`
	HistBins  []int   `json:"histBins,omitempty"`
	HistLo    float64 `json:"histLo,omitempty"`
	HistHi    float64 `json:"histHi,omitempty"`
}

// FormatStatistics renders ctx's accumulated events and targets according
// to opts. ctx may be nil, in which case it renders an empty report rather
// than erroring — a run with no Event/Target calls is a normal outcome.
func FormatStatistics(ctx *stats.Context, opts Options) (string, error) {
	events, targets := snapshot(ctx)
	clipLabelRows(&events, &targets, opts.MaxLabelRows)

	switch opts.Format {
	case FormatJSON, "":
		return formatJSON(events, targets, opts)
	case FormatMarkdown:
		return formatMarkdown(events, targets, opts), nil
	case FormatText:
		return formatText(events, targets, opts), nil
	default:
		return "", fmt.Errorf("report: unsupported format %q", opts.Format)
	}
}

func snapshot(ctx *stats.Context) ([]stats.EventSummary, []stats.TargetSummary) {
	if ctx == nil {
		return nil, nil
	}
	events := ctx.Events()
	targets := ctx.Targets()
	sort.Slice(events, func(i, j int) bool { return events[i].Name < events[j].Name })
	sort.Slice(targets, func(i, j int) bool { return targets[i].Name < targets[j].Name })
	return events, targets
}

func clipLabelRows(events *[]stats.EventSummary, targets *[]stats.TargetSummary, max int) {
	if max <= 0 {
		return
	}
	if len(*events) > max {
		*events = (*events)[:max]
	}
	if len(*targets) > max {
		*targets = (*targets)[:max]
	}
}

func formatJSON(events []stats.EventSummary, targets []stats.TargetSummary, opts Options) (string, error) {
	out := jsonReport{Events: events, Targets: make([]jsonTargetSummary, 0, len(targets))}
	for _, t := range targets {
		jt := jsonTargetSummary{
			Name: t.Name, Count: t.Count, Mean: t.Mean, Min: t.Min, Max: t.Max, SD: t.SD,
		}
		if opts.Detailed {
			jt.P50, jt.P90, jt.P99 = t.P50, t.P90, t.P99
		}
		if opts.IncludeHistograms {
			jt.HistBins, jt.HistLo, jt.HistHi = t.HistBins, t.HistLo, t.HistHi
		}
		out.Targets = append(out.Targets, jt)
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("report: marshal statistics: %w", err)
	}
	return string(b), nil
}

func formatText(events []stats.EventSummary, targets []stats.TargetSummary, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString(strings.Repeat("=", 60) + "\n")
	buf.WriteString("  PROPERTY RUN STATISTICS\n")
	buf.WriteString(strings.Repeat("=", 60) + "\n\n")

	if len(events) > 0 {
		buf.WriteString("EVENTS\n")
		buf.WriteString(strings.Repeat("-", 60) + "\n")
		for _, e := range events {
			buf.WriteString(fmt.Sprintf("%-30s %6d  (%5.1f%%)\n", e.Name, e.Count, e.Percent))
		}
		buf.WriteString("\n")
	}

	if len(targets) > 0 {
		buf.WriteString("TARGETS\n")
		buf.WriteString(strings.Repeat("-", 60) + "\n")
		for _, t := range targets {
			buf.WriteString(fmt.Sprintf("%s\n", t.Name))
			buf.WriteString(fmt.Sprintf("  count=%d mean=%.4f min=%.4f max=%.4f sd=%.4f\n",
				t.Count, t.Mean, t.Min, t.Max, t.SD))
			if opts.Detailed {
				buf.WriteString(fmt.Sprintf("  p50=%.4f p90=%.4f p99=%.4f\n", t.P50, t.P90, t.P99))
			}
			if opts.IncludeHistograms {
				buf.WriteString(renderHistogramText(t))
			}
			buf.WriteString("\n")
		}
	}

	buf.WriteString(strings.Repeat("=", 60) + "\n")
	return buf.String()
}

func formatMarkdown(events []stats.EventSummary, targets []stats.TargetSummary, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("# Property Run Statistics\n\n")

	if len(events) > 0 {
		buf.WriteString("## Events\n\n")
		buf.WriteString("| Event | Count | % of cases |\n")
		buf.WriteString("|---|---|---|\n")
		for _, e := range events {
			buf.WriteString(fmt.Sprintf("| %s | %d | %.1f%% |\n", e.Name, e.Count, e.Percent))
		}
		buf.WriteString("\n")
	}

	if len(targets) > 0 {
		buf.WriteString("## Targets\n\n")
		header := "| Target | Count | Mean | Min | Max | SD |"
		sep := "|---|---|---|---|---|---|"
		if opts.Detailed {
			header += " P50 | P90 | P99 |"
			sep += "---|---|---|"
		}
		buf.WriteString(header + "\n" + sep + "\n")
		for _, t := range targets {
			row := fmt.Sprintf("| %s | %d | %.4f | %.4f | %.4f | %.4f |",
				t.Name, t.Count, t.Mean, t.Min, t.Max, t.SD)
			if opts.Detailed {
				row += fmt.Sprintf(" %.4f | %.4f | %.4f |", t.P50, t.P90, t.P99)
			}
			buf.WriteString(row + "\n")
		}
		buf.WriteString("\n")
		if opts.IncludeHistograms {
			for _, t := range targets {
				buf.WriteString(fmt.Sprintf("### %s histogram\n\n```\n%s```\n\n", t.Name, renderHistogramText(t)))
			}
		}
	}

	return buf.String()
}

// renderHistogramText draws a fixed-width ASCII bar chart over a target's
// histogram bins, each row labeled with the bin's lower edge.
func renderHistogramText(t stats.TargetSummary) string {
	if len(t.HistBins) == 0 || t.HistHi <= t.HistLo {
		return "  (no histogram data)\n"
	}
	max := 0
	for _, c := range t.HistBins {
		if c > max {
			max = c
		}
	}
	if max == 0 {
		return "  (no histogram data)\n"
	}
	const width = 40
	span := t.HistHi - t.HistLo
	n := len(t.HistBins)
	var buf bytes.Buffer
	for i, c := range t.HistBins {
		edge := t.HistLo + span*float64(i)/float64(n)
		barLen := width * c / max
		buf.WriteString(fmt.Sprintf("  %10.4f | %s (%d)\n", edge, strings.Repeat("#", barLen), c))
	}
	return buf.String()
}
