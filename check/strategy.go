// Package check is the fluent entry point: Scenario() builds a scenario.
// Scenario, .Config(strategy) sets the Strategy, .Check() drives the
// Explorer and Shrinker, and the
// returned Result offers the fluent assertions of spec.md §3.4/§6.1.
package check

import (
	"github.com/rs/zerolog"

	"github.com/fluentgo/fluentgo/explorer"
	"github.com/fluentgo/fluentgo/shrink"
	"github.com/fluentgo/fluentgo/stats"
)

// Verbosity mirrors spec.md §6.3's Verbosity enum.
type Verbosity int

const (
	Quiet Verbosity = iota
	Normal
	Verbose
	Debug
)

// Strategy is spec.md §6.3's recognized strategy options, the check
// package's user-facing configuration surface.
type Strategy struct {
	SampleSize         int
	ShrinkSize         int
	Bias               bool
	Dedup              bool
	ConfidenceLevel    float64
	PassRateThreshold  float64
	TimeoutMs          int64
	Verbosity          Verbosity
	LogStatistics      bool
	OnProgress         func(testsRun, testsPassed int)
	ProgressInterval   int
	ConstantExtraction bool
	// Logger is optional; a nil Logger defaults to zerolog.Nop(). Kept as
	// a pointer rather than a bare zerolog.Logger so a zero-value Strategy
	// literal (as users will naturally write) can't accidentally carry an
	// uninitialized logger through to the Explorer.
	Logger *zerolog.Logger
}

// DefaultStrategy matches spec.md §6.3's documented defaults.
func DefaultStrategy() Strategy {
	return Strategy{
		SampleSize:        1000,
		ShrinkSize:        500,
		ConfidenceLevel:   0.95,
		PassRateThreshold: 0.999,
		ProgressInterval:  100,
		Verbosity:         Normal,
	}
}

func (s Strategy) explorerConfig() explorer.Config {
	cfg := explorer.DefaultConfig()
	if s.SampleSize > 0 {
		cfg.SampleSize = s.SampleSize
	}
	if s.ShrinkSize > 0 {
		cfg.ShrinkSize = s.ShrinkSize
	}
	cfg.Bias = s.Bias
	cfg.Dedup = s.Dedup
	cfg.TimeoutMs = s.TimeoutMs
	cfg.OnProgress = s.OnProgress
	if s.ProgressInterval > 0 {
		cfg.ProgressInterval = s.ProgressInterval
	}
	if s.Logger != nil {
		cfg.Logger = *s.Logger
	} else {
		cfg.Logger = zerolog.Nop()
	}
	conf := stats.DefaultConfidenceConfig()
	if s.ConfidenceLevel > 0 {
		conf.Level = s.ConfidenceLevel
	}
	if s.PassRateThreshold > 0 {
		conf.PassRateThreshold = s.PassRateThreshold
	}
	cfg.Confidence = conf
	return cfg
}

func (s Strategy) shrinkConfig() shrink.Config {
	cfg := shrink.DefaultConfig()
	if s.ShrinkSize > 0 {
		cfg.MaxAttempts = s.ShrinkSize
	}
	return cfg
}
