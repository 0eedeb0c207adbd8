package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fluentgo/fluentgo/check"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	strategy, statsCfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strategy.SampleSize != check.DefaultStrategy().SampleSize {
		t.Fatalf("expected default sample size, got %d", strategy.SampleSize)
	}
	if statsCfg.Level != 0.95 {
		t.Fatalf("expected default confidence level, got %f", statsCfg.Level)
	}
}

func TestLoadOverridesFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fluentgo.yaml")
	contents := `
sampleSize: 2000
shrinkSize: 250
bias: true
dedup: true
confidenceLevel: 0.9
passRateThreshold: 0.95
timeoutMs: 3000
verbosity: verbose
logStatistics: true
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	strategy, statsCfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strategy.SampleSize != 2000 || strategy.ShrinkSize != 250 {
		t.Fatalf("expected sample/shrink size overrides, got %+v", strategy)
	}
	if !strategy.Bias || !strategy.Dedup {
		t.Fatalf("expected bias/dedup true, got %+v", strategy)
	}
	if strategy.Verbosity != check.Verbose {
		t.Fatalf("expected Verbose verbosity, got %v", strategy.Verbosity)
	}
	if statsCfg.PassRateThreshold != 0.95 {
		t.Fatalf("expected overridden pass rate threshold, got %f", statsCfg.PassRateThreshold)
	}
}

func TestFromEnvOverlay(t *testing.T) {
	t.Setenv("FLUENTGO_SAMPLE_SIZE", "42")
	t.Setenv("FLUENTGO_BIAS", "true")
	t.Setenv("FLUENTGO_VERBOSITY", "debug")

	overlay := FromEnv("FLUENTGO_")
	strategy := overlay(check.DefaultStrategy())

	if strategy.SampleSize != 42 {
		t.Fatalf("expected env override of sample size, got %d", strategy.SampleSize)
	}
	if !strategy.Bias {
		t.Fatal("expected env override of bias")
	}
	if strategy.Verbosity != check.Debug {
		t.Fatalf("expected Debug verbosity, got %v", strategy.Verbosity)
	}
}

func TestFromEnvLeavesUnsetFieldsAlone(t *testing.T) {
	os.Unsetenv("FLUENTGO_SAMPLE_SIZE")
	overlay := FromEnv("FLUENTGO_")
	base := check.DefaultStrategy()
	strategy := overlay(base)
	if strategy.SampleSize != base.SampleSize {
		t.Fatalf("expected untouched sample size, got %d want %d", strategy.SampleSize, base.SampleSize)
	}
}
