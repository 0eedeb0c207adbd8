// Package config loads spec.md §6.3's strategy options and the statistics
// core's termination parameters from a YAML file or the environment,
// grounded on the chaos-utils config package's load-with-defaults,
// expand-env-vars approach (gopkg.in/yaml.v3, shared by two other repos in
// this corpus).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fluentgo/fluentgo/check"
	"github.com/fluentgo/fluentgo/stats"
)

// fileConfig mirrors SPEC_FULL.md §6.8's YAML shape exactly.
type fileConfig struct {
	SampleSize         int     `yaml:"sampleSize"`
	ShrinkSize         int     `yaml:"shrinkSize"`
	Bias               bool    `yaml:"bias"`
	Dedup              bool    `yaml:"dedup"`
	ConfidenceLevel    float64 `yaml:"confidenceLevel"`
	PassRateThreshold  float64 `yaml:"passRateThreshold"`
	TimeoutMs          int64   `yaml:"timeoutMs"`
	Verbosity          string  `yaml:"verbosity"`
	LogStatistics      bool    `yaml:"logStatistics"`
	ConstantExtraction bool    `yaml:"constantExtraction"`
}

// Load reads path as YAML and returns the strategy and statistics config it
// describes, layered on top of check.DefaultStrategy()/stats.DefaultConfidenceConfig().
// A missing file is not an error: Load returns the built-in defaults, the
// way chaos-utils' own config.Load tolerates an absent config.yaml.
func Load(path string) (check.Strategy, stats.Config, error) {
	strategy := check.DefaultStrategy()
	statsCfg := stats.DefaultConfidenceConfig()

	if path == "" {
		return strategy, statsCfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return strategy, statsCfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return strategy, statsCfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &fc); err != nil {
		return strategy, statsCfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	applyFileConfig(&strategy, &statsCfg, fc)
	return strategy, statsCfg, nil
}

func applyFileConfig(strategy *check.Strategy, statsCfg *stats.Config, fc fileConfig) {
	if fc.SampleSize > 0 {
		strategy.SampleSize = fc.SampleSize
	}
	if fc.ShrinkSize > 0 {
		strategy.ShrinkSize = fc.ShrinkSize
	}
	strategy.Bias = fc.Bias
	strategy.Dedup = fc.Dedup
	if fc.ConfidenceLevel > 0 {
		strategy.ConfidenceLevel = fc.ConfidenceLevel
		statsCfg.Level = fc.ConfidenceLevel
	}
	if fc.PassRateThreshold > 0 {
		strategy.PassRateThreshold = fc.PassRateThreshold
		statsCfg.PassRateThreshold = fc.PassRateThreshold
	}
	if fc.TimeoutMs > 0 {
		strategy.TimeoutMs = fc.TimeoutMs
	}
	if v, ok := parseVerbosity(fc.Verbosity); ok {
		strategy.Verbosity = v
	}
	strategy.LogStatistics = fc.LogStatistics
	strategy.ConstantExtraction = fc.ConstantExtraction
}

func parseVerbosity(s string) (check.Verbosity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "quiet":
		return check.Quiet, true
	case "normal":
		return check.Normal, true
	case "verbose":
		return check.Verbose, true
	case "debug":
		return check.Debug, true
	default:
		return check.Normal, false
	}
}

// FromEnv overlays prefix-prefixed environment variables (e.g.
// FLUENTGO_SAMPLE_SIZE, FLUENTGO_BIAS) onto strategy, per SPEC_FULL.md
// §6.8. Unset or unparseable variables leave the corresponding field
// untouched. Precedence across the whole config layer is builder
// .config(...) > env > file > built-in defaults; FromEnv is the "env"
// step, meant to be applied after Load and before any builder override.
func FromEnv(prefix string) func(check.Strategy) check.Strategy {
	lookup := func(suffix string) (string, bool) {
		return os.LookupEnv(prefix + suffix)
	}
	return func(strategy check.Strategy) check.Strategy {
		if v, ok := lookup("SAMPLE_SIZE"); ok {
			if n, err := strconv.Atoi(v); err == nil {
				strategy.SampleSize = n
			}
		}
		if v, ok := lookup("SHRINK_SIZE"); ok {
			if n, err := strconv.Atoi(v); err == nil {
				strategy.ShrinkSize = n
			}
		}
		if v, ok := lookup("BIAS"); ok {
			if b, err := strconv.ParseBool(v); err == nil {
				strategy.Bias = b
			}
		}
		if v, ok := lookup("DEDUP"); ok {
			if b, err := strconv.ParseBool(v); err == nil {
				strategy.Dedup = b
			}
		}
		if v, ok := lookup("CONFIDENCE_LEVEL"); ok {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				strategy.ConfidenceLevel = f
			}
		}
		if v, ok := lookup("PASS_RATE_THRESHOLD"); ok {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				strategy.PassRateThreshold = f
			}
		}
		if v, ok := lookup("TIMEOUT_MS"); ok {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				strategy.TimeoutMs = n
			}
		}
		if v, ok := lookup("VERBOSITY"); ok {
			if vb, ok := parseVerbosity(v); ok {
				strategy.Verbosity = vb
			}
		}
		if v, ok := lookup("LOG_STATISTICS"); ok {
			if b, err := strconv.ParseBool(v); err == nil {
				strategy.LogStatistics = b
			}
		}
		if v, ok := lookup("CONSTANT_EXTRACTION"); ok {
			if b, err := strconv.ParseBool(v); err == nil {
				strategy.ConstantExtraction = b
			}
		}
		return strategy
	}
}
