package stats

// ConfidenceConfig parameterizes the Bayesian termination rule of
// spec.md §4.5.3.
type ConfidenceConfig struct {
	// PassRateThreshold is tau: the pass rate the posterior must exceed.
	PassRateThreshold float64
	// Level is the confidence the posterior must reach before the
	// Explorer stops early (default 0.95).
	Level float64
	// CheckInterval is how often (in tests run) the rule is evaluated
	// (default 100).
	CheckInterval int
	// PriorAlpha/PriorBeta let a caller supply an informative prior
	// instead of the default uniform Beta(1,1); see spec.md §9's open
	// question about whether Beta(1,1) is the right default.
	PriorAlpha, PriorBeta float64
	// Adaptive, when true, escalates the check interval 10, 30, 100,
	// 300, ... instead of a fixed CheckInterval, per spec.md §9's
	// suggested non-breaking improvement. Default false keeps the
	// documented default behavior unchanged.
	Adaptive bool
}

// DefaultConfidenceConfig matches spec.md §4.5.3's documented defaults.
func DefaultConfidenceConfig() ConfidenceConfig {
	return ConfidenceConfig{
		PassRateThreshold: 0.999,
		Level:             0.95,
		CheckInterval:     100,
		PriorAlpha:        1,
		PriorBeta:         1,
	}
}

// MinForConfidence is spec.md §4.5.3's MIN_FOR_CONFIDENCE floor: the
// termination rule is never evaluated before this many tests have run.
const MinForConfidence = 10

// Confidence computes P(true pass-rate > tau | s passes, f fails) under a
// Beta(PriorAlpha+s, PriorBeta+f) posterior.
func Confidence(cfg ConfidenceConfig, passes, fails int) float64 {
	posterior := Beta{Alpha: cfg.PriorAlpha + float64(passes), Beta: cfg.PriorBeta + float64(fails)}
	return 1 - posterior.CDF(cfg.PassRateThreshold)
}

// ShouldCheck reports whether the termination rule should be evaluated at
// testsRun, given cfg's (possibly adaptive) check interval.
func ShouldCheck(cfg ConfidenceConfig, testsRun int) bool {
	if testsRun < MinForConfidence {
		return false
	}
	if !cfg.Adaptive {
		interval := cfg.CheckInterval
		if interval <= 0 {
			interval = 100
		}
		return testsRun >= interval && testsRun%interval == 0
	}
	for _, step := range adaptiveSteps(cfg.CheckInterval) {
		if testsRun == step {
			return true
		}
	}
	return false
}

// adaptiveSteps generates the 10, 30, 100, 300, ... escalation spec.md §9
// suggests: 10, 30, 100, 300, then ten more steps that each triple the
// last (900, 2700, ...).
func adaptiveSteps(base int) []int {
	if base <= 0 {
		base = 100
	}
	steps := []int{10, 30, 100, 300}
	last := steps[len(steps)-1]
	for i := 0; i < 10; i++ {
		last *= 3
		steps = append(steps, last)
	}
	return steps
}

// ShouldStop evaluates the full termination rule: checked at the right
// cadence, past the minimum sample floor, and confidence at or above the
// configured level.
func ShouldStop(cfg ConfidenceConfig, testsRun, passes, fails int) bool {
	if !ShouldCheck(cfg, testsRun) {
		return false
	}
	return Confidence(cfg, passes, fails) >= cfg.Level
}
