package stats

import "testing"

func TestConfidenceIncreasesWithMorePasses(t *testing.T) {
	cfg := DefaultConfidenceConfig()
	low := Confidence(cfg, 20, 0)
	high := Confidence(cfg, 200, 0)
	if high < low {
		t.Fatalf("expected confidence to increase with more passing evidence, got %v then %v", low, high)
	}
}

func TestConfidenceDropsWithFailures(t *testing.T) {
	cfg := DefaultConfidenceConfig()
	allPass := Confidence(cfg, 200, 0)
	someFail := Confidence(cfg, 190, 10)
	if someFail >= allPass {
		t.Fatalf("expected confidence to drop with failures present, got %v vs %v", someFail, allPass)
	}
}

func TestShouldCheckRespectsMinForConfidence(t *testing.T) {
	cfg := DefaultConfidenceConfig()
	cfg.CheckInterval = 5
	if ShouldCheck(cfg, 5) {
		t.Fatal("expected no check before MinForConfidence tests have run")
	}
	if !ShouldCheck(cfg, 10) {
		t.Fatal("expected a check at the first interval multiple past MinForConfidence")
	}
}

func TestShouldCheckNonAdaptiveInterval(t *testing.T) {
	cfg := DefaultConfidenceConfig()
	cfg.CheckInterval = 100
	if ShouldCheck(cfg, 150) {
		t.Fatal("expected no check at a non-multiple of the interval")
	}
	if !ShouldCheck(cfg, 200) {
		t.Fatal("expected a check at a multiple of the interval")
	}
}

func TestShouldCheckAdaptiveSteps(t *testing.T) {
	cfg := DefaultConfidenceConfig()
	cfg.Adaptive = true
	for _, step := range []int{10, 30, 100, 300} {
		if !ShouldCheck(cfg, step) {
			t.Fatalf("expected an adaptive check at step %d", step)
		}
	}
	if ShouldCheck(cfg, 50) {
		t.Fatal("expected no adaptive check between escalation steps")
	}
}

func TestShouldStopRequiresConfidenceLevel(t *testing.T) {
	cfg := DefaultConfidenceConfig()
	cfg.CheckInterval = 100
	if ShouldStop(cfg, 100, 5, 95) {
		t.Fatal("expected no stop when the pass rate is far below the threshold")
	}
	// With tau 0.999 and a Beta(1,1) prior, all-pass confidence is
	// 1 - 0.999^(n+1); 3000 is the first checkpoint where it reaches 0.95.
	if !ShouldStop(cfg, 3000, 3000, 0) {
		t.Fatal("expected a stop when all tests passed and enough evidence accumulated")
	}
}

func TestShouldStopFalseWhenNotCheckpoint(t *testing.T) {
	cfg := DefaultConfidenceConfig()
	cfg.CheckInterval = 100
	if ShouldStop(cfg, 50, 50, 0) {
		t.Fatal("expected no stop decision off the check cadence, regardless of pass rate")
	}
}
