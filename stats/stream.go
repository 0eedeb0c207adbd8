// Package stats implements the statistics core: streaming aggregates,
// Beta/Beta-Binomial posteriors, Bayesian confidence termination, and the
// ambient event/target recording context used during a running property.
package stats

import "sort"

// Stream accumulates mean/variance/min/max in one pass using Welford's
// online algorithm, plus a capped reservoir for approximate quantiles and
// a fixed-bin histogram, per spec.md §4.5.1.
type Stream struct {
	count int64
	mean  float64
	m2    float64
	min   float64
	max   float64

	reservoirCap int
	reservoir    []float64
	seen         int64

	histBins []int
	histLo   float64
	histHi   float64
	rebinned bool
}

// DefaultReservoirCap is the teacher-neutral default cap spec.md §4.5.1
// documents for the quantile reservoir.
const DefaultReservoirCap = 1024

// DefaultHistogramBins is spec.md §4.5.1's default bin count.
const DefaultHistogramBins = 20

// NewStream constructs a Stream with the default reservoir cap and
// histogram bin count.
func NewStream() *Stream {
	return &Stream{reservoirCap: DefaultReservoirCap, histBins: make([]int, DefaultHistogramBins)}
}

// Update folds x into the running aggregates.
func (s *Stream) Update(x float64) {
	s.count++
	delta := x - s.mean
	s.mean += delta / float64(s.count)
	delta2 := x - s.mean
	s.m2 += delta * delta2

	if s.count == 1 {
		s.min, s.max = x, x
	} else {
		if x < s.min {
			s.min = x
		}
		if x > s.max {
			s.max = x
		}
	}

	s.updateReservoir(x)
	s.updateHistogram(x)
}

func (s *Stream) updateReservoir(x float64) {
	s.seen++
	if len(s.reservoir) < s.reservoirCap {
		s.reservoir = append(s.reservoir, x)
		return
	}
	// classic reservoir sampling: replace a uniformly random prior slot
	// with decaying probability reservoirCap/seen.
	j := pseudoRandIndex(s.seen)
	if j < int64(s.reservoirCap) {
		s.reservoir[j] = x
	}
}

// pseudoRandIndex avoids pulling math/rand into the hot accounting path;
// it is only used to decide reservoir replacement, not to produce test
// values, so a cheap splitmix-style mix is sufficient.
func pseudoRandIndex(seen int64) int64 {
	z := seen*2654435761 + 1
	z = (z ^ (z >> 15)) * 2246822519
	z = (z ^ (z >> 13))
	if z < 0 {
		z = -z
	}
	return z % seen
}

func (s *Stream) updateHistogram(x float64) {
	if s.count == 1 {
		s.histLo, s.histHi = x, x
		s.histBins[0] = 1
		return
	}
	if !s.rebinned && s.count == int64(len(s.histBins)) {
		// one-time re-bin after warmup, spanning the observed min/max so
		// far, per spec.md §4.5.1.
		s.rebinned = true
		s.rebin(s.min, s.max)
	}
	if x < s.histLo || x > s.histHi {
		lo, hi := s.histLo, s.histHi
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
		s.rebin(lo, hi)
	}
	idx := s.binIndex(x)
	s.histBins[idx]++
}

func (s *Stream) rebin(lo, hi float64) {
	counts := make([]int, len(s.histBins))
	old := s.histBins
	oldLo, oldHi := s.histLo, s.histHi
	s.histLo, s.histHi = lo, hi
	if oldHi > oldLo {
		span := oldHi - oldLo
		n := len(old)
		for i, c := range old {
			if c == 0 {
				continue
			}
			mid := oldLo + span*(float64(i)+0.5)/float64(n)
			counts[s.binIndex(mid)] += c
		}
	} else {
		total := 0
		for _, c := range old {
			total += c
		}
		counts[s.binIndex(oldLo)] += total
	}
	s.histBins = counts
}

func (s *Stream) binIndex(x float64) int {
	n := len(s.histBins)
	if s.histHi <= s.histLo {
		return 0
	}
	frac := (x - s.histLo) / (s.histHi - s.histLo)
	idx := int(frac * float64(n))
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	return idx
}

// Count, Mean, Min, Max, Variance return the streaming aggregates.
func (s *Stream) Count() int64    { return s.count }
func (s *Stream) Mean() float64   { return s.mean }
func (s *Stream) Min() float64    { return s.min }
func (s *Stream) Max() float64    { return s.max }
func (s *Stream) Variance() float64 {
	if s.count < 2 {
		return 0
	}
	return s.m2 / float64(s.count-1)
}

// Quantile returns an approximate p-quantile (p in [0,1]) computed exactly
// over the capped reservoir, per spec.md §4.5.1.
func (s *Stream) Quantile(p float64) float64 {
	if len(s.reservoir) == 0 {
		return 0
	}
	sorted := append([]float64(nil), s.reservoir...)
	sort.Float64s(sorted)
	idx := int(p * float64(len(sorted)-1))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// Histogram returns the current bin counts and the span they cover.
func (s *Stream) Histogram() (bins []int, lo, hi float64) {
	return append([]int(nil), s.histBins...), s.histLo, s.histHi
}
