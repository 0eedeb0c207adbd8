package stats

import "math"

// Beta is the Beta(alpha, beta) distribution used as the conjugate prior
// for pass/fail observations throughout this package, per spec.md §4.5.2.
type Beta struct {
	Alpha, Beta float64
}

// CDF evaluates the regularized incomplete beta function I_x(alpha,beta).
// No library in this retrieval's corpus provides a special-function
// implementation, so it is hand-rolled via the standard continued-fraction
// expansion (Numerical Recipes' betacf), the same algorithm most stdlib
// special-math packages use internally.
func (b Beta) CDF(x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	lbeta := lgamma(b.Alpha+b.Beta) - lgamma(b.Alpha) - lgamma(b.Beta)
	front := math.Exp(lbeta + b.Alpha*math.Log(x) + b.Beta*math.Log1p(-x))
	if x < (b.Alpha+1)/(b.Alpha+b.Beta+2) {
		return front * betacf(x, b.Alpha, b.Beta) / b.Alpha
	}
	return 1 - front*betacf(1-x, b.Beta, b.Alpha)/b.Beta
}

// Inv returns the p-quantile of the distribution via bisection on CDF,
// which is accurate enough for size-estimate credible intervals and
// confidence-termination checks without pulling in a root-finder library.
func (b Beta) Inv(p float64) float64 {
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return 1
	}
	lo, hi := 0.0, 1.0
	for i := 0; i < 100; i++ {
		mid := (lo + hi) / 2
		if b.CDF(mid) < p {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

// Mean is alpha/(alpha+beta).
func (b Beta) Mean() float64 { return b.Alpha / (b.Alpha + b.Beta) }

// Sample draws a Beta-distributed value via the ratio of two Gamma draws,
// the standard construction (no library in the corpus provides one).
func (b Beta) Sample(rng RNG) float64 {
	x := sampleGamma(rng, b.Alpha)
	y := sampleGamma(rng, b.Beta)
	if x+y == 0 {
		return 0
	}
	return x / (x + y)
}

// RNG is the minimal source of randomness this package needs, satisfied
// by *math/rand.Rand without importing it here, keeping stats decoupled
// from the PRNG choice (spec.md §1 calls the PRNG implementation an
// external collaborator specified only at its boundary).
type RNG interface {
	Float64() float64
}

// sampleGamma draws from Gamma(shape, 1) via Marsaglia & Tsang's method.
func sampleGamma(rng RNG, shape float64) float64 {
	if shape < 1 {
		u := rng.Float64()
		return sampleGamma(rng, shape+1) * math.Pow(u, 1/shape)
	}
	d := shape - 1.0/3.0
	c := 1.0 / math.Sqrt(9*d)
	for {
		var x, v float64
		for {
			x = normalSample(rng)
			v = 1 + c*x
			if v > 0 {
				break
			}
		}
		v = v * v * v
		u := rng.Float64()
		if u < 1-0.0331*x*x*x*x {
			return d * v
		}
		if math.Log(u) < 0.5*x*x+d*(1-v+math.Log(v)) {
			return d * v
		}
	}
}

// normalSample draws a standard-normal value via Box-Muller.
func normalSample(rng RNG) float64 {
	u1, u2 := rng.Float64(), rng.Float64()
	if u1 <= 0 {
		u1 = 1e-12
	}
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// lgamma wraps math.Lgamma, discarding the sign (always +1 for positive
// arguments, which alpha/beta parameters always are here).
func lgamma(x float64) float64 {
	v, _ := math.Lgamma(x)
	return v
}

// betacf is the continued-fraction expansion behind the regularized
// incomplete beta function (Numerical Recipes §6.4).
func betacf(x, a, b float64) float64 {
	const (
		maxIter = 200
		eps     = 3e-12
		fpmin   = 1e-300
	)
	qab := a + b
	qap := a + 1
	qam := a - 1
	c := 1.0
	d := 1 - qab*x/qap
	if math.Abs(d) < fpmin {
		d = fpmin
	}
	d = 1 / d
	h := d
	for m := 1; m <= maxIter; m++ {
		fm := float64(m)
		m2 := 2 * fm
		aa := fm * (b - fm) * x / ((qam + m2) * (a + m2))
		d = 1 + aa*d
		if math.Abs(d) < fpmin {
			d = fpmin
		}
		c = 1 + aa/c
		if math.Abs(c) < fpmin {
			c = fpmin
		}
		d = 1 / d
		h *= d * c

		aa = -(a + fm) * (qab + fm) * x / ((a + m2) * (qap + m2))
		d = 1 + aa*d
		if math.Abs(d) < fpmin {
			d = fpmin
		}
		c = 1 + aa/c
		if math.Abs(c) < fpmin {
			c = fpmin
		}
		d = 1 / d
		del := d * c
		h *= del
		if math.Abs(del-1) < eps {
			break
		}
	}
	return h
}

// CredibleInterval returns the [lo, hi] bounds of a level-confidence
// credible interval for Beta(alpha, beta), e.g. level=0.95.
func CredibleInterval(alpha, beta, level float64) (lo, hi float64) {
	b := Beta{Alpha: alpha, Beta: beta}
	tail := (1 - level) / 2
	return b.Inv(tail), b.Inv(1 - tail)
}
