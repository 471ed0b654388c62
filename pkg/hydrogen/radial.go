package hydrogen

import (
	"math"

	"github.com/matzehuels/orbital/pkg/special"
)

// BohrRadius is the length unit of every radius in this package.
const BohrRadius = 1.0

// RadialWaveFunction returns R_nl(r) in units of the Bohr radius:
//
//	ρ    = 2r/n
//	norm = √[(2/n)³ (n−l−1)! / (2n (n+l)!)]
//	R    = norm · e^{−ρ/2} · ρ^l · L_{n−l−1}^{2l+1}(ρ)
//
// r ≤ 0 returns 0. Up to n+l = 20 the normalization is taken from the
// factorial table. Beyond that the whole product is formed in log space so
// that neither the factorial ratio nor ρ^l overflow.
func RadialWaveFunction(r float64, n, l int) float64 {
	if r <= 0 {
		return 0
	}
	if n+l <= special.MaxCachedFactorial {
		return radialTable(r, n, l)
	}
	return radialLogSpace(r, n, l)
}

func radialTable(r float64, n, l int) float64 {
	fn := float64(n)
	rho := 2 * r / (fn * BohrRadius)
	norm := math.Sqrt(math.Pow(2/(fn*BohrRadius), 3) *
		special.Factorial(n-l-1) / (2 * fn * special.Factorial(n+l)))
	lag := special.AssociatedLaguerre(rho, n-l-1, float64(2*l+1))
	return norm * math.Exp(-rho/2) * math.Pow(rho, float64(l)) * lag
}

func radialLogSpace(r float64, n, l int) float64 {
	fn := float64(n)
	rho := 2 * r / (fn * BohrRadius)
	lag := special.AssociatedLaguerre(rho, n-l-1, float64(2*l+1))
	if lag == 0 || math.IsNaN(lag) {
		return lag
	}
	logNorm := 0.5 * (3*math.Log(2/(fn*BohrRadius)) +
		special.LogFactorial(n-l-1) - math.Log(2*fn) - special.LogFactorial(n+l))
	logR := logNorm - rho/2 + float64(l)*math.Log(rho) + math.Log(math.Abs(lag))
	return math.Copysign(math.Exp(logR), lag)
}

// RadialProbabilityDensity returns the shell density P(r) = r²·R_nl(r)².
//
// P(r) dr is the probability of finding the electron between r and r+dr.
// It equals 4π r² times the spherically averaged |ψ|², and integrates to 1
// over [0, ∞) for every valid (n, l).
//
// Earlier JavaScript versions of this visualizer returned 4π·r²·R², which
// does not integrate to 1. Divide by 4π when comparing against those
// numbers.
func RadialProbabilityDensity(r float64, n, l int) float64 {
	if r <= 0 {
		return 0
	}
	R := RadialWaveFunction(r, n, l)
	return r * r * R * R
}

// ExpectedRadius returns ⟨r⟩ = [3n² − l(l+1)] / 2 in Bohr radii.
func ExpectedRadius(n, l int) float64 {
	fn, fl := float64(n), float64(l)
	return (3*fn*fn - fl*(fl+1)) / 2
}

// MostProbableRadius returns the maximum of P(r) for nodeless states
// (l = n−1), where it is exactly n². Other states have several local maxima
// and report NaN; locate those numerically (see the sampling package).
func MostProbableRadius(n, l int) float64 {
	if l != n-1 {
		return math.NaN()
	}
	fn := float64(n)
	return fn * fn
}
