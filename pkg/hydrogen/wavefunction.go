package hydrogen

import "github.com/matzehuels/orbital/pkg/coords"

// WaveFunction returns ψ_nlm(r, θ, φ) = R_nl(r) · Y_l^m(θ, φ).
func WaveFunction(r, theta, phi float64, n, l, m int) float64 {
	return RadialWaveFunction(r, n, l) * SphericalHarmonic(theta, phi, l, m)
}

// ProbabilityDensity returns |ψ_nlm(r, θ, φ)|².
func ProbabilityDensity(r, theta, phi float64, n, l, m int) float64 {
	psi := WaveFunction(r, theta, phi, n, l, m)
	return psi * psi
}

// DensityAt evaluates |ψ|² for q at a Cartesian point.
func (q QuantumNumbers) DensityAt(p coords.Cartesian) float64 {
	s := p.Spherical()
	return ProbabilityDensity(s.R, s.Theta, s.Phi, q.N, q.L, q.M)
}

// WaveFunctionAt evaluates ψ for q at a spherical point.
func (q QuantumNumbers) WaveFunctionAt(s coords.Spherical) float64 {
	return WaveFunction(s.R, s.Theta, s.Phi, q.N, q.L, q.M)
}
