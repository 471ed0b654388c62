package hydrogen

import "fmt"

var waveEquations = map[string]string{
	"1s":    "ψ₁ₛ = (1/√πa₀³) e^(-r/a₀)",
	"2s":    "ψ₂ₛ = (1/4√2πa₀³)(2-r/a₀) e^(-r/2a₀)",
	"2p_z":  "ψ₂ₚ = (1/4√2πa₀³)(r/a₀) e^(-r/2a₀) cos θ",
	"3s":    "ψ₃ₛ = (1/9√3πa₀³)(6-6r/a₀+r²/a₀²) e^(-r/3a₀)",
	"3p_z":  "ψ₃ₚ = (1/9√6πa₀³)(4r/a₀-2r²/3a₀²) e^(-r/3a₀) cos θ",
	"3d_z²": "ψ₃d = (1/81√30πa₀³)(r²/a₀²) e^(-r/3a₀)(3cos²θ-1)",
}

var angularEquations = map[lm]string{
	{1, 0}:  "Y₁⁰ = √(3/4π) cos θ",
	{1, 1}:  "Y₁¹ = -√(3/8π) sin θ cos φ",
	{1, -1}: "Y₁⁻¹ = √(3/8π) sin θ sin φ",
}

// WaveFunctionEquation returns a display string for ψ_nlm. The common low
// orbitals get their explicit textbook form, the rest the product R·Y.
func WaveFunctionEquation(n, l, m int) string {
	if eq, ok := waveEquations[OrbitalName(n, l, m)]; ok {
		return eq
	}
	return fmt.Sprintf("ψ%d%s = R%d%d(r) Y%d^%d(θ,φ)", n, SubshellLetter(l), n, l, l, m)
}

// RadialFunctionEquation returns the generic form of R_nl.
func RadialFunctionEquation(n, l int) string {
	return fmt.Sprintf("R%d%d(r) = N e^(-r/%da₀) (r/a₀)^%d L%d^(%d)(2r/%da₀)",
		n, l, n, l, n-l-1, 2*l+1, n)
}

// AngularFunctionEquation returns the display form of the real harmonic Y_l^m
// evaluated by SphericalHarmonic.
func AngularFunctionEquation(l, m int) string {
	if l == 0 {
		return "Y₀⁰ = 1/√(4π)"
	}
	if eq, ok := angularEquations[lm{l, m}]; ok {
		return eq
	}
	am := m
	if am < 0 {
		am = -am
	}
	if m < 0 {
		return fmt.Sprintf("Y%d^%d(θ,φ) = N P%d^%d(cos θ) sin(%dφ)", l, m, l, am, am)
	}
	return fmt.Sprintf("Y%d^%d(θ,φ) = N P%d^%d(cos θ) cos(%dφ)", l, m, l, am, m)
}
