package hydrogen

import (
	"math"

	"github.com/matzehuels/orbital/pkg/special"
)

// HarmonicForm tells which branch [SphericalHarmonic] evaluates for (l, m).
type HarmonicForm int

const (
	// FormClosed is one of the tabulated exact expressions for l ≤ 2.
	FormClosed HarmonicForm = iota
	// FormGeneral is N·P_l^|m|(cos θ)·T_m(φ) built from associated Legendre
	// functions.
	FormGeneral
)

func (f HarmonicForm) String() string {
	if f == FormClosed {
		return "closed"
	}
	return "general"
}

type lm struct{ l, m int }

var (
	y00 = 1 / math.Sqrt(4*math.Pi)
	c1  = math.Sqrt(3 / (4 * math.Pi))
	c1m = math.Sqrt(3 / (8 * math.Pi))
	c20 = math.Sqrt(5 / (16 * math.Pi))
	c21 = math.Sqrt(15 / (8 * math.Pi))
	c22 = math.Sqrt(15 / (32 * math.Pi))
)

// closedForms holds the real harmonics for l ≤ 2 in the convention
// m > 0 → Re Y_l^m, m < 0 → (−1)^m Im Y_l^|m| of the Condon–Shortley
// complex harmonics.
var closedForms = map[lm]func(theta, phi float64) float64{
	{1, 0}: func(t, _ float64) float64 {
		return c1 * math.Cos(t)
	},
	{1, 1}: func(t, p float64) float64 {
		return -c1m * math.Sin(t) * math.Cos(p)
	},
	{1, -1}: func(t, p float64) float64 {
		return c1m * math.Sin(t) * math.Sin(p)
	},
	{2, 0}: func(t, _ float64) float64 {
		c := math.Cos(t)
		return c20 * (3*c*c - 1)
	},
	{2, 1}: func(t, p float64) float64 {
		return -c21 * math.Sin(t) * math.Cos(t) * math.Cos(p)
	},
	{2, -1}: func(t, p float64) float64 {
		return c21 * math.Sin(t) * math.Cos(t) * math.Sin(p)
	},
	{2, 2}: func(t, p float64) float64 {
		s := math.Sin(t)
		return c22 * s * s * math.Cos(2*p)
	},
	{2, -2}: func(t, p float64) float64 {
		s := math.Sin(t)
		return c22 * s * s * math.Sin(2*p)
	},
}

// Form reports the branch SphericalHarmonic takes for (l, m).
func Form(l, m int) HarmonicForm {
	if l == 0 {
		return FormClosed
	}
	if _, ok := closedForms[lm{l, m}]; ok {
		return FormClosed
	}
	return FormGeneral
}

// SphericalHarmonic returns the real spherical harmonic Y_l^m(θ, φ).
//
// For l = 0 the result is 1/√(4π) whatever m is. For l ≤ 2 it evaluates
// the closed forms; everywhere else
//
//	Y = N_l|m| · P_l^|m|(cos θ) · T_m(φ)
//	N = √[(2l+1)/(4π) · (l−|m|)!/(l+|m|)!]
//	T = cos(mφ) for m ≥ 0, (−1)^|m| sin(|m|φ) for m < 0
//
// which agrees with the closed forms where both apply. The m = 0 functions
// have ∫|Y|² dΩ = 1, the m ≠ 0 ones ½. Outside −l ≤ m ≤ l the result is 0.
func SphericalHarmonic(theta, phi float64, l, m int) float64 {
	if l == 0 {
		return y00
	}
	if f, ok := closedForms[lm{l, m}]; ok {
		return f(theta, phi)
	}
	return generalHarmonic(theta, phi, l, m)
}

func generalHarmonic(theta, phi float64, l, m int) float64 {
	am := m
	if am < 0 {
		am = -am
	}
	if l < 0 || am > l {
		return 0
	}
	norm := math.Sqrt(float64(2*l+1) / (4 * math.Pi) * special.FactorialRatio(l-am, l+am))
	p := special.AssociatedLegendre(l, am, math.Cos(theta))
	var trig float64
	if m >= 0 {
		trig = math.Cos(float64(m) * phi)
	} else {
		trig = math.Sin(float64(am) * phi)
		if am%2 == 1 {
			trig = -trig
		}
	}
	return norm * p * trig
}

// ApproximateHarmonic is the unnormalized shape
// cos(mφ) · sin^|m|(θ) · cos^(l−|m|)(θ).
//
// It has the right nodal structure for small l and is cheap, which is all
// a preview renderer needs. It is not a solution of the angular equation;
// SphericalHarmonic never falls back to it.
func ApproximateHarmonic(theta, phi float64, l, m int) float64 {
	am := m
	if am < 0 {
		am = -am
	}
	return math.Cos(float64(m)*phi) *
		math.Pow(math.Sin(theta), float64(am)) *
		math.Pow(math.Cos(theta), float64(l-am))
}
