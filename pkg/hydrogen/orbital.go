package hydrogen

import (
	"math"
	"strconv"
)

// RydbergEnergy is the hydrogen ground-state binding energy in eV.
const RydbergEnergy = 13.6

// PlanckTimesLight is hc in eV·nm, for converting photon energy to
// wavelength.
const PlanckTimesLight = 1239.84198

var subshellLetters = [...]string{"s", "p", "d", "f", "g", "h"}

// SubshellLetter returns the spectroscopic letter for l. Past "h" the
// letter is the decimal value of l.
func SubshellLetter(l int) string {
	if l >= 0 && l < len(subshellLetters) {
		return subshellLetters[l]
	}
	return strconv.Itoa(l)
}

// orientation returns the Cartesian label of the real p and d functions.
func orientation(l, m int) string {
	switch l {
	case 1:
		switch m {
		case -1:
			return "y"
		case 0:
			return "z"
		case 1:
			return "x"
		}
	case 2:
		switch m {
		case -2:
			return "xy"
		case -1:
			return "yz"
		case 0:
			return "z²"
		case 1:
			return "xz"
		case 2:
			return "x²-y²"
		}
	}
	return ""
}

// OrbitalName returns the conventional label: the shell number, the
// subshell letter and, for p and d orbitals, an "_"-separated orientation.
//
//	OrbitalName(1, 0, 0)  == "1s"
//	OrbitalName(2, 1, 0)  == "2p_z"
//	OrbitalName(3, 2, 2)  == "3d_x²-y²"
//	OrbitalName(4, 3, -1) == "4f"
func OrbitalName(n, l, m int) string {
	name := strconv.Itoa(n) + SubshellLetter(l)
	if o := orientation(l, m); o != "" {
		name += "_" + o
	}
	return name
}

// EnergyLevel returns E_n = −13.6/n² eV.
func EnergyLevel(n int) float64 {
	fn := float64(n)
	return -RydbergEnergy / (fn * fn)
}

// RadialNodes returns n−l−1.
func RadialNodes(n, l int) int { return n - l - 1 }

// AngularNodes returns l.
func AngularNodes(l int) int { return l }

// Degeneracy returns the number of (l, m) states sharing shell n, which is n².
// It saturates at math.MaxInt rather than wrapping for absurdly large n.
func Degeneracy(n int) int {
	if n > 0 && n > math.MaxInt/n {
		return math.MaxInt
	}
	return n * n
}

// TransitionEnergy returns E_upper − E_lower in eV. It is positive when a
// photon is emitted going from upper to lower.
func TransitionEnergy(upper, lower int) float64 {
	return EnergyLevel(upper) - EnergyLevel(lower)
}

// TransitionWavelength returns the photon wavelength in nm for a transition
// between two shells. Equal shells give +Inf.
func TransitionWavelength(upper, lower int) float64 {
	e := math.Abs(TransitionEnergy(upper, lower))
	if e == 0 {
		return math.Inf(1)
	}
	return PlanckTimesLight / e
}

// AllowedTransition reports whether an electric-dipole transition between
// a and b satisfies Δl = ±1 and Δm ∈ {−1, 0, 1}.
func AllowedTransition(a, b QuantumNumbers) bool {
	dl, dm := a.L-b.L, a.M-b.M
	return (dl == 1 || dl == -1) && dm >= -1 && dm <= 1
}

var seriesNames = map[int]string{
	1: "Lyman",
	2: "Balmer",
	3: "Paschen",
	4: "Brackett",
	5: "Pfund",
	6: "Humphreys",
}

// SeriesName returns the spectral series ending on shell lower, or "" if it
// has no common name.
func SeriesName(lower int) string {
	return seriesNames[lower]
}

// Equations holds the display strings for an orbital.
type Equations struct {
	Wave    string `json:"wave"`
	Radial  string `json:"radial"`
	Angular string `json:"angular"`
}

// Orbital describes one state: its label, energy, node counts and the
// equations behind it.
type Orbital struct {
	QuantumNumbers
	Name           string    `json:"name"`
	Energy         float64   `json:"energy_ev"`
	RadialNodes    int       `json:"radial_nodes"`
	AngularNodes   int       `json:"angular_nodes"`
	Degeneracy     int       `json:"degeneracy"`
	ExpectedRadius float64   `json:"expected_radius"`
	Form           string    `json:"angular_form"`
	Equations      Equations `json:"equations"`
}

// NewOrbital validates (n, l, m) and builds its descriptor.
func NewOrbital(n, l, m int) (Orbital, error) {
	q := QuantumNumbers{N: n, L: l, M: m}
	if err := q.Validate(); err != nil {
		return Orbital{}, err
	}
	return q.Describe(), nil
}

// Describe builds the descriptor for q without validating it.
func (q QuantumNumbers) Describe() Orbital {
	return Orbital{
		QuantumNumbers: q,
		Name:           q.Name(),
		Energy:         EnergyLevel(q.N),
		RadialNodes:    RadialNodes(q.N, q.L),
		AngularNodes:   AngularNodes(q.L),
		Degeneracy:     Degeneracy(q.N),
		ExpectedRadius: ExpectedRadius(q.N, q.L),
		Form:           Form(q.L, q.M).String(),
		Equations: Equations{
			Wave:    WaveFunctionEquation(q.N, q.L, q.M),
			Radial:  RadialFunctionEquation(q.N, q.L),
			Angular: AngularFunctionEquation(q.L, q.M),
		},
	}
}
