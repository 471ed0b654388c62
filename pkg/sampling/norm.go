package sampling

import (
	"context"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"

	"github.com/matzehuels/orbital/pkg/hydrogen"
)

// DefaultCheckPoints is the quadrature resolution of [CheckNormalization].
const DefaultCheckPoints = 20001

// NormTolerance is the allowed deviation of the norm from one before a
// check is reported as failing.
const NormTolerance = 1e-3

// NormCheck reports quadrature results for one (n, l).
type NormCheck struct {
	hydrogen.QuantumNumbers
	Name   string  `json:"name"`
	MaxR   float64 `json:"max_r"`
	Points int     `json:"points"`

	// Norm is ∫₀^MaxR r²R² dr. It should be 1.
	Norm float64 `json:"norm"`
	// MeanRadius is ∫ r·r²R² dr; ExpectedRadius its closed form.
	MeanRadius     float64 `json:"mean_radius"`
	ExpectedRadius float64 `json:"expected_radius"`
	// PeakR is the grid radius of the global density maximum.
	PeakR float64 `json:"peak_r"`
}

// OK reports whether the norm is within NormTolerance of one.
func (c NormCheck) OK() bool {
	return math.Abs(c.Norm-1) <= NormTolerance
}

// CheckNormalization integrates the shell density of q with the trapezoid
// rule out to MaxR (zero means 4n² + 20, far enough that the tail is
// negligible) and compares ⟨r⟩ against its closed form.
func CheckNormalization(ctx context.Context, q hydrogen.QuantumNumbers, opts ProfileOptions) (*NormCheck, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if opts.Points == 0 {
		opts.Points = DefaultCheckPoints
	}
	if opts.MaxR == 0 {
		opts.MaxR = 4*square(q.N) + 20
	}
	if err := opts.setDefaults(q.N); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, canceled(err)
	}

	rs := floats.Span(make([]float64, opts.Points), 0, opts.MaxR)
	dens := make([]float64, len(rs))
	moment := make([]float64, len(rs))
	for i, r := range rs {
		if i%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, canceled(err)
			}
		}
		dens[i] = hydrogen.RadialProbabilityDensity(r, q.N, q.L)
		moment[i] = r * dens[i]
	}

	return &NormCheck{
		QuantumNumbers: q,
		Name:           q.Name(),
		MaxR:           opts.MaxR,
		Points:         opts.Points,
		Norm:           integrate.Trapezoidal(rs, dens),
		MeanRadius:     integrate.Trapezoidal(rs, moment),
		ExpectedRadius: hydrogen.ExpectedRadius(q.N, q.L),
		PeakR:          rs[floats.MaxIdx(dens)],
	}, nil
}
