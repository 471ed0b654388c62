package sampling

import (
	"context"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"

	orberr "github.com/matzehuels/orbital/pkg/errors"
	"github.com/matzehuels/orbital/pkg/hydrogen"
	"github.com/matzehuels/orbital/pkg/observability"
)

const (
	// DefaultProfilePoints is the radial sample count of a profile.
	DefaultProfilePoints = 500

	// ProfileRadiusFactor scales n² to the default profile extent.
	ProfileRadiusFactor = 8.0

	// MaxProfilePoints bounds a single profile request.
	MaxProfilePoints = 200000

	// ctxCheckEvery is how many radii are evaluated between ctx checks.
	ctxCheckEvery = 256
)

// ProfileOptions configures [RadialProfile].
type ProfileOptions struct {
	// Points is the number of radii. Zero means DefaultProfilePoints.
	Points int `json:"points,omitempty"`
	// MaxR is the outer radius in Bohr radii. Zero means 8n².
	MaxR float64 `json:"max_r,omitempty"`
}

func (o *ProfileOptions) setDefaults(n int) error {
	if o.Points == 0 {
		o.Points = DefaultProfilePoints
	}
	if o.MaxR == 0 {
		o.MaxR = ProfileRadiusFactor * square(n)
	}
	if err := orberr.ValidateIntRange("points", o.Points, 2, MaxProfilePoints); err != nil {
		return err
	}
	return orberr.ValidatePositive("max_r", o.MaxR)
}

// RadialSample is one point of a profile.
type RadialSample struct {
	R       float64 `json:"r"`
	Wave    float64 `json:"wave"`
	Density float64 `json:"density"`
}

// Profile is R_nl and its shell density sampled on r_i = (i+1)·MaxR/Points.
// The grid starts one step out so the origin is never evaluated.
type Profile struct {
	hydrogen.QuantumNumbers
	Name    string         `json:"name"`
	MaxR    float64        `json:"max_r"`
	Samples []RadialSample `json:"samples"`

	// PeakR is the sampled radius with the largest density.
	PeakR float64 `json:"peak_r"`
	// Integral is the trapezoid estimate of ∫₀^MaxR P(r) dr.
	Integral float64 `json:"integral"`
}

// RadialProfile samples R_nl(r) and r²R_nl(r)² for q. Only N and L matter;
// M is carried along for labelling.
func RadialProfile(ctx context.Context, q hydrogen.QuantumNumbers, opts ProfileOptions) (*Profile, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if err := opts.setDefaults(q.N); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, canceled(err)
	}

	name := q.Name()
	hooks := observability.Pipeline()
	hooks.OnSampleStart(ctx, name, "profile")
	start := time.Now()

	step := opts.MaxR / float64(opts.Points)
	rs := make([]float64, opts.Points)
	dens := make([]float64, opts.Points)
	samples := make([]RadialSample, opts.Points)
	for i := range samples {
		if i%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				hooks.OnSampleComplete(ctx, name, "profile", i, time.Since(start), err)
				return nil, canceled(err)
			}
		}
		r := float64(i+1) * step
		w := hydrogen.RadialWaveFunction(r, q.N, q.L)
		p := r * r * w * w
		rs[i], dens[i] = r, p
		samples[i] = RadialSample{R: r, Wave: w, Density: p}
	}

	p := &Profile{
		QuantumNumbers: q,
		Name:           name,
		MaxR:           opts.MaxR,
		Samples:        samples,
		PeakR:          rs[floats.MaxIdx(dens)],
		// The segment [0, r_0] is a triangle from P(0) = 0.
		Integral: integrate.Trapezoidal(rs, dens) + 0.5*step*dens[0],
	}
	hooks.OnSampleComplete(ctx, name, "profile", len(samples), time.Since(start), nil)
	return p, nil
}

// Radii returns the sampled radii.
func (p *Profile) Radii() []float64 {
	out := make([]float64, len(p.Samples))
	for i, s := range p.Samples {
		out[i] = s.R
	}
	return out
}

// Densities returns the sampled shell densities.
func (p *Profile) Densities() []float64 {
	out := make([]float64, len(p.Samples))
	for i, s := range p.Samples {
		out[i] = s.Density
	}
	return out
}

// Waves returns the sampled R_nl values.
func (p *Profile) Waves() []float64 {
	out := make([]float64, len(p.Samples))
	for i, s := range p.Samples {
		out[i] = s.Wave
	}
	return out
}

func canceled(err error) error {
	return orberr.Wrap(orberr.ErrCodeCanceled, err, "sampling canceled")
}
