package sampling

import (
	"context"
	"errors"
	"math"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/orbital/pkg/coords"
	orberr "github.com/matzehuels/orbital/pkg/errors"
	"github.com/matzehuels/orbital/pkg/hydrogen"
	"github.com/matzehuels/orbital/pkg/observability"
)

const (
	// DefaultResolution is the number of grid cells per axis.
	DefaultResolution = 64

	// MaxResolution bounds the grid so a single sweep stays under ~128 MiB.
	MaxResolution = 256

	// VolumeRadiusFactor scales n² to the default half-width of the cube.
	VolumeRadiusFactor = 4.0

	// MinVolumeRadius is the smallest default half-width.
	MinVolumeRadius = 15.0

	// DefaultMinR is the radius below which densities are left at zero.
	DefaultMinR = 0.1
)

// GridOptions configures a cube sweep.
type GridOptions struct {
	// Resolution is the number of cells per axis. Zero means DefaultResolution.
	Resolution int `json:"resolution,omitempty"`
	// MaxR is the half-width of the cube. Zero means max(15, 4n²).
	MaxR float64 `json:"max_r,omitempty"`
	// MinR skips points closer to the nucleus. Zero means DefaultMinR;
	// negative disables the cut.
	MinR float64 `json:"min_r,omitempty"`
	// Workers bounds concurrent slabs. Zero means GOMAXPROCS.
	Workers int `json:"-"`
}

// DefaultVolumeRadius returns max(15, 4n²).
func DefaultVolumeRadius(n int) float64 {
	return math.Max(MinVolumeRadius, VolumeRadiusFactor*square(n))
}

func (o *GridOptions) setDefaults(n int) error {
	if o.Resolution == 0 {
		o.Resolution = DefaultResolution
	}
	if o.MaxR == 0 {
		o.MaxR = DefaultVolumeRadius(n)
	}
	if o.MinR == 0 {
		o.MinR = DefaultMinR
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if err := orberr.ValidateIntRange("resolution", o.Resolution, 2, MaxResolution); err != nil {
		return err
	}
	return orberr.ValidatePositive("max_r", o.MaxR)
}

// Volume holds |ψ|² on a Resolution³ cube spanning [−MaxR, MaxR) per axis.
//
// Cell (i, j, k) sits at ((i−res/2)·Step, (j−res/2)·Step, (k−res/2)·Step)
// and is stored at Data[i·res² + j·res + k].
type Volume struct {
	hydrogen.QuantumNumbers
	Resolution int       `json:"resolution"`
	MaxR       float64   `json:"max_r"`
	Step       float64   `json:"step"`
	Data       []float64 `json:"-"`

	// MaxDensity is the largest finite sample.
	MaxDensity float64 `json:"max_density"`
	// Occupied counts samples with a finite, positive density.
	Occupied int `json:"occupied"`
}

// Index returns the offset of cell (i, j, k) in Data.
func (v *Volume) Index(i, j, k int) int {
	return (i*v.Resolution+j)*v.Resolution + k
}

// Position returns the Cartesian centre of cell (i, j, k).
func (v *Volume) Position(i, j, k int) coords.Cartesian {
	half := float64(v.Resolution / 2)
	return coords.Cartesian{
		X: (float64(i) - half) * v.Step,
		Y: (float64(j) - half) * v.Step,
		Z: (float64(k) - half) * v.Step,
	}
}

// At returns the density stored for cell (i, j, k).
func (v *Volume) At(i, j, k int) float64 {
	return v.Data[v.Index(i, j, k)]
}

type slabStats struct {
	max      float64
	occupied int
}

// SampleVolume fills a cube with |ψ_nlm|² for q.
func SampleVolume(ctx context.Context, q hydrogen.QuantumNumbers, opts GridOptions) (*Volume, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if err := opts.setDefaults(q.N); err != nil {
		return nil, err
	}

	name := q.Name()
	hooks := observability.Pipeline()
	hooks.OnSampleStart(ctx, name, "grid")
	start := time.Now()

	res := opts.Resolution
	v := &Volume{
		QuantumNumbers: q,
		Resolution:     res,
		MaxR:           opts.MaxR,
		Step:           2 * opts.MaxR / float64(res),
		Data:           make([]float64, res*res*res),
	}
	stats := make([]slabStats, res)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i := 0; i < res; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			stats[i] = v.fillSlab(i, opts.MinR)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		hooks.OnSampleComplete(ctx, name, "grid", 0, time.Since(start), err)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, canceled(err)
		}
		return nil, err
	}

	for _, s := range stats {
		v.MaxDensity = math.Max(v.MaxDensity, s.max)
		v.Occupied += s.occupied
	}
	hooks.OnSampleComplete(ctx, name, "grid", len(v.Data), time.Since(start), nil)
	return v, nil
}

func (v *Volume) fillSlab(i int, minR float64) slabStats {
	var st slabStats
	res := v.Resolution
	for j := 0; j < res; j++ {
		for k := 0; k < res; k++ {
			p := v.Position(i, j, k)
			s := p.Spherical()
			if s.R <= minR {
				continue
			}
			d := hydrogen.ProbabilityDensity(s.R, s.Theta, s.Phi, v.N, v.L, v.M)
			if math.IsNaN(d) || math.IsInf(d, 0) {
				continue
			}
			v.Data[v.Index(i, j, k)] = d
			if d > 0 {
				st.occupied++
				st.max = math.Max(st.max, d)
			}
		}
	}
	return st
}

func square(n int) float64 {
	fn := float64(n)
	return fn * fn
}
