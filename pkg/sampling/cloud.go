package sampling

import (
	"context"
	"math"
	"time"

	"github.com/matzehuels/orbital/pkg/coords"
	orberr "github.com/matzehuels/orbital/pkg/errors"
	"github.com/matzehuels/orbital/pkg/hydrogen"
	"github.com/matzehuels/orbital/pkg/observability"
)

// DefaultCloudResolution is the grid resolution used for point clouds.
const DefaultCloudResolution = 80

// MaxIntensity caps Point.Intensity.
const MaxIntensity = 3.0

// CloudOptions configures [PointCloud].
type CloudOptions struct {
	GridOptions
	// Threshold is the density cutoff. Zero means AdaptiveThreshold(n, l).
	Threshold float64 `json:"threshold,omitempty"`
}

// Point is a grid point above the cloud threshold.
type Point struct {
	coords.Cartesian
	Density float64 `json:"density"`
	// Intensity is Density/Threshold capped at MaxIntensity.
	Intensity float64 `json:"intensity"`
}

// Cloud is the thresholded point set of a volume sweep.
type Cloud struct {
	hydrogen.QuantumNumbers
	Name       string  `json:"name"`
	Threshold  float64 `json:"threshold"`
	MaxR       float64 `json:"max_r"`
	Resolution int     `json:"resolution"`
	Points     []Point `json:"points"`
}

// Cloud extracts every cell whose density exceeds threshold, in storage
// order.
func (v *Volume) Cloud(threshold float64) *Cloud {
	c := &Cloud{
		QuantumNumbers: v.QuantumNumbers,
		Name:           v.Name(),
		Threshold:      threshold,
		MaxR:           v.MaxR,
		Resolution:     v.Resolution,
	}
	res := v.Resolution
	for i := 0; i < res; i++ {
		for j := 0; j < res; j++ {
			for k := 0; k < res; k++ {
				d := v.At(i, j, k)
				if d <= threshold {
					continue
				}
				c.Points = append(c.Points, Point{
					Cartesian: v.Position(i, j, k),
					Density:   d,
					Intensity: math.Min(d/threshold, MaxIntensity),
				})
			}
		}
	}
	return c
}

// PointCloud sweeps a cube for q and keeps the points above the threshold.
func PointCloud(ctx context.Context, q hydrogen.QuantumNumbers, opts CloudOptions) (*Cloud, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if opts.Resolution == 0 {
		opts.Resolution = DefaultCloudResolution
	}
	if opts.Threshold == 0 {
		opts.Threshold = AdaptiveThreshold(q.N, q.L)
	}
	if err := orberr.ValidatePositive("threshold", opts.Threshold); err != nil {
		return nil, err
	}

	v, err := SampleVolume(ctx, q, opts.GridOptions)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	c := v.Cloud(opts.Threshold)
	observability.Pipeline().OnSampleComplete(ctx, c.Name, "cloud", len(c.Points), time.Since(start), nil)
	return c, nil
}
