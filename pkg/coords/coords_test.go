package coords

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSphericalToCartesianAxes(t *testing.T) {
	tests := []struct {
		name                string
		r, theta, phi       float64
		wantX, wantY, wantZ float64
	}{
		{"+z", 2, 0, 0, 0, 0, 2},
		{"-z", 2, math.Pi, 0, 0, 0, -2},
		{"+x", 1, math.Pi / 2, 0, 1, 0, 0},
		{"+y", 1, math.Pi / 2, math.Pi / 2, 0, 1, 0},
		{"-x", 3, math.Pi / 2, math.Pi, -3, 0, 0},
		{"origin", 0, 1.2, 2.3, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := SphericalToCartesian(tt.r, tt.theta, tt.phi)
			assert.InDelta(t, tt.wantX, c.X, 1e-12)
			assert.InDelta(t, tt.wantY, c.Y, 1e-12)
			assert.InDelta(t, tt.wantZ, c.Z, 1e-12)
		})
	}
}

func TestCartesianToSphericalOrigin(t *testing.T) {
	s := CartesianToSpherical(0, 0, 0)
	assert.Equal(t, 0.0, s.R)
	assert.InDelta(t, math.Pi/2, s.Theta, 1e-15)
	assert.Equal(t, 0.0, s.Phi)
	assert.False(t, math.IsNaN(s.Theta))
}

func TestCartesianToSphericalRanges(t *testing.T) {
	s := CartesianToSpherical(0, -1, 0)
	assert.InDelta(t, -math.Pi/2, s.Phi, 1e-12)
	assert.InDelta(t, math.Pi/2, s.Theta, 1e-12)

	s = CartesianToSpherical(0, 0, -5)
	assert.InDelta(t, math.Pi, s.Theta, 1e-5)
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 10000; i++ {
		x := rng.Float64()*40 - 20
		y := rng.Float64()*40 - 20
		z := rng.Float64()*40 - 20
		s := CartesianToSpherical(x, y, z)
		if s.R <= 1e-6 {
			continue
		}
		c := s.Cartesian()
		if math.Abs(c.X-x) > 1e-6 || math.Abs(c.Y-y) > 1e-6 || math.Abs(c.Z-z) > 1e-6 {
			t.Fatalf("round trip (%g,%g,%g) -> %+v -> %+v", x, y, z, s, c)
		}
	}
}

func TestNorm(t *testing.T) {
	c := Cartesian{X: 3, Y: 4, Z: 12}
	assert.Equal(t, 13.0, c.Norm())
	assert.Equal(t, c.Norm(), c.Spherical().R)
}
