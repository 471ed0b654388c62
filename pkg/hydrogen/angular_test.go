package hydrogen

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSphericalHarmonicTable(t *testing.T) {
	const theta, phi = 0.7, 1.3
	st, ct := math.Sin(theta), math.Cos(theta)
	tests := []struct {
		l, m int
		want float64
	}{
		{0, 0, 1 / math.Sqrt(4*math.Pi)},
		{1, 0, math.Sqrt(3/(4*math.Pi)) * ct},
		{1, 1, -math.Sqrt(3/(8*math.Pi)) * st * math.Cos(phi)},
		{1, -1, math.Sqrt(3/(8*math.Pi)) * st * math.Sin(phi)},
		{2, 0, math.Sqrt(5/(16*math.Pi)) * (3*ct*ct - 1)},
		{2, 1, -math.Sqrt(15/(8*math.Pi)) * st * ct * math.Cos(phi)},
		{2, -1, math.Sqrt(15/(8*math.Pi)) * st * ct * math.Sin(phi)},
		{2, 2, math.Sqrt(15/(32*math.Pi)) * st * st * math.Cos(2*phi)},
		{2, -2, math.Sqrt(15/(32*math.Pi)) * st * st * math.Sin(2*phi)},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("l=%d,m=%d", tt.l, tt.m), func(t *testing.T) {
			assert.InDelta(t, tt.want, SphericalHarmonic(theta, phi, tt.l, tt.m), 1e-14)
		})
	}
}

func TestSphericalHarmonicL0IgnoresM(t *testing.T) {
	for _, m := range []int{-2, 0, 3} {
		assert.Equal(t, 1/math.Sqrt(4*math.Pi), SphericalHarmonic(1.1, 2.2, 0, m))
	}
}

func TestGeneralHarmonicAgreesWithClosedForms(t *testing.T) {
	for key, closed := range closedForms {
		for theta := 0.0; theta <= math.Pi; theta += 0.17 {
			for phi := -math.Pi; phi <= math.Pi; phi += 0.23 {
				want := closed(theta, phi)
				got := generalHarmonic(theta, phi, key.l, key.m)
				if math.Abs(want-got) > 1e-12 {
					t.Fatalf("l=%d m=%d θ=%g φ=%g: closed %g, general %g",
						key.l, key.m, theta, phi, want, got)
				}
			}
		}
	}
}

func TestSphericalHarmonicNormalization(t *testing.T) {
	const nt, np = 400, 400
	dt, dp := math.Pi/nt, 2*math.Pi/np
	for l := 0; l <= 4; l++ {
		for m := -l; m <= l; m++ {
			t.Run(fmt.Sprintf("l=%d,m=%d", l, m), func(t *testing.T) {
				sum := 0.0
				for i := 0; i < nt; i++ {
					theta := (float64(i) + 0.5) * dt
					st := math.Sin(theta)
					for j := 0; j < np; j++ {
						phi := (float64(j) + 0.5) * dp
						y := SphericalHarmonic(theta, phi, l, m)
						sum += y * y * st
					}
				}
				sum *= dt * dp
				want := 0.5
				if m == 0 || l == 0 {
					want = 1
				}
				assert.InDelta(t, want, sum, 1e-3)
			})
		}
	}
}

func TestSphericalHarmonicOutOfRange(t *testing.T) {
	assert.Equal(t, 0.0, SphericalHarmonic(0.4, 0.2, 3, 4))
	assert.Equal(t, 0.0, SphericalHarmonic(0.4, 0.2, 3, -5))
}

func TestForm(t *testing.T) {
	tests := []struct {
		l, m int
		want HarmonicForm
	}{
		{0, 0, FormClosed},
		{1, -1, FormClosed},
		{2, 2, FormClosed},
		{3, 0, FormGeneral},
		{4, -3, FormGeneral},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Form(tt.l, tt.m), "l=%d m=%d", tt.l, tt.m)
	}
	assert.Equal(t, "closed", FormClosed.String())
	assert.Equal(t, "general", FormGeneral.String())
}

func TestApproximateHarmonic(t *testing.T) {
	assert.InDelta(t, 1.0, ApproximateHarmonic(0, 0, 1, 0), 1e-15)
	assert.InDelta(t, 1.0, ApproximateHarmonic(math.Pi/2, 0, 1, 1), 1e-15)
	assert.InDelta(t, 0.0, ApproximateHarmonic(math.Pi/2, 0, 1, 0), 1e-15)
	assert.InDelta(t, -1.0, ApproximateHarmonic(math.Pi/2, math.Pi/2, 2, 2), 1e-15)
}
