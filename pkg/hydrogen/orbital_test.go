package hydrogen

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/orbital/pkg/coords"
	orberr "github.com/matzehuels/orbital/pkg/errors"
)

func TestOrbitalName(t *testing.T) {
	tests := []struct {
		n, l, m int
		want    string
	}{
		{1, 0, 0, "1s"},
		{2, 0, 0, "2s"},
		{2, 1, -1, "2p_y"},
		{2, 1, 0, "2p_z"},
		{2, 1, 1, "2p_x"},
		{3, 2, -2, "3d_xy"},
		{3, 2, -1, "3d_yz"},
		{3, 2, 0, "3d_z²"},
		{3, 2, 1, "3d_xz"},
		{3, 2, 2, "3d_x²-y²"},
		{4, 3, -1, "4f"},
		{6, 5, 0, "6h"},
		{8, 6, 0, "86"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, OrbitalName(tt.n, tt.l, tt.m))
		})
	}
}

func TestSubshellLetter(t *testing.T) {
	assert.Equal(t, "s", SubshellLetter(0))
	assert.Equal(t, "g", SubshellLetter(4))
	assert.Equal(t, "7", SubshellLetter(7))
	assert.Equal(t, "-1", SubshellLetter(-1))
}

func TestEnergyLevel(t *testing.T) {
	assert.Equal(t, -13.6, EnergyLevel(1))
	assert.Equal(t, -3.4, EnergyLevel(2))
	assert.InDelta(t, -1.511111, EnergyLevel(3), 1e-6)
	for n := 1; n < 10; n++ {
		assert.Less(t, EnergyLevel(n), EnergyLevel(n+1))
	}

	// n² does not fit in an int here.
	const huge = 3037000500
	assert.Less(t, EnergyLevel(huge), 0.0)
	assert.Less(t, EnergyLevel(huge-1), EnergyLevel(huge))
}

func TestDegeneracy(t *testing.T) {
	assert.Equal(t, 1, Degeneracy(1))
	assert.Equal(t, 16, Degeneracy(4))
	assert.Equal(t, math.MaxInt, Degeneracy(3037000500))
}

func TestNodeCounts(t *testing.T) {
	assert.Equal(t, 0, RadialNodes(1, 0))
	assert.Equal(t, 2, RadialNodes(3, 0))
	assert.Equal(t, 0, RadialNodes(3, 2))
	assert.Equal(t, 2, AngularNodes(2))
	assert.Equal(t, 16, Degeneracy(4))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		q       QuantumNumbers
		wantErr bool
	}{
		{"ground", QuantumNumbers{1, 0, 0}, false},
		{"3d-2", QuantumNumbers{3, 2, -2}, false},
		{"large", QuantumNumbers{40, 39, 39}, false},
		{"largest shell", QuantumNumbers{MaxPrincipal, 0, 0}, false},

		{"n zero", QuantumNumbers{0, 0, 0}, true},
		{"n negative", QuantumNumbers{-1, 0, 0}, true},
		{"l equals n", QuantumNumbers{2, 2, 0}, true},
		{"l negative", QuantumNumbers{2, -1, 0}, true},
		{"m above l", QuantumNumbers{3, 1, 2}, true},
		{"m below -l", QuantumNumbers{3, 1, -2}, true},
		{"n above limit", QuantumNumbers{MaxPrincipal + 1, 0, 0}, true},
		{"n overflows square", QuantumNumbers{3037000500, 0, 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.q.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidQuantumNumbers))
			assert.True(t, orberr.Is(err, orberr.ErrCodeInvalidQuantumNumbers))
			assert.True(t, orberr.IsInvalid(err))
		})
	}
}

func TestStates(t *testing.T) {
	states := States(3)
	require.Len(t, states, 1+4+9)
	assert.Equal(t, QuantumNumbers{1, 0, 0}, states[0])
	assert.Equal(t, QuantumNumbers{3, 2, 2}, states[len(states)-1])
	for _, q := range states {
		assert.NoError(t, q.Validate())
	}
}

func TestNewOrbital(t *testing.T) {
	o, err := NewOrbital(3, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, "3d_z²", o.Name)
	assert.InDelta(t, -13.6/9, o.Energy, 1e-12)
	assert.Equal(t, 0, o.RadialNodes)
	assert.Equal(t, 2, o.AngularNodes)
	assert.Equal(t, 9, o.Degeneracy)
	assert.Equal(t, 10.5, o.ExpectedRadius)
	assert.Equal(t, "closed", o.Form)
	assert.Equal(t, "ψ₃d = (1/81√30πa₀³)(r²/a₀²) e^(-r/3a₀)(3cos²θ-1)", o.Equations.Wave)

	_, err = NewOrbital(2, 2, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantumNumbers)
}

func TestWaveFunctionFactorizes(t *testing.T) {
	for _, q := range States(4) {
		for _, p := range [][3]float64{{0.5, 0.3, 0.1}, {2, 1.2, -2}, {7, 2.9, 3}} {
			r, theta, phi := p[0], p[1], p[2]
			want := RadialWaveFunction(r, q.N, q.L) * SphericalHarmonic(theta, phi, q.L, q.M)
			psi := WaveFunction(r, theta, phi, q.N, q.L, q.M)
			assert.Equal(t, want, psi)
			assert.Equal(t, psi*psi, ProbabilityDensity(r, theta, phi, q.N, q.L, q.M))
			assert.GreaterOrEqual(t, ProbabilityDensity(r, theta, phi, q.N, q.L, q.M), 0.0)
		}
	}
}

func TestDensityAt(t *testing.T) {
	q := QuantumNumbers{N: 2, L: 1, M: 0}
	p := coords.Cartesian{X: 0.3, Y: -1.1, Z: 2}
	s := p.Spherical()
	assert.InDelta(t, ProbabilityDensity(s.R, s.Theta, s.Phi, 2, 1, 0), q.DensityAt(p), 1e-18)
	assert.Equal(t, WaveFunction(s.R, s.Theta, s.Phi, 2, 1, 0), q.WaveFunctionAt(s))

	// 1s: |ψ|² = e^{-2r}/π.
	g := QuantumNumbers{N: 1}
	assert.InDelta(t, math.Exp(-2)/math.Pi, g.DensityAt(coords.Cartesian{Z: 1}), 1e-12)
}

func TestTransitions(t *testing.T) {
	assert.InDelta(t, 10.2, TransitionEnergy(2, 1), 1e-12)
	assert.Less(t, TransitionEnergy(1, 2), 0.0)
	assert.InDelta(t, 121.55, TransitionWavelength(2, 1), 0.05)
	assert.InDelta(t, 656.4, TransitionWavelength(3, 2), 0.1)
	assert.Equal(t, TransitionWavelength(3, 2), TransitionWavelength(2, 3))
	assert.True(t, math.IsInf(TransitionWavelength(2, 2), 1))

	assert.True(t, AllowedTransition(QuantumNumbers{2, 1, 0}, QuantumNumbers{1, 0, 0}))
	assert.True(t, AllowedTransition(QuantumNumbers{3, 2, -2}, QuantumNumbers{2, 1, -1}))
	assert.False(t, AllowedTransition(QuantumNumbers{2, 0, 0}, QuantumNumbers{1, 0, 0}))
	assert.False(t, AllowedTransition(QuantumNumbers{3, 2, 2}, QuantumNumbers{2, 1, 0}))

	assert.Equal(t, "Lyman", SeriesName(1))
	assert.Equal(t, "Balmer", SeriesName(2))
	assert.Equal(t, "", SeriesName(9))
}
