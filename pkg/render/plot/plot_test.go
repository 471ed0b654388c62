package plot

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/orbital/pkg/hydrogen"
	"github.com/matzehuels/orbital/pkg/sampling"
)

func profile(t *testing.T, n, l int) *sampling.Profile {
	t.Helper()
	p, err := sampling.RadialProfile(context.Background(), hydrogen.QuantumNumbers{N: n, L: l}, sampling.ProfileOptions{})
	require.NoError(t, err)
	return p
}

func TestNodes(t *testing.T) {
	tests := []struct {
		n, l int
	}{
		{1, 0}, {2, 0}, {2, 1}, {3, 0}, {3, 1}, {4, 0}, {4, 2},
	}
	for _, tt := range tests {
		p := profile(t, tt.n, tt.l)
		assert.Len(t, Nodes(p), hydrogen.RadialNodes(tt.n, tt.l), "%s", p.Name)
	}
}

func TestNodes2s(t *testing.T) {
	// R_20 vanishes at r = 2.
	nodes := Nodes(profile(t, 2, 0))
	require.Len(t, nodes, 1)
	assert.InDelta(t, 2.0, nodes[0], 0.01)
}

func TestRenderRadialSVG(t *testing.T) {
	p := profile(t, 3, 0)
	svg := string(RenderRadialSVG(p))

	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.True(t, strings.HasSuffix(svg, "</svg>\n"))
	assert.Contains(t, svg, `width="800" height="400"`)
	assert.Contains(t, svg, `fill="black"`)
	assert.Contains(t, svg, "Radial distribution: 3s")
	assert.Equal(t, 2, strings.Count(svg, `class="node"`))
	assert.Contains(t, svg, `class="wave"`)
	assert.Contains(t, svg, `class="density"`)
}

func TestRenderRadialOptions(t *testing.T) {
	p := profile(t, 2, 1)
	svg := string(RenderRadialSVG(p,
		WithSize(400, 200),
		WithBackground(""),
		WithTitle("a < b"),
		WithDensityOnly(),
	))

	assert.Contains(t, svg, `width="400" height="200"`)
	assert.NotContains(t, svg, "<rect")
	assert.Contains(t, svg, "a &lt; b")
	assert.NotContains(t, svg, `class="wave"`)
	assert.Contains(t, svg, `class="density"`)
}

func TestRenderLevelsSVG(t *testing.T) {
	svg := string(RenderLevelsSVG(0))

	assert.Equal(t, DefaultLevels, strings.Count(svg, `class="level"`))
	assert.Contains(t, svg, "Hydrogen Energy Levels")
	assert.Contains(t, svg, "n = 1")
	assert.Contains(t, svg, "E = -13.60 eV")
	assert.Contains(t, svg, "E = -3.40 eV")
	assert.Contains(t, svg, "E = -0.54 eV")
	assert.Contains(t, svg, `width="600" height="500"`)
}

func TestRenderLevelsGrows(t *testing.T) {
	svg := string(RenderLevelsSVG(8))
	assert.Equal(t, 8, strings.Count(svg, `class="level"`))
	assert.Contains(t, svg, `height="730"`)
}

func TestLevelColor(t *testing.T) {
	assert.Equal(t, "#ff0000", LevelColor(1))
	assert.Equal(t, "#ffff00", LevelColor(5))
	assert.Equal(t, "#ff0000", LevelColor(6))
	assert.Equal(t, "#ff0000", LevelColor(0))
}
