package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/orbital/pkg/cache"
	orberr "github.com/matzehuels/orbital/pkg/errors"
	"github.com/matzehuels/orbital/pkg/hydrogen"
)

// swapStdout redirects user-facing output to a buffer for the test.
func swapStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}

// execute runs the root command with an empty config directory.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	buf := swapStdout(t)

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(buf)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestParseQuantumArgs(t *testing.T) {
	q, err := parseQuantumArgs([]string{"3", "2", "-1"})
	require.NoError(t, err)
	assert.Equal(t, hydrogen.QuantumNumbers{N: 3, L: 2, M: -1}, q)

	q, err = parseQuantumArgs([]string{"4", "3"})
	require.NoError(t, err)
	assert.Equal(t, 0, q.M)

	_, err = parseQuantumArgs([]string{"two", "1", "0"})
	assert.True(t, orberr.Is(err, orberr.ErrCodeInvalidInput))

	_, err = parseQuantumArgs([]string{"2", "2", "0"})
	assert.True(t, orberr.Is(err, orberr.ErrCodeInvalidQuantumNumbers))
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		output, base, format string
		multi                bool
		want                 string
	}{
		{"", "2p_profile", "svg", false, "2p_profile.svg"},
		{"plot.png", "2p_profile", "png", false, "plot.png"},
		{"out/plot.svg", "x", "json", true, "out/plot.json"},
		{"out/plot", "x", "pdf", true, "out/plot.pdf"},
		{"", "terms_n5", "dot", true, "terms_n5.dot"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, outputPath(tt.output, tt.base, tt.format, tt.multi), "%+v", tt)
	}
}

func TestOrbitalStem(t *testing.T) {
	assert.Equal(t, "1s", orbitalStem(hydrogen.QuantumNumbers{N: 1}))
	assert.Equal(t, "3d_x2_y2", orbitalStem(hydrogen.QuantumNumbers{N: 3, L: 2, M: 2}))
	assert.Equal(t, "3d_z2", orbitalStem(hydrogen.QuantumNumbers{N: 3, L: 2}))
	assert.Equal(t, "4f_m-2", orbitalStem(hydrogen.QuantumNumbers{N: 4, L: 3, M: -2}))
}

func TestInfoCommand(t *testing.T) {
	out, err := execute(t, "info", "3", "2", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "3d_z²")
	assert.Contains(t, out, "-1.5111 eV")
	assert.Contains(t, out, "Angular nodes")
	assert.Contains(t, out, "orbital profile 3 2")

	_, err = execute(t, "info", "3", "3", "0")
	assert.True(t, orberr.Is(err, orberr.ErrCodeInvalidQuantumNumbers))

	_, err = execute(t, "info", "3", "2")
	assert.Error(t, err)
}

func TestLevelsCommand(t *testing.T) {
	out, err := execute(t, "levels", "--max", "3", "--transitions")
	require.NoError(t, err)
	assert.Contains(t, out, "-13.6000")
	assert.Contains(t, out, "3s 3p 3d")
	assert.Contains(t, out, "Balmer")
	assert.Contains(t, out, "656.")
	assert.Contains(t, out, "3p → 1s")

	_, err = execute(t, "levels", "--max", "0")
	assert.True(t, orberr.IsInvalid(err))

	_, err = execute(t, "levels", "-f", "svg", "--diagram", "pie")
	assert.True(t, orberr.IsInvalid(err))

	_, err = execute(t, "levels", "-f", "dot", "--diagram", "levels")
	assert.True(t, orberr.Is(err, orberr.ErrCodeInvalidFormat))
}

func TestLevelsDiagram(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "terms.dot")
	out, err := execute(t, "--no-cache", "levels", "--max", "3", "-f", "dot", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "digraph")

	out, err = execute(t, "--no-cache", "levels", "--diagram", "levels", "-f", "json", "-o", "-")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "{"), "stdout carries only the artifact: %q", out)
}

func TestProfileCommand(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "2s")
	out, err := execute(t, "--no-cache", "profile", "2", "0", "--points", "300", "-f", "svg,json", "-o", base)
	require.NoError(t, err)
	assert.Contains(t, out, "Radial profile of")
	assert.Contains(t, out, "300 samples")
	assert.Contains(t, out, "nodes at r = ")

	svg, err := os.ReadFile(base + ".svg")
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")

	js, err := os.ReadFile(base + ".json")
	require.NoError(t, err)
	assert.Contains(t, string(js), `"samples"`)

	_, err = execute(t, "--no-cache", "profile", "2", "0", "-f", "gif")
	assert.True(t, orberr.Is(err, orberr.ErrCodeInvalidFormat))
}

func TestSampleCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cloud.json")
	out, err := execute(t, "--no-cache", "sample", "2", "1", "0", "--resolution", "16", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Point cloud of")
	assert.Contains(t, out, "grid 16³")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"resolution": 16`)
}

func TestCheckCommand(t *testing.T) {
	out, err := execute(t, "check", "2", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "2p")
	assert.Contains(t, out, "All 1 states normalized")

	out, err = execute(t, "check", "--max-n", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "All 6 states normalized")

	_, err = execute(t, "check", "2")
	assert.Error(t, err)
}

func TestConfigFlag(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.toml"), "info", "1", "0", "0")
	assert.True(t, orberr.Is(err, orberr.ErrCodeInvalidConfig))

	path := writeConfig(t, "[sampling]\npoints = 250\n")
	dir := t.TempDir()
	out, err := execute(t, "--config", path, "--no-cache", "profile", "1", "0", "-f", "json", "-o", filepath.Join(dir, "p.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "250 samples")
}

func TestCacheCommands(t *testing.T) {
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	dir := filepath.Join(cacheHome, appName)

	out, err := execute(t, "cache", "path")
	require.NoError(t, err)
	assert.Equal(t, dir, strings.TrimSpace(out))

	out, err = execute(t, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Cache is empty")

	fc, err := cache.NewFileCache(dir)
	require.NoError(t, err)
	require.NoError(t, fc.Set(context.Background(), "profile:abc", []byte("{}"), time.Hour))

	out, err = execute(t, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared 1 cached entries")
}

func TestProfileUsesCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	args := []string{"profile", "3", "1", "--points", "200", "-f", "json", "-o", filepath.Join(dir, "p.json")}

	out, err := execute(t, args...)
	require.NoError(t, err)
	assert.Contains(t, out, "fresh")

	out, err = execute(t, args...)
	require.NoError(t, err)
	assert.Contains(t, out, "cached")
}
