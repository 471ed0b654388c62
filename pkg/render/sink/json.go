package sink

import (
	"encoding/json"
	"time"

	"github.com/matzehuels/orbital/pkg/hydrogen"
	"github.com/matzehuels/orbital/pkg/render/grotrian"
	"github.com/matzehuels/orbital/pkg/sampling"
)

// JSONOption configures the JSON renderers.
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	compact     bool
	descriptor  bool
	generatedAt time.Time
	version     string
}

// WithJSONCompact disables indentation.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

// WithJSONDescriptor embeds the full [hydrogen.Orbital] descriptor (energy,
// node counts, equations) next to the sampled data.
func WithJSONDescriptor() JSONOption { return func(r *jsonRenderer) { r.descriptor = true } }

// WithJSONGeneratedAt stamps the document with t.
func WithJSONGeneratedAt(t time.Time) JSONOption {
	return func(r *jsonRenderer) { r.generatedAt = t.UTC() }
}

// WithJSONVersion records the producing tool version.
func WithJSONVersion(v string) JSONOption { return func(r *jsonRenderer) { r.version = v } }

func newJSONRenderer(opts []JSONOption) jsonRenderer {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

type jsonMeta struct {
	Version     string     `json:"version,omitempty"`
	GeneratedAt *time.Time `json:"generated_at,omitempty"`
}

func (r jsonRenderer) meta() *jsonMeta {
	if r.version == "" && r.generatedAt.IsZero() {
		return nil
	}
	m := &jsonMeta{Version: r.version}
	if !r.generatedAt.IsZero() {
		t := r.generatedAt
		m.GeneratedAt = &t
	}
	return m
}

func (r jsonRenderer) orbital(q hydrogen.QuantumNumbers) *hydrogen.Orbital {
	if !r.descriptor {
		return nil
	}
	o := q.Describe()
	return &o
}

func (r jsonRenderer) marshal(v any) ([]byte, error) {
	if r.compact {
		return json.Marshal(v)
	}
	return json.MarshalIndent(v, "", "  ")
}

type profileOutput struct {
	*sampling.Profile
	Nodes   []float64         `json:"nodes,omitempty"`
	Orbital *hydrogen.Orbital `json:"orbital,omitempty"`
	Meta    *jsonMeta         `json:"meta,omitempty"`
}

// RenderProfileJSON encodes a radial profile. nodes are the interpolated
// node radii, usually from plot.Nodes; nil omits them.
func RenderProfileJSON(p *sampling.Profile, nodes []float64, opts ...JSONOption) ([]byte, error) {
	r := newJSONRenderer(opts)
	return r.marshal(profileOutput{
		Profile: p,
		Nodes:   nodes,
		Orbital: r.orbital(p.QuantumNumbers),
		Meta:    r.meta(),
	})
}

type cloudOutput struct {
	*sampling.Cloud
	Count   int               `json:"count"`
	Orbital *hydrogen.Orbital `json:"orbital,omitempty"`
	Meta    *jsonMeta         `json:"meta,omitempty"`
}

// RenderCloudJSON encodes a point cloud.
func RenderCloudJSON(c *sampling.Cloud, opts ...JSONOption) ([]byte, error) {
	r := newJSONRenderer(opts)
	return r.marshal(cloudOutput{
		Cloud:   c,
		Count:   len(c.Points),
		Orbital: r.orbital(c.QuantumNumbers),
		Meta:    r.meta(),
	})
}

// Level is one shell of the energy ladder.
type Level struct {
	N          int     `json:"n"`
	Energy     float64 `json:"energy_ev"`
	Degeneracy int     `json:"degeneracy"`
}

// Levels returns shells 1..maxN.
func Levels(maxN int) []Level {
	out := make([]Level, 0, max(maxN, 0))
	for n := 1; n <= maxN; n++ {
		out = append(out, Level{N: n, Energy: hydrogen.EnergyLevel(n), Degeneracy: hydrogen.Degeneracy(n)})
	}
	return out
}

type levelsOutput struct {
	Levels      []Level               `json:"levels"`
	Transitions []grotrian.Transition `json:"transitions"`
	Meta        *jsonMeta             `json:"meta,omitempty"`
}

// RenderLevelsJSON encodes shells 1..maxN and the allowed transitions
// between their terms.
func RenderLevelsJSON(maxN int, opts ...JSONOption) ([]byte, error) {
	r := newJSONRenderer(opts)
	ts := grotrian.Transitions(maxN)
	if ts == nil {
		ts = []grotrian.Transition{}
	}
	return r.marshal(levelsOutput{
		Levels:      Levels(maxN),
		Transitions: ts,
		Meta:        r.meta(),
	})
}
