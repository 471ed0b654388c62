// Package pipeline provides the sample → render pipeline for orbital.
//
// This package implements the complete pipeline that the CLI and the HTTP
// server share. By centralizing defaults, caching and format dispatch here,
// both entry points produce byte-identical artifacts for the same request.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Sample: evaluate the orbital (radial profile or volumetric point cloud)
//  2. Render: produce output in the requested formats (SVG, PDF, PNG, JSON, DOT)
//
// Level diagrams and term diagrams skip the sample stage; they depend only
// on MaxN.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Kind:           pipeline.KindProfile,
//	    QuantumNumbers: hydrogen.QuantumNumbers{N: 3, L: 1},
//	    Formats:        []string{"svg", "json"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/orbital/pkg/cache"
	orberr "github.com/matzehuels/orbital/pkg/errors"
	"github.com/matzehuels/orbital/pkg/hydrogen"
	"github.com/matzehuels/orbital/pkg/render"
	"github.com/matzehuels/orbital/pkg/render/grotrian"
	"github.com/matzehuels/orbital/pkg/sampling"
)

// Kinds of pipeline output.
const (
	KindProfile = "profile"
	KindCloud   = "cloud"
	KindLevels  = "levels"
	KindTerms   = "terms"
)

// DefaultKind is the kind used when Options.Kind is empty.
const DefaultKind = KindProfile

// DefaultMaxN is the number of shells in level and term diagrams.
const DefaultMaxN = 5

// Format constants for output formats.
const (
	FormatSVG  = render.FormatSVG
	FormatPNG  = render.FormatPNG
	FormatPDF  = render.FormatPDF
	FormatJSON = render.FormatJSON
	FormatDOT  = render.FormatDOT
)

// ValidFormats lists the formats each kind can be rendered to. The first
// entry is the default.
var ValidFormats = map[string][]string{
	KindProfile: {FormatSVG, FormatJSON, FormatPDF, FormatPNG},
	KindCloud:   {FormatJSON},
	KindLevels:  {FormatSVG, FormatJSON, FormatPDF, FormatPNG},
	KindTerms:   {FormatSVG, FormatDOT, FormatJSON, FormatPDF, FormatPNG},
}

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	Kind string `json:"kind"`

	// Orbital selection; ignored for levels and terms.
	hydrogen.QuantumNumbers

	// Profile options
	Points int     `json:"points,omitempty"`
	MaxR   float64 `json:"max_r,omitempty"`

	// Cloud options
	Resolution int     `json:"resolution,omitempty"`
	MinR       float64 `json:"min_r,omitempty"`
	Threshold  float64 `json:"threshold,omitempty"`
	Workers    int     `json:"-"`

	// Diagram options
	MaxN int `json:"max_n,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Width   float64  `json:"width,omitempty"`
	Height  float64  `json:"height,omitempty"`
	Scale   float64  `json:"scale,omitempty"`

	// Refresh bypasses cached samples and artifacts.
	Refresh bool `json:"refresh,omitempty"`

	// Logger receives per-artifact debug lines. Not serialized.
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Orbital describes the sampled state; zero for levels and terms.
	Orbital hydrogen.Orbital

	// Profile is set for KindProfile.
	Profile *sampling.Profile

	// Cloud is set for KindCloud.
	Cloud *sampling.Cloud

	// SourceHash is the content hash artifacts are keyed by.
	SourceHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Samples    int
	SampleTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SampleHit bool // Whether the sampled data came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateKind checks that kind is known.
func ValidateKind(kind string) error {
	if _, ok := ValidFormats[kind]; !ok {
		return orberr.New(orberr.ErrCodeInvalidInput,
			"invalid kind: %q (must be one of: profile, cloud, levels, terms)", kind)
	}
	return nil
}

// ValidateFormat checks that kind can be rendered as format.
func ValidateFormat(kind, format string) error {
	valid, ok := ValidFormats[kind]
	if !ok {
		return ValidateKind(kind)
	}
	if !slices.Contains(valid, format) {
		return orberr.New(orberr.ErrCodeInvalidFormat,
			"invalid format for %s: %q (must be one of: %s)", kind, format, strings.Join(valid, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid for kind.
func ValidateFormats(kind string, formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(kind, f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, trimming blanks and
// dropping duplicates.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the request and resolves every default so
// cache keys are stable. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Kind == "" {
		o.Kind = DefaultKind
	}
	if err := ValidateKind(o.Kind); err != nil {
		return err
	}
	if o.NeedsSample() {
		if err := o.QuantumNumbers.Validate(); err != nil {
			return err
		}
	}

	switch o.Kind {
	case KindProfile:
		o.SetProfileDefaults()
		if err := orberr.ValidateIntRange("points", o.Points, 2, sampling.MaxProfilePoints); err != nil {
			return err
		}
		if err := orberr.ValidatePositive("max_r", o.MaxR); err != nil {
			return err
		}
	case KindCloud:
		o.SetCloudDefaults()
		if err := orberr.ValidateIntRange("resolution", o.Resolution, 2, sampling.MaxResolution); err != nil {
			return err
		}
		if err := orberr.ValidatePositive("max_r", o.MaxR); err != nil {
			return err
		}
		if err := orberr.ValidatePositive("threshold", o.Threshold); err != nil {
			return err
		}
	case KindLevels, KindTerms:
		if o.MaxN == 0 {
			o.MaxN = DefaultMaxN
		}
		if err := orberr.ValidateIntRange("max_n", o.MaxN, 1, grotrian.MaxN); err != nil {
			return err
		}
	}

	o.SetRenderDefaults()
	if err := ValidateFormats(o.Kind, o.Formats); err != nil {
		return err
	}
	if err := orberr.ValidateNonNegative("scale", o.Scale); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetProfileDefaults fills Points and MaxR.
func (o *Options) SetProfileDefaults() {
	if o.Points == 0 {
		o.Points = sampling.DefaultProfilePoints
	}
	if o.MaxR == 0 {
		o.MaxR = sampling.ProfileRadiusFactor * float64(o.N*o.N)
	}
}

// SetCloudDefaults fills the grid and threshold options.
func (o *Options) SetCloudDefaults() {
	if o.Resolution == 0 {
		o.Resolution = sampling.DefaultCloudResolution
	}
	if o.MaxR == 0 {
		o.MaxR = sampling.DefaultVolumeRadius(o.N)
	}
	if o.MinR == 0 {
		o.MinR = sampling.DefaultMinR
	}
	if o.Threshold == 0 {
		o.Threshold = sampling.AdaptiveThreshold(o.N, o.L)
	}
}

// SetRenderDefaults sets the default format of the kind and a logger.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		if valid, ok := ValidFormats[o.Kind]; ok {
			o.Formats = []string{valid[0]}
		}
	}
	if o.Scale == 0 {
		o.Scale = render.DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// as returns a copy of o retargeted to kind. Switching kinds drops the
// formats and forces revalidation.
func (o Options) as(kind string) Options {
	if o.Kind != kind {
		o.Kind = kind
		o.Formats = nil
		o.validated = false
	}
	return o
}

// NeedsSample reports whether the kind evaluates an orbital.
func (o *Options) NeedsSample() bool {
	return o.Kind == KindProfile || o.Kind == KindCloud
}

// ProfileOptions returns the sampling options of a profile run.
func (o *Options) ProfileOptions() sampling.ProfileOptions {
	return sampling.ProfileOptions{Points: o.Points, MaxR: o.MaxR}
}

// CloudOptions returns the sampling options of a cloud run.
func (o *Options) CloudOptions() sampling.CloudOptions {
	return sampling.CloudOptions{
		GridOptions: sampling.GridOptions{
			Resolution: o.Resolution,
			MaxR:       o.MaxR,
			MinR:       o.MinR,
			Workers:    o.Workers,
		},
		Threshold: o.Threshold,
	}
}

// ProfileKeyOpts returns cache key options for a profile.
func (o *Options) ProfileKeyOpts() cache.ProfileKeyOpts {
	return cache.ProfileKeyOpts{N: o.N, L: o.L, Points: o.Points, MaxR: o.MaxR}
}

// CloudKeyOpts returns cache key options for a point cloud.
func (o *Options) CloudKeyOpts() cache.CloudKeyOpts {
	return cache.CloudKeyOpts{
		N:          o.N,
		L:          o.L,
		M:          o.M,
		Resolution: o.Resolution,
		MaxR:       o.MaxR,
		MinR:       o.MinR,
		Threshold:  o.Threshold,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Kind:   o.Kind,
		Format: format,
		Width:  o.Width,
		Height: o.Height,
	}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}

// String summarizes the request for log lines.
func (o *Options) String() string {
	if o.NeedsSample() {
		return fmt.Sprintf("%s %s", o.Kind, hydrogen.OrbitalName(o.N, o.L, o.M))
	}
	return fmt.Sprintf("%s n≤%d", o.Kind, o.MaxN)
}
