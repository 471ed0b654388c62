package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/orbital/pkg/cache"
	"github.com/matzehuels/orbital/pkg/observability"
	"github.com/matzehuels/orbital/pkg/sampling"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the sample → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}
	var src source

	switch opts.Kind {
	case KindProfile:
		start := time.Now()
		p, hit, err := r.ProfileWithCacheInfo(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("sample: %w", err)
		}
		result.Profile = p
		result.Stats.Samples = len(p.Samples)
		result.Stats.SampleTime = time.Since(start)
		result.CacheInfo.SampleHit = hit
		src = profileSource{p}
	case KindCloud:
		start := time.Now()
		c, hit, err := r.CloudWithCacheInfo(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("sample: %w", err)
		}
		result.Cloud = c
		result.Stats.Samples = len(c.Points)
		result.Stats.SampleTime = time.Since(start)
		result.CacheInfo.SampleHit = hit
		src = cloudSource{c}
	default:
		src = diagramSource{kind: opts.Kind, maxN: opts.MaxN}
	}

	if opts.NeedsSample() {
		result.Orbital = opts.QuantumNumbers.Describe()
		r.Logger.Info("sampled orbital",
			"orbital", result.Orbital.Name,
			"samples", result.Stats.Samples,
			"cached", result.CacheInfo.SampleHit,
			"duration", result.Stats.SampleTime)
	}

	renderStart := time.Now()
	hash, err := src.hash()
	if err != nil {
		return nil, fmt.Errorf("hash source: %w", err)
	}
	result.SourceHash = hash

	artifacts, hit, err := r.renderWithCacheInfo(ctx, src, hash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outputs",
		"request", opts.String(),
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ProfileWithCacheInfo samples a radial profile with caching and returns
// cache hit info.
func (r *Runner) ProfileWithCacheInfo(ctx context.Context, opts Options) (*sampling.Profile, bool, error) {
	opts = opts.as(KindProfile)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	key := r.Keyer.ProfileKey(opts.ProfileKeyOpts())

	if !opts.Refresh {
		var cached sampling.Profile
		if ok, err := cache.GetJSON(ctx, r.Cache, key, &cached); err == nil && ok {
			return &cached, true, nil
		} else if err != nil {
			r.Logger.Warn("cache read failed", "key", key, "error", err)
		}
	}

	p, err := sampling.RadialProfile(ctx, opts.QuantumNumbers, opts.ProfileOptions())
	if err != nil {
		return nil, false, err
	}
	if err := cache.SetJSON(ctx, r.Cache, key, p, cache.ProfileTTL); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "error", err)
	}
	return p, false, nil
}

// Profile is a convenience wrapper that discards the cache hit info.
func (r *Runner) Profile(ctx context.Context, opts Options) (*sampling.Profile, error) {
	p, _, err := r.ProfileWithCacheInfo(ctx, opts)
	return p, err
}

// CloudWithCacheInfo sweeps a point cloud with caching and returns cache
// hit info.
func (r *Runner) CloudWithCacheInfo(ctx context.Context, opts Options) (*sampling.Cloud, bool, error) {
	opts = opts.as(KindCloud)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	key := r.Keyer.CloudKey(opts.CloudKeyOpts())

	if !opts.Refresh {
		var cached sampling.Cloud
		if ok, err := cache.GetJSON(ctx, r.Cache, key, &cached); err == nil && ok {
			return &cached, true, nil
		} else if err != nil {
			r.Logger.Warn("cache read failed", "key", key, "error", err)
		}
	}

	c, err := sampling.PointCloud(ctx, opts.QuantumNumbers, opts.CloudOptions())
	if err != nil {
		return nil, false, err
	}
	if err := cache.SetJSON(ctx, r.Cache, key, c, cache.CloudTTL); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "error", err)
	}
	return c, false, nil
}

// Cloud is a convenience wrapper that discards the cache hit info.
func (r *Runner) Cloud(ctx context.Context, opts Options) (*sampling.Cloud, error) {
	c, _, err := r.CloudWithCacheInfo(ctx, opts)
	return c, err
}

// renderWithCacheInfo generates artifacts keyed by the source hash and
// reports whether every format came from cache. opts must be validated.
func (r *Runner) renderWithCacheInfo(ctx context.Context, src source, hash string, opts Options) (map[string][]byte, bool, error) {
	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	if !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := src.render(ctx, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		opts.Logger.Debug("rendered artifact", "format", format, "bytes", len(data))
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); err != nil {
			r.Logger.Warn("cache write failed", "key", key, "error", err)
		}
	}
	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// source is data the render stage can draw.
type source interface {
	hash() (string, error)
	render(ctx context.Context, opts Options) (map[string][]byte, error)
}

type profileSource struct{ p *sampling.Profile }

func (s profileSource) hash() (string, error) { return jsonHash(s.p) }

type cloudSource struct{ c *sampling.Cloud }

func (s cloudSource) hash() (string, error) { return jsonHash(s.c) }

type diagramSource struct {
	kind string
	maxN int
}

func (s diagramSource) hash() (string, error) {
	return cache.Hash([]byte(s.kind + ":" + strconv.Itoa(s.maxN))), nil
}

func jsonHash(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}
