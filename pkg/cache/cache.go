// Package cache stores computed orbital data and rendered artifacts.
//
// Profiles, point clouds and artifacts are pure functions of their inputs,
// so they are cached under keys derived from a hash of those inputs. The
// CLI uses a file cache under the XDG cache directory; the HTTP server can
// share a Redis instance across replicas.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry, sharded by key hash
//   - [RedisCache]: go-redis client with native TTLs
//   - [MemoryCache]: process-local map, used for server sweeps without a backend
//   - [NullCache]: never stores anything (--no-cache)
//
// Wrap any backend with [WithHooks] to report hits and misses to the
// observability hooks.
//
// # Keys
//
// A [Keyer] turns request options into stable keys:
//
//	k := cache.NewDefaultKeyer()
//	key := k.ProfileKey(cache.ProfileKeyOpts{N: 2, L: 1, Points: 500, MaxR: 32})
//	// "profile:<sha256>"
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default TTLs. Results are deterministic, so long TTLs only bound disk use.
const (
	ProfileTTL  = 30 * 24 * time.Hour
	CloudTTL    = 7 * 24 * time.Hour
	ArtifactTTL = 30 * 24 * time.Hour
	SweepTTL    = 24 * time.Hour
)

// Key type prefixes.
const (
	KeyTypeProfile  = "profile"
	KeyTypeCloud    = "cloud"
	KeyTypeArtifact = "artifact"
	KeyTypeSweep    = "sweep"
)

// Keyer generates cache keys.
type Keyer interface {
	ProfileKey(opts ProfileKeyOpts) string
	CloudKey(opts CloudKeyOpts) string
	ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string
	SweepKey(id string) string
}

// ProfileKeyOpts identifies a radial profile.
type ProfileKeyOpts struct {
	N      int     `json:"n"`
	L      int     `json:"l"`
	Points int     `json:"points"`
	MaxR   float64 `json:"max_r"`
}

// CloudKeyOpts identifies a point cloud.
type CloudKeyOpts struct {
	N          int     `json:"n"`
	L          int     `json:"l"`
	M          int     `json:"m"`
	Resolution int     `json:"resolution"`
	MaxR       float64 `json:"max_r"`
	MinR       float64 `json:"min_r"`
	Threshold  float64 `json:"threshold"`
}

// ArtifactKeyOpts identifies a rendered output of some source data.
type ArtifactKeyOpts struct {
	Kind   string  `json:"kind"`
	Format string  `json:"format"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Scale  float64 `json:"scale,omitempty"`
}

// DefaultKeyer hashes options into "<type>:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ProfileKey returns the key of a radial profile.
func (DefaultKeyer) ProfileKey(opts ProfileKeyOpts) string {
	return hashKey(KeyTypeProfile, opts)
}

// CloudKey returns the key of a point cloud.
func (DefaultKeyer) CloudKey(opts CloudKeyOpts) string {
	return hashKey(KeyTypeCloud, opts)
}

// ArtifactKey returns the key of an artifact rendered from the data whose
// content hash is sourceHash.
func (DefaultKeyer) ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string {
	return hashKey(KeyTypeArtifact, sourceHash, opts)
}

// SweepKey returns the key of a stored sweep. IDs are used verbatim.
func (DefaultKeyer) SweepKey(id string) string {
	return KeyTypeSweep + ":" + id
}

// KeyType returns the type prefix embedded in key, looking past any scope
// prefix, or "other".
func KeyType(key string) string {
	for _, t := range []string{KeyTypeProfile, KeyTypeCloud, KeyTypeArtifact, KeyTypeSweep} {
		if strings.HasPrefix(key, t+":") || strings.Contains(key, ":"+t+":") {
			return t
		}
	}
	return "other"
}

// GetJSON decodes the value under key into v. It reports false on a miss.
// Entries that no longer decode are deleted and reported as misses.
func GetJSON(ctx context.Context, c Cache, key string, v any) (bool, error) {
	data, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		_ = c.Delete(ctx, key)
		return false, nil
	}
	return true, nil
}

// LoadJSON is GetJSON for entries the caller expects to exist: a miss is
// reported as an error wrapping ErrNotFound.
func LoadJSON(ctx context.Context, c Cache, key string, v any) error {
	ok, err := GetJSON(ctx, c, key, v)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	return nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, data, ttl)
}
