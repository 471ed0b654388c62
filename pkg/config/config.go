// Package config loads orbital's TOML configuration file.
//
// The file lives at $XDG_CONFIG_HOME/orbital/config.toml (falling back to
// ~/.config/orbital/config.toml) unless a path is given explicitly. Every
// key is optional; missing keys keep their defaults, and command-line flags
// override both.
//
//	[sampling]
//	resolution = 64      # grid cells per axis for point clouds
//	max_r_factor = 8.0   # profile extent in units of n²
//	points = 500         # radial profile samples
//	workers = 0          # sweep goroutines, 0 = GOMAXPROCS
//
//	[cache]
//	dir = "~/.cache/orbital"
//	ttl = "720h"
//	redis_url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":8080"
//
//	[log]
//	level = "info"
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	orberr "github.com/matzehuels/orbital/pkg/errors"
	"github.com/matzehuels/orbital/pkg/sampling"
)

// AppName names the config and cache directories.
const AppName = "orbital"

// FileName is the config file name inside the config directory.
const FileName = "config.toml"

// DefaultAddr is the HTTP listen address.
const DefaultAddr = ":8080"

// Config is the full configuration.
type Config struct {
	Sampling Sampling `toml:"sampling"`
	Cache    Cache    `toml:"cache"`
	Server   Server   `toml:"server"`
	Log      Log      `toml:"log"`
}

// Sampling holds numeric defaults.
type Sampling struct {
	Resolution int     `toml:"resolution"`
	MaxRFactor float64 `toml:"max_r_factor"`
	Points     int     `toml:"points"`
	Workers    int     `toml:"workers"`
}

// Cache selects and tunes the cache backend.
type Cache struct {
	Dir      string   `toml:"dir"`
	TTL      Duration `toml:"ttl"`
	RedisURL string   `toml:"redis_url"`
	Disabled bool     `toml:"disabled"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`
}

// Log configures logging.
type Log struct {
	Level string `toml:"level"`
}

// Duration is a time.Duration that decodes from TOML strings like "24h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Sampling: Sampling{
			Resolution: sampling.DefaultCloudResolution,
			MaxRFactor: sampling.ProfileRadiusFactor,
			Points:     sampling.DefaultProfilePoints,
		},
		Server: Server{Addr: DefaultAddr},
		Log:    Log{Level: "info"},
	}
}

// Path returns the default config file path.
func Path() (string, error) {
	dir, err := dirFor("XDG_CONFIG_HOME", ".config")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// CacheDir returns the default cache directory (~/.cache/orbital/).
func CacheDir() (string, error) {
	return dirFor("XDG_CACHE_HOME", ".cache")
}

func dirFor(env, fallback string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, AppName), nil
}

// Load reads the config at path on top of the defaults. An empty path means
// the default location, where a missing file is not an error; an explicit
// path must exist.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, orberr.Wrap(orberr.ErrCodeInvalidConfig, err, "read config")
	}
	return Parse(data)
}

// Parse decodes TOML on top of the defaults and validates the result.
// Unknown keys are rejected so typos do not pass silently.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, orberr.Wrap(orberr.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, orberr.New(orberr.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks ranges and the log level.
func (c Config) Validate() error {
	if err := orberr.ValidateIntRange("sampling.resolution", c.Sampling.Resolution, 2, sampling.MaxResolution); err != nil {
		return asConfig(err)
	}
	if err := orberr.ValidatePositive("sampling.max_r_factor", c.Sampling.MaxRFactor); err != nil {
		return asConfig(err)
	}
	if err := orberr.ValidateIntRange("sampling.points", c.Sampling.Points, 2, sampling.MaxProfilePoints); err != nil {
		return asConfig(err)
	}
	if c.Sampling.Workers < 0 {
		return orberr.New(orberr.ErrCodeInvalidConfig, "sampling.workers must not be negative")
	}
	if c.Cache.TTL.Duration < 0 {
		return orberr.New(orberr.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses Log.Level.
func (c Config) LogLevel() (log.Level, error) {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel, orberr.Wrap(orberr.ErrCodeInvalidConfig, err, "log.level")
	}
	return level, nil
}

// ProfileMaxR returns the profile extent for shell n.
func (c Config) ProfileMaxR(n int) float64 {
	fn := float64(n)
	return c.Sampling.MaxRFactor * fn * fn
}

// ResolvedCacheDir returns Cache.Dir with a leading "~" expanded, or the
// default cache directory when unset.
func (c Config) ResolvedCacheDir() (string, error) {
	dir := c.Cache.Dir
	if dir == "" {
		return CacheDir()
	}
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand %s: %w", dir, err)
		}
		dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
	}
	return dir, nil
}

func asConfig(err error) error {
	return orberr.Wrap(orberr.ErrCodeInvalidConfig, err, "%s", orberr.UserMessage(err))
}
