package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/orbital/pkg/buildinfo"
	"github.com/matzehuels/orbital/pkg/cache"
	"github.com/matzehuels/orbital/pkg/config"
	orberr "github.com/matzehuels/orbital/pkg/errors"
	"github.com/matzehuels/orbital/pkg/hydrogen"
	"github.com/matzehuels/orbital/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded in the root command's PersistentPreRunE.
	Config config.Config

	configPath string
	noCache    bool
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetVerbose forces debug logging regardless of the configured level.
func (c *CLI) SetVerbose(v bool) {
	c.verbose = v
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Orbital evaluates and plots hydrogen atom orbitals",
		Long: `Orbital evaluates hydrogen-atom wavefunctions: radial profiles, volumetric
point clouds, energy levels and the allowed dipole transitions between them.

Results are cached locally; the same engine is available over HTTP with 'serve'.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/orbital/config.toml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable caching")

	// Register all subcommands
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.levelsCommand())
	root.AddCommand(c.profileCommand())
	root.AddCommand(c.sampleCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file and applies its log level. --verbose
// wins over the file.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	if c.verbose {
		c.SetLogLevel(LogDebug)
		return nil
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	c.SetLogLevel(level)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

// newCache picks the backend: none with --no-cache or cache.disabled, Redis
// when cache.redis_url is set, the file cache otherwise.
func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	if c.noCache || c.Config.Cache.Disabled {
		return cache.NewNullCache(), nil
	}
	if url := c.Config.Cache.RedisURL; url != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{URL: url})
		if err != nil {
			return nil, fmt.Errorf("connect cache: %w", err)
		}
		return c.wrapCache(rc), nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("no cache directory, caching disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return c.wrapCache(fc), nil
}

// wrapCache applies cache.ttl and reports cache traffic to the hooks.
func (c *CLI) wrapCache(store cache.Cache) cache.Cache {
	return cache.WithHooks(cache.WithMaxTTL(store, c.Config.Cache.TTL.Duration))
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, defaulting to the XDG
// location (~/.cache/orbital/).
func (c *CLI) cacheDir() (string, error) {
	return c.Config.ResolvedCacheDir()
}

// =============================================================================
// Argument Helpers
// =============================================================================

// parseQuantumArgs reads n, l and optionally m from positional arguments and
// validates the triple.
func parseQuantumArgs(args []string) (hydrogen.QuantumNumbers, error) {
	var q hydrogen.QuantumNumbers
	dst := []*int{&q.N, &q.L, &q.M}
	names := []string{"n", "l", "m"}
	for i, a := range args {
		if i >= len(dst) {
			break
		}
		v, err := strconv.Atoi(a)
		if err != nil {
			return q, orberr.New(orberr.ErrCodeInvalidInput, "%s must be an integer, got %q", names[i], a)
		}
		*dst[i] = v
	}
	return q, q.Validate()
}

// setCLIDefaults applies config values on top of pipeline defaults. Flags
// set explicitly are left alone.
func (c *CLI) setCLIDefaults(opts *pipeline.Options) {
	s := c.Config.Sampling
	switch opts.Kind {
	case pipeline.KindProfile:
		if opts.Points == 0 {
			opts.Points = s.Points
		}
		if opts.MaxR == 0 {
			opts.MaxR = c.Config.ProfileMaxR(opts.N)
		}
	case pipeline.KindCloud:
		if opts.Resolution == 0 {
			opts.Resolution = s.Resolution
		}
	}
	if opts.Workers == 0 {
		opts.Workers = s.Workers
	}
	opts.Logger = c.Logger
}
