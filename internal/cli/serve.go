package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orbital/internal/server"
	"github.com/matzehuels/orbital/pkg/cache"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisURL  string
		maxSweeps int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the orbital API over HTTP",
		Long: `Serve orbital descriptors, radial profiles, level diagrams and background
point-cloud sweeps over HTTP.

With --redis (or cache.redis_url), results and sweep records are shared
through Redis so several replicas can serve the same sweeps.

Example:
  orbital serve --addr :9000 --redis redis://localhost:6379/0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			if redisURL != "" {
				c.Config.Cache.RedisURL = redisURL
			}
			return c.runServe(cmd.Context(), addr, maxSweeps)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&redisURL, "redis", "", "redis URL for the shared cache")
	cmd.Flags().IntVar(&maxSweeps, "max-sweeps", server.DefaultMaxSweeps, "concurrent background sweeps")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, maxSweeps int) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	// Sweep records live next to the results when they are shared; a local
	// file cache is per-host, so records stay in memory then.
	var store cache.Cache
	if c.Config.Cache.RedisURL != "" && !c.noCache && !c.Config.Cache.Disabled {
		store = runner.Cache
	}

	srv := server.New(runner, store, c.Logger, server.WithMaxSweeps(maxSweeps))
	printInfo("Listening on %s", StyleHighlight.Render(addr))
	return srv.ListenAndServe(ctx, addr)
}
