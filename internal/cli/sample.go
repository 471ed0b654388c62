package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orbital/pkg/pipeline"
)

// sampleCommand creates the sample command for volumetric sweeps.
func (c *CLI) sampleCommand() *cobra.Command {
	var output string
	opts := pipeline.Options{Kind: pipeline.KindCloud}

	cmd := &cobra.Command{
		Use:   "sample N L M",
		Short: "Sample |ψ|² on a 3D grid and write a point cloud",
		Long: `Sample the probability density of one orbital on a cubic grid and keep the
points above a threshold. The threshold defaults to a value tuned per (n, l)
so clouds stay readable.

Examples:
  orbital sample 3 2 0
  orbital sample 4 1 -1 --resolution 120 --threshold 1e-5 -o 4p.json`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := parseQuantumArgs(args)
			if err != nil {
				return err
			}
			opts.QuantumNumbers = q
			return c.runSample(cmd.Context(), opts, output)
		},
	}

	cmd.Flags().IntVar(&opts.Resolution, "resolution", 0, "grid cells per axis (default from config)")
	cmd.Flags().Float64Var(&opts.MaxR, "max-r", 0, "half-width of the grid in Bohr radii (default max(15, 4n²))")
	cmd.Flags().Float64Var(&opts.MinR, "min-r", 0, "skip points closer to the nucleus than this")
	cmd.Flags().Float64Var(&opts.Threshold, "threshold", 0, "minimum density kept (default adaptive)")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "sweep goroutines (default GOMAXPROCS)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <name>_cloud.json) or - for stdout")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached results")

	return cmd
}

func (c *CLI) runSample(ctx context.Context, opts pipeline.Options, output string) error {
	opts.Formats = []string{pipeline.FormatJSON}
	c.setCLIDefaults(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	name := opts.QuantumNumbers.Name()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)
	logger.Debug("sweep", "orbital", name, "resolution", opts.Resolution, "max_r", opts.MaxR, "threshold", opts.Threshold)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Sampling %s on a %d³ grid...", name, opts.Resolution))
	spinner.Start()
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Sweep failed")
		return fmt.Errorf("sample: %w", err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Sampled %s", name))

	if output != "-" {
		printSuccess("Point cloud of %s", StyleHighlight.Render(name))
		printStats(res.Stats.Samples, res.Stats.SampleTime, res.CacheInfo.SampleHit)
		printDetail("threshold %.3g, grid %d³ over ±%g a₀", res.Cloud.Threshold, res.Cloud.Resolution, res.Cloud.MaxR)
		if res.Stats.Samples == 0 {
			printWarning("No points above the threshold; try a lower --threshold")
		}
	}

	_, err = writeArtifacts(artifactWriteParams{
		artifacts: res.Artifacts,
		formats:   opts.Formats,
		base:      orbitalStem(opts.QuantumNumbers) + "_cloud",
		output:    output,
	})
	return err
}
