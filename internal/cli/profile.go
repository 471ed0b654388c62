package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orbital/pkg/hydrogen"
	"github.com/matzehuels/orbital/pkg/pipeline"
	"github.com/matzehuels/orbital/pkg/render/plot"
)

// profileCommand creates the profile command for radial plots.
func (c *CLI) profileCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
	)
	opts := pipeline.Options{Kind: pipeline.KindProfile}

	cmd := &cobra.Command{
		Use:   "profile N L",
		Short: "Plot the radial wavefunction and probability density",
		Long: `Plot R(r) and the shell density r²R(r)² of one (n, l) pair.

The radial part does not depend on m. Output defaults to <name>_profile.svg;
pass several formats to write one file per format.

Examples:
  orbital profile 3 1
  orbital profile 4 0 -f svg,json --points 2000
  orbital profile 2 1 -f png --scale 3 -o 2p.png`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := parseQuantumArgs(args)
			if err != nil {
				return err
			}
			opts.QuantumNumbers = q
			opts.Formats = pipeline.ParseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Kind, opts.Formats); err != nil {
				return err
			}
			return c.runProfile(cmd.Context(), opts, output)
		},
	}

	cmd.Flags().IntVar(&opts.Points, "points", 0, "number of radial samples (default from config, 500)")
	cmd.Flags().Float64Var(&opts.MaxR, "max-r", 0, "outer radius in Bohr radii (default 8n²)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, pdf, png (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format), base path (multiple) or - for stdout")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "plot width in pixels")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "plot height in pixels")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "PNG scale factor (default 2)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached results")

	return cmd
}

func (c *CLI) runProfile(ctx context.Context, opts pipeline.Options, output string) error {
	c.setCLIDefaults(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	name := fmt.Sprintf("%d%s", opts.N, hydrogen.SubshellLetter(opts.L))
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Sampling %s...", name))
	spinner.Start()
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Profile failed")
		return fmt.Errorf("profile: %w", err)
	}
	spinner.Stop()

	// Keep stdout clean when it carries the artifact.
	if output != "-" {
		p := res.Profile
		printSuccess("Radial profile of %s", StyleHighlight.Render(name))
		printStats(res.Stats.Samples, res.Stats.SampleTime+res.Stats.RenderTime, res.CacheInfo.SampleHit && res.CacheInfo.RenderHit)
		printDetail("peak r = %.3f a₀, ∫P dr = %.4f over [0, %g]", p.PeakR, p.Integral, p.MaxR)
		if nodes := plot.Nodes(p); len(nodes) > 0 {
			printDetail("nodes at r = %s", formatRadii(nodes))
		}
	}

	_, err = writeArtifacts(artifactWriteParams{
		artifacts: res.Artifacts,
		formats:   opts.Formats,
		base:      fmt.Sprintf("%d%s_profile", opts.N, hydrogen.SubshellLetter(opts.L)),
		output:    output,
	})
	return err
}

func formatRadii(rs []float64) string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = fmt.Sprintf("%.3f", r)
	}
	return strings.Join(parts, ", ")
}
