package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	orberr "github.com/matzehuels/orbital/pkg/errors"
	"github.com/matzehuels/orbital/pkg/hydrogen"
	"github.com/matzehuels/orbital/pkg/pipeline"
	"github.com/matzehuels/orbital/pkg/render/grotrian"
	"github.com/matzehuels/orbital/pkg/render/sink"
)

// levelsCommand creates the levels command for energy tables and diagrams.
func (c *CLI) levelsCommand() *cobra.Command {
	var (
		formatsStr  string
		output      string
		diagram     string
		transitions bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "levels",
		Short: "Show hydrogen energy levels and allowed transitions",
		Long: `Without --format, print the energy of each shell as a table (and, with
--transitions, every allowed dipole line between terms).

With --format, render a diagram instead: the Grotrian term diagram by
default, or the plain energy ladder with --diagram levels.

Examples:
  orbital levels --max 6 --transitions
  orbital levels -f svg,dot
  orbital levels --diagram levels -f png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := orberr.ValidateIntRange("max", opts.MaxN, 1, grotrian.MaxN); err != nil {
				return err
			}
			if formatsStr == "" {
				c.printLevels(opts.MaxN, transitions)
				return nil
			}
			switch diagram {
			case pipeline.KindTerms, pipeline.KindLevels:
				opts.Kind = diagram
			default:
				return orberr.New(orberr.ErrCodeInvalidInput, "unknown diagram %q (want terms or levels)", diagram)
			}
			opts.Formats = pipeline.ParseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Kind, opts.Formats); err != nil {
				return err
			}
			return c.runDiagram(cmd.Context(), opts, output)
		},
	}

	cmd.Flags().IntVar(&opts.MaxN, "max", pipeline.DefaultMaxN, "highest shell")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "render format(s): svg, dot, json, pdf, png (comma-separated)")
	cmd.Flags().StringVar(&diagram, "diagram", pipeline.KindTerms, "diagram kind: terms or levels")
	cmd.Flags().BoolVarP(&transitions, "transitions", "t", false, "also list allowed transitions")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format), base path (multiple) or - for stdout")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "PNG scale factor (default 2)")

	return cmd
}

func (c *CLI) printLevels(maxN int, transitions bool) {
	rows := make([][]string, 0, maxN)
	for _, lv := range sink.Levels(maxN) {
		subshells := make([]string, lv.N)
		for l := range subshells {
			subshells[l] = termName(hydrogen.QuantumNumbers{N: lv.N, L: l})
		}
		rows = append(rows, []string{
			fmt.Sprint(lv.N),
			fmt.Sprintf("%.4f", lv.Energy),
			fmt.Sprint(lv.Degeneracy),
			strings.Join(subshells, " "),
		})
	}
	printTable([]string{"n", "E (eV)", "States", "Subshells"}, rows)

	if !transitions {
		return
	}
	printNewline()
	ts := grotrian.Transitions(maxN)
	rows = make([][]string, 0, len(ts))
	for _, t := range ts {
		rows = append(rows, []string{
			t.Series,
			fmt.Sprintf("%s → %s", termName(t.Upper), termName(t.Lower)),
			fmt.Sprintf("%.3f", t.Energy),
			fmt.Sprintf("%.1f", t.Wavelength),
		})
	}
	printTable([]string{"Series", "Line", "ΔE (eV)", "λ (nm)"}, rows)
}

func termName(q hydrogen.QuantumNumbers) string {
	return fmt.Sprintf("%d%s", q.N, hydrogen.SubshellLetter(q.L))
}

func (c *CLI) runDiagram(ctx context.Context, opts pipeline.Options, output string) error {
	c.setCLIDefaults(&opts)

	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		return fmt.Errorf("%s diagram: %w", opts.Kind, err)
	}
	if output != "-" {
		printSuccess("Rendered %s diagram up to n = %d", opts.Kind, opts.MaxN)
		printStats(0, res.Stats.RenderTime, res.CacheInfo.RenderHit)
	}

	_, err = writeArtifacts(artifactWriteParams{
		artifacts: res.Artifacts,
		formats:   opts.Formats,
		base:      fmt.Sprintf("%s_n%d", opts.Kind, opts.MaxN),
		output:    output,
	})
	return err
}
