package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	orberr "github.com/matzehuels/orbital/pkg/errors"
	"github.com/matzehuels/orbital/pkg/hydrogen"
	"github.com/matzehuels/orbital/pkg/sampling"
)

// maxCheckN bounds --max-n; the state count grows as n².
const maxCheckN = 30

// checkCommand creates the check command for radial normalization.
func (c *CLI) checkCommand() *cobra.Command {
	var (
		opts sampling.ProfileOptions
		maxN int
	)

	cmd := &cobra.Command{
		Use:   "check [N L]",
		Short: "Verify that radial densities integrate to one",
		Long: `Integrate r²R(r)² with the trapezoid rule and compare <r> against its
closed form. Without arguments every (n, l) up to --max-n is checked.

Examples:
  orbital check 3 1
  orbital check --max-n 6`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("accepts 0 or 2 arg(s), received %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var states []hydrogen.QuantumNumbers
			if len(args) == 2 {
				q, err := parseQuantumArgs(args)
				if err != nil {
					return err
				}
				states = append(states, q)
			} else {
				if err := orberr.ValidateIntRange("max-n", maxN, 1, maxCheckN); err != nil {
					return err
				}
				for n := 1; n <= maxN; n++ {
					for l := 0; l < n; l++ {
						states = append(states, hydrogen.QuantumNumbers{N: n, L: l})
					}
				}
			}
			return c.runCheck(cmd.Context(), states, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Points, "points", 0, "quadrature points (default 20001)")
	cmd.Flags().Float64Var(&opts.MaxR, "max-r", 0, "upper integration limit (default 4n²+20)")
	cmd.Flags().IntVar(&maxN, "max-n", 4, "highest shell checked when no (n, l) is given")

	return cmd
}

func (c *CLI) runCheck(ctx context.Context, states []hydrogen.QuantumNumbers, opts sampling.ProfileOptions) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	results := make([]*sampling.NormCheck, len(states))
	g, gctx := errgroup.WithContext(ctx)
	if w := c.Config.Sampling.Workers; w > 0 {
		g.SetLimit(w)
	}
	for i, q := range states {
		g.Go(func() error {
			res, err := sampling.CheckNormalization(gctx, q, opts)
			if err != nil {
				return fmt.Errorf("check %s: %w", q.Name(), err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Checked %d states", len(states)))

	failed := 0
	rows := make([][]string, len(results))
	for i, r := range results {
		status := StyleSuccess.Render(iconSuccess)
		if !r.OK() {
			status = styleIconError.Render(iconError)
			failed++
		}
		rows[i] = []string{
			fmt.Sprintf("%d%s", r.N, hydrogen.SubshellLetter(r.L)),
			fmt.Sprintf("%.6f", r.Norm),
			fmt.Sprintf("%.4f", r.MeanRadius),
			fmt.Sprintf("%.4f", r.ExpectedRadius),
			fmt.Sprintf("%.3f", r.PeakR),
			status,
		}
	}
	printTable([]string{"State", "∫P dr", "<r> numeric", "<r> exact", "Peak r", ""}, rows)

	if failed > 0 {
		return orberr.New(orberr.ErrCodeInternal, "%d of %d states outside tolerance %.0e", failed, len(results), sampling.NormTolerance)
	}
	printSuccess("All %d states normalized within %.0e", len(results), sampling.NormTolerance)
	return nil
}
