package cli

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orbital/pkg/hydrogen"
	"github.com/matzehuels/orbital/pkg/sampling"
)

// infoCommand creates the info command describing one orbital.
func (c *CLI) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info N L M",
		Short: "Describe a hydrogen orbital",
		Long: `Describe a hydrogen orbital: its name, energy, node counts, expected radius
and the real-form equations of its wavefunction.

Example:
  orbital info 3 2 0`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := parseQuantumArgs(args)
			if err != nil {
				return err
			}
			c.runInfo(q)
			return nil
		},
	}
}

func (c *CLI) runInfo(q hydrogen.QuantumNumbers) {
	o := q.Describe()

	fmt.Fprintln(stdout, StyleTitle.Render(o.Name)+" "+StyleDim.Render(q.String()))
	printNewline()
	printTable([]string{"Property", "Value"}, [][]string{
		{"Energy", fmt.Sprintf("%.4f eV", o.Energy)},
		{"Radial nodes", fmt.Sprint(o.RadialNodes)},
		{"Angular nodes", fmt.Sprint(o.AngularNodes)},
		{"Shell degeneracy", fmt.Sprint(o.Degeneracy)},
		{"<r>", fmt.Sprintf("%.3f a₀", o.ExpectedRadius)},
		{"Most probable r", mostProbable(q)},
		{"Angular form", o.Form},
		{"Cloud threshold", fmt.Sprintf("%.3g", sampling.AdaptiveThreshold(q.N, q.L))},
	})
	printNewline()
	printKeyValue("ψ", StyleEquation.Render(o.Equations.Wave))
	printKeyValue("R", StyleEquation.Render(o.Equations.Radial))
	printKeyValue("Y", StyleEquation.Render(o.Equations.Angular))
	printNewline()
	printNextStep("Plot the radial profile", fmt.Sprintf("%s profile %d %d", appName, q.N, q.L))
}

// mostProbable formats the peak of P(r). Only nodeless states have a closed
// form; the rest point at the profile command.
func mostProbable(q hydrogen.QuantumNumbers) string {
	r := hydrogen.MostProbableRadius(q.N, q.L)
	if math.IsNaN(r) {
		return "see profile"
	}
	return fmt.Sprintf("%.3f a₀", r)
}
