package pipeline_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/orbital/pkg/hydrogen"
	"github.com/matzehuels/orbital/pkg/pipeline"
)

func ExampleRunner_Execute() {
	runner := pipeline.NewRunner(nil, nil, nil)
	res, err := runner.Execute(context.Background(), pipeline.Options{
		Kind:           pipeline.KindProfile,
		QuantumNumbers: hydrogen.QuantumNumbers{N: 2, L: 1},
		Points:         100,
		Formats:        []string{pipeline.FormatJSON},
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(res.Orbital.Name, len(res.Profile.Samples), len(res.Artifacts[pipeline.FormatJSON]) > 0)
	// Output: 2p_z 100 true
}
