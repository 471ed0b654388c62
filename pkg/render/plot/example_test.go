package plot_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/orbital/pkg/hydrogen"
	"github.com/matzehuels/orbital/pkg/render/plot"
	"github.com/matzehuels/orbital/pkg/sampling"
)

func ExampleNodes() {
	q := hydrogen.QuantumNumbers{N: 3}
	prof, err := sampling.RadialProfile(context.Background(), q, sampling.ProfileOptions{Points: 2000})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(len(plot.Nodes(prof)), hydrogen.RadialNodes(3, 0))
	// Output: 2 2
}
