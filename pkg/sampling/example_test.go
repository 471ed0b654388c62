package sampling_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/orbital/pkg/hydrogen"
	"github.com/matzehuels/orbital/pkg/sampling"
)

func ExampleAdaptiveThreshold() {
	fmt.Println(sampling.AdaptiveThreshold(1, 0))
	fmt.Println(sampling.AdaptiveThreshold(2, 1))
	// Output:
	// 0.002
	// 0.000125
}

func ExampleCheckNormalization() {
	q := hydrogen.QuantumNumbers{N: 3, L: 2, M: 0}
	c, err := sampling.CheckNormalization(context.Background(), q, sampling.ProfileOptions{})
	if err != nil {
		panic(err)
	}
	fmt.Printf("%s norm=%.4f <r>=%.2f ok=%v\n", c.Name, c.Norm, c.MeanRadius, c.OK())
	// Output: 3d_z² norm=1.0000 <r>=10.50 ok=true
}
