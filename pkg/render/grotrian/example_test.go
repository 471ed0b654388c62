package grotrian_test

import (
	"fmt"

	"github.com/matzehuels/orbital/pkg/render/grotrian"
)

func ExampleTransitions() {
	for _, t := range grotrian.Transitions(2) {
		fmt.Printf("%s %d→%d %.1f nm\n", t.Series, t.Upper.N, t.Lower.N, t.Wavelength)
	}
	// Output: Lyman 2→1 121.6 nm
}
