package special_test

import (
	"fmt"

	"github.com/matzehuels/orbital/pkg/special"
)

func ExampleFactorial() {
	fmt.Println(special.Factorial(5))
	fmt.Println(special.Factorial(21) == special.Factorial(20)*21)
	// Output:
	// 120
	// true
}

func ExampleAssociatedLaguerre() {
	// L_1^3(ρ) is the polynomial factor of R_31 (n-l-1 = 1, 2l+1 = 3).
	fmt.Printf("%.2f\n", special.AssociatedLaguerre(1.5, 1, 3))
	fmt.Printf("%.2f\n", special.AssociatedLaguerre(42, 0, 7))
	// Output:
	// 2.50
	// 1.00
}

func ExampleAssociatedLegendre() {
	fmt.Printf("%.4f\n", special.AssociatedLegendre(2, 0, 0.5))
	fmt.Printf("%.4f\n", special.AssociatedLegendre(1, 1, 0.6))
	// Output:
	// -0.1250
	// -0.8000
}
