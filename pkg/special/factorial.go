package special

import "math"

// MaxCachedFactorial is the largest n whose factorial is served from the table.
const MaxCachedFactorial = 20

// factorialTable holds 0!..20!. Read-only after init.
var factorialTable = func() [MaxCachedFactorial + 1]float64 {
	var t [MaxCachedFactorial + 1]float64
	t[0] = 1
	for i := 1; i <= MaxCachedFactorial; i++ {
		t[i] = t[i-1] * float64(i)
	}
	return t
}()

// Factorial returns n! as a float64.
//
// For n ≤ 20 the value comes straight from the precomputed table. For n > 20
// the product is extended from the cached 20! without recomputing smaller
// values; it overflows to +Inf past 170!. Negative n is a caller error and
// yields NaN.
func Factorial(n int) float64 {
	if n < 0 {
		return math.NaN()
	}
	if n <= MaxCachedFactorial {
		return factorialTable[n]
	}
	result := factorialTable[MaxCachedFactorial]
	for i := MaxCachedFactorial + 1; i <= n; i++ {
		result *= float64(i)
	}
	return result
}

// LogFactorial returns ln(n!). It never overflows, which makes it the right
// tool for normalization constants at large quantum numbers.
func LogFactorial(n int) float64 {
	if n < 0 {
		return math.NaN()
	}
	if n <= MaxCachedFactorial {
		return math.Log(factorialTable[n])
	}
	lg, _ := math.Lgamma(float64(n) + 1)
	return lg
}

// FactorialRatio returns a!/b! by multiplying only the factors that do not
// cancel. Neither factorial is formed, so ratios like 150!/148! stay exact
// even though both operands overflow.
func FactorialRatio(a, b int) float64 {
	if a < 0 || b < 0 {
		return math.NaN()
	}
	r := 1.0
	switch {
	case a > b:
		for k := b + 1; k <= a; k++ {
			r *= float64(k)
		}
	case a < b:
		for k := a + 1; k <= b; k++ {
			r /= float64(k)
		}
	}
	return r
}
