package special

// AssociatedLaguerre evaluates the generalized Laguerre polynomial L_n^α(x)
// using the three-term recurrence
//
//	L_0 = 1
//	L_1 = 1 + α − x
//	L_k = [(2k − 1 + α − x)·L_{k−1} − (k − 1 + α)·L_{k−2}] / k
//
// The degree-0 polynomial is 1 for every x and α. Negative degrees are
// treated as degree 0.
func AssociatedLaguerre(x float64, n int, alpha float64) float64 {
	if n <= 0 {
		return 1
	}
	l1 := 1 + alpha - x
	if n == 1 {
		return l1
	}

	l0 := 1.0
	for k := 2; k <= n; k++ {
		fk := float64(k)
		lk := ((2*fk-1+alpha-x)*l1 - (fk-1+alpha)*l0) / fk
		l0, l1 = l1, lk
	}
	return l1
}
