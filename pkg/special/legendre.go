package special

import "math"

// AssociatedLegendre evaluates the associated Legendre function P_l^m(x)
// for -1 ≤ x ≤ 1, including the Condon–Shortley phase (−1)^m.
//
// The value is built upward in l from the closed form of P_m^m:
//
//	P_m^m     = (−1)^m (2m−1)!! (1−x²)^{m/2}
//	P_{m+1}^m = x (2m+1) P_m^m
//	P_l^m     = [(2l−1) x P_{l−1}^m − (l+m−1) P_{l−2}^m] / (l−m)
//
// Negative orders use P_l^{−m} = (−1)^m (l−m)!/(l+m)! P_l^m. Orders with
// |m| > l, and negative l, return 0. Arguments outside [-1, 1] return NaN.
func AssociatedLegendre(l, m int, x float64) float64 {
	if l < 0 {
		return 0
	}
	if m < 0 {
		mm := -m
		if mm > l {
			return 0
		}
		p := AssociatedLegendre(l, mm, x)
		return phase(mm) * FactorialRatio(l-mm, l+mm) * p
	}
	if m > l {
		return 0
	}
	if x < -1 || x > 1 {
		return math.NaN()
	}

	pmm := 1.0
	if m > 0 {
		somx2 := math.Sqrt((1 - x) * (1 + x))
		fact := 1.0
		for i := 1; i <= m; i++ {
			pmm *= -fact * somx2
			fact += 2
		}
	}
	if l == m {
		return pmm
	}

	pmmp1 := x * float64(2*m+1) * pmm
	if l == m+1 {
		return pmmp1
	}

	for ll := m + 2; ll <= l; ll++ {
		pll := (x*float64(2*ll-1)*pmmp1 - float64(ll+m-1)*pmm) / float64(ll-m)
		pmm, pmmp1 = pmmp1, pll
	}
	return pmmp1
}

func phase(m int) float64 {
	if m%2 == 0 {
		return 1
	}
	return -1
}
