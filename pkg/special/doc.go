// Package special provides the special functions used by the hydrogen
// orbital engine.
//
// # Overview
//
// The package is the leaf of the engine's dependency order. It contains:
//
//   - [Factorial]: n! backed by a precomputed table for n ≤ 20
//   - [LogFactorial], [FactorialRatio]: overflow-safe factorial helpers
//   - [AssociatedLaguerre]: L_n^α(x) by three-term recurrence
//   - [AssociatedLegendre]: P_l^m(x) with the Condon–Shortley phase
//
// # Factorial Table
//
// The table holds 0! through 20!, every one of which is exact in IEEE-754
// double precision. It is built once at package initialization and never
// written again, so all functions here are safe for concurrent use.
// Values beyond 20! are extended multiplicatively from the cached 20!.
//
// # Recurrences
//
// Polynomials are evaluated by recurrence rather than by summing their
// hypergeometric series. Cost is O(n) and the recurrences are stable in the
// argument ranges the radial and angular layers use.
//
//	special.AssociatedLaguerre(rho, n-l-1, float64(2*l+1))
//	special.AssociatedLegendre(l, m, math.Cos(theta))
package special
