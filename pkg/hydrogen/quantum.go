package hydrogen

import (
	"errors"
	"fmt"

	orberr "github.com/matzehuels/orbital/pkg/errors"
)

// ErrInvalidQuantumNumbers is the sentinel wrapped by every validation
// failure. Match it with errors.Is.
var ErrInvalidQuantumNumbers = errors.New("hydrogen: invalid quantum numbers")

// MaxPrincipal is the largest n accepted by [QuantumNumbers.Validate].
// Evaluating R_nl costs O(n) per radius, so callers that take triples from
// users (CLI flags, HTTP paths, sweep requests) are bounded here.
const MaxPrincipal = 100

// QuantumNumbers identifies a hydrogen orbital.
//
// Valid triples satisfy 1 ≤ n ≤ MaxPrincipal, 0 ≤ l ≤ n−1 and −l ≤ m ≤ l.
// The evaluation functions in this package do not check; call
// [QuantumNumbers.Validate] at the boundary where triples enter the program.
type QuantumNumbers struct {
	N int `json:"n" toml:"n"`
	L int `json:"l" toml:"l"`
	M int `json:"m" toml:"m"`
}

// Validate returns nil for physically meaningful triples. Failures carry the
// INVALID_QUANTUM_NUMBERS code and wrap [ErrInvalidQuantumNumbers].
func (q QuantumNumbers) Validate() error {
	switch {
	case q.N < 1:
		return q.invalid("n must be at least 1")
	case q.N > MaxPrincipal:
		return q.invalid(fmt.Sprintf("n must be at most %d", MaxPrincipal))
	case q.L < 0:
		return q.invalid("l must not be negative")
	case q.L > q.N-1:
		return q.invalid(fmt.Sprintf("l must be at most n-1 = %d", q.N-1))
	case q.M < -q.L || q.M > q.L:
		return q.invalid(fmt.Sprintf("m must lie in [-%d, %d]", q.L, q.L))
	}
	return nil
}

func (q QuantumNumbers) invalid(reason string) error {
	return orberr.Wrap(orberr.ErrCodeInvalidQuantumNumbers, ErrInvalidQuantumNumbers, "%s: %s", q, reason)
}

// String formats the triple as "(n=2, l=1, m=0)".
func (q QuantumNumbers) String() string {
	return fmt.Sprintf("(n=%d, l=%d, m=%d)", q.N, q.L, q.M)
}

// Name returns the orbital label, e.g. "2p_z". See [OrbitalName].
func (q QuantumNumbers) Name() string {
	return OrbitalName(q.N, q.L, q.M)
}

// States enumerates every valid triple with principal number up to maxN, in
// (n, l, m) lexical order.
func States(maxN int) []QuantumNumbers {
	var out []QuantumNumbers
	for n := 1; n <= maxN; n++ {
		for l := 0; l < n; l++ {
			for m := -l; m <= l; m++ {
				out = append(out, QuantumNumbers{N: n, L: l, M: m})
			}
		}
	}
	return out
}
