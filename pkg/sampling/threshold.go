package sampling

import "math"

// MinThreshold is the floor applied by [AdaptiveThreshold].
const MinThreshold = 1e-5

// AdaptiveThreshold returns a density cutoff that keeps the visible lobes
// of (n, l) without flooding the cloud with near-empty points.
//
// s orbitals start at 0.002/n², p at 0.001/n² and everything higher at
// 0.0005/n². Directional orbitals (l > 0) are halved once more. The result
// never drops below [MinThreshold].
func AdaptiveThreshold(n, l int) float64 {
	fn := float64(n)
	nn := fn * fn
	var t float64
	switch l {
	case 0:
		t = 0.002 / nn
	case 1:
		t = 0.001 / nn
	default:
		t = 0.0005 / nn
	}
	if l > 0 {
		t *= 0.5
	}
	return math.Max(t, MinThreshold)
}
