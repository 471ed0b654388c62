// Package coords converts between Cartesian and spherical coordinates.
//
// Angles follow the physics convention: Theta is the polar angle measured
// from the +z axis in [0, π], Phi the azimuth from +x in (−π, π] as returned
// by atan2. Inputs to [SphericalToCartesian] may use any Phi; the mapping is
// periodic.
//
// The origin has no defined direction. [CartesianToSpherical] adds [Epsilon]
// to the radius before dividing, so the origin maps to Theta = π/2 and
// Phi = 0 instead of NaN. Callers evaluating densities clamp r ≈ 0 before
// the angular terms matter.
package coords

import "math"

// Epsilon guards the z/r division at the origin.
const Epsilon = 1e-10

// Cartesian is a point in ℝ³.
type Cartesian struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Spherical is a point in spherical coordinates.
type Spherical struct {
	R     float64 `json:"r"`
	Theta float64 `json:"theta"`
	Phi   float64 `json:"phi"`
}

// SphericalToCartesian returns (r sinθ cosφ, r sinθ sinφ, r cosθ).
func SphericalToCartesian(r, theta, phi float64) Cartesian {
	sinT, cosT := math.Sincos(theta)
	sinP, cosP := math.Sincos(phi)
	return Cartesian{
		X: r * sinT * cosP,
		Y: r * sinT * sinP,
		Z: r * cosT,
	}
}

// CartesianToSpherical returns r = |p|, θ = acos(z/(r+ε)), φ = atan2(y, x).
func CartesianToSpherical(x, y, z float64) Spherical {
	r := math.Sqrt(x*x + y*y + z*z)
	return Spherical{
		R:     r,
		Theta: math.Acos(z / (r + Epsilon)),
		Phi:   math.Atan2(y, x),
	}
}

// Spherical converts c to spherical coordinates.
func (c Cartesian) Spherical() Spherical {
	return CartesianToSpherical(c.X, c.Y, c.Z)
}

// Norm returns the distance from the origin.
func (c Cartesian) Norm() float64 {
	return math.Sqrt(c.X*c.X + c.Y*c.Y + c.Z*c.Z)
}

// Cartesian converts s to Cartesian coordinates.
func (s Spherical) Cartesian() Cartesian {
	return SphericalToCartesian(s.R, s.Theta, s.Phi)
}
