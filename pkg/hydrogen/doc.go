// Package hydrogen evaluates the bound-state wave functions of the
// hydrogen atom.
//
// All lengths are in Bohr radii and energies in eV. A state is a triple
// (n, l, m) of quantum numbers; ψ_nlm factors into a radial part R_nl(r)
// and a real spherical harmonic Y_l^m(θ, φ):
//
//	ψ := hydrogen.WaveFunction(r, theta, phi, 2, 1, 0)
//	p := hydrogen.ProbabilityDensity(r, theta, phi, 2, 1, 0)
//
// # Conventions
//
// The angular part uses real harmonics with the Condon–Shortley phase:
// m > 0 selects Re Y_l^m, m < 0 selects (−1)^m Im Y_l^|m|. The p and d
// orbitals therefore line up with the usual Cartesian labels (2p_x, 3d_xy,
// and so on) returned by [OrbitalName].
//
// [RadialProbabilityDensity] is r²R², the density over spherical shells,
// which integrates to one.
//
// # Validation
//
// Evaluation functions sit on sampling hot paths and do not validate. Check
// untrusted triples once with [QuantumNumbers.Validate] or build a
// descriptor with [NewOrbital]. Invalid triples give undefined (possibly
// NaN) results.
//
// # Descriptors
//
// [Orbital] bundles everything a display needs about a state: label,
// energy, node counts, degeneracy, ⟨r⟩ and the equation strings. Transition
// helpers ([TransitionEnergy], [TransitionWavelength], [AllowedTransition])
// feed the energy-level diagrams.
package hydrogen
