// Package sampling evaluates hydrogen orbitals over grids.
//
// The hydrogen package answers point queries. This package turns them into
// the bulk data downstream consumers draw or check:
//
//   - [RadialProfile]: R_nl(r) and r²R² on a uniform radial grid
//   - [SampleVolume]: |ψ|² on a cube centred on the nucleus
//   - [PointCloud]: the grid points whose density exceeds a threshold
//   - [CheckNormalization]: quadrature checks of ∫P(r)dr, ⟨r⟩ and the
//     most probable radius
//
// Every entry point validates its quantum numbers and options before any
// evaluation, so invalid triples surface as INVALID_* coded errors rather
// than NaNs.
//
// # Concurrency
//
// Volume sweeps split the cube into slabs of constant x and fill them on a
// bounded errgroup. Each slab checks its context before starting, so a
// canceled sweep stops within one slab and returns an error wrapping
// ctx.Err().
package sampling
