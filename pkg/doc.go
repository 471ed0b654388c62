// Package pkg provides the core libraries for orbital, a hydrogen-atom
// wavefunction engine.
//
// # Overview
//
// Orbital evaluates the closed-form eigenstates of the hydrogen atom and
// turns them into data and pictures. The pkg directory is organized into
// four main areas:
//
//  1. Physics: [special] (factorials, Laguerre and Legendre polynomials),
//     [hydrogen] (radial and angular functions, names, energies), [coords]
//  2. Sampling: [sampling] (radial profiles, volumetric sweeps, point clouds,
//     normalization checks)
//  3. Rendering: [render] with plot, grotrian and sink subpackages
//  4. Infrastructure: [cache], [config], [errors], [observability],
//     [buildinfo], and the [pipeline] that ties sampling to rendering
//
// # Architecture
//
// The typical data flow:
//
//	(n, l, m)
//	    ↓
//	[hydrogen] validate, evaluate ψ = R·Y
//	    ↓
//	[sampling] profile or volumetric sweep (cached by [cache])
//	    ↓
//	[render] SVG/PDF/PNG plots, DOT term diagrams, JSON
//
// # Quick Start
//
// Sample a radial profile and plot it:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/orbital/pkg/hydrogen"
//	    "github.com/matzehuels/orbital/pkg/render/plot"
//	    "github.com/matzehuels/orbital/pkg/sampling"
//	)
//
//	q := hydrogen.QuantumNumbers{N: 3, L: 1}
//	prof, err := sampling.RadialProfile(context.Background(), q, sampling.ProfileOptions{})
//	if err != nil {
//	    return err
//	}
//	svg := plot.RenderRadialSVG(prof)
//
// Or run the whole pipeline with caching:
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Kind:           pipeline.KindProfile,
//	    QuantumNumbers: q,
//	    Formats:        []string{"svg", "json"},
//	})
package pkg
