// Package render turns sampled orbital data into pictures and documents.
//
// # Overview
//
// The subpackages each own one kind of output:
//
//   - [plot]: radial wave function plots and energy-level diagrams as SVG
//   - [grotrian]: term diagrams of allowed transitions, laid out by Graphviz
//   - [sink]: JSON documents for profiles, point clouds and saved states
//
// This package holds the format conversion they share.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG with the external rsvg-convert tool
// (from librsvg):
//
//	svg := plot.RenderRadialSVG(profile)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// When rsvg-convert is not installed both return an UNSUPPORTED coded error.
//
// [plot]: github.com/matzehuels/orbital/pkg/render/plot
// [grotrian]: github.com/matzehuels/orbital/pkg/render/grotrian
// [sink]: github.com/matzehuels/orbital/pkg/render/sink
package render
