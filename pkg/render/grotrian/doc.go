// Package grotrian renders term (Grotrian) diagrams of hydrogen.
//
// A term diagram draws one node per (n, l) term and one edge per electric
// dipole transition between them (Δl = ±1, emitting from higher to lower n).
// Edges are labelled with the emitted wavelength in nanometres and coloured by
// spectral series (Lyman, Balmer, Paschen, ...).
//
// [ToDOT] produces Graphviz DOT text; [RenderSVG] lays it out with the
// embedded Graphviz from github.com/goccy/go-graphviz, and [RenderPDF] and
// [RenderPNG] convert the SVG through [render.ToPDF] and [render.ToPNG].
//
//	dot := grotrian.ToDOT(4, grotrian.Options{Wavelengths: true})
//	svg, err := grotrian.RenderSVG(ctx, dot)
//
// [render.ToPDF]: github.com/matzehuels/orbital/pkg/render.ToPDF
// [render.ToPNG]: github.com/matzehuels/orbital/pkg/render.ToPNG
package grotrian
