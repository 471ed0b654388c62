// Package plot draws SVG charts of hydrogen orbitals.
//
// [RenderRadialSVG] plots a sampled [sampling.Profile]: the radial wave
// function R(r) and the shell density P(r) = r²R(r)², each scaled to its own
// maximum, with dashed markers at the radial nodes. [RenderLevelsSVG] draws
// the energy-level ladder E_n = -13.6/n² eV for the first few shells.
//
// Both renderers write plain SVG into a buffer and never fail; convert the
// result with [render.ToPDF] or [render.ToPNG] for other formats.
//
// [sampling.Profile]: github.com/matzehuels/orbital/pkg/sampling.Profile
// [render.ToPDF]: github.com/matzehuels/orbital/pkg/render.ToPDF
// [render.ToPNG]: github.com/matzehuels/orbital/pkg/render.ToPNG
package plot
