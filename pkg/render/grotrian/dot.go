package grotrian

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/orbital/pkg/hydrogen"
	"github.com/matzehuels/orbital/pkg/render"
)

const (
	// DefaultMaxN is the number of shells drawn when maxN is 0.
	DefaultMaxN = 4
	// MaxN bounds the diagram; the edge count grows as n⁴.
	MaxN = 8
)

var seriesColors = []string{"#7b2fbe", "#d62728", "#ff7f0e", "#2ca02c", "#1f77b4", "#8c564b", "#7f7f7f"}

// Options configures term diagram rendering.
type Options struct {
	// Wavelengths labels each edge with its wavelength in nm.
	Wavelengths bool
	// Energies adds E_n to each node label.
	Energies bool
}

// Transition is one allowed emission line between two terms.
type Transition struct {
	Upper      hydrogen.QuantumNumbers `json:"upper"`
	Lower      hydrogen.QuantumNumbers `json:"lower"`
	Energy     float64                 `json:"energy_ev"`
	Wavelength float64                 `json:"wavelength_nm"`
	Series     string                  `json:"series"`
}

// Terms returns the (n, l) terms up to maxN with m = 0, ordered by n then l.
func Terms(maxN int) []hydrogen.QuantumNumbers {
	var out []hydrogen.QuantumNumbers
	for n := 1; n <= maxN; n++ {
		for l := 0; l < n; l++ {
			out = append(out, hydrogen.QuantumNumbers{N: n, L: l})
		}
	}
	return out
}

// Transitions lists the allowed emissions between terms up to maxN, ordered
// by upper term then lower term. Transitions within a shell carry no energy
// and are omitted.
func Transitions(maxN int) []Transition {
	terms := Terms(maxN)
	var out []Transition
	for _, up := range terms {
		for _, lo := range terms {
			if lo.N >= up.N || !hydrogen.AllowedTransition(up, lo) {
				continue
			}
			out = append(out, Transition{
				Upper:      up,
				Lower:      lo,
				Energy:     hydrogen.TransitionEnergy(up.N, lo.N),
				Wavelength: hydrogen.TransitionWavelength(up.N, lo.N),
				Series:     hydrogen.SeriesName(lo.N),
			})
		}
	}
	return out
}

// SeriesColor returns the edge colour of transitions ending in shell lower.
func SeriesColor(lower int) string {
	if lower < 1 {
		lower = 1
	}
	return seriesColors[(lower-1)%len(seriesColors)]
}

// ToDOT builds the term diagram for shells 1..maxN as Graphviz DOT. Terms of
// the same shell share a rank so shells read as rows, ground state at the
// bottom. maxN is clamped to [1, MaxN]; 0 means DefaultMaxN.
func ToDOT(maxN int, opts Options) string {
	if maxN == 0 {
		maxN = DefaultMaxN
	}
	maxN = max(1, min(maxN, MaxN))

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [arrowsize=0.6, fontsize=10];\n")
	buf.WriteString("  ranksep=0.8;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	for n := 1; n <= maxN; n++ {
		buf.WriteString("  { rank=same;")
		for l := 0; l < n; l++ {
			q := hydrogen.QuantumNumbers{N: n, L: l}
			fmt.Fprintf(&buf, " %q [label=%q];", nodeID(q), fmtLabel(q, opts.Energies))
		}
		buf.WriteString(" }\n")
	}

	buf.WriteString("\n")
	for _, t := range Transitions(maxN) {
		attrs := []string{fmt.Sprintf("color=%q", SeriesColor(t.Lower.N))}
		if opts.Wavelengths {
			attrs = append(attrs, fmt.Sprintf("label=%q", fmtWavelength(t.Wavelength)))
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", nodeID(t.Upper), nodeID(t.Lower), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(q hydrogen.QuantumNumbers) string {
	return strconv.Itoa(q.N) + hydrogen.SubshellLetter(q.L)
}

func fmtLabel(q hydrogen.QuantumNumbers, energies bool) string {
	if !energies {
		return nodeID(q)
	}
	return fmt.Sprintf("%s\n%.2f eV", nodeID(q), hydrogen.EnergyLevel(q.N))
}

func fmtWavelength(nm float64) string {
	if nm >= 10000 {
		return fmt.Sprintf("%.1f µm", nm/1000)
	}
	return fmt.Sprintf("%.1f nm", nm)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a plain
// pixel-sized one.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
