package plot

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/matzehuels/orbital/pkg/render"
	"github.com/matzehuels/orbital/pkg/sampling"
)

const (
	radialWidth  = 800.0
	radialHeight = 400.0
	radialMargin = 60.0

	waveColor    = "#00aaff"
	densityColor = "#ff6600"
	nodeColor    = "#888888"
	axisColor    = "#cccccc"
)

// Option configures the plot renderers.
type Option func(*plotter)

type plotter struct {
	width, height float64
	background    string
	title         string
	hideWave      bool
}

// WithSize overrides the canvas size in pixels.
func WithSize(w, h float64) Option { return func(p *plotter) { p.width, p.height = w, h } }

// WithBackground sets the canvas fill. An empty string leaves it transparent.
func WithBackground(color string) Option { return func(p *plotter) { p.background = color } }

// WithTitle replaces the default title.
func WithTitle(s string) Option { return func(p *plotter) { p.title = s } }

// WithDensityOnly omits the R(r) curve from radial plots.
func WithDensityOnly() Option { return func(p *plotter) { p.hideWave = true } }

func newPlotter(w, h float64, opts []Option) plotter {
	p := plotter{width: w, height: h, background: "black"}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// RenderRadialSVG plots R(r) and P(r) of a profile.
func RenderRadialSVG(prof *sampling.Profile, opts ...Option) []byte {
	p := newPlotter(radialWidth, radialHeight, opts)
	if p.title == "" {
		p.title = fmt.Sprintf("Radial distribution: %s", prof.Name)
	}

	var buf bytes.Buffer
	p.open(&buf)

	plotW := p.width - 2*radialMargin
	plotH := p.height - 2*radialMargin
	midY := radialMargin + plotH/2
	xOf := func(r float64) float64 { return radialMargin + r/prof.MaxR*plotW }

	// Axes: r along the middle so signed R(r) fits above and below.
	fmt.Fprintf(&buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1"/>`+"\n",
		radialMargin, midY, p.width-radialMargin, midY, axisColor)
	fmt.Fprintf(&buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1"/>`+"\n",
		radialMargin, radialMargin, radialMargin, p.height-radialMargin, axisColor)
	p.text(&buf, p.width-radialMargin, midY+20, "end", 12, axisColor, fmt.Sprintf("r = %.1f a₀", prof.MaxR))

	for _, r := range Nodes(prof) {
		x := xOf(r)
		fmt.Fprintf(&buf, `  <line class="node" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-dasharray="4,4"/>`+"\n",
			x, radialMargin, x, p.height-radialMargin, nodeColor)
	}

	if len(prof.Samples) > 0 {
		if !p.hideWave {
			waves := prof.Waves()
			scale := maxAbs(waves)
			p.curve(&buf, "wave", waveColor, prof, waves, func(v float64) float64 {
				return midY - v/scale*plotH/2
			}, xOf)
		}
		dens := prof.Densities()
		scale := maxAbs(dens)
		p.curve(&buf, "density", densityColor, prof, dens, func(v float64) float64 {
			return midY - v/scale*plotH/2
		}, xOf)
	}

	p.text(&buf, p.width/2, radialMargin/2, "middle", 18, "white", p.title)
	if !p.hideWave {
		p.text(&buf, radialMargin+10, p.height-radialMargin/2, "start", 12, waveColor, "R(r)")
	}
	p.text(&buf, radialMargin+70, p.height-radialMargin/2, "start", 12, densityColor, "P(r) = r²R(r)²")

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// Nodes returns the radii where R(r) changes sign, linearly interpolated
// between neighbouring samples.
func Nodes(prof *sampling.Profile) []float64 {
	var out []float64
	s := prof.Samples
	for i := 1; i < len(s); i++ {
		a, b := s[i-1], s[i]
		if a.Wave*b.Wave < 0 {
			t := a.Wave / (a.Wave - b.Wave)
			out = append(out, a.R+t*(b.R-a.R))
		}
	}
	return out
}

func (p plotter) curve(buf *bytes.Buffer, class, color string, prof *sampling.Profile, vals []float64, yOf, xOf func(float64) float64) {
	fmt.Fprintf(buf, `  <polyline class="%s" fill="none" stroke="%s" stroke-width="2" points="`, class, color)
	for i, s := range prof.Samples {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(buf, "%.2f,%.2f", xOf(s.R), yOf(vals[i]))
	}
	buf.WriteString(`"/>` + "\n")
}

func (p plotter) open(buf *bytes.Buffer) {
	fmt.Fprintf(buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		p.width, p.height, p.width, p.height)
	if p.background != "" {
		fmt.Fprintf(buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escapeXML(p.background))
	}
}

func (p plotter) text(buf *bytes.Buffer, x, y float64, anchor string, size float64, color, s string) {
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="%s" font-family="monospace" font-size="%.0f" fill="%s">%s</text>`+"\n",
		x, y, anchor, size, color, escapeXML(s))
}

func maxAbs(vals []float64) float64 {
	m := math.Max(math.Abs(floats.Max(vals)), math.Abs(floats.Min(vals)))
	if m == 0 {
		return 1
	}
	return m
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// RenderRadialPDF renders a radial plot as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderRadialPDF(prof *sampling.Profile, opts ...Option) ([]byte, error) {
	return render.ToPDF(RenderRadialSVG(prof, opts...))
}

// RenderRadialPNG renders a radial plot as PNG via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderRadialPNG(prof *sampling.Profile, scale float64, opts ...Option) ([]byte, error) {
	return render.ToPNG(RenderRadialSVG(prof, opts...), scale)
}
