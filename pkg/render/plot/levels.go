package plot

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/orbital/pkg/hydrogen"
	"github.com/matzehuels/orbital/pkg/render"
)

const (
	levelsWidth   = 600.0
	levelsHeight  = 500.0
	levelsTop     = 50.0
	levelsSpacing = 80.0
	levelsLeft    = 100.0
	levelsRight   = 500.0

	// DefaultLevels is the number of shells drawn when maxN is 0.
	DefaultLevels = 5
)

var levelColors = []string{"#ff0000", "#ff6600", "#ffaa00", "#ffdd00", "#ffff00"}

// LevelColor returns the line colour of shell n, cycling past n = 5.
func LevelColor(n int) string {
	if n < 1 {
		n = 1
	}
	return levelColors[(n-1)%len(levelColors)]
}

// RenderLevelsSVG draws shells 1..maxN as horizontal lines, one row per
// shell, labelled with n and E_n.
func RenderLevelsSVG(maxN int, opts ...Option) []byte {
	if maxN <= 0 {
		maxN = DefaultLevels
	}
	height := max(levelsHeight, levelsTop+float64(maxN)*levelsSpacing+levelsSpacing/2)
	p := newPlotter(levelsWidth, height, opts)
	if p.title == "" {
		p.title = "Hydrogen Energy Levels"
	}

	var buf bytes.Buffer
	p.open(&buf)
	for n := 1; n <= maxN; n++ {
		y := levelsTop + float64(n-1)*levelsSpacing
		color := LevelColor(n)
		fmt.Fprintf(&buf, `  <line class="level" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="3"/>`+"\n",
			levelsLeft, y, levelsRight, y, color)
		p.text(&buf, levelsLeft-40, y+5, "start", 14, color, fmt.Sprintf("n = %d", n))
		p.text(&buf, levelsRight+10, y+5, "start", 14, color, fmt.Sprintf("E = %.2f eV", hydrogen.EnergyLevel(n)))
	}
	p.text(&buf, p.width/2, p.height-20, "middle", 16, "white", p.title)
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// RenderLevelsPDF renders the level diagram as PDF via SVG conversion.
func RenderLevelsPDF(maxN int, opts ...Option) ([]byte, error) {
	return render.ToPDF(RenderLevelsSVG(maxN, opts...))
}

// RenderLevelsPNG renders the level diagram as PNG via SVG conversion.
func RenderLevelsPNG(maxN int, scale float64, opts ...Option) ([]byte, error) {
	return render.ToPNG(RenderLevelsSVG(maxN, opts...), scale)
}
