package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/orbital/pkg/hydrogen"
	"github.com/matzehuels/orbital/pkg/pipeline"
)

// artifactWriteParams describes where rendered artifacts go.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	base      string // default file stem, e.g. "3d_z2_profile"
	output    string // -o flag: a file for one format, a stem for several, "-" for stdout
}

// writeArtifacts writes each format to disk and prints the paths.
func writeArtifacts(p artifactWriteParams) ([]string, error) {
	if p.output == "-" {
		if len(p.formats) != 1 {
			return nil, fmt.Errorf("-o - needs exactly one format, got %d", len(p.formats))
		}
		_, err := stdout.Write(p.artifacts[p.formats[0]])
		return nil, err
	}

	var paths []string
	for _, f := range p.formats {
		data, ok := p.artifacts[f]
		if !ok {
			return paths, fmt.Errorf("no %s output produced", f)
		}
		path := outputPath(p.output, p.base, f, len(p.formats) > 1)
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return paths, fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	for _, path := range paths {
		printFile(path)
	}
	return paths, nil
}

// outputPath resolves the file for one format. With several formats, or no
// -o at all, the format becomes the extension of a shared stem.
func outputPath(output, base, format string, multi bool) string {
	if output != "" && !multi {
		return output
	}
	return basePath(output, base) + "." + format
}

// basePath strips a known format extension from output, or returns base
// when output is empty.
func basePath(output, base string) string {
	if output == "" {
		return base
	}
	ext := filepath.Ext(output)
	if isFormat(strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func isFormat(s string) bool {
	switch s {
	case pipeline.FormatSVG, pipeline.FormatPDF, pipeline.FormatPNG, pipeline.FormatJSON, pipeline.FormatDOT:
		return true
	}
	return false
}

var fileNameReplacer = strings.NewReplacer("²", "2", "-", "_")

// orbitalStem turns an orbital label like "3d_x²-y²" into "3d_x2_y2". Labels
// past d carry no orientation, so m is appended to keep files apart.
func orbitalStem(q hydrogen.QuantumNumbers) string {
	stem := fileNameReplacer.Replace(q.Name())
	if q.L >= 3 {
		stem += "_m" + strconv.Itoa(q.M)
	}
	return stem
}
