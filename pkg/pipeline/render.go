package pipeline

import (
	"context"
	"fmt"

	orberr "github.com/matzehuels/orbital/pkg/errors"
	"github.com/matzehuels/orbital/pkg/render"
	"github.com/matzehuels/orbital/pkg/render/grotrian"
	"github.com/matzehuels/orbital/pkg/render/plot"
	"github.com/matzehuels/orbital/pkg/render/sink"
)

// render draws each format from one shared SVG; PDF and PNG are converted
// from it rather than redrawn.
func (s profileSource) render(_ context.Context, opts Options) (map[string][]byte, error) {
	var svg []byte
	svgOnce := func() []byte {
		if svg == nil {
			svg = plot.RenderRadialSVG(s.p, plotOptions(opts)...)
		}
		return svg
	}
	return renderFormats(opts, func(format string) ([]byte, error) {
		switch format {
		case FormatSVG:
			return svgOnce(), nil
		case FormatPDF:
			return render.ToPDF(svgOnce())
		case FormatPNG:
			return render.ToPNG(svgOnce(), opts.Scale)
		case FormatJSON:
			return sink.RenderProfileJSON(s.p, plot.Nodes(s.p), sink.WithJSONDescriptor())
		}
		return nil, unsupported(opts.Kind, format)
	})
}

func (s cloudSource) render(_ context.Context, opts Options) (map[string][]byte, error) {
	return renderFormats(opts, func(format string) ([]byte, error) {
		if format == FormatJSON {
			return sink.RenderCloudJSON(s.c, sink.WithJSONDescriptor())
		}
		return nil, unsupported(opts.Kind, format)
	})
}

func (s diagramSource) render(ctx context.Context, opts Options) (map[string][]byte, error) {
	if s.kind == KindTerms {
		return s.renderTerms(ctx, opts)
	}

	svg := plot.RenderLevelsSVG(s.maxN, plotOptions(opts)...)
	return renderFormats(opts, func(format string) ([]byte, error) {
		switch format {
		case FormatSVG:
			return svg, nil
		case FormatPDF:
			return render.ToPDF(svg)
		case FormatPNG:
			return render.ToPNG(svg, opts.Scale)
		case FormatJSON:
			return sink.RenderLevelsJSON(s.maxN)
		}
		return nil, unsupported(opts.Kind, format)
	})
}

func (s diagramSource) renderTerms(ctx context.Context, opts Options) (map[string][]byte, error) {
	dot := grotrian.ToDOT(s.maxN, grotrian.Options{Wavelengths: true, Energies: true})

	var svg []byte
	svgOnce := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		var err error
		svg, err = grotrian.RenderSVG(ctx, dot)
		return svg, err
	}
	return renderFormats(opts, func(format string) ([]byte, error) {
		switch format {
		case FormatDOT:
			return []byte(dot), nil
		case FormatSVG:
			return svgOnce()
		case FormatPDF:
			data, err := svgOnce()
			if err != nil {
				return nil, err
			}
			return render.ToPDF(data)
		case FormatPNG:
			data, err := svgOnce()
			if err != nil {
				return nil, err
			}
			return render.ToPNG(data, opts.Scale)
		case FormatJSON:
			return sink.RenderLevelsJSON(s.maxN)
		}
		return nil, unsupported(opts.Kind, format)
	})
}

func renderFormats(opts Options, fn func(format string) ([]byte, error)) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := fn(format)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func plotOptions(opts Options) []plot.Option {
	if opts.Width > 0 && opts.Height > 0 {
		return []plot.Option{plot.WithSize(opts.Width, opts.Height)}
	}
	return nil
}

func unsupported(kind, format string) error {
	return orberr.New(orberr.ErrCodeUnsupported, "unsupported %s format: %s", kind, format)
}
