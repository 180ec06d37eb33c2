package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/pedtower/pkg/layout"
	"github.com/matzehuels/pedtower/pkg/pedigree"
	"github.com/matzehuels/pedtower/pkg/render"
	"github.com/matzehuels/pedtower/pkg/render/nodelink"
	"github.com/matzehuels/pedtower/pkg/stratify"
)

// =============================================================================
// Layout Generation
// =============================================================================

// Stratify derives the relations of f and assigns generation levels.
func Stratify(f *pedigree.Family) (*pedigree.Relations, *stratify.Result) {
	rel := pedigree.BuildRelations(f)
	return rel, stratify.Assign(rel)
}

// Layout stratifies f and builds its layered node structure. The members
// of f should already carry their classifiers.
func Layout(f *pedigree.Family) (*FamilyLayout, error) {
	rel, levels := Stratify(f)
	l, err := layout.Build(f, rel, levels.Levels())
	if err != nil {
		return nil, err
	}
	return &FamilyLayout{
		Layout:        l,
		Conflicts:     levels.Conflicts,
		UnexpectedSex: rel.UnexpectedSex(),
		Groups:        levels.Groups,
	}, nil
}

// =============================================================================
// Rendering
// =============================================================================

// RenderLayout generates output artifacts in the requested formats.
// SVG is rendered at most once and shared by the PDF and PNG conversions.
func RenderLayout(ctx context.Context, l *layout.Layout, opts Options) (map[render.Format][]byte, error) {
	opts.SetDefaults()
	dot := nodelink.ToDOT(l, nodelink.Options{Detailed: opts.Detailed})

	var svg []byte
	toSVG := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		var err error
		svg, err = nodelink.RenderSVG(ctx, dot)
		return svg, err
	}

	artifacts := make(map[render.Format][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case render.FormatDOT:
			data = []byte(dot)
		case render.FormatJSON:
			data, err = layout.MarshalLayout(l)
		case render.FormatSVG:
			data, err = toSVG()
		case render.FormatPDF:
			if data, err = toSVG(); err == nil {
				data, err = render.ToPDF(ctx, data)
			}
		case render.FormatPNG:
			if data, err = toSVG(); err == nil {
				data, err = render.ToPNG(ctx, data, opts.Scale)
			}
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
