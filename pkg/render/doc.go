// Package render provides output formats for pedigree diagrams.
//
// # Overview
//
// Diagrams are produced as Graphviz DOT by the [nodelink] subpackage and
// rendered to SVG in-process. This package holds what every renderer
// shares:
//
//   - The [Format] names accepted on the command line and in the cache
//   - SVG to PDF/PNG conversion through the external rsvg-convert tool
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG using rsvg-convert (from
// librsvg):
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [nodelink]: github.com/matzehuels/pedtower/pkg/render/nodelink
package render
