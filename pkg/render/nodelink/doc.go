// Package nodelink renders family layouts as layered node-link diagrams.
//
// # Overview
//
// Each generation of a [layout.Layout] becomes a rank=same subgraph so
// partners and siblings line up. Individuals are drawn by sex (box for
// males, ellipse for females, diamond when the sex code is unknown) and
// filled by selection status: green when selected, red otherwise. Partner
// and descent connectors are small points joined by orthogonal lines.
//
// # Usage
//
//	dot := nodelink.ToDOT(l, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Options
//
//   - Detailed: node labels also show sex, selection status and generation
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
