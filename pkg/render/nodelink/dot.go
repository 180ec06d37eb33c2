package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/pedtower/pkg/layout"
	"github.com/matzehuels/pedtower/pkg/pedigree"
	"github.com/matzehuels/pedtower/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds sex, selection status and generation to node labels.
	// When false, only the individual identifier is shown.
	Detailed bool
}

// ToDOT converts a family layout to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Children whose parents match no connector are left unattached; use
// [layout.Layout.Edges] to list them.
func ToDOT(l *layout.Layout, opts Options) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "strict graph %q {\n", "ped_"+string(l.Family))
	buf.WriteString("  splines=ortho;\n")
	buf.WriteString("  concentrate=true;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=filled, fontsize=14];\n")
	buf.WriteString("\n")

	for _, g := range l.Generations {
		fmt.Fprintf(&buf, "  subgraph %q {\n", fmt.Sprintf("gen_%d", g.Level))
		buf.WriteString("    rank=same;\n")
		for _, n := range g.Nodes {
			if n.IsConnector() {
				fmt.Fprintf(&buf, "    %q [shape=point];\n", n.Name())
				continue
			}
			label := fmtLabel(n, g.Level, opts.Detailed)
			fmt.Fprintf(&buf, "    %q [%s];\n", n.Name(), strings.Join(fmtAttrs(n, label), ", "))
		}
		buf.WriteString("  }\n")

		if len(g.Descents) > 0 {
			fmt.Fprintf(&buf, "  subgraph %q {\n", fmt.Sprintf("gen_%d.5", g.Level))
			for _, d := range g.Descents {
				fmt.Fprintf(&buf, "    %q [shape=point];\n", d.Name())
			}
			buf.WriteString("  }\n")
		}
	}

	buf.WriteString("\n")
	edges, _ := l.Edges()
	for _, e := range edges {
		fmt.Fprintf(&buf, "  %q -- %q;\n", e.From, e.To)
	}

	buf.WriteString("\n")
	fmt.Fprintf(&buf, "  %q [shape=box, style=solid];\n", "Family ID: "+string(l.Family))
	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n layout.Node, level int, detailed bool) string {
	if !detailed {
		return string(n.ID)
	}
	status := "not selected"
	if n.Classifier.IsSelected() {
		status = "selected"
	}
	return fmt.Sprintf("%s\n%s, %s\ngeneration: %d", n.ID, n.Sex, status, level)
}

func fmtAttrs(n layout.Node, label string) []string {
	shape := "diamond"
	switch n.Sex {
	case pedigree.Male:
		shape = "box"
	case pedigree.Female:
		shape = "ellipse"
	}
	color := "red"
	if n.Classifier.IsSelected() {
		color = "green"
	}
	return []string{fmt.Sprintf("label=%q", label), "shape=" + shape, "color=" + color}
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

// normalizeViewBox rewrites the root element with a zero-origin viewBox and
// matching pixel size so the diagram scales when embedded.
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
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
