package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/planekit/regiontree/pkg/region"
)

// Options configures tree diagram rendering.
type Options struct {
	// Detailed includes the split angle and merge-key in node labels.
	// When false, only the node ID and area ratio are shown.
	Detailed bool
}

// ToDOT converts a partition tree to Graphviz DOT format. The resulting
// DOT string can be rendered using [RenderSVG].
//
// Terminal leaves are rendered with grey fill to distinguish regions the
// partitioner could not split further from interior nodes.
func ToDOT(root *region.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	root.Walk(func(n *region.Node) {
		label := fmtLabel(n, opts.Detailed)
		attrs := fmtAttrs(n, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	})

	buf.WriteString("\n")
	root.Walk(func(n *region.Node) {
		for _, c := range n.Children {
			fmt.Fprintf(&buf, "  %q -> %q;\n", n.ID, c.ID)
		}
	})

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *region.Node, detailed bool) string {
	label := fmt.Sprintf("%s\narea: %.3f", n.ID, n.Area)
	if !detailed {
		return label
	}

	parts := []string{fmt.Sprintf("angle: %.3f", n.Angle)}
	if n.MergeKey != "" {
		parts = append(parts, "unit: "+n.MergeKey)
	}
	if len(n.Connectivity) > 0 {
		parts = append(parts, "adj: "+strings.Join(n.Connectivity, ","))
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n *region.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.Terminal {
		attrs = append(attrs, "fillcolor=lightgrey")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or file output.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
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

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
