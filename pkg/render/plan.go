package render

import (
	"bytes"
	"fmt"
	"math"

	"github.com/planekit/regiontree/pkg/geom"
	"github.com/planekit/regiontree/pkg/region"
)

// PlanOptions configures plan drawing.
type PlanOptions struct {
	// Width is the target image width in pixels. Height follows from the
	// scene's aspect ratio. Defaults to 800.
	Width float64

	// Labels draws each leaf's ID at its centroid.
	Labels bool
}

// palette cycles across leaves so adjacent regions are distinguishable.
var palette = []string{
	"#8dd3c7", "#ffffb3", "#bebada", "#fb8072", "#80b1d3",
	"#fdb462", "#b3de69", "#fccde5", "#d9d9d9", "#bc80bd",
}

// PlanSVG draws the tree's leaf regions as filled polygons. Each leaf is
// drawn from its boundary polygon when present, falling back to its mesh
// faces otherwise. The Y axis is flipped so the scene's up matches the
// image's up.
//
// Returns an empty drawing (just the SVG envelope) for a tree with no
// drawable geometry.
func PlanSVG(root *region.Node, opts PlanOptions) []byte {
	if opts.Width <= 0 {
		opts.Width = 800
	}

	leaves := root.Leaves()
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, leaf := range leaves {
		for _, f := range drawableFaces(leaf) {
			for _, v := range f.Vertices {
				minX = math.Min(minX, v.X())
				minY = math.Min(minY, v.Y())
				maxX = math.Max(maxX, v.X())
				maxY = math.Max(maxY, v.Y())
			}
		}
	}

	var buf bytes.Buffer
	if minX > maxX {
		fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.0f %.0f"></svg>`, opts.Width, opts.Width)
		buf.WriteByte('\n')
		return buf.Bytes()
	}

	const pad = 10.0
	scale := (opts.Width - 2*pad) / math.Max(maxX-minX, 1e-9)
	height := (maxY-minY)*scale + 2*pad

	// Scene coordinates to image coordinates, Y flipped.
	tx := func(v geom.Vec) (float64, float64) {
		return pad + (v.X()-minX)*scale, height - pad - (v.Y()-minY)*scale
	}

	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		opts.Width, height, opts.Width, height)
	buf.WriteByte('\n')

	for i, leaf := range leaves {
		fill := palette[i%len(palette)]
		for _, f := range drawableFaces(leaf) {
			buf.WriteString(`  <polygon points="`)
			for j, v := range f.Vertices {
				if j > 0 {
					buf.WriteByte(' ')
				}
				x, y := tx(v)
				fmt.Fprintf(&buf, "%.2f,%.2f", x, y)
			}
			fmt.Fprintf(&buf, `" fill="%s" stroke="#333333" stroke-width="1"/>`, fill)
			buf.WriteByte('\n')
		}
		if opts.Labels {
			if c, ok := leafCentroid(leaf); ok {
				x, y := tx(c)
				fmt.Fprintf(&buf, `  <text x="%.2f" y="%.2f" font-size="12" text-anchor="middle">%s</text>`, x, y, leaf.ID)
				buf.WriteByte('\n')
			}
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func drawableFaces(n *region.Node) []geom.Face {
	if n.Boundary != nil {
		return []geom.Face{*n.Boundary}
	}
	return n.Mesh.Faces
}

func leafCentroid(n *region.Node) (geom.Vec, bool) {
	faces := drawableFaces(n)
	if len(faces) == 0 {
		return geom.Vec{}, false
	}
	var sum geom.Vec
	for _, f := range faces {
		sum = sum.Add(f.Centroid())
	}
	return sum.Mul(1 / float64(len(faces))), true
}
