// Package render provides visualization rendering for partition trees.
//
// # Overview
//
// This package contains the rendering pipeline that transforms partition
// trees into visual outputs. It provides:
//
//   - Tree diagrams: the binary split hierarchy as a Graphviz DOT graph,
//     rendered to SVG with [RenderSVG]
//   - Plan drawings: the leaf regions drawn as polygons in a hand-built
//     SVG, using each node's boundary geometry
//
// # Tree Diagrams
//
//	dot := render.ToDOT(root, render.Options{})
//	svg, err := render.RenderSVG(dot)
//
// # Plan Drawings
//
//	svg := render.PlanSVG(root, render.PlanOptions{})
package render
