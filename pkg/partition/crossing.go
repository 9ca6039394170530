package partition

import "github.com/planekit/regiontree/pkg/geom"

// LineCrossesFaceByVertexSides reports whether the face's vertices fall on
// both sides of the infinite line through l, meaning the line passes
// through the face's interior and the face cannot be cleanly assigned to
// one side.
//
// A vertex counts as strictly positive or negative only when the Z
// component of dir x (vertex - start) exceeds the side tolerance in
// magnitude; vertices within tolerance of the line belong to neither side,
// so boundary-touching vertices never trigger a false crossing. The
// verdict is symmetric under line reversal and independent of the face's
// starting vertex.
//
// This is the classifier used by the splitting path; it is robust to
// near-degenerate intersections.
func LineCrossesFaceByVertexSides(l geom.Line, f geom.Face, opts Options) bool {
	opts = opts.normalized()
	dir := l.Dir()

	var pos, neg bool
	for _, v := range f.Vertices {
		side := geom.CrossZ(dir, v.Sub(l.Start))
		switch {
		case side > opts.SideTol:
			pos = true
		case side < -opts.SideTol:
			neg = true
		}
		if pos && neg {
			return true
		}
	}
	return false
}

// LineCrossesFace is the secondary classifier based on formal
// segment-intersection queries against each face edge. It distinguishes a
// true single-point crossing from a collinear or endpoint-touching
// contact: an edge collinear with the candidate line, or one that only
// touches it at a shared endpoint, does not count.
//
// The production splitting path uses [LineCrossesFaceByVertexSides]; this
// variant is retained for diagnostics and cross-checking.
func LineCrossesFace(l geom.Line, f geom.Face, opts Options) bool {
	opts = opts.normalized()
	dir := l.Dir()

	crossings := 0
	for _, edge := range f.Edges() {
		denom := geom.CrossZ(dir, edge.Dir())
		if denom > -opts.ParallelTol && denom < opts.ParallelTol {
			continue // parallel or collinear contact
		}
		p, ok := geom.LineIntersection(l.Start, l.End, edge.Start, edge.End)
		if !ok || !geom.PointOnSegment(p, edge.Start, edge.End) {
			continue
		}
		// An intersection at an edge endpoint is a touch, not a cut,
		// unless the two adjacent edges straddle the line; the vertex-side
		// pass below settles that case.
		if p.Sub(edge.Start).Len() < opts.SideTol || p.Sub(edge.End).Len() < opts.SideTol {
			continue
		}
		crossings++
		if crossings >= 2 {
			return true
		}
	}
	if crossings == 0 {
		return false
	}
	// One clean edge cut plus vertices on both sides is still a crossing
	// (the second cut ran exactly through a vertex).
	return LineCrossesFaceByVertexSides(l, f, opts)
}
