package partition

import (
	"math"

	"github.com/planekit/regiontree/pkg/geom"
)

// ExpandLineToFace pushes the endpoints of l outward, along the same
// infinite line, to the points where it meets the boundary polygon's
// edges. The result always encloses the original segment; a line whose
// endpoints already lie on the boundary is returned unchanged.
//
// For each boundary edge the parametric value u of the intersection is
// computed on the candidate line (u=0 at its start, u=1 at its end). Edges
// parallel to the candidate and intersections outside the edge's own
// extent are skipped. The smallest u below 0 replaces the start, the
// largest u above 1 replaces the end; a side with no such intersection
// keeps its endpoint.
func ExpandLineToFace(l geom.Line, boundary *geom.Face, opts Options) geom.Line {
	if boundary == nil || boundary.VertexCount() < 2 {
		return l
	}
	opts = opts.normalized()

	dir := l.Dir()
	if dir.Len() < 1e-12 {
		return l
	}

	minU, maxU := 0.0, 1.0
	var startPt, endPt geom.Vec
	haveStart, haveEnd := false, false

	for _, edge := range boundary.Edges() {
		edgeDir := edge.Dir()
		denom := geom.CrossZ(dir, edgeDir)
		if math.Abs(denom) < opts.ParallelTol {
			continue
		}
		u := geom.CrossZ(edge.Start.Sub(l.Start), edgeDir) / denom
		p := l.At(u)
		if !geom.PointOnSegment(p, edge.Start, edge.End) {
			continue
		}
		if u < minU {
			minU = u
			startPt = p
			haveStart = true
		}
		if u > maxU {
			maxU = u
			endPt = p
			haveEnd = true
		}
	}

	if haveStart {
		l.Start = startPt
	}
	if haveEnd {
		l.End = endPt
	}
	return l
}
