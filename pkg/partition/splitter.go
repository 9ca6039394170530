package partition

import (
	"math"

	"github.com/planekit/regiontree/pkg/geom"
	"github.com/planekit/regiontree/pkg/region"
)

// splitNode tries the node's candidate axes in order and commits the first
// one that cleanly bisects the mesh. On success two children are attached
// (named <id>L and <id>R) and true is returned; on failure the node is
// left untouched for the caller to mark terminal.
func splitNode(n *region.Node, opts Options) bool {
	for _, axis := range CandidateAxes(n.Mesh, opts) {
		line := ExpandLineToFace(axis, n.Boundary, opts)
		line = canonicalDirection(line, opts)
		angle := snapAngle(line.AngleToXAxis(), opts)

		buckets, ok := bucketFaces(n.Mesh, line, opts)
		if !ok {
			opts.debugf("candidate rejected at %s: crossed=%d left=%d/%.4f right=%d/%.4f",
				n.ID, buckets.crossed, len(buckets.left), buckets.leftArea, len(buckets.right), buckets.rightArea)
			continue
		}

		n.Angle = angle
		left := &region.Node{
			ID:       n.ID + "L",
			Area:     buckets.leftArea,
			Angle:    angle,
			Terminal: len(buckets.left) < 2,
			Mesh:     geom.Mesh{Faces: buckets.left},
		}
		right := &region.Node{
			ID:       n.ID + "R",
			Area:     buckets.rightArea,
			Angle:    angle,
			Terminal: len(buckets.right) < 2,
			Mesh:     geom.Mesh{Faces: buckets.right},
		}
		assignBoundaries(n, line, left, right, opts)
		n.Children = []*region.Node{left, right}
		return true
	}
	return false
}

// faceBuckets is the outcome of partitioning a mesh's faces by a line.
type faceBuckets struct {
	left, right         []geom.Face
	leftArea, rightArea float64
	crossed             int
}

// bucketFaces assigns every face to the left or right of the line by the
// side of its centroid's projection. Faces the line crosses are abstained
// from both sides, which fails the acceptance test.
//
// A candidate is acceptable iff no face crossed, both buckets are
// non-empty, and both bucket areas exceed the area tolerance.
func bucketFaces(m geom.Mesh, line geom.Line, opts Options) (faceBuckets, bool) {
	var b faceBuckets
	dir := line.Dir()

	for _, f := range m.Faces {
		if LineCrossesFaceByVertexSides(line, f, opts) {
			b.crossed++
			continue
		}
		c := f.Centroid()
		proj := geom.ClosestPointOnLine(c, line.Start, line.End)
		if geom.CrossZ(dir, c.Sub(proj)) >= 0 {
			b.left = append(b.left, f)
			b.leftArea += f.Area()
		} else {
			b.right = append(b.right, f)
			b.rightArea += f.Area()
		}
	}

	ok := b.crossed == 0 &&
		len(b.left) > 0 && len(b.right) > 0 &&
		b.leftArea > opts.AreaTol && b.rightArea > opts.AreaTol
	return b, ok
}

// assignBoundaries splits the parent's boundary polygon with the accepted
// line and hands each child the piece lying on its side. When the boundary
// split fails the mesh split stands and the children proceed without
// boundary geometry; expansion against a nil boundary is a no-op, so the
// recursion degrades gracefully.
func assignBoundaries(n *region.Node, line geom.Line, left, right *region.Node, opts Options) {
	if n.Boundary == nil {
		return
	}
	pieces, ok := geom.SplitFaceByLine(*n.Boundary, line)
	if !ok {
		opts.debugf("boundary split failed at %s; children keep nil boundary", n.ID)
		return
	}
	dir := line.Dir()
	for i := range pieces.Faces {
		piece := &pieces.Faces[i]
		c := piece.Centroid()
		proj := geom.ClosestPointOnLine(c, line.Start, line.End)
		assignPiece(left, right, geom.CrossZ(dir, c.Sub(proj)), piece)
	}
}

// assignPiece hands a boundary piece to the child on its side of the
// split line. Rounding can score both piece centroids on the same side
// (a centroid exactly on the line counts as left); the later piece then
// falls through to whichever child is still empty, so a successful
// boundary split always covers both children.
func assignPiece(left, right *region.Node, side float64, piece *geom.Face) {
	switch {
	case side >= 0 && left.Boundary == nil:
		left.Boundary = piece
	case side < 0 && right.Boundary == nil:
		right.Boundary = piece
	case left.Boundary == nil:
		left.Boundary = piece
	default:
		right.Boundary = piece
	}
}

// canonicalDirection flips the line when its directional angle falls
// within the flip window of pi or 3*pi/2, keeping the stored undirected
// angle consistent across near-mirrored orientations.
func canonicalDirection(l geom.Line, opts Options) geom.Line {
	ang := l.DirectionalAngle()
	if math.Abs(ang-math.Pi) < opts.FlipWindow || math.Abs(ang-3*math.Pi/2) < opts.FlipWindow {
		return l.Reverse()
	}
	return l
}

// snapAngle snaps an undirected angle in [0, pi] to 0, pi/2, or pi when it
// falls within the snap window, for canonical axis-aligned reporting.
func snapAngle(a float64, opts Options) float64 {
	for _, target := range [...]float64{0, math.Pi / 2, math.Pi} {
		if math.Abs(a-target) < opts.SnapWindow {
			return target
		}
	}
	return a
}
