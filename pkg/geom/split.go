package geom

import "math"

// SplitFaceByLine splits a polygon by the infinite line through l and
// returns a mesh of exactly two faces, one per side. Vertices lying on the
// line are shared by both halves; straddling edges get an interpolated
// intersection vertex.
//
// Returns false when the line misses the polygon interior (all vertices on
// one side) or when either half degenerates (fewer than 3 vertices or
// near-zero area). Both result faces inherit f's tag.
func SplitFaceByLine(f Face, l Line) (Mesh, bool) {
	n := f.VertexCount()
	dir := l.Dir()
	if n < 3 || dir.Len() < 1e-12 {
		return Mesh{}, false
	}
	tol := 1e-9 * math.Max(1, dir.Len())

	sides := make([]float64, n)
	for i, v := range f.Vertices {
		sides[i] = CrossZ(dir, v.Sub(l.Start))
	}

	var left, right []Vec
	for i := 0; i < n; i++ {
		v, s := f.Vertices[i], sides[i]
		switch {
		case s > tol:
			left = append(left, v)
		case s < -tol:
			right = append(right, v)
		default:
			left = append(left, v)
			right = append(right, v)
		}

		sn := sides[(i+1)%n]
		if (s > tol && sn < -tol) || (s < -tol && sn > tol) {
			t := s / (s - sn)
			p := v.Add(f.Vertex(i + 1).Sub(v).Mul(t))
			left = append(left, p)
			right = append(right, p)
		}
	}

	if len(left) < 3 || len(right) < 3 {
		return Mesh{}, false
	}
	lf := Face{Vertices: left, Tag: f.Tag}
	rf := Face{Vertices: right, Tag: f.Tag}
	if lf.Area() < 1e-9 || rf.Area() < 1e-9 {
		return Mesh{}, false
	}
	return NewMesh(lf, rf), true
}
