package geom

// Face is a closed polygon given as an ordered vertex loop. The edge from
// the last vertex back to the first is implicit; Vertex uses wraparound
// indexing so callers never handle the seam specially.
//
// Tag identifies the physical unit the face belongs to (the merge-key used
// for connectivity resolution). Faces created by splitting inherit the
// source face's tag.
type Face struct {
	Vertices []Vec
	Tag      string
}

// VertexCount returns the number of vertices in the loop.
func (f Face) VertexCount() int { return len(f.Vertices) }

// Vertex returns the i-th vertex with wraparound (i may be negative or
// beyond the loop length).
func (f Face) Vertex(i int) Vec {
	n := len(f.Vertices)
	i %= n
	if i < 0 {
		i += n
	}
	return f.Vertices[i]
}

// Edges returns the polygon's edges as lines, one per vertex, closing the
// loop from the last vertex back to the first.
func (f Face) Edges() []Line {
	edges := make([]Line, len(f.Vertices))
	for i := range f.Vertices {
		edges[i] = Line{Start: f.Vertex(i), End: f.Vertex(i + 1)}
	}
	return edges
}

// SignedArea returns the shoelace area of the loop in the XY plane.
// Positive for counter-clockwise winding.
func (f Face) SignedArea() float64 {
	var sum float64
	for i := range f.Vertices {
		a, b := f.Vertex(i), f.Vertex(i+1)
		sum += a.X()*b.Y() - b.X()*a.Y()
	}
	return sum / 2
}

// Area returns the absolute polygon area.
func (f Face) Area() float64 {
	a := f.SignedArea()
	if a < 0 {
		return -a
	}
	return a
}

// Centroid returns the area centroid of the polygon. For degenerate loops
// (near-zero area) it falls back to the vertex average.
func (f Face) Centroid() Vec {
	a := f.SignedArea()
	if a > -1e-12 && a < 1e-12 {
		var sum Vec
		for _, v := range f.Vertices {
			sum = sum.Add(v)
		}
		if len(f.Vertices) == 0 {
			return Vec{}
		}
		return sum.Mul(1 / float64(len(f.Vertices)))
	}

	var cx, cy float64
	for i := range f.Vertices {
		p, q := f.Vertex(i), f.Vertex(i+1)
		w := p.X()*q.Y() - q.X()*p.Y()
		cx += (p.X() + q.X()) * w
		cy += (p.Y() + q.Y()) * w
	}
	return V(cx/(6*a), cy/(6*a))
}
