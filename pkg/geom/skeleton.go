package geom

import "math"

// DefaultResolution is the endpoint quantization step for skeleton
// extraction. Two edge endpoints closer than this are considered the same
// skeleton vertex.
const DefaultResolution = 0.05

// gridKey quantizes a point for endpoint matching.
type gridKey struct{ x, y int64 }

func quantize(v Vec, resolution float64) gridKey {
	return gridKey{
		x: int64(math.Round(v.X() / resolution)),
		y: int64(math.Round(v.Y() / resolution)),
	}
}

// edgeKey is the canonical (order-independent) identity of an edge.
type edgeKey struct{ a, b gridKey }

func newEdgeKey(l Line, resolution float64) edgeKey {
	a, b := quantize(l.Start, resolution), quantize(l.End, resolution)
	if b.x < a.x || (b.x == a.x && b.y < a.y) {
		a, b = b, a
	}
	return edgeKey{a: a, b: b}
}

// SkeletonAxes derives the mesh's internal skeleton: every edge shared by
// exactly two faces is an interior segment, and maximal end-to-end runs of
// interior segments form the skeleton branches. Branches break at
// junctions (skeleton vertices touched by more than two segments).
//
// Endpoints are matched by quantizing coordinates at the given resolution
// (pass 0 to use DefaultResolution). A mesh with a single face, or a mesh
// whose faces share no edges, has no skeleton and yields nil.
//
// The branch order is deterministic: branches are discovered in face/edge
// iteration order.
func SkeletonAxes(m Mesh, resolution float64) [][]Line {
	if resolution <= 0 {
		resolution = DefaultResolution
	}
	if m.FaceCount() < 2 {
		return nil
	}

	// Count how many faces carry each edge; interior edges appear twice.
	counts := make(map[edgeKey]int)
	first := make(map[edgeKey]Line)
	var order []edgeKey
	for _, f := range m.Faces {
		for _, e := range f.Edges() {
			k := newEdgeKey(e, resolution)
			if counts[k] == 0 {
				first[k] = e
				order = append(order, k)
			}
			counts[k]++
		}
	}

	var segs []Line
	for _, k := range order {
		if counts[k] == 2 {
			segs = append(segs, first[k])
		}
	}
	if len(segs) == 0 {
		return nil
	}

	return chainSegments(segs, resolution)
}

// chainSegments groups segments into maximal end-to-end chains. Segments
// are flipped as needed so each chain runs start to end; chains stop at
// junction vertices (degree > 2) and at loose ends.
func chainSegments(segs []Line, resolution float64) [][]Line {
	type endpoint struct {
		seg   int
		start bool
	}
	touch := make(map[gridKey][]endpoint)
	for i, s := range segs {
		touch[quantize(s.Start, resolution)] = append(touch[quantize(s.Start, resolution)], endpoint{i, true})
		touch[quantize(s.End, resolution)] = append(touch[quantize(s.End, resolution)], endpoint{i, false})
	}

	used := make([]bool, len(segs))

	// extend walks from seg's far endpoint, appending connected segments
	// until it reaches a junction, a loose end, or an already-used segment.
	extend := func(chain []Line) []Line {
		for {
			tip := quantize(chain[len(chain)-1].End, resolution)
			eps := touch[tip]
			if len(eps) != 2 {
				return chain // junction or loose end
			}
			next := -1
			var flipped bool
			for _, ep := range eps {
				if used[ep.seg] {
					continue
				}
				next = ep.seg
				flipped = !ep.start
			}
			if next < 0 {
				return chain
			}
			s := segs[next]
			if flipped {
				s = s.Reverse()
			}
			used[next] = true
			chain = append(chain, s)
		}
	}

	var branches [][]Line
	// Start chains at non-chainable endpoints first so every branch is
	// maximal, then sweep up leftover loops.
	for pass := 0; pass < 2; pass++ {
		for i, s := range segs {
			if used[i] {
				continue
			}
			startDeg := len(touch[quantize(s.Start, resolution)])
			endDeg := len(touch[quantize(s.End, resolution)])
			if pass == 0 && startDeg == 2 && endDeg == 2 {
				continue
			}
			if startDeg == 2 && endDeg != 2 {
				s = s.Reverse()
			}
			used[i] = true
			branches = append(branches, extend([]Line{s}))
		}
	}
	return branches
}

// CollapseChain merges a connected run of segments into one straight line
// from the chain's first start to its last end. It succeeds only when the
// chain is sufficiently straight: every interior chain vertex must lie
// within tol of the merged chord.
func CollapseChain(segs []Line, tol float64) (Line, bool) {
	if len(segs) == 0 {
		return Line{}, false
	}
	merged := Line{Start: segs[0].Start, End: segs[len(segs)-1].End}
	if merged.Length() < 1e-9 {
		return Line{}, false
	}
	for i := 0; i < len(segs)-1; i++ {
		if DistanceToLine(segs[i].End, merged.Start, merged.End) > tol {
			return Line{}, false
		}
	}
	return merged, true
}
