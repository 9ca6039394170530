package partition

import (
	"errors"

	"github.com/planekit/regiontree/pkg/geom"
	"github.com/planekit/regiontree/pkg/region"
)

var (
	// ErrEmptyMesh is returned by [Build] and [Partition] when the input
	// mesh has no faces.
	ErrEmptyMesh = errors.New("input mesh has no faces")

	// ErrDegenerateBoundary is returned by [Build] and [Partition] when
	// the boundary face has fewer than 3 vertices.
	ErrDegenerateBoundary = errors.New("boundary face has fewer than 3 vertices")
)

// Build constructs the full partition tree for a mesh and its boundary
// polygon. Areas are raw mesh areas; run [NormalizeAreas] afterwards for
// parent-relative ratios (or use [Partition], which does both).
//
// The boundary may be nil, in which case candidate lines are used at their
// skeleton extent without expansion. An empty mesh or a boundary with
// fewer than 3 vertices is a fatal input error; everything else (no
// skeleton, no acceptable split, boundary split failure) degrades to
// terminal leaves or missing child boundaries, never an error.
func Build(mesh geom.Mesh, boundary *geom.Face, opts Options) (*region.Node, error) {
	opts = opts.normalized()
	if mesh.FaceCount() == 0 {
		return nil, ErrEmptyMesh
	}
	if boundary != nil && boundary.VertexCount() < 3 {
		return nil, ErrDegenerateBoundary
	}

	root := &region.Node{
		ID:       opts.RootID,
		Area:     mesh.TotalArea(),
		Mesh:     mesh,
		Boundary: boundary,
	}
	build(root, opts)
	return root, nil
}

// build recurses depth-first. Termination is guaranteed because both
// halves of an accepted split hold strictly fewer faces than the parent.
func build(n *region.Node, opts Options) {
	if n.Mesh.FaceCount() < 2 {
		markTerminal(n)
		return
	}
	if !splitNode(n, opts) {
		markTerminal(n)
		return
	}
	for _, c := range n.Children {
		if c.Mesh.FaceCount() > 1 {
			build(c, opts)
		} else {
			markTerminal(c)
		}
	}
}

// markTerminal finalizes a leaf. Single-face leaves adopt their face's tag
// as merge-key; multi-face leaves (unsplittable regions) carry none.
func markTerminal(n *region.Node) {
	n.Terminal = true
	if n.Mesh.FaceCount() == 1 {
		n.MergeKey = n.Mesh.Faces[0].Tag
	}
}
