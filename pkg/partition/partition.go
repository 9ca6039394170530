package partition

import (
	"github.com/planekit/regiontree/pkg/geom"
	"github.com/planekit/regiontree/pkg/region"
)

// Adjacency carries the caller-supplied neighbor tables for connectivity
// resolution. Either or both maps may be nil; a nil map skips that
// resolution pass.
type Adjacency struct {
	// MergeKeys maps a merge-key to its neighboring merge-keys; each
	// neighbor key expands to all leaves sharing it.
	MergeKeys map[string][]string

	// IDs maps a leaf identifier directly to its neighbor leaf
	// identifiers.
	IDs map[string][]string
}

// Partition is the single entry point: it builds the partition tree for
// the mesh and boundary, normalizes areas to parent-relative ratios, and
// resolves leaf connectivity from the adjacency tables.
//
// The returned tree is complete and should be treated as immutable by
// callers. Errors are limited to invalid input ([ErrEmptyMesh],
// [ErrDegenerateBoundary]); unsplittable regions simply remain leaves.
func Partition(mesh geom.Mesh, boundary *geom.Face, adj Adjacency, opts Options) (*region.Node, error) {
	root, err := Build(mesh, boundary, opts)
	if err != nil {
		return nil, err
	}
	NormalizeAreas(root)
	if adj.MergeKeys != nil {
		ResolveConnectivity(root, adj.MergeKeys)
	}
	if adj.IDs != nil {
		ResolveConnectivityByID(root, adj.IDs)
	}
	return root, nil
}
