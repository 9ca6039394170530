package regionio

import (
	"encoding/json"

	"github.com/planekit/regiontree/pkg/geom"
	"github.com/planekit/regiontree/pkg/region"
)

// =============================================================================
// Scene - Input Serialization
// =============================================================================

// Scene is the canonical serialization format for partition input: the
// planar mesh, its boundary polygon, and the adjacency tables used for
// connectivity resolution.
//
// The format is human-readable and designed for round-trip fidelity.
type Scene struct {
	Name     string      `json:"name,omitempty" bson:"name,omitempty"`
	Faces    []SceneFace `json:"faces" bson:"faces"`
	Boundary [][2]float64 `json:"boundary,omitempty" bson:"boundary,omitempty"`

	// Adjacency maps a unit merge-key to its neighboring merge-keys.
	Adjacency map[string][]string `json:"adjacency,omitempty" bson:"adjacency,omitempty"`

	// LeafAdjacency maps a leaf identifier directly to neighbor leaf
	// identifiers. Rarely used as input; kept for round trips.
	LeafAdjacency map[string][]string `json:"leaf_adjacency,omitempty" bson:"leaf_adjacency,omitempty"`
}

// SceneFace is one polygon of the input mesh. Unit is the merge-key of
// the physical unit the face belongs to.
type SceneFace struct {
	Vertices [][2]float64 `json:"vertices" bson:"vertices"`
	Unit     string       `json:"unit,omitempty" bson:"unit,omitempty"`
}

// Mesh converts the scene's faces to a geometry mesh.
func (s Scene) Mesh() geom.Mesh {
	m := geom.Mesh{Faces: make([]geom.Face, len(s.Faces))}
	for i, f := range s.Faces {
		m.Faces[i] = geom.Face{Vertices: toVecs(f.Vertices), Tag: f.Unit}
	}
	return m
}

// BoundaryFace converts the scene's boundary loop to a geometry face, or
// nil when the scene carries none.
func (s Scene) BoundaryFace() *geom.Face {
	if len(s.Boundary) == 0 {
		return nil
	}
	return &geom.Face{Vertices: toVecs(s.Boundary)}
}

// =============================================================================
// Tree - Output Serialization
// =============================================================================

// Tree is the canonical serialization format for a partition tree. Used
// for API responses, storage, caching, and file export.
type Tree struct {
	Scene string   `json:"scene,omitempty" bson:"scene,omitempty"`
	Root  TreeNode `json:"root" bson:"root"`
}

// TreeNode is one node of the serialized tree. Area is the parent-relative
// ratio, Angle the undirected split angle in radians.
type TreeNode struct {
	ID           string       `json:"id" bson:"id"`
	Area         float64      `json:"area" bson:"area"`
	Angle        float64      `json:"angle,omitempty" bson:"angle,omitempty"`
	Terminal     bool         `json:"terminal,omitempty" bson:"terminal,omitempty"`
	MergeKey     string       `json:"merge_key,omitempty" bson:"merge_key,omitempty"`
	Connectivity []string     `json:"connectivity,omitempty" bson:"connectivity,omitempty"`
	Boundary     [][2]float64 `json:"boundary,omitempty" bson:"boundary,omitempty"`
	Children     []TreeNode   `json:"children,omitempty" bson:"children,omitempty"`
}

// IsLeaf returns true if the node has no children.
func (n *TreeNode) IsLeaf() bool { return len(n.Children) == 0 }

// FromNode converts a region tree to its serialization format.
func FromNode(root *region.Node) TreeNode {
	out := TreeNode{
		ID:           root.ID,
		Area:         root.Area,
		Angle:        root.Angle,
		Terminal:     root.Terminal,
		MergeKey:     root.MergeKey,
		Connectivity: root.Connectivity,
	}
	if root.Boundary != nil {
		out.Boundary = fromVecs(root.Boundary.Vertices)
	}
	for _, c := range root.Children {
		out.Children = append(out.Children, FromNode(c))
	}
	return out
}

// ToNode converts a serialized tree node back to a region tree. Mesh
// geometry is not carried by the serialization and comes back empty.
func ToNode(n TreeNode) *region.Node {
	out := &region.Node{
		ID:           n.ID,
		Area:         n.Area,
		Angle:        n.Angle,
		Terminal:     n.Terminal,
		MergeKey:     n.MergeKey,
		Connectivity: n.Connectivity,
	}
	if len(n.Boundary) > 0 {
		out.Boundary = &geom.Face{Vertices: toVecs(n.Boundary)}
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, ToNode(c))
	}
	return out
}

// UnmarshalTree deserializes JSON bytes to a Tree.
func UnmarshalTree(data []byte) (Tree, error) {
	var t Tree
	if err := json.Unmarshal(data, &t); err != nil {
		return Tree{}, err
	}
	return t, nil
}

// =============================================================================
// Internal Helpers
// =============================================================================

func toVecs(pts [][2]float64) []geom.Vec {
	vs := make([]geom.Vec, len(pts))
	for i, p := range pts {
		vs[i] = geom.V(p[0], p[1])
	}
	return vs
}

func fromVecs(vs []geom.Vec) [][2]float64 {
	pts := make([][2]float64, len(vs))
	for i, v := range vs {
		pts[i] = [2]float64{v.X(), v.Y()}
	}
	return pts
}
