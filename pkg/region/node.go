// Package region defines the output tree of the mesh partitioner.
//
// A Node represents one sub-area of the original mesh. Interior nodes have
// exactly two children (the halves of an accepted split); leaves have none
// and are always terminal. The tree is a strict ownership hierarchy: a
// parent owns its children, there are no back references and no cycles.
package region

import "github.com/planekit/regiontree/pkg/geom"

// Node is one node of the partition tree.
//
// Area holds the raw mesh area during construction and the parent-relative
// ratio in (0, 1] after normalization (the root is forced to exactly 1).
// Angle is the undirected split angle in [0, pi]: for interior nodes the
// angle of the split performed at this node, for leaves the angle of the
// split that created them.
type Node struct {
	ID       string
	Area     float64
	Angle    float64
	Terminal bool

	Mesh     geom.Mesh
	Boundary *geom.Face

	// MergeKey identifies the physical unit a leaf stands for; it is the
	// tag of the leaf's single face. Multi-face leaves (regions no
	// candidate line could split) carry no merge-key.
	MergeKey string

	// Connectivity lists the IDs of peer leaves this leaf touches, filled
	// in by connectivity resolution. Empty when the region is not a leaf
	// or has no known neighbors.
	Connectivity []string

	// Children is empty for leaves and has exactly two entries (left,
	// right) for interior nodes.
	Children []*Node
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Left returns the first child, or nil for leaves.
func (n *Node) Left() *Node {
	if len(n.Children) != 2 {
		return nil
	}
	return n.Children[0]
}

// Right returns the second child, or nil for leaves.
func (n *Node) Right() *Node {
	if len(n.Children) != 2 {
		return nil
	}
	return n.Children[1]
}

// Walk visits the subtree rooted at n in depth-first pre-order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Leaves returns all leaves of the subtree in depth-first order.
func (n *Node) Leaves() []*Node {
	var leaves []*Node
	n.Walk(func(node *Node) {
		if node.IsLeaf() {
			leaves = append(leaves, node)
		}
	})
	return leaves
}

// Count returns the number of nodes in the subtree, including n.
func (n *Node) Count() int {
	count := 0
	n.Walk(func(*Node) { count++ })
	return count
}

// Depth returns the height of the subtree; a single leaf has depth 1.
func (n *Node) Depth() int {
	if n.IsLeaf() {
		return 1
	}
	max := 0
	for _, c := range n.Children {
		if d := c.Depth(); d > max {
			max = d
		}
	}
	return max + 1
}
