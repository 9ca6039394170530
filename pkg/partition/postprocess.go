package partition

import "github.com/planekit/regiontree/pkg/region"

// NormalizeAreas converts every node's raw area to the ratio of its
// parent's area, depth-first. Children are fully processed before their
// own area is converted, so each subtree's recursion still sees true raw
// areas. The root's area is forced to exactly 1 afterwards.
func NormalizeAreas(root *region.Node) {
	var walk func(n *region.Node)
	walk = func(n *region.Node) {
		for _, c := range n.Children {
			walk(c)
			if n.Area > 0 {
				c.Area /= n.Area
			}
		}
	}
	walk(root)
	root.Area = 1.0
}

// ResolveConnectivity fills each leaf's connectivity from an adjacency
// table keyed by merge-key. Every neighbor merge-key of a leaf's own
// merge-key expands to the full set of leaf identifiers sharing it, in
// leaf order. Leaves whose merge-key is absent from the table (or empty)
// end up with an empty connectivity list; this is never an error.
func ResolveConnectivity(root *region.Node, table map[string][]string) {
	leaves := root.Leaves()

	keyToIDs := make(map[string][]string)
	for _, leaf := range leaves {
		if leaf.MergeKey != "" {
			keyToIDs[leaf.MergeKey] = append(keyToIDs[leaf.MergeKey], leaf.ID)
		}
	}

	for _, leaf := range leaves {
		leaf.Connectivity = nil
		for _, neighborKey := range table[leaf.MergeKey] {
			leaf.Connectivity = append(leaf.Connectivity, keyToIDs[neighborKey]...)
		}
	}
}

// ResolveConnectivityByID fills each leaf's connectivity by looking its
// identifier up directly in the table. Absent entries yield an empty
// connectivity list, not an error.
func ResolveConnectivityByID(root *region.Node, table map[string][]string) {
	for _, leaf := range root.Leaves() {
		leaf.Connectivity = append([]string(nil), table[leaf.ID]...)
	}
}
