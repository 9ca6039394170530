// Package partition implements recursive binary partitioning of a planar
// face mesh along its dominant internal axes.
//
// The algorithm is greedy and depth-first: at every node the candidate
// split lines (skeleton branches of the node's mesh, longest first) are
// tried in order and the first line that cleanly bisects the mesh into two
// non-degenerate halves is committed; there is no backtracking. Nodes no
// candidate can split become terminal leaves. Two post-processing passes
// convert raw areas to parent-relative ratios and resolve leaf-to-leaf
// connectivity from a caller-supplied adjacency table.
//
// The entry point is [Partition]; the individual stages ([Build],
// [NormalizeAreas], [ResolveConnectivity]) are exported for callers that
// need them separately.
package partition
