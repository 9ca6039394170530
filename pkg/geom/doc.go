// Package geom is the planar geometry kernel for region partitioning.
//
// All coordinates are 3-component vectors (mgl64.Vec3) lying in the XY
// plane; the Z component of cross products carries the signed planar
// orientation used by side tests throughout the partitioner.
//
// The kernel provides:
//   - Vec, Line, Face, and Mesh value types
//   - intersection and projection queries (LineIntersection,
//     PointOnSegment, ClosestPointOnLine)
//   - polygon splitting by an infinite line (SplitFaceByLine)
//   - skeleton extraction for face meshes (SkeletonAxes, CollapseChain)
//
// Faces are ordered vertex loops with implicit wraparound indexing; there
// is no linked edge structure. All types are owned by value - splitting or
// partitioning copies geometry into the result, never aliases it.
package geom
