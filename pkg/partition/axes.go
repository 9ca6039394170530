package partition

import (
	"math"
	"sort"

	"github.com/planekit/regiontree/pkg/geom"
)

// CandidateAxes derives the ordered candidate split lines for a mesh from
// its internal skeleton, longest first.
//
// Each skeleton branch contributes at most one candidate: a single-segment
// branch is used directly, a multi-segment branch is collapsed into one
// straight line when it is straight enough (and skipped otherwise), and
// empty branches are skipped. Lengths are rounded to 0.001 before sorting
// so near-equal candidates keep their original skeleton order (the sort is
// stable).
//
// Returns nil when the mesh has no interior skeleton - callers treat this
// as "no valid split found".
func CandidateAxes(m geom.Mesh, opts Options) []geom.Line {
	opts = opts.normalized()

	var axes []geom.Line
	for _, branch := range geom.SkeletonAxes(m, opts.Resolution) {
		switch {
		case len(branch) == 0:
			continue
		case len(branch) == 1:
			axes = append(axes, branch[0])
		default:
			merged, ok := geom.CollapseChain(branch, opts.Resolution)
			if !ok {
				continue
			}
			axes = append(axes, merged)
		}
	}

	sort.SliceStable(axes, func(i, j int) bool {
		return roundedLength(axes[i]) > roundedLength(axes[j])
	})
	return axes
}

func roundedLength(l geom.Line) float64 {
	return math.Round(l.Length()/lengthPrecision) * lengthPrecision
}
