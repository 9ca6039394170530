package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec is a 3-component coordinate in the XY plane (Z is normally zero but
// is carried so cross products have somewhere to put the planar sign).
type Vec = mgl64.Vec3

// XAxis is the unit vector along +X, the reference direction for split
// angle reporting.
var XAxis = Vec{1, 0, 0}

// V builds a planar vector from x and y.
func V(x, y float64) Vec { return Vec{x, y, 0} }

// CrossZ returns the out-of-plane (Z) component of a x b.
// Positive means b lies counter-clockwise of a.
func CrossZ(a, b Vec) float64 {
	return a.Cross(b).Z()
}

// AngleBetween returns the undirected angle between a and b in [0, pi].
// Returns 0 if either vector is (near) zero length.
func AngleBetween(a, b Vec) float64 {
	la, lb := a.Len(), b.Len()
	if la < 1e-12 || lb < 1e-12 {
		return 0
	}
	cos := a.Dot(b) / (la * lb)
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos)
}
