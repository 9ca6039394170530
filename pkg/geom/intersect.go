package geom

import "math"

// segTol absorbs floating point noise in on-segment tests. Matches the
// merge tolerance used when quantizing skeleton endpoints.
const segTol = 1e-9

// LineIntersection returns the intersection of the two infinite lines
// through (p1,p2) and (p3,p4). Returns false when the lines are parallel
// (cross term below 1e-9).
func LineIntersection(p1, p2, p3, p4 Vec) (Vec, bool) {
	d1 := p2.Sub(p1)
	d2 := p4.Sub(p3)
	denom := CrossZ(d1, d2)
	if math.Abs(denom) < 1e-9 {
		return Vec{}, false
	}
	u := CrossZ(p3.Sub(p1), d2) / denom
	return p1.Add(d1.Mul(u)), true
}

// PointOnSegment reports whether p lies on the segment from a to b,
// endpoints included, within tolerance.
func PointOnSegment(p, a, b Vec) bool {
	ab := b.Sub(a)
	ap := p.Sub(a)
	if math.Abs(CrossZ(ab, ap)) > 1e-6*math.Max(1, ab.Len()) {
		return false
	}
	dot := ap.Dot(ab)
	return dot >= -segTol && dot <= ab.Dot(ab)+segTol
}

// ClosestPointOnLine projects p onto the infinite line through a and b.
// If a == b the point a is returned.
func ClosestPointOnLine(p, a, b Vec) Vec {
	ab := b.Sub(a)
	len2 := ab.Dot(ab)
	if len2 < 1e-18 {
		return a
	}
	t := p.Sub(a).Dot(ab) / len2
	return a.Add(ab.Mul(t))
}

// DistanceToLine returns the perpendicular distance from p to the infinite
// line through a and b.
func DistanceToLine(p, a, b Vec) float64 {
	return p.Sub(ClosestPointOnLine(p, a, b)).Len()
}
