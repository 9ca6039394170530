package geom

import "math"

// Line is an ordered pair of points. Direction matters: End - Start is the
// line's direction, and the splitter canonicalizes it before storing the
// split angle.
type Line struct {
	Start Vec
	End   Vec
}

// Dir returns End - Start.
func (l Line) Dir() Vec { return l.End.Sub(l.Start) }

// Length returns the segment length.
func (l Line) Length() float64 { return l.Dir().Len() }

// Reverse returns the line with start and end swapped.
func (l Line) Reverse() Line { return Line{Start: l.End, End: l.Start} }

// DirectionalAngle returns atan2(dy, dx) normalized to [0, 2*pi).
func (l Line) DirectionalAngle() float64 {
	d := l.Dir()
	a := math.Atan2(d.Y(), d.X())
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// AngleToXAxis returns the undirected angle between the line's direction
// and the x-axis, restricted to [0, pi].
func (l Line) AngleToXAxis() float64 {
	return AngleBetween(l.Dir(), XAxis)
}

// At returns the point Start + u*Dir. u=0 is the start, u=1 the end;
// values outside [0,1] lie on the infinite extension.
func (l Line) At(u float64) Vec {
	return l.Start.Add(l.Dir().Mul(u))
}
