package geom

import (
	"math"
)

// PathKind discriminates the curve kinds a pattern shape can carry.
type PathKind uint8

const (
	// A straight segment from P0 to P1.
	LineKind PathKind = iota + 1
	// A circular arc from P0 through P1 to P2.
	ArcKind
	// A quadratic Bézier from P0 to P2 with control point P1.
	CurveKind
)

func (k PathKind) String() string {
	switch k {
	case LineKind:
		return "line"
	case ArcKind:
		return "arc"
	case CurveKind:
		return "curve"
	default:
		return "invalid"
	}
}

// Path is the parametric form of one pattern shape. It acts as a tagged
// union over the three curve kinds; the geometry routines dispatch on Kind
// rather than hiding the math behind per-kind types, so the document model
// stays plain data.
//
// Field use per kind: lines use P0 and P1; arcs use P0 (start), P1 (a point
// on the arc between the ends), and P2 (end); curves use P0 (start), P1
// (control), and P2 (end).
type Path struct {
	Kind PathKind
	P0   Point
	P1   Point
	P2   Point
}

// LinePath returns the straight segment from p0 to p1.
func LinePath(p0, p1 Point) Path {
	return Path{Kind: LineKind, P0: p0, P1: p1}
}

// ArcPath returns the circular arc from p0 through mid to p1. When the
// three points are collinear or coincident the arc evaluates as the chord
// from p0 to p1.
func ArcPath(p0, mid, p1 Point) Path {
	return Path{Kind: ArcKind, P0: p0, P1: mid, P2: p1}
}

// CurvePath returns the quadratic Bézier from p0 to p1 with control point
// ctrl.
func CurvePath(p0, ctrl, p1 Point) Path {
	return Path{Kind: CurveKind, P0: p0, P1: ctrl, P2: p1}
}

// Start returns the point at t = 0.
func (p Path) Start() Point {
	return p.P0
}

// End returns the point at t = 1.
func (p Path) End() Point {
	switch p.Kind {
	case LineKind:
		return p.P1
	default:
		return p.P2
	}
}

// ArcLength returns the length of the path in millimetres. Lines and arcs
// are measured exactly; curves use an analytical formula accurate to well
// below placement tolerance. A zero value path reports 0.
func (p Path) ArcLength() float64 {
	switch p.Kind {
	case LineKind:
		return p.P1.Sub(p.P0).Hypot()
	case ArcKind:
		if arc, ok := arcFromPoints(p.P0, p.P1, p.P2); ok {
			return arc.length()
		}
		return p.P2.Sub(p.P0).Hypot()
	case CurveKind:
		return quadBez{p.P0, p.P1, p.P2}.arclen()
	default:
		return 0
	}
}

// PointAt evaluates the path at parameter t. Generally t is in [0, 1];
// values outside extrapolate along the curve.
func (p Path) PointAt(t float64) Point {
	switch p.Kind {
	case LineKind:
		return p.P0.Lerp(p.P1, t)
	case ArcKind:
		if arc, ok := arcFromPoints(p.P0, p.P1, p.P2); ok {
			return arc.eval(t)
		}
		return p.P0.Lerp(p.P2, t)
	case CurveKind:
		return quadBez{p.P0, p.P1, p.P2}.eval(t)
	default:
		return p.P0
	}
}

// TangentAt returns the travel direction at parameter t. The vector is not
// normalized and is the zero vector only for a degenerate path.
func (p Path) TangentAt(t float64) Vec2 {
	switch p.Kind {
	case LineKind:
		return p.P1.Sub(p.P0)
	case ArcKind:
		if arc, ok := arcFromPoints(p.P0, p.P1, p.P2); ok {
			return arc.tangent(t)
		}
		return p.P2.Sub(p.P0)
	case CurveKind:
		return quadBez{p.P0, p.P1, p.P2}.tangent(t)
	default:
		return Vec2{}
	}
}

// TangentAngleAt returns the travel direction at parameter t in degrees,
// measured from the positive x axis. Slit-style stitch holes are oriented
// with this angle.
func (p Path) TangentAngleAt(t float64) float64 {
	return p.TangentAt(t).Angle() * (180.0 / math.Pi)
}

// ParamAtLength returns the parameter t whose arc length from the start of
// the path is dist. The result is clamped to [0, 1].
func (p Path) ParamAtLength(dist float64) float64 {
	switch p.Kind {
	case CurveKind:
		return quadBez{p.P0, p.P1, p.P2}.solveForArclen(dist, DefaultAccuracy)
	default:
		// Lines and circular arcs have constant speed.
		length := p.ArcLength()
		if length == 0 {
			return 0
		}
		return min(max(dist/length, 0), 1)
	}
}

// Subsegment returns the part of the path between parameters t0 and t1 as a
// path of the same kind.
func (p Path) Subsegment(t0, t1 float64) Path {
	switch p.Kind {
	case LineKind:
		return LinePath(p.PointAt(t0), p.PointAt(t1))
	case ArcKind:
		return ArcPath(p.PointAt(t0), p.PointAt(0.5*(t0+t1)), p.PointAt(t1))
	case CurveKind:
		q := quadBez{p.P0, p.P1, p.P2}.subsegment(t0, t1)
		return CurvePath(q.p0, q.p1, q.p2)
	default:
		return p
	}
}

// Reverse flips the travel direction of the path. The point set is
// unchanged; parameter t maps to 1-t.
func (p Path) Reverse() Path {
	switch p.Kind {
	case LineKind:
		return LinePath(p.P1, p.P0)
	default:
		return Path{Kind: p.Kind, P0: p.P2, P1: p.P1, P2: p.P0}
	}
}

// Translate moves the path by v.
func (p Path) Translate(v Vec2) Path {
	return Path{
		Kind: p.Kind,
		P0:   p.P0.Translate(v),
		P1:   p.P1.Translate(v),
		P2:   p.P2.Translate(v),
	}
}

// Transform applies the affine transform to the defining points. This is
// exact for lines and curves. For arcs it transports the three defining
// points and reinterprets them as a circular arc, which is exact under
// translation, rotation, reflection and uniform scaling.
func (p Path) Transform(aff Affine) Path {
	return Path{
		Kind: p.Kind,
		P0:   p.P0.Transform(aff),
		P1:   p.P1.Transform(aff),
		P2:   p.P2.Transform(aff),
	}
}

// BoundingBox returns the smallest axis-aligned rectangle enclosing the
// path in the range [0, 1].
func (p Path) BoundingBox() Rect {
	switch p.Kind {
	case LineKind:
		return NewRectFromPoints(p.P0, p.P1)
	case ArcKind:
		if arc, ok := arcFromPoints(p.P0, p.P1, p.P2); ok {
			return arc.boundingBox()
		}
		return NewRectFromPoints(p.P0, p.P2)
	case CurveKind:
		return quadBez{p.P0, p.P1, p.P2}.boundingBox()
	default:
		return NewRectFromPoints(p.P0, p.P0)
	}
}

// Nearest returns the parameter of the point on the path closest to pt,
// along with the squared distance to it.
func (p Path) Nearest(pt Point) (t, distSq float64) {
	switch p.Kind {
	case LineKind:
		distSq, t = lineNearest(p.P0, p.P1, pt)
		return t, distSq
	case ArcKind:
		if arc, ok := arcFromPoints(p.P0, p.P1, p.P2); ok {
			return arc.nearest(pt)
		}
		distSq, t = lineNearest(p.P0, p.P2, pt)
		return t, distSq
	case CurveKind:
		distSq, t = quadBez{p.P0, p.P1, p.P2}.nearest(pt, DefaultAccuracy)
		return t, distSq
	default:
		return 0, pt.Sub(p.P0).Hypot2()
	}
}

// IsNaN reports whether any defining coordinate is NaN.
func (p Path) IsNaN() bool {
	return p.P0.IsNaN() || p.P1.IsNaN() || p.P2.IsNaN()
}

// lineNearest computes the squared distance and parameter of the point on
// the segment p0-p1 nearest to pt.
func lineNearest(p0, p1, pt Point) (distSq, t float64) {
	d := p1.Sub(p0)
	dotp := d.Dot(pt.Sub(p0))
	dSquared := d.Dot(d)
	if dotp <= 0.0 {
		return pt.Sub(p0).Hypot2(), 0.0
	} else if dotp >= dSquared {
		return pt.Sub(p1).Hypot2(), 1.0
	} else {
		t := dotp / dSquared
		dist := pt.Sub(p0.Lerp(p1, t)).Hypot2()
		return dist, t
	}
}
