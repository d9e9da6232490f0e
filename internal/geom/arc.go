package geom

import (
	"math"
)

// circArc is the resolved form of a three-point circular arc: a center, a
// radius, a start angle, and a signed sweep. Positive sweep turns clockwise
// on screen because document space is y-down.
type circArc struct {
	center Point
	radius float64
	start  float64
	sweep  float64
}

// arcFromPoints solves the circle through p0, mid and p1 and orients the
// sweep so that travel from p0 to p1 passes through mid. ok is false when
// the points are collinear or coincident; callers then fall back to the
// chord from p0 to p1.
func arcFromPoints(p0, mid, p1 Point) (circArc, bool) {
	b := mid.Sub(p0)
	c := p1.Sub(p0)
	cross := b.Cross(c)
	if math.Abs(cross) <= 1e-12*b.Hypot()*c.Hypot() {
		return circArc{}, false
	}
	// Circumcenter relative to p0, from the perpendicular bisectors of the
	// chords p0-mid and p0-p1.
	b2 := b.Hypot2()
	c2 := c.Hypot2()
	d := 2 * cross
	o := Vec2{X: (b2*c.Y - c2*b.Y) / d, Y: (c2*b.X - b2*c.X) / d}
	center := p0.Translate(o)

	start := p0.Sub(center).Angle()
	deltaMid := mod2Pi(mid.Sub(center).Angle() - start)
	deltaEnd := mod2Pi(p1.Sub(center).Angle() - start)
	sweep := deltaEnd
	if deltaMid > deltaEnd {
		sweep = deltaEnd - 2*math.Pi
	}
	return circArc{
		center: center,
		radius: o.Hypot(),
		start:  start,
		sweep:  sweep,
	}, true
}

// mod2Pi folds an angle into [0, 2π).
func mod2Pi(th float64) float64 {
	th = math.Mod(th, 2*math.Pi)
	if th < 0 {
		th += 2 * math.Pi
	}
	return th
}

func (a circArc) length() float64 {
	return a.radius * math.Abs(a.sweep)
}

func (a circArc) angleAt(t float64) float64 {
	return a.start + t*a.sweep
}

func (a circArc) eval(t float64) Point {
	return a.center.Translate(VecFromAngle(a.angleAt(t)).Mul(a.radius))
}

// tangent returns the non-normalized travel direction at t. Its magnitude
// carries no meaning.
func (a circArc) tangent(t float64) Vec2 {
	th := a.angleAt(t)
	v := Vec2{X: -math.Sin(th), Y: math.Cos(th)}
	if a.sweep < 0 {
		return v.Negate()
	}
	return v
}

// contains reports whether the absolute angle th lies on the swept portion
// of the circle.
func (a circArc) contains(th float64) bool {
	if a.sweep >= 0 {
		return mod2Pi(th-a.start) <= a.sweep
	}
	return mod2Pi(a.start-th) <= -a.sweep
}

func (a circArc) boundingBox() Rect {
	bbox := NewRectFromPoints(a.eval(0), a.eval(1))
	// The extreme coordinates of a circle sit at the four axis angles; any
	// of them inside the sweep extends the box beyond the endpoints.
	for i := range 4 {
		th := float64(i) * (math.Pi / 2)
		if a.contains(th) {
			bbox = bbox.UnionPoint(a.center.Translate(VecFromAngle(th).Mul(a.radius)))
		}
	}
	return bbox
}

// ArcGeometry returns the circle and signed sweep behind an arc path.
// ok is false for other path kinds and for collinear arcs, which degrade
// to their chord.
func (p Path) ArcGeometry() (center Point, radius, sweep float64, ok bool) {
	if p.Kind != ArcKind {
		return Point{}, 0, 0, false
	}
	a, ok := arcFromPoints(p.P0, p.P1, p.P2)
	if !ok {
		return Point{}, 0, 0, false
	}
	return a.center, a.radius, a.sweep, true
}

// nearest returns the parameter of the point on the arc closest to pt and
// the squared distance to it.
func (a circArc) nearest(pt Point) (t, distSq float64) {
	v := pt.Sub(a.center)
	if v.Hypot2() > 0 && a.sweep != 0 {
		th := v.Angle()
		if a.contains(th) {
			delta := mod2Pi(th - a.start)
			if a.sweep < 0 {
				delta = -mod2Pi(a.start - th)
			}
			r := v.Hypot() - a.radius
			return delta / a.sweep, r * r
		}
	}
	d0 := pt.Sub(a.eval(0)).Hypot2()
	d1 := pt.Sub(a.eval(1)).Hypot2()
	if d1 < d0 {
		return 1, d1
	}
	return 0, d0
}
