package geom

import (
	"math"
)

// quadBez is the working form of a curve shape. The exported surface stays
// on Path; the Bézier math lives here.
type quadBez struct {
	p0 Point
	p1 Point
	p2 Point
}

func (q quadBez) eval(t float64) Point {
	mt := 1.0 - t
	a := Vec2(q.p0).Mul(mt * mt)
	b := Vec2(q.p1).Mul(mt * 2.0)
	c := Vec2(q.p2).Mul(t)
	d := b.Add(c)
	return Point(a.Add(d.Mul(t)))
}

// arclen computes the arc length analytically. The closed form is unstable
// when the curve is very close to a straight line, so that case falls back
// to Legendre-Gauss quadrature. Accuracy is better than 1e-13 either way.
func (q quadBez) arclen() float64 {
	d2 := Vec2(q.p0).Sub(Vec2(q.p1).Mul(2)).Add(Vec2(q.p2))
	a := d2.Hypot2()
	d1 := q.p1.Sub(q.p0)
	c := d1.Hypot2()
	if a < 5e-4*c {
		// Legendre-Gauss quadrature using the formula from Behdad in
		// https://github.com/Pomax/BezierInfo-2/issues/77
		v0 := Vec2(q.p0).Mul(-0.492943519233745).
			Add(Vec2(q.p1).Mul(0.430331482911935)).
			Add(Vec2(q.p2).Mul(0.0626120363218102)).
			Hypot()
		v1 := q.p2.Sub(q.p0).Mul(0.4444444444444444).Hypot()
		v2 := Vec2(q.p0).Mul(-0.0626120363218102).
			Sub(Vec2(q.p1).Mul(0.430331482911935)).
			Add(Vec2(q.p2).Mul(0.492943519233745)).
			Hypot()
		return v0 + v1 + v2
	}
	b := 2.0 * d2.Dot(d1)

	sabc := math.Sqrt(a + b + c)
	a2 := math.Pow(a, -0.5)
	a32 := a2 * a2 * a2
	c2 := 2.0 * math.Sqrt(c)
	baC2 := b*a2 + c2

	v0 := 0.25*a2*a2*b*(2.0*sabc-c2) + sabc
	if baC2 < 1e-13 {
		// Curves with a sharp kink.
		return v0
	}
	return v0 + 0.25*a32*(4.0*c*a-b*b)*math.Log(((2.0*a+b)*a2+2.0*sabc)/baC2)
}

func (q quadBez) subsegment(t0, t1 float64) quadBez {
	p0 := q.eval(t0)
	p2 := q.eval(t1)
	p1 := p0.Translate(q.p1.Sub(q.p0).Lerp(q.p2.Sub(q.p1), t0).Mul(t1 - t0))
	return quadBez{p0, p1, p2}
}

// tangent returns the derivative at t, falling back to the chord when the
// control point sits on an endpoint and the derivative vanishes there.
func (q quadBez) tangent(t float64) Vec2 {
	const epsilon = 1e-12
	d := q.p1.Sub(q.p0).Mul(2).Lerp(q.p2.Sub(q.p1).Mul(2), t)
	if d.Hypot2() > epsilon {
		return d
	}
	return q.p2.Sub(q.p0)
}

// extrema returns the parameters in (0, 1) where x or y reaches an
// extremum. These are the roots of the derivative, which is a line.
func (q quadBez) extrema() ([2]float64, int) {
	var out [2]float64
	var outN int
	d0 := q.p1.Sub(q.p0)
	d1 := q.p2.Sub(q.p1)
	dd := d1.Sub(d0)
	if dd.X != 0.0 {
		t := -d0.X / dd.X
		if t > 0.0 && t < 1.0 {
			out[outN] = t
			outN++
		}
	}
	if dd.Y != 0 {
		t := -d0.Y / dd.Y
		if t > 0.0 && t < 1.0 {
			out[outN] = t
			outN++
			if outN == 2 && out[0] > t {
				out[0], out[1] = out[1], out[0]
			}
		}
	}
	return out, outN
}

func (q quadBez) boundingBox() Rect {
	bbox := NewRectFromPoints(q.p0, q.p2)
	ts, n := q.extrema()
	for _, t := range ts[:n] {
		bbox = bbox.UnionPoint(q.eval(t))
	}
	return bbox
}

// nearest finds the closest point analytically via cubic root finding.
func (q quadBez) nearest(pt Point, accuracy float64) (distSq, outT float64) {
	rBest := math.Inf(1)
	tBest := 0.0
	evalT := func(t float64, p Point) {
		r := p.Sub(pt).Hypot2()
		if r < rBest {
			rBest = r
			tBest = t
		}
	}
	d0 := q.p1.Sub(q.p0)
	d1 := Vec2(q.p0).Add(Vec2(q.p2)).Sub(Vec2(q.p1).Mul(2.0))
	d := q.p0.Sub(pt)
	c0 := d.Dot(d0)
	c1 := 2.0*d0.Hypot2() + d.Dot(d1)
	c2 := 3.0 * d1.Dot(d0)
	c3 := d1.Hypot2()
	roots, n := SolveCubic(c0, c1, c2, c3)
	needEnds := n == 0
	for _, t := range roots[:n] {
		if t >= 0.0 && t <= 1.0 {
			evalT(t, q.eval(t))
		} else {
			needEnds = true
		}
	}
	if needEnds {
		evalT(0.0, q.p0)
		evalT(1.0, q.p2)
	}
	return rBest, tBest
}

// solveForArclen solves for the parameter with the given arc length from the
// start of the curve, using [SolveITP]. Arc lengths of increasingly smaller
// segments are computed rather than repeatedly measuring from t=0.
func (q quadBez) solveForArclen(arclen, accuracy float64) float64 {
	if arclen <= 0.0 {
		return 0.0
	}
	totalArclen := q.arclen()
	if arclen >= totalArclen {
		return 1.0
	}
	tLast := 0.0
	arclenLast := 0.0
	epsilon := accuracy / totalArclen
	f := func(t float64) float64 {
		var rangeStart, rangeEnd, dir float64
		if t > tLast {
			rangeStart = tLast
			rangeEnd = t
			dir = 1.0
		} else {
			rangeStart = t
			rangeEnd = tLast
			dir = -1.0
		}
		arc := q.subsegment(rangeStart, rangeEnd).arclen()
		arclenLast += arc * dir
		tLast = t
		return arclenLast - arclen
	}
	return SolveITP(f, 0.0, 1.0, epsilon, 1, 0.2, -arclen, totalArclen-arclen)
}
