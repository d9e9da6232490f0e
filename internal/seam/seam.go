// Package seam derives offset curves parallel to shape paths. Offsets
// are the drawing guides for seam allowances; they are rendered, never
// exported as cut geometry.
//
// Every offset extends to the left of the travel direction, the side the
// unit tangent reaches after a quarter turn clockwise on screen. Callers
// pick the other side by reversing the shape or negating the offset.
package seam

import (
	"patternsmith/internal/geom"
	"patternsmith/internal/model"
)

// DefaultCurveSamples is the flattening resolution for curve offsets.
const DefaultCurveSamples = 32

// collapseEps rejects concentric arcs whose radius the offset has
// consumed.
const collapseEps = 1e-9

// OffsetPath is one derived parallel curve. Line and arc offsets are
// exact and carry a path; curve offsets are approximate, so only the
// flattened polyline is set. The approximation may self-intersect where
// the offset exceeds the radius of curvature.
type OffsetPath struct {
	ShapeID string
	Exact   geom.Path
	Points  []geom.Point
}

// IsExact reports whether the offset carries an exact path rather than
// a flattened approximation.
func (o OffsetPath) IsExact() bool {
	return o.Exact.Kind != 0
}

// BuildOffsetPath derives the parallel curve offsetMm to the left of the
// shape's path, flattening curves at [DefaultCurveSamples]. It returns
// nil for degenerate shapes and for arcs the offset collapses.
func BuildOffsetPath(s model.Shape, offsetMm float64) *OffsetPath {
	return BuildOffsetPathN(s, offsetMm, DefaultCurveSamples)
}

// BuildOffsetPathN is [BuildOffsetPath] with an explicit curve sample
// count. Counts below 2 fall back to the default.
func BuildOffsetPathN(s model.Shape, offsetMm float64, samples int) *OffsetPath {
	if s.IsDegenerate() {
		return nil
	}
	p := s.Path()
	switch p.Kind {
	case geom.LineKind:
		d := normalAt(p, 0).Mul(offsetMm)
		return &OffsetPath{ShapeID: s.ID, Exact: p.Translate(d)}
	case geom.ArcKind:
		return offsetArc(s.ID, p, offsetMm)
	case geom.CurveKind:
		return offsetCurve(s.ID, p, offsetMm, samples)
	}
	return nil
}

// BuildAll derives offsets for every seam allowance in the document,
// skipping entries whose shape is missing, degenerate, or collapsed.
func BuildAll(doc *model.Document, samples int) []OffsetPath {
	var out []OffsetPath
	for _, sa := range doc.Seams {
		s, ok := doc.ShapeByID(sa.ShapeID)
		if !ok {
			continue
		}
		if o := BuildOffsetPathN(s, sa.OffsetMm, samples); o != nil {
			out = append(out, *o)
		}
	}
	return out
}

// offsetArc shifts an arc onto the concentric circle whose radius the
// offset dictates. Displacing the three defining points radially keeps
// the reconstruction exact.
func offsetArc(shapeID string, p geom.Path, offsetMm float64) *OffsetPath {
	center, radius, _, ok := p.ArcGeometry()
	if !ok {
		// Collinear arcs behave as their chord and offset like a line.
		d := normalAt(p, 0).Mul(offsetMm)
		return &OffsetPath{ShapeID: shapeID, Exact: p.Translate(d)}
	}
	// The left normal on a circle is radial; toward is +1 when it points
	// at the center, so the concentric radius is radius - offset*toward.
	toward := center.Sub(p.Start()).Normalize().Dot(normalAt(p, 0))
	if radius-offsetMm*toward <= collapseEps {
		return nil
	}
	q := geom.ArcPath(
		offsetPoint(p, 0, offsetMm),
		offsetPoint(p, 0.5, offsetMm),
		offsetPoint(p, 1, offsetMm),
	)
	return &OffsetPath{ShapeID: shapeID, Exact: q}
}

// offsetCurve flattens the curve into samples spans, displacing each
// sample along its local normal.
func offsetCurve(shapeID string, p geom.Path, offsetMm float64, samples int) *OffsetPath {
	if samples < 2 {
		samples = DefaultCurveSamples
	}
	pts := make([]geom.Point, samples+1)
	for i := range samples + 1 {
		t := float64(i) / float64(samples)
		pts[i] = offsetPoint(p, t, offsetMm)
	}
	return &OffsetPath{ShapeID: shapeID, Points: pts}
}

// normalAt is the unit left normal of travel at t.
func normalAt(p geom.Path, t float64) geom.Vec2 {
	return p.TangentAt(t).Normalize().Turn90()
}

// offsetPoint displaces the path point at t by d along the left normal.
func offsetPoint(p geom.Path, t, d float64) geom.Point {
	return p.PointAt(t).Translate(normalAt(p, t).Mul(d))
}
