package model

import (
	"github.com/google/uuid"

	"patternsmith/internal/geom"
)

// ShapeKind discriminates the shape variants.
type ShapeKind string

const (
	LineShape  ShapeKind = "line"
	ArcShape   ShapeKind = "arc"
	CurveShape ShapeKind = "curve"
)

// Shape is one drawable segment on a layer. Lines use Start and End, arcs
// additionally Mid (a point the arc passes through), curves additionally
// Control (the quadratic control point).
type Shape struct {
	ID         string     `json:"id"`
	LayerID    string     `json:"layerId"`
	LineTypeID string     `json:"lineTypeId,omitempty"`
	GroupID    string     `json:"groupId,omitempty"`
	Kind       ShapeKind  `json:"kind"`
	Start      geom.Point `json:"start"`
	Mid        geom.Point `json:"mid"`
	Control    geom.Point `json:"control"`
	End        geom.Point `json:"end"`
}

// NewLine returns a line shape on the given layer.
func NewLine(layerID string, start, end geom.Point) Shape {
	return Shape{
		ID:      uuid.NewString(),
		LayerID: layerID,
		Kind:    LineShape,
		Start:   start,
		End:     end,
	}
}

// NewArc returns a circular arc shape through mid on the given layer.
func NewArc(layerID string, start, mid, end geom.Point) Shape {
	return Shape{
		ID:      uuid.NewString(),
		LayerID: layerID,
		Kind:    ArcShape,
		Start:   start,
		Mid:     mid,
		End:     end,
	}
}

// NewCurve returns a quadratic curve shape on the given layer.
func NewCurve(layerID string, start, control, end geom.Point) Shape {
	return Shape{
		ID:      uuid.NewString(),
		LayerID: layerID,
		Kind:    CurveShape,
		Start:   start,
		Control: control,
		End:     end,
	}
}

// Path returns the parametric form of the shape.
func (s Shape) Path() geom.Path {
	switch s.Kind {
	case ArcShape:
		return geom.ArcPath(s.Start, s.Mid, s.End)
	case CurveShape:
		return geom.CurvePath(s.Start, s.Control, s.End)
	default:
		return geom.LinePath(s.Start, s.End)
	}
}

// withPath returns a copy of the shape carrying p's geometry. Metadata (id,
// layer, line type, group) is preserved.
func (s Shape) withPath(p geom.Path) Shape {
	s.Mid = geom.Point{}
	s.Control = geom.Point{}
	switch p.Kind {
	case geom.ArcKind:
		s.Kind = ArcShape
		s.Start = p.P0
		s.Mid = p.P1
		s.End = p.P2
	case geom.CurveKind:
		s.Kind = CurveShape
		s.Start = p.P0
		s.Control = p.P1
		s.End = p.P2
	default:
		s.Kind = LineShape
		s.Start = p.P0
		s.End = p.P1
	}
	return s
}

// Reversed returns the shape with its travel direction flipped.
func (s Shape) Reversed() Shape {
	return s.withPath(s.Path().Reverse())
}

// Translate returns the shape moved by v.
func (s Shape) Translate(v geom.Vec2) Shape {
	return s.withPath(s.Path().Translate(v))
}

// Transform returns the shape with aff applied to its defining points.
func (s Shape) Transform(aff geom.Affine) Shape {
	return s.withPath(s.Path().Transform(aff))
}

// BoundingBox returns the enclosing rectangle of the shape.
func (s Shape) BoundingBox() geom.Rect {
	return s.Path().BoundingBox()
}

// degenerateEps is the length below which a shape is unusable for
// placement and offsetting.
const degenerateEps = 1e-9

// IsDegenerate reports whether the shape is too small or malformed for
// geometry operations. Degenerate shapes are skipped, never errors.
func (s Shape) IsDegenerate() bool {
	p := s.Path()
	if p.IsNaN() || p.ArcLength() < degenerateEps {
		return true
	}
	// A curve closing back on its start has arc length but a vanishing
	// tangent at the turnaround, so no normal exists there. Arcs with a
	// zero chord already degrade to a zero-length line.
	return s.Kind == CurveShape && s.Start.Distance(s.End) < degenerateEps
}
