package model

import (
	"github.com/google/uuid"

	"patternsmith/internal/geom"
)

// ConstraintKind discriminates the parametric constraint variants.
type ConstraintKind string

const (
	// Keep a shape anchor at a fixed inset from an edge of a reference
	// layer's bounding box.
	EdgeOffsetConstraint ConstraintKind = "edgeOffset"
	// Match a shape anchor to an anchor of a reference shape on one or
	// both axes.
	AlignConstraint ConstraintKind = "align"
)

// Edge names a side of a bounding box, in y-down document space (top is
// the smaller y).
type Edge string

const (
	EdgeLeft   Edge = "left"
	EdgeRight  Edge = "right"
	EdgeTop    Edge = "top"
	EdgeBottom Edge = "bottom"
)

// Axis selects which coordinates an align constraint matches.
type Axis string

const (
	AxisX    Axis = "x"
	AxisY    Axis = "y"
	AxisBoth Axis = "both"
)

// Constraint is one parametric rule applied to a target shape. Kind
// selects which fields are meaningful: edge-offset constraints use
// ReferenceLayerID, Edge, Anchor and OffsetMm; align constraints use
// ReferenceShapeID, Axis, Anchor and ReferenceAnchor. The solver applies
// constraints in list order; Enabled false skips one without losing its
// parameters.
type Constraint struct {
	ID      string         `json:"id"`
	Kind    ConstraintKind `json:"kind"`
	ShapeID string         `json:"shapeId"`
	Enabled bool           `json:"enabled"`

	ReferenceLayerID string      `json:"referenceLayerId,omitempty"`
	Edge             Edge        `json:"edge,omitempty"`
	Anchor           geom.Anchor `json:"anchor,omitempty"`
	OffsetMm         float64     `json:"offsetMm,omitempty"`

	ReferenceShapeID string      `json:"referenceShapeId,omitempty"`
	Axis             Axis        `json:"axis,omitempty"`
	ReferenceAnchor  geom.Anchor `json:"referenceAnchor,omitempty"`
}

// NewEdgeOffset returns an enabled edge-offset constraint: keep the
// shape's anchor offsetMm inside the given edge of the reference layer's
// shape bounding box.
func NewEdgeOffset(shapeID, referenceLayerID string, edge Edge, anchor geom.Anchor, offsetMm float64) Constraint {
	return Constraint{
		ID:               uuid.NewString(),
		Kind:             EdgeOffsetConstraint,
		ShapeID:          shapeID,
		Enabled:          true,
		ReferenceLayerID: referenceLayerID,
		Edge:             edge,
		Anchor:           anchor,
		OffsetMm:         offsetMm,
	}
}

// NewAlign returns an enabled align constraint: match the shape's anchor
// to the reference shape's anchor on the given axis.
func NewAlign(shapeID, referenceShapeID string, axis Axis, anchor, referenceAnchor geom.Anchor) Constraint {
	return Constraint{
		ID:               uuid.NewString(),
		Kind:             AlignConstraint,
		ShapeID:          shapeID,
		Enabled:          true,
		ReferenceShapeID: referenceShapeID,
		Axis:             axis,
		Anchor:           anchor,
		ReferenceAnchor:  referenceAnchor,
	}
}
