package model

import (
	"github.com/google/uuid"

	"patternsmith/internal/geom"
)

// HoleKind is the perforation style of a stitch hole.
type HoleKind string

const (
	// A round pricking-iron hole.
	RoundHole HoleKind = "round"
	// A slanted slit, oriented along the path tangent.
	SlitHole HoleKind = "slit"
)

// StitchHole is one perforation on a shape. Sequence is the stitching
// order, dense and 0-based per owning shape. The point lies on the owning
// path; AngleDeg is the path tangent there, which orients slit holes.
type StitchHole struct {
	ID       string     `json:"id"`
	ShapeID  string     `json:"shapeId"`
	Point    geom.Point `json:"point"`
	AngleDeg float64    `json:"angleDeg"`
	Kind     HoleKind   `json:"kind"`
	Sequence int        `json:"sequence"`
}

// NewStitchHole returns a hole on the given shape.
func NewStitchHole(shapeID string, pt geom.Point, angleDeg float64, kind HoleKind, sequence int) StitchHole {
	return StitchHole{
		ID:       uuid.NewString(),
		ShapeID:  shapeID,
		Point:    pt,
		AngleDeg: angleDeg,
		Kind:     kind,
		Sequence: sequence,
	}
}

// SeamAllowance attaches a parallel-offset margin to a shape. At most one
// per shape; the sweep drops extras.
type SeamAllowance struct {
	ID       string  `json:"id"`
	ShapeID  string  `json:"shapeId"`
	OffsetMm float64 `json:"offsetMm"`
}

// NewSeamAllowance returns a seam allowance for the shape.
func NewSeamAllowance(shapeID string, offsetMm float64) SeamAllowance {
	return SeamAllowance{ID: uuid.NewString(), ShapeID: shapeID, OffsetMm: offsetMm}
}
