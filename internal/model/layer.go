package model

import "github.com/google/uuid"

// Layer is a drawing plane. Deleting a layer cascades to its shapes.
type Layer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Visible bool   `json:"visible"`
	Locked  bool   `json:"locked"`
}

// NewLayer returns a visible, unlocked layer.
func NewLayer(name string) Layer {
	return Layer{ID: uuid.NewString(), Name: name, Visible: true}
}

// Role classifies what a line type means on the finished pattern.
type Role string

const (
	RoleCut    Role = "cut"
	RoleStitch Role = "stitch"
	RoleFold   Role = "fold"
	RoleGuide  Role = "guide"
	RoleMark   Role = "mark"
)

// LineType carries the stroke and role metadata shapes are drawn with.
// Color is a CSS color string; DashMm of 0 means solid.
type LineType struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Role    Role    `json:"role"`
	Color   string  `json:"color"`
	WidthMm float64 `json:"widthMm"`
	DashMm  float64 `json:"dashMm,omitempty"`
}

// NewLineType returns a line type with the defaults of its role.
func NewLineType(name string, role Role) LineType {
	lt := LineType{
		ID:      uuid.NewString(),
		Name:    name,
		Role:    role,
		Color:   "#000000",
		WidthMm: 0.3,
	}
	switch role {
	case RoleStitch:
		lt.Color = "#b03030"
	case RoleGuide:
		lt.Color = "#808080"
		lt.DashMm = 2
	case RoleFold:
		lt.DashMm = 4
	}
	return lt
}

// FoldStyle tells which way the leather folds along a fold line.
type FoldStyle string

const (
	FoldValley   FoldStyle = "valley"
	FoldMountain FoldStyle = "mountain"
)

// FoldLine marks a shape as a fold. Descriptive only; the previewer
// consumes it.
type FoldLine struct {
	ID      string    `json:"id"`
	ShapeID string    `json:"shapeId"`
	Style   FoldStyle `json:"style"`
}

// NewFoldLine marks the shape as a fold of the given style.
func NewFoldLine(shapeID string, style FoldStyle) FoldLine {
	return FoldLine{ID: uuid.NewString(), ShapeID: shapeID, Style: style}
}

// SketchGroup is a named cluster of shapes that can be hidden or locked
// together. LinkedToID points at a mirrored or derived group; link chains
// must stay acyclic.
type SketchGroup struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Visible    bool   `json:"visible"`
	Locked     bool   `json:"locked"`
	LinkedToID string `json:"linkedToId,omitempty"`
}

// NewSketchGroup returns a visible, unlocked group.
func NewSketchGroup(name string) SketchGroup {
	return SketchGroup{ID: uuid.NewString(), Name: name, Visible: true}
}
