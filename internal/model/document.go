package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Document is the owning container for one pattern. Collections are slices
// so the JSON encoding is stable and the content signature deterministic.
type Document struct {
	Name        string          `json:"name,omitempty"`
	Layers      []Layer         `json:"layers"`
	LineTypes   []LineType      `json:"lineTypes"`
	Groups      []SketchGroup   `json:"groups,omitempty"`
	Shapes      []Shape         `json:"shapes"`
	Holes       []StitchHole    `json:"holes"`
	Seams       []SeamAllowance `json:"seams,omitempty"`
	FoldLines   []FoldLine      `json:"foldLines,omitempty"`
	Constraints []Constraint    `json:"constraints,omitempty"`
}

// NewDocument returns a document with one layer and the cut and stitch
// line types every pattern needs.
func NewDocument(name string) *Document {
	return &Document{
		Name:   name,
		Layers: []Layer{NewLayer("Layer 1")},
		LineTypes: []LineType{
			NewLineType("Cut", RoleCut),
			NewLineType("Stitch", RoleStitch),
		},
	}
}

// AddLayer appends a new layer and returns it.
func (d *Document) AddLayer(name string) Layer {
	l := NewLayer(name)
	d.Layers = append(d.Layers, l)
	return l
}

// AddLineType appends a new line type and returns it.
func (d *Document) AddLineType(name string, role Role) LineType {
	lt := NewLineType(name, role)
	d.LineTypes = append(d.LineTypes, lt)
	return lt
}

// AddGroup appends a new sketch group and returns it.
func (d *Document) AddGroup(name string) SketchGroup {
	g := NewSketchGroup(name)
	d.Groups = append(d.Groups, g)
	return g
}

// AddShape appends the shape.
func (d *Document) AddShape(s Shape) {
	d.Shapes = append(d.Shapes, s)
}

// ShapeIndex returns the position of the shape with the given id, or -1.
func (d *Document) ShapeIndex(id string) int {
	for i := range d.Shapes {
		if d.Shapes[i].ID == id {
			return i
		}
	}
	return -1
}

// ShapeByID looks up a shape by id.
func (d *Document) ShapeByID(id string) (Shape, bool) {
	if i := d.ShapeIndex(id); i >= 0 {
		return d.Shapes[i], true
	}
	return Shape{}, false
}

// ReplaceShape swaps in the shape with the matching id. It reports whether
// the id was present.
func (d *Document) ReplaceShape(s Shape) bool {
	if i := d.ShapeIndex(s.ID); i >= 0 {
		d.Shapes[i] = s
		return true
	}
	return false
}

// DeleteShape removes the shape with the given id. Dependent records are
// left for [Sweep].
func (d *Document) DeleteShape(id string) bool {
	if i := d.ShapeIndex(id); i >= 0 {
		d.Shapes = append(d.Shapes[:i], d.Shapes[i+1:]...)
		return true
	}
	return false
}

// DeleteLayer removes the layer with the given id. Its shapes cascade away
// on the next [Sweep].
func (d *Document) DeleteLayer(id string) bool {
	for i := range d.Layers {
		if d.Layers[i].ID == id {
			d.Layers = append(d.Layers[:i], d.Layers[i+1:]...)
			return true
		}
	}
	return false
}

// LayerByID looks up a layer by id.
func (d *Document) LayerByID(id string) (Layer, bool) {
	for _, l := range d.Layers {
		if l.ID == id {
			return l, true
		}
	}
	return Layer{}, false
}

// LineTypeByID looks up a line type by id.
func (d *Document) LineTypeByID(id string) (LineType, bool) {
	for _, lt := range d.LineTypes {
		if lt.ID == id {
			return lt, true
		}
	}
	return LineType{}, false
}

// GroupByID looks up a sketch group by id.
func (d *Document) GroupByID(id string) (SketchGroup, bool) {
	for _, g := range d.Groups {
		if g.ID == id {
			return g, true
		}
	}
	return SketchGroup{}, false
}

// ShapesOnLayer returns the shapes whose LayerID matches, in document
// order.
func (d *Document) ShapesOnLayer(layerID string) []Shape {
	var out []Shape
	for _, s := range d.Shapes {
		if s.LayerID == layerID {
			out = append(out, s)
		}
	}
	return out
}

// HolesForShape returns the holes owned by the shape, in document order.
func (d *Document) HolesForShape(shapeID string) []StitchHole {
	var out []StitchHole
	for _, h := range d.Holes {
		if h.ShapeID == shapeID {
			out = append(out, h)
		}
	}
	return out
}

var (
	// ErrUnknownGroup reports a group id that is not in the document.
	ErrUnknownGroup = errors.New("unknown sketch group")
	// ErrGroupCycle reports a link mutation that would close a cycle.
	ErrGroupCycle = errors.New("group link would form a cycle")
)

// SetGroupLink points groupID's link at targetID, or clears it when
// targetID is empty. Link chains must stay acyclic; a mutation that would
// close a cycle is rejected with [ErrGroupCycle].
func (d *Document) SetGroupLink(groupID, targetID string) error {
	gi := -1
	for i := range d.Groups {
		if d.Groups[i].ID == groupID {
			gi = i
			break
		}
	}
	if gi < 0 {
		return fmt.Errorf("set group link %q: %w", groupID, ErrUnknownGroup)
	}
	if targetID == "" {
		d.Groups[gi].LinkedToID = ""
		return nil
	}
	if _, ok := d.GroupByID(targetID); !ok {
		return fmt.Errorf("set group link %q: %w", targetID, ErrUnknownGroup)
	}
	// Walk the chain from the target; reaching groupID means the new link
	// would close a loop.
	for id := targetID; id != ""; {
		if id == groupID {
			return fmt.Errorf("set group link %q -> %q: %w", groupID, targetID, ErrGroupCycle)
		}
		g, ok := d.GroupByID(id)
		if !ok {
			break
		}
		id = g.LinkedToID
	}
	d.Groups[gi].LinkedToID = targetID
	return nil
}

// Load reads a document from JSON.
func Load(r io.Reader) (*Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	return &d, nil
}

// Save writes the document as indented JSON.
func Save(w io.Writer, d *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	return nil
}
