// Package constraint repositions shapes relative to a layer's extent or
// to other shapes. The solver is sequential: constraints apply in list
// order and each reads the positions left by the ones before it. There
// is no simultaneous equation solving.
package constraint

import (
	"patternsmith/internal/geom"
	"patternsmith/internal/model"
)

// ApplyAll evaluates the enabled constraints in list order. Disabled
// constraints are skipped but kept; constraints whose references are
// missing are skipped too, pruning them is the consistency sweep's job.
// It reports how many constraints moved their target.
func ApplyAll(doc *model.Document, constraints []model.Constraint) int {
	applied := 0
	for _, c := range constraints {
		if !c.Enabled {
			continue
		}
		ok := false
		switch c.Kind {
		case model.EdgeOffsetConstraint:
			ok = applyEdgeOffset(doc, c)
		case model.AlignConstraint:
			ok = applyAlign(doc, c)
		}
		if ok {
			applied++
		}
	}
	return applied
}

// applyEdgeOffset translates the target so its anchor sits OffsetMm
// inside the chosen edge of the reference layer's bounding box. Only the
// coordinate perpendicular to the edge moves.
func applyEdgeOffset(doc *model.Document, c model.Constraint) bool {
	target, ok := doc.ShapeByID(c.ShapeID)
	if !ok {
		return false
	}
	bounds, ok := LayerBounds(doc, c.ReferenceLayerID)
	if !ok {
		return false
	}
	anchor := geom.AnchorPoint(target.Path(), c.Anchor)

	var d geom.Vec2
	switch c.Edge {
	case model.EdgeLeft:
		d = geom.Vec(bounds.MinX()+c.OffsetMm-anchor.X, 0)
	case model.EdgeRight:
		d = geom.Vec(bounds.MaxX()-c.OffsetMm-anchor.X, 0)
	case model.EdgeTop:
		d = geom.Vec(0, bounds.MinY()+c.OffsetMm-anchor.Y)
	case model.EdgeBottom:
		d = geom.Vec(0, bounds.MaxY()-c.OffsetMm-anchor.Y)
	default:
		return false
	}
	transformShape(doc, target, geom.Translate(d))
	return true
}

// applyAlign translates the target so its anchor matches the reference
// shape's anchor on the constrained axis.
func applyAlign(doc *model.Document, c model.Constraint) bool {
	target, ok := doc.ShapeByID(c.ShapeID)
	if !ok {
		return false
	}
	ref, ok := doc.ShapeByID(c.ReferenceShapeID)
	if !ok {
		return false
	}
	from := geom.AnchorPoint(target.Path(), c.Anchor)
	to := geom.AnchorPoint(ref.Path(), c.ReferenceAnchor)
	d, ok := axisDelta(to.Sub(from), c.Axis)
	if !ok {
		return false
	}
	transformShape(doc, target, geom.Translate(d))
	return true
}

// axisDelta restricts a displacement to the constrained axis.
func axisDelta(d geom.Vec2, axis model.Axis) (geom.Vec2, bool) {
	switch axis {
	case model.AxisX:
		return geom.Vec(d.X, 0), true
	case model.AxisY:
		return geom.Vec(0, d.Y), true
	case model.AxisBoth:
		return d, true
	}
	return geom.Vec2{}, false
}

// LayerBounds returns the union bounding box of the layer's shapes,
// recomputed from their current positions. ok is false for unknown
// layers and layers with no shapes.
func LayerBounds(doc *model.Document, layerID string) (geom.Rect, bool) {
	if _, exists := doc.LayerByID(layerID); !exists {
		return geom.Rect{}, false
	}
	shapes := doc.ShapesOnLayer(layerID)
	if len(shapes) == 0 {
		return geom.Rect{}, false
	}
	bounds := shapes[0].BoundingBox()
	for _, s := range shapes[1:] {
		bounds = bounds.Union(s.BoundingBox())
	}
	return bounds, true
}
