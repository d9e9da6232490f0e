package constraint

import (
	"patternsmith/internal/geom"
	"patternsmith/internal/model"
)

// Translate moves the selected shapes, and their stitch holes, by d.
func Translate(doc *model.Document, ids []string, d geom.Vec2) int {
	return TransformShapes(doc, ids, geom.Translate(d))
}

// RotateAbout spins the selected shapes th radians about center.
func RotateAbout(doc *model.Document, ids []string, th float64, center geom.Point) int {
	return TransformShapes(doc, ids, geom.RotateAbout(th, center))
}

// ScaleAbout scales the selected shapes about center.
func ScaleAbout(doc *model.Document, ids []string, sx, sy float64, center geom.Point) int {
	return TransformShapes(doc, ids, geom.ScaleAbout(sx, sy, center))
}

// MirrorAcross reflects the selected shapes across the line through pt
// along direction.
func MirrorAcross(doc *model.Document, ids []string, pt geom.Point, direction geom.Vec2) int {
	return TransformShapes(doc, ids, geom.Reflect(pt, direction))
}

// AlignToAnchor moves each selected shape so its anchor matches the
// reference shape's anchor on the given axis. A selected reference stays
// in place. Returns the number of shapes moved.
func AlignToAnchor(doc *model.Document, ids []string, referenceID string, axis model.Axis, anchor, referenceAnchor geom.Anchor) int {
	ref, ok := doc.ShapeByID(referenceID)
	if !ok {
		return 0
	}
	to := geom.AnchorPoint(ref.Path(), referenceAnchor)
	moved := 0
	for _, id := range ids {
		if id == referenceID {
			continue
		}
		s, ok := doc.ShapeByID(id)
		if !ok {
			continue
		}
		d, ok := axisDelta(to.Sub(geom.AnchorPoint(s.Path(), anchor)), axis)
		if !ok {
			return moved
		}
		transformShape(doc, s, geom.Translate(d))
		moved++
	}
	return moved
}

// TransformShapes applies an affine to the selected shapes, skipping
// unknown ids. Returns the number of shapes moved.
func TransformShapes(doc *model.Document, ids []string, aff geom.Affine) int {
	moved := 0
	for _, id := range ids {
		s, ok := doc.ShapeByID(id)
		if !ok {
			continue
		}
		transformShape(doc, s, aff)
		moved++
	}
	return moved
}

// transformShape applies aff to one shape and carries its stitch holes
// along. Hole points transform with the shape, so they stay on its path;
// angles are reprojected from the transformed path, which keeps slit
// orientation right under rotation and mirroring.
func transformShape(doc *model.Document, s model.Shape, aff geom.Affine) {
	moved := s.Transform(aff)
	doc.ReplaceShape(moved)
	path := moved.Path()
	degenerate := moved.IsDegenerate()
	for i := range doc.Holes {
		if doc.Holes[i].ShapeID != s.ID {
			continue
		}
		pt := doc.Holes[i].Point.Transform(aff)
		doc.Holes[i].Point = pt
		if !degenerate {
			t, _ := path.Nearest(pt)
			doc.Holes[i].AngleDeg = path.TangentAngleAt(t)
		}
	}
}
