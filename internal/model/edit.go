package model

import (
	"slices"

	"github.com/google/uuid"

	"patternsmith/internal/geom"
)

// ReverseShape flips the travel direction of the shape with the given id.
// Hole sequences keep their numbers; callers resequence afterwards when
// stitching order matters.
func (d *Document) ReverseShape(id string) bool {
	i := d.ShapeIndex(id)
	if i < 0 {
		return false
	}
	d.Shapes[i] = d.Shapes[i].Reversed()
	return true
}

// SplitShapeIntoN replaces the shape with n parts of equal arc length,
// keeping its layer, line type and group. The new shapes are returned in
// travel order. Degenerate shapes, unknown ids and n < 2 return nil.
// Records attached to the old shape are left for [Sweep].
func (d *Document) SplitShapeIntoN(id string, n int) []Shape {
	i := d.ShapeIndex(id)
	if i < 0 || n < 2 {
		return nil
	}
	s := d.Shapes[i]
	parts := geom.SplitN(s.Path(), n)
	if len(parts) < 2 {
		return nil
	}
	out := make([]Shape, len(parts))
	for j, p := range parts {
		ns := s.withPath(p)
		ns.ID = uuid.NewString()
		out[j] = ns
	}
	d.Shapes = slices.Replace(d.Shapes, i, i+1, out...)
	return out
}

// ConvertToCurve turns a line shape into a quadratic curve whose control
// point is the line's midpoint, so the geometry is unchanged until the
// control point is dragged. Non-line shapes are left alone.
func (d *Document) ConvertToCurve(id string) bool {
	i := d.ShapeIndex(id)
	if i < 0 || d.Shapes[i].Kind != LineShape {
		return false
	}
	s := d.Shapes[i]
	s.Kind = CurveShape
	s.Control = s.Start.Midpoint(s.End)
	d.Shapes[i] = s
	return true
}

// duplicateTolMm is how close defining points must be for two shapes to
// count as the same.
const duplicateTolMm = 1e-6

// DeleteDuplicateShapes removes shapes that coincide with an earlier shape
// of the same kind, keeping the first of each. Returns the number removed;
// dependent records are left for [Sweep].
func (d *Document) DeleteDuplicateShapes() int {
	var out []Shape
	removed := 0
	for _, s := range d.Shapes {
		dup := false
		for _, kept := range out {
			if shapesCoincide(kept, s) {
				dup = true
				break
			}
		}
		if dup {
			removed++
		} else {
			out = append(out, s)
		}
	}
	d.Shapes = out
	return removed
}

func shapesCoincide(a, b Shape) bool {
	if a.Kind != b.Kind {
		return false
	}
	near := func(p, q geom.Point) bool {
		return p.Distance(q) <= duplicateTolMm
	}
	return near(a.Start, b.Start) &&
		near(a.Mid, b.Mid) &&
		near(a.Control, b.Control) &&
		near(a.End, b.End)
}
