package geom

import "math"

// Affine describes an affine transform via coefficients.
//
// With coefficients (a, b, c, d, e, f) the transform represents the
// augmented matrix
//
//	| a c e |
//	| b d f |
//	| 0 0 1 |
//
// so that (A * B) * v == A * (B * v).
type Affine struct {
	N0, N1, N2, N3, N4, N5 float64
}

// Identity is the identity transform.
var Identity = Affine{1, 0, 0, 1, 0, 0}

// Translate creates a transform representing translation by v.
func Translate(v Vec2) Affine {
	return Affine{1, 0, 0, 1, v.X, v.Y}
}

// Rotate creates a transform representing rotation by th radians about the
// origin. A positive angle rotates positive x into positive y, which is
// clockwise in the document's y-down space.
func Rotate(th float64) Affine {
	sin, cos := math.Sincos(th)
	return Affine{cos, sin, -sin, cos, 0, 0}
}

// RotateAbout creates a transform representing rotation by th radians about
// center. See [Rotate] for the direction convention.
func RotateAbout(th float64, center Point) Affine {
	c := Vec2(center)
	return Rotate(th).Mul(Translate(c.Negate())).thenTranslate(c)
}

// Scale creates a transform representing scaling by (x, y) about the origin.
func Scale(x, y float64) Affine {
	return Affine{x, 0, 0, y, 0, 0}
}

// ScaleAbout creates a transform representing scaling by (x, y) about center.
func ScaleAbout(x, y float64, center Point) Affine {
	c := Vec2(center)
	return Scale(x, y).Mul(Translate(c.Negate())).thenTranslate(c)
}

// Reflect creates a transform representing reflection about the line
// point + direction*t.
func Reflect(pt Point, direction Vec2) Affine {
	n := Vec2{
		X: direction.Y,
		Y: -direction.X,
	}.Normalize()

	// Householder reflection matrix, with the post translation folded in.
	x2 := n.X * n.X
	xy := n.X * n.Y
	y2 := n.Y * n.Y
	aff := Affine{
		1.0 - 2.0*x2,
		-2.0 * xy,
		-2.0 * xy,
		1.0 - 2.0*y2,
		pt.X,
		pt.Y,
	}
	return aff.Mul(Translate(Vec2(pt).Negate()))
}

// Mul composes two transforms: the result applies o first, then aff.
func (aff Affine) Mul(o Affine) Affine {
	return Affine{
		aff.N0*o.N0 + aff.N2*o.N1,
		aff.N1*o.N0 + aff.N3*o.N1,
		aff.N0*o.N2 + aff.N2*o.N3,
		aff.N1*o.N2 + aff.N3*o.N3,
		aff.N0*o.N4 + aff.N2*o.N5 + aff.N4,
		aff.N1*o.N4 + aff.N3*o.N5 + aff.N5,
	}
}

func (aff Affine) thenTranslate(v Vec2) Affine {
	aff.N4 += v.X
	aff.N5 += v.Y
	return aff
}
