// Package geom provides the 2D primitives and parametric-path routines the
// pattern core is built on: points, vectors, rectangles, affine transforms,
// and the Path tagged union that evaluates lines, circular arcs, and
// quadratic curves through one contract.
//
// All coordinates are millimetres in document space, y down. Parametric
// positions t are in [0, 1]. Angles returned to callers are degrees measured
// from the positive x axis; internal math uses radians.
//
// Every function is pure: inputs are never mutated, results are new values.
package geom

// DefaultAccuracy is the accuracy used by the routines that solve along a
// curve iteratively. In millimetre document space this is far below any
// placement tolerance.
const DefaultAccuracy = 1e-6
