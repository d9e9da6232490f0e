// Package model holds the persisted pattern document: layers, line types,
// shapes, stitch holes, seam allowances, fold lines, sketch groups, and
// parametric constraints, together with the referential-integrity sweep
// that keeps them consistent after structural edits.
//
// The document is plain data with JSON tags. Geometry operations are
// copy-on-write: they return new values and never mutate shapes in place.
package model
