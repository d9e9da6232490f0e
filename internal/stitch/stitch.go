// Package stitch places stitch perforations along shapes and maintains
// their stitching order. Generators own the holes of their target shape:
// each run replaces what was there. Sequence numbers are dense and
// 0-based per shape; the sequence operations repair them after edits.
package stitch

import (
	"patternsmith/internal/geom"
	"patternsmith/internal/model"
)

// Pitch bounds in millimetres. Requested pitches clamp to these rather
// than failing, so free-typed numeric input stays responsive.
const (
	MinPitchMm = 0.2
	MaxPitchMm = 100
)

// walkTol absorbs floating point error when the last step lands exactly
// on the path end.
const walkTol = 1e-9

func clampPitch(p float64) float64 {
	return min(max(p, MinPitchMm), MaxPitchMm)
}

func holeAt(path geom.Path, shapeID string, dist float64, kind model.HoleKind, seq int) model.StitchHole {
	t := path.ParamAtLength(dist)
	return model.NewStitchHole(shapeID, path.PointAt(t), path.TangentAngleAt(t), kind, seq)
}

// GenerateFixedPitch replaces the holes owned by the shape with a fresh
// run at constant pitch, walking the path from startOffsetMm in pitchMm
// steps up to the arc length. Holes are numbered 0..n-1 in travel order
// and carry the tangent angle at their position, which orients slits.
// The pitch clamps to [MinPitchMm, MaxPitchMm], the start offset to
// [0, arc length], so a non-degenerate shape always receives at least one
// hole. Identical inputs yield the same points and sequences. Degenerate
// shapes pass holes through untouched.
func GenerateFixedPitch(holes []model.StitchHole, shape model.Shape, pitchMm float64, kind model.HoleKind, startOffsetMm float64) []model.StitchHole {
	if shape.IsDegenerate() {
		return holes
	}
	path := shape.Path()
	length := path.ArcLength()
	pitch := clampPitch(pitchMm)
	offset := min(max(startOffsetMm, 0), length)

	out := DeleteHolesForShapes(holes, map[string]bool{shape.ID: true})
	seq := 0
	for d := offset; d <= length+walkTol; d += pitch {
		out = append(out, holeAt(path, shape.ID, min(d, length), kind, seq))
		seq++
	}
	return out
}

// GenerateVariablePitch is [GenerateFixedPitch] with the pitch linearly
// interpolated from startPitchMm to endPitchMm over the fraction of the
// path already traveled, producing a tapered density. Both pitches clamp
// to the usual bounds; the clamp keeps every step at least MinPitchMm and
// a hole-count ceiling proportional to length/MinPitchMm guarantees
// termination.
func GenerateVariablePitch(holes []model.StitchHole, shape model.Shape, startPitchMm, endPitchMm float64, kind model.HoleKind, startOffsetMm float64) []model.StitchHole {
	if shape.IsDegenerate() {
		return holes
	}
	path := shape.Path()
	length := path.ArcLength()
	startPitch := clampPitch(startPitchMm)
	endPitch := clampPitch(endPitchMm)
	offset := min(max(startOffsetMm, 0), length)

	out := DeleteHolesForShapes(holes, map[string]bool{shape.ID: true})
	maxHoles := int(length/MinPitchMm) + 2
	d := offset
	for seq := 0; d <= length+walkTol && seq < maxHoles; seq++ {
		out = append(out, holeAt(path, shape.ID, min(d, length), kind, seq))
		frac := d / length
		d += startPitch + (endPitch-startPitch)*frac
	}
	return out
}

// DeleteHolesForShapes returns the holes not owned by any shape in ids.
// Input order is preserved.
func DeleteHolesForShapes(holes []model.StitchHole, ids map[string]bool) []model.StitchHole {
	out := make([]model.StitchHole, 0, len(holes))
	for _, h := range holes {
		if !ids[h.ShapeID] {
			out = append(out, h)
		}
	}
	return out
}
