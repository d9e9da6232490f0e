package stitch

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"patternsmith/internal/geom"
	"patternsmith/internal/model"
)

func points(holes []model.StitchHole) []geom.Point {
	pts := make([]geom.Point, len(holes))
	for i, h := range holes {
		pts[i] = h.Point
	}
	return pts
}

func TestGenerateFixedPitchLine(t *testing.T) {
	shape := model.NewLine("layer", geom.Pt(0, 0), geom.Pt(40, 0))

	holes := GenerateFixedPitch(nil, shape, 5, model.RoundHole, 0)

	if len(holes) != 9 {
		t.Fatalf("got %d holes, want 9", len(holes))
	}
	want := make([]geom.Point, 9)
	for i := range want {
		want[i] = geom.Pt(float64(i)*5, 0)
	}
	if d := cmp.Diff(want, points(holes), cmpopts.EquateApprox(0, 1e-9)); d != "" {
		t.Error(d)
	}
	for i, h := range holes {
		if h.Sequence != i {
			t.Errorf("hole %d has sequence %d", i, h.Sequence)
		}
		if h.ShapeID != shape.ID || h.Kind != model.RoundHole {
			t.Errorf("hole %d has wrong ownership or kind", i)
		}
		if math.Abs(h.AngleDeg) > 1e-9 {
			t.Errorf("hole %d has angle %g, want 0", i, h.AngleDeg)
		}
	}
}

func TestGenerateFixedPitchArc(t *testing.T) {
	shape := model.NewArc("layer", geom.Pt(0, 0), geom.Pt(1, 1), geom.Pt(2, 0))

	holes := GenerateFixedPitch(nil, shape, math.Pi/4, model.SlitHole, 0)

	if len(holes) != 5 {
		t.Fatalf("got %d holes, want 5", len(holes))
	}
	apex := holes[2]
	if d := apex.Point.Distance(geom.Pt(1, 1)); d > 1e-9 {
		t.Errorf("middle hole at %s, want (1, 1)", apex.Point)
	}
	if math.Abs(apex.AngleDeg) > 1e-9 {
		t.Errorf("middle hole angle %g, want 0", apex.AngleDeg)
	}
	// Holes sit on the circle around (1, 0).
	for i, h := range holes {
		if r := h.Point.Distance(geom.Pt(1, 0)); math.Abs(r-1) > 1e-9 {
			t.Errorf("hole %d is %g from the center, want 1", i, r)
		}
	}
}

func TestGenerateFixedPitchStartOffset(t *testing.T) {
	shape := model.NewLine("layer", geom.Pt(0, 0), geom.Pt(40, 0))

	holes := GenerateFixedPitch(nil, shape, 5, model.RoundHole, 3)
	if len(holes) != 8 {
		t.Fatalf("got %d holes, want 8", len(holes))
	}
	if got := holes[0].Point.X; math.Abs(got-3) > 1e-9 {
		t.Errorf("first hole at x=%g, want 3", got)
	}
	if got := holes[7].Point.X; math.Abs(got-38) > 1e-9 {
		t.Errorf("last hole at x=%g, want 38", got)
	}
}

func TestGenerateFixedPitchClamps(t *testing.T) {
	shape := model.NewLine("layer", geom.Pt(0, 0), geom.Pt(1, 0))

	// Pitch below the bound clamps to MinPitchMm.
	holes := GenerateFixedPitch(nil, shape, 0.01, model.RoundHole, 0)
	if len(holes) != 6 {
		t.Errorf("got %d holes, want 6 at the clamped 0.2 pitch", len(holes))
	}

	// Start offset clamps into [0, length]: past the end still one hole.
	holes = GenerateFixedPitch(nil, shape, 5, model.RoundHole, 99)
	if len(holes) != 1 {
		t.Fatalf("got %d holes, want 1", len(holes))
	}
	if got := holes[0].Point.X; math.Abs(got-1) > 1e-9 {
		t.Errorf("hole at x=%g, want 1", got)
	}

	holes = GenerateFixedPitch(nil, shape, 5, model.RoundHole, -7)
	if len(holes) != 1 || holes[0].Point.X != 0 {
		t.Errorf("negative offset should clamp to the start")
	}
}

func TestGenerateFixedPitchIdempotent(t *testing.T) {
	shape := model.NewCurve("layer", geom.Pt(0, 0), geom.Pt(20, 30), geom.Pt(40, 0))

	first := GenerateFixedPitch(nil, shape, 4, model.SlitHole, 1)
	second := GenerateFixedPitch(first, shape, 4, model.SlitHole, 1)

	if len(first) != len(second) {
		t.Fatalf("got %d then %d holes", len(first), len(second))
	}
	if d := cmp.Diff(points(first), points(second)); d != "" {
		t.Error(d)
	}
	for i := range second {
		if second[i].Sequence != first[i].Sequence {
			t.Errorf("hole %d changed sequence", i)
		}
	}
}

func TestGenerateFixedPitchReplacesOwnHoles(t *testing.T) {
	shape := model.NewLine("layer", geom.Pt(0, 0), geom.Pt(10, 0))
	foreign := model.NewStitchHole("other-shape", geom.Pt(5, 5), 0, model.RoundHole, 0)
	stale := model.NewStitchHole(shape.ID, geom.Pt(9, 9), 0, model.RoundHole, 7)

	holes := GenerateFixedPitch([]model.StitchHole{foreign, stale}, shape, 5, model.RoundHole, 0)

	if len(holes) != 4 {
		t.Fatalf("got %d holes, want the foreign one plus 3 fresh", len(holes))
	}
	if holes[0].ID != foreign.ID {
		t.Errorf("foreign hole should survive in place")
	}
	for _, h := range holes[1:] {
		if h.ID == stale.ID {
			t.Errorf("stale hole survived the regeneration")
		}
	}
}

func TestGenerateFixedPitchDegenerate(t *testing.T) {
	shape := model.NewLine("layer", geom.Pt(3, 3), geom.Pt(3, 3))
	existing := []model.StitchHole{model.NewStitchHole("other", geom.Pt(0, 0), 0, model.RoundHole, 0)}

	holes := GenerateFixedPitch(existing, shape, 5, model.RoundHole, 0)
	if d := cmp.Diff(existing, holes); d != "" {
		t.Error(d)
	}

	// Positive arc length does not save a curve that closes back on its
	// start: the tangent vanishes at the turnaround.
	closed := model.NewCurve("layer", geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(0, 0))
	holes = GenerateFixedPitch(existing, closed, 5, model.RoundHole, 0)
	if d := cmp.Diff(existing, holes); d != "" {
		t.Error(d)
	}
}

func TestGenerateVariablePitchDegenerate(t *testing.T) {
	closed := model.NewCurve("layer", geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(0, 0))
	existing := []model.StitchHole{model.NewStitchHole("other", geom.Pt(0, 0), 0, model.RoundHole, 0)}

	holes := GenerateVariablePitch(existing, closed, 5, 2, model.RoundHole, 0)
	if d := cmp.Diff(existing, holes); d != "" {
		t.Error(d)
	}
}

func TestGenerateVariablePitchTaper(t *testing.T) {
	shape := model.NewLine("layer", geom.Pt(0, 0), geom.Pt(100, 0))

	holes := GenerateVariablePitch(nil, shape, 10, 2, model.RoundHole, 0)

	if len(holes) < 3 {
		t.Fatalf("got %d holes, want a tapered run", len(holes))
	}
	prev := -1.0
	for i := 1; i < len(holes); i++ {
		delta := holes[i].Point.X - holes[i-1].Point.X
		if delta < MinPitchMm-1e-9 {
			t.Errorf("step %d is %g, below the minimum pitch", i, delta)
		}
		if prev > 0 && delta > prev+1e-9 {
			t.Errorf("step %d grew from %g to %g, want shrinking pitch", i, prev, delta)
		}
		prev = delta
	}
	if first := holes[1].Point.X - holes[0].Point.X; math.Abs(first-10) > 1e-9 {
		t.Errorf("first step is %g, want the start pitch 10", first)
	}
}

func TestGenerateVariablePitchTerminates(t *testing.T) {
	shape := model.NewLine("layer", geom.Pt(0, 0), geom.Pt(2, 0))

	holes := GenerateVariablePitch(nil, shape, 0.0001, 0.0001, model.RoundHole, 0)

	// 2 mm at the clamped 0.2 mm minimum pitch is the 11-point grid.
	if len(holes) != 11 {
		t.Errorf("got %d holes, want 11 at the clamped minimum pitch", len(holes))
	}
	for i, h := range holes {
		if h.Sequence != i {
			t.Errorf("hole %d has sequence %d", i, h.Sequence)
		}
	}
}
