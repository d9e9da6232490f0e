package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patternsmith/internal/geom"
)

func TestShape_PathKinds(t *testing.T) {
	line := NewLine("layer", geom.Pt(0, 0), geom.Pt(10, 0))
	assert.Equal(t, geom.LineKind, line.Path().Kind)
	assert.InDelta(t, 10, line.Path().ArcLength(), 1e-12)

	arc := NewArc("layer", geom.Pt(0, 0), geom.Pt(1, 1), geom.Pt(2, 0))
	assert.Equal(t, geom.ArcKind, arc.Path().Kind)
	assert.InDelta(t, math.Pi, arc.Path().ArcLength(), 1e-9)

	curve := NewCurve("layer", geom.Pt(0, 0), geom.Pt(0, 0.5), geom.Pt(1, 1))
	assert.Equal(t, geom.CurveKind, curve.Path().Kind)
}

func TestShape_ReversedSwapsEnds(t *testing.T) {
	s := NewArc("layer", geom.Pt(0, 0), geom.Pt(1, 1), geom.Pt(2, 0))
	s.LineTypeID = "lt"
	s.GroupID = "g"

	r := s.Reversed()

	assert.Equal(t, s.ID, r.ID, "reversing keeps identity")
	assert.Equal(t, "lt", r.LineTypeID)
	assert.Equal(t, "g", r.GroupID)
	assert.Equal(t, s.End, r.Start)
	assert.Equal(t, s.Start, r.End)
	assert.InDelta(t, s.Path().ArcLength(), r.Path().ArcLength(), 1e-9)

	// Original untouched.
	assert.Equal(t, geom.Pt(0, 0), s.Start)
}

func TestShape_ReversedTwiceRestores(t *testing.T) {
	s := NewCurve("layer", geom.Pt(0, 0), geom.Pt(3, 7), geom.Pt(10, 2))
	assert.Equal(t, s, s.Reversed().Reversed())
}

func TestShape_TransformKeepsMetadata(t *testing.T) {
	s := NewLine("layer", geom.Pt(0, 0), geom.Pt(10, 0))
	s.LineTypeID = "lt"

	moved := s.Translate(geom.Vec(5, 5))
	assert.Equal(t, geom.Pt(5, 5), moved.Start)
	assert.Equal(t, geom.Pt(15, 5), moved.End)
	assert.Equal(t, "lt", moved.LineTypeID)
	assert.Equal(t, "layer", moved.LayerID)

	rotated := s.Transform(geom.RotateAbout(math.Pi, geom.Pt(5, 0)))
	assert.InDelta(t, 10, rotated.Start.X, 1e-9)
	assert.InDelta(t, 0, rotated.End.X, 1e-9)
}

func TestShape_IsDegenerate(t *testing.T) {
	assert.True(t, NewLine("layer", geom.Pt(3, 3), geom.Pt(3, 3)).IsDegenerate())
	assert.False(t, NewLine("layer", geom.Pt(0, 0), geom.Pt(0.1, 0)).IsDegenerate())

	// Coincident endpoints make a shape degenerate even with positive arc
	// length: a closed curve's tangent vanishes at the turnaround.
	closed := NewCurve("layer", geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(0, 0))
	assert.True(t, closed.IsDegenerate())
	assert.True(t, NewArc("layer", geom.Pt(0, 0), geom.Pt(0, 10), geom.Pt(0, 0)).IsDegenerate())
	assert.False(t, NewCurve("layer", geom.Pt(0, 0), geom.Pt(5, 5), geom.Pt(10, 0)).IsDegenerate())

	nan := NewLine("layer", geom.Pt(math.NaN(), 0), geom.Pt(1, 0))
	assert.True(t, nan.IsDegenerate())
}

func TestShape_DistinctIDs(t *testing.T) {
	a := NewLine("layer", geom.Pt(0, 0), geom.Pt(1, 0))
	b := NewLine("layer", geom.Pt(0, 0), geom.Pt(1, 0))
	require.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}
