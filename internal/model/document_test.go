package model

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patternsmith/internal/geom"
)

func buildTestDocument() *Document {
	d := NewDocument("test")
	layer := d.Layers[0]
	s1 := NewLine(layer.ID, geom.Pt(0, 0), geom.Pt(40, 0))
	s2 := NewArc(layer.ID, geom.Pt(0, 10), geom.Pt(5, 15), geom.Pt(10, 10))
	d.AddShape(s1)
	d.AddShape(s2)
	d.Holes = append(d.Holes,
		NewStitchHole(s1.ID, geom.Pt(0, 0), 0, RoundHole, 0),
		NewStitchHole(s1.ID, geom.Pt(5, 0), 0, RoundHole, 1),
	)
	d.Seams = append(d.Seams, NewSeamAllowance(s1.ID, 3))
	return d
}

func TestDocument_SaveLoadRoundTrip(t *testing.T) {
	d := buildTestDocument()
	d.FoldLines = append(d.FoldLines, NewFoldLine(d.Shapes[0].ID, FoldValley))
	d.Constraints = append(d.Constraints,
		NewEdgeOffset(d.Shapes[0].ID, d.Layers[0].ID, EdgeLeft, geom.AnchorStart, 10))

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, d))

	loaded, err := Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, d, loaded)
}

func TestLoad_RejectsGarbage(t *testing.T) {
	_, err := Load(bytes.NewBufferString("{not json"))
	assert.Error(t, err)
}

func TestDocument_Lookups(t *testing.T) {
	d := buildTestDocument()
	s1 := d.Shapes[0]

	got, ok := d.ShapeByID(s1.ID)
	require.True(t, ok)
	assert.Equal(t, s1, got)

	_, ok = d.ShapeByID("missing")
	assert.False(t, ok)

	assert.Len(t, d.ShapesOnLayer(d.Layers[0].ID), 2)
	assert.Empty(t, d.ShapesOnLayer("missing"))

	assert.Len(t, d.HolesForShape(s1.ID), 2)
}

func TestDocument_ReplaceShape(t *testing.T) {
	d := buildTestDocument()
	s := d.Shapes[0].Translate(geom.Vec(1, 1))

	require.True(t, d.ReplaceShape(s))
	assert.Equal(t, geom.Pt(1, 1), d.Shapes[0].Start)

	stranger := NewLine(d.Layers[0].ID, geom.Pt(0, 0), geom.Pt(1, 1))
	assert.False(t, d.ReplaceShape(stranger))
}

func TestDocument_DeleteShape(t *testing.T) {
	d := buildTestDocument()
	id := d.Shapes[0].ID

	require.True(t, d.DeleteShape(id))
	assert.False(t, d.DeleteShape(id), "second delete finds nothing")
	assert.Len(t, d.Shapes, 1)
}

func TestSetGroupLink_RejectsCycles(t *testing.T) {
	d := NewDocument("test")
	a := d.AddGroup("A")
	b := d.AddGroup("B")
	c := d.AddGroup("C")

	require.NoError(t, d.SetGroupLink(a.ID, b.ID))
	require.NoError(t, d.SetGroupLink(b.ID, c.ID))

	err := d.SetGroupLink(c.ID, a.ID)
	assert.ErrorIs(t, err, ErrGroupCycle)

	err = d.SetGroupLink(a.ID, a.ID)
	assert.ErrorIs(t, err, ErrGroupCycle, "self link is a cycle")

	err = d.SetGroupLink("missing", a.ID)
	assert.ErrorIs(t, err, ErrUnknownGroup)

	// Clearing is always allowed and unlocks the previous rejection.
	require.NoError(t, d.SetGroupLink(a.ID, ""))
	assert.NoError(t, d.SetGroupLink(c.ID, a.ID))
}
