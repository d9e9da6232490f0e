package export

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patternsmith/internal/geom"
	"patternsmith/internal/model"
)

// drawingDocument builds a pouch-like fixture: a line, an arc and a
// curve on the default layer, a seam on the line and on the curve, a
// round and a slit hole on the line, plus content that must not render
// (a hidden layer with its own hole, a hidden group).
func drawingDocument(t *testing.T) *model.Document {
	t.Helper()
	doc := model.NewDocument("belt pouch")
	cut := doc.Layers[0].ID

	line := model.NewLine(cut, geom.Pt(0, 40), geom.Pt(40, 40))
	line.LineTypeID = doc.LineTypes[0].ID
	arc := model.NewArc(cut, geom.Pt(0, 0), geom.Pt(20, 20), geom.Pt(40, 0))
	curve := model.NewCurve(cut, geom.Pt(0, 60), geom.Pt(20, 80), geom.Pt(40, 60))
	doc.AddShape(line)
	doc.AddShape(arc)
	doc.AddShape(curve)

	hidden := doc.AddLayer("construction")
	doc.Layers[1].Visible = false
	ghost := model.NewLine(hidden.ID, geom.Pt(500, 500), geom.Pt(540, 500))
	doc.AddShape(ghost)

	pocket := doc.AddGroup("pocket")
	doc.Groups[0].Visible = false
	grouped := model.NewLine(cut, geom.Pt(600, 600), geom.Pt(640, 600))
	grouped.GroupID = pocket.ID
	doc.AddShape(grouped)

	doc.Holes = append(doc.Holes,
		model.NewStitchHole(line.ID, geom.Pt(10, 40), 0, model.RoundHole, 0),
		model.NewStitchHole(line.ID, geom.Pt(30, 40), 0, model.SlitHole, 1),
		model.NewStitchHole(ghost.ID, geom.Pt(520, 500), 0, model.RoundHole, 0),
	)
	doc.Seams = append(doc.Seams,
		model.NewSeamAllowance(line.ID, 3),
		model.NewSeamAllowance(curve.ID, 2),
		model.NewSeamAllowance(ghost.ID, 3),
	)
	return doc
}

func render(t *testing.T, doc *model.Document) string {
	t.Helper()
	out, err := NewRenderer(Options{}, nil).Render(doc)
	require.NoError(t, err, "rendering must not fail")
	assertWellFormedXML(t, out)
	return string(out)
}

func assertWellFormedXML(t *testing.T, out []byte) {
	t.Helper()
	dec := xml.NewDecoder(bytes.NewReader(out))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return
		}
		require.NoError(t, err, "output must be well-formed xml")
	}
}

func TestRender_DrawsVisibleContent(t *testing.T) {
	doc := drawingDocument(t)
	out := render(t, doc)

	// One line shape, its exact seam guide, and the slit hole stroke.
	assert.Equal(t, 3, strings.Count(out, "<line"), "line elements")
	// The arc and the quadratic curve.
	assert.Equal(t, 2, strings.Count(out, "<path"), "path elements")
	// The sampled seam guide along the curve.
	assert.Equal(t, 1, strings.Count(out, "<polyline"), "polyline elements")
	// Only the round hole on the visible line; the hidden layer's hole
	// must not leak through.
	assert.Equal(t, 1, strings.Count(out, "<circle"), "circle elements")

	assert.Contains(t, out, "<title>belt pouch</title>")
	assert.Contains(t, out, `id="layer-`+doc.Layers[0].ID+`"`, "visible layer group")
}

func TestRender_SkipsHiddenLayersAndGroups(t *testing.T) {
	doc := drawingDocument(t)
	out := render(t, doc)

	assert.NotContains(t, out, doc.Layers[1].ID, "hidden layer must not emit a group")
	// Neither the hidden-layer line nor the hidden-group line is drawn,
	// so the page stays sized to the visible content.
	assert.Equal(t, 3, strings.Count(out, "<line"), "hidden shapes must not add lines")
}

func TestRender_ArcFlags(t *testing.T) {
	doc := model.NewDocument("")
	cut := doc.Layers[0].ID
	doc.AddShape(model.NewArc(cut, geom.Pt(0, 0), geom.Pt(20, 20), geom.Pt(40, 0)))
	doc.AddShape(model.NewArc(cut, geom.Pt(0, 0), geom.Pt(20, -20), geom.Pt(40, 0)))
	doc.AddShape(model.NewArc(cut, geom.Pt(40, 0), geom.Pt(0, 0), geom.Pt(20, -20)))
	out := render(t, doc)

	assert.Contains(t, out, "A20,20 0 0 0 40,0", "half circle, counter-clockwise sweep")
	assert.Contains(t, out, "A20,20 0 0 1 40,0", "half circle, clockwise sweep")
	assert.Contains(t, out, "A20,20 0 1 1 20,-20", "three-quarter circle sets the large-arc flag")
}

func TestRender_CollinearArcDrawsChord(t *testing.T) {
	doc := model.NewDocument("")
	doc.AddShape(model.NewArc(doc.Layers[0].ID, geom.Pt(0, 0), geom.Pt(20, 0), geom.Pt(40, 0)))
	out := render(t, doc)

	assert.Equal(t, 1, strings.Count(out, "<line"), "collinear arc degrades to its chord")
	assert.Equal(t, 0, strings.Count(out, "<path"), "no arc element for collinear points")
}

func TestRender_LineTypeStyle(t *testing.T) {
	doc := model.NewDocument("")
	lt := doc.AddLineType("Guide", model.RoleGuide)
	s := model.NewLine(doc.Layers[0].ID, geom.Pt(0, 0), geom.Pt(40, 0))
	s.LineTypeID = lt.ID
	doc.AddShape(s)
	out := render(t, doc)

	assert.Contains(t, out, "stroke:#808080", "guide color from the line type")
	assert.Contains(t, out, "stroke-dasharray:2,1", "guide dash from the line type")
}

func TestRender_MissingLineTypeFallsBack(t *testing.T) {
	doc := model.NewDocument("")
	s := model.NewLine(doc.Layers[0].ID, geom.Pt(0, 0), geom.Pt(40, 0))
	s.LineTypeID = "gone"
	doc.AddShape(s)
	out := render(t, doc)

	assert.Contains(t, out, "stroke:#000000")
	assert.Contains(t, out, "stroke-width:0.3")
}

func TestRender_FoldDashOverride(t *testing.T) {
	valley := model.NewDocument("")
	s := model.NewLine(valley.Layers[0].ID, geom.Pt(0, 0), geom.Pt(40, 0))
	valley.AddShape(s)
	valley.FoldLines = append(valley.FoldLines, model.NewFoldLine(s.ID, model.FoldValley))
	out := render(t, valley)
	assert.Contains(t, out, `stroke-dasharray:4,1.5,0.8,1.5"`, "valley fold dash-dot")

	mountain := model.NewDocument("")
	s = model.NewLine(mountain.Layers[0].ID, geom.Pt(0, 0), geom.Pt(40, 0))
	mountain.AddShape(s)
	mountain.FoldLines = append(mountain.FoldLines, model.NewFoldLine(s.ID, model.FoldMountain))
	out = render(t, mountain)
	assert.Contains(t, out, `stroke-dasharray:4,1.5,0.8,1.5,0.8,1.5"`, "mountain fold dash-dot-dot")
}

func TestRender_SeamGuideStyle(t *testing.T) {
	doc := model.NewDocument("")
	s := model.NewLine(doc.Layers[0].ID, geom.Pt(0, 10), geom.Pt(40, 10))
	doc.AddShape(s)
	doc.Seams = append(doc.Seams, model.NewSeamAllowance(s.ID, 3))
	out := render(t, doc)

	assert.Contains(t, out, "stroke:#999999", "seam guides are gray")
	assert.Contains(t, out, "stroke-dasharray:2,2", "seam guides are dashed")
}

func TestRender_EmptyDocument(t *testing.T) {
	out := render(t, model.NewDocument("blank"))

	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "mm", "page keeps millimetre units")
	assert.Equal(t, 0, strings.Count(out, "<g "), "no layer groups without shapes")
}

func TestRender_NilDocument(t *testing.T) {
	_, err := NewRenderer(Options{}, nil).Render(nil)
	require.Error(t, err)
}

func TestRender_SkipsDegenerateShapes(t *testing.T) {
	doc := model.NewDocument("")
	doc.AddShape(model.NewLine(doc.Layers[0].ID, geom.Pt(5, 5), geom.Pt(5, 5)))
	out := render(t, doc)

	assert.Equal(t, 0, strings.Count(out, "<line"), "zero-length shapes are not drawn")
}
