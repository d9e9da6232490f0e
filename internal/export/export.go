// Package export renders cut/stitch drawings as SVG. The writer
// consumes only validated geometry: invisible layers and degenerate
// shapes are skipped, and seam offsets come in as guides, never as cut
// paths. Coordinates are millimetres.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"math"

	svg "github.com/ajstarks/svgo/float"

	"patternsmith/internal/geom"
	"patternsmith/internal/model"
	"patternsmith/internal/seam"
)

// Options size the drawing. A negative margin and non-positive hole
// sizes fall back to the defaults; a zero margin is honored.
type Options struct {
	MarginMm      float64
	HoleRadiusMm  float64
	SlitLengthMm  float64
	OffsetSamples int
}

// Renderer writes cut/stitch drawings for a document.
type Renderer struct {
	opts Options
	log  *slog.Logger
}

// NewRenderer returns a renderer with normalized options. A nil logger
// falls back to slog.Default.
func NewRenderer(opts Options, log *slog.Logger) *Renderer {
	if opts.MarginMm < 0 {
		opts.MarginMm = 10
	}
	if opts.HoleRadiusMm <= 0 {
		opts.HoleRadiusMm = 0.6
	}
	if opts.SlitLengthMm <= 0 {
		opts.SlitLengthMm = 3
	}
	if opts.OffsetSamples < 2 {
		opts.OffsetSamples = seam.DefaultCurveSamples
	}
	if log == nil {
		log = slog.Default()
	}
	return &Renderer{opts: opts, log: log}
}

// Render draws the document: shapes stroked per their line type, fold
// dashing on fold-marked shapes, stitch holes, and seam guides. The
// page is sized to the content plus the margin.
func (r *Renderer) Render(doc *model.Document) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("export: nil document")
	}

	shapes := visibleShapes(doc)
	drawable := make(map[string]bool, len(shapes))
	for _, s := range shapes {
		drawable[s.ID] = true
	}

	var offsets []seam.OffsetPath
	for _, o := range seam.BuildAll(doc, r.opts.OffsetSamples) {
		if drawable[o.ShapeID] {
			offsets = append(offsets, o)
		}
	}

	bounds, ok := contentBounds(shapes, offsets)
	if !ok {
		bounds = geom.Rect{}
	}
	m := r.opts.MarginMm
	w := bounds.Width() + 2*m
	h := bounds.Height() + 2*m

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.StartviewUnit(w, h, "mm", bounds.MinX()-m, bounds.MinY()-m, w, h)
	if doc.Name != "" {
		canvas.Title(doc.Name)
	}

	folds := foldStyles(doc)
	byLayer := make(map[string][]model.Shape)
	for _, s := range shapes {
		byLayer[s.LayerID] = append(byLayer[s.LayerID], s)
	}
	for _, layer := range doc.Layers {
		onLayer := byLayer[layer.ID]
		if len(onLayer) == 0 {
			continue
		}
		canvas.Gid("layer-" + layer.ID)
		for _, s := range onLayer {
			drawPath(canvas, s.Path(), r.shapeStyle(doc, s, folds))
		}
		canvas.Gend()
	}

	r.drawSeams(canvas, offsets)
	holes := r.drawHoles(canvas, doc, drawable)

	canvas.End()
	r.log.Debug("drawing rendered",
		"shapes", len(shapes), "holes", holes, "seams", len(offsets))
	return buf.Bytes(), nil
}

// visibleShapes filters to what export draws: visible layer, visible
// group, non-degenerate geometry.
func visibleShapes(doc *model.Document) []model.Shape {
	layerVisible := make(map[string]bool, len(doc.Layers))
	for _, l := range doc.Layers {
		layerVisible[l.ID] = l.Visible
	}
	groupHidden := make(map[string]bool)
	for _, g := range doc.Groups {
		if !g.Visible {
			groupHidden[g.ID] = true
		}
	}

	var out []model.Shape
	for _, s := range doc.Shapes {
		if !layerVisible[s.LayerID] || groupHidden[s.GroupID] || s.IsDegenerate() {
			continue
		}
		out = append(out, s)
	}
	return out
}

func foldStyles(doc *model.Document) map[string]model.FoldStyle {
	folds := make(map[string]model.FoldStyle, len(doc.FoldLines))
	for _, f := range doc.FoldLines {
		folds[f.ShapeID] = f.Style
	}
	return folds
}

// contentBounds is the union extent of everything the drawing shows.
func contentBounds(shapes []model.Shape, offsets []seam.OffsetPath) (geom.Rect, bool) {
	var bounds geom.Rect
	ok := false
	add := func(r geom.Rect) {
		if !ok {
			bounds, ok = r, true
			return
		}
		bounds = bounds.Union(r)
	}

	for _, s := range shapes {
		add(s.BoundingBox())
	}
	for _, o := range offsets {
		if o.IsExact() {
			add(o.Exact.BoundingBox())
			continue
		}
		for _, pt := range o.Points {
			add(geom.NewRectFromPoints(pt, pt))
		}
	}
	return bounds, ok
}

// shapeStyle resolves the stroke from the shape's line type. A fold
// mark overrides the dash pattern: dash-dot for valley, dash-dot-dot
// for mountain.
func (r *Renderer) shapeStyle(doc *model.Document, s model.Shape, folds map[string]model.FoldStyle) string {
	color, width, dash := "#000000", 0.3, ""
	if lt, ok := doc.LineTypeByID(s.LineTypeID); ok {
		if lt.Color != "" {
			color = lt.Color
		}
		if lt.WidthMm > 0 {
			width = lt.WidthMm
		}
		if lt.DashMm > 0 {
			dash = fmt.Sprintf("%g,%g", lt.DashMm, lt.DashMm/2)
		}
	}
	if fold, ok := folds[s.ID]; ok {
		dash = "4,1.5,0.8,1.5"
		if fold == model.FoldMountain {
			dash = "4,1.5,0.8,1.5,0.8,1.5"
		}
	}

	style := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%g", color, width)
	if dash != "" {
		style += ";stroke-dasharray:" + dash
	}
	return style
}

func drawPath(canvas *svg.SVG, p geom.Path, style string) {
	switch p.Kind {
	case geom.ArcKind:
		if d, ok := arcPathData(p); ok {
			canvas.Path(d, style)
			return
		}
		// Collinear arcs degrade to their chord.
		canvas.Line(p.P0.X, p.P0.Y, p.P2.X, p.P2.Y, style)
	case geom.CurveKind:
		canvas.Qbez(p.P0.X, p.P0.Y, p.P1.X, p.P1.Y, p.P2.X, p.P2.Y, style)
	default:
		canvas.Line(p.P0.X, p.P0.Y, p.P1.X, p.P1.Y, style)
	}
}

// arcPathData writes an arc as an SVG A command. The sweep flag follows
// the document convention: positive sweep is clockwise on screen.
func arcPathData(p geom.Path) (string, bool) {
	_, radius, sweep, ok := p.ArcGeometry()
	if !ok {
		return "", false
	}
	large, sweepFlag := 0, 0
	if math.Abs(sweep) > math.Pi {
		large = 1
	}
	if sweep > 0 {
		sweepFlag = 1
	}
	return fmt.Sprintf("M%g,%g A%g,%g 0 %d %d %g,%g",
		p.P0.X, p.P0.Y, radius, radius, large, sweepFlag, p.P2.X, p.P2.Y), true
}

func (r *Renderer) drawSeams(canvas *svg.SVG, offsets []seam.OffsetPath) {
	const style = "fill:none;stroke:#999999;stroke-width:0.25;stroke-dasharray:2,2"
	for _, o := range offsets {
		if o.IsExact() {
			drawPath(canvas, o.Exact, style)
			continue
		}
		xs := make([]float64, len(o.Points))
		ys := make([]float64, len(o.Points))
		for i, pt := range o.Points {
			xs[i] = pt.X
			ys[i] = pt.Y
		}
		canvas.Polyline(xs, ys, style)
	}
}

// drawHoles marks stitch holes on drawable shapes: circles for round
// holes, short strokes along the stored angle for slits.
func (r *Renderer) drawHoles(canvas *svg.SVG, doc *model.Document, drawable map[string]bool) int {
	count := 0
	for _, h := range doc.Holes {
		if !drawable[h.ShapeID] {
			continue
		}
		switch h.Kind {
		case model.SlitHole:
			half := geom.VecFromAngle(h.AngleDeg * math.Pi / 180).Mul(r.opts.SlitLengthMm / 2)
			p0 := h.Point.Translate(half.Negate())
			p1 := h.Point.Translate(half)
			canvas.Line(p0.X, p0.Y, p1.X, p1.Y, "stroke:#000000;stroke-width:0.3")
		default:
			canvas.Circle(h.Point.X, h.Point.Y, r.opts.HoleRadiusMm,
				"fill:none;stroke:#000000;stroke-width:0.2")
		}
		count++
	}
	return count
}
