package model

// SweepReport counts what a consistency sweep removed or cleared.
type SweepReport struct {
	Shapes      int `json:"shapes"`
	Holes       int `json:"holes"`
	Seams       int `json:"seams"`
	FoldLines   int `json:"foldLines"`
	Constraints int `json:"constraints"`
	ClearedRefs int `json:"clearedRefs"`
}

// Total returns the number of removed records plus cleared references.
func (r SweepReport) Total() int {
	return r.Shapes + r.Holes + r.Seams + r.FoldLines + r.Constraints + r.ClearedRefs
}

// Sweep removes every record whose reference target no longer exists:
// shapes of deleted layers (cascade), holes, seam allowances and fold
// lines of deleted shapes, constraints referencing deleted shapes or
// layers, and duplicate seam allowances beyond the one allowed per shape.
// Dangling group and line-type references on shapes are cleared, as are
// group links that dangle or close a cycle (possible in hand-edited
// files).
//
// Runs after every structural mutation. Pruning is silent; the report is
// for the shell's logging.
func Sweep(d *Document) SweepReport {
	var report SweepReport

	layers := make(map[string]bool, len(d.Layers))
	for _, l := range d.Layers {
		layers[l.ID] = true
	}

	shapes := d.Shapes[:0]
	for _, s := range d.Shapes {
		if layers[s.LayerID] {
			shapes = append(shapes, s)
		} else {
			report.Shapes++
		}
	}
	d.Shapes = shapes

	alive := make(map[string]bool, len(d.Shapes))
	for _, s := range d.Shapes {
		alive[s.ID] = true
	}

	holes := d.Holes[:0]
	for _, h := range d.Holes {
		if alive[h.ShapeID] {
			holes = append(holes, h)
		} else {
			report.Holes++
		}
	}
	d.Holes = holes

	seamOwners := make(map[string]bool)
	seams := d.Seams[:0]
	for _, sa := range d.Seams {
		if !alive[sa.ShapeID] || seamOwners[sa.ShapeID] {
			report.Seams++
			continue
		}
		seamOwners[sa.ShapeID] = true
		seams = append(seams, sa)
	}
	d.Seams = seams

	folds := d.FoldLines[:0]
	for _, f := range d.FoldLines {
		if alive[f.ShapeID] {
			folds = append(folds, f)
		} else {
			report.FoldLines++
		}
	}
	d.FoldLines = folds

	constraints := d.Constraints[:0]
	for _, c := range d.Constraints {
		ok := alive[c.ShapeID]
		switch c.Kind {
		case EdgeOffsetConstraint:
			ok = ok && layers[c.ReferenceLayerID]
		case AlignConstraint:
			ok = ok && alive[c.ReferenceShapeID]
		default:
			ok = false
		}
		if ok {
			constraints = append(constraints, c)
		} else {
			report.Constraints++
		}
	}
	d.Constraints = constraints

	groups := make(map[string]bool, len(d.Groups))
	for _, g := range d.Groups {
		groups[g.ID] = true
	}
	lineTypes := make(map[string]bool, len(d.LineTypes))
	for _, lt := range d.LineTypes {
		lineTypes[lt.ID] = true
	}
	for i := range d.Shapes {
		if d.Shapes[i].GroupID != "" && !groups[d.Shapes[i].GroupID] {
			d.Shapes[i].GroupID = ""
			report.ClearedRefs++
		}
		if d.Shapes[i].LineTypeID != "" && !lineTypes[d.Shapes[i].LineTypeID] {
			d.Shapes[i].LineTypeID = ""
			report.ClearedRefs++
		}
	}

	for i := range d.Groups {
		link := d.Groups[i].LinkedToID
		if link == "" {
			continue
		}
		if !groups[link] || groupLinkCycles(d, d.Groups[i].ID) {
			d.Groups[i].LinkedToID = ""
			report.ClearedRefs++
		}
	}

	return report
}

// groupLinkCycles reports whether following links from the given group
// returns to it.
func groupLinkCycles(d *Document, startID string) bool {
	seen := map[string]bool{startID: true}
	g, ok := d.GroupByID(startID)
	for ok && g.LinkedToID != "" {
		if seen[g.LinkedToID] {
			return true
		}
		seen[g.LinkedToID] = true
		g, ok = d.GroupByID(g.LinkedToID)
	}
	return false
}
