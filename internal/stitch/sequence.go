package stitch

import (
	"slices"
	"sort"

	"patternsmith/internal/model"
)

// Resequence renumbers the shape's holes by parametric position along its
// path, ascending, or descending when reverse is set. Prior sequence
// breaks ties ascending in either direction, so coincident holes keep
// their relative order and running forward, then backward, then forward
// restores the original numbering. Holes of other shapes pass through
// unchanged.
func Resequence(holes []model.StitchHole, shape model.Shape, reverse bool) []model.StitchHole {
	out := slices.Clone(holes)
	idxs := ownedIndexes(out, shape.ID)
	if len(idxs) == 0 {
		return out
	}
	path := shape.Path()

	type ranked struct {
		idx  int
		t    float64
		prev int
	}
	rs := make([]ranked, len(idxs))
	for i, idx := range idxs {
		t, _ := path.Nearest(out[idx].Point)
		rs[i] = ranked{idx: idx, t: t, prev: out[idx].Sequence}
	}
	sort.SliceStable(rs, func(a, b int) bool {
		if rs[a].t != rs[b].t {
			if reverse {
				return rs[a].t > rs[b].t
			}
			return rs[a].t < rs[b].t
		}
		return rs[a].prev < rs[b].prev
	})
	for rank, r := range rs {
		out[r.idx].Sequence = rank
	}
	return out
}

// FixOrderFromSelected renumbers the shape's holes as one cyclic run
// starting at the selected hole: it becomes sequence 0, later holes
// follow in (reverse-)path order, and holes before it wrap to the end.
// An unknown selected id degrades to a plain [Resequence].
func FixOrderFromSelected(holes []model.StitchHole, shape model.Shape, selectedID string, reverse bool) []model.StitchHole {
	out := Resequence(holes, shape, reverse)
	idxs := ownedIndexes(out, shape.ID)
	n := len(idxs)
	if n == 0 {
		return out
	}
	selRank := -1
	for _, i := range idxs {
		if out[i].ID == selectedID {
			selRank = out[i].Sequence
			break
		}
	}
	if selRank < 0 {
		return out
	}
	for _, i := range idxs {
		out[i].Sequence = (out[i].Sequence - selRank + n) % n
	}
	return out
}

// SelectNext returns the hole following the current one in stitching
// order on the same shape, cycling past the last back to the first. The
// second return is false when the current id is unknown.
func SelectNext(holes []model.StitchHole, currentID string) (model.StitchHole, bool) {
	cur := -1
	for i := range holes {
		if holes[i].ID == currentID {
			cur = i
			break
		}
	}
	if cur < 0 {
		return model.StitchHole{}, false
	}

	next, first := -1, -1
	for _, i := range ownedIndexes(holes, holes[cur].ShapeID) {
		if first < 0 || holes[i].Sequence < holes[first].Sequence {
			first = i
		}
		if holes[i].Sequence > holes[cur].Sequence &&
			(next < 0 || holes[i].Sequence < holes[next].Sequence) {
			next = i
		}
	}
	if next < 0 {
		next = first
	}
	return holes[next], true
}

// NormalizeSequences renumbers every shape's holes densely from 0,
// keeping their current order (by sequence, document order for
// duplicates). This is the repair pass after bulk mutation: paste,
// import, deletion.
func NormalizeSequences(holes []model.StitchHole) []model.StitchHole {
	out := slices.Clone(holes)
	byShape := make(map[string][]int)
	var order []string
	for i, h := range out {
		if _, ok := byShape[h.ShapeID]; !ok {
			order = append(order, h.ShapeID)
		}
		byShape[h.ShapeID] = append(byShape[h.ShapeID], i)
	}
	for _, shapeID := range order {
		idxs := byShape[shapeID]
		sort.SliceStable(idxs, func(a, b int) bool {
			return out[idxs[a]].Sequence < out[idxs[b]].Sequence
		})
		for rank, i := range idxs {
			out[i].Sequence = rank
		}
	}
	return out
}

func ownedIndexes(holes []model.StitchHole, shapeID string) []int {
	var idxs []int
	for i := range holes {
		if holes[i].ShapeID == shapeID {
			idxs = append(idxs, i)
		}
	}
	return idxs
}
