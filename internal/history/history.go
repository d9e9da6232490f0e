// Package history is the snapshot undo/redo engine. The document is
// copied whole once per committed change, and content signatures gate
// commits, so dragging a handle or re-saving identical state does not
// flood the stacks.
package history

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"slices"

	"github.com/jinzhu/copier"

	"patternsmith/internal/model"
)

// DefaultCap bounds the past stack when no cap is configured.
const DefaultCap = 120

// Snapshot is an immutable deep copy of the document tagged with its
// content signature.
type Snapshot struct {
	State     *model.Document
	Signature string
}

// Snap deep-copies the document into a snapshot. The copy shares no
// structure with the live document, so later edits cannot reach stored
// history.
func Snap(doc *model.Document) Snapshot {
	var clone model.Document
	if err := copier.CopyWithOption(&clone, doc, copier.Option{DeepCopy: true}); err != nil {
		slog.Error("history: snapshot copy failed", "error", err)
		return Snapshot{}
	}
	return Snapshot{State: &clone, Signature: Signature(doc)}
}

// Signature returns the structural content signature of the document:
// the SHA-256 of its JSON form, in hex. The document serializes from
// slices only, so equal content yields equal signatures regardless of
// which copy produced them.
func Signature(doc *model.Document) string {
	data, err := json.Marshal(doc)
	if err != nil {
		slog.Error("history: signature encoding failed", "error", err)
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// History holds the bounded past and future stacks.
type History struct {
	past    []Snapshot
	future  []Snapshot
	cap     int
	lastSig string
}

// New returns a history bounded to cap snapshots. Caps below 1 fall
// back to [DefaultCap].
func New(cap int) *History {
	if cap < 1 {
		cap = DefaultCap
	}
	return &History{cap: cap}
}

// Commit records the transition from previous to next: previous goes
// onto the past stack and any redo branch is invalidated. A next whose
// signature matches the last committed state is dropped, and false
// reports that nothing was recorded.
func (h *History) Commit(previous, next Snapshot) bool {
	if h.lastSig == "" {
		h.lastSig = previous.Signature
	}
	if next.Signature == h.lastSig {
		return false
	}
	h.pushPast(previous)
	h.future = nil
	h.lastSig = next.Signature
	return true
}

// Undo exchanges current for the most recent past snapshot. false means
// there is nothing to undo. Restoring moves the committed signature
// back, so re-committing the restored state records nothing.
func (h *History) Undo(current Snapshot) (Snapshot, bool) {
	if len(h.past) == 0 {
		return Snapshot{}, false
	}
	top := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append(h.future, current)
	h.lastSig = top.Signature
	return top, true
}

// Redo exchanges current for the most recent future snapshot. false
// means there is nothing to redo.
func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	if len(h.future) == 0 {
		return Snapshot{}, false
	}
	top := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	h.pushPast(current)
	h.lastSig = top.Signature
	return top, true
}

// CanUndo reports whether an undo step is available.
func (h *History) CanUndo() bool {
	return len(h.past) > 0
}

// CanRedo reports whether a redo step is available.
func (h *History) CanRedo() bool {
	return len(h.future) > 0
}

// pushPast appends to the past stack, evicting the oldest entries past
// the cap.
func (h *History) pushPast(s Snapshot) {
	h.past = append(h.past, s)
	if len(h.past) > h.cap {
		h.past = slices.Delete(h.past, 0, len(h.past)-h.cap)
	}
}
