package domain

// History is a linear undo/redo stack of full annotation snapshots. The zero
// value is not ready for use; call NewHistory.
type History struct {
	snapshots []PageAnnotationSet
	pointer   int
}

func NewHistory() History {
	return History{snapshots: []PageAnnotationSet{NewPageAnnotationSet()}}
}

// Push discards every snapshot after the pointer, appends a copy of
// snapshot and moves the pointer to it.
func (h *History) Push(snapshot PageAnnotationSet) {
	if len(h.snapshots) == 0 {
		*h = NewHistory()
	}

	h.snapshots = append(h.snapshots[:h.pointer+1], snapshot.Clone())
	h.pointer = len(h.snapshots) - 1
}

func (h *History) Undo() (PageAnnotationSet, bool) {
	if !h.CanUndo() {
		return nil, false
	}

	h.pointer--
	return h.snapshots[h.pointer].Clone(), true
}

func (h *History) Redo() (PageAnnotationSet, bool) {
	if !h.CanRedo() {
		return nil, false
	}

	h.pointer++
	return h.snapshots[h.pointer].Clone(), true
}

func (h History) CanUndo() bool {
	return h.pointer > 0
}

func (h History) CanRedo() bool {
	return h.pointer < len(h.snapshots)-1
}

func (h History) Current() PageAnnotationSet {
	if len(h.snapshots) == 0 {
		return NewPageAnnotationSet()
	}
	return h.snapshots[h.pointer].Clone()
}

func (h History) Len() int {
	return len(h.snapshots)
}

func (h History) Pointer() int {
	return h.pointer
}
