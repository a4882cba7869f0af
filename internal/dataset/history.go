package dataset

// undoEntry captures an image's tag list as it was before a save.
type undoEntry struct {
	image string
	tags  []string
}

// undoHistory is a bounded FIFO of undo entries: pushing past capacity
// evicts the oldest entry, so only the most recent maxDepth saves remain
// recoverable.
type undoHistory struct {
	entries  []undoEntry
	maxDepth int
}

func newUndoHistory(maxDepth int) *undoHistory {
	if maxDepth < 1 {
		maxDepth = 1
	}
	return &undoHistory{maxDepth: maxDepth}
}

func (h *undoHistory) push(image string, tags []string) {
	snapshot := make([]string, len(tags))
	copy(snapshot, tags)
	h.entries = append(h.entries, undoEntry{image: image, tags: snapshot})
	if len(h.entries) > h.maxDepth {
		h.entries = h.entries[1:]
	}
}

func (h *undoHistory) pop() (undoEntry, bool) {
	if len(h.entries) == 0 {
		return undoEntry{}, false
	}
	entry := h.entries[len(h.entries)-1]
	h.entries = h.entries[:len(h.entries)-1]
	return entry, true
}

func (h *undoHistory) depth() int {
	return len(h.entries)
}

func (h *undoHistory) reset() {
	h.entries = nil
}
