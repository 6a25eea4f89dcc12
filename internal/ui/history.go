package ui

// snapshot is an editor state that undo and redo can return to.
type snapshot struct {
	text string
	row  int
}

// history is a bounded undo/redo stack of whole-buffer snapshots.
type history struct {
	undo  []snapshot
	redo  []snapshot
	limit int
}

func newHistory(limit int) history {
	return history{limit: limit}
}

// record stores the state before an edit and invalidates redo.
func (h *history) record(prev snapshot) {
	if h.limit <= 0 {
		return
	}
	h.undo = append(h.undo, prev)
	if len(h.undo) > h.limit {
		h.undo = h.undo[len(h.undo)-h.limit:]
	}
	h.redo = nil
}

func (h *history) canUndo() bool { return len(h.undo) > 0 }

func (h *history) canRedo() bool { return len(h.redo) > 0 }

// stepBack pops the last undo entry, pushing cur onto redo.
func (h *history) stepBack(cur snapshot) (snapshot, bool) {
	if len(h.undo) == 0 {
		return snapshot{}, false
	}
	i := len(h.undo) - 1
	prev := h.undo[i]
	h.undo = h.undo[:i]
	h.redo = append(h.redo, cur)
	return prev, true
}

// stepForward pops the last redo entry, pushing cur onto undo.
func (h *history) stepForward(cur snapshot) (snapshot, bool) {
	if len(h.redo) == 0 {
		return snapshot{}, false
	}
	i := len(h.redo) - 1
	next := h.redo[i]
	h.redo = h.redo[:i]
	h.undo = append(h.undo, cur)
	if len(h.undo) > h.limit {
		h.undo = h.undo[len(h.undo)-h.limit:]
	}
	return next, true
}

func (h *history) reset() {
	h.undo = nil
	h.redo = nil
}
