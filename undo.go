package main

const historyLimit = 100

// Action is one undoable gesture.
type Action struct {
	Type   ActionType
	Before Snapshot
	After  Snapshot
}

// History keeps the undo and redo stacks of one sketch.
type History struct {
	undoStack []Action
	redoStack []Action
}

// Record pushes a gesture if it changed anything and reports whether it
// did. The redo stack is dropped.
func (h *History) Record(t ActionType, before, after Snapshot) bool {
	if before.Equal(after) {
		return false
	}
	h.undoStack = append(h.undoStack, Action{Type: t, Before: before, After: after})
	if len(h.undoStack) > historyLimit {
		h.undoStack = h.undoStack[len(h.undoStack)-historyLimit:]
	}
	h.redoStack = nil
	return true
}

func (h *History) Undo(sk *Sketch) (Action, bool) {
	if len(h.undoStack) == 0 {
		return Action{}, false
	}

	lastIndex := len(h.undoStack) - 1
	action := h.undoStack[lastIndex]
	h.undoStack = h.undoStack[:lastIndex]

	sk.Restore(action.Before)
	h.redoStack = append(h.redoStack, action)
	return action, true
}

func (h *History) Redo(sk *Sketch) (Action, bool) {
	if len(h.redoStack) == 0 {
		return Action{}, false
	}

	lastIndex := len(h.redoStack) - 1
	action := h.redoStack[lastIndex]
	h.redoStack = h.redoStack[:lastIndex]

	sk.Restore(action.After)
	h.undoStack = append(h.undoStack, action)
	return action, true
}

// Clear forgets everything. Used when custom ids shift, since old
// snapshots may name assets that moved.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}

func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }
func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

func (a ActionType) String() string {
	switch a {
	case ActionCycle:
		return "cycle"
	case ActionPaint:
		return "paint"
	case ActionClear:
		return "clear"
	case ActionLock:
		return "lock"
	case ActionSample:
		return "sample"
	case ActionShuffle:
		return "shuffle"
	case ActionClearCanvas:
		return "clear canvas"
	case ActionResize:
		return "resize"
	case ActionToggleShape:
		return "toggle shape"
	case ActionPalette:
		return "palette"
	}
	return "edit"
}

func (m *model) undo() {
	if action, ok := m.history.Undo(m.sketch); ok {
		m.successMessage = "Undid " + action.Type.String()
	}
}

func (m *model) redo() {
	if action, ok := m.history.Redo(m.sketch); ok {
		m.successMessage = "Redid " + action.Type.String()
	}
}

// edit runs fn as one undoable action.
func (m *model) edit(t ActionType, fn func() error) error {
	before := m.sketch.Snapshot()
	err := fn()
	m.history.Record(t, before, m.sketch.Snapshot())
	return err
}
