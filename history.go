package main

// editorState is one undo entry: the whole document plus layout config.
type editorState struct {
	doc    Document
	config DiagramConfig
}

type History struct {
	undoStack []editorState
	redoStack []editorState
}

func (h *History) push(s editorState) {
	h.undoStack = append(h.undoStack, s)
	if len(h.undoStack) > historyLimit {
		h.undoStack = append([]editorState(nil), h.undoStack[len(h.undoStack)-historyLimit:]...)
	}
	h.redoStack = h.redoStack[:0]
}

func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }
func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

func (e *Editor) snapshot() editorState {
	return editorState{doc: e.doc.Clone(), config: e.config}
}

// record saves the state as it is before a mutation.
func (e *Editor) record() {
	e.history.push(e.snapshot())
}

// Undo restores the previous state. A selection that no longer resolves is
// dropped on the next read.
func (e *Editor) Undo() bool {
	h := &e.history
	if len(h.undoStack) == 0 {
		return false
	}
	last := len(h.undoStack) - 1
	state := h.undoStack[last]
	h.undoStack = h.undoStack[:last]
	h.redoStack = append(h.redoStack, e.snapshot())
	e.doc, e.config = state.doc, state.config
	return true
}

func (e *Editor) Redo() bool {
	h := &e.history
	if len(h.redoStack) == 0 {
		return false
	}
	last := len(h.redoStack) - 1
	state := h.redoStack[last]
	h.redoStack = h.redoStack[:last]
	h.undoStack = append(h.undoStack, e.snapshot())
	e.doc, e.config = state.doc, state.config
	return true
}

// Reset replaces everything and forgets history, as for a new or loaded file.
func (e *Editor) Reset(doc Document, cfg DiagramConfig) {
	e.doc = doc.Clone()
	e.config = cfg
	e.selection = Selection{}
	e.history = History{}
}
