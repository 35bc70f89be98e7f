package board

// StrokeID identifies one stroke on a board. IDs increase monotonically for
// the lifetime of the board and are never reused, including across Clear.
// The zero value is not a valid id.
type StrokeID int

// Ledger tracks which strokes are visible and provides linear undo/redo.
// It stores identity and visibility only; geometry belongs to the Canvas.
// A Ledger must only be used from the goroutine that owns the board.
type Ledger struct {
	nextID StrokeID
	active []StrokeID
	undone []StrokeID

	pending  StrokeID
	recorded bool
}

// NewLedger returns an empty ledger whose first stroke will be id 1.
func NewLedger() *Ledger {
	return &Ledger{nextID: 1}
}

// Begin allocates the id for a new stroke and marks it pending. The history
// sequences are untouched until Commit. Beginning a new stroke abandons any
// previous pending stroke that was never committed.
func (l *Ledger) Begin() StrokeID {
	id := l.nextID
	l.nextID++
	l.pending = id
	l.recorded = false
	return id
}

// Record notes that the pending stroke produced at least one primitive.
// Records against anything other than the current pending stroke are ignored.
func (l *Ledger) Record(id StrokeID) {
	if id != 0 && id == l.pending {
		l.recorded = true
	}
}

// Commit finishes the pending stroke. A stroke with at least one recorded
// primitive is appended to the active sequence and the undone sequence is
// emptied, since new history invalidates redo. A stroke that never recorded
// a primitive is discarded silently and the sequences stay as they were.
// The return reports whether the stroke entered history.
func (l *Ledger) Commit(id StrokeID) bool {
	if id == 0 || id != l.pending {
		return false
	}
	recorded := l.recorded
	l.pending = 0
	l.recorded = false
	if !recorded {
		return false
	}
	l.active = append(l.active, id)
	l.undone = l.undone[:0]
	return true
}

// Undo moves the most recent active stroke to the undone sequence and
// returns its id so the caller can hide it. On empty history it is a
// defined no-op reporting false.
func (l *Ledger) Undo() (StrokeID, bool) {
	if len(l.active) == 0 {
		return 0, false
	}
	id := l.active[len(l.active)-1]
	l.active = l.active[:len(l.active)-1]
	l.undone = append(l.undone, id)
	return id, true
}

// Redo moves the most recently undone stroke back to the active sequence
// and returns its id so the caller can reveal it. On an empty undone
// sequence it is a defined no-op reporting false.
func (l *Ledger) Redo() (StrokeID, bool) {
	if len(l.undone) == 0 {
		return 0, false
	}
	id := l.undone[len(l.undone)-1]
	l.undone = l.undone[:len(l.undone)-1]
	l.active = append(l.active, id)
	return id, true
}

// Clear empties both history sequences and abandons any pending stroke.
// The caller is responsible for removing the rendered primitives. The id
// counter keeps counting so ids stay unique across clears.
func (l *Ledger) Clear() {
	l.active = l.active[:0]
	l.undone = l.undone[:0]
	l.pending = 0
	l.recorded = false
}

// Active returns a copy of the visible strokes in commit order.
func (l *Ledger) Active() []StrokeID {
	out := make([]StrokeID, len(l.active))
	copy(out, l.active)
	return out
}

// Undone returns a copy of the hidden strokes, oldest undo first.
func (l *Ledger) Undone() []StrokeID {
	out := make([]StrokeID, len(l.undone))
	copy(out, l.undone)
	return out
}

// CanUndo reports whether an active stroke is available to undo.
func (l *Ledger) CanUndo() bool { return len(l.active) > 0 }

// CanRedo reports whether an undone stroke is available to redo.
func (l *Ledger) CanRedo() bool { return len(l.undone) > 0 }
