package board

import "testing"

func sameIDs(got []StrokeID, want ...StrokeID) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func commitStroke(t *testing.T, l *Ledger) StrokeID {
	t.Helper()
	id := l.Begin()
	l.Record(id)
	if !l.Commit(id) {
		t.Fatalf("commit of stroke %d failed", id)
	}
	return id
}

func TestCommitOrdering(t *testing.T) {
	l := NewLedger()
	var want []StrokeID
	for i := 0; i < 5; i++ {
		want = append(want, commitStroke(t, l))
	}
	active := l.Active()
	if !sameIDs(active, want...) {
		t.Fatalf("active = %v, want %v", active, want)
	}
	for i, id := range active {
		if id != StrokeID(i+1) {
			t.Errorf("stroke %d has id %d, want %d", i, id, i+1)
		}
	}
}

func TestEmptyStrokeDiscarded(t *testing.T) {
	l := NewLedger()
	kept := commitStroke(t, l)

	id := l.Begin()
	if l.Commit(id) {
		t.Fatal("commit of a stroke with no primitives should report false")
	}
	if !sameIDs(l.Active(), kept) {
		t.Fatalf("active = %v, want [%d]", l.Active(), kept)
	}
	if len(l.Undone()) != 0 {
		t.Fatalf("undone = %v, want empty", l.Undone())
	}
}

func TestCommitClearsRedo(t *testing.T) {
	l := NewLedger()
	commitStroke(t, l)
	commitStroke(t, l)
	if _, ok := l.Undo(); !ok {
		t.Fatal("undo failed")
	}
	if !l.CanRedo() {
		t.Fatal("expected redo to be available after undo")
	}
	commitStroke(t, l)
	if l.CanRedo() {
		t.Fatalf("undone = %v, want empty after a new commit", l.Undone())
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	l := NewLedger()
	for i := 0; i < 3; i++ {
		commitStroke(t, l)
	}
	before := l.Active()

	id, ok := l.Undo()
	if !ok || id != 3 {
		t.Fatalf("Undo = (%d, %v), want (3, true)", id, ok)
	}
	if !sameIDs(l.Active(), 1, 2) {
		t.Fatalf("active after undo = %v", l.Active())
	}
	if !sameIDs(l.Undone(), 3) {
		t.Fatalf("undone after undo = %v", l.Undone())
	}

	id, ok = l.Redo()
	if !ok || id != 3 {
		t.Fatalf("Redo = (%d, %v), want (3, true)", id, ok)
	}
	if !sameIDs(l.Active(), before...) {
		t.Fatalf("active after redo = %v, want %v", l.Active(), before)
	}
	if len(l.Undone()) != 0 {
		t.Fatalf("undone after redo = %v, want empty", l.Undone())
	}
}

func TestUndoRedoOnEmptyHistory(t *testing.T) {
	l := NewLedger()
	if id, ok := l.Undo(); ok {
		t.Fatalf("Undo on empty ledger returned %d", id)
	}
	if id, ok := l.Redo(); ok {
		t.Fatalf("Redo on empty ledger returned %d", id)
	}
}

func TestClearThenUndoRedoNoop(t *testing.T) {
	l := NewLedger()
	commitStroke(t, l)
	commitStroke(t, l)
	l.Undo()
	l.Clear()

	if len(l.Active()) != 0 || len(l.Undone()) != 0 {
		t.Fatalf("after Clear: active=%v undone=%v", l.Active(), l.Undone())
	}
	if _, ok := l.Undo(); ok {
		t.Fatal("Undo after Clear should be a no-op")
	}
	if _, ok := l.Redo(); ok {
		t.Fatal("Redo after Clear should be a no-op")
	}
}

func TestIDsNotReusedAcrossClear(t *testing.T) {
	l := NewLedger()
	commitStroke(t, l)
	commitStroke(t, l)
	l.Clear()
	if id := commitStroke(t, l); id != 3 {
		t.Fatalf("first stroke after Clear has id %d, want 3", id)
	}
}

func TestRecordIgnoresStaleStroke(t *testing.T) {
	l := NewLedger()
	stale := l.Begin()
	current := l.Begin()
	l.Record(stale)
	if l.Commit(current) {
		t.Fatal("commit succeeded even though only a stale id was recorded")
	}
	if l.Commit(stale) {
		t.Fatal("commit of an abandoned stroke should be ignored")
	}
	if len(l.Active()) != 0 {
		t.Fatalf("active = %v, want empty", l.Active())
	}
}

func TestStrokeWalkthrough(t *testing.T) {
	l := NewLedger()

	s0 := l.Begin()
	for i := 0; i < 3; i++ {
		l.Record(s0)
	}
	if !l.Commit(s0) {
		t.Fatal("commit of recorded stroke failed")
	}
	if !sameIDs(l.Active(), s0) {
		t.Fatalf("active = %v, want [%d]", l.Active(), s0)
	}

	s1 := l.Begin()
	if l.Commit(s1) {
		t.Fatal("empty stroke should be discarded")
	}
	if !sameIDs(l.Active(), s0) {
		t.Fatalf("active = %v, want [%d]", l.Active(), s0)
	}

	if id, ok := l.Undo(); !ok || id != s0 {
		t.Fatalf("Undo = (%d, %v)", id, ok)
	}
	if len(l.Active()) != 0 || !sameIDs(l.Undone(), s0) {
		t.Fatalf("after undo: active=%v undone=%v", l.Active(), l.Undone())
	}

	if id, ok := l.Redo(); !ok || id != s0 {
		t.Fatalf("Redo = (%d, %v)", id, ok)
	}
	if !sameIDs(l.Active(), s0) || len(l.Undone()) != 0 {
		t.Fatalf("after redo: active=%v undone=%v", l.Active(), l.Undone())
	}
}
