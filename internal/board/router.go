package board

import "image"

// Router translates pointer events into ledger bookkeeping and canvas
// primitives. It enforces the gesture rules: freehand emits one segment per
// move with the style read at that moment, shape tools keep a single
// replaced preview until release, and the drawing mode is latched at
// pointer-down so switching tools mid-gesture cannot mix geometries.
//
// A Router must only be used from the goroutine that owns the board.
type Router struct {
	session *Session
	ledger  *Ledger
	canvas  *Canvas

	drawing bool
	mode    Mode
	stroke  StrokeID
	anchor  image.Point
	last    image.Point
	moved   bool
}

// NewRouter wires a router to the state it drives.
func NewRouter(session *Session, ledger *Ledger, canvas *Canvas) *Router {
	return &Router{session: session, ledger: ledger, canvas: canvas}
}

// Drawing reports whether a stroke is in progress.
func (r *Router) Drawing() bool { return r.drawing }

// CurrentStroke returns the id of the in-progress stroke, or 0.
func (r *Router) CurrentStroke() StrokeID {
	if !r.drawing {
		return 0
	}
	return r.stroke
}

// PointerDown starts a stroke at p. The session mode is latched here for
// the whole gesture. In freehand mode a zero-length segment is emitted
// immediately so that a tap without motion still leaves a dot and commits.
// A second down during an open gesture is ignored.
func (r *Router) PointerDown(p image.Point) {
	if r.drawing {
		return
	}
	r.drawing = true
	r.mode = r.session.Mode()
	r.stroke = r.ledger.Begin()
	r.anchor = p
	r.last = p
	r.moved = false

	if r.mode == ModeFreehand {
		r.canvas.CreatePrimitive(KindSegment, Geometry{From: p, To: p}, r.session.Style(), r.stroke)
		r.ledger.Record(r.stroke)
	}
}

// PointerMove extends the in-progress stroke to p. Freehand emits a
// committed segment from the previous point; shape modes replace the
// transient preview with the latched shape from the anchor to p. Moves
// without a preceding PointerDown are ignored.
func (r *Router) PointerMove(p image.Point) {
	if !r.drawing {
		return
	}
	r.moved = true
	switch r.mode {
	case ModeFreehand:
		r.canvas.CreatePrimitive(KindSegment, Geometry{From: r.last, To: p}, r.session.Style(), r.stroke)
		r.ledger.Record(r.stroke)
		r.last = p
	default:
		r.canvas.SetPreview(shapeKind(r.mode), Geometry{From: r.anchor, To: p}, r.session.Style())
		r.last = p
	}
}

// PointerUp finishes the stroke at p. Shape modes drop the preview and,
// when the gesture moved at all, emit the one committed primitive at its
// final geometry. The stroke is then committed; a gesture that never
// produced a primitive is discarded by the ledger. Releases without a
// preceding PointerDown are ignored.
func (r *Router) PointerUp(p image.Point) {
	if !r.drawing {
		return
	}
	if r.mode != ModeFreehand {
		r.canvas.ClearPreview()
		if r.moved {
			r.canvas.CreatePrimitive(shapeKind(r.mode), Geometry{From: r.anchor, To: p}, r.session.Style(), r.stroke)
			r.ledger.Record(r.stroke)
		}
	}
	r.ledger.Commit(r.stroke)
	r.drawing = false
	r.stroke = 0
	r.moved = false
}

// Undo hides the most recent visible stroke. It reports the affected id,
// or false when there is nothing to undo.
func (r *Router) Undo() (StrokeID, bool) {
	id, ok := r.ledger.Undo()
	if ok {
		r.canvas.SetVisibility(id, false)
	}
	return id, ok
}

// Redo reveals the most recently undone stroke. It reports the affected
// id, or false when there is nothing to redo.
func (r *Router) Redo() (StrokeID, bool) {
	id, ok := r.ledger.Redo()
	if ok {
		r.canvas.SetVisibility(id, true)
	}
	return id, ok
}

// Clear abandons any in-progress stroke and removes the entire drawing:
// ledger history and all rendered primitives.
func (r *Router) Clear() {
	r.ledger.Clear()
	r.canvas.DeleteAll()
	r.drawing = false
	r.stroke = 0
	r.moved = false
}

func shapeKind(m Mode) Kind {
	switch m {
	case ModeRect:
		return KindRect
	case ModeEllipse:
		return KindEllipse
	default:
		return KindLine
	}
}
