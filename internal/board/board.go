package board

import "image/color"

// Default board dimensions, matching the window the desktop UI opens with.
const (
	DefaultWidth  = 1200
	DefaultHeight = 800
)

// Board bundles the drawing state for one window: the session the toolbar
// mutates, the ledger that answers undo/redo, the canvas that owns
// geometry, and the router that connects pointer input to all three.
type Board struct {
	Session *Session
	Ledger  *Ledger
	Canvas  *Canvas
	Router  *Router
}

// Option adjusts a board during New.
type Option func(*Board)

// WithSize sets the canvas dimensions in pixels.
func WithSize(width, height int) Option {
	return func(b *Board) {
		bg := b.Canvas.Background()
		b.Canvas = NewCanvas(width, height, bg)
	}
}

// WithBackground sets the background color on both the canvas and the
// session, keeping the eraser in step with what the board shows.
func WithBackground(col color.RGBA) Option {
	return func(b *Board) {
		b.Canvas.SetBackground(col)
		b.Session.SetBackground(col)
	}
}

// WithBrushColor sets the initial brush color.
func WithBrushColor(col color.RGBA) Option {
	return func(b *Board) { b.Session.SetBrushColor(col) }
}

// WithBrushWidth sets the initial brush width, clamped like SetWidth.
func WithBrushWidth(w int) Option {
	return func(b *Board) { b.Session.SetWidth(w) }
}

// New returns a ready board with the default white background and black
// brush, adjusted by the options in order.
func New(opts ...Option) *Board {
	session := NewSession()
	b := &Board{
		Session: session,
		Ledger:  NewLedger(),
		Canvas:  NewCanvas(DefaultWidth, DefaultHeight, session.Background()),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.Router = NewRouter(b.Session, b.Ledger, b.Canvas)
	return b
}

// SetBackground recolors the board background at runtime: canvas repaint
// color and the session's eraser color together.
func (b *Board) SetBackground(col color.RGBA) {
	b.Canvas.SetBackground(col)
	b.Session.SetBackground(col)
}
