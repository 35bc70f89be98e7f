package board

import (
	"fmt"
	"image/color"
	"strings"
)

// Mode selects how pointer motion is interpreted during a stroke.
type Mode int

const (
	// ModeFreehand paints a segment for every pointer move.
	ModeFreehand Mode = iota
	// ModeLine previews and commits a single straight line.
	ModeLine
	// ModeRect previews and commits a rectangle outline.
	ModeRect
	// ModeEllipse previews and commits an ellipse outline inscribed in the
	// dragged rectangle.
	ModeEllipse
)

// String returns the canonical tool name used by scripts and the CLI.
func (m Mode) String() string {
	switch m {
	case ModeLine:
		return "line"
	case ModeRect:
		return "rect"
	case ModeEllipse:
		return "ellipse"
	default:
		return "freehand"
	}
}

// ParseMode maps a user-supplied tool name to a Mode. Aliases common in
// other drawing tools are accepted.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "freehand", "pen", "brush":
		return ModeFreehand, nil
	case "line":
		return ModeLine, nil
	case "rect", "rectangle":
		return ModeRect, nil
	case "ellipse", "circle", "oval":
		return ModeEllipse, nil
	}
	return ModeFreehand, fmt.Errorf("unknown drawing mode %q", s)
}

// Brush width bounds. SetWidth clamps rather than rejecting so a slider or
// script can push past the edge without error handling.
const (
	MinBrushWidth     = 1
	MaxBrushWidth     = 30
	DefaultBrushWidth = 4
)

// Session holds the user-adjustable drawing state: selected tool, brush
// color and width, the board background the eraser paints with, and the
// eraser toggle. It is an explicit value passed to the router rather than
// process-wide state, and it is read at primitive-emission time, so color
// or width changes mid-gesture affect only what is emitted afterwards.
type Session struct {
	mode       Mode
	brush      color.RGBA
	background color.RGBA
	width      int
	eraser     bool
}

// NewSession returns a session with the default black brush on white.
func NewSession() *Session {
	return &Session{
		brush:      color.RGBA{A: 0xFF},
		background: color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		width:      DefaultBrushWidth,
	}
}

// Mode returns the selected drawing mode.
func (s *Session) Mode() Mode { return s.mode }

// SetMode selects the drawing mode. It takes effect on the next stroke; a
// stroke already in progress keeps the mode it was latched with.
func (s *Session) SetMode(m Mode) { s.mode = m }

// BrushColor returns the configured brush color, ignoring the eraser flag.
func (s *Session) BrushColor() color.RGBA { return s.brush }

// SetBrushColor selects a new brush color. Picking a color switches the
// eraser off, matching the toolbar behaviour where choosing a color means
// the user wants to paint with it.
func (s *Session) SetBrushColor(c color.RGBA) {
	s.brush = c
	s.eraser = false
}

// Background returns the board background color, which is also what the
// eraser paints with.
func (s *Session) Background() color.RGBA { return s.background }

// SetBackground replaces the background color. Strokes already painted keep
// the color they were emitted with.
func (s *Session) SetBackground(c color.RGBA) { s.background = c }

// Width returns the brush width in pixels.
func (s *Session) Width() int { return s.width }

// SetWidth sets the brush width, clamped to [MinBrushWidth, MaxBrushWidth].
func (s *Session) SetWidth(w int) {
	if w < MinBrushWidth {
		w = MinBrushWidth
	}
	if w > MaxBrushWidth {
		w = MaxBrushWidth
	}
	s.width = w
}

// Eraser reports whether the eraser is active.
func (s *Session) Eraser() bool { return s.eraser }

// SetEraser switches the eraser on or off.
func (s *Session) SetEraser(on bool) { s.eraser = on }

// ToggleEraser flips the eraser and returns the new state.
func (s *Session) ToggleEraser() bool {
	s.eraser = !s.eraser
	return s.eraser
}

// PaintColor returns the color the next primitive should be painted with:
// the background when erasing, the brush color otherwise.
func (s *Session) PaintColor() color.RGBA {
	if s.eraser {
		return s.background
	}
	return s.brush
}

// Style snapshots the paint color and width for one primitive emission.
func (s *Session) Style() Style {
	return Style{Color: s.PaintColor(), Width: s.width}
}
