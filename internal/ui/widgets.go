package ui

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"

	"github.com/example/inkboard/internal/board"
	"github.com/example/inkboard/internal/raster"
)

// KeyShortcut is one keyboard combination bound to an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// KeyboardShortcuts exposes the combinations that trigger an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

// shortcutList satisfies KeyboardShortcuts for a literal slice.
type shortcutList []KeyShortcut

func (s shortcutList) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

// ButtonState selects which visual rendering a button draws.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// buttonFill returns the chrome gray for a button state.
func buttonFill(state ButtonState) color.RGBA {
	switch state {
	case StateHover:
		return color.RGBA{180, 180, 180, 255}
	case StatePressed:
		return color.RGBA{150, 150, 150, 255}
	default:
		return color.RGBA{200, 200, 200, 255}
	}
}

// drawButtonLabel letters a button with the small UI face.
func drawButtonLabel(dst *image.RGBA, label string, dot image.Point) {
	d := &font.Drawer{Dst: dst, Src: image.Black, Face: basicfont.Face7x13,
		Dot: fixed.P(dot.X, dot.Y)}
	d.DrawString(label)
}

// Button is one interactive element of the window chrome.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// CacheButton memoizes the wrapped button's rendering per state, so chrome
// repaints cost a blit instead of a redraw. Changing the rectangle drops
// the cache.
type CacheButton struct {
	Button
	cache [3]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	rect := cb.Button.Rect()
	if cb.cache[state] == nil {
		img := image.NewRGBA(rect)
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, rect, cb.cache[state], rect.Min, draw.Src)
}

func (cb *CacheButton) Rect() image.Rectangle { return cb.Button.Rect() }

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [3]*image.RGBA{}
	}
}

func (cb *CacheButton) Activate() { cb.Button.Activate() }

// Shortcut is a labelled cell in the bottom action bar.
type Shortcut struct {
	label  string
	action func()
	rect   image.Rectangle
}

func (s *Shortcut) Draw(dst *image.RGBA, state ButtonState) {
	draw.Draw(dst, s.rect, &image.Uniform{buttonFill(state)}, image.Point{}, draw.Src)
	raster.Rect(dst, s.rect, color.Black, 1)
	drawButtonLabel(dst, s.label, image.Pt(s.rect.Min.X+2, s.rect.Min.Y+14))
}

func (s *Shortcut) Rect() image.Rectangle { return s.rect }

func (s *Shortcut) SetRect(r image.Rectangle) { s.rect = r }

func (s *Shortcut) Activate() {
	if s.action != nil {
		s.action()
	}
}

// ToolButton selects a drawing mode, or toggles the eraser when eraser is
// set.
type ToolButton struct {
	label    string
	mode     board.Mode
	eraser   bool
	rect     image.Rectangle
	onSelect func()
}

func (tb *ToolButton) Draw(dst *image.RGBA, state ButtonState) {
	draw.Draw(dst, tb.rect, &image.Uniform{buttonFill(state)}, image.Point{}, draw.Src)
	drawButtonLabel(dst, tb.label, image.Pt(tb.rect.Min.X+4, tb.rect.Min.Y+16))
}

func (tb *ToolButton) Rect() image.Rectangle { return tb.rect }

func (tb *ToolButton) SetRect(r image.Rectangle) { tb.rect = r }

func (tb *ToolButton) Activate() {
	if tb.onSelect != nil {
		tb.onSelect()
	}
}
