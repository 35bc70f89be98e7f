// Package ui runs the whiteboard window: a shiny event loop that feeds
// pointer input to the board router, paints the canvas with its toolbar
// chrome, and hands finished sketches to the save, clipboard, and
// analysis actions.
package ui

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"path/filepath"
	"sync"
	"time"
	"unicode"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/inkboard/internal/board"
	"github.com/example/inkboard/internal/clipboard"
	"github.com/example/inkboard/internal/config"
	"github.com/example/inkboard/internal/export"
	"github.com/example/inkboard/internal/judge"
	"github.com/example/inkboard/internal/notify"
)

// UI owns one whiteboard window.
type UI struct {
	Board    *board.Board
	Config   *config.Config
	Output   string
	Title    string
	Notifier *notify.Notifier
	Judge    *judge.Dispatcher

	updateCh chan struct{}

	onClose   func()
	closeOnce sync.Once
}

// Option modifies a UI during creation.
type Option func(*UI)

// WithBoard sets the board shown in the window.
func WithBoard(b *board.Board) Option { return func(u *UI) { u.Board = b } }

// WithConfig sets the configuration the window reads its palette,
// widths, and save directory from.
func WithConfig(cfg *config.Config) Option { return func(u *UI) { u.Config = cfg } }

// WithOutput sets a fixed output file path used when saving. When empty,
// saves go to a timestamped file under the configured save directory.
func WithOutput(out string) Option { return func(u *UI) { u.Output = out } }

// WithTitle overrides the window title.
func WithTitle(title string) Option { return func(u *UI) { u.Title = title } }

// WithNotifier sets the desktop notifier used after save, copy, and
// analysis actions.
func WithNotifier(n *notify.Notifier) Option { return func(u *UI) { u.Notifier = n } }

// WithDispatcher sets the analysis dispatcher the judge action submits to.
func WithDispatcher(d *judge.Dispatcher) Option { return func(u *UI) { u.Judge = d } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(u *UI) { u.onClose = fn } }

// New creates a UI with the provided options.
func New(opts ...Option) *UI {
	u := &UI{updateCh: make(chan struct{}, 1)}
	for _, o := range opts {
		o(u)
	}
	if u.Config == nil {
		u.Config = config.New()
	}
	if u.Board == nil {
		u.Board = board.New(
			board.WithSize(u.Config.BoardWidth, u.Config.BoardHeight),
			board.WithBackground(u.Config.Background),
			board.WithBrushColor(u.Config.BrushColor),
			board.WithBrushWidth(u.Config.BrushWidth),
		)
	}
	return u
}

// NotifyBoardChanged requests a repaint when the board mutates outside the
// window's own event handling, such as from the interactive prompt.
func (u *UI) NotifyBoardChanged() {
	if u == nil || u.updateCh == nil {
		return
	}
	select {
	case u.updateCh <- struct{}{}:
	default:
	}
}

func (u *UI) notifySave(path string) {
	if u == nil || u.Notifier == nil {
		return
	}
	u.Notifier.Save(path)
}

func (u *UI) notifyCopy(detail string) {
	if u == nil || u.Notifier == nil {
		return
	}
	u.Notifier.Copy(detail)
}

func (u *UI) notifyAnalysis(detail string, img image.Image) {
	if u == nil || u.Notifier == nil {
		return
	}
	u.Notifier.Analysis(detail, img)
}

func (u *UI) notifyClose() {
	u.closeOnce.Do(func() {
		if u.onClose != nil {
			u.onClose()
		}
	})
}

// Run executes the UI loop using shiny's driver.
func (u *UI) Run() { driver.Main(u.Main) }

// analysisEvent carries a finished analysis outcome into the event loop.
type analysisEvent struct {
	outcome judge.Outcome
}

// savePath decides where a save action writes. An explicit output path
// wins; otherwise each save gets a fresh timestamped name so repeated
// saves never clobber earlier ones.
func (u *UI) savePath() string {
	if u.Output != "" {
		return u.Output
	}
	dir := u.Config.SaveDir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, time.Now().Format("board-20060102-150405.png"))
}

func (u *UI) Main(s screen.Screen) {
	sess := u.Board.Session
	router := u.Board.Router
	canvas := u.Board.Canvas
	bw, bh := canvas.Size()

	// Ensure the toolbar is wide enough to fit the program title and all
	// tool button labels so the UI contents are not clipped on start up.
	meas := &font.Drawer{Face: basicfont.Face7x13}
	max := meas.MeasureString("Inkboard").Ceil() + 8
	for _, lbl := range []string{"F:Free", "L:Line", "X:Rect", "O:Ellipse", "E:Eraser"} {
		if w := meas.MeasureString(lbl).Ceil() + 8; w > max {
			max = w
		}
	}
	if max > toolbarWidth {
		toolbarWidth = max
	}

	palette := ensureColor(append([]color.RGBA(nil), u.Config.Palette...), sess.BrushColor())
	widths := ensureWidth(append([]int(nil), defaultBrushWidths...), sess.Width())

	title := u.Title
	if title == "" {
		title = ProgramTitle
	}
	winW := bw + toolbarWidth
	winH := bh + headerHeight + bottomHeight
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: winW, Height: winH, Title: title})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()

	defer u.notifyClose()

	if u.updateCh != nil {
		done := make(chan struct{})
		go func() {
			for {
				select {
				case <-u.updateCh:
					w.Send(paint.Event{})
				case <-done:
					return
				}
			}
		}()
		defer close(done)
	}

	if u.Judge != nil {
		done := make(chan struct{})
		go func() {
			for {
				select {
				case out := <-u.Judge.Results():
					w.Send(analysisEvent{outcome: out})
				case <-done:
					return
				}
			}
		}()
		defer close(done)
	}

	var b screen.Buffer
	newBuffer := func() {
		if b != nil {
			b.Release()
		}
		b, err = s.NewBuffer(image.Point{winW, winH})
		if err != nil {
			log.Fatalf("new buffer: %v", err)
		}
	}
	newBuffer()
	defer func() { b.Release() }()

	frame := image.NewRGBA(image.Rect(0, 0, bw, bh))
	canvasRect := image.Rectangle{Min: canvasOrigin(), Max: canvasOrigin().Add(image.Pt(bw, bh))}

	var message string
	var messageUntil time.Time
	quit := false

	resetHover()

	keyboardAction = map[KeyShortcut]string{}
	actions := map[string]func(){}

	register := func(name string, keys KeyboardShortcuts, fn func()) {
		actions[name] = fn
		if keys != nil {
			for _, sc := range keys.KeyboardShortcuts() {
				keyboardAction[sc] = name
			}
		}
	}

	handleShortcut := func(action string) {
		if fn, ok := actions[action]; ok {
			fn()
		}
		w.Send(paint.Event{})
	}

	toolButtons = []*CacheButton{
		{Button: &ToolButton{label: "F:Free", mode: board.ModeFreehand}},
		{Button: &ToolButton{label: "L:Line", mode: board.ModeLine}},
		{Button: &ToolButton{label: "X:Rect", mode: board.ModeRect}},
		{Button: &ToolButton{label: "O:Ellipse", mode: board.ModeEllipse}},
		{Button: &ToolButton{label: "E:Eraser", eraser: true}},
	}
	for _, cb := range toolButtons {
		tb, ok := cb.Button.(*ToolButton)
		if !ok {
			continue
		}
		t := tb
		tb.onSelect = func() {
			if t.eraser {
				sess.ToggleEraser()
				return
			}
			sess.SetMode(t.mode)
		}
	}

	register("save", shortcutList{{Rune: 's', Modifiers: key.ModControl}, {Rune: 's'}}, func() {
		path, err := export.WriteFile(u.savePath(), canvas.Rasterize())
		if err != nil {
			log.Printf("save: %v", err)
			return
		}
		u.notifySave(path)
		message = fmt.Sprintf("saved %s", path)
		log.Print(message)
		messageUntil = time.Now().Add(2 * time.Second)
	})

	register("copy", shortcutList{{Rune: 'c', Modifiers: key.ModControl}, {Rune: 'c'}}, func() {
		if err := clipboard.WriteImage(canvas.Rasterize()); err != nil {
			log.Printf("copy: %v", err)
			return
		}
		u.notifyCopy("sketch")
		message = "image copied to clipboard"
		log.Print(message)
		messageUntil = time.Now().Add(2 * time.Second)
	})

	register("judge", shortcutList{{Rune: 'j'}}, func() {
		if u.Judge == nil {
			message = judge.ErrNotConfigured.Error()
			messageUntil = time.Now().Add(4 * time.Second)
			return
		}
		if _, err := u.Judge.Submit(canvas.Rasterize()); err != nil {
			if errors.Is(err, judge.ErrNotConfigured) {
				message = err.Error()
			} else {
				log.Printf("judge: %v", err)
				message = fmt.Sprintf("analysis failed: %v", err)
			}
			messageUntil = time.Now().Add(4 * time.Second)
			return
		}
		message = "judging your sketch"
		messageUntil = time.Now().Add(2 * time.Second)
	})

	register("undo", shortcutList{{Rune: 'z', Modifiers: key.ModControl}, {Rune: 'z'}}, func() {
		router.Undo()
	})

	register("redo", shortcutList{{Rune: 'y', Modifiers: key.ModControl}, {Rune: 'y'}}, func() {
		router.Redo()
	})

	register("clear", shortcutList{{Rune: 'k'}}, func() {
		router.Clear()
	})

	register("quit", shortcutList{{Rune: 'q'}}, func() {
		quit = true
	})

	for !quit {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			if e.WidthPx != winW || e.HeightPx != winH {
				winW = e.WidthPx
				winH = e.HeightPx
				newBuffer()
			}
			w.Send(paint.Event{})
		case analysisEvent:
			out := e.outcome
			if out.Err != nil {
				if errors.Is(out.Err, judge.ErrModelWarmingUp) {
					message = out.Err.Error()
				} else {
					log.Printf("analyze: %v", out.Err)
					message = fmt.Sprintf("analysis failed: %v", out.Err)
				}
				messageUntil = time.Now().Add(4 * time.Second)
				w.Send(paint.Event{})
				continue
			}
			message = out.Verdict.Message()
			messageUntil = time.Now().Add(6 * time.Second)
			detail := out.Verdict.Label
			if detail == "" {
				detail = "sketch"
			}
			u.notifyAnalysis(detail, canvas.Rasterize())
			w.Send(paint.Event{})
		case paint.Event:
			draw.Draw(b.RGBA(), b.RGBA().Bounds(),
				&image.Uniform{color.RGBA{200, 200, 200, 255}}, image.Point{}, draw.Src)
			canvas.RasterizeInto(frame)
			draw.Draw(b.RGBA(), canvasRect, frame, image.Point{}, draw.Src)

			status := fmt.Sprintf("%s %dpx", sess.Mode(), sess.Width())
			if sess.Eraser() {
				status += " eraser"
			}
			if u.Judge != nil && u.Judge.Pending() > 0 {
				status += "  judging..."
			}
			drawHeader(b.RGBA(), winW, status)
			drawToolbar(b.RGBA(), winH, sess.Mode(), sess.Eraser(),
				palette, colorIndex(palette, sess.BrushColor()),
				widths, widthIndex(widths, sess.Width()))
			drawShortcuts(b.RGBA(), winW, winH, handleShortcut)

			if message != "" && time.Now().Before(messageUntil) {
				drawMessage(b.RGBA(), winW, winH, message)
			}

			w.Upload(image.Point{}, b, b.Bounds())
			w.Publish()
		case mouse.Event:
			if message != "" && time.Now().Before(messageUntil) && e.Direction == mouse.DirPress {
				messageUntil = time.Time{}
				w.Send(paint.Event{})
				continue
			}
			ep := image.Pt(int(e.X), int(e.Y))

			// A stroke in progress owns the pointer wherever it goes, so
			// dragging across the chrome keeps extending it and the
			// release always lands.
			if router.Drawing() && e.Direction != mouse.DirPress {
				bp := ep.Sub(canvasOrigin())
				if e.Direction == mouse.DirRelease && e.Button == mouse.ButtonLeft {
					router.PointerUp(bp)
				} else {
					router.PointerMove(bp)
				}
				w.Send(paint.Event{})
				continue
			}

			if ep.Y >= winH-bottomHeight {
				hoverShortcut = -1
				for i := range shortcutRects {
					if ep.In(shortcutRects[i].rect) {
						hoverShortcut = i
						if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
							shortcutRects[i].Activate()
						}
						break
					}
				}
				if e.Direction == mouse.DirNone {
					w.Send(paint.Event{})
				}
				continue
			}
			if ep.Y < headerHeight {
				continue
			}

			if ep.X < toolbarWidth {
				reg, idx := toolbarHit(ep.X, ep.Y, len(toolButtons), len(palette), len(widths))
				press := e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress
				hoverTool, hoverPalette, hoverWidth = -1, -1, -1
				switch reg {
				case hitTool:
					hoverTool = idx
					if press {
						toolButtons[idx].Activate()
					}
				case hitPalette:
					hoverPalette = idx
					if press {
						sess.SetBrushColor(palette[idx])
						sess.SetEraser(false)
					}
				case hitWidth:
					hoverWidth = idx
					if press {
						sess.SetWidth(widths[idx])
					}
				}
				if press || e.Direction == mouse.DirNone {
					w.Send(paint.Event{})
				}
				continue
			}

			if ep.In(canvasRect) && e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
				router.PointerDown(ep.Sub(canvasOrigin()))
				w.Send(paint.Event{})
			}
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			ks := KeyShortcut{Rune: unicode.ToLower(e.Rune), Code: e.Code, Modifiers: e.Modifiers}
			if action, ok := keyboardAction[ks]; ok {
				handleShortcut(action)
				continue
			}
			switch e.Rune {
			case 'f', 'F':
				sess.SetMode(board.ModeFreehand)
				w.Send(paint.Event{})
			case 'l', 'L':
				sess.SetMode(board.ModeLine)
				w.Send(paint.Event{})
			case 'x', 'X':
				sess.SetMode(board.ModeRect)
				w.Send(paint.Event{})
			case 'o', 'O':
				sess.SetMode(board.ModeEllipse)
				w.Send(paint.Event{})
			case 'e', 'E':
				sess.ToggleEraser()
				w.Send(paint.Event{})
			case '1', '2', '3', '4', '5', '6', '7', '8', '9':
				idx := int(e.Rune - '1')
				if idx < len(palette) {
					sess.SetBrushColor(palette[idx])
					sess.SetEraser(false)
					w.Send(paint.Event{})
				}
			case '+', '=':
				stepWidth(sess, widths, 1)
				w.Send(paint.Event{})
			case '-':
				stepWidth(sess, widths, -1)
				w.Send(paint.Event{})
			}
		}
	}
}

// keyboardAction maps a keyboard shortcut to the action name.
var keyboardAction = map[KeyShortcut]string{}

// stepWidth moves the brush width up or down the toolbar's width list,
// starting from the largest entry not above the current width.
func stepWidth(sess *board.Session, widths []int, delta int) {
	cur := sess.Width()
	idx := 0
	for i, w := range widths {
		if w <= cur {
			idx = i
		}
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(widths) {
		idx = len(widths) - 1
	}
	sess.SetWidth(widths[idx])
}
