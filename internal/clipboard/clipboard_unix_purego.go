//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Without cgo the package speaks the X11 selection protocol itself: one
// hidden window owns the CLIPBOARD selection and answers conversion
// requests for as long as the process lives.

var (
	setupOnce    sync.Once
	setupErr     error
	errNoDisplay = errors.New("clipboard needs DISPLAY or WAYLAND_DISPLAY set")
	owner        *xselection
)

func setup() error {
	setupOnce.Do(func() {
		if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			setupErr = errNoDisplay
			return
		}
		sel, err := dialSelection()
		if err != nil {
			setupErr = err
			return
		}
		owner = sel
	})
	return setupErr
}

// WriteImage publishes the image to the clipboard as PNG.
func WriteImage(img image.Image) error {
	if err := setup(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	return owner.offer(content{kind: contentImage, data: buf.Bytes()})
}

// ReadImage decodes a PNG from the clipboard.
func ReadImage() (image.Image, error) {
	if err := setup(); err != nil {
		return nil, err
	}
	data, err := owner.fetch(owner.atoms.png)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("no image on the clipboard")
	}
	return png.Decode(bytes.NewReader(data))
}

// WriteText publishes text to the clipboard.
func WriteText(text string) error {
	if err := setup(); err != nil {
		return err
	}
	return owner.offer(content{kind: contentText, data: []byte(text)})
}

// ReadText returns the clipboard's text contents, preferring UTF8_STRING
// and falling back to the legacy STRING target.
func ReadText() (string, error) {
	if err := setup(); err != nil {
		return "", err
	}
	data, err := owner.fetch(owner.atoms.utf8)
	if err != nil {
		data, err = owner.fetch(xproto.AtomString)
		if err != nil {
			return "", err
		}
	}
	if len(data) == 0 {
		return "", errors.New("no text on the clipboard")
	}
	// Some owners terminate STRING data with a NUL.
	if data[len(data)-1] == 0 {
		data = data[:len(data)-1]
	}
	return string(data), nil
}

type contentKind int

const (
	contentNone contentKind = iota
	contentText
	contentImage
)

// content is what the owner window currently offers. Writing one kind
// replaces the other; the board never offers both at once.
type content struct {
	kind contentKind
	data []byte
}

type atomTable struct {
	clipboard xproto.Atom
	targets   xproto.Atom
	utf8      xproto.Atom
	textPlain xproto.Atom
	png       xproto.Atom
	property  xproto.Atom
}

// xselection is the process-wide selection owner: a 1x1 window that holds
// whatever was last written and serves SelectionRequest events from a
// background goroutine.
type xselection struct {
	conn  *xgb.Conn
	win   xproto.Window
	atoms atomTable

	mu   sync.RWMutex
	held content
}

func dialSelection() (*xselection, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	screen := xproto.Setup(conn).DefaultScreen(conn)
	win, err := xproto.NewWindowId(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	const mask = xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify
	err = xproto.CreateWindowChecked(conn, screen.RootDepth, win, screen.Root,
		0, 0, 1, 1, 0, xproto.WindowClassInputOutput, screen.RootVisual,
		xproto.CwEventMask, []uint32{mask}).Check()
	if err != nil {
		conn.Close()
		return nil, err
	}
	atoms, err := internAtoms(conn)
	if err != nil {
		xproto.DestroyWindow(conn, win)
		conn.Close()
		return nil, err
	}
	sel := &xselection{conn: conn, win: win, atoms: atoms}
	go sel.serve()
	return sel, nil
}

func internAtoms(conn *xgb.Conn) (atomTable, error) {
	names := []string{
		"CLIPBOARD",
		"TARGETS",
		"UTF8_STRING",
		"text/plain;charset=utf-8",
		"image/png",
		"INKBOARD_SELECTION",
	}
	got := make([]xproto.Atom, len(names))
	for i, name := range names {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			return atomTable{}, fmt.Errorf("intern atom %s: %w", name, err)
		}
		got[i] = reply.Atom
	}
	return atomTable{
		clipboard: got[0],
		targets:   got[1],
		utf8:      got[2],
		textPlain: got[3],
		png:       got[4],
		property:  got[5],
	}, nil
}

// offer replaces the held content and claims the CLIPBOARD selection.
func (x *xselection) offer(c content) error {
	x.mu.Lock()
	x.held = content{kind: c.kind, data: append([]byte(nil), c.data...)}
	x.mu.Unlock()
	return xproto.SetSelectionOwnerChecked(x.conn, x.win, x.atoms.clipboard, xproto.TimeCurrentTime).Check()
}

func (x *xselection) serve() {
	for {
		ev, err := x.conn.WaitForEvent()
		if err != nil {
			return
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			x.serveRequest(e)
		case xproto.SelectionClearEvent:
			x.mu.Lock()
			x.held = content{}
			x.mu.Unlock()
		}
	}
}

func (x *xselection) serveRequest(e xproto.SelectionRequestEvent) {
	prop := e.Property
	if prop == xproto.AtomNone {
		prop = e.Target
	}

	x.mu.RLock()
	held := x.held
	x.mu.RUnlock()

	typ, format, payload, ok := x.answer(e.Target, held)
	if ok {
		units := uint32(len(payload)) / uint32(format/8)
		xproto.ChangeProperty(x.conn, xproto.PropModeReplace, e.Requestor, prop,
			typ, format, units, payload)
	} else {
		prop = xproto.AtomNone
	}

	done := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  prop,
	}
	_ = xproto.SendEvent(x.conn, false, e.Requestor, 0, string(done.Bytes()))
}

// answer resolves one conversion target against the held content. A false
// return means the request is refused.
func (x *xselection) answer(target xproto.Atom, held content) (typ xproto.Atom, format byte, payload []byte, ok bool) {
	switch target {
	case x.atoms.targets:
		targets := []xproto.Atom{x.atoms.targets}
		switch held.kind {
		case contentText:
			targets = append(targets, x.atoms.utf8, xproto.AtomString, x.atoms.textPlain)
		case contentImage:
			targets = append(targets, x.atoms.png)
		}
		return xproto.AtomAtom, 32, encodeAtoms(targets), true
	case x.atoms.utf8, xproto.AtomString, x.atoms.textPlain:
		if held.kind != contentText {
			return 0, 0, nil, false
		}
		return x.atoms.utf8, 8, held.data, true
	case x.atoms.png:
		if held.kind != contentImage {
			return 0, 0, nil, false
		}
		return x.atoms.png, 8, held.data, true
	}
	return 0, 0, nil, false
}

// fetch asks the current selection owner to convert the clipboard to the
// target and reads the reply property. It uses its own short-lived
// connection so it never races the serve goroutine.
func (x *xselection) fetch(target xproto.Atom) ([]byte, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	screen := xproto.Setup(conn).DefaultScreen(conn)
	win, err := xproto.NewWindowId(conn)
	if err != nil {
		return nil, err
	}
	err = xproto.CreateWindowChecked(conn, 0, win, screen.Root,
		0, 0, 1, 1, 0, xproto.WindowClassInputOnly, 0,
		xproto.CwEventMask, []uint32{xproto.EventMaskPropertyChange}).Check()
	if err != nil {
		return nil, err
	}
	defer xproto.DestroyWindow(conn, win)

	if err := xproto.DeletePropertyChecked(conn, win, x.atoms.property).Check(); err != nil {
		return nil, err
	}
	err = xproto.ConvertSelectionChecked(conn, win, x.atoms.clipboard, target,
		x.atoms.property, xproto.TimeCurrentTime).Check()
	if err != nil {
		return nil, err
	}

	for {
		ev, err := conn.WaitForEvent()
		if err != nil {
			return nil, err
		}
		notify, isNotify := ev.(xproto.SelectionNotifyEvent)
		if !isNotify {
			continue
		}
		if notify.Property == xproto.AtomNone {
			return nil, errors.New("clipboard target unavailable")
		}
		if notify.Property != x.atoms.property {
			continue
		}
		reply, err := xproto.GetProperty(conn, false, win, x.atoms.property,
			xproto.GetPropertyTypeAny, 0, (1<<31)-1).Reply()
		if err != nil {
			return nil, err
		}
		return append([]byte(nil), reply.Value...), nil
	}
}

func encodeAtoms(atoms []xproto.Atom) []byte {
	buf := make([]byte, len(atoms)*4)
	for i, atom := range atoms {
		xgb.Put32(buf[i*4:], uint32(atom))
	}
	return buf
}
