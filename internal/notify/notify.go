// Package notify raises desktop notifications for board events. Delivery
// goes through the platform layer; failures are logged and never interrupt
// the drawing loop.
package notify

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/inkboard/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventSave fires after a board is written to disk.
	EventSave Event = "save"
	// EventCopy fires after an export lands on the clipboard.
	EventCopy Event = "copy"
	// EventAnalysis fires when an analysis verdict arrives.
	EventAnalysis Event = "analysis"
)

// EventPreference holds the body template for one event. The template
// receives the event detail as its single %s argument.
type EventPreference struct {
	Template string
}

// Preferences is the notification configuration: the title shared by all
// notifications plus the per-event templates.
type Preferences struct {
	Title  string
	Events map[Event]EventPreference
}

// DefaultPreferences returns the built-in notification texts.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "Inkboard",
		Events: map[Event]EventPreference{
			EventSave:     {Template: "Saved %s"},
			EventCopy:     {Template: "Copied %s to clipboard"},
			EventAnalysis: {Template: "Judged your sketch: %s"},
		},
	}
}

// envText maps override variables to the event whose template they replace.
var envText = map[string]Event{
	"INKBOARD_NOTIFY_SAVE_TEXT":     EventSave,
	"INKBOARD_NOTIFY_COPY_TEXT":     EventCopy,
	"INKBOARD_NOTIFY_ANALYSIS_TEXT": EventAnalysis,
}

// LoadPreferences returns the defaults with any INKBOARD_NOTIFY_* overrides
// from the environment applied. Empty variables leave the default in place.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("INKBOARD_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for key, event := range envText {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			prefs.Events[event] = EventPreference{Template: v}
		}
	}
	return prefs
}

// Notifier sends desktop notifications for the events that were switched
// on. Every event starts off, so a fresh Notifier is silent until Enable
// is called.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
}

// New creates a Notifier with its own copy of the preferences.
func New(prefs Preferences) *Notifier {
	return &Notifier{
		prefs:   Preferences{Title: prefs.Title, Events: maps.Clone(prefs.Events)},
		enabled: make(map[Event]bool),
	}
}

// Enable switches delivery for one event on or off.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	if n.enabled == nil {
		n.enabled = make(map[Event]bool)
	}
	n.enabled[event] = enabled
}

func (n *Notifier) on(event Event) bool {
	return n != nil && n.enabled[event]
}

// Save notifies that a board was written, showing the file itself as the
// notification icon when it is still there to read.
func (n *Notifier) Save(path string) {
	if !n.on(EventSave) {
		return
	}
	detail := strings.TrimSpace(path)
	var opts platform.Options
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, err := os.Stat(abs); err == nil {
			opts.IconPath = abs
		}
	}
	n.deliver(EventSave, detail, opts)
}

// Copy notifies that an export reached the clipboard.
func (n *Notifier) Copy(detail string) {
	if !n.on(EventCopy) {
		return
	}
	if strings.TrimSpace(detail) == "" {
		detail = "image"
	}
	n.deliver(EventCopy, detail, platform.Options{})
}

// Analysis notifies about a verdict, attaching a preview of the judged
// sketch when one is supplied.
func (n *Notifier) Analysis(detail string, img image.Image) {
	if !n.on(EventAnalysis) {
		return
	}
	var opts platform.Options
	if img != nil {
		path, cleanup, err := writePreview(img)
		if err != nil {
			log.Printf("notification preview: %v", err)
		} else {
			defer cleanup()
			opts.IconPath = path
		}
	}
	n.deliver(EventAnalysis, detail, opts)
}

// deliver formats the body and hands it to the platform layer. Callers have
// already checked that the event is enabled.
func (n *Notifier) deliver(event Event, detail string, opts platform.Options) {
	tmpl := strings.TrimSpace(n.prefs.Events[event].Template)
	if tmpl == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(tmpl, strings.TrimSpace(detail)))
	if body == "" {
		return
	}
	if err := platform.Notify(n.prefs.Title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}

// writePreview encodes the sketch to a temporary PNG the notification
// daemon can read as an icon. The cleanup removes it once delivery
// returns.
func writePreview(img image.Image) (string, func(), error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", nil, err
	}
	f, err := os.CreateTemp("", "inkboard-preview-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		os.Remove(path)
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", nil, err
	}
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("remove preview: %v", err)
		}
	}
	return path, cleanup, nil
}
