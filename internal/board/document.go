package board

import (
	"encoding/json"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/google/uuid"
)

// documentVersion is bumped when the on-disk layout changes shape.
const documentVersion = 1

// Document is the JSON snapshot of a board. It records the committed
// visible strokes in commit order with their primitives; undo history does
// not persist, so a loaded board starts with everything active and redo
// empty.
type Document struct {
	ID         string      `json:"id"`
	Version    int         `json:"version"`
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	Background string      `json:"background"`
	Strokes    []DocStroke `json:"strokes,omitempty"`
}

// DocStroke is one committed stroke in a document.
type DocStroke struct {
	Primitives []DocPrimitive `json:"primitives"`
}

// DocPrimitive is one primitive in a document.
type DocPrimitive struct {
	Kind  string `json:"kind"`
	From  [2]int `json:"from"`
	To    [2]int `json:"to"`
	Color string `json:"color"`
	Width int    `json:"width"`
}

// Snapshot captures the board's visible strokes as a document with a fresh
// document id.
func Snapshot(b *Board) *Document {
	w, h := b.Canvas.Size()
	doc := &Document{
		ID:         uuid.NewString(),
		Version:    documentVersion,
		Width:      w,
		Height:     h,
		Background: FormatColor(b.Canvas.Background()),
	}
	for _, id := range b.Ledger.Active() {
		var ds DocStroke
		for _, p := range b.Canvas.Primitives(id) {
			ds.Primitives = append(ds.Primitives, DocPrimitive{
				Kind:  p.Kind.String(),
				From:  [2]int{p.Geom.From.X, p.Geom.From.Y},
				To:    [2]int{p.Geom.To.X, p.Geom.To.Y},
				Color: FormatColor(p.Style.Color),
				Width: p.Style.Width,
			})
		}
		if len(ds.Primitives) > 0 {
			doc.Strokes = append(doc.Strokes, ds)
		}
	}
	return doc
}

// EncodeDocument writes the board snapshot as indented JSON.
func EncodeDocument(w io.Writer, b *Board) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Snapshot(b))
}

// DecodeDocument reads a document and replays it into a fresh board. Each
// stored stroke is begun, filled and committed in order, so the resulting
// ledger can undo them newest-first.
func DecodeDocument(r io.Reader) (*Board, error) {
	var doc Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode board document: %w", err)
	}
	if doc.Version > documentVersion {
		return nil, fmt.Errorf("board document version %d is newer than this build understands", doc.Version)
	}
	if doc.Width < 1 || doc.Height < 1 {
		return nil, fmt.Errorf("board document has invalid size %dx%d", doc.Width, doc.Height)
	}
	bg, err := ParseColor(doc.Background)
	if err != nil {
		return nil, fmt.Errorf("board document background: %w", err)
	}

	b := New(WithSize(doc.Width, doc.Height), WithBackground(bg))
	for si, ds := range doc.Strokes {
		id := b.Ledger.Begin()
		for pi, dp := range ds.Primitives {
			kind, err := ParseKind(dp.Kind)
			if err != nil {
				return nil, fmt.Errorf("stroke %d primitive %d: %w", si, pi, err)
			}
			col, err := ParseColor(dp.Color)
			if err != nil {
				return nil, fmt.Errorf("stroke %d primitive %d: %w", si, pi, err)
			}
			width := dp.Width
			if width < MinBrushWidth || width > MaxBrushWidth {
				return nil, fmt.Errorf("stroke %d primitive %d: width %d out of range", si, pi, width)
			}
			geom := Geometry{
				From: image.Pt(dp.From[0], dp.From[1]),
				To:   image.Pt(dp.To[0], dp.To[1]),
			}
			b.Canvas.CreatePrimitive(kind, geom, Style{Color: col, Width: width}, id)
			b.Ledger.Record(id)
		}
		b.Ledger.Commit(id)
	}
	return b, nil
}

// SaveDocument writes the board to path as a JSON document.
func SaveDocument(path string, b *Board) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save board: %w", err)
	}
	if err := EncodeDocument(f, b); err != nil {
		f.Close()
		return fmt.Errorf("save board: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("save board: %w", err)
	}
	return nil
}

// LoadDocument reads a board document from path.
func LoadDocument(path string) (*Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open board: %w", err)
	}
	defer f.Close()
	b, err := DecodeDocument(f)
	if err != nil {
		return nil, fmt.Errorf("open board %s: %w", path, err)
	}
	return b, nil
}
