package board

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/example/inkboard/internal/raster"
)

// Kind identifies the renderable form of a primitive.
type Kind int

const (
	// KindSegment is one freehand fragment between two pointer samples.
	KindSegment Kind = iota
	// KindLine is a straight line from the line tool.
	KindLine
	// KindRect is a rectangle outline through both drag corners.
	KindRect
	// KindEllipse is an ellipse outline inscribed in the drag rectangle.
	KindEllipse
)

// String returns the name used in board documents.
func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindRect:
		return "rect"
	case KindEllipse:
		return "ellipse"
	default:
		return "segment"
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "segment":
		return KindSegment, nil
	case "line":
		return KindLine, nil
	case "rect":
		return KindRect, nil
	case "ellipse":
		return KindEllipse, nil
	}
	return KindSegment, fmt.Errorf("unknown primitive kind %q", s)
}

// Geometry is the two defining points of a primitive in canvas pixels:
// segment and line endpoints, or opposite corners for rect and ellipse.
type Geometry struct {
	From image.Point
	To   image.Point
}

// Rect returns the canonical rectangle spanned by the two points.
func (g Geometry) Rect() image.Rectangle {
	return image.Rect(g.From.X, g.From.Y, g.To.X, g.To.Y)
}

// Style is the paint state captured when a primitive was emitted.
type Style struct {
	Color color.RGBA
	Width int
}

// Handle identifies one primitive inside a canvas. Handles are assigned in
// insertion order, which is also paint order.
type Handle int

// Primitive is one atomic renderable drawing object.
type Primitive struct {
	Handle Handle
	Stroke StrokeID
	Kind   Kind
	Geom   Geometry
	Style  Style
}

// Canvas owns all primitive geometry for a board: an arena of primitives
// tagged with their stroke id, plus a per-stroke visibility flag that undo
// and redo flip. Geometry is never mutated after creation; hiding a stroke
// is the entire undo mechanism. The canvas also holds the single transient
// preview primitive shape tools show while dragging.
//
// A Canvas must only be used from the goroutine that owns the board.
type Canvas struct {
	width      int
	height     int
	background color.RGBA

	nextHandle Handle
	prims      []Primitive
	hidden     map[StrokeID]bool

	preview    Primitive
	hasPreview bool
}

// NewCanvas returns an empty canvas of the given pixel size filled with the
// background color. Sizes below 1x1 are raised to it.
func NewCanvas(width, height int, background color.RGBA) *Canvas {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Canvas{
		width:      width,
		height:     height,
		background: background,
		nextHandle: 1,
		hidden:     make(map[StrokeID]bool),
	}
}

// Size returns the canvas dimensions in pixels.
func (c *Canvas) Size() (width, height int) { return c.width, c.height }

// Bounds returns the canvas pixel rectangle anchored at the origin.
func (c *Canvas) Bounds() image.Rectangle { return image.Rect(0, 0, c.width, c.height) }

// Background returns the current background color.
func (c *Canvas) Background() color.RGBA { return c.background }

// SetBackground changes the background used on the next rasterization.
// Existing primitives keep the colors they were painted with, including
// eraser strokes painted in the old background.
func (c *Canvas) SetBackground(col color.RGBA) { c.background = col }

// CreatePrimitive appends a primitive tagged with the given stroke and
// returns its handle. Visibility is a property of the stroke tag, so the
// new primitive is painted iff its stroke is visible.
func (c *Canvas) CreatePrimitive(kind Kind, geom Geometry, style Style, stroke StrokeID) Handle {
	h := c.nextHandle
	c.nextHandle++
	c.prims = append(c.prims, Primitive{
		Handle: h,
		Stroke: stroke,
		Kind:   kind,
		Geom:   geom,
		Style:  style,
	})
	return h
}

// SetVisibility shows or hides every primitive tagged with the stroke.
func (c *Canvas) SetVisibility(stroke StrokeID, visible bool) {
	if visible {
		delete(c.hidden, stroke)
		return
	}
	c.hidden[stroke] = true
}

// Visible reports whether the stroke's primitives are painted.
func (c *Canvas) Visible(stroke StrokeID) bool { return !c.hidden[stroke] }

// DeleteAll removes every primitive, every visibility flag and the preview.
func (c *Canvas) DeleteAll() {
	c.prims = c.prims[:0]
	c.hidden = make(map[StrokeID]bool)
	c.hasPreview = false
}

// SetPreview replaces the transient preview primitive. At most one preview
// exists at a time; each call swaps the previous one out.
func (c *Canvas) SetPreview(kind Kind, geom Geometry, style Style) {
	c.preview = Primitive{Kind: kind, Geom: geom, Style: style}
	c.hasPreview = true
}

// ClearPreview discards the preview primitive if present.
func (c *Canvas) ClearPreview() { c.hasPreview = false }

// Preview returns the current preview primitive, if any.
func (c *Canvas) Preview() (Primitive, bool) { return c.preview, c.hasPreview }

// Len returns the number of committed primitives in the arena.
func (c *Canvas) Len() int { return len(c.prims) }

// Strokes returns the distinct stroke ids present in the arena in first
// primitive order.
func (c *Canvas) Strokes() []StrokeID {
	seen := make(map[StrokeID]bool, len(c.prims))
	var out []StrokeID
	for i := range c.prims {
		id := c.prims[i].Stroke
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// Primitives returns copies of the primitives tagged with the stroke, in
// paint order.
func (c *Canvas) Primitives(stroke StrokeID) []Primitive {
	var out []Primitive
	for i := range c.prims {
		if c.prims[i].Stroke == stroke {
			out = append(out, c.prims[i])
		}
	}
	return out
}

// Rasterize paints the canvas into a fresh RGBA image: background first,
// then visible primitives in insertion order, then the preview on top.
func (c *Canvas) Rasterize() *image.RGBA {
	img := image.NewRGBA(c.Bounds())
	c.RasterizeInto(img)
	return img
}

// RasterizeInto paints the canvas into the caller's buffer, which must have
// the canvas bounds. The UI blit path reuses one buffer across frames.
func (c *Canvas) RasterizeInto(img *image.RGBA) {
	raster.Fill(img, img.Bounds(), c.background)
	for i := range c.prims {
		p := &c.prims[i]
		if c.hidden[p.Stroke] {
			continue
		}
		paintPrimitive(img, p)
	}
	if c.hasPreview {
		paintPrimitive(img, &c.preview)
	}
}

func paintPrimitive(img *image.RGBA, p *Primitive) {
	switch p.Kind {
	case KindRect:
		raster.Rect(img, p.Geom.Rect(), p.Style.Color, p.Style.Width)
	case KindEllipse:
		raster.Ellipse(img, p.Geom.Rect(), p.Style.Color, p.Style.Width)
	default:
		raster.Line(img, p.Geom.From, p.Geom.To, p.Style.Color, p.Style.Width)
	}
}
