package ui

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/inkboard/internal/board"
	"github.com/example/inkboard/internal/raster"
)

// ProgramTitle is the application name shown in the header bar and the
// default window title.
const ProgramTitle = "Inkboard"

const (
	headerHeight = 24
	bottomHeight = 24
)

var toolbarWidth = 48

var messageFace font.Face

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	messageFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 24, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
}

var toolButtons []*CacheButton
var shortcutRects []Shortcut
var paletteRects []image.Rectangle
var widthRects []image.Rectangle

var hoverTool = -1
var hoverPalette = -1
var hoverWidth = -1
var hoverShortcut = -1

func resetHover() {
	hoverTool = -1
	hoverPalette = -1
	hoverWidth = -1
	hoverShortcut = -1
}

// canvasOrigin is where the board's top-left corner lands in the window.
func canvasOrigin() image.Point { return image.Pt(toolbarWidth, headerHeight) }

// defaultBrushWidths are the width choices offered in the toolbar.
// ensureWidth splices in any configured width that is not already listed.
var defaultBrushWidths = []int{1, 2, 4, 6, 9, 14, 20, 30}

func ensureWidth(widths []int, w int) []int {
	if w < board.MinBrushWidth {
		w = board.MinBrushWidth
	}
	if w > board.MaxBrushWidth {
		w = board.MaxBrushWidth
	}
	for _, existing := range widths {
		if existing == w {
			return widths
		}
	}
	out := make([]int, 0, len(widths)+1)
	inserted := false
	for _, existing := range widths {
		if !inserted && w < existing {
			out = append(out, w)
			inserted = true
		}
		out = append(out, existing)
	}
	if !inserted {
		out = append(out, w)
	}
	return out
}

func ensureColor(palette []color.RGBA, col color.RGBA) []color.RGBA {
	for _, existing := range palette {
		if existing == col {
			return palette
		}
	}
	return append(palette, col)
}

func colorIndex(palette []color.RGBA, col color.RGBA) int {
	for i, existing := range palette {
		if existing == col {
			return i
		}
	}
	return -1
}

func widthIndex(widths []int, w int) int {
	for i, existing := range widths {
		if existing == w {
			return i
		}
	}
	return -1
}

// toolbarRegion identifies which block of the tool column a point falls in.
type toolbarRegion int

const (
	hitNone toolbarRegion = iota
	hitTool
	hitPalette
	hitWidth
)

// toolbarHit maps a window coordinate inside the tool column to the block
// and index it lands on. The column stacks tool buttons 24px tall, then a
// 4px gap, palette swatches on an 18px grid, another 4px gap, and width
// rows 16px tall.
func toolbarHit(x, y, tools, colors, widths int) (toolbarRegion, int) {
	pos := y - headerHeight
	if pos < 0 {
		return hitNone, -1
	}
	if idx := pos / 24; idx < tools {
		return hitTool, idx
	}
	pos -= tools * 24
	pos -= 4
	paletteCols := toolbarWidth / 18
	if paletteCols < 1 {
		paletteCols = 1
	}
	rows := (colors + paletteCols - 1) / paletteCols
	paletteHeight := rows * 18
	if pos >= 0 && pos < paletteHeight {
		colX := (x - 4) / 18
		if colX >= paletteCols {
			colX = paletteCols - 1
		}
		colY := pos / 18
		idx := colY*paletteCols + colX
		if idx >= 0 && idx < colors {
			return hitPalette, idx
		}
		return hitNone, -1
	}
	pos -= paletteHeight
	pos -= 4
	if pos >= 0 {
		if idx := pos / 16; idx < widths {
			return hitWidth, idx
		}
	}
	return hitNone, -1
}

func drawHeader(dst *image.RGBA, winW int, status string) {
	draw.Draw(dst, image.Rect(0, 0, winW, headerHeight),
		&image.Uniform{color.RGBA{220, 220, 220, 255}}, image.Point{}, draw.Src)
	title := &font.Drawer{Dst: dst, Src: image.Black, Face: basicfont.Face7x13,
		Dot: fixed.P(4, 16)}
	title.DrawString(ProgramTitle)
	if status != "" {
		d := &font.Drawer{Dst: dst, Src: image.Black, Face: basicfont.Face7x13,
			Dot: fixed.P(toolbarWidth+4, 16)}
		d.DrawString(status)
	}
}

func drawToolbar(dst *image.RGBA, winH int, mode board.Mode, eraser bool, palette []color.RGBA, colorIdx int, widths []int, widthIdx int) {
	draw.Draw(dst, image.Rect(0, headerHeight, toolbarWidth, winH-bottomHeight),
		&image.Uniform{color.RGBA{220, 220, 220, 255}}, image.Point{}, draw.Src)

	y := headerHeight
	for i, cb := range toolButtons {
		r := image.Rect(0, y, toolbarWidth, y+24)
		cb.SetRect(r)
		tb := cb.Button.(*ToolButton)
		state := StateDefault
		if (tb.eraser && eraser) || (!tb.eraser && tb.mode == mode) {
			state = StatePressed
		} else if i == hoverTool {
			state = StateHover
		}
		cb.Draw(dst, state)
		y += 24
	}

	// color palette below tools
	y += 4
	x := 4
	paletteRects = paletteRects[:0]
	for i, p := range palette {
		rect := image.Rect(x, y, x+16, y+16)
		draw.Draw(dst, rect, &image.Uniform{p}, image.Point{}, draw.Src)
		if i == hoverPalette {
			draw.Draw(dst, rect, &image.Uniform{color.RGBA{255, 255, 255, 80}}, image.Point{}, draw.Over)
		}
		if i == colorIdx {
			raster.Rect(dst, rect, color.White, 1)
			raster.Rect(dst, rect.Inset(-1), color.Black, 1)
		}
		paletteRects = append(paletteRects, rect)
		x += 18
		if x+16 > toolbarWidth {
			x = 4
			y += 18
		}
	}
	if x != 4 {
		y += 18
	}

	// width rows with a sample line in the active paint color
	y += 4
	sample := color.RGBA{0, 0, 0, 255}
	if colorIdx >= 0 && colorIdx < len(palette) {
		sample = palette[colorIdx]
	}
	widthRects = widthRects[:0]
	for i, w := range widths {
		rect := image.Rect(0, y, toolbarWidth, y+16)
		c := color.RGBA{200, 200, 200, 255}
		if i == widthIdx {
			c = color.RGBA{150, 150, 150, 255}
		} else if i == hoverWidth {
			c = color.RGBA{180, 180, 180, 255}
		}
		draw.Draw(dst, rect, &image.Uniform{c}, image.Point{}, draw.Src)
		d := &font.Drawer{Dst: dst, Src: image.Black, Face: basicfont.Face7x13, Dot: fixed.P(4, y+12)}
		d.DrawString(fmt.Sprintf("%d", w))
		lineY := y + 8
		raster.Line(dst, image.Pt(30, lineY), image.Pt(toolbarWidth-4, lineY), sample, w)
		widthRects = append(widthRects, rect)
		y += 16
	}
}

func drawShortcuts(dst *image.RGBA, winW, winH int, trigger func(string)) {
	rect := image.Rect(0, winH-bottomHeight, winW, winH)
	draw.Draw(dst, rect, &image.Uniform{color.RGBA{220, 220, 220, 255}}, image.Point{}, draw.Src)
	shortcutRects = shortcutRects[:0]
	shortcuts := []Shortcut{
		{label: "S:save", action: func() { trigger("save") }},
		{label: "C:copy", action: func() { trigger("copy") }},
		{label: "J:judge", action: func() { trigger("judge") }},
		{label: "Z:undo", action: func() { trigger("undo") }},
		{label: "Y:redo", action: func() { trigger("redo") }},
		{label: "K:clear", action: func() { trigger("clear") }},
		{label: "Q:quit", action: func() { trigger("quit") }},
	}
	x := toolbarWidth + 4
	y := winH - bottomHeight + 16
	meas := &font.Drawer{Face: basicfont.Face7x13}
	for i := range shortcuts {
		sc := &shortcuts[i]
		w := meas.MeasureString(sc.label).Ceil()
		sc.SetRect(image.Rect(x-2, y-14, x+w+2, y+4))
		state := StateDefault
		if i == hoverShortcut {
			state = StateHover
		}
		sc.Draw(dst, state)
		shortcutRects = append(shortcutRects, *sc)
		x = sc.rect.Max.X + 8
	}
}

// drawMessage centres the message over the window in a bordered box.
// Verdicts arrive as multiple lines, so each line is measured and drawn
// separately.
func drawMessage(dst *image.RGBA, winW, winH int, message string) {
	lines := strings.Split(message, "\n")
	d := &font.Drawer{Dst: dst, Src: image.Black, Face: messageFace}
	ascent := messageFace.Metrics().Ascent.Ceil()
	descent := messageFace.Metrics().Descent.Ceil()
	lineH := ascent + descent + 4
	maxW := 0
	for _, line := range lines {
		if w := d.MeasureString(line).Ceil(); w > maxW {
			maxW = w
		}
	}
	totalH := lineH * len(lines)
	px := (winW - maxW) / 2
	py := (winH - totalH) / 2
	box := image.Rect(px-8, py-8, px+maxW+8, py+totalH+8)
	draw.Draw(dst, box, &image.Uniform{color.RGBA{255, 255, 255, 230}}, image.Point{}, draw.Over)
	raster.Rect(dst, box, color.Black, 2)
	for i, line := range lines {
		d.Dot = fixed.P(px, py+i*lineH+ascent)
		d.DrawString(line)
	}
}
