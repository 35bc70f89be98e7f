package ui

import (
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/inkboard/internal/board"
	"github.com/example/inkboard/internal/config"
	"github.com/example/inkboard/internal/raster"
)

func testToolButtons() []*CacheButton {
	return []*CacheButton{
		{Button: &ToolButton{label: "F:Free", mode: board.ModeFreehand}},
		{Button: &ToolButton{label: "L:Line", mode: board.ModeLine}},
		{Button: &ToolButton{label: "X:Rect", mode: board.ModeRect}},
		{Button: &ToolButton{label: "O:Ellipse", mode: board.ModeEllipse}},
		{Button: &ToolButton{label: "E:Eraser", eraser: true}},
	}
}

func TestToolbarHit(t *testing.T) {
	toolbarWidth = 71
	tools, colors, widths := 5, 4, 8

	cases := []struct {
		name string
		x, y int
		reg  toolbarRegion
		idx  int
	}{
		{"header is dead space", 10, 10, hitNone, -1},
		{"first tool", 10, headerHeight, hitTool, 0},
		{"last tool", 10, headerHeight + 4*24 + 23, hitTool, 4},
		{"palette first", 6, headerHeight + 5*24 + 4, hitPalette, 0},
		{"palette second column", 24, headerHeight + 5*24 + 4, hitPalette, 1},
		{"palette second row", 6, headerHeight + 5*24 + 4 + 18, hitPalette, 3},
		{"palette past last swatch", 24, headerHeight + 5*24 + 4 + 18, hitNone, -1},
		{"first width row", 10, headerHeight + 5*24 + 4 + 2*18 + 4, hitWidth, 0},
		{"last width row", 10, headerHeight + 5*24 + 4 + 2*18 + 4 + 7*16, hitWidth, 7},
		{"below width rows", 10, headerHeight + 5*24 + 4 + 2*18 + 4 + 8*16, hitNone, -1},
	}
	for _, tc := range cases {
		reg, idx := toolbarHit(tc.x, tc.y, tools, colors, widths)
		if reg != tc.reg || idx != tc.idx {
			t.Errorf("%s: toolbarHit(%d, %d) = (%d, %d), want (%d, %d)",
				tc.name, tc.x, tc.y, reg, idx, tc.reg, tc.idx)
		}
	}
}

func TestEnsureWidth(t *testing.T) {
	base := []int{1, 2, 4, 6, 9, 14, 20, 30}

	if got := ensureWidth(base, 4); len(got) != len(base) {
		t.Fatalf("present width grew the list: %v", got)
	}
	got := ensureWidth(base, 5)
	want := []int{1, 2, 4, 5, 6, 9, 14, 20, 30}
	if len(got) != len(want) {
		t.Fatalf("ensureWidth(5) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ensureWidth(5) = %v, want %v", got, want)
		}
	}
	if got := ensureWidth(base, 99); len(got) != len(base) {
		t.Fatalf("out of range width should clamp to an existing entry: %v", got)
	}
	if got := ensureWidth(base, 0); len(got) != len(base) {
		t.Fatalf("zero width should clamp to an existing entry: %v", got)
	}
}

func TestEnsureColor(t *testing.T) {
	red := color.RGBA{R: 0xFF, A: 0xFF}
	blue := color.RGBA{B: 0xFF, A: 0xFF}
	teal := color.RGBA{G: 0x80, B: 0x80, A: 0xFF}
	pal := []color.RGBA{red, blue}

	if got := ensureColor(pal, red); len(got) != 2 {
		t.Fatalf("present color grew the palette: %v", got)
	}
	got := ensureColor(pal, teal)
	if len(got) != 3 || got[2] != teal {
		t.Fatalf("missing color should append: %v", got)
	}
	if idx := colorIndex(got, teal); idx != 2 {
		t.Fatalf("colorIndex(teal) = %d, want 2", idx)
	}
	if idx := colorIndex(pal, teal); idx != -1 {
		t.Fatalf("colorIndex of an absent color = %d, want -1", idx)
	}
	if idx := widthIndex([]int{1, 2, 4}, 3); idx != -1 {
		t.Fatalf("widthIndex of an absent width = %d, want -1", idx)
	}
}

func TestStepWidth(t *testing.T) {
	widths := []int{1, 2, 4, 6, 9, 14, 20, 30}
	sess := board.NewSession()

	sess.SetWidth(4)
	stepWidth(sess, widths, 1)
	if got := sess.Width(); got != 6 {
		t.Fatalf("step up from 4 = %d, want 6", got)
	}
	stepWidth(sess, widths, -1)
	if got := sess.Width(); got != 4 {
		t.Fatalf("step down from 6 = %d, want 4", got)
	}

	sess.SetWidth(30)
	stepWidth(sess, widths, 1)
	if got := sess.Width(); got != 30 {
		t.Fatalf("step up at the top = %d, want 30", got)
	}
	sess.SetWidth(1)
	stepWidth(sess, widths, -1)
	if got := sess.Width(); got != 1 {
		t.Fatalf("step down at the bottom = %d, want 1", got)
	}

	// A width set by a script between the listed stops steps to its
	// neighbours.
	sess.SetWidth(5)
	stepWidth(sess, widths, -1)
	if got := sess.Width(); got != 2 {
		t.Fatalf("step down from 5 = %d, want 2", got)
	}
	sess.SetWidth(5)
	stepWidth(sess, widths, 1)
	if got := sess.Width(); got != 6 {
		t.Fatalf("step up from 5 = %d, want 6", got)
	}
}

func TestDrawChrome(t *testing.T) {
	toolbarWidth = 71
	resetHover()
	toolButtons = testToolButtons()
	for _, cb := range toolButtons {
		tb := cb.Button.(*ToolButton)
		tb.onSelect = func() {}
	}

	winW, winH := 271, 348
	img := image.NewRGBA(image.Rect(0, 0, winW, winH))

	drawHeader(img, winW, "freehand 4px")
	if got := img.RGBAAt(2, 2); got != (color.RGBA{220, 220, 220, 255}) {
		t.Fatalf("header fill = %v", got)
	}

	palette := config.DefaultPalette()
	widths := []int{1, 2, 4, 6, 9, 14, 20, 30}
	drawToolbar(img, winH, board.ModeFreehand, false, palette, 0, widths, 2)

	// Selected tool row renders pressed.
	if got := img.RGBAAt(toolbarWidth-3, headerHeight+2); got != (color.RGBA{150, 150, 150, 255}) {
		t.Fatalf("selected tool fill = %v", got)
	}
	// An unselected tool row renders default grey.
	if got := img.RGBAAt(toolbarWidth-3, headerHeight+24+2); got != (color.RGBA{200, 200, 200, 255}) {
		t.Fatalf("unselected tool fill = %v", got)
	}
	// First palette swatch carries the first configured color.
	swatchY := headerHeight + len(toolButtons)*24 + 4
	if got := img.RGBAAt(12, swatchY+8); got != palette[0] {
		t.Fatalf("first swatch = %v, want %v", got, palette[0])
	}
	if len(paletteRects) != len(palette) {
		t.Fatalf("paletteRects = %d, want %d", len(paletteRects), len(palette))
	}
	if len(widthRects) != len(widths) {
		t.Fatalf("widthRects = %d, want %d", len(widthRects), len(widths))
	}

	var triggered []string
	drawShortcuts(img, winW, winH, func(name string) { triggered = append(triggered, name) })
	if len(shortcutRects) != 7 {
		t.Fatalf("shortcutRects = %d, want 7", len(shortcutRects))
	}
	if got := img.RGBAAt(2, winH-2); got != (color.RGBA{220, 220, 220, 255}) {
		t.Fatalf("bottom bar fill = %v", got)
	}
	shortcutRects[2].Activate()
	if len(triggered) != 1 || triggered[0] != "judge" {
		t.Fatalf("third cell triggered %v, want judge", triggered)
	}
}

func TestDrawMessageCoversCentre(t *testing.T) {
	winW, winH := 400, 300
	img := image.NewRGBA(image.Rect(0, 0, winW, winH))
	grey := color.RGBA{200, 200, 200, 255}
	raster.Fill(img, img.Bounds(), grey)

	drawMessage(img, winW, winH, "Label: boat\nConfidence: 72")
	if got := img.RGBAAt(winW/2, winH/2); got == grey {
		t.Fatalf("message overlay did not paint the window centre")
	}
}

func TestSavePath(t *testing.T) {
	u := New(WithOutput("sketch.png"))
	if got := u.savePath(); got != "sketch.png" {
		t.Fatalf("explicit output = %q", got)
	}

	cfg := config.New()
	cfg.SaveDir = filepath.Join("some", "dir")
	u = New(WithConfig(cfg))
	got := u.savePath()
	if filepath.Dir(got) != cfg.SaveDir {
		t.Fatalf("savePath dir = %q, want %q", filepath.Dir(got), cfg.SaveDir)
	}
	name := filepath.Base(got)
	if !strings.HasPrefix(name, "board-") || !strings.HasSuffix(name, ".png") {
		t.Fatalf("savePath name = %q", name)
	}

	u = New()
	if dir := filepath.Dir(u.savePath()); dir != "." {
		t.Fatalf("default savePath dir = %q, want .", dir)
	}
}

func TestNewDefaultsFollowConfig(t *testing.T) {
	cfg := config.New()
	cfg.BoardWidth = 320
	cfg.BoardHeight = 200
	cfg.BrushWidth = 9
	u := New(WithConfig(cfg))

	w, h := u.Board.Canvas.Size()
	if w != 320 || h != 200 {
		t.Fatalf("board size = %dx%d, want 320x200", w, h)
	}
	if got := u.Board.Session.Width(); got != 9 {
		t.Fatalf("brush width = %d, want 9", got)
	}
	if u.Board.Session.BrushColor() != cfg.BrushColor {
		t.Fatalf("brush color = %v, want %v", u.Board.Session.BrushColor(), cfg.BrushColor)
	}
}
