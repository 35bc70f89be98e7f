package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
save_dir = /tmp/boards
board_width = 640
board_height = 480
background = #FAFAFA
brush_color = navy
brush_width = 7

[palette]
2 = #FF8800
5 = teal

[notify]
save = true
copy = false
analysis = true

[judge]
gemini_model = gemini-2.0-flash
hf_model = microsoft/resnet-50
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.SaveDir != "/tmp/boards" {
		t.Errorf("Expected save_dir '/tmp/boards', got '%s'", cfg.SaveDir)
	}
	if cfg.BoardWidth != 640 || cfg.BoardHeight != 480 {
		t.Errorf("Unexpected board size %dx%d", cfg.BoardWidth, cfg.BoardHeight)
	}
	if cfg.Background != (color.RGBA{R: 0xFA, G: 0xFA, B: 0xFA, A: 0xFF}) {
		t.Errorf("Unexpected background: %+v", cfg.Background)
	}
	if cfg.BrushColor != (color.RGBA{B: 0x80, A: 0xFF}) {
		t.Errorf("Unexpected brush color: %+v", cfg.BrushColor)
	}
	if cfg.BrushWidth != 7 {
		t.Errorf("Expected brush_width 7, got %d", cfg.BrushWidth)
	}

	if len(cfg.Palette) != 8 {
		t.Fatalf("Expected 8 palette slots, got %d", len(cfg.Palette))
	}
	if cfg.Palette[0] != (color.RGBA{A: 0xFF}) {
		t.Errorf("Slot 1 should keep the default black, got %+v", cfg.Palette[0])
	}
	if cfg.Palette[1] != (color.RGBA{R: 0xFF, G: 0x88, A: 0xFF}) {
		t.Errorf("Unexpected slot 2: %+v", cfg.Palette[1])
	}
	if cfg.Palette[4] != (color.RGBA{G: 0x80, B: 0x80, A: 0xFF}) {
		t.Errorf("Unexpected slot 5: %+v", cfg.Palette[4])
	}

	if !cfg.Notify.Save || cfg.Notify.Copy || !cfg.Notify.Analysis {
		t.Errorf("Unexpected notify settings: %+v", cfg.Notify)
	}

	if cfg.Judge.GeminiModel != "gemini-2.0-flash" {
		t.Errorf("Unexpected gemini_model: %q", cfg.Judge.GeminiModel)
	}
	if cfg.Judge.HFModel != "microsoft/resnet-50" {
		t.Errorf("Unexpected hf_model: %q", cfg.Judge.HFModel)
	}
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader("# empty file\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.BoardWidth != 1200 || cfg.BoardHeight != 800 {
		t.Errorf("Unexpected default size %dx%d", cfg.BoardWidth, cfg.BoardHeight)
	}
	if cfg.BrushWidth != 4 {
		t.Errorf("Expected default brush_width 4, got %d", cfg.BrushWidth)
	}
	if len(cfg.Palette) != 8 {
		t.Errorf("Expected 8 default palette slots, got %d", len(cfg.Palette))
	}
	if cfg.Notify.Save || cfg.Notify.Copy || cfg.Notify.Analysis {
		t.Errorf("Notifications should default to off: %+v", cfg.Notify)
	}
}

func TestParseQuotedAndColonValues(t *testing.T) {
	input := "save_dir = \"/home/user/My Boards\"\nbrush_width: 12\n"
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.SaveDir != "/home/user/My Boards" {
		t.Errorf("Quotes not stripped: %q", cfg.SaveDir)
	}
	if cfg.BrushWidth != 12 {
		t.Errorf("Colon form not parsed: %d", cfg.BrushWidth)
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"bad bool":        "[notify]\nsave = sometimes\n",
		"bad color":       "background = mauvelous\n",
		"bad width":       "brush_width = zero\n",
		"width too large": "brush_width = 31\n",
		"zero dimension":  "board_width = 0\n",
		"bad palette":     "[palette]\n1 = #12\n",
	}
	for name, input := range cases {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("%s: Parse accepted %q", name, input)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `save_dir = /home/user/boards
board_width = 800
board_height = 500
background = #F0F0F0
brush_color = #112233
brush_width = 9

[palette]
1 = #000000
2 = #AA0000
3 = #00AA00

[notify]
save = true
copy = true
analysis = false

[judge]
gemini_model = gemini-1.5-pro
`
	// 1. Parse initial input
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	// 2. Generate string representation
	generated := cfg.String()

	// 3. Parse generated string
	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}

	// 4. Compare relevant fields
	if cfg.SaveDir != cfg2.SaveDir {
		t.Errorf("SaveDir mismatch: %q vs %q", cfg.SaveDir, cfg2.SaveDir)
	}
	if cfg.BoardWidth != cfg2.BoardWidth || cfg.BoardHeight != cfg2.BoardHeight {
		t.Errorf("Size mismatch: %dx%d vs %dx%d", cfg.BoardWidth, cfg.BoardHeight, cfg2.BoardWidth, cfg2.BoardHeight)
	}
	if cfg.Background != cfg2.Background || cfg.BrushColor != cfg2.BrushColor {
		t.Errorf("Color mismatch: %+v/%+v vs %+v/%+v", cfg.Background, cfg.BrushColor, cfg2.Background, cfg2.BrushColor)
	}
	if cfg.BrushWidth != cfg2.BrushWidth {
		t.Errorf("BrushWidth mismatch: %d vs %d", cfg.BrushWidth, cfg2.BrushWidth)
	}
	if len(cfg.Palette) != len(cfg2.Palette) {
		t.Fatalf("Palette length mismatch: %d vs %d", len(cfg.Palette), len(cfg2.Palette))
	}
	for i := range cfg.Palette {
		if cfg.Palette[i] != cfg2.Palette[i] {
			t.Errorf("Palette slot %d mismatch: %v vs %v", i+1, cfg.Palette[i], cfg2.Palette[i])
		}
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}
	if cfg.Judge != cfg2.Judge {
		t.Errorf("Judge mismatch: %+v vs %+v", cfg.Judge, cfg2.Judge)
	}
}

func TestLoaderOverridePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.rc")
	if err := os.WriteFile(path, []byte("brush_width = 15\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := NewLoader("dev", path).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.BrushWidth != 15 {
		t.Errorf("Expected brush_width 15, got %d", cfg.BrushWidth)
	}
}

func TestLoaderEnvPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "env.rc")
	if err := os.WriteFile(path, []byte("board_width = 333\nboard_height = 222\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("INKBOARD_CONFIG", path)

	cfg, err := NewLoader("1.0.0", "").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.BoardWidth != 333 || cfg.BoardHeight != 222 {
		t.Errorf("Unexpected size %dx%d", cfg.BoardWidth, cfg.BoardHeight)
	}
}

func TestLoaderMissingFileGivesDefaults(t *testing.T) {
	t.Setenv("INKBOARD_CONFIG", "")
	t.Setenv("HOME", t.TempDir())

	cfg, err := NewLoader("1.0.0", "").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.BoardWidth != 1200 || cfg.BrushWidth != 4 {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}
