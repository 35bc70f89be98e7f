package config

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/example/inkboard/internal/board"
)

// Notify holds notification settings.
type Notify struct {
	Save     bool
	Copy     bool
	Analysis bool
}

// Judge holds analysis backend settings. Model names here are fallbacks
// for the GEMINI_MODEL and HF_MODEL environment variables.
type Judge struct {
	GeminiModel string
	HFModel     string
}

// Config holds the application configuration.
type Config struct {
	SaveDir     string
	BoardWidth  int
	BoardHeight int
	Background  color.RGBA
	BrushColor  color.RGBA
	BrushWidth  int
	Palette     []color.RGBA
	Notify      Notify
	Judge       Judge
}

// DefaultPalette returns the stock brush colors in toolbar order.
func DefaultPalette() []color.RGBA {
	return []color.RGBA{
		{A: 0xFF},                            // black
		{R: 0xFF, A: 0xFF},                   // red
		{G: 0x80, A: 0xFF},                   // green
		{B: 0xFF, A: 0xFF},                   // blue
		{R: 0xFF, G: 0xFF, A: 0xFF},          // yellow
		{R: 0xFF, G: 0xA5, A: 0xFF},          // orange
		{R: 0x80, B: 0x80, A: 0xFF},          // purple
		{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, // white
	}
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		BoardWidth:  board.DefaultWidth,
		BoardHeight: board.DefaultHeight,
		Background:  color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		BrushColor:  color.RGBA{A: 0xFF},
		BrushWidth:  board.DefaultBrushWidth,
		Palette:     DefaultPalette(),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	fmt.Fprintf(&sb, "board_width = %d\n", c.BoardWidth)
	fmt.Fprintf(&sb, "board_height = %d\n", c.BoardHeight)
	fmt.Fprintf(&sb, "background = %s\n", board.FormatColor(c.Background))
	fmt.Fprintf(&sb, "brush_color = %s\n", board.FormatColor(c.BrushColor))
	fmt.Fprintf(&sb, "brush_width = %d\n", c.BrushWidth)
	sb.WriteString("\n")

	// Palette section
	sb.WriteString("[palette]\n")
	for i, col := range c.Palette {
		fmt.Fprintf(&sb, "%d = %s\n", i+1, board.FormatColor(col))
	}
	sb.WriteString("\n")

	// Notify section
	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	fmt.Fprintf(&sb, "analysis = %v\n", c.Notify.Analysis)
	sb.WriteString("\n")

	// Judge section
	if c.Judge.GeminiModel != "" || c.Judge.HFModel != "" {
		sb.WriteString("[judge]\n")
		if c.Judge.GeminiModel != "" {
			fmt.Fprintf(&sb, "gemini_model = %s\n", c.Judge.GeminiModel)
		}
		if c.Judge.HFModel != "" {
			fmt.Fprintf(&sb, "hf_model = %s\n", c.Judge.HFModel)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
