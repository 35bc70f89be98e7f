package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/example/inkboard/internal/board"
	"github.com/example/inkboard/internal/export"
	"github.com/example/inkboard/internal/script"
)

// renderCmd replays a script against an off-screen board and writes the
// result as a PNG, without opening a window.
type renderCmd struct {
	*root
	fs         *flag.FlagSet
	script     string
	open       string
	out        string
	scale      int
	matte      bool
	width      int
	height     int
	background string
}

func (c *renderCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseRenderCmd(args []string, r *root) (*renderCmd, error) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	c := &renderCmd{root: r, fs: fs}
	fs.StringVar(&c.script, "script", "", "command script to replay, - for stdin")
	fs.StringVar(&c.open, "open", "", "board document to start from")
	fs.StringVar(&c.out, "out", "board.png", "output PNG path")
	fs.IntVar(&c.scale, "scale", 1, "integer upscale factor")
	fs.BoolVar(&c.matte, "matte", false, "add a margin, rounded corners and a drop shadow")
	fs.IntVar(&c.width, "width", 0, "board width in pixels (default from config)")
	fs.IntVar(&c.height, "height", 0, "board height in pixels (default from config)")
	fs.StringVar(&c.background, "background", "", "background color name or #RRGGBB (default from config)")
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *renderCmd) newBoard() (*board.Board, error) {
	if c.open != "" {
		brd, err := board.LoadDocument(c.open)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", c.open, err)
		}
		return brd, nil
	}

	cfg := c.root.config
	width := cfg.BoardWidth
	if c.width > 0 {
		width = c.width
	}
	height := cfg.BoardHeight
	if c.height > 0 {
		height = c.height
	}
	bg := cfg.Background
	if c.background != "" {
		parsed, err := board.ParseColor(c.background)
		if err != nil {
			return nil, err
		}
		bg = parsed
	}
	return board.New(
		board.WithSize(width, height),
		board.WithBackground(bg),
		board.WithBrushColor(cfg.BrushColor),
		board.WithBrushWidth(cfg.BrushWidth),
	), nil
}

func (c *renderCmd) Run() error {
	if c.script == "" && c.open == "" {
		return &UsageError{of: c}
	}

	brd, err := c.newBoard()
	if err != nil {
		return err
	}

	if c.script != "" {
		var in io.Reader = os.Stdin
		if c.script != "-" {
			f, err := os.Open(c.script)
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}
		if err := script.Run(brd, in); err != nil {
			return fmt.Errorf("script %s: %w", c.script, err)
		}
	}

	img := export.Scale(brd.Canvas.Rasterize(), c.scale)
	if c.matte {
		img = export.Matte(img, export.DefaultMatteOptions())
	}
	path, err := export.WriteFile(c.out, img)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "wrote %s\n", path)
	return nil
}
