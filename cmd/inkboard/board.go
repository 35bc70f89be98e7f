package main

import (
	"flag"
	"fmt"

	"github.com/example/inkboard/internal/board"
	"github.com/example/inkboard/internal/judge"
	"github.com/example/inkboard/internal/ui"
)

// boardCmd opens the whiteboard window.
type boardCmd struct {
	*root
	fs         *flag.FlagSet
	open       string
	output     string
	width      int
	height     int
	background string
	saveDir    string
}

func (b *boardCmd) FlagSet() *flag.FlagSet {
	return b.fs
}

func parseBoardCmd(args []string, r *root) (*boardCmd, error) {
	fs := flag.NewFlagSet("board", flag.ExitOnError)
	b := &boardCmd{root: r, fs: fs}
	fs.StringVar(&b.open, "open", "", "board document to reopen")
	fs.StringVar(&b.output, "output", "", "fixed file the save action writes (default: timestamped name in the save dir)")
	fs.IntVar(&b.width, "width", 0, "board width in pixels (default from config)")
	fs.IntVar(&b.height, "height", 0, "board height in pixels (default from config)")
	fs.StringVar(&b.background, "background", "", "background color name or #RRGGBB (default from config)")
	fs.StringVar(&b.saveDir, "save-dir", "", "directory timestamped saves go to (default from config)")
	fs.Usage = usageFunc(b)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *boardCmd) Run() error {
	cfg := b.root.config
	if b.saveDir != "" {
		cfg.SaveDir = b.saveDir
	}

	var brd *board.Board
	if b.open != "" {
		var err error
		brd, err = board.LoadDocument(b.open)
		if err != nil {
			return fmt.Errorf("open %s: %w", b.open, err)
		}
	} else {
		width := cfg.BoardWidth
		if b.width > 0 {
			width = b.width
		}
		height := cfg.BoardHeight
		if b.height > 0 {
			height = b.height
		}
		bg := cfg.Background
		if b.background != "" {
			parsed, err := board.ParseColor(b.background)
			if err != nil {
				return err
			}
			bg = parsed
		}
		brd = board.New(
			board.WithSize(width, height),
			board.WithBackground(bg),
			board.WithBrushColor(cfg.BrushColor),
			board.WithBrushWidth(cfg.BrushWidth),
		)
	}

	bw, bh := brd.Canvas.Size()
	dispatcher := judge.NewDispatcher(judge.WithPicker(func() (judge.Judge, error) {
		return judge.Pick(b.root.judgeCredentials())
	}))

	u := ui.New(
		ui.WithBoard(brd),
		ui.WithConfig(cfg),
		ui.WithOutput(b.output),
		ui.WithNotifier(b.root.notifier),
		ui.WithDispatcher(dispatcher),
		ui.WithTitle(windowTitle(titleOptions{
			File:   b.open,
			Detail: fmt.Sprintf("%dx%d", bw, bh),
		})),
	)
	u.Run()
	return nil
}
