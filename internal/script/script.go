// Package script replays a line-oriented command file onto a board, so
// sketches can be produced, rendered and analyzed without a display.
//
// One command per line; blank lines and lines starting with # or // are
// skipped:
//
//	mode freehand|line|rect|ellipse
//	color <name or #hex>
//	width <pixels>
//	eraser on|off
//	background <name or #hex>
//	down x y
//	move x y
//	up x y
//	stroke x0 y0 x1 y1
//	undo
//	redo
//	clear
//
// stroke is shorthand for down/move/up and draws with whatever tool is
// selected at that point.
package script

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/example/inkboard/internal/board"
)

// Op identifies a script command.
type Op int

const (
	OpMode Op = iota
	OpColor
	OpWidth
	OpEraser
	OpBackground
	OpDown
	OpMove
	OpUp
	OpStroke
	OpUndo
	OpRedo
	OpClear
)

// Command is one parsed script line.
type Command struct {
	Op    Op
	Line  int
	Mode  board.Mode
	Color color.RGBA
	Width int
	On    bool
	P     image.Point
	Q     image.Point
}

// Parse reads commands until EOF, failing on the first malformed line.
func Parse(r io.Reader) ([]Command, error) {
	var cmds []Command
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		cmd, ok, err := ParseLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if !ok {
			continue
		}
		cmd.Line = lineNo
		cmds = append(cmds, cmd)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cmds, nil
}

// ParseLine parses a single line. Blank lines and comments report ok false
// with no error, so interactive callers can feed raw input through.
func ParseLine(line string) (cmd Command, ok bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
		return Command{}, false, nil
	}
	cmd, err = parseLine(line)
	if err != nil {
		return Command{}, false, err
	}
	return cmd, true, nil
}

func parseLine(line string) (Command, error) {
	fields := strings.Fields(line)
	verb := strings.ToLower(fields[0])
	args := fields[1:]

	switch verb {
	case "mode":
		if len(args) != 1 {
			return Command{}, fmt.Errorf("mode requires a tool name")
		}
		m, err := board.ParseMode(args[0])
		if err != nil {
			return Command{}, err
		}
		return Command{Op: OpMode, Mode: m}, nil
	case "color", "background":
		if len(args) != 1 {
			return Command{}, fmt.Errorf("%s requires a color value", verb)
		}
		col, err := board.ParseColor(args[0])
		if err != nil {
			return Command{}, err
		}
		op := OpColor
		if verb == "background" {
			op = OpBackground
		}
		return Command{Op: op, Color: col}, nil
	case "width":
		if len(args) != 1 {
			return Command{}, fmt.Errorf("width requires a value")
		}
		w, err := strconv.Atoi(args[0])
		if err != nil {
			return Command{}, fmt.Errorf("invalid integer %q", args[0])
		}
		return Command{Op: OpWidth, Width: w}, nil
	case "eraser":
		if len(args) != 1 {
			return Command{}, fmt.Errorf("eraser requires on or off")
		}
		on, err := parseSwitch(args[0])
		if err != nil {
			return Command{}, err
		}
		return Command{Op: OpEraser, On: on}, nil
	case "down", "move", "up":
		coords, err := expectInts(args, 2, verb)
		if err != nil {
			return Command{}, err
		}
		op := OpDown
		switch verb {
		case "move":
			op = OpMove
		case "up":
			op = OpUp
		}
		return Command{Op: op, P: image.Pt(coords[0], coords[1])}, nil
	case "stroke":
		coords, err := expectInts(args, 4, verb)
		if err != nil {
			return Command{}, err
		}
		return Command{Op: OpStroke, P: image.Pt(coords[0], coords[1]), Q: image.Pt(coords[2], coords[3])}, nil
	case "undo", "redo", "clear":
		if len(args) != 0 {
			return Command{}, fmt.Errorf("%s takes no arguments", verb)
		}
		switch verb {
		case "undo":
			return Command{Op: OpUndo}, nil
		case "redo":
			return Command{Op: OpRedo}, nil
		}
		return Command{Op: OpClear}, nil
	}
	return Command{}, fmt.Errorf("unknown command %q", verb)
}

func expectInts(args []string, n int, verb string) ([]int, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s requires %d integer arguments", verb, n)
	}
	vals := make([]int, n)
	for i, raw := range args {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", raw)
		}
		vals[i] = v
	}
	return vals, nil
}

func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid switch %q, want on or off", s)
}

// Apply performs one command against the board. Width is clamped like the
// toolbar slider, and pointer commands follow the router's rules, so every
// parsed command applies without error.
func Apply(b *board.Board, cmd Command) {
	switch cmd.Op {
	case OpMode:
		b.Session.SetMode(cmd.Mode)
	case OpColor:
		b.Session.SetBrushColor(cmd.Color)
	case OpWidth:
		b.Session.SetWidth(cmd.Width)
	case OpEraser:
		b.Session.SetEraser(cmd.On)
	case OpBackground:
		b.SetBackground(cmd.Color)
	case OpDown:
		b.Router.PointerDown(cmd.P)
	case OpMove:
		b.Router.PointerMove(cmd.P)
	case OpUp:
		b.Router.PointerUp(cmd.P)
	case OpStroke:
		b.Router.PointerDown(cmd.P)
		b.Router.PointerMove(cmd.Q)
		b.Router.PointerUp(cmd.Q)
	case OpUndo:
		b.Router.Undo()
	case OpRedo:
		b.Router.Redo()
	case OpClear:
		b.Router.Clear()
	}
}

// Run parses the script and applies every command to the board.
func Run(b *board.Board, r io.Reader) error {
	cmds, err := Parse(r)
	if err != nil {
		return err
	}
	for _, cmd := range cmds {
		Apply(b, cmd)
	}
	return nil
}
