package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/inkboard/internal/board"
	"github.com/example/inkboard/internal/export"
	"github.com/example/inkboard/internal/judge"
	"github.com/example/inkboard/internal/script"
)

const interactiveBanner = "Enter commands (type 'exit' to quit, 'help' for a list)"

const interactiveHelp = `Script commands:
  mode freehand|line|rect|ellipse
  color <name or #RRGGBB>
  width <pixels>
  eraser on|off
  background <name or #RRGGBB>
  down X Y / move X Y / up X Y
  stroke X0 Y0 X1 Y1
  undo / redo / clear

Session commands:
  show          print the board state
  save PATH     write the board as PNG
  analyze       send the board to the analysis backend
  help          this text
  exit          leave the session
`

// interactiveCmd drives one shared board from script commands read a line
// at a time, with a few session verbs of its own on top.
type interactiveCmd struct {
	r          *root
	board      *board.Board
	dispatcher *judge.Dispatcher

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	outstanding int
}

func newInteractiveCmd(r *root) *interactiveCmd {
	cfg := r.config
	return &interactiveCmd{
		r: r,
		board: board.New(
			board.WithSize(cfg.BoardWidth, cfg.BoardHeight),
			board.WithBackground(cfg.Background),
			board.WithBrushColor(cfg.BrushColor),
			board.WithBrushWidth(cfg.BrushWidth),
		),
		dispatcher: judge.NewDispatcher(judge.WithPicker(func() (judge.Judge, error) {
			return judge.Pick(r.judgeCredentials())
		})),
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// executeLine runs one line and reports whether the session is over.
func (i *interactiveCmd) executeLine(line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	switch fields[0] {
	case "exit", "quit":
		return true, nil
	case "help":
		fmt.Fprint(i.stdout, interactiveHelp)
		return false, nil
	case "show":
		i.printState()
		return false, nil
	case "save":
		if len(fields) != 2 {
			return false, fmt.Errorf("save requires a file path")
		}
		path, err := export.WriteFile(fields[1], i.board.Canvas.Rasterize())
		if err != nil {
			return false, err
		}
		fmt.Fprintf(i.stdout, "saved %s\n", path)
		return false, nil
	case "analyze":
		if _, err := i.dispatcher.Submit(i.board.Canvas.Rasterize()); err != nil {
			return false, err
		}
		i.outstanding++
		fmt.Fprintln(i.stdout, "analyzing...")
		return false, nil
	}
	cmd, ok, err := script.ParseLine(line)
	if err != nil {
		return false, err
	}
	if ok {
		script.Apply(i.board, cmd)
	}
	return false, nil
}

func (i *interactiveCmd) printState() {
	w, h := i.board.Canvas.Size()
	sess := i.board.Session
	eraser := ""
	if sess.Eraser() {
		eraser = " (eraser)"
	}
	fmt.Fprintf(i.stdout, "board %dx%d background %s\n", w, h, board.FormatColor(i.board.Canvas.Background()))
	fmt.Fprintf(i.stdout, "tool %s%s color %s width %d\n", sess.Mode(), eraser, board.FormatColor(sess.BrushColor()), sess.Width())
	fmt.Fprintf(i.stdout, "strokes %d active, %d undone\n", len(i.board.Ledger.Active()), len(i.board.Ledger.Undone()))
	if i.outstanding > 0 {
		fmt.Fprintf(i.stdout, "analyses pending %d\n", i.outstanding)
	}
}

func (i *interactiveCmd) printOutcome(out judge.Outcome) {
	if out.Err != nil {
		fmt.Fprintf(i.stderr, "analyze (%s): %v\n", out.Backend, out.Err)
		return
	}
	fmt.Fprintln(i.stdout, out.Verdict.Message())
}

// drainOutcomes prints any finished analyses without blocking.
func (i *interactiveCmd) drainOutcomes() {
	for i.outstanding > 0 {
		select {
		case out := <-i.dispatcher.Results():
			i.outstanding--
			i.printOutcome(out)
		default:
			return
		}
	}
}

// waitOutcomes blocks until every submitted analysis has reported.
func (i *interactiveCmd) waitOutcomes() {
	for i.outstanding > 0 {
		out := <-i.dispatcher.Results()
		i.outstanding--
		i.printOutcome(out)
	}
}

func (i *interactiveCmd) Run() error {
	fmt.Fprintln(i.stdout, interactiveBanner)
	scanner := bufio.NewScanner(i.stdin)
	for {
		i.drainOutcomes()
		fmt.Fprint(i.stdout, "> ")
		if !scanner.Scan() {
			break
		}
		done, err := i.executeLine(scanner.Text())
		if err != nil {
			fmt.Fprintln(i.stderr, err)
			continue
		}
		if done {
			break
		}
	}
	i.waitOutcomes()
	return scanner.Err()
}
