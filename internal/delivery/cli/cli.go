package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"suntzu/internal/bootstrap"
	"suntzu/internal/domain/board"
	"suntzu/internal/errors"
	gameuc "suntzu/internal/usecase/game"
)

const helpText = `commands:
  <x> <y> | play <x> <y>   place a stone for the side to move
  pass                     pass
  board                    show the board
  score                    show the scores
  log                      list every registered action
  sgf                      print the game record as SGF
  help                     this text
  quit                     leave
`

type Handler struct {
	cfg    bootstrap.Config
	log    *zap.SugaredLogger
	gameUC *gameuc.GameUseCase
	out    io.Writer

	black *color.Color
	white *color.Color
	empty *color.Color
}

func NewHandler(cfg bootstrap.Config, log *zap.SugaredLogger, gameUC *gameuc.GameUseCase, out io.Writer) *Handler {
	h := &Handler{
		cfg:    cfg,
		log:    log,
		gameUC: gameUC,
		out:    out,
		black:  color.New(color.FgHiRed, color.Bold),
		white:  color.New(color.FgHiWhite, color.Bold),
		empty:  color.New(color.Faint),
	}
	for _, c := range []*color.Color{h.black, h.white, h.empty} {
		if cfg.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return h
}

// Run reads one command per line until EOF, quit, or ctx is done.
func (h *Handler) Run(ctx context.Context, in io.Reader) error {
	h.printBoard()
	h.printTurn()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		h.log.Debugw("command received", "line", line)

		quit, err := h.handle(line)
		if err != nil {
			fmt.Fprintf(h.out, "error: %v\n", err)
			continue
		}
		if quit {
			return nil
		}
	}
	return scanner.Err()
}

func (h *Handler) handle(line string) (quit bool, err error) {
	fields := strings.Fields(strings.ToLower(line))
	switch fields[0] {
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprint(h.out, helpText)
	case "board":
		h.printBoard()
	case "score":
		h.printScores()
	case "log":
		for i, a := range h.gameUC.Log() {
			fmt.Fprintf(h.out, "%3d. %v\n", i+1, a)
		}
	case "sgf":
		record, err := h.gameUC.ExportSGF()
		if err != nil {
			return false, err
		}
		fmt.Fprintln(h.out, record)
	case "pass":
		side := h.gameUC.NextSide()
		if err := h.gameUC.Pass(); err != nil {
			return false, err
		}
		fmt.Fprintf(h.out, "%s passes\n", side)
		h.printTurn()
	case "play":
		return false, h.play(fields[1:])
	default:
		return false, h.play(fields)
	}
	return false, nil
}

func (h *Handler) play(args []string) error {
	pos, err := parsePosition(args)
	if err != nil {
		return err
	}

	captures, err := h.gameUC.Play(pos)
	if err != nil {
		return err
	}
	for _, c := range captures {
		fmt.Fprintf(h.out, "captured %d %s stone(s)\n", len(c.Stones), c.Owner)
	}

	h.printBoard()
	h.printScores()
	h.printTurn()
	return nil
}

func parsePosition(args []string) (board.Position, error) {
	if len(args) != 2 {
		return board.Position{}, fmt.Errorf("%q: %w", strings.Join(args, " "), errors.ErrUnknownCommand)
	}
	x, err := strconv.Atoi(args[0])
	if err != nil {
		return board.Position{}, fmt.Errorf("x coordinate %q: %w", args[0], errors.ErrUnknownCommand)
	}
	y, err := strconv.Atoi(args[1])
	if err != nil {
		return board.Position{}, fmt.Errorf("y coordinate %q: %w", args[1], errors.ErrUnknownCommand)
	}
	return board.Position{X: x, Y: y}, nil
}

func (h *Handler) printBoard() {
	for _, row := range h.gameUC.Cells() {
		var line strings.Builder
		for _, cell := range row {
			line.WriteString(h.glyph(cell))
		}
		fmt.Fprintln(h.out, line.String())
	}
}

func (h *Handler) glyph(cell byte) string {
	s := string(cell)
	switch cell {
	case board.Symbol(board.Black):
		return h.black.Sprint(s)
	case board.Symbol(board.White):
		return h.white.Sprint(s)
	default:
		return h.empty.Sprint(s)
	}
}

func (h *Handler) printScores() {
	white, black := h.gameUC.Scores()
	fmt.Fprintf(h.out, "White: %g  Black: %g\n", white, black)
}

func (h *Handler) printTurn() {
	fmt.Fprintf(h.out, "%s to play\n", h.gameUC.NextSide())
}
