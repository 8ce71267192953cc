package game

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"suntzu/internal/domain/board"
	"suntzu/internal/errors"
)

// CreditPolicy decides whose score grows when a group is captured.
type CreditPolicy string

const (
	// CreditCapturer adds the captured stones to the opponent of their owner.
	CreditCapturer CreditPolicy = "capturer"
	// CreditOwner adds the captured stones to their owner's score.
	CreditOwner CreditPolicy = "owner"
)

func ParseCreditPolicy(s string) (CreditPolicy, error) {
	switch p := CreditPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case CreditCapturer, CreditOwner:
		return p, nil
	}
	return "", fmt.Errorf("unknown capture credit policy %q", s)
}

type Options struct {
	BoardSize int
	Komi      float64
	KomiSide  board.Side
	Credit    CreditPolicy
}

func DefaultOptions() Options {
	return Options{
		BoardSize: 19,
		Komi:      6.5,
		KomiSide:  board.White,
		Credit:    CreditCapturer,
	}
}

type Game struct {
	ID          uuid.UUID
	whitePlayer *Player
	blackPlayer *Player
	whiteScore  float64
	blackScore  float64
	board       *board.Board
	log         []Action
	opts        Options
}

func New(opts Options) (*Game, error) {
	if opts.BoardSize < 1 {
		return nil, fmt.Errorf("board size %d: %w", opts.BoardSize, errors.ErrInvalidBoardSize)
	}
	if opts.Komi < 0 {
		return nil, fmt.Errorf("komi %v: %w", opts.Komi, errors.ErrInvalidKomi)
	}
	if opts.KomiSide != board.White && opts.KomiSide != board.Black {
		opts.KomiSide = board.White
	}
	if opts.Credit == "" {
		opts.Credit = CreditCapturer
	}

	g := &Game{
		ID:    uuid.New(),
		board: board.New(opts.BoardSize),
		opts:  opts,
	}
	g.addScore(opts.KomiSide, opts.Komi)
	return g, nil
}

// CreatePlayer seats a new player. Without a preference Black is filled first, then White.
func (g *Game) CreatePlayer(preferred *board.Side) (Player, error) {
	wantBlack := preferred == nil || *preferred == board.Black
	wantWhite := preferred == nil || *preferred == board.White

	var seat **Player
	switch {
	case wantBlack && g.blackPlayer == nil:
		seat = &g.blackPlayer
	case wantWhite && g.whitePlayer == nil:
		seat = &g.whitePlayer
	default:
		return Player{}, errors.ErrSeatTaken
	}

	p := newPlayer(g.ID)
	*seat = &p
	return p, nil
}

func (g *Game) SideOf(p Player) (board.Side, error) {
	if p.GameID == g.ID {
		if g.whitePlayer != nil && g.whitePlayer.ID == p.ID {
			return board.White, nil
		}
		if g.blackPlayer != nil && g.blackPlayer.ID == p.ID {
			return board.Black, nil
		}
	}
	return 0, fmt.Errorf("player %s: %w", p.ID, errors.ErrUnknownPlayer)
}

// Player returns whoever holds the seat for side.
func (g *Game) Player(side board.Side) (Player, bool) {
	var p *Player
	switch side {
	case board.White:
		p = g.whitePlayer
	case board.Black:
		p = g.blackPlayer
	}
	if p == nil {
		return Player{}, false
	}
	return *p, true
}

// RegisterAction applies a to the board, records it and sweeps captured groups.
// A Move that cannot be placed is rejected before it reaches the log.
func (g *Game) RegisterAction(a Action) ([]Capture, error) {
	switch act := a.(type) {
	case Move:
		if err := g.board.Place(act.Pos, act.Color); err != nil {
			return nil, err
		}
	case Pass:
	default:
		return nil, fmt.Errorf("%T: %w", a, errors.ErrUnknownAction)
	}

	g.log = append(g.log, a)
	return g.CaptureSurrounded(), nil
}

func (g *Game) Log() []Action {
	return slices.Clone(g.log)
}

func (g *Game) Board() *board.Board {
	return g.board
}

func (g *Game) Score(side board.Side) float64 {
	if side == board.White {
		return g.whiteScore
	}
	return g.blackScore
}

func (g *Game) WhiteScore() float64 { return g.whiteScore }
func (g *Game) BlackScore() float64 { return g.blackScore }

func (g *Game) Options() Options {
	return g.opts
}

func (g *Game) addScore(side board.Side, points float64) {
	if side == board.White {
		g.whiteScore += points
	} else {
		g.blackScore += points
	}
}
