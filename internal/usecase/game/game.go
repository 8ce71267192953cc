package game

import (
	"sync"

	"go.uber.org/zap"

	"suntzu/internal/bootstrap"
	"suntzu/internal/domain/board"
	"suntzu/internal/domain/game"
)

// GameUseCase runs one hot-seat session. Every mutation, capture sweep included,
// holds the write lock, so readers never observe a half-applied action.
type GameUseCase struct {
	cfg  bootstrap.Config
	log  *zap.SugaredLogger
	mu   sync.RWMutex
	game *game.Game
	next board.Side
}

func NewGameUseCase(cfg bootstrap.Config, log *zap.SugaredLogger) (*GameUseCase, error) {
	opts, err := cfg.GameOptions()
	if err != nil {
		return nil, err
	}
	play, err := game.New(opts)
	if err != nil {
		return nil, err
	}

	for range 2 {
		p, err := play.CreatePlayer(nil)
		if err != nil {
			return nil, err
		}
		side, _ := play.SideOf(p)
		log.Infow("player seated", "game", play.ID, "player", p.ID, "name", p.Name, "side", side)
	}

	log.Infow("game created",
		"game", play.ID,
		"board_size", opts.BoardSize,
		"komi", opts.Komi,
		"komi_side", opts.KomiSide,
		"credit", opts.Credit,
	)

	return &GameUseCase{
		cfg:  cfg,
		log:  log,
		game: play,
		next: board.Black,
	}, nil
}

// NextSide is the side expected to act next. The engine itself does not enforce turns.
func (g *GameUseCase) NextSide() board.Side {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.next
}

// Play places a stone for the side to move.
func (g *GameUseCase) Play(pos board.Position) ([]game.Capture, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.register(game.Move{Color: g.next, Pos: pos})
}

// Pass passes for the side to move.
func (g *GameUseCase) Pass() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, err := g.register(game.Pass{Color: g.next})
	return err
}

func (g *GameUseCase) RegisterAction(a game.Action) ([]game.Capture, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.register(a)
}

func (g *GameUseCase) register(a game.Action) ([]game.Capture, error) {
	captures, err := g.game.RegisterAction(a)
	if err != nil {
		g.log.Warnw("action rejected", "game", g.game.ID, "action", a, "error", err)
		return nil, err
	}

	g.next = a.Side().Other()
	g.log.Infow("action registered", "game", g.game.ID, "action", a, "turn", len(g.game.Log()))
	for _, c := range captures {
		g.log.Infow("group captured",
			"game", g.game.ID,
			"owner", c.Owner,
			"stones", len(c.Stones),
			"credited", c.CreditedTo(g.game.Options().Credit),
		)
	}
	return captures, nil
}

func (g *GameUseCase) Render() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.game.Board().String()
}

// Cells returns a copy of the board rows, y=1 first, for renderers.
func (g *GameUseCase) Cells() [][]byte {
	g.mu.RLock()
	defer g.mu.RUnlock()

	b := g.game.Board()
	cells := make([][]byte, b.Size())
	for y := 1; y <= b.Size(); y++ {
		row := make([]byte, b.Size())
		for x := 1; x <= b.Size(); x++ {
			side, _ := b.Get(board.Position{X: x, Y: y})
			row[x-1] = board.Symbol(side)
		}
		cells[y-1] = row
	}
	return cells
}

func (g *GameUseCase) Scores() (white, black float64) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.game.WhiteScore(), g.game.BlackScore()
}

func (g *GameUseCase) Log() []game.Action {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.game.Log()
}

func (g *GameUseCase) Players() map[board.Side]game.Player {
	g.mu.RLock()
	defer g.mu.RUnlock()

	players := make(map[board.Side]game.Player, 2)
	for _, side := range []board.Side{board.Black, board.White} {
		if p, ok := g.game.Player(side); ok {
			players[side] = p
		}
	}
	return players
}

// ExportSGF serializes the action log.
func (g *GameUseCase) ExportSGF() (string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	record := PrepareSgfFile(g.game)
	if err := AddActionsToSgf(record.Root, g.game.Board().Size(), g.game.Log()); err != nil {
		return "", err
	}
	return SerializeSGF(&record), nil
}
