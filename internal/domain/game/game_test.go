package game

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suntzu/internal/domain/board"
	"suntzu/internal/errors"
)

func newNine(t *testing.T, credit CreditPolicy) *Game {
	t.Helper()
	g, err := New(Options{BoardSize: 9, Komi: 6.5, KomiSide: board.White, Credit: credit})
	require.NoError(t, err)
	return g
}

func move(side board.Side, x, y int) Move {
	return Move{Color: side, Pos: board.Position{X: x, Y: y}}
}

// alternate turns points into moves starting with Black.
func alternate(points ...[2]int) []Action {
	actions := make([]Action, 0, len(points))
	side := board.Black
	for _, p := range points {
		actions = append(actions, move(side, p[0], p[1]))
		side = side.Other()
	}
	return actions
}

func play(t *testing.T, g *Game, actions []Action) {
	t.Helper()
	for _, a := range actions {
		_, err := g.RegisterAction(a)
		require.NoError(t, err, "action %v", a)
	}
}

func rows(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func TestNew(t *testing.T) {
	g, err := New(DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 19, g.Board().Size())
	assert.Equal(t, 6.5, g.WhiteScore())
	assert.Equal(t, 0.0, g.BlackScore())
	assert.Empty(t, g.Log())

	g, err = New(Options{BoardSize: 13, Komi: 6.5, KomiSide: board.Black})
	require.NoError(t, err)
	assert.Equal(t, 0.0, g.WhiteScore())
	assert.Equal(t, 6.5, g.BlackScore())
	assert.Equal(t, CreditCapturer, g.Options().Credit)

	_, err = New(Options{BoardSize: 0})
	assert.ErrorIs(t, err, errors.ErrInvalidBoardSize)

	_, err = New(Options{BoardSize: 9, Komi: -1})
	assert.ErrorIs(t, err, errors.ErrInvalidKomi)
}

func TestGame_CreatePlayer(t *testing.T) {
	t.Run("no preference fills black then white", func(t *testing.T) {
		g := newNine(t, CreditCapturer)

		p1, err := g.CreatePlayer(nil)
		require.NoError(t, err)
		p2, err := g.CreatePlayer(nil)
		require.NoError(t, err)
		_, err = g.CreatePlayer(nil)
		assert.ErrorIs(t, err, errors.ErrSeatTaken)

		side, err := g.SideOf(p1)
		require.NoError(t, err)
		assert.Equal(t, board.Black, side)
		side, err = g.SideOf(p2)
		require.NoError(t, err)
		assert.Equal(t, board.White, side)

		assert.NotEqual(t, p1.ID, p2.ID)
		assert.Equal(t, g.ID, p1.GameID)
		assert.NotEmpty(t, p1.Name)
	})

	t.Run("preferred seat", func(t *testing.T) {
		g := newNine(t, CreditCapturer)
		white := board.White

		p, err := g.CreatePlayer(&white)
		require.NoError(t, err)
		side, err := g.SideOf(p)
		require.NoError(t, err)
		assert.Equal(t, board.White, side)

		_, err = g.CreatePlayer(&white)
		assert.ErrorIs(t, err, errors.ErrSeatTaken)

		seated, ok := g.Player(board.White)
		require.True(t, ok)
		assert.Equal(t, p, seated)
		_, ok = g.Player(board.Black)
		assert.False(t, ok)

		p, err = g.CreatePlayer(nil)
		require.NoError(t, err)
		side, err = g.SideOf(p)
		require.NoError(t, err)
		assert.Equal(t, board.Black, side)
	})

	t.Run("unknown player", func(t *testing.T) {
		g := newNine(t, CreditCapturer)
		other := newNine(t, CreditCapturer)

		_, err := g.CreatePlayer(nil)
		require.NoError(t, err)
		stranger, err := other.CreatePlayer(nil)
		require.NoError(t, err)

		_, err = g.SideOf(stranger)
		assert.ErrorIs(t, err, errors.ErrUnknownPlayer)
		_, err = g.SideOf(Player{})
		assert.ErrorIs(t, err, errors.ErrUnknownPlayer)
	})
}

func TestGame_RegisterActionRejectsInvalidMoves(t *testing.T) {
	g := newNine(t, CreditCapturer)
	play(t, g, []Action{move(board.Black, 5, 5)})

	_, err := g.RegisterAction(move(board.White, 5, 5))
	assert.ErrorIs(t, err, errors.ErrOccupied)

	_, err = g.RegisterAction(move(board.White, 10, 1))
	assert.ErrorIs(t, err, errors.ErrOutOfBounds)

	_, err = g.RegisterAction(nil)
	assert.ErrorIs(t, err, errors.ErrUnknownAction)

	assert.Equal(t, []Action{move(board.Black, 5, 5)}, g.Log())
	side, _ := g.Board().Get(board.Position{X: 5, Y: 5})
	assert.Equal(t, board.Black, side)
}

func TestGame_PassIsLogged(t *testing.T) {
	g := newNine(t, CreditCapturer)
	before := g.Board().String()

	captures, err := g.RegisterAction(Pass{Color: board.Black})
	require.NoError(t, err)
	assert.Empty(t, captures)

	play(t, g, []Action{move(board.White, 1, 1), Pass{Color: board.Black}})

	assert.Equal(t, []Action{Pass{Color: board.Black}, move(board.White, 1, 1), Pass{Color: board.Black}}, g.Log())
	assert.NotEqual(t, before, g.Board().String())
	assert.Equal(t, board.Black, g.Log()[0].Side())
}

func TestGame_LogIsACopy(t *testing.T) {
	g := newNine(t, CreditCapturer)
	play(t, g, []Action{move(board.Black, 1, 1)})

	log := g.Log()
	log[0] = Pass{Color: board.White}
	assert.Equal(t, move(board.Black, 1, 1), g.Log()[0])
}

func TestGame_TwoStoneCapture(t *testing.T) {
	actions := alternate(
		[2]int{1, 1}, [2]int{2, 1}, [2]int{2, 2}, [2]int{1, 2},
		[2]int{1, 3}, [2]int{2, 3}, [2]int{3, 1}, [2]int{3, 2},
	)
	want := rows(
		".OX......",
		"O.O......",
		"XO.......",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
	)

	tests := []struct {
		credit     CreditPolicy
		whiteScore float64
		blackScore float64
	}{
		{CreditCapturer, 8.5, 0},
		{CreditOwner, 6.5, 2},
	}

	for _, tt := range tests {
		t.Run(string(tt.credit), func(t *testing.T) {
			g := newNine(t, tt.credit)
			play(t, g, actions)

			assert.Equal(t, want, g.Board().String())
			assert.Equal(t, tt.whiteScore, g.WhiteScore())
			assert.Equal(t, tt.blackScore, g.BlackScore())
			assert.Len(t, g.Log(), len(actions))
		})
	}
}

func TestGame_RingCapture(t *testing.T) {
	g := newNine(t, CreditCapturer)
	play(t, g, alternate(
		[2]int{3, 3}, [2]int{3, 4}, [2]int{4, 4}, [2]int{4, 5}, [2]int{5, 5}, [2]int{5, 6},
		[2]int{6, 6}, [2]int{6, 7}, [2]int{7, 7}, [2]int{7, 8}, [2]int{8, 8}, [2]int{8, 9},
		[2]int{2, 4}, [2]int{3, 5}, [2]int{4, 6}, [2]int{5, 7}, [2]int{3, 6}, [2]int{2, 5},
		[2]int{1, 5}, [2]int{2, 6}, [2]int{1, 6}, [2]int{1, 4}, [2]int{2, 7}, [2]int{6, 8},
		[2]int{4, 7}, [2]int{7, 9}, [2]int{5, 8}, [2]int{6, 9}, [2]int{5, 9}, [2]int{9, 9},
		[2]int{9, 8}, [2]int{1, 3}, [2]int{2, 3}, [2]int{1, 2}, [2]int{2, 2}, [2]int{1, 1},
		[2]int{2, 1},
	))

	want := rows(
		".X.......",
		".X.......",
		".XX......",
		".X.X.....",
		"X...X....",
		"X.XX.X...",
		".X.X..X..",
		"....X..XX",
		"....X....",
	)
	assert.Equal(t, want, g.Board().String())
	assert.NotContains(t, g.Board().String(), "O")
	assert.Equal(t, 0, g.Board().Count(board.White))
	assert.Equal(t, 18.0, g.BlackScore())
	assert.Equal(t, 6.5, g.WhiteScore())
}

func TestGame_MutualCaptureJudgedOnPreSweepBoard(t *testing.T) {
	actions := alternate(
		[2]int{4, 2}, [2]int{4, 3}, [2]int{5, 3}, [2]int{4, 4}, [2]int{4, 5}, [2]int{5, 4},
		[2]int{5, 5}, [2]int{3, 3}, [2]int{6, 4}, [2]int{3, 4}, [2]int{3, 2}, [2]int{3, 5},
		[2]int{2, 3}, [2]int{2, 4}, [2]int{2, 5}, [2]int{2, 6}, [2]int{1, 5}, [2]int{1, 4},
		[2]int{3, 6}, [2]int{1, 6}, [2]int{1, 3}, [2]int{2, 5}, [2]int{2, 7}, [2]int{1, 8},
		[2]int{1, 7}, [2]int{3, 7}, [2]int{1, 5},
	)
	want := rows(
		".........",
		"..XX.....",
		"XX..X....",
		".....X...",
		"...XX....",
		"..X......",
		"XXO......",
		"O........",
		".........",
	)

	tests := []struct {
		credit     CreditPolicy
		whiteScore float64
		blackScore float64
	}{
		{CreditCapturer, 9.5, 11},
		{CreditOwner, 17.5, 3},
	}

	for _, tt := range tests {
		t.Run(string(tt.credit), func(t *testing.T) {
			g := newNine(t, tt.credit)
			play(t, g, actions[:len(actions)-1])

			captures, err := g.RegisterAction(actions[len(actions)-1])
			require.NoError(t, err)

			require.Len(t, captures, 2)
			sizes := map[board.Side]int{}
			for _, c := range captures {
				sizes[c.Owner] += len(c.Stones)
			}
			assert.Equal(t, map[board.Side]int{board.White: 11, board.Black: 1}, sizes)

			assert.Equal(t, want, g.Board().String())
			assert.Equal(t, tt.whiteScore, g.WhiteScore())
			assert.Equal(t, tt.blackScore, g.BlackScore())
		})
	}
}

func TestGame_FullBoardCapturesBothSides(t *testing.T) {
	g, err := New(Options{BoardSize: 2, Komi: 6.5, KomiSide: board.White})
	require.NoError(t, err)
	play(t, g, []Action{
		move(board.Black, 1, 1),
		move(board.White, 2, 2),
		move(board.Black, 2, 1),
	})

	captures, err := g.RegisterAction(move(board.White, 1, 2))
	require.NoError(t, err)

	assert.Len(t, captures, 2)
	assert.Equal(t, "..\n..\n", g.Board().String())
	assert.Equal(t, 8.5, g.WhiteScore())
	assert.Equal(t, 2.0, g.BlackScore())
}

func TestGame_SimultaneousSeparateGroups(t *testing.T) {
	g := newNine(t, CreditCapturer)
	play(t, g, []Action{
		move(board.White, 1, 1),
		move(board.White, 3, 1),
		move(board.Black, 1, 2),
		move(board.Black, 3, 2),
		move(board.Black, 4, 1),
	})

	captures, err := g.RegisterAction(move(board.Black, 2, 1))
	require.NoError(t, err)

	require.Len(t, captures, 2)
	assert.Equal(t, board.Group{{X: 1, Y: 1}}, captures[0].Stones)
	assert.Equal(t, board.Group{{X: 3, Y: 1}}, captures[1].Stones)
	for _, c := range captures {
		assert.Equal(t, board.White, c.Owner)
		assert.Equal(t, board.Black, c.CreditedTo(CreditCapturer))
		assert.Equal(t, board.White, c.CreditedTo(CreditOwner))
	}
	assert.Equal(t, 2.0, g.BlackScore())
}

func TestGame_RightBorder(t *testing.T) {
	actions := []Action{
		move(board.Black, 9, 1),
		move(board.White, 9, 2),
		move(board.Black, 9, 3),
		move(board.White, 9, 4),
	}
	want := rows(
		"........X",
		".......X.",
		"........X",
		"........O",
		".........",
		".........",
		".........",
		".........",
		".........",
	)

	tests := []struct {
		credit     CreditPolicy
		whiteScore float64
		blackScore float64
	}{
		{CreditCapturer, 6.5, 1},
		{CreditOwner, 7.5, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.credit), func(t *testing.T) {
			g := newNine(t, tt.credit)
			play(t, g, actions)

			// the white stone at (9, 2) still has (8, 2) free; off-board is not a liberty
			// and not an occupied neighbour either.
			assert.True(t, g.Board().Contains(board.Position{X: 9, Y: 2}))

			play(t, g, []Action{move(board.Black, 8, 2)})
			assert.Equal(t, want, g.Board().String())
			assert.Equal(t, tt.whiteScore, g.WhiteScore())
			assert.Equal(t, tt.blackScore, g.BlackScore())
		})
	}
}

func TestGame_CaptureSurroundedIsIdempotent(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 1))
	g := newNine(t, CreditCapturer)
	side := board.Black
	for i := 0; i < 300; i++ {
		pos := board.Position{X: rng.IntN(9) + 1, Y: rng.IntN(9) + 1}
		if _, err := g.RegisterAction(Move{Color: side, Pos: pos}); err != nil {
			continue
		}
		side = side.Other()

		snapshot := g.Board().String()
		white, black := g.WhiteScore(), g.BlackScore()

		assert.Empty(t, g.CaptureSurrounded())
		assert.Equal(t, snapshot, g.Board().String())
		assert.Equal(t, white, g.WhiteScore())
		assert.Equal(t, black, g.BlackScore())
	}
}

func TestGame_ScoresNeverDecrease(t *testing.T) {
	for _, credit := range []CreditPolicy{CreditCapturer, CreditOwner} {
		t.Run(string(credit), func(t *testing.T) {
			rng := rand.New(rand.NewPCG(9, 9))
			g := newNine(t, credit)
			white, black := g.WhiteScore(), g.BlackScore()
			for i := 0; i < 500; i++ {
				side := board.White
				if rng.IntN(2) == 0 {
					side = board.Black
				}
				var a Action = Move{Color: side, Pos: board.Position{X: rng.IntN(11), Y: rng.IntN(11)}}
				if rng.IntN(10) == 0 {
					a = Pass{Color: side}
				}
				_, _ = g.RegisterAction(a)

				require.GreaterOrEqual(t, g.WhiteScore(), white)
				require.GreaterOrEqual(t, g.BlackScore(), black)
				white, black = g.WhiteScore(), g.BlackScore()
			}
		})
	}
}

func TestParseCreditPolicy(t *testing.T) {
	p, err := ParseCreditPolicy("Owner")
	require.NoError(t, err)
	assert.Equal(t, CreditOwner, p)

	p, err = ParseCreditPolicy("capturer")
	require.NoError(t, err)
	assert.Equal(t, CreditCapturer, p)

	_, err = ParseCreditPolicy("nobody")
	assert.Error(t, err)
}
