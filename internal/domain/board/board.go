package board

import (
	"fmt"
	"iter"
	"strings"

	"suntzu/internal/errors"
)

// Position is a 1-indexed intersection of the board.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

type Side int8

const (
	none Side = iota
	White
	Black
)

func (s Side) String() string {
	switch s {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "None"
	}
}

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == White {
		return Black
	}
	return White
}

func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return White, nil
	case "black", "b":
		return Black, nil
	}
	return none, fmt.Errorf("unknown side %q", s)
}

// Board is a square grid of side n. Cells are stored densely at (x-1, y-1).
type Board struct {
	n     int
	cells []Side
}

func New(n int) *Board {
	if n < 0 {
		n = 0
	}
	return &Board{
		n:     n,
		cells: make([]Side, n*n),
	}
}

func (b *Board) Size() int {
	return b.n
}

func (b *Board) InBounds(pos Position) bool {
	return 1 <= pos.X && pos.X <= b.n && 1 <= pos.Y && pos.Y <= b.n
}

// index must only be called with in-bounds positions.
func (b *Board) index(pos Position) int {
	return (pos.Y-1)*b.n + (pos.X - 1)
}

func (b *Board) Contains(pos Position) bool {
	_, ok := b.Get(pos)
	return ok
}

// Get returns the side of the stone at pos. ok is false for empty and off-board positions.
func (b *Board) Get(pos Position) (side Side, ok bool) {
	if !b.InBounds(pos) {
		return none, false
	}
	side = b.cells[b.index(pos)]
	return side, side != none
}

// Place puts a stone on the board. Only bounds and occupancy are checked.
func (b *Board) Place(pos Position, side Side) error {
	if !b.InBounds(pos) {
		return fmt.Errorf("place %s at %s: %w", side, pos, errors.ErrOutOfBounds)
	}
	if b.Contains(pos) {
		return fmt.Errorf("place %s at %s: %w", side, pos, errors.ErrOccupied)
	}
	if side != White && side != Black {
		return fmt.Errorf("place %s at %s: unknown side", side, pos)
	}

	b.cells[b.index(pos)] = side
	return nil
}

func (b *Board) remove(pos Position) {
	if b.InBounds(pos) {
		b.cells[b.index(pos)] = none
	}
}

var dirs = [4][2]int{{-1, 0}, {0, 1}, {1, 0}, {0, -1}}

// AdjacentPositions returns the orthogonal neighbours of pos that lie on the board,
// in left, up, right, down order.
func (b *Board) AdjacentPositions(pos Position) []Position {
	adjacent := make([]Position, 0, len(dirs))
	for _, d := range dirs {
		c := Position{X: pos.X + d[0], Y: pos.Y + d[1]}
		if b.InBounds(c) {
			adjacent = append(adjacent, c)
		}
	}
	return adjacent
}

// Neighbours returns the occupied adjacent positions, whatever their side.
func (b *Board) Neighbours(pos Position) []Position {
	var neighbours []Position
	for _, c := range b.AdjacentPositions(pos) {
		if b.Contains(c) {
			neighbours = append(neighbours, c)
		}
	}
	return neighbours
}

// Liberties returns the empty adjacent positions.
func (b *Board) Liberties(pos Position) []Position {
	var liberties []Position
	for _, c := range b.AdjacentPositions(pos) {
		if !b.Contains(c) {
			liberties = append(liberties, c)
		}
	}
	return liberties
}

// Stones yields every occupied position scanning x then y from 1.
func (b *Board) Stones() iter.Seq2[Position, Side] {
	return func(yield func(Position, Side) bool) {
		for x := 1; x <= b.n; x++ {
			for y := 1; y <= b.n; y++ {
				pos := Position{X: x, Y: y}
				if side, ok := b.Get(pos); ok {
					if !yield(pos, side) {
						return
					}
				}
			}
		}
	}
}

func (b *Board) Count(side Side) int {
	count := 0
	for _, c := range b.cells {
		if c == side {
			count++
		}
	}
	return count
}

// String renders the board one row per line, y=1 first: '.' empty, 'O' White, 'X' Black.
func (b *Board) String() string {
	var builder strings.Builder
	builder.Grow((b.n + 1) * b.n)
	for y := 1; y <= b.n; y++ {
		for x := 1; x <= b.n; x++ {
			builder.WriteByte(Symbol(b.cells[b.index(Position{X: x, Y: y})]))
		}
		builder.WriteByte('\n')
	}
	return builder.String()
}

// Symbol is the text glyph used for a cell holding side.
func Symbol(side Side) byte {
	switch side {
	case White:
		return 'O'
	case Black:
		return 'X'
	default:
		return '.'
	}
}
