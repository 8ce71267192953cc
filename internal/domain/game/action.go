package game

import (
	"fmt"

	"suntzu/internal/domain/board"
)

// Action is either a Move or a Pass. The set is closed: only this package implements it.
type Action interface {
	Side() board.Side
	action()
}

type Move struct {
	Color board.Side     `json:"color"`
	Pos   board.Position `json:"pos"`
}

func (m Move) Side() board.Side { return m.Color }
func (Move) action()            {}

func (m Move) String() string {
	return fmt.Sprintf("%s plays %s", m.Color, m.Pos)
}

type Pass struct {
	Color board.Side `json:"color"`
}

func (p Pass) Side() board.Side { return p.Color }
func (Pass) action()            {}

func (p Pass) String() string {
	return fmt.Sprintf("%s passes", p.Color)
}
