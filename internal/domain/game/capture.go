package game

import (
	"suntzu/internal/domain/board"
)

// Capture describes a group removed by a sweep.
type Capture struct {
	Owner  board.Side  `json:"owner"`
	Stones board.Group `json:"stones"`
}

// CreditedTo is the side whose score received the stones under policy.
func (c Capture) CreditedTo(policy CreditPolicy) board.Side {
	if policy == CreditOwner {
		return c.Owner
	}
	return c.Owner.Other()
}

// CaptureSurrounded removes every group without liberties and credits the scores.
// All groups are judged on the board as it was before the first removal.
func (g *Game) CaptureSurrounded() []Capture {
	var dead []board.Group
	for _, group := range g.board.Groups() {
		if g.board.IsSurrounded(group) {
			dead = append(dead, group)
		}
	}

	captures := make([]Capture, 0, len(dead))
	for _, group := range dead {
		owner, _ := g.board.Get(group[0])
		c := Capture{Owner: owner, Stones: group}
		g.addScore(c.CreditedTo(g.opts.Credit), float64(len(group)))
		g.board.DeleteGroup(group)
		captures = append(captures, c)
	}
	return captures
}
