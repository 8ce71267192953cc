package game

import (
	petname "github.com/dustinkirkland/golang-petname"
	"github.com/google/uuid"
)

// Player is a seat holder. GameID refers back to the owning Game without owning it.
type Player struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	GameID uuid.UUID `json:"game_id"`
}

func newPlayer(gameID uuid.UUID) Player {
	return Player{
		ID:     uuid.New(),
		Name:   petname.Generate(2, "-"),
		GameID: gameID,
	}
}
