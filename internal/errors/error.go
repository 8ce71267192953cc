package errors

import "errors"

var (
	ErrOutOfBounds      = errors.New("position is out of bounds")
	ErrOccupied         = errors.New("position is already occupied")
	ErrSeatTaken        = errors.New("desired player seat is already taken")
	ErrUnknownPlayer    = errors.New("player is not in the game")
	ErrUnknownAction    = errors.New("unknown action")
	ErrInvalidBoardSize = errors.New("invalid board size")
	ErrInvalidKomi      = errors.New("invalid komi")
	ErrUnknownCommand   = errors.New("unknown command")
	ErrSGFBoardTooLarge = errors.New("board is too large for sgf coordinates")
)
