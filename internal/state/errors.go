package state

import "github.com/pkg/errors"

var (
	// ErrIllegalMove is returned when a move is not allowed by the rules in the current state.
	ErrIllegalMove = errors.New("illegal move")

	// ErrGameOver is returned when trying to play on a finished game.
	ErrGameOver = errors.New("game is over")

	// ErrInvalidPoint is returned when parsing a point from text fails.
	ErrInvalidPoint = errors.New("invalid point")

	// ErrInvalidRules is returned by Rules.Validate.
	ErrInvalidRules = errors.New("invalid rules")
)
