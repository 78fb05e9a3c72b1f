// Package statetest provides helper functions to create tests using the game state.
package statetest

import (
	. "github.com/janpfeifer/hexapawnGo/internal/state"
)

// PieceOnBoard represents a point and the owner of the piece on it.
type PieceOnBoard struct {
	Point  Point
	Player PlayerNum
}

// BuildState from a collection of pieces, with the given player to move next.
func BuildState(rules Rules, layout []PieceOnBoard, nextPlayer PlayerNum) *State {
	board := NewBoard(rules.Size)
	for _, p := range layout {
		board.Place(p.Player, p.Point)
	}
	return NewState(board, rules, nextPlayer, 1, nil)
}

// HexapawnRules returns the default rules with the hexapawn variant, and the given board size.
func HexapawnRules(size int8) Rules {
	rules := DefaultRules()
	rules.Size = size
	rules.Variant = VariantHexapawn
	return rules
}
