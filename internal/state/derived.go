// This file holds the State: a snapshot of the game, and the transitions between states.

package state

import (
	"fmt"
	"iter"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// FinishReason describes why a game ended.
type FinishReason uint8

const (
	NotFinished FinishReason = iota
	ReachedFarRow
	Blocked
	MaxMovesReached
)

// State is an immutable snapshot of the game. New states are only created by NewGame, NewState and
// State.Act, and nothing should change a State after it is created: historical states remain valid.
type State struct {
	Board      Board
	NextPlayer PlayerNum

	// LastMove played, nil for the initial state.
	LastMove *Move

	// MoveNumber starts at 1 and is incremented at every ply.
	MoveNumber int

	Rules Rules

	// Derived information, built once when the state is created.
	Derived Derived
}

// Derived holds information that is generated from the State.
type Derived struct {
	Finished bool
	Winner   PlayerNum
	Reason   FinishReason
}

// NewGame creates the initial state: the first player fills its home row (the last one), and the
// second player fills row 1. The first player moves first.
func NewGame(rules Rules) *State {
	if err := rules.Validate(); err != nil {
		exceptions.Panicf("NewGame(): %v", err)
	}
	board := NewBoard(rules.Size)
	for col := int8(1); col <= rules.Size; col++ {
		board.Place(PlayerSecond, Point{rules.HomeRow(PlayerSecond), col})
		board.Place(PlayerFirst, Point{rules.HomeRow(PlayerFirst), col})
	}
	return NewState(board, rules, PlayerFirst, 1, nil)
}

// NewState creates a state from an arbitrary board position. Used by tests and when replaying matches.
func NewState(board Board, rules Rules, nextPlayer PlayerNum, moveNumber int, lastMove *Move) *State {
	if board.Size() != rules.Size {
		exceptions.Panicf("NewState(): board size %d doesn't match rules size %d", board.Size(), rules.Size)
	}
	if nextPlayer >= PlayerInvalid {
		exceptions.Panicf("NewState(): invalid next player %s", nextPlayer)
	}
	s := &State{
		Board:      board,
		NextPlayer: nextPlayer,
		LastMove:   lastMove,
		MoveNumber: moveNumber,
		Rules:      rules,
	}
	s.buildDerived()
	return s
}

// buildDerived checks, in order: a player reaching its far row (first player checked first), the
// player to move being blocked (hexapawn variant only) and the moves limit.
func (s *State) buildDerived() {
	d := Derived{Winner: PlayerInvalid}
	switch {
	case s.Board.HasPieceInRow(PlayerFirst, s.Rules.FarRow(PlayerFirst)):
		d = Derived{Finished: true, Winner: PlayerFirst, Reason: ReachedFarRow}
	case s.Board.HasPieceInRow(PlayerSecond, s.Rules.FarRow(PlayerSecond)):
		d = Derived{Finished: true, Winner: PlayerSecond, Reason: ReachedFarRow}
	case s.Rules.Variant == VariantHexapawn && !s.hasPawnMove(s.NextPlayer):
		d = Derived{Finished: true, Winner: s.NextPlayer.Other(), Reason: Blocked}
	case s.Rules.MaxMoves > 0 && s.MoveNumber > s.Rules.MaxMoves:
		d = Derived{Finished: true, Winner: PlayerInvalid, Reason: MaxMovesReached}
	}
	s.Derived = d
}

// isPawnMove returns whether move is a one row forward pawn move for player: straight into an
// empty point, or diagonal capturing an opponent's piece.
func (s *State) isPawnMove(player PlayerNum, move Move) bool {
	if owner, ok := s.Board.Get(move.From); !ok || owner != player {
		return false
	}
	if !s.Board.IsOnGrid(move.To) || move.To.Row-move.From.Row != s.Rules.Forward(player) {
		return false
	}
	target, occupied := s.Board.Get(move.To)
	switch move.To.Col - move.From.Col {
	case 0:
		return !occupied
	case -1, 1:
		return occupied && target == player.Other()
	}
	return false
}

// PawnMoves iterates over the pawn moves (one row forward, straight or capturing) available to the player,
// independent of the rules variant or of whose turn it is.
func (s *State) PawnMoves(player PlayerNum) iter.Seq[Move] {
	return func(yield func(Move) bool) {
		forward := s.Rules.Forward(player)
		for from := range s.Board.Points() {
			if owner, ok := s.Board.Get(from); !ok || owner != player {
				continue
			}
			for deltaCol := int8(-1); deltaCol <= 1; deltaCol++ {
				move := Move{from, Point{from.Row + forward, from.Col + deltaCol}}
				if s.isPawnMove(player, move) && !yield(move) {
					return
				}
			}
		}
	}
}

// hasPawnMove returns whether player has any pawn move available.
func (s *State) hasPawnMove(player PlayerNum) bool {
	for range s.PawnMoves(player) {
		return true
	}
	return false
}

// IsValidMove returns whether the move can be played by NextPlayer.
//
// With VariantOpen any move between two points of the grid is valid while the game is not over.
// With VariantHexapawn only pawn moves of NextPlayer's pieces are valid.
func (s *State) IsValidMove(move Move) bool {
	if s.IsOver() || !s.Board.IsOnGrid(move.From) || !s.Board.IsOnGrid(move.To) {
		return false
	}
	switch s.Rules.Variant {
	case VariantHexapawn:
		return s.isPawnMove(s.NextPlayer, move)
	default:
		return true
	}
}

// LegalMoves enumerates every (origin, destination) pair of points, in row-major order of the origin
// and then of the destination, and returns those that are valid. It is calculated at every call.
func (s *State) LegalMoves() []Move {
	size := int(s.Rules.Size)
	moves := make([]Move, 0, size*size)
	for from := range s.Board.Points() {
		for to := range s.Board.Points() {
			move := Move{From: from, To: to}
			if s.IsValidMove(move) {
				moves = append(moves, move)
			}
		}
	}
	return moves
}

// Act returns the new State after NextPlayer plays the move. The receiver is not changed.
//
// It doesn't check the move is valid, see CheckedAct.
func (s *State) Act(move Move) *State {
	next := &State{
		Board:      s.Board,
		NextPlayer: s.NextPlayer.Other(),
		LastMove:   &move,
		MoveNumber: s.MoveNumber + 1,
		Rules:      s.Rules,
	}
	next.Board.MovePawn(s.NextPlayer, move.From, move.To)
	next.buildDerived()
	return next
}

// CheckedAct is like Act, but it returns an error wrapping ErrGameOver or ErrIllegalMove if the
// move can't be played.
func (s *State) CheckedAct(move Move) (*State, error) {
	if s.IsOver() {
		return nil, errors.Wrapf(ErrGameOver, "can't play %s at move #%d: %s", move, s.MoveNumber, s.FinishReason())
	}
	if !s.IsValidMove(move) {
		return nil, errors.Wrapf(ErrIllegalMove, "%s player can't play %s with %s rules", s.NextPlayer, move, s.Rules.Variant)
	}
	return s.Act(move), nil
}

// IsOver returns whether the game is finished.
func (s *State) IsOver() bool {
	return s.Derived.Finished
}

// Winner returns the player that won, or PlayerInvalid if the game is not over or is a draw.
func (s *State) Winner() PlayerNum {
	return s.Derived.Winner
}

// IsDraw returns whether the game finished without a winner.
func (s *State) IsDraw() bool {
	return s.Derived.Finished && s.Derived.Winner == PlayerInvalid
}

// FinishReason returns a human-readable description of why the game ended.
func (s *State) FinishReason() string {
	switch s.Derived.Reason {
	case NotFinished:
		return "game not finished yet"
	case ReachedFarRow:
		return fmt.Sprintf("%s player (%s) reached row %d", s.Winner(), s.Winner().Symbol(), s.Rules.FarRow(s.Winner()))
	case Blocked:
		return fmt.Sprintf("%s player (%s) has no moves left", s.NextPlayer, s.NextPlayer.Symbol())
	case MaxMovesReached:
		return fmt.Sprintf("max number of moves %d was reached", s.Rules.MaxMoves)
	}
	return "unknown reason!?"
}

// String returns a one line summary of the state.
func (s *State) String() string {
	if s.IsOver() {
		return fmt.Sprintf("Move #%d, finished: %s", s.MoveNumber, s.FinishReason())
	}
	return fmt.Sprintf("Move #%d, %s player (%s) to play", s.MoveNumber, s.NextPlayer, s.NextPlayer.Symbol())
}
