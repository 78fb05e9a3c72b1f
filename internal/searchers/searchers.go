// Package searchers defines the Searcher interface, implemented by the search algorithms used by the AI
// players, and a couple of simple searchers.
//
// The main searcher is implemented in the sub-package minimax.
package searchers

import (
	. "github.com/janpfeifer/hexapawnGo/internal/state"
)

// Searcher is the interface that any of the search algorithms
// must adhere to be valid.
//
// Searchers are not safe for concurrent use: create one per match.
type Searcher interface {
	// Search returns the next move to take on the given state, along with the updated State (after taking the move)
	// and the expected score of taking that move, from the point of view of the player to move in the given state.
	//
	// Optionally, it can also return the score for each of the moves in state.LegalMoves().
	// Some algorithms don't provide good approximations to those, so they return it nil.
	//
	// It panics if the state is already finished.
	Search(s *State) (move Move, next *State, score float32, movesScores []float32)
}
