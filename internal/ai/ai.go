// Package ai (Artificial Intelligence) defines standard interfaces that AIs for the game
// have to implement.
package ai

import (
	"github.com/chewxy/math32"
	. "github.com/janpfeifer/hexapawnGo/internal/state"
)

// WinGameScore for the winning side. For the losing side it is -WinGameScore, and a draw is 0.
const WinGameScore = float32(1)

// SquashScore converts any score to a value between +WinGameScore and -WinGameScore
// by using then tanh(x) function -- a type of S curve.
//
// Notice that for large values of x, the result rounds to exactly WinGameScore: scorers that
// need to be distinguishable from actual wins should scale it down.
func SquashScore(x float32) float32 {
	return math32.Tanh(x) * WinGameScore
}

// ValueScorer or aka. as a "value scorer" returns a score (value) for a given state.
//
// A value score represents how likely the player to move (State.NextPlayer) is to win:
// +1 represents a sure win, -1 a sure loss, and 0 a draw.
type ValueScorer interface {
	Score(s *State) float32
	String() string
}

// IsEndGameAndScore returns weather it's the end of the game, and the hard-coded score of a win/loss/draw
// for the player to move if it is finished.
// If isEnd is false, the score should be ignored.
func IsEndGameAndScore(s *State) (isEnd bool, score float32) {
	if !s.IsOver() {
		return false, 0
	}
	if s.IsDraw() {
		return true, 0
	}
	if s.Winner() == s.NextPlayer {
		// Current player wins.
		return true, WinGameScore
	}
	// Opponent player wins.
	return true, -WinGameScore
}
