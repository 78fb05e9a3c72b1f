package searchers

import (
	"math/rand/v2"

	"github.com/gomlx/exceptions"
	. "github.com/janpfeifer/hexapawnGo/internal/state"
)

// Random is a Searcher that picks uniformly among the legal moves. It is used as a baseline to compare AIs.
type Random struct {
	rng *rand.Rand
}

// Assert Random is a Searcher.
var _ Searcher = (*Random)(nil)

// NewRandom returns a Random searcher. If seed is 0 a random seed is used.
func NewRandom(seed uint64) *Random {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Random{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Search implements the Searcher interface. The score returned is always 0, and it returns no scores for
// the individual moves.
func (r *Random) Search(s *State) (move Move, next *State, score float32, movesScores []float32) {
	if s.IsOver() {
		exceptions.Panicf("Random.Search() called on a finished game: %s", s.FinishReason())
	}
	moves := s.LegalMoves()
	if len(moves) == 0 {
		exceptions.Panicf("Random.Search(): no legal moves for %s", s)
	}
	move = moves[r.rng.IntN(len(moves))]
	next = s.Act(move)
	return
}

// String implements fmt.Stringer.
func (r *Random) String() string {
	return "random"
}
