package searchers

import (
	"math"
	"math/rand/v2"
	"slices"

	"github.com/gomlx/exceptions"
	. "github.com/janpfeifer/hexapawnGo/internal/state"
	"k8s.io/klog/v2"
)

// NewRandomizedSearcher adds randomness to the move taken by an existing Searcher.
// Args:
//
//   - searcher: Baseline Searcher.
//   - randomness (>=0): Amount of randomness to use: it is applied as a divisor to the scores
//     returned by the Searcher, except if there is a winning move.
//     The larger the value the more it leads to randomness (exploration), and lower values
//     lead to "pick the best scoring move" (exploitation), with zero meaning no randomness.
//   - maxMoveRandomness: starting at this move no more randomness is used. This allows
//     randomness to be used only earlier in the match. If <= 0, randomness is used in all moves.
func NewRandomizedSearcher(searcher Searcher, randomness float64, maxMoveRandomness int) Searcher {
	if randomness <= 0 {
		// Without randomness, simply return the original Searcher.
		return searcher
	}
	return &randomizedSearcher{
		searcher:          searcher,
		randomness:        randomness,
		maxMoveRandomness: maxMoveRandomness,
		rng:               rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// randomizedSearcher is a meta Searcher, that introduces randomness to its scorer.
type randomizedSearcher struct {
	searcher          Searcher
	randomness        float64
	maxMoveRandomness int
	rng               *rand.Rand
}

// Assert randomizedSearcher is a Searcher.
var _ Searcher = &randomizedSearcher{}

// Search implements the Searcher interface.
func (rs *randomizedSearcher) Search(s *State) (chosenMove Move, next *State, score float32, movesScores []float32) {
	// Get scores from base searcher for current state.
	chosenMove, next, score, movesScores = rs.searcher.Search(s)

	// If we reached the max move number for randomness, or if the searcher doesn't return scores for the
	// different moves, or if there is only one move possible, or if it is an end-game move,
	// we don't add any randomness.
	if (rs.maxMoveRandomness > 0 && s.MoveNumber >= rs.maxMoveRandomness) || next.IsOver() || len(movesScores) <= 1 {
		return
	}
	moves := s.LegalMoves()
	if len(movesScores) != len(moves) {
		exceptions.Panicf("randomizedSearcher: Searcher returned %d movesScores, but state has %d moves!?", len(movesScores), len(moves))
	}

	// Calculate probability for each move.
	logits := make([]float64, len(movesScores))
	for ii, score := range movesScores {
		logits[ii] = float64(score) / rs.randomness
	}
	probabilities := softmax(logits)

	// Select from probabilities.
	chance := rs.rng.Float64()
	for moveIdx, value := range probabilities {
		if chance > value && moveIdx < len(probabilities)-1 {
			chance -= value
			continue
		}

		// Found the new move:
		if klog.V(2).Enabled() {
			klog.Infof("randomizedSearcher selection: move=%s, score=%.3f", moves[moveIdx], movesScores[moveIdx])
		}
		if moves[moveIdx] == chosenMove {
			// randomizedSearcher chose the same as the base searcher.
			return
		}
		chosenMove = moves[moveIdx]
		next = s.Act(chosenMove)
		score = movesScores[moveIdx]
		return
	}
	// It should not reach here.
	exceptions.Panicf("Nothing selected!? remaining chance=%f, probabilities=%v", chance, probabilities)
	return
}

func softmax(values []float64) (probs []float64) {
	probs = make([]float64, len(values))
	var sum float64

	// Subtract maxValue from all values keep the probability the same, but makes for more numerically stable
	// values.
	maxValue := slices.Max(values)
	for ii, value := range values {
		probs[ii] = math.Exp(value - maxValue)
		sum += probs[ii]
	}
	for ii := range probs {
		probs[ii] /= sum
	}
	return
}
