// Package alphabeta implements a depth-limited alpha-beta pruning searcher.
//
// It returns the same score as a minimax search to the same depth, but it visits far fewer positions:
// moves are explored in the order suggested by the scorer, and branches the opponent would never
// allow are pruned.
package alphabeta

import (
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/hexapawnGo/internal/ai"
	"github.com/janpfeifer/hexapawnGo/internal/generics"
	"github.com/janpfeifer/hexapawnGo/internal/searchers"
	. "github.com/janpfeifer/hexapawnGo/internal/state"
	"github.com/janpfeifer/hexapawnGo/internal/ui/cli"
	"k8s.io/klog/v2"
)

// Searcher implements the searchers.Searcher interface.
// It is used by players.SearcherScorer, along with the scorer, to implement an AI player (players.Player interface).
type Searcher struct {
	maxDepth int
	scorer   ai.ValueScorer
	stats    Stats
}

// Assert that Searcher implements searchers.Searcher.
var _ searchers.Searcher = (*Searcher)(nil)

// Stats stores running stats collected during the search: for benchmarking, monitoring and debugging purposes.
type Stats struct {
	// Nodes "played" during search -- execution of a move in a state, following by the creation of the new state.
	Nodes int

	// Evals is the number of states passed to the scorer. Finished games are not scored and don't count here.
	Evals int

	// LeafEvals is the number of Evals at the leaves of the search, where the score is final.
	LeafEvals int

	// Prunes is the number of times the search of a position was cut short.
	Prunes int
}

// DefaultMaxDepth for search.
const DefaultMaxDepth = 6

// New returns an Alpha-Beta Pruning based searchers.Searcher implementation.
// There are other optional configurations, see methods Searcher.With...
//
// The scorer is used to order the moves, and to score the leaves of the search. It can only be nil for
// full depth searches (see WithMaxDepth), in which case moves are explored in the order of State.LegalMoves.
//
// See: wikipedia.org/wiki/Alpha-beta_pruning
func New(scorer ai.ValueScorer) *Searcher {
	return &Searcher{
		scorer:   scorer,
		maxDepth: DefaultMaxDepth,
	}
}

// WithMaxDepth sets the max depth of search: the unit here are plies (ply singular). Each player
// playing counts as one ply. See https://en.wikipedia.org/wiki/Ply_(game_theory).
//
// A value <= 0 means no limit: the search goes until the end of the game.
//
// The default is DefaultMaxDepth.
func (ab *Searcher) WithMaxDepth(maxDepth int) *Searcher {
	ab.maxDepth = max(maxDepth, 0)
	return ab
}

// Stats returns the stats accumulated over all the searches so far.
func (ab *Searcher) Stats() Stats {
	return ab.stats
}

// String implements fmt.Stringer.
func (ab *Searcher) String() string {
	if ab.maxDepth == 0 {
		return fmt.Sprintf("alphabeta(full depth, scorer=%v)", ab.scorer)
	}
	return fmt.Sprintf("alphabeta(max_depth=%d, scorer=%v)", ab.maxDepth, ab.scorer)
}

var muLogState sync.Mutex

// Search implements the Searcher interface.
//
// It returns movesScores always nil, because it wouldn't be a good approximation for the non-best move.
// This is because of the pruning aspect of the algorithm: bad moves are cut short, so alpha-beta pruning score
// estimation for bad moves will not be a good one.
func (ab *Searcher) Search(s *State) (bestMove Move, bestNext *State, bestScore float32, movesScores []float32) {
	if s.IsOver() {
		exceptions.Panicf("alphabeta.Search() called on a finished game: %s", s.FinishReason())
	}
	if ab.scorer == nil && ab.maxDepth > 0 {
		exceptions.Panicf("alphabeta.Search() with max_depth=%d requires a scorer", ab.maxDepth)
	}
	start := time.Now()
	statsBefore := ab.stats
	depth := ab.maxDepth
	if depth == 0 {
		depth = -1
	}
	inf := float32(math.Inf(1))
	bestMove, bestNext, bestScore = ab.recursion(s, depth, -inf, inf)

	if klog.V(3).Enabled() {
		muLogState.Lock()
		ui := cli.NewWithIO(os.Stdin, os.Stdout, false, false)
		ui.Println()
		ui.PrintPlayer(s)
		ui.Printf(" - Move #%d: best move found %s, αβ-score=%.2f\n\n", s.MoveNumber, bestMove, bestScore)
		ui.PrintBoard(bestNext)
		ui.Println()
		muLogState.Unlock()
	}
	if klog.V(2).Enabled() {
		elapsed := time.Since(start)
		nodes := ab.stats.Nodes - statsBefore.Nodes
		klog.Infof("alphabeta: move #%d (hash=%016x), best=%s, score=%.3f, searched in %s",
			s.MoveNumber, s.Hash(), bestMove, bestScore, elapsed)
		klog.Infof("  nodes=%d (%.1f nodes/s), evals=%d, leafEvals=%d, prunes=%d",
			nodes, float64(nodes)/elapsed.Seconds(), ab.stats.Evals-statsBefore.Evals,
			ab.stats.LeafEvals-statsBefore.LeafEvals, ab.stats.Prunes-statsBefore.Prunes)
	}
	return
}

// recursion of the alpha-beta pruning algorithm (negamax form), with depthLeft plies to go, or unlimited if
// depthLeft is negative. Scores are from the point of view of s.NextPlayer.
//
// The returned score is exact if it falls within (alpha, beta), otherwise it is a bound.
func (ab *Searcher) recursion(s *State, depthLeft int, alpha, beta float32) (bestMove Move, bestNext *State, bestScore float32) {
	isLeaf := depthLeft == 1
	moves := s.LegalMoves()
	if len(moves) == 0 {
		exceptions.Panicf("alphabeta: no legal moves for %s", s)
	}

	// Scoring all children first, even if they are not leaves, to order the search: it prunes more if the
	// better moves are searched first.
	children, scores, winIdx := ab.expandAndScore(s, moves, isLeaf)
	if winIdx >= 0 {
		return moves[winIdx], children[winIdx], ai.WinGameScore
	}

	bestScore = float32(math.Inf(-1))
	ordering := generics.SliceOrdering(scores, true) // Reverse order by score.
	for _, moveIdx := range ordering {
		// Only follows recursion if this move doesn't end the match.
		if !isLeaf && !children[moveIdx].IsOver() {
			// Runs alpha-beta for the opponent, so the window is negated and reversed.
			_, _, score := ab.recursion(children[moveIdx], depthLeft-1, -beta, -alpha)
			scores[moveIdx] = -score
		}
		if scores[moveIdx] > bestScore {
			bestMove, bestNext, bestScore = moves[moveIdx], children[moveIdx], scores[moveIdx]
		}
		alpha = max(alpha, bestScore)
		if alpha >= beta {
			// The opponent will never take this path, so we can prune the search and stop here.
			ab.stats.Prunes++
			return
		}
	}
	return
}

// expandAndScore creates the states after playing each of the moves and scores them for s.NextPlayer.
//
// If any of the moves wins the game, it returns immediately with its index in winIdx, without using the scorer.
// Otherwise, winIdx is -1.
func (ab *Searcher) expandAndScore(s *State, moves []Move, isLeaf bool) (children []*State, scores []float32, winIdx int) {
	children = make([]*State, len(moves))
	scores = make([]float32, len(moves))
	toScore := make([]int, 0, len(moves))
	for ii, move := range moves {
		children[ii] = s.Act(move)
		ab.stats.Nodes++
		if isEnd, score := ai.IsEndGameAndScore(children[ii]); isEnd {
			// Score for s.NextPlayer, not children[ii].NextPlayer.
			scores[ii] = -score
			if scores[ii] >= ai.WinGameScore {
				return children[:ii+1], scores[:ii+1], ii
			}
			continue
		}
		toScore = append(toScore, ii)
	}
	winIdx = -1
	if ab.scorer == nil {
		return
	}
	for _, ii := range toScore {
		scores[ii] = -ab.scorer.Score(children[ii])
	}
	ab.stats.Evals += len(toScore)
	if isLeaf {
		ab.stats.LeafEvals += len(toScore)
	}
	return
}
