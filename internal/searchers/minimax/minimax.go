// Package minimax implements an exhaustive minimax (in its negamax form) searcher.
//
// Full-depth search is the default: the game tree is explored until every branch reaches the end of
// the game. Optionally the depth can be limited, in which case the leaves are evaluated by an
// ai.ValueScorer.
//
// Full-depth search requires rules without cycles, or with a moves limit: with VariantOpen the player
// to move can always win immediately, and with VariantHexapawn pieces only move forward.
package minimax

import (
	"fmt"
	"math"
	"time"

	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/hexapawnGo/internal/ai"
	"github.com/janpfeifer/hexapawnGo/internal/searchers"
	. "github.com/janpfeifer/hexapawnGo/internal/state"
	"k8s.io/klog/v2"
)

// Searcher implements the searchers.Searcher interface.
// It is used by players.SearcherScorer, along with the scorer, to implement an AI player (players.Player interface).
//
// It holds a cache of the values of the positions already searched, and it is not safe for concurrent use.
type Searcher struct {
	maxDepth  int
	cacheSize int
	scorer    ai.ValueScorer
	stats     Stats

	// cache of values, keyed by position and depth left to search.
	cache map[cacheKey]float32
}

// Assert that Searcher implements searchers.Searcher.
var _ searchers.Searcher = (*Searcher)(nil)

type cacheKey struct {
	key       Key
	depthLeft int
}

// Stats stores running stats collected during the search: for benchmarking, monitoring and debugging purposes.
type Stats struct {
	// Nodes "played" during search -- execution of a move in a state, following by the creation of the new state.
	Nodes int

	// LeafEvals is the number of states scored by the scorer. Finished games are not scored and don't
	// count here.
	LeafEvals int

	// CacheHits is the number of values reused from the cache.
	CacheHits int

	// CacheResets is the number of times the cache got full and was reset.
	CacheResets int
}

const (
	// DefaultCacheSize is the maximum number of positions kept in the cache.
	DefaultCacheSize = 1 << 20

	// unlimitedDepth is the value of depthLeft when there is no maximum depth.
	unlimitedDepth = -1
)

// New returns a minimax based searchers.Searcher implementation.
// There are other optional configurations, see methods Searcher.With...
//
// The scorer is only used if the search depth is limited (see WithMaxDepth), to score leaf positions.
func New(scorer ai.ValueScorer) *Searcher {
	return &Searcher{
		scorer:    scorer,
		cacheSize: DefaultCacheSize,
		cache:     make(map[cacheKey]float32),
	}
}

// WithMaxDepth sets the max depth of search: the unit here are plies (ply singular). Each player
// playing counts as one ply. See https://en.wikipedia.org/wiki/Ply_(game_theory).
//
// A value <= 0 means no limit: the search goes until the end of the game. This is the default.
func (mm *Searcher) WithMaxDepth(maxDepth int) *Searcher {
	mm.maxDepth = max(maxDepth, 0)
	return mm
}

// WithCacheSize sets the maximum number of positions kept in the cache. If it gets full, it is reset.
// A value <= 0 disables the cache.
//
// The default is DefaultCacheSize.
func (mm *Searcher) WithCacheSize(cacheSize int) *Searcher {
	mm.cacheSize = max(cacheSize, 0)
	clear(mm.cache)
	return mm
}

// Stats returns the stats accumulated over all the searches so far.
func (mm *Searcher) Stats() Stats {
	return mm.stats
}

// String implements fmt.Stringer.
func (mm *Searcher) String() string {
	if mm.maxDepth == 0 {
		return "minimax(full depth)"
	}
	return fmt.Sprintf("minimax(max_depth=%d, scorer=%s)", mm.maxDepth, mm.scorer)
}

// Search implements the searchers.Searcher interface.
//
// It scores every legal move, and it returns the first best one in the order of State.LegalMoves: so the
// result is deterministic. The score is from the point of view of s.NextPlayer: ai.WinGameScore for a
// forced win, -ai.WinGameScore for a forced loss and 0 for a draw (or a heuristic value in between, if
// the depth is limited).
func (mm *Searcher) Search(s *State) (bestMove Move, bestNext *State, bestScore float32, movesScores []float32) {
	if s.IsOver() {
		exceptions.Panicf("minimax.Search() called on a finished game: %s", s.FinishReason())
	}
	start := time.Now()
	statsBefore := mm.stats
	if mm.scorer == nil && mm.maxDepth > 0 {
		exceptions.Panicf("minimax.Search() with max_depth=%d requires a scorer", mm.maxDepth)
	}

	moves := s.LegalMoves()
	if len(moves) == 0 {
		exceptions.Panicf("minimax.Search(): no legal moves for %s", s)
	}
	childDepth := unlimitedDepth
	if mm.maxDepth > 0 {
		childDepth = mm.maxDepth - 1
	}

	movesScores = make([]float32, len(moves))
	bestScore = float32(math.Inf(-1))
	for ii, move := range moves {
		next := s.Act(move)
		mm.stats.Nodes++
		if isEnd, score := ai.IsEndGameAndScore(next); isEnd {
			// Score for s.NextPlayer, not next.NextPlayer.
			movesScores[ii] = -score
		} else {
			movesScores[ii] = -mm.value(next, childDepth)
		}
		if movesScores[ii] > bestScore {
			bestMove, bestNext, bestScore = move, next, movesScores[ii]
		}
	}

	if klog.V(2).Enabled() {
		elapsed := time.Since(start)
		klog.Infof("minimax: move #%d (hash=%016x), best=%s, score=%.3f, %d moves scored in %s",
			s.MoveNumber, s.Hash(), bestMove, bestScore, len(moves), elapsed)
		klog.Infof("  nodes=%d, leafEvals=%d, cacheHits=%d, cacheResets=%d, cacheSize=%d",
			mm.stats.Nodes-statsBefore.Nodes, mm.stats.LeafEvals-statsBefore.LeafEvals,
			mm.stats.CacheHits-statsBefore.CacheHits, mm.stats.CacheResets-statsBefore.CacheResets, len(mm.cache))
	}
	return
}

// value returns the value of the non-finished state s, from the point of view of s.NextPlayer,
// searching up to depthLeft plies (or until the end if depthLeft is unlimitedDepth).
func (mm *Searcher) value(s *State, depthLeft int) float32 {
	if depthLeft == 0 {
		mm.stats.LeafEvals++
		return mm.scorer.Score(s)
	}

	cKey := cacheKey{s.Key(), depthLeft}
	if cached, found := mm.cache[cKey]; found {
		mm.stats.CacheHits++
		return cached
	}

	// Children that end the game are scored first: if any is a win there is no need to look further.
	moves := s.LegalMoves()
	children := make([]*State, 0, len(moves))
	score := float32(math.Inf(-1))
	for _, move := range moves {
		next := s.Act(move)
		mm.stats.Nodes++
		isEnd, endScore := ai.IsEndGameAndScore(next)
		if !isEnd {
			children = append(children, next)
			continue
		}
		// Score for s.NextPlayer, not next.NextPlayer.
		endScore = -endScore
		if endScore >= ai.WinGameScore {
			mm.store(cKey, endScore)
			return endScore
		}
		score = max(score, endScore)
	}

	childDepth := unlimitedDepth
	if depthLeft > 0 {
		childDepth = depthLeft - 1
	}
	for _, child := range children {
		score = max(score, -mm.value(child, childDepth))
		if score >= ai.WinGameScore {
			// A proven win can't be improved upon.
			break
		}
	}
	if len(moves) == 0 {
		// Can't happen with the current rules (a blocked player has lost already), but taken as a draw.
		score = 0
	}
	mm.store(cKey, score)
	return score
}

// store value in the cache, resetting it if it is full.
func (mm *Searcher) store(cKey cacheKey, score float32) {
	if mm.cacheSize <= 0 {
		return
	}
	if len(mm.cache) >= mm.cacheSize {
		clear(mm.cache)
		mm.stats.CacheResets++
		if klog.V(1).Enabled() {
			klog.Infof("minimax: cache reset after reaching %d entries", mm.cacheSize)
		}
	}
	mm.cache[cKey] = score
}
