package minimax_test

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"testing"

	"github.com/janpfeifer/hexapawnGo/internal/ai"
	"github.com/janpfeifer/hexapawnGo/internal/ai/linear"
	"github.com/janpfeifer/hexapawnGo/internal/parameters"
	"github.com/janpfeifer/hexapawnGo/internal/searchers/minimax"
	. "github.com/janpfeifer/hexapawnGo/internal/state"
	. "github.com/janpfeifer/hexapawnGo/internal/state/statetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/klog/v2"
)

var scorer = linear.PreTrainedBest

func init() {
	klog.InitFlags(nil)
}

func TestOpenVariantWinsImmediately(t *testing.T) {
	s := NewGame(DefaultRules())
	searcher := minimax.New(scorer)
	move, next, score, movesScores := searcher.Search(s)
	// The first legal move, A1->A1, puts a piece of the first player in row 1.
	assert.Equal(t, Move{Point{1, 1}, Point{1, 1}}, move)
	assert.Equal(t, ai.WinGameScore, score)
	require.True(t, next.IsOver())
	assert.Equal(t, PlayerFirst, next.Winner())
	assert.Len(t, movesScores, 81)

}

func TestOpenVariantSearchIsBounded(t *testing.T) {
	// Without a moves limit the search still ends, because the player to move always has a winning move:
	// each root move is answered by at most one scan of the opponent's moves.
	s := NewGame(DefaultRules())
	require.Equal(t, 0, s.Rules.MaxMoves)
	s = s.Act(Move{Point{3, 1}, Point{2, 1}})
	require.False(t, s.IsOver())
	searcher := minimax.New(scorer).WithCacheSize(0)
	_, next, score, _ := searcher.Search(s)
	assert.Equal(t, ai.WinGameScore, score)
	assert.Equal(t, PlayerSecond, next.Winner())
	numMoves := len(s.LegalMoves())
	assert.LessOrEqual(t, searcher.Stats().Nodes, numMoves+numMoves*81)
	assert.Equal(t, 0, searcher.Stats().LeafEvals)
}

func TestHexapawnSecondPlayerWins(t *testing.T) {
	s := NewGame(HexapawnRules(3))
	searcher := minimax.New(scorer)
	move, next, score, movesScores := searcher.Search(s)
	assert.True(t, s.IsValidMove(move))
	assert.Equal(t, move, *next.LastMove)
	assert.Equal(t, -ai.WinGameScore, score)
	assert.Equal(t, []float32{-1, -1, -1}, movesScores)

	// Second player always has a winning answer.
	for _, move := range s.LegalMoves() {
		next := s.Act(move)
		_, _, score, _ := searcher.Search(next)
		assert.Equalf(t, ai.WinGameScore, score, "after %s", move)
	}
	stats := searcher.Stats()
	assert.Greater(t, stats.Nodes, 0)
	assert.Equal(t, 0, stats.LeafEvals, "full depth search should never use the scorer")
}

func TestHexapawn4x4FirstPlayerWins(t *testing.T) {
	s := NewGame(HexapawnRules(4))
	searcher := minimax.New(scorer)
	_, _, score, _ := searcher.Search(s)
	assert.Equal(t, ai.WinGameScore, score)
	assert.Greater(t, searcher.Stats().CacheHits, 0)
}

func TestPicksWinningMove(t *testing.T) {
	s := BuildState(HexapawnRules(3), []PieceOnBoard{
		{Point{3, 3}, PlayerFirst},
		{Point{2, 1}, PlayerFirst},
		{Point{1, 3}, PlayerSecond},
		{Point{2, 2}, PlayerSecond},
	}, PlayerFirst)
	move, next, score, _ := minimax.New(scorer).Search(s)
	assert.Equal(t, Move{Point{2, 1}, Point{1, 1}}, move)
	assert.Equal(t, ai.WinGameScore, score)
	assert.Equal(t, PlayerFirst, next.Winner())
}

func TestCacheSizes(t *testing.T) {
	for _, cacheSize := range []int{0, 1, 7, minimax.DefaultCacheSize} {
		searcher := minimax.New(scorer).WithCacheSize(cacheSize)
		_, _, score, _ := searcher.Search(NewGame(HexapawnRules(3)))
		assert.Equalf(t, -ai.WinGameScore, score, "cacheSize=%d", cacheSize)
		if cacheSize == 1 {
			assert.Greater(t, searcher.Stats().CacheResets, 0)
		}
		if cacheSize == 0 {
			assert.Equal(t, 0, searcher.Stats().CacheHits)
		}
	}
}

func TestMaxDepth(t *testing.T) {
	rules := HexapawnRules(5)
	s := NewGame(rules)
	searcher := minimax.New(scorer).WithMaxDepth(2)
	move, next, score, movesScores := searcher.Search(s)
	assert.True(t, s.IsValidMove(move))
	assert.Equal(t, move, *next.LastMove)
	assert.Len(t, movesScores, len(s.LegalMoves()))
	assert.Less(t, score, ai.WinGameScore)
	assert.Greater(t, score, -ai.WinGameScore)
	assert.Greater(t, searcher.Stats().LeafEvals, 0)
}

func TestSearchFinishedPanics(t *testing.T) {
	s := NewGame(DefaultRules()).Act(Move{Point{3, 1}, Point{1, 1}})
	require.True(t, s.IsOver())
	assert.Panics(t, func() { minimax.New(scorer).Search(s) })
}

func TestNewFromParams(t *testing.T) {
	params := parameters.NewFromConfigString("max_depth=3,cache_size=100,randomness=0.1")
	searcher, err := minimax.NewFromParams(scorer, params)
	require.NoError(t, err)
	assert.Equal(t, "minimax(max_depth=3, scorer=linear:best)", searcher.String())
	assert.Equal(t, parameters.Params{"randomness": "0.1"}, params)

	searcher, err = minimax.NewFromParams(scorer, parameters.Params{})
	require.NoError(t, err)
	assert.Equal(t, "minimax(full depth)", searcher.String())

	_, err = minimax.NewFromParams(scorer, parameters.Params{"max_depth": "-1"})
	assert.Error(t, err)
	_, err = minimax.NewFromParams(scorer, parameters.Params{"max_depth": "x"})
	assert.Error(t, err)
}

func TestSearchLogsPositionHash(t *testing.T) {
	var buf bytes.Buffer
	klog.LogToStderr(false)
	klog.SetOutput(&buf)
	require.NoError(t, flag.Set("v", "2"))
	defer func() {
		_ = flag.Set("v", "0")
		klog.SetOutput(os.Stderr)
		klog.LogToStderr(true)
	}()

	s := NewGame(HexapawnRules(3))
	minimax.New(scorer).Search(s)
	klog.Flush()
	assert.Contains(t, buf.String(), fmt.Sprintf("minimax: move #1 (hash=%016x)", s.Hash()))
}
