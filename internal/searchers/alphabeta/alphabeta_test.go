package alphabeta_test

import (
	"bytes"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"testing"

	"github.com/janpfeifer/hexapawnGo/internal/ai"
	"github.com/janpfeifer/hexapawnGo/internal/ai/linear"
	"github.com/janpfeifer/hexapawnGo/internal/parameters"
	"github.com/janpfeifer/hexapawnGo/internal/searchers/alphabeta"
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
	move, next, score, movesScores := alphabeta.New(scorer).Search(NewGame(DefaultRules()))
	assert.Equal(t, Move{Point{1, 1}, Point{1, 1}}, move)
	assert.Equal(t, ai.WinGameScore, score)
	require.True(t, next.IsOver())
	assert.Equal(t, PlayerFirst, next.Winner())
	assert.Nil(t, movesScores)
}

func TestFullDepth(t *testing.T) {
	// 3x3: second player wins.
	s := NewGame(HexapawnRules(3))
	searcher := alphabeta.New(nil).WithMaxDepth(0)
	assert.Equal(t, "alphabeta(full depth, scorer=<nil>)", searcher.String())
	_, _, score, _ := searcher.Search(s)
	assert.Equal(t, -ai.WinGameScore, score)
	for _, move := range s.LegalMoves() {
		_, _, score, _ := searcher.Search(s.Act(move))
		assert.Equalf(t, ai.WinGameScore, score, "after %s", move)
	}
	assert.Equal(t, 0, searcher.Stats().Evals)

	// 4x4: first player wins. With a scorer to order the moves.
	searcher = alphabeta.New(scorer).WithMaxDepth(0)
	move, next, score, _ := searcher.Search(NewGame(HexapawnRules(4)))
	assert.Equal(t, ai.WinGameScore, score)
	assert.Equal(t, move, *next.LastMove)
	stats := searcher.Stats()
	assert.Greater(t, stats.Prunes, 0)
	assert.Greater(t, stats.Evals, 0)
	assert.Equal(t, 0, stats.LeafEvals)
}

func TestWinningMove(t *testing.T) {
	s := BuildState(HexapawnRules(3), []PieceOnBoard{
		{Point{2, 2}, PlayerFirst},
		{Point{3, 3}, PlayerFirst},
		{Point{1, 1}, PlayerSecond},
		{Point{1, 3}, PlayerSecond},
	}, PlayerFirst)
	move, next, score, _ := alphabeta.New(scorer).WithMaxDepth(3).Search(s)
	assert.Equal(t, ai.WinGameScore, score)
	// First winning move in the order of LegalMoves, capturing at A1.
	assert.Equal(t, Move{Point{2, 2}, Point{1, 1}}, move)
	assert.True(t, next.IsOver())
}

func TestSameScoreAsMinimax(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))
	rules := HexapawnRules(4)
	var positions []*State
	for range 5 {
		s := NewGame(rules)
		for !s.IsOver() {
			positions = append(positions, s)
			moves := s.LegalMoves()
			s = s.Act(moves[rng.IntN(len(moves))])
		}
	}
	require.NotEmpty(t, positions)
	for _, depth := range []int{1, 2, 3} {
		ab := alphabeta.New(scorer).WithMaxDepth(depth)
		mm := minimax.New(scorer).WithMaxDepth(depth)
		for _, s := range positions {
			_, abNext, abScore, _ := ab.Search(s)
			_, _, mmScore, _ := mm.Search(s)
			assert.InDeltaf(t, mmScore, abScore, 1e-6, "depth=%d, state %s", depth, s)
			assert.True(t, s.IsValidMove(*abNext.LastMove))
		}
		if depth > 1 {
			assert.Greater(t, ab.Stats().Prunes, 0, "depth=%d", depth)
		}
	}
}

func TestSearchFinishedPanics(t *testing.T) {
	s := NewGame(HexapawnRules(3))
	s = s.Act(Move{Point{3, 1}, Point{2, 1}}).Act(Move{Point{1, 2}, Point{2, 1}})
	s = s.Act(Move{Point{3, 2}, Point{2, 2}}).Act(Move{Point{2, 1}, Point{3, 1}})
	require.True(t, s.IsOver())
	assert.Panics(t, func() { alphabeta.New(scorer).Search(s) })

	// Depth limited search requires a scorer.
	assert.Panics(t, func() { alphabeta.New(nil).WithMaxDepth(2).Search(NewGame(HexapawnRules(3))) })
}

func TestNewFromParams(t *testing.T) {
	params := parameters.NewFromConfigString("max_depth=4,other=1")
	searcher, err := alphabeta.NewFromParams(scorer, params)
	require.NoError(t, err)
	assert.Equal(t, "alphabeta(max_depth=4, scorer=linear:best)", searcher.String())
	assert.Len(t, params, 1)

	searcher, err = alphabeta.NewFromParams(scorer, parameters.Params{})
	require.NoError(t, err)
	assert.Equal(t, "alphabeta(max_depth=6, scorer=linear:best)", searcher.String())

	_, err = alphabeta.NewFromParams(scorer, parameters.NewFromConfigString("max_depth=-1"))
	require.Error(t, err)
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
	alphabeta.New(scorer).WithMaxDepth(2).Search(s)
	klog.Flush()
	assert.Contains(t, buf.String(), fmt.Sprintf("alphabeta: move #1 (hash=%016x)", s.Hash()))
}
