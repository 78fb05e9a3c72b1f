// Package _default registers the default players that can be included in any
// front-end for hexapawnGo.
//
// Currently, it includes the "minimax" player (a linear model scoring the leaves, if the depth is limited),
// the "alphabeta" player (same, with pruning) and the "random" player.
package _default

import (
	"github.com/janpfeifer/hexapawnGo/internal/ai"
	"github.com/janpfeifer/hexapawnGo/internal/ai/linear"
	"github.com/janpfeifer/hexapawnGo/internal/parameters"
	"github.com/janpfeifer/hexapawnGo/internal/players"
	"github.com/janpfeifer/hexapawnGo/internal/searchers"
	"github.com/janpfeifer/hexapawnGo/internal/searchers/alphabeta"
	"github.com/janpfeifer/hexapawnGo/internal/searchers/minimax"
	"github.com/janpfeifer/hexapawnGo/internal/state"
)

func init() {
	players.RegisterModule("minimax", &Minimax{})
	players.RegisterModule("alphabeta", &AlphaBeta{})
	players.RegisterModule("random", &Random{})
}

// Minimax implements a minimax player. Parameters:
//
//   - max_depth (int): 0 (default) for full depth search, otherwise leaves at this depth are scored by
//     the linear model.
//   - linear (string): linear model used to score the leaves: "best" (default), "v0", "v1" or a path to a file.
//   - cache_size (int): max number of positions cached.
//   - randomness, max_move_randomness: see players.NewPlayerFromScorer.
type Minimax struct{}

// Assert Minimax implements Module.
var _ players.Module = (*Minimax)(nil)

// NewPlayer implements players.Module.
func (m *Minimax) NewPlayer(matchId uint64, matchName string, playerNum state.PlayerNum, params parameters.Params) (players.Player, error) {
	scorer, err := linear.NewFromParams(params)
	if err != nil {
		return nil, err
	}
	player, err := players.NewPlayerFromScorer(scorer, func(scorer ai.ValueScorer, params parameters.Params) (searchers.Searcher, error) {
		return minimax.NewFromParams(scorer, params)
	}, matchId, matchName, playerNum, params)
	if err != nil {
		return nil, err
	}
	return player, nil
}

// AlphaBeta implements an alpha-beta pruning player. Parameters:
//
//   - max_depth (int): 0 for full depth search, default is alphabeta.DefaultMaxDepth.
//   - linear (string): linear model used to order the moves and score the leaves, see Minimax.
//   - randomness, max_move_randomness: see players.NewPlayerFromScorer.
type AlphaBeta struct{}

// Assert AlphaBeta implements Module.
var _ players.Module = (*AlphaBeta)(nil)

// NewPlayer implements players.Module.
func (m *AlphaBeta) NewPlayer(matchId uint64, matchName string, playerNum state.PlayerNum, params parameters.Params) (players.Player, error) {
	scorer, err := linear.NewFromParams(params)
	if err != nil {
		return nil, err
	}
	player, err := players.NewPlayerFromScorer(scorer, func(scorer ai.ValueScorer, params parameters.Params) (searchers.Searcher, error) {
		return alphabeta.NewFromParams(scorer, params)
	}, matchId, matchName, playerNum, params)
	if err != nil {
		return nil, err
	}
	return player, nil
}

// Random implements a player that picks uniformly among the legal moves. Parameters:
//
//   - seed (int): random seed, if 0 (default) a random one is used.
type Random struct{}

// Assert Random implements Module.
var _ players.Module = (*Random)(nil)

// NewPlayer implements players.Module.
func (r *Random) NewPlayer(matchId uint64, matchName string, playerNum state.PlayerNum, params parameters.Params) (players.Player, error) {
	player, err := players.NewPlayerFromScorer(nil, func(_ ai.ValueScorer, params parameters.Params) (searchers.Searcher, error) {
		seed, err := parameters.PopParamOr(params, "seed", 0)
		if err != nil {
			return nil, err
		}
		return searchers.NewRandom(uint64(seed)), nil
	}, matchId, matchName, playerNum, params)
	if err != nil {
		return nil, err
	}
	return player, nil
}
