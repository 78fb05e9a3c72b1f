package players

import (
	"fmt"

	"github.com/janpfeifer/hexapawnGo/internal/ai"
	"github.com/janpfeifer/hexapawnGo/internal/parameters"
	"github.com/janpfeifer/hexapawnGo/internal/searchers"
	. "github.com/janpfeifer/hexapawnGo/internal/state"
	"k8s.io/klog/v2"
)

// SearcherScorer is a standard set up for an AI: a searcher and a scorer.
// It implements the Player interface.
type SearcherScorer struct {
	Searcher searchers.Searcher

	// Scorer used by the searcher, if any.
	Scorer ai.ValueScorer

	// Name of the player, used for logging.
	Name string
}

// SearcherBuilder creates a searcher for the given scorer, consuming the parameters it uses.
type SearcherBuilder func(scorer ai.ValueScorer, params parameters.Params) (searchers.Searcher, error)

// NewPlayerFromScorer creates a SearcherScorer from the scorer and a searcher created by the builder.
//
// It also handles the generic parameters (they are removed from params):
//
//   - randomness (float): Adds a layer of randomness in the search: the first level choice is
//     distributed according to a softmax of the scores of each move, divided by this value.
//     So lower values (closer to 0) means less randomness, higher value means more randomness,
//     hence more exploration. Default is 0. A winning move is always taken.
//   - max_move_randomness (int): move number after which randomness is disabled. Default is 0, meaning
//     randomness is used for the whole match.
func NewPlayerFromScorer(scorer ai.ValueScorer, builder SearcherBuilder, matchId uint64, matchName string,
	playerNum PlayerNum, params parameters.Params) (*SearcherScorer, error) {
	searcher, err := builder(scorer, params)
	if err != nil {
		return nil, err
	}
	randomness, err := parameters.PopParamOr(params, "randomness", 0.0)
	if err != nil {
		return nil, err
	}
	maxMoveRandomness, err := parameters.PopParamOr(params, "max_move_randomness", 0)
	if err != nil {
		return nil, err
	}
	name := fmt.Sprintf("%v", searcher)
	if randomness > 0 {
		name = fmt.Sprintf("%s+randomness=%g", name, randomness)
	}
	searcher = searchers.NewRandomizedSearcher(searcher, randomness, maxMoveRandomness)
	player := &SearcherScorer{
		Searcher: searcher,
		Scorer:   scorer,
		Name:     name,
	}
	if klog.V(1).Enabled() {
		klog.Infof("Match %d (%s): created AI player %s for the %s player", matchId, matchName, player, playerNum)
	}
	return player, nil
}

// Assert that SearchScorer is a Player.
var _ Player = &SearcherScorer{}

// String implements fmt.Stringer.
func (s *SearcherScorer) String() string {
	return s.Name
}

// Play implements the Player interface: it chooses a move given a State.
func (s *SearcherScorer) Play(state *State) (move Move, next *State, score float32, movesScores []float32) {
	move, next, score, movesScores = s.Searcher.Search(state)
	if klog.V(2).Enabled() {
		klog.Infof("Move #%d: AI (%s) playing %s, score=%.3f",
			state.MoveNumber, s, move, score)
	}
	return
}

// Finalize is called at the end of a match.
func (s *SearcherScorer) Finalize() {
	if klog.V(1).Enabled() {
		klog.Infof("Player %s finalized", s)
	}
	s.Scorer = nil
	s.Searcher = nil
}
