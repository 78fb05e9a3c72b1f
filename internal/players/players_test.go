package players

import (
	"testing"

	"github.com/janpfeifer/hexapawnGo/internal/parameters"
	. "github.com/janpfeifer/hexapawnGo/internal/state"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlayer struct {
	params    parameters.Params
	finalized bool
}

func (p *fakePlayer) Play(s *State) (move Move, next *State, score float32, movesScores []float32) {
	move = s.LegalMoves()[0]
	return move, s.Act(move), 0, nil
}

func (p *fakePlayer) Finalize() { p.finalized = true }

type fakeModule struct {
	lastPlayer *fakePlayer
}

func (m *fakeModule) NewPlayer(matchId uint64, matchName string, playerNum PlayerNum, params parameters.Params) (Player, error) {
	if _, found := params["fail"]; found {
		return nil, errors.New("failing as requested")
	}
	m.lastPlayer = &fakePlayer{params: make(parameters.Params)}
	for _, key := range []string{"a", "b"} {
		if value, found := params[key]; found {
			m.lastPlayer.params[key] = value
			delete(params, key)
		}
	}
	return m.lastPlayer, nil
}

func TestNew(t *testing.T) {
	module := &fakeModule{}
	RegisterModule("fake", module)
	defer delete(keywordToModules, "fake")
	assert.Contains(t, RegisteredModules(), "fake")

	player, err := New(1, "test", PlayerFirst, "fake:a=1,b")
	require.NoError(t, err)
	assert.Equal(t, module.lastPlayer, player)
	assert.Equal(t, parameters.Params{"a": "1", "b": ""}, module.lastPlayer.params)

	// No parameters.
	_, err = New(1, "test", PlayerFirst, "fake")
	require.NoError(t, err)
	assert.Empty(t, module.lastPlayer.params)

	// Default config.
	defaultConfig := DefaultPlayerConfig
	DefaultPlayerConfig = "fake:a=7"
	defer func() { DefaultPlayerConfig = defaultConfig }()
	_, err = New(1, "test", PlayerFirst, "")
	require.NoError(t, err)
	assert.Equal(t, parameters.Params{"a": "7"}, module.lastPlayer.params)

	// Unknown parameters: player is finalized.
	_, err = New(1, "test", PlayerFirst, "fake:a=1,c=3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "\"c\"")
	assert.True(t, module.lastPlayer.finalized)

	_, err = New(1, "test", PlayerFirst, "fake:fail")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failing as requested")

	_, err = New(1, "test", PlayerFirst, "nope:a=1")
	require.Error(t, err)
}
