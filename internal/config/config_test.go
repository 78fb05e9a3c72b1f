package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/janpfeifer/hexapawnGo/internal/state"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Rules.Size)
	assert.Equal(t, "open", cfg.Rules.Variant)
	assert.Equal(t, 0, cfg.Rules.MaxMoves)
	assert.Equal(t, "human", cfg.Players.First)
	assert.Equal(t, "minimax", cfg.Players.AI)
	assert.False(t, cfg.UI.NoColor)

	rules, err := cfg.Rules.StateRules()
	require.NoError(t, err)
	assert.Equal(t, state.DefaultRules(), rules)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hexapawn.yaml")
	content := `
rules:
  size: 4
  variant: hexapawn
  max-moves: -1
players:
  first: ai
  ai: "minimax:max_depth=3"
ui:
  no-color: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ai", cfg.Players.First)
	assert.Equal(t, "minimax:max_depth=3", cfg.Players.AI)
	assert.True(t, cfg.UI.NoColor)

	rules, err := cfg.Rules.StateRules()
	require.NoError(t, err)
	assert.Equal(t, state.Rules{Size: 4, Variant: state.VariantHexapawn, MaxMoves: 0}, rules)

	// Environment variables take precedence.
	t.Setenv("HEXAPAWN_SIZE", "5")
	t.Setenv("HEXAPAWN_AI2", "random")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Rules.Size)
	assert.Equal(t, "random", cfg.Players.AI2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestStateRulesErrors(t *testing.T) {
	for _, rules := range []Rules{
		{Size: 2, Variant: "open"},
		{Size: 300, Variant: "open"},
		{Size: 3, Variant: "chess"},
	} {
		_, err := rules.StateRules()
		require.Errorf(t, err, "rules %+v", rules)
		assert.Truef(t, errors.Is(err, state.ErrInvalidRules), "rules %+v", rules)
	}
}

func TestDescription(t *testing.T) {
	description := Description()
	assert.Contains(t, description, "HEXAPAWN_SIZE")
	assert.Contains(t, description, "HEXAPAWN_VARIANT")
}
