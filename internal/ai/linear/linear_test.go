package linear

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/janpfeifer/hexapawnGo/internal/ai"
	"github.com/janpfeifer/hexapawnGo/internal/features"
	"github.com/janpfeifer/hexapawnGo/internal/parameters"
	. "github.com/janpfeifer/hexapawnGo/internal/state"
	"github.com/janpfeifer/hexapawnGo/internal/state/statetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreFeatures(t *testing.T) {
	model := NewWithWeights(
		// Weights:
		2, -1, 4,
		// Bias:
		3)
	for _, test := range []struct {
		inputs []float32
		score  float32
	}{
		{inputs: []float32{0, 0, 0}, score: MaxScore * 0.995055},
		{inputs: []float32{0.1, 0.1, 0.1}, score: MaxScore * 0.998178},
		{inputs: []float32{-0.9, -0.9, -0.9}, score: MaxScore * -0.905148},
	} {
		assert.InDelta(t, test.score, model.ScoreFeatures(test.inputs), 1e-4)
	}

	// Very large logits never reach a win.
	assert.Less(t, model.ScoreFeatures([]float32{100, 0, 100}), ai.WinGameScore)
	assert.Greater(t, model.ScoreFeatures([]float32{-100, 0, -100}), -ai.WinGameScore)
}

func TestPreTrained(t *testing.T) {
	for _, model := range []*Scorer{PreTrainedBest, PreTrainedV0, PreTrainedV1} {
		require.Equalf(t, features.BoardFeaturesDim, model.NumFeatures(), "model %s", model)

		// Symmetric position.
		s := NewGame(statetest.HexapawnRules(3))
		assert.InDeltaf(t, 0, model.Score(s), 1e-6, "model %s", model)

		// After the first player advances, it is bad for the second player.
		s = s.Act(Move{Point{3, 2}, Point{2, 2}})
		assert.Lessf(t, model.Score(s), float32(0), "model %s", model)
	}
}

func TestNewFromParams(t *testing.T) {
	params := parameters.NewFromConfigString("linear=v0,max_depth=3")
	model, err := NewFromParams(params)
	require.NoError(t, err)
	assert.Equal(t, PreTrainedV0, model)
	assert.NotContains(t, params, "linear")
	assert.Contains(t, params, "max_depth")

	model, err = NewFromParams(parameters.Params{})
	require.NoError(t, err)
	assert.Equal(t, PreTrainedBest, model)
	assert.Equal(t, "linear:best", model.String())

	// Load from file.
	fileName := filepath.Join(t.TempDir(), "weights.txt")
	content := "# Test model\n1\n-1\n0\n0\n0\n0\n0\n0\n0\n// Bias\n0.5\n"
	require.NoError(t, os.WriteFile(fileName, []byte(content), 0644))
	model, err = NewFromParams(parameters.Params{"linear": fileName})
	require.NoError(t, err)
	assert.Equal(t, features.BoardFeaturesDim, model.NumFeatures())
	assert.Equal(t, float32(0.5), model.weights[len(model.weights)-1])

	_, err = NewFromParams(parameters.Params{"linear": filepath.Join(t.TempDir(), "missing.txt")})
	require.Error(t, err)
}
