package linear

import (
	"github.com/janpfeifer/hexapawnGo/internal/parameters"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Embedded hand-tuned linear models.

var (
	// PreTrainedV0 only looks at how far the pieces advanced.
	PreTrainedV0 = NewWithWeights(
		// NumPieces / OppNumPieces
		0, 0,
		// Advancement / OppAdvancement
		2.0, -2.0,
		// MostAdvanced / OppMostAdvanced
		0, 0,
		// NumPawnMoves / OppNumPawnMoves
		0, 0,
		// MovesToDraw
		0,

		// Bias: *Must always be last*
		0,
	).WithName("v0")

	// PreTrainedV1 adds material, the most advanced piece and mobility.
	PreTrainedV1 = NewWithWeights(
		// NumPieces / OppNumPieces
		1.0, -1.0,
		// Advancement / OppAdvancement
		2.0, -2.0,
		// MostAdvanced / OppMostAdvanced
		1.5, -1.5,
		// NumPawnMoves / OppNumPawnMoves
		0.5, -0.5,
		// MovesToDraw
		0,

		// Bias: *Must always be last*
		0,
	).WithName("v1")

	// PreTrainedBest is an alias to the current best linear model.
	PreTrainedBest = PreTrainedV1.Clone().WithName("best")
)

// NewFromParams returns the linear scorer selected by the "linear" parameter: one of the pre-trained
// models ("best", "v0", "v1") or a path to a file with the weights. If "linear" is not set, it returns
// PreTrainedBest.
func NewFromParams(params parameters.Params) (*Scorer, error) {
	modelName, err := parameters.PopParamOr(params, "linear", "best")
	if err != nil {
		return nil, err
	}
	if modelName == "" {
		modelName = "best"
	}
	var selected *Scorer
	for _, scorer := range []*Scorer{PreTrainedBest, PreTrainedV0, PreTrainedV1} {
		if modelName == scorer.name {
			selected = scorer
		}
	}
	if selected == nil {
		selected, err = Load(modelName)
		if err != nil {
			return nil, errors.WithMessagef(err, "failed to load model \"linear=%s\"", modelName)
		}
	}
	klog.V(1).Infof("Linear model %s with %d features", selected, selected.NumFeatures())
	return selected, nil
}
