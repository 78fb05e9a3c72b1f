package alphabeta

import (
	"github.com/janpfeifer/hexapawnGo/internal/ai"
	"github.com/janpfeifer/hexapawnGo/internal/parameters"
	"github.com/pkg/errors"
)

// NewFromParams creates an alpha-beta Searcher configured by the parameter "max_depth" (int, 0 for full depth,
// default is DefaultMaxDepth). The parameters used are removed from params.
func NewFromParams(scorer ai.ValueScorer, params parameters.Params) (*Searcher, error) {
	maxDepth, err := parameters.PopParamOr(params, "max_depth", DefaultMaxDepth)
	if err != nil {
		return nil, err
	}
	if maxDepth < 0 {
		return nil, errors.Errorf("negative max_depth (%d given) not possible, use 0 for full depth", maxDepth)
	}
	return New(scorer).WithMaxDepth(maxDepth), nil
}
