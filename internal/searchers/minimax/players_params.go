package minimax

import (
	"github.com/janpfeifer/hexapawnGo/internal/ai"
	"github.com/janpfeifer/hexapawnGo/internal/parameters"
	"github.com/pkg/errors"
)

// NewFromParams creates a minimax Searcher configured by the parameters "max_depth" (int, 0 for full depth)
// and "cache_size" (int). The parameters used are removed from params.
func NewFromParams(scorer ai.ValueScorer, params parameters.Params) (*Searcher, error) {
	maxDepth, err := parameters.PopParamOr(params, "max_depth", 0)
	if err != nil {
		return nil, err
	}
	if maxDepth < 0 {
		return nil, errors.Errorf("negative max_depth (%d given) not possible, use 0 for full depth", maxDepth)
	}
	cacheSize, err := parameters.PopParamOr(params, "cache_size", DefaultCacheSize)
	if err != nil {
		return nil, err
	}
	return New(scorer).WithMaxDepth(maxDepth).WithCacheSize(cacheSize), nil
}
