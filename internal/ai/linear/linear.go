// Package linear implements a pure Go linear scorer on the board features: one weight per feature, plus
// a bias, squashed by a tanh.
//
// It is used to score the leaves of depth-limited searches.
package linear

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/janpfeifer/hexapawnGo/internal/ai"
	"github.com/janpfeifer/hexapawnGo/internal/features"
	. "github.com/janpfeifer/hexapawnGo/internal/state"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// MaxScore returned by the linear model. It is kept below ai.WinGameScore, so a heuristic score is never
// confused with an actual win.
const MaxScore = 0.95 * ai.WinGameScore

// Scorer is a linear model (one weight per feature + bias) on the feature set.
// It implements ai.ValueScorer.
type Scorer struct {
	weights []float32
	name    string
}

// NewWithWeights creates a new Scorer with the given weights: the last one is the bias.
// Ownership of the weights is transferred.
func NewWithWeights(weights ...float32) *Scorer {
	return &Scorer{weights: weights}
}

// WithName sets the name of the model, returned by String.
func (s *Scorer) WithName(name string) *Scorer {
	s.name = name
	return s
}

// Clone returns a copy of the model, that can be modified independently.
func (s *Scorer) Clone() *Scorer {
	return &Scorer{weights: append([]float32(nil), s.weights...), name: s.name}
}

// Assert Scorer is an ai.ValueScorer.
var _ ai.ValueScorer = (*Scorer)(nil)

// String implements fmt.Stringer and ai.ValueScorer.
func (s *Scorer) String() string {
	if s.name == "" {
		return fmt.Sprintf("linear(%d features)", s.NumFeatures())
	}
	return "linear:" + s.name
}

// NumFeatures is the number of weights, excluding the bias.
func (s *Scorer) NumFeatures() int {
	return len(s.weights) - 1
}

func (s *Scorer) logitScore(features []float32) float32 {
	// Sum start with bias.
	sum := s.weights[len(s.weights)-1]

	// Dot product of weights and features.
	if len(s.weights)-1 != len(features) {
		klog.Fatalf("Features dimension is %d, but weights dimension is %d (+1 bias)",
			len(features), len(s.weights)-1)
	}
	for ii, feature := range features {
		sum += feature * s.weights[ii]
	}
	return sum
}

// Score implements ai.ValueScorer.
func (s *Scorer) Score(state *State) float32 {
	f := features.FeatureVector(state)
	score := s.ScoreFeatures(f)
	if klog.V(3).Enabled() {
		klog.Infof("%s: score=%.3f for %s\n%s", s, score, state, features.Describe(f))
	}
	return score
}

// ScoreFeatures is like Score, but it takes the raw features as input.
func (s *Scorer) ScoreFeatures(rawFeatures []float32) float32 {
	logit := s.logitScore(rawFeatures)
	return MaxScore * ai.SquashScore(logit)
}

// Cache of linear models read from disk.
var (
	cacheLinearScorers = map[string]*Scorer{}
	muCache            sync.Mutex
)

// Load model from fileName: one weight per line, the bias last. Empty lines and lines starting with "#" or "//"
// are ignored.
//
// It stores the reference of the loaded model in a cache, that is reused if attempting to load the
// same fileName.
func Load(fileName string) (*Scorer, error) {
	muCache.Lock()
	defer muCache.Unlock()
	if cached, ok := cacheLinearScorers[fileName]; ok {
		klog.V(1).Infof("Using cache for model '%s'", fileName)
		return cached, nil
	}

	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read linear model from %s", fileName)
	}
	valuesStr := strings.Split(string(data), "\n")
	weights := make([]float32, 0, len(valuesStr))
	for lineNum, valueStr := range valuesStr {
		valueStr = strings.TrimSpace(valueStr)
		if valueStr == "" || strings.HasPrefix(valueStr, "#") || strings.HasPrefix(valueStr, "//") {
			// Skip empty lines and comments.
			continue
		}
		f64, err := strconv.ParseFloat(valueStr, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse value in file %s, at line number #%d",
				fileName, lineNum+1)
		}
		weights = append(weights, float32(f64))
	}
	if len(weights) != features.BoardFeaturesDim+1 {
		return nil, errors.Errorf("linear model in %s has %d weights, but %d features (+1 bias) are expected",
			fileName, len(weights), features.BoardFeaturesDim)
	}
	s := NewWithWeights(weights...).WithName(fileName)
	cacheLinearScorers[fileName] = s
	return s, nil
}
