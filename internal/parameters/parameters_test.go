package parameters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromConfigString(t *testing.T) {
	params := NewFromConfigString("max_depth=4, randomness=0.5,,verbose,expr=a=b")
	assert.Equal(t, Params{
		"max_depth":  "4",
		"randomness": "0.5",
		"verbose":    "",
		"expr":       "a=b",
	}, params)
	assert.Empty(t, NewFromConfigString(""))
}

func TestGetParamOr(t *testing.T) {
	params := NewFromConfigString("max_depth=4,randomness=0.5,verbose,quiet=false,name=x,timeout=2s,bad=x1")

	maxDepth, err := GetParamOr(params, "max_depth", 0)
	require.NoError(t, err)
	assert.Equal(t, 4, maxDepth)

	randomness, err := GetParamOr(params, "randomness", float32(0))
	require.NoError(t, err)
	assert.Equal(t, float32(0.5), randomness)

	randomness64, err := GetParamOr(params, "randomness", 0.0)
	require.NoError(t, err)
	assert.Equal(t, 0.5, randomness64)

	verbose, err := GetParamOr(params, "verbose", false)
	require.NoError(t, err)
	assert.True(t, verbose)

	quiet, err := GetParamOr(params, "quiet", true)
	require.NoError(t, err)
	assert.False(t, quiet)

	name, err := GetParamOr(params, "name", "")
	require.NoError(t, err)
	assert.Equal(t, "x", name)

	timeout, err := GetParamOr(params, "timeout", time.Second)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, timeout)

	missing, err := GetParamOr(params, "missing", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, missing)

	_, err = GetParamOr(params, "bad", 0)
	assert.Error(t, err)
	_, err = GetParamOr(params, "bad", false)
	assert.Error(t, err)
	_, err = GetParamOr(params, "bad", time.Duration(0))
	assert.Error(t, err)

	// Get doesn't remove the parameters.
	assert.Len(t, params, 7)
}

func TestPopParamOr(t *testing.T) {
	params := NewFromConfigString("max_depth=4,bad=x")
	maxDepth, err := PopParamOr(params, "max_depth", 0)
	require.NoError(t, err)
	assert.Equal(t, 4, maxDepth)
	assert.NotContains(t, params, "max_depth")

	// Parameters that fail to parse are not removed.
	_, err = PopParamOr(params, "bad", 0)
	require.Error(t, err)
	assert.Contains(t, params, "bad")
}
