package parameters

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestNewFromConfigString(t *testing.T) {
	params := NewFromConfigString("center, ab,max_depth=5,threshold=15ms,name=a=b,")
	assert.Equal(t, Params{
		"center":    "",
		"ab":        "",
		"max_depth": "5",
		"threshold": "15ms",
		"name":      "a=b",
	}, params)
	assert.Empty(t, NewFromConfigString(""))
}

func TestGetParamOr(t *testing.T) {
	params := NewFromConfigString("ab,iterative=false,max_depth=5,threshold=15ms,timeout=20,ratio=0.5,bad=x")

	ab, err := GetParamOr(params, "ab", false)
	require.NoError(t, err)
	assert.True(t, ab)
	iterative, err := GetParamOr(params, "iterative", true)
	require.NoError(t, err)
	assert.False(t, iterative)
	minimax, err := GetParamOr(params, "minimax", false)
	require.NoError(t, err)
	assert.False(t, minimax)

	depth, err := GetParamOr(params, "max_depth", 3)
	require.NoError(t, err)
	assert.Equal(t, 5, depth)

	threshold, err := GetParamOr(params, "threshold", time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 15*time.Millisecond, threshold)
	timeout, err := GetParamOr(params, "timeout", time.Duration(0))
	require.NoError(t, err)
	assert.Equal(t, 20*time.Millisecond, timeout)

	ratio, err := GetParamOr(params, "ratio", float32(1))
	require.NoError(t, err)
	assert.Equal(t, float32(0.5), ratio)

	_, err = GetParamOr(params, "bad", 1)
	assert.Error(t, err)
	_, err = GetParamOr(params, "bad", true)
	assert.Error(t, err)
	_, err = GetParamOr(params, "bad", time.Second)
	assert.Error(t, err)
}

func TestPopParamOr(t *testing.T) {
	params := NewFromConfigString("max_depth=5,bad=x")
	depth, err := PopParamOr(params, "max_depth", 3)
	require.NoError(t, err)
	assert.Equal(t, 5, depth)
	assert.NotContains(t, params, "max_depth")

	// Parameters failing to parse are kept.
	_, err = PopParamOr(params, "bad", 1)
	assert.Error(t, err)
	assert.Contains(t, params, "bad")
}
