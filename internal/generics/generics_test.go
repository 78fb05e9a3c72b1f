package generics

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeysSlice(t *testing.T) {
	m := map[string]int{"max_depth": 1, "cache_size": 5, "randomness": 3}
	// Since the builtin map iterator in Go is deliberately non-deterministic, we
	// run it a bunch of times to show it is stably sorted.
	want := []string{"cache_size", "max_depth", "randomness"}
	for range 100 {
		assert.Equal(t, want, KeysSlice(m))
	}
}

func TestSliceMap(t *testing.T) {
	got := SliceMap([]int{1, 2, 3}, func(e int) float32 { return float32(e) / 2 })
	assert.Equal(t, []float32{0.5, 1, 1.5}, got)
}

func TestSliceOrdering(t *testing.T) {
	s := []float32{7, -3, 2}
	assert.Equal(t, []int{1, 2, 0}, SliceOrdering(s, false))
	s2 := []int64{0, 1, 2}
	assert.Equal(t, []int{2, 1, 0}, SliceOrdering(s2, true))
	s3 := []float32{1, 1, 0}
	assert.Equal(t, []int{0, 1, 2}, SliceOrdering(s3, true))
	assert.True(t, slices.Equal([]int{}, SliceOrdering([]int{}, false)))
}
