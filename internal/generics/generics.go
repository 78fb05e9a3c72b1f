// Package generics implements generic data structure functions missing from the stdlib.
package generics

import (
	"cmp"
	"maps"
	"slices"
)

// SliceMap executes the given function sequentially for every element on in, and returns a mapped slice.
func SliceMap[In, Out any](in []In, fn func(e In) Out) (out []Out) {
	out = make([]Out, len(in))
	for ii, e := range in {
		out[ii] = fn(e)
	}
	return
}

// SliceOrdering returns the indices of the elements of s, ordered by their values.
// The ordering is stable: equal values keep their relative order.
func SliceOrdering[E cmp.Ordered](s []E, reverse bool) []int {
	indices := make([]int, len(s))
	for ii := range indices {
		indices[ii] = ii
	}
	slices.SortStableFunc(indices, func(a, b int) int {
		if reverse {
			return cmp.Compare(s[b], s[a])
		}
		return cmp.Compare(s[a], s[b])
	})
	return indices
}

// KeysSlice returns the sorted keys of the given map as a slice.
func KeysSlice[M interface{ ~map[K]V }, K cmp.Ordered, V any](m M) []K {
	keys := slices.Collect(maps.Keys(m))
	slices.Sort(keys)
	return keys
}
