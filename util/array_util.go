package util

import (
	"math/rand"
)

// ShuffleSliceCopy returns a copy of src in random order, src is not modified.
func ShuffleSliceCopy[T any](src []T) []T {
	dst := make([]T, 0, len(src))
	for _, i := range rand.Perm(len(src)) {
		dst = append(dst, src[i])
	}
	return dst
}

/*
TransformSlice returns the values returned by the mapper for the items of s
(in the same order), ie the programs of a list of types:

	TransformSlice(types, AssetType.AsProgram)
*/
func TransformSlice[S ~[]E, E any, V any](s S, mapper func(E) V) []V {
	r := make([]V, 0, len(s))
	for _, v := range s {
		r = append(r, mapper(v))
	}
	return r
}
