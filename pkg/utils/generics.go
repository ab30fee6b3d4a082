package utils

import (
	"reflect"
	"slices"
)

func Pointer[T any](t T) *T {
	return &t
}

// OptionalDefaulted returns the first non-zero optional argument
// or the given default.
func OptionalDefaulted[T any](def T, args ...T) T {
	for _, e := range args {
		if !reflect.ValueOf(&e).Elem().IsZero() {
			return e
		}
	}
	return def
}

// MapKeys returns the keys of a map, sorted if a compare function
// is given.
func MapKeys[K comparable, V any](m map[K]V, cmp ...func(a, b K) int) []K {
	r := make([]K, 0, len(m))
	for k := range m {
		r = append(r, k)
	}
	if len(cmp) > 0 {
		slices.SortFunc(r, cmp[0])
	}
	return r
}

func TransformSlice[E any, A ~[]E, T any](in A, m func(E) T) []T {
	r := make([]T, len(in))
	for i, v := range in {
		r[i] = m(v)
	}
	return r
}
