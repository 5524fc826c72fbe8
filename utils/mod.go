package utils

import "golang.org/x/exp/constraints"

// Argmax returns the index of the largest element, ties going to the first
// index encountered. Returns -1 for an empty slice.
func Argmax[T constraints.Ordered](slice []T) int {
	if len(slice) == 0 {
		return -1
	}
	best := 0
	for i, v := range slice {
		if v > slice[best] {
			best = i
		}
	}
	return best
}

// Argmin returns the index of the smallest element, ties going to the first
// index encountered. Returns -1 for an empty slice.
func Argmin[T constraints.Ordered](slice []T) int {
	if len(slice) == 0 {
		return -1
	}
	best := 0
	for i, v := range slice {
		if v < slice[best] {
			best = i
		}
	}
	return best
}
