package utils

import (
	"fmt"
)

type Index []int

func NewIndex(N int) (I Index) {
	return make(Index, N)
}

func NewRange(rmin, rmax int) (r Index) {
	var (
		size = rmax - rmin + 1 // INCLUSIVE RANGE
	)
	if size < 0 {
		size = 0
	}
	r = make(Index, size)
	for i := range r {
		r[i] = i + rmin
	}
	return
}

// Add offsets every index by val
func (I Index) Add(val int) (r Index) {
	r = make(Index, len(I))
	for i, ival := range I {
		r[i] = val + ival
	}
	return r
}

// IsPermutation checks that I holds every value in [0, len(I)) exactly once
func (I Index) IsPermutation() (err error) {
	seen := make([]bool, len(I))
	for i, val := range I {
		switch {
		case val < 0 || val >= len(I):
			err = fmt.Errorf("index value out of range at %d: %d not in [0,%d)", i, val, len(I))
			return
		case seen[val]:
			err = fmt.Errorf("duplicate index value at %d: %d", i, val)
			return
		}
		seen[val] = true
	}
	return
}

// Inverse returns J such that J[I[i]] = i, I must be a permutation
func (I Index) Inverse() (J Index) {
	J = make(Index, len(I))
	for i, val := range I {
		J[val] = i
	}
	return
}
