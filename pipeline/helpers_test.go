package pipeline

import (
	"context"
	"slices"
)

// countingIter records how many values were pulled from it.
type countingIter[T any] struct {
	items  []T
	pulled int
	closed bool
}

func (it *countingIter[T]) Next(_ context.Context) (T, bool, error) {
	if it.pulled >= len(it.items) {
		var zero T
		return zero, false, nil
	}
	v := it.items[it.pulled]
	it.pulled++
	return v, true, nil
}

func (it *countingIter[T]) Close() error {
	it.closed = true
	return nil
}

// failingIter yields items and then fails with err.
type failingIter[T any] struct {
	items []T
	err   error
	index int
}

func (it *failingIter[T]) Next(_ context.Context) (T, bool, error) {
	if it.index >= len(it.items) {
		var zero T
		return zero, false, it.err
	}
	v := it.items[it.index]
	it.index++
	return v, true, nil
}

func (it *failingIter[T]) Close() error { return nil }

func ints(start, end int) []int {
	out := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, i)
	}
	return out
}

func intSliceEqual(a, b []int) bool {
	return slices.Equal(a, b)
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}
