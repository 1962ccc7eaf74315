package pipeline

import (
	"context"
	"slices"

	"github.com/kbukum/pipey/errors"
)

// Triple is the view of one element produced by a Windowed iterator.
// Left holds up to size preceding elements, oldest first. Right holds up to
// size following elements, nearest first. Both slices are owned by the
// Triple and never change after it is yielded.
type Triple[T any] struct {
	Left    []T
	Current T
	Right   []T
}

// Windowed yields one Triple per element of its source, in source order.
type Windowed[T any] struct {
	source Iterator[T]
	size   int
	left   []T
	right  []T

	primed  bool
	drained bool
}

// NewWindowed wraps src in a windowing iterator. size must be at least 1.
// The source is owned by the returned iterator; up to size elements are
// pulled ahead before the first Triple is produced.
func NewWindowed[T any](src Iterator[T], size int) (*Windowed[T], error) {
	if size < 1 {
		return nil, errors.Configuration("window_size", size, "must be >= 1")
	}
	return &Windowed[T]{
		source: src,
		size:   size,
		left:   make([]T, 0, size+1),
		right:  make([]T, 0, size),
	}, nil
}

// Size returns the configured window size.
func (w *Windowed[T]) Size() int { return w.size }

// Next returns the Triple for the next source element.
func (w *Windowed[T]) Next(ctx context.Context) (Triple[T], bool, error) {
	var zero Triple[T]
	if !w.primed {
		w.primed = true
		if err := w.fill(ctx); err != nil {
			return zero, false, err
		}
	}
	if len(w.right) == 0 {
		return zero, false, nil
	}

	current := w.right[0]
	w.right = dropFirst(w.right)
	if err := w.fill(ctx); err != nil {
		return zero, false, err
	}

	out := Triple[T]{
		Left:    slices.Clone(w.left),
		Current: current,
		Right:   slices.Clone(w.right),
	}

	w.left = append(w.left, current)
	if len(w.left) > w.size {
		w.left = dropFirst(w.left)
	}
	return out, true, nil
}

// Close closes the source.
func (w *Windowed[T]) Close() error { return w.source.Close() }

// fill tops the right buffer up to size, stopping at source exhaustion.
func (w *Windowed[T]) fill(ctx context.Context) error {
	for !w.drained && len(w.right) < w.size {
		v, ok, err := w.source.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			w.drained = true
			return nil
		}
		w.right = append(w.right, v)
	}
	return nil
}

// dropFirst removes s[0] in place, keeping the backing array.
func dropFirst[T any](s []T) []T {
	copy(s, s[1:])
	var zero T
	s[len(s)-1] = zero
	return s[:len(s)-1]
}

// Windowify returns a sequence transform that wraps its input in a
// Windowed iterator of the given size. It is meant to be used as a window
// stage operation:
//
//	pipeline.Window(pipeline.Windowify[int](2))
//
// An invalid size is reported when the transform is applied.
func Windowify[T any](size int) func(Iterator[T]) (Iterator[Triple[T]], error) {
	return func(src Iterator[T]) (Iterator[Triple[T]], error) {
		w, err := NewWindowed(src, size)
		if err != nil {
			return nil, err
		}
		return w, nil
	}
}

// Dewindow projects each Triple back to its Current element.
func Dewindow[T any](src Iterator[Triple[T]]) Iterator[T] {
	return MapIter(src, func(_ context.Context, t Triple[T]) (T, error) {
		return t.Current, nil
	})
}

// Dewindowify is Dewindow in the shape of a window stage operation.
func Dewindowify[T any](src Iterator[Triple[T]]) (Iterator[T], error) {
	return Dewindow(src), nil
}
