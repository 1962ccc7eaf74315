package pipeline

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/kbukum/pipey/errors"
)

// Kind identifies what a Stage does with the sequence it receives.
type Kind int

const (
	KindMap Kind = iota + 1
	KindFilter
	KindReduce
	KindWindow
)

var kindNames = map[Kind]string{
	KindMap:    "map",
	KindFilter: "filter",
	KindReduce: "reduce",
	KindWindow: "window",
}

// String returns the lower-case kind name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind converts a kind name ("map", "filter", "reduce", "window") to a Kind.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, errors.InvalidInput("kind", fmt.Sprintf("unknown stage kind %q", s))
}

// Stage is one step of a pipeline. The concrete stages are MapStage,
// FilterStage, WindowStage and ReduceStage; they are built with Map,
// MapFunc, Filter, Window, Reduce and ReduceWith and cannot be implemented
// outside this package.
type Stage interface {
	Kind() Kind
	// bind wraps upstream in this stage. Not used for reduce stages.
	bind(upstream Iterator[any], label string) (Iterator[any], error)
}

// reducer is implemented by stages that collapse the sequence into a value.
type reducer interface {
	fold(ctx context.Context, upstream Iterator[any], label string) (any, error)
}

// Pipeline is an ordered list of stages.
type Pipeline []Stage

// Validate checks the structural rules of the pipeline. See Validate.
func (p Pipeline) Validate() error { return Validate(p) }

// Kinds returns the kind of every stage, in order.
func (p Pipeline) Kinds() []Kind {
	kinds := make([]Kind, len(p))
	for i, s := range p {
		if s != nil {
			kinds[i] = s.Kind()
		}
	}
	return kinds
}

// --- Map ---

// MapStage applies a function to every element.
type MapStage[I, O any] struct {
	fn func(context.Context, I) (O, error)
}

// Map builds a stage that transforms each element with fn.
func Map[I, O any](fn func(context.Context, I) (O, error)) *MapStage[I, O] {
	return &MapStage[I, O]{fn: fn}
}

// MapFunc builds a map stage from a function that cannot fail.
func MapFunc[I, O any](fn func(I) O) *MapStage[I, O] {
	return Map(func(_ context.Context, in I) (O, error) { return fn(in), nil })
}

func (s *MapStage[I, O]) Kind() Kind { return KindMap }

func (s *MapStage[I, O]) bind(upstream Iterator[any], label string) (Iterator[any], error) {
	return boxed(MapIter(typed[I](upstream, label), s.fn)), nil
}

// --- Filter ---

// FilterStage keeps the elements for which a predicate holds.
type FilterStage[T any] struct {
	fn func(T) bool
}

// Filter builds a stage that keeps elements for which fn returns true.
func Filter[T any](fn func(T) bool) *FilterStage[T] {
	return &FilterStage[T]{fn: fn}
}

func (s *FilterStage[T]) Kind() Kind { return KindFilter }

func (s *FilterStage[T]) bind(upstream Iterator[any], label string) (Iterator[any], error) {
	return boxed(FilterIter(typed[T](upstream, label), s.fn)), nil
}

// --- Window ---

// WindowStage hands the whole upstream sequence to a transform and continues
// with the sequence it returns.
type WindowStage[I, O any] struct {
	fn func(Iterator[I]) (Iterator[O], error)
}

// Window builds a stage from a sequence-to-sequence transform such as
// Windowify(k) or Dewindowify. Configuration the transform needs is captured
// by whatever built it.
func Window[I, O any](fn func(Iterator[I]) (Iterator[O], error)) *WindowStage[I, O] {
	return &WindowStage[I, O]{fn: fn}
}

func (s *WindowStage[I, O]) Kind() Kind { return KindWindow }

func (s *WindowStage[I, O]) bind(upstream Iterator[any], label string) (Iterator[any], error) {
	out, err := s.fn(typed[I](upstream, label))
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, errors.Validation(fmt.Sprintf("%s returned a nil sequence", label)).
			WithDetail(detailStage, label)
	}
	return boxed(out), nil
}

// --- Reduce ---

// ReduceStage folds the sequence into a single value.
type ReduceStage[A, T any] struct {
	fn       func(A, T) A
	seed     A
	seeded   bool
	seedFrom func(T) A
}

// Reduce builds an unseeded reduce stage: the first element is the initial
// accumulator and folding starts at the second. A single-element sequence
// yields that element without calling fn; an empty one is an error.
func Reduce[T any](fn func(T, T) T) *ReduceStage[T, T] {
	return &ReduceStage[T, T]{fn: fn, seedFrom: func(v T) T { return v }}
}

// ReduceWith builds a reduce stage that starts folding from seed.
func ReduceWith[A, T any](seed A, fn func(A, T) A) *ReduceStage[A, T] {
	return &ReduceStage[A, T]{fn: fn, seed: seed, seeded: true}
}

func (s *ReduceStage[A, T]) Kind() Kind { return KindReduce }

// Seeded reports whether the stage carries an explicit initial value.
func (s *ReduceStage[A, T]) Seeded() bool { return s.seeded }

func (s *ReduceStage[A, T]) bind(Iterator[any], string) (Iterator[any], error) {
	return nil, errors.Validation("reduce stage cannot be chained")
}

func (s *ReduceStage[A, T]) fold(ctx context.Context, upstream Iterator[any], label string) (any, error) {
	src := typed[T](upstream, label)
	defer src.Close()

	acc := s.seed
	if !s.seeded {
		first, ok, err := src.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.EmptySequence(KindReduce.String()).WithDetail(detailStage, label)
		}
		acc = s.seedFrom(first)
	}

	v, _, err := ReduceIter(src, acc, s.fn).Next(ctx)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// --- boxing ---

const detailStage = "stage"

// typed asserts every element of upstream to T.
func typed[T any](upstream Iterator[any], label string) Iterator[T] {
	return MapIter(upstream, func(_ context.Context, v any) (T, error) {
		return assertAs[T](v, label)
	})
}

// assertAs converts v to T. A nil v is the zero T when T can hold nil,
// which is how a nil interface element survives boxing.
func assertAs[T any](v any, label string) (T, error) {
	if t, ok := v.(T); ok {
		return t, nil
	}
	var zero T
	typ := reflect.TypeFor[T]()
	if v == nil && nilable(typ) {
		return zero, nil
	}
	return zero, errors.TypeMismatch(label, typ.String(), v)
}

func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return true
	}
	return false
}

// boxed erases the element type of src.
func boxed[T any](src Iterator[T]) Iterator[any] {
	return MapIter(src, func(_ context.Context, v T) (any, error) { return v, nil })
}
