package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/pipey/errors"
	"github.com/kbukum/pipey/logger"
)

// RunInfo describes one Apply call.
type RunInfo struct {
	// ID identifies the run in logs and telemetry.
	ID string
	// Kinds lists the stage kinds in order.
	Kinds []Kind
	// Reduced is true when the pipeline ends in a reduce stage.
	Reduced bool
	// Duration runs from the start of Apply to the end of the run: the full
	// pass for a reduce pipeline, or the point where a lazy result ends,
	// fails or is closed. Zero in RunStarted.
	Duration time.Duration
}

// Observer is notified around every Apply call that passes validation.
// For a lazy result RunFinished fires once, when the sequence is exhausted,
// returns an error or is closed, whichever comes first.
type Observer interface {
	// RunStarted may return a derived context; it is used for the rest of the run.
	RunStarted(ctx context.Context, run RunInfo) context.Context
	// RunFinished receives the context returned by RunStarted.
	RunFinished(ctx context.Context, run RunInfo, err error)
}

// Option configures Apply.
type Option func(*options)

type options struct {
	log      *logger.Logger
	observer Observer
	runID    string
}

// WithLogger sets the logger used for run diagnostics.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithObserver registers a telemetry hook.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

// WithRunID overrides the generated run id.
func WithRunID(id string) Option {
	return func(o *options) { o.runID = id }
}

func resolveOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.log == nil {
		o.log = logger.WithComponent("pipeline")
	}
	if o.runID == "" {
		o.runID = uuid.NewString()
	}
	return o
}

// Validate checks a pipeline before it runs: every stage must be non-nil
// and a reduce stage may only appear as the last stage.
func Validate(stages []Stage) error {
	last := len(stages) - 1
	for i, s := range stages {
		if s == nil {
			return errors.Validation(fmt.Sprintf("stage %d is nil", i)).
				WithDetail("index", i)
		}
		if s.Kind() == KindReduce && i != last {
			return errors.Validation("reduce stage must be the last stage in the pipeline").
				WithDetails(map[string]any{"index": i, "stages": len(stages)})
		}
	}
	return nil
}

// Apply validates stages and threads input through them in order.
//
// Without a reduce stage the returned Result holds a lazy sequence and no
// element has been pulled yet. With a reduce stage the input is consumed in
// one pass and the Result holds the accumulated value. Errors from
// caller-supplied functions are returned unchanged. Neither the stages nor
// the input are modified; the input is consumed.
func Apply[T any](ctx context.Context, input Iterator[T], stages []Stage, opts ...Option) (*Result, error) {
	o := resolveOptions(opts)
	log := o.log.WithFields(logger.Fields(logger.FieldRunID, o.runID))

	if err := Validate(stages); err != nil {
		log.Debug("pipeline rejected", logger.ErrorFields("validate", err))
		return nil, err
	}
	if input == nil {
		return nil, errors.Validation("input sequence is nil")
	}

	run := RunInfo{ID: o.runID, Kinds: Pipeline(stages).Kinds()}
	run.Reduced = len(stages) > 0 && stages[len(stages)-1].Kind() == KindReduce
	if o.observer != nil {
		ctx = o.observer.RunStarted(ctx, run)
	}

	start := time.Now()
	res, err := execute(ctx, input, stages)
	run.Duration = time.Since(start)

	if o.observer != nil {
		if err == nil && !res.reduced {
			res.seq = &observedIter{src: res.seq, ctx: ctx, obs: o.observer, run: run, start: start}
		} else {
			o.observer.RunFinished(ctx, run, err)
		}
	}
	fields := logger.DurationFields("apply", run.Duration)
	fields[logger.FieldStages] = len(stages)
	fields["reduced"] = run.Reduced
	if err != nil {
		log.Debug("pipeline failed", logger.MergeWithError(fields, err))
		return nil, err
	}
	log.Debug("pipeline applied", fields)
	return res, nil
}

func execute[T any](ctx context.Context, input Iterator[T], stages []Stage) (*Result, error) {
	seq := boxed(input)
	for i, s := range stages {
		label := fmt.Sprintf("stage %d (%s)", i, s.Kind())
		if r, ok := s.(reducer); ok {
			v, err := r.fold(ctx, seq, label)
			if err != nil {
				return nil, err
			}
			return &Result{value: v, reduced: true}, nil
		}
		next, err := s.bind(seq, label)
		if err != nil {
			_ = seq.Close()
			return nil, err
		}
		seq = next
	}
	return &Result{seq: seq}, nil
}

// Result is the outcome of Apply: a reduced value or a lazy sequence.
type Result struct {
	seq     Iterator[any]
	value   any
	reduced bool
}

// Reduced reports whether the pipeline ended in a reduce stage.
func (r *Result) Reduced() bool { return r.reduced }

// Value returns the reduced value, or nil for a sequence result.
func (r *Result) Value() any { return r.value }

// Iter returns the lazy output sequence, or nil for a reduced result.
// The sequence is single-pass and owned by the caller.
func (r *Result) Iter() Iterator[any] { return r.seq }

// ValueAs returns the reduced value as U.
func ValueAs[U any](r *Result) (U, error) {
	var zero U
	if !r.reduced {
		return zero, errors.Validation("result is a sequence, not a reduced value")
	}
	return assertAs[U](r.value, "result")
}

// IterAs returns the output sequence with elements asserted to U.
func IterAs[U any](r *Result) (Iterator[U], error) {
	if r.reduced {
		return nil, errors.Validation("result is a reduced value, not a sequence")
	}
	return typed[U](r.seq, "result"), nil
}

// CollectAs drains the output sequence into a slice of U.
func CollectAs[U any](ctx context.Context, r *Result) ([]U, error) {
	it, err := IterAs[U](r)
	if err != nil {
		return nil, err
	}
	return Collect(ctx, it)
}

// Run applies a pipeline that ends in a reduce stage and returns its value as U.
func Run[T, U any](ctx context.Context, input Iterator[T], stages []Stage, opts ...Option) (U, error) {
	res, err := Apply(ctx, input, stages, opts...)
	if err != nil {
		var zero U
		return zero, err
	}
	return ValueAs[U](res)
}

// Stream applies a pipeline without a reduce stage and returns its lazy output as U.
func Stream[T, U any](ctx context.Context, input Iterator[T], stages []Stage, opts ...Option) (Iterator[U], error) {
	res, err := Apply(ctx, input, stages, opts...)
	if err != nil {
		return nil, err
	}
	return IterAs[U](res)
}

// observedIter reports a lazy run to its observer exactly once.
type observedIter struct {
	src   Iterator[any]
	ctx   context.Context
	obs   Observer
	run   RunInfo
	start time.Time
	done  bool
}

func (it *observedIter) Next(ctx context.Context) (any, bool, error) {
	v, ok, err := it.src.Next(ctx)
	if err != nil || !ok {
		it.finish(err)
	}
	return v, ok, err
}

func (it *observedIter) Close() error {
	err := it.src.Close()
	it.finish(nil)
	return err
}

func (it *observedIter) finish(err error) {
	if it.done {
		return
	}
	it.done = true
	it.run.Duration = time.Since(it.start)
	it.obs.RunFinished(it.ctx, it.run, err)
}
