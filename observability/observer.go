package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/pipey/errors"
	"github.com/kbukum/pipey/pipeline"
)

// Run status and mode values.
const (
	StatusOK    = "ok"
	StatusError = "error"

	ModeReduce = "reduce"
	ModeStream = "stream"

	// CodeUnclassified labels errors that are not *errors.AppError,
	// such as errors returned by stage functions.
	CodeUnclassified = "UNCLASSIFIED"
)

// PipelineObserver records a span and metrics for every pipeline run.
// Either dependency may be nil.
type PipelineObserver struct {
	metrics *Metrics
	tracer  trace.Tracer
}

var _ pipeline.Observer = (*PipelineObserver)(nil)

// NewPipelineObserver creates an observer backed by metrics and tracer.
func NewPipelineObserver(metrics *Metrics, tracer trace.Tracer) *PipelineObserver {
	return &PipelineObserver{metrics: metrics, tracer: tracer}
}

// RunStarted opens the pipeline.apply span.
func (o *PipelineObserver) RunStarted(ctx context.Context, run pipeline.RunInfo) context.Context {
	if o.tracer == nil {
		return ctx
	}
	kinds := make([]string, len(run.Kinds))
	for i, k := range run.Kinds {
		kinds[i] = k.String()
	}
	ctx, _ = o.tracer.Start(ctx, SpanPipelineApply, trace.WithAttributes(
		attribute.String(AttrRunID, run.ID),
		attribute.StringSlice(AttrStages, kinds),
		attribute.String(AttrMode, modeOf(run)),
	))
	return ctx
}

// RunFinished records metrics and closes the span opened by RunStarted.
func (o *PipelineObserver) RunFinished(ctx context.Context, run pipeline.RunInfo, err error) {
	mode := modeOf(run)
	status := StatusOK
	if err != nil {
		status = StatusError
	}

	if o.metrics != nil {
		o.metrics.RecordRun(ctx, mode, status, run.Duration)
		for _, k := range run.Kinds {
			o.metrics.RecordStage(ctx, k.String())
		}
		if err != nil {
			o.metrics.RecordError(ctx, ErrorCode(err))
		}
	}

	if o.tracer == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(
		attribute.Int64(AttrDurationMs, run.Duration.Milliseconds()),
		attribute.String(AttrStatus, status),
	)
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String(AttrErrorCode, ErrorCode(err)))
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// ErrorCode returns the AppError code carried by err, or CodeUnclassified.
func ErrorCode(err error) string {
	if appErr, ok := errors.AsAppError(err); ok {
		return appErr.Code.String()
	}
	return CodeUnclassified
}

func modeOf(run pipeline.RunInfo) string {
	if run.Reduced {
		return ModeReduce
	}
	return ModeStream
}
