// Package observability provides OpenTelemetry tracing and metrics for
// pipeline runs.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("pipey"))
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("pipey"))
//	defer mp.Shutdown(ctx)
//
// Pipeline runs:
//
//	metrics, err := observability.NewMetrics(observability.Meter("pipey"))
//	obs := observability.NewPipelineObserver(metrics, observability.Tracer("pipey"))
//	res, err := pipeline.Apply(ctx, input, stages, pipeline.WithObserver(obs))
package observability
