package main

import (
	"context"
	"os"

	"github.com/kbukum/pipey/bootstrap"
	"github.com/kbukum/pipey/observability"
	"github.com/kbukum/pipey/pipeline"
	"github.com/kbukum/pipey/version"
)

// setupTelemetry starts the tracer and meter providers and registers their
// shutdown on the app. It returns nil when telemetry is disabled.
func setupTelemetry(ctx context.Context, app *bootstrap.App[*Config]) (pipeline.Observer, error) {
	cfg := app.Cfg
	if !cfg.Telemetry.Enabled {
		return nil, nil
	}

	tcfg := observability.DefaultTracerConfig(cfg.Name)
	tcfg.ServiceVersion = versionOr(cfg.Version)
	tcfg.Environment = cfg.Environment
	tcfg.Exporter = cfg.Telemetry.Exporter
	tcfg.Endpoint = cfg.Telemetry.Endpoint
	tcfg.Insecure = cfg.Telemetry.Insecure
	tcfg.SampleRate = cfg.Telemetry.SampleRate
	tcfg.Writer = os.Stderr

	tp, err := observability.InitTracer(ctx, &tcfg)
	if err != nil {
		return nil, err
	}
	app.OnStop(tp.Shutdown)

	mcfg := observability.DefaultMeterConfig(cfg.Name)
	mcfg.ServiceVersion = tcfg.ServiceVersion
	mcfg.Environment = cfg.Environment
	mcfg.Exporter = cfg.Telemetry.Exporter
	mcfg.Endpoint = cfg.Telemetry.Endpoint
	mcfg.Insecure = cfg.Telemetry.Insecure
	mcfg.Interval = cfg.Telemetry.Interval
	mcfg.Writer = os.Stderr

	mp, err := observability.InitMeter(ctx, &mcfg)
	if err != nil {
		return nil, err
	}
	app.OnStop(mp.Shutdown)

	metrics, err := observability.NewMetrics(mp.Meter(serviceName))
	if err != nil {
		return nil, err
	}
	return observability.NewPipelineObserver(metrics, tp.Tracer(serviceName)), nil
}

func versionOr(v string) string {
	if v != "" {
		return v
	}
	return version.Version
}
