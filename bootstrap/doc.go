// Package bootstrap runs finite command-line tasks with a uniform
// lifecycle: validated typed config, logger initialization, start hooks,
// signal-driven cancellation and stop hooks.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.OnStop(func(ctx context.Context) error { return tp.Shutdown(ctx) })
//	err = app.RunTask(ctx, func(ctx context.Context) error {
//	    return runBenchmarks(ctx)
//	})
package bootstrap
