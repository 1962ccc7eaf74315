package bootstrap

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/kbukum/pipey/errors"
	"github.com/kbukum/pipey/logger"
)

// App holds the typed config and logger of one command invocation.
type App[C Config] struct {
	Name    string
	Version string
	Cfg     C
	Logger  *logger.Logger

	gracefulTimeout time.Duration
	signals         []os.Signal

	onStart []Hook
	onStop  []Hook
}

// NewApp applies config defaults, validates the config and initializes the logger.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base := cfg.GetServiceConfig()
	app := &App[C]{
		Name:            base.Name,
		Version:         base.Version,
		Cfg:             cfg,
		gracefulTimeout: 10 * time.Second,
		signals:         defaultSignals,
	}

	o := resolveOptions(opts)
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}
	if o.signals != nil {
		app.signals = o.signals
	}
	if o.logger != nil {
		app.Logger = o.logger
	} else {
		logger.Init(&base.Logging)
		app.Logger = logger.GetGlobalLogger()
	}
	return app, nil
}

// RunTask runs start hooks, then task, then stop hooks. The task context is
// canceled on the configured signals. Stop hooks always run once start hooks
// succeeded; the task error takes precedence over a stop error.
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	start := time.Now()
	if err := runHooks(ctx, a.onStart); err != nil {
		_ = a.stop()
		return errors.Internal(err).WithDetail("phase", "start")
	}

	taskCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if len(a.signals) > 0 {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, a.signals...)
		defer signal.Stop(sigCh)

		go func() {
			select {
			case sig := <-sigCh:
				a.Logger.Info("received signal, canceling task", logger.Fields("signal", sig.String()))
				cancel()
			case <-taskCtx.Done():
			}
		}()
	}

	taskErr := task(taskCtx)
	stopErr := a.stop()

	fields := logger.DurationFields("task", time.Since(start))
	if taskErr != nil {
		a.Logger.Debug("task failed", logger.MergeWithError(fields, taskErr))
		return taskErr
	}
	a.Logger.Debug("task finished", fields)
	return stopErr
}

// stop runs stop hooks within the graceful timeout.
func (a *App[C]) stop() error {
	if len(a.onStop) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	if err := runStopHooks(ctx, a.onStop); err != nil {
		a.Logger.Warn("shutdown completed with errors", logger.Fields(logger.FieldError, err.Error()))
		return err
	}
	return nil
}
