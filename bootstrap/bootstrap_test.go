package bootstrap

import (
	"context"
	"fmt"
	"os"
	"slices"
	"syscall"
	"testing"
	"time"

	"github.com/kbukum/pipey/config"
	"github.com/kbukum/pipey/errors"
	"github.com/kbukum/pipey/logger"
)

type testConfig struct {
	config.ServiceConfig
	applied bool
}

func (c *testConfig) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.applied = true
}

func newTestApp(t *testing.T, opts ...Option) *App[*testConfig] {
	t.Helper()
	cfg := &testConfig{ServiceConfig: config.ServiceConfig{Name: "pipey", Version: "1.0.0"}}
	app, err := NewApp(cfg, append([]Option{WithLogger(logger.Nop()), WithSignals()}, opts...)...)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	return app
}

func TestNewApp(t *testing.T) {
	app := newTestApp(t)
	if app.Name != "pipey" || app.Version != "1.0.0" {
		t.Errorf("unexpected app identity %q %q", app.Name, app.Version)
	}
	if !app.Cfg.applied {
		t.Error("expected ApplyDefaults to be called")
	}
	if app.Cfg.Environment != "development" {
		t.Errorf("expected default environment, got %q", app.Cfg.Environment)
	}
	if len(app.signals) != 0 {
		t.Errorf("WithSignals() should disable signals, got %v", app.signals)
	}
}

func TestNewApp_DefaultSignalsAndLogger(t *testing.T) {
	cfg := &testConfig{ServiceConfig: config.ServiceConfig{Name: "pipey"}}
	cfg.Logging.Level = "disabled"
	app, err := NewApp(cfg)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	if !slices.Equal(app.signals, []os.Signal{syscall.SIGINT, syscall.SIGTERM}) {
		t.Errorf("signals = %v", app.signals)
	}
	if app.Logger == nil {
		t.Error("expected global logger")
	}
}

func TestNewApp_InvalidConfig(t *testing.T) {
	_, err := NewApp(&testConfig{}, WithLogger(logger.Nop()))
	if !errors.HasCode(err, errors.ErrCodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestRunTask_HookOrder(t *testing.T) {
	app := newTestApp(t)
	var order []string
	record := func(name string) Hook {
		return func(context.Context) error {
			order = append(order, name)
			return nil
		}
	}
	app.OnStart(record("start1"), record("start2"))
	app.OnStop(record("stop1"), record("stop2"))

	err := app.RunTask(context.Background(), func(context.Context) error {
		order = append(order, "task")
		return nil
	})
	if err != nil {
		t.Fatalf("RunTask: %v", err)
	}
	want := []string{"start1", "start2", "task", "stop2", "stop1"}
	if !slices.Equal(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestRunTask_TaskErrorWins(t *testing.T) {
	app := newTestApp(t)
	stopped := false
	app.OnStop(func(context.Context) error {
		stopped = true
		return fmt.Errorf("stop failed")
	})
	taskErr := fmt.Errorf("task failed")

	err := app.RunTask(context.Background(), func(context.Context) error { return taskErr })
	if err != taskErr {
		t.Errorf("expected task error, got %v", err)
	}
	if !stopped {
		t.Error("stop hooks should run after a failed task")
	}
}

func TestRunTask_StopError(t *testing.T) {
	app := newTestApp(t)
	var ran []int
	app.OnStop(
		func(context.Context) error { ran = append(ran, 1); return nil },
		func(context.Context) error { ran = append(ran, 2); return fmt.Errorf("flush failed") },
	)
	err := app.RunTask(context.Background(), func(context.Context) error { return nil })
	if err == nil {
		t.Fatal("expected stop error")
	}
	if !slices.Equal(ran, []int{2, 1}) {
		t.Errorf("every stop hook should run, got %v", ran)
	}
}

func TestRunTask_StartFailure(t *testing.T) {
	app := newTestApp(t)
	stopped, ran := false, false
	app.OnStart(func(context.Context) error { return fmt.Errorf("exporter unreachable") })
	app.OnStop(func(context.Context) error { stopped = true; return nil })

	err := app.RunTask(context.Background(), func(context.Context) error { ran = true; return nil })
	if !errors.HasCode(err, errors.ErrCodeInternal) {
		t.Fatalf("expected INTERNAL_ERROR, got %v", err)
	}
	if ran {
		t.Error("task must not run when a start hook fails")
	}
	if !stopped {
		t.Error("stop hooks should release what was started")
	}
}

func TestRunTask_ContextCanceled(t *testing.T) {
	app := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := app.RunTask(ctx, func(ctx context.Context) error { return ctx.Err() })
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunTask_SignalCancels(t *testing.T) {
	app := newTestApp(t, WithSignals(syscall.SIGUSR1))
	err := app.RunTask(context.Background(), func(ctx context.Context) error {
		if err := syscall.Kill(syscall.Getpid(), syscall.SIGUSR1); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(5 * time.Second):
			return fmt.Errorf("signal did not cancel the task")
		}
	})
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestStop_Timeout(t *testing.T) {
	app := newTestApp(t, WithGracefulTimeout(10*time.Millisecond))
	app.OnStop(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	if err := app.RunTask(context.Background(), func(context.Context) error { return nil }); err == nil {
		t.Error("expected timeout error from stop hook")
	}
}
