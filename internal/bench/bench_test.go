package bench

import (
	"context"
	"testing"
	"time"

	"github.com/kbukum/pipey/errors"
	"github.com/kbukum/pipey/logger"
	"github.com/kbukum/pipey/pipeline"
)

func TestCases_Expected(t *testing.T) {
	cases, err := Cases()
	if err != nil {
		t.Fatalf("Cases: %v", err)
	}
	want := map[string]int{
		"basic_pipeline":    77,
		"windowed_pipeline": 84,
		"windowed_only_sum": 45,
	}
	if len(cases) != len(want) {
		t.Fatalf("expected %d cases, got %d", len(want), len(cases))
	}
	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			if got := c.Expected(10); got != want[c.Name] {
				t.Errorf("Expected(10) = %d, want %d", got, want[c.Name])
			}
			for _, n := range []int{4, 5, 10, 1000} {
				got, err := c.Run(context.Background(), n, pipeline.WithLogger(logger.Nop()))
				if err != nil {
					t.Fatalf("Run(%d): %v", n, err)
				}
				if got != c.Expected(n) {
					t.Errorf("Run(%d) = %d, want %d", n, got, c.Expected(n))
				}
			}
		})
	}
}

type countingObserver struct{ started, finished int }

func (o *countingObserver) RunStarted(ctx context.Context, _ pipeline.RunInfo) context.Context {
	o.started++
	return ctx
}

func (o *countingObserver) RunFinished(context.Context, pipeline.RunInfo, error) { o.finished++ }

func TestRun(t *testing.T) {
	obs := &countingObserver{}
	results, err := Run(context.Background(), Options{
		N: 100, Repeat: 2, Warmup: 1, Observer: obs, Logger: logger.Nop(),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for _, r := range results {
		if r.N != 100 {
			t.Errorf("%s: N = %d", r.Name, r.N)
		}
		if r.Min > r.Avg || r.Avg > r.Max {
			t.Errorf("%s: expected min <= avg <= max, got %v %v %v", r.Name, r.Min, r.Avg, r.Max)
		}
	}
	// two executor-backed cases, three runs each
	if obs.started != 6 || obs.finished != 6 {
		t.Errorf("observer saw %d/%d runs, want 6/6", obs.started, obs.finished)
	}
}

func TestRun_SelectCases(t *testing.T) {
	results, err := Run(context.Background(), Options{
		N: 10, Repeat: 1, Cases: []string{"windowed_only_sum", "basic_pipeline"}, Logger: logger.Nop(),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 2 || results[0].Name != "windowed_only_sum" || results[1].Name != "basic_pipeline" {
		t.Errorf("unexpected results %+v", results)
	}

	_, err = Run(context.Background(), Options{N: 10, Repeat: 1, Cases: []string{"nope"}, Logger: logger.Nop()})
	if !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestRun_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"n too small", Options{N: 3, Repeat: 1}},
		{"no repeats", Options{N: 4, Repeat: 0}},
		{"negative warmup", Options{N: 4, Repeat: 1, Warmup: -1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Run(context.Background(), tc.opts)
			if !errors.HasCode(err, errors.ErrCodeValidation) {
				t.Errorf("expected VALIDATION_ERROR, got %v", err)
			}
		})
	}
}

func TestRunCase_Mismatch(t *testing.T) {
	c := Case{
		Name:     "wrong",
		Run:      func(context.Context, int, ...pipeline.Option) (int, error) { return 1, nil },
		Expected: func(int) int { return 2 },
	}
	_, err := RunCase(context.Background(), c, Options{N: 4, Repeat: 1, Warmup: 1})
	if !errors.HasCode(err, errors.ErrCodeInternal) {
		t.Fatalf("expected INTERNAL_ERROR, got %v", err)
	}
	appErr, _ := errors.AsAppError(err)
	if appErr.Details["case"] != "wrong" {
		t.Errorf("details = %v", appErr.Details)
	}
}

func TestRunCase_PropagatesError(t *testing.T) {
	boom := errors.Validation("boom")
	c := Case{
		Name:     "failing",
		Run:      func(context.Context, int, ...pipeline.Option) (int, error) { return 0, boom },
		Expected: func(int) int { return 0 },
	}
	if _, err := RunCase(context.Background(), c, Options{N: 4, Repeat: 1}); err != boom {
		t.Errorf("expected case error unchanged, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	res := Summarize("x", 1000, []time.Duration{
		1 * time.Millisecond, 2 * time.Millisecond, 3 * time.Millisecond,
	})
	if res.Avg != 2*time.Millisecond {
		t.Errorf("Avg = %v", res.Avg)
	}
	if res.Min != time.Millisecond || res.Max != 3*time.Millisecond {
		t.Errorf("Min/Max = %v/%v", res.Min, res.Max)
	}
	if res.Stdev != time.Millisecond {
		t.Errorf("Stdev = %v, want 1ms", res.Stdev)
	}
	if res.Throughput != 500_000 {
		t.Errorf("Throughput = %v, want 500000", res.Throughput)
	}
}

func TestSummarize_Edges(t *testing.T) {
	one := Summarize("x", 10, []time.Duration{time.Second})
	if one.Stdev != 0 || one.Throughput != 10 {
		t.Errorf("single run: %+v", one)
	}
	zero := Summarize("x", 10, []time.Duration{0})
	if zero.Throughput != 0 {
		t.Errorf("zero duration throughput = %v", zero.Throughput)
	}
	if empty := Summarize("x", 10, nil); empty.Avg != 0 {
		t.Errorf("empty: %+v", empty)
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.N != 200_000 || opts.Repeat != 7 || opts.Warmup != 2 {
		t.Errorf("unexpected defaults %+v", opts)
	}
}
