package bench

import (
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/kbukum/pipey/errors"
	"github.com/kbukum/pipey/logger"
	"github.com/kbukum/pipey/pipeline"
	"github.com/kbukum/pipey/validation"
)

// Options controls a benchmark run.
type Options struct {
	// N is the input size; reduce pipelines need at least four items.
	N int `json:"n" validate:"gte=4"`
	// Repeat is the number of measured runs per case.
	Repeat int `json:"repeat" validate:"gte=1"`
	// Warmup is the number of unmeasured runs per case.
	Warmup int `json:"warmup" validate:"gte=0"`
	// Cases restricts the run to the named cases; empty runs all.
	Cases []string `json:"cases,omitempty"`
	// Observer receives every measured and warmup pipeline run.
	Observer pipeline.Observer `json:"-"`
	// Logger defaults to the global logger with component "bench".
	Logger *logger.Logger `json:"-"`
}

// DefaultOptions returns the defaults of the command-line driver.
func DefaultOptions() Options {
	return Options{N: 200_000, Repeat: 7, Warmup: 2}
}

// Result holds timing statistics for one case.
type Result struct {
	Name  string        `json:"name"`
	N     int           `json:"n"`
	Avg   time.Duration `json:"avg_ns"`
	Min   time.Duration `json:"min_ns"`
	Max   time.Duration `json:"max_ns"`
	Stdev time.Duration `json:"stdev_ns"`
	// Throughput is items per second at the average duration.
	Throughput float64 `json:"items_per_second"`
}

// Run benchmarks every selected case in order. A case whose output differs
// from its expected value fails the run.
func Run(ctx context.Context, opts Options) ([]Result, error) {
	if err := validation.Validate(opts); err != nil {
		return nil, err
	}
	cases, err := Cases()
	if err != nil {
		return nil, err
	}
	cases, err = selectCases(cases, opts.Cases)
	if err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = logger.WithComponent("bench")
	}

	results := make([]Result, 0, len(cases))
	for _, c := range cases {
		res, err := RunCase(ctx, c, opts)
		if err != nil {
			log.Error("benchmark case failed", logger.Fields("case", c.Name, logger.FieldError, err.Error()))
			return nil, err
		}
		log.Info("benchmark case finished", logger.Fields(
			"case", res.Name,
			"n", res.N,
			"avg", res.Avg.String(),
			"items_per_second", int64(res.Throughput),
		))
		results = append(results, res)
	}
	return results, nil
}

// RunCase runs one case with opts.Warmup unmeasured and opts.Repeat measured runs.
func RunCase(ctx context.Context, c Case, opts Options) (Result, error) {
	runOpts := []pipeline.Option{pipeline.WithLogger(logger.Nop())}
	if opts.Observer != nil {
		runOpts = append(runOpts, pipeline.WithObserver(opts.Observer))
	}
	want := c.Expected(opts.N)

	for range opts.Warmup {
		got, err := c.Run(ctx, opts.N, runOpts...)
		if err != nil {
			return Result{}, err
		}
		if got != want {
			return Result{}, mismatch(c.Name, "warmup", got, want)
		}
	}

	durations := make([]time.Duration, 0, opts.Repeat)
	for range opts.Repeat {
		start := time.Now()
		got, err := c.Run(ctx, opts.N, runOpts...)
		elapsed := time.Since(start)
		if err != nil {
			return Result{}, err
		}
		if got != want {
			return Result{}, mismatch(c.Name, "measured", got, want)
		}
		durations = append(durations, elapsed)
	}
	return Summarize(c.Name, opts.N, durations), nil
}

func mismatch(name, phase string, got, want int) error {
	return errors.New(errors.ErrCodeInternal, fmt.Sprintf("%s: unexpected %s output %d, want %d", name, phase, got, want)).
		WithDetails(map[string]any{"case": name, "got": got, "want": want})
}

func selectCases(all []Case, names []string) ([]Case, error) {
	if len(names) == 0 {
		return all, nil
	}
	out := make([]Case, 0, len(names))
	for _, name := range names {
		i := slices.IndexFunc(all, func(c Case) bool { return c.Name == name })
		if i < 0 {
			return nil, errors.NotFound("benchmark case", name)
		}
		out = append(out, all[i])
	}
	return out, nil
}

// Summarize computes statistics over durations. Stdev is the sample
// standard deviation and is zero for a single run. Throughput is zero
// when the average rounds to zero.
func Summarize(name string, n int, durations []time.Duration) Result {
	res := Result{Name: name, N: n}
	if len(durations) == 0 {
		return res
	}

	var total time.Duration
	res.Min, res.Max = durations[0], durations[0]
	for _, d := range durations {
		total += d
		res.Min = min(res.Min, d)
		res.Max = max(res.Max, d)
	}
	mean := float64(total) / float64(len(durations))
	res.Avg = time.Duration(mean)

	if len(durations) > 1 {
		var sq float64
		for _, d := range durations {
			diff := float64(d) - mean
			sq += diff * diff
		}
		res.Stdev = time.Duration(math.Sqrt(sq / float64(len(durations)-1)))
	}
	if res.Avg > 0 {
		res.Throughput = float64(n) / res.Avg.Seconds()
	}
	return res
}
