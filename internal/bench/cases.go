package bench

import (
	"context"

	"github.com/kbukum/pipey/pipedef"
	"github.com/kbukum/pipey/pipeline"
)

// Case is one benchmarked workload over the integers [0, n).
type Case struct {
	Name string
	// Run returns the workload's result for n.
	Run func(ctx context.Context, n int, opts ...pipeline.Option) (int, error)
	// Expected returns the closed-form result for n.
	Expected func(n int) int
}

const basicDescription = `
name: basic_pipeline
stages:
  - {kind: map, op: mul, args: [2]}
  - {kind: filter, op: gt, args: [5]}
  - {kind: map, op: sub, args: [1]}
  - {kind: reduce, op: sum}
`

const windowedDescription = `
name: windowed_pipeline
stages:
  - {kind: map, op: mul, args: [2]}
  - {kind: window, op: windowify, args: [2]}
  - {kind: filter, op: left_sum_gt, args: [4]}
  - {kind: window, op: dewindowify}
  - {kind: reduce, op: sum}
`

// Cases returns the benchmark workloads. The pipelines are built once.
func Cases() ([]Case, error) {
	reg := pipedef.Builtins()
	basic, err := describe(basicDescription, reg)
	if err != nil {
		return nil, err
	}
	windowed, err := describe(windowedDescription, reg)
	if err != nil {
		return nil, err
	}
	return []Case{
		{
			Name: "basic_pipeline",
			Run:  reduceCase(basic),
			// sum of 2i-1 for i in [3, n)
			Expected: func(n int) int { return (n - 3) * (n + 1) },
		},
		{
			Name: "windowed_pipeline",
			Run:  reduceCase(windowed),
			// sum of 2i for i in [3, n)
			Expected: func(n int) int { return n*(n-1) - 6 },
		},
		{
			Name:     "windowed_only_sum",
			Run:      windowedOnlySum,
			Expected: func(n int) int { return (n - 1) * n / 2 },
		},
	}, nil
}

func describe(doc string, reg *pipedef.Registry) (pipeline.Pipeline, error) {
	def, err := pipedef.Parse([]byte(doc))
	if err != nil {
		return nil, err
	}
	return pipedef.Build(def, reg)
}

func reduceCase(stages pipeline.Pipeline) func(context.Context, int, ...pipeline.Option) (int, error) {
	return func(ctx context.Context, n int, opts ...pipeline.Option) (int, error) {
		return pipeline.Run[int, int](ctx, pipeline.Range(0, n), stages, opts...)
	}
}

// windowedOnlySum sums the current element of every size-2 window,
// bypassing the executor.
func windowedOnlySum(ctx context.Context, n int, _ ...pipeline.Option) (int, error) {
	w, err := pipeline.NewWindowed(pipeline.Range(0, n), 2)
	if err != nil {
		return 0, err
	}
	total := 0
	err = pipeline.ForEach[pipeline.Triple[int]](ctx, w, func(t pipeline.Triple[int]) {
		total += t.Current
	})
	return total, err
}
