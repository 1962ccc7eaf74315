package pipedef

import (
	"github.com/kbukum/pipey/errors"
	"github.com/kbukum/pipey/pipeline"
	"github.com/kbukum/pipey/validation"
)

// Builtins returns a Registry with the integer operations:
//
//	map     add(n) sub(n) mul(n)
//	filter  gt(n) lt(n) even odd left_sum_gt(n)
//	reduce  sum product max min       (seed optional)
//	window  windowify(size) dewindowify
//
// left_sum_gt keeps window triples whose left neighbours sum above n.
func Builtins() *Registry {
	r := NewRegistry()

	r.Register(pipeline.KindMap, "add", unary(func(n int) pipeline.Stage {
		return pipeline.MapFunc(func(x int) int { return x + n })
	}))
	r.Register(pipeline.KindMap, "sub", unary(func(n int) pipeline.Stage {
		return pipeline.MapFunc(func(x int) int { return x - n })
	}))
	r.Register(pipeline.KindMap, "mul", unary(func(n int) pipeline.Stage {
		return pipeline.MapFunc(func(x int) int { return x * n })
	}))

	r.Register(pipeline.KindFilter, "gt", unary(func(n int) pipeline.Stage {
		return pipeline.Filter(func(x int) bool { return x > n })
	}))
	r.Register(pipeline.KindFilter, "lt", unary(func(n int) pipeline.Stage {
		return pipeline.Filter(func(x int) bool { return x < n })
	}))
	r.Register(pipeline.KindFilter, "even", nullary(func() pipeline.Stage {
		return pipeline.Filter(func(x int) bool { return x%2 == 0 })
	}))
	r.Register(pipeline.KindFilter, "odd", nullary(func() pipeline.Stage {
		return pipeline.Filter(func(x int) bool { return x%2 != 0 })
	}))
	r.Register(pipeline.KindFilter, "left_sum_gt", unary(func(n int) pipeline.Stage {
		return pipeline.Filter(func(t pipeline.Triple[int]) bool { return sum(t.Left) > n })
	}))

	r.Register(pipeline.KindReduce, "sum", reduction(func(a, b int) int { return a + b }))
	r.Register(pipeline.KindReduce, "product", reduction(func(a, b int) int { return a * b }))
	r.Register(pipeline.KindReduce, "max", reduction(func(a, b int) int { return max(a, b) }))
	r.Register(pipeline.KindReduce, "min", reduction(func(a, b int) int { return min(a, b) }))

	r.Register(pipeline.KindWindow, "windowify", func(p Params) (pipeline.Stage, error) {
		if err := arity(p, 1); err != nil {
			return nil, err
		}
		if p.Args[0] < 1 {
			return nil, errors.Configuration("window_size", p.Args[0], "must be >= 1")
		}
		return pipeline.Window(pipeline.Windowify[int](p.Args[0])), nil
	})
	r.Register(pipeline.KindWindow, "dewindowify", nullary(func() pipeline.Stage {
		return pipeline.Window(pipeline.Dewindowify[int])
	}))

	return r
}

func arity(p Params, n int) error {
	return validation.New().
		Len("args", len(p.Args), n).
		Custom(p.Seed == nil, "seed", "only allowed on reduce stages").
		Validate()
}

func nullary(build func() pipeline.Stage) Factory {
	return func(p Params) (pipeline.Stage, error) {
		if err := arity(p, 0); err != nil {
			return nil, err
		}
		return build(), nil
	}
}

func unary(build func(n int) pipeline.Stage) Factory {
	return func(p Params) (pipeline.Stage, error) {
		if err := arity(p, 1); err != nil {
			return nil, err
		}
		return build(p.Args[0]), nil
	}
}

func reduction(fn func(a, b int) int) Factory {
	return func(p Params) (pipeline.Stage, error) {
		if err := validation.New().Len("args", len(p.Args), 0).Validate(); err != nil {
			return nil, err
		}
		if p.Seed != nil {
			return pipeline.ReduceWith(*p.Seed, fn), nil
		}
		return pipeline.Reduce(fn), nil
	}
}

func sum(xs []int) int {
	s := 0
	for _, x := range xs {
		s += x
	}
	return s
}
