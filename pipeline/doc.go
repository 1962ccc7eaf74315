// Package pipeline provides lazy, pull-based data pipelines.
//
// Sequences are modelled as single-pass Iterators: no work happens until a
// consumer pulls a value, and each operator pulls from its upstream on
// demand. A pipeline is an ordered list of Stages (map, filter, window and
// an optional terminal reduce) applied to an input Iterator by Apply.
//
// # Stages
//
//   - Map / MapFunc: transform each element, 1:1
//   - Filter: keep elements matching a predicate
//   - Window: hand the whole upstream sequence to a sequence-to-sequence
//     function, e.g. Windowify(k) or Dewindowify
//   - Reduce / ReduceWith: fold the sequence into one value; must be last
//
// # Usage
//
//	stages := []pipeline.Stage{
//	    pipeline.MapFunc(func(x int) int { return x * 2 }),
//	    pipeline.Window(pipeline.Windowify[int](2)),
//	    pipeline.Filter(func(w pipeline.Triple[int]) bool { return sum(w.Left) > 4 }),
//	    pipeline.Window(pipeline.Dewindowify[int]),
//	    pipeline.Reduce(func(a, b int) int { return a + b }),
//	}
//	total, err := pipeline.Run[int, int](ctx, pipeline.Range(0, 10), stages)
//
// # Iterator operators
//
// The typed operators MapIter, FilterIter, ReduceIter and Limit compose
// Iterators directly when the element types are known at compile time. Collect, Drain, ForEach and All consume them.
package pipeline
