package pipeline_test

import (
	"context"
	"fmt"

	"github.com/kbukum/pipey/pipeline"
)

func Example() {
	stages := []pipeline.Stage{
		pipeline.MapFunc(func(x int) int { return x * 2 }),
		pipeline.Filter(func(x int) bool { return x > 5 }),
		pipeline.MapFunc(func(x int) int { return x - 1 }),
		pipeline.Reduce(func(a, b int) int { return a + b }),
	}
	total, err := pipeline.Run[int, int](context.Background(), pipeline.Range(0, 10), stages)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(total)
	// Output: 77
}

func Example_windowed() {
	leftSum := func(t pipeline.Triple[int]) bool {
		s := 0
		for _, v := range t.Left {
			s += v
		}
		return s > 4
	}
	stages := []pipeline.Stage{
		pipeline.MapFunc(func(x int) int { return x * 2 }),
		pipeline.Window(pipeline.Windowify[int](2)),
		pipeline.Filter(leftSum),
		pipeline.Window(pipeline.Dewindowify[int]),
		pipeline.Reduce(func(a, b int) int { return a + b }),
	}
	total, err := pipeline.Run[int, int](context.Background(), pipeline.Range(0, 10), stages)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(total)
	// Output: 84
}

func ExampleNewWindowed() {
	ctx := context.Background()
	w, err := pipeline.NewWindowed(pipeline.FromSlice([]string{"a", "b", "c", "d"}), 2)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	_ = pipeline.ForEach[pipeline.Triple[string]](ctx, w, func(t pipeline.Triple[string]) {
		fmt.Println(t.Left, t.Current, t.Right)
	})
	// Output:
	// [] a [b c]
	// [a] b [c d]
	// [a b] c [d]
	// [b c] d []
}

func ExampleStream() {
	ctx := context.Background()
	it, err := pipeline.Stream[int, int](ctx, pipeline.Range(1, 6), []pipeline.Stage{
		pipeline.Filter(func(x int) bool { return x%2 == 1 }),
		pipeline.MapFunc(func(x int) int { return x * x }),
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	squares, _ := pipeline.Collect(ctx, it)
	fmt.Println(squares)
	// Output: [1 9 25]
}

func ExampleReduceWith() {
	stages := []pipeline.Stage{
		pipeline.MapFunc(func(x int) int { return x + 1 }),
		pipeline.ReduceWith(10, func(acc, x int) int { return acc + x }),
	}
	total, _ := pipeline.Run[int, int](context.Background(), pipeline.Range(0, 3), stages)
	fmt.Println(total)
	// Output: 16
}
