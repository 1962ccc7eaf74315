package pipeline

import (
	"context"
	"errors"
	"slices"
	"testing"
)

func collectTriples(t *testing.T, data []int, size int) []Triple[int] {
	t.Helper()
	w, err := NewWindowed(FromSlice(data), size)
	if err != nil {
		t.Fatalf("NewWindowed(%d): %v", size, err)
	}
	got, err := Collect[Triple[int]](context.Background(), w)
	if err != nil {
		t.Fatal(err)
	}
	return got
}

func tripleEqual(a, b Triple[int]) bool {
	return a.Current == b.Current && slices.Equal(a.Left, b.Left) && slices.Equal(a.Right, b.Right)
}

func TestWindowed_Fixtures(t *testing.T) {
	tests := []struct {
		name string
		data []int
		size int
		want []Triple[int]
	}{
		{
			"size 1", []int{0, 1, 2}, 1,
			[]Triple[int]{
				{nil, 0, []int{1}},
				{[]int{0}, 1, []int{2}},
				{[]int{1}, 2, nil},
			},
		},
		{
			"size 2", []int{0, 1, 2, 3}, 2,
			[]Triple[int]{
				{nil, 0, []int{1, 2}},
				{[]int{0}, 1, []int{2, 3}},
				{[]int{0, 1}, 2, []int{3}},
				{[]int{1, 2}, 3, nil},
			},
		},
		{
			"size larger than data", []int{0, 1}, 10,
			[]Triple[int]{
				{nil, 0, []int{1}},
				{[]int{0}, 1, nil},
			},
		},
		{"empty source", nil, 3, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := collectTriples(t, tc.data, tc.size)
			if len(got) != len(tc.want) {
				t.Fatalf("expected %d triples, got %d: %v", len(tc.want), len(got), got)
			}
			for i := range got {
				if !tripleEqual(got[i], tc.want[i]) {
					t.Errorf("triple %d: got %v, want %v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestWindowed_NeighbourProperty(t *testing.T) {
	for size := 1; size <= 5; size++ {
		for n := 0; n <= 9; n++ {
			data := ints(100, 100+n)
			got := collectTriples(t, data, size)
			if len(got) != n {
				t.Fatalf("size=%d n=%d: expected %d triples, got %d", size, n, n, len(got))
			}
			for i, tr := range got {
				lo := max(0, i-size)
				hi := min(n, i+1+size)
				if tr.Current != data[i] {
					t.Errorf("size=%d n=%d i=%d: current %d, want %d", size, n, i, tr.Current, data[i])
				}
				if len(tr.Left) != min(i, size) || !slices.Equal(tr.Left, data[lo:i]) {
					t.Errorf("size=%d n=%d i=%d: left %v, want %v", size, n, i, tr.Left, data[lo:i])
				}
				if len(tr.Right) != min(n-1-i, size) || !slices.Equal(tr.Right, data[i+1:hi]) {
					t.Errorf("size=%d n=%d i=%d: right %v, want %v", size, n, i, tr.Right, data[i+1:hi])
				}
			}
		}
	}
}

func TestWindowed_SnapshotsAreIndependent(t *testing.T) {
	ctx := context.Background()
	w, err := NewWindowed(FromSlice(ints(0, 6)), 2)
	if err != nil {
		t.Fatal(err)
	}
	first, _, _ := w.Next(ctx)
	second, _, _ := w.Next(ctx)
	held := Triple[int]{Left: slices.Clone(second.Left), Current: second.Current, Right: slices.Clone(second.Right)}

	for {
		_, ok, err := w.Next(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			break
		}
	}
	if !tripleEqual(first, Triple[int]{nil, 0, []int{1, 2}}) {
		t.Errorf("first triple changed: %v", first)
	}
	if !tripleEqual(second, held) {
		t.Errorf("second triple changed: got %v, want %v", second, held)
	}

	second.Left = append(second.Left, 99)
	second.Right[0] = -1
	if !tripleEqual(first, Triple[int]{nil, 0, []int{1, 2}}) {
		t.Errorf("mutating one triple leaked into another: %v", first)
	}
}

func TestWindowed_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1, -10} {
		src := &countingIter[int]{items: ints(0, 3)}
		_, err := NewWindowed[int](src, size)
		if !errors.Is(err, ErrConfiguration) {
			t.Errorf("size %d: expected configuration error, got %v", size, err)
		}
		if src.pulled != 0 {
			t.Errorf("size %d: expected no pulls, got %d", size, src.pulled)
		}
	}
}

func TestWindowed_PrefetchAndRefill(t *testing.T) {
	ctx := context.Background()
	src := &countingIter[int]{items: ints(0, 10)}
	w, err := NewWindowed[int](src, 3)
	if err != nil {
		t.Fatal(err)
	}
	if src.pulled != 0 {
		t.Fatalf("expected no pulls before the first Next, got %d", src.pulled)
	}
	if _, _, err := w.Next(ctx); err != nil {
		t.Fatal(err)
	}
	// size elements of lookahead plus one refill after popping the current.
	if src.pulled != 4 {
		t.Errorf("expected 4 pulls after the first triple, got %d", src.pulled)
	}
	if _, _, err := w.Next(ctx); err != nil {
		t.Fatal(err)
	}
	if src.pulled != 5 {
		t.Errorf("expected one refill per step, got %d pulls", src.pulled)
	}
}

func TestWindowed_ExhaustedStaysExhausted(t *testing.T) {
	ctx := context.Background()
	w, err := NewWindowed(FromSlice([]int{1}), 1)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := w.Next(ctx); !ok {
		t.Fatal("expected one triple")
	}
	for i := 0; i < 3; i++ {
		if _, ok, err := w.Next(ctx); ok || err != nil {
			t.Fatalf("expected exhaustion, got ok=%v err=%v", ok, err)
		}
	}
}

func TestWindowed_SourceErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	w, err := NewWindowed[int](&failingIter[int]{items: []int{1, 2}, err: boom}, 1)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Collect[Triple[int]](context.Background(), w)
	if err != boom {
		t.Fatalf("expected source error unchanged, got %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 triple before the error, got %d", len(got))
	}
}

func TestWindowed_CloseClosesSource(t *testing.T) {
	src := &countingIter[int]{items: ints(0, 3)}
	w, _ := NewWindowed[int](src, 1)
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if !src.closed {
		t.Error("expected source to be closed")
	}
	if w.Size() != 1 {
		t.Errorf("expected size 1, got %d", w.Size())
	}
}

func TestWindowify_DewindowifyIdentity(t *testing.T) {
	ctx := context.Background()
	for k := 1; k <= 4; k++ {
		for _, data := range [][]int{nil, {5}, {5, 6, 7}, ints(0, 12)} {
			windowed, err := Windowify[int](k)(FromSlice(data))
			if err != nil {
				t.Fatal(err)
			}
			plain, err := Dewindowify(windowed)
			if err != nil {
				t.Fatal(err)
			}
			got, err := Collect(ctx, plain)
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(got, data) {
				t.Errorf("k=%d: got %v, want %v", k, got, data)
			}
		}
	}
}

func TestWindowify_InvalidSize(t *testing.T) {
	_, err := Windowify[int](0)(FromSlice([]int{1}))
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("expected configuration error, got %v", err)
	}
}
