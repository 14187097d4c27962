package fold_test

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"testing"

	"github.com/lguimbarda/min-fold/fold"
)

func TestMap(t *testing.T) {
	ctx := context.Background()
	parsed := fold.Map(strconv.Atoi).Apply(fold.StreamOf("1", "2", "3", "4"))

	got, err := fold.Aggregate[int](ctx, parsed, fold.Sync(func(acc, x int) (int, error) {
		return acc + 3 - x, nil
	}))
	if err != nil || got != 1 {
		t.Errorf("got (%d, %v), want (1, nil)", got, err)
	}

	bad := fold.Map(strconv.Atoi).Apply(fold.StreamOf("1", "x", "3"))
	_, err = fold.Sum[int](ctx, bad)
	var numErr *strconv.NumError
	if !errors.As(err, &numErr) {
		t.Errorf("error = %v, want a *strconv.NumError", err)
	}
}

func TestMapPanicIsAFault(t *testing.T) {
	mapped := fold.Map(func(x int) (int, error) {
		if x == 2 {
			panic("two")
		}
		return x, nil
	}).Apply(fold.StreamOf(1, 2, 3))

	_, err := fold.Sum[int](context.Background(), mapped)
	if err == nil {
		t.Fatal("expected the panic to surface as an error")
	}
}

func TestThrough(t *testing.T) {
	double := fold.Map(func(x int) (int, error) { return x * 2, nil })
	format := fold.Map(func(x int) (string, error) { return strconv.Itoa(x), nil })

	got, err := fold.Slice(context.Background(), fold.Through[int, int, string](double, format).Apply(fold.StreamOf(1, 2, 3)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(got, []string{"2", "4", "6"}) {
		t.Errorf("got %v, want [2 4 6]", got)
	}
}

func TestPipe(t *testing.T) {
	inc := fold.Map(func(x int) (int, error) { return x + 1, nil })
	sq := fold.Map(func(x int) (int, error) { return x * x, nil })

	tests := []struct {
		name         string
		transformers []fold.Transformer[int, int]
		want         []int
	}{
		{name: "none", want: []int{1, 2, 3}},
		{name: "left to right", transformers: []fold.Transformer[int, int]{inc, sq}, want: []int{4, 9, 16}},
		{name: "reversed", transformers: []fold.Transformer[int, int]{sq, inc}, want: []int{2, 5, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fold.Slice(context.Background(), fold.Pipe(fold.StreamOf(1, 2, 3), tt.transformers...))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApply(t *testing.T) {
	lengths := fold.Apply[string, int](fold.StreamOf("a", "bb", "ccc"), fold.Map(func(s string) (int, error) {
		return len(s), nil
	}))
	avg, err := fold.Average[int](context.Background(), lengths)
	if err != nil || avg != 2 {
		t.Errorf("Average = (%v, %v), want (2, nil)", avg, err)
	}
}
