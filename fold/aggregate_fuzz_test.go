package fold_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lguimbarda/min-fold/fold"
)

func FuzzAggregateMatchesLoop(f *testing.F) {
	f.Add([]byte{1, 2, 3, 4}, int64(5), uint8(0))
	f.Add([]byte{}, int64(5), uint8(1))
	f.Add([]byte{7}, int64(-3), uint8(2))
	f.Add([]byte{0, 255, 13, 11, 9}, int64(0), uint8(3))

	f.Fuzz(func(t *testing.T, data []byte, seed int64, faultAt uint8) {
		items := make([]int64, len(data))
		for i, b := range data {
			items[i] = int64(b) - 128
		}
		step := func(acc, x int64) int64 { return acc + 3 - x }

		want := seed
		for _, x := range items {
			want = step(want, x)
		}

		ctx := context.Background()
		src := fold.FromSlice(items)
		combiners := []fold.Combiner[int64, int64]{
			fold.Sync(func(acc, x int64) (int64, error) { return step(acc, x), nil }),
			fold.Async(func(acc, x int64) fold.Future[int64] {
				return fold.Go(func() (int64, error) { return step(acc, x), nil })
			}),
			fold.Cancelable(func(_ context.Context, acc, x int64) fold.Future[int64] {
				return fold.Resolved(step(acc, x))
			}),
		}
		for i, combine := range combiners {
			got, err := fold.AggregateInt64Seed(ctx, src, seed, combine)
			if err != nil || got != want {
				t.Fatalf("combiner %d: got (%d, %v), want (%d, nil)", i, got, err, want)
			}

			got, err = fold.AggregateInt64(ctx, src, combine)
			if len(items) == 0 {
				if !errors.Is(err, fold.ErrEmptySequence) {
					t.Fatalf("combiner %d: error = %v, want ErrEmptySequence", i, err)
				}
				continue
			}
			noSeed := items[0]
			for _, x := range items[1:] {
				noSeed = step(noSeed, x)
			}
			if err != nil || got != noSeed {
				t.Fatalf("combiner %d: no seed got (%d, %v), want (%d, nil)", i, got, err, noSeed)
			}
		}

		// A fault at faultAt stops the fold with that fault and no result.
		calls := 0
		got, err := fold.AggregateInt64Seed(ctx, src, seed, fold.Sync(func(acc, x int64) (int64, error) {
			if calls == int(faultAt) {
				return 0, fmt.Errorf("fault at %d", calls)
			}
			calls++
			return step(acc, x), nil
		}))
		if int(faultAt) < len(items) {
			if err == nil || got != 0 {
				t.Fatalf("fault at %d: got (%d, %v), want an error", faultAt, got, err)
			}
			if calls != int(faultAt) {
				t.Fatalf("fault at %d: %d successful calls", faultAt, calls)
			}
		} else if err != nil || got != want {
			t.Fatalf("no fault: got (%d, %v), want (%d, nil)", got, err, want)
		}
	})
}
