package core

import (
	"context"
	"errors"
	"testing"
)

func TestSlice(t *testing.T) {
	fault := errors.New("fault")

	got, err := Slice(context.Background(), fromResults(Ok(1), Sentinel[int](nil), Ok(2)))
	if err != nil || len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("Slice = (%v, %v), want ([1 2], nil)", got, err)
	}

	got, err = Slice(context.Background(), fromResults(Ok(1), Err[int](fault), Ok(2)))
	if !errors.Is(err, fault) || got != nil {
		t.Errorf("Slice = (%v, %v), want (nil, %v)", got, err, fault)
	}
}

func TestFirst(t *testing.T) {
	fault := errors.New("fault")

	tests := []struct {
		name    string
		stream  Stream[int]
		want    int
		wantErr error
	}{
		{name: "value", stream: fromSlice([]int{7, 8}), want: 7},
		{name: "empty", stream: fromSlice[int](nil), wantErr: ErrEmptySequence},
		{name: "end of stream", stream: fromResults(EndOfStream[int]()), wantErr: ErrEmptySequence},
		{name: "error", stream: fromResults(Err[int](fault)), wantErr: fault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := First(context.Background(), tt.stream)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("First = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCollectAndAll(t *testing.T) {
	stream := fromResults(Ok(1), EndOfStream[int]())
	results := Collect(context.Background(), stream)
	if len(results) != 2 || !results[1].IsSentinel() {
		t.Errorf("Collect = %v, want a value and a sentinel", results)
	}

	var seen int
	for res := range All(context.Background(), fromSlice([]int{1, 2, 3, 4})) {
		seen += res.Value()
		if seen >= 3 {
			break
		}
	}
	if seen != 3 {
		t.Errorf("early break saw %d, want 3", seen)
	}
}

func TestTransmitter(t *testing.T) {
	evens := Transmit(func(ctx context.Context, in <-chan Result[int]) <-chan Result[int] {
		out := make(chan Result[int])
		go func() {
			defer close(out)
			for res := range in {
				if res.IsValue() && res.Value()%2 != 0 {
					continue
				}
				select {
				case <-ctx.Done():
					return
				case out <- res:
				}
			}
		}()
		return out
	})

	got, err := Slice(context.Background(), evens.Apply(fromSlice([]int{1, 2, 3, 4})))
	if err != nil || len(got) != 2 || got[0] != 2 || got[1] != 4 {
		t.Errorf("got (%v, %v), want ([2 4], nil)", got, err)
	}
}
