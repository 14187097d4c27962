package core

import (
	"errors"
	"testing"
)

func TestFutureAwait(t *testing.T) {
	fault := errors.New("fault")
	marker := errors.New("marker")

	closed := make(chan Result[int])
	close(closed)

	sentinel := make(chan Result[int], 1)
	sentinel <- Sentinel[int](marker)

	bare := make(chan Result[int], 1)
	bare <- Sentinel[int](nil)

	delivered := make(chan Result[int], 1)
	delivered <- Ok(9)

	tests := []struct {
		name    string
		future  Future[int]
		want    int
		wantErr error
	}{
		{name: "resolved", future: Resolved(4), want: 4},
		{name: "rejected", future: Rejected[int](fault), wantErr: fault},
		{name: "zero future", future: Future[int]{}, wantErr: ErrNoResult},
		{name: "nil channel", future: FromChan[int](nil), wantErr: ErrNoResult},
		{name: "closed channel", future: FromChan(closed), wantErr: ErrNoResult},
		{name: "sentinel", future: FromChan(sentinel), wantErr: marker},
		{name: "bare sentinel", future: FromChan(bare), wantErr: ErrNoResult},
		{name: "delivered", future: FromChan(delivered), want: 9},
		{name: "goroutine value", future: Go(func() (int, error) { return 11, nil }), want: 11},
		{name: "goroutine error", future: Go(func() (int, error) { return 0, fault }), wantErr: fault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.future.Await()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Await() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Await() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFutureGoRecoversPanic(t *testing.T) {
	_, err := Go(func() (string, error) { panic("kaboom") }).Await()
	var p ErrPanic
	if !errors.As(err, &p) {
		t.Fatalf("Await() error = %v, want ErrPanic", err)
	}
	if p.Value != "kaboom" {
		t.Errorf("panic value = %v, want kaboom", p.Value)
	}
}

func TestFutureSettled(t *testing.T) {
	if !Resolved(1).Settled() || !Rejected[int](errors.New("x")).Settled() {
		t.Error("Resolved and Rejected futures should be settled")
	}
	if FromChan(make(chan Result[int])).Settled() {
		t.Error("a channel future should not be settled")
	}
}
