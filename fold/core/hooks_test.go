package core

import (
	"context"
	"errors"
	"testing"
)

var testCall = Call{Arity: Seeded, Combiner: ShapeSync}

func TestInvoker(t *testing.T) {
	var events []string
	ctx := WithHooks(context.Background(), Hooks{
		OnStart: func(_ context.Context, c Call) {
			events = append(events, "start:"+c.Arity.String())
		},
		OnStep: func(context.Context, Call, int) {
			events = append(events, "step")
		},
	})
	var outcome Outcome
	ctx = WithHooks(ctx, Hooks{
		OnStart: func(context.Context, Call) {
			events = append(events, "second start")
		},
		OnComplete: func(_ context.Context, _ Call, o Outcome) {
			events = append(events, "complete")
			outcome = o
		},
	})

	fault := errors.New("fault")
	inv := NewInvoker(ctx, testCall)
	inv.Start()
	inv.Step(1)
	inv.Step(2)
	inv.Complete(2, fault)

	want := []string{"start:seeded", "second start", "step", "step", "complete"}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("events[%d] = %q, want %q", i, events[i], want[i])
		}
	}
	if outcome.Steps != 2 || outcome.Err != fault || outcome.Elapsed < 0 {
		t.Errorf("outcome = %+v, want 2 steps and the fault", outcome)
	}
}

func TestInvokerWithoutHooks(t *testing.T) {
	inv := NewInvoker(context.Background(), testCall)
	inv.Start()
	inv.Step(1)
	inv.Complete(1, nil)
}

func TestWithHooksDoesNotMutateParent(t *testing.T) {
	var parentCalls, childCalls int
	parent := WithHooks(context.Background(), Hooks{
		OnStart: func(context.Context, Call) { parentCalls++ },
	})
	_ = WithHooks(parent, Hooks{
		OnStart: func(context.Context, Call) { childCalls++ },
	})

	NewInvoker(parent, testCall).Start()
	if parentCalls != 1 || childCalls != 0 {
		t.Errorf("calls = (%d, %d), want (1, 0)", parentCalls, childCalls)
	}
}

func TestSafeHooks(t *testing.T) {
	var recovered []any
	ctx := WithSafeHooks(context.Background(), Hooks{
		OnStart:    func(context.Context, Call) { panic("start") },
		OnStep:     func(context.Context, Call, int) { panic("step") },
		OnComplete: func(context.Context, Call, Outcome) { panic("complete") },
	}, func(r any) { recovered = append(recovered, r) })

	inv := NewInvoker(ctx, testCall)
	inv.Start()
	inv.Step(1)
	inv.Complete(1, nil)

	if len(recovered) != 3 {
		t.Errorf("recovered %v, want three panics", recovered)
	}

	// A nil handler swallows the panic.
	NewInvoker(WithSafeHooks(context.Background(), Hooks{
		OnStart: func(context.Context, Call) { panic("ignored") },
	}, nil), testCall).Start()
}

func TestCallStrings(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{NoSeed.String(), "no_seed"},
		{Seeded.String(), "seeded"},
		{SeededTransform.String(), "seeded_transform"},
		{ShapeNone.String(), "none"},
		{ShapeSync.String(), "sync"},
		{ShapeAsync.String(), "async"},
		{ShapeAsyncCancelable.String(), "async_cancelable"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("String() = %q, want %q", tt.got, tt.want)
		}
	}
}
