package core

import (
	"context"
	"time"
)

// Outcome summarizes a finished fold for OnComplete.
type Outcome struct {
	Steps   int           // completed combiner invocations
	Elapsed time.Duration // from OnStart to completion
	Err     error         // nil on success
}

// Hooks holds observation callbacks for folds. All fields are optional.
// Hooks run synchronously on the folding goroutine, so they should be fast.
type Hooks struct {
	OnStart    func(context.Context, Call)          // fold passed validation and the pre-flight check
	OnStep     func(context.Context, Call, int)     // a combiner invocation completed; argument is the step count so far
	OnComplete func(context.Context, Call, Outcome) // fold ended, successfully or not
}

// hooksKey is unexported to prevent collisions with user context keys.
type hooksKey struct{}

type hooksContainer struct {
	hookSets []*Hooks
}

// WithHooks attaches hooks to the context. Multiple calls compose in FIFO
// order: hooks attached earlier run first.
//
// Example:
//
//	ctx := core.WithHooks(ctx, core.Hooks{
//	    OnComplete: func(_ context.Context, c core.Call, o core.Outcome) { log.Println(c.Arity, o.Steps) },
//	})
func WithHooks(ctx context.Context, hooks Hooks) context.Context {
	if ctx == nil {
		panic("nil context")
	}

	existing := getHooksContainer(ctx)
	if existing == nil {
		return context.WithValue(ctx, hooksKey{}, &hooksContainer{hookSets: []*Hooks{&hooks}})
	}

	next := &hooksContainer{hookSets: make([]*Hooks, len(existing.hookSets)+1)}
	copy(next.hookSets, existing.hookSets)
	next.hookSets[len(existing.hookSets)] = &hooks
	return context.WithValue(ctx, hooksKey{}, next)
}

func getHooksContainer(ctx context.Context) *hooksContainer {
	if ctx == nil {
		return nil
	}
	if c, ok := ctx.Value(hooksKey{}).(*hooksContainer); ok {
		return c
	}
	return nil
}

// Invoker dispatches the hooks found in a context for one fold call.
// It caches which callbacks exist so a fold without hooks pays only a
// nil check per step.
type Invoker struct {
	ctx         context.Context
	call        Call
	container   *hooksContainer
	hasStep     bool
	hasComplete bool
	started     time.Time
}

// NewInvoker resolves the hooks attached to ctx for call.
func NewInvoker(ctx context.Context, call Call) *Invoker {
	inv := &Invoker{ctx: ctx, call: call, container: getHooksContainer(ctx)}
	if inv.container == nil {
		return inv
	}
	for _, h := range inv.container.hookSets {
		if h.OnStep != nil {
			inv.hasStep = true
		}
		if h.OnComplete != nil {
			inv.hasComplete = true
		}
	}
	return inv
}

// Start records the start time and runs OnStart hooks.
func (inv *Invoker) Start() {
	inv.started = time.Now()
	if inv.container == nil {
		return
	}
	for _, h := range inv.container.hookSets {
		if h.OnStart != nil {
			h.OnStart(inv.ctx, inv.call)
		}
	}
}

// Step runs OnStep hooks.
func (inv *Invoker) Step(steps int) {
	if !inv.hasStep {
		return
	}
	for _, h := range inv.container.hookSets {
		if h.OnStep != nil {
			h.OnStep(inv.ctx, inv.call, steps)
		}
	}
}

// Complete runs OnComplete hooks with the final outcome.
func (inv *Invoker) Complete(steps int, err error) {
	if !inv.hasComplete {
		return
	}
	out := Outcome{Steps: steps, Elapsed: time.Since(inv.started), Err: err}
	for _, h := range inv.container.hookSets {
		if h.OnComplete != nil {
			h.OnComplete(inv.ctx, inv.call, out)
		}
	}
}

// NewSafeHooks wraps every callback of hooks with panic recovery. Use it for
// hooks that should never be able to break a fold. If panicHandler is nil,
// panics are silently recovered.
func NewSafeHooks(hooks Hooks, panicHandler func(any)) Hooks {
	if panicHandler == nil {
		panicHandler = func(any) {}
	}
	recoverTo := func() {
		if r := recover(); r != nil {
			panicHandler(r)
		}
	}

	var safe Hooks
	if hooks.OnStart != nil {
		fn := hooks.OnStart
		safe.OnStart = func(ctx context.Context, c Call) {
			defer recoverTo()
			fn(ctx, c)
		}
	}
	if hooks.OnStep != nil {
		fn := hooks.OnStep
		safe.OnStep = func(ctx context.Context, c Call, steps int) {
			defer recoverTo()
			fn(ctx, c, steps)
		}
	}
	if hooks.OnComplete != nil {
		fn := hooks.OnComplete
		safe.OnComplete = func(ctx context.Context, c Call, o Outcome) {
			defer recoverTo()
			fn(ctx, c, o)
		}
	}
	return safe
}

// WithSafeHooks wraps hooks with panic recovery and attaches them to ctx.
func WithSafeHooks(ctx context.Context, hooks Hooks, panicHandler func(any)) context.Context {
	return WithHooks(ctx, NewSafeHooks(hooks, panicHandler))
}
