package aggregate

import (
	"context"

	"github.com/lguimbarda/min-fold/fold/core"
)

// plan is a validated fold call. Every public entry point builds one and
// hands it to execute, which is the only fold loop in the package.
type plan[T, A, R any] struct {
	call    core.Call
	source  core.Source[T]
	seeded  bool
	seed    A
	first   func(T) A // unseeded arity: the first element becomes the accumulator
	combine func(context.Context, A, T) core.Future[A]
	finish  func(context.Context, A) core.Future[R]
}

// execute runs the fold. Only one combiner invocation is ever in flight:
// element i+1 is pulled after the Future of element i has settled. The
// context is checked once up front; later cancellation is observed by the
// source and by cancelable steps, never polled between steps.
func execute[T, A, R any](ctx context.Context, p plan[T, A, R]) (result R, err error) {
	var zero R
	if ctx.Err() != nil {
		return zero, core.Canceled(ctx)
	}

	hooks := core.NewInvoker(ctx, p.call)
	hooks.Start()
	steps := 0
	defer func() {
		hooks.Complete(steps, err)
	}()

	cur := p.source.Cursor(ctx)
	defer func() {
		if cerr := cur.Close(); cerr != nil && err == nil {
			result, err = zero, cerr
		}
	}()

	var acc A
	if p.seeded {
		acc = p.seed
	} else {
		item, ok, err := cur.Next(ctx)
		if err != nil {
			return zero, err
		}
		if !ok {
			return zero, core.ErrEmptySequence
		}
		acc = p.first(item)
	}

	for {
		item, ok, err := cur.Next(ctx)
		if err != nil {
			return zero, err
		}
		if !ok {
			break
		}
		if acc, err = p.combine(ctx, acc, item).Await(); err != nil {
			return zero, err
		}
		steps++
		hooks.Step(steps)
	}

	return p.finish(ctx, acc).Await()
}
