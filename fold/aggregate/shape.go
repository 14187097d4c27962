package aggregate

import (
	"context"

	"github.com/lguimbarda/min-fold/fold/core"
)

// Combiner folds one element into the accumulator. Whatever calling
// convention the caller used, a Combiner is invoked the same way: with the
// fold's context, the current accumulator and the element, returning a
// Future for the next accumulator.
//
// Build one with SyncCombiner, AsyncCombiner or CancelableCombiner. The zero
// Combiner is "nil" and is rejected by every fold.
type Combiner[A, T any] struct {
	shape  core.Shape
	invoke func(context.Context, A, T) core.Future[A]
}

// Shape reports the calling convention the Combiner was built from.
func (c Combiner[A, T]) Shape() core.Shape {
	return c.shape
}

// IsNil reports whether c is the zero Combiner.
func (c Combiner[A, T]) IsNil() bool {
	return c.invoke == nil
}

// SyncCombiner adapts a plain function. It runs inline, its outcome is an
// already settled Future, and it never sees the context. A panic in fn is
// returned as a core.ErrPanic.
func SyncCombiner[A, T any](fn func(acc A, item T) (A, error)) Combiner[A, T] {
	if fn == nil {
		return Combiner[A, T]{}
	}
	return Combiner[A, T]{
		shape: core.ShapeSync,
		invoke: func(_ context.Context, acc A, item T) (f core.Future[A]) {
			defer func() {
				if r := recover(); r != nil {
					f = core.Rejected[A](core.NewPanicError(r))
				}
			}()
			next, err := fn(acc, item)
			if err != nil {
				return core.Rejected[A](err)
			}
			return core.Resolved(next)
		},
	}
}

// AsyncCombiner adapts a function returning a Future. The context is not
// passed on, so the step runs to completion even if the fold is canceled.
func AsyncCombiner[A, T any](fn func(acc A, item T) core.Future[A]) Combiner[A, T] {
	if fn == nil {
		return Combiner[A, T]{}
	}
	return Combiner[A, T]{
		shape: core.ShapeAsync,
		invoke: func(_ context.Context, acc A, item T) core.Future[A] {
			return guard(func() core.Future[A] { return fn(acc, item) })
		},
	}
}

// CancelableCombiner adapts a function that receives the fold's context and
// may settle early with the context's error when it is canceled.
func CancelableCombiner[A, T any](fn func(ctx context.Context, acc A, item T) core.Future[A]) Combiner[A, T] {
	if fn == nil {
		return Combiner[A, T]{}
	}
	return Combiner[A, T]{
		shape: core.ShapeAsyncCancelable,
		invoke: func(ctx context.Context, acc A, item T) core.Future[A] {
			return guard(func() core.Future[A] { return fn(ctx, acc, item) })
		},
	}
}

// Transform maps the final accumulator to the fold's result. It follows the
// same three calling conventions as Combiner, with one argument.
type Transform[A, R any] struct {
	shape  core.Shape
	invoke func(context.Context, A) core.Future[R]
}

// Shape reports the calling convention the Transform was built from.
func (t Transform[A, R]) Shape() core.Shape {
	return t.shape
}

// IsNil reports whether t is the zero Transform.
func (t Transform[A, R]) IsNil() bool {
	return t.invoke == nil
}

// SyncTransform adapts a plain function.
func SyncTransform[A, R any](fn func(acc A) (R, error)) Transform[A, R] {
	if fn == nil {
		return Transform[A, R]{}
	}
	return Transform[A, R]{
		shape: core.ShapeSync,
		invoke: func(_ context.Context, acc A) (f core.Future[R]) {
			defer func() {
				if r := recover(); r != nil {
					f = core.Rejected[R](core.NewPanicError(r))
				}
			}()
			result, err := fn(acc)
			if err != nil {
				return core.Rejected[R](err)
			}
			return core.Resolved(result)
		},
	}
}

// AsyncTransform adapts a function returning a Future, without the context.
func AsyncTransform[A, R any](fn func(acc A) core.Future[R]) Transform[A, R] {
	if fn == nil {
		return Transform[A, R]{}
	}
	return Transform[A, R]{
		shape: core.ShapeAsync,
		invoke: func(_ context.Context, acc A) core.Future[R] {
			return guard(func() core.Future[R] { return fn(acc) })
		},
	}
}

// CancelableTransform adapts a function that receives the fold's context.
func CancelableTransform[A, R any](fn func(ctx context.Context, acc A) core.Future[R]) Transform[A, R] {
	if fn == nil {
		return Transform[A, R]{}
	}
	return Transform[A, R]{
		shape: core.ShapeAsyncCancelable,
		invoke: func(ctx context.Context, acc A) core.Future[R] {
			return guard(func() core.Future[R] { return fn(ctx, acc) })
		},
	}
}

// identity is the finishing step of the arities without a transform.
func identity[A any](_ context.Context, acc A) core.Future[A] {
	return core.Resolved(acc)
}

// guard turns a panic raised while an async function builds its Future
// into a rejected Future.
func guard[A any](start func() core.Future[A]) (f core.Future[A]) {
	defer func() {
		if r := recover(); r != nil {
			f = core.Rejected[A](core.NewPanicError(r))
		}
	}()
	return start()
}
