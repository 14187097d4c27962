// Package fold folds sequences of numeric elements synchronously or
// asynchronously, with cooperative cancellation through context.Context.
//
// This package is the primary user-facing API. Most users only need to
// import it; fold/aggregate holds the engine and fold/core the low-level
// types it is built from.
//
// A fold takes a Source, a Combiner built with Sync, Async or Cancelable,
// and optionally a seed and a Transform:
//
//	sum, err := fold.AggregateInt64Seed(ctx, fold.FromSlice([]int64{1, 2, 3}), 0,
//	    fold.Sync(func(acc, x int64) (int64, error) { return acc + x, nil }))
package fold

import (
	"context"

	"github.com/lguimbarda/min-fold/fold/aggregate"
	"github.com/lguimbarda/min-fold/fold/core"
)

// Type aliases for the core abstractions, so that users do not need to
// import core directly.
type (
	// Result is one item of a Stream or the outcome of a Future.
	Result[T any] = core.Result[T]

	// Future is a suspendable value returned by async steps.
	Future[T any] = core.Future[T]

	// Stream is an asynchronous, restartable element producer.
	Stream[T any] = core.Stream[T]

	// Emitter produces a channel of Results and implements Stream.
	Emitter[T any] = core.Emitter[T]

	// Source is anything a fold can consume.
	Source[T any] = core.Source[T]

	// Cursor pulls one pass over a Source.
	Cursor[T any] = core.Cursor[T]

	// Combiner folds one element into the accumulator.
	Combiner[A, T any] = aggregate.Combiner[A, T]

	// Transform maps the final accumulator to the result.
	Transform[A, R any] = aggregate.Transform[A, R]

	// Hooks observes folds attached to a context.
	Hooks = core.Hooks
)

// Errors returned by folds.
var (
	ErrInvalidArgument = core.ErrInvalidArgument
	ErrNilSource       = core.ErrNilSource
	ErrNilCombiner     = core.ErrNilCombiner
	ErrNilTransform    = core.ErrNilTransform
	ErrEmptySequence   = core.ErrEmptySequence
	ErrCanceled        = core.ErrCanceled
	ErrNoResult        = core.ErrNoResult
	ErrEndOfStream     = core.ErrEndOfStream
)

// IsCanceled reports whether err means a fold stopped because of cancellation.
func IsCanceled(err error) bool {
	return core.IsCanceled(err)
}

// Combiner constructors.

// Sync builds a Combiner from a plain function.
func Sync[A, T any](fn func(acc A, item T) (A, error)) Combiner[A, T] {
	return aggregate.SyncCombiner(fn)
}

// Async builds a Combiner from a function returning a Future.
func Async[A, T any](fn func(acc A, item T) Future[A]) Combiner[A, T] {
	return aggregate.AsyncCombiner(fn)
}

// Cancelable builds a Combiner from a function that receives the fold's context.
func Cancelable[A, T any](fn func(ctx context.Context, acc A, item T) Future[A]) Combiner[A, T] {
	return aggregate.CancelableCombiner(fn)
}

// Transform constructors.

// SyncResult builds a Transform from a plain function.
func SyncResult[A, R any](fn func(acc A) (R, error)) Transform[A, R] {
	return aggregate.SyncTransform(fn)
}

// AsyncResult builds a Transform from a function returning a Future.
func AsyncResult[A, R any](fn func(acc A) Future[R]) Transform[A, R] {
	return aggregate.AsyncTransform(fn)
}

// CancelableResult builds a Transform from a function that receives the fold's context.
func CancelableResult[A, R any](fn func(ctx context.Context, acc A) Future[R]) Transform[A, R] {
	return aggregate.CancelableTransform(fn)
}

// Future constructors.

// Resolved returns a settled Future.
func Resolved[T any](value T) Future[T] {
	return core.Resolved(value)
}

// Rejected returns a Future settled with err.
func Rejected[T any](err error) Future[T] {
	return core.Rejected[T](err)
}

// Go runs fn on a goroutine and returns its Future.
func Go[T any](fn func() (T, error)) Future[T] {
	return core.Go(fn)
}

// FromChan returns a Future settled by the first Result received from ch.
func FromChan[T any](ch <-chan Result[T]) Future[T] {
	return core.FromChan(ch)
}

// WithHooks attaches fold hooks to ctx.
func WithHooks(ctx context.Context, hooks Hooks) context.Context {
	return core.WithHooks(ctx, hooks)
}

// Generic entry points.

// Aggregate folds src starting from its first element.
func Aggregate[T any](ctx context.Context, src Source[T], combine Combiner[T, T]) (T, error) {
	return aggregate.Aggregate(ctx, src, combine)
}

// AggregateSeed folds src starting from seed.
func AggregateSeed[T, A any](ctx context.Context, src Source[T], seed A, combine Combiner[A, T]) (A, error) {
	return aggregate.AggregateSeed(ctx, src, seed, combine)
}

// AggregateSeedResult folds src starting from seed and maps the result.
func AggregateSeedResult[T, A, R any](ctx context.Context, src Source[T], seed A, combine Combiner[A, T], transform Transform[A, R]) (R, error) {
	return aggregate.AggregateSeedResult(ctx, src, seed, combine, transform)
}
