package core

import (
	"context"
	"iter"
)

// Emitter is a function producing a channel of Results. It is the plain
// function form of a Stream.
type Emitter[T any] func(context.Context) <-chan Result[T]

func Emit[T any](emitter func(context.Context) <-chan Result[T]) Emitter[T] {
	return emitter
}

func (e Emitter[T]) Emit(ctx context.Context) <-chan Result[T] {
	return e(ctx)
}

func (e Emitter[T]) Cursor(ctx context.Context) Cursor[T] {
	return Pull[T](ctx, e)
}

func (e Emitter[T]) Collect(ctx context.Context) []Result[T] {
	return Collect[T](ctx, e)
}

func (e Emitter[T]) All(ctx context.Context) iter.Seq[Result[T]] {
	return All[T](ctx, e)
}

// Transmitter rewrites one channel of Results into another.
type Transmitter[IN, OUT any] func(context.Context, <-chan Result[IN]) <-chan Result[OUT]

func Transmit[IN, OUT any](transmitter func(context.Context, <-chan Result[IN]) <-chan Result[OUT]) Transmitter[IN, OUT] {
	return transmitter
}

func (t Transmitter[IN, OUT]) Apply(in Stream[IN]) Stream[OUT] {
	return Emit(func(ctx context.Context) <-chan Result[OUT] {
		return t(ctx, in.Emit(ctx))
	})
}
