package fold

import (
	"context"

	"github.com/lguimbarda/min-fold/fold/core"
)

// Stream composition. Sources that deliver raw records (CSV rows, query
// results) are shaped into element Streams here before they are folded.

// Transformer turns a Stream of IN into a Stream of OUT.
type Transformer[IN, OUT any] = core.Transformer[IN, OUT]

// Map creates a Transformer from a value function. An error or panic from
// fn becomes a fault that ends any fold over the mapped Stream.
func Map[IN, OUT any](fn func(IN) (OUT, error)) core.Mapper[IN, OUT] {
	return core.Map(fn)
}

// Through chains two transformers, applying t1 and then t2.
func Through[IN, MID, OUT any](t1 Transformer[IN, MID], t2 Transformer[MID, OUT]) Transformer[IN, OUT] {
	return core.Transmit(func(ctx context.Context, in <-chan Result[IN]) <-chan Result[OUT] {
		inStream := Emit(func(context.Context) <-chan Result[IN] { return in })
		return t2.Apply(t1.Apply(inStream)).Emit(ctx)
	})
}

// Pipe applies transformers to stream from left to right.
func Pipe[T any](stream Stream[T], transformers ...Transformer[T, T]) Stream[T] {
	for _, t := range transformers {
		stream = t.Apply(stream)
	}
	return stream
}

// Apply applies a single transformer; it reads left to right at call sites.
func Apply[IN, OUT any](stream Stream[IN], transformer Transformer[IN, OUT]) Stream[OUT] {
	return transformer.Apply(stream)
}

// Slice collects the values of one emission of stream, stopping at the
// first error.
func Slice[T any](ctx context.Context, stream Stream[T]) ([]T, error) {
	return core.Slice(ctx, stream)
}
