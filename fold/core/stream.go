// Package core defines the building blocks of min-fold: Results and
// Futures, channel-backed Streams, pull Cursors over them, the error
// taxonomy of a fold and the hooks used to observe one.
//
// NOTE: this package should have no dependencies outside the standard
// library, including other fold packages.
package core

import (
	"context"
	"iter"
)

// Stream is an asynchronous, restartable element producer. Every call to
// Emit starts a fresh production bound to ctx. A Stream is also a Source:
// Cursor pulls the channel one Result at a time.
type Stream[T any] interface {
	Emit(context.Context) <-chan Result[T]
	Cursor(context.Context) Cursor[T]
}

// Collect gathers every Result of one emission, errors and sentinels included.
func Collect[T any](ctx context.Context, stream Stream[T]) []Result[T] {
	var results []Result[T]
	for res := range stream.Emit(ctx) {
		results = append(results, res)
	}
	return results
}

// All iterates over the Results of one emission.
func All[T any](ctx context.Context, stream Stream[T]) iter.Seq[Result[T]] {
	return func(yield func(Result[T]) bool) {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		for res := range stream.Emit(ctx) {
			if !yield(res) {
				return
			}
		}
	}
}

// Transformer turns a Stream of IN into a Stream of OUT.
type Transformer[IN, OUT any] interface {
	Apply(Stream[IN]) Stream[OUT]
}
