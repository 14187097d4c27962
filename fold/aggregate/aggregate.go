// Package aggregate is the fold engine of min-fold. It folds any
// core.Source with a combiner in one of three calling conventions (sync,
// async, async-cancelable), optionally from a seed and through a final
// transform, and builds the common reductions on top of that single loop.
package aggregate

import (
	"context"

	"github.com/lguimbarda/min-fold/fold/core"
)

// Aggregate folds src starting from its first element.
//
// Arguments are validated first and fail with core.ErrNilSource or
// core.ErrNilCombiner regardless of ctx. A ctx that is already done fails
// with a *core.CanceledError before the combiner is invoked. An empty
// source fails with core.ErrEmptySequence. Errors from the source or the
// combiner are returned unchanged.
func Aggregate[T any](ctx context.Context, src core.Source[T], combine Combiner[T, T]) (T, error) {
	if err := validate(src, combine.IsNil(), core.NoSeed, false); err != nil {
		var zero T
		return zero, err
	}
	return execute(ctx, plan[T, T, T]{
		call:    core.Call{Arity: core.NoSeed, Combiner: combine.shape},
		source:  src,
		first:   func(item T) T { return item },
		combine: combine.invoke,
		finish:  identity[T],
	})
}

// AggregateSeed folds src starting from seed. An empty source yields seed
// without invoking the combiner.
func AggregateSeed[T, A any](ctx context.Context, src core.Source[T], seed A, combine Combiner[A, T]) (A, error) {
	if err := validate(src, combine.IsNil(), core.Seeded, false); err != nil {
		var zero A
		return zero, err
	}
	return execute(ctx, plan[T, A, A]{
		call:    core.Call{Arity: core.Seeded, Combiner: combine.shape},
		source:  src,
		seeded:  true,
		seed:    seed,
		combine: combine.invoke,
		finish:  identity[A],
	})
}

// AggregateSeedResult folds src starting from seed and returns the final
// accumulator mapped through transform, which runs exactly once on success.
func AggregateSeedResult[T, A, R any](ctx context.Context, src core.Source[T], seed A, combine Combiner[A, T], transform Transform[A, R]) (R, error) {
	if err := validate(src, combine.IsNil(), core.SeededTransform, transform.IsNil()); err != nil {
		var zero R
		return zero, err
	}
	return execute(ctx, plan[T, A, R]{
		call:    core.Call{Arity: core.SeededTransform, Combiner: combine.shape, Transform: transform.shape},
		source:  src,
		seeded:  true,
		seed:    seed,
		combine: combine.invoke,
		finish:  transform.invoke,
	})
}
