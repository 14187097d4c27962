package core

import (
	"context"
	"fmt"
)

// Terminal functions consume a Stream directly, without a fold.

// Slice collects every value of one emission and stops at the first error.
// Sentinels are skipped.
func Slice[T any](ctx context.Context, in Stream[T]) ([]T, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var result []T
	for res := range in.Emit(ctx) {
		switch {
		case res.IsError():
			return nil, res.Error()
		case res.IsValue():
			result = append(result, res.Value())
		}
	}
	return result, nil
}

// First returns the first value of one emission.
func First[T any](ctx context.Context, in Stream[T]) (T, error) {
	var zero T

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	res, ok := <-in.Emit(ctx)
	switch {
	case !ok || res.IsSentinel():
		return zero, fmt.Errorf("first: %w", ErrEmptySequence)
	case res.IsError():
		return zero, res.Error()
	default:
		return res.Value(), nil
	}
}
