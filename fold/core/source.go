package core

import (
	"context"
	"errors"
)

// Source is an ordered element producer that a fold can consume. Each call
// to Cursor starts an independent pass; whether two passes see the same
// elements is up to the Source.
type Source[T any] interface {
	Cursor(context.Context) Cursor[T]
}

// Cursor pulls the elements of one pass in order. Next returns the next
// element and true, or false once the pass is exhausted; a non-nil error is
// a source fault and ends the pass. Close releases the pass and may be
// called at any point.
type Cursor[T any] interface {
	Next(context.Context) (T, bool, error)
	Close() error
}

// SourceFunc adapts a cursor constructor to a Source.
type SourceFunc[T any] func(context.Context) Cursor[T]

func (f SourceFunc[T]) Cursor(ctx context.Context) Cursor[T] {
	return f(ctx)
}

// CursorFunc adapts a next function to a Cursor with nothing to release.
type CursorFunc[T any] func(context.Context) (T, bool, error)

func (f CursorFunc[T]) Next(ctx context.Context) (T, bool, error) {
	return f(ctx)
}

func (f CursorFunc[T]) Close() error {
	return nil
}

// Pull starts an emission of stream and returns a Cursor over it. The
// emission runs under a child of ctx that is canceled when the cursor is
// exhausted, faults or is closed, so producers never outlive the pass.
//
// The first error Result is returned as a fault. The ErrEndOfStream
// sentinel ends the pass; other sentinels carry no element and are skipped.
func Pull[T any](ctx context.Context, stream Stream[T]) Cursor[T] {
	ctx, cancel := context.WithCancel(ctx)
	return &streamCursor[T]{ch: stream.Emit(ctx), cancel: cancel}
}

type streamCursor[T any] struct {
	ch     <-chan Result[T]
	cancel context.CancelFunc
	done   bool
}

func (c *streamCursor[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	for !c.done {
		select {
		case <-ctx.Done():
			c.finish()
			return zero, false, ctx.Err()
		case res, ok := <-c.ch:
			switch {
			case !ok:
				c.finish()
				return zero, false, nil
			case res.IsValue():
				return res.Value(), true, nil
			case res.IsError():
				c.finish()
				return zero, false, res.Error()
			case errors.Is(res.Sentinel(), ErrEndOfStream):
				c.finish()
				return zero, false, nil
			}
		}
	}
	return zero, false, nil
}

func (c *streamCursor[T]) Close() error {
	c.finish()
	return nil
}

func (c *streamCursor[T]) finish() {
	if c.done {
		return
	}
	c.done = true
	c.cancel()
}
