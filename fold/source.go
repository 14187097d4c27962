package fold

import (
	"context"
	"iter"

	"github.com/lguimbarda/min-fold/fold/core"
	"github.com/lguimbarda/min-fold/fold/numeric"
)

// Synchronous sources. Their cursors produce elements inline, without
// goroutines or channels.

// FromSlice creates a Source over items. Every pass starts at the first
// item, so the same Source can be folded any number of times.
func FromSlice[T any](items []T) Source[T] {
	return core.SourceFunc[T](func(context.Context) core.Cursor[T] {
		i := 0
		return core.CursorFunc[T](func(context.Context) (T, bool, error) {
			if i >= len(items) {
				var zero T
				return zero, false, nil
			}
			item := items[i]
			i++
			return item, true, nil
		})
	})
}

// FromSeq creates a Source over an iterator. Each pass ranges over seq
// again; a pass abandoned early stops the iterator.
func FromSeq[T any](seq iter.Seq[T]) Source[T] {
	return core.SourceFunc[T](func(context.Context) core.Cursor[T] {
		next, stop := iter.Pull(seq)
		return &seqCursor[T]{next: func() (T, error, bool) {
			v, ok := next()
			return v, nil, ok
		}, stop: stop}
	})
}

// FromSeq2 creates a Source over an iterator of (element, error) pairs.
// The first non-nil error is returned as a source fault.
func FromSeq2[T any](seq iter.Seq2[T, error]) Source[T] {
	return core.SourceFunc[T](func(context.Context) core.Cursor[T] {
		next, stop := iter.Pull2(seq)
		return &seqCursor[T]{next: next, stop: stop}
	})
}

type seqCursor[T any] struct {
	next func() (T, error, bool)
	stop func()
}

func (c *seqCursor[T]) Next(context.Context) (T, bool, error) {
	v, err, ok := c.next()
	if !ok {
		return v, false, nil
	}
	if err != nil {
		c.stop()
		var zero T
		return zero, false, err
	}
	return v, true, nil
}

func (c *seqCursor[T]) Close() error {
	c.stop()
	return nil
}

// Empty creates a Source with no elements.
func Empty[T any]() Source[T] {
	return FromSlice[T](nil)
}

// Range creates a Source of count elements start, start+step, ...
// A count below 1 yields an empty Source.
func Range[T numeric.Number](start, step T, count int) Source[T] {
	return core.SourceFunc[T](func(context.Context) core.Cursor[T] {
		i, next := 0, start
		return core.CursorFunc[T](func(context.Context) (T, bool, error) {
			if i >= count {
				var zero T
				return zero, false, nil
			}
			v := next
			i++
			next += step
			return v, true, nil
		})
	})
}

// Asynchronous sources. Elements are produced on a goroutine and delivered
// through a channel; folding one pulls the channel.

// Emit creates a Stream from a channel-producing function.
func Emit[T any](emitter func(context.Context) <-chan Result[T]) Emitter[T] {
	return core.Emit(emitter)
}

// FromStream uses a Stream as a Source. Every Stream already is one; this
// only makes the conversion explicit at call sites.
func FromStream[T any](stream Stream[T]) Source[T] {
	return stream
}

// StreamOf creates a Stream that emits items from a producer goroutine.
func StreamOf[T any](items ...T) Stream[T] {
	return Emit(func(ctx context.Context) <-chan Result[T] {
		out := make(chan Result[T], min(len(items), core.DefaultBufferSize))
		go func() {
			defer close(out)
			for _, item := range items {
				select {
				case <-ctx.Done():
					return
				case out <- core.Ok(item):
				}
			}
		}()
		return out
	})
}

// FromChannel creates a Stream that forwards the values received from ch.
// The stream ends when ch is closed; the caller owns ch. Since ch can be
// drained only once, the Stream supports a single pass.
func FromChannel[T any](ch <-chan T) Stream[T] {
	return Emit(func(ctx context.Context) <-chan Result[T] {
		out := make(chan Result[T])
		go func() {
			defer close(out)
			for {
				select {
				case <-ctx.Done():
					return
				case item, ok := <-ch:
					if !ok {
						return
					}
					select {
					case <-ctx.Done():
						return
					case out <- core.Ok(item):
					}
				}
			}
		}()
		return out
	})
}

// Generate creates a Stream from a producer function called until it
// reports false. An error from fn is emitted as an error Result, which a
// fold returns as a source fault.
func Generate[T any](fn func() (T, bool, error)) Stream[T] {
	return Emit(func(ctx context.Context) <-chan Result[T] {
		out := make(chan Result[T])
		go func() {
			defer close(out)
			for {
				value, ok, err := fn()
				if err != nil {
					select {
					case <-ctx.Done():
					case out <- core.Err[T](err):
					}
					return
				}
				if !ok {
					return
				}
				select {
				case <-ctx.Done():
					return
				case out <- core.Ok(value):
				}
			}
		}()
		return out
	})
}
