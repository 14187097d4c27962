package core

// Future is a suspendable value: either already settled or delivered later
// through a channel of Results. It is the return type of async combiners
// and transforms. A Future is awaited once.
type Future[T any] struct {
	ch      <-chan Result[T]
	res     Result[T]
	settled bool
}

// Resolved returns a Future already settled with value.
func Resolved[T any](value T) Future[T] {
	return Future[T]{res: Ok(value), settled: true}
}

// Rejected returns a Future already settled with err.
func Rejected[T any](err error) Future[T] {
	return Future[T]{res: Err[T](err), settled: true}
}

// FromChan returns a Future settled by the first Result received from ch.
// A channel closed before sending settles with ErrNoResult.
func FromChan[T any](ch <-chan Result[T]) Future[T] {
	return Future[T]{ch: ch}
}

// Go runs fn on its own goroutine and returns a Future for its outcome.
// A panic in fn settles the Future with an ErrPanic.
func Go[T any](fn func() (T, error)) Future[T] {
	ch := make(chan Result[T], 1)
	go func() {
		defer close(ch)
		defer func() {
			if r := recover(); r != nil {
				ch <- Err[T](NewPanicError(r))
			}
		}()
		value, err := fn()
		if err != nil {
			ch <- Err[T](err)
			return
		}
		ch <- Ok(value)
	}()
	return FromChan(ch)
}

// Settled reports whether Await would return without blocking on a channel.
func (f Future[T]) Settled() bool {
	return f.settled
}

// Await blocks until the Future settles. It does not watch any context:
// a step that wants to stop early on cancellation must settle itself.
func (f Future[T]) Await() (T, error) {
	var zero T
	res := f.res
	if !f.settled {
		if f.ch == nil {
			return zero, ErrNoResult
		}
		var ok bool
		res, ok = <-f.ch
		if !ok {
			return zero, ErrNoResult
		}
	}

	switch {
	case res.IsValue():
		return res.Value(), nil
	case res.IsError():
		return zero, res.Error()
	default:
		if err := res.Sentinel(); err != nil {
			return zero, err
		}
		return zero, ErrNoResult
	}
}
