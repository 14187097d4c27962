package core

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ErrPanic wraps a value recovered from a panicking combiner, transform or
// async step. Stack holds the trace with min-fold frames removed, so the
// first frame shown is the caller's function.
type ErrPanic struct {
	Value any
	Stack string
}

func (e ErrPanic) Error() string {
	if e.Stack != "" {
		return fmt.Sprintf("panic: %v\n%s", e.Value, e.Stack)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// NewPanicError builds an ErrPanic from a recovered value. It must be called
// from the deferred function that recovered.
func NewPanicError(recovered any) ErrPanic {
	return ErrPanic{
		Value: recovered,
		Stack: cleanStack(captureStack(4)), // runtime.Callers, captureStack, NewPanicError, deferred func
	}
}

func captureStack(skip int) string {
	const maxFrames = 32
	var pcs [maxFrames]uintptr
	n := runtime.Callers(skip, pcs[:])
	if n == 0 {
		return ""
	}

	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}
	return sb.String()
}

// internalPrefix identifies frames that belong to this module.
const internalPrefix = "github.com/lguimbarda/min-fold/fold/"

// cleanStack drops min-fold frames (function line plus its file:line line)
// and keeps user and runtime frames.
func cleanStack(stack string) string {
	lines := strings.Split(stack, "\n")
	kept := make([]string, 0, len(lines))
	skipNext := false

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !strings.HasPrefix(line, "\t") {
			if strings.Contains(line, internalPrefix) && !strings.Contains(line, "_test.") {
				skipNext = true
				continue
			}
			skipNext = false
		} else if skipNext {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// Result is one item travelling through a Stream or settling a Future.
// It is exactly one of:
//   - Value: a produced element or accumulator (IsValue)
//   - Error: a fault raised while producing it (IsError)
//   - Sentinel: a control signal such as end-of-stream (IsSentinel)
type Result[T any] struct {
	value      T
	err        error
	isSentinel bool
}

// NewResult creates a Result with explicit control over all fields.
// Prefer Ok, Err, Sentinel or EndOfStream.
func NewResult[T any](value T, err error, isSentinel bool) Result[T] {
	return Result[T]{value: value, err: err, isSentinel: isSentinel}
}

// Ok creates a value Result.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Err creates an error Result.
func Err[T any](err error) Result[T] {
	var zero T
	return Result[T]{value: zero, err: err}
}

// Sentinel creates a control Result carrying an optional descriptive error.
func Sentinel[T any](err error) Result[T] {
	var zero T
	return Result[T]{value: zero, err: err, isSentinel: true}
}

// ErrEndOfStream is the sentinel error that marks normal stream termination.
var ErrEndOfStream = errors.New("end of stream")

// EndOfStream creates the sentinel Result that ends a stream early.
// Closing the channel has the same effect.
func EndOfStream[T any]() Result[T] {
	return Sentinel[T](ErrEndOfStream)
}

func (r Result[T]) IsValue() bool {
	return r.err == nil && !r.isSentinel
}

func (r Result[T]) IsSentinel() bool {
	return r.isSentinel
}

func (r Result[T]) IsError() bool {
	return r.err != nil && !r.isSentinel
}

// Value returns the contained value; the zero value for errors and sentinels.
func (r Result[T]) Value() T {
	return r.value
}

// Error returns the fault of an error Result, nil otherwise.
func (r Result[T]) Error() error {
	if r.isSentinel {
		return nil
	}
	return r.err
}

// Sentinel returns the context error of a sentinel Result, nil otherwise.
func (r Result[T]) Sentinel() error {
	if !r.isSentinel {
		return nil
	}
	return r.err
}

// Unwrap returns the value and the error together.
func (r Result[T]) Unwrap() (T, error) {
	return r.value, r.err
}
