package core

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidArgument matches every ArgumentError.
var ErrInvalidArgument = errors.New("invalid argument")

// ArgumentError reports a required argument that was nil. It is returned
// before a fold starts, whatever the state of the context.
type ArgumentError struct {
	Param string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s is nil", ErrInvalidArgument, e.Param)
}

func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

var (
	ErrNilSource    = &ArgumentError{Param: "source"}
	ErrNilCombiner  = &ArgumentError{Param: "combiner"}
	ErrNilTransform = &ArgumentError{Param: "transform"}
)

// ErrEmptySequence is returned by the unseeded fold when the source
// produces no element.
var ErrEmptySequence = errors.New("sequence contains no elements")

// ErrNoResult is returned when a Future settles without delivering a Result.
var ErrNoResult = errors.New("future completed without a result")

// ErrCanceled matches every CanceledError.
var ErrCanceled = errors.New("fold canceled")

// CanceledError is returned when a fold is refused because its context was
// already done. Cause is the context's cancellation cause.
type CanceledError struct {
	Cause error
}

// Canceled builds the CanceledError for a done context.
func Canceled(ctx context.Context) *CanceledError {
	return &CanceledError{Cause: context.Cause(ctx)}
}

func (e *CanceledError) Error() string {
	if e.Cause == nil {
		return ErrCanceled.Error()
	}
	return fmt.Sprintf("%s: %v", ErrCanceled, e.Cause)
}

func (e *CanceledError) Is(target error) bool {
	return target == ErrCanceled
}

func (e *CanceledError) Unwrap() error {
	return e.Cause
}

// IsCanceled reports whether err means the fold stopped because of
// cancellation, either refused up front or raised by a cancelable step.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
