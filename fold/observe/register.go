// Package observe turns fold hooks into metrics, logs and counters.
//
// Every observer here is a core.Hooks value. Attach one with the With*
// helpers, or compose several with core.WithHooks:
//
//	ctx, err := observe.WithMetrics(ctx, meter)
//	ctx = observe.WithLogging(ctx, logger)
//	sum, err := fold.Sum(ctx, src)
package observe

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/lguimbarda/min-fold/fold/core"
)

// WithStartHook attaches a callback fired when a fold starts.
func WithStartHook(ctx context.Context, callback func(core.Call)) context.Context {
	return core.WithHooks(ctx, core.Hooks{
		OnStart: func(_ context.Context, c core.Call) { callback(c) },
	})
}

// WithStepHook attaches a callback fired after every completed combiner step.
func WithStepHook(ctx context.Context, callback func(core.Call, int)) context.Context {
	return core.WithHooks(ctx, core.Hooks{
		OnStep: func(_ context.Context, c core.Call, steps int) { callback(c, steps) },
	})
}

// WithCompleteHook attaches a callback fired when a fold ends.
func WithCompleteHook(ctx context.Context, callback func(core.Call, core.Outcome)) context.Context {
	return core.WithHooks(ctx, core.Hooks{
		OnComplete: func(_ context.Context, c core.Call, o core.Outcome) { callback(c, o) },
	})
}

// Counter counts folds and steps. It is safe for concurrent folds.
type Counter struct {
	calls  atomic.Int64
	steps  atomic.Int64
	errors atomic.Int64
}

// Calls returns the number of completed folds.
func (c *Counter) Calls() int64 { return c.calls.Load() }

// Steps returns the number of combiner steps across all folds.
func (c *Counter) Steps() int64 { return c.steps.Load() }

// Errors returns the number of folds that ended with an error.
func (c *Counter) Errors() int64 { return c.errors.Load() }

// WithCounter attaches counting hooks and returns the counter for querying.
func WithCounter(ctx context.Context) (context.Context, *Counter) {
	counter := &Counter{}
	ctx = core.WithHooks(ctx, core.Hooks{
		OnStep: func(context.Context, core.Call, int) { counter.steps.Add(1) },
		OnComplete: func(_ context.Context, _ core.Call, o core.Outcome) {
			counter.calls.Add(1)
			if o.Err != nil {
				counter.errors.Add(1)
			}
		},
	})
	return ctx, counter
}

// ErrorCollector collects the errors folds ended with.
type ErrorCollector struct {
	mu     sync.Mutex
	errors []error
}

// Errors returns a copy of all collected errors.
func (c *ErrorCollector) Errors() []error {
	c.mu.Lock()
	defer c.mu.Unlock()
	result := make([]error, len(c.errors))
	copy(result, c.errors)
	return result
}

// Err joins the collected errors, or returns nil if there are none.
func (c *ErrorCollector) Err() error {
	return errors.Join(c.Errors()...)
}

// WithErrorCollector attaches an error collecting hook and returns the collector.
func WithErrorCollector(ctx context.Context) (context.Context, *ErrorCollector) {
	collector := &ErrorCollector{}
	ctx = core.WithHooks(ctx, core.Hooks{
		OnComplete: func(_ context.Context, _ core.Call, o core.Outcome) {
			if o.Err == nil {
				return
			}
			collector.mu.Lock()
			collector.errors = append(collector.errors, o.Err)
			collector.mu.Unlock()
		},
	})
	return ctx, collector
}

// reason classifies a fold error for metric labels.
func reason(err error) string {
	var p core.ErrPanic
	switch {
	case err == nil:
		return "ok"
	case core.IsCanceled(err):
		return "canceled"
	case errors.Is(err, core.ErrEmptySequence):
		return "empty"
	case errors.As(err, &p):
		return "panic"
	default:
		return "fault"
	}
}
