package observe

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/lguimbarda/min-fold/fold/core"
)

// Metrics creates hooks that record folds with OpenTelemetry instruments:
//
//	fold.calls        counter, by arity and shape
//	fold.steps        counter, by arity and shape
//	fold.errors       counter, by arity, shape and reason
//	fold.duration_ms  histogram, by arity and shape
func Metrics(meter metric.Meter) (core.Hooks, error) {
	calls, err := meter.Int64Counter("fold.calls", metric.WithDescription("folds started"))
	if err != nil {
		return core.Hooks{}, fmt.Errorf("observe: create calls counter: %w", err)
	}
	steps, err := meter.Int64Counter("fold.steps", metric.WithDescription("combiner steps completed"))
	if err != nil {
		return core.Hooks{}, fmt.Errorf("observe: create steps counter: %w", err)
	}
	failures, err := meter.Int64Counter("fold.errors", metric.WithDescription("folds that ended with an error"))
	if err != nil {
		return core.Hooks{}, fmt.Errorf("observe: create errors counter: %w", err)
	}
	duration, err := meter.Float64Histogram("fold.duration_ms",
		metric.WithDescription("fold duration"), metric.WithUnit("ms"))
	if err != nil {
		return core.Hooks{}, fmt.Errorf("observe: create duration histogram: %w", err)
	}

	return core.Hooks{
		OnStart: func(ctx context.Context, c core.Call) {
			calls.Add(ctx, 1, metric.WithAttributes(callAttributes(c)...))
		},
		OnComplete: func(ctx context.Context, c core.Call, o core.Outcome) {
			attrs := callAttributes(c)
			if o.Steps > 0 {
				steps.Add(ctx, int64(o.Steps), metric.WithAttributes(attrs...))
			}
			duration.Record(ctx, float64(o.Elapsed.Microseconds())/1000, metric.WithAttributes(attrs...))
			if o.Err != nil {
				failures.Add(ctx, 1, metric.WithAttributes(append(attrs, attribute.String("reason", reason(o.Err)))...))
			}
		},
	}, nil
}

// WithMetrics attaches Metrics hooks to ctx.
func WithMetrics(ctx context.Context, meter metric.Meter) (context.Context, error) {
	hooks, err := Metrics(meter)
	if err != nil {
		return ctx, err
	}
	return core.WithHooks(ctx, hooks), nil
}

func callAttributes(c core.Call) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("arity", c.Arity.String()),
		attribute.String("combiner", c.Combiner.String()),
		attribute.String("transform", c.Transform.String()),
	}
}
