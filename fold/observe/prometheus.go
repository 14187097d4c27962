package observe

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/lguimbarda/min-fold/fold/core"
)

var callLabels = []string{"arity", "combiner", "transform"}

// Prometheus creates hooks backed by Prometheus collectors registered on
// reg: minfold_calls_total, minfold_steps_total, minfold_errors_total and
// minfold_duration_seconds. Registering twice on the same registry reuses
// the existing collectors.
func Prometheus(reg prometheus.Registerer) (core.Hooks, error) {
	calls, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "minfold_calls_total",
		Help: "Total number of folds started",
	}, callLabels))
	if err != nil {
		return core.Hooks{}, err
	}
	steps, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "minfold_steps_total",
		Help: "Total number of combiner steps completed",
	}, callLabels))
	if err != nil {
		return core.Hooks{}, err
	}
	failures, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "minfold_errors_total",
		Help: "Total number of folds that ended with an error",
	}, append(callLabels[:len(callLabels):len(callLabels)], "reason")))
	if err != nil {
		return core.Hooks{}, err
	}
	duration, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "minfold_duration_seconds",
		Help:    "Fold duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
	}, callLabels))
	if err != nil {
		return core.Hooks{}, err
	}

	return core.Hooks{
		OnStart: func(_ context.Context, c core.Call) {
			calls.WithLabelValues(labelValues(c)...).Inc()
		},
		OnComplete: func(_ context.Context, c core.Call, o core.Outcome) {
			labels := labelValues(c)
			steps.WithLabelValues(labels...).Add(float64(o.Steps))
			duration.WithLabelValues(labels...).Observe(o.Elapsed.Seconds())
			if o.Err != nil {
				failures.WithLabelValues(append(labels, reason(o.Err))...).Inc()
			}
		},
	}, nil
}

// WithPrometheus attaches Prometheus hooks to ctx.
func WithPrometheus(ctx context.Context, reg prometheus.Registerer) (context.Context, error) {
	hooks, err := Prometheus(reg)
	if err != nil {
		return ctx, err
	}
	return core.WithHooks(ctx, hooks), nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func labelValues(c core.Call) []string {
	return []string{c.Arity.String(), c.Combiner.String(), c.Transform.String()}
}
