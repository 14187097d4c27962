package observe

import (
	"context"
	"log/slog"

	"github.com/lguimbarda/min-fold/fold/core"
)

// Logging creates hooks that log every fold to logger: a debug record when
// it starts and one when it succeeds, a warning when it fails.
func Logging(logger *slog.Logger) core.Hooks {
	return core.Hooks{
		OnStart: func(ctx context.Context, c core.Call) {
			logger.DebugContext(ctx, "fold started", callAttrs(c)...)
		},
		OnComplete: func(ctx context.Context, c core.Call, o core.Outcome) {
			attrs := append(callAttrs(c),
				slog.Int("steps", o.Steps),
				slog.Duration("elapsed", o.Elapsed),
			)
			if o.Err != nil {
				attrs = append(attrs, slog.String("reason", reason(o.Err)), slog.Any("error", o.Err))
				logger.WarnContext(ctx, "fold failed", attrs...)
				return
			}
			logger.DebugContext(ctx, "fold completed", attrs...)
		},
	}
}

// WithLogging attaches Logging hooks to ctx.
func WithLogging(ctx context.Context, logger *slog.Logger) context.Context {
	return core.WithHooks(ctx, Logging(logger))
}

func callAttrs(c core.Call) []any {
	return []any{
		slog.String("arity", c.Arity.String()),
		slog.String("combiner", c.Combiner.String()),
		slog.String("transform", c.Transform.String()),
	}
}
