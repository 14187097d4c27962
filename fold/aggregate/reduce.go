package aggregate

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/lguimbarda/min-fold/fold/core"
	"github.com/lguimbarda/min-fold/fold/numeric"
)

// The reductions below are ordinary folds: each one is a combiner (and
// sometimes a transform) handed to Aggregate, AggregateSeed or
// AggregateSeedResult, so they share the engine's validation,
// cancellation and hook behavior.

// Sum adds every element. An empty source sums to zero.
func Sum[T numeric.Number](ctx context.Context, src core.Source[T]) (T, error) {
	var zero T
	return AggregateSeed(ctx, src, zero, SyncCombiner(func(acc, item T) (T, error) {
		return acc + item, nil
	}))
}

// Count counts the elements.
func Count[T any](ctx context.Context, src core.Source[T]) (int, error) {
	return AggregateSeed(ctx, src, 0, SyncCombiner(func(acc int, _ T) (int, error) {
		return acc + 1, nil
	}))
}

type mean struct {
	sum   float64
	count int
}

// Average returns the arithmetic mean as float64. An empty source fails
// with core.ErrEmptySequence.
func Average[T numeric.Number](ctx context.Context, src core.Source[T]) (float64, error) {
	return AggregateSeedResult(ctx, src, mean{},
		SyncCombiner(func(acc mean, item T) (mean, error) {
			return mean{sum: acc.sum + float64(item), count: acc.count + 1}, nil
		}),
		SyncTransform(func(acc mean) (float64, error) {
			if acc.count == 0 {
				return 0, core.ErrEmptySequence
			}
			return acc.sum / float64(acc.count), nil
		}),
	)
}

// Min returns the smallest element. An empty source fails with
// core.ErrEmptySequence.
func Min[T numeric.Number](ctx context.Context, src core.Source[T]) (T, error) {
	return Aggregate(ctx, src, SyncCombiner(func(acc, item T) (T, error) {
		return min(acc, item), nil
	}))
}

// Max returns the largest element. An empty source fails with
// core.ErrEmptySequence.
func Max[T numeric.Number](ctx context.Context, src core.Source[T]) (T, error) {
	return Aggregate(ctx, src, SyncCombiner(func(acc, item T) (T, error) {
		return max(acc, item), nil
	}))
}

// All reports whether every element satisfies predicate; true for an empty
// source. The predicate is not called again once it has returned false.
func All[T any](ctx context.Context, src core.Source[T], predicate func(T) bool) (bool, error) {
	return AggregateSeed(ctx, src, true, SyncCombiner(func(acc bool, item T) (bool, error) {
		return acc && predicate(item), nil
	}))
}

// Any reports whether some element satisfies predicate; false for an
// empty source. The predicate is not called again once it has returned true.
func Any[T any](ctx context.Context, src core.Source[T], predicate func(T) bool) (bool, error) {
	return AggregateSeed(ctx, src, false, SyncCombiner(func(acc bool, item T) (bool, error) {
		return acc || predicate(item), nil
	}))
}

// SumNull adds the valid elements and skips nulls. A source of only nulls
// sums to zero.
func SumNull[T numeric.Number](ctx context.Context, src core.Source[sql.Null[T]]) (T, error) {
	var zero T
	return AggregateSeed(ctx, src, zero, SyncCombiner(func(acc T, item sql.Null[T]) (T, error) {
		if !item.Valid {
			return acc, nil
		}
		return acc + item.V, nil
	}))
}

// AverageNull averages the valid elements. The result is null when the
// source holds no valid element.
func AverageNull[T numeric.Number](ctx context.Context, src core.Source[sql.Null[T]]) (sql.Null[float64], error) {
	return AggregateSeedResult(ctx, src, mean{},
		SyncCombiner(func(acc mean, item sql.Null[T]) (mean, error) {
			if !item.Valid {
				return acc, nil
			}
			return mean{sum: acc.sum + float64(item.V), count: acc.count + 1}, nil
		}),
		SyncTransform(func(acc mean) (sql.Null[float64], error) {
			if acc.count == 0 {
				return sql.Null[float64]{}, nil
			}
			return sql.Null[float64]{V: acc.sum / float64(acc.count), Valid: true}, nil
		}),
	)
}

// SumDecimal adds decimals exactly.
func SumDecimal(ctx context.Context, src core.Source[decimal.Decimal]) (decimal.Decimal, error) {
	return AggregateSeed(ctx, src, decimal.Zero, SyncCombiner(func(acc, item decimal.Decimal) (decimal.Decimal, error) {
		return acc.Add(item), nil
	}))
}

type decimalMean struct {
	sum   decimal.Decimal
	count int64
}

// AverageDecimal returns the mean of decimals, divided with
// decimal.DivisionPrecision digits.
func AverageDecimal(ctx context.Context, src core.Source[decimal.Decimal]) (decimal.Decimal, error) {
	return AggregateSeedResult(ctx, src, decimalMean{sum: decimal.Zero},
		SyncCombiner(func(acc decimalMean, item decimal.Decimal) (decimalMean, error) {
			return decimalMean{sum: acc.sum.Add(item), count: acc.count + 1}, nil
		}),
		SyncTransform(func(acc decimalMean) (decimal.Decimal, error) {
			if acc.count == 0 {
				return decimal.Zero, core.ErrEmptySequence
			}
			return acc.sum.Div(decimal.NewFromInt(acc.count)), nil
		}),
	)
}

// MinDecimal returns the smallest decimal.
func MinDecimal(ctx context.Context, src core.Source[decimal.Decimal]) (decimal.Decimal, error) {
	return Aggregate(ctx, src, SyncCombiner(func(acc, item decimal.Decimal) (decimal.Decimal, error) {
		if item.LessThan(acc) {
			return item, nil
		}
		return acc, nil
	}))
}

// MaxDecimal returns the largest decimal.
func MaxDecimal(ctx context.Context, src core.Source[decimal.Decimal]) (decimal.Decimal, error) {
	return Aggregate(ctx, src, SyncCombiner(func(acc, item decimal.Decimal) (decimal.Decimal, error) {
		if item.GreaterThan(acc) {
			return item, nil
		}
		return acc, nil
	}))
}

// SumNullDecimal adds the valid decimals and skips nulls.
func SumNullDecimal(ctx context.Context, src core.Source[decimal.NullDecimal]) (decimal.Decimal, error) {
	return AggregateSeed(ctx, src, decimal.Zero, SyncCombiner(func(acc decimal.Decimal, item decimal.NullDecimal) (decimal.Decimal, error) {
		if !item.Valid {
			return acc, nil
		}
		return acc.Add(item.Decimal), nil
	}))
}
