package fold

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/lguimbarda/min-fold/fold/aggregate"
	"github.com/lguimbarda/min-fold/fold/numeric"
)

// Common reductions, forwarded from fold/aggregate.

// Sum adds every element. An empty source sums to zero.
func Sum[T numeric.Number](ctx context.Context, src Source[T]) (T, error) {
	return aggregate.Sum(ctx, src)
}

// Count counts the elements.
func Count[T any](ctx context.Context, src Source[T]) (int, error) {
	return aggregate.Count(ctx, src)
}

// Average returns the arithmetic mean; an empty source fails with ErrEmptySequence.
func Average[T numeric.Number](ctx context.Context, src Source[T]) (float64, error) {
	return aggregate.Average(ctx, src)
}

// Min returns the smallest element; an empty source fails with ErrEmptySequence.
func Min[T numeric.Number](ctx context.Context, src Source[T]) (T, error) {
	return aggregate.Min(ctx, src)
}

// Max returns the largest element; an empty source fails with ErrEmptySequence.
func Max[T numeric.Number](ctx context.Context, src Source[T]) (T, error) {
	return aggregate.Max(ctx, src)
}

// All reports whether every element satisfies predicate.
func All[T any](ctx context.Context, src Source[T], predicate func(T) bool) (bool, error) {
	return aggregate.All(ctx, src, predicate)
}

// Any reports whether some element satisfies predicate.
func Any[T any](ctx context.Context, src Source[T], predicate func(T) bool) (bool, error) {
	return aggregate.Any(ctx, src, predicate)
}

// SumNull adds the valid elements and skips nulls.
func SumNull[T numeric.Number](ctx context.Context, src Source[sql.Null[T]]) (T, error) {
	return aggregate.SumNull(ctx, src)
}

// AverageNull averages the valid elements; the result is null when there is none.
func AverageNull[T numeric.Number](ctx context.Context, src Source[sql.Null[T]]) (sql.Null[float64], error) {
	return aggregate.AverageNull(ctx, src)
}

// SumDecimal adds decimals exactly.
func SumDecimal(ctx context.Context, src Source[decimal.Decimal]) (decimal.Decimal, error) {
	return aggregate.SumDecimal(ctx, src)
}

// AverageDecimal returns the mean of decimals.
func AverageDecimal(ctx context.Context, src Source[decimal.Decimal]) (decimal.Decimal, error) {
	return aggregate.AverageDecimal(ctx, src)
}

// MinDecimal returns the smallest decimal.
func MinDecimal(ctx context.Context, src Source[decimal.Decimal]) (decimal.Decimal, error) {
	return aggregate.MinDecimal(ctx, src)
}

// MaxDecimal returns the largest decimal.
func MaxDecimal(ctx context.Context, src Source[decimal.Decimal]) (decimal.Decimal, error) {
	return aggregate.MaxDecimal(ctx, src)
}

// SumNullDecimal adds the valid decimals and skips nulls.
func SumNullDecimal(ctx context.Context, src Source[decimal.NullDecimal]) (decimal.Decimal, error) {
	return aggregate.SumNullDecimal(ctx, src)
}
