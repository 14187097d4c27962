package fold

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/lguimbarda/min-fold/fold/aggregate"
)

// Element-type entry points. Each one binds the element type of the
// generic fold and forwards; there is no other logic here. The shape of
// the combiner and transform is chosen by the constructor used to build
// them (Sync, Async or Cancelable and their Result counterparts).

// Int32 (32-bit integers).

// AggregateInt32 folds a Source of Int32 elements starting from its first element.
func AggregateInt32(ctx context.Context, src Source[int32], combine Combiner[int32, int32]) (int32, error) {
	return aggregate.Aggregate(ctx, src, combine)
}

// AggregateInt32Seed folds a Source of Int32 elements starting from seed.
func AggregateInt32Seed[A any](ctx context.Context, src Source[int32], seed A, combine Combiner[A, int32]) (A, error) {
	return aggregate.AggregateSeed(ctx, src, seed, combine)
}

// AggregateInt32SeedResult folds a Source of Int32 elements starting from seed and maps the result.
func AggregateInt32SeedResult[A, R any](ctx context.Context, src Source[int32], seed A, combine Combiner[A, int32], transform Transform[A, R]) (R, error) {
	return aggregate.AggregateSeedResult(ctx, src, seed, combine, transform)
}

// Int64 (64-bit integers).

// AggregateInt64 folds a Source of Int64 elements starting from its first element.
func AggregateInt64(ctx context.Context, src Source[int64], combine Combiner[int64, int64]) (int64, error) {
	return aggregate.Aggregate(ctx, src, combine)
}

// AggregateInt64Seed folds a Source of Int64 elements starting from seed.
func AggregateInt64Seed[A any](ctx context.Context, src Source[int64], seed A, combine Combiner[A, int64]) (A, error) {
	return aggregate.AggregateSeed(ctx, src, seed, combine)
}

// AggregateInt64SeedResult folds a Source of Int64 elements starting from seed and maps the result.
func AggregateInt64SeedResult[A, R any](ctx context.Context, src Source[int64], seed A, combine Combiner[A, int64], transform Transform[A, R]) (R, error) {
	return aggregate.AggregateSeedResult(ctx, src, seed, combine, transform)
}

// Float32 (32-bit floats).

// AggregateFloat32 folds a Source of Float32 elements starting from its first element.
func AggregateFloat32(ctx context.Context, src Source[float32], combine Combiner[float32, float32]) (float32, error) {
	return aggregate.Aggregate(ctx, src, combine)
}

// AggregateFloat32Seed folds a Source of Float32 elements starting from seed.
func AggregateFloat32Seed[A any](ctx context.Context, src Source[float32], seed A, combine Combiner[A, float32]) (A, error) {
	return aggregate.AggregateSeed(ctx, src, seed, combine)
}

// AggregateFloat32SeedResult folds a Source of Float32 elements starting from seed and maps the result.
func AggregateFloat32SeedResult[A, R any](ctx context.Context, src Source[float32], seed A, combine Combiner[A, float32], transform Transform[A, R]) (R, error) {
	return aggregate.AggregateSeedResult(ctx, src, seed, combine, transform)
}

// Float64 (64-bit floats).

// AggregateFloat64 folds a Source of Float64 elements starting from its first element.
func AggregateFloat64(ctx context.Context, src Source[float64], combine Combiner[float64, float64]) (float64, error) {
	return aggregate.Aggregate(ctx, src, combine)
}

// AggregateFloat64Seed folds a Source of Float64 elements starting from seed.
func AggregateFloat64Seed[A any](ctx context.Context, src Source[float64], seed A, combine Combiner[A, float64]) (A, error) {
	return aggregate.AggregateSeed(ctx, src, seed, combine)
}

// AggregateFloat64SeedResult folds a Source of Float64 elements starting from seed and maps the result.
func AggregateFloat64SeedResult[A, R any](ctx context.Context, src Source[float64], seed A, combine Combiner[A, float64], transform Transform[A, R]) (R, error) {
	return aggregate.AggregateSeedResult(ctx, src, seed, combine, transform)
}

// Decimal (exact decimals).

// AggregateDecimal folds a Source of Decimal elements starting from its first element.
func AggregateDecimal(ctx context.Context, src Source[decimal.Decimal], combine Combiner[decimal.Decimal, decimal.Decimal]) (decimal.Decimal, error) {
	return aggregate.Aggregate(ctx, src, combine)
}

// AggregateDecimalSeed folds a Source of Decimal elements starting from seed.
func AggregateDecimalSeed[A any](ctx context.Context, src Source[decimal.Decimal], seed A, combine Combiner[A, decimal.Decimal]) (A, error) {
	return aggregate.AggregateSeed(ctx, src, seed, combine)
}

// AggregateDecimalSeedResult folds a Source of Decimal elements starting from seed and maps the result.
func AggregateDecimalSeedResult[A, R any](ctx context.Context, src Source[decimal.Decimal], seed A, combine Combiner[A, decimal.Decimal], transform Transform[A, R]) (R, error) {
	return aggregate.AggregateSeedResult(ctx, src, seed, combine, transform)
}

// NullInt64 (nullable 64-bit integers).

// AggregateNullInt64 folds a Source of NullInt64 elements starting from its first element.
func AggregateNullInt64(ctx context.Context, src Source[sql.Null[int64]], combine Combiner[sql.Null[int64], sql.Null[int64]]) (sql.Null[int64], error) {
	return aggregate.Aggregate(ctx, src, combine)
}

// AggregateNullInt64Seed folds a Source of NullInt64 elements starting from seed.
func AggregateNullInt64Seed[A any](ctx context.Context, src Source[sql.Null[int64]], seed A, combine Combiner[A, sql.Null[int64]]) (A, error) {
	return aggregate.AggregateSeed(ctx, src, seed, combine)
}

// AggregateNullInt64SeedResult folds a Source of NullInt64 elements starting from seed and maps the result.
func AggregateNullInt64SeedResult[A, R any](ctx context.Context, src Source[sql.Null[int64]], seed A, combine Combiner[A, sql.Null[int64]], transform Transform[A, R]) (R, error) {
	return aggregate.AggregateSeedResult(ctx, src, seed, combine, transform)
}

// NullFloat64 (nullable 64-bit floats).

// AggregateNullFloat64 folds a Source of NullFloat64 elements starting from its first element.
func AggregateNullFloat64(ctx context.Context, src Source[sql.Null[float64]], combine Combiner[sql.Null[float64], sql.Null[float64]]) (sql.Null[float64], error) {
	return aggregate.Aggregate(ctx, src, combine)
}

// AggregateNullFloat64Seed folds a Source of NullFloat64 elements starting from seed.
func AggregateNullFloat64Seed[A any](ctx context.Context, src Source[sql.Null[float64]], seed A, combine Combiner[A, sql.Null[float64]]) (A, error) {
	return aggregate.AggregateSeed(ctx, src, seed, combine)
}

// AggregateNullFloat64SeedResult folds a Source of NullFloat64 elements starting from seed and maps the result.
func AggregateNullFloat64SeedResult[A, R any](ctx context.Context, src Source[sql.Null[float64]], seed A, combine Combiner[A, sql.Null[float64]], transform Transform[A, R]) (R, error) {
	return aggregate.AggregateSeedResult(ctx, src, seed, combine, transform)
}

// NullDecimal (nullable decimals).

// AggregateNullDecimal folds a Source of NullDecimal elements starting from its first element.
func AggregateNullDecimal(ctx context.Context, src Source[decimal.NullDecimal], combine Combiner[decimal.NullDecimal, decimal.NullDecimal]) (decimal.NullDecimal, error) {
	return aggregate.Aggregate(ctx, src, combine)
}

// AggregateNullDecimalSeed folds a Source of NullDecimal elements starting from seed.
func AggregateNullDecimalSeed[A any](ctx context.Context, src Source[decimal.NullDecimal], seed A, combine Combiner[A, decimal.NullDecimal]) (A, error) {
	return aggregate.AggregateSeed(ctx, src, seed, combine)
}

// AggregateNullDecimalSeedResult folds a Source of NullDecimal elements starting from seed and maps the result.
func AggregateNullDecimalSeedResult[A, R any](ctx context.Context, src Source[decimal.NullDecimal], seed A, combine Combiner[A, decimal.NullDecimal], transform Transform[A, R]) (R, error) {
	return aggregate.AggregateSeedResult(ctx, src, seed, combine, transform)
}
