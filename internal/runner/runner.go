// Package runner wires a configured source to a reduction for foldctl.
package runner

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	_ "github.com/mattn/go-sqlite3"
	backend "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/lguimbarda/min-fold/fold"
	foldcsv "github.com/lguimbarda/min-fold/fold/csv"
	foldjson "github.com/lguimbarda/min-fold/fold/json"
	"github.com/lguimbarda/min-fold/fold/numeric"
	foldredis "github.com/lguimbarda/min-fold/fold/redis"
	foldsql "github.com/lguimbarda/min-fold/fold/sql"
	"github.com/lguimbarda/min-fold/internal/config"
)

// ErrUnsupported is returned for an op the element type cannot perform.
var ErrUnsupported = errors.New("unsupported operation")

// Null is printed for a reduction with no valid element.
const Null = "null"

// Runner owns the connections a source needs. Close releases them.
type Runner struct {
	cfg    config.SourceConfig
	logger *slog.Logger

	db     *sql.DB
	client *backend.Client
}

// New opens the connections for cfg. Nothing is read until Run.
func New(cfg config.SourceConfig, logger *slog.Logger) (*Runner, error) {
	r := &Runner{cfg: cfg, logger: logger}
	switch cfg.Kind {
	case config.SourceInline, config.SourceCSV, config.SourceJSON:
	case config.SourceSQLite:
		db, err := sql.Open("sqlite3", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.DSN, err)
		}
		r.db = db
	case config.SourceRedis:
		r.client = backend.NewClient(&backend.Options{Addr: cfg.Addr})
	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.Kind)
	}
	logger.Debug("source ready", "kind", cfg.Kind)
	return r, nil
}

func (r *Runner) Close() error {
	var errs []error
	if r.db != nil {
		errs = append(errs, r.db.Close())
	}
	if r.client != nil {
		errs = append(errs, r.client.Close())
	}
	return errors.Join(errs...)
}

// Run folds the configured source with op over elements of the given
// kind and returns the formatted result.
func (r *Runner) Run(ctx context.Context, element, op string) (string, error) {
	kind, err := numeric.ParseKind(element)
	if err != nil {
		return "", err
	}
	if !slices.Contains(config.Ops, op) {
		return "", fmt.Errorf("%w: %q", ErrUnsupported, op)
	}
	r.logger.Debug("running fold", "element", kind, "op", op)

	switch kind {
	case numeric.Int32:
		return reduce(ctx, source(r, numeric.ParseInt32), op)
	case numeric.Int64:
		return reduce(ctx, source(r, numeric.ParseInt64), op)
	case numeric.Float32:
		return reduce(ctx, source(r, numeric.ParseFloat32), op)
	case numeric.Float64:
		return reduce(ctx, source(r, numeric.ParseFloat64), op)
	case numeric.Decimal:
		return reduceDecimal(ctx, source(r, numeric.ParseDecimal), op)
	case numeric.NullInt64:
		return reduceNull(ctx, source(r, numeric.ParseNullInt64), op)
	case numeric.NullFloat64:
		return reduceNull(ctx, source(r, numeric.ParseNullFloat64), op)
	case numeric.NullDecimal:
		return reduceNullDecimal(ctx, source(r, numeric.ParseNullDecimal), op)
	}
	return "", fmt.Errorf("%w: element %s", ErrUnsupported, kind)
}

func source[T any](r *Runner, parse numeric.Parser[T]) fold.Source[T] {
	switch r.cfg.Kind {
	case config.SourceCSV:
		records := foldcsv.ReadRecords(r.cfg.Path, foldcsv.WithComma(comma(r.cfg.Comma)))
		if r.cfg.SkipHeader {
			records = foldcsv.SkipHeader().Apply(records)
		}
		return foldcsv.Column(records, r.cfg.Column, parse)
	case config.SourceJSON:
		return foldjson.ReadValues(r.cfg.Path, parse)
	case config.SourceSQLite:
		return foldsql.QueryColumn[T](r.db, r.cfg.Query)
	case config.SourceRedis:
		return foldredis.List(r.client, r.cfg.Key, parse, foldredis.WithPageSize(r.cfg.PageSize))
	}
	values := r.cfg.Values
	return fold.FromSeq2(func(yield func(T, error) bool) {
		for i, s := range values {
			v, err := parse(s)
			if err != nil {
				err = fmt.Errorf("values[%d]: %w", i, err)
			}
			if !yield(v, err) || err != nil {
				return
			}
		}
	})
}

// comma returns the first rune of s, or ',' when s is empty.
func comma(s string) rune {
	for _, r := range s {
		return r
	}
	return ','
}

func reduce[T numeric.Number](ctx context.Context, src fold.Source[T], op string) (string, error) {
	switch op {
	case "sum":
		return format(fold.Sum(ctx, src))
	case "count":
		return format(fold.Count(ctx, src))
	case "average":
		return format(fold.Average(ctx, src))
	case "min":
		return format(fold.Min(ctx, src))
	case "max":
		return format(fold.Max(ctx, src))
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupported, op)
}

func reduceDecimal(ctx context.Context, src fold.Source[decimal.Decimal], op string) (string, error) {
	switch op {
	case "sum":
		return format(fold.SumDecimal(ctx, src))
	case "count":
		return format(fold.Count(ctx, src))
	case "average":
		return format(fold.AverageDecimal(ctx, src))
	case "min":
		return format(fold.MinDecimal(ctx, src))
	case "max":
		return format(fold.MaxDecimal(ctx, src))
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupported, op)
}

// Nullable reductions skip nulls. count counts valid elements; min, max
// and average are null when there is none.
func reduceNull[T numeric.Number](ctx context.Context, src fold.Source[sql.Null[T]], op string) (string, error) {
	valid := func(x sql.Null[T]) bool { return x.Valid }
	switch op {
	case "sum":
		return format(fold.SumNull(ctx, src))
	case "count":
		return format(countValid(ctx, src, valid))
	case "average":
		return formatNull(fold.AverageNull(ctx, src))
	case "min":
		return formatNull(extreme(ctx, src, func(acc, x sql.Null[T]) bool { return x.Valid && (!acc.Valid || x.V < acc.V) }))
	case "max":
		return formatNull(extreme(ctx, src, func(acc, x sql.Null[T]) bool { return x.Valid && (!acc.Valid || x.V > acc.V) }))
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupported, op)
}

func reduceNullDecimal(ctx context.Context, src fold.Source[decimal.NullDecimal], op string) (string, error) {
	valid := func(x decimal.NullDecimal) bool { return x.Valid }
	switch op {
	case "sum":
		return format(fold.SumNullDecimal(ctx, src))
	case "count":
		return format(countValid(ctx, src, valid))
	case "min":
		return formatNullDecimal(extreme(ctx, src, func(acc, x decimal.NullDecimal) bool {
			return x.Valid && (!acc.Valid || x.Decimal.LessThan(acc.Decimal))
		}))
	case "max":
		return formatNullDecimal(extreme(ctx, src, func(acc, x decimal.NullDecimal) bool {
			return x.Valid && (!acc.Valid || x.Decimal.GreaterThan(acc.Decimal))
		}))
	}
	return "", fmt.Errorf("%w: %s over %s", ErrUnsupported, op, numeric.NullDecimal)
}

func countValid[T any](ctx context.Context, src fold.Source[T], valid func(T) bool) (int, error) {
	return fold.AggregateSeed(ctx, src, 0, fold.Sync(func(acc int, x T) (int, error) {
		if valid(x) {
			acc++
		}
		return acc, nil
	}))
}

// extreme keeps x over acc whenever replace says so, starting from the
// zero (null) value.
func extreme[T any](ctx context.Context, src fold.Source[T], replace func(acc, x T) bool) (T, error) {
	var zero T
	return fold.AggregateSeed(ctx, src, zero, fold.Sync(func(acc, x T) (T, error) {
		if replace(acc, x) {
			return x, nil
		}
		return acc, nil
	}))
}

func format[T any](v T, err error) (string, error) {
	if err != nil {
		return "", err
	}
	switch v := any(v).(type) {
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	}
	return fmt.Sprint(v), nil
}

func formatNull[T any](v sql.Null[T], err error) (string, error) {
	if err != nil {
		return "", err
	}
	if !v.Valid {
		return Null, nil
	}
	return format(v.V, nil)
}

func formatNullDecimal(v decimal.NullDecimal, err error) (string, error) {
	if err != nil {
		return "", err
	}
	if !v.Valid {
		return Null, nil
	}
	return v.Decimal.String(), nil
}
