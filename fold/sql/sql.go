// Package sql provides fold sources backed by database/sql queries.
// Each fold over a query Stream runs the query again, so the same Stream
// can be folded any number of times.
package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lguimbarda/min-fold/fold/core"
)

// DefaultBufferSize is re-exported from core for convenience.
const DefaultBufferSize = core.DefaultBufferSize

// Querier is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Scanner scans the current row into a value.
type Scanner[T any] func(*sql.Rows) (T, error)

// Column scans a single-column row into T. Any destination accepted by
// Rows.Scan works, including sql.Null[T] and decimal.Decimal.
func Column[T any]() Scanner[T] {
	return func(rows *sql.Rows) (T, error) {
		var v T
		err := rows.Scan(&v)
		return v, err
	}
}

// Query creates a Stream that runs query and emits one element per row.
func Query[T any](db Querier, query string, scanner Scanner[T], args ...any) core.Stream[T] {
	return QueryBuffered(db, query, scanner, DefaultBufferSize, args...)
}

// QueryColumn is Query with the Column scanner.
func QueryColumn[T any](db Querier, query string, args ...any) core.Stream[T] {
	return Query(db, query, Column[T](), args...)
}

// QueryBuffered creates a Query stream with a specified buffer size.
// The first failure (query, scan or iteration) is emitted as an error
// Result and ends the stream.
func QueryBuffered[T any](db Querier, query string, scanner Scanner[T], bufferSize int, args ...any) core.Stream[T] {
	return core.Emit(func(ctx context.Context) <-chan core.Result[T] {
		out := make(chan core.Result[T], bufferSize)
		go func() {
			defer close(out)
			fail := func(err error) {
				select {
				case <-ctx.Done():
				case out <- core.Err[T](err):
				}
			}

			rows, err := db.QueryContext(ctx, query, args...)
			if err != nil {
				fail(fmt.Errorf("sql: query: %w", err))
				return
			}
			defer rows.Close()
			for rows.Next() {
				value, err := scanner(rows)
				if err != nil {
					fail(fmt.Errorf("sql: scan: %w", err))
					return
				}
				select {
				case <-ctx.Done():
					return
				case out <- core.Ok(value):
				}
			}
			if err := rows.Err(); err != nil {
				fail(fmt.Errorf("sql: rows: %w", err))
			}
		}()
		return out
	})
}

// QueryRow creates a Stream that runs a query expecting a single row.
// sql.ErrNoRows ends the stream without an element, which makes an
// unseeded fold fail with core.ErrEmptySequence.
func QueryRow[T any](db Querier, query string, scanner func(*sql.Row) (T, error), args ...any) core.Stream[T] {
	return core.Emit(func(ctx context.Context) <-chan core.Result[T] {
		out := make(chan core.Result[T], 1)
		go func() {
			defer close(out)
			value, err := scanner(db.QueryRowContext(ctx, query, args...))
			if errors.Is(err, sql.ErrNoRows) {
				return
			}
			res := core.Ok(value)
			if err != nil {
				res = core.Err[T](fmt.Errorf("sql: query row: %w", err))
			}
			select {
			case <-ctx.Done():
			case out <- res:
			}
		}()
		return out
	})
}
