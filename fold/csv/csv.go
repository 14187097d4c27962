// Package csv provides fold sources that read numeric columns from CSV data.
package csv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/lguimbarda/min-fold/fold/core"
	"github.com/lguimbarda/min-fold/fold/numeric"
)

// DefaultBufferSize is re-exported from core for convenience.
const DefaultBufferSize = core.DefaultBufferSize

// ReaderOption configures a CSV reader.
type ReaderOption func(*csv.Reader)

// WithComma sets the field delimiter (default is ',').
func WithComma(comma rune) ReaderOption {
	return func(r *csv.Reader) {
		r.Comma = comma
	}
}

// WithComment sets the comment character. Lines beginning with it are ignored.
func WithComment(comment rune) ReaderOption {
	return func(r *csv.Reader) {
		r.Comment = comment
	}
}

// WithFieldsPerRecord sets the expected number of fields per record, with
// the encoding/csv meaning: 0 takes the first record's count and a
// negative value disables the check.
func WithFieldsPerRecord(n int) ReaderOption {
	return func(r *csv.Reader) {
		r.FieldsPerRecord = n
	}
}

func WithLazyQuotes(lazy bool) ReaderOption {
	return func(r *csv.Reader) {
		r.LazyQuotes = lazy
	}
}

func WithTrimLeadingSpace(trim bool) ReaderOption {
	return func(r *csv.Reader) {
		r.TrimLeadingSpace = trim
	}
}

// ReadRecords creates a Stream that emits each record of the CSV file at
// path. The file is opened again on every emission.
func ReadRecords(path string, opts ...ReaderOption) core.Stream[[]string] {
	return core.Emit(func(ctx context.Context) <-chan core.Result[[]string] {
		out := make(chan core.Result[[]string], DefaultBufferSize)
		go func() {
			defer close(out)
			file, err := os.Open(path)
			if err != nil {
				select {
				case <-ctx.Done():
				case out <- core.Err[[]string](fmt.Errorf("csv: %w", err)):
				}
				return
			}
			defer file.Close()
			emitRecords(ctx, newReader(file, opts), out)
		}()
		return out
	})
}

// ReadRecordsFrom creates a Stream that reads CSV records from r. Since r
// can be consumed only once, the Stream supports a single pass.
func ReadRecordsFrom(r io.Reader, opts ...ReaderOption) core.Stream[[]string] {
	return core.Emit(func(ctx context.Context) <-chan core.Result[[]string] {
		out := make(chan core.Result[[]string], DefaultBufferSize)
		go func() {
			defer close(out)
			emitRecords(ctx, newReader(r, opts), out)
		}()
		return out
	})
}

func newReader(r io.Reader, opts []ReaderOption) *csv.Reader {
	reader := csv.NewReader(r)
	for _, opt := range opts {
		opt(reader)
	}
	return reader
}

// emitRecords sends records until EOF. A malformed record is emitted as an
// error Result and ends the emission.
func emitRecords(ctx context.Context, reader *csv.Reader, out chan<- core.Result[[]string]) {
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			select {
			case <-ctx.Done():
			case out <- core.Err[[]string](fmt.Errorf("csv: %w", err)):
			}
			return
		}
		select {
		case <-ctx.Done():
			return
		case out <- core.Ok(record):
		}
	}
}

// SkipHeader creates a Transformer that drops the first record of every emission.
func SkipHeader() core.Transformer[[]string, []string] {
	return core.Transmit(func(ctx context.Context, in <-chan core.Result[[]string]) <-chan core.Result[[]string] {
		out := make(chan core.Result[[]string], DefaultBufferSize)
		go func() {
			defer close(out)
			skipped := false
			for res := range in {
				if !skipped && res.IsValue() {
					skipped = true
					continue
				}
				select {
				case <-ctx.Done():
					return
				case out <- res:
				}
			}
		}()
		return out
	})
}

// Column creates a Stream of the field at index in every record, parsed
// with parse. A short record or an unparsable field is a fault.
func Column[T any](records core.Stream[[]string], index int, parse numeric.Parser[T]) core.Stream[T] {
	return core.Map(func(record []string) (T, error) {
		var zero T
		if index < 0 || index >= len(record) {
			return zero, fmt.Errorf("csv: column %d out of range for a record of %d fields", index, len(record))
		}
		v, err := parse(record[index])
		if err != nil {
			return zero, fmt.Errorf("csv: column %d: %w", index, err)
		}
		return v, nil
	}).Apply(records)
}
