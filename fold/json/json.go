// Package json provides fold sources that decode numeric elements from
// JSON: either one top-level array of scalars or a sequence of scalars
// separated by whitespace (JSON Lines).
//
// Every scalar is handed to a numeric.Parser as text, so numbers, quoted
// numbers ("0.10") and null all work with the same parsers the CSV and
// Redis sources use.
package json

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode"

	"github.com/lguimbarda/min-fold/fold/core"
	"github.com/lguimbarda/min-fold/fold/numeric"
)

// DefaultBufferSize is the default buffer size for JSON operations.
const DefaultBufferSize = core.DefaultBufferSize

var (
	// ErrNotScalar is returned for an element that is an object or an array.
	ErrNotScalar = errors.New("json: element is not a scalar")

	// ErrTrailingData is returned for input that continues after the
	// closing bracket of a top-level array.
	ErrTrailingData = errors.New("json: data after the top-level array")
)

// ReadValues creates a Stream of the elements in the JSON file at path.
// The file is opened again on every emission.
func ReadValues[T any](path string, parse numeric.Parser[T]) core.Stream[T] {
	return core.Emit(func(ctx context.Context) <-chan core.Result[T] {
		out := make(chan core.Result[T], DefaultBufferSize)
		go func() {
			defer close(out)
			file, err := os.Open(path)
			if err != nil {
				send(ctx, out, core.Err[T](fmt.Errorf("json: %w", err)))
				return
			}
			defer file.Close()
			decodeValues(ctx, file, parse, out)
		}()
		return out
	})
}

// DecodeValues creates a Stream of the elements read from r. Since r can
// be consumed only once, the Stream supports a single pass.
func DecodeValues[T any](r io.Reader, parse numeric.Parser[T]) core.Stream[T] {
	return core.Emit(func(ctx context.Context) <-chan core.Result[T] {
		out := make(chan core.Result[T], DefaultBufferSize)
		go func() {
			defer close(out)
			decodeValues(ctx, r, parse, out)
		}()
		return out
	})
}

func send[T any](ctx context.Context, out chan<- core.Result[T], res core.Result[T]) bool {
	select {
	case <-ctx.Done():
		return false
	case out <- res:
		return true
	}
}

// decodeValues emits elements until the input ends. The first malformed
// or unparsable element, or anything but whitespace after a top-level
// array, is emitted as an error and ends the emission.
func decodeValues[T any](ctx context.Context, r io.Reader, parse numeric.Parser[T], out chan<- core.Result[T]) {
	br := bufio.NewReader(r)
	array, err := startsArray(br)
	if err != nil {
		send(ctx, out, core.Err[T](fmt.Errorf("json: %w", err)))
		return
	}

	decoder := json.NewDecoder(br)
	if array {
		if _, err := decoder.Token(); err != nil {
			send(ctx, out, core.Err[T](fmt.Errorf("json: %w", err)))
			return
		}
	}

	for i := 0; ; i++ {
		if array && !decoder.More() {
			if _, err := decoder.Token(); err != nil {
				send(ctx, out, core.Err[T](fmt.Errorf("json: %w", err)))
				return
			}
			var extra json.RawMessage
			switch err := decoder.Decode(&extra); {
			case err == nil:
				send(ctx, out, core.Err[T](ErrTrailingData))
			case !errors.Is(err, io.EOF):
				send(ctx, out, core.Err[T](fmt.Errorf("json: after array: %w", err)))
			}
			return
		}

		var raw json.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			if !array && errors.Is(err, io.EOF) {
				return
			}
			send(ctx, out, core.Err[T](fmt.Errorf("json: element %d: %w", i, err)))
			return
		}
		value, err := parseRaw(raw, parse)
		if err != nil {
			send(ctx, out, core.Err[T](fmt.Errorf("json: element %d: %w", i, err)))
			return
		}
		if !send(ctx, out, core.Ok(value)) {
			return
		}
	}
}

// startsArray reports whether the first non-space byte opens an array.
func startsArray(br *bufio.Reader) (bool, error) {
	for {
		r, _, err := br.ReadRune()
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		if unicode.IsSpace(r) {
			continue
		}
		return r == '[', br.UnreadRune()
	}
}

func parseRaw[T any](raw json.RawMessage, parse numeric.Parser[T]) (T, error) {
	var zero T
	switch raw[0] {
	case '{', '[':
		return zero, ErrNotScalar
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return zero, err
		}
		return parse(s)
	}
	return parse(string(raw))
}
