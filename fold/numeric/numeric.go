// Package numeric describes the element types min-fold folds over and
// parses them from text, for sources that deliver strings (CSV cells,
// Redis list entries, configuration values).
//
// The element types are int32, int64, float32, float64, decimal.Decimal
// and their nullable forms sql.Null[int64], sql.Null[float64] and
// decimal.NullDecimal.
package numeric

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Number is satisfied by the built-in element types that support
// arithmetic operators.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Parser converts one textual element.
type Parser[T any] func(string) (T, error)

// Kind names an element type, as used in configuration.
type Kind string

const (
	Int32       Kind = "int32"
	Int64       Kind = "int64"
	Float32     Kind = "float32"
	Float64     Kind = "float64"
	Decimal     Kind = "decimal"
	NullInt64   Kind = "null_int64"
	NullFloat64 Kind = "null_float64"
	NullDecimal Kind = "null_decimal"
)

// Kinds lists every supported element type.
var Kinds = []Kind{Int32, Int64, Float32, Float64, Decimal, NullInt64, NullFloat64, NullDecimal}

// ParseKind validates a configured element type name.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown element type %q", s)
}

// ParseInt32 parses a base-10 32-bit integer; surrounding space is ignored.
func ParseInt32(s string) (int32, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	return int32(v), err
}

// ParseInt64 parses a base-10 64-bit integer.
func ParseInt64(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}

// ParseFloat32 parses a 32-bit float.
func ParseFloat32(s string) (float32, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	return float32(v), err
}

// ParseFloat64 parses a 64-bit float.
func ParseFloat64(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// ParseDecimal parses an exact decimal such as "0.10" or "1e-3".
func ParseDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}

// isNull reports the textual spellings of an absent value.
func isNull(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, "null")
}

// ParseNullInt64 parses a nullable int64; "" and "null" in any case are null.
func ParseNullInt64(s string) (sql.Null[int64], error) {
	return parseNull(s, ParseInt64)
}

// ParseNullFloat64 parses a nullable float64.
func ParseNullFloat64(s string) (sql.Null[float64], error) {
	return parseNull(s, ParseFloat64)
}

// ParseNullDecimal parses a nullable decimal.
func ParseNullDecimal(s string) (decimal.NullDecimal, error) {
	if isNull(s) {
		return decimal.NullDecimal{}, nil
	}
	d, err := ParseDecimal(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

func parseNull[T any](s string, parse Parser[T]) (sql.Null[T], error) {
	if isNull(s) {
		return sql.Null[T]{}, nil
	}
	v, err := parse(s)
	if err != nil {
		return sql.Null[T]{}, err
	}
	return sql.Null[T]{V: v, Valid: true}, nil
}
