// Package benchmarks compares min-fold folds against popular Go
// collection and stream libraries.
package benchmarks

import (
	"context"
)

// Test data sizes
const (
	SmallSize  = 100
	MediumSize = 1_000
	LargeSize  = 10_000
)

// generateInts creates a slice of integers for benchmarking.
func generateInts(n int) []int {
	data := make([]int, n)
	for i := range data {
		data[i] = i
	}
	return data
}

// add returns the sum of two integers.
func add(a, b int) int {
	return a + b
}

// addWithErr is add in the shape of a sync combiner.
func addWithErr(a, b int) (int, error) {
	return a + b, nil
}

// Background context for benchmarks
var ctx = context.Background()
