package benchmarks

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/lguimbarda/min-fold/fold"
)

// =============================================================================
// Memory Allocation Benchmarks
// Run with: go test -bench=BenchmarkAlloc -benchmem
// =============================================================================

const AllocSize = 10_000

func BenchmarkAlloc_Sum_Slice(b *testing.B) {
	src := fold.FromSlice(generateInts(AllocSize))
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = fold.Sum(ctx, src)
	}
}

func BenchmarkAlloc_Sum_Stream(b *testing.B) {
	src := fold.StreamOf(generateInts(AllocSize)...)
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = fold.Sum[int](ctx, src)
	}
}

func BenchmarkAlloc_Sum_Decimal(b *testing.B) {
	data := make([]decimal.Decimal, AllocSize)
	for i := range data {
		data[i] = decimal.New(int64(i), -2)
	}
	src := fold.FromSlice(data)
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = fold.SumDecimal(ctx, src)
	}
}

func BenchmarkAlloc_Average_Transform(b *testing.B) {
	src := fold.FromSlice(generateInts(AllocSize))
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = fold.Average(ctx, src)
	}
}
