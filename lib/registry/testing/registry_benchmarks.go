package testing

import (
	"sync/atomic"
	"testing"

	"github.com/patchforge/oreg/lib/registry"
)

// RunRegistryBenchmarks runs all benchmarks for a registry implementation.
func RunRegistryBenchmarks(b *testing.B, name string, factory registry.RegistryFactory) {

	b.Run("InsertRow", func(b *testing.B) {
		benchmarkInsertRow(b, factory())
	})

	b.Run("GetRow", func(b *testing.B) {
		benchmarkGetRow(b, factory())
	})

	b.Run("GetRow(miss)", func(b *testing.B) {
		benchmarkGetRowMiss(b, factory())
	})

	b.Run("ReplaceRow", func(b *testing.B) {
		benchmarkReplaceRow(b, factory())
	})

	b.Run("InsertMsg", func(b *testing.B) {
		benchmarkInsertMsg(b, factory())
	})

	b.Run("GetMsg", func(b *testing.B) {
		benchmarkGetMsg(b, factory())
	})

	b.Run("MixedUsage", func(b *testing.B) {
		benchmarkMixedUsage(b, factory())
	})
}

// --------------------------------------------------------------------------
// Benchmark functions
// --------------------------------------------------------------------------

// prefill inserts n rows into the given table and returns the payload used.
func prefill(b *testing.B, reg registry.IRegistry, table string, n int) registry.RowData {
	data := newRow()
	for i := 0; i < n; i++ {
		if _, ok := reg.InsertRow(table, data); !ok {
			b.Fatal("prefill insert failed")
		}
	}
	return data
}

func benchmarkInsertRow(b *testing.B, reg registry.IRegistry) {
	data := newRow()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			reg.InsertRow("bench", data)
		}
	})
}

func benchmarkGetRow(b *testing.B, reg registry.IRegistry) {
	const keySpread = 1024
	prefill(b, reg, "bench", keySpread)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		counter := int32(0)
		for pb.Next() {
			reg.GetRow("bench", counter%keySpread)
			counter++
		}
	})
}

func benchmarkGetRowMiss(b *testing.B, reg registry.IRegistry) {
	prefill(b, reg, "bench", 1)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			reg.GetRow("bench", 1<<30)
		}
	})
}

func benchmarkReplaceRow(b *testing.B, reg registry.IRegistry) {
	const keySpread = 1024
	data := prefill(b, reg, "bench", keySpread)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		counter := int32(0)
		for pb.Next() {
			reg.ReplaceRow("bench", counter%keySpread, data)
			counter++
		}
	})
}

func benchmarkInsertMsg(b *testing.B, reg registry.IRegistry) {
	data := newMsg("benchmark")

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			reg.InsertMsg(1, 1, data)
		}
	})
}

func benchmarkGetMsg(b *testing.B, reg registry.IRegistry) {
	const keySpread = 1024
	data := newMsg("benchmark")
	for i := 0; i < keySpread; i++ {
		if _, ok := reg.InsertMsg(1, 1, data); !ok {
			b.Fatal("prefill insert failed")
		}
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		counter := uint32(0)
		for pb.Next() {
			reg.GetMsg(1, 1, 1+counter%keySpread)
			counter++
		}
	})
}

func benchmarkMixedUsage(b *testing.B, reg registry.IRegistry) {
	data := newRow()
	prefill(b, reg, "bench", 1024)

	var counter atomic.Int64

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			i := counter.Add(1)
			switch i % 4 {
			case 0:
				reg.InsertRow("bench", data)
			case 1:
				reg.GetRow("bench", int32(i%1024))
			case 2:
				reg.ReplaceRow("bench", int32(i%1024), data)
			case 3:
				reg.GetRow("bench", int32(i%1024))
			}
		}
	})
}
