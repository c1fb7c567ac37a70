// Package bench implements the "oreg bench" command, a concurrency
// benchmark for the eight override operations of the registry.
package bench

import (
	"fmt"
	"math"
	"os"
	"sync"
	"testing"
	"time"
	"unsafe"

	"github.com/patchforge/oreg/cmd/util"
	"github.com/patchforge/oreg/lib/registry"
	"github.com/patchforge/oreg/lib/registry/memreg"
	regutil "github.com/patchforge/oreg/lib/registry/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// BenchCmd represents the bench command
	BenchCmd = &cobra.Command{
		Use:     "bench",
		Short:   "Benchmark the registry operations",
		Long:    util.WrapString("Runs parallel insert/get/replace/delete workloads against a fresh in-memory registry, verifies id allocation, and prints throughput plus the operation counters. All flags can be overridden via OREG_<flag> environment variables."),
		RunE:    run,
		PreRunE: processConfig,
	}

	benchNumThreads = 8
	benchInserts    = 10_000
	benchNumTables  = 4
	benchKeySpread  = 1024
)

func init() {
	// add flags
	key := "threads"
	BenchCmd.Flags().Int(key, 8, util.WrapString("Number of goroutines to use for the id allocation check"))
	key = "inserts"
	BenchCmd.Flags().Int(key, 10_000, util.WrapString("Inserts per goroutine for the id allocation check"))
	key = "tables"
	BenchCmd.Flags().Int(key, 4, util.WrapString("Number of independent tables for the mixed workload"))
	key = "keys"
	BenchCmd.Flags().Int(key, 1024, util.WrapString("How many different row ids to spread reads over"))
}

func processConfig(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	benchNumThreads = viper.GetInt("threads")
	benchInserts = viper.GetInt("inserts")
	benchNumTables = viper.GetInt("tables")
	benchKeySpread = viper.GetInt("keys")

	return nil
}

func run(_ *cobra.Command, _ []string) error {
	fmt.Println("Benchmarking the in-memory override registry")
	fmt.Println()
	fmt.Printf("Threads: %d, inserts/thread: %d, tables: %d, key spread: %d\n",
		benchNumThreads, benchInserts, benchNumTables, benchKeySpread)
	fmt.Println()

	// correctness first: concurrent allocation must stay dense and unique
	if err := checkAllocation(); err != nil {
		return err
	}
	fmt.Printf("%-20s%d goroutines x %d inserts -> all ids distinct and dense\n",
		"alloc-check", benchNumThreads, benchInserts)

	reg := memreg.NewRegistry(&memreg.Options{PresizeTables: benchNumTables})
	data := registry.RowData(unsafe.Pointer(new(uint64)))

	tables := make([]string, benchNumTables)
	for i := range tables {
		tables[i] = fmt.Sprintf("bench-%d", i)
		for k := 0; k < benchKeySpread; k++ {
			reg.InsertRow(tables[i], data)
		}
	}

	printResult("insert-row", testing.Benchmark(func(b *testing.B) {
		b.SetParallelism(benchNumThreads)
		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				reg.InsertRow(tables[counter%benchNumTables], data)
				counter++
			}
		})
	}))

	printResult("get-row", testing.Benchmark(func(b *testing.B) {
		b.SetParallelism(benchNumThreads)
		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				reg.GetRow(tables[counter%benchNumTables], int32(counter%benchKeySpread))
				counter++
			}
		})
	}))

	printResult("replace-row", testing.Benchmark(func(b *testing.B) {
		b.SetParallelism(benchNumThreads)
		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				reg.ReplaceRow(tables[counter%benchNumTables], int32(counter%benchKeySpread), data)
				counter++
			}
		})
	}))

	msg := regutil.WideString("benchmark")
	for i := 0; i < benchKeySpread; i++ {
		reg.InsertMsg(1, 0, msg)
	}

	printResult("insert-msg", testing.Benchmark(func(b *testing.B) {
		b.SetParallelism(benchNumThreads)
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				reg.InsertMsg(1, 1, msg)
			}
		})
	}))

	printResult("get-msg", testing.Benchmark(func(b *testing.B) {
		b.SetParallelism(benchNumThreads)
		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				reg.GetMsg(1, 0, uint32(1+counter%benchKeySpread))
				counter++
			}
		})
	}))

	fmt.Println()
	fmt.Println("Operation counters:")
	reg.WriteMetrics(os.Stdout)

	return nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// checkAllocation runs concurrent inserts into one table and verifies that
// the allocator hands out every id exactly once with no gaps.
func checkAllocation() error {
	reg := memreg.NewRegistry(nil)
	data := registry.RowData(unsafe.Pointer(new(uint64)))

	var wg sync.WaitGroup
	ids := make([][]int32, benchNumThreads)

	for g := 0; g < benchNumThreads; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			ids[g] = make([]int32, 0, benchInserts)
			for i := 0; i < benchInserts; i++ {
				id, ok := reg.InsertRow("alloc", data)
				if !ok {
					return
				}
				ids[g] = append(ids[g], id)
			}
		}(g)
	}
	wg.Wait()

	total := benchNumThreads * benchInserts
	seen := make([]bool, total)
	for g := range ids {
		if len(ids[g]) != benchInserts {
			return fmt.Errorf("goroutine %d performed %d of %d inserts", g, len(ids[g]), benchInserts)
		}
		for _, id := range ids[g] {
			if id < 0 || int(id) >= total {
				return fmt.Errorf("id %d outside the dense range [0, %d)", id, total)
			}
			if seen[id] {
				return fmt.Errorf("id %d handed out twice", id)
			}
			seen[id] = true
		}
	}

	return nil
}

// printResult prints the result of a benchmark test in a formatted way
func printResult(test string, result testing.BenchmarkResult) {
	nsPerOp := math.Max(float64(result.NsPerOp()), 1) // prevent division by zero
	opsPerSec := 1.0 / (nsPerOp / 1e9)

	fmt.Printf("%-20s%.0fns/op (%s/op)\t%.0f ops/sec\n", test, nsPerOp, time.Duration(nsPerOp), opsPerSec)
}
