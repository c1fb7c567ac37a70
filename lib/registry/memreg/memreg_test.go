package memreg

import (
	"strings"
	"testing"
	"unsafe"

	"github.com/patchforge/oreg/lib/registry"
	regtesting "github.com/patchforge/oreg/lib/registry/testing"
)

func Test(t *testing.T) {
	regtesting.RunRegistryTests(t, "MemReg", func() registry.IRegistry {
		return NewRegistry(nil)
	})
}

func Benchmark(b *testing.B) {
	regtesting.RunRegistryBenchmarks(b, "MemReg", func() registry.IRegistry {
		return NewRegistry(nil)
	})
}

// --------------------------------------------------------------------------
// Implementation-specific tests
// --------------------------------------------------------------------------

func TestPresizedOptions(t *testing.T) {
	reg := NewRegistry(&Options{PresizeTables: 64, PresizePartitions: 64})

	data := registry.RowData(unsafe.Pointer(new(uint64)))
	id, ok := reg.InsertRow("weapons", data)
	if !ok || id != 0 {
		t.Fatalf("expected first insert into presized registry to yield id 0, got %d", id)
	}
	if got, ok := reg.GetRow("weapons", id); !ok || got != data {
		t.Error("round trip failed on presized registry")
	}
}

func TestMetricsExport(t *testing.T) {
	reg := NewRegistry(nil)

	data := registry.RowData(unsafe.Pointer(new(uint64)))
	reg.InsertRow("weapons", data)
	reg.GetRow("weapons", 0)
	reg.GetRow("weapons", 99)

	var sb strings.Builder
	reg.WriteMetrics(&sb)
	out := sb.String()

	for _, want := range []string{
		`oreg_ops_total{op="insert_row",result="ok"} 1`,
		`oreg_ops_total{op="get_row",result="ok"} 1`,
		`oreg_ops_total{op="get_row",result="fail"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics output missing %q:\n%s", want, out)
		}
	}
}

// Independent registry instances must not share state or counters.
func TestInstanceIsolation(t *testing.T) {
	reg1 := NewRegistry(nil)
	reg2 := NewRegistry(nil)

	data := registry.RowData(unsafe.Pointer(new(uint64)))
	id, _ := reg1.InsertRow("weapons", data)

	if _, ok := reg2.GetRow("weapons", id); ok {
		t.Error("row inserted into reg1 is visible in reg2")
	}

	var sb strings.Builder
	reg2.WriteMetrics(&sb)
	if strings.Contains(sb.String(), `op="insert_row",result="ok"} 1`) {
		t.Error("reg2 counters picked up reg1 operations")
	}
}
