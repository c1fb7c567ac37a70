package oreg

import (
	"strings"
	"testing"
	"unsafe"

	"github.com/patchforge/oreg/lib/registry"
	"github.com/patchforge/oreg/lib/registry/util"
)

// The flat API operates on the shared process-wide registry, so every test
// uses its own table names and (version, category) pairs.

func newRow() registry.RowData {
	return registry.RowData(unsafe.Pointer(new(uint64)))
}

func TestRowSentinels(t *testing.T) {
	data := newRow()

	if id := InsertRow("", data); id >= 0 {
		t.Errorf("expected negative id for empty table name, got %d", id)
	}
	if id := InsertRow("flat-sentinels", nil); id >= 0 {
		t.Errorf("expected negative id for nil data, got %d", id)
	}
	if got := GetRow("flat-sentinels", -1); got != nil {
		t.Error("expected nil for negative id")
	}
	if got := GetRow("flat-never-inserted", 0); got != nil {
		t.Error("expected nil for unknown table")
	}
	if got := ReplaceRow("flat-never-inserted", 0, data); got != nil {
		t.Error("expected nil for replace on unknown table")
	}
	if got := DeleteRow("flat-never-inserted", 0); got != nil {
		t.Error("expected nil for delete on unknown table")
	}
}

func TestRowLifecycle(t *testing.T) {
	wdata := newRow()
	wdata2 := newRow()

	id := InsertRow("flat-weapons", wdata)
	if id != 0 {
		t.Fatalf("expected id 0 for first insert, got %d", id)
	}
	if got := GetRow("flat-weapons", id); got != wdata {
		t.Error("get after insert returned wrong pointer")
	}
	if old := ReplaceRow("flat-weapons", id, wdata2); old != wdata {
		t.Error("replace returned wrong previous pointer")
	}
	if got := GetRow("flat-weapons", id); got != wdata2 {
		t.Error("get after replace returned wrong pointer")
	}
	if old := DeleteRow("flat-weapons", id); old != wdata2 {
		t.Error("delete returned wrong pointer")
	}
	if got := GetRow("flat-weapons", id); got != nil {
		t.Error("expected nil after delete")
	}
}

func TestMsgSentinels(t *testing.T) {
	if id := InsertMsg(100, 1, nil); id != 0 {
		t.Errorf("expected 0 for nil data, got %d", id)
	}
	if got := GetMsg(100, 2, 1); got != nil {
		t.Error("expected nil for unknown partition")
	}
	if got := ReplaceMsg(100, 2, 1, util.WideString("x")); got != nil {
		t.Error("expected nil for replace on unknown partition")
	}
	if got := DeleteMsg(100, 2, 1); got != nil {
		t.Error("expected nil for delete on unknown partition")
	}
}

func TestMsgLifecycle(t *testing.T) {
	hello := util.WideString("Hello")

	id := InsertMsg(101, 7, hello)
	if id != 1 {
		t.Fatalf("expected id 1 for first insert, got %d", id)
	}
	if got := GetMsg(101, 7, id); got != hello {
		t.Error("get after insert returned wrong pointer")
	}
	if got := GetMsg(102, 7, id); got != nil {
		t.Error("expected nil for wrong version")
	}

	replacement := util.WideString("Goodbye")
	if old := ReplaceMsg(101, 7, id, replacement); old != hello {
		t.Error("replace returned wrong previous pointer")
	}
	if old := DeleteMsg(101, 7, id); old != replacement {
		t.Error("delete returned wrong pointer")
	}
	if got := GetMsg(101, 7, id); got != nil {
		t.Error("expected nil after delete")
	}
}

func TestDefaultIsSingleton(t *testing.T) {
	if Default() != Default() {
		t.Error("expected Default to return the same instance")
	}

	data := newRow()
	id := InsertRow("flat-singleton", data)
	if got, ok := Default().GetRow("flat-singleton", id); !ok || got != data {
		t.Error("flat insert not visible through Default()")
	}
}

func TestWriteMetrics(t *testing.T) {
	InsertRow("flat-metrics", newRow())

	var sb strings.Builder
	WriteMetrics(&sb)
	if !strings.Contains(sb.String(), "oreg_ops_total") {
		t.Error("expected metrics dump to contain operation counters")
	}
}
