package testing

import (
	"sync"
	"testing"
	"unsafe"

	"github.com/patchforge/oreg/lib/registry"
	"github.com/patchforge/oreg/lib/registry/util"
)

// RunRegistryTests runs a comprehensive test suite for an IRegistry
// implementation.
func RunRegistryTests(t *testing.T, name string, factory registry.RegistryFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("RowRoundTrip", func(t *testing.T) {
			testRowRoundTrip(t, factory())
		})

		t.Run("RowDistinctIDs", func(t *testing.T) {
			testRowDistinctIDs(t, factory())
		})

		t.Run("RowReplace", func(t *testing.T) {
			testRowReplace(t, factory())
		})

		t.Run("RowDelete", func(t *testing.T) {
			testRowDelete(t, factory())
		})

		t.Run("RowInvalidArgs", func(t *testing.T) {
			testRowInvalidArgs(t, factory())
		})

		t.Run("RowLazyCreation", func(t *testing.T) {
			testRowLazyCreation(t, factory())
		})

		t.Run("RowIDNotReused", func(t *testing.T) {
			testRowIDNotReused(t, factory())
		})

		t.Run("CaseInsensitiveNames", func(t *testing.T) {
			testCaseInsensitiveNames(t, factory())
		})

		t.Run("RowLifecycle", func(t *testing.T) {
			testRowLifecycle(t, factory())
		})

		t.Run("MsgRoundTrip", func(t *testing.T) {
			testMsgRoundTrip(t, factory())
		})

		t.Run("MsgScoping", func(t *testing.T) {
			testMsgScoping(t, factory())
		})

		t.Run("MsgReplaceDelete", func(t *testing.T) {
			testMsgReplaceDelete(t, factory())
		})

		t.Run("MsgInvalidArgs", func(t *testing.T) {
			testMsgInvalidArgs(t, factory())
		})

		t.Run("MsgEnumeration", func(t *testing.T) {
			testMsgEnumeration(t, factory())
		})

		t.Run("Info", func(t *testing.T) {
			testInfo(t, factory())
		})

		t.Run("ConcurrentRowInserts", func(t *testing.T) {
			testConcurrentRowInserts(t, factory())
		})

		t.Run("ConcurrentMsgInserts", func(t *testing.T) {
			testConcurrentMsgInserts(t, factory())
		})

		t.Run("ConcurrentMixed", func(t *testing.T) {
			testConcurrentMixed(t, factory())
		})
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

// newRow creates a distinct caller-owned row payload.
// The backing allocation stays reachable through the returned handle.
func newRow() registry.RowData {
	return registry.RowData(unsafe.Pointer(new(uint64)))
}

// newMsg creates a NUL-terminated UTF-16 message payload.
func newMsg(s string) registry.MsgData {
	return util.WideString(s)
}

// --------------------------------------------------------------------------
// Row test functions
// --------------------------------------------------------------------------

func testRowRoundTrip(t *testing.T, reg registry.IRegistry) {
	data := newRow()

	id, ok := reg.InsertRow("weapons", data)
	if !ok {
		t.Fatal("expected InsertRow to succeed")
	}
	if id < 0 {
		t.Errorf("expected a non-negative id, got %d", id)
	}

	got, ok := reg.GetRow("weapons", id)
	if !ok {
		t.Fatalf("expected GetRow(weapons, %d) to succeed after insert", id)
	}
	if got != data {
		t.Errorf("expected GetRow to return the inserted pointer %p, got %p", data, got)
	}
}

func testRowDistinctIDs(t *testing.T, reg registry.IRegistry) {
	const n = 100

	seen := make(map[int32]bool, n)
	for i := 0; i < n; i++ {
		id, ok := reg.InsertRow("goods", newRow())
		if !ok {
			t.Fatalf("insert %d failed", i)
		}
		if seen[id] {
			t.Errorf("id %d handed out twice", id)
		}
		seen[id] = true
	}

	// ids in a different table are allocated independently
	id, ok := reg.InsertRow("armor", newRow())
	if !ok {
		t.Fatal("insert into second table failed")
	}
	if id != 0 {
		t.Errorf("expected first id of a fresh table to be 0, got %d", id)
	}
}

func testRowReplace(t *testing.T, reg registry.IRegistry) {
	data1 := newRow()
	data2 := newRow()

	id, _ := reg.InsertRow("npcs", data1)

	old, ok := reg.ReplaceRow("npcs", id, data2)
	if !ok {
		t.Fatal("expected ReplaceRow on an existing row to succeed")
	}
	if old != data1 {
		t.Errorf("expected ReplaceRow to return the previous pointer %p, got %p", data1, old)
	}

	got, _ := reg.GetRow("npcs", id)
	if got != data2 {
		t.Errorf("expected GetRow to return the new pointer after replace")
	}

	// the id is stable across replaces
	if _, ok := reg.GetRow("npcs", id); !ok {
		t.Error("row vanished after replace")
	}

	// replace on an absent id fails without side effect
	if _, ok := reg.ReplaceRow("npcs", id+1, data1); ok {
		t.Error("expected ReplaceRow on an absent id to fail")
	}
}

func testRowDelete(t *testing.T, reg registry.IRegistry) {
	data := newRow()
	id, _ := reg.InsertRow("bullets", data)

	old, ok := reg.DeleteRow("bullets", id)
	if !ok {
		t.Fatal("expected DeleteRow on an existing row to succeed")
	}
	if old != data {
		t.Errorf("expected DeleteRow to return the stored pointer %p, got %p", data, old)
	}

	if _, ok := reg.GetRow("bullets", id); ok {
		t.Error("expected GetRow to fail after delete")
	}
	if _, ok := reg.DeleteRow("bullets", id); ok {
		t.Error("expected a second DeleteRow to fail")
	}
}

func testRowInvalidArgs(t *testing.T, reg registry.IRegistry) {
	data := newRow()

	if id, ok := reg.InsertRow("", data); ok {
		t.Errorf("expected InsertRow with empty table name to fail, got id %d", id)
	}
	if _, ok := reg.InsertRow("spells", nil); ok {
		t.Error("expected InsertRow with nil data to fail")
	}

	id, _ := reg.InsertRow("spells", data)

	if _, ok := reg.GetRow("", id); ok {
		t.Error("expected GetRow with empty table name to fail")
	}
	if _, ok := reg.GetRow("spells", -1); ok {
		t.Error("expected GetRow with negative id to fail")
	}
	if _, ok := reg.ReplaceRow("spells", id, nil); ok {
		t.Error("expected ReplaceRow with nil data to fail")
	}
	if _, ok := reg.ReplaceRow("spells", -1, data); ok {
		t.Error("expected ReplaceRow with negative id to fail")
	}
	if _, ok := reg.DeleteRow("spells", -1); ok {
		t.Error("expected DeleteRow with negative id to fail")
	}

	// the failed calls above must not have touched the stored row
	if got, ok := reg.GetRow("spells", id); !ok || got != data {
		t.Error("stored row was affected by failed calls")
	}
}

func testRowLazyCreation(t *testing.T, reg registry.IRegistry) {
	// reads, replaces, and deletes on an unseen table fail ...
	if _, ok := reg.GetRow("unseen", 0); ok {
		t.Error("expected GetRow on an unseen table to fail")
	}
	if _, ok := reg.ReplaceRow("unseen", 0, newRow()); ok {
		t.Error("expected ReplaceRow on an unseen table to fail")
	}
	if _, ok := reg.DeleteRow("unseen", 0); ok {
		t.Error("expected DeleteRow on an unseen table to fail")
	}

	// ... and must not have created it
	if info := reg.Info(); info.Tables != 0 {
		t.Errorf("expected no tables after failed lookups, got %d", info.Tables)
	}

	// a failed insert must not create a table either
	reg.InsertRow("unseen", nil)
	if info := reg.Info(); info.Tables != 0 {
		t.Errorf("expected no tables after failed insert, got %d", info.Tables)
	}

	// only a successful insert creates the table
	reg.InsertRow("unseen", newRow())
	if info := reg.Info(); info.Tables != 1 {
		t.Errorf("expected exactly one table after successful insert, got %d", info.Tables)
	}
}

func testRowIDNotReused(t *testing.T, reg registry.IRegistry) {
	id1, _ := reg.InsertRow("rings", newRow())
	reg.DeleteRow("rings", id1)

	id2, ok := reg.InsertRow("rings", newRow())
	if !ok {
		t.Fatal("insert after delete failed")
	}
	if id2 == id1 {
		t.Errorf("id %d was reused after deletion", id1)
	}
	if id2 < id1 {
		t.Errorf("expected monotonic allocation, got %d after %d", id2, id1)
	}
}

func testCaseInsensitiveNames(t *testing.T, reg registry.IRegistry) {
	data := newRow()

	id, _ := reg.InsertRow("Weapons", data)

	if got, ok := reg.GetRow("weapons", id); !ok || got != data {
		t.Error("expected lookup under lowercased name to find the row")
	}
	if got, ok := reg.GetRow("WEAPONS", id); !ok || got != data {
		t.Error("expected lookup under uppercased name to find the row")
	}

	// backslashes fold to slashes, as in host resource paths
	id2, _ := reg.InsertRow(`menu\text`, data)
	if got, ok := reg.GetRow("menu/text", id2); !ok || got != data {
		t.Error("expected backslash and slash spellings to address the same table")
	}

	if info := reg.Info(); info.Tables != 2 {
		t.Errorf("expected 2 tables, got %d", info.Tables)
	}
}

// testRowLifecycle walks a full insert/get/replace/delete sequence.
func testRowLifecycle(t *testing.T, reg registry.IRegistry) {
	wdata := newRow()
	wdata2 := newRow()

	id, ok := reg.InsertRow("weapons", wdata)
	if !ok || id != 0 {
		t.Fatalf("expected first insert to yield id 0, got %d (ok=%v)", id, ok)
	}
	if got, _ := reg.GetRow("weapons", 0); got != wdata {
		t.Error("get after insert returned wrong pointer")
	}
	if old, _ := reg.ReplaceRow("weapons", 0, wdata2); old != wdata {
		t.Error("replace returned wrong previous pointer")
	}
	if got, _ := reg.GetRow("weapons", 0); got != wdata2 {
		t.Error("get after replace returned wrong pointer")
	}
	if old, _ := reg.DeleteRow("weapons", 0); old != wdata2 {
		t.Error("delete returned wrong pointer")
	}
	if _, ok := reg.GetRow("weapons", 0); ok {
		t.Error("expected get after delete to fail")
	}
}

// --------------------------------------------------------------------------
// Message test functions
// --------------------------------------------------------------------------

func testMsgRoundTrip(t *testing.T, reg registry.IRegistry) {
	data := newMsg("Hello")

	id, ok := reg.InsertMsg(1, 7, data)
	if !ok {
		t.Fatal("expected InsertMsg to succeed")
	}
	if id == 0 {
		t.Error("expected a non-zero message id")
	}

	got, ok := reg.GetMsg(1, 7, id)
	if !ok {
		t.Fatalf("expected GetMsg(1, 7, %d) to succeed after insert", id)
	}
	if got != data {
		t.Errorf("expected GetMsg to return the inserted pointer %p, got %p", data, got)
	}
}

func testMsgScoping(t *testing.T, reg registry.IRegistry) {
	id, _ := reg.InsertMsg(1, 7, newMsg("Hello"))

	// a coinciding id in a different version or category never matches
	if _, ok := reg.GetMsg(2, 7, id); ok {
		t.Error("expected lookup under a different version to fail")
	}
	if _, ok := reg.GetMsg(1, 8, id); ok {
		t.Error("expected lookup under a different category to fail")
	}

	// id spaces are independent per partition, so ids may repeat across them
	otherID, _ := reg.InsertMsg(2, 7, newMsg("Hallo"))
	if otherID != id {
		t.Errorf("expected independent partitions to allocate the same first id, got %d and %d", id, otherID)
	}
}

func testMsgReplaceDelete(t *testing.T, reg registry.IRegistry) {
	data1 := newMsg("old")
	data2 := newMsg("new")

	id, _ := reg.InsertMsg(3, 1, data1)

	old, ok := reg.ReplaceMsg(3, 1, id, data2)
	if !ok {
		t.Fatal("expected ReplaceMsg on an existing entry to succeed")
	}
	if old != data1 {
		t.Error("expected ReplaceMsg to return the previous pointer")
	}
	if got, _ := reg.GetMsg(3, 1, id); got != data2 {
		t.Error("expected GetMsg to return the new pointer after replace")
	}

	removed, ok := reg.DeleteMsg(3, 1, id)
	if !ok {
		t.Fatal("expected DeleteMsg on an existing entry to succeed")
	}
	if removed != data2 {
		t.Error("expected DeleteMsg to return the last stored pointer")
	}
	if _, ok := reg.GetMsg(3, 1, id); ok {
		t.Error("expected GetMsg to fail after delete")
	}
	if _, ok := reg.DeleteMsg(3, 1, id); ok {
		t.Error("expected a second DeleteMsg to fail")
	}
}

func testMsgInvalidArgs(t *testing.T, reg registry.IRegistry) {
	if id, ok := reg.InsertMsg(1, 1, nil); ok {
		t.Errorf("expected InsertMsg with nil data to fail, got id %d", id)
	}

	id, _ := reg.InsertMsg(1, 1, newMsg("keep"))
	if _, ok := reg.ReplaceMsg(1, 1, id, nil); ok {
		t.Error("expected ReplaceMsg with nil data to fail")
	}

	// unknown partition
	if _, ok := reg.GetMsg(99, 99, 1); ok {
		t.Error("expected GetMsg on an unseen partition to fail")
	}
	if _, ok := reg.DeleteMsg(99, 99, 1); ok {
		t.Error("expected DeleteMsg on an unseen partition to fail")
	}
}

func testMsgEnumeration(t *testing.T, reg registry.IRegistry) {
	// enumeration of an unseen partition returns nothing and creates nothing
	if msgs := reg.Messages(5, 5); len(msgs) != 0 {
		t.Errorf("expected no messages in an unseen partition, got %d", len(msgs))
	}
	if cats := reg.Categories(5); len(cats) != 0 {
		t.Errorf("expected no categories for an unseen version, got %v", cats)
	}
	if info := reg.Info(); info.Partitions != 0 {
		t.Errorf("expected enumeration not to create partitions, got %d", info.Partitions)
	}

	first := newMsg("first")
	reg.InsertMsg(5, 9, first)
	reg.InsertMsg(5, 9, newMsg("second"))
	reg.InsertMsg(5, 2, newMsg("other category"))
	reg.InsertMsg(6, 9, newMsg("other version"))

	cats := reg.Categories(5)
	if len(cats) != 2 || cats[0] != 2 || cats[1] != 9 {
		t.Errorf("expected sorted categories [2 9], got %v", cats)
	}

	msgs := reg.Messages(5, 9)
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].ID >= msgs[1].ID {
		t.Error("expected messages sorted by id")
	}
	if msgs[0].Data != first {
		t.Error("expected enumeration to return the stored pointers")
	}
}

func testInfo(t *testing.T, reg registry.IRegistry) {
	if info := reg.Info(); info != (registry.RegistryInfo{}) {
		t.Errorf("expected zero counts on a fresh registry, got %+v", info)
	}

	id, _ := reg.InsertRow("a", newRow())
	reg.InsertRow("a", newRow())
	reg.InsertRow("b", newRow())
	reg.InsertMsg(1, 1, newMsg("x"))

	info := reg.Info()
	if info.Tables != 2 || info.Rows != 3 || info.Partitions != 1 || info.Messages != 1 {
		t.Errorf("unexpected counts: %+v", info)
	}

	reg.DeleteRow("a", id)
	if info := reg.Info(); info.Rows != 2 {
		t.Errorf("expected 2 rows after delete, got %d", info.Rows)
	}
}

// --------------------------------------------------------------------------
// Concurrency test functions
// --------------------------------------------------------------------------

func testConcurrentRowInserts(t *testing.T, reg registry.IRegistry) {
	const (
		goroutines = 8
		inserts    = 250
	)

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[int32]bool, goroutines*inserts)
	)

	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]int32, 0, inserts)
			for i := 0; i < inserts; i++ {
				id, ok := reg.InsertRow("shared", newRow())
				if !ok {
					t.Error("concurrent insert failed")
					return
				}
				local = append(local, id)
			}

			mu.Lock()
			for _, id := range local {
				if ids[id] {
					t.Errorf("id %d handed out twice", id)
				}
				ids[id] = true
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(ids) != goroutines*inserts {
		t.Errorf("expected %d distinct ids, got %d", goroutines*inserts, len(ids))
	}

	// allocation is dense: no gaps beyond normal allocation order
	for id := int32(0); id < goroutines*inserts; id++ {
		if !ids[id] {
			t.Errorf("gap in allocation: id %d missing", id)
			break
		}
	}
}

func testConcurrentMsgInserts(t *testing.T, reg registry.IRegistry) {
	const (
		goroutines = 8
		inserts    = 250
	)

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[uint32]bool, goroutines*inserts)
	)

	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < inserts; i++ {
				id, ok := reg.InsertMsg(1, 1, newMsg("concurrent"))
				if !ok || id == 0 {
					t.Error("concurrent message insert failed")
					return
				}

				mu.Lock()
				if ids[id] {
					t.Errorf("message id %d handed out twice", id)
				}
				ids[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(ids) != goroutines*inserts {
		t.Errorf("expected %d distinct ids, got %d", goroutines*inserts, len(ids))
	}
}

// testConcurrentMixed mixes all four row operations across goroutines and
// tables. The assertions are carried by the race detector plus the
// invariant that every goroutine observes its own writes.
func testConcurrentMixed(t *testing.T, reg registry.IRegistry) {
	const goroutines = 8

	tables := []string{"alpha", "beta", "gamma"}

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			table := tables[g%len(tables)]

			for i := 0; i < 100; i++ {
				data := newRow()
				id, ok := reg.InsertRow(table, data)
				if !ok {
					t.Error("insert failed")
					return
				}

				if got, ok := reg.GetRow(table, id); !ok || got != data {
					t.Error("goroutine did not observe its own insert")
					return
				}

				data2 := newRow()
				if old, ok := reg.ReplaceRow(table, id, data2); !ok || old != data {
					t.Error("goroutine did not observe its own replace")
					return
				}

				if old, ok := reg.DeleteRow(table, id); !ok || old != data2 {
					t.Error("goroutine did not observe its own delete")
					return
				}
			}
		}(g)
	}
	wg.Wait()

	if info := reg.Info(); info.Rows != 0 {
		t.Errorf("expected all rows deleted, got %d", info.Rows)
	}
}
