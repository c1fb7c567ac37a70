package memreg

import (
	"sync"

	"github.com/patchforge/oreg/lib/registry"
	"github.com/patchforge/oreg/lib/registry/util"
)

// --------------------------------------------------------------------------
// Row Table (per-name registry partition)
// --------------------------------------------------------------------------

// rowTable is a single named table: a sparse id->payload map plus the
// table's own monotonic id allocator. The allocator is incremented exactly
// once per successful insert and never decremented, so ids are unique for
// the lifetime of the table and never reused after a delete.
type rowTable struct {
	mu     sync.RWMutex
	rows   map[int32]registry.RowData
	nextID int32
}

func newRowTable() *rowTable {
	return &rowTable{
		rows: make(map[int32]registry.RowData),
	}
}

func (t *rowTable) size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

// --------------------------------------------------------------------------
// Row Operations (docu see registry/interface.go)
// --------------------------------------------------------------------------

func (r *registryImpl) GetRow(table string, id int32) (registry.RowData, bool) {
	if table == "" || id < 0 {
		return nil, r.metrics.getRow.observe(false)
	}

	// Load never creates the table: a read on an unseen name must not leave
	// a trace in the directory.
	t, ok := r.tables.Load(util.HashName(table))
	if !ok {
		return nil, r.metrics.getRow.observe(false)
	}

	t.mu.RLock()
	data, ok := t.rows[id]
	t.mu.RUnlock()

	return data, r.metrics.getRow.observe(ok)
}

func (r *registryImpl) InsertRow(table string, data registry.RowData) (int32, bool) {
	if table == "" || data == nil {
		r.metrics.insertRow.observe(false)
		return -1, false
	}

	// Arguments are valid at this point, so the insert below cannot fail
	// anymore and lazily creating the table here is safe: a table only ever
	// comes into existence as the side effect of a successful insert.
	key := util.HashName(table)
	t, loaded := r.tables.LoadOrCompute(key, newRowTable)
	if !loaded {
		Logger.Debugf("created table %q (key %#x)", table, key)
	}

	// The id is allocated under the exclusive table lock so that two
	// concurrent inserts can never be handed the same id.
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.rows[id] = data
	t.mu.Unlock()

	r.metrics.insertRow.observe(true)
	return id, true
}

func (r *registryImpl) ReplaceRow(table string, id int32, data registry.RowData) (registry.RowData, bool) {
	if table == "" || id < 0 || data == nil {
		return nil, r.metrics.replaceRow.observe(false)
	}

	t, ok := r.tables.Load(util.HashName(table))
	if !ok {
		return nil, r.metrics.replaceRow.observe(false)
	}

	t.mu.Lock()
	old, ok := t.rows[id]
	if ok {
		t.rows[id] = data
	}
	t.mu.Unlock()

	return old, r.metrics.replaceRow.observe(ok)
}

func (r *registryImpl) DeleteRow(table string, id int32) (registry.RowData, bool) {
	if table == "" || id < 0 {
		return nil, r.metrics.deleteRow.observe(false)
	}

	t, ok := r.tables.Load(util.HashName(table))
	if !ok {
		return nil, r.metrics.deleteRow.observe(false)
	}

	t.mu.Lock()
	old, ok := t.rows[id]
	if ok {
		delete(t.rows, id)
	}
	t.mu.Unlock()

	return old, r.metrics.deleteRow.observe(ok)
}
