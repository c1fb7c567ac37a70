package oreg

import (
	"io"
	"sync"

	"github.com/patchforge/oreg/lib/registry"
	"github.com/patchforge/oreg/lib/registry/memreg"
)

// --------------------------------------------------------------------------
// Process-Wide Default Registry
// --------------------------------------------------------------------------

var (
	defaultOnce     sync.Once
	defaultRegistry registry.IRegistry
)

// Default returns the process-wide registry instance, constructing it on
// first use. The instance lives for the remainder of the process; there is
// no teardown API.
//
// Thread-safety: This function is thread-safe and can be called concurrently.
func Default() registry.IRegistry {
	defaultOnce.Do(func() {
		defaultRegistry = memreg.NewRegistry(nil)
	})
	return defaultRegistry
}

// --------------------------------------------------------------------------
// Flat Row Operations
// --------------------------------------------------------------------------

// GetRow returns the payload stored at (table, id) in the default registry,
// or nil if table is empty, id is negative, or the coordinate is unknown.
func GetRow(table string, id int32) registry.RowData {
	data, _ := Default().GetRow(table, id)
	return data
}

// InsertRow stores data in the named table of the default registry and
// returns the new id (>= 0), or a negative value if table is empty or data
// is nil.
func InsertRow(table string, data registry.RowData) int32 {
	id, ok := Default().InsertRow(table, data)
	if !ok {
		return -1
	}
	return id
}

// ReplaceRow swaps the payload stored at (table, id) for data and returns
// the previous payload, or nil on invalid arguments or an unknown
// coordinate.
func ReplaceRow(table string, id int32, data registry.RowData) registry.RowData {
	old, _ := Default().ReplaceRow(table, id, data)
	return old
}

// DeleteRow removes the mapping at (table, id) and returns the payload that
// was stored, or nil on invalid arguments or an unknown coordinate.
func DeleteRow(table string, id int32) registry.RowData {
	old, _ := Default().DeleteRow(table, id)
	return old
}

// --------------------------------------------------------------------------
// Flat Message Operations
// --------------------------------------------------------------------------

// GetMsg returns the string stored at (version, category, id) in the
// default registry, or nil if the coordinate is unknown.
func GetMsg(version, category, id uint32) registry.MsgData {
	data, _ := Default().GetMsg(version, category, id)
	return data
}

// InsertMsg stores data in the (version, category) partition of the default
// registry and returns the new id (> 0), or 0 if data is nil.
func InsertMsg(version, category uint32, data registry.MsgData) uint32 {
	id, ok := Default().InsertMsg(version, category, data)
	if !ok {
		return 0
	}
	return id
}

// ReplaceMsg swaps the string stored at (version, category, id) for data
// and returns the previous pointer, or nil if data is nil or the coordinate
// is unknown.
func ReplaceMsg(version, category, id uint32, data registry.MsgData) registry.MsgData {
	old, _ := Default().ReplaceMsg(version, category, id, data)
	return old
}

// DeleteMsg removes the mapping at (version, category, id) and returns the
// pointer that was stored, or nil if the coordinate is unknown.
func DeleteMsg(version, category, id uint32) registry.MsgData {
	old, _ := Default().DeleteMsg(version, category, id)
	return old
}

// --------------------------------------------------------------------------
// Flat Introspection
// --------------------------------------------------------------------------

// Info returns bookkeeping counts of the default registry.
func Info() registry.RegistryInfo {
	return Default().Info()
}

// WriteMetrics writes the operation counters of the default registry in
// Prometheus text exposition format.
func WriteMetrics(w io.Writer) {
	Default().WriteMetrics(w)
}
