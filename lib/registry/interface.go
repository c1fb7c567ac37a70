package registry

import (
	"io"
	"unsafe"
)

// --------------------------------------------------------------------------
// Opaque Payload Handles
// --------------------------------------------------------------------------

// RowData is an opaque handle to a caller-owned row payload.
// The registry stores the address only: it never dereferences, copies, or
// frees the pointee. Once stored, the pointee must stay valid for the
// remaining lifetime of the process (this is a documented precondition of
// the host contract and cannot be enforced here).
type RowData unsafe.Pointer

// MsgData is an opaque handle to a caller-owned, NUL-terminated UTF-16
// string. The same non-ownership contract as RowData applies.
type MsgData *uint16

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// RegistryFactory is a function type that creates a new IRegistry instance.
// This is used to abstract the creation of the registry from its
// implementation (e.g. for the shared test suite).
type RegistryFactory func() IRegistry

// IRegistry is the generic interface for a runtime override registry.
//
// All operations communicate failure through the boolean return value alone.
// Invalid arguments and not-found conditions are deliberately
// indistinguishable: a failed call has no side effect and never corrupts
// registry state, and the caller retries with corrected arguments if it
// wishes to proceed.
//
// Tables and message partitions spring into existence only as the side
// effect of a successful insert, never through a read, replace, or delete
// on a previously unseen name or (version, category) pair.
type IRegistry interface {
	// GetRow returns the payload stored at (table, id).
	// It fails if table is empty, id is negative, the table does not exist,
	// or id is not present in the table. No side effect on failure.
	GetRow(table string, id int32) (data RowData, ok bool)
	// InsertRow stores data in the named table under a freshly allocated id
	// and returns that id (>= 0). The table is created if absent.
	// It fails if table is empty or data is nil.
	InsertRow(table string, data RowData) (id int32, ok bool)
	// ReplaceRow atomically swaps the payload stored at (table, id) for data
	// and returns the previously stored payload. The id is unchanged.
	// It fails under the GetRow conditions or if data is nil.
	ReplaceRow(table string, id int32, data RowData) (old RowData, ok bool)
	// DeleteRow removes the mapping at (table, id) and returns the payload
	// that was stored. The registry retains no reference to it afterwards.
	// The id is never reused by later inserts.
	DeleteRow(table string, id int32) (old RowData, ok bool)

	// GetMsg returns the string stored at (version, category, id).
	// It fails if the partition does not exist or id is absent in it.
	GetMsg(version, category, id uint32) (data MsgData, ok bool)
	// InsertMsg stores data in the (version, category) partition under a
	// freshly allocated id and returns that id (> 0, ids start at 1).
	// The partition is created if absent. It fails if data is nil.
	InsertMsg(version, category uint32, data MsgData) (id uint32, ok bool)
	// ReplaceMsg swaps the string stored at (version, category, id) for data
	// and returns the previously stored pointer.
	ReplaceMsg(version, category, id uint32, data MsgData) (old MsgData, ok bool)
	// DeleteMsg removes the mapping at (version, category, id) and returns
	// the pointer that was stored.
	DeleteMsg(version, category, id uint32) (old MsgData, ok bool)

	// Categories returns the sorted category values of all partitions that
	// exist under version. It never creates a partition.
	Categories(version uint32) []uint32
	// Messages returns all entries of the (version, category) partition
	// sorted by id. It never creates a partition.
	Messages(version, category uint32) []MsgEntry

	// Info returns bookkeeping counts about the registry.
	// The values are a snapshot and may be stale under concurrent writes.
	Info() RegistryInfo

	// WriteMetrics writes the operation counters of this registry in
	// Prometheus text exposition format.
	WriteMetrics(w io.Writer)
}

// --------------------------------------------------------------------------
// Helper Types
// --------------------------------------------------------------------------

// MsgEntry is a single (id, pointer) pair of a message partition,
// as returned by IRegistry.Messages.
type MsgEntry struct {
	ID   uint32
	Data MsgData
}

// RegistryInfo holds bookkeeping counts about a registry instance.
type RegistryInfo struct {
	Tables     int `json:"tables"`
	Rows       int `json:"rows"`
	Partitions int `json:"partitions"`
	Messages   int `json:"messages"`
}
