// Package registry provides a runtime override registry for host-owned data
// collections: generic "param rows" addressed by (table name, integer id)
// and localized message strings addressed by (version, category, integer id).
// It is the live-patching substrate beneath a data-modification layer for a
// host application that keeps its own tables and localization data in
// memory. The registry supplies the indirection that lets a value be
// swapped, added, or removed at a given coordinate while leaving all
// memory-lifetime management with the caller.
//
// The package focuses on:
//   - A unified interface (IRegistry) for the eight override operations
//     (get/insert/replace/delete, for rows and for messages)
//   - Strict non-ownership of payloads: the registry stores addresses only
//     and never allocates, inspects, copies, or frees the pointed-to memory
//   - Safe concurrent access from multiple caller threads without an
//     internal task queue or scheduling of any kind
//
// Key Components:
//
//   - IRegistry Interface: The core abstraction defining the row and
//     message operations plus read-only enumeration (Categories, Messages)
//     and introspection (Info). All operations signal failure through a
//     boolean alone; invalid-argument and not-found conditions are
//     deliberately indistinguishable and every failure is terminal for that
//     call, local, and free of side effects.
//
//   - Opaque Handles: RowData and MsgData wrap raw addresses with no
//     ownership semantics attached. Replace and delete hand the previous
//     address back to the caller, which remains responsible for the memory
//     behind it.
//
//   - Process-Wide Default Registry: The
//     "github.com/patchforge/oreg/lib/oreg" package exposes flat functions
//     (GetRow, InsertRow, ...) that forward to a lazily constructed
//     singleton and collapse failures to the flat sentinel values of the
//     original C surface (nil pointer, negative id, zero id). Hosts that
//     want an isolated instance construct one through an implementation
//     package instead.
//
//   - RegistryFactory: A function type abstracting registry construction,
//     used for dependency injection and by the shared test suite in the
//     "github.com/patchforge/oreg/lib/registry/testing" package.
//
// Implementations:
//
//	The in-memory implementation lives in the
//	"github.com/patchforge/oreg/lib/registry/memreg" package. It keys
//	tables by a case-insensitive 32-bit name hash, keeps a lock-free
//	concurrent map per directory, and guards each table and partition with
//	its own reader-writer lock so that reads on independent coordinates
//	never block each other.
package registry
