// Package oreg exposes the process-wide default registry as eight flat
// functions mirroring the override surface consumed by host integrations:
// GetRow, InsertRow, ReplaceRow, DeleteRow and their message counterparts.
//
// The functions forward to a singleton registry.IRegistry that is
// constructed lazily on first use and lives for the remainder of the
// process. Failures are collapsed to the flat sentinel values of that
// surface: a nil pointer for the pointer-returning operations, a negative
// id for InsertRow, and 0 for InsertMsg. There is no error channel and no
// way to tell a bad argument from a missing coordinate, which is the
// documented contract.
//
// Hosts that need an isolated registry (e.g. one per loaded module, or for
// tests) should construct their own instance via
// "github.com/patchforge/oreg/lib/registry/memreg" and use the IRegistry
// methods directly, which report failure through a boolean instead.
package oreg
