// Package memreg implements the in-memory override registry behind the
// registry.IRegistry interface. It provides the complete set of row and
// message operations with a focus on thread safety and predictable,
// constant-plus-lookup-cost calls.
//
// The package focuses on:
//   - Lock-free directory maps so that operations on independent tables and
//     partitions never contend with each other
//   - A reader-writer lock per table/partition so that concurrent reads of
//     the same or different ids proceed without blocking
//   - Linearizable id allocation: ids are handed out under the exclusive
//     table/partition lock, are monotonic, and are never reused after a
//     delete
//   - Strictly lazy creation: a table or partition comes into existence
//     only as the side effect of a successful insert, never through a read,
//     replace, or delete on an unseen coordinate
//
// Key Components:
//
//   - registryImpl: The central structure implementing registry.IRegistry.
//     It holds two xsync.MapOf directories: tables keyed by the
//     case-insensitive 32-bit name hash (util.HashName) and message
//     partitions keyed by their (version, category) pair. The read paths
//     use plain Load calls and therefore cannot create directory entries;
//     the insert paths use LoadOrCompute, which resolves creation races
//     without holding a directory-wide lock.
//
//   - rowTable / msgPartition: One sparse id->pointer map plus a monotonic
//     id allocator each, guarded by a sync.RWMutex. Row ids start at 0 and
//     message ids start at 1 (0 is the insert failure sentinel of the flat
//     API). The allocator is bumped exactly once per successful insert.
//
//   - Operation Counters: Per-instance VictoriaMetrics counters
//     (oreg_ops_total) labelled by operation and outcome, exported through
//     WriteMetrics in Prometheus text format.
//
// Lock ordering is strictly top-down: directory resolution completes before
// a table or partition lock is taken, and no directory state is touched
// while holding a per-table lock, so the two levels cannot deadlock.
//
// The registry stores payload addresses only. It never allocates, inspects,
// copies, or frees the memory behind a RowData or MsgData handle; replace
// and delete hand the previous address back to the caller.
package memreg
