package memreg

import (
	"io"

	"github.com/lni/dragonboat/v4/logger"
	"github.com/patchforge/oreg/lib/registry"
	"github.com/patchforge/oreg/lib/registry/util"
	"github.com/puzpuzpuz/xsync/v3"
)

// Logger is the named logger for the in-memory registry. Its level is
// configured by the embedding application (see cmd/util).
var Logger = logger.GetLogger("registry")

// --------------------------------------------------------------------------
// Core registry structure
// --------------------------------------------------------------------------

// registryImpl implements registry.IRegistry with one concurrent map per
// directory (tables by name hash, partitions by (version, category)) and a
// reader-writer lock per table/partition.
type registryImpl struct {
	tables     *xsync.MapOf[util.NameKey, *rowTable]
	partitions *xsync.MapOf[partitionKey, *msgPartition]
	metrics    *opMetrics
}

// Options configures the registry during initialization.
type Options struct {
	// PresizeTables and PresizePartitions size the directory maps for an
	// expected number of entries (0 = library default). The maps still
	// grow beyond these sizes on demand.
	PresizeTables     int
	PresizePartitions int
}

// DefaultOptions returns the default registry options.
func DefaultOptions() *Options {
	return &Options{}
}

// NewRegistry creates a new in-memory override registry with the specified
// options (optional).
//
// Thread-safety: all methods of the returned registry are safe for
// concurrent use by multiple goroutines.
func NewRegistry(opts *Options) registry.IRegistry {
	if opts == nil {
		opts = DefaultOptions()
	}

	return &registryImpl{
		tables:     xsync.NewMapOf[util.NameKey, *rowTable](xsync.WithPresize(opts.PresizeTables)),
		partitions: xsync.NewMapOf[partitionKey, *msgPartition](xsync.WithPresize(opts.PresizePartitions)),
		metrics:    newOpMetrics(),
	}
}

// --------------------------------------------------------------------------
// Introspection
// --------------------------------------------------------------------------

// Info returns bookkeeping counts for the registry. The counts are a
// snapshot: rows counted in one table may change while another table is
// being visited.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (r *registryImpl) Info() registry.RegistryInfo {
	var info registry.RegistryInfo

	r.tables.Range(func(_ util.NameKey, t *rowTable) bool {
		info.Tables++
		info.Rows += t.size()
		return true
	})

	r.partitions.Range(func(_ partitionKey, p *msgPartition) bool {
		info.Partitions++
		info.Messages += p.size()
		return true
	})

	return info
}

// WriteMetrics writes the operation counters of this registry in Prometheus
// text exposition format.
func (r *registryImpl) WriteMetrics(w io.Writer) {
	r.metrics.write(w)
}
