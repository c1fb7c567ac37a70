package memreg

import (
	"fmt"
	"io"

	"github.com/VictoriaMetrics/metrics"
)

// --------------------------------------------------------------------------
// Operation Counters
// --------------------------------------------------------------------------

// opCounter counts the outcomes of a single registry operation.
type opCounter struct {
	hit  *metrics.Counter
	miss *metrics.Counter
}

// observe counts the outcome and passes it through, so call sites can wrap
// their return value.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (c opCounter) observe(ok bool) bool {
	if ok {
		c.hit.Inc()
	} else {
		c.miss.Inc()
	}
	return ok
}

// opMetrics holds the per-operation counters of one registry instance.
// Each registry owns its own metrics.Set so that independent instances
// (e.g. in tests) do not share counters.
type opMetrics struct {
	set *metrics.Set

	getRow     opCounter
	insertRow  opCounter
	replaceRow opCounter
	deleteRow  opCounter
	getMsg     opCounter
	insertMsg  opCounter
	replaceMsg opCounter
	deleteMsg  opCounter
}

func newOpMetrics() *opMetrics {
	set := metrics.NewSet()

	counter := func(op string) opCounter {
		return opCounter{
			hit:  set.GetOrCreateCounter(fmt.Sprintf(`oreg_ops_total{op=%q,result="ok"}`, op)),
			miss: set.GetOrCreateCounter(fmt.Sprintf(`oreg_ops_total{op=%q,result="fail"}`, op)),
		}
	}

	return &opMetrics{
		set:        set,
		getRow:     counter("get_row"),
		insertRow:  counter("insert_row"),
		replaceRow: counter("replace_row"),
		deleteRow:  counter("delete_row"),
		getMsg:     counter("get_msg"),
		insertMsg:  counter("insert_msg"),
		replaceMsg: counter("replace_msg"),
		deleteMsg:  counter("delete_msg"),
	}
}

// write dumps all counters in Prometheus text exposition format.
func (m *opMetrics) write(w io.Writer) {
	m.set.WritePrometheus(w)
}
