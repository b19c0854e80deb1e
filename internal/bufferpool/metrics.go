package bufferpool

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts buffer pool activity.
type Metrics struct {
	Hits       prometheus.Counter
	Misses     prometheus.Counter
	Evictions  prometheus.Counter
	WriteBacks prometheus.Counter
}

// NewMetrics creates the counters and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Hits: f.NewCounter(prometheus.CounterOpts{
			Namespace: "novabuf",
			Subsystem: "bufferpool",
			Name:      "hits_total",
			Help:      "Page fetches served from a resident frame.",
		}),
		Misses: f.NewCounter(prometheus.CounterOpts{
			Namespace: "novabuf",
			Subsystem: "bufferpool",
			Name:      "misses_total",
			Help:      "Page fetches that had to read from the page file.",
		}),
		Evictions: f.NewCounter(prometheus.CounterOpts{
			Namespace: "novabuf",
			Subsystem: "bufferpool",
			Name:      "evictions_total",
			Help:      "Resident pages replaced by the clock sweep.",
		}),
		WriteBacks: f.NewCounter(prometheus.CounterOpts{
			Namespace: "novabuf",
			Subsystem: "bufferpool",
			Name:      "writebacks_total",
			Help:      "Dirty pages written back to their page file.",
		}),
	}
}
