// Package prom exports writeback map metrics to Prometheus.
package prom

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Unknown6656-Megacorp/generics/writeback"
)

// Adapter implements writeback.Metrics and exports Prometheus
// counters/gauges. Safe for concurrent use; all Prometheus metric
// types are goroutine-safe.
type Adapter struct {
	hits     prometheus.Counter
	misses   prometheus.Counter
	enqueued *prometheus.CounterVec
	drained  *prometheus.CounterVec
	depth    *prometheus.GaugeVec
	interval *prometheus.GaugeVec
	size     prometheus.Gauge
}

// New constructs a Prometheus metrics adapter.
//   - reg:         registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:     Prometheus namespace and subsystem
//   - constLabels: static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	a := &Adapter{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "hits_total",
			Help:        "Committed-state read hits",
			ConstLabels: constLabels,
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "misses_total",
			Help:        "Committed-state read misses",
			ConstLabels: constLabels,
		}),
		enqueued: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   sub,
				Name:        "enqueued_total",
				Help:        "Operations accepted onto a pending queue",
				ConstLabels: constLabels,
			},
			[]string{"queue"},
		),
		drained: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   sub,
				Name:        "drained_total",
				Help:        "Operations applied to committed state",
				ConstLabels: constLabels,
			},
			[]string{"queue"},
		),
		depth: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace:   ns,
				Subsystem:   sub,
				Name:        "queue_depth",
				Help:        "Pending operations buffered per queue",
				ConstLabels: constLabels,
			},
			[]string{"queue"},
		),
		interval: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace:   ns,
				Subsystem:   sub,
				Name:        "drain_interval_seconds",
				Help:        "Current adaptive sleep interval per drain loop",
				ConstLabels: constLabels,
			},
			[]string{"queue"},
		),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "size_entries",
			Help:        "Number of committed entries",
			ConstLabels: constLabels,
		}),
	}
	reg.MustRegister(a.hits, a.misses, a.enqueued, a.drained, a.depth, a.interval, a.size)
	return a
}

// Hit increments the hit counter.
func (a *Adapter) Hit() { a.hits.Inc() }

// Miss increments the miss counter.
func (a *Adapter) Miss() { a.misses.Inc() }

// Enqueued increments the per-queue enqueue counter.
func (a *Adapter) Enqueued(q writeback.Queue) {
	a.enqueued.WithLabelValues(q.String()).Inc()
}

// Drained adds a drain burst's operation count to the per-queue counter.
func (a *Adapter) Drained(q writeback.Queue, n int) {
	a.drained.WithLabelValues(q.String()).Add(float64(n))
}

// Depth updates the per-queue pending-operations gauge.
func (a *Adapter) Depth(q writeback.Queue, n int) {
	a.depth.WithLabelValues(q.String()).Set(float64(n))
}

// Interval updates the per-queue drain-interval gauge.
func (a *Adapter) Interval(q writeback.Queue, d time.Duration) {
	a.interval.WithLabelValues(q.String()).Set(d.Seconds())
}

// Size updates the committed entry count gauge.
func (a *Adapter) Size(entries int) { a.size.Set(float64(entries)) }

// Compile-time check: ensure Adapter implements writeback.Metrics.
var _ writeback.Metrics = (*Adapter)(nil)
