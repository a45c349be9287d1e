// Package metrics exports pool activity as Prometheus metrics.
//
// # Overview
//
// A Collector is bound to one pool name and implements pool.Observer, so it
// can be passed straight to pool.WithObserver:
//
//	reg := prometheus.NewRegistry()
//	collector, err := metrics.NewCollector("enemies", reg)
//	if err != nil {
//	    return err
//	}
//	p := pool.New[entity.Kind, *entity.Enemy](factory, pool.WithObserver(collector))
//
// # Metrics
//
//	spawnpool_pool_acquisitions_total{pool,type,source}  source is recycled or constructed
//	spawnpool_pool_releases_total{pool,type}
//	spawnpool_pool_anomalies_total{pool,kind}
//	spawnpool_pool_queue_depth{pool,type}
//
// Several collectors may share one registry; the metric vectors are
// registered once per registry and reused.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "spawnpool"
	subsystem = "pool"

	// SourceRecycled labels acquisitions served from a queue
	SourceRecycled = "recycled"
	// SourceConstructed labels acquisitions built on exhaustion
	SourceConstructed = "constructed"
)

type vectors struct {
	acquisitions *prometheus.CounterVec
	releases     *prometheus.CounterVec
	anomalies    *prometheus.CounterVec
	queueDepth   *prometheus.GaugeVec
}

func newVectors() *vectors {
	return &vectors{
		acquisitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "acquisitions_total",
				Help:      "Total number of pool acquisitions by source",
			},
			[]string{"pool", "type", "source"},
		),
		releases: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "releases_total",
				Help:      "Total number of entries returned to the pool",
			},
			[]string{"pool", "type"},
		),
		anomalies: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "anomalies_total",
				Help:      "Total number of non-fatal pool anomalies by kind",
			},
			[]string{"pool", "kind"},
		),
		queueDepth: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "queue_depth",
				Help:      "Number of inactive entries queued per type",
			},
			[]string{"pool", "type"},
		),
	}
}

// register adds v to reg, or returns the vectors already registered there.
func (v *vectors) register(reg prometheus.Registerer) (*vectors, error) {
	out := *v
	var err error
	if out.acquisitions, err = registerOrExisting(reg, v.acquisitions); err != nil {
		return nil, err
	}
	if out.releases, err = registerOrExisting(reg, v.releases); err != nil {
		return nil, err
	}
	if out.anomalies, err = registerOrExisting(reg, v.anomalies); err != nil {
		return nil, err
	}
	if out.queueDepth, err = registerOrExisting(reg, v.queueDepth); err != nil {
		return nil, err
	}
	return &out, nil
}

func registerOrExisting[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		var zero C
		return zero, err
	}
	return c, nil
}

// Collector records the events of a single pool
type Collector struct {
	pool string
	vec  *vectors
}

// NewCollector creates a collector for the named pool and registers its
// metrics on reg. A nil reg uses prometheus.DefaultRegisterer.
func NewCollector(pool string, reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	vec, err := newVectors().register(reg)
	if err != nil {
		return nil, err
	}
	return &Collector{pool: pool, vec: vec}, nil
}

// Acquired counts one acquisition of typ
func (c *Collector) Acquired(typ string, constructed bool) {
	source := SourceRecycled
	if constructed {
		source = SourceConstructed
	}
	c.vec.acquisitions.WithLabelValues(c.pool, typ, source).Inc()
}

// Released counts one release of typ
func (c *Collector) Released(typ string) {
	c.vec.releases.WithLabelValues(c.pool, typ).Inc()
}

// Anomaly counts one anomaly of the given kind
func (c *Collector) Anomaly(kind string) {
	c.vec.anomalies.WithLabelValues(c.pool, kind).Inc()
}

// Depth sets the current queue depth of typ
func (c *Collector) Depth(typ string, n int) {
	c.vec.queueDepth.WithLabelValues(c.pool, typ).Set(float64(n))
}

// Timer provides a simple timing mechanism for measuring operation durations.
type Timer struct {
	start time.Time
	name  string
}

// NewTimer creates a new timer and starts timing immediately.
func NewTimer(name string) *Timer {
	return &Timer{
		start: time.Now(),
		name:  name,
	}
}

// Name returns the timer name
func (t *Timer) Name() string {
	return t.name
}

// Stop returns the elapsed duration since creation. It can be called
// repeatedly.
func (t *Timer) Stop() time.Duration {
	return time.Since(t.start)
}
