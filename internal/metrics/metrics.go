// Package metrics exposes Prometheus metrics for the document store.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kbportal/internal/domain"
)

// Metrics implements the store's WriteObserver and the services'
// OperationObserver. A nil *Metrics records nothing.
type Metrics struct {
	registry       *prometheus.Registry
	operations     *prometheus.CounterVec
	persistSeconds *prometheus.HistogramVec
	ingestedItems  prometheus.Counter
	nodes          prometheus.GaugeFunc
}

// New creates a registry with Go runtime collectors plus the kbportal metrics.
// nodeCount is sampled on scrape; pass nil to skip the gauge.
func New(nodeCount func() int) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		operations: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "kbportal_operations_total",
				Help: "Total number of document operations by operation and outcome",
			},
			[]string{"operation", "outcome"}, // outcome: ok, validation, not_found, invalid, conflict, error
		),
		persistSeconds: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kbportal_persist_duration_seconds",
				Help:    "Time spent writing the tree snapshot to the slot",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
			},
			[]string{"outcome"}, // "ok", "error"
		),
		ingestedItems: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "kbportal_ingested_files_total",
				Help: "Total number of uploaded file descriptors materialized as nodes",
			},
		),
	}

	if nodeCount != nil {
		m.nodes = promauto.With(reg).NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "kbportal_nodes",
				Help: "Number of node records in the store, detached records included",
			},
			func() float64 { return float64(nodeCount()) },
		)
	}

	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObservePersist records one snapshot write
func (m *Metrics) ObservePersist(duration time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.persistSeconds.WithLabelValues(outcome).Observe(duration.Seconds())
}

// ObserveOperation records one service call
func (m *Metrics) ObserveOperation(op string, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, outcomeOf(err)).Inc()
}

// ObserveIngested records one materialized upload item
func (m *Metrics) ObserveIngested() {
	if m == nil {
		return
	}
	m.ingestedItems.Inc()
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidOperation):
		return "invalid"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}
