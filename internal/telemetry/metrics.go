package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	QuotesTotal   *prometheus.CounterVec
	QuoteDuration *prometheus.HistogramVec
	CacheOps      *prometheus.CounterVec
	StoreErrors   *prometheus.CounterVec
}

// NewMetrics creates and registers Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		QuotesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricing_quotes_total",
				Help: "Total number of quote requests by operation and status",
			},
			[]string{"operation", "status"},
		),
		QuoteDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pricing_quote_duration_seconds",
				Help:    "Quote request duration in seconds by operation",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		CacheOps: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricing_cache_ops_total",
				Help: "Quote cache operations by op and outcome",
			},
			[]string{"op", "outcome"},
		),
		StoreErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricing_store_errors_total",
				Help: "Reference store lookup failures by entity kind",
			},
			[]string{"kind"},
		),
	}
}

// RecordQuote records a quote request metric.
func (m *Metrics) RecordQuote(operation, status string, duration float64) {
	m.QuotesTotal.WithLabelValues(operation, status).Inc()
	m.QuoteDuration.WithLabelValues(operation).Observe(duration)
}

// RecordCacheOp records a cache operation outcome.
func (m *Metrics) RecordCacheOp(op, outcome string) {
	m.CacheOps.WithLabelValues(op, outcome).Inc()
}

// RecordStoreError records a reference store failure.
func (m *Metrics) RecordStoreError(kind string) {
	m.StoreErrors.WithLabelValues(kind).Inc()
}
