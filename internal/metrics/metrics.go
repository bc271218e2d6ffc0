package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the ingestion and aggregation path.
type Metrics struct {
	ingestedRows    prometheus.Counter
	ingestBatches   *prometheus.CounterVec
	rollupRequests  prometheus.Counter
	rollupCacheHits prometheus.Counter
}

// NewMetrics creates and registers all service metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		ingestedRows: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "ingest_rows_total",
				Help: "Total number of detection rows committed to the store",
			},
		),
		ingestBatches: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ingest_batches_total",
				Help: "Total number of ingestion batches by outcome",
			},
			[]string{"status"},
		),
		rollupRequests: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "rollup_requests_total",
				Help: "Total number of aggregation requests served",
			},
		),
		rollupCacheHits: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "rollup_cache_hits_total",
				Help: "Total number of aggregation requests answered from cache",
			},
		),
	}
}

// AddIngestedRows records rows committed by an accepted batch.
func (m *Metrics) AddIngestedRows(n int) {
	if m == nil {
		return
	}
	m.ingestedRows.Add(float64(n))
}

// IncrementBatches counts one ingestion batch with the given outcome
// ("accepted" or "rejected").
func (m *Metrics) IncrementBatches(status string) {
	if m == nil {
		return
	}
	m.ingestBatches.WithLabelValues(status).Inc()
}

// IncrementRollupRequests counts one aggregation request.
func (m *Metrics) IncrementRollupRequests() {
	if m == nil {
		return
	}
	m.rollupRequests.Inc()
}

// IncrementRollupCacheHits counts one aggregation request served from cache.
func (m *Metrics) IncrementRollupCacheHits() {
	if m == nil {
		return
	}
	m.rollupCacheHits.Inc()
}
