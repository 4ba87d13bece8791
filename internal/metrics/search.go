package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search and indexing Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "annosearch",
			Name:      "search_requests_total",
			Help:      "Total number of search requests",
		},
		[]string{"kind", "status"}, // kind: "filter" / "text" / "vector"
	)

	SearchRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "annosearch",
			Name:      "search_request_duration_seconds",
			Help:      "Search request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"kind"},
	)

	IndexedDocumentsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "annosearch",
			Name:      "indexed_documents_total",
			Help:      "Total documents written through bulk indexing",
		},
	)

	BulkErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "annosearch",
			Name:      "bulk_errors_total",
			Help:      "Total failed documents in bulk requests",
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchRequestDuration)
	prometheus.MustRegister(IndexedDocumentsTotal)
	prometheus.MustRegister(BulkErrorsTotal)
	searchMetricsRegistered = true
}
