package metrics

import "github.com/prometheus/client_golang/prometheus"

// Plan lookup and search Prometheus metrics.
var (
	FinderRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "planfinder",
			Name:      "finder_requests_total",
			Help:      "Total number of plan finder operations",
		},
		[]string{"operation", "outcome"},
	)

	FinderRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "planfinder",
			Name:      "finder_request_duration_seconds",
			Help:      "Plan finder operation duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"operation"},
	)

	SearchResultsReturned = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "planfinder",
			Name:      "search_results_returned",
			Help:      "Number of plans returned per search page",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
		},
		[]string{"backend"},
	)
)

// Outcome labels for FinderRequestsTotal.
const (
	OutcomeOK          = "ok"
	OutcomeNotFound    = "not_found"
	OutcomeInvalid     = "invalid"
	OutcomeUnavailable = "unavailable"
	OutcomeTimeout     = "timeout"
	OutcomeError       = "error"
)

var finderMetricsRegistered bool

// RegisterFinderMetrics registers Prometheus finder metrics. Must be called once from main.
func RegisterFinderMetrics() {
	if finderMetricsRegistered {
		return
	}
	prometheus.MustRegister(FinderRequestsTotal)
	prometheus.MustRegister(FinderRequestDuration)
	prometheus.MustRegister(SearchResultsReturned)
	finderMetricsRegistered = true
}
