package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce         sync.Once
	reviewDecisionsTotal *prometheus.CounterVec
	reviewBulkBatchSize  *prometheus.HistogramVec
	apiRequestsTotal     *prometheus.CounterVec
	apiLatencySeconds    *prometheus.HistogramVec
)

// RegisterMetrics initialises the Prometheus collectors used by the service.
func RegisterMetrics() {
	registerOnce.Do(func() {
		reviewDecisionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "review_decisions_total",
			Help: "Review transitions applied, labelled by target kind, action and outcome.",
		}, []string{"target_type", "action", "outcome"})

		reviewBulkBatchSize = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "review_bulk_batch_size",
			Help:    "Distribution of bulk decision batch sizes.",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
		}, []string{"target_type"})

		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "api_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		prometheus.MustRegister(reviewDecisionsTotal, reviewBulkBatchSize, apiRequestsTotal, apiLatencySeconds)
	})
}

// ReviewDecisions exposes the decision outcome counter.
func ReviewDecisions() *prometheus.CounterVec {
	RegisterMetrics()
	return reviewDecisionsTotal
}

// ReviewBulkBatchSize exposes the bulk batch size histogram.
func ReviewBulkBatchSize() *prometheus.HistogramVec {
	RegisterMetrics()
	return reviewBulkBatchSize
}

// APIRequests exposes the request counter.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the request latency histogram.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}
