// Bookshelf - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookshelf

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result labels shared by the recommendation counters.
const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultInvalid  = "invalid"
	ResultError    = "error"

	// CategoryUnknown labels requests whose category did not resolve.
	CategoryUnknown = "unknown"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Catalog Metrics
	CatalogBooks = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_books",
			Help: "Number of books loaded per category",
		},
		[]string{"category"},
	)

	CatalogLoadDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_load_duration_seconds",
			Help: "Time spent loading the catalog at startup",
		},
	)

	// Recommendation Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of Recommend calls",
		},
		[]string{"category", "result"},
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Time spent inside Recommend",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		},
	)

	RecommendResultSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_result_size",
			Help:    "Number of books returned per Recommend call",
			Buckets: []float64{0, 1, 2, 3, 5, 10, 25, 50},
		},
	)

	// Worker Pool Metrics
	WorkerPoolSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_pool_size",
			Help: "Configured number of Recommend workers",
		},
	)

	WorkerPoolBusy = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_pool_busy",
			Help: "Workers currently executing a call",
		},
	)

	WorkerPoolQueued = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_pool_queued",
			Help: "Calls waiting for a free worker",
		},
	)

	// NATS Metrics
	NATSRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nats_recommend_requests_total",
			Help: "Recommend requests answered over NATS",
		},
		[]string{"result"},
	)

	// Client Metrics (marketplace -> recommendations)
	ClientRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_client_requests_total",
			Help: "Recommend calls issued by the marketplace",
		},
		[]string{"transport", "result"},
	)

	ClientRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendations_client_request_duration_seconds",
			Help:    "Latency of Recommend calls issued by the marketplace",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"transport"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Application Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"service", "version"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordCatalogLoad publishes per-category book counts after startup.
func RecordCatalogLoad(counts map[string]int, duration time.Duration) {
	CatalogBooks.Reset()
	for category, n := range counts {
		CatalogBooks.WithLabelValues(category).Set(float64(n))
	}
	CatalogLoadDuration.Set(duration.Seconds())
}

// RecordRecommendation records one Recommend call. Callers pass a bounded
// category label (the catalog name, or "unknown" for misses).
func RecordRecommendation(category, result string, returned int, duration time.Duration) {
	RecommendRequests.WithLabelValues(category, result).Inc()
	RecommendDuration.Observe(duration.Seconds())
	if result == ResultOK {
		RecommendResultSize.Observe(float64(returned))
	}
}

// RecordNATSRequest counts a Recommend request answered over NATS.
func RecordNATSRequest(result string) {
	NATSRequests.WithLabelValues(result).Inc()
}

// RecordClientRequest records a Recommend call made by the marketplace.
func RecordClientRequest(transport, result string, duration time.Duration) {
	ClientRequests.WithLabelValues(transport, result).Inc()
	ClientRequestDuration.WithLabelValues(transport).Observe(duration.Seconds())
}

// SetAppInfo publishes the running service name and version.
func SetAppInfo(service, version string) {
	AppInfo.WithLabelValues(service, version).Set(1)
}

// StatusLabel converts an HTTP status code to a metric label.
func StatusLabel(code int) string {
	return strconv.Itoa(code)
}
