// Bookshelf - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookshelf

package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestRecordAPIRequest tests API request metric recording
func TestRecordAPIRequest(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		endpoint   string
		statusCode string
		duration   time.Duration
	}{
		{"successful recommendation", "POST", "/api/v1/recommendations", "200", 2 * time.Millisecond},
		{"unknown category", "POST", "/api/v1/recommendations", "404", time.Millisecond},
		{"bad request", "POST", "/api/v1/recommendations", "400", time.Millisecond},
		{"category listing", "GET", "/api/v1/categories", "200", time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode))
			RecordAPIRequest(tt.method, tt.endpoint, tt.statusCode, tt.duration)
			after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode))
			if after != before+1 {
				t.Errorf("api_requests_total = %v, want %v", after, before+1)
			}
		})
	}
}

// TestTrackActiveRequest_RequestLifecycle simulates a burst of requests
func TestTrackActiveRequest_RequestLifecycle(t *testing.T) {
	start := testutil.ToFloat64(APIActiveRequests)

	for i := 0; i < 10; i++ {
		TrackActiveRequest(true)
	}
	if got := testutil.ToFloat64(APIActiveRequests); got != start+10 {
		t.Errorf("active requests = %v, want %v", got, start+10)
	}

	for i := 0; i < 10; i++ {
		TrackActiveRequest(false)
	}
	if got := testutil.ToFloat64(APIActiveRequests); got != start {
		t.Errorf("active requests = %v, want %v", got, start)
	}
}

func TestRecordCatalogLoad(t *testing.T) {
	RecordCatalogLoad(map[string]int{"philosophy": 4, "science": 2}, 3*time.Millisecond)

	if got := testutil.ToFloat64(CatalogBooks.WithLabelValues("philosophy")); got != 4 {
		t.Errorf("catalog_books{philosophy} = %v, want 4", got)
	}
	if got := testutil.ToFloat64(CatalogBooks.WithLabelValues("science")); got != 2 {
		t.Errorf("catalog_books{science} = %v, want 2", got)
	}

	// A reload replaces stale categories.
	RecordCatalogLoad(map[string]int{"science": 1}, time.Millisecond)
	if got := testutil.CollectAndCount(CatalogBooks); got != 1 {
		t.Errorf("catalog_books series = %d, want 1", got)
	}
}

func TestRecordRecommendation(t *testing.T) {
	tests := []struct {
		category string
		result   string
		returned int
	}{
		{"science", ResultOK, 3},
		{"science", ResultOK, 0},
		{"unknown", ResultNotFound, 0},
		{"literature", ResultError, 0},
	}

	for _, tt := range tests {
		t.Run(tt.category+"/"+tt.result, func(t *testing.T) {
			counter := RecommendRequests.WithLabelValues(tt.category, tt.result)
			before := testutil.ToFloat64(counter)
			RecordRecommendation(tt.category, tt.result, tt.returned, 50*time.Microsecond)
			if got := testutil.ToFloat64(counter); got != before+1 {
				t.Errorf("recommend_requests_total = %v, want %v", got, before+1)
			}
		})
	}
}

func TestRecordTransportMetrics(t *testing.T) {
	before := testutil.ToFloat64(NATSRequests.WithLabelValues(ResultOK))
	RecordNATSRequest(ResultOK)
	if got := testutil.ToFloat64(NATSRequests.WithLabelValues(ResultOK)); got != before+1 {
		t.Errorf("nats_recommend_requests_total = %v, want %v", got, before+1)
	}

	before = testutil.ToFloat64(ClientRequests.WithLabelValues("http", ResultNotFound))
	RecordClientRequest("http", ResultNotFound, 4*time.Millisecond)
	if got := testutil.ToFloat64(ClientRequests.WithLabelValues("http", ResultNotFound)); got != before+1 {
		t.Errorf("recommendations_client_requests_total = %v, want %v", got, before+1)
	}
}

// TestCircuitBreakerMetrics tests circuit breaker metric recording
func TestCircuitBreakerMetrics(t *testing.T) {
	cbName := "recommendations"

	CircuitBreakerState.WithLabelValues(cbName).Set(2)
	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues(cbName)); got != 2 {
		t.Errorf("circuit_breaker_state = %v, want 2", got)
	}

	CircuitBreakerRequests.WithLabelValues(cbName, "success").Inc()
	CircuitBreakerRequests.WithLabelValues(cbName, "failure").Inc()
	CircuitBreakerRequests.WithLabelValues(cbName, "rejected").Inc()
	CircuitBreakerConsecutiveFailures.WithLabelValues(cbName).Set(5)
	CircuitBreakerTransitions.WithLabelValues(cbName, "closed", "open").Inc()
}

func TestStatusLabel(t *testing.T) {
	if got := StatusLabel(404); got != "404" {
		t.Errorf("StatusLabel(404) = %q", got)
	}
}

func TestConcurrentMetricRecording(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			RecordRecommendation("philosophy", ResultOK, 3, time.Microsecond)
			RecordAPIRequest("POST", "/api/v1/recommendations", "200", time.Millisecond)
			TrackActiveRequest(true)
			TrackActiveRequest(false)
		}()
	}
	wg.Wait()
}

func TestMetricsRegistration(t *testing.T) {
	collectors := []prometheus.Collector{
		APIRequestsTotal,
		APIRequestDuration,
		APIActiveRequests,
		CatalogBooks,
		CatalogLoadDuration,
		RecommendRequests,
		RecommendDuration,
		RecommendResultSize,
		WorkerPoolSize,
		WorkerPoolBusy,
		WorkerPoolQueued,
		NATSRequests,
		ClientRequests,
		ClientRequestDuration,
		CircuitBreakerState,
		CircuitBreakerRequests,
		CircuitBreakerConsecutiveFailures,
		CircuitBreakerTransitions,
		AppInfo,
	}

	for _, c := range collectors {
		ch := make(chan *prometheus.Desc, 10)
		c.Describe(ch)
		close(ch)

		count := 0
		for range ch {
			count++
		}
		if count == 0 {
			t.Errorf("collector has no descriptors")
		}
	}
}

// TestMetricGathering tests that metrics can be gathered using testutil
func TestMetricGathering(t *testing.T) {
	SetAppInfo("recommendations", "test")
	RecordAPIRequest("GET", "/test", "200", time.Millisecond)

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Logf("Lint errors (may be expected): %v", err)
	}
	for _, p := range problems {
		t.Logf("Metric lint problem: %s", p.Text)
	}
}

func BenchmarkRecordRecommendation(b *testing.B) {
	for i := 0; i < b.N; i++ {
		RecordRecommendation("science", ResultOK, 3, time.Microsecond)
	}
}
