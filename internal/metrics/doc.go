// Bookshelf - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookshelf

/*
Package metrics provides Prometheus metrics for both Bookshelf services.

All collectors are registered on the default registry through promauto and
exported at /metrics by each service's router:

	curl http://localhost:50051/metrics
	curl http://localhost:5000/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Requests by method, endpoint and status_code (counter)
  - api_request_duration_seconds: Request latency by method and endpoint (histogram)
  - api_active_requests: In-flight requests (gauge)

Catalog Metrics:
  - catalog_books: Books per category after load (gauge)
  - catalog_load_duration_seconds: Startup load time (gauge)

Recommendation Metrics:
  - recommend_requests_total: Calls by category and result (counter)
    Results: ok, not_found, invalid, error
  - recommend_duration_seconds: Time spent selecting (histogram)
  - recommend_result_size: Books returned per successful call (histogram)

Worker Pool Metrics:
  - worker_pool_size, worker_pool_busy, worker_pool_queued (gauges)

Transport Metrics:
  - nats_recommend_requests_total: NATS requests by result (counter)
  - recommendations_client_requests_total: Marketplace calls by transport and result (counter)
  - recommendations_client_request_duration_seconds: Marketplace call latency (histogram)

Circuit Breaker Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)
  - circuit_breaker_requests_total: Requests by name and result (counter)
  - circuit_breaker_consecutive_failures (gauge)
  - circuit_breaker_state_transitions_total (counter)

Category labels are always catalog mapping names or "unknown", which keeps
label cardinality bounded by the catalog file.
*/
package metrics
