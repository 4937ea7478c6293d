// Bookshelf - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookshelf

/*
Package middleware provides the chi middleware shared by the recommendations
RPC router and the marketplace router.

# Middleware

  - RequestID: X-Request-ID assignment and logging context propagation
  - PrometheusMetrics: request count, latency and in-flight gauge labeled by
    chi route pattern
  - CORS: go-chi/cors with configured origins

# Usage

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.Security.CORSOrigins)))
	r.Use(middleware.PrometheusMetrics)
*/
package middleware
