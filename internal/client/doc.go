// Bookshelf - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookshelf

/*
Package client calls the recommendations service from the marketplace.

Two transports implement Recommender:

  - HTTPClient posts to /api/v1/recommendations
  - NATSClient issues a request on the recommend subject

CircuitBreakerClient wraps either one with sony/gobreaker so that a
failing recommendations service is skipped quickly instead of holding
every storefront page for the full request timeout. Caller errors such
as an unknown category or a rejected request do not count as failures.

A category absent from the catalog surfaces as an error matching
recommend.ErrCategoryNotFound on every transport.
*/
package client
