// Bookshelf - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookshelf

/*
Package api exposes the Recommend operation over HTTP/JSON.

# Endpoints

	POST /api/v1/recommendations   Recommend(userId, category, maxResults)
	GET  /api/v1/categories        loaded categories with book counts
	GET  /api/v1/health/live       liveness check
	GET  /api/v1/health/ready      200 once the worker pool is serving
	GET  /metrics                  Prometheus exposition

# Request

	{"userId": 1, "category": "science", "maxResults": 2}

category is either a catalog name (case-insensitive) or the integer enum
value. A negative maxResults is accepted and yields an empty list.

# Errors

All responses use the models.APIResponse envelope. Error codes:

  - NOT_FOUND (404): the category is absent from the catalog
  - INVALID_REQUEST (400): body is not valid JSON
  - VALIDATION_ERROR (400): missing or malformed fields
  - SERVICE_UNAVAILABLE (503): worker pool stopped or call timed out
  - INTERNAL_ERROR (500): anything else
*/
package api
