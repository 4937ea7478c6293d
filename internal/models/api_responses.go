// Bookshelf - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookshelf

// Package models holds the JSON shapes shared by the HTTP API and its
// clients.
package models

import (
	"time"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error codes returned in APIError.Code.
const (
	CodeNotFound       = "NOT_FOUND"
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeValidation     = "VALIDATION_ERROR"
	CodeInternal       = "INTERNAL_ERROR"
	CodeUnavailable    = "SERVICE_UNAVAILABLE"
)

// APIResponse wraps every HTTP API response.
//
//	{
//	  "status": "success",
//	  "data": {"recommendations": [{"id": 3, "title": "Cosmos"}]},
//	  "metadata": {"timestamp": "2026-10-19T12:00:00Z", "query_time_ms": 0}
//	}
//
//	{
//	  "status": "error",
//	  "data": null,
//	  "metadata": {"timestamp": "2026-10-19T12:00:00Z"},
//	  "error": {"code": "NOT_FOUND", "message": "Category not found"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries response timing.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError is the machine-readable error body.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// CategorySummary describes one loaded category.
type CategorySummary struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Books int    `json:"books"`
}

// CategoriesData is the payload of GET /api/v1/categories.
type CategoriesData struct {
	Categories []CategorySummary `json:"categories"`
	TotalBooks int               `json:"total_books"`
}

// HealthStatus is the payload of the health endpoints.
type HealthStatus struct {
	Status   string `json:"status"`
	State    string `json:"state,omitempty"`
	Strategy string `json:"strategy,omitempty"`
	Workers  int    `json:"workers,omitempty"`
}
