// Bookshelf - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookshelf

package models

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/bookshelf/internal/recommend"
)

// RecommendError converts a Recommend failure to its wire form. The
// underlying error text is never exposed.
func RecommendError(err error) *APIError {
	switch {
	case errors.Is(err, recommend.ErrCategoryNotFound):
		return &APIError{Code: CodeNotFound, Message: "Category not found"}
	case errors.Is(err, recommend.ErrPoolClosed):
		return &APIError{Code: CodeUnavailable, Message: "Recommendation service is not serving"}
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return &APIError{Code: CodeUnavailable, Message: "Recommendation request timed out"}
	default:
		return &APIError{Code: CodeInternal, Message: "Failed to select recommendations"}
	}
}

// HTTPStatus returns the HTTP status for an error code.
func HTTPStatus(code string) int {
	switch code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidRequest, CodeValidation:
		return http.StatusBadRequest
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
