// Bookshelf - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookshelf

package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/bookshelf/internal/catalog"
	"github.com/tomtom215/bookshelf/internal/metrics"
	"github.com/tomtom215/bookshelf/internal/models"
	"github.com/tomtom215/bookshelf/internal/recommend"
	"github.com/tomtom215/bookshelf/internal/validation"
)

// Transport names used in metrics and configuration.
const (
	TransportHTTP = "http"
	TransportNATS = "nats"
)

// ErrUnavailable is returned when the service reports it is not serving.
var ErrUnavailable = errors.New("recommendations service unavailable")

// Recommender requests book recommendations. category is a catalog name
// or a decimal enum value.
type Recommender interface {
	Recommend(ctx context.Context, userID int64, category string, maxResults int) ([]catalog.Book, error)
}

// RemoteError is an error reported by the recommendations service.
type RemoteError struct {
	Code    string
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("recommendations service: %s: %s", e.Code, e.Message)
}

// IsCallerError reports whether err was caused by the request itself
// rather than the service being unhealthy.
func IsCallerError(err error) bool {
	if errors.Is(err, recommend.ErrCategoryNotFound) {
		return true
	}
	var verr *validation.RequestValidationError
	if errors.As(err, &verr) {
		return true
	}
	var remote *RemoteError
	if errors.As(err, &remote) {
		return remote.Code == models.CodeValidation || remote.Code == models.CodeInvalidRequest
	}
	return false
}

// newRequest builds and validates the wire request so that malformed calls
// fail locally instead of costing a round trip.
func newRequest(userID int64, category string, maxResults int) (models.RecommendRequest, error) {
	req := models.RecommendRequest{
		UserID:     userID,
		Category:   models.CategoryRef(category),
		MaxResults: maxResults,
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		return req, verr
	}
	return req, nil
}

// fromAPIError converts a wire error into a Go error.
func fromAPIError(apiErr *models.APIError, category string) error {
	switch apiErr.Code {
	case models.CodeNotFound:
		return &recommend.NotFoundError{Name: category}
	case models.CodeUnavailable:
		return fmt.Errorf("%w: %s", ErrUnavailable, apiErr.Message)
	default:
		return &RemoteError{Code: apiErr.Code, Message: apiErr.Message}
	}
}

// resultLabel maps a call outcome to the client metric result label.
func resultLabel(err error) string {
	switch {
	case err == nil:
		return metrics.ResultOK
	case errors.Is(err, recommend.ErrCategoryNotFound):
		return metrics.ResultNotFound
	case IsCallerError(err):
		return metrics.ResultInvalid
	default:
		return metrics.ResultError
	}
}
