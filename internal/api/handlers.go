// Bookshelf - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookshelf

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/bookshelf/internal/logging"
	"github.com/tomtom215/bookshelf/internal/metrics"
	"github.com/tomtom215/bookshelf/internal/models"
	"github.com/tomtom215/bookshelf/internal/recommend"
	"github.com/tomtom215/bookshelf/internal/validation"
)

// Recommend returns up to maxResults distinct books from one category.
//
// @Summary Recommend books
// @Description Uniform random sample without replacement from the requested category
// @Tags Recommendations
// @Accept json
// @Produce json
// @Param request body models.RecommendRequest true "userId, category and maxResults"
// @Success 200 {object} models.APIResponse{data=recommend.Response}
// @Failure 400 {object} models.APIResponse "Malformed or invalid request"
// @Failure 404 {object} models.APIResponse "Category not found"
// @Failure 503 {object} models.APIResponse "Worker pool not running"
// @Router /api/v1/recommendations [post]
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.RecommendRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(r.Context(), w, http.StatusBadRequest, models.CodeInvalidRequest, "Invalid JSON request body", err)
		return
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, verr)
		metrics.RecordRecommendation(metrics.CategoryUnknown, metrics.ResultInvalid, 0, time.Since(start))
		return
	}

	cat, ok := h.server.Catalog().Resolve(string(req.Category))
	if !ok {
		err := &recommend.NotFoundError{Name: string(req.Category)}
		metrics.RecordRecommendation(metrics.CategoryUnknown, metrics.ResultNotFound, 0, time.Since(start))
		respondError(r.Context(), w, http.StatusNotFound, models.CodeNotFound, "Category not found", err)
		return
	}

	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	resp, err := h.recommender.Recommend(ctx, recommend.Request{
		UserID:     req.UserID,
		Category:   cat,
		MaxResults: req.MaxResults,
	})
	if err != nil {
		apiErr := models.RecommendError(err)
		respondError(r.Context(), w, models.HTTPStatus(apiErr.Code), apiErr.Code, apiErr.Message, err)
		return
	}

	logging.Ctx(r.Context()).Debug().
		Int64("user_id", req.UserID).
		Str("category", h.server.Catalog().Name(cat)).
		Int("returned", len(resp.Recommendations)).
		Msg("Recommendations served")

	respondSuccess(w, resp, start)
}

// Categories lists the loaded categories with their enum value and size.
//
// @Summary List categories
// @Tags Recommendations
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.CategoriesData}
// @Router /api/v1/categories [get]
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	cat := h.server.Catalog()

	order := cat.Categories()
	summaries := make([]models.CategorySummary, 0, len(order))
	for _, c := range order {
		summaries = append(summaries, models.CategorySummary{
			ID:    int(c),
			Name:  cat.Name(c),
			Books: cat.Count(c),
		})
	}

	respondSuccess(w, models.CategoriesData{
		Categories: summaries,
		TotalBooks: cat.Len(),
	}, start)
}

// HealthLive reports that the process is up.
//
// @Summary Liveness check
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthStatus}
// @Router /api/v1/health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, models.HealthStatus{Status: "alive"}, time.Now())
}

// HealthReady reports whether Recommend calls are being answered.
//
// @Summary Readiness check
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthStatus}
// @Failure 503 {object} models.APIResponse{data=models.HealthStatus}
// @Router /api/v1/health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	state := h.server.State()

	health := models.HealthStatus{
		Status:   "ready",
		State:    state.String(),
		Strategy: h.server.Strategy().Name(),
		Workers:  h.workers,
	}

	if state != recommend.StateServing {
		health.Status = "not_ready"
		respondJSON(w, http.StatusServiceUnavailable, &models.APIResponse{
			Status:   models.StatusError,
			Data:     health,
			Metadata: models.Metadata{Timestamp: time.Now()},
			Error: &models.APIError{
				Code:    models.CodeUnavailable,
				Message: "Worker pool is not serving",
			},
		})
		return
	}

	respondSuccess(w, health, start)
}
