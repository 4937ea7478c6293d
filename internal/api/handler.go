// Bookshelf - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookshelf

package api

import (
	"context"
	"time"

	"github.com/tomtom215/bookshelf/internal/recommend"
)

// Recommender answers Recommend calls. *recommend.Pool implements it.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
}

// Handler serves the recommendations HTTP API.
type Handler struct {
	recommender Recommender
	server      *recommend.Server
	workers     int
	timeout     time.Duration
}

// NewHandler creates a handler. server supplies the catalog and lifecycle
// state; recommender is normally the worker pool wrapping the same server.
// A zero timeout leaves request deadlines to the caller.
func NewHandler(recommender Recommender, server *recommend.Server, workers int, timeout time.Duration) *Handler {
	return &Handler{
		recommender: recommender,
		server:      server,
		workers:     workers,
		timeout:     timeout,
	}
}
