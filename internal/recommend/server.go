// Bookshelf - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookshelf

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/bookshelf/internal/catalog"
	"github.com/tomtom215/bookshelf/internal/metrics"
)

// Server answers Recommend calls against an immutable catalog.
// It is safe for concurrent use.
type Server struct {
	catalog  *catalog.Catalog
	strategy Strategy
	logger   zerolog.Logger
	state    atomic.Int32
}

// NewServer creates a server over cat. A nil strategy selects random
// sampling. Strategies that report Implemented() == false are refused.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewServer(cat *catalog.Catalog, strategy Strategy, logger zerolog.Logger) (*Server, error) {
	if cat == nil {
		return nil, errors.New("recommend: catalog is required")
	}
	if strategy == nil {
		strategy = NewRandomStrategy()
	}
	if !strategy.Implemented() {
		return nil, fmt.Errorf("%w: %s", ErrStrategyNotImplemented, strategy.Name())
	}

	return &Server{
		catalog:  cat,
		strategy: strategy,
		logger:   logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Catalog returns the catalog the server draws from.
func (s *Server) Catalog() *catalog.Catalog {
	return s.catalog
}

// Strategy returns the active selection strategy.
func (s *Server) Strategy() Strategy {
	return s.strategy
}

// State reports the lifecycle state.
func (s *Server) State() State {
	return State(s.state.Load())
}

func (s *Server) markServing() {
	if s.state.CompareAndSwap(int32(StateInitializing), int32(StateServing)) {
		s.logger.Info().
			Str("strategy", s.strategy.Name()).
			Int("categories", len(s.catalog.Categories())).
			Int("books", s.catalog.Len()).
			Msg("Recommendation server is serving")
	}
}

// Recommend returns up to req.MaxResults distinct books from req.Category.
// An absent category yields a *NotFoundError, never an empty list.
func (s *Server) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	books, ok := s.catalog.Books(req.Category)
	if !ok {
		metrics.RecordRecommendation(metrics.CategoryUnknown, metrics.ResultNotFound, 0, time.Since(start))
		s.logger.Debug().
			Int64("user_id", req.UserID).
			Int("category", int(req.Category)).
			Msg("Category not found")
		return nil, &NotFoundError{Category: req.Category, Name: s.catalog.Name(req.Category)}
	}

	label := s.catalog.Name(req.Category)

	if req.MaxResults <= 0 {
		metrics.RecordRecommendation(label, metrics.ResultOK, 0, time.Since(start))
		return &Response{Recommendations: []catalog.Book{}}, nil
	}

	picked, err := s.strategy.Select(ctx, Selection{
		UserID:   req.UserID,
		Category: req.Category,
		Books:    books,
		N:        min(req.MaxResults, len(books)),
	})
	if err != nil {
		metrics.RecordRecommendation(label, metrics.ResultError, 0, time.Since(start))
		return nil, fmt.Errorf("select recommendations: %w", err)
	}

	metrics.RecordRecommendation(label, metrics.ResultOK, len(picked), time.Since(start))
	s.logger.Debug().
		Int64("user_id", req.UserID).
		Str("category", label).
		Int("max_results", req.MaxResults).
		Int("returned", len(picked)).
		Msg("Recommendations selected")

	return &Response{Recommendations: picked}, nil
}
