// Bookshelf - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookshelf

package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/bookshelf/internal/catalog"
	"github.com/tomtom215/bookshelf/internal/logging"
	"github.com/tomtom215/bookshelf/internal/metrics"
)

// BreakerConfig tunes CircuitBreakerClient.
type BreakerConfig struct {
	// Name labels the breaker in metrics and logs.
	Name string

	// MinRequests is the number of calls in one Interval before the
	// failure ratio is considered. Default: 10
	MinRequests uint32

	// FailureRatio opens the circuit once reached. Default: 0.6
	FailureRatio float64

	// Interval resets the counts while closed. Default: 1m
	Interval time.Duration

	// Timeout is how long the circuit stays open before probing. Default: 30s
	Timeout time.Duration
}

// DefaultBreakerConfig returns the storefront breaker settings.
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:         name,
		MinRequests:  10,
		FailureRatio: 0.6,
		Interval:     time.Minute,
		Timeout:      30 * time.Second,
	}
}

// CircuitBreakerClient wraps a Recommender with a circuit breaker.
type CircuitBreakerClient struct {
	next Recommender
	cb   *gobreaker.CircuitBreaker[[]catalog.Book]
	name string
}

// NewCircuitBreakerClient wraps next. Zero fields in cfg take defaults.
func NewCircuitBreakerClient(next Recommender, cfg BreakerConfig) *CircuitBreakerClient {
	def := DefaultBreakerConfig(cfg.Name)
	if cfg.Name == "" {
		cfg.Name = "recommendations"
	}
	if cfg.MinRequests == 0 {
		cfg.MinRequests = def.MinRequests
	}
	if cfg.FailureRatio <= 0 {
		cfg.FailureRatio = def.FailureRatio
	}
	if cfg.Interval <= 0 {
		cfg.Interval = def.Interval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}

	metrics.CircuitBreakerState.WithLabelValues(cfg.Name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cfg.Name).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]catalog.Book](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 3,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			if ratio >= cfg.FailureRatio {
				logging.Warn().
					Str("breaker", cfg.Name).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", ratio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
				return true
			}
			return false
		},

		// Unknown categories and rejected requests say nothing about
		// service health.
		IsSuccessful: func(err error) bool {
			return err == nil || IsCallerError(err)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", stateToString(from)).
				Str("to", stateToString(to)).
				Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, stateToString(from), stateToString(to)).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &CircuitBreakerClient{next: next, cb: cb, name: cfg.Name}
}

// Recommend implements Recommender. While the circuit is open it fails
// fast with an error matching ErrUnavailable.
func (c *CircuitBreakerClient) Recommend(ctx context.Context, userID int64, category string, maxResults int) ([]catalog.Book, error) {
	books, err := c.cb.Execute(func() ([]catalog.Book, error) {
		return c.next.Recommend(ctx, userID, category, maxResults)
	})

	switch {
	case err == nil:
		metrics.CircuitBreakerRequests.WithLabelValues(c.name, "success").Inc()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(c.name).Set(0)
		return books, nil

	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(c.name, "rejected").Inc()
		logging.Debug().Err(err).Str("breaker", c.name).Msg("[CIRCUIT BREAKER] Request rejected")
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)

	case IsCallerError(err):
		metrics.CircuitBreakerRequests.WithLabelValues(c.name, "success").Inc()
		return nil, err

	default:
		metrics.CircuitBreakerRequests.WithLabelValues(c.name, "failure").Inc()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(c.name).Set(float64(c.cb.Counts().ConsecutiveFailures))
		return nil, err
	}
}

// State returns the breaker state: closed, half-open or open.
func (c *CircuitBreakerClient) State() string {
	return stateToString(c.cb.State())
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
