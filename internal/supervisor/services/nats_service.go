// Bookshelf - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookshelf

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/thejerf/suture/v4"
)

// ErrServerStopped is returned when the embedded server exits on its own.
var ErrServerStopped = errors.New("embedded NATS server stopped unexpectedly")

// NATSServer matches the *messaging.EmbeddedServer lifecycle.
type NATSServer interface {
	IsRunning() bool
	Shutdown(ctx context.Context) error
}

// EmbeddedNATSService owns an already-started embedded NATS server and
// shuts it down when the tree stops. The server is started before the
// tree so that responders can connect during their first Serve.
type EmbeddedNATSService struct {
	server          NATSServer
	shutdownTimeout time.Duration
	pollInterval    time.Duration
	name            string
}

// NewEmbeddedNATSService wraps server. A non-positive shutdownTimeout
// defaults to 10s.
func NewEmbeddedNATSService(server NATSServer, shutdownTimeout time.Duration) *EmbeddedNATSService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &EmbeddedNATSService{
		server:          server,
		shutdownTimeout: shutdownTimeout,
		pollInterval:    time.Second,
		name:            "nats-embedded-server",
	}
}

// Serve implements suture.Service. The server cannot be restarted in
// place, so an unexpected exit is reported as a permanent failure.
func (s *EmbeddedNATSService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
			defer cancel()
			if err := s.server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("NATS server shutdown failed: %w", err)
			}
			return ctx.Err()

		case <-ticker.C:
			if !s.server.IsRunning() {
				return fmt.Errorf("%w: %w", ErrServerStopped, suture.ErrDoNotRestart)
			}
		}
	}
}

// String implements fmt.Stringer for supervisor logs.
func (s *EmbeddedNATSService) String() string {
	return s.name
}
