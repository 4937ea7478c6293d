// Bookshelf - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookshelf

// Package main is the entry point for the marketplace storefront.
//
// The storefront serves a homepage and one page per shelf (philosophy,
// literature, science). Each shelf page asks the recommendations service
// for three titles for user 1.
//
// # Configuration
//
//   - MARKETPLACE_PORT: listen port (default 5000)
//   - RECOMMENDATIONS_HOST: host of the recommendations service (default localhost)
//   - RECOMMENDATIONS_PORT: its HTTP port (default 50051)
//   - RECOMMENDATIONS_TRANSPORT: http or nats (default http)
//   - NATS_URL, NATS_SUBJECT: used when the transport is nats
//
// Calls go through a circuit breaker. While it is open, shelf pages answer
// 503 immediately.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/tomtom215/bookshelf/internal/client"
	"github.com/tomtom215/bookshelf/internal/config"
	"github.com/tomtom215/bookshelf/internal/logging"
	"github.com/tomtom215/bookshelf/internal/marketplace"
	"github.com/tomtom215/bookshelf/internal/messaging"
	"github.com/tomtom215/bookshelf/internal/metrics"
	"github.com/tomtom215/bookshelf/internal/supervisor"
	"github.com/tomtom215/bookshelf/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const serviceName = "marketplace"

func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	metrics.SetAppInfo(serviceName, version)

	logging.Info().
		Str("version", version).
		Str("transport", cfg.Marketplace.Transport).
		Msg("Starting marketplace")

	upstream, conn := newRecommender(cfg)
	if conn != nil {
		defer conn.Close()
	}
	recommender := client.NewCircuitBreakerClient(upstream, client.DefaultBreakerConfig("recommendations"))

	store, err := marketplace.New(recommender, marketplace.Config{
		UserID:      cfg.Marketplace.UserID,
		MaxResults:  cfg.Marketplace.MaxResults,
		CORSOrigins: cfg.Security.CORSOrigins,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create storefront")
	}

	httpServer := &http.Server{
		Addr:              cfg.Marketplace.Addr(),
		Handler:           store.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(serviceName, logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	tree.AddAPIService(services.NewHTTPServerService("marketplace-http", httpServer, 10*time.Second))
	logging.Info().Str("addr", httpServer.Addr).Msg("HTTP server service added")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	errCh := tree.ServeBackground(ctx)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Received shutdown signal, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	logging.Info().Msg("Marketplace stopped gracefully")
}

// newRecommender builds the transport client. The connection is non-nil
// for the nats transport and must be closed on exit.
func newRecommender(cfg *config.Config) (client.Recommender, *nats.Conn) {
	switch cfg.Marketplace.Transport {
	case client.TransportNATS:
		conn, err := messaging.Connect(cfg.NATS.URL, serviceName)
		if err != nil {
			logging.Fatal().Err(err).Str("url", cfg.NATS.URL).Msg("Failed to connect to NATS")
		}
		logging.Info().Str("url", cfg.NATS.URL).Str("subject", cfg.NATS.Subject).Msg("Using NATS recommendations client")
		return client.NewNATSClient(conn, cfg.NATS.Subject, cfg.Marketplace.RequestTimeout), conn

	default:
		url := cfg.RecommendationsURL()
		logging.Info().Str("url", url).Msg("Using HTTP recommendations client")
		return client.NewHTTPClient(url, cfg.Marketplace.RequestTimeout), nil
	}
}
