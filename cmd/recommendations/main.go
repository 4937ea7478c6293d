// Bookshelf - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookshelf

// Package main is the entry point for the recommendations service.
//
// The service loads the book catalog once at startup and answers Recommend
// calls with a random selection of distinct titles from one category.
//
// # Startup
//
//  1. Configuration: .env, optional config.yaml, environment (Koanf v2)
//  2. Catalog: parse the JSON catalog and assign sequential book IDs
//  3. Recommendation server and worker pool (10 workers by default)
//  4. NATS (optional): embedded server and request/reply responder
//  5. HTTP server on port 50051: Recommend RPC, categories, health, metrics
//
// A catalog that cannot be loaded is fatal.
//
// # Example Usage
//
//	export CATALOG_PATH=./books.json
//	export LOG_FORMAT=console
//	./recommendations
//
//	curl -s -X POST localhost:50051/api/v1/recommendations \
//	  -d '{"userId":1,"category":"science","maxResults":3}'
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains,
// the responder unsubscribes and the pool finishes in-flight calls.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/tomtom215/bookshelf/internal/api"
	"github.com/tomtom215/bookshelf/internal/catalog"
	"github.com/tomtom215/bookshelf/internal/config"
	"github.com/tomtom215/bookshelf/internal/logging"
	"github.com/tomtom215/bookshelf/internal/messaging"
	"github.com/tomtom215/bookshelf/internal/metrics"
	"github.com/tomtom215/bookshelf/internal/recommend"
	"github.com/tomtom215/bookshelf/internal/supervisor"
	"github.com/tomtom215/bookshelf/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const serviceName = "recommendations"

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
		Str("catalog", cfg.Catalog.Path).
		Str("strategy", cfg.Recommend.Strategy).
		Int("workers", cfg.Recommend.Workers).
		Msg("Starting recommendations service")

	cat := loadCatalog(cfg.Catalog.Path)

	strategy, err := recommend.StrategyByName(cfg.Recommend.Strategy, cfg.Recommend.Seed)
	if err != nil {
		logging.Fatal().Err(err).Msg("Invalid recommendation strategy")
	}
	server, err := recommend.NewServer(cat, strategy, logging.WithComponent("recommend"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation server")
	}
	pool := recommend.NewPool(server, cfg.Recommend.Workers, logging.WithComponent("recommend-pool"))

	tree, err := supervisor.NewSupervisorTree(serviceName, logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddCoreService(pool)

	natsConn := initNATS(cfg, tree, pool, cat)
	if natsConn != nil {
		defer natsConn.Close()
	}

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           api.NewRouter(api.NewHandler(pool, server, pool.Workers(), cfg.Server.Timeout), cfg.Security.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService("recommendations-http", httpServer, 10*time.Second))
	logging.Info().Str("addr", httpServer.Addr).Msg("HTTP server service added")

	run(tree)
}

func loadCatalog(path string) *catalog.Catalog {
	start := time.Now()
	cat, err := catalog.Load(path)
	if err != nil {
		logging.Fatal().Err(err).Str("path", path).Msg("Failed to load catalog")
	}

	counts := make(map[string]int, len(cat.Categories()))
	for _, c := range cat.Categories() {
		counts[cat.Name(c)] = cat.Count(c)
	}
	metrics.RecordCatalogLoad(counts, time.Since(start))

	logging.Info().
		Int("categories", len(counts)).
		Int("books", cat.Len()).
		Dur("duration", time.Since(start)).
		Msg("Catalog loaded")
	return cat
}

// initNATS adds the embedded server and the responder to the messaging
// layer. It returns nil when NATS is disabled.
func initNATS(cfg *config.Config, tree *supervisor.SupervisorTree, pool *recommend.Pool, cat *catalog.Catalog) *nats.Conn {
	if !cfg.NATS.Enabled {
		logging.Info().Msg("NATS transport disabled (NATS_ENABLED=false)")
		return nil
	}

	url := cfg.NATS.URL
	if cfg.NATS.EmbeddedServer {
		embedded, err := messaging.NewEmbeddedServer(messaging.ServerConfig{
			Host: cfg.NATS.Host,
			Port: cfg.NATS.Port,
		})
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to start embedded NATS server")
		}
		tree.AddMessagingService(services.NewEmbeddedNATSService(embedded, 10*time.Second))
		url = embedded.ClientURL()
		logging.Info().Str("url", url).Msg("Embedded NATS server started")
	}

	conn, err := messaging.Connect(url, serviceName)
	if err != nil {
		logging.Fatal().Err(err).Str("url", url).Msg("Failed to connect to NATS")
	}

	responder, err := messaging.NewResponder(conn, messaging.ResponderConfig{
		Subject:    cfg.NATS.Subject,
		QueueGroup: cfg.NATS.QueueGroup,
		Workers:    pool.Workers(),
		Timeout:    cfg.NATS.RequestTimeout,
	}, pool, cat, logging.WithComponent("nats"))
	if err != nil {
		conn.Close()
		logging.Fatal().Err(err).Msg("Failed to create NATS responder")
	}
	tree.AddMessagingService(responder)

	logging.Info().
		Str("subject", cfg.NATS.Subject).
		Str("queue_group", cfg.NATS.QueueGroup).
		Msg("NATS responder added to supervisor tree")
	return conn
}

func run(tree *supervisor.SupervisorTree) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logging.Info().Msg("Starting supervisor tree...")
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

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Recommendations service stopped gracefully")
}
