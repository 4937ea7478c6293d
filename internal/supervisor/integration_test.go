// Bookshelf - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookshelf

package supervisor_test

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/bookshelf/internal/api"
	"github.com/tomtom215/bookshelf/internal/catalog"
	"github.com/tomtom215/bookshelf/internal/recommend"
	"github.com/tomtom215/bookshelf/internal/supervisor"
	"github.com/tomtom215/bookshelf/internal/supervisor/services"
)

const integrationCatalog = `{
	"mapping": ["philosophy", "literature", "science"],
	"categories": {
		"philosophy": ["Meditations", "Ethics", "Being and Time"],
		"science": ["Cosmos"]
	}
}`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()
	return addr
}

// TestRecommendationsTree runs the worker pool and the HTTP API under one
// tree, the way cmd/recommendations does.
func TestRecommendationsTree(t *testing.T) {
	cat, err := catalog.Parse([]byte(integrationCatalog))
	if err != nil {
		t.Fatalf("parse catalog: %v", err)
	}
	server, err := recommend.NewServer(cat, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	pool := recommend.NewPool(server, 2, zerolog.Nop())

	addr := freeAddr(t)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           api.NewRouter(api.NewHandler(pool, server, pool.Workers(), time.Second), nil),
		ReadHeaderTimeout: time.Second,
	}

	tree, err := supervisor.NewSupervisorTree("recommendations", quietLogger(), supervisor.TreeConfig{
		FailureBackoff:  50 * time.Millisecond,
		ShutdownTimeout: time.Second,
	})
	if err != nil {
		t.Fatalf("new tree: %v", err)
	}
	tree.AddCoreService(pool)
	tree.AddAPIService(services.NewHTTPServerService("recommendations-http", httpServer, time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	var resp *http.Response
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		resp, err = http.Post("http://"+addr+"/api/v1/recommendations", "application/json",
			strings.NewReader(`{"userId":1,"category":"science","maxResults":3}`))
		if err == nil && resp.StatusCode == http.StatusOK {
			break
		}
		if resp != nil {
			_ = resp.Body.Close()
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("recommendations endpoint never answered: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("tree did not shut down")
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		t.Errorf("services failed to stop: %v", report)
	}
	if _, err := pool.Recommend(context.Background(), recommend.Request{Category: 0, MaxResults: 1}); !errors.Is(err, recommend.ErrPoolClosed) {
		t.Errorf("Recommend after shutdown = %v, want ErrPoolClosed", err)
	}
}

// TestSupervisorTreeIsolation checks that a crashing messaging service is
// restarted while the real worker pool in the core layer keeps answering.
func TestSupervisorTreeIsolation(t *testing.T) {
	cat, err := catalog.Parse([]byte(integrationCatalog))
	if err != nil {
		t.Fatalf("parse catalog: %v", err)
	}
	server, err := recommend.NewServer(cat, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	pool := recommend.NewPool(server, 2, zerolog.Nop())

	tree, _ := supervisor.NewSupervisorTree("test", quietLogger(), supervisor.TreeConfig{
		FailureThreshold: 10,
		FailureBackoff:   10 * time.Millisecond,
		ShutdownTimeout:  500 * time.Millisecond,
	})

	responder := supervisor.NewStubService("nats-responder").CrashTimes(3)
	httpSvc := supervisor.NewStubService("recommendations-http")

	tree.AddCoreService(pool)
	tree.AddMessagingService(responder)
	tree.AddAPIService(httpSvc)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for server.State() != recommend.StateServing {
		if time.Now().After(deadline) {
			t.Fatal("worker pool never started serving")
		}
		time.Sleep(5 * time.Millisecond)
	}

	for i := 0; i < 4; i++ {
		select {
		case <-responder.Started():
		case <-time.After(2 * time.Second):
			t.Fatalf("responder run %d never started", i+1)
		}
		resp, err := pool.Recommend(context.Background(), recommend.Request{Category: 0, MaxResults: 2})
		if err != nil {
			t.Fatalf("Recommend during responder restarts: %v", err)
		}
		if len(resp.Recommendations) != 2 {
			t.Errorf("got %d books, want 2", len(resp.Recommendations))
		}
	}

	if server.State() != recommend.StateServing {
		t.Errorf("server state = %v, want serving", server.State())
	}
	if httpSvc.Starts() != 1 {
		t.Errorf("api service restarted: %d starts", httpSvc.Starts())
	}

	cancel()
	select {
	case <-errCh:
	case <-time.After(2 * time.Second):
		t.Error("tree did not shut down")
	}
}

func TestSupervisorTreeEmpty(t *testing.T) {
	tree, _ := supervisor.NewSupervisorTree("empty", quietLogger(), supervisor.TreeConfig{
		ShutdownTimeout: 500 * time.Millisecond,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	select {
	case err := <-tree.ServeBackground(ctx):
		if err != nil && !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(time.Second):
		t.Error("tree did not shut down")
	}
}
