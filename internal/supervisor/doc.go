// Bookshelf - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookshelf

/*
Package supervisor provides process supervision for the bookshelf binaries
using suture v4.

# Overview

Each binary builds one tree with three layers:

	RootSupervisor ("recommendations")
	├── CoreSupervisor ("core-layer")
	│   └── recommend.Pool
	├── MessagingSupervisor ("messaging-layer")
	│   ├── EmbeddedNATSService (if nats.embedded)
	│   └── messaging.Responder (if nats.enabled)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

The marketplace binary uses only the api layer.

A crash in one layer restarts that layer's services with backoff. The
other layers keep running.

# Usage Example

	handler := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	tree, err := supervisor.NewSupervisorTree("recommendations", handler, supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}

	tree.AddCoreService(pool)
	tree.AddAPIService(services.NewHTTPServerService("recommendations-http", httpServer, 10*time.Second))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	errCh := tree.ServeBackground(ctx)
	<-ctx.Done()
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

# Configuration

TreeConfig mirrors suture.Spec:

  - FailureThreshold: failures before backoff (default 5)
  - FailureDecay: seconds for the failure count to decay (default 30)
  - FailureBackoff: wait after the threshold is hit (default 15s)
  - ShutdownTimeout: per-service stop timeout (default 10s)

# Service Contract

Services implement suture.Service:

	Serve(ctx context.Context) error

Return ctx.Err() after cancellation. Return suture.ErrDoNotRestart (or an
error wrapping it) when a restart cannot help. Any other error is a
failure and triggers a restart.

# Logging

Supervisor events go through sutureslog to the slog logger passed to
NewSupervisorTree. cmd/ bridges that logger to zerolog.

# See Also

  - internal/supervisor/services: wrappers for http.Server and the embedded NATS server
  - github.com/thejerf/suture/v4
*/
package supervisor
