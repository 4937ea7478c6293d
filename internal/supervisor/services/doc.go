// Bookshelf - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookshelf

/*
Package services provides suture.Service wrappers for components whose
lifecycle does not already match Serve(ctx) error.

	type Service interface {
	    Serve(ctx context.Context) error
	}

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server and converts ListenAndServe to Serve
  - Graceful Shutdown with a configurable drain timeout
  - Used for the recommendations API and the marketplace storefront

Embedded NATS (EmbeddedNATSService):
  - Owns a started messaging.EmbeddedServer
  - Shuts it down when the tree stops
  - Reports an unexpected exit with suture.ErrDoNotRestart

The worker pool (recommend.Pool) and the NATS responder
(messaging.Responder) implement suture.Service directly and need no
wrapper.

# Error Handling

Returning an error from Serve makes suture restart the service with
backoff. Returning ctx.Err() after cancellation is a clean stop.
*/
package services
