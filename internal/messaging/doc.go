// Bookshelf - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookshelf

/*
Package messaging serves Recommend over NATS request/reply.

The recommendations binary can answer Recommend on a NATS subject in
addition to HTTP. Requests carry the same JSON body as
POST /api/v1/recommendations; replies carry either a recommendations
array or an error object:

	request  {"userId": 1, "category": "science", "maxResults": 2}
	reply    {"recommendations": [{"id": 6, "title": "Cosmos"}]}
	reply    {"error": {"code": "NOT_FOUND", "message": "Category not found"}}

Responders join a queue group, so several recommendations processes can
share one subject. A Responder reads from a buffered channel with one
goroutine per pool worker, which keeps NATS delivery from serializing
calls that the worker pool could run in parallel.

EmbeddedServer runs nats-server in process for single-host deployments.
JetStream is disabled; request/reply needs only core NATS.
*/
package messaging
