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

	"github.com/goccy/go-json"
	"github.com/nats-io/nats.go"

	"github.com/tomtom215/bookshelf/internal/catalog"
	"github.com/tomtom215/bookshelf/internal/metrics"
	"github.com/tomtom215/bookshelf/internal/models"
)

// NATSClient issues Recommend as a NATS request.
type NATSClient struct {
	conn    *nats.Conn
	subject string
	timeout time.Duration
}

// NewNATSClient creates a client publishing on subject. timeout applies
// when ctx carries no deadline.
func NewNATSClient(conn *nats.Conn, subject string, timeout time.Duration) *NATSClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &NATSClient{conn: conn, subject: subject, timeout: timeout}
}

// Recommend implements Recommender.
func (c *NATSClient) Recommend(ctx context.Context, userID int64, category string, maxResults int) (books []catalog.Book, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordClientRequest(TransportNATS, resultLabel(err), time.Since(start))
	}()

	wire, err := newRequest(userID, category, maxResults)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	msg, err := c.conn.RequestWithContext(ctx, c.subject, data)
	if err != nil {
		if errors.Is(err, nats.ErrNoResponders) {
			return nil, fmt.Errorf("%w: no responders on %s", ErrUnavailable, c.subject)
		}
		return nil, fmt.Errorf("NATS request failed: %w", err)
	}

	var reply models.RecommendReply
	if err := json.Unmarshal(msg.Data, &reply); err != nil {
		return nil, fmt.Errorf("decode reply: %w", err)
	}
	if reply.Error != nil {
		return nil, fromAPIError(reply.Error, category)
	}

	books = reply.Recommendations
	if books == nil {
		books = []catalog.Book{}
	}
	return books, nil
}
