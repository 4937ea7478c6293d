// Bookshelf - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookshelf

package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/bookshelf/internal/catalog"
	"github.com/tomtom215/bookshelf/internal/logging"
	"github.com/tomtom215/bookshelf/internal/metrics"
	"github.com/tomtom215/bookshelf/internal/middleware"
	"github.com/tomtom215/bookshelf/internal/models"
	"github.com/tomtom215/bookshelf/internal/recommend"
)

// maxResponseBytes caps how much of a reply is read.
const maxResponseBytes = 1 << 20

// HTTPClient calls POST /api/v1/recommendations.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a client for the service at baseURL, for example
// http://localhost:50051.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// recommendationsEnvelope is the success or error envelope of the endpoint.
type recommendationsEnvelope struct {
	Status string              `json:"status"`
	Data   *recommend.Response `json:"data"`
	Error  *models.APIError    `json:"error"`
}

// Recommend implements Recommender.
func (c *HTTPClient) Recommend(ctx context.Context, userID int64, category string, maxResults int) (books []catalog.Book, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordClientRequest(TransportHTTP, resultLabel(err), time.Since(start))
	}()

	wire, err := newRequest(userID, category, maxResults)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/recommendations", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if id := logging.CorrelationIDFromContext(ctx); id != "" {
		req.Header.Set(middleware.CorrelationIDHeader, id)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var env recommendationsEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode response (HTTP %d): %w", resp.StatusCode, err)
	}

	if env.Error != nil {
		return nil, fromAPIError(env.Error, category)
	}
	if resp.StatusCode != http.StatusOK || env.Data == nil {
		return nil, fmt.Errorf("unexpected response: HTTP %d", resp.StatusCode)
	}

	books = env.Data.Recommendations
	if books == nil {
		books = []catalog.Book{}
	}
	return books, nil
}
