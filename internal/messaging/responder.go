// Bookshelf - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookshelf

package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/tomtom215/bookshelf/internal/catalog"
	"github.com/tomtom215/bookshelf/internal/metrics"
	"github.com/tomtom215/bookshelf/internal/models"
	"github.com/tomtom215/bookshelf/internal/recommend"
	"github.com/tomtom215/bookshelf/internal/validation"
)

// Recommender answers Recommend calls. *recommend.Pool implements it.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
}

// ResponderConfig configures a Responder.
type ResponderConfig struct {
	Subject    string
	QueueGroup string

	// Workers is the number of messages handled concurrently. It should
	// match the pool size. Default: recommend.DefaultWorkers
	Workers int

	// Timeout bounds each Recommend call. Zero means no limit.
	Timeout time.Duration
}

// Responder answers Recommend requests published on a NATS subject.
type Responder struct {
	conn        *nats.Conn
	cfg         ResponderConfig
	recommender Recommender
	catalog     *catalog.Catalog
	logger      zerolog.Logger
	subscribed  atomic.Bool
}

// NewResponder creates a responder. cat resolves category names in
// requests; recommender is normally the worker pool.
func NewResponder(conn *nats.Conn, cfg ResponderConfig, recommender Recommender, cat *catalog.Catalog, logger zerolog.Logger) (*Responder, error) {
	if conn == nil {
		return nil, errors.New("messaging: nil NATS connection")
	}
	if cfg.Subject == "" {
		return nil, errors.New("messaging: subject is required")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = recommend.DefaultWorkers
	}

	return &Responder{
		conn:        conn,
		cfg:         cfg,
		recommender: recommender,
		catalog:     cat,
		logger:      logger.With().Str("component", "nats-responder").Logger(),
	}, nil
}

// Subscribed reports whether the queue subscription is registered with
// the server.
func (r *Responder) Subscribed() bool {
	return r.subscribed.Load()
}

// Serve subscribes and handles requests until ctx is canceled.
// Implements suture.Service.
func (r *Responder) Serve(ctx context.Context) error {
	msgs := make(chan *nats.Msg, r.cfg.Workers*4)
	sub, err := r.conn.ChanQueueSubscribe(r.cfg.Subject, r.cfg.QueueGroup, msgs)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", r.cfg.Subject, err)
	}
	if err := r.conn.Flush(); err != nil {
		_ = sub.Unsubscribe()
		return fmt.Errorf("flush subscription %s: %w", r.cfg.Subject, err)
	}
	r.subscribed.Store(true)

	r.logger.Info().
		Str("subject", r.cfg.Subject).
		Str("queue_group", r.cfg.QueueGroup).
		Int("workers", r.cfg.Workers).
		Msg("NATS responder subscribed")

	var wg sync.WaitGroup
	for i := 0; i < r.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case msg := <-msgs:
					r.handle(ctx, msg)
				}
			}
		}()
	}

	<-ctx.Done()

	r.subscribed.Store(false)
	if err := sub.Unsubscribe(); err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
		r.logger.Warn().Err(err).Msg("NATS unsubscribe failed")
	}
	wg.Wait()

	r.logger.Info().Msg("NATS responder stopped")
	return ctx.Err()
}

// String implements fmt.Stringer for supervisor logs.
func (r *Responder) String() string {
	return "nats-responder"
}

func (r *Responder) handle(ctx context.Context, msg *nats.Msg) {
	start := time.Now()

	var req models.RecommendRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		r.replyError(msg, &models.APIError{Code: models.CodeInvalidRequest, Message: "Invalid JSON request body"}, metrics.ResultInvalid)
		return
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		metrics.RecordRecommendation(metrics.CategoryUnknown, metrics.ResultInvalid, 0, time.Since(start))
		r.replyError(msg, &models.APIError{Code: apiErr.Code, Message: apiErr.Message, Details: apiErr.Details}, metrics.ResultInvalid)
		return
	}

	cat, ok := r.catalog.Resolve(string(req.Category))
	if !ok {
		metrics.RecordRecommendation(metrics.CategoryUnknown, metrics.ResultNotFound, 0, time.Since(start))
		r.replyError(msg, models.RecommendError(recommend.ErrCategoryNotFound), metrics.ResultNotFound)
		return
	}

	callCtx := ctx
	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	resp, err := r.recommender.Recommend(callCtx, recommend.Request{
		UserID:     req.UserID,
		Category:   cat,
		MaxResults: req.MaxResults,
	})
	if err != nil {
		result := metrics.ResultError
		if errors.Is(err, recommend.ErrCategoryNotFound) {
			result = metrics.ResultNotFound
		} else {
			r.logger.Error().Err(err).Str("subject", msg.Subject).Msg("Recommend over NATS failed")
		}
		r.replyError(msg, models.RecommendError(err), result)
		return
	}

	r.reply(msg, models.RecommendReply{Recommendations: resp.Recommendations}, metrics.ResultOK)
}

func (r *Responder) replyError(msg *nats.Msg, apiErr *models.APIError, result string) {
	r.reply(msg, models.RecommendReply{Error: apiErr}, result)
}

func (r *Responder) reply(msg *nats.Msg, body models.RecommendReply, result string) {
	metrics.RecordNATSRequest(result)

	if msg.Reply == "" {
		r.logger.Debug().Str("subject", msg.Subject).Msg("Dropping request without reply subject")
		return
	}

	data, err := json.Marshal(body)
	if err != nil {
		r.logger.Error().Err(err).Msg("Failed to marshal NATS reply")
		return
	}
	if err := msg.Respond(data); err != nil {
		r.logger.Warn().Err(err).Msg("Failed to send NATS reply")
	}
}
