// Bookshelf - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookshelf

package recommend

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/tomtom215/bookshelf/internal/metrics"
)

// DefaultWorkers is the number of concurrent Recommend calls served.
const DefaultWorkers = 10

type result struct {
	resp *Response
	err  error
}

type job struct {
	ctx   context.Context
	req   Request
	reply chan result
}

// Pool bounds concurrent Recommend calls to a fixed number of workers.
// Calls beyond that block until a worker frees up.
//
// Pool implements suture.Service: workers run only while Serve is active.
type Pool struct {
	server  *Server
	workers int
	jobs    chan job
	logger  zerolog.Logger
	busy    atomic.Int64
	queued  atomic.Int64

	mu   sync.Mutex
	stop chan struct{} // nil while stopped
}

// NewPool creates a pool of workers dispatching to server. workers <= 0
// selects DefaultWorkers.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPool(server *Server, workers int, logger zerolog.Logger) *Pool {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Pool{
		server:  server,
		workers: workers,
		jobs:    make(chan job),
		logger:  logger.With().Str("component", "recommend-pool").Logger(),
	}
}

// Workers returns the configured worker count.
func (p *Pool) Workers() int {
	return p.workers
}

// Server returns the server the pool dispatches to.
func (p *Pool) Server() *Server {
	return p.server
}

// Serve starts the workers and blocks until ctx is canceled. In-flight
// calls finish before Serve returns.
func (p *Pool) Serve(ctx context.Context) error {
	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.work(ctx)
		}()
	}

	stop := make(chan struct{})
	p.mu.Lock()
	p.stop = stop
	p.mu.Unlock()

	metrics.WorkerPoolSize.Set(float64(p.workers))
	p.server.markServing()
	p.logger.Info().Int("workers", p.workers).Msg("Worker pool started")

	<-ctx.Done()
	p.mu.Lock()
	p.stop = nil
	p.mu.Unlock()
	close(stop)
	wg.Wait()

	p.logger.Info().Msg("Worker pool stopped")
	return ctx.Err()
}

func (p *Pool) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-p.jobs:
			p.run(j)
		}
	}
}

func (p *Pool) run(j job) {
	if err := j.ctx.Err(); err != nil {
		j.reply <- result{err: err}
		return
	}

	metrics.WorkerPoolBusy.Set(float64(p.busy.Add(1)))
	resp, err := p.server.Recommend(j.ctx, j.req)
	metrics.WorkerPoolBusy.Set(float64(p.busy.Add(-1)))

	j.reply <- result{resp: resp, err: err}
}

// Recommend submits req to the pool and waits for a worker to answer it.
// It returns ErrPoolClosed when Serve is not running or stops before a
// worker picks the call up.
func (p *Pool) Recommend(ctx context.Context, req Request) (*Response, error) {
	p.mu.Lock()
	stop := p.stop
	p.mu.Unlock()
	if stop == nil {
		return nil, ErrPoolClosed
	}

	j := job{ctx: ctx, req: req, reply: make(chan result, 1)}

	metrics.WorkerPoolQueued.Set(float64(p.queued.Add(1)))
	select {
	case p.jobs <- j:
		metrics.WorkerPoolQueued.Set(float64(p.queued.Add(-1)))
	case <-ctx.Done():
		metrics.WorkerPoolQueued.Set(float64(p.queued.Add(-1)))
		return nil, ctx.Err()
	case <-stop:
		metrics.WorkerPoolQueued.Set(float64(p.queued.Add(-1)))
		return nil, ErrPoolClosed
	}

	select {
	case r := <-j.reply:
		return r.resp, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// String implements fmt.Stringer for supervisor logging.
func (p *Pool) String() string {
	return "recommend-pool"
}
