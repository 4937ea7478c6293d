// Bookshelf - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookshelf

package supervisor

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// ErrStubCrash is the exit a StubService reports for a scripted crash.
var ErrStubCrash = errors.New("stub service crashed")

// StubService stands in for a layer member (the worker pool, the NATS
// responder, the HTTP listener) when a test only cares how the tree
// treats it. Each run consumes the next scripted exit; once the script is
// empty a run blocks until its context ends.
type StubService struct {
	name    string
	started chan struct{}

	mu     sync.Mutex
	script []error

	starts atomic.Int32
	stops  atomic.Int32
}

// NewStubService returns a service called name whose first runs return the
// given exits in order.
func NewStubService(name string, exits ...error) *StubService {
	return &StubService{
		name:    name,
		started: make(chan struct{}, 64),
		script:  exits,
	}
}

// CrashTimes appends n ErrStubCrash exits to the script.
func (s *StubService) CrashTimes(n int) *StubService {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < n; i++ {
		s.script = append(s.script, ErrStubCrash)
	}
	return s
}

func (s *StubService) Serve(ctx context.Context) error {
	s.starts.Add(1)
	defer s.stops.Add(1)

	select {
	case s.started <- struct{}{}:
	default:
	}

	if exit := s.nextExit(); exit != nil {
		return exit
	}
	<-ctx.Done()
	return ctx.Err()
}

func (s *StubService) nextExit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.script) == 0 {
		return nil
	}
	exit := s.script[0]
	s.script = s.script[1:]
	return exit
}

// Started receives once per run, up to the channel's buffer.
func (s *StubService) Started() <-chan struct{} { return s.started }

// Starts is the number of runs begun.
func (s *StubService) Starts() int { return int(s.starts.Load()) }

// Stops is the number of runs that returned.
func (s *StubService) Stops() int { return int(s.stops.Load()) }

func (s *StubService) String() string { return s.name }
