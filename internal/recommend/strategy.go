// Bookshelf - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookshelf

package recommend

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"

	"github.com/tomtom215/bookshelf/internal/catalog"
)

// Strategy picks which books of a category are recommended.
type Strategy interface {
	// Name returns the strategy identifier used in configuration and logs.
	Name() string

	// Implemented reports whether Select does real work. Servers refuse
	// strategies that return false.
	Implemented() bool

	// Select returns exactly sel.N books drawn from sel.Books.
	Select(ctx context.Context, sel Selection) ([]catalog.Book, error)
}

// Strategy names accepted by StrategyByName.
const (
	StrategyRandom       = "random"
	StrategyHeuristic    = "heuristic"
	StrategyPersonalized = "personalized"
)

// StrategyByName builds the named strategy. A non-zero seed makes the random
// strategy deterministic; the reserved strategies ignore it.
func StrategyByName(name string, seed uint64) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", StrategyRandom:
		if seed != 0 {
			return NewSeededRandomStrategy(seed), nil
		}
		return NewRandomStrategy(), nil
	case StrategyHeuristic:
		return HeuristicStrategy{}, nil
	case StrategyPersonalized:
		return PersonalizedStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// RandomStrategy samples uniformly without replacement.
type RandomStrategy struct {
	mu  sync.Mutex
	rng *rand.Rand // nil selects the runtime generator
}

// NewRandomStrategy returns a strategy backed by the runtime's
// concurrency-safe generator.
func NewRandomStrategy() *RandomStrategy {
	return &RandomStrategy{}
}

// NewSeededRandomStrategy returns a reproducible strategy. Draws are
// serialized on an internal mutex.
func NewSeededRandomStrategy(seed uint64) *RandomStrategy {
	return &RandomStrategy{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), //nolint:gosec // math/rand is fine for recommendation shuffling
	}
}

// Name implements Strategy.
func (s *RandomStrategy) Name() string { return StrategyRandom }

// Implemented implements Strategy.
func (s *RandomStrategy) Implemented() bool { return true }

// Select runs a partial Fisher-Yates shuffle over a copy of sel.Books, so
// every subset of size sel.N is equally likely.
func (s *RandomStrategy) Select(_ context.Context, sel Selection) ([]catalog.Book, error) {
	n := min(sel.N, len(sel.Books))
	if n <= 0 {
		return []catalog.Book{}, nil
	}

	picked := slices.Clone(sel.Books)

	intN := rand.IntN //nolint:gosec // math/rand is fine for recommendation shuffling
	if s.rng != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		intN = s.rng.IntN
	}

	for i := 0; i < n; i++ {
		j := i + intN(len(picked)-i)
		picked[i], picked[j] = picked[j], picked[i]
	}
	return picked[:n:n], nil
}

// HeuristicStrategy is reserved for rule-based ranking. It is intentionally
// unimplemented.
type HeuristicStrategy struct{}

// Name implements Strategy.
func (HeuristicStrategy) Name() string { return StrategyHeuristic }

// Implemented implements Strategy.
func (HeuristicStrategy) Implemented() bool { return false }

// Select always fails with ErrStrategyNotImplemented.
func (HeuristicStrategy) Select(context.Context, Selection) ([]catalog.Book, error) {
	return nil, fmt.Errorf("%w: %s", ErrStrategyNotImplemented, StrategyHeuristic)
}

// PersonalizedStrategy is reserved for per-user ranking driven by UserID.
// It is intentionally unimplemented.
type PersonalizedStrategy struct{}

// Name implements Strategy.
func (PersonalizedStrategy) Name() string { return StrategyPersonalized }

// Implemented implements Strategy.
func (PersonalizedStrategy) Implemented() bool { return false }

// Select always fails with ErrStrategyNotImplemented.
func (PersonalizedStrategy) Select(context.Context, Selection) ([]catalog.Book, error) {
	return nil, fmt.Errorf("%w: %s", ErrStrategyNotImplemented, StrategyPersonalized)
}
