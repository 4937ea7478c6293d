// Bookshelf - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookshelf

// Package recommend answers Recommend calls against a loaded catalog.
//
// # Architecture
//
// A Server owns an immutable *catalog.Catalog and a selection Strategy.
// Recommend looks up the requested category, caps the result size at the
// number of books available and delegates the pick to the strategy:
//
//   - RandomStrategy: uniform sampling without replacement (default)
//   - HeuristicStrategy: reserved extension point, not implemented
//   - PersonalizedStrategy: reserved extension point, not implemented
//
// NewServer refuses strategies that report themselves unimplemented, so the
// reserved strategies are never invoked by Recommend.
//
// # Worker Pool
//
// Pool runs a fixed number of workers (10 by default) and is supervised as a
// suture service. Transports call Pool.Recommend, which queues until a worker
// is free or the caller's context ends.
//
// # Usage
//
//	cat, err := catalog.Load(cfg.Catalog.Path)
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load catalog")
//	}
//	server, err := recommend.NewServer(cat, recommend.NewRandomStrategy(), logger)
//	pool := recommend.NewPool(server, 10, logger)
//	tree.AddCoreService(pool)
//
//	resp, err := pool.Recommend(ctx, recommend.Request{
//	    UserID:     1,
//	    Category:   catalog.Science,
//	    MaxResults: 3,
//	})
//	if errors.Is(err, recommend.ErrCategoryNotFound) {
//	    // explicit rejected-request signal
//	}
//
// # Thread Safety
//
// The catalog is read-only after load, so Recommend takes no locks on it.
// RandomStrategy uses the runtime's concurrency-safe generator, or a seeded
// generator guarded by a mutex when a fixed seed is configured.
package recommend
