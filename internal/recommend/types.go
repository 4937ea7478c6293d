// Bookshelf - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookshelf

package recommend

import (
	"github.com/tomtom215/bookshelf/internal/catalog"
)

// Request is a single Recommend call.
type Request struct {
	// UserID identifies the caller. It is accepted but does not influence
	// the random strategy.
	UserID int64

	// Category selects the catalog section to draw from.
	Category catalog.Category

	// MaxResults caps the number of books returned. Values <= 0 yield an
	// empty result.
	MaxResults int
}

// Response carries the selected books in arbitrary order.
type Response struct {
	Recommendations []catalog.Book `json:"recommendations"`
}

// Selection is the input handed to a Strategy.
type Selection struct {
	UserID   int64
	Category catalog.Category

	// Books is the full category list in catalog order. Strategies must not
	// modify it.
	Books []catalog.Book

	// N is the exact number of books to return, already capped at len(Books).
	N int
}

// State is the server lifecycle state.
type State int32

const (
	// StateInitializing covers catalog loading and worker startup.
	StateInitializing State = iota
	// StateServing means Recommend calls are being answered.
	StateServing
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateServing:
		return "serving"
	default:
		return "unknown"
	}
}
