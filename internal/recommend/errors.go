// Bookshelf - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookshelf

package recommend

import (
	"errors"
	"fmt"

	"github.com/tomtom215/bookshelf/internal/catalog"
)

var (
	// ErrCategoryNotFound matches every *NotFoundError. Callers receive it
	// instead of an empty list when the category is not in the catalog.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrStrategyNotImplemented is returned by reserved strategies.
	ErrStrategyNotImplemented = errors.New("selection strategy not implemented")

	// ErrUnknownStrategy is returned by StrategyByName for unrecognized names.
	ErrUnknownStrategy = errors.New("unknown selection strategy")

	// ErrPoolClosed is returned when a call is submitted while no workers run.
	ErrPoolClosed = errors.New("worker pool is not running")
)

// NotFoundError reports a Recommend call for a category absent from the catalog.
type NotFoundError struct {
	Category catalog.Category

	// Name is the catalog's own name for Category, or the caller's text
	// when it did not resolve.
	Name string
}

func (e *NotFoundError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("category not found: %q", e.Name)
	}
	return fmt.Sprintf("category not found: %d", int(e.Category))
}

// Is reports whether target is ErrCategoryNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrCategoryNotFound }
