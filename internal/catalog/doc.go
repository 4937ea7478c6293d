// Bookshelf - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookshelf

// Package catalog loads the book catalog served by the recommendation service.
//
// # File Format
//
// The catalog is a JSON document with two top-level fields:
//
//	{
//	  "mapping":    ["philosophy", "literature", "science"],
//	  "categories": {"philosophy": ["Title A", "Title B"], "science": ["Title C"]}
//	}
//
// The position of a name in "mapping" is the Category value used on the wire.
// Keys of "categories" are walked in the order they appear in the file, and
// book IDs are assigned sequentially across that walk starting at 1.
//
// # Errors
//
// Load and Parse return *LoadError for missing, unreadable or malformed input
// and *UnknownCategoryError when a category name is absent from "mapping".
// Both match their sentinels (ErrLoad, ErrUnknownCategory) via errors.Is.
//
// # Thread Safety
//
// A Catalog is immutable after Load returns and is safe for concurrent reads.
package catalog
