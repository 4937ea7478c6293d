// Bookshelf - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookshelf

package catalog

import (
	"slices"
	"strconv"
	"strings"
)

// Catalog is the category-indexed set of books available for recommendation.
// It is built once by Load or Parse and never mutated afterwards.
type Catalog struct {
	mapping []string
	order   []Category
	books   map[Category][]Book
	total   int
}

// Books returns a copy of the books filed under c, in catalog order.
// The boolean is false when c is not present in the catalog.
func (c *Catalog) Books(cat Category) ([]Book, bool) {
	books, ok := c.books[cat]
	if !ok {
		return nil, false
	}
	return slices.Clone(books), true
}

// Count returns the number of books filed under cat.
func (c *Catalog) Count(cat Category) int {
	return len(c.books[cat])
}

// Has reports whether cat is present in the catalog.
func (c *Catalog) Has(cat Category) bool {
	_, ok := c.books[cat]
	return ok
}

// Categories returns the loaded categories in file order.
func (c *Catalog) Categories() []Category {
	return slices.Clone(c.order)
}

// Len returns the total number of books across all categories.
func (c *Catalog) Len() int {
	return c.total
}

// Lookup resolves a category name through the file's mapping list.
// Matching is case-insensitive and the first occurrence wins.
func (c *Catalog) Lookup(name string) (Category, bool) {
	name = strings.TrimSpace(name)
	for i, m := range c.mapping {
		if strings.EqualFold(m, name) {
			return Category(i), true
		}
	}
	return 0, false
}

// Resolve accepts a mapping name or a decimal enum value. A name missing
// from this file's mapping never resolves, even if it is a well-known wire
// name, because its position may hold a different category here.
func (c *Catalog) Resolve(s string) (Category, bool) {
	if cat, ok := c.Lookup(s); ok {
		return cat, true
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, false
	}
	return Category(n), true
}

// Name returns the mapping name for cat, or its decimal value when the
// mapping has no entry at that position.
func (c *Catalog) Name(cat Category) string {
	if cat >= 0 && int(cat) < len(c.mapping) {
		return c.mapping[cat]
	}
	return strconv.Itoa(int(cat))
}
