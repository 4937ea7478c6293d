// Bookshelf - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookshelf

package catalog

import "strconv"

// Book is a single recommendable title.
type Book struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// Category identifies a book genre. Its value is the position of the
// category name in the catalog file's mapping list.
type Category int

// Wire constants for the production catalog mapping
// ["philosophy", "literature", "science"].
const (
	Philosophy Category = iota
	Literature
	Science
)

var wireNames = [...]string{
	Philosophy: "PHILOSOPHY",
	Literature: "LITERATURE",
	Science:    "SCIENCE",
}

// String returns the wire name of a well-known category, or CATEGORY_<n>.
func (c Category) String() string {
	if c >= 0 && int(c) < len(wireNames) {
		return wireNames[c]
	}
	return "CATEGORY_" + strconv.Itoa(int(c))
}
