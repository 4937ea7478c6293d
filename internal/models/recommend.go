// Bookshelf - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookshelf

package models

import (
	"bytes"
	"errors"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/tomtom215/bookshelf/internal/catalog"
)

var errCategoryType = errors.New("category must be a string or an integer")

// CategoryRef is a category given either by name or by enum value. Both
// JSON forms decode to the same text, which the catalog later resolves.
type CategoryRef string

// UnmarshalJSON accepts "science", "SCIENCE" or 2.
func (c *CategoryRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = CategoryRef(s)
		return nil
	}

	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return errCategoryType
	}
	*c = CategoryRef(strconv.FormatInt(n, 10))
	return nil
}

// RecommendRequest is the Recommend call on the wire, shared by
// POST /api/v1/recommendations and the NATS request subject. UserID is
// carried for logging and strategies; any value is accepted.
type RecommendRequest struct {
	UserID     int64       `json:"userId"`
	Category   CategoryRef `json:"category" validate:"required,category"`
	MaxResults int         `json:"maxResults"`
}

// RecommendReply is the NATS reply body. Exactly one key is encoded.
//
//	{"recommendations": [{"id": 6, "title": "Cosmos"}]}
//	{"error": {"code": "NOT_FOUND", "message": "Category not found"}}
type RecommendReply struct {
	Recommendations []catalog.Book `json:"recommendations,omitempty"`
	Error           *APIError      `json:"error,omitempty"`
}

// MarshalJSON encodes the error alone when set, and otherwise always emits
// the recommendations array, empty rather than null.
func (r RecommendReply) MarshalJSON() ([]byte, error) {
	if r.Error != nil {
		return json.Marshal(struct {
			Error *APIError `json:"error"`
		}{r.Error})
	}
	books := r.Recommendations
	if books == nil {
		books = []catalog.Book{}
	}
	return json.Marshal(struct {
		Recommendations []catalog.Book `json:"recommendations"`
	}{books})
}
