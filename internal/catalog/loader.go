// Bookshelf - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookshelf

package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
)

// document mirrors the top level of the catalog file. Categories stays raw
// so its keys can be walked in file order.
type document struct {
	Mapping    []string        `json:"mapping"`
	Categories json.RawMessage `json:"categories"`
}

// Load reads and indexes the catalog file at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, &LoadError{Path: path, Reason: "cannot read file", Err: err}
	}

	cat, err := Parse(data)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			loadErr.Path = path
		}
		return nil, err
	}
	return cat, nil
}

// Parse indexes an in-memory catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Reason: "malformed document", Err: err}
	}
	if doc.Mapping == nil {
		return nil, &LoadError{Reason: `missing "mapping" field`}
	}
	if len(doc.Categories) == 0 || bytes.Equal(bytes.TrimSpace(doc.Categories), []byte("null")) {
		return nil, &LoadError{Reason: `missing "categories" field`}
	}

	var titles map[string][]string
	if err := json.Unmarshal(doc.Categories, &titles); err != nil {
		return nil, &LoadError{Reason: `"categories" must map names to title lists`, Err: err}
	}

	names, err := objectKeys(doc.Categories)
	if err != nil {
		return nil, &LoadError{Reason: `cannot walk "categories"`, Err: err}
	}

	return build(doc.Mapping, names, titles)
}

// build assigns IDs across categories in file order.
func build(mapping, names []string, titles map[string][]string) (*Catalog, error) {
	c := &Catalog{
		mapping: mapping,
		order:   make([]Category, 0, len(names)),
		books:   make(map[Category][]Book, len(names)),
	}

	next := 1
	for _, name := range names {
		idx := indexOf(mapping, name)
		if idx < 0 {
			return nil, &UnknownCategoryError{Name: name}
		}

		list := titles[name]
		if len(list) == 0 {
			continue
		}

		cat := Category(idx)
		books := make([]Book, len(list))
		for i, title := range list {
			books[i] = Book{ID: next + i, Title: title}
		}
		next += len(list)

		c.order = append(c.order, cat)
		c.books[cat] = books
	}

	c.total = next - 1
	return c, nil
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

// objectKeys returns the keys of a JSON object in document order. A key that
// repeats keeps its first position.
func objectKeys(raw []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var keys []string
	seen := make(map[string]struct{})
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		if err := skipValue(dec); err != nil {
			return nil, err
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return keys, nil
}

// skipValue consumes one complete JSON value from dec.
func skipValue(dec *json.Decoder) error {
	depth := 0
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return io.ErrUnexpectedEOF
		}
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
		if depth == 0 {
			return nil
		}
	}
}
