// Bookshelf - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookshelf

// Package marketplace is the storefront web front end. Each category page
// asks the recommendations service for a few titles and renders them with
// embedded html/template pages.
package marketplace
