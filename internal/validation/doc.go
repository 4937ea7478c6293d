// Bookshelf - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookshelf

// Custom rules registered on the shared validator:
//
//   - category: a catalog name or a non-negative number, 1 to 64 characters
//     of letters, digits, underscore or hyphen. Whether the category exists
//     is decided later against the loaded catalog.
//
// Error messages use JSON field names, for example:
//
//	maxResults must be greater than or equal to 0
//	category is required
package validation
