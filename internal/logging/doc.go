// Bookshelf - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookshelf

// Package logging provides centralized zerolog-based logging for Bookshelf.
//
// Both binaries call Init once at startup and then log through the package
// level helpers or a component logger:
//
//	logging.Init(logging.Config{Level: "info", Format: "json", Service: "recommendations"})
//	logging.Info().Int("port", 50051).Msg("Server starting")
//	logging.Ctx(ctx).Error().Err(err).Msg("Recommend failed")
//
// # Configuration
//
// Environment Variables (read through internal/config):
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: include caller file and line (default: false)
//
// # slog Bridge
//
// SlogHandler routes *slog.Logger output into zerolog. The supervisor tree
// and the embedded NATS server use it.
//
// Always terminate log chains with .Msg() or .Send(); an unterminated event
// is never written.
package logging
