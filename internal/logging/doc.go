// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

// Package logging provides the process-wide zerolog logger for reviewrec.
//
// The global logger is usable before Init runs (info level, JSON to stderr).
// main calls Init once the configuration is loaded:
//
//	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
//	logging.Info().Str("source", cfg.Source.Path).Msg("starting")
//
// Components take a zerolog.Logger by value and tag it:
//
//	logger := logging.WithComponent("ingest")
//
// HTTP handlers log through Ctx, which attaches the request id and
// correlation id carried by the request context:
//
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("query failed")
//
// # Configuration
//
//   - LOG_LEVEL: trace, debug, info, warn, error (default info)
//   - LOG_FORMAT: json or console (default json)
//   - LOG_CALLER: include caller file and line (default false)
//
// # slog bridge
//
// SlogHandler adapts zerolog to log/slog for libraries that only speak slog,
// notably sutureslog in the supervisor tree.
//
// Always terminate event chains with Msg or Send; an unterminated chain is
// never written.
package logging
