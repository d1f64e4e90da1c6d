// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

// Package models defines the JSON shapes of the HTTP API: the APIResponse
// envelope and one payload type per endpoint. It has no dependencies on the
// engine so clients can import it on its own.
package models
