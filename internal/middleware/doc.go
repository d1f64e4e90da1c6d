// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

/*
Package middleware provides transport-level HTTP middleware shared by the
API router.

  - PrometheusMetrics: request count, latency and in-flight gauge, labelled
    by chi route pattern
  - Compression: gzip response bodies using klauspost/compress

Both are plain func(http.Handler) http.Handler values and can be mounted
with chi's Use or With:

	r.Group(func(r chi.Router) {
	    r.Use(middleware.PrometheusMetrics)
	    r.Use(middleware.Compression)
	    r.Get("/api/v1/stats", h.Stats)
	})

Request ids, CORS, rate limiting and security headers live in the api
package because they depend on server configuration.
*/
package middleware
