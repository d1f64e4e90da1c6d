// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

/*
Package cache provides in-memory data structures for query-time work.

# Overview

  - LRU: generic, thread-safe least recently used cache with TTL expiration.
    The recommendation engine caches ranked results per (user, count) once
    ratings are frozen.
  - TopK: generic bounded heap that keeps the k best items of a stream under
    a caller-supplied strict ordering. The recommender uses it to select the
    top-N products without sorting every candidate.

# Usage Example

	results := cache.NewLRU[resultKey, []Scored](10000, 10*time.Minute)
	if v, ok := results.Get(key); ok {
	    return v
	}

	top := cache.NewTopK(n, func(a, b Scored) bool {
	    if a.Score != b.Score {
	        return a.Score > b.Score
	    }
	    return a.ID < b.ID
	})
	for _, c := range candidates {
	    top.Push(c)
	}
	ranked := top.Sorted()

# Thread Safety

LRU is safe for concurrent use. TopK is owned by a single goroutine.
*/
package cache
