// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

// Package recommend implements a user-based collaborative filtering engine
// for product reviews.
//
// # Architecture
//
// The engine is assembled from small packages, each owning one stage:
//
//   - interner: maps opaque user and product ids to dense integers
//   - ingest: parses the review log into ratings, one line at a time
//   - ratings: append-only record log plus user and product indexed views
//   - algorithms: Pearson similarity, threshold neighborhoods, weighted prediction
//
// # Lifecycle
//
// An Engine has two phases. In PhaseIngesting, Ingest, IngestLine and
// AddRating add ratings through a single writer; queries fail with
// *InvalidPhaseError. MarkReady freezes the data and switches to
// PhaseReady, after which only queries are allowed. There is no way back:
// re-ingesting requires a new Engine.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//
//	src, err := ingest.Open("movies.txt.gz")
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	if _, err := engine.Ingest(ctx, src); err != nil {
//	    return err
//	}
//	if err := engine.MarkReady(); err != nil {
//	    return err
//	}
//
//	products, err := engine.Recommend(ctx, "A141HP4LYPWMSR", 3)
//
// # Determinism
//
// Identical logs and queries produce identical results, including tie
// order: neighbors are ranked by similarity then user id, and products by
// predicted score then product id.
//
// # Thread Safety
//
// Ingestion methods are serialized by a writer lock. Once ready, the rating
// data are immutable and every query method is safe for concurrent use.
// Recommendation lists are cached in an LRU when caching is enabled.
package recommend
