// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

// Package algorithms implements memory-based user-user collaborative filtering.
//
// The pipeline for one query is:
//
//  1. Similarity: Pearson correlation between two users over their co-rated
//     products (Pearson).
//  2. Neighborhood: every other user whose similarity to the target is
//     strictly above a threshold (Selector).
//  3. Prediction: similarity-weighted average of neighbor ratings for each
//     product the target has not rated, ranked best first (UserBasedCF).
//
// All routines only read the rating data, so independent queries may run
// concurrently. Neighborhood computation for a single query is itself split
// across workers.
package algorithms

import (
	"context"
	"errors"
)

// ErrInvalidCount is returned when a recommendation count is not positive.
var ErrInvalidCount = errors.New("recommendation count must be positive")

// RatingSource is the read-only view of the rating matrix the algorithms need.
type RatingSource interface {
	// ByUser returns productID -> score for a user, nil if none.
	ByUser(userID int) map[int]float64

	// ByProduct returns userID -> score for a product, nil if none.
	ByProduct(productID int) map[int]float64

	// UserIDs returns every user with at least one rating, ascending.
	UserIDs() []int
}

// ContextCancelled checks if the context has been canceled.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
