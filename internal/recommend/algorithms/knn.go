// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package algorithms

import (
	"context"
	"math"

	"github.com/tomtom215/reviewrec/internal/cache"
)

// Scored is a candidate product with its predicted rating.
type Scored struct {
	ProductID int     `json:"product_id"`
	Score     float64 `json:"score"`
}

// betterScored ranks by score descending, then product id ascending.
func betterScored(a, b Scored) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.ProductID < b.ProductID
}

// ========== User-Based Collaborative Filtering ==========

// UserBasedCF implements user-based collaborative filtering.
// It recommends products that similar users rated highly.
//
// For a target user u and candidate product p:
//
//	score(u, p) = sum_{v in N(u), v rated p} sim(u, v) * r(v, p) / sum_{v in N(u), v rated p} |sim(u, v)|
//
// where N(u) is the threshold neighborhood of u. Products u already rated are
// never candidates. No model is trained: every query reads the rating source
// directly, so UserBasedCF is safe for concurrent use as long as the source
// is not mutated.
type UserBasedCF struct {
	source   RatingSource
	selector *Selector
}

// NewUserBasedCF creates a user-based recommender.
func NewUserBasedCF(source RatingSource, selector *Selector) *UserBasedCF {
	return &UserBasedCF{source: source, selector: selector}
}

// Selector returns the neighborhood selector used by the recommender.
func (u *UserBasedCF) Selector() *Selector {
	return u.selector
}

// Recommend returns up to n products for target, best first. A target
// with no neighbors yields an empty result, not an error.
func (u *UserBasedCF) Recommend(ctx context.Context, target, n int) ([]Scored, error) {
	if n <= 0 {
		return nil, ErrInvalidCount
	}

	neighbors, err := u.selector.Neighbors(ctx, target)
	if err != nil {
		return nil, err
	}
	return u.RecommendFromNeighbors(ctx, target, neighbors, n)
}

// RecommendFromNeighbors ranks candidates using a precomputed neighborhood.
func (u *UserBasedCF) RecommendFromNeighbors(ctx context.Context, target int, neighbors []Neighbor, n int) ([]Scored, error) {
	if n <= 0 {
		return nil, ErrInvalidCount
	}
	if len(neighbors) == 0 {
		return []Scored{}, nil
	}

	rated := u.source.ByUser(target)

	// Accumulate in neighbor order so the sums are reproducible.
	num := make(map[int]float64)
	den := make(map[int]float64)
	for i, nb := range neighbors {
		if i%cancelCheckEvery == 0 && ContextCancelled(ctx) {
			return nil, ctx.Err()
		}
		weight := math.Abs(nb.Similarity)
		for pid, r := range u.source.ByUser(nb.UserID) {
			if _, seen := rated[pid]; seen {
				continue
			}
			num[pid] += nb.Similarity * r
			den[pid] += weight
		}
	}

	top := cache.NewTopK(n, betterScored)
	for pid, d := range den {
		if d == 0 {
			continue
		}
		top.Push(Scored{ProductID: pid, Score: num[pid] / d})
	}
	return top.Sorted(), nil
}

// Predict estimates target's rating for one product. If target already rated
// it, the stored rating is returned. The second result is false when no
// neighbor rated the product.
func (u *UserBasedCF) Predict(ctx context.Context, target, productID int) (float64, bool, error) {
	if r, ok := u.source.ByUser(target)[productID]; ok {
		return r, true, nil
	}

	neighbors, err := u.selector.Neighbors(ctx, target)
	if err != nil {
		return 0, false, err
	}

	raters := u.source.ByProduct(productID)
	var num, den float64
	for _, nb := range neighbors {
		if r, ok := raters[nb.UserID]; ok {
			num += nb.Similarity * r
			den += math.Abs(nb.Similarity)
		}
	}

	if den == 0 {
		return 0, false, nil
	}
	return num / den, true, nil
}
