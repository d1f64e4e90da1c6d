// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package algorithms

import (
	"math"
	"sort"
)

// MinCoRated is the smallest co-rated set for which similarity is defined.
const MinCoRated = 2

// Pearson computes the Pearson correlation between two users' ratings,
// restricted to the products both have rated:
//
//	r = sum((a_i - mean_a)(b_i - mean_b)) / sqrt(sum((a_i - mean_a)^2) * sum((b_i - mean_b)^2))
//
// Means and deviations use the co-rated subset only. The second result is
// false (absent) when fewer than MinCoRated products are shared or when
// either user's co-rated scores are all identical. Absent is not zero:
// callers must exclude such pairs rather than rank them.
//
// The co-rated ids are sorted before accumulation so Pearson(a, b) and
// Pearson(b, a) perform identical floating-point operations.
func Pearson(a, b map[int]float64) (float64, bool) {
	if len(a) < MinCoRated || len(b) < MinCoRated {
		return 0, false
	}

	common := coRated(a, b)
	if len(common) < MinCoRated {
		return 0, false
	}
	sort.Ints(common)

	firstA, firstB := a[common[0]], b[common[0]]
	flatA, flatB := true, true

	var sumA, sumB float64
	for _, id := range common {
		ra, rb := a[id], b[id]
		sumA += ra
		sumB += rb
		if ra != firstA {
			flatA = false
		}
		if rb != firstB {
			flatB = false
		}
	}
	if flatA || flatB {
		return 0, false
	}

	n := float64(len(common))
	meanA := sumA / n
	meanB := sumB / n

	var cov, varA, varB float64
	for _, id := range common {
		diffA := a[id] - meanA
		diffB := b[id] - meanB
		cov += diffA * diffB
		varA += diffA * diffA
		varB += diffB * diffB
	}

	if varA == 0 || varB == 0 {
		return 0, false
	}

	r := cov / (math.Sqrt(varA) * math.Sqrt(varB))
	// Rounding can push |r| a hair past 1.
	switch {
	case r > 1:
		r = 1
	case r < -1:
		r = -1
	}
	return r, true
}

// coRated returns the product ids present in both maps, scanning the smaller one.
func coRated(a, b map[int]float64) []int {
	small, large := a, b
	if len(large) < len(small) {
		small, large = large, small
	}

	common := make([]int, 0, len(small))
	for id := range small {
		if _, ok := large[id]; ok {
			common = append(common, id)
		}
	}
	return common
}
