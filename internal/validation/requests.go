// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package validation

import (
	"strconv"

	"github.com/go-playground/validator/v10"
)

// RecommendationsRequest is GET /api/v1/users/{userID}/recommendations.
type RecommendationsRequest struct {
	UserID string `json:"user_id" validate:"required,max=256"`
	Count  int    `json:"count" validate:"min=1"`

	// MaxCount is the configured upper bound for Count.
	MaxCount int `json:"-"`
}

// NeighborsRequest is GET /api/v1/users/{userID}/neighbors.
type NeighborsRequest struct {
	UserID string `json:"user_id" validate:"required,max=256"`

	// Threshold overrides the configured similarity bound when set.
	Threshold *float64 `json:"threshold" validate:"omitempty,gte=-1,lt=1"`
}

// PredictionRequest is GET /api/v1/users/{userID}/predictions/{productID}.
type PredictionRequest struct {
	UserID    string `json:"user_id" validate:"required,max=256"`
	ProductID string `json:"product_id" validate:"required,max=256"`
}

// SimilarityRequest is GET /api/v1/similarity?a=..&b=..
type SimilarityRequest struct {
	UserA string `json:"a" validate:"required,max=256"`
	UserB string `json:"b" validate:"required,max=256"`
}

// validateRecommendationsRequest enforces the configured count ceiling,
// which a static tag cannot express.
func validateRecommendationsRequest(sl validator.StructLevel) {
	var req RecommendationsRequest
	switch v := sl.Current().Interface().(type) {
	case RecommendationsRequest:
		req = v
	case *RecommendationsRequest:
		req = *v
	default:
		return
	}
	if req.MaxCount > 0 && req.Count > req.MaxCount {
		sl.ReportError(req.Count, "count", "Count", "max", strconv.Itoa(req.MaxCount))
	}
}
