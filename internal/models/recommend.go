// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package models

import "time"

// RecommendedProduct is one entry of a recommendation list.
type RecommendedProduct struct {
	ProductID string  `json:"product_id"`
	Score     float64 `json:"score"`
}

// RecommendationsResponse is the payload of GET /api/v1/users/{userID}/recommendations.
// Recommendations is ordered by score descending, then product id ascending,
// and may hold fewer than Requested entries.
type RecommendationsResponse struct {
	UserID          string               `json:"user_id"`
	Requested       int                  `json:"requested"`
	Recommendations []RecommendedProduct `json:"recommendations"`
}

// NeighborEntry is one similar user.
type NeighborEntry struct {
	UserID     string  `json:"user_id"`
	Similarity float64 `json:"similarity"`
}

// NeighborsResponse is the payload of GET /api/v1/users/{userID}/neighbors.
type NeighborsResponse struct {
	UserID    string          `json:"user_id"`
	Threshold float64         `json:"threshold"`
	Neighbors []NeighborEntry `json:"neighbors"`
}

// PredictionResponse is the payload of GET /api/v1/users/{userID}/predictions/{productID}.
// Score is nil when no neighbor rated the product.
type PredictionResponse struct {
	UserID    string   `json:"user_id"`
	ProductID string   `json:"product_id"`
	Available bool     `json:"available"`
	Score     *float64 `json:"score,omitempty"`
}

// SimilarityResponse is the payload of GET /api/v1/similarity.
// Similarity is nil when the two users share fewer than two products or
// either rated every shared product the same.
type SimilarityResponse struct {
	UserA      string   `json:"user_a"`
	UserB      string   `json:"user_b"`
	Defined    bool     `json:"defined"`
	Similarity *float64 `json:"similarity,omitempty"`
}

// StatsResponse is the payload of GET /api/v1/stats.
type StatsResponse struct {
	TotalReviews     int       `json:"total_reviews"`
	DistinctRatings  int       `json:"distinct_ratings"`
	TotalUsers       int       `json:"total_users"`
	TotalProducts    int       `json:"total_products"`
	LinesRead        int64     `json:"lines_read"`
	MalformedRecords int64     `json:"malformed_records"`
	IgnoredLines     int64     `json:"ignored_lines"`
	IngestDurationMS int64     `json:"ingest_duration_ms"`
	ReadyAt          time.Time `json:"ready_at"`
}

// HealthResponse is the payload of the /health endpoints.
type HealthResponse struct {
	Status   string     `json:"status"`
	Phase    string     `json:"phase"`
	Ready    bool       `json:"ready"`
	Users    int64      `json:"users"`
	Products int64      `json:"products"`
	Reviews  int64      `json:"reviews"`
	ReadyAt  *time.Time `json:"ready_at,omitempty"`
	Uptime   float64    `json:"uptime_seconds"`
	Version  string     `json:"version,omitempty"`
}
