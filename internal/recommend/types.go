// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package recommend

import (
	"time"

	"github.com/tomtom215/reviewrec/internal/recommend/ingest"
)

// Phase is the engine lifecycle state.
type Phase int32

const (
	// PhaseIngesting accepts ratings and rejects queries.
	PhaseIngesting Phase = iota
	// PhaseReady serves queries and rejects ratings.
	PhaseReady
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIngesting:
		return "ingesting"
	case PhaseReady:
		return "ready"
	default:
		return "unknown"
	}
}

// LineSource is a sequential source of review log lines.
type LineSource = ingest.LineSource

// Recommendation is a recommended product with its predicted rating.
type Recommendation struct {
	// ProductID is the original product identifier from the review log.
	ProductID string `json:"product_id"`

	// Score is the similarity-weighted average of neighbor ratings.
	Score float64 `json:"score"`
}

// Neighbor is a user similar to the query user.
type Neighbor struct {
	UserID     string  `json:"user_id"`
	Similarity float64 `json:"similarity"`
}

// Stats summarizes the ingested corpus. Available once the engine is ready.
type Stats struct {
	// TotalReviews counts every rating observation, duplicates included.
	TotalReviews int `json:"total_reviews"`

	// DistinctRatings counts (user, product) pairs after duplicate collapse.
	DistinctRatings int `json:"distinct_ratings"`

	TotalUsers    int `json:"total_users"`
	TotalProducts int `json:"total_products"`

	// Parser counters across all Ingest and IngestLine calls.
	Lines     int64 `json:"lines"`
	Malformed int64 `json:"malformed"`
	Ignored   int64 `json:"ignored"`

	IngestDuration time.Duration `json:"ingest_duration"`
	ReadyAt        time.Time     `json:"ready_at"`
}

// Status is the always-available engine state used by health checks.
type Status struct {
	Phase    string     `json:"phase"`
	Ready    bool       `json:"ready"`
	Users    int64      `json:"users"`
	Products int64      `json:"products"`
	Reviews  int64      `json:"reviews"`
	ReadyAt  *time.Time `json:"ready_at,omitempty"`
}
