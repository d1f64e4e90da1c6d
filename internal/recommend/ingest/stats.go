// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package ingest

import "time"

// Stats tracks ingestion counters.
type Stats struct {
	// Lines is the number of lines read.
	Lines int64 `json:"lines"`

	// Reviews is the number of rating records emitted (one per valid score line).
	Reviews int64 `json:"reviews"`

	// Users is the number of distinct user ids interned.
	Users int `json:"users"`

	// Products is the number of distinct product ids interned.
	Products int `json:"products"`

	// Malformed is the number of recognized lines whose value was unusable.
	Malformed int64 `json:"malformed"`

	// Ignored is the number of lines without a recognized label.
	Ignored int64 `json:"ignored"`

	// StartTime is when the first Run began.
	StartTime time.Time `json:"start_time"`

	// EndTime is when the most recent Run finished.
	EndTime time.Time `json:"end_time,omitempty"`
}

// Duration returns the elapsed ingestion time.
func (s Stats) Duration() time.Duration {
	if s.StartTime.IsZero() {
		return 0
	}
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// LinesPerSecond returns the ingestion rate.
func (s Stats) LinesPerSecond() float64 {
	d := s.Duration().Seconds()
	if d <= 0 {
		return 0
	}
	return float64(s.Lines) / d
}
