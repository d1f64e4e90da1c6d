// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package recommend

import (
	"fmt"
	"math"
	"time"

	"github.com/tomtom215/reviewrec/internal/recommend/algorithms"
	"github.com/tomtom215/reviewrec/internal/recommend/ingest"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Neighborhood contains neighborhood selection parameters.
	Neighborhood NeighborhoodConfig `json:"neighborhood"`

	// Limits contains recommendation count limits.
	Limits LimitsConfig `json:"limits"`

	// Ingest contains review log parsing parameters.
	Ingest IngestConfig `json:"ingest"`

	// Cache contains result caching parameters.
	Cache CacheConfig `json:"cache"`
}

// NeighborhoodConfig contains neighborhood selection parameters.
type NeighborhoodConfig struct {
	// Threshold is the exclusive lower bound on Pearson similarity.
	// Range: [-1, 1). Default: 0.1
	Threshold float64 `json:"threshold"`

	// NumWorkers is the number of goroutines per neighborhood query.
	// Zero means runtime.NumCPU().
	NumWorkers int `json:"num_workers"`

	// ScanAll disables co-rating candidate pruning.
	ScanAll bool `json:"scan_all"`
}

// LimitsConfig contains recommendation count limits.
type LimitsConfig struct {
	// DefaultCount is used when the caller does not specify a count.
	DefaultCount int `json:"default_count"`

	// MaxCount is the largest count a caller may request.
	MaxCount int `json:"max_count"`
}

// IngestConfig contains review log parsing parameters.
type IngestConfig struct {
	// MalformedPolicy selects skip or abort for malformed records.
	MalformedPolicy ingest.Policy `json:"malformed_policy"`

	// ProgressInterval is the minimum time between progress log lines.
	ProgressInterval time.Duration `json:"progress_interval"`
}

// CacheConfig contains result caching parameters.
type CacheConfig struct {
	// Enabled turns on caching of recommendation lists.
	Enabled bool `json:"enabled"`

	// TTL is how long a cached list is served.
	TTL time.Duration `json:"ttl"`

	// MaxEntries bounds the number of cached lists.
	MaxEntries int `json:"max_entries"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		Neighborhood: NeighborhoodConfig{
			Threshold: algorithms.DefaultThreshold,
		},
		Limits: LimitsConfig{
			DefaultCount: 3,
			MaxCount:     100,
		},
		Ingest: IngestConfig{
			MalformedPolicy:  ingest.PolicySkip,
			ProgressInterval: 10 * time.Second,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        10 * time.Minute,
			MaxEntries: 10000,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	t := c.Neighborhood.Threshold
	if math.IsNaN(t) || t < -1 || t >= 1 {
		return fmt.Errorf("neighborhood.threshold must be in [-1, 1), got %v", t)
	}
	if c.Neighborhood.NumWorkers < 0 {
		return fmt.Errorf("neighborhood.num_workers must be non-negative, got %d", c.Neighborhood.NumWorkers)
	}

	if c.Limits.DefaultCount < 1 {
		return fmt.Errorf("limits.default_count must be positive, got %d", c.Limits.DefaultCount)
	}
	if c.Limits.MaxCount < c.Limits.DefaultCount {
		return fmt.Errorf("limits.max_count must be >= limits.default_count, got %d < %d", c.Limits.MaxCount, c.Limits.DefaultCount)
	}

	if c.Ingest.MalformedPolicy != ingest.PolicySkip && c.Ingest.MalformedPolicy != ingest.PolicyAbort {
		return fmt.Errorf("ingest.malformed_policy is invalid: %d", c.Ingest.MalformedPolicy)
	}
	if c.Ingest.ProgressInterval <= 0 {
		return fmt.Errorf("ingest.progress_interval must be positive, got %v", c.Ingest.ProgressInterval)
	}

	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
		}
	}

	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	// All nested structs contain only value types.
	clone := *c
	return &clone
}
