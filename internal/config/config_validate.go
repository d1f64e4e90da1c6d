// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package config

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/tomtom215/reviewrec/internal/logging"
	"github.com/tomtom215/reviewrec/internal/recommend/ingest"
)

const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateSource,
		c.validateIngest,
		c.validateRecommend,
		c.validateServer,
		c.validateRateLimits,
		c.validateLogging,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateSource() error {
	if strings.TrimSpace(c.Source.Path) == "" {
		return fmt.Errorf("source.path is required")
	}
	return nil
}

func (c *Config) validateIngest() error {
	if _, err := ingest.ParsePolicy(c.Ingest.MalformedPolicy); err != nil {
		return fmt.Errorf("ingest.malformed_policy must be one of: skip, abort")
	}
	if c.Ingest.ProgressInterval <= 0 {
		return fmt.Errorf("ingest.progress_interval must be positive")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if math.IsNaN(r.Threshold) || r.Threshold < -1 || r.Threshold >= 1 {
		return fmt.Errorf("recommend.threshold must be in [-1, 1)")
	}
	if r.DefaultCount < 1 {
		return fmt.Errorf("recommend.default_count must be at least 1")
	}
	if r.MaxCount < r.DefaultCount {
		return fmt.Errorf("recommend.max_count must be at least recommend.default_count (%d)", r.DefaultCount)
	}
	if r.NumWorkers < 0 {
		return fmt.Errorf("recommend.num_workers must be non-negative")
	}
	if r.CacheEnabled {
		if r.CacheTTL <= 0 {
			return fmt.Errorf("recommend.cache_ttl must be positive when caching is enabled")
		}
		if r.CacheSize < 1 {
			return fmt.Errorf("recommend.cache_size must be at least 1 when caching is enabled")
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive")
	}
	return nil
}

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("security.rate_limit_reqs must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("security.rate_limit_window must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("logging.level must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, console")
	}
	return nil
}

// HasWildcardCORS reports whether any allowed origin is "*". main logs a
// warning at startup when it is.
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}
