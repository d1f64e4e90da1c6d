// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/tomtom215/reviewrec/internal/logging"
	"github.com/tomtom215/reviewrec/internal/recommend"
	"github.com/tomtom215/reviewrec/internal/recommend/ingest"
)

// Config holds the complete process configuration.
type Config struct {
	Source    SourceConfig    `koanf:"source"`
	Ingest    IngestConfig    `koanf:"ingest"`
	Recommend RecommendConfig `koanf:"recommend"`
	Export    ExportConfig    `koanf:"export"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// SourceConfig locates the review log.
type SourceConfig struct {
	// Path is a plain or gzip-compressed review log.
	Path string `koanf:"path"`
}

// IngestConfig controls review log parsing.
type IngestConfig struct {
	// MalformedPolicy is "skip" or "abort".
	MalformedPolicy  string        `koanf:"malformed_policy"`
	ProgressInterval time.Duration `koanf:"progress_interval"`
}

// RecommendConfig holds recommendation engine settings.
//
// Environment Variables:
//   - RECOMMEND_THRESHOLD: neighbor similarity lower bound, exclusive (default: 0.1)
//   - RECOMMEND_DEFAULT_COUNT: recommendations returned when no count is given (default: 3)
//   - RECOMMEND_MAX_COUNT: largest count a client may request (default: 100)
//   - RECOMMEND_NUM_WORKERS: goroutines per neighborhood query, 0 = NumCPU (default: 0)
//   - RECOMMEND_SCAN_ALL: compare against every user instead of co-raters (default: false)
//   - RECOMMEND_CACHE_ENABLED: cache recommendation lists (default: true)
//   - RECOMMEND_CACHE_TTL: cached list lifetime (default: 10m)
//   - RECOMMEND_CACHE_SIZE: maximum cached lists (default: 10000)
type RecommendConfig struct {
	Threshold    float64       `koanf:"threshold"`
	DefaultCount int           `koanf:"default_count"`
	MaxCount     int           `koanf:"max_count"`
	NumWorkers   int           `koanf:"num_workers"`
	ScanAll      bool          `koanf:"scan_all"`
	CacheEnabled bool          `koanf:"cache_enabled"`
	CacheTTL     time.Duration `koanf:"cache_ttl"`
	CacheSize    int           `koanf:"cache_size"`
}

// ExportConfig controls the optional CSV dump written after ingestion.
type ExportConfig struct {
	// CSVPath is empty to disable the export.
	CSVPath string `koanf:"csv_path"`

	// ResolveIDs writes original user and product keys instead of dense integers.
	ResolveIDs bool `koanf:"resolve_ids"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// SecurityConfig holds HTTP hardening settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// ToLogging converts to the logging package's Config.
func (l LoggingConfig) ToLogging() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = l.Level
	cfg.Format = l.Format
	cfg.Caller = l.Caller
	return cfg
}

// EngineConfig builds the recommendation engine configuration from the
// ingest and recommend sections.
func (c *Config) EngineConfig() (*recommend.Config, error) {
	policy, err := ingest.ParsePolicy(c.Ingest.MalformedPolicy)
	if err != nil {
		return nil, fmt.Errorf("ingest.malformed_policy: %w", err)
	}

	cfg := recommend.DefaultConfig()
	cfg.Neighborhood.Threshold = c.Recommend.Threshold
	cfg.Neighborhood.NumWorkers = c.Recommend.NumWorkers
	cfg.Neighborhood.ScanAll = c.Recommend.ScanAll
	cfg.Limits.DefaultCount = c.Recommend.DefaultCount
	cfg.Limits.MaxCount = c.Recommend.MaxCount
	cfg.Ingest.MalformedPolicy = policy
	cfg.Ingest.ProgressInterval = c.Ingest.ProgressInterval
	cfg.Cache.Enabled = c.Recommend.CacheEnabled
	cfg.Cache.TTL = c.Recommend.CacheTTL
	cfg.Cache.MaxEntries = c.Recommend.CacheSize
	return cfg, nil
}

// Load reads configuration with the following precedence (highest wins):
//
//  1. Environment variables
//  2. Config file (CONFIG_PATH, or the first of DefaultConfigPaths that exists)
//  3. Built-in defaults
func Load() (*Config, error) {
	return LoadWithKoanf()
}
