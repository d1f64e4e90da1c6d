// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package config

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/reviewrec/internal/recommend/ingest"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"negative threshold", func(c *Config) { c.Recommend.Threshold = -0.5 }, ""},
		{"NaN threshold", func(c *Config) { c.Recommend.Threshold = math.NaN() }, "recommend.threshold"},
		{"zero default count", func(c *Config) { c.Recommend.DefaultCount = 0 }, "recommend.default_count"},
		{"max below default", func(c *Config) { c.Recommend.MaxCount = 1 }, "recommend.max_count"},
		{"negative workers", func(c *Config) { c.Recommend.NumWorkers = -2 }, "recommend.num_workers"},
		{"zero cache ttl", func(c *Config) { c.Recommend.CacheTTL = 0 }, "recommend.cache_ttl"},
		{"zero cache size", func(c *Config) { c.Recommend.CacheSize = 0 }, "recommend.cache_size"},
		{"cache disabled ignores size", func(c *Config) {
			c.Recommend.CacheEnabled = false
			c.Recommend.CacheSize = 0
		}, ""},
		{"zero progress interval", func(c *Config) { c.Ingest.ProgressInterval = 0 }, "ingest.progress_interval"},
		{"zero timeout", func(c *Config) { c.Server.Timeout = 0 }, "server.timeout"},
		{"zero shutdown timeout", func(c *Config) { c.Server.ShutdownTimeout = 0 }, "server.shutdown_timeout"},
		{"rate limit too high", func(c *Config) { c.Security.RateLimitReqs = 200000 }, "security.rate_limit_reqs"},
		{"rate window too short", func(c *Config) { c.Security.RateLimitWindow = time.Millisecond }, "security.rate_limit_window"},
		{"rate limit disabled skips checks", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, ""},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"empty log format allowed", func(c *Config) { c.Logging.Format = "" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_EngineConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.Recommend.Threshold = 0.2
	cfg.Recommend.NumWorkers = 4
	cfg.Recommend.ScanAll = true
	cfg.Recommend.DefaultCount = 5
	cfg.Recommend.MaxCount = 20
	cfg.Recommend.CacheEnabled = false
	cfg.Recommend.CacheTTL = time.Minute
	cfg.Recommend.CacheSize = 10
	cfg.Ingest.MalformedPolicy = "abort"
	cfg.Ingest.ProgressInterval = time.Second

	engineCfg, err := cfg.EngineConfig()
	if err != nil {
		t.Fatalf("EngineConfig() error = %v", err)
	}

	if engineCfg.Neighborhood.Threshold != 0.2 || engineCfg.Neighborhood.NumWorkers != 4 || !engineCfg.Neighborhood.ScanAll {
		t.Errorf("Neighborhood = %+v", engineCfg.Neighborhood)
	}
	if engineCfg.Limits.DefaultCount != 5 || engineCfg.Limits.MaxCount != 20 {
		t.Errorf("Limits = %+v", engineCfg.Limits)
	}
	if engineCfg.Ingest.MalformedPolicy != ingest.PolicyAbort || engineCfg.Ingest.ProgressInterval != time.Second {
		t.Errorf("Ingest = %+v", engineCfg.Ingest)
	}
	if engineCfg.Cache.Enabled || engineCfg.Cache.TTL != time.Minute || engineCfg.Cache.MaxEntries != 10 {
		t.Errorf("Cache = %+v", engineCfg.Cache)
	}
	if err := engineCfg.Validate(); err != nil {
		t.Errorf("engine config Validate() error = %v", err)
	}
}

func TestConfig_EngineConfigBadPolicy(t *testing.T) {
	cfg := defaultConfig()
	cfg.Ingest.MalformedPolicy = "maybe"

	if _, err := cfg.EngineConfig(); err == nil {
		t.Error("EngineConfig() error = nil, want policy error")
	}
}

func TestServerConfig_Addr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"0.0.0.0", 8080, "0.0.0.0:8080"},
		{"", 9000, ":9000"},
		{"::1", 80, "[::1]:80"},
	}
	for _, tt := range tests {
		s := ServerConfig{Host: tt.host, Port: tt.port}
		if got := s.Addr(); got != tt.want {
			t.Errorf("Addr(%q, %d) = %q, want %q", tt.host, tt.port, got, tt.want)
		}
	}
}

func TestConfig_HasWildcardCORS(t *testing.T) {
	cfg := defaultConfig()
	if cfg.HasWildcardCORS() {
		t.Error("HasWildcardCORS() = true for defaults")
	}
	cfg.Security.CORSOrigins = []string{"https://a.example", "*"}
	if !cfg.HasWildcardCORS() {
		t.Error("HasWildcardCORS() = false with *")
	}
}

func TestLoggingConfig_ToLogging(t *testing.T) {
	got := LoggingConfig{Level: "warn", Format: "console", Caller: true}.ToLogging()
	if got.Level != "warn" || got.Format != "console" || !got.Caller || got.Output == nil {
		t.Errorf("ToLogging() = %+v", got)
	}
}
