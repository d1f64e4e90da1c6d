// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolate points CONFIG_PATH at a missing file inside a temp dir and moves
// the working directory there so no stray config.yaml is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(ConfigPathEnvVar, filepath.Join(dir, "missing.yaml"))
	return dir
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "reviewrec.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Source.Path != "movies.txt.gz" {
		t.Errorf("Source.Path = %q, want movies.txt.gz", cfg.Source.Path)
	}
	if cfg.Recommend.Threshold != 0.1 {
		t.Errorf("Recommend.Threshold = %v, want 0.1", cfg.Recommend.Threshold)
	}
	if cfg.Recommend.DefaultCount != 3 {
		t.Errorf("Recommend.DefaultCount = %d, want 3", cfg.Recommend.DefaultCount)
	}
	if cfg.Recommend.CacheTTL != 10*time.Minute {
		t.Errorf("Recommend.CacheTTL = %v, want 10m", cfg.Recommend.CacheTTL)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Export.CSVPath != "" {
		t.Errorf("Export.CSVPath = %q, want empty", cfg.Export.CSVPath)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaultConfig().Validate() error = %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"REVIEWS_PATH", "source.path"},
		{"RECOMMEND_THRESHOLD", "recommend.threshold"},
		{"RECOMMEND_CACHE_TTL", "recommend.cache_ttl"},
		{"HTTP_PORT", "server.port"},
		{"CORS_ORIGINS", "security.cors_origins"},
		{"DISABLE_RATE_LIMIT", "security.rate_limit_disabled"},
		{"LOG_LEVEL", "logging.level"},
		{"log_format", "logging.format"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			if got := envTransformFunc(tt.env); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}

func TestEnvMappingsTargetKnownPaths(t *testing.T) {
	known := map[string]bool{}
	for _, path := range []string{
		"source.path",
		"ingest.malformed_policy", "ingest.progress_interval",
		"recommend.threshold", "recommend.default_count", "recommend.max_count",
		"recommend.num_workers", "recommend.scan_all", "recommend.cache_enabled",
		"recommend.cache_ttl", "recommend.cache_size",
		"export.csv_path", "export.resolve_ids",
		"server.host", "server.port", "server.timeout", "server.shutdown_timeout",
		"security.cors_origins", "security.rate_limit_reqs",
		"security.rate_limit_window", "security.rate_limit_disabled",
		"logging.level", "logging.format", "logging.caller",
	} {
		known[path] = true
	}

	for env, path := range envMappings {
		if !known[path] {
			t.Errorf("%s maps to unknown path %q", env, path)
		}
	}
}

func TestFindConfigFile(t *testing.T) {
	dir := isolate(t)

	if got := findConfigFile(); got != "" {
		t.Errorf("findConfigFile() = %q, want empty", got)
	}

	local := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(local, []byte("source:\n  path: a\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if got := findConfigFile(); got != "config.yaml" {
		t.Errorf("findConfigFile() = %q, want config.yaml", got)
	}

	explicit := writeConfig(t, dir, "source:\n  path: b\n")
	t.Setenv(ConfigPathEnvVar, explicit)
	if got := findConfigFile(); got != explicit {
		t.Errorf("findConfigFile() = %q, want %q", got, explicit)
	}
}

func TestLoadWithKoanf_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Source.Path != "movies.txt.gz" {
		t.Errorf("Source.Path = %q, want movies.txt.gz", cfg.Source.Path)
	}
	if cfg.Ingest.ProgressInterval != 10*time.Second {
		t.Errorf("Ingest.ProgressInterval = %v, want 10s", cfg.Ingest.ProgressInterval)
	}
	if cfg.Security.RateLimitWindow != time.Minute {
		t.Errorf("Security.RateLimitWindow = %v, want 1m", cfg.Security.RateLimitWindow)
	}
}

func TestLoadWithKoanf_EnvVars(t *testing.T) {
	isolate(t)
	t.Setenv("REVIEWS_PATH", "/data/reviews.txt")
	t.Setenv("RECOMMEND_THRESHOLD", "0.25")
	t.Setenv("RECOMMEND_DEFAULT_COUNT", "5")
	t.Setenv("RECOMMEND_CACHE_ENABLED", "false")
	t.Setenv("RECOMMEND_CACHE_TTL", "90s")
	t.Setenv("INGEST_MALFORMED_POLICY", "abort")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Source.Path != "/data/reviews.txt" {
		t.Errorf("Source.Path = %q", cfg.Source.Path)
	}
	if cfg.Recommend.Threshold != 0.25 {
		t.Errorf("Recommend.Threshold = %v, want 0.25", cfg.Recommend.Threshold)
	}
	if cfg.Recommend.DefaultCount != 5 {
		t.Errorf("Recommend.DefaultCount = %d, want 5", cfg.Recommend.DefaultCount)
	}
	if cfg.Recommend.CacheEnabled {
		t.Error("Recommend.CacheEnabled = true, want false")
	}
	if cfg.Recommend.CacheTTL != 90*time.Second {
		t.Errorf("Recommend.CacheTTL = %v, want 90s", cfg.Recommend.CacheTTL)
	}
	if cfg.Ingest.MalformedPolicy != "abort" {
		t.Errorf("Ingest.MalformedPolicy = %q, want abort", cfg.Ingest.MalformedPolicy)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if got := strings.Join(cfg.Security.CORSOrigins, "|"); got != "https://a.example|https://b.example" {
		t.Errorf("Security.CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want default 0.0.0.0", cfg.Server.Host)
	}
}

func TestLoadWithKoanf_ConfigFile(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, `
source:
  path: /srv/movies.txt.gz
recommend:
  threshold: 0.3
  max_count: 50
export:
  csv_path: /tmp/recommendations.csv
  resolve_ids: true
security:
  cors_origins:
    - https://shop.example
logging:
  format: console
`)
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Source.Path != "/srv/movies.txt.gz" {
		t.Errorf("Source.Path = %q", cfg.Source.Path)
	}
	if cfg.Recommend.Threshold != 0.3 {
		t.Errorf("Recommend.Threshold = %v, want 0.3", cfg.Recommend.Threshold)
	}
	if cfg.Recommend.MaxCount != 50 {
		t.Errorf("Recommend.MaxCount = %d, want 50", cfg.Recommend.MaxCount)
	}
	if cfg.Export.CSVPath != "/tmp/recommendations.csv" || !cfg.Export.ResolveIDs {
		t.Errorf("Export = %+v", cfg.Export)
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "https://shop.example" {
		t.Errorf("Security.CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %q, want console", cfg.Logging.Format)
	}
	if cfg.Recommend.DefaultCount != 3 {
		t.Errorf("Recommend.DefaultCount = %d, want default 3", cfg.Recommend.DefaultCount)
	}
}

func TestLoadWithKoanf_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, "recommend:\n  threshold: 0.3\nserver:\n  port: 7000\n")
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "7100")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 7100 {
		t.Errorf("Server.Port = %d, want 7100 (env wins)", cfg.Server.Port)
	}
	if cfg.Recommend.Threshold != 0.3 {
		t.Errorf("Recommend.Threshold = %v, want 0.3 (file)", cfg.Recommend.Threshold)
	}
}

func TestLoadWithKoanf_Validation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"threshold too high", map[string]string{"RECOMMEND_THRESHOLD": "1"}, "recommend.threshold"},
		{"bad policy", map[string]string{"INGEST_MALFORMED_POLICY": "ignore"}, "ingest.malformed_policy"},
		{"bad port", map[string]string{"HTTP_PORT": "70000"}, "server.port"},
		{"bad level", map[string]string{"LOG_LEVEL": "loud"}, "logging.level"},
		{"empty source", map[string]string{"REVIEWS_PATH": " "}, "source.path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadWithKoanf()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadWithKoanf() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadWithKoanf_BadFile(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, "recommend: [unclosed\n")
	t.Setenv(ConfigPathEnvVar, path)

	if _, err := LoadWithKoanf(); err == nil {
		t.Error("LoadWithKoanf() error = nil, want parse failure")
	}
}
