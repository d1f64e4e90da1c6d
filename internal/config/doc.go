// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

/*
Package config loads and validates reviewrec configuration.

# Configuration Sources

Load layers three sources with koanf, later layers overriding earlier ones:

 1. Built-in defaults (the koanf-tagged Config struct)
 2. A YAML file: CONFIG_PATH, or the first of config.yaml, config.yml,
    /etc/reviewrec/config.yaml, /etc/reviewrec/config.yml
 3. Environment variables, through an explicit name mapping

Unknown environment variables are ignored.

# Environment Variables

Source and ingestion:
  - REVIEWS_PATH: review log, plain or gzip (default: movies.txt.gz)
  - INGEST_MALFORMED_POLICY: skip or abort (default: skip)
  - INGEST_PROGRESS_INTERVAL: minimum time between progress lines (default: 10s)

Recommendation engine: see RecommendConfig.

Export:
  - EXPORT_CSV_PATH: write user,product,score triples after ingestion (default: disabled)
  - EXPORT_RESOLVE_IDS: write original keys instead of dense ids (default: false)

HTTP server:
  - HTTP_HOST, HTTP_PORT (default: 0.0.0.0:8080)
  - HTTP_TIMEOUT (default: 30s), HTTP_SHUTDOWN_TIMEOUT (default: 10s)
  - CORS_ORIGINS: comma-separated allowed origins (default: none)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW (default: 100 per 1m)
  - DISABLE_RATE_LIMIT (default: false)

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Example

	# config.yaml
	source:
	  path: /data/movies.txt.gz
	recommend:
	  threshold: 0.2
	  default_count: 5
	server:
	  port: 9090
*/
package config
