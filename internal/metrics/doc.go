// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

/*
Package metrics provides Prometheus metrics collection and export for observability.

Collectors are registered with the default registry through promauto at package
initialization and exposed by the API server at /metrics:

	curl http://localhost:8080/metrics

# Available Metrics

Ingestion Metrics:
  - reviewrec_ingest_lines_total: Lines consumed (counter)
    Labels: kind (recognized, ignored, malformed)
  - reviewrec_ingest_reviews_total: Ratings emitted, duplicates included (counter)
  - reviewrec_ingest_malformed_total: Malformed records (counter)
    Labels: field (product, user, score)
  - reviewrec_ingest_duration_seconds: Ingestion run time (histogram)

Catalog Metrics:
  - reviewrec_catalog_size: Interned entities (gauge)
    Labels: entity (user, product, rating)
  - reviewrec_engine_phase: 0 while ingesting, 1 once ready (gauge)

Query Metrics:
  - reviewrec_query_duration_seconds: Engine query latency (histogram)
    Labels: operation
  - reviewrec_query_errors_total: Failed queries (counter)
    Labels: operation, error_type
  - reviewrec_neighborhood_size: Neighbors per query (histogram)
  - reviewrec_recommendations_returned: Products per recommendation list (histogram)
  - reviewrec_cache_hits_total / reviewrec_cache_misses_total: Result cache lookups (counter)

API Metrics:
  - api_requests_total: Requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)

System Metrics:
  - app_info: Version and Go runtime (gauge)
  - app_uptime_seconds: Process uptime (gauge)

# Usage

Record helpers wrap the collectors so call sites stay one line:

	start := time.Now()
	recs, err := engine.Recommend(ctx, user, n)
	metrics.RecordQuery("recommend", time.Since(start), "")

Example PromQL:

	# Ingestion throughput
	rate(reviewrec_ingest_lines_total[1m])

	# P95 recommendation latency
	histogram_quantile(0.95, rate(reviewrec_query_duration_seconds_bucket{operation="recommend"}[5m]))

	# Result cache hit rate
	rate(reviewrec_cache_hits_total[5m]) /
	  (rate(reviewrec_cache_hits_total[5m]) + rate(reviewrec_cache_misses_total[5m]))

# Thread Safety

All collectors are safe for concurrent use.
*/
package metrics
