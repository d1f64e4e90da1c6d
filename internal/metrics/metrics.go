// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Line kinds for IngestLines.
const (
	LineRecognized = "recognized"
	LineIgnored    = "ignored"
	LineMalformed  = "malformed"
)

var (
	// Ingestion Metrics
	IngestLines = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviewrec_ingest_lines_total",
			Help: "Total number of review log lines consumed",
		},
		[]string{"kind"}, // "recognized", "ignored", "malformed"
	)

	IngestReviews = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reviewrec_ingest_reviews_total",
			Help: "Total number of ratings emitted by the parser, duplicates included",
		},
	)

	IngestMalformed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviewrec_ingest_malformed_total",
			Help: "Total number of malformed review records",
		},
		[]string{"field"}, // "product", "user", "score"
	)

	IngestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reviewrec_ingest_duration_seconds",
			Help:    "Duration of review log ingestion runs in seconds",
			Buckets: []float64{0.1, 1, 5, 15, 30, 60, 120, 300, 600, 1800},
		},
	)

	// Catalog Metrics
	CatalogSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "reviewrec_catalog_size",
			Help: "Number of distinct entities interned",
		},
		[]string{"entity"}, // "user", "product", "rating"
	)

	EnginePhase = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reviewrec_engine_phase",
			Help: "Engine phase (0 = ingesting, 1 = ready)",
		},
	)

	// Query Metrics
	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reviewrec_query_duration_seconds",
			Help:    "Duration of engine queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // "recommend", "neighbors", "similarity", "predict"
	)

	QueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviewrec_query_errors_total",
			Help: "Total number of failed engine queries",
		},
		[]string{"operation", "error_type"},
	)

	NeighborhoodSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reviewrec_neighborhood_size",
			Help:    "Number of neighbors found per query",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000},
		},
	)

	RecommendationsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reviewrec_recommendations_returned",
			Help:    "Number of products returned per recommendation query",
			Buckets: []float64{0, 1, 3, 5, 10, 25, 50, 100},
		},
	)

	// Result Cache Metrics
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reviewrec_cache_hits_total",
			Help: "Total number of recommendation cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reviewrec_cache_misses_total",
			Help: "Total number of recommendation cache misses",
		},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of API requests currently being processed",
		},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordIngest records the counters of one ingestion run. All counts are
// deltas for the run, not cumulative totals. A zero duration records the
// counters only.
func RecordIngest(lines, reviews, ignored, malformed int64, duration time.Duration) {
	recognized := lines - ignored - malformed
	if recognized > 0 {
		IngestLines.WithLabelValues(LineRecognized).Add(float64(recognized))
	}
	if ignored > 0 {
		IngestLines.WithLabelValues(LineIgnored).Add(float64(ignored))
	}
	if malformed > 0 {
		IngestLines.WithLabelValues(LineMalformed).Add(float64(malformed))
	}
	if reviews > 0 {
		IngestReviews.Add(float64(reviews))
	}
	if duration > 0 {
		IngestDuration.Observe(duration.Seconds())
	}
}

// RecordMalformed records one malformed record for a field.
func RecordMalformed(field string) {
	IngestMalformed.WithLabelValues(field).Inc()
}

// UpdateCatalog sets the catalog size gauges.
func UpdateCatalog(users, products, ratings int) {
	CatalogSize.WithLabelValues("user").Set(float64(users))
	CatalogSize.WithLabelValues("product").Set(float64(products))
	CatalogSize.WithLabelValues("rating").Set(float64(ratings))
}

// SetEnginePhase records the engine phase as its numeric value.
func SetEnginePhase(phase int) {
	EnginePhase.Set(float64(phase))
}

// RecordQuery records the latency of an engine query. A non-empty errorType
// also counts the query as failed.
func RecordQuery(operation string, duration time.Duration, errorType string) {
	QueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if errorType != "" {
		QueryErrors.WithLabelValues(operation, errorType).Inc()
	}
}

// RecordNeighborhood records the size of a computed neighborhood.
func RecordNeighborhood(size int) {
	NeighborhoodSize.Observe(float64(size))
}

// RecordRecommendations records the length of a recommendation list.
func RecordRecommendations(count int) {
	RecommendationsReturned.Observe(float64(count))
}

// RecordCacheLookup records a result cache hit or miss.
func RecordCacheLookup(hit bool) {
	if hit {
		CacheHits.Inc()
	} else {
		CacheMisses.Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// SetAppInfo publishes the build version as a constant 1 gauge.
func SetAppInfo(version, goVersion string) {
	AppInfo.WithLabelValues(version, goVersion).Set(1)
}

// UpdateUptime sets the uptime gauge from the process start time.
func UpdateUptime(start time.Time) {
	AppUptime.Set(time.Since(start).Seconds())
}
