// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

/*
Command reviewrec loads an Amazon-style product review log and serves
user-based collaborative filtering recommendations over HTTP.

Startup order:

 1. Configuration: koanf layers of defaults, config.yaml and environment
 2. Logging: zerolog initialized from the logging section
 3. Engine: recommend.Engine built from the recommend and ingest sections
 4. Supervisor tree: the ingest service and the HTTP server start together

	reviewrec
	├── ingest-layer
	│   └── ingest-service   read log, mark engine ready, optional CSV export
	└── api-layer
	    └── http-server      /health, /api/v1, /metrics

While the log is being read, /health/ready answers 503 and query endpoints
answer NOT_READY. A failed ingestion stops the process with exit status 1.

Example:

	REVIEWS_PATH=/data/movies.txt.gz \
	RECOMMEND_THRESHOLD=0.1 \
	EXPORT_CSV_PATH=/data/recommendations.csv \
	HTTP_PORT=8080 \
	./reviewrec

	curl 'localhost:8080/api/v1/users/A141HP4LYPWMSR/recommendations?count=3'

SIGINT and SIGTERM shut the tree down gracefully, waiting up to
server.shutdown_timeout for in-flight requests.
*/
package main
