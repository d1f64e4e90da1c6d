// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

/*
Package api exposes the recommendation engine over HTTP using the chi router.

Routes:

	GET /health/live                                   process liveness, always 200
	GET /health/ready                                  200 when ready, 503 while ingesting
	GET /api/v1/stats                                  corpus totals
	GET /api/v1/users/{userID}/recommendations?count=N ordered products with scores
	GET /api/v1/users/{userID}/neighbors?threshold=T   similar users
	GET /api/v1/users/{userID}/predictions/{productID} single predicted rating
	GET /api/v1/similarity?a=U1&b=U2                   Pearson similarity of two users
	GET /metrics                                       Prometheus exposition

Every JSON response uses the models.APIResponse envelope. Engine errors map
to HTTP as follows:

	unknown user or product    404 NOT_FOUND
	engine still ingesting     503 NOT_READY
	bad parameter              400 VALIDATION_ERROR
	rate limit hit             429 RATE_LIMIT_EXCEEDED
	anything else              500 INTERNAL_ERROR

Middleware order is request id and logging context, real IP, panic
recovery and CORS globally, then per group rate limiting (go-chi/httprate),
security headers, Prometheus metrics and, for /api/v1, gzip compression.

The handlers depend on the small Engine interface rather than
*recommend.Engine so tests can substitute a fake.
*/
package api
