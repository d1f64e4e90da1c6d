// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/reviewrec/internal/logging"
	"github.com/tomtom215/reviewrec/internal/models"
	"github.com/tomtom215/reviewrec/internal/validation"
)

// Stats returns the corpus totals and ingestion counters.
//
// GET /api/v1/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	st, err := h.engine.Stats()
	if err != nil {
		h.respondEngineError(w, r, err)
		return
	}

	respondSuccess(w, models.StatsResponse{
		TotalReviews:     st.TotalReviews,
		DistinctRatings:  st.DistinctRatings,
		TotalUsers:       st.TotalUsers,
		TotalProducts:    st.TotalProducts,
		LinesRead:        st.Lines,
		MalformedRecords: st.Malformed,
		IgnoredLines:     st.Ignored,
		IngestDurationMS: st.IngestDuration.Milliseconds(),
		ReadyAt:          st.ReadyAt,
	}, start)
}

// Recommendations returns up to count products for a user, best first.
//
// GET /api/v1/users/{userID}/recommendations?count=N
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	count, apiErr := getIntParam(r, "count", h.config.DefaultCount)
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	req := validation.RecommendationsRequest{
		UserID:   pathParam(r, "userID"),
		Count:    count,
		MaxCount: h.config.MaxCount,
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.QueryTimeout)
	defer cancel()

	recs, err := h.engine.RecommendScored(ctx, req.UserID, req.Count)
	if err != nil {
		h.respondEngineError(w, r, err)
		return
	}

	out := make([]models.RecommendedProduct, len(recs))
	for i, rec := range recs {
		out[i] = models.RecommendedProduct{ProductID: rec.ProductID, Score: rec.Score}
	}

	logging.Ctx(r.Context()).Debug().
		Str("user", logging.SanitizeKey(req.UserID)).
		Int("requested", req.Count).
		Int("returned", len(out)).
		Msg("Recommendations served")

	respondSuccess(w, models.RecommendationsResponse{
		UserID:          req.UserID,
		Requested:       req.Count,
		Recommendations: out,
	}, start)
}

// Neighbors returns the users above the similarity threshold.
//
// GET /api/v1/users/{userID}/neighbors?threshold=T
func (h *Handler) Neighbors(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	threshold, apiErr := getFloatParam(r, "threshold")
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	req := validation.NeighborsRequest{
		UserID:    pathParam(r, "userID"),
		Threshold: threshold,
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.QueryTimeout)
	defer cancel()

	found, err := h.engine.Neighbors(ctx, req.UserID, req.Threshold)
	if err != nil {
		h.respondEngineError(w, r, err)
		return
	}

	effective := h.config.DefaultThreshold
	if req.Threshold != nil {
		effective = *req.Threshold
	}

	out := make([]models.NeighborEntry, len(found))
	for i, n := range found {
		out[i] = models.NeighborEntry{UserID: n.UserID, Similarity: n.Similarity}
	}

	respondSuccess(w, models.NeighborsResponse{
		UserID:    req.UserID,
		Threshold: effective,
		Neighbors: out,
	}, start)
}

// Prediction estimates one user's rating for one product. A product no
// neighbor rated yields available=false rather than an error.
//
// GET /api/v1/users/{userID}/predictions/{productID}
func (h *Handler) Prediction(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := validation.PredictionRequest{
		UserID:    pathParam(r, "userID"),
		ProductID: pathParam(r, "productID"),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.QueryTimeout)
	defer cancel()

	score, ok, err := h.engine.Predict(ctx, req.UserID, req.ProductID)
	if err != nil {
		h.respondEngineError(w, r, err)
		return
	}

	resp := models.PredictionResponse{
		UserID:    req.UserID,
		ProductID: req.ProductID,
		Available: ok,
	}
	if ok {
		resp.Score = &score
	}
	respondSuccess(w, resp, start)
}

// Similarity returns the Pearson similarity of two users, or defined=false.
//
// GET /api/v1/similarity?a=U1&b=U2
func (h *Handler) Similarity(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	q := r.URL.Query()
	req := validation.SimilarityRequest{
		UserA: q.Get("a"),
		UserB: q.Get("b"),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	sim, ok, err := h.engine.Similarity(req.UserA, req.UserB)
	if err != nil {
		h.respondEngineError(w, r, err)
		return
	}

	resp := models.SimilarityResponse{
		UserA:   req.UserA,
		UserB:   req.UserB,
		Defined: ok,
	}
	if ok {
		resp.Similarity = &sim
	}
	respondSuccess(w, resp, start)
}
