// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

// Package validation validates HTTP query parameters with
// go-playground/validator v10.
//
// Handlers copy path and query values into one of the request structs
// (RecommendationsRequest, NeighborsRequest, PredictionRequest,
// SimilarityRequest) and call ValidateStruct:
//
//	req := validation.RecommendationsRequest{UserID: id, Count: n, MaxCount: cfg.Limits.MaxCount}
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	    return
//	}
//
// Error messages name fields by their json tag, so a client sees
// "count must be at least 1" rather than a Go field name.
//
// The validator is created once and is safe for concurrent use.
package validation
