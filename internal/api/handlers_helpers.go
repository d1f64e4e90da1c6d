// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package api

import (
	"errors"
	"hash/fnv"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/reviewrec/internal/logging"
	"github.com/tomtom215/reviewrec/internal/models"
	"github.com/tomtom215/reviewrec/internal/recommend"
	"github.com/tomtom215/reviewrec/internal/validation"
)

// respondJSON sends a JSON response with an ETag over the encoded body.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("ETag", generateETag(data))
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

func generateETag(data []byte) string {
	h := fnv.New32a()
	_, _ = h.Write(data)
	return `"` + strconv.FormatUint(uint64(h.Sum32()), 16) + `"`
}

// respondSuccess wraps data in a success envelope timed from start.
func respondSuccess(w http.ResponseWriter, data interface{}, start time.Time) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// respondError sends an error envelope. A non-nil err is logged.
func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	respondAPIError(w, status, &models.APIError{Code: code, Message: message}, err)
}

func respondAPIError(w http.ResponseWriter, status int, apiErr *models.APIError, err error) {
	if err != nil {
		logging.Error().
			Str("code", apiErr.Code).
			Str("error", logging.SanitizeKey(err.Error())).
			Msg("API error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status: "error",
		Data:   nil,
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
		},
		Error: apiErr,
	})
}

// respondEngineError maps an engine error to its HTTP status and code.
func (h *Handler) respondEngineError(w http.ResponseWriter, r *http.Request, err error) {
	var unknown *recommend.UnknownIDError
	var phase *recommend.InvalidPhaseError

	switch {
	case errors.As(err, &unknown):
		key := unknown.Key
		if key == "" {
			key = strconv.Itoa(unknown.ID)
		}
		respondAPIError(w, http.StatusNotFound, &models.APIError{
			Code:    models.ErrCodeNotFound,
			Message: err.Error(),
			Details: map[string]interface{}{"kind": unknown.Kind, "id": key},
		}, nil)

	case errors.As(err, &phase):
		respondAPIError(w, http.StatusServiceUnavailable, &models.APIError{
			Code:    models.ErrCodeNotReady,
			Message: "Engine is still ingesting reviews",
			Details: map[string]interface{}{"phase": phase.Phase.String()},
		}, nil)

	case errors.Is(err, recommend.ErrInvalidCount):
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, err.Error(), nil)

	default:
		h.logger.Error().
			Err(err).
			Str("request_id", logging.RequestIDFromContext(r.Context())).
			Str("path", logging.SanitizeKey(r.URL.Path)).
			Msg("Query failed")
		respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "Internal server error", nil)
	}
}

// validateRequest validates a request struct, returning nil when it passes.
func validateRequest(v interface{}) *models.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	apiErr := validationErr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

func invalidParam(name, value, want string) *models.APIError {
	return &models.APIError{
		Code:    models.ErrCodeValidation,
		Message: name + " must be " + want,
		Details: map[string]interface{}{"field": name, "value": logging.SanitizeKey(value)},
	}
}

// getIntParam parses an integer query parameter, returning defaultValue
// when it is absent.
func getIntParam(r *http.Request, key string, defaultValue int) (int, *models.APIError) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalidParam(key, raw, "an integer")
	}
	return v, nil
}

// getFloatParam parses an optional float query parameter; nil means absent.
func getFloatParam(r *http.Request, key string) (*float64, *models.APIError) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, invalidParam(key, raw, "a number")
	}
	return &v, nil
}

// pathParam returns a decoded chi URL parameter. chi routes on the escaped
// path when one exists, so ids with reserved characters arrive encoded.
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
