// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/reviewrec/internal/models"
)

// HealthLive reports that the process is serving HTTP. It never depends on
// the engine phase.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"status":         "alive",
			"uptime_seconds": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}

// HealthReady answers 200 once the engine serves queries and 503 while it is
// still ingesting. Both bodies carry the engine status.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	st := h.engine.Status()

	health := models.HealthResponse{
		Status:   "ready",
		Phase:    st.Phase,
		Ready:    st.Ready,
		Users:    st.Users,
		Products: st.Products,
		Reviews:  st.Reviews,
		ReadyAt:  st.ReadyAt,
		Uptime:   time.Since(h.startTime).Seconds(),
		Version:  h.config.Version,
	}

	code := http.StatusOK
	if !st.Ready {
		health.Status = "ingesting"
		code = http.StatusServiceUnavailable
	}

	respondJSON(w, code, &models.APIResponse{
		Status:   "success",
		Data:     health,
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}
