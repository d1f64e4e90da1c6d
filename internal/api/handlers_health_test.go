// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package api

import (
	"net/http"
	"testing"

	"github.com/tomtom215/reviewrec/internal/models"
)

func TestHealthLive(t *testing.T) {
	for _, ready := range []bool{false, true} {
		srv := newTestServer(t, newEngine(t, ready))
		rec, env := get(t, srv, "/health/live")
		if rec.Code != http.StatusOK {
			t.Errorf("ready=%v: status = %d, want 200", ready, rec.Code)
		}
		if env.Status != "success" {
			t.Errorf("ready=%v: envelope status = %q", ready, env.Status)
		}
	}
}

func TestHealthReady(t *testing.T) {
	tests := []struct {
		name       string
		ready      bool
		wantCode   int
		wantStatus string
	}{
		{"ingesting", false, http.StatusServiceUnavailable, "ingesting"},
		{"ready", true, http.StatusOK, "ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, newEngine(t, tt.ready))

			rec, env := get(t, srv, "/health/ready")
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			var got models.HealthResponse
			decodeData(t, env, &got)

			if got.Status != tt.wantStatus || got.Phase != tt.wantStatus || got.Ready != tt.ready {
				t.Errorf("health = %+v", got)
			}
			if got.Users != 3 || got.Products != 4 || got.Reviews != 9 {
				t.Errorf("counts = %d/%d/%d, want 3/4/9", got.Users, got.Products, got.Reviews)
			}
			if (got.ReadyAt != nil) != tt.ready {
				t.Errorf("ReadyAt = %v, want set only when ready", got.ReadyAt)
			}
			if got.Version != "test" {
				t.Errorf("Version = %q, want test", got.Version)
			}
		})
	}
}

func TestHealth_SecurityHeaders(t *testing.T) {
	srv := newTestServer(t, newEngine(t, true))

	rec, _ := get(t, srv, "/health/live")
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("health route missing security headers")
	}
	if rec.Header().Get("ETag") == "" {
		t.Error("missing ETag")
	}
}
