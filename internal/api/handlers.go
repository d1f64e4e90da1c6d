// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package api

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reviewrec/internal/recommend"
)

// Engine is the part of *recommend.Engine the handlers use.
type Engine interface {
	Status() recommend.Status
	Stats() (recommend.Stats, error)
	RecommendScored(ctx context.Context, userKey string, n int) ([]recommend.Recommendation, error)
	Neighbors(ctx context.Context, userKey string, threshold *float64) ([]recommend.Neighbor, error)
	Similarity(userA, userB string) (float64, bool, error)
	Predict(ctx context.Context, userKey, productKey string) (float64, bool, error)
}

// HandlerConfig holds the request defaults and limits of the query endpoints.
type HandlerConfig struct {
	// DefaultCount is used when the count parameter is absent.
	DefaultCount int
	// MaxCount caps the count parameter; zero means no cap.
	MaxCount int
	// DefaultThreshold is reported when the threshold parameter is absent.
	DefaultThreshold float64
	// QueryTimeout bounds each engine query.
	QueryTimeout time.Duration
	// Version is reported by the health endpoints.
	Version string
}

// DefaultHandlerConfig matches the engine defaults.
func DefaultHandlerConfig() HandlerConfig {
	limits := recommend.DefaultConfig()
	return HandlerConfig{
		DefaultCount:     limits.Limits.DefaultCount,
		MaxCount:         limits.Limits.MaxCount,
		DefaultThreshold: limits.Neighborhood.Threshold,
		QueryTimeout:     10 * time.Second,
	}
}

// HandlerConfigFromEngine derives the handler limits from an engine config.
func HandlerConfigFromEngine(cfg *recommend.Config, timeout time.Duration, version string) HandlerConfig {
	hc := DefaultHandlerConfig()
	if cfg != nil {
		hc.DefaultCount = cfg.Limits.DefaultCount
		hc.MaxCount = cfg.Limits.MaxCount
		hc.DefaultThreshold = cfg.Neighborhood.Threshold
	}
	if timeout > 0 {
		hc.QueryTimeout = timeout
	}
	hc.Version = version
	return hc
}

// Handler serves the JSON endpoints.
type Handler struct {
	engine    Engine
	config    HandlerConfig
	logger    zerolog.Logger
	startTime time.Time
}

// NewHandler creates a handler over the given engine.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHandler(engine Engine, cfg HandlerConfig, logger zerolog.Logger) *Handler {
	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = DefaultHandlerConfig().QueryTimeout
	}
	return &Handler{
		engine:    engine,
		config:    cfg,
		logger:    logger.With().Str("component", "api").Logger(),
		startTime: time.Now(),
	}
}
