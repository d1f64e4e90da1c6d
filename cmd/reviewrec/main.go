// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/reviewrec/internal/api"
	"github.com/tomtom215/reviewrec/internal/config"
	"github.com/tomtom215/reviewrec/internal/logging"
	"github.com/tomtom215/reviewrec/internal/metrics"
	"github.com/tomtom215/reviewrec/internal/recommend"
	"github.com/tomtom215/reviewrec/internal/supervisor"
	"github.com/tomtom215/reviewrec/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		logging.Error().Err(err).Msg("Failed to load configuration")
		return 1
	}

	logging.Init(cfg.Logging.ToLogging())
	metrics.SetAppInfo(version, runtime.Version())

	logging.Info().
		Str("version", version).
		Str("source", cfg.Source.Path).
		Str("addr", cfg.Server.Addr()).
		Float64("threshold", cfg.Recommend.Threshold).
		Msg("Starting reviewrec")

	if cfg.HasWildcardCORS() {
		logging.Warn().Msg("CORS allows any origin (*); restrict security.cors_origins in production")
	}
	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("API rate limiting is disabled")
	}

	engineCfg, err := cfg.EngineConfig()
	if err != nil {
		logging.Error().Err(err).Msg("Invalid engine configuration")
		return 1
	}
	engine, err := recommend.NewEngine(engineCfg, logging.WithComponent("engine"))
	if err != nil {
		logging.Error().Err(err).Msg("Failed to create engine")
		return 1
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Error().Err(err).Msg("Failed to create supervisor tree")
		return 1
	}

	ingestSvc := services.NewIngestService(engine, services.IngestServiceConfig{
		SourcePath: cfg.Source.Path,
		ExportPath: cfg.Export.CSVPath,
		ResolveIDs: cfg.Export.ResolveIDs,
	}, nil, logging.Logger())
	tree.AddIngestService(ingestSvc)

	handler := api.NewHandler(engine, api.HandlerConfigFromEngine(engineCfg, cfg.Server.Timeout, version), logging.Logger())
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(cfg.Security)))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logging.Logger()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Msg("Starting supervisor tree")
	err = tree.Serve(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		logging.Debug().Err(err).Msg("Supervisor tree stopped")
	}

	if unstopped, reportErr := tree.UnstoppedServiceReport(); reportErr == nil {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}

	if ingestErr := ingestSvc.Err(); ingestErr != nil && ctx.Err() == nil {
		logging.Error().Err(ingestErr).Msg("Review ingestion failed")
		return 1
	}

	logging.Info().Msg("Application stopped gracefully")
	return 0
}
