// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/reviewrec/internal/recommend/ingest"
)

// IngestEngine is the part of *recommend.Engine the ingest service drives.
type IngestEngine interface {
	Ingest(ctx context.Context, src ingest.LineSource) (ingest.Stats, error)
	MarkReady() error
	ExportCSV(w io.Writer, resolved bool) error
}

// SourceFile is an open review log.
type SourceFile interface {
	ingest.LineSource
	io.Closer
}

// SourceOpener opens the review log at path.
type SourceOpener func(path string) (SourceFile, error)

// OpenFileSource opens a plain or gzip review log from disk.
func OpenFileSource(path string) (SourceFile, error) {
	src, err := ingest.Open(path)
	if err != nil {
		return nil, err
	}
	return src, nil
}

// IngestServiceConfig holds the ingest service settings.
type IngestServiceConfig struct {
	// SourcePath is the review log to load.
	SourcePath string

	// ExportPath, when set, receives the rating log as CSV once the engine
	// is ready.
	ExportPath string

	// ResolveIDs writes the original string ids to the export instead of
	// the integer ids.
	ResolveIDs bool
}

// ErrIngestFailed wraps the cause of a failed ingestion run.
var ErrIngestFailed = errors.New("review ingestion failed")

// IngestService loads the review log into the engine once, marks it ready,
// writes the optional export, and then idles until shutdown.
//
// Ingestion cannot be retried on the same engine, so a failure terminates
// the supervisor tree. The cause is available from Err.
type IngestService struct {
	engine IngestEngine
	config IngestServiceConfig
	open   SourceOpener
	logger zerolog.Logger
	name   string

	mu      sync.Mutex
	started bool
	err     error
	ready   chan struct{}
}

// NewIngestService creates the service. A nil opener uses OpenFileSource.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewIngestService(engine IngestEngine, cfg IngestServiceConfig, open SourceOpener, logger zerolog.Logger) *IngestService {
	if open == nil {
		open = OpenFileSource
	}
	return &IngestService{
		engine: engine,
		config: cfg,
		open:   open,
		logger: logger.With().Str("service", "ingest").Logger(),
		name:   "ingest-service",
		ready:  make(chan struct{}),
	}
}

// Serve implements suture.Service.
func (s *IngestService) Serve(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		failed := s.err != nil
		s.mu.Unlock()
		if failed {
			return suture.ErrTerminateSupervisorTree
		}
		<-ctx.Done()
		return ctx.Err()
	}
	s.started = true
	s.mu.Unlock()

	logger := s.logger.With().
		Str("run_id", uuid.NewString()).
		Str("source", s.config.SourcePath).
		Logger()

	if err := s.run(ctx, &logger); err != nil {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()

		if ctx.Err() != nil {
			logger.Warn().Err(err).Msg("ingestion interrupted by shutdown")
			return ctx.Err()
		}
		logger.Error().Err(err).Msg("ingestion failed, stopping")
		return suture.ErrTerminateSupervisorTree
	}

	close(s.ready)

	if s.config.ExportPath != "" {
		if err := s.export(&logger); err != nil {
			logger.Error().Err(err).Str("path", s.config.ExportPath).Msg("rating export failed")
		}
	}

	<-ctx.Done()
	logger.Debug().Msg("ingest service shutting down")
	return ctx.Err()
}

func (s *IngestService) run(ctx context.Context, logger *zerolog.Logger) error {
	start := time.Now()
	logger.Info().Msg("ingestion starting")

	src, err := s.open(s.config.SourcePath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIngestFailed, err)
	}

	stats, err := s.engine.Ingest(ctx, src)
	if closeErr := src.Close(); closeErr != nil {
		logger.Warn().Err(closeErr).Msg("failed to close review log")
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIngestFailed, err)
	}

	if err := s.engine.MarkReady(); err != nil {
		return fmt.Errorf("%w: %w", ErrIngestFailed, err)
	}

	logger.Info().
		Int64("lines", stats.Lines).
		Int64("reviews", stats.Reviews).
		Int("users", stats.Users).
		Int("products", stats.Products).
		Int64("malformed", stats.Malformed).
		Dur("duration", time.Since(start)).
		Msg("engine ready")
	return nil
}

// export writes to a temporary file in the target directory and renames it
// into place so readers never see a partial file.
func (s *IngestService) export(logger *zerolog.Logger) (err error) {
	path := s.config.ExportPath
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err := s.engine.ExportCSV(tmp, s.config.ResolveIDs); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename export file: %w", err)
	}

	logger.Info().Str("path", path).Bool("resolved_ids", s.config.ResolveIDs).Msg("ratings exported")
	return nil
}

// Ready is closed once the engine has been marked ready.
func (s *IngestService) Ready() <-chan struct{} {
	return s.ready
}

// Err returns the ingestion failure, if any.
func (s *IngestService) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// String returns the service name for logging.
func (s *IngestService) String() string {
	return s.name
}
