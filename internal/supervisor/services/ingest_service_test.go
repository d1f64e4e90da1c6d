// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package services

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/reviewrec/internal/recommend"
	"github.com/tomtom215/reviewrec/internal/recommend/ingest"
)

const reviewLog = `product/productId: P1
review/userId: U1
review/score: 5.0
product/productId: P1
review/userId: U2
review/score: 4.0
`

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reviews.txt")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func newEngine(t *testing.T) *recommend.Engine {
	t.Helper()
	e, err := recommend.NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func waitReady(t *testing.T, svc *IngestService) {
	t.Helper()
	select {
	case <-svc.Ready():
	case <-time.After(2 * time.Second):
		t.Fatalf("engine not ready, Err() = %v", svc.Err())
	}
}

func TestIngestService_Interface(t *testing.T) {
	var _ suture.Service = (*IngestService)(nil)
	var _ IngestEngine = (*recommend.Engine)(nil)
}

func TestIngestService_LoadsAndIdles(t *testing.T) {
	engine := newEngine(t)
	svc := NewIngestService(engine, IngestServiceConfig{SourcePath: writeLog(t, reviewLog)}, nil, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	waitReady(t, svc)

	if engine.Phase() != recommend.PhaseReady {
		t.Errorf("Phase() = %v, want ready", engine.Phase())
	}
	st := engine.Status()
	if st.Users != 2 || st.Products != 1 || st.Reviews != 2 {
		t.Errorf("Status() = %+v, want 2 users, 1 product, 2 reviews", st)
	}

	select {
	case err := <-errCh:
		t.Fatalf("Serve() returned early: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Serve() did not return after cancel")
	}
	if svc.Err() != nil {
		t.Errorf("Err() = %v, want nil", svc.Err())
	}
}

func TestIngestService_RestartDoesNotReingest(t *testing.T) {
	var opens atomic.Int32
	open := func(path string) (SourceFile, error) {
		opens.Add(1)
		return OpenFileSource(path)
	}
	svc := NewIngestService(newEngine(t), IngestServiceConfig{SourcePath: writeLog(t, reviewLog)}, open, zerolog.Nop())

	for i := 0; i < 2; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("run %d: Serve() = %v, want deadline exceeded", i, err)
		}
		cancel()
	}

	if got := opens.Load(); got != 1 {
		t.Errorf("source opened %d times, want 1", got)
	}
}

func TestIngestService_MissingSourceTerminatesTree(t *testing.T) {
	svc := NewIngestService(newEngine(t), IngestServiceConfig{
		SourcePath: filepath.Join(t.TempDir(), "missing.txt.gz"),
	}, nil, zerolog.Nop())

	err := svc.Serve(context.Background())
	if !errors.Is(err, suture.ErrTerminateSupervisorTree) {
		t.Fatalf("Serve() = %v, want ErrTerminateSupervisorTree", err)
	}
	if !errors.Is(svc.Err(), ErrIngestFailed) || !errors.Is(svc.Err(), os.ErrNotExist) {
		t.Errorf("Err() = %v, want ErrIngestFailed wrapping os.ErrNotExist", svc.Err())
	}

	// A restart after a failure terminates again without retrying.
	if err := svc.Serve(context.Background()); !errors.Is(err, suture.ErrTerminateSupervisorTree) {
		t.Errorf("second Serve() = %v, want ErrTerminateSupervisorTree", err)
	}

	select {
	case <-svc.Ready():
		t.Error("Ready() closed after failure")
	default:
	}
}

func TestIngestService_MalformedAbort(t *testing.T) {
	cfg := recommend.DefaultConfig()
	cfg.Ingest.MalformedPolicy = ingest.PolicyAbort
	engine, err := recommend.NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	path := writeLog(t, "product/productId: P1\nreview/userId: U1\nreview/score: great\n")
	svc := NewIngestService(engine, IngestServiceConfig{SourcePath: path}, nil, zerolog.Nop())

	if err := svc.Serve(context.Background()); !errors.Is(err, suture.ErrTerminateSupervisorTree) {
		t.Fatalf("Serve() = %v, want ErrTerminateSupervisorTree", err)
	}
	if !errors.Is(svc.Err(), recommend.ErrMalformedRecord) {
		t.Errorf("Err() = %v, want ErrMalformedRecord", svc.Err())
	}
	if engine.Phase() != recommend.PhaseIngesting {
		t.Errorf("Phase() = %v, want ingesting", engine.Phase())
	}
}

func TestIngestService_Export(t *testing.T) {
	tests := []struct {
		name     string
		resolved bool
		want     string
	}{
		{"indexed", false, "1,1,5\n2,1,4\n"},
		{"resolved", true, "U1,P1,5\nU2,P1,4\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exportPath := filepath.Join(t.TempDir(), "recommendations.csv")
			svc := NewIngestService(newEngine(t), IngestServiceConfig{
				SourcePath: writeLog(t, reviewLog),
				ExportPath: exportPath,
				ResolveIDs: tt.resolved,
			}, nil, zerolog.Nop())

			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan struct{})
			go func() {
				_ = svc.Serve(ctx)
				close(done)
			}()
			waitReady(t, svc)

			var got []byte
			deadline := time.Now().Add(2 * time.Second)
			for time.Now().Before(deadline) {
				if data, err := os.ReadFile(exportPath); err == nil {
					got = data
					break
				}
				time.Sleep(10 * time.Millisecond)
			}
			cancel()
			<-done

			if string(got) != tt.want {
				t.Errorf("export = %q, want %q", got, tt.want)
			}

			leftovers, _ := filepath.Glob(exportPath + ".*.tmp")
			if len(leftovers) != 0 {
				t.Errorf("temporary files left: %v", leftovers)
			}
		})
	}
}

// failingEngine fails the export step only.
type failingEngine struct {
	*recommend.Engine
}

func (f failingEngine) ExportCSV(w io.Writer, resolved bool) error {
	return errors.New("disk full")
}

func TestIngestService_ExportFailureIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	exportPath := filepath.Join(dir, "out.csv")
	svc := NewIngestService(failingEngine{newEngine(t)}, IngestServiceConfig{
		SourcePath: writeLog(t, reviewLog),
		ExportPath: exportPath,
	}, nil, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v, want deadline exceeded", err)
	}
	if svc.Err() != nil {
		t.Errorf("Err() = %v, want nil", svc.Err())
	}

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") || e.Name() == "out.csv" {
			t.Errorf("unexpected file %s after failed export", e.Name())
		}
	}
}

func TestIngestService_String(t *testing.T) {
	svc := NewIngestService(newEngine(t), IngestServiceConfig{}, nil, zerolog.Nop())
	if svc.String() != "ingest-service" {
		t.Errorf("String() = %q, want ingest-service", svc.String())
	}
}
