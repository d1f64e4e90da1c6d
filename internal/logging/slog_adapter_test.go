// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestSlogHandler_Enabled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		level zerolog.Level
		slog  slog.Level
		want  bool
	}{
		{"debug logger enables debug", zerolog.DebugLevel, slog.LevelDebug, true},
		{"info logger disables debug", zerolog.InfoLevel, slog.LevelDebug, false},
		{"info logger enables warn", zerolog.InfoLevel, slog.LevelWarn, true},
		{"error logger disables warn", zerolog.ErrorLevel, slog.LevelWarn, false},
		{"error logger enables error", zerolog.ErrorLevel, slog.LevelError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := NewSlogHandlerWithLogger(zerolog.New(&bytes.Buffer{}).Level(tt.level))
			if got := h.Enabled(context.Background(), tt.slog); got != tt.want {
				t.Errorf("Enabled(%v) = %v, want %v", tt.slog, got, tt.want)
			}
		})
	}
}

func TestSlogHandler_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level slog.Level
		want  string
	}{
		{slog.LevelInfo, `"level":"info"`},
		{slog.LevelWarn, `"level":"warn"`},
		{slog.LevelError, `"level":"error"`},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			logger := slog.New(NewSlogHandlerWithLogger(zerolog.New(&buf)))
			logger.Log(context.Background(), tt.level, "event")

			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output %q missing %s", buf.String(), tt.want)
			}
		})
	}
}

func TestSlogHandler_AttrKinds(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewSlogHandlerWithLogger(zerolog.New(&buf)))
	logger.Info("service restarted",
		slog.String("service", "ingest"),
		slog.Int("restarts", 2),
		slog.Uint64("lines", 7),
		slog.Float64("backoff", 1.5),
		slog.Bool("terminal", false),
		slog.Duration("wait", 2*time.Second),
		slog.Any("err", errors.New("source missing")),
	)

	out := buf.String()
	for _, want := range []string{
		`"message":"service restarted"`,
		`"service":"ingest"`,
		`"restarts":2`,
		`"lines":7`,
		`"backoff":1.5`,
		`"terminal":false`,
		`"wait":`,
		`"err":"source missing"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestSlogHandler_WithAttrsAndGroups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewSlogHandlerWithLogger(zerolog.New(&buf))).
		With("supervisor", "reviewrec").
		WithGroup("event")
	logger.Info("backoff", "kind", "terminate", slog.Group("timing", slog.Int("ms", 15)))

	out := buf.String()
	for _, want := range []string{`"event.supervisor":"reviewrec"`, `"event.kind":"terminate"`, `"event.timing.ms":15`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestSlogHandler_WithGroupEmpty(t *testing.T) {
	t.Parallel()

	h := NewSlogHandlerWithLogger(zerolog.Nop())
	if got := h.WithGroup(""); got != h {
		t.Error("WithGroup(\"\") returned a new handler")
	}
}

func TestSlogHandler_WithAttrsDoesNotAlias(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := NewSlogHandlerWithLogger(zerolog.New(&buf)).WithAttrs([]slog.Attr{slog.String("a", "1")})
	_ = base.WithAttrs([]slog.Attr{slog.String("b", "2")})

	if err := base.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "base", 0)); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if strings.Contains(buf.String(), `"b":"2"`) {
		t.Errorf("sibling attrs leaked into base handler: %s", buf.String())
	}
}

func TestNewSlogLogger_UsesGlobal(t *testing.T) {
	restoreGlobal(t)
	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))

	NewSlogLogger().Warn("from slog")

	if !strings.Contains(buf.String(), "from slog") {
		t.Errorf("global logger not used: %q", buf.String())
	}
}
