// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package ingest

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/reviewrec/internal/recommend/interner"
	"github.com/tomtom215/reviewrec/internal/recommend/ratings"
)

// Record labels recognized in the review log. Every other line is ignored.
const (
	ProductLabel = "product/productId:"
	UserLabel    = "review/userId:"
	ScoreLabel   = "review/score:"
)

// ctxCheckEvery is how many lines Run processes between context checks.
const ctxCheckEvery = 4096

// LineSource is a single-pass sequence of text lines.
// *bufio.Scanner satisfies it.
type LineSource interface {
	Scan() bool
	Text() string
	Err() error
}

// Cursor is the review block currently being read: the most recently seen
// user and product ids. Zero means not seen yet.
type Cursor struct {
	UserID    int
	ProductID int
}

// Complete reports whether both ids have been seen.
func (c Cursor) Complete() bool {
	return c.UserID > 0 && c.ProductID > 0
}

// Reset clears the cursor.
func (c *Cursor) Reset() {
	*c = Cursor{}
}

// ProgressFunc receives periodic statistics during Run.
type ProgressFunc func(Stats)

// Config configures a Parser.
type Config struct {
	// Policy selects skip or abort for malformed records.
	// Default: PolicySkip
	Policy Policy

	// ProgressInterval is the minimum time between Progress calls during Run.
	// Default: 10s
	ProgressInterval time.Duration

	// Progress is called at most once per ProgressInterval. Optional.
	Progress ProgressFunc

	// OnMalformed is called for every malformed record under either policy. Optional.
	OnMalformed func(*MalformedRecordError)
}

// Parser turns review log lines into ratings.
//
// A review block looks like:
//
//	product/productId: B003AI2VGA
//	review/userId: A141HP4LYPWMSR
//	review/profileName: Brian E. Erland "Rainbow Sphinx"
//	review/score: 3.0
//	review/text: ...
//
// Product and user lines update the cursor, interning the id on first
// sight. A score line emits exactly one rating for the cursor's user and
// product. Line order is significant, so a Parser must be driven by a
// single goroutine.
type Parser struct {
	users    *interner.Interner
	products *interner.Interner
	store    *ratings.Store

	config    Config
	cursor    Cursor
	stats     Stats
	sometimes *rate.Sometimes
	logger    zerolog.Logger
}

// NewParser creates a parser writing into the given interners and store.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewParser(users, products *interner.Interner, store *ratings.Store, cfg Config, logger zerolog.Logger) *Parser {
	if cfg.ProgressInterval <= 0 {
		cfg.ProgressInterval = 10 * time.Second
	}
	return &Parser{
		users:     users,
		products:  products,
		store:     store,
		config:    cfg,
		sometimes: &rate.Sometimes{Interval: cfg.ProgressInterval},
		logger:    logger.With().Str("component", "ingest").Logger(),
	}
}

// Cursor returns the current review block state.
func (p *Parser) Cursor() Cursor {
	return p.cursor
}

// Stats returns a snapshot of the counters.
func (p *Parser) Stats() Stats {
	s := p.stats
	s.Users = p.users.Len()
	s.Products = p.products.Len()
	return s
}

// ParseLine processes one line. Malformed records are counted; under
// PolicyAbort the *MalformedRecordError is also returned.
func (p *Parser) ParseLine(line string) error {
	p.stats.Lines++

	err := p.apply(&p.cursor, p.stats.Lines, line)
	if err == nil {
		return nil
	}

	p.stats.Malformed++
	if p.config.OnMalformed != nil {
		p.config.OnMalformed(err)
	}
	if p.config.Policy == PolicyAbort {
		return err
	}
	p.logger.Debug().
		Int64("line", err.Line).
		Str("field", err.Field).
		Str("reason", err.Reason).
		Msg("skipping malformed record")
	return nil
}

// apply advances cur by one line and writes a rating on score lines.
func (p *Parser) apply(cur *Cursor, lineNo int64, line string) *MalformedRecordError {
	switch {
	case strings.HasPrefix(line, ProductLabel):
		value, ok := firstToken(line[len(ProductLabel):])
		if !ok {
			return newMalformed(lineNo, "product", "missing value", line)
		}
		cur.ProductID = p.products.Intern(value)

	case strings.HasPrefix(line, UserLabel):
		value, ok := firstToken(line[len(UserLabel):])
		if !ok {
			return newMalformed(lineNo, "user", "missing value", line)
		}
		cur.UserID = p.users.Intern(value)

	case strings.HasPrefix(line, ScoreLabel):
		value, ok := firstToken(line[len(ScoreLabel):])
		if !ok {
			return newMalformed(lineNo, "score", "missing value", line)
		}
		score, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsNaN(score) || math.IsInf(score, 0) {
			return newMalformed(lineNo, "score", fmt.Sprintf("%q is not a finite number", value), line)
		}
		if !cur.Complete() {
			return newMalformed(lineNo, "score", "score before user and product", line)
		}
		p.store.Add(cur.UserID, cur.ProductID, score)
		p.stats.Reviews++

	default:
		p.stats.Ignored++
	}
	return nil
}

// firstToken returns the first whitespace-delimited token of s.
func firstToken(s string) (string, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	if s == "" {
		return "", false
	}
	if end := strings.IndexFunc(s, unicode.IsSpace); end >= 0 {
		s = s[:end]
	}
	return s, true
}

// Run consumes src to exhaustion. It returns the cumulative statistics and
// the first error from the source, the context, or (under PolicyAbort) a
// malformed record.
func (p *Parser) Run(ctx context.Context, src LineSource) (Stats, error) {
	if p.stats.StartTime.IsZero() {
		p.stats.StartTime = time.Now()
	}
	startLines := p.stats.Lines

	defer func() {
		p.stats.EndTime = time.Now()
	}()

	for src.Scan() {
		if (p.stats.Lines-startLines)%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return p.Stats(), err
			}
		}

		if err := p.ParseLine(src.Text()); err != nil {
			return p.Stats(), err
		}

		if p.config.Progress != nil {
			p.sometimes.Do(func() {
				p.config.Progress(p.Stats())
			})
		}
	}

	if err := src.Err(); err != nil {
		return p.Stats(), fmt.Errorf("failed to read review log at line %d: %w", p.stats.Lines+1, err)
	}

	p.stats.EndTime = time.Now()
	stats := p.Stats()
	p.logger.Debug().
		Int64("lines", stats.Lines).
		Int64("reviews", stats.Reviews).
		Int64("malformed", stats.Malformed).
		Msg("review log consumed")
	return stats, nil
}
