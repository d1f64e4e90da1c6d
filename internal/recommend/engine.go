// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package recommend

import (
	"context"
	"fmt"
	"io"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reviewrec/internal/cache"
	"github.com/tomtom215/reviewrec/internal/metrics"
	"github.com/tomtom215/reviewrec/internal/recommend/algorithms"
	"github.com/tomtom215/reviewrec/internal/recommend/ingest"
	"github.com/tomtom215/reviewrec/internal/recommend/interner"
	"github.com/tomtom215/reviewrec/internal/recommend/ratings"
)

// Engine ingests a review log and answers recommendation queries over it.
//
// The engine starts in PhaseIngesting, where ratings are added by a single
// writer, and moves to PhaseReady exactly once via MarkReady. Query methods
// are safe for concurrent use once ready; ingestion methods are serialized.
type Engine struct {
	config *Config
	logger zerolog.Logger

	phase   atomic.Int32
	writeMu sync.Mutex

	users    *interner.Interner
	products *interner.Interner
	store    *ratings.Store
	parser   *ingest.Parser

	// Live counters for Status, updated by the writer.
	numUsers    atomic.Int64
	numProducts atomic.Int64
	numReviews  atomic.Int64

	// Set by MarkReady before the phase is published.
	cf      *algorithms.UserBasedCF
	stats   Stats
	results *cache.LRU[resultKey, []Recommendation]
}

type resultKey struct {
	user  int
	count int
}

// frozenRatings is the read-only view handed to the algorithms once ready.
type frozenRatings struct {
	*ratings.Store
	userIDs []int
}

// UserIDs returns the user ids captured at MarkReady.
func (f *frozenRatings) UserIDs() []int {
	return f.userIDs
}

// NewEngine creates a new recommendation engine in PhaseIngesting.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config:   cfg.Clone(),
		logger:   logger.With().Str("component", "recommend-engine").Logger(),
		users:    interner.New("user"),
		products: interner.New("product"),
		store:    ratings.NewStore(),
	}

	e.parser = ingest.NewParser(e.users, e.products, e.store, ingest.Config{
		Policy:           cfg.Ingest.MalformedPolicy,
		ProgressInterval: cfg.Ingest.ProgressInterval,
		Progress:         e.logProgress,
		OnMalformed: func(err *ingest.MalformedRecordError) {
			metrics.RecordMalformed(err.Field)
		},
	}, logger)

	metrics.SetEnginePhase(int(PhaseIngesting))
	return e, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Phase returns the current lifecycle phase.
func (e *Engine) Phase() Phase {
	return Phase(e.phase.Load())
}

func (e *Engine) requirePhase(op string, want Phase) error {
	if got := e.Phase(); got != want {
		return &InvalidPhaseError{Op: op, Phase: got}
	}
	return nil
}

// ========== Ingestion ==========

// Ingest consumes src to exhaustion. It may be called repeatedly for
// multiple sources; the parser cursor carries over between calls.
// The returned statistics are cumulative.
func (e *Engine) Ingest(ctx context.Context, src LineSource) (ingest.Stats, error) {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	if err := e.requirePhase("ingest", PhaseIngesting); err != nil {
		return ingest.Stats{}, err
	}

	start := time.Now()
	before := e.parser.Stats()

	stats, err := e.parser.Run(ctx, src)

	metrics.RecordIngest(
		stats.Lines-before.Lines,
		stats.Reviews-before.Reviews,
		stats.Ignored-before.Ignored,
		stats.Malformed-before.Malformed,
		time.Since(start),
	)
	e.publishCounts()

	if err != nil {
		e.logger.Error().Err(err).
			Int64("lines", stats.Lines).
			Int64("reviews", stats.Reviews).
			Msg("ingestion stopped")
		return stats, fmt.Errorf("ingest review log: %w", err)
	}

	e.logger.Info().
		Int64("lines", stats.Lines).
		Int64("reviews", stats.Reviews).
		Int("users", stats.Users).
		Int("products", stats.Products).
		Int64("malformed", stats.Malformed).
		Dur("duration", time.Since(start)).
		Msg("review log ingested")
	return stats, nil
}

// IngestLine feeds a single review log line through the parser.
func (e *Engine) IngestLine(line string) error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	if err := e.requirePhase("ingest line", PhaseIngesting); err != nil {
		return err
	}

	before := e.parser.Stats()
	err := e.parser.ParseLine(line)
	after := e.parser.Stats()

	metrics.RecordIngest(1, after.Reviews-before.Reviews, after.Ignored-before.Ignored, after.Malformed-before.Malformed, 0)
	e.publishCounts()
	return err
}

// AddRating records one rating directly, bypassing the log parser.
func (e *Engine) AddRating(userKey, productKey string, score float64) error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	if err := e.requirePhase("add rating", PhaseIngesting); err != nil {
		return err
	}

	if userKey == "" || productKey == "" {
		return &MalformedRecordError{Field: "rating", Reason: "empty user or product id"}
	}
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return &MalformedRecordError{Field: "score", Reason: fmt.Sprintf("%v is not a finite number", score)}
	}

	e.store.Add(e.users.Intern(userKey), e.products.Intern(productKey), score)
	e.publishCounts()
	return nil
}

func (e *Engine) publishCounts() {
	e.numUsers.Store(int64(e.users.Len()))
	e.numProducts.Store(int64(e.products.Len()))
	e.numReviews.Store(int64(e.store.Len()))
}

func (e *Engine) logProgress(s ingest.Stats) {
	e.logger.Info().
		Int64("lines", s.Lines).
		Int64("reviews", s.Reviews).
		Int("users", s.Users).
		Int("products", s.Products).
		Float64("lines_per_sec", s.LinesPerSecond()).
		Msg("ingestion progress")
}

// MarkReady freezes the ratings and enables queries. It may be called once.
func (e *Engine) MarkReady() error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	if err := e.requirePhase("mark ready", PhaseIngesting); err != nil {
		return err
	}

	frozen := &frozenRatings{Store: e.store, userIDs: e.store.UserIDs()}

	selector := algorithms.NewSelector(frozen, algorithms.NeighborhoodConfig{
		Threshold:  e.config.Neighborhood.Threshold,
		NumWorkers: e.config.Neighborhood.NumWorkers,
		ScanAll:    e.config.Neighborhood.ScanAll,
	})
	e.cf = algorithms.NewUserBasedCF(frozen, selector)

	if e.config.Cache.Enabled {
		e.results = cache.NewLRU[resultKey, []Recommendation](e.config.Cache.MaxEntries, e.config.Cache.TTL)
	}

	distinct := 0
	for _, uid := range frozen.userIDs {
		distinct += len(e.store.ByUser(uid))
	}

	ps := e.parser.Stats()
	e.stats = Stats{
		TotalReviews:    e.store.Len(),
		DistinctRatings: distinct,
		TotalUsers:      e.users.Len(),
		TotalProducts:   e.products.Len(),
		Lines:           ps.Lines,
		Malformed:       ps.Malformed,
		Ignored:         ps.Ignored,
		IngestDuration:  ps.Duration(),
		ReadyAt:         time.Now(),
	}

	e.publishCounts()
	e.phase.Store(int32(PhaseReady))

	metrics.SetEnginePhase(int(PhaseReady))
	metrics.UpdateCatalog(e.stats.TotalUsers, e.stats.TotalProducts, e.stats.DistinctRatings)

	e.logger.Info().
		Int("reviews", e.stats.TotalReviews).
		Int("distinct_ratings", distinct).
		Int("users", e.stats.TotalUsers).
		Int("products", e.stats.TotalProducts).
		Msg("engine ready")
	return nil
}

// ========== Status ==========

// Status returns the engine state. It never fails.
func (e *Engine) Status() Status {
	phase := e.Phase()
	s := Status{
		Phase:    phase.String(),
		Ready:    phase == PhaseReady,
		Users:    e.numUsers.Load(),
		Products: e.numProducts.Load(),
		Reviews:  e.numReviews.Load(),
	}
	if s.Ready {
		readyAt := e.stats.ReadyAt
		s.ReadyAt = &readyAt
	}
	return s
}

// Stats returns corpus totals.
func (e *Engine) Stats() (Stats, error) {
	if err := e.requirePhase("read stats", PhaseReady); err != nil {
		return Stats{}, err
	}
	return e.stats, nil
}

// CacheStats returns result cache statistics. The zero value is returned
// when caching is disabled or the engine is not ready.
func (e *Engine) CacheStats() cache.Stats {
	if e.Phase() != PhaseReady || e.results == nil {
		return cache.Stats{}
	}
	return e.results.Stats()
}

// ========== Queries ==========

// observe records query latency and failures.
func observe(op string, start time.Time, err error) {
	metrics.RecordQuery(op, time.Since(start), ErrorType(err))
}

// Recommend returns up to n product ids for the user, best first.
func (e *Engine) Recommend(ctx context.Context, userKey string, n int) ([]string, error) {
	recs, err := e.RecommendScored(ctx, userKey, n)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(recs))
	for i, r := range recs {
		ids[i] = r.ProductID
	}
	return ids, nil
}

// RecommendScored returns up to n products with predicted ratings, best
// first. A user with no neighbors gets an empty list.
func (e *Engine) RecommendScored(ctx context.Context, userKey string, n int) (recs []Recommendation, err error) {
	start := time.Now()
	defer func() { observe("recommend", start, err) }()

	if err := e.requirePhase("recommend", PhaseReady); err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, ErrInvalidCount
	}

	uid, err := e.users.ID(userKey)
	if err != nil {
		return nil, err
	}

	key := resultKey{user: uid, count: n}
	if e.results != nil {
		if cached, ok := e.results.Get(key); ok {
			metrics.RecordCacheLookup(true)
			return append([]Recommendation(nil), cached...), nil
		}
		metrics.RecordCacheLookup(false)
	}

	neighbors, err := e.cf.Selector().Neighbors(ctx, uid)
	if err != nil {
		return nil, err
	}
	metrics.RecordNeighborhood(len(neighbors))

	scored, err := e.cf.RecommendFromNeighbors(ctx, uid, neighbors, n)
	if err != nil {
		return nil, err
	}

	recs = make([]Recommendation, len(scored))
	for i, s := range scored {
		pid, err := e.products.Resolve(s.ProductID)
		if err != nil {
			return nil, fmt.Errorf("resolve recommended product: %w", err)
		}
		recs[i] = Recommendation{ProductID: pid, Score: s.Score}
	}
	metrics.RecordRecommendations(len(recs))

	if e.results != nil {
		e.results.Add(key, append([]Recommendation(nil), recs...))
	}

	e.logger.Debug().
		Str("user", userKey).
		Int("neighbors", len(neighbors)).
		Int("returned", len(recs)).
		Msg("recommendation complete")
	return recs, nil
}

// Neighbors returns the users whose similarity to userKey is strictly above
// the threshold, most similar first. A nil threshold uses the configured one.
func (e *Engine) Neighbors(ctx context.Context, userKey string, threshold *float64) (out []Neighbor, err error) {
	start := time.Now()
	defer func() { observe("neighbors", start, err) }()

	if err := e.requirePhase("find neighbors", PhaseReady); err != nil {
		return nil, err
	}

	uid, err := e.users.ID(userKey)
	if err != nil {
		return nil, err
	}

	t := e.config.Neighborhood.Threshold
	if threshold != nil {
		t = *threshold
	}

	found, err := e.cf.Selector().NeighborsWithThreshold(ctx, uid, t)
	if err != nil {
		return nil, err
	}
	metrics.RecordNeighborhood(len(found))

	out = make([]Neighbor, len(found))
	for i, n := range found {
		key, err := e.users.Resolve(n.UserID)
		if err != nil {
			return nil, fmt.Errorf("resolve neighbor: %w", err)
		}
		out[i] = Neighbor{UserID: key, Similarity: n.Similarity}
	}
	return out, nil
}

// Similarity returns the Pearson similarity of two users. The second result
// is false when the similarity is undefined for the pair.
func (e *Engine) Similarity(userA, userB string) (sim float64, ok bool, err error) {
	start := time.Now()
	defer func() { observe("similarity", start, err) }()

	if err := e.requirePhase("compute similarity", PhaseReady); err != nil {
		return 0, false, err
	}

	a, err := e.users.ID(userA)
	if err != nil {
		return 0, false, err
	}
	b, err := e.users.ID(userB)
	if err != nil {
		return 0, false, err
	}

	sim, ok = algorithms.Pearson(e.store.ByUser(a), e.store.ByUser(b))
	return sim, ok, nil
}

// Predict estimates the user's rating for one product. If the user already
// rated it the stored score is returned. The second result is false when no
// neighbor rated the product.
func (e *Engine) Predict(ctx context.Context, userKey, productKey string) (score float64, ok bool, err error) {
	start := time.Now()
	defer func() { observe("predict", start, err) }()

	if err := e.requirePhase("predict", PhaseReady); err != nil {
		return 0, false, err
	}

	uid, err := e.users.ID(userKey)
	if err != nil {
		return 0, false, err
	}
	pid, err := e.products.ID(productKey)
	if err != nil {
		return 0, false, err
	}

	return e.cf.Predict(ctx, uid, pid)
}

// ExportCSV writes the rating log as user,product,score rows in ingestion
// order. With resolved set, the original string ids are written instead of
// the integer ids.
func (e *Engine) ExportCSV(w io.Writer, resolved bool) error {
	if err := e.requirePhase("export ratings", PhaseReady); err != nil {
		return err
	}

	var err error
	if resolved {
		err = e.store.WriteCSV(w, e.users.Resolve, e.products.Resolve)
	} else {
		err = e.store.WriteIndexedCSV(w)
	}
	if err != nil {
		return fmt.Errorf("export ratings: %w", err)
	}

	e.logger.Info().
		Int("records", e.store.Len()).
		Bool("resolved", resolved).
		Msg("ratings exported")
	return nil
}
