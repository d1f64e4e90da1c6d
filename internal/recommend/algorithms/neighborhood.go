// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package algorithms

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// DefaultThreshold is the similarity a user must strictly exceed to be a neighbor.
const DefaultThreshold = 0.1

// minParallelCandidates is the candidate count below which a neighborhood is
// computed on the calling goroutine.
const minParallelCandidates = 256

// cancelCheckEvery is how many candidates a worker scores between context checks.
const cancelCheckEvery = 128

// Neighbor is a user similar to the query target.
type Neighbor struct {
	UserID     int     `json:"user_id"`
	Similarity float64 `json:"similarity"`
}

// NeighborhoodConfig configures neighborhood selection.
type NeighborhoodConfig struct {
	// Threshold is the exclusive lower bound on similarity.
	Threshold float64

	// NumWorkers is the number of parallel workers. Zero means runtime.NumCPU().
	NumWorkers int

	// ScanAll scores every known user instead of only the users sharing at
	// least MinCoRated products with the target. Both produce the same set.
	ScanAll bool
}

// DefaultNeighborhoodConfig returns the default neighborhood configuration.
func DefaultNeighborhoodConfig() NeighborhoodConfig {
	return NeighborhoodConfig{
		Threshold:  DefaultThreshold,
		NumWorkers: runtime.NumCPU(),
	}
}

// Selector finds threshold-based user neighborhoods.
type Selector struct {
	source RatingSource
	config NeighborhoodConfig
}

// NewSelector creates a neighborhood selector over a rating source.
func NewSelector(source RatingSource, cfg NeighborhoodConfig) *Selector {
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = runtime.NumCPU()
	}
	return &Selector{source: source, config: cfg}
}

// Threshold returns the configured similarity threshold.
func (s *Selector) Threshold() float64 {
	return s.config.Threshold
}

// Neighbors returns every user other than target whose similarity to target
// is strictly greater than the configured threshold.
func (s *Selector) Neighbors(ctx context.Context, target int) ([]Neighbor, error) {
	return s.NeighborsWithThreshold(ctx, target, s.config.Threshold)
}

// NeighborsWithThreshold is Neighbors with an explicit threshold.
//
// Users with absent similarity are never neighbors. The result is ordered by
// similarity descending, ties broken by ascending user id, and is identical
// for every worker count.
func (s *Selector) NeighborsWithThreshold(ctx context.Context, target int, threshold float64) ([]Neighbor, error) {
	if ContextCancelled(ctx) {
		return nil, ctx.Err()
	}

	targetVec := s.source.ByUser(target)
	if len(targetVec) < MinCoRated {
		return nil, nil
	}

	var candidates []int
	if s.config.ScanAll {
		candidates = s.source.UserIDs()
	} else {
		candidates = s.coRatingCandidates(target, targetVec)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	workers := s.config.NumWorkers
	if len(candidates) < minParallelCandidates {
		workers = 1
	}

	chunkSize := (len(candidates) + workers - 1) / workers
	partials := make([][]Neighbor, workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > len(candidates) {
			end = len(candidates)
		}
		if start >= end {
			break
		}

		chunk := candidates[start:end]
		g.Go(func() error {
			found, err := s.scoreChunk(gctx, target, targetVec, chunk, threshold)
			if err != nil {
				return err
			}
			partials[w] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, p := range partials {
		total += len(p)
	}
	neighbors := make([]Neighbor, 0, total)
	for _, p := range partials {
		neighbors = append(neighbors, p...)
	}

	SortNeighbors(neighbors)
	return neighbors, nil
}

func (s *Selector) scoreChunk(ctx context.Context, target int, targetVec map[int]float64, users []int, threshold float64) ([]Neighbor, error) {
	var found []Neighbor
	for i, uid := range users {
		if i%cancelCheckEvery == 0 && ContextCancelled(ctx) {
			return nil, ctx.Err()
		}
		if uid == target {
			continue
		}

		sim, ok := Pearson(targetVec, s.source.ByUser(uid))
		if !ok || sim <= threshold {
			continue
		}
		found = append(found, Neighbor{UserID: uid, Similarity: sim})
	}
	return found, nil
}

// coRatingCandidates returns, ascending, the users other than target that
// share at least MinCoRated products with it. Every other user has absent
// similarity and can be skipped without changing the result.
func (s *Selector) coRatingCandidates(target int, targetVec map[int]float64) []int {
	shared := make(map[int]int)
	for pid := range targetVec {
		for uid := range s.source.ByProduct(pid) {
			if uid != target {
				shared[uid]++
			}
		}
	}

	candidates := make([]int, 0, len(shared))
	for uid, n := range shared {
		if n >= MinCoRated {
			candidates = append(candidates, uid)
		}
	}
	sort.Ints(candidates)
	return candidates
}

// SortNeighbors orders neighbors by similarity descending, then user id ascending.
func SortNeighbors(neighbors []Neighbor) {
	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].Similarity != neighbors[j].Similarity {
			return neighbors[i].Similarity > neighbors[j].Similarity
		}
		return neighbors[i].UserID < neighbors[j].UserID
	})
}
