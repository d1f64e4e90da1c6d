// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

// Package ratings holds the sparse user x product rating matrix.
//
// The Store keeps an append-only log of every observed rating together with
// two derived views built at insert time:
//
//   - user-indexed:    userID    -> {productID -> score}
//   - product-indexed: productID -> {userID -> score}
//
// Ids are the dense integers produced by the interner, so both views are
// slices indexed by id rather than maps keyed by id. Iterating them in index
// order gives ascending ids without sorting.
//
// Repeated (user, product) observations are all appended to the log and all
// counted. The views keep the most recent score for the pair.
package ratings

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Record is one observed rating.
type Record struct {
	UserID    int
	ProductID int
	Score     float64
}

// Store accumulates ratings. It has a single writer during ingestion and
// is read-only afterwards.
type Store struct {
	records   []Record
	byUser    []map[int]float64
	byProduct []map[int]float64

	numUsers    int
	numProducts int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		records:   make([]Record, 0, 1024),
		byUser:    make([]map[int]float64, 1, 256),
		byProduct: make([]map[int]float64, 1, 256),
	}
}

// Add appends a rating and updates both views. Ids must be positive.
func (s *Store) Add(userID, productID int, score float64) {
	s.records = append(s.records, Record{UserID: userID, ProductID: productID, Score: score})

	s.byUser = grow(s.byUser, userID)
	if s.byUser[userID] == nil {
		s.byUser[userID] = make(map[int]float64, 4)
		s.numUsers++
	}
	s.byUser[userID][productID] = score

	s.byProduct = grow(s.byProduct, productID)
	if s.byProduct[productID] == nil {
		s.byProduct[productID] = make(map[int]float64, 4)
		s.numProducts++
	}
	s.byProduct[productID][userID] = score
}

// grow extends views so that index id is addressable.
func grow(views []map[int]float64, id int) []map[int]float64 {
	if id < len(views) {
		return views
	}
	if id < cap(views) {
		return views[:id+1]
	}
	next := make([]map[int]float64, id+1, 2*(id+1))
	copy(next, views)
	return next
}

// ByUser returns productID -> score for a user, or nil if the user has no ratings.
// The returned map must not be modified.
func (s *Store) ByUser(userID int) map[int]float64 {
	if userID <= 0 || userID >= len(s.byUser) {
		return nil
	}
	return s.byUser[userID]
}

// ByProduct returns userID -> score for a product, or nil if the product has no ratings.
// The returned map must not be modified.
func (s *Store) ByProduct(productID int) map[int]float64 {
	if productID <= 0 || productID >= len(s.byProduct) {
		return nil
	}
	return s.byProduct[productID]
}

// UserIDs returns the ids of all users with at least one rating, ascending.
func (s *Store) UserIDs() []int {
	return presentIDs(s.byUser, s.numUsers)
}

// ProductIDs returns the ids of all products with at least one rating, ascending.
func (s *Store) ProductIDs() []int {
	return presentIDs(s.byProduct, s.numProducts)
}

func presentIDs(views []map[int]float64, n int) []int {
	ids := make([]int, 0, n)
	for id := 1; id < len(views); id++ {
		if views[id] != nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// Len returns the number of records appended, duplicates included.
func (s *Store) Len() int {
	return len(s.records)
}

// NumUsers returns the number of users with at least one rating.
func (s *Store) NumUsers() int {
	return s.numUsers
}

// NumProducts returns the number of products with at least one rating.
func (s *Store) NumProducts() int {
	return s.numProducts
}

// Records returns the append-only log in insertion order. The slice must not be modified.
func (s *Store) Records() []Record {
	return s.records
}

// ResolveFunc maps a dense id back to its original key.
type ResolveFunc func(id int) (string, error)

// WriteIndexedCSV writes the log as "userID,productID,score" rows using integer ids.
func (s *Store) WriteIndexedCSV(w io.Writer) error {
	return s.WriteCSV(w, nil, nil)
}

// WriteCSV writes the log as "user,product,score" rows, one per record, in
// insertion order. When resolvers are non-nil the original keys are written
// instead of integer ids.
func (s *Store) WriteCSV(w io.Writer, resolveUser, resolveProduct ResolveFunc) error {
	cw := csv.NewWriter(w)
	row := make([]string, 3)

	for i, rec := range s.records {
		var err error
		if row[0], err = formatID(rec.UserID, resolveUser); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		if row[1], err = formatID(rec.ProductID, resolveProduct); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		row[2] = strconv.FormatFloat(rec.Score, 'f', -1, 64)

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

func formatID(id int, resolve ResolveFunc) (string, error) {
	if resolve == nil {
		return strconv.Itoa(id), nil
	}
	return resolve(id)
}
