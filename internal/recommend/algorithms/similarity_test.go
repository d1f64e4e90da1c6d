// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package algorithms

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/tomtom215/reviewrec/internal/recommend/ratings"
)

const tolerance = 1e-9

// newSource builds a rating store from userID -> productID -> score.
func newSource(t *testing.T, users map[int]map[int]float64) *ratings.Store {
	t.Helper()

	uids := make([]int, 0, len(users))
	for uid := range users {
		uids = append(uids, uid)
	}
	sort.Ints(uids)

	store := ratings.NewStore()
	for _, uid := range uids {
		pids := make([]int, 0, len(users[uid]))
		for pid := range users[uid] {
			pids = append(pids, pid)
		}
		sort.Ints(pids)
		for _, pid := range pids {
			store.Add(uid, pid, users[uid][pid])
		}
	}
	return store
}

// randomSource generates numUsers users, each rating perUser distinct
// products out of numProducts with integer scores 1-5.
func randomSource(t *testing.T, seed int64, numUsers, numProducts, perUser int) *ratings.Store {
	t.Helper()

	rng := rand.New(rand.NewSource(seed))
	users := make(map[int]map[int]float64, numUsers)
	for uid := 1; uid <= numUsers; uid++ {
		vec := make(map[int]float64, perUser)
		for _, p := range rng.Perm(numProducts)[:perUser] {
			vec[p+1] = float64(rng.Intn(5) + 1)
		}
		users[uid] = vec
	}
	return newSource(t, users)
}

func TestPearson(t *testing.T) {
	tests := []struct {
		name   string
		a, b   map[int]float64
		want   float64
		wantOK bool
	}{
		{
			name:   "identical vectors",
			a:      map[int]float64{1: 5, 2: 3},
			b:      map[int]float64{1: 5, 2: 3},
			want:   1,
			wantOK: true,
		},
		{
			name:   "perfect negative correlation",
			a:      map[int]float64{1: 1, 2: 2, 3: 3},
			b:      map[int]float64{1: 3, 2: 2, 3: 1},
			want:   -1,
			wantOK: true,
		},
		{
			name:   "partial correlation",
			a:      map[int]float64{1: 5, 2: 3, 3: 4},
			b:      map[int]float64{1: 4, 2: 2, 3: 5},
			want:   math.Sqrt(3.0 / 7.0),
			wantOK: true,
		},
		{
			name:   "only co-rated products count",
			a:      map[int]float64{1: 5, 2: 3, 9: 1},
			b:      map[int]float64{1: 5, 2: 3, 7: 5},
			want:   1,
			wantOK: true,
		},
		{
			name:   "scale and shift invariant",
			a:      map[int]float64{1: 1, 2: 2, 3: 4},
			b:      map[int]float64{1: 2, 2: 3, 3: 5},
			want:   1,
			wantOK: true,
		},
		{
			name:   "single co-rated product is absent",
			a:      map[int]float64{1: 5, 2: 3},
			b:      map[int]float64{1: 5, 3: 3},
			wantOK: false,
		},
		{
			name:   "no overlap is absent",
			a:      map[int]float64{1: 5, 2: 3},
			b:      map[int]float64{3: 5, 4: 3},
			wantOK: false,
		},
		{
			name:   "flat ratings are absent",
			a:      map[int]float64{1: 5, 2: 3},
			b:      map[int]float64{1: 1, 2: 1},
			wantOK: false,
		},
		{
			name:   "flat over co-rated subset is absent",
			a:      map[int]float64{1: 4, 2: 4, 3: 1},
			b:      map[int]float64{1: 2, 2: 5},
			wantOK: false,
		},
		{
			name:   "single rating is absent",
			a:      map[int]float64{1: 5},
			b:      map[int]float64{1: 5, 2: 3},
			wantOK: false,
		},
		{
			name:   "nil vectors are absent",
			a:      nil,
			b:      nil,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Pearson(tt.a, tt.b)
			if ok != tt.wantOK {
				t.Fatalf("Pearson() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && math.Abs(got-tt.want) > tolerance {
				t.Errorf("Pearson() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPearson_Symmetric(t *testing.T) {
	store := randomSource(t, 7, 60, 12, 6)
	users := store.UserIDs()

	for _, a := range users {
		for _, b := range users {
			ab, okAB := Pearson(store.ByUser(a), store.ByUser(b))
			ba, okBA := Pearson(store.ByUser(b), store.ByUser(a))
			if okAB != okBA {
				t.Fatalf("Pearson(%d,%d) ok = %v, reverse ok = %v", a, b, okAB, okBA)
			}
			if math.Abs(ab-ba) > tolerance {
				t.Errorf("Pearson(%d,%d) = %v, reverse = %v", a, b, ab, ba)
			}
		}
	}
}

func TestPearson_Bounded(t *testing.T) {
	store := randomSource(t, 11, 80, 10, 7)
	users := store.UserIDs()

	for _, a := range users {
		for _, b := range users {
			sim, ok := Pearson(store.ByUser(a), store.ByUser(b))
			if ok && (sim < -1 || sim > 1) {
				t.Errorf("Pearson(%d,%d) = %v, outside [-1, 1]", a, b, sim)
			}
		}
	}
}

func TestPearson_SelfSimilarity(t *testing.T) {
	vectors := []map[int]float64{
		{1: 5, 2: 3},
		{1: 1, 2: 2, 3: 5, 4: 4},
		{10: 2.5, 20: 4.5, 30: 1},
	}

	for i, vec := range vectors {
		sim, ok := Pearson(vec, vec)
		if !ok {
			t.Errorf("vector %d: Pearson(v, v) absent, want 1.0", i)
			continue
		}
		if math.Abs(sim-1) > tolerance {
			t.Errorf("vector %d: Pearson(v, v) = %v, want 1.0", i, sim)
		}
	}

	if _, ok := Pearson(map[int]float64{1: 3, 2: 3}, map[int]float64{1: 3, 2: 3}); ok {
		t.Error("Pearson(v, v) defined for zero-variance v")
	}
}
