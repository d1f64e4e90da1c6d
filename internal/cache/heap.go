// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package cache

import "sort"

// TopK keeps the k best items seen so far according to a strict ordering.
//
// Internally it is a min-heap whose root is the worst retained item, so each
// Push is O(log k) and a stream of n candidates is ranked in O(n log k)
// instead of sorting all n. TopK is not safe for concurrent use.
type TopK[T any] struct {
	k    int
	heap []T
	// better reports whether a ranks strictly ahead of b.
	better func(a, b T) bool
}

// NewTopK creates a selector retaining at most k items. better must be a
// strict total order for results to be deterministic.
func NewTopK[T any](k int, better func(a, b T) bool) *TopK[T] {
	if k < 0 {
		k = 0
	}
	capHint := k
	if capHint > 1024 {
		capHint = 1024
	}
	return &TopK[T]{
		k:      k,
		heap:   make([]T, 0, capHint),
		better: better,
	}
}

// Push offers an item. It reports whether the item was retained.
func (t *TopK[T]) Push(item T) bool {
	if t.k == 0 {
		return false
	}
	if len(t.heap) < t.k {
		t.heap = append(t.heap, item)
		t.bubbleUp(len(t.heap) - 1)
		return true
	}
	// Root is the worst retained item.
	if !t.better(item, t.heap[0]) {
		return false
	}
	t.heap[0] = item
	t.bubbleDown(0)
	return true
}

// Len returns the number of retained items.
func (t *TopK[T]) Len() int {
	return len(t.heap)
}

// Sorted returns the retained items best first. The selector is left empty.
func (t *TopK[T]) Sorted() []T {
	out := t.heap
	t.heap = nil
	sort.Slice(out, func(i, j int) bool {
		return t.better(out[i], out[j])
	})
	return out
}

// worse is the heap ordering: the root is the item every other item beats.
func (t *TopK[T]) worse(i, j int) bool {
	return t.better(t.heap[j], t.heap[i])
}

func (t *TopK[T]) bubbleUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !t.worse(i, parent) {
			break
		}
		t.heap[i], t.heap[parent] = t.heap[parent], t.heap[i]
		i = parent
	}
}

func (t *TopK[T]) bubbleDown(i int) {
	n := len(t.heap)
	for {
		smallest := i
		left := 2*i + 1
		right := 2*i + 2

		if left < n && t.worse(left, smallest) {
			smallest = left
		}
		if right < n && t.worse(right, smallest) {
			smallest = right
		}
		if smallest == i {
			return
		}
		t.heap[i], t.heap[smallest] = t.heap[smallest], t.heap[i]
		i = smallest
	}
}
