// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

// Package interner assigns dense integer identities to opaque string keys.
//
// Each entity class (users, products) gets its own Interner. Ids are handed
// out sequentially starting at 1 in first-seen order and are never reused,
// so the reverse mapping is stored as a slice indexed by id.
//
// An Interner is written by a single goroutine during ingestion. Once the
// engine is READY it is only read, and reads may happen concurrently.
package interner

import (
	"errors"
	"fmt"
)

// ErrUnknownID is matched by every *UnknownIDError via errors.Is.
var ErrUnknownID = errors.New("unknown id")

// UnknownIDError reports a lookup of a key or id that was never interned.
// Exactly one of Key or ID is set.
type UnknownIDError struct {
	Kind string
	Key  string
	ID   int
}

// Error implements the error interface.
func (e *UnknownIDError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("unknown %s %q", e.Kind, e.Key)
	}
	return fmt.Sprintf("unknown %s id %d", e.Kind, e.ID)
}

// Is makes errors.Is(err, ErrUnknownID) succeed for any UnknownIDError.
func (e *UnknownIDError) Is(target error) bool {
	return target == ErrUnknownID
}

// Interner is a bidirectional string <-> int mapping.
type Interner struct {
	kind    string
	forward map[string]int
	// reverse[id] holds the key for id; index 0 is unused.
	reverse []string
}

// New creates an empty interner. Kind names the entity class ("user",
// "product") and only appears in error messages.
func New(kind string) *Interner {
	return &Interner{
		kind:    kind,
		forward: make(map[string]int),
		reverse: []string{""},
	}
}

// Kind returns the entity class name.
func (in *Interner) Kind() string {
	return in.kind
}

// Intern returns the id for key, allocating the next sequential id on first sight.
func (in *Interner) Intern(key string) int {
	if id, ok := in.forward[key]; ok {
		return id
	}
	id := len(in.reverse)
	in.forward[key] = id
	in.reverse = append(in.reverse, key)
	return id
}

// Lookup returns the id for key without allocating one.
func (in *Interner) Lookup(key string) (int, bool) {
	id, ok := in.forward[key]
	return id, ok
}

// ID is Lookup with an *UnknownIDError for keys never interned.
func (in *Interner) ID(key string) (int, error) {
	id, ok := in.forward[key]
	if !ok {
		return 0, &UnknownIDError{Kind: in.kind, Key: key}
	}
	return id, nil
}

// Resolve returns the original key for id.
func (in *Interner) Resolve(id int) (string, error) {
	if id <= 0 || id >= len(in.reverse) {
		return "", &UnknownIDError{Kind: in.kind, ID: id}
	}
	return in.reverse[id], nil
}

// Len returns the number of interned keys, which is also the highest id assigned.
func (in *Interner) Len() int {
	return len(in.reverse) - 1
}
