// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package recommend

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/reviewrec/internal/recommend/algorithms"
	"github.com/tomtom215/reviewrec/internal/recommend/ingest"
	"github.com/tomtom215/reviewrec/internal/recommend/interner"
)

// Errors defined by the leaf packages, re-exported so callers only need this one.
type (
	UnknownIDError       = interner.UnknownIDError
	MalformedRecordError = ingest.MalformedRecordError
)

var (
	// ErrUnknownID matches any *UnknownIDError.
	ErrUnknownID = interner.ErrUnknownID

	// ErrMalformedRecord matches any *MalformedRecordError.
	ErrMalformedRecord = ingest.ErrMalformedRecord

	// ErrInvalidCount is returned for a non-positive recommendation count.
	ErrInvalidCount = algorithms.ErrInvalidCount

	// ErrInvalidPhase matches any *InvalidPhaseError.
	ErrInvalidPhase = errors.New("operation not permitted in current engine phase")
)

// InvalidPhaseError reports an ingestion call after MarkReady or a query
// before it.
type InvalidPhaseError struct {
	Op    string
	Phase Phase
}

func (e *InvalidPhaseError) Error() string {
	return fmt.Sprintf("cannot %s: engine is %s", e.Op, e.Phase)
}

// Is implements errors.Is.
func (e *InvalidPhaseError) Is(target error) bool {
	return target == ErrInvalidPhase
}

// ErrorType classifies an engine error for metric labels.
func ErrorType(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnknownID):
		return "unknown_id"
	case errors.Is(err, ErrInvalidPhase):
		return "invalid_phase"
	case errors.Is(err, ErrInvalidCount):
		return "invalid_count"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "internal"
	}
}
