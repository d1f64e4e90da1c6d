// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package ingest

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedRecord is matched by every *MalformedRecordError via errors.Is.
var ErrMalformedRecord = errors.New("malformed record")

// MalformedRecordError reports a line carrying a recognized label whose
// value cannot be used.
type MalformedRecordError struct {
	// Line is the 1-based line number within the ingestion run.
	Line int64

	// Field is the record field: "product", "user" or "score".
	Field string

	// Reason describes what was wrong with the value.
	Reason string

	// Text is the offending line, truncated for logging.
	Text string
}

// Error implements the error interface.
func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed %s record at line %d: %s", e.Field, e.Line, e.Reason)
}

// Is makes errors.Is(err, ErrMalformedRecord) succeed for any MalformedRecordError.
func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

const maxErrorText = 120

func newMalformed(line int64, field, reason, text string) *MalformedRecordError {
	text = strings.TrimSpace(text)
	if len(text) > maxErrorText {
		text = text[:maxErrorText] + "..."
	}
	return &MalformedRecordError{Line: line, Field: field, Reason: reason, Text: text}
}

// Policy decides what happens when a malformed record is encountered.
type Policy int

const (
	// PolicySkip counts the line as malformed and continues. This is the default.
	PolicySkip Policy = iota

	// PolicyAbort stops ingestion and returns the *MalformedRecordError.
	PolicyAbort
)

// String returns the configuration name of the policy.
func (p Policy) String() string {
	switch p {
	case PolicySkip:
		return "skip"
	case PolicyAbort:
		return "abort"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy converts a configuration value into a Policy.
// The empty string selects PolicySkip.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "skip":
		return PolicySkip, nil
	case "abort":
		return PolicyAbort, nil
	default:
		return PolicySkip, fmt.Errorf("unknown malformed record policy %q (want skip or abort)", s)
	}
}
