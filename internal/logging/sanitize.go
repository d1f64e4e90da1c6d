// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package logging

import (
	"strings"
	"unicode"
)

// MaxKeyLogLength bounds how much of a client-supplied key is written to logs.
const MaxKeyLogLength = 64

// SanitizeKey prepares an untrusted identifier (a path or query value) for
// logging: control characters are replaced with '?' and the result is cut
// to MaxKeyLogLength runes with a trailing "...".
func SanitizeKey(key string) string {
	if key == "" {
		return ""
	}

	var b strings.Builder
	n := 0
	for _, r := range key {
		if n == MaxKeyLogLength {
			b.WriteString("...")
			return b.String()
		}
		if unicode.IsControl(r) {
			r = '?'
		}
		b.WriteRune(r)
		n++
	}
	return b.String()
}
