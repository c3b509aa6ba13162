// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codex

import "strings"

// DefaultAuthFailureMarkers are the stderr phrases codex prints when
// an account cannot use the requested model. The list is a heuristic:
// codex may phrase other access failures differently, in which case
// no fallback happens and the original diagnostic reaches the caller.
var DefaultAuthFailureMarkers = []string{
	"not supported when using Codex with a ChatGPT account",
	"model_not_found",
	"does not have access",
	"permission denied",
}

// AuthFailureMatcher decides whether a diagnostic indicates that the
// requested model was refused for authorization reasons. Matching is
// a case-insensitive substring search over a fixed marker list.
type AuthFailureMatcher struct {
	markers []string
}

// NewAuthFailureMatcher builds a matcher from markers. Empty markers
// are ignored; a nil or empty list selects DefaultAuthFailureMarkers.
func NewAuthFailureMatcher(markers []string) AuthFailureMatcher {
	if len(markers) == 0 {
		markers = DefaultAuthFailureMarkers
	}
	lowered := make([]string, 0, len(markers))
	for _, marker := range markers {
		marker = strings.ToLower(strings.TrimSpace(marker))
		if marker != "" {
			lowered = append(lowered, marker)
		}
	}
	return AuthFailureMatcher{markers: lowered}
}

// Match reports whether diagnostic contains any marker.
func (m AuthFailureMatcher) Match(diagnostic string) bool {
	if diagnostic == "" {
		return false
	}
	text := strings.ToLower(diagnostic)
	for _, marker := range m.markers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}
