// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles renders the bracketed annotation lines of a codex response
// ([exit code N], [stderr] ..., [no output], [model: ...]) so they
// stand apart from the model's answer on a terminal. The color profile
// is detected from the destination writer: pipes and files get the
// text unchanged.
type Styles struct {
	failure    lipgloss.Style
	diagnostic lipgloss.Style
	muted      lipgloss.Style
}

// NewStyles returns Styles for output written to w.
func NewStyles(w io.Writer) Styles {
	renderer := lipgloss.NewRenderer(w)
	return Styles{
		failure:    renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		diagnostic: renderer.NewStyle().Foreground(lipgloss.Color("11")),
		muted:      renderer.NewStyle().Faint(true),
	}
}

// Response styles every annotation line of response. Only the
// trailing annotation block is considered: lines of the model's own
// answer that happen to start with a bracket are left alone.
func (s Styles) Response(response string) string {
	lines := strings.Split(response, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		styled, ok := s.annotation(lines[i])
		if !ok {
			break
		}
		lines[i] = styled
	}
	return strings.Join(lines, "\n")
}

func (s Styles) annotation(line string) (string, bool) {
	switch {
	case strings.HasPrefix(line, "[model: "), line == "[no output]":
		return s.muted.Render(line), true
	case strings.HasPrefix(line, "[exit code "):
		return s.failure.Render(line), true
	case strings.HasPrefix(line, "[stderr] "):
		return s.diagnostic.Render(line), true
	default:
		return line, false
	}
}
