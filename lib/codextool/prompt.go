// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codextool

import "strings"

// askPreamble frames codex as an assistant consulted mid-session.
const askPreamble = "You are a helpful software engineering assistant. " +
	"You are being consulted inline during another engineer's session. " +
	"Answer directly and concisely. " +
	"If conversation context is provided, use it to inform your answer " +
	"but focus on the question asked."

// reviewPreamble is OpenAI's published code review prompt. Its wording
// is load-bearing for the review schema and must stay verbatim.
const reviewPreamble = "You are acting as a reviewer for a proposed code change made by another engineer.\n" +
	"Focus on issues that impact correctness, performance, security, maintainability, or developer experience.\n" +
	"Flag only actionable issues introduced by the pull request.\n" +
	"When you flag an issue, provide a short, direct explanation and cite the affected file and line range.\n" +
	"Prioritize severe issues and avoid nit-level comments unless they block understanding of the diff.\n" +
	`After listing findings, produce an overall correctness verdict ("patch is correct" or "patch is incorrect") with a concise justification and a confidence score between 0 and 1.` + "\n" +
	"Ensure that file citations and line numbers are exactly correct using the tools available; if they are incorrect your comments will be rejected."

// askPrompt assembles the codex_ask prompt. The question is passed
// through untouched; the context is trimmed and fenced.
func askPrompt(question, conversationContext string) string {
	lines := []string{askPreamble, ""}
	lines = appendFenced(lines, "Conversation context:", conversationContext)
	lines = append(lines, question)
	return strings.Join(lines, "\n")
}

// reviewPrompt assembles the codex_review prompt. The diff is fenced
// byte for byte so line numbers in findings match the caller's diff.
func reviewPrompt(diff, focus, projectContext string) string {
	lines := []string{reviewPreamble, ""}
	lines = appendFenced(lines, "Project conventions and standards:", projectContext)
	if focus = strings.TrimSpace(focus); focus != "" {
		lines = append(lines, "Focus: "+focus, "")
	}
	lines = append(lines, "Diff to review:", "---", diff, "---")
	return strings.Join(lines, "\n")
}

// appendFenced adds a heading and body between --- fences followed by
// a blank line. Blank bodies add nothing.
func appendFenced(lines []string, heading, body string) []string {
	body = strings.TrimSpace(body)
	if body == "" {
		return lines
	}
	return append(lines, heading, "---", body, "---", "")
}
