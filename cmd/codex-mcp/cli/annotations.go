// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

// ToolAnnotations describes behavioral properties of a tool that the
// MCP server translates into protocol hints. They help agents decide
// which tools are safe to call, which can be retried, and which
// require confirmation.
//
// All fields are pointers. A nil field means "unspecified" and the
// client applies the MCP defaults (not read-only, destructive, not
// idempotent, open-world).
type ToolAnnotations struct {
	// ReadOnly is true when the tool never modifies its environment.
	ReadOnly *bool

	// Destructive is true when the tool may irreversibly remove or
	// damage data.
	Destructive *bool

	// Idempotent is true when repeated calls with identical arguments
	// produce the same result.
	Idempotent *bool

	// OpenWorld is true when the tool interacts with entities beyond
	// the local machine.
	OpenWorld *bool
}

// ExternalQuery returns annotations for tools that consult an external
// model without changing anything locally: codex runs in a read-only
// sandbox, but its answers vary from call to call and it talks to a
// remote API.
func ExternalQuery() *ToolAnnotations {
	return &ToolAnnotations{
		ReadOnly:    boolPtr(true),
		Destructive: boolPtr(false),
		Idempotent:  boolPtr(false),
		OpenWorld:   boolPtr(true),
	}
}

func boolPtr(b bool) *bool { return &b }
