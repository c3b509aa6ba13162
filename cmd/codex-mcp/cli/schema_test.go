// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"slices"
	"testing"
)

func TestParamsSchema(t *testing.T) {
	schema, err := ParamsSchema(&testParams{})
	if err != nil {
		t.Fatalf("ParamsSchema: %v", err)
	}

	if schema.Type != "object" {
		t.Errorf("Type = %q, want object", schema.Type)
	}
	for _, name := range []string{"question", "context", "model", "timeout_seconds"} {
		if _, ok := schema.Properties[name]; !ok {
			t.Errorf("property %q missing", name)
		}
	}
	// Fields without a json tag stay command-line only.
	for _, name := range []string{"DiffFile", "diff-file", "diff_file"} {
		if _, ok := schema.Properties[name]; ok {
			t.Errorf("property %q should not be in the schema", name)
		}
	}
	if !slices.Equal(schema.Required, []string{"question"}) {
		t.Errorf("Required = %v, want [question]", schema.Required)
	}

	timeout := schema.Properties["timeout_seconds"]
	if timeout.Type != "integer" || timeout.Default != 30 {
		t.Errorf("timeout_seconds = %+v, want integer with default 30", timeout)
	}
	if schema.Properties["question"].Description != "the question" {
		t.Errorf("question description = %q", schema.Properties["question"].Description)
	}
}

func TestParamsSchema_JSON(t *testing.T) {
	schema, err := ParamsSchema(testParams{})
	if err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(schema)
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	properties := decoded["properties"].(map[string]any)
	model := properties["model"].(map[string]any)
	if _, hasDefault := model["default"]; hasDefault {
		t.Error("model has no default tag and should omit default")
	}
}

func TestSchema_SetDefault(t *testing.T) {
	schema, err := ParamsSchema(testParams{})
	if err != nil {
		t.Fatal(err)
	}
	schema.SetDefault("model", "gpt-5.3-codex")
	schema.SetDefault("absent", "ignored")

	if schema.Properties["model"].Default != "gpt-5.3-codex" {
		t.Errorf("model default = %v", schema.Properties["model"].Default)
	}
	if _, ok := schema.Properties["absent"]; ok {
		t.Error("SetDefault created a property")
	}
}

func TestParamsSchema_RejectsNonStruct(t *testing.T) {
	if _, err := ParamsSchema(42); err == nil {
		t.Error("expected error for non-struct params")
	}
}

func TestParamsSchema_UnsupportedFieldType(t *testing.T) {
	type params struct {
		Ratio float64 `json:"ratio"`
	}
	if _, err := ParamsSchema(params{}); err == nil {
		t.Error("expected error for float64 field")
	}
}
