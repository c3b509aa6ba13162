// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codextool

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReviewSchemaIsStrictJSON(t *testing.T) {
	t.Parallel()

	var schema struct {
		Type                 string         `json:"type"`
		AdditionalProperties bool           `json:"additionalProperties"`
		Required             []string       `json:"required"`
		Properties           map[string]any `json:"properties"`
	}
	if err := json.Unmarshal(ReviewSchema(), &schema); err != nil {
		t.Fatalf("embedded review schema is not valid JSON after stripping comments: %v", err)
	}
	if schema.Type != "object" || schema.AdditionalProperties {
		t.Errorf("top level = type %q additionalProperties %v, want a closed object", schema.Type, schema.AdditionalProperties)
	}
	for _, name := range []string{"findings", "overall_correctness", "overall_explanation", "overall_confidence_score"} {
		if _, ok := schema.Properties[name]; !ok {
			t.Errorf("property %q missing", name)
		}
	}
	if len(schema.Required) != len(schema.Properties) {
		t.Errorf("required %v does not cover every property", schema.Required)
	}
}

func TestMaterializeReviewSchema(t *testing.T) {
	t.Parallel()
	directory := filepath.Join(t.TempDir(), "nested", "cache")

	path, err := MaterializeReviewSchema(directory)
	if err != nil {
		t.Fatalf("MaterializeReviewSchema: %v", err)
	}
	if filepath.Dir(path) != directory {
		t.Errorf("schema written to %s, want inside %s", path, directory)
	}
	if base := filepath.Base(path); !strings.HasPrefix(base, "review-schema-") || !strings.HasSuffix(base, ".json") {
		t.Errorf("schema file name = %q", base)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading schema: %v", err)
	}
	if !bytes.Equal(data, ReviewSchema()) {
		t.Error("materialized schema differs from ReviewSchema()")
	}

	again, err := MaterializeReviewSchema(directory)
	if err != nil {
		t.Fatalf("second MaterializeReviewSchema: %v", err)
	}
	if again != path {
		t.Errorf("second call returned %s, want %s", again, path)
	}
	entries, err := os.ReadDir(directory)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory holds %d entries, want only the schema", len(entries))
	}
}
