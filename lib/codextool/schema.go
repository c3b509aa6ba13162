// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codextool

import (
	_ "embed"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
	"github.com/zeebo/blake3"
)

//go:embed review_schema.jsonc
var reviewSchemaSource []byte

// ReviewSchema returns the embedded review response schema as strict
// JSON. The source is JSONC so the schema can carry comments; codex
// only accepts plain JSON.
func ReviewSchema() []byte {
	return jsonc.ToJSON(reviewSchemaSource)
}

// MaterializeReviewSchema writes [ReviewSchema] into directory and
// returns the file's path. The file name embeds a BLAKE3 prefix of the
// content, so an existing file with that name already holds the right
// bytes and is reused as-is. The write goes through a temporary file
// and a rename, so concurrent servers sharing a cache directory never
// observe a partial schema.
func MaterializeReviewSchema(directory string) (string, error) {
	data := ReviewSchema()
	sum := blake3.Sum256(data)
	path := filepath.Join(directory, "review-schema-"+hex.EncodeToString(sum[:8])+".json")

	if _, err := os.Stat(path); err == nil {
		return path, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("checking review schema %s: %w", path, err)
	}

	if err := os.MkdirAll(directory, 0o755); err != nil {
		return "", fmt.Errorf("creating schema directory: %w", err)
	}
	temporary, err := os.CreateTemp(directory, ".review-schema-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating review schema: %w", err)
	}
	defer os.Remove(temporary.Name())

	if _, err := temporary.Write(data); err != nil {
		temporary.Close()
		return "", fmt.Errorf("writing review schema: %w", err)
	}
	if err := temporary.Close(); err != nil {
		return "", fmt.Errorf("writing review schema: %w", err)
	}
	if err := os.Chmod(temporary.Name(), 0o644); err != nil {
		return "", fmt.Errorf("writing review schema: %w", err)
	}
	if err := os.Rename(temporary.Name(), path); err != nil {
		return "", fmt.Errorf("installing review schema: %w", err)
	}
	return path, nil
}
