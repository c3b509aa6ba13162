// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codex

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// staging holds the three temporary files one attempt owns. Names come
// from os.CreateTemp, so concurrent attempts never collide.
type staging struct {
	promptPath string
	outputPath string
	stderrPath string
}

// newStaging creates the prompt, output, and stderr files in
// directory and writes prompt into the prompt file byte for byte. On
// failure every file created so far is removed.
func newStaging(directory, prompt string) (*staging, error) {
	files := &staging{}

	var err error
	if files.promptPath, err = createEmpty(directory, "codex-prompt-*.txt", prompt); err != nil {
		return nil, fmt.Errorf("creating prompt file: %w", err)
	}
	if files.outputPath, err = createEmpty(directory, "codex-output-*.txt", ""); err != nil {
		files.remove()
		return nil, fmt.Errorf("creating output file: %w", err)
	}
	if files.stderrPath, err = createEmpty(directory, "codex-stderr-*.txt", ""); err != nil {
		files.remove()
		return nil, fmt.Errorf("creating stderr file: %w", err)
	}
	return files, nil
}

// createEmpty creates a uniquely named file from pattern, writes
// content, and closes it.
func createEmpty(directory, pattern, content string) (string, error) {
	file, err := os.CreateTemp(directory, pattern)
	if err != nil {
		return "", err
	}
	path := file.Name()
	if content != "" {
		if _, err := file.WriteString(content); err != nil {
			file.Close()
			os.Remove(path)
			return "", err
		}
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// paths returns the staging paths that were created.
func (s *staging) paths() []string {
	var paths []string
	for _, path := range []string{s.promptPath, s.outputPath, s.stderrPath} {
		if path != "" {
			paths = append(paths, path)
		}
	}
	return paths
}

// remove deletes every staging file. A file that is already gone (for
// example because codex replaced the output file and then removed it)
// is not an error.
func (s *staging) remove() error {
	var errs []error
	for _, path := range s.paths() {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// readTrimmed returns the whitespace-trimmed contents of path, or ""
// when the file does not exist or cannot be read.
func readTrimmed(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
