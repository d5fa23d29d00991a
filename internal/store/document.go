// Package store implements the JSON-backed document stores that hold
// all user state: dietary and ingredient preferences, recipe feedback,
// meal history, and tracked expiration dates. Each store owns one file
// and rewrites the whole document on every mutation.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// schemaVersion is written into every document so malformed-file
// fallback stays a documented behavior rather than an accident.
const schemaVersion = 1

// loadDocument reads and unmarshals a whole document file into v.
// A missing file is reported via os.IsNotExist on the returned error.
func loadDocument(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

// saveDocument writes v to path as indented JSON, creating the parent
// directory if needed. The write replaces the previous file contents.
func saveDocument(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// removeString deletes the first occurrence of s from list.
func removeString(list []string, s string) []string {
	for i, v := range list {
		if v == s {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// containsString reports whether list contains s.
func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
