// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

// WriteTree creates a directory named name under a fresh t.TempDir()
// containing files, keyed by slash-separated relative path. Parent
// directories are created as needed. It returns the directory's path.
func WriteTree(t *testing.T, name string, files map[string]string) string {
	t.Helper()
	top := filepath.Join(t.TempDir(), name)
	if err := os.MkdirAll(top, 0o755); err != nil {
		t.Fatalf("creating %s: %v", top, err)
	}
	for relative, content := range files {
		path := filepath.Join(top, filepath.FromSlash(relative))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("creating parent of %s: %v", relative, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", relative, err)
		}
	}
	return top
}

// ReadTree returns every regular file under top, keyed by
// slash-separated path relative to top.
func ReadTree(t *testing.T, top string) map[string]string {
	t.Helper()
	files := make(map[string]string)
	err := filepath.WalkDir(top, func(path string, entry fs.DirEntry, err error) error {
		if err != nil || !entry.Type().IsRegular() {
			return err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		relative, err := filepath.Rel(top, path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(relative)] = string(content)
		return nil
	})
	if err != nil {
		t.Fatalf("reading tree %s: %v", top, err)
	}
	return files
}

// AssertTreeEqual fails the test when got and want differ in paths
// or contents.
func AssertTreeEqual(t *testing.T, got, want map[string]string) {
	t.Helper()
	for path, content := range want {
		actual, ok := got[path]
		if !ok {
			t.Errorf("missing %s", path)
			continue
		}
		if actual != content {
			t.Errorf("%s = %q, want %q", path, actual, content)
		}
	}
	for path := range got {
		if _, ok := want[path]; !ok {
			t.Errorf("unexpected %s", path)
		}
	}
}
