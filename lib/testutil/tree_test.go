// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"path/filepath"
	"testing"
)

func TestWriteReadTree(t *testing.T) {
	files := map[string]string{
		"a.txt":         "alpha",
		"empty":         "",
		"nested/deep/b": "beta",
	}
	top := WriteTree(t, "tree", files)
	if filepath.Base(top) != "tree" {
		t.Errorf("top = %s, want a directory named tree", top)
	}
	AssertTreeEqual(t, ReadTree(t, top), files)
}

func TestWriteTreeEmpty(t *testing.T) {
	top := WriteTree(t, "empty", nil)
	if got := ReadTree(t, top); len(got) != 0 {
		t.Errorf("ReadTree = %v, want empty", got)
	}
}
