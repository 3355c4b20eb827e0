// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dagfs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bureau-foundation/scionic/lib/dag"
)

// Restore recreates the tree rooted at graph.Root inside dir. The
// top-level entry is created as dir/<root name>. Existing files are
// never overwritten.
//
// Restore does not verify the graph; callers that received it from an
// untrusted source should call [dag.Graph.Verify] first.
func Restore(graph *dag.Graph, dir string) error {
	root, err := graph.RootLeaf()
	if err != nil {
		return err
	}
	return restoreLeaf(graph, root, dir)
}

func restoreLeaf(graph *dag.Graph, leaf *dag.Leaf, dir string) error {
	if err := checkName(leaf.Name); err != nil {
		return err
	}
	path := filepath.Join(dir, leaf.Name)

	switch leaf.Type {
	case dag.Directory:
		if err := os.Mkdir(path, 0o755); err != nil {
			return fmt.Errorf("restoring directory: %w", err)
		}
		children, err := graph.Children(leaf)
		if err != nil {
			return err
		}
		for _, child := range children {
			if err := restoreLeaf(graph, child, path); err != nil {
				return err
			}
		}
		return nil

	case dag.File:
		content, err := graph.Reconstruct(leaf)
		if err != nil {
			return err
		}
		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			return fmt.Errorf("restoring file: %w", err)
		}
		if _, err := file.Write(content); err != nil {
			file.Close()
			return fmt.Errorf("restoring file %s: %w", path, err)
		}
		return file.Close()

	default:
		return fmt.Errorf("restoring %s: cannot restore a %s leaf as a filesystem entry", leaf.Identifier, leaf.Type)
	}
}

// checkName rejects names that would escape the restore directory.
func checkName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return fmt.Errorf("restoring: unsafe entry name %q", name)
	}
	return nil
}
