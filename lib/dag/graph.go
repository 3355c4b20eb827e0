// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dag

import (
	"fmt"
	"slices"
)

// Graph is a frozen DAG of leaves keyed by full identifier text.
//
// A Graph is read-only once built: Verify, Check and Reconstruct never
// mutate it, and any number of goroutines may call them concurrently.
type Graph struct {
	Root  Identifier       `json:"root"`
	Leafs map[string]*Leaf `json:"leafs"`
}

// Len returns the number of leaves.
func (g *Graph) Len() int {
	return len(g.Leafs)
}

// Leaf returns the leaf stored under the full identifier id.
func (g *Graph) Leaf(id Identifier) (*Leaf, bool) {
	leaf, ok := g.Leafs[id.String()]
	return leaf, ok
}

// RootLeaf returns the root leaf, or ErrRootNotFound.
func (g *Graph) RootLeaf() (*Leaf, error) {
	leaf, ok := g.Leaf(g.Root)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRootNotFound, g.Root)
	}
	return leaf, nil
}

// Children resolves the links of leaf in ascending numeric label
// order. A link whose target is absent yields a *DanglingLinkError.
func (g *Graph) Children(leaf *Leaf) ([]*Leaf, error) {
	links := leaf.OrderedLinks()
	children := make([]*Leaf, 0, len(links))
	for _, link := range links {
		child, ok := g.Leafs[leaf.Links[link.Key]]
		if !ok {
			return nil, &DanglingLinkError{
				Parent: leaf.Identifier.String(),
				Label:  link.Key,
				Target: leaf.Links[link.Key],
			}
		}
		children = append(children, child)
	}
	return children, nil
}

// Reconstruct returns the content addressed by leaf.
//
// A leaf without links returns a copy of its own Data. Otherwise the
// Data of each immediate child is concatenated in ascending numeric
// label order. Reconstruction is one level deep: a child's own links
// are not followed. Graphs built by lib/dagfs only link Chunk leaves
// under File leaves, which makes one level exact for files.
func (g *Graph) Reconstruct(leaf *Leaf) ([]byte, error) {
	if leaf.LinkCount == 0 {
		return slices.Clone(leaf.Data), nil
	}

	children, err := g.Children(leaf)
	if err != nil {
		return nil, err
	}

	size := 0
	for _, child := range children {
		size += len(child.Data)
	}
	content := make([]byte, 0, size)
	for _, child := range children {
		content = append(content, child.Data...)
	}
	return content, nil
}

// ReconstructRoot reconstructs the root leaf's content.
func (g *Graph) ReconstructRoot() ([]byte, error) {
	root, err := g.RootLeaf()
	if err != nil {
		return nil, err
	}
	return g.Reconstruct(root)
}
