// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dag

import (
	"fmt"
	"maps"
	"slices"
)

// GraphContext supplies the graph-wide values hashed into a root leaf.
// [*Builder] implements it.
type GraphContext interface {
	// LatestLabel is the highest label allocated in the graph.
	LatestLabel() uint64
	// LeafCount is the number of leaves in the graph.
	LeafCount() int
}

// LeafBuilder accumulates the fields of one leaf. A LeafBuilder is not
// safe for concurrent use.
type LeafBuilder struct {
	name     string
	leafType LeafType
	data     []byte
	label    uint64
	links    map[string]string
}

// NewLeafBuilder returns a builder for a Directory leaf named name.
func NewLeafBuilder(name string) *LeafBuilder {
	return &LeafBuilder{
		name:     name,
		leafType: Directory,
		links:    make(map[string]string),
	}
}

// SetType sets the leaf type.
func (b *LeafBuilder) SetType(leafType LeafType) {
	b.leafType = leafType
}

// SetData sets the leaf's content. The slice is copied at build time.
func (b *LeafBuilder) SetData(data []byte) {
	b.data = data
}

// SetLabel sets the label carried by the built leaf's identifier.
// Leaves are usually labeled by [Builder.Link] instead.
func (b *LeafBuilder) SetLabel(label uint64) {
	b.label = label
}

// AddLink links target under label. The stored link text is always
// "<label>:<digest>", whatever label target itself carries. Adding a
// second link with the same label replaces the first.
func (b *LeafBuilder) AddLink(label uint64, target Identifier) {
	b.links[labelKey(label)] = FormatIdentifier(label, target.Digest)
}

// LinkCount returns the number of links added so far.
func (b *LeafBuilder) LinkCount() int {
	return len(b.links)
}

// Name returns the leaf name.
func (b *LeafBuilder) Name() string {
	return b.name
}

// Build hashes the non-root record and returns the leaf.
func (b *LeafBuilder) Build(scheme Scheme) (*Leaf, error) {
	return b.build(scheme, false, nil)
}

// BuildRoot hashes the root record, which additionally commits to the
// graph's latest label and leaf count as reported by graph. A nil
// graph hashes both as zero.
func (b *LeafBuilder) BuildRoot(scheme Scheme, graph GraphContext) (*Leaf, error) {
	return b.build(scheme, true, graph)
}

// build is the single construction path for both record forms, so the
// two can never disagree on field order or content.
func (b *LeafBuilder) build(scheme Scheme, root bool, graph GraphContext) (*Leaf, error) {
	links := maps.Clone(b.links)

	var linkRoot []byte
	if len(links) > 1 {
		var err error
		linkRoot, err = linkMerkleRoot(scheme, links)
		if err != nil {
			return nil, &EncodingError{Leaf: b.name, Err: err}
		}
	}

	leaf := &Leaf{
		Name:           b.name,
		Type:           b.leafType,
		Data:           slices.Clone(b.data),
		LinkMerkleRoot: linkRoot,
		LinkCount:      len(links),
		Links:          links,
	}
	if root && graph != nil {
		leaf.LatestLabel = graph.LatestLabel()
		leaf.LeafCount = graph.LeafCount()
	}

	encoded, err := scheme.digestRecord(b.name, leaf.record(root))
	if err != nil {
		return nil, err
	}
	leaf.Identifier = Identifier{Label: b.label, Digest: encoded}
	return leaf, nil
}

// linkMerkleRoot commits to the link entries in ascending numeric
// label order. Each entry is the link's identifier text, so both the
// label and the child digest are committed.
func linkMerkleRoot(scheme Scheme, links map[string]string) ([]byte, error) {
	ordered := orderLinks(links)
	entries := make([][]byte, len(ordered))
	for i, link := range ordered {
		entries[i] = []byte(links[link.Key])
	}
	root, err := scheme.Merkle.Root(entries)
	if err != nil {
		return nil, fmt.Errorf("computing link merkle root: %w", err)
	}
	return root, nil
}
