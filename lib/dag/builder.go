// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dag

import (
	"log/slog"
)

// Builder accumulates leaves, allocates labels and wires parent links.
//
// A Builder is single-writer: concurrent calls must be serialized by
// the caller. The label high-water mark is derived from the stored
// identifiers on every call rather than tracked separately, so it can
// never disagree with the leaf table.
type Builder struct {
	leafs  map[string]*Leaf
	logger *slog.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLogger sets the logger used for debug output while building.
func WithLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBuilder returns an empty graph builder.
func NewBuilder(options ...BuilderOption) *Builder {
	builder := &Builder{
		leafs:  make(map[string]*Leaf),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, option := range options {
		option(builder)
	}
	return builder
}

// LatestLabel returns the highest label among stored identifiers, or
// zero when no stored leaf is labeled. Labels compare numerically.
func (b *Builder) LatestLabel() uint64 {
	var latest uint64
	for text := range b.leafs {
		if label := ParseIdentifier(text).Label; label > latest {
			latest = label
		}
	}
	return latest
}

// NextLabel returns the label the next linked leaf should receive: one
// past the highest stored label, or 1 for a builder with no labels.
func (b *Builder) NextLabel() uint64 {
	return b.LatestLabel() + 1
}

// LeafCount returns the number of stored leaves.
func (b *Builder) LeafCount() int {
	return len(b.leafs)
}

// Leaf returns the stored leaf with the given full identifier.
func (b *Builder) Leaf(id Identifier) (*Leaf, bool) {
	leaf, ok := b.leafs[id.String()]
	return leaf, ok
}

// AddLeaf stores leaf under its full identifier text.
//
// When parent is non-nil and no link with the leaf's label exists on
// it yet, the link is registered on parent and its LinkCount updated.
// Recomputing parent's LinkMerkleRoot, and therefore its identifier,
// is the caller's responsibility; AddLeaf only wires the reference.
// The stored copy of leaf records parent as its back-reference.
func (b *Builder) AddLeaf(leaf *Leaf, parent *Leaf) {
	if parent != nil {
		if !leaf.Identifier.HasLabel() {
			b.logger.Warn("leaf has no label, not linking it under parent",
				"leaf", leaf.Identifier.String(),
				"parent", parent.Identifier.String(),
			)
		} else {
			key := labelKey(leaf.Identifier.Label)
			if _, exists := parent.Links[key]; !exists {
				if parent.Links == nil {
					parent.Links = make(map[string]string)
				}
				parent.Links[key] = leaf.Identifier.String()
				parent.LinkCount = len(parent.Links)
			}
		}

		parentID := parent.Identifier
		leaf = leaf.Clone()
		leaf.Parent = &parentID
	}

	b.leafs[leaf.Identifier.String()] = leaf
	b.logger.Debug("added leaf",
		"identifier", leaf.Identifier.String(),
		"name", leaf.Name,
		"type", leaf.Type,
		"links", leaf.LinkCount,
	)
}

// Link allocates the next label, links child under parent with it,
// and stores the labeled child. It returns the stored leaf.
//
// This is the usual way to assemble a graph bottom-up: children are
// built and linked into their parent's LeafBuilder, then the parent is
// built (committing to the links) and linked into its own parent.
func (b *Builder) Link(parent *LeafBuilder, child *Leaf) *Leaf {
	label := b.NextLabel()
	labeled := child.WithLabel(label)
	parent.AddLink(label, labeled.Identifier)
	b.AddLeaf(labeled, nil)
	return labeled
}

// Build freezes the current leaf table into a Graph rooted at root.
// Leaves are copied, so later calls on the builder, including AddLeaf
// wiring into a parent obtained from it, never reach the Graph. root
// is not required to be present; Verify and ReconstructRoot report a
// missing root.
func (b *Builder) Build(root Identifier) *Graph {
	leafs := make(map[string]*Leaf, len(b.leafs))
	for key, leaf := range b.leafs {
		leafs[key] = leaf.Clone()
	}
	return &Graph{
		Root:  root,
		Leafs: leafs,
	}
}
