// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dag

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// LeafType classifies a leaf.
type LeafType string

const (
	// File leaves hold a whole file: either its bytes inline or links
	// to Chunk leaves.
	File LeafType = "file"

	// Chunk leaves carry a slice of a file's bytes.
	Chunk LeafType = "chunk"

	// Directory leaves aggregate File and Directory leaves.
	Directory LeafType = "directory"
)

// ParseLeafType parses a leaf type name.
func ParseLeafType(name string) (LeafType, error) {
	switch LeafType(name) {
	case File, Chunk, Directory:
		return LeafType(name), nil
	default:
		return "", fmt.Errorf("unknown leaf type %q", name)
	}
}

// Leaf is an immutable, content-addressed node of the DAG.
//
// Identifier.Digest is the encoded digest of the leaf's canonical
// record. Parent, Links and the identifier's label are bookkeeping and
// are not hashed.
type Leaf struct {
	Identifier Identifier `json:"identifier"`
	Name       string     `json:"name"`
	Type       LeafType   `json:"type"`
	Data       []byte     `json:"data,omitempty"`

	// LinkMerkleRoot commits to Links. Empty unless LinkCount > 1.
	LinkMerkleRoot []byte `json:"link_merkle_root,omitempty"`
	LinkCount      int    `json:"link_count"`

	// Links maps a decimal label to the child's identifier text.
	Links map[string]string `json:"links,omitempty"`

	// Parent is an optional back-reference, set when the leaf is
	// inserted under a parent.
	Parent *Identifier `json:"parent,omitempty"`

	// LatestLabel and LeafCount are hashed on the root leaf only.
	LatestLabel uint64 `json:"latest_label,omitempty"`
	LeafCount   int    `json:"leaf_count,omitempty"`
}

// Link is one parent-to-child reference.
type Link struct {
	// Key is the entry's key in Leaf.Links.
	Key string
	// Label is Key parsed as a label, or zero when Key is not numeric.
	Label  uint64
	Target Identifier
}

// OrderedLinks returns the leaf's links in ascending numeric label
// order. Keys that are not labels sort after all labeled keys, in
// byte order.
func (l *Leaf) OrderedLinks() []Link {
	return orderLinks(l.Links)
}

// HasLink reports whether any link targets the same digest as target.
// Labels are ignored, so a child already linked under another label
// counts as present.
func (l *Leaf) HasLink(target Identifier) bool {
	for _, text := range l.Links {
		if ParseIdentifier(text).DigestEquals(target) {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the leaf carries its content directly.
func (l *Leaf) IsTerminal() bool {
	return l.LinkCount == 0
}

// Clone returns a deep copy of the leaf.
func (l *Leaf) Clone() *Leaf {
	clone := *l
	clone.Data = slices.Clone(l.Data)
	clone.LinkMerkleRoot = slices.Clone(l.LinkMerkleRoot)
	if l.Links != nil {
		clone.Links = maps.Clone(l.Links)
	}
	if l.Parent != nil {
		parent := *l.Parent
		clone.Parent = &parent
	}
	return &clone
}

// WithLabel returns a copy of the leaf whose identifier carries label.
// The digest is unchanged: labels are not hashed.
func (l *Leaf) WithLabel(label uint64) *Leaf {
	clone := l.Clone()
	clone.Identifier = clone.Identifier.WithLabel(label)
	return clone
}

// record returns the canonical record of the leaf in root or non-root
// form.
func (l *Leaf) record(root bool) any {
	base := leafRecord{
		Name:           l.Name,
		Type:           l.Type,
		LinkMerkleRoot: nonNil(l.LinkMerkleRoot),
		LinkCount:      l.LinkCount,
		Data:           nonNil(l.Data),
	}
	if !root {
		return base
	}
	return rootRecord{
		Name:           base.Name,
		Type:           base.Type,
		LinkMerkleRoot: base.LinkMerkleRoot,
		LinkCount:      base.LinkCount,
		Data:           base.Data,
		LatestLabel:    l.LatestLabel,
		LeafCount:      l.LeafCount,
	}
}

// leafRecord is the hashed record of a non-root leaf.
type leafRecord struct {
	Name           string   `cbor:"name"`
	Type           LeafType `cbor:"type"`
	LinkMerkleRoot []byte   `cbor:"link_merkle_root"`
	LinkCount      int      `cbor:"link_count"`
	Data           []byte   `cbor:"data"`
}

// rootRecord is the hashed record of the root leaf: the non-root
// fields plus graph-wide metadata.
type rootRecord struct {
	Name           string   `cbor:"name"`
	Type           LeafType `cbor:"type"`
	LinkMerkleRoot []byte   `cbor:"link_merkle_root"`
	LinkCount      int      `cbor:"link_count"`
	Data           []byte   `cbor:"data"`
	LatestLabel    uint64   `cbor:"latest_label"`
	LeafCount      int      `cbor:"leaf_count"`
}

// nonNil normalizes nil to an empty slice so a leaf decoded from an
// export (where empty byte strings may come back as nil) hashes the
// same as the leaf that was built.
func nonNil(data []byte) []byte {
	if data == nil {
		return []byte{}
	}
	return data
}

func orderLinks(links map[string]string) []Link {
	ordered := make([]Link, 0, len(links))
	for key, target := range links {
		label, _ := parseLabel(key)
		ordered = append(ordered, Link{Key: key, Label: label, Target: ParseIdentifier(target)})
	}
	slices.SortFunc(ordered, compareLinks)
	return ordered
}

func compareLinks(a, b Link) int {
	switch {
	case a.Label != 0 && b.Label != 0:
		if a.Label < b.Label {
			return -1
		}
		if a.Label > b.Label {
			return 1
		}
		return 0
	case a.Label != 0:
		return -1
	case b.Label != 0:
		return 1
	default:
		return strings.Compare(a.Key, b.Key)
	}
}

// labelKey formats a label as a Links key.
func labelKey(label uint64) string {
	return strconv.FormatUint(label, 10)
}
