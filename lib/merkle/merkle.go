// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package merkle computes binary Merkle roots over ordered lists of
// byte strings. A leaf commits to its child links through such a
// root; the root depends on both the content and the order of the
// entries.
package merkle

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/scionic/lib/digest"
)

// Node prefixes separate entry hashes from interior hashes, so an
// interior node can never be replayed as an entry.
const (
	entryPrefix    byte = 0x00
	interiorPrefix byte = 0x01
)

// ErrEmpty is returned when a root is requested over no entries.
var ErrEmpty = errors.New("merkle: empty entry list")

// Tree computes roots with a fixed digest algorithm.
type Tree struct {
	Algorithm digest.Algorithm
}

// New returns a Tree using the given algorithm.
func New(algorithm digest.Algorithm) Tree {
	return Tree{Algorithm: algorithm}
}

// Root returns the Merkle root of entries, in the given order.
//
// Each entry is hashed with the entry prefix, then adjacent pairs are
// concatenated and hashed with the interior prefix, bottom-up. A level
// with an odd number of nodes promotes its last node unchanged. It is
// not duplicated: duplication would give a list and the same list with
// its last entry repeated the same root.
func (t Tree) Root(entries [][]byte) ([]byte, error) {
	if len(entries) == 0 {
		return nil, ErrEmpty
	}

	level := make([][]byte, len(entries))
	for i, entry := range entries {
		node, err := t.hash(entryPrefix, entry)
		if err != nil {
			return nil, fmt.Errorf("hashing merkle entry %d: %w", i, err)
		}
		level[i] = node
	}

	// Scratch buffer for left||right.
	combined := make([]byte, 0, 2*digest.Size)

	for len(level) > 1 {
		nextLength := (len(level) + 1) / 2
		next := make([][]byte, nextLength)

		for i := 0; i < len(level)-1; i += 2 {
			combined = append(combined[:0], level[i]...)
			combined = append(combined, level[i+1]...)
			node, err := t.hash(interiorPrefix, combined)
			if err != nil {
				return nil, fmt.Errorf("hashing merkle interior node: %w", err)
			}
			next[i/2] = node
		}

		// Odd node: promote without hashing.
		if len(level)%2 == 1 {
			next[nextLength-1] = level[len(level)-1]
		}

		level = next
	}

	return level[0], nil
}

func (t Tree) hash(prefix byte, data []byte) ([]byte, error) {
	buffer := make([]byte, 0, 1+len(data))
	buffer = append(buffer, prefix)
	buffer = append(buffer, data...)
	return t.Algorithm.Sum(buffer)
}
