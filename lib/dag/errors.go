// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dag

import (
	"errors"
	"fmt"
)

// ErrRootNotFound is returned when a graph's root identifier has no
// entry in its leaf table.
var ErrRootNotFound = errors.New("dag: root leaf not found in graph")

// SerializationError reports that a leaf record could not be
// canonically serialized. It is a hard error: the environment is at
// fault, not the content.
type SerializationError struct {
	// Leaf is the name of the leaf being built or verified.
	Leaf string
	Err  error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("serializing leaf %q: %v", e.Leaf, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// EncodingError reports that a serialized record could not be
// digested or textually encoded, or that the link Merkle root could
// not be computed.
type EncodingError struct {
	Leaf string
	Err  error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encoding digest of leaf %q: %v", e.Leaf, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// DanglingLinkError reports a link whose target is missing from the
// graph's leaf table.
type DanglingLinkError struct {
	// Parent is the identifier text of the leaf holding the link.
	Parent string
	// Label is the link key.
	Label string
	// Target is the identifier text the link points at.
	Target string
}

func (e *DanglingLinkError) Error() string {
	return fmt.Sprintf("leaf %s: link %s points at missing leaf %s", e.Parent, e.Label, e.Target)
}
