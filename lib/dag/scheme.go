// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dag

import (
	"github.com/bureau-foundation/scionic/lib/codec"
	"github.com/bureau-foundation/scionic/lib/digest"
	"github.com/bureau-foundation/scionic/lib/merkle"
)

// Serializer deterministically encodes a record to bytes.
type Serializer interface {
	Marshal(record any) ([]byte, error)
}

// Digester computes a fixed-length digest.
type Digester interface {
	Sum(data []byte) ([]byte, error)
}

// TextEncoder renders digest bytes as printable, self-describing text.
// The text must not contain ':'.
type TextEncoder interface {
	Encode(data []byte) (string, error)
}

// MerkleRooter commits to the content and order of a list of byte
// strings.
type MerkleRooter interface {
	Root(entries [][]byte) ([]byte, error)
}

// Scheme groups the primitives that turn a leaf record into an
// identifier. Building and verifying a graph must use the same scheme.
type Scheme struct {
	Serializer Serializer
	Digester   Digester
	Encoder    TextEncoder
	Merkle     MerkleRooter
}

// NewScheme returns the default scheme for a digest algorithm and a
// multibase encoding: CBOR Core Deterministic Encoding, the given
// digest, and a binary Merkle tree using the same digest.
func NewScheme(algorithm digest.Algorithm, encoding digest.Encoding) Scheme {
	return Scheme{
		Serializer: codec.Serializer{},
		Digester:   algorithm,
		Encoder:    encoding,
		Merkle:     merkle.New(algorithm),
	}
}

// DefaultScheme returns SHA-256 with base64 multibase text.
func DefaultScheme() Scheme {
	return NewScheme(digest.SHA256, digest.MustEncoding(digest.DefaultEncoding))
}

// Record returns the serialized canonical record of leaf in root or
// non-root form: the bytes its digest covers.
func (s Scheme) Record(leaf *Leaf, root bool) ([]byte, error) {
	serialized, err := s.Serializer.Marshal(leaf.record(root))
	if err != nil {
		return nil, &SerializationError{Leaf: leaf.Name, Err: err}
	}
	return serialized, nil
}

// digestRecord serializes, digests and encodes a record. Failures are
// reported with the core error taxonomy.
func (s Scheme) digestRecord(name string, record any) (string, error) {
	serialized, err := s.Serializer.Marshal(record)
	if err != nil {
		return "", &SerializationError{Leaf: name, Err: err}
	}
	sum, err := s.Digester.Sum(serialized)
	if err != nil {
		return "", &EncodingError{Leaf: name, Err: err}
	}
	text, err := s.Encoder.Encode(sum)
	if err != nil {
		return "", &EncodingError{Leaf: name, Err: err}
	}
	return text, nil
}
