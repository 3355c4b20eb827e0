// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dag

import (
	"errors"
	"testing"
)

// buildLeaf builds a non-root leaf or fails the test.
func buildLeaf(t *testing.T, scheme Scheme, name string, leafType LeafType, data string) *Leaf {
	t.Helper()
	builder := NewLeafBuilder(name)
	builder.SetType(leafType)
	builder.SetData([]byte(data))
	leaf, err := builder.Build(scheme)
	if err != nil {
		t.Fatalf("building %s: %v", name, err)
	}
	return leaf
}

// chunkedFile assembles a root File leaf over chunks in order, linking
// each through a Builder. It returns the builder and the root leaf,
// already stored.
func chunkedFile(t *testing.T, scheme Scheme, chunks ...string) (*Builder, *Leaf) {
	t.Helper()
	builder := NewBuilder()
	file := NewLeafBuilder("file.bin")
	file.SetType(File)
	for _, content := range chunks {
		builder.Link(file, buildLeaf(t, scheme, "chunk", Chunk, content))
	}
	root, err := file.BuildRoot(scheme, builder)
	if err != nil {
		t.Fatalf("building root: %v", err)
	}
	builder.AddLeaf(root, nil)
	return builder, root
}

// failingSerializer always fails.
type failingSerializer struct{}

func (failingSerializer) Marshal(any) ([]byte, error) {
	return nil, errors.New("serializer unavailable")
}

// failingEncoder always fails.
type failingEncoder struct{}

func (failingEncoder) Encode([]byte) (string, error) {
	return "", errors.New("encoder unavailable")
}
