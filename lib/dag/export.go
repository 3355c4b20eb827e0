// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dag

import (
	"encoding/json"
	"fmt"

	"github.com/bureau-foundation/scionic/lib/codec"
)

// ToCBOR encodes the whole graph with Core Deterministic Encoding.
func (g *Graph) ToCBOR() ([]byte, error) {
	data, err := codec.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("encoding graph as CBOR: %w", err)
	}
	return data, nil
}

// FromCBOR decodes a graph produced by ToCBOR.
func FromCBOR(data []byte) (*Graph, error) {
	var graph Graph
	if err := codec.Unmarshal(data, &graph); err != nil {
		return nil, fmt.Errorf("decoding CBOR graph: %w", err)
	}
	if graph.Leafs == nil {
		graph.Leafs = make(map[string]*Leaf)
	}
	return &graph, nil
}

// ToJSON encodes the whole graph as JSON. Byte fields are base64.
func (g *Graph) ToJSON() ([]byte, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("encoding graph as JSON: %w", err)
	}
	return data, nil
}

// FromJSON decodes a graph produced by ToJSON.
func FromJSON(data []byte) (*Graph, error) {
	var graph Graph
	if err := json.Unmarshal(data, &graph); err != nil {
		return nil, fmt.Errorf("decoding JSON graph: %w", err)
	}
	if graph.Leafs == nil {
		graph.Leafs = make(map[string]*Leaf)
	}
	return &graph, nil
}
