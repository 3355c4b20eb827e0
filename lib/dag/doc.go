// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package dag builds and verifies content-addressed Merkle DAGs of
// leaves.
//
// Content is split into leaves. Each leaf is hashed into an
// [Identifier]: the multibase text of the digest of the leaf's
// canonical record, optionally prefixed with a label ("3:mAbc...").
// Labels are positive integers handed out in allocation order by a
// [Builder]; they are unique within one graph and appear both in the
// child's identifier and as the key of the parent's link.
//
// A parent commits to its children through a link Merkle root: the
// ordered link entries are folded into a binary Merkle root that is
// part of the parent's own hashed record. The distinguished root leaf
// additionally commits to graph-wide metadata (the highest label in
// use and the number of leaves), so the root identifier addresses the
// whole graph.
//
// The canonical record of a leaf is the CBOR map
//
//	{name, type, link_merkle_root, link_count, data}
//
// and, for the root leaf only,
//
//	{name, type, link_merkle_root, link_count, data, latest_label, leaf_count}
//
// encoded with Core Deterministic Encoding. Labels, links and the
// parent back-reference are not part of the record.
//
// Lifecycle: a [LeafBuilder] produces an immutable [Leaf]; a [Builder]
// accumulates leaves and allocates labels; [Builder.Build] freezes the
// leaves into a [Graph]. A Graph is never mutated by [Graph.Verify] or
// [Graph.Reconstruct] and is safe for concurrent readers. A Builder is
// single-writer.
//
// Serialization, digesting, textual encoding and the Merkle root are
// pluggable through [Scheme]. [NewScheme] wires the defaults from
// lib/codec, lib/digest and lib/merkle.
package dag
