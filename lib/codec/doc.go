// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the canonical CBOR encoding used to hash and
// export Merkle DAG leaves.
//
// Leaf identifiers are digests of serialized records, so the encoder
// must be deterministic: the same logical record has to produce the
// same bytes on every run and every platform. The encoder uses Core
// Deterministic Encoding (RFC 8949 §4.2): sorted map keys (struct
// fields included), smallest integer encoding, no indefinite-length
// items.
//
// Leaf records and graph exports go through [Marshal] and
// [Unmarshal]. Export envelopes are read with [NewDecoder], which
// stops after the envelope item. [Diagnose] prints the bytes a leaf
// digest covers in CBOR diagnostic notation.
//
// # Struct Tag Rules
//
//   - `cbor` tag: the type is only ever serialized as CBOR. The
//     hashed leaf record and the export envelope are in this group.
//   - `json` tag: the type is serialized as both JSON and CBOR.
//     fxamacker/cbor v2 reads `json` tags as fallback when `cbor`
//     tags are absent, so one tag names the field in both formats.
//     Leaf and Graph are in this group.
//
// Never use both tags on the same field.
package codec
