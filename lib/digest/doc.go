// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package digest provides the digest functions and the self-describing
// textual encoding used to render leaf identifiers.
//
// Two algorithms are available: SHA-256 (the reference, and the
// default) and BLAKE3. Both produce 32-byte digests. A graph must be
// verified with the same algorithm and encoding it was built with;
// neither is recorded inside the identifier.
//
// Digests are rendered with multibase: the first character of the
// text names the base ('m' for base64, 'b' for base32, 'z' for
// base58btc, ...), so an identifier carries enough information to be
// decoded back to raw digest bytes without out-of-band context.
package digest
