// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sealed provides age encryption for graph export files. It
// wraps filippo.io/age for the operations the export container needs:
// generate x25519 keypairs, encrypt a payload to one or more
// recipients, and decrypt with an identity file.
//
// Key exports:
//
//   - [GenerateKeypair] -- new age x25519 keypair
//   - [Encrypt] -- encrypt to age public key recipients
//   - [Decrypt] -- decrypt with one or more identities
//   - [ParsePublicKey] / [ParseIdentities] -- key validation
//
// Ciphertext is raw age binary format; the export container stores it
// as a CBOR byte string, so no text armor is applied.
package sealed
