// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package digest

import (
	"crypto/sha256"
	"fmt"

	"github.com/zeebo/blake3"
)

// Size is the length in bytes of every digest produced by this package.
const Size = 32

// Algorithm names a digest function.
type Algorithm string

const (
	// SHA256 is the reference digest function.
	SHA256 Algorithm = "sha256"

	// BLAKE3 is BLAKE3 in unkeyed mode with 32 bytes of output.
	BLAKE3 Algorithm = "blake3"
)

// ParseAlgorithm parses an algorithm name as it appears in
// configuration files and CLI flags.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch Algorithm(name) {
	case SHA256, BLAKE3:
		return Algorithm(name), nil
	case "":
		return SHA256, nil
	default:
		return "", fmt.Errorf("unknown digest algorithm %q (want %q or %q)", name, SHA256, BLAKE3)
	}
}

// Sum computes the digest of data. The error return exists so the
// algorithm satisfies digester interfaces that allow failure; it is
// only non-nil for an unknown algorithm.
func (a Algorithm) Sum(data []byte) ([]byte, error) {
	switch a {
	case SHA256:
		sum := sha256.Sum256(data)
		return sum[:], nil
	case BLAKE3:
		sum := blake3.Sum256(data)
		return sum[:], nil
	default:
		return nil, fmt.Errorf("unknown digest algorithm %q", string(a))
	}
}

// MustSum is Sum for callers that have already validated the
// algorithm. Panics on an unknown algorithm.
func (a Algorithm) MustSum(data []byte) []byte {
	sum, err := a.Sum(data)
	if err != nil {
		panic("digest: " + err.Error())
	}
	return sum
}

// String returns the algorithm name.
func (a Algorithm) String() string {
	return string(a)
}
