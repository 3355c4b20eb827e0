// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dag

import (
	"strconv"
	"strings"
)

// labelSeparator separates the label from the digest in identifier text.
const labelSeparator = ":"

// Identifier is a leaf's content address: an encoded digest and an
// optional label. Label zero means "no label".
//
// The textual form is "<label>:<digest>" when labeled and "<digest>"
// otherwise.
type Identifier struct {
	Label  uint64
	Digest string
}

// ParseIdentifier parses identifier text. It never fails: text without
// a separator, or whose prefix is not a positive base-10 integer,
// parses as an unlabeled identifier whose digest is the whole text.
func ParseIdentifier(text string) Identifier {
	prefix, rest, found := strings.Cut(text, labelSeparator)
	if !found {
		return Identifier{Digest: text}
	}
	label, ok := parseLabel(prefix)
	if !ok {
		return Identifier{Digest: text}
	}
	return Identifier{Label: label, Digest: rest}
}

// FormatIdentifier returns the textual form of a label and digest. A
// zero label formats as the bare digest.
func FormatIdentifier(label uint64, digest string) string {
	if label == 0 {
		return digest
	}
	return strconv.FormatUint(label, 10) + labelSeparator + digest
}

// String returns the textual form of the identifier.
func (id Identifier) String() string {
	return FormatIdentifier(id.Label, id.Digest)
}

// HasLabel reports whether the identifier carries a label.
func (id Identifier) HasLabel() bool {
	return id.Label != 0
}

// IsZero reports whether the identifier is empty.
func (id Identifier) IsZero() bool {
	return id.Label == 0 && id.Digest == ""
}

// WithLabel returns a copy of the identifier carrying label. A zero
// label strips any existing label.
func (id Identifier) WithLabel(label uint64) Identifier {
	id.Label = label
	return id
}

// Unlabeled returns the identifier with its label stripped.
func (id Identifier) Unlabeled() Identifier {
	return Identifier{Digest: id.Digest}
}

// DigestEquals reports whether both identifiers name the same digest,
// regardless of labels.
func (id Identifier) DigestEquals(other Identifier) bool {
	return id.Digest == other.Digest
}

// Equal reports whether both the label and the digest match.
func (id Identifier) Equal(other Identifier) bool {
	return id == other
}

// MarshalText implements encoding.TextMarshaler so identifiers export
// as their textual form in both JSON and CBOR.
func (id Identifier) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler with the same
// never-failing grammar as ParseIdentifier.
func (id *Identifier) UnmarshalText(text []byte) error {
	*id = ParseIdentifier(string(text))
	return nil
}

// DigestEqualsText compares the digest parts of two identifier texts.
func DigestEqualsText(a, b string) bool {
	return ParseIdentifier(a).DigestEquals(ParseIdentifier(b))
}

// parseLabel parses a positive base-10 label. Signs, spaces and zero
// are rejected.
func parseLabel(text string) (uint64, bool) {
	if text == "" || text[0] < '0' || text[0] > '9' {
		return 0, false
	}
	label, err := strconv.ParseUint(text, 10, 64)
	if err != nil || label == 0 {
		return 0, false
	}
	return label, true
}
