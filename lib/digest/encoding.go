// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package digest

import (
	"fmt"

	"github.com/multiformats/go-multibase"
)

// DefaultEncoding is the multibase used when none is configured.
const DefaultEncoding = "base64"

// Encoding renders digests as self-describing multibase text.
type Encoding struct {
	encoder multibase.Encoder
}

// NewEncoding returns the encoding for a multibase name such as
// "base32", "base58btc" or "base64". The empty name selects
// DefaultEncoding.
func NewEncoding(name string) (Encoding, error) {
	if name == "" {
		name = DefaultEncoding
	}
	encoder, err := multibase.EncoderByName(name)
	if err != nil {
		return Encoding{}, fmt.Errorf("unknown multibase encoding %q: %w", name, err)
	}
	// Encoded digests are embedded in "<label>:<digest>" identifiers,
	// so a base whose alphabet contains ':' would corrupt parsing.
	if encoder.Encoding() == multibase.Identity {
		return Encoding{}, fmt.Errorf("multibase encoding %q cannot be used for identifiers", name)
	}
	return Encoding{encoder: encoder}, nil
}

// MustEncoding is NewEncoding for compile-time constant names.
func MustEncoding(name string) Encoding {
	encoding, err := NewEncoding(name)
	if err != nil {
		panic("digest: " + err.Error())
	}
	return encoding
}

// Name returns the multibase name of this encoding.
func (e Encoding) Name() string {
	return multibase.EncodingToStr[e.encoder.Encoding()]
}

// Encode renders data as multibase text.
func (e Encoding) Encode(data []byte) (string, error) {
	if e == (Encoding{}) {
		return "", fmt.Errorf("encoding digest: zero Encoding")
	}
	return e.encoder.Encode(data), nil
}

// Decode parses multibase text in any supported base and returns the
// raw bytes along with the name of the base that was used.
func Decode(text string) ([]byte, string, error) {
	base, data, err := multibase.Decode(text)
	if err != nil {
		return nil, "", fmt.Errorf("decoding multibase text: %w", err)
	}
	return data, multibase.EncodingToStr[base], nil
}
