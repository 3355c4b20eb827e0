// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"fmt"
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

var (
	// canonical hashes and exports. Map keys are sorted, integers
	// use their shortest form and nothing is indefinite-length.
	canonical cbor.EncMode

	// lenient decodes exports and envelopes, ignoring unknown keys so
	// older readers can open files with added fields.
	lenient cbor.DecMode
)

func init() {
	options := cbor.CoreDetEncOptions()
	// "<label>:<digest>" identifiers travel as CBOR text strings.
	options.TextMarshaler = cbor.TextMarshalerTextString
	mode, err := options.EncMode()
	if err != nil {
		panic(fmt.Sprintf("codec: building canonical encoder: %v", err))
	}
	canonical = mode

	decoder, err := cbor.DecOptions{
		DefaultMapType:  reflect.TypeOf(map[string]any(nil)),
		TextUnmarshaler: cbor.TextUnmarshalerTextString,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("codec: building decoder: %v", err))
	}
	lenient = decoder
}

// Marshal returns the canonical encoding of v.
func Marshal(v any) ([]byte, error) {
	return canonical.Marshal(v)
}

// Unmarshal decodes data into v.
func Unmarshal(data []byte, v any) error {
	return lenient.Unmarshal(data, v)
}

// Serializer is the canonical encoding as a value, for leaf hashing
// schemes that take a serializer.
type Serializer struct{}

// Marshal returns the canonical encoding of record.
func (Serializer) Marshal(record any) ([]byte, error) {
	return Marshal(record)
}

// NewDecoder returns a decoder reading successive CBOR items from r.
// It reads no further than each item it decodes.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return lenient.NewDecoder(r)
}

// Diagnose renders one encoded item in CBOR diagnostic notation
// (RFC 8949 §8), for showing exactly which bytes a digest covers.
func Diagnose(data []byte) (string, error) {
	notation, err := cbor.Diagnose(data)
	if err != nil {
		return "", fmt.Errorf("codec: diagnosing CBOR: %w", err)
	}
	return notation, nil
}
