// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package chunk splits content into fixed-size pieces for chunked
// file leaves.
//
// Boundaries are at every Size bytes; only the final chunk may be
// shorter. The chunk size is always passed explicitly so two builders
// in one process can use different sizes.
package chunk

import (
	"errors"
	"fmt"
	"io"
)

// DefaultSize is the chunk size used when none is configured.
const DefaultSize = 2 * 1024 * 1024 // 2 MiB

// Reader reads fixed-size chunks from an underlying reader. Create
// one with [NewReader] and call [Reader.Next] until it returns
// [io.EOF].
type Reader struct {
	source io.Reader
	size   int
	done   bool
}

// NewReader returns a chunk reader over source. A size of zero or
// less selects DefaultSize.
func NewReader(source io.Reader, size int) *Reader {
	if size <= 0 {
		size = DefaultSize
	}
	return &Reader{source: source, size: size}
}

// Size returns the chunk size in bytes.
func (r *Reader) Size() int {
	return r.size
}

// Next returns the next chunk. Each call returns a freshly allocated
// slice the caller may keep. After the last chunk Next returns
// (nil, io.EOF). Empty input yields io.EOF on the first call.
func (r *Reader) Next() ([]byte, error) {
	if r.done {
		return nil, io.EOF
	}

	buffer := make([]byte, r.size)
	read, err := io.ReadFull(r.source, buffer)
	switch {
	case err == nil:
		return buffer, nil
	case errors.Is(err, io.ErrUnexpectedEOF):
		r.done = true
		return buffer[:read], nil
	case errors.Is(err, io.EOF):
		r.done = true
		return nil, io.EOF
	default:
		return nil, fmt.Errorf("reading chunk: %w", err)
	}
}

// Split divides data into chunks of at most size bytes. The returned
// chunks are slices into data. Empty data returns nil. A size of zero
// or less selects DefaultSize.
func Split(data []byte, size int) [][]byte {
	if size <= 0 {
		size = DefaultSize
	}
	var chunks [][]byte
	for len(data) > 0 {
		end := min(size, len(data))
		chunks = append(chunks, data[:end:end])
		data = data[end:]
	}
	return chunks
}

// Count returns how many chunks content of the given length splits
// into.
func Count(length int64, size int) int64 {
	if size <= 0 {
		size = DefaultSize
	}
	if length <= 0 {
		return 0
	}
	return (length + int64(size) - 1) / int64(size)
}
