// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunk

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"
)

func readAll(t *testing.T, reader *Reader) [][]byte {
	t.Helper()
	var chunks [][]byte
	for {
		chunk, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return chunks
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		chunks = append(chunks, chunk)
	}
}

func TestReaderBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		length int
		size   int
		want   []int
	}{
		{"empty", 0, 4, nil},
		{"shorter than one chunk", 3, 4, []int{3}},
		{"exactly one chunk", 4, 4, []int{4}},
		{"one byte over", 5, 4, []int{4, 1}},
		{"exact multiple", 12, 4, []int{4, 4, 4}},
		{"ragged tail", 10, 4, []int{4, 4, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := bytes.Repeat([]byte{'x'}, tt.length)
			chunks := readAll(t, NewReader(bytes.NewReader(data), tt.size))

			if len(chunks) != len(tt.want) {
				t.Fatalf("got %d chunks, want %d", len(chunks), len(tt.want))
			}
			for i, chunk := range chunks {
				if len(chunk) != tt.want[i] {
					t.Errorf("chunk %d has %d bytes, want %d", i, len(chunk), tt.want[i])
				}
			}
			if got := Count(int64(tt.length), tt.size); got != int64(len(tt.want)) {
				t.Errorf("Count = %d, want %d", got, len(tt.want))
			}
		})
	}
}

func TestReaderReassembles(t *testing.T) {
	data := make([]byte, 1000)
	for i := range data {
		data[i] = byte(i * 7)
	}

	// OneByteReader forces ReadFull to loop across short reads.
	chunks := readAll(t, NewReader(iotest.OneByteReader(bytes.NewReader(data)), 64))
	if !bytes.Equal(bytes.Join(chunks, nil), data) {
		t.Error("chunks do not reassemble to the input")
	}
}

func TestReaderChunksAreIndependent(t *testing.T) {
	reader := NewReader(bytes.NewReader([]byte("AABB")), 2)
	first, err := reader.Next()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := reader.Next(); err != nil {
		t.Fatal(err)
	}
	if string(first) != "AA" {
		t.Errorf("first chunk changed to %q after a later Next", first)
	}
}

func TestReaderEOFIsSticky(t *testing.T) {
	reader := NewReader(bytes.NewReader([]byte("abc")), 2)
	readAll(t, reader)
	for range 2 {
		if _, err := reader.Next(); !errors.Is(err, io.EOF) {
			t.Errorf("Next after end = %v, want io.EOF", err)
		}
	}
}

func TestReaderPropagatesErrors(t *testing.T) {
	failure := errors.New("disk on fire")
	reader := NewReader(iotest.ErrReader(failure), 8)
	if _, err := reader.Next(); !errors.Is(err, failure) {
		t.Errorf("Next = %v, want wrapped %v", err, failure)
	}
}

func TestDefaultSize(t *testing.T) {
	if got := NewReader(bytes.NewReader(nil), 0).Size(); got != DefaultSize {
		t.Errorf("Size() = %d, want %d", got, DefaultSize)
	}
	if got := Count(DefaultSize+1, 0); got != 2 {
		t.Errorf("Count(DefaultSize+1) = %d, want 2", got)
	}
}

func TestSplit(t *testing.T) {
	chunks := Split([]byte("AABBC"), 2)
	want := []string{"AA", "BB", "C"}
	if len(chunks) != len(want) {
		t.Fatalf("Split returned %d chunks, want %d", len(chunks), len(want))
	}
	for i := range want {
		if string(chunks[i]) != want[i] {
			t.Errorf("chunk %d = %q, want %q", i, chunks[i], want[i])
		}
	}
	if Split(nil, 2) != nil {
		t.Error("Split(nil) should be nil")
	}
}
