// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package compress

import (
	"bytes"
	"crypto/rand"
	"errors"
	"strings"
	"testing"
)

func TestAlgorithmNames(t *testing.T) {
	for _, algorithm := range []Algorithm{None, LZ4, Zstd} {
		parsed, err := Parse(algorithm.String())
		if err != nil {
			t.Fatalf("Parse(%q): %v", algorithm, err)
		}
		if parsed != algorithm {
			t.Errorf("Parse(%q) = %v", algorithm, parsed)
		}
	}
	if got := Algorithm(9).String(); got != "unknown(9)" {
		t.Errorf("String() = %q", got)
	}
	if _, err := Parse("gzip"); err == nil {
		t.Error("Parse(\"gzip\") should fail")
	}
	if algorithm, err := Parse(""); err != nil || algorithm != None {
		t.Errorf("Parse(\"\") = %v, %v; want none", algorithm, err)
	}
}

func compressibleData() []byte {
	return []byte(strings.Repeat(`{"name":"chunk","type":"chunk","link_count":0}`, 200))
}

func TestRoundTrip(t *testing.T) {
	data := compressibleData()
	for _, algorithm := range []Algorithm{None, LZ4, Zstd} {
		t.Run(algorithm.String(), func(t *testing.T) {
			compressed, err := Compress(data, algorithm)
			if err != nil {
				t.Fatalf("Compress: %v", err)
			}
			if algorithm != None && len(compressed) >= len(data) {
				t.Errorf("compressed %d bytes to %d", len(data), len(compressed))
			}
			restored, err := Decompress(compressed, algorithm, len(data))
			if err != nil {
				t.Fatalf("Decompress: %v", err)
			}
			if !bytes.Equal(restored, data) {
				t.Error("round trip changed the data")
			}
		})
	}
}

func TestDecompressSizeMismatch(t *testing.T) {
	data := compressibleData()
	for _, algorithm := range []Algorithm{None, LZ4, Zstd} {
		compressed, err := Compress(data, algorithm)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := Decompress(compressed, algorithm, len(data)+1); err == nil {
			t.Errorf("%s: Decompress accepted a wrong size", algorithm)
		}
	}
}

func TestDecompressRejectsSizeOutOfRange(t *testing.T) {
	data := compressibleData()
	for _, algorithm := range []Algorithm{None, LZ4, Zstd} {
		compressed, err := Compress(data, algorithm)
		if err != nil {
			t.Fatal(err)
		}
		for _, size := range []int{-1, MaxSize + 1} {
			if _, err := Decompress(compressed, algorithm, size); err == nil {
				t.Errorf("%s: Decompress accepted size %d", algorithm, size)
			}
		}
	}

	// Two bytes of LZ4 cannot describe a gigabyte; the size is refused
	// before anything is allocated for it.
	if _, err := Decompress([]byte{1, 2}, LZ4, 1<<30); err == nil {
		t.Error("Decompress accepted an LZ4 size beyond the maximum expansion")
	}
}

func TestRandomDataIsIncompressible(t *testing.T) {
	data := make([]byte, 4096)
	if _, err := rand.Read(data); err != nil {
		t.Fatal(err)
	}
	for _, algorithm := range []Algorithm{LZ4, Zstd} {
		if _, err := Compress(data, algorithm); !errors.Is(err, ErrIncompressible) {
			t.Errorf("%s: error = %v, want ErrIncompressible", algorithm, err)
		}
	}
	if got := Select(data); got != None {
		t.Errorf("Select(random) = %s, want none", got)
	}

	payload, algorithm, err := CompressNamed(data, "zstd")
	if err != nil {
		t.Fatal(err)
	}
	if algorithm != None || !bytes.Equal(payload, data) {
		t.Errorf("CompressNamed fell back to %s", algorithm)
	}
}

func TestCompressNamedAuto(t *testing.T) {
	data := compressibleData()
	payload, algorithm, err := CompressNamed(data, Auto)
	if err != nil {
		t.Fatal(err)
	}
	if algorithm != Zstd {
		t.Errorf("auto picked %s for repetitive text, want zstd", algorithm)
	}
	restored, err := Decompress(payload, algorithm, len(data))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(restored, data) {
		t.Error("round trip changed the data")
	}

	if _, _, err := CompressNamed(data, "brotli"); err == nil {
		t.Error("CompressNamed accepted an unknown name")
	}
}

func TestSelectEmpty(t *testing.T) {
	if got := Select(nil); got != None {
		t.Errorf("Select(nil) = %s", got)
	}
}
