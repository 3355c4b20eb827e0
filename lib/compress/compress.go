// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package compress compresses graph export payloads.
//
// Payloads are compressed as a single block, and the uncompressed size
// is recorded beside them so decompression can allocate once and
// reject truncated or padded input.
package compress

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Algorithm identifies a compression algorithm. Values are written
// into export files; changing them breaks existing files.
type Algorithm uint8

const (
	// None stores the payload unchanged.
	None Algorithm = 0

	// LZ4 is LZ4 block compression: fast, modest ratio.
	LZ4 Algorithm = 1

	// Zstd is zstd at the default level. CBOR graph exports are
	// dominated by repeated keys and digests and compress well.
	Zstd Algorithm = 2
)

// Auto is the configuration name that selects an algorithm by
// probing the payload with [Select].
const Auto = "auto"

// String returns the configuration name of the algorithm.
func (a Algorithm) String() string {
	switch a {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", a)
	}
}

// Parse parses an algorithm name. The empty string is None.
func Parse(name string) (Algorithm, error) {
	switch name {
	case "none", "":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd":
		return Zstd, nil
	default:
		return 0, fmt.Errorf("unknown compression algorithm: %q", name)
	}
}

// MaxSize is the largest uncompressed payload [Decompress] accepts.
// Sizes come from untrusted export headers and drive allocation.
const MaxSize = 1<<31 - 1

// lz4MaxRatio bounds how far an LZ4 block can expand: each literal
// run byte and match length byte covers at most 255 output bytes.
const lz4MaxRatio = 255

// zstdPreallocate caps the output buffer reserved up front for zstd.
// Larger payloads grow the buffer while decoding.
const zstdPreallocate = 64 << 20

// ErrIncompressible is returned by [Compress] when the output would
// not be smaller than the input. Callers fall back to None.
var ErrIncompressible = errors.New("data is incompressible")

// Compress compresses data with algorithm. For None it returns data
// unchanged without copying.
func Compress(data []byte, algorithm Algorithm) ([]byte, error) {
	switch algorithm {
	case None:
		return data, nil
	case LZ4:
		return compressLZ4(data)
	case Zstd:
		return compressZstd(data)
	default:
		return nil, fmt.Errorf("unsupported compression algorithm: %d", algorithm)
	}
}

// Decompress reverses [Compress]. size must be the exact length of
// the original data; any other length is an error, as is a size
// outside [0, MaxSize].
func Decompress(compressed []byte, algorithm Algorithm, size int) ([]byte, error) {
	if size < 0 || size > MaxSize {
		return nil, fmt.Errorf("decompressed size %d out of range [0, %d]", size, MaxSize)
	}
	switch algorithm {
	case None:
		if len(compressed) != size {
			return nil, fmt.Errorf("uncompressed payload: size %d does not match expected %d",
				len(compressed), size)
		}
		return compressed, nil
	case LZ4:
		return decompressLZ4(compressed, size)
	case Zstd:
		return decompressZstd(compressed, size)
	default:
		return nil, fmt.Errorf("unsupported compression algorithm: %d", algorithm)
	}
}

// Select probes data with zstd and picks an algorithm from the ratio:
// zstd at 1.5x or better, LZ4 from 1.1x, otherwise None.
func Select(data []byte) Algorithm {
	if len(data) == 0 {
		return None
	}
	compressed := zstdEncoder.EncodeAll(data, nil)
	ratio := float64(len(data)) / float64(len(compressed))
	switch {
	case ratio >= 1.5:
		return Zstd
	case ratio >= 1.1:
		return LZ4
	default:
		return None
	}
}

// CompressNamed compresses data with the algorithm named in
// configuration, where "auto" probes with [Select]. Incompressible
// data comes back unchanged tagged None.
func CompressNamed(data []byte, name string) ([]byte, Algorithm, error) {
	var algorithm Algorithm
	if name == Auto {
		algorithm = Select(data)
	} else {
		parsed, err := Parse(name)
		if err != nil {
			return nil, 0, err
		}
		algorithm = parsed
	}

	compressed, err := Compress(data, algorithm)
	if errors.Is(err, ErrIncompressible) {
		return data, None, nil
	}
	if err != nil {
		return nil, 0, err
	}
	return compressed, algorithm, nil
}

func compressLZ4(data []byte) ([]byte, error) {
	destination := make([]byte, lz4.CompressBlockBound(len(data)))
	written, err := lz4.CompressBlock(data, destination, nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	// CompressBlock reports zero for incompressible input.
	if written == 0 || written >= len(data) {
		return nil, ErrIncompressible
	}
	return destination[:written], nil
}

func decompressLZ4(compressed []byte, size int) ([]byte, error) {
	if size > len(compressed)*lz4MaxRatio {
		return nil, fmt.Errorf("lz4 decompress: %d bytes cannot expand to %d", len(compressed), size)
	}
	destination := make([]byte, size)
	read, err := lz4.UncompressBlock(compressed, destination)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompress: %w", err)
	}
	if read != size {
		return nil, fmt.Errorf("lz4 decompress: got %d bytes, expected %d", read, size)
	}
	return destination, nil
}

// zstd.Encoder and zstd.Decoder are safe for concurrent use when
// driven through EncodeAll and DecodeAll.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("compress: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil, zstd.WithDecoderMaxMemory(MaxSize))
	if err != nil {
		panic("compress: zstd decoder initialization failed: " + err.Error())
	}
}

func compressZstd(data []byte) ([]byte, error) {
	compressed := zstdEncoder.EncodeAll(data, nil)
	if len(compressed) >= len(data) {
		return nil, ErrIncompressible
	}
	return compressed, nil
}

func decompressZstd(compressed []byte, size int) ([]byte, error) {
	result, err := zstdDecoder.DecodeAll(compressed, make([]byte, 0, min(size, zstdPreallocate)))
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	if len(result) != size {
		return nil, fmt.Errorf("zstd decompress: got %d bytes, expected %d", len(result), size)
	}
	return result, nil
}
