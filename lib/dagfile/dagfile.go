// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package dagfile reads and writes graph export files.
//
// An export file is a single CBOR map (the envelope) whose payload is
// the graph serialized as CBOR or JSON, then optionally compressed,
// then optionally age-encrypted. The envelope records each step so
// [Read] can undo them in reverse:
//
//	{version, digest, encoding, format, compression, size, encrypted, payload}
//
// digest and encoding name the scheme the graph was built with, so a
// reader can verify the graph without out-of-band configuration.
// size is the length of the serialized graph before compression.
// Compression runs before encryption because ciphertext does not
// compress.
package dagfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bureau-foundation/scionic/lib/codec"
	"github.com/bureau-foundation/scionic/lib/compress"
	"github.com/bureau-foundation/scionic/lib/dag"
	"github.com/bureau-foundation/scionic/lib/digest"
	"github.com/bureau-foundation/scionic/lib/sealed"
)

// Version is the envelope version written by this package.
const Version = 1

// Payload formats.
const (
	FormatCBOR = "cbor"
	FormatJSON = "json"
)

// ErrEncrypted is returned by Read when the payload is encrypted and
// no identity was supplied.
var ErrEncrypted = errors.New("dagfile: payload is encrypted and no identity was given")

// envelope is the on-disk container.
type envelope struct {
	Version     int                `cbor:"version"`
	Digest      string             `cbor:"digest"`
	Encoding    string             `cbor:"encoding"`
	Format      string             `cbor:"format"`
	Compression compress.Algorithm `cbor:"compression"`
	Size        int                `cbor:"size"`
	Encrypted   bool               `cbor:"encrypted"`
	Payload     []byte             `cbor:"payload"`
}

// WriteOptions controls how a graph is packed.
type WriteOptions struct {
	// Digest and Encoding record the scheme the graph was built
	// with. Empty values record the defaults.
	Digest   digest.Algorithm
	Encoding string

	// Format is FormatCBOR or FormatJSON. Empty selects FormatCBOR.
	Format string

	// Compression is an algorithm name understood by
	// [compress.CompressNamed]: none, lz4, zstd or auto.
	Compression string

	// Recipients are age public keys. When non-empty the payload is
	// encrypted to all of them.
	Recipients []string
}

// ReadOptions controls how a graph is unpacked.
type ReadOptions struct {
	// Identity is an age identity file used to decrypt encrypted
	// payloads.
	Identity string
}

// Info describes an export file without decoding its payload.
type Info struct {
	Version     int
	Digest      digest.Algorithm
	Encoding    string
	Format      string
	Compression compress.Algorithm
	Size        int
	Encrypted   bool
	PayloadSize int
}

// Write serializes graph and writes it to w as an export file.
func Write(w io.Writer, graph *dag.Graph, options WriteOptions) error {
	format := options.Format
	if format == "" {
		format = FormatCBOR
	}

	var serialized []byte
	var err error
	switch format {
	case FormatCBOR:
		serialized, err = graph.ToCBOR()
	case FormatJSON:
		serialized, err = graph.ToJSON()
	default:
		return fmt.Errorf("dagfile: unknown format %q", format)
	}
	if err != nil {
		return err
	}

	payload, compression, err := compress.CompressNamed(serialized, options.Compression)
	if err != nil {
		return fmt.Errorf("dagfile: compressing payload: %w", err)
	}

	encrypted := len(options.Recipients) > 0
	if encrypted {
		payload, err = sealed.Encrypt(payload, options.Recipients)
		if err != nil {
			return fmt.Errorf("dagfile: encrypting payload: %w", err)
		}
	}

	algorithm := options.Digest
	if algorithm == "" {
		algorithm = digest.SHA256
	}
	encoding := options.Encoding
	if encoding == "" {
		encoding = digest.DefaultEncoding
	}

	data, err := codec.Marshal(envelope{
		Version:     Version,
		Digest:      string(algorithm),
		Encoding:    encoding,
		Format:      format,
		Compression: compression,
		Size:        len(serialized),
		Encrypted:   encrypted,
		Payload:     payload,
	})
	if err != nil {
		return fmt.Errorf("dagfile: encoding envelope: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("dagfile: writing: %w", err)
	}
	return nil
}

// Read reads an export file from r and returns the graph it holds
// together with its envelope description.
func Read(r io.Reader, options ReadOptions) (*dag.Graph, *Info, error) {
	file, err := readEnvelope(r)
	if err != nil {
		return nil, nil, err
	}
	info := file.info()

	payload := file.Payload
	if file.Encrypted {
		if options.Identity == "" {
			return nil, info, ErrEncrypted
		}
		payload, err = sealed.Decrypt(payload, options.Identity)
		if err != nil {
			return nil, info, fmt.Errorf("dagfile: %w", err)
		}
	}

	serialized, err := compress.Decompress(payload, file.Compression, file.Size)
	if err != nil {
		return nil, info, fmt.Errorf("dagfile: %w", err)
	}

	var graph *dag.Graph
	switch file.Format {
	case FormatCBOR:
		graph, err = dag.FromCBOR(serialized)
	case FormatJSON:
		graph, err = dag.FromJSON(serialized)
	default:
		err = fmt.Errorf("dagfile: unknown format %q", file.Format)
	}
	if err != nil {
		return nil, info, err
	}
	return graph, info, nil
}

// Inspect reads only the envelope of an export file.
func Inspect(r io.Reader) (*Info, error) {
	file, err := readEnvelope(r)
	if err != nil {
		return nil, err
	}
	return file.info(), nil
}

// Scheme returns the scheme recorded in the envelope.
func (i *Info) Scheme() (dag.Scheme, error) {
	algorithm, err := digest.ParseAlgorithm(string(i.Digest))
	if err != nil {
		return dag.Scheme{}, fmt.Errorf("dagfile: %w", err)
	}
	encoding, err := digest.NewEncoding(i.Encoding)
	if err != nil {
		return dag.Scheme{}, fmt.Errorf("dagfile: %w", err)
	}
	return dag.NewScheme(algorithm, encoding), nil
}

func (e *envelope) info() *Info {
	return &Info{
		Version:     e.Version,
		Digest:      digest.Algorithm(e.Digest),
		Encoding:    e.Encoding,
		Format:      e.Format,
		Compression: e.Compression,
		Size:        e.Size,
		Encrypted:   e.Encrypted,
		PayloadSize: len(e.Payload),
	}
}

func readEnvelope(r io.Reader) (*envelope, error) {
	var file envelope
	if err := codec.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("dagfile: decoding envelope: %w", err)
	}
	if file.Version != Version {
		return nil, fmt.Errorf("dagfile: unsupported version %d (want %d)", file.Version, Version)
	}
	if file.Size < 0 || file.Size > compress.MaxSize {
		return nil, fmt.Errorf("dagfile: payload size %d out of range [0, %d]", file.Size, compress.MaxSize)
	}
	return &file, nil
}

// WriteFile writes graph to path, replacing any existing file only
// after the export has been fully encoded.
func WriteFile(path string, graph *dag.Graph, options WriteOptions) error {
	var buffer bytes.Buffer
	if err := Write(&buffer, graph, options); err != nil {
		return err
	}
	if err := os.WriteFile(path, buffer.Bytes(), 0o644); err != nil {
		return fmt.Errorf("dagfile: %w", err)
	}
	return nil
}

// ReadFile reads the export file at path.
func ReadFile(path string, options ReadOptions) (*dag.Graph, *Info, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("dagfile: %w", err)
	}
	defer file.Close()
	return Read(file, options)
}
