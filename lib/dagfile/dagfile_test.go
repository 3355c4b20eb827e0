// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dagfile

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/scionic/lib/codec"
	"github.com/bureau-foundation/scionic/lib/compress"
	"github.com/bureau-foundation/scionic/lib/dag"
	"github.com/bureau-foundation/scionic/lib/digest"
	"github.com/bureau-foundation/scionic/lib/sealed"
)

// sampleGraph builds a verified two-chunk file graph.
func sampleGraph(t *testing.T) *dag.Graph {
	t.Helper()
	scheme := dag.DefaultScheme()
	builder := dag.NewBuilder()
	file := dag.NewLeafBuilder("notes.txt")
	file.SetType(dag.File)
	for _, content := range []string{strings.Repeat("alpha ", 100), strings.Repeat("beta ", 100)} {
		chunkBuilder := dag.NewLeafBuilder("notes.txt")
		chunkBuilder.SetType(dag.Chunk)
		chunkBuilder.SetData([]byte(content))
		chunk, err := chunkBuilder.Build(scheme)
		if err != nil {
			t.Fatal(err)
		}
		builder.Link(file, chunk)
	}
	root, err := file.BuildRoot(scheme, builder)
	if err != nil {
		t.Fatal(err)
	}
	builder.AddLeaf(root, nil)
	return builder.Build(root.Identifier)
}

func assertSameGraph(t *testing.T, got, want *dag.Graph) {
	t.Helper()
	if !got.Root.Equal(want.Root) {
		t.Errorf("root = %s, want %s", got.Root, want.Root)
	}
	ok, err := got.Verify(dag.DefaultScheme())
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("decoded graph does not verify")
	}
	gotContent, err := got.ReconstructRoot()
	if err != nil {
		t.Fatal(err)
	}
	wantContent, err := want.ReconstructRoot()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(gotContent, wantContent) {
		t.Error("reconstructed content differs")
	}
}

func TestWriteReadFormats(t *testing.T) {
	graph := sampleGraph(t)
	for _, format := range []string{"", FormatCBOR, FormatJSON} {
		for _, compression := range []string{"", "none", "lz4", "zstd", compress.Auto} {
			t.Run(format+"/"+compression, func(t *testing.T) {
				var buffer bytes.Buffer
				options := WriteOptions{Format: format, Compression: compression}
				if err := Write(&buffer, graph, options); err != nil {
					t.Fatalf("Write: %v", err)
				}
				decoded, _, err := Read(bytes.NewReader(buffer.Bytes()), ReadOptions{})
				if err != nil {
					t.Fatalf("Read: %v", err)
				}
				assertSameGraph(t, decoded, graph)
			})
		}
	}
}

func TestInspect(t *testing.T) {
	var buffer bytes.Buffer
	if err := Write(&buffer, sampleGraph(t), WriteOptions{Compression: "zstd"}); err != nil {
		t.Fatal(err)
	}
	info, err := Inspect(bytes.NewReader(buffer.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if info.Version != Version || info.Format != FormatCBOR || info.Encrypted {
		t.Errorf("info = %+v", info)
	}
	if info.Compression != compress.Zstd {
		t.Errorf("compression = %s, want zstd", info.Compression)
	}
	if info.Digest != digest.SHA256 || info.Encoding != digest.DefaultEncoding {
		t.Errorf("scheme = %s/%s, want defaults", info.Digest, info.Encoding)
	}
	if info.PayloadSize >= info.Size {
		t.Errorf("payload %d bytes is not smaller than serialized %d bytes", info.PayloadSize, info.Size)
	}
}

func TestEncryptedRoundTrip(t *testing.T) {
	keypair, err := sealed.GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}
	graph := sampleGraph(t)

	var buffer bytes.Buffer
	options := WriteOptions{Compression: "zstd", Recipients: []string{keypair.PublicKey}}
	if err := Write(&buffer, graph, options); err != nil {
		t.Fatal(err)
	}

	if _, _, err := Read(bytes.NewReader(buffer.Bytes()), ReadOptions{}); !errors.Is(err, ErrEncrypted) {
		t.Errorf("Read without identity = %v, want ErrEncrypted", err)
	}

	stranger, err := sealed.GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := Read(bytes.NewReader(buffer.Bytes()), ReadOptions{Identity: stranger.PrivateKey}); err == nil {
		t.Error("Read with the wrong identity succeeded")
	}

	decoded, _, err := Read(bytes.NewReader(buffer.Bytes()), ReadOptions{Identity: keypair.IdentityFile()})
	if err != nil {
		t.Fatal(err)
	}
	assertSameGraph(t, decoded, graph)

	info, err := Inspect(bytes.NewReader(buffer.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if !info.Encrypted {
		t.Error("Inspect does not report encryption")
	}
}

func TestWriteFileReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.sdag")
	graph := sampleGraph(t)
	if err := WriteFile(path, graph, WriteOptions{Format: FormatJSON}); err != nil {
		t.Fatal(err)
	}
	decoded, _, err := ReadFile(path, ReadOptions{})
	if err != nil {
		t.Fatal(err)
	}
	assertSameGraph(t, decoded, graph)

	if _, _, err := ReadFile(filepath.Join(t.TempDir(), "missing"), ReadOptions{}); err == nil {
		t.Error("ReadFile of a missing path succeeded")
	}
}

func TestWriteRejectsUnknownOptions(t *testing.T) {
	graph := sampleGraph(t)
	if err := Write(&bytes.Buffer{}, graph, WriteOptions{Format: "xml"}); err == nil {
		t.Error("Write accepted an unknown format")
	}
	if err := Write(&bytes.Buffer{}, graph, WriteOptions{Compression: "brotli"}); err == nil {
		t.Error("Write accepted an unknown compression")
	}
	if err := Write(&bytes.Buffer{}, graph, WriteOptions{Recipients: []string{"bogus"}}); err == nil {
		t.Error("Write accepted an invalid recipient")
	}
}

func TestReadRejectsBadEnvelopes(t *testing.T) {
	if _, _, err := Read(strings.NewReader("not cbor"), ReadOptions{}); err == nil {
		t.Error("Read accepted garbage")
	}

	future, err := codec.Marshal(envelope{Version: Version + 1, Format: FormatCBOR})
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := Read(bytes.NewReader(future), ReadOptions{}); err == nil {
		t.Error("Read accepted a future version")
	}

	truncated, err := codec.Marshal(envelope{Version: Version, Format: FormatCBOR, Size: 10, Payload: []byte("abc")})
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := Read(bytes.NewReader(truncated), ReadOptions{}); err == nil {
		t.Error("Read accepted a payload shorter than its recorded size")
	}
}

func TestReadRejectsPayloadSizeOutOfRange(t *testing.T) {
	for _, size := range []int{-1, compress.MaxSize + 1} {
		for _, algorithm := range []compress.Algorithm{compress.None, compress.LZ4, compress.Zstd} {
			data, err := codec.Marshal(envelope{
				Version:     Version,
				Format:      FormatCBOR,
				Compression: algorithm,
				Size:        size,
				Payload:     []byte{1, 2},
			})
			if err != nil {
				t.Fatal(err)
			}
			if _, _, err := Read(bytes.NewReader(data), ReadOptions{}); err == nil {
				t.Errorf("%s: Read accepted size %d", algorithm, size)
			}
			if _, err := Inspect(bytes.NewReader(data)); err == nil {
				t.Errorf("%s: Inspect accepted size %d", algorithm, size)
			}
		}
	}
}

func TestSchemeRecordedInEnvelope(t *testing.T) {
	scheme := dag.NewScheme(digest.BLAKE3, digest.MustEncoding("base32"))
	builder := dag.NewBuilder()
	leafBuilder := dag.NewLeafBuilder("x")
	leafBuilder.SetType(dag.File)
	leafBuilder.SetData([]byte("payload"))
	root, err := leafBuilder.BuildRoot(scheme, builder)
	if err != nil {
		t.Fatal(err)
	}
	builder.AddLeaf(root, nil)

	var buffer bytes.Buffer
	options := WriteOptions{Digest: digest.BLAKE3, Encoding: "base32"}
	if err := Write(&buffer, builder.Build(root.Identifier), options); err != nil {
		t.Fatal(err)
	}
	graph, info, err := Read(bytes.NewReader(buffer.Bytes()), ReadOptions{})
	if err != nil {
		t.Fatal(err)
	}
	recorded, err := info.Scheme()
	if err != nil {
		t.Fatal(err)
	}
	ok, err := graph.Verify(recorded)
	if err != nil || !ok {
		t.Errorf("Verify with recorded scheme = %v, %v", ok, err)
	}
	ok, err = graph.Verify(dag.DefaultScheme())
	if err != nil || ok {
		t.Errorf("Verify with the default scheme = %v, %v; want false", ok, err)
	}
}
