// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dagfs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bureau-foundation/scionic/lib/chunk"
	"github.com/bureau-foundation/scionic/lib/dag"
)

// Options configures Build.
type Options struct {
	// Scheme supplies the serializer, digest and encoder. The zero
	// value selects [dag.DefaultScheme].
	Scheme dag.Scheme

	// ChunkSize is the maximum content per leaf. Zero or less selects
	// [chunk.DefaultSize].
	ChunkSize int

	// Logger receives per-entry debug output and skip warnings.
	// Nil discards.
	Logger *slog.Logger
}

// builder holds the state of one Build call.
type builder struct {
	scheme    dag.Scheme
	chunkSize int
	logger    *slog.Logger
	graph     *dag.Builder
}

// Build walks path and returns the graph it describes. The root leaf
// is named after the base name of path. ctx is checked between
// entries and between chunks.
func Build(ctx context.Context, path string, options Options) (*dag.Graph, error) {
	b := &builder{
		scheme:    options.Scheme,
		chunkSize: options.ChunkSize,
		logger:    options.Logger,
	}
	if b.scheme.Serializer == nil {
		b.scheme = dag.DefaultScheme()
	}
	if b.chunkSize <= 0 {
		b.chunkSize = chunk.DefaultSize
	}
	if b.logger == nil {
		b.logger = slog.New(slog.DiscardHandler)
	}
	b.graph = dag.NewBuilder(dag.WithLogger(b.logger))

	info, err := os.Lstat(path)
	if err != nil {
		return nil, fmt.Errorf("building graph: %w", err)
	}
	name := filepath.Base(filepath.Clean(path))

	var top *dag.LeafBuilder
	switch {
	case info.IsDir():
		top, err = b.directory(ctx, path, name)
	case info.Mode().IsRegular():
		top, err = b.file(ctx, path, name)
	default:
		return nil, fmt.Errorf("building graph: %s is neither a regular file nor a directory", path)
	}
	if err != nil {
		return nil, err
	}

	root, err := top.BuildRoot(b.scheme, b.graph)
	if err != nil {
		return nil, err
	}
	b.graph.AddLeaf(root, nil)
	b.logger.Info("built graph",
		"path", path,
		"root", root.Identifier.String(),
		"leaves", b.graph.LeafCount(),
	)
	return b.graph.Build(root.Identifier), nil
}

// directory links every supported entry of path under a new
// Directory leaf builder.
func (b *builder) directory(ctx context.Context, path, name string) (*dag.LeafBuilder, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", path, err)
	}

	parent := dag.NewLeafBuilder(name)
	parent.SetType(dag.Directory)

	// ReadDir returns entries sorted by file name.
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		childPath := filepath.Join(path, entry.Name())
		var child *dag.LeafBuilder
		switch {
		case entry.IsDir():
			child, err = b.directory(ctx, childPath, entry.Name())
		case entry.Type().IsRegular():
			child, err = b.file(ctx, childPath, entry.Name())
		default:
			b.logger.Warn("skipping unsupported entry",
				"path", childPath,
				"mode", entry.Type().String(),
			)
			continue
		}
		if err != nil {
			return nil, err
		}

		leaf, err := child.Build(b.scheme)
		if err != nil {
			return nil, err
		}
		b.graph.Link(parent, leaf)
	}

	b.logger.Debug("directory", "path", path, "entries", parent.LinkCount())
	return parent, nil
}

// file returns a File leaf builder for path: inline content when it
// fits in one chunk, otherwise linked Chunk leaves named
// "<name>/<index>".
func (b *builder) file(ctx context.Context, path, name string) (*dag.LeafBuilder, error) {
	source, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer source.Close()

	leaf := dag.NewLeafBuilder(name)
	leaf.SetType(dag.File)

	reader := chunk.NewReader(source, b.chunkSize)
	first, err := reader.Next()
	if errors.Is(err, io.EOF) {
		leaf.SetData(nil)
		return leaf, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	second, err := reader.Next()
	if errors.Is(err, io.EOF) {
		leaf.SetData(first)
		return leaf, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	index := 0
	link := func(data []byte) error {
		chunkBuilder := dag.NewLeafBuilder(name + "/" + strconv.Itoa(index))
		chunkBuilder.SetType(dag.Chunk)
		chunkBuilder.SetData(data)
		chunkLeaf, err := chunkBuilder.Build(b.scheme)
		if err != nil {
			return err
		}
		b.graph.Link(leaf, chunkLeaf)
		index++
		return nil
	}

	for _, data := range [][]byte{first, second} {
		if err := link(data); err != nil {
			return nil, err
		}
	}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		if err := link(next); err != nil {
			return nil, err
		}
	}

	b.logger.Debug("chunked file", "path", path, "chunks", leaf.LinkCount())
	return leaf, nil
}
