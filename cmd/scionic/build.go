// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/scionic/lib/dag"
	"github.com/bureau-foundation/scionic/lib/dagfile"
	"github.com/bureau-foundation/scionic/lib/dagfs"
)

type buildFlags struct {
	output      string
	format      string
	compression string
	recipients  []string
	chunkSize   int
	digest      string
	encoding    string
}

func (a *app) buildCommand() *command {
	var flags buildFlags
	return &command{
		name:    "build",
		summary: "Build a graph from a file or directory and write an export",
		usage:   "scionic build <path> [flags]",
		flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("build", pflag.ContinueOnError)
			flagSet.StringVarP(&flags.output, "output", "o", "", "export file to write (default: stdout)")
			flagSet.StringVar(&flags.format, "format", "", "payload format: cbor or json (default from config)")
			flagSet.StringVar(&flags.compression, "compression", "", "none, lz4, zstd or auto (default from config)")
			flagSet.StringArrayVarP(&flags.recipients, "recipient", "r", nil, "encrypt to this age public key (repeatable)")
			flagSet.IntVar(&flags.chunkSize, "chunk-size", 0, "maximum bytes per leaf (default from config)")
			flagSet.StringVar(&flags.digest, "digest", "", "digest algorithm: sha256 or blake3 (default from config)")
			flagSet.StringVar(&flags.encoding, "encoding", "", "multibase encoding for digests (default from config)")
			a.commonFlags(flagSet)
			return flagSet
		},
		run: func(args []string) error {
			return a.runBuild(args, flags)
		},
	}
}

func (a *app) runBuild(args []string, flags buildFlags) error {
	if len(args) != 1 {
		return usageError("build takes exactly one path")
	}
	cfg, logger, err := a.load()
	if err != nil {
		return err
	}

	if flags.format != "" {
		cfg.Export.Format = flags.format
	}
	if flags.compression != "" {
		cfg.Export.Compression = flags.compression
	}
	if flags.chunkSize != 0 {
		cfg.ChunkSize = flags.chunkSize
	}
	if flags.digest != "" {
		cfg.Digest = flags.digest
	}
	if flags.encoding != "" {
		cfg.Encoding = flags.encoding
	}
	if err := cfg.Validate(); err != nil {
		return usageError("%v", err)
	}

	toStdout := flags.output == "" || flags.output == "-"
	if toStdout && cfg.Export.Format != dagfile.FormatJSON && isTerminal(a.stdout) {
		return usageError("refusing to write a binary export to a terminal; use --output or redirect stdout")
	}

	algorithm, encoding, err := cfg.Scheme()
	if err != nil {
		return usageError("%v", err)
	}
	graph, err := dagfs.Build(a.ctx, args[0], dagfs.Options{
		Scheme:    dag.NewScheme(algorithm, encoding),
		ChunkSize: cfg.ChunkSize,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	options := dagfile.WriteOptions{
		Digest:      algorithm,
		Encoding:    encoding.Name(),
		Format:      cfg.Export.Format,
		Compression: cfg.Export.Compression,
		Recipients:  append(cfg.Export.Recipients, flags.recipients...),
	}
	if toStdout {
		return dagfile.Write(a.stdout, graph, options)
	}
	if err := dagfile.WriteFile(flags.output, graph, options); err != nil {
		return err
	}
	logger.Info("wrote export", "path", flags.output, "encrypted", len(options.Recipients) > 0)
	fmt.Fprintln(a.stdout, graph.Root)
	return nil
}
