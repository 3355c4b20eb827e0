// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/scionic/lib/codec"
	"github.com/bureau-foundation/scionic/lib/dagfile"
)

func (a *app) inspectCommand() *command {
	var flags readFlags
	var asJSON, showRecord bool
	return &command{
		name:    "inspect",
		summary: "Describe an export without verifying it",
		usage:   "scionic inspect <file> [flags]",
		flags: func() *pflag.FlagSet {
			flagSet := a.readFlagSet("inspect", &flags)
			flagSet.BoolVar(&asJSON, "json", false, "write the whole graph as JSON instead of a summary")
			flagSet.BoolVar(&showRecord, "record", false, "also print the root's hashed record in CBOR diagnostic notation")
			return flagSet
		},
		run: func(args []string) error {
			if len(args) != 1 {
				return usageError("inspect takes exactly one export file")
			}
			cfg, _, err := a.load()
			if err != nil {
				return err
			}

			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			info, err := dagfile.Inspect(file)
			file.Close()
			if err != nil {
				return err
			}

			canDecode := !info.Encrypted || flags.identity != "" || cfg.Identity != ""
			if asJSON {
				if !canDecode {
					return usageError("%s is encrypted; pass --identity to dump it", args[0])
				}
				exported, err := readExport(args[0], flags, cfg)
				if err != nil {
					return err
				}
				data, err := exported.graph.ToJSON()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(a.stdout, "%s\n", data)
				return err
			}

			tw := tabwriter.NewWriter(a.stdout, 2, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "version\t%d\n", info.Version)
			fmt.Fprintf(tw, "digest\t%s\n", info.Digest)
			fmt.Fprintf(tw, "encoding\t%s\n", info.Encoding)
			fmt.Fprintf(tw, "format\t%s\n", info.Format)
			fmt.Fprintf(tw, "compression\t%s\n", info.Compression)
			fmt.Fprintf(tw, "size\t%d\n", info.Size)
			fmt.Fprintf(tw, "payload\t%d\n", info.PayloadSize)
			fmt.Fprintf(tw, "encrypted\t%t\n", info.Encrypted)

			if canDecode {
				exported, err := readExport(args[0], flags, cfg)
				if err != nil {
					return err
				}
				root, err := exported.graph.RootLeaf()
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "root\t%s\n", exported.graph.Root)
				fmt.Fprintf(tw, "name\t%s\n", root.Name)
				fmt.Fprintf(tw, "type\t%s\n", root.Type)
				fmt.Fprintf(tw, "leaves\t%d\n", exported.graph.Len())
				fmt.Fprintf(tw, "latest label\t%d\n", root.LatestLabel)
				if showRecord {
					record, err := exported.scheme.Record(root, true)
					if err != nil {
						return err
					}
					notation, err := codec.Diagnose(record)
					if err != nil {
						return err
					}
					fmt.Fprintf(tw, "record\t%s\n", notation)
				}
			} else if showRecord {
				return usageError("%s is encrypted; pass --identity to show its record", args[0])
			}
			return tw.Flush()
		},
	}
}
