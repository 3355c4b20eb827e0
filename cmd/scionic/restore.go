// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/scionic/lib/dagfs"
)

func (a *app) restoreCommand() *command {
	var flags readFlags
	return &command{
		name:    "restore",
		summary: "Verify an export and recreate its tree under a directory",
		usage:   "scionic restore <file> <directory> [flags]",
		flags:   func() *pflag.FlagSet { return a.readFlagSet("restore", &flags) },
		run: func(args []string) error {
			if len(args) != 2 {
				return usageError("restore takes an export file and a target directory")
			}
			cfg, logger, err := a.load()
			if err != nil {
				return err
			}
			exported, err := readExport(args[0], flags, cfg)
			if err != nil {
				return err
			}
			if _, err := a.verifyExport(exported, flags, cfg, logger); err != nil {
				return err
			}
			if err := dagfs.Restore(exported.graph, args[1]); err != nil {
				return err
			}

			root, err := exported.graph.RootLeaf()
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, filepath.Join(args[1], root.Name))
			return nil
		},
	}
}
