// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/scionic/lib/dag"
)

func (a *app) catCommand() *command {
	var flags readFlags
	return &command{
		name:    "cat",
		summary: "Verify an export and write the root file's content to stdout",
		usage:   "scionic cat <file> [flags]",
		flags:   func() *pflag.FlagSet { return a.readFlagSet("cat", &flags) },
		run: func(args []string) error {
			if len(args) != 1 {
				return usageError("cat takes exactly one export file")
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

			root, err := exported.graph.RootLeaf()
			if err != nil {
				return err
			}
			if root.Type != dag.File {
				return usageError("root %q is a %s; use restore for directories", root.Name, root.Type)
			}
			content, err := exported.graph.Reconstruct(root)
			if err != nil {
				return err
			}
			_, err = a.stdout.Write(content)
			return err
		},
	}
}
