// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/pflag"
)

func (a *app) readFlagSet(name string, flags *readFlags) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flagSet.StringVarP(&flags.identity, "identity", "i", "", "age identity file for encrypted exports (default from config)")
	flagSet.IntVar(&flags.workers, "workers", 0, "leaves verified concurrently (default from config)")
	a.commonFlags(flagSet)
	return flagSet
}

func (a *app) verifyCommand() *command {
	var flags readFlags
	return &command{
		name:    "verify",
		summary: "Recompute every leaf digest of an export",
		usage:   "scionic verify <file> [flags]",
		flags:   func() *pflag.FlagSet { return a.readFlagSet("verify", &flags) },
		run: func(args []string) error {
			if len(args) != 1 {
				return usageError("verify takes exactly one export file")
			}
			cfg, logger, err := a.load()
			if err != nil {
				return err
			}
			exported, err := readExport(args[0], flags, cfg)
			if err != nil {
				return err
			}
			report, err := a.verifyExport(exported, flags, cfg, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "ok %s (%d leaves)\n", exported.graph.Root, report.Checked)
			return nil
		},
	}
}
