// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/scionic/lib/version"
)

func (a *app) versionCommand() *command {
	var short bool
	return &command{
		name:    "version",
		summary: "Print build version information",
		usage:   "scionic version [--short]",
		flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("version", pflag.ContinueOnError)
			flagSet.BoolVar(&short, "short", false, "print only the version number")
			return flagSet
		},
		run: func(args []string) error {
			if len(args) != 0 {
				return usageError("version takes no arguments")
			}
			if short {
				fmt.Fprintln(a.stdout, version.Short())
				return nil
			}
			fmt.Fprintln(a.stdout, version.Full())
			return nil
		},
	}
}
