// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/scionic/lib/sealed"
)

func (a *app) keygenCommand() *command {
	var output string
	return &command{
		name:    "keygen",
		summary: "Generate an age keypair for encrypted exports",
		usage:   "scionic keygen [-o identity.txt]",
		flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("keygen", pflag.ContinueOnError)
			flagSet.StringVarP(&output, "output", "o", "", "write the identity file here (mode 0600) instead of stdout")
			return flagSet
		},
		run: func(args []string) error {
			if len(args) != 0 {
				return usageError("keygen takes no arguments")
			}
			keypair, err := sealed.GenerateKeypair()
			if err != nil {
				return err
			}
			if output == "" {
				_, err := fmt.Fprint(a.stdout, keypair.IdentityFile())
				return err
			}

			file, err := os.OpenFile(output, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
			if err != nil {
				return usageError("writing identity: %v", err)
			}
			if _, err := file.WriteString(keypair.IdentityFile()); err != nil {
				file.Close()
				return err
			}
			if err := file.Close(); err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, keypair.PublicKey)
			return nil
		},
	}
}
