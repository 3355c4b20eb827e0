// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"
)

// command is a node in the CLI tree.
type command struct {
	// name is the command name as typed by the user.
	name string

	// summary is a one-line description shown in the parent's listing.
	summary string

	// usage is the usage line, e.g. "scionic verify <file> [flags]".
	usage string

	// flags returns the command's flag set. Nil means no flags.
	flags func() *pflag.FlagSet

	subcommands []*command

	// run executes the command with the positional arguments left
	// after flag parsing.
	run func(args []string) error

	parent *command
}

// execute parses args and dispatches to a subcommand or run.
func (c *command) execute(args []string, stderr io.Writer) error {
	if len(args) > 0 && isHelpFlag(args[0]) {
		c.printHelp(stderr)
		return nil
	}

	if len(c.subcommands) > 0 {
		if len(args) == 0 || strings.HasPrefix(args[0], "-") {
			c.printHelp(stderr)
			return usageError("subcommand required")
		}
		for _, sub := range c.subcommands {
			if sub.name == args[0] {
				sub.parent = c
				return sub.execute(args[1:], stderr)
			}
		}
		if suggestion := suggestCommand(args[0], c.subcommands); suggestion != "" {
			return usageError("unknown command %q (did you mean %q?)", args[0], suggestion)
		}
		return usageError("unknown command %q; run '%s --help' for usage", args[0], c.fullName())
	}

	if c.flags != nil {
		flagSet := c.flags()
		flagSet.SetOutput(io.Discard)
		if err := flagSet.Parse(args); err != nil {
			if err == pflag.ErrHelp {
				c.printHelp(stderr)
				return nil
			}
			return usageError("%v; run '%s --help' for usage", err, c.fullName())
		}
		args = flagSet.Args()
	}
	return c.run(args)
}

// printHelp writes structured help output to w.
func (c *command) printHelp(w io.Writer) {
	if c.summary != "" {
		fmt.Fprintf(w, "%s\n\n", c.summary)
	}
	switch {
	case c.usage != "":
		fmt.Fprintf(w, "Usage:\n  %s\n", c.usage)
	case len(c.subcommands) > 0:
		fmt.Fprintf(w, "Usage:\n  %s <command> [flags]\n", c.fullName())
	default:
		fmt.Fprintf(w, "Usage:\n  %s [flags]\n", c.fullName())
	}

	if len(c.subcommands) > 0 {
		fmt.Fprintf(w, "\nCommands:\n")
		tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
		for _, sub := range c.subcommands {
			fmt.Fprintf(tw, "  %s\t%s\n", sub.name, sub.summary)
		}
		tw.Flush()
		fmt.Fprintf(w, "\nRun '%s <command> --help' for more information on a command.\n", c.fullName())
	}

	if c.flags != nil {
		var flagHelp strings.Builder
		flagSet := c.flags()
		flagSet.SetOutput(&flagHelp)
		flagSet.PrintDefaults()
		if flagHelp.Len() > 0 {
			fmt.Fprintf(w, "\nFlags:\n%s", flagHelp.String())
		}
	}
}

func (c *command) fullName() string {
	if c.parent == nil {
		return c.name
	}
	return c.parent.fullName() + " " + c.name
}

func isHelpFlag(arg string) bool {
	return arg == "-h" || arg == "--help" || arg == "help"
}

// suggestCommand returns the subcommand within edit distance 2 of
// unknown, or "".
func suggestCommand(unknown string, commands []*command) string {
	best, bestDistance := "", 3
	for _, candidate := range commands {
		if distance := levenshtein(unknown, candidate.name); distance < bestDistance {
			best, bestDistance = candidate.name, distance
		}
	}
	return best
}

func levenshtein(a, b string) int {
	previous := make([]int, len(b)+1)
	current := make([]int, len(b)+1)
	for j := range previous {
		previous[j] = j
	}
	for i := 1; i <= len(a); i++ {
		current[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			current[j] = min(previous[j]+1, current[j-1]+1, previous[j-1]+cost)
		}
		previous, current = current, previous
	}
	return previous[len(b)]
}
