// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// scionic builds, verifies and unpacks content-addressed graph
// exports.
//
// A graph is built from a file or directory tree, written as a single
// export file (optionally compressed and age-encrypted), and later
// verified leaf by leaf and restored. Every command that reads
// content from an export verifies the whole graph first.
//
// Exit codes: 0 success, 1 the graph failed verification, 2 usage or
// environment error.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bureau-foundation/scionic/lib/config"
	"github.com/bureau-foundation/scionic/lib/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one command line and returns the exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) > 0 && args[0] == "--version" {
		fmt.Fprintf(stdout, "scionic %s\n", version.Info())
		return exitOK
	}

	a := &app{ctx: ctx, stdout: stdout, stderr: stderr}
	err := a.root().execute(args, stderr)
	if err != nil {
		var coded *exitError
		if !errors.As(err, &coded) || coded.message != "" {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
	}
	return exitCode(err)
}

// app holds state shared by every command of one invocation.
type app struct {
	ctx    context.Context
	stdout io.Writer
	stderr io.Writer

	// Bound by commonFlags.
	configPath string
	verbose    bool
}

func (a *app) root() *command {
	return &command{
		name:    "scionic",
		summary: "Build, verify and restore content-addressed graph exports.",
		subcommands: []*command{
			a.buildCommand(),
			a.verifyCommand(),
			a.catCommand(),
			a.restoreCommand(),
			a.inspectCommand(),
			a.keygenCommand(),
			a.versionCommand(),
		},
	}
}

// commonFlags registers the flags every command accepts.
func (a *app) commonFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&a.configPath, "config", "", "config file (default: $"+config.EnvironmentVariable+", else built-in defaults)")
	flagSet.BoolVarP(&a.verbose, "verbose", "v", false, "log at debug level")
}

// load returns the validated configuration and a logger for it.
func (a *app) load() (*config.Config, *slog.Logger, error) {
	var cfg *config.Config
	var err error
	if a.configPath != "" {
		cfg, err = config.LoadFile(a.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, nil, usageError("%v", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, usageError("invalid configuration: %v", err)
	}

	level := cfg.LogLevel()
	if a.verbose {
		level = slog.LevelDebug
	}
	return cfg, newLogger(a.stderr, level), nil
}

// newLogger writes human-readable records when w is a terminal and
// JSON records otherwise.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	options := &slog.HandlerOptions{Level: level}
	if isTerminal(w) {
		return slog.New(slog.NewTextHandler(w, options))
	}
	return slog.New(slog.NewJSONHandler(w, options))
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
