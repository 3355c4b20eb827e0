// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
)

// Exit codes.
const (
	exitOK       = 0
	exitMismatch = 1
	exitUsage    = 2
)

// exitError carries a specific exit code. When message is empty the
// command has already written its own output and main prints nothing.
type exitError struct {
	code    int
	message string
}

func (e *exitError) Error() string {
	if e.message == "" {
		return fmt.Sprintf("exit code %d", e.code)
	}
	return e.message
}

// ExitCode returns the process exit code.
func (e *exitError) ExitCode() int {
	return e.code
}

// usageError reports bad arguments, flags or environment.
func usageError(format string, args ...any) error {
	return &exitError{code: exitUsage, message: fmt.Sprintf(format, args...)}
}

// errMismatch reports that a graph failed verification. The verify
// output has already described the failing leaves.
var errMismatch = &exitError{code: exitMismatch}

// exitCode maps an error returned by a command to the process exit
// code. Errors without a code are environment failures.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var coded *exitError
	if errors.As(err, &coded) {
		return coded.code
	}
	return exitUsage
}
