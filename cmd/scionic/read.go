// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/bureau-foundation/scionic/lib/config"
	"github.com/bureau-foundation/scionic/lib/dag"
	"github.com/bureau-foundation/scionic/lib/dagfile"
)

// readFlags are shared by commands that read an export.
type readFlags struct {
	identity string
	workers  int
}

// export is a decoded export file with the scheme it records.
type export struct {
	graph  *dag.Graph
	info   *dagfile.Info
	scheme dag.Scheme
}

// readExport reads the export at path, decrypting with the identity
// file from --identity or the configuration when needed.
func readExport(path string, flags readFlags, cfg *config.Config) (*export, error) {
	identityPath := flags.identity
	if identityPath == "" {
		identityPath = cfg.Identity
	}
	var identity string
	if identityPath != "" {
		data, err := os.ReadFile(identityPath)
		if err != nil {
			return nil, usageError("reading identity: %v", err)
		}
		identity = string(data)
	}

	graph, info, err := dagfile.ReadFile(path, dagfile.ReadOptions{Identity: identity})
	if errors.Is(err, dagfile.ErrEncrypted) {
		return nil, usageError("%s is encrypted; pass --identity or set identity in the config", path)
	}
	if err != nil {
		return nil, err
	}
	scheme, err := info.Scheme()
	if err != nil {
		return nil, err
	}
	return &export{graph: graph, info: info, scheme: scheme}, nil
}

// verifyExport checks every leaf and reports failures on stderr. A
// mismatch returns errMismatch; a hard error is returned as is.
func (a *app) verifyExport(exported *export, flags readFlags, cfg *config.Config, logger *slog.Logger) (*dag.Report, error) {
	workers := flags.workers
	if workers == 0 {
		workers = cfg.VerifyWorkers
	}
	report, err := exported.graph.Check(exported.scheme,
		dag.WithWorkers(workers),
		dag.WithVerifyLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	if !report.Valid {
		fmt.Fprintf(a.stderr, "FAIL %s: %d of %d leaves do not match their identifiers\n",
			exported.graph.Root, len(report.Invalid), report.Checked)
		for _, identifier := range report.Invalid {
			fmt.Fprintf(a.stderr, "  invalid %s\n", identifier)
		}
		return report, errMismatch
	}
	return report, nil
}
