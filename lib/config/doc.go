// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the scionic tool.
//
// Configuration comes from a single file named by either the
// SCIONIC_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no automatic file search. When neither
// is given the built-in [Default] applies; the defaults reproduce the
// reference digest scheme, so graphs built without a config file
// verify anywhere.
//
// Files ending in .json or .jsonc are read as JSONC (comments and
// trailing commas allowed); anything else is read as YAML. Unknown
// keys are rejected in both forms.
//
// Variable expansion is performed on path fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded. No environment
// variable overrides a config value directly.
//
// Key exports:
//
//   - [Config] -- chunking, digest scheme, verification, export, logging
//   - [Default] -- the reference configuration
//   - [Load] and [LoadFile] -- the two entry points for loading
package config
