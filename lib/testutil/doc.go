// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for scionic packages.
//
// [WriteTree] lays out a directory from a map of slash-separated paths
// to contents, and [ReadTree] reads one back into the same shape, so
// build-then-restore tests can compare whole trees in one call.
package testutil
