// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package dagfs converts between filesystem trees and graphs.
//
// [Build] walks a file or directory and produces a graph whose root is
// the top-level entry:
//
//   - a regular file becomes a File leaf. Content that fits in one
//     chunk is stored inline; larger content is split into Chunk
//     leaves linked under the File leaf in content order.
//   - a directory becomes a Directory leaf linking its entries in
//     byte-wise name order.
//   - anything else (symlinks, devices, sockets) is skipped with a
//     warning.
//
// Because File leaves only ever link Chunk leaves, one level of
// reconstruction recovers a file exactly. [Restore] walks Directory
// leaves recursively and reconstructs each File leaf in turn.
package dagfs
