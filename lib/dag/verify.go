// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dag

import (
	"bytes"
	"context"
	"log/slog"
	"maps"
	"slices"

	"golang.org/x/sync/errgroup"
)

// Report is the per-leaf outcome of [Graph.Check].
type Report struct {
	// Valid is true when every leaf's recomputed digest matched.
	Valid bool

	// Checked is the number of leaves recomputed.
	Checked int

	// Invalid lists the identifier texts of mismatching leaves, sorted.
	Invalid []string
}

// VerifyOption configures Verify and Check.
type VerifyOption func(*verifyConfig)

type verifyConfig struct {
	workers int
	logger  *slog.Logger
}

// WithWorkers recomputes up to n leaves concurrently. Values below 2
// verify sequentially.
func WithWorkers(n int) VerifyOption {
	return func(c *verifyConfig) {
		c.workers = n
	}
}

// WithVerifyLogger logs every mismatching leaf at warn level.
func WithVerifyLogger(logger *slog.Logger) VerifyOption {
	return func(c *verifyConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Verify recomputes every leaf's digest and reports whether all of
// them match their identifiers.
//
// The root leaf (the leaf whose identifier equals g.Root) is checked
// with the root record form, every other leaf with the non-root form.
// A mismatch makes the result false but does not stop the scan. A
// failure of the serializer, digester or encoder is a hard error that
// aborts verification and is returned.
func (g *Graph) Verify(scheme Scheme, options ...VerifyOption) (bool, error) {
	report, err := g.Check(scheme, options...)
	if err != nil {
		return false, err
	}
	return report.Valid, nil
}

// Check is Verify with per-leaf detail.
func (g *Graph) Check(scheme Scheme, options ...VerifyOption) (*Report, error) {
	config := verifyConfig{logger: slog.New(slog.DiscardHandler)}
	for _, option := range options {
		option(&config)
	}

	if _, err := g.RootLeaf(); err != nil {
		return nil, err
	}

	keys := slices.Sorted(maps.Keys(g.Leafs))
	matched := make([]bool, len(keys))

	if config.workers < 2 {
		for i, key := range keys {
			ok, err := g.verifyLeaf(scheme, g.Leafs[key])
			if err != nil {
				return nil, err
			}
			matched[i] = ok
		}
	} else {
		// Each worker writes only its own index of matched, so the
		// slice needs no lock. The group context stops scheduling new
		// leaves after the first hard error.
		group, ctx := errgroup.WithContext(context.Background())
		group.SetLimit(config.workers)
		for i, key := range keys {
			if ctx.Err() != nil {
				break
			}
			leaf := g.Leafs[key]
			group.Go(func() error {
				if ctx.Err() != nil {
					return nil
				}
				ok, err := g.verifyLeaf(scheme, leaf)
				if err != nil {
					return err
				}
				matched[i] = ok
				return nil
			})
		}
		if err := group.Wait(); err != nil {
			return nil, err
		}
	}

	report := &Report{Valid: true, Checked: len(keys)}
	for i, ok := range matched {
		if ok {
			continue
		}
		report.Valid = false
		report.Invalid = append(report.Invalid, keys[i])
		config.logger.Warn("leaf digest mismatch",
			"identifier", keys[i],
			"name", g.Leafs[keys[i]].Name,
		)
	}
	return report, nil
}

// verifyLeaf recomputes one leaf's digest and compares it with the
// stored digest, ignoring labels.
func (g *Graph) verifyLeaf(scheme Scheme, leaf *Leaf) (bool, error) {
	return VerifyLeaf(scheme, leaf, leaf.Identifier.Equal(g.Root))
}

// VerifyLeaf recomputes a single leaf's digest in root or non-root
// form and reports whether it matches the leaf's identifier.
//
// The stored LinkCount and LinkMerkleRoot must also agree with Links,
// since the digest covers only the stored commitment and not the link
// table itself. Disagreement is a mismatch, not an error.
func VerifyLeaf(scheme Scheme, leaf *Leaf, root bool) (bool, error) {
	encoded, err := scheme.digestRecord(leaf.Name, leaf.record(root))
	if err != nil {
		return false, err
	}
	if encoded != leaf.Identifier.Digest {
		return false, nil
	}
	return linksCommitted(scheme, leaf)
}

// linksCommitted reports whether the leaf's link count and link
// Merkle root describe its Links.
func linksCommitted(scheme Scheme, leaf *Leaf) (bool, error) {
	if leaf.LinkCount != len(leaf.Links) {
		return false, nil
	}
	if len(leaf.Links) < 2 {
		return len(leaf.LinkMerkleRoot) == 0, nil
	}
	expected, err := linkMerkleRoot(scheme, leaf.Links)
	if err != nil {
		return false, &EncodingError{Leaf: leaf.Name, Err: err}
	}
	return bytes.Equal(leaf.LinkMerkleRoot, expected), nil
}
