// Copyright 2026 The Blueprint Authors
// SPDX-License-Identifier: MIT

// Package substitute applies ordered literal replacements to candidate files.
package substitute

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"log/slog"

	"github.com/davetashner/blueprint/internal/selector"
	"github.com/davetashner/blueprint/internal/testable"
)

// SkipReason explains why a candidate was not processed.
type SkipReason string

// Skip reasons. None of them abort a run.
const (
	SkipBinary     SkipReason = "binary"
	SkipMissing    SkipReason = "missing"
	SkipPermission SkipReason = "permission denied"
	SkipUnreadable SkipReason = "unreadable"
	SkipWrite      SkipReason = "write failed"
)

// Skip records a candidate that was passed over.
type Skip struct {
	Path   string
	Reason SkipReason
	Err    error
}

// RuleResult is the outcome of applying one rule.
type RuleResult struct {
	Rule    Rule
	Counts  map[string]int
	Skipped []Skip
}

// Total returns the occurrences matched by this rule.
func (r *RuleResult) Total() int {
	n := 0
	for _, c := range r.Counts {
		n += c
	}
	return n
}

// Engine applies rules to candidates. In dry-run mode files are read but
// never written.
type Engine struct {
	FS     testable.FileSystem
	DryRun bool
}

// New returns an Engine backed by fsys, or testable.DefaultFS when nil.
func New(fsys testable.FileSystem, dryRun bool) *Engine {
	if fsys == nil {
		fsys = testable.DefaultFS
	}
	return &Engine{FS: fsys, DryRun: dryRun}
}

// Apply replaces every occurrence of rule.Search in each text candidate and
// adds the counts to stats, keyed by the candidate's relative path. Each file
// is transformed in a single pass, so a replacement is never rescanned.
func (e *Engine) Apply(ctx context.Context, candidates []*selector.Candidate, rule Rule, stats *Stats) (*RuleResult, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	search := []byte(rule.Search)
	replace := []byte(rule.Replace)
	res := &RuleResult{Rule: rule, Counts: make(map[string]int)}

	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		if text, known := c.Text(); known && !text {
			res.skip(c, SkipBinary, nil)
			continue
		}

		info, err := e.FS.Stat(c.Path)
		if err != nil {
			res.skip(c, reasonFor(err, SkipMissing), err)
			continue
		}
		data, err := e.FS.ReadFile(c.Path)
		if err != nil {
			res.skip(c, reasonFor(err, SkipUnreadable), err)
			continue
		}
		text, known := c.Text()
		if !known {
			text = IsText(data)
			c.SetText(text)
		}
		if !text {
			res.skip(c, SkipBinary, nil)
			continue
		}

		n := bytes.Count(data, search)
		if n == 0 {
			continue
		}
		if !e.DryRun {
			out := bytes.ReplaceAll(data, search, replace)
			if err := e.FS.WriteFile(c.Path, out, info.Mode().Perm()); err != nil {
				res.skip(c, reasonFor(err, SkipWrite), err)
				continue
			}
		}
		res.Counts[c.Rel] = n
		if stats != nil {
			stats.Add(c.Rel, n)
		}
		slog.Debug("substituted", "rule", rule.Label, "path", c.Rel, "count", n, "dry_run", e.DryRun)
	}
	return res, nil
}

// ApplyAll validates the rule order and applies each rule in turn.
func (e *Engine) ApplyAll(ctx context.Context, candidates []*selector.Candidate, rules []Rule, stats *Stats) ([]*RuleResult, error) {
	if err := ValidateOrder(rules); err != nil {
		return nil, err
	}
	results := make([]*RuleResult, 0, len(rules))
	for _, r := range rules {
		res, err := e.Apply(ctx, candidates, r, stats)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (r *RuleResult) skip(c *selector.Candidate, reason SkipReason, err error) {
	r.Skipped = append(r.Skipped, Skip{Path: c.Rel, Reason: reason, Err: err})
	if reason == SkipBinary {
		slog.Debug("skipping binary file", "path", c.Rel)
		return
	}
	slog.Warn("skipping file", "path", c.Rel, "reason", string(reason), "error", err)
}

func reasonFor(err error, fallback SkipReason) SkipReason {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return SkipMissing
	case errors.Is(err, fs.ErrPermission):
		return SkipPermission
	default:
		return fallback
	}
}
