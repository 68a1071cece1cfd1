// Copyright 2026 The Blueprint Authors
// SPDX-License-Identifier: MIT

// Package selector enumerates the files of a working tree that are eligible
// for placeholder substitution.
package selector

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/davetashner/blueprint/internal/ignore"
	"github.com/davetashner/blueprint/internal/testable"
)

// FS is the file system implementation used by this package.
// Override in tests with a testable.MockFileSystem.
var FS testable.FileSystem = testable.DefaultFS

// SafetyPrunes can never be re-included by a negation.
var SafetyPrunes = []ignore.PrunePath{
	{Path: ".git", AnyDepth: true},
}

// OperationalPrunes are large or irrelevant runtime directories of a Home
// Assistant development checkout.
var OperationalPrunes = []ignore.PrunePath{
	{Path: "config"},
	{Path: ".venv"},
	{Path: "venv"},
	{Path: "node_modules", AnyDepth: true},
	{Path: "__pycache__", AnyDepth: true},
	{Path: ".mypy_cache", AnyDepth: true},
	{Path: ".pytest_cache", AnyDepth: true},
	{Path: ".ruff_cache", AnyDepth: true},
}

// RuntimeConfigDir is the Home Assistant runtime configuration subtree.
const RuntimeConfigDir = "config"

// RuntimeArtifactPatterns are base-name globs skipped under RuntimeConfigDir
// even when the subtree is re-included.
var RuntimeArtifactPatterns = []string{
	"*.db",
	"*.db-shm",
	"*.db-wal",
	"*.log",
	"*.log.*",
	"*.pid",
	"*.lock",
	".HA_VERSION",
}

// Options configures a selection run.
type Options struct {
	// Prunes are added to SafetyPrunes. Callers normally pass
	// OperationalPrunes plus the parsed ignore-file prunes.
	Prunes []ignore.PrunePath

	// Negations are re-inclusion overrides resolved after the walk.
	Negations []string

	// Exclude holds base names that are never selected.
	Exclude []string
}

// Candidate is a file eligible for substitution.
type Candidate struct {
	// Path is the file path joined onto the selection root.
	Path string
	// Rel is the slash-separated path relative to the root.
	Rel string

	text *bool
}

// Text returns the cached text classification and whether one was made.
// Classification is content-based and happens on first read.
func (c *Candidate) Text() (isText, known bool) {
	if c.text == nil {
		return false, false
	}
	return *c.text, true
}

// SetText records the text classification.
func (c *Candidate) SetText(isText bool) {
	c.text = &isText
}

// Rels returns the relative paths of candidates, in order.
func Rels(candidates []*Candidate) []string {
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.Rel
	}
	return out
}

type selection struct {
	root     string
	realRoot string
	prunes   []ignore.PrunePath
	exclude  map[string]bool
	seen     map[string]bool
	selected []*Candidate
}

// Select walks root once, then resolves negations, and returns the ordered,
// duplicate-free candidate list. A missing root yields an empty list.
func Select(root string, opts Options) ([]*Candidate, error) {
	info, err := FS.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("selection root does not exist", "root", root)
			return nil, nil
		}
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	s := &selection{
		root:     root,
		realRoot: root,
		prunes:   append(append([]ignore.PrunePath{}, SafetyPrunes...), opts.Prunes...),
		exclude:  make(map[string]bool, len(opts.Exclude)),
		seen:     make(map[string]bool),
	}
	if resolved, err := FS.EvalSymlinks(root); err == nil {
		s.realRoot = resolved
	}
	for _, name := range opts.Exclude {
		s.exclude[name] = true
	}

	err = FS.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			slog.Debug("skipping unreadable path", "path", p, "error", walkErr)
			if d != nil && d.IsDir() && p != root {
				return fs.SkipDir
			}
			return nil
		}
		rel, ok := s.rel(p)
		if !ok || rel == "." {
			return nil
		}
		if pruned(s.prunes, rel) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		s.offer(p, rel, d)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	for _, neg := range opts.Negations {
		s.resolveNegation(neg)
	}
	return s.selected, nil
}

// rel converts a path under root to a slash-separated relative path.
func (s *selection) rel(p string) (string, bool) {
	rel, err := filepath.Rel(s.root, p)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return rel, true
}

// offer adds a file unless it is excluded, a runtime artifact, not a
// regular file, or already selected. A nil d means the caller has already
// checked the file with Lstat.
func (s *selection) offer(p, rel string, d fs.DirEntry) {
	if s.seen[rel] {
		return
	}
	if d != nil && !d.Type().IsRegular() {
		return
	}
	base := path.Base(rel)
	if s.exclude[base] {
		slog.Debug("excluding file", "path", rel)
		return
	}
	if isRuntimeArtifact(rel) {
		slog.Debug("skipping runtime artifact", "path", rel)
		return
	}
	s.seen[rel] = true
	s.selected = append(s.selected, &Candidate{Path: p, Rel: rel})
}

// safe reports whether rel lies outside every safety prune.
func safe(rel string) bool {
	return !underAny(SafetyPrunes, rel)
}

// local reports whether the slash-separated rel names something strictly
// below the root.
func local(rel string) bool {
	return rel != "." && filepath.IsLocal(filepath.FromSlash(rel))
}

// contained reports whether p, with every symbolic link resolved, still lies
// below the root and outside the safety prunes.
func (s *selection) contained(p string) bool {
	resolved, err := FS.EvalSymlinks(p)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(s.realRoot, resolved)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	return local(rel) && safe(rel)
}

// lstatRegular reports whether p is a regular file (not a symbolic link)
// whose resolved location is contained in the tree.
func (s *selection) lstatRegular(p string) bool {
	info, err := FS.Lstat(p)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	return s.contained(p)
}

func (s *selection) resolveNegation(neg string) {
	pattern := strings.TrimPrefix(strings.TrimSpace(neg), "/")
	if pattern == "" {
		return
	}

	switch {
	case strings.ContainsAny(pattern, "*?["):
		s.resolveGlob(pattern)
	case strings.HasSuffix(pattern, "/"):
		s.resolveDir(strings.TrimSuffix(pattern, "/"))
	default:
		rel := path.Clean(pattern)
		if !local(rel) || !safe(rel) {
			slog.Debug("ignoring negation outside the tree", "negation", neg)
			return
		}
		p := filepath.Join(s.root, filepath.FromSlash(rel))
		info, err := FS.Lstat(p)
		if err != nil {
			return
		}
		switch {
		case info.IsDir():
			s.resolveDir(rel)
		case s.lstatRegular(p):
			s.offer(p, rel, nil)
		default:
			slog.Debug("ignoring negation that is not a contained regular file", "negation", neg)
		}
	}
}

// resolveDir adds every file below dir, still honouring the safety prunes.
func (s *selection) resolveDir(dir string) {
	dir = path.Clean(dir)
	if !local(dir) || !safe(dir) {
		slog.Debug("ignoring negated directory outside the tree", "dir", dir)
		return
	}
	start := filepath.Join(s.root, filepath.FromSlash(dir))
	info, err := FS.Lstat(start)
	if err != nil || !info.IsDir() || !s.contained(start) {
		return
	}
	_ = FS.WalkDir(start, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if d != nil && d.IsDir() && p != start {
				return fs.SkipDir
			}
			return nil
		}
		rel, ok := s.rel(p)
		if !ok {
			return nil
		}
		if !safe(rel) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		s.offer(p, rel, d)
		return nil
	})
}

// resolveGlob adds files matching a wildcard negation. A pattern such as
// "config/*.yaml" lists only its parent directory.
func (s *selection) resolveGlob(pattern string) {
	matches, err := doublestar.Glob(FS.DirFS(s.root), pattern, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
	if err != nil {
		slog.Debug("negation glob failed", "pattern", pattern, "error", err)
		return
	}
	for _, rel := range matches {
		if !local(rel) || !safe(rel) {
			continue
		}
		p := filepath.Join(s.root, filepath.FromSlash(rel))
		if !s.lstatRegular(p) {
			continue
		}
		s.offer(p, rel, nil)
	}
}

// pruned reports whether rel itself matches any prune path.
func pruned(prunes []ignore.PrunePath, rel string) bool {
	for _, pp := range prunes {
		if pp.Matches(rel) {
			return true
		}
	}
	return false
}

// underAny reports whether rel or one of its ancestors matches a prune path.
func underAny(prunes []ignore.PrunePath, rel string) bool {
	for cur := rel; cur != "." && cur != "/" && cur != ""; cur = path.Dir(cur) {
		if pruned(prunes, cur) {
			return true
		}
	}
	return false
}

// isRuntimeArtifact reports whether rel is a runtime artifact inside the
// runtime configuration subtree.
func isRuntimeArtifact(rel string) bool {
	if !strings.HasPrefix(rel, RuntimeConfigDir+"/") {
		return false
	}
	base := path.Base(rel)
	for _, pattern := range RuntimeArtifactPatterns {
		if ok, _ := doublestar.Match(pattern, base); ok {
			return true
		}
	}
	return false
}
