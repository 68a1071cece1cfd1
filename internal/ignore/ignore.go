// Copyright 2026 The Blueprint Authors
// SPDX-License-Identifier: MIT

// Package ignore turns .gitignore content into the prune paths and negation
// overrides used by the file selector.
//
// This is deliberately not a full gitignore matcher. Wildcard lines are never
// turned into prunes because a path-prefix prune cannot express them; any
// re-inclusion they would imply must come from explicit negations.
//
// Every bare name is pruned at any depth, including names with a dot such as
// "secrets.yaml" or ".env". Placeholders inside such files are therefore
// never rewritten unless a negation re-includes them.
package ignore

import (
	"bufio"
	"bytes"
	"errors"
	"io/fs"
	"path"
	"strings"

	"github.com/davetashner/blueprint/internal/testable"
)

// FileName is the ignore file read from the repository root.
const FileName = ".gitignore"

// wildcardChars are the characters that make a line a glob.
const wildcardChars = "*?["

// Pattern is one significant line of an ignore file.
type Pattern struct {
	Raw         string
	IsNegation  bool
	HasWildcard bool
	IsDirectory bool // trailing separator
}

// PrunePath is a tree location the walk must never enter.
type PrunePath struct {
	// Path is slash-separated and relative to the walk root.
	Path string
	// AnyDepth prunes Path wherever it appears, not only at the root.
	AnyDepth bool
}

// Matches reports whether the slash-separated relative path rel is pruned.
func (p PrunePath) Matches(rel string) bool {
	if rel == p.Path {
		return true
	}
	return p.AnyDepth && strings.HasSuffix(rel, "/"+p.Path)
}

// Rules is the result of parsing an ignore file.
type Rules struct {
	Prunes    []PrunePath
	Negations []string
}

// ParsePattern classifies a single non-blank, non-comment line.
func ParsePattern(line string) Pattern {
	p := Pattern{Raw: line}
	body := line
	if strings.HasPrefix(body, "!") {
		p.IsNegation = true
		body = body[1:]
	}
	p.HasWildcard = strings.ContainsAny(body, wildcardChars)
	p.IsDirectory = strings.HasSuffix(body, "/")
	return p
}

// Parse reads ignore-file content and derives prunes and negations.
func Parse(data []byte) Rules {
	var rules Rules
	seen := make(map[PrunePath]bool)
	add := func(pp PrunePath) {
		if pp.Path == "" || pp.Path == "." || seen[pp] {
			return
		}
		seen[pp] = true
		rules.Prunes = append(rules.Prunes, pp)
	}

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		p := ParsePattern(line)
		if p.IsNegation {
			rules.Negations = append(rules.Negations, strings.TrimPrefix(line, "!"))
			continue
		}
		if p.HasWildcard {
			continue
		}

		anchored := strings.HasPrefix(line, "/")
		clean := path.Clean(strings.Trim(line, "/"))

		switch {
		case anchored:
			add(PrunePath{Path: clean})
		case p.IsDirectory:
			add(PrunePath{Path: clean})
			add(PrunePath{Path: clean, AnyDepth: true})
		case strings.Contains(clean, "/"):
			add(PrunePath{Path: clean})
		default:
			// A bare name: a directory name such as "build", or a file name
			// such as "secrets.yaml". Both match at any depth.
			add(PrunePath{Path: clean})
			add(PrunePath{Path: clean, AnyDepth: true})
		}
	}
	return rules
}

// Load reads and parses the ignore file at path. A missing file yields empty
// rules and no error.
func Load(fsys testable.FileSystem, filePath string) (Rules, error) {
	data, err := fsys.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Rules{}, nil
		}
		return Rules{}, err
	}
	return Parse(data), nil
}
