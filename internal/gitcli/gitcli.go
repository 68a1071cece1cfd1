// Copyright 2026 The Blueprint Authors
// SPDX-License-Identifier: MIT

// Package gitcli runs the native git binary for working-tree status checks,
// which go-git computes slowly and without honouring global excludes.
package gitcli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/davetashner/blueprint/internal/testable"
)

// DefaultTimeout is the per-command timeout for git operations.
const DefaultTimeout = 5 * time.Second

// Executor builds the git processes. Override in tests with a
// testable.MockCommandExecutor.
var Executor = testable.DefaultExecutor

// ErrGitNotFound is returned when no git binary is on PATH.
var ErrGitNotFound = errors.New("git executable not found on PATH")

// Available reports whether a git binary can be found.
func Available() error {
	if _, err := Executor.LookPath("git"); err != nil {
		return fmt.Errorf("%w: %v", ErrGitNotFound, err)
	}
	return nil
}

// Run executes a git command in repoDir and returns its stdout.
func Run(ctx context.Context, repoDir string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	cmd := Executor.CommandContext(ctx, "git", args...)
	cmd.Dir = repoDir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// Status returns the porcelain status lines for repoDir, one per changed or
// untracked path. An empty slice means the working tree is clean.
func Status(ctx context.Context, repoDir string) ([]string, error) {
	out, err := Run(ctx, repoDir, "status", "--porcelain")
	if err != nil {
		return nil, err
	}
	return ParsePorcelain(out), nil
}

// ParsePorcelain splits `git status --porcelain` output into entries,
// dropping blank lines.
func ParsePorcelain(data []byte) []string {
	var entries []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		entries = append(entries, line)
	}
	return entries
}
