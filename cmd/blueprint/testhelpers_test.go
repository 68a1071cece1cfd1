// Copyright 2026 The Blueprint Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// newTestCmd redirects the output of the shared rootCmd to buffers.
func newTestCmd() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd, stdout, stderr
}

// writeTestFile creates a file (and any necessary parent directories) under dir.
func writeTestFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...) //nolint:gosec // test helper with controlled args
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null", "GIT_CONFIG_SYSTEM=/dev/null")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v failed: %s", args, out)
}

// initTemplateRepo creates a fresh copy of the integration blueprint: one
// commit and an origin remote under the new owner.
func initTemplateRepo(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	writeTestFile(t, dir, "custom_components/ha_integration_domain/manifest.json",
		`{"domain": "ha_integration_domain", "name": "Integration Blueprint", "codeowners": ["@jpawlowski"]}`+"\n")
	writeTestFile(t, dir, "custom_components/ha_integration_domain/__init__.py",
		"\"\"\"Integration Blueprint.\"\"\"\n\nclass IntegrationBlueprintEntity:\n    domain = \"ha_integration_domain\"\n")
	writeTestFile(t, dir, "README.md", "# Integration Blueprint\n\nThe template itself.\n")
	writeTestFile(t, dir, "README.template.md",
		"# Integration Blueprint\n\nhttps://github.com/jpawlowski/hacs.integration_blueprint\n")
	writeTestFile(t, dir, "initialize.sh", "#!/bin/sh\necho ha_integration_domain\n")
	writeTestFile(t, dir, ".gitignore", "config/*\n!config/configuration.yaml\n.venv/\n")
	writeTestFile(t, dir, "config/configuration.yaml", "default_config:\nha_integration_domain:\n")

	runGit(t, dir, "init", "-q")
	runGit(t, dir, "remote", "add", "origin", "git@github.com:alice/my_air_purifier.git")
	runGit(t, dir, "add", ".")
	runGit(t, dir, "-c", "user.name=Alice", "-c", "user.email=alice@test.com",
		"commit", "-q", "-m", "Initial commit")

	// Local runtime data that must never be touched.
	writeTestFile(t, dir, "config/home-assistant_v2.db", "ha_integration_domain")
	return dir
}
