package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetDetectFlags() {
	detectStrict = false
	filesCount = false
}

func TestDetectCmd_Pristine(t *testing.T) {
	resetDetectFlags()
	dir := initTemplateRepo(t)

	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs([]string{"detect", dir, "--strict"})
	require.NoError(t, cmd.Execute())

	out := stdout.String()
	assert.Contains(t, out, "pristine-template")
	assert.Contains(t, out, "git@github.com:alice/my_air_purifier.git")
}

func TestDetectCmd_StrictRefusesIndeterminate(t *testing.T) {
	resetDetectFlags()
	dir := t.TempDir()

	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs([]string{"detect", dir, "--strict"})
	requireExitCode(t, cmd.Execute(), ExitRefused)
	assert.Contains(t, stdout.String(), "indeterminate")
}

func TestDetectCmd_NonStrictAlwaysSucceeds(t *testing.T) {
	resetDetectFlags()
	dir := t.TempDir()
	writeTestFile(t, dir, "custom_components/glow/manifest.json", `{"domain": "glow"}`)

	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs([]string{"detect", dir})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "already-initialized")
}

func TestFilesCmd(t *testing.T) {
	resetDetectFlags()
	dir := initTemplateRepo(t)
	writeTestFile(t, dir, ".venv/lib/site.py", "ha_integration_domain")

	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs([]string{"files", dir})
	require.NoError(t, cmd.Execute())

	out := stdout.String()
	assert.Contains(t, out, "custom_components/ha_integration_domain/manifest.json")
	assert.Contains(t, out, "config/configuration.yaml")
	assert.NotContains(t, out, "home-assistant_v2.db")
	assert.NotContains(t, out, ".venv")
	assert.NotContains(t, out, ".git/")
	assert.NotContains(t, out, "initialize.sh")
}

func TestFilesCmd_Count(t *testing.T) {
	resetDetectFlags()
	dir := t.TempDir()
	writeTestFile(t, dir, "a.txt", "a")
	writeTestFile(t, dir, filepath.Join("sub", "b.txt"), "b")

	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs([]string{"files", dir, "--count"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "2\n", stdout.String())
}

func TestConfigCmd(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, ".blueprint.yaml", "extra_prunes:\n  - docs/\n")

	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs([]string{"config", dir})
	require.NoError(t, cmd.Execute())

	out := stdout.String()
	assert.Contains(t, out, "ha_integration_domain")
	assert.Contains(t, out, "docs/")
}

func TestConfigCmd_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, ".blueprint.yaml", "custom_root: /abs\n")

	cmd, _, _ := newTestCmd()
	cmd.SetArgs([]string{"config", dir})
	requireExitCode(t, cmd.Execute(), ExitConfig)
}
