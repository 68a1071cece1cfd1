// Copyright 2026 The Blueprint Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/blueprint/internal/availability"
	"github.com/davetashner/blueprint/internal/params"
)

// resetInitFlags resets all package-level init flags to their default values.
func resetInitFlags(t *testing.T) {
	t.Helper()
	initDryRun = false
	initUnattended = false
	initYes = false
	initForce = false
	initSkipAvailability = false
	verbose = false
	quiet = false
	for _, key := range []string{params.KeyDomain, params.KeyTitle, params.KeyNamespace, params.KeyRepository, params.KeyAuthor} {
		f := initCmd.Flags().Lookup(key)
		require.NotNil(t, f)
		require.NoError(t, f.Value.Set(""))
		f.Changed = false
	}
	for _, env := range []string{"BLUEPRINT_DOMAIN", "BLUEPRINT_TITLE", "BLUEPRINT_NAMESPACE", "BLUEPRINT_REPOSITORY", "BLUEPRINT_AUTHOR"} {
		t.Setenv(env, "")
	}
}

type fakeChecker struct {
	name   string
	status availability.Status
}

func (f fakeChecker) Name() string { return f.name }

func (f fakeChecker) Check(context.Context, string) (availability.Status, error) {
	return f.status, nil
}

func withCheckers(t *testing.T, checkers ...availability.Checker) {
	t.Helper()
	orig := availabilityCheckers
	availabilityCheckers = func() []availability.Checker { return checkers }
	t.Cleanup(func() { availabilityCheckers = orig })
}

func paramArgs() []string {
	return []string{
		"--domain", "my_air_purifier",
		"--title", "My Air Purifier",
		"--namespace", "MyAirPurifier",
		"--repository", "alice/my_air_purifier",
		"--author", "@alice",
	}
}

func requireExitCode(t *testing.T, err error, code int) *exitCodeError {
	t.Helper()
	require.Error(t, err)
	var ece *exitCodeError
	require.True(t, errors.As(err, &ece), "expected exitCodeError, got %T: %v", err, err)
	assert.Equal(t, code, ece.ExitCode(), ece.Error())
	return ece
}

func readFile(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, rel))
	require.NoError(t, err)
	return string(data)
}

func TestInitCmd_UnattendedForce(t *testing.T) {
	resetInitFlags(t)
	withCheckers(t, fakeChecker{"core", availability.StatusAvailable})
	dir := initTemplateRepo(t)

	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs(append([]string{"init", dir, "--unattended", "--force", "--quiet"}, paramArgs()...))
	require.NoError(t, cmd.Execute())

	manifest := readFile(t, dir, "custom_components/my_air_purifier/manifest.json")
	assert.Contains(t, manifest, `"domain": "my_air_purifier"`)
	assert.Contains(t, manifest, `"name": "My Air Purifier"`)
	assert.Contains(t, manifest, `"@alice"`)
	assert.NoDirExists(t, filepath.Join(dir, "custom_components/ha_integration_domain"))

	assert.Contains(t, readFile(t, dir, "custom_components/my_air_purifier/__init__.py"), "class MyAirPurifierEntity")
	assert.Equal(t, "# My Air Purifier\n\nhttps://github.com/alice/my_air_purifier\n", readFile(t, dir, "README.md"))
	assert.NoFileExists(t, filepath.Join(dir, "README.template.md"))
	assert.NoFileExists(t, filepath.Join(dir, "initialize.sh"))

	// Re-included by the .gitignore negation.
	assert.Contains(t, readFile(t, dir, "config/configuration.yaml"), "my_air_purifier:")
	// Runtime data is never touched.
	assert.Equal(t, "ha_integration_domain", readFile(t, dir, "config/home-assistant_v2.db"))

	out := stdout.String()
	assert.Contains(t, out, "Changed files")
	assert.Contains(t, out, "available")
	assert.Contains(t, out, "Done.")
}

func TestInitCmd_DryRunChangesNothing(t *testing.T) {
	resetInitFlags(t)
	dir := initTemplateRepo(t)
	before := readFile(t, dir, "custom_components/ha_integration_domain/manifest.json")

	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs(append([]string{"init", dir, "--unattended", "--dry-run", "--skip-availability"}, paramArgs()...))
	require.NoError(t, cmd.Execute())

	assert.Equal(t, before, readFile(t, dir, "custom_components/ha_integration_domain/manifest.json"))
	assert.FileExists(t, filepath.Join(dir, "initialize.sh"))
	assert.FileExists(t, filepath.Join(dir, "README.template.md"))

	out := stdout.String()
	assert.Contains(t, out, "Files that would change")
	assert.Contains(t, out, "custom_components/ha_integration_domain/manifest.json")
	assert.Contains(t, out, "would be renamed")
	assert.Contains(t, out, "Dry run: no files were modified.")
}

func TestInitCmd_UnattendedRequiresForce(t *testing.T) {
	resetInitFlags(t)
	dir := initTemplateRepo(t)

	cmd, _, _ := newTestCmd()
	cmd.SetArgs(append([]string{"init", dir, "--unattended"}, paramArgs()...))
	ece := requireExitCode(t, cmd.Execute(), ExitConfig)
	assert.Contains(t, ece.Error(), "--yes")
}

func TestInitCmd_UnattendedYes(t *testing.T) {
	resetInitFlags(t)
	dir := initTemplateRepo(t)

	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs(append([]string{"init", dir, "--unattended", "--yes", "--skip-availability"}, paramArgs()...))
	require.NoError(t, cmd.Execute())
	assert.FileExists(t, filepath.Join(dir, "custom_components/my_air_purifier/manifest.json"))
	assert.Contains(t, stdout.String(), "Done.")

	// Without --force the second unattended run is refused.
	resetInitFlags(t)
	cmd, _, _ = newTestCmd()
	cmd.SetArgs(append([]string{"init", dir, "--unattended", "--yes", "--skip-availability"}, paramArgs()...))
	ece := requireExitCode(t, cmd.Execute(), ExitRefused)
	assert.Contains(t, ece.Error(), "already been initialized")
}

func TestInitCmd_MissingParameter(t *testing.T) {
	resetInitFlags(t)
	dir := initTemplateRepo(t)

	cmd, _, _ := newTestCmd()
	cmd.SetArgs([]string{"init", dir, "--unattended", "--force", "--skip-availability", "--title", "My Air Purifier"})
	ece := requireExitCode(t, cmd.Execute(), ExitConfig)
	assert.Contains(t, ece.Error(), "domain: required")
	assert.FileExists(t, filepath.Join(dir, "initialize.sh"))
}

func TestInitCmd_ParametersFromEnvironment(t *testing.T) {
	resetInitFlags(t)
	dir := initTemplateRepo(t)
	t.Setenv("BLUEPRINT_DOMAIN", "glow")
	t.Setenv("BLUEPRINT_TITLE", "Glow")
	t.Setenv("BLUEPRINT_NAMESPACE", "Glow")
	t.Setenv("BLUEPRINT_REPOSITORY", "alice/glow")
	t.Setenv("BLUEPRINT_AUTHOR", "alice")

	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs([]string{"init", dir, "--unattended", "--dry-run", "--skip-availability"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "to custom_components/glow")
}

func TestInitCmd_RefusesInitializedTree(t *testing.T) {
	resetInitFlags(t)
	dir := initTemplateRepo(t)

	cmd, _, _ := newTestCmd()
	cmd.SetArgs(append([]string{"init", dir, "--unattended", "--force", "--skip-availability"}, paramArgs()...))
	require.NoError(t, cmd.Execute())

	resetInitFlags(t)
	cmd, _, _ = newTestCmd()
	cmd.SetArgs(append([]string{"init", dir, "--unattended", "--dry-run", "--skip-availability"}, paramArgs()...))
	ece := requireExitCode(t, cmd.Execute(), ExitRefused)
	assert.Contains(t, ece.Error(), "already been initialized")
}

func TestInitCmd_RefusesUnversionedTree(t *testing.T) {
	resetInitFlags(t)
	dir := t.TempDir()
	writeTestFile(t, dir, "custom_components/ha_integration_domain/manifest.json", `{"domain": "ha_integration_domain"}`)

	cmd, _, _ := newTestCmd()
	cmd.SetArgs(append([]string{"init", dir, "--unattended", "--dry-run", "--skip-availability"}, paramArgs()...))
	ece := requireExitCode(t, cmd.Execute(), ExitRefused)
	assert.Contains(t, ece.Error(), "not a git repository")
}

func TestInitCmd_RefusesUpstream(t *testing.T) {
	resetInitFlags(t)
	dir := initTemplateRepo(t)
	runGit(t, dir, "remote", "set-url", "origin", "https://github.com/jpawlowski/hacs.integration_blueprint.git")

	cmd, _, _ := newTestCmd()
	cmd.SetArgs(append([]string{"init", dir, "--unattended", "--dry-run", "--skip-availability"}, paramArgs()...))
	ece := requireExitCode(t, cmd.Execute(), ExitRefused)
	assert.Contains(t, ece.Error(), "Use this template")
}

func TestInitCmd_RefusesDirtyTree(t *testing.T) {
	resetInitFlags(t)
	dir := initTemplateRepo(t)
	writeTestFile(t, dir, "notes.txt", "work in progress\n")

	origPrompt := promptParams
	t.Cleanup(func() { promptParams = origPrompt })
	promptParams = func(p params.Params) (params.Params, error) { return p, nil }

	cmd, _, _ := newTestCmd()
	cmd.SetArgs(append([]string{"init", dir, "--skip-availability"}, paramArgs()...))
	ece := requireExitCode(t, cmd.Execute(), ExitRefused)
	assert.Contains(t, ece.Error(), "notes.txt")
	assert.FileExists(t, filepath.Join(dir, "initialize.sh"))
}

func TestInitCmd_InteractiveAbort(t *testing.T) {
	resetInitFlags(t)
	dir := initTemplateRepo(t)

	origPrompt, origConfirm := promptParams, confirmRun
	t.Cleanup(func() { promptParams, confirmRun = origPrompt, origConfirm })

	var prefilled params.Params
	promptParams = func(p params.Params) (params.Params, error) {
		prefilled = p
		p.Domain = "my_air_purifier"
		return p, nil
	}
	confirmRun = func(string, params.Params) (bool, error) { return false, nil }

	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs([]string{"init", dir, "--skip-availability", "--title", "My Air Purifier"})
	require.NoError(t, cmd.Execute())

	// Defaults are derived from the title and the origin remote.
	assert.Equal(t, "my_air_purifier", prefilled.Domain)
	assert.Equal(t, "MyAirPurifier", prefilled.Namespace)
	assert.Equal(t, "alice/my_air_purifier", prefilled.Repository)
	assert.Equal(t, "alice", prefilled.Author)

	assert.Contains(t, stdout.String(), "Aborted")
	assert.DirExists(t, filepath.Join(dir, "custom_components/ha_integration_domain"))
}

func TestInitCmd_TakenDomainIsAdvisory(t *testing.T) {
	resetInitFlags(t)
	withCheckers(t,
		fakeChecker{"home-assistant core", availability.StatusTaken},
		fakeChecker{"home-assistant brands", availability.StatusUnknown},
	)
	dir := initTemplateRepo(t)

	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs(append([]string{"init", dir, "--unattended", "--dry-run"}, paramArgs()...))
	require.NoError(t, cmd.Execute())

	out := stdout.String()
	assert.Contains(t, out, "taken")
	assert.Contains(t, out, "unknown")
	assert.Contains(t, out, "Files that would change")
}

func TestInitCmd_PathIsFile(t *testing.T) {
	resetInitFlags(t)
	tmp := filepath.Join(t.TempDir(), "somefile.txt")
	require.NoError(t, os.WriteFile(tmp, []byte("hello"), 0o600))

	cmd, _, _ := newTestCmd()
	cmd.SetArgs([]string{"init", tmp})
	ece := requireExitCode(t, cmd.Execute(), ExitConfig)
	assert.Contains(t, ece.Error(), "not a directory")
}
