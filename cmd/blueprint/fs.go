package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/davetashner/blueprint/internal/testable"
)

// cmdFS is the file system implementation used by CLI commands.
// Override in tests with a testable.MockFileSystem.
var cmdFS testable.FileSystem = testable.DefaultFS

// resolveRepoPath turns the optional positional path into an absolute,
// symlink-free directory path.
func resolveRepoPath(args []string) (string, error) {
	repoPath := "."
	if len(args) > 0 {
		repoPath = args[0]
	}

	absPath, err := cmdFS.Abs(repoPath)
	if err != nil {
		return "", exitError(ExitConfig, "blueprint: cannot resolve path %q (%v)", repoPath, err)
	}
	absPath, err = cmdFS.EvalSymlinks(absPath)
	if err != nil {
		return "", exitError(ExitConfig, "blueprint: path %q does not exist", repoPath)
	}
	info, err := cmdFS.Stat(absPath)
	if err != nil {
		return "", exitError(ExitConfig, "blueprint: path %q does not exist", repoPath)
	}
	if !info.IsDir() {
		return "", exitError(ExitConfig, "blueprint: %q is not a directory", repoPath)
	}
	return absPath, nil
}

// selfExclusions returns the base name of the running executable when it
// lives inside root, so the tool never rewrites its own binary.
func selfExclusions(root string) []string {
	exe, err := os.Executable()
	if err != nil {
		return nil
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	rel, err := filepath.Rel(root, exe)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil
	}
	return []string{filepath.Base(exe)}
}
