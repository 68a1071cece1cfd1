package testable

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CommandResponse is the canned outcome of one command invocation.
type CommandResponse struct {
	Stdout string
	// Stderr, when non-empty, makes the command exit 1 after writing it.
	Stderr string
}

// MockCommandExecutor is a test double for CommandExecutor. Commands are keyed
// by their full command line ("git status --porcelain"); unmatched commands
// get Default.
type MockCommandExecutor struct {
	// LookPathErr, when non-nil, is returned by LookPath for any file.
	LookPathErr error

	Responses map[string]CommandResponse
	Default   CommandResponse

	// Calls records every command line that was built.
	Calls []string
}

// LookPath returns LookPathErr or a fixed path.
func (m *MockCommandExecutor) LookPath(file string) (string, error) {
	if m.LookPathErr != nil {
		return "", m.LookPathErr
	}
	return "/usr/bin/" + file, nil
}

// CommandContext returns a shell command that reproduces the canned response
// without running the real binary.
func (m *MockCommandExecutor) CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	key := strings.TrimSpace(name + " " + strings.Join(args, " "))
	m.Calls = append(m.Calls, key)

	resp, ok := m.Responses[key]
	if !ok {
		resp = m.Default
	}
	if resp.Stderr != "" {
		return exec.CommandContext(ctx, "sh", "-c", fmt.Sprintf("printf '%%s' %q >&2; exit 1", resp.Stderr)) //nolint:gosec // test helper
	}
	return exec.CommandContext(ctx, "sh", "-c", fmt.Sprintf("printf '%%b' %q", resp.Stdout)) //nolint:gosec // test helper
}

var _ CommandExecutor = (*MockCommandExecutor)(nil)
