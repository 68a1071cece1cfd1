package testable

import (
	"context"
	"os/exec"
)

// CommandExecutor abstracts exec.LookPath and exec.CommandContext so that the
// git CLI wrapper can be tested without a real git binary.
type CommandExecutor interface {
	LookPath(file string) (string, error)
	CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd
}

// RealCommandExecutor delegates to the os/exec package.
type RealCommandExecutor struct{}

// LookPath wraps exec.LookPath.
func (RealCommandExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// CommandContext wraps exec.CommandContext.
func (RealCommandExecutor) CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	return exec.CommandContext(ctx, name, args...) //nolint:gosec // args are controlled by callers
}

// DefaultExecutor is the production CommandExecutor.
var DefaultExecutor CommandExecutor = RealCommandExecutor{}
