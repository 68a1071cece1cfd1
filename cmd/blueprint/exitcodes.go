package main

import (
	"errors"
	"fmt"

	"github.com/davetashner/blueprint/internal/customize"
	"github.com/davetashner/blueprint/internal/params"
)

// Exit codes for the blueprint CLI.
const (
	ExitOK      = 0 // Run completed (or dry run reported).
	ExitConfig  = 1 // Invalid parameters, flags or config file.
	ExitRefused = 2 // Tree is upstream, already initialized, indeterminate or dirty.
	ExitFailure = 3 // Unexpected failure while running.
)

// exitCodeError carries a non-zero exit code through cobra's error handling.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

// exitError creates an exitCodeError.
func exitError(code int, format string, args ...any) *exitCodeError {
	return &exitCodeError{code: code, msg: fmt.Sprintf(format, args...)}
}

// exitFor maps a core error to its exit code and user guidance.
func exitFor(err error) error {
	if err == nil {
		return nil
	}
	var (
		cfgErr   *params.ConfigError
		notFresh *customize.NotPristineError
		dirty    *customize.DirtyTreeError
	)
	switch {
	case errors.As(err, &cfgErr):
		return exitError(ExitConfig, "blueprint: %v", err)
	case errors.Is(err, customize.ErrUpstreamRepository):
		return exitError(ExitRefused, "blueprint: %v\n"+
			"Create your own repository with \"Use this template\" and run blueprint there.\n"+
			"Template maintainers can pass --force to test against this checkout.", err)
	case errors.As(err, &notFresh):
		return exitError(ExitRefused, "blueprint: %v\n"+
			"blueprint only runs once, on a fresh copy of the template. Nothing was changed.", err)
	case errors.As(err, &dirty):
		return exitError(ExitRefused, "blueprint: %v", err)
	default:
		return exitError(ExitFailure, "blueprint: %v", err)
	}
}
