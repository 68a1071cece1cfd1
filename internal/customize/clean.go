// Copyright 2026 The Blueprint Authors
// SPDX-License-Identifier: MIT

package customize

import (
	"context"
	"fmt"
	"strings"

	"github.com/davetashner/blueprint/internal/gitcli"
)

// DirtyTreeError is returned when the working tree has uncommitted changes.
type DirtyTreeError struct {
	Entries []string
}

func (e *DirtyTreeError) Error() string {
	const show = 5
	entries := e.Entries
	more := ""
	if len(entries) > show {
		more = fmt.Sprintf("\n  ... and %d more", len(entries)-show)
		entries = entries[:show]
	}
	return fmt.Sprintf("working tree has uncommitted changes; commit or stash them first:\n  %s%s",
		strings.Join(entries, "\n  "), more)
}

// CheckClean verifies that root has no uncommitted changes, since the run
// cannot be undone otherwise.
func CheckClean(ctx context.Context, root string) error {
	if err := gitcli.Available(); err != nil {
		return err
	}
	entries, err := gitcli.Status(ctx, root)
	if err != nil {
		return fmt.Errorf("checking working tree status: %w", err)
	}
	if len(entries) > 0 {
		return &DirtyTreeError{Entries: entries}
	}
	return nil
}
