// Copyright 2026 The Blueprint Authors
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"

	"github.com/davetashner/blueprint/internal/classify"
	"github.com/davetashner/blueprint/internal/config"
	"github.com/davetashner/blueprint/internal/report"
)

// detectStrict makes detect exit with ExitRefused unless the tree is a
// pristine template.
var detectStrict bool

// detectCmd reports how the tool classifies a tree without changing it.
var detectCmd = &cobra.Command{
	Use:   "detect [path]",
	Short: "Show whether a tree is a fresh template or already initialized",
	Long: `Inspect the tree and print the signals behind its classification:
pristine-template, already-initialized or indeterminate. Nothing is modified.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDetect,
}

func init() {
	detectCmd.Flags().BoolVar(&detectStrict, "strict", false, "exit with status 2 unless the tree is a pristine template")
}

func runDetect(cmd *cobra.Command, args []string) error {
	root, err := resolveRepoPath(args)
	if err != nil {
		return err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return exitError(ExitConfig, "blueprint: %v", err)
	}

	signals, err := classify.Gather(root, cfg)
	if err != nil {
		return exitError(ExitFailure, "blueprint: inspecting repository: %v", err)
	}
	policy := classify.PolicyFor(cfg)
	decision := classify.Decide(signals, policy)
	upstream := classify.IsUpstream(signals, policy)

	if err := report.Verdict(cmd.OutOrStdout(), signals, decision, upstream); err != nil {
		return exitError(ExitFailure, "blueprint: %v", err)
	}
	if detectStrict && (upstream || decision.Verdict != classify.PristineTemplate) {
		return exitError(ExitRefused, "")
	}
	return nil
}
