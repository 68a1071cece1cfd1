// Copyright 2026 The Blueprint Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/davetashner/blueprint/internal/availability"
	"github.com/davetashner/blueprint/internal/classify"
	"github.com/davetashner/blueprint/internal/config"
	"github.com/davetashner/blueprint/internal/customize"
	"github.com/davetashner/blueprint/internal/params"
	"github.com/davetashner/blueprint/internal/redact"
	"github.com/davetashner/blueprint/internal/report"
)

// Init-specific flag values.
var (
	initDryRun           bool
	initUnattended       bool
	initYes              bool
	initForce            bool
	initSkipAvailability bool
)

// availabilityCheckers builds the remote name checks. Tests replace it to
// avoid network access.
var availabilityCheckers = func() []availability.Checker {
	return availability.DefaultCheckers(availability.NewClient(redact.Token()))
}

// initCmd is the subcommand that customizes a pristine template checkout.
var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Customize a fresh template checkout",
	Long: `Replace the template placeholders with your integration's domain,
title, class namespace, repository and author, then rename the integration
directory, install README.template.md as README.md and remove the
scaffolding files.

Parameters come from flags or BLUEPRINT_* environment variables. Missing
values are prompted for interactively unless --unattended is given, in which
case every value is required and --yes (or --force) must confirm the run.

--yes only skips the confirmation prompt. --force also bypasses the
repository state checks and the clean working tree check; it exists for
template maintainers and every bypassed check is logged as an override.

Use --dry-run to see exactly what would change without touching any file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	f := initCmd.Flags()
	f.BoolVarP(&initDryRun, "dry-run", "n", false, "report what would change without writing anything")
	f.BoolVar(&initUnattended, "unattended", false, "never prompt; all parameters must be supplied")
	f.BoolVarP(&initYes, "yes", "y", false, "proceed without asking for confirmation")
	f.BoolVarP(&initForce, "force", "f", false, "maintainer override: implies --yes and bypasses repository state and clean tree checks")
	f.BoolVar(&initSkipAvailability, "skip-availability", false, "do not check the domain against Home Assistant core and brands")
	f.String(params.KeyDomain, "", "integration domain, e.g. my_air_purifier")
	f.String(params.KeyTitle, "", "integration title, e.g. \"My Air Purifier\"")
	f.String(params.KeyNamespace, "", "class name prefix, e.g. MyAirPurifier")
	f.String(params.KeyRepository, "", "GitHub repository, owner/name")
	f.String(params.KeyAuthor, "", "GitHub user name of the code owner")
}

func runInit(cmd *cobra.Command, args []string) error {
	root, err := resolveRepoPath(args)
	if err != nil {
		return err
	}
	if err := params.CheckMode(initUnattended, initYes || initForce, initDryRun); err != nil {
		return exitFor(err)
	}

	cfg, err := config.Load(root)
	if err != nil {
		return exitError(ExitConfig, "blueprint: %v", err)
	}

	v, err := params.Bind(cmd.Flags())
	if err != nil {
		return exitError(ExitFailure, "blueprint: %v", err)
	}
	p := params.FromViper(v)

	// Refuse early so nobody is prompted for a tree that will be rejected.
	signals, _, err := customize.Assess(root, cfg, initForce)
	if err != nil {
		return exitFor(err)
	}

	if !initUnattended {
		owner, repo, _ := classify.ParseGitHubURL(signals.RemoteURL)
		p, err = promptParams(params.Derive(p, owner, repo))
		if err != nil {
			return err
		}
	}
	if err := p.Validate(); err != nil {
		return exitFor(err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	if !initDryRun {
		if err := checkWorkingTree(ctx, root); err != nil {
			return err
		}
	}

	if !initSkipAvailability {
		results := availability.Run(ctx, availabilityCheckers(), p.Domain, availability.DefaultTimeout)
		_ = report.Availability(out, p.Domain, results)
		for _, r := range results {
			if r.Status == availability.StatusTaken {
				slog.Warn("domain already in use", "domain", p.Domain, "where", r.Check)
			}
		}
	}

	if !initDryRun && !initUnattended && !initYes && !initForce {
		ok, err := confirmRun(root, p)
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(out, "Aborted. Nothing was changed.")
			return nil
		}
	}

	res, err := customize.Run(ctx, customize.Options{
		Root:    root,
		Config:  cfg,
		Params:  p,
		DryRun:  initDryRun,
		Force:   initForce,
		Exclude: selfExclusions(root),
	})
	if res != nil {
		printResult(out, res)
	}
	if err != nil {
		return exitFor(err)
	}
	return nil
}

// checkWorkingTree refuses a dirty tree unless --force is set. A tree that
// cannot be inspected is reported and allowed.
func checkWorkingTree(ctx context.Context, root string) error {
	err := customize.CheckClean(ctx, root)
	if err == nil {
		return nil
	}
	var dirty *customize.DirtyTreeError
	if errors.As(err, &dirty) {
		if !initForce {
			return exitFor(err)
		}
		slog.Warn("working tree has uncommitted changes; continuing because of --force", "entries", len(dirty.Entries))
		return nil
	}
	slog.Warn("cannot verify working tree status", "error", err)
	return nil
}

func printResult(w io.Writer, res *customize.Result) {
	if verbose {
		_ = report.Rules(w, res.Rules)
	}
	_ = report.Summary(w, res.Stats, res.DryRun)
	_ = report.Skips(w, res.Skipped())
	_ = report.Actions(w, res.Actions)

	switch {
	case res.DryRun:
		_, _ = fmt.Fprintln(w, color.YellowString("Dry run: no files were modified."))
	case len(res.Skipped()) > 0:
		_, _ = fmt.Fprintln(w, color.YellowString("Some files could not be updated; fix them and replace the remaining placeholders by hand."))
	default:
		_, _ = fmt.Fprintln(w, color.GreenString("Done.")+" Review the changes with "+color.New(color.Bold).Sprint("git diff")+" and commit them.")
	}
}
