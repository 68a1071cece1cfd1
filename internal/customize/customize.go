// Copyright 2026 The Blueprint Authors
// SPDX-License-Identifier: MIT

// Package customize turns a pristine template checkout into a project: it
// classifies the tree, substitutes the placeholders, renames the integration
// directory, swaps the README and removes the scaffolding files.
package customize

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"path/filepath"

	"github.com/davetashner/blueprint/internal/classify"
	"github.com/davetashner/blueprint/internal/config"
	"github.com/davetashner/blueprint/internal/params"
	"github.com/davetashner/blueprint/internal/substitute"
	"github.com/davetashner/blueprint/internal/testable"
)

// FS is the file system implementation used by this package.
// Override in tests with a testable.MockFileSystem.
var FS testable.FileSystem = testable.DefaultFS

// ErrUpstreamRepository is returned when the tree is the template's own
// canonical repository.
var ErrUpstreamRepository = errors.New("this checkout is the template's upstream repository")

// NotPristineError is returned when the tree is not a pristine template.
type NotPristineError struct {
	Decision classify.Decision
}

func (e *NotPristineError) Error() string {
	if e.Decision.Verdict == classify.Indeterminate {
		return fmt.Sprintf("cannot tell whether this tree is a fresh template (%s); refusing to modify it", e.Decision.Reason)
	}
	return fmt.Sprintf("this project has already been initialized (%s)", e.Decision.Reason)
}

// Options configures a run.
type Options struct {
	Root   string
	Config *config.Config
	Params params.Params
	DryRun bool
	// Force skips the upstream and classification gates. It exists so the
	// template maintainers can exercise the tool against the template itself.
	Force bool
	// Exclude holds extra base names kept out of substitution.
	Exclude []string
}

// Operation names recorded in Actions.
const (
	OpRenamed  = "renamed"
	OpReplaced = "replaced"
	OpRemoved  = "removed"
	OpSkipped  = "skipped"
)

// Action records a single structural change made (or planned) by a run.
type Action struct {
	File        string
	Operation   string
	Description string
	DryRun      bool
}

// Result holds the outcome of a run.
type Result struct {
	Signals    classify.Signals
	Decision   classify.Decision
	Forced     bool
	DryRun     bool
	Candidates int
	Stats      *substitute.Stats
	Rules      []*substitute.RuleResult
	Actions    []Action
}

// Skipped returns every file skipped by any rule for a reason other than
// binary content.
func (r *Result) Skipped() []substitute.Skip {
	var out []substitute.Skip
	for _, rr := range r.Rules {
		for _, s := range rr.Skipped {
			if s.Reason != substitute.SkipBinary {
				out = append(out, s)
			}
		}
	}
	return out
}

// Assess gathers the classification signals and applies the upstream and
// verdict gates. With force, failing gates are logged instead of returned.
func Assess(root string, cfg *config.Config, force bool) (classify.Signals, classify.Decision, error) {
	signals, err := classify.Gather(root, cfg)
	if err != nil {
		return signals, classify.Decision{Verdict: classify.Indeterminate, Reason: err.Error()}, fmt.Errorf("inspecting repository: %w", err)
	}
	policy := classify.PolicyFor(cfg)
	decision := classify.Decide(signals, policy)

	if classify.IsUpstream(signals, policy) {
		if !force {
			return signals, decision, ErrUpstreamRepository
		}
		slog.Warn("maintainer override: customizing the upstream template repository", "remote", signals.RemoteURL)
	}
	if decision.Verdict != classify.PristineTemplate {
		if !force {
			return signals, decision, &NotPristineError{Decision: decision}
		}
		slog.Warn("maintainer override: ignoring repository state", "verdict", decision.Verdict.String(), "reason", decision.Reason)
	}
	return signals, decision, nil
}

// Run performs the full customization. Parameters are validated before
// anything else; structural steps run only after every rule was applied, and
// scaffolding is removed last and only when no file failed to update.
func Run(ctx context.Context, opts Options) (*Result, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := opts.Params.Validate(); err != nil {
		return nil, err
	}

	signals, decision, err := Assess(opts.Root, cfg, opts.Force)
	if err != nil {
		return nil, err
	}
	res := &Result{
		Signals:  signals,
		Decision: decision,
		Forced:   opts.Force,
		DryRun:   opts.DryRun,
		Stats:    substitute.NewStats(),
	}
	slog.Info("customizing template", "path", opts.Root, "verdict", decision.Verdict.String(), "dry_run", opts.DryRun, "forced", opts.Force)

	if err := checkRenameTarget(opts, cfg); err != nil {
		return nil, err
	}

	candidates, err := Select(opts.Root, cfg, opts.Exclude)
	if err != nil {
		return nil, err
	}
	res.Candidates = len(candidates)

	rules := params.Rules(cfg.Template, opts.Params)
	engine := substitute.New(FS, opts.DryRun)
	res.Rules, err = engine.ApplyAll(ctx, candidates, rules, res.Stats)
	if err != nil {
		return res, fmt.Errorf("substituting placeholders: %w", err)
	}

	if err := renameTemplateDir(opts, cfg, res); err != nil {
		return res, err
	}
	if err := swapReadme(opts, cfg, res); err != nil {
		return res, err
	}
	removeScaffolding(opts, cfg, res)
	return res, nil
}

func (r *Result) record(a Action) {
	a.DryRun = r.DryRun
	r.Actions = append(r.Actions, a)
	slog.Info("structural change", "file", a.File, "operation", a.Operation, "dry_run", a.DryRun, "forced", r.Forced)
}

func abs(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}

func exists(p string) (bool, error) {
	_, err := FS.Stat(p)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// checkRenameTarget fails before any file is rewritten when the integration
// directory cannot be renamed.
func checkRenameTarget(opts Options, cfg *config.Config) error {
	to := path.Join(cfg.CustomRoot, opts.Params.Domain)
	if to == cfg.TemplateDir() {
		return nil
	}
	taken, err := exists(abs(opts.Root, to))
	if err != nil {
		return fmt.Errorf("checking %s: %w", to, err)
	}
	if taken {
		return fmt.Errorf("cannot rename %s: %s already exists", cfg.TemplateDir(), to)
	}
	return nil
}

func renameTemplateDir(opts Options, cfg *config.Config, res *Result) error {
	from := cfg.TemplateDir()
	to := path.Join(cfg.CustomRoot, opts.Params.Domain)
	if from == to {
		return nil
	}
	ok, err := exists(abs(opts.Root, from))
	if err != nil {
		return fmt.Errorf("checking %s: %w", from, err)
	}
	if !ok {
		res.record(Action{File: from, Operation: OpSkipped, Description: "integration directory not found"})
		return nil
	}
	taken, err := exists(abs(opts.Root, to))
	if err != nil {
		return fmt.Errorf("checking %s: %w", to, err)
	}
	if taken {
		return fmt.Errorf("cannot rename %s: %s already exists", from, to)
	}
	if !opts.DryRun {
		if err := FS.Rename(abs(opts.Root, from), abs(opts.Root, to)); err != nil {
			return fmt.Errorf("renaming %s: %w", from, err)
		}
	}
	res.record(Action{File: from, Operation: OpRenamed, Description: "to " + to})
	return nil
}

func swapReadme(opts Options, cfg *config.Config, res *Result) error {
	ok, err := exists(abs(opts.Root, cfg.ReadmeTemplate))
	if err != nil {
		return fmt.Errorf("checking %s: %w", cfg.ReadmeTemplate, err)
	}
	if !ok {
		return nil
	}
	if !opts.DryRun {
		if err := FS.Rename(abs(opts.Root, cfg.ReadmeTemplate), abs(opts.Root, cfg.Readme)); err != nil {
			return fmt.Errorf("replacing %s: %w", cfg.Readme, err)
		}
	}
	res.record(Action{File: cfg.Readme, Operation: OpReplaced, Description: "with " + cfg.ReadmeTemplate})
	return nil
}

func removeScaffolding(opts Options, cfg *config.Config, res *Result) {
	if failed := res.Skipped(); len(failed) > 0 {
		slog.Warn("keeping scaffolding files because some files were not updated", "failed", len(failed))
		for _, s := range cfg.Scaffolding {
			res.record(Action{File: s, Operation: OpSkipped, Description: "kept so the run can be repeated"})
		}
		return
	}
	for _, s := range cfg.Scaffolding {
		p := abs(opts.Root, s)
		ok, err := exists(p)
		if err != nil || !ok {
			continue
		}
		if !opts.DryRun {
			if err := FS.Remove(p); err != nil {
				slog.Warn("cannot remove scaffolding file", "file", s, "error", err)
				res.record(Action{File: s, Operation: OpSkipped, Description: err.Error()})
				continue
			}
		}
		res.record(Action{File: s, Operation: OpRemoved, Description: "scaffolding"})
	}
}
