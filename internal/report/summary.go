// Copyright 2026 The Blueprint Authors
// SPDX-License-Identifier: MIT

// Package report renders run results for the terminal.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/davetashner/blueprint/internal/availability"
	"github.com/davetashner/blueprint/internal/classify"
	"github.com/davetashner/blueprint/internal/customize"
	"github.com/davetashner/blueprint/internal/selector"
	"github.com/davetashner/blueprint/internal/substitute"
)

// Summary writes the per-file occurrence table followed by the total. The
// heading says "would change" for dry runs.
func Summary(w io.Writer, stats *substitute.Stats, dryRun bool) error {
	heading := "Changed files"
	if dryRun {
		heading = "Files that would change"
	}
	if _, err := fmt.Fprintln(w, SectionTitle(heading)); err != nil {
		return err
	}

	files := stats.Files()
	if len(files) == 0 {
		_, err := fmt.Fprintln(w, colorDim.Sprint("  no placeholders found"))
		return err
	}

	t := NewTable("FILE", "OCCURRENCES").AlignRight(1)
	for _, f := range files {
		t.Row(f.Path, strconv.Itoa(f.Count))
	}
	t.Row("total", strconv.Itoa(stats.Total()))
	_, err := fmt.Fprintln(w, t.String())
	return err
}

// Rules writes one line per rule with its occurrence count.
func Rules(w io.Writer, results []*substitute.RuleResult) error {
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "  %-12s %q → %q  %s\n", r.Rule.Label, r.Rule.Search, r.Rule.Replace, colorCount(r.Total())); err != nil {
			return err
		}
	}
	return nil
}

// Actions writes the structural changes of a run.
func Actions(w io.Writer, actions []customize.Action) error {
	for _, a := range actions {
		var prefix string
		switch a.Operation {
		case customize.OpRenamed, customize.OpReplaced:
			prefix = colorGreen.Sprint("  ~ ")
		case customize.OpRemoved:
			prefix = colorRed.Sprint("  - ")
		default:
			prefix = colorDim.Sprint("  · ")
		}
		op := a.Operation
		if a.DryRun && a.Operation != customize.OpSkipped {
			op = "would be " + op
		}
		if _, err := fmt.Fprintf(w, "%s%-28s %s %s\n", prefix, a.File, op, colorDim.Sprintf("(%s)", a.Description)); err != nil {
			return err
		}
	}
	return nil
}

// Skips writes the files that could not be processed.
func Skips(w io.Writer, skips []substitute.Skip) error {
	for _, s := range skips {
		if _, err := fmt.Fprintf(w, "  %s %s %s\n", colorYellow.Sprint("!"), s.Path, colorDim.Sprintf("(%s)", s.Reason)); err != nil {
			return err
		}
	}
	return nil
}

// Verdict writes the classification signals and the decision.
func Verdict(w io.Writer, s classify.Signals, d classify.Decision, upstream bool) error {
	t := NewTable("SIGNAL", "VALUE")
	t.Row("template directory", yesNo(s.TemplateDirPresent))
	t.Row("integration root", yesNo(s.CustomRootPresent))
	t.Row("manifest domain", orNone(s.ManifestDomain))
	t.Row("git repository", yesNo(s.IsRepository))
	t.Row("remote", orNone(s.RemoteURL))
	commits := strconv.Itoa(s.CommitCount)
	if s.CommitCount >= classify.CommitProbeLimit {
		commits += "+"
	}
	t.Row("commits", commits)
	t.Row("upstream template", yesNo(upstream))
	if _, err := fmt.Fprintln(w, t.String()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s %s %s\n", SectionTitle("Verdict:"), ColorVerdict(d.Verdict.String()), colorDim.Sprintf("(%s)", d.Reason))
	return err
}

// Availability writes the availability check results.
func Availability(w io.Writer, domain string, results []availability.Result) error {
	if _, err := fmt.Fprintln(w, SectionTitle(fmt.Sprintf("Domain %q", domain))); err != nil {
		return err
	}
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "  %-24s %s\n", r.Check, ColorStatus(string(r.Status))); err != nil {
			return err
		}
	}
	return nil
}

// Files writes one candidate path per line.
func Files(w io.Writer, candidates []*selector.Candidate) error {
	for _, c := range candidates {
		if _, err := fmt.Fprintln(w, c.Rel); err != nil {
			return err
		}
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
