// Copyright 2026 The Blueprint Authors
// SPDX-License-Identifier: MIT

// Package classify decides whether a working tree is still the pristine
// template or an already-customized project.
//
// The decision is a pure function over Signals so every branch can be tested
// without a filesystem or a git repository; Gather collects the signals.
// Every ambiguous signal resolves toward a non-destructive verdict.
package classify

import (
	"regexp"
	"strings"
)

// Verdict is the outcome of classification.
type Verdict int

const (
	// Indeterminate means the tree cannot be classified safely and must be
	// treated as initialized.
	Indeterminate Verdict = iota
	// PristineTemplate means the tree still carries the template placeholders.
	PristineTemplate
	// AlreadyInitialized means the tree has been customized.
	AlreadyInitialized
)

// String returns the verdict name used in logs and output.
func (v Verdict) String() string {
	switch v {
	case PristineTemplate:
		return "pristine-template"
	case AlreadyInitialized:
		return "already-initialized"
	default:
		return "indeterminate"
	}
}

// Signals are the observations classification is based on.
type Signals struct {
	TemplateDirPresent bool
	CustomRootPresent  bool
	// ManifestDomain is the manifest's domain value, empty when the manifest
	// is missing or unreadable.
	ManifestDomain string
	IsRepository   bool
	// RemoteURL is the origin URL (or the first remote's), empty if none.
	RemoteURL string
	// CommitCount is the number of commits reachable from HEAD, counted up
	// to CommitProbeLimit.
	CommitCount int
}

// CommitProbeLimit is the point at which commit counting stops; no decision
// distinguishes histories longer than two commits.
const CommitProbeLimit = 3

// Policy holds the template-specific values the decision compares against.
type Policy struct {
	// Placeholder is the template's manifest domain.
	Placeholder string
	// TemplateRemote matches remotes of repositories created from the template.
	TemplateRemote *regexp.Regexp
	// Upstream is the canonical template repository as owner/name.
	Upstream string
}

// Decision is a verdict plus the rule that produced it.
type Decision struct {
	Verdict Verdict
	Reason  string
}

// Decide evaluates the ordered checks; the first match wins.
func Decide(s Signals, p Policy) Decision {
	if !s.TemplateDirPresent && s.CustomRootPresent {
		return Decision{AlreadyInitialized, "template integration directory has been renamed or removed"}
	}
	if s.ManifestDomain != "" && s.ManifestDomain != p.Placeholder {
		return Decision{AlreadyInitialized, "manifest domain is " + s.ManifestDomain}
	}
	if !s.IsRepository {
		return Decision{Indeterminate, "not a git repository"}
	}
	if s.RemoteURL == "" {
		return Decision{Indeterminate, "no git remote configured"}
	}

	templateNamed := p.TemplateRemote != nil && p.TemplateRemote.MatchString(s.RemoteURL)
	switch {
	case templateNamed && s.CommitCount <= 2:
		return Decision{PristineTemplate, "template-named remote with fresh history"}
	case templateNamed:
		return Decision{AlreadyInitialized, "template-named remote with accumulated history"}
	case s.CommitCount == 1:
		// Known false positive: a user repository squashed to one commit.
		return Decision{PristineTemplate, "new repository with a single commit"}
	default:
		return Decision{AlreadyInitialized, "repository history has moved past the template"}
	}
}

// IsUpstream reports whether the remote is the template's own canonical
// repository. It is evaluated before Decide.
func IsUpstream(s Signals, p Policy) bool {
	if s.RemoteURL == "" || p.Upstream == "" {
		return false
	}
	owner, repo, err := ParseGitHubURL(s.RemoteURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(owner+"/"+repo, p.Upstream)
}
