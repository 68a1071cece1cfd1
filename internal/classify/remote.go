// Copyright 2026 The Blueprint Authors
// SPDX-License-Identifier: MIT

package classify

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/go-git/go-git/v5"
)

// sshPattern matches git@github.com:owner/repo.git SSH URLs.
var sshPattern = regexp.MustCompile(`^(?:ssh://)?git@github\.com[:/]([^/]+)/([^/]+?)(?:\.git)?/?$`)

// ParseGitHubURL parses a GitHub URL (HTTPS or SSH) into owner and repo.
func ParseGitHubURL(rawURL string) (owner, repo string, err error) {
	if m := sshPattern.FindStringSubmatch(rawURL); m != nil {
		return m[1], m[2], nil
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", "", fmt.Errorf("parsing URL %q: %w", rawURL, err)
	}
	if !strings.EqualFold(parsed.Host, "github.com") && !strings.EqualFold(parsed.Host, "www.github.com") {
		return "", "", fmt.Errorf("remote %q is not a GitHub URL", rawURL)
	}

	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("cannot parse owner/repo from %q", rawURL)
	}
	return parts[0], strings.TrimSuffix(parts[1], ".git"), nil
}

// remoteURL returns the first URL of the origin remote, falling back to the
// first remote that has a URL.
func remoteURL(remotes []*git.Remote) string {
	var fallback string
	for _, r := range remotes {
		cfg := r.Config()
		if cfg == nil || len(cfg.URLs) == 0 {
			continue
		}
		if cfg.Name == git.DefaultRemoteName {
			return cfg.URLs[0]
		}
		if fallback == "" {
			fallback = cfg.URLs[0]
		}
	}
	return fallback
}
