// Copyright 2026 The Blueprint Authors
// SPDX-License-Identifier: MIT

// Package availability checks whether an integration domain is already used
// by Home Assistant core or registered in the brands repository.
//
// Results are advisory. Any failure, including a timeout, degrades to
// StatusUnknown and never aborts initialization.
package availability

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/go-github/v68/github"
	"golang.org/x/sync/errgroup"
)

// DefaultTimeout bounds a whole availability run.
const DefaultTimeout = 10 * time.Second

// Status is the outcome of one check.
type Status string

// Check outcomes.
const (
	StatusAvailable Status = "available"
	StatusTaken     Status = "taken"
	StatusUnknown   Status = "unknown"
)

// Result is the outcome of one named check.
type Result struct {
	Check  string
	Status Status
	Err    error
}

// Checker tests one registry for a domain.
type Checker interface {
	Name() string
	Check(ctx context.Context, domain string) (Status, error)
}

// contentsAPI is the subset of the GitHub repositories service used here.
type contentsAPI interface {
	GetContents(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, []*github.RepositoryContent, *github.Response, error)
}

// PathChecker reports a domain as taken when a path derived from it exists
// in a GitHub repository.
type PathChecker struct {
	Label string
	Owner string
	Repo  string
	// PathFormat is a fmt format with a single %s for the domain.
	PathFormat string
	API        contentsAPI
}

// Name returns the check label.
func (c *PathChecker) Name() string { return c.Label }

// Check looks the derived path up. Found means taken, 404 means available.
func (c *PathChecker) Check(ctx context.Context, domain string) (Status, error) {
	p := fmt.Sprintf(c.PathFormat, domain)
	_, _, resp, err := c.API.GetContents(ctx, c.Owner, c.Repo, p, nil)
	if err == nil {
		return StatusTaken, nil
	}
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return StatusAvailable, nil
	}
	return StatusUnknown, err
}

// NewClient returns a GitHub client, authenticated when token is non-empty.
func NewClient(token string) *github.Client {
	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return client
}

// DefaultCheckers returns the Home Assistant core and brands checks.
func DefaultCheckers(client *github.Client) []Checker {
	return []Checker{
		&PathChecker{
			Label:      "home-assistant core",
			Owner:      "home-assistant",
			Repo:       "core",
			PathFormat: "homeassistant/components/%s",
			API:        client.Repositories,
		},
		&PathChecker{
			Label:      "home-assistant brands",
			Owner:      "home-assistant",
			Repo:       "brands",
			PathFormat: "custom_integrations/%s",
			API:        client.Repositories,
		},
	}
}

// Run executes every checker concurrently under timeout and returns results
// in checker order. It never fails; errors are carried in each Result.
func Run(ctx context.Context, checkers []Checker, domain string, timeout time.Duration) []Result {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	results := make([]Result, len(checkers))
	var g errgroup.Group
	for i, c := range checkers {
		g.Go(func() error {
			status, err := c.Check(ctx, domain)
			if err != nil {
				status = StatusUnknown
				slog.Debug("availability check failed", "check", c.Name(), "error", err)
			}
			results[i] = Result{Check: c.Name(), Status: status, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}
