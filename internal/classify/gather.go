package classify

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/davetashner/blueprint/internal/config"
	"github.com/davetashner/blueprint/internal/testable"
)

// FS is the file system implementation used by this package.
// Override in tests with a testable.MockFileSystem.
var FS testable.FileSystem = testable.DefaultFS

// GitOpener opens repositories for Gather. Override in tests with a
// testable.MockGitOpener.
var GitOpener testable.GitOpener = testable.DefaultGitOpener

// PolicyFor builds the decision policy for a template configuration.
func PolicyFor(cfg *config.Config) Policy {
	return Policy{
		Placeholder:    cfg.Template.Domain,
		TemplateRemote: cfg.RemoteRegexp(),
		Upstream:       cfg.Template.Repository,
	}
}

// Gather collects classification signals for the tree at root. Missing
// files, a missing repository and a missing remote are valid states, not
// errors.
func Gather(root string, cfg *config.Config) (Signals, error) {
	var s Signals

	s.CustomRootPresent = isDir(filepath.Join(root, filepath.FromSlash(cfg.CustomRoot)))
	s.TemplateDirPresent = isDir(filepath.Join(root, filepath.FromSlash(cfg.TemplateDir())))
	s.ManifestDomain = manifestDomain(filepath.Join(root, filepath.FromSlash(cfg.ManifestPath())))

	repo, err := GitOpener.PlainOpen(root)
	if err != nil {
		if !errors.Is(err, git.ErrRepositoryNotExists) {
			slog.Warn("cannot open git repository, treating tree as unversioned", "path", root, "error", err)
		}
		return s, nil
	}
	s.IsRepository = true

	remotes, err := repo.Remotes()
	if err != nil {
		return s, fmt.Errorf("listing remotes: %w", err)
	}
	s.RemoteURL = remoteURL(remotes)

	s.CommitCount, err = countCommits(repo, CommitProbeLimit)
	if err != nil {
		return s, fmt.Errorf("counting commits: %w", err)
	}
	return s, nil
}

// countCommits counts commits reachable from HEAD, stopping at limit. An
// unborn HEAD counts as zero.
func countCommits(repo testable.GitRepository, limit int) (int, error) {
	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return 0, nil
		}
		return 0, err
	}
	iter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return 0, err
	}
	defer iter.Close()

	n := 0
	err = iter.ForEach(func(*object.Commit) error {
		n++
		if n >= limit {
			return storer.ErrStop
		}
		return nil
	})
	return n, err
}

// manifest is the subset of an integration manifest that is inspected.
type manifest struct {
	Domain string `json:"domain"`
}

func manifestDomain(p string) string {
	data, err := FS.ReadFile(p)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Debug("cannot read manifest", "path", p, "error", err)
		}
		return ""
	}
	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		slog.Debug("cannot parse manifest", "path", p, "error", err)
		return ""
	}
	return m.Domain
}

func isDir(p string) bool {
	info, err := FS.Stat(p)
	return err == nil && info.IsDir()
}
