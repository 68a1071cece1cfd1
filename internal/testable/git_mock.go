package testable

import (
	"io"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// MockGitOpener is a test double for GitOpener.
// Set OpenFunc to control PlainOpen behavior. If nil, PlainOpen returns
// the Repo field (or ErrRepositoryNotExists if Repo is nil).
type MockGitOpener struct {
	// Repo is the repository returned by PlainOpen when OpenFunc is nil.
	Repo GitRepository

	// OpenErr is the error returned by PlainOpen when OpenFunc is nil.
	OpenErr error

	// OpenFunc, if set, is called instead of using Repo/OpenErr.
	OpenFunc func(path string) (GitRepository, error)

	// OpenCalls records the paths passed to PlainOpen.
	OpenCalls []string
}

// PlainOpen records the call and delegates to OpenFunc or returns Repo/OpenErr.
func (m *MockGitOpener) PlainOpen(path string) (GitRepository, error) {
	m.OpenCalls = append(m.OpenCalls, path)
	if m.OpenFunc != nil {
		return m.OpenFunc(path)
	}
	if m.OpenErr != nil {
		return nil, m.OpenErr
	}
	if m.Repo != nil {
		return m.Repo, nil
	}
	return nil, git.ErrRepositoryNotExists
}

// MockGitRepository is a test double for GitRepository.
type MockGitRepository struct {
	// HeadRef is returned by Head().
	HeadRef *plumbing.Reference
	// HeadErr is the error returned by Head().
	HeadErr error

	// Commits backs the iterator returned by Log() when LogErr is nil.
	Commits []*object.Commit
	// LogErr is the error returned by Log().
	LogErr error
	// LogCalls records LogOptions passed to Log().
	LogCalls []*git.LogOptions

	// RemotesList is returned by Remotes().
	RemotesList []*git.Remote
	// RemotesErr is the error returned by Remotes().
	RemotesErr error
}

// Head returns HeadRef and HeadErr. A nil HeadRef with no error yields
// plumbing.ErrReferenceNotFound, matching an empty repository.
func (m *MockGitRepository) Head() (*plumbing.Reference, error) {
	if m.HeadErr != nil {
		return nil, m.HeadErr
	}
	if m.HeadRef == nil {
		return nil, plumbing.ErrReferenceNotFound
	}
	return m.HeadRef, nil
}

// Log records the call and returns an iterator over Commits, or LogErr.
func (m *MockGitRepository) Log(opts *git.LogOptions) (object.CommitIter, error) {
	m.LogCalls = append(m.LogCalls, opts)
	if m.LogErr != nil {
		return nil, m.LogErr
	}
	return NewCommitSliceIter(m.Commits), nil
}

// Remotes returns RemotesList and RemotesErr.
func (m *MockGitRepository) Remotes() ([]*git.Remote, error) {
	return m.RemotesList, m.RemotesErr
}

// commitSliceIter is an object.CommitIter over a fixed slice.
type commitSliceIter struct {
	commits []*object.Commit
	pos     int
}

// NewCommitSliceIter returns an object.CommitIter that yields commits in order.
func NewCommitSliceIter(commits []*object.Commit) object.CommitIter {
	return &commitSliceIter{commits: commits}
}

func (it *commitSliceIter) Next() (*object.Commit, error) {
	if it.pos >= len(it.commits) {
		return nil, io.EOF
	}
	c := it.commits[it.pos]
	it.pos++
	return c, nil
}

func (it *commitSliceIter) ForEach(fn func(*object.Commit) error) error {
	for {
		c, err := it.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(c); err != nil {
			if err == storer.ErrStop {
				return nil
			}
			return err
		}
	}
}

func (it *commitSliceIter) Close() { it.pos = len(it.commits) }

// Compile-time interface checks.
var _ GitOpener = (*MockGitOpener)(nil)
var _ GitRepository = (*MockGitRepository)(nil)
