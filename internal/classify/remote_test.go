package classify

import (
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGitHubURL_Variants(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		owner   string
		repo    string
		wantErr bool
	}{
		{"https", "https://github.com/foo/bar.git", "foo", "bar", false},
		{"https no .git", "https://github.com/foo/bar", "foo", "bar", false},
		{"https dotted repo", "https://github.com/jpawlowski/hacs.integration_blueprint", "jpawlowski", "hacs.integration_blueprint", false},
		{"www", "https://www.github.com/foo/bar", "foo", "bar", false},
		{"ssh", "git@github.com:foo/bar.git", "foo", "bar", false},
		{"ssh no .git", "git@github.com:foo/bar", "foo", "bar", false},
		{"ssh scheme", "ssh://git@github.com/foo/bar.git", "foo", "bar", false},
		{"not github", "https://gitlab.com/foo/bar.git", "", "", true},
		{"missing repo", "https://github.com/foo", "", "", true},
		{"malformed", "not-a-url://[invalid", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, err := ParseGitHubURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.owner, owner)
			assert.Equal(t, tt.repo, repo)
		})
	}
}

func newRemote(name string, urls ...string) *git.Remote {
	return git.NewRemote(memory.NewStorage(), &config.RemoteConfig{Name: name, URLs: urls})
}

func TestRemoteURL(t *testing.T) {
	assert.Equal(t, "", remoteURL(nil))
	assert.Equal(t, "https://example.com/a.git",
		remoteURL([]*git.Remote{newRemote("upstream", "https://example.com/a.git")}))
	assert.Equal(t, "git@github.com:alice/glow.git",
		remoteURL([]*git.Remote{
			newRemote("upstream", "https://example.com/a.git"),
			newRemote("origin", "git@github.com:alice/glow.git"),
		}))
	assert.Equal(t, "https://example.com/b.git",
		remoteURL([]*git.Remote{newRemote("empty"), newRemote("backup", "https://example.com/b.git")}))
}
