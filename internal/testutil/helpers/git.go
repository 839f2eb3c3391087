package helpers

import (
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
)

// InitGitRepo creates a git repository in a temp directory.
// When originURL is not empty an "origin" remote pointing to it is added.
func InitGitRepo(t *testing.T, originURL string) string {
	t.Helper()
	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("failed to init git repository: %v", err)
	}
	if originURL == "" {
		return dir
	}

	if _, err := repo.CreateRemote(&config.RemoteConfig{
		Name: "origin",
		URLs: []string{originURL},
	}); err != nil {
		t.Fatalf("failed to create origin remote: %v", err)
	}
	return dir
}
