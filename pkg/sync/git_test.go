package sync

import (
	"testing"

	"github.com/go-git/go-git/v5"
)

func TestSyncNotARepo(t *testing.T) {
	m := NewGitManager(t.TempDir())
	if err := m.Sync("test"); err == nil {
		t.Error("Expected an error for a directory without a git repo")
	}
}

func TestSyncCleanRepo(t *testing.T) {
	dir := t.TempDir()
	if _, err := git.PlainInit(dir, false); err != nil {
		t.Fatal(err)
	}

	m := NewGitManager(dir)
	if err := m.Sync("test"); err != nil {
		t.Errorf("A clean worktree must not be an error, got %v", err)
	}
}
