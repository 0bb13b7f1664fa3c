package testutil

import (
	"os"
	"testing"

	"github.com/arthur-debert/slinky/pkg/filesystem"
)

// AssertLinkTarget checks that path is a symlink storing exactly want
func AssertLinkTarget(t *testing.T, path, want string) {
	t.Helper()

	got, err := os.Readlink(path)
	if err != nil {
		t.Errorf("Expected %s to be a symlink: %v", path, err)
		return
	}
	if got != want {
		t.Errorf("Link %s\nExpected target: %q\nActual target:   %q", path, want, got)
	}
}

// AssertNotExists checks that nothing exists at path, not even a dangling link
func AssertNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Lstat(path); err == nil {
		t.Errorf("Expected %s to not exist", path)
	}
}

// AssertIsDir checks that path is a real directory, not a link to one
func AssertIsDir(t *testing.T, path string) {
	t.Helper()

	info, err := os.Lstat(path)
	if err != nil {
		t.Errorf("Expected directory at %s: %v", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("Expected %s to be a real directory, got mode %v", path, info.Mode())
	}
}

// AssertSameFile checks that a and b share device and inode
func AssertSameFile(t *testing.T, a, b string) {
	t.Helper()

	ida, err := filesystem.Identity(a)
	if err != nil {
		t.Errorf("Failed to stat %s: %v", a, err)
		return
	}
	idb, err := filesystem.Identity(b)
	if err != nil {
		t.Errorf("Failed to stat %s: %v", b, err)
		return
	}
	if ida != idb {
		t.Errorf("Expected %s and %s to be the same file, got %+v and %+v", a, b, ida, idb)
	}
}
