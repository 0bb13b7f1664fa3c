// pkg/testutil/tree.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Build real directory trees of files and links for tests

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TempTree returns a fresh, symlink-free temporary directory. On systems
// where the temp root is itself behind a symlink (macOS /var), the
// canonical path is returned so canonicalized results compare equal.
func TempTree(t *testing.T) string {
	t.Helper()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("failed to resolve temp dir: %v", err)
	}
	return dir
}

// Mkdir creates root/rel and any missing parents.
func Mkdir(t *testing.T, root, rel string) string {
	t.Helper()

	path := filepath.Join(root, rel)
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatalf("failed to create dir %s: %v", path, err)
	}
	return path
}

// WriteFile creates root/rel with content, creating parent directories.
func WriteFile(t *testing.T, root, rel, content string) string {
	t.Helper()

	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create parent of %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// Symlink creates a link at root/rel whose stored target is exactly target.
func Symlink(t *testing.T, root, target, rel string) string {
	t.Helper()

	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create parent of %s: %v", path, err)
	}
	if err := os.Symlink(target, path); err != nil {
		t.Fatalf("failed to symlink %s -> %s: %v", path, target, err)
	}
	return path
}

// Chdir switches the working directory for the rest of the test.
func Chdir(t *testing.T, dir string) {
	t.Helper()

	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working dir: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to chdir to %s: %v", dir, err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(prev)
	})
}
