package links_test

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/arthur-debert/slinky/pkg/errors"
	"github.com/arthur-debert/slinky/pkg/filesystem"
	"github.com/arthur-debert/slinky/pkg/links"
	"github.com/arthur-debert/slinky/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	root := testutil.TempTree(t)
	fsys := filesystem.NewOS()

	testutil.WriteFile(t, root, "sub/target.txt", "x")

	tests := []struct {
		name         string
		target       string
		link         string
		wantAbsolute bool
		wantDangling bool
		wantResolved string
	}{
		{
			name:         "relative attached",
			target:       "sub/target.txt",
			link:         "rel.txt",
			wantResolved: root + "/sub/target.txt",
		},
		{
			name:         "relative dangling",
			target:       "missing.txt",
			link:         "nested/dangling.txt",
			wantDangling: true,
			wantResolved: filepath.Join(root, "nested") + "/missing.txt",
		},
		{
			name:         "absolute attached",
			target:       filepath.Join(root, "sub", "target.txt"),
			link:         "abs.txt",
			wantAbsolute: true,
			wantResolved: filepath.Join(root, "sub", "target.txt"),
		},
		{
			name:         "absolute dangling",
			target:       "/nonexistent/slinky/target",
			link:         "absdangling.txt",
			wantAbsolute: true,
			wantDangling: true,
			wantResolved: "/nonexistent/slinky/target",
		},
		{
			name:         "relative through parent",
			target:       "../sub/target.txt",
			link:         "other/up.txt",
			wantResolved: filepath.Join(root, "other") + "/../sub/target.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origin := testutil.Symlink(t, root, tt.target, tt.link)

			entry, err := links.Classify(fsys, origin)
			require.NoError(t, err)

			assert.Equal(t, origin, entry.Origin)
			assert.Equal(t, tt.target, entry.RawTarget)
			assert.Equal(t, filepath.Dir(origin), entry.Dir)
			assert.Equal(t, tt.wantResolved, entry.Resolved)
			assert.Equal(t, tt.wantAbsolute, entry.IsAbsolute)
			assert.Equal(t, tt.wantDangling, entry.IsDangling)
		})
	}
}

func TestClassify_ChainedLinks(t *testing.T) {
	root := testutil.TempTree(t)
	fsys := filesystem.NewOS()

	testutil.WriteFile(t, root, "real.txt", "x")
	testutil.Symlink(t, root, "real.txt", "hop1")
	origin := testutil.Symlink(t, root, "hop1", "hop2")

	entry, err := links.Classify(fsys, origin)
	require.NoError(t, err)
	assert.False(t, entry.IsDangling)

	require.NoError(t, os.Remove(filepath.Join(root, "real.txt")))
	entry, err = links.Classify(fsys, origin)
	require.NoError(t, err)
	assert.True(t, entry.IsDangling, "a link whose chain ends nowhere is dangling")
}

func TestClassify_Errors(t *testing.T) {
	root := testutil.TempTree(t)
	fsys := filesystem.NewOS()

	t.Run("regular file is not a symlink", func(t *testing.T) {
		file := testutil.WriteFile(t, root, "plain.txt", "x")
		_, err := links.Classify(fsys, file)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotSymlink))
	})

	t.Run("vanished path", func(t *testing.T) {
		_, err := links.Classify(fsys, filepath.Join(root, "gone"))
		assert.True(t, errors.IsErrorCode(err, errors.ErrClassify))
	})

	t.Run("readlink failure", func(t *testing.T) {
		origin := testutil.Symlink(t, root, "x", "unreadable")
		faulty := testutil.NewFaultFS(fsys).Fail(testutil.OpReadlink, "unreadable", syscall.EACCES)

		_, err := links.Classify(faulty, origin)
		assert.True(t, errors.IsErrorCode(err, errors.ErrClassify))
		assert.ErrorIs(t, err, syscall.EACCES)
	})
}

func TestResolve(t *testing.T) {
	assert.Equal(t, "/abs/target", links.Resolve("/some/dir", "/abs/target"))
	assert.Equal(t, "/some/dir/rel", links.Resolve("/some/dir", "rel"))
	assert.Equal(t, "./rel", links.Resolve(".", "rel"))
}
