package slinky

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/slinky/pkg/errors"
	"github.com/arthur-debert/slinky/pkg/testutil"
)

// isolate keeps the developer's config and log files out of the test.
func isolate(t *testing.T) {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return execute(t, NewRootCmd(), args...)
}

// buildTree creates:
//
//	file.txt
//	dangling -> missing
//	sub/deep -> ../file.txt
//	sub/messy -> ../sub/./../file.txt
//	top -> file.txt
func buildTree(t *testing.T) string {
	t.Helper()

	root := testutil.TempTree(t)
	testutil.WriteFile(t, root, "file.txt", "content")
	testutil.Symlink(t, root, "missing", "dangling")
	testutil.Symlink(t, root, "../file.txt", "sub/deep")
	testutil.Symlink(t, root, "../sub/./../file.txt", "sub/messy")
	testutil.Symlink(t, root, "file.txt", "top")
	return root
}

func lines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestList(t *testing.T) {
	isolate(t)
	root := buildTree(t)

	want := []string{
		root + "/dangling -> missing",
		root + "/sub/deep -> ../file.txt",
		root + "/sub/messy -> ../sub/./../file.txt",
		root + "/top -> file.txt",
	}

	for _, args := range [][]string{
		{root},
		{"for-each", root},
		{"for-each", "list", root},
		{"for-each", "ls", root},
		{"for-each", "print", root},
	} {
		t.Run(strings.Join(args[:len(args)-1], " "), func(t *testing.T) {
			stdout, stderr, err := run(t, args...)
			require.NoError(t, err)
			assert.Equal(t, want, lines(stdout))
			assert.Empty(t, stderr)
		})
	}
}

func TestList_DefaultsToWorkingDirectory(t *testing.T) {
	isolate(t)
	root := buildTree(t)
	testutil.Chdir(t, root)

	stdout, _, err := run(t, "for-each", "-o", "top")
	require.NoError(t, err)
	assert.Equal(t, []string{"./top -> file.txt"}, lines(stdout))
}

func TestList_Filters(t *testing.T) {
	isolate(t)
	root := buildTree(t)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"only dangling", []string{"-x"}, []string{"dangling"}},
		{"only attached", []string{"-a"}, []string{"sub/deep", "sub/messy", "top"}},
		{"origin regex", []string{"-o", "sub/"}, []string{"sub/deep", "sub/messy"}},
		{"target regex", []string{"-t", `^\.\./file`}, []string{"sub/deep"}},
		{"max depth", []string{"-d", "1"}, []string{"dangling", "top"}},
		{"exclude", []string{"-e", "sub"}, []string{"dangling", "top"}},
		{"exclusive pair", []string{"-x", "-a"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"for-each"}, tt.args...)
			stdout, _, err := run(t, append(args, "list", root)...)
			require.NoError(t, err)

			var got []string
			for _, line := range lines(stdout) {
				origin := strings.SplitN(line, " -> ", 2)[0]
				got = append(got, strings.TrimPrefix(origin, root+"/"))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestList_Status(t *testing.T) {
	isolate(t)
	root := buildTree(t)

	stdout, _, err := run(t, "for-each", "-o", "dangling|top", "list", "--status", root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"dangling: " + root + "/dangling -> missing",
		"attached: " + root + "/top -> file.txt",
	}, lines(stdout))
}

func TestList_JSON(t *testing.T) {
	isolate(t)
	root := buildTree(t)

	stdout, _, err := run(t, "--json", "for-each", "-x", root)
	require.NoError(t, err)

	out := lines(stdout)
	require.Len(t, out, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out[0]), &entry))
	assert.Equal(t, root+"/dangling", entry["origin"])
	assert.Equal(t, "missing", entry["target"])
	assert.Equal(t, true, entry["dangling"])
}

func TestFatalErrors(t *testing.T) {
	isolate(t)
	root := buildTree(t)

	tests := []struct {
		name string
		args []string
		code errors.ErrorCode
	}{
		{"missing root", []string{"for-each", filepath.Join(root, "nowhere")}, errors.ErrRootNotFound},
		{"bad origin regex", []string{"for-each", "-o", "(", root}, errors.ErrInvalidPattern},
		{"bad edit pattern", []string{"for-each", "edit-target", "(", "x", root}, errors.ErrInvalidPattern},
		{"bad color", []string{"--color", "sometimes", root}, errors.ErrConfigLoad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
		})
	}
}

func TestTidy(t *testing.T) {
	isolate(t)
	root := buildTree(t)

	stdout, stderr, err := run(t, "for-each", "tidy", root)
	require.NoError(t, err)
	assert.Empty(t, stdout, "changes are only described when verbose")
	assert.Empty(t, stderr)

	testutil.AssertLinkTarget(t, filepath.Join(root, "sub", "messy"), "../file.txt")
	testutil.AssertLinkTarget(t, filepath.Join(root, "top"), "file.txt")
}

func TestTidy_DryRun(t *testing.T) {
	isolate(t)
	root := buildTree(t)

	stdout, _, err := run(t, "-n", "for-each", "-o", "messy", "tidy", root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"tidy: " + root + "/sub/messy -> (../sub/./../file.txt => ../file.txt) (dry run)",
	}, lines(stdout))

	testutil.AssertLinkTarget(t, filepath.Join(root, "sub", "messy"), "../sub/./../file.txt")
}

func TestTidy_VerboseNotesUnchanged(t *testing.T) {
	isolate(t)
	root := buildTree(t)

	_, stderr, err := run(t, "-v", "for-each", "-o", "top", "tidy", root)
	require.NoError(t, err)
	assert.Contains(t, stderr, "tidy: target is already tidy: "+root+"/top -> file.txt")
}

func TestPerLinkFailureIsNotFatal(t *testing.T) {
	isolate(t)
	root := buildTree(t)

	_, stderr, err := run(t, "for-each", "to-absolute", root)
	require.NoError(t, err)
	assert.Contains(t, stderr, "to-absolute: skipping dangling symlink: "+root+"/dangling -> missing")

	testutil.AssertLinkTarget(t, filepath.Join(root, "top"), filepath.Join(root, "file.txt"))
	testutil.AssertLinkTarget(t, filepath.Join(root, "sub", "deep"), filepath.Join(root, "file.txt"))
}

func TestToRelative(t *testing.T) {
	isolate(t)
	root := buildTree(t)
	testutil.Symlink(t, root, filepath.Join(root, "file.txt"), "sub/abs")

	_, _, err := run(t, "for-each", "-b", "to-relative", root)
	require.NoError(t, err)
	testutil.AssertLinkTarget(t, filepath.Join(root, "sub", "abs"), "../file.txt")
}

func TestEditTarget(t *testing.T) {
	isolate(t)
	root := buildTree(t)

	_, _, err := run(t, "for-each", "-o", "messy", "edit-target", `\.\./`, "", root)
	require.NoError(t, err)
	testutil.AssertLinkTarget(t, filepath.Join(root, "sub", "messy"), "sub/./../file.txt")

	_, _, err = run(t, "for-each", "-o", "messy", "edit-target", "-g", `[./]`, "", root)
	require.NoError(t, err)
	testutil.AssertLinkTarget(t, filepath.Join(root, "sub", "messy"), "subfiletxt")
}

func TestDelete(t *testing.T) {
	isolate(t)
	root := buildTree(t)

	_, _, err := run(t, "for-each", "-x", "delete", root)
	require.NoError(t, err)

	testutil.AssertNotExists(t, filepath.Join(root, "dangling"))
	testutil.AssertLinkTarget(t, filepath.Join(root, "top"), "file.txt")
}

func TestToHardlink(t *testing.T) {
	isolate(t)
	root := buildTree(t)

	_, _, err := run(t, "for-each", "-o", "top", "to-hardlink", root)
	require.NoError(t, err)
	testutil.AssertSameFile(t, filepath.Join(root, "top"), filepath.Join(root, "file.txt"))
}

func TestToTree(t *testing.T) {
	isolate(t)
	root := buildTree(t)
	testutil.WriteFile(t, root, "lib/a.txt", "a")
	testutil.Symlink(t, root, "lib", "view")

	_, _, err := run(t, "for-each", "-o", "view", "to-tree", root)
	require.NoError(t, err)

	testutil.AssertIsDir(t, filepath.Join(root, "view"))
	testutil.AssertLinkTarget(t, filepath.Join(root, "view", "a.txt"), filepath.Join(root, "lib", "a.txt"))
}

func TestReplaceWithTarget(t *testing.T) {
	isolate(t)
	root := buildTree(t)
	testutil.WriteFile(t, root, "store/data.txt", "data")
	testutil.Symlink(t, root, "store/data.txt", "data")

	_, _, err := run(t, "for-each", "-o", "/data$", "replace-with-target", root)
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(root, "data"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(content))
	testutil.AssertNotExists(t, filepath.Join(root, "store", "data.txt"))
}

func TestExec(t *testing.T) {
	isolate(t)
	t.Setenv("SLINKY_EXEC_SHELL", "/bin/sh")
	root := buildTree(t)

	stdout, _, err := run(t, "for-each", "-o", "top", "exec", `echo "$1=$2"`, root)
	require.NoError(t, err)
	assert.Equal(t, []string{root + "/top=file.txt"}, lines(stdout))

	_, stderr, err := run(t, "for-each", "-o", "top", "exec", "exit 3", root)
	require.NoError(t, err, "a failing command is reported, not fatal")
	assert.Contains(t, stderr, "command exited with status 3")
}

func TestCreate(t *testing.T) {
	isolate(t)
	root := buildTree(t)
	target := filepath.Join(root, "file.txt")

	t.Run("plain", func(t *testing.T) {
		_, _, err := run(t, "create", target, filepath.Join(root, "plain"))
		require.NoError(t, err)
		testutil.AssertLinkTarget(t, filepath.Join(root, "plain"), target)
	})

	t.Run("relative into directory", func(t *testing.T) {
		dir := testutil.Mkdir(t, root, "into")
		_, _, err := run(t, "create", "-r", target, dir)
		require.NoError(t, err)
		testutil.AssertLinkTarget(t, filepath.Join(dir, "file.txt"), "../file.txt")
	})

	t.Run("verbose describes the link", func(t *testing.T) {
		origin := filepath.Join(root, "described")
		stdout, _, err := run(t, "-v", "create", target, origin)
		require.NoError(t, err)
		assert.Equal(t, []string{"create symlink: " + origin + " -> " + target}, lines(stdout))
	})

	t.Run("missing target", func(t *testing.T) {
		_, _, err := run(t, "create", filepath.Join(root, "nope"), filepath.Join(root, "x"))
		assert.True(t, errors.IsErrorCode(err, errors.ErrDangling), "got %v", err)
		testutil.AssertNotExists(t, filepath.Join(root, "x"))
	})

	t.Run("conflicting flags", func(t *testing.T) {
		_, _, err := run(t, "create", "-b", "-r", target, filepath.Join(root, "y"))
		assert.Error(t, err)
		testutil.AssertNotExists(t, filepath.Join(root, "y"))
	})

	t.Run("existing origin without force", func(t *testing.T) {
		_, _, err := run(t, "create", target, filepath.Join(root, "top"))
		assert.True(t, errors.IsErrorCode(err, errors.ErrTargetExists), "got %v", err)
	})

	t.Run("tree with missing parents", func(t *testing.T) {
		file := testutil.WriteFile(t, root, "src/a.txt", "a")
		dst := filepath.Join(root, "new", "deeper", "dst")
		_, _, err := run(t, "create", "-T", filepath.Dir(file), dst)
		require.NoError(t, err)
		testutil.AssertLinkTarget(t, filepath.Join(dst, "a.txt"), file)
	})
}

func TestLnCmd(t *testing.T) {
	isolate(t)
	root := buildTree(t)
	origin := filepath.Join(root, "ln")

	_, _, err := execute(t, NewLnCmd(), filepath.Join(root, "sub", "deep"), origin)
	require.NoError(t, err)
	testutil.AssertLinkTarget(t, origin, filepath.Join(root, "sub", "deep"))

	_, _, err = execute(t, NewLnCmd(), "-f", "-L", filepath.Join(root, "sub", "deep"), origin)
	require.NoError(t, err)
	testutil.AssertLinkTarget(t, origin, filepath.Join(root, "file.txt"))
}

func TestConfigCmd(t *testing.T) {
	isolate(t)

	stdout, _, err := run(t, "--color", "never", "config")
	require.NoError(t, err)
	assert.Contains(t, stdout, "max_depth = -1")
	assert.Contains(t, stdout, "color = 'never'")

	stdout, _, err = run(t, "config", "--template")
	require.NoError(t, err)
	assert.Contains(t, stdout, "# max_depth = -1")
}

func TestVersionAndGenerate(t *testing.T) {
	isolate(t)

	stdout, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "slinky version dev")

	stdout, _, err = run(t, "generate", "completions", "bash")
	require.NoError(t, err)
	assert.Contains(t, stdout, "slinky")

	dir := t.TempDir()
	_, _, err = run(t, "generate", "man", dir)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "slinky.1"))
	assert.NoError(t, err)
}
