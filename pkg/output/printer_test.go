package output_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/slinky/pkg/config"
	"github.com/arthur-debert/slinky/pkg/errors"
	"github.com/arthur-debert/slinky/pkg/output"
	"github.com/arthur-debert/slinky/pkg/types"
)

func newPrinter(opts output.Options) (*output.Printer, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	if opts.Color == "" {
		opts.Color = config.ColorNever
	}
	return output.New(&out, &errOut, opts), &out, &errOut
}

func TestPrinter_Entry(t *testing.T) {
	dangling := &types.LinkEntry{Origin: "./dangling", RawTarget: "missing", IsDangling: true}
	attached := &types.LinkEntry{Origin: "./top", RawTarget: "file.txt"}

	tests := []struct {
		name   string
		status bool
		entry  *types.LinkEntry
		want   string
	}{
		{"plain", false, attached, "./top -> file.txt\n"},
		{"status attached", true, attached, "attached: ./top -> file.txt\n"},
		{"status dangling", true, dangling, "dangling: ./dangling -> missing\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, out, errOut := newPrinter(output.Options{Status: tt.status})
			require.NoError(t, p.Entry(tt.entry))
			assert.Equal(t, tt.want, out.String())
			assert.Empty(t, errOut.String())
		})
	}
}

func TestPrinter_Result(t *testing.T) {
	entry := &types.LinkEntry{Origin: "a/link", RawTarget: "x/../y"}
	failure := errors.New(errors.ErrDangling, "skipping dangling symlink")

	tests := []struct {
		name       string
		opts       output.Options
		result     types.Result
		wantOut    string
		wantErrOut string
	}{
		{
			name:    "transformed verbose",
			opts:    output.Options{Verbose: true},
			result:  types.Transformed("tidy", entry, "y", false),
			wantOut: "tidy: a/link -> (x/../y => y)\n",
		},
		{
			name:   "transformed quiet",
			result: types.Transformed("tidy", entry, "y", false),
		},
		{
			name:    "transformed dry run is always shown",
			result:  types.Transformed("tidy", entry, "y", true),
			wantOut: "tidy: a/link -> (x/../y => y) (dry run)\n",
		},
		{
			name:    "delete",
			opts:    output.Options{Verbose: true},
			result:  types.Transformed("delete", entry, "", false),
			wantOut: "delete: a/link -> x/../y\n",
		},
		{
			name:    "create",
			opts:    output.Options{Verbose: true},
			result:  types.Result{Operation: "create symlink", Origin: "here", NewTarget: "there", Status: types.StatusTransformed},
			wantOut: "create symlink: here -> there\n",
		},
		{
			name:    "exec",
			opts:    output.Options{Verbose: true},
			result:  types.Result{Operation: "exec", Origin: "a/link", Status: types.StatusTransformed, Command: "/bin/sh -c true -- a/link x/../y"},
			wantOut: "exec: /bin/sh -c true -- a/link x/../y\n",
		},
		{
			name:       "failed goes to stderr",
			result:     types.Failed("to-absolute", entry, failure),
			wantErrOut: "to-absolute: skipping dangling symlink: a/link -> x/../y\n",
		},
		{
			name:       "unchanged verbose",
			opts:       output.Options{Verbose: true},
			result:     types.Unchanged("tidy", entry, "target is already tidy"),
			wantErrOut: "tidy: target is already tidy: a/link -> x/../y\n",
		},
		{
			name:   "unchanged quiet",
			result: types.Unchanged("tidy", entry, "target is already tidy"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, out, errOut := newPrinter(tt.opts)
			require.NoError(t, p.Result(tt.result))
			assert.Equal(t, tt.wantOut, out.String())
			assert.Equal(t, tt.wantErrOut, errOut.String())
		})
	}
}

func TestPrinter_JSON(t *testing.T) {
	p, out, errOut := newPrinter(output.Options{Format: config.FormatJSON})

	entry := &types.LinkEntry{Origin: "a/link", RawTarget: "gone", IsDangling: true}
	require.NoError(t, p.Entry(entry))
	require.NoError(t, p.Result(types.Failed("to-absolute", entry, errors.New(errors.ErrDangling, "skipping dangling symlink"))))
	require.NoError(t, p.Result(types.Unchanged("tidy", entry, "target is already tidy")))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3, "every entry and result is one line, regardless of verbosity")
	assert.Empty(t, errOut.String())

	var first map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "a/link", first["origin"])
	assert.Equal(t, "gone", first["target"])
	assert.Equal(t, "dangling", first["status"])

	var second map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "failed", second["status"])
	assert.Equal(t, "DANGLING", second["code"])
	assert.Equal(t, "skipping dangling symlink", second["reason"])

	var third map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &third))
	assert.NotContains(t, third, "code")
}

func TestPrinter_Error(t *testing.T) {
	p, out, errOut := newPrinter(output.Options{})
	p.Error(errors.New(errors.ErrRootNotFound, "nowhere: No such file or directory"))

	assert.Empty(t, out.String())
	assert.Equal(t, "Error: nowhere: No such file or directory\n", errOut.String())
}

func TestPrinter_ColorAlways(t *testing.T) {
	p, out, _ := newPrinter(output.Options{Color: config.ColorAlways})
	require.NoError(t, p.Entry(&types.LinkEntry{Origin: "o", RawTarget: "t"}))
	assert.Contains(t, out.String(), "\x1b[", "forced color emits escape codes into a buffer")
}
