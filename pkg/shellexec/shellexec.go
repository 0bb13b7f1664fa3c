// Package shellexec runs a user command once per link.
package shellexec

import (
	"io"
	"os"
	"os/exec"

	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/slinky/pkg/errors"
	"github.com/arthur-debert/slinky/pkg/logging"
	"github.com/arthur-debert/slinky/pkg/types"
)

// Op is the operation name reported in results.
const Op = "exec"

// DefaultShell is used when neither configuration nor the environment
// names one.
const DefaultShell = "/bin/sh"

// ResolveShell picks the configured shell, then envShell (usually $SHELL),
// then DefaultShell.
func ResolveShell(configured, envShell string) string {
	if configured != "" {
		return configured
	}
	if envShell != "" {
		return envShell
	}
	return DefaultShell
}

// Runner executes Command through Shell for each link. The command sees
// the origin as $1 and the raw target as $2.
type Runner struct {
	Shell   string
	Command string
	DryRun  bool

	Stdout io.Writer
	Stderr io.Writer

	logger zerolog.Logger
}

// New creates a Runner writing the command's output to the process's own
// stdout and stderr.
func New(shell, command string, dryRun bool) *Runner {
	return &Runner{
		Shell:   shell,
		Command: command,
		DryRun:  dryRun,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		logger:  logging.GetLogger("shellexec"),
	}
}

// Args returns the argv run for entry. The "--" fills $0 so the origin
// lands in $1.
func (r *Runner) Args(entry *types.LinkEntry) []string {
	return []string{r.Shell, "-c", r.Command, "--", entry.Origin, entry.RawTarget}
}

// Describe returns the argv for entry as a single shell-quoted line.
func (r *Runner) Describe(entry *types.LinkEntry) string {
	return shellquote.Join(r.Args(entry)...)
}

// Run executes the command for entry. A non-zero exit is a failed result.
func (r *Runner) Run(entry *types.LinkEntry) types.Result {
	line := r.Describe(entry)
	result := types.Result{
		Operation: Op,
		Origin:    entry.Origin,
		OldTarget: entry.RawTarget,
		Status:    types.StatusTransformed,
		DryRun:    r.DryRun,
		Command:   line,
	}
	if r.DryRun {
		return result
	}

	args := r.Args(entry)
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	r.logger.Debug().Str("command", line).Msg("Executing")

	if err := cmd.Run(); err != nil {
		var wrapped *errors.SlinkyError
		if exitErr, ok := err.(*exec.ExitError); ok {
			wrapped = errors.Wrapf(err, errors.ErrExec, "command exited with status %d", exitErr.ExitCode())
		} else {
			wrapped = errors.Wrapf(err, errors.ErrExec, "cannot run %s", r.Shell)
		}
		failed := types.Failed(Op, entry, wrapped.WithDetail("command", line))
		failed.Command = line
		return failed
	}
	return result
}
