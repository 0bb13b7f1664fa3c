package transform

import (
	"iter"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/slinky/pkg/errors"
	"github.com/arthur-debert/slinky/pkg/logging"
	"github.com/arthur-debert/slinky/pkg/mirror"
	"github.com/arthur-debert/slinky/pkg/types"
)

// Operation names as reported in results.
const (
	OpTidy              = "tidy"
	OpToAbsolute        = "to-absolute"
	OpToRelative        = "to-relative"
	OpEditTarget        = "edit-target"
	OpToHardlink        = "to-hardlink"
	OpToHardlinkTree    = "to-hardlink-tree"
	OpToTree            = "to-tree"
	OpReplaceWithTarget = "replace-with-target"
	OpDelete            = "delete"
)

// Operation transforms one link and reports what happened.
type Operation func(entry *types.LinkEntry) types.Result

// Options controls how an Engine applies operations.
type Options struct {
	// DryRun computes and reports new values without touching the filesystem.
	DryRun bool

	// Verbose logs every planned change at Info level.
	Verbose bool
}

// Engine applies transform operations to classified links. It holds no
// per-run state, so one Engine can serve any number of walks.
type Engine struct {
	fs     types.FS
	mirror *mirror.Mirror
	opts   Options
	logger zerolog.Logger
}

// New creates an Engine over fsys.
func New(fsys types.FS, opts Options) *Engine {
	return &Engine{
		fs:     fsys,
		mirror: mirror.New(fsys),
		opts:   opts,
		logger: logging.GetLogger("transform"),
	}
}

// DryRun reports whether the engine is in dry-run mode.
func (e *Engine) DryRun() bool {
	return e.opts.DryRun
}

// Run applies op to every entry of a walk, calling report with each result
// as it is produced. Entries the walk could not classify become failed
// results of op. A failure never stops the run.
func Run(entries iter.Seq2[*types.LinkEntry, error], name string, op Operation, report func(types.Result)) types.Summary {
	logger := logging.GetLogger("transform")
	done := logging.LogOperationStart(logger, name)
	defer done()

	var summary types.Summary
	for entry, err := range entries {
		var result types.Result
		if err != nil {
			result = types.Failed(name, entry, err)
		} else {
			result = op(entry)
		}
		summary.Add(result)
		report(result)
	}

	logger.Info().
		Str("operation", name).
		Int("transformed", summary.Transformed).
		Int("unchanged", summary.Unchanged).
		Int("failed", summary.Failed).
		Msg("Run complete")
	return summary
}

func (e *Engine) describe(op string, entry *types.LinkEntry, newTarget string) {
	if !e.opts.Verbose {
		return
	}
	e.logger.Info().
		Str("operation", op).
		Str("origin", entry.Origin).
		Str("old", entry.RawTarget).
		Str("new", newTarget).
		Bool("dryRun", e.opts.DryRun).
		Msg("Transforming link")
}

// replaceLink swaps the link at entry.Origin for one holding newTarget.
// There is no atomic way to retarget a symlink, so this is remove then
// create; if create fails the origin is left empty.
func (e *Engine) replaceLink(op string, entry *types.LinkEntry, newTarget string) types.Result {
	e.describe(op, entry, newTarget)
	if e.opts.DryRun {
		return types.Transformed(op, entry, newTarget, true)
	}

	if err := e.removeLink(entry); err != nil {
		return types.Failed(op, entry, err)
	}
	if err := e.fs.Symlink(newTarget, entry.Origin); err != nil {
		return types.Failed(op, entry, removedError(err, errors.ErrMutation, entry.Origin))
	}

	e.logger.Debug().Str("operation", op).Str("origin", entry.Origin).Str("target", newTarget).Msg("Link replaced")
	return types.Transformed(op, entry, newTarget, false)
}

func (e *Engine) removeLink(entry *types.LinkEntry) error {
	if err := e.fs.Remove(entry.Origin); err != nil {
		return errors.Wrapf(err, errors.ErrRemove, "cannot remove %s", entry.Origin).
			WithDetail("origin", entry.Origin)
	}
	return nil
}

// removedError reports a failure that happened after the old link was
// already removed.
func removedError(err error, code errors.ErrorCode, origin string) error {
	if errors.GetErrorCode(err) == errors.ErrCrossDevice {
		code = errors.ErrCrossDevice
	}
	return errors.Wrapf(err, code, "link removed but not replaced").
		WithDetail("origin", origin).
		WithDetail("removed", true)
}

func requireAttached(entry *types.LinkEntry) error {
	if entry.IsDangling {
		return errors.New(errors.ErrDangling, "skipping dangling symlink").
			WithDetail("origin", entry.Origin)
	}
	return nil
}
