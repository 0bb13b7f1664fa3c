package transform

import (
	"io/fs"
	"regexp"

	"github.com/arthur-debert/slinky/pkg/errors"
	"github.com/arthur-debert/slinky/pkg/filesystem"
	"github.com/arthur-debert/slinky/pkg/paths"
	"github.com/arthur-debert/slinky/pkg/types"
)

// Tidy rewrites the target to its lexically normalized form.
func (e *Engine) Tidy(entry *types.LinkEntry) types.Result {
	tidy := paths.Normalize(entry.RawTarget)
	if tidy == entry.RawTarget {
		return types.Unchanged(OpTidy, entry, "target is already tidy")
	}
	return e.replaceLink(OpTidy, entry, tidy)
}

// ToAbsolute rewrites the target to the canonical absolute path of what
// it resolves to.
func (e *Engine) ToAbsolute(entry *types.LinkEntry) types.Result {
	if err := requireAttached(entry); err != nil {
		return types.Failed(OpToAbsolute, entry, err)
	}

	abs, err := paths.Canonical(e.fs, entry.Resolved)
	if err != nil {
		return types.Failed(OpToAbsolute, entry, err)
	}
	if abs == entry.RawTarget {
		return types.Unchanged(OpToAbsolute, entry, "target is already absolute")
	}
	return e.replaceLink(OpToAbsolute, entry, abs)
}

// ToRelative rewrites the target to the shortest relative path from the
// link's canonical directory to the canonical target.
func (e *Engine) ToRelative(entry *types.LinkEntry) types.Result {
	if err := requireAttached(entry); err != nil {
		return types.Failed(OpToRelative, entry, err)
	}

	from, err := paths.Canonical(e.fs, entry.Dir)
	if err != nil {
		return types.Failed(OpToRelative, entry, err)
	}
	to, err := paths.Canonical(e.fs, entry.Resolved)
	if err != nil {
		return types.Failed(OpToRelative, entry, err)
	}

	rel, ok := paths.Relativize(from, to)
	if !ok {
		return types.Failed(OpToRelative, entry,
			errors.Newf(errors.ErrNoRelativePath, "no relative path from %s to %s", from, to))
	}
	if rel == entry.RawTarget {
		return types.Unchanged(OpToRelative, entry, "target is already relative")
	}
	return e.replaceLink(OpToRelative, entry, rel)
}

// Edit is a compiled target substitution.
type Edit struct {
	Pattern *regexp.Regexp
	// Replace may reference groups as $1 or ${name}.
	Replace string
	// All replaces every match instead of the first.
	All bool
}

// NewEdit compiles pattern. An invalid pattern is a setup error.
func NewEdit(pattern, replace string, all bool) (*Edit, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidPattern, "invalid pattern %q", pattern)
	}
	return &Edit{Pattern: re, Replace: replace, All: all}, nil
}

// Apply returns the edited target and whether the pattern matched.
func (ed *Edit) Apply(target string) (string, bool) {
	if ed.All {
		if !ed.Pattern.MatchString(target) {
			return target, false
		}
		return ed.Pattern.ReplaceAllString(target, ed.Replace), true
	}

	loc := ed.Pattern.FindStringSubmatchIndex(target)
	if loc == nil {
		return target, false
	}
	expanded := ed.Pattern.ExpandString(nil, ed.Replace, target, loc)
	return target[:loc[0]] + string(expanded) + target[loc[1]:], true
}

// EditTarget substitutes into the raw target. A pattern that does not
// match leaves the link alone.
func (e *Engine) EditTarget(ed *Edit) Operation {
	return func(entry *types.LinkEntry) types.Result {
		edited, matched := ed.Apply(entry.RawTarget)
		if !matched {
			return types.Unchanged(OpEditTarget, entry, "pattern did not match")
		}
		if edited == entry.RawTarget {
			return types.Unchanged(OpEditTarget, entry, "new target is identical to old target")
		}
		return e.replaceLink(OpEditTarget, entry, edited)
	}
}

// ToHardlink replaces the link with a hardlink to the file it resolves to.
func (e *Engine) ToHardlink(entry *types.LinkEntry) types.Result {
	if err := requireAttached(entry); err != nil {
		return types.Failed(OpToHardlink, entry, err)
	}

	target, err := paths.Canonical(e.fs, entry.Resolved)
	if err != nil {
		return types.Failed(OpToHardlink, entry, err)
	}
	info, err := e.fs.Stat(target)
	if err != nil {
		return types.Failed(OpToHardlink, entry, errors.Wrapf(err, errors.ErrUnresolvable, "cannot stat %s", target))
	}
	if info.IsDir() {
		return types.Failed(OpToHardlink, entry,
			errors.New(errors.ErrIsDirectory, "skipping directory").WithDetail("target", target))
	}
	if err := e.sameDevice(entry.Dir, info); err != nil {
		return types.Failed(OpToHardlink, entry, err)
	}

	e.describe(OpToHardlink, entry, target)
	if e.opts.DryRun {
		return types.Transformed(OpToHardlink, entry, target, true)
	}

	if err := e.removeLink(entry); err != nil {
		return types.Failed(OpToHardlink, entry, err)
	}
	if err := e.fs.Link(target, entry.Origin); err != nil {
		code := errors.ErrMutation
		if filesystem.IsCrossDevice(err) {
			code = errors.ErrCrossDevice
		}
		return types.Failed(OpToHardlink, entry, removedError(err, code, entry.Origin))
	}
	return types.Transformed(OpToHardlink, entry, target, false)
}

// sameDevice fails when dir and the file described by target live on
// different devices. Unknown devices pass; Link reports those itself.
func (e *Engine) sameDevice(dir string, target fs.FileInfo) error {
	dirInfo, err := e.fs.Stat(dir)
	if err != nil {
		return nil
	}
	a, okA := filesystem.DeviceOf(dirInfo)
	b, okB := filesystem.DeviceOf(target)
	if okA && okB && a != b {
		return errors.New(errors.ErrCrossDevice, "cannot hardlink across devices").
			WithDetail("dir", dir)
	}
	return nil
}

// ToTree replaces a link to a directory with a real directory mirroring
// it, made of links of the given kind.
func (e *Engine) ToTree(kind types.LinkKind) Operation {
	op := OpToTree
	if kind == types.LinkHard {
		op = OpToHardlinkTree
	}

	return func(entry *types.LinkEntry) types.Result {
		if err := requireAttached(entry); err != nil {
			return types.Failed(op, entry, err)
		}

		target, err := paths.Canonical(e.fs, entry.Resolved)
		if err != nil {
			return types.Failed(op, entry, err)
		}
		info, err := e.fs.Stat(target)
		if err != nil {
			return types.Failed(op, entry, errors.Wrapf(err, errors.ErrUnresolvable, "cannot stat %s", target))
		}
		if !info.IsDir() {
			return types.Failed(op, entry,
				errors.New(errors.ErrNotDirectory, "skipping file").WithDetail("target", target))
		}

		plan, err := e.mirror.Plan(target, entry.Origin, kind, false)
		if err != nil {
			return types.Failed(op, entry, err)
		}

		e.describe(op, entry, target)
		if e.opts.DryRun {
			return types.Transformed(op, entry, target, true)
		}

		if err := e.removeLink(entry); err != nil {
			return types.Failed(op, entry, err)
		}
		stats, err := e.mirror.Apply(plan)
		if err != nil {
			return types.Failed(op, entry, removedError(err, errors.ErrMirror, entry.Origin))
		}

		e.logger.Debug().
			Str("origin", entry.Origin).
			Int("dirs", stats.Dirs).
			Int("links", stats.Links).
			Msg("Tree created")
		return types.Transformed(op, entry, target, false)
	}
}

// ReplaceWithTarget moves the file the link resolves to into the link's
// place.
func (e *Engine) ReplaceWithTarget(entry *types.LinkEntry) types.Result {
	if err := requireAttached(entry); err != nil {
		return types.Failed(OpReplaceWithTarget, entry, err)
	}

	target, err := paths.Canonical(e.fs, entry.Resolved)
	if err != nil {
		return types.Failed(OpReplaceWithTarget, entry, err)
	}
	// A directory cannot be moved below itself.
	location, err := paths.CanonicalParent(e.fs, entry.Origin)
	if err != nil {
		return types.Failed(OpReplaceWithTarget, entry, err)
	}
	if paths.Within(target, location) {
		return types.Failed(OpReplaceWithTarget, entry,
			errors.Newf(errors.ErrInvalidInput, "cannot move %s into itself", target).
				WithDetail("origin", entry.Origin))
	}

	e.describe(OpReplaceWithTarget, entry, target)
	if e.opts.DryRun {
		return types.Transformed(OpReplaceWithTarget, entry, target, true)
	}

	if err := e.removeLink(entry); err != nil {
		return types.Failed(OpReplaceWithTarget, entry, err)
	}
	if err := e.fs.Rename(target, entry.Origin); err != nil {
		code := errors.ErrMutation
		if filesystem.IsCrossDevice(err) {
			code = errors.ErrCrossDevice
		}
		return types.Failed(OpReplaceWithTarget, entry, removedError(err, code, entry.Origin))
	}
	return types.Transformed(OpReplaceWithTarget, entry, target, false)
}

// Delete removes the link without looking at its target.
func (e *Engine) Delete(entry *types.LinkEntry) types.Result {
	e.describe(OpDelete, entry, "")
	if e.opts.DryRun {
		return types.Transformed(OpDelete, entry, "", true)
	}
	if err := e.removeLink(entry); err != nil {
		return types.Failed(OpDelete, entry, err)
	}
	return types.Transformed(OpDelete, entry, "", false)
}
