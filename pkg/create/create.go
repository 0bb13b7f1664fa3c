// Package create makes a single new link the way ln does, with slinky's
// extras: absolute or relative target rewriting, dereferencing and trees.
package create

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/slinky/pkg/errors"
	"github.com/arthur-debert/slinky/pkg/filesystem"
	"github.com/arthur-debert/slinky/pkg/logging"
	"github.com/arthur-debert/slinky/pkg/mirror"
	"github.com/arthur-debert/slinky/pkg/paths"
	"github.com/arthur-debert/slinky/pkg/types"
)

// Operation labels reported in results.
const (
	OpSymlink      = "create symlink"
	OpHardlink     = "create hardlink"
	OpSymlinkTree  = "create symlink tree"
	OpHardlinkTree = "create hardlink tree"
)

// maxHops bounds manual link following when canonicalization fails.
const maxHops = 40

// Options describes one link to create.
type Options struct {
	// Target is what the link points to. Relative targets are looked up
	// from the working directory.
	Target string
	// Origin is where the link is created. An existing directory receives
	// a link named after the target. Defaults to ".".
	Origin string

	Force         bool
	Absolute      bool
	Relative      bool
	AllowDangling bool
	Hard          bool
	Tree          bool
	Dereference   bool
	DryRun        bool
}

// Validate checks flag combinations. At most one of Absolute, Relative and
// AllowDangling may be set, and none of them together with Hard or Tree.
func (o Options) Validate() error {
	if o.Target == "" {
		return errors.New(errors.ErrInvalidInput, "target is required")
	}

	rewrites := 0
	for _, set := range []bool{o.Absolute, o.Relative, o.AllowDangling} {
		if set {
			rewrites++
		}
	}
	if rewrites > 1 {
		return errors.New(errors.ErrInvalidInput, "--absolute, --relative and --allow-dangling are mutually exclusive")
	}
	if rewrites > 0 && (o.Hard || o.Tree) {
		return errors.New(errors.ErrInvalidInput, "--hard and --tree cannot be combined with --absolute, --relative or --allow-dangling")
	}
	return nil
}

// Creator creates links on a filesystem.
type Creator struct {
	fs     types.FS
	mirror *mirror.Mirror
	logger zerolog.Logger
}

// New creates a Creator over fsys.
func New(fsys types.FS) *Creator {
	return &Creator{
		fs:     fsys,
		mirror: mirror.New(fsys),
		logger: logging.GetLogger("create"),
	}
}

// Create makes the link described by opts. Unlike the walk operations,
// every failure here is returned as an error: there is only one link.
func (c *Creator) Create(opts Options) (types.Result, error) {
	if err := opts.Validate(); err != nil {
		return types.Result{}, err
	}

	target := opts.Target
	if opts.Dereference {
		target = c.dereference(target)
	}

	origin, err := c.originPath(opts.Origin, target)
	if err != nil {
		return types.Result{}, err
	}

	_, statErr := c.fs.Stat(target)
	exists := statErr == nil

	c.logger.Debug().
		Str("target", target).
		Str("origin", origin).
		Bool("exists", exists).
		Bool("hard", opts.Hard).
		Bool("tree", opts.Tree).
		Msg("Creating link")

	switch {
	case opts.Tree:
		if !exists {
			return types.Result{}, errors.Wrap(statErr, errors.ErrUnresolvable, "target does not exist; cannot create tree")
		}
		kind, op := types.LinkSymbolic, OpSymlinkTree
		if opts.Hard {
			kind, op = types.LinkHard, OpHardlinkTree
		}
		plan, err := c.mirror.Plan(target, origin, kind, opts.Force)
		if err != nil {
			return types.Result{}, err
		}
		if !plan.Merge {
			if err := c.clearOrigin(origin, opts); err != nil {
				return types.Result{}, err
			}
		}
		if !opts.DryRun {
			if _, err := c.mirror.Apply(plan); err != nil {
				return types.Result{}, err
			}
		}
		return created(op, origin, opts.Target, opts.DryRun), nil

	case opts.Hard:
		if !exists {
			return types.Result{}, errors.Wrap(statErr, errors.ErrUnresolvable, "target does not exist; cannot create hardlink")
		}
		if err := c.requireFile(target); err != nil {
			return types.Result{}, err
		}
		if err := c.clearOrigin(origin, opts); err != nil {
			return types.Result{}, err
		}
		if !opts.DryRun {
			if err := c.fs.Link(target, origin); err != nil {
				return types.Result{}, createError(err, origin)
			}
		}
		return created(OpHardlink, origin, opts.Target, opts.DryRun), nil
	}

	if !exists && !opts.AllowDangling {
		return types.Result{}, errors.Wrap(statErr, errors.ErrDangling,
			"target does not exist; refusing to create dangling symlink without --allow-dangling")
	}

	contents, err := c.contents(target, origin, opts)
	if err != nil {
		return types.Result{}, err
	}
	if err := c.clearOrigin(origin, opts); err != nil {
		return types.Result{}, err
	}
	if !opts.DryRun {
		if err := c.fs.Symlink(contents, origin); err != nil {
			return types.Result{}, createError(err, origin)
		}
	}
	return created(OpSymlink, origin, contents, opts.DryRun), nil
}

// originPath places the link inside origin when origin is a directory.
func (c *Creator) originPath(origin, target string) (string, error) {
	if origin == "" {
		origin = "."
	}
	info, err := c.fs.Stat(origin)
	if err != nil || !info.IsDir() {
		return origin, nil
	}

	named := target
	if canonical, err := c.fs.EvalSymlinks(target); err == nil {
		named = canonical
	}
	name, ok := baseName(named)
	if !ok {
		return "", errors.Newf(errors.ErrInvalidInput, "could not get basename of %s; target path terminates in ..", target)
	}
	return filepath.Join(origin, name), nil
}

func (c *Creator) contents(target, origin string, opts Options) (string, error) {
	switch {
	case opts.Absolute:
		return paths.Canonical(c.fs, target)

	case opts.Relative:
		to, err := paths.Canonical(c.fs, target)
		if err != nil {
			return "", err
		}
		from, err := paths.Canonical(c.fs, filepath.Dir(origin))
		if err != nil {
			return "", err
		}
		rel, ok := paths.Relativize(from, to)
		if !ok {
			return "", errors.Newf(errors.ErrNoRelativePath, "failed to calculate relative path from %s to %s", from, to)
		}
		return rel, nil
	}
	return target, nil
}

func (c *Creator) requireFile(target string) error {
	info, err := c.fs.Stat(target)
	if err != nil {
		return errors.Wrap(err, errors.ErrUnresolvable, "cannot stat target")
	}
	if info.IsDir() {
		return errors.New(errors.ErrIsDirectory, "cannot hard link a directory").WithDetail("target", target)
	}
	return nil
}

func (c *Creator) clearOrigin(origin string, opts Options) error {
	if !opts.Force || opts.DryRun {
		return nil
	}
	if _, err := c.fs.Lstat(origin); err != nil {
		return nil
	}
	if err := c.fs.Remove(origin); err != nil {
		return errors.Wrapf(err, errors.ErrRemove, "cannot remove existing %s", origin)
	}
	c.logger.Debug().Str("origin", origin).Msg("Removed existing origin")
	return nil
}

// dereference follows target to its final destination. When the chain
// cannot be canonicalized, typically because it ends nowhere, the links
// are followed one hop at a time instead.
func (c *Creator) dereference(target string) string {
	if !c.isSymlink(target) {
		return target
	}
	if resolved, err := c.fs.EvalSymlinks(target); err == nil {
		return resolved
	}

	current := target
	for hops := 0; hops < maxHops && c.isSymlink(current); hops++ {
		next, err := c.fs.Readlink(current)
		if err != nil {
			break
		}
		current = filepath.Join(filepath.Dir(current), next)
		if filepath.IsAbs(next) {
			current = next
		}
	}
	return current
}

func (c *Creator) isSymlink(path string) bool {
	info, err := c.fs.Lstat(path)
	return err == nil && info.Mode()&fs.ModeSymlink != 0
}

func baseName(path string) (string, bool) {
	trimmed := strings.TrimRight(path, string(filepath.Separator))
	if trimmed == "" || filepath.Base(trimmed) == ".." {
		return "", false
	}
	name := filepath.Base(filepath.Clean(trimmed))
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return "", false
	}
	return name, true
}

func createError(err error, origin string) error {
	switch {
	case filesystem.IsCrossDevice(err):
		return errors.Wrapf(err, errors.ErrCrossDevice, "cannot hardlink %s across devices", origin)
	case os.IsExist(err):
		return errors.Wrapf(err, errors.ErrTargetExists, "%s already exists; use --force to replace it", origin).
			WithDetail("origin", origin)
	}
	return errors.Wrapf(err, errors.ErrCreate, "cannot create %s", origin)
}

func created(op, origin, target string, dryRun bool) types.Result {
	return types.Result{
		Operation: op,
		Origin:    origin,
		Status:    types.StatusTransformed,
		NewTarget: target,
		DryRun:    dryRun,
	}
}
