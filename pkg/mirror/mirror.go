// Package mirror reproduces a directory tree using links in place of
// file copies.
package mirror

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/slinky/pkg/errors"
	"github.com/arthur-debert/slinky/pkg/filesystem"
	"github.com/arthur-debert/slinky/pkg/logging"
	"github.com/arthur-debert/slinky/pkg/paths"
	"github.com/arthur-debert/slinky/pkg/types"
)

const dirPerm = 0755

// Plan is a validated mirror request. Building a plan touches nothing, so
// callers can check a mirror is possible before destroying what currently
// occupies the destination.
type Plan struct {
	// Source is the canonical path being mirrored.
	Source string
	// Dest is where the mirror is created.
	Dest string
	Kind types.LinkKind
	// SourceIsDir is false when the mirror degenerates to a single link.
	SourceIsDir bool
	// Merge is set when Dest already holds entries the mirror is added to.
	Merge bool
}

// Stats counts what Apply created.
type Stats struct {
	Dirs  int
	Links int
}

// Mirror creates link trees on a filesystem.
type Mirror struct {
	fs     types.FS
	logger zerolog.Logger
}

// New creates a Mirror over fsys.
func New(fsys types.FS) *Mirror {
	return &Mirror{
		fs:     fsys,
		logger: logging.GetLogger("mirror"),
	}
}

// Tree mirrors source at dest. See Plan and Apply.
func (m *Mirror) Tree(source, dest string, kind types.LinkKind) (Stats, error) {
	plan, err := m.Plan(source, dest, kind, false)
	if err != nil {
		return Stats{}, err
	}
	return m.Apply(plan)
}

// Plan validates a mirror of source at dest. The source must resolve, and a
// directory source must not contain the destination. Missing ancestors of
// the destination are allowed and are created by Apply.
//
// A destination that is an existing non-empty directory is refused unless
// merge is set, in which case the mirror is added alongside its entries.
func (m *Mirror) Plan(source, dest string, kind types.LinkKind, merge bool) (*Plan, error) {
	if kind != types.LinkHard && kind != types.LinkSymbolic {
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown link kind %q", kind)
	}

	canonical, err := paths.Canonical(m.fs, source)
	if err != nil {
		return nil, err
	}
	info, err := m.fs.Stat(canonical)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrMirror, "cannot stat %s", canonical)
	}

	plan := &Plan{
		Source:      canonical,
		Dest:        dest,
		Kind:        kind,
		SourceIsDir: info.IsDir(),
	}

	if !plan.SourceIsDir {
		return plan, nil
	}

	destCanonical, err := paths.CanonicalNearest(m.fs, dest)
	if err != nil {
		return nil, err
	}
	if paths.Within(canonical, destCanonical) {
		return nil, errors.Newf(errors.ErrInvalidInput, "cannot mirror %s into itself", canonical).
			WithDetail("dest", dest)
	}

	occupied, err := m.occupied(dest)
	if err != nil {
		return nil, err
	}
	if occupied {
		if !merge {
			return nil, errors.Newf(errors.ErrTargetExists, "%s exists and is not empty; use --force to merge into it", dest).
				WithDetail("dest", dest)
		}
		plan.Merge = true
	}

	return plan, nil
}

// occupied reports whether path is a real directory with entries in it.
// Symlinks are not followed.
func (m *Mirror) occupied(path string) (bool, error) {
	info, err := m.fs.Lstat(path)
	if err != nil || !info.IsDir() {
		return false, nil
	}
	entries, err := m.fs.ReadDir(path)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrMirror, "cannot read %s", path)
	}
	return len(entries) > 0, nil
}

// Apply carries out plan. Directories under the source become real
// directories under the destination and everything else becomes a link:
// a hardlink to the source entry, or a symlink holding its canonical
// absolute path. Symlinks inside the source are not descended.
//
// Apply is not transactional. On failure, whatever was created before the
// failing entry is left in place and the returned Stats say how much.
func (m *Mirror) Apply(plan *Plan) (Stats, error) {
	var stats Stats

	m.logger.Debug().
		Str("source", plan.Source).
		Str("dest", plan.Dest).
		Str("kind", string(plan.Kind)).
		Bool("dir", plan.SourceIsDir).
		Bool("merge", plan.Merge).
		Msg("Mirroring")

	if !plan.SourceIsDir {
		if err := m.link(plan.Kind, plan.Source, plan.Dest); err != nil {
			return stats, err
		}
		stats.Links++
		return stats, nil
	}

	if err := m.mkdir(plan.Dest); err != nil {
		return stats, err
	}
	stats.Dirs++

	err := m.mirrorDir(plan.Kind, plan.Source, plan.Dest, &stats)

	m.logger.Debug().
		Int("dirs", stats.Dirs).
		Int("links", stats.Links).
		Err(err).
		Msg("Mirror finished")
	return stats, err
}

func (m *Mirror) mirrorDir(kind types.LinkKind, src, dst string, stats *Stats) error {
	entries, err := m.fs.ReadDir(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrMirror, "cannot read %s", src)
	}

	for _, de := range entries {
		srcPath := filepath.Join(src, de.Name())
		dstPath := filepath.Join(dst, de.Name())

		if de.IsDir() {
			if err := m.mkdir(dstPath); err != nil {
				return err
			}
			stats.Dirs++
			if err := m.mirrorDir(kind, srcPath, dstPath, stats); err != nil {
				return err
			}
			continue
		}

		if err := m.link(kind, srcPath, dstPath); err != nil {
			return err
		}
		stats.Links++
	}
	return nil
}

func (m *Mirror) mkdir(path string) error {
	if err := m.fs.MkdirAll(path, dirPerm); err != nil {
		return errors.Wrapf(err, errors.ErrMirror, "cannot create directory %s", path)
	}
	m.logger.Trace().Str("path", path).Msg("Created directory")
	return nil
}

func (m *Mirror) link(kind types.LinkKind, src, dst string) error {
	switch kind {
	case types.LinkHard:
		if err := m.fs.Link(src, dst); err != nil {
			return linkError(err, "hardlink", src, dst)
		}
	default:
		target, err := paths.Canonical(m.fs, src)
		if err != nil {
			return err
		}
		if err := m.fs.Symlink(target, dst); err != nil {
			return linkError(err, "symlink", target, dst)
		}
		src = target
	}
	m.logger.Trace().Str("kind", string(kind)).Str("src", src).Str("dst", dst).Msg("Linked")
	return nil
}

func linkError(err error, what, src, dst string) error {
	if filesystem.IsCrossDevice(err) {
		return errors.Wrapf(err, errors.ErrCrossDevice, "cannot %s %s across devices", what, src).
			WithDetail("src", src).
			WithDetail("dst", dst)
	}
	return errors.Wrapf(err, errors.ErrMirror, "cannot %s %s to %s", what, src, dst).
		WithDetail("src", src).
		WithDetail("dst", dst)
}
