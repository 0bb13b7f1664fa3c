package walker

import (
	"io/fs"
	"iter"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/slinky/pkg/errors"
	"github.com/arthur-debert/slinky/pkg/links"
	"github.com/arthur-debert/slinky/pkg/logging"
	"github.com/arthur-debert/slinky/pkg/types"
)

// Unbounded disables the depth limit.
const Unbounded = -1

// Options configures a walk.
type Options struct {
	// MaxDepth bounds how many directory levels below the root are
	// visited; the root is depth 0. Negative means unbounded.
	MaxDepth int

	Filter *Filter
}

// Walker finds symbolic links under a root directory.
type Walker struct {
	fs     types.FS
	opts   Options
	logger zerolog.Logger
}

// New creates a walker over fsys.
func New(fsys types.FS, opts Options) *Walker {
	return &Walker{
		fs:     fsys,
		opts:   opts,
		logger: logging.GetLogger("walker"),
	}
}

// CheckRoot fails when root does not exist. Callers run it before Walk so
// a bad root aborts the run instead of producing an empty walk.
func CheckRoot(fsys types.FS, root string) error {
	if _, err := fsys.Lstat(root); err != nil {
		return errors.Wrapf(err, errors.ErrRootNotFound, "%s: No such file or directory", root).
			WithDetail("root", root)
	}
	return nil
}

// Walk returns a lazy, depth-first sequence of the links under root that
// pass the filter. Origins keep the spelling of root, so walking "." yields
// "./name". Directories are visited in lexical order and symlinks
// are never followed: a link to a directory is yielded, not descended.
// A symlink given as root is yielded itself.
//
// Unreadable directories are skipped silently. A link that vanished or
// could not be read between discovery and classification is yielded with a
// non-nil error and an entry carrying only Origin and Dir, so the caller
// can report it and move on. Each call to the returned sequence walks
// afresh.
func (w *Walker) Walk(root string) iter.Seq2[*types.LinkEntry, error] {
	return func(yield func(*types.LinkEntry, error) bool) {
		if w.opts.Filter.Empty() {
			w.logger.Debug().Str("root", root).Msg("Filter excludes every link, skipping walk")
			return
		}

		info, err := w.fs.Lstat(root)
		if err != nil {
			w.logger.Debug().Err(err).Str("root", root).Msg("Cannot stat walk root")
			return
		}

		w.logger.Debug().Str("root", root).Int("maxDepth", w.opts.MaxDepth).Msg("Walk started")

		switch {
		case info.Mode()&fs.ModeSymlink != 0:
			w.visitLink(root, filepath.Dir(root), yield)
		case info.IsDir():
			w.walkDir(root, root, 0, yield)
		}
	}
}

// walkDir descends dir, which sits at depth. It returns false once the
// consumer has stopped iterating.
func (w *Walker) walkDir(root, dir string, depth int, yield func(*types.LinkEntry, error) bool) bool {
	if w.opts.MaxDepth >= 0 && depth >= w.opts.MaxDepth {
		return true
	}

	entries, err := w.fs.ReadDir(dir)
	if err != nil {
		w.logger.Debug().Err(err).Str("dir", dir).Msg("Skipping unreadable directory")
		return true
	}

	for _, de := range entries {
		path := join(dir, de.Name())

		if w.opts.Filter.Excluded(relSlash(root, path)) {
			w.logger.Trace().Str("path", path).Msg("Excluded")
			continue
		}

		switch {
		case de.Type()&fs.ModeSymlink != 0:
			if !w.visitLink(path, dir, yield) {
				return false
			}
		case de.IsDir():
			if !w.walkDir(root, path, depth+1, yield) {
				return false
			}
		}
	}
	return true
}

func (w *Walker) visitLink(path, dir string, yield func(*types.LinkEntry, error) bool) bool {
	entry, err := links.ClassifyIn(w.fs, path, dir)
	if err != nil {
		if !w.opts.Filter.MatchOrigin(path) {
			return true
		}
		w.logger.Debug().Err(err).Str("origin", path).Msg("Classification failed")
		return yield(&types.LinkEntry{Origin: path, Dir: dir}, err)
	}

	if !w.opts.Filter.Match(entry) {
		w.logger.Trace().Str("origin", path).Msg("Filtered out")
		return true
	}

	w.logger.Trace().
		Str("origin", entry.Origin).
		Str("target", entry.RawTarget).
		Bool("dangling", entry.IsDangling).
		Bool("absolute", entry.IsAbsolute).
		Msg("Link found")
	return yield(entry, nil)
}

// join appends name to dir without cleaning dir, unlike filepath.Join.
func join(dir, name string) string {
	if strings.HasSuffix(dir, string(filepath.Separator)) {
		return dir + name
	}
	return dir + string(filepath.Separator) + name
}

func relSlash(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
