// Package links reads and classifies symbolic links.
package links

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/slinky/pkg/errors"
	"github.com/arthur-debert/slinky/pkg/types"
)

// Classify reads the link at origin and resolves its status. It reads the
// stored target string once and stats the resolved target once, following
// any chain of links at the target. It fails when origin is not a symbolic
// link or cannot be read. Nothing is modified.
func Classify(fsys types.FS, origin string) (*types.LinkEntry, error) {
	return ClassifyIn(fsys, origin, filepath.Dir(origin))
}

// ClassifyIn is Classify with an explicit containing directory.
func ClassifyIn(fsys types.FS, origin, dir string) (*types.LinkEntry, error) {
	info, err := fsys.Lstat(origin)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrClassify, "cannot inspect %s", origin)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return nil, errors.Newf(errors.ErrNotSymlink, "%s is not a symbolic link", origin).
			WithDetail("origin", origin)
	}

	raw, err := fsys.Readlink(origin)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrClassify, "cannot read link %s", origin)
	}

	entry := &types.LinkEntry{
		Origin:     origin,
		RawTarget:  raw,
		Dir:        dir,
		Resolved:   Resolve(dir, raw),
		IsAbsolute: filepath.IsAbs(raw),
	}

	if _, err := fsys.Stat(entry.Resolved); err != nil {
		entry.IsDangling = true
	}

	return entry, nil
}

// Resolve joins a relative target onto dir. Absolute targets are returned
// verbatim. The join is not cleaned, so ".." still walks through any
// symlinked directory the way the kernel would.
func Resolve(dir, target string) string {
	if filepath.IsAbs(target) {
		return target
	}
	return dir + string(filepath.Separator) + target
}
