package paths

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/slinky/pkg/errors"
	"github.com/arthur-debert/slinky/pkg/types"
)

// Canonical returns the absolute, symlink-free form of path. Unlike
// Normalize it touches the filesystem, and it fails when any component
// along the way does not exist.
func Canonical(fsys types.FS, path string) (string, error) {
	resolved, err := fsys.EvalSymlinks(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrUnresolvable, "cannot resolve %s", path).
			WithDetail("path", path)
	}
	return resolved, nil
}

// CanonicalParent canonicalizes the parent of path and rejoins the final
// element. It works for paths that do not exist yet, such as the
// destination of a link about to be created.
func CanonicalParent(fsys types.FS, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrUnresolvable, "cannot resolve %s", path)
	}
	parent, err := Canonical(fsys, filepath.Dir(abs))
	if err != nil {
		return "", err
	}
	return filepath.Join(parent, filepath.Base(abs)), nil
}

// CanonicalNearest is CanonicalParent for paths whose ancestors may not
// exist yet either. The deepest existing ancestor of the parent is
// canonicalized and the missing components are rejoined in order. The
// final element is never resolved, even when it exists.
func CanonicalNearest(fsys types.FS, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrUnresolvable, "cannot resolve %s", path)
	}

	tail := []string{filepath.Base(abs)}
	existing := filepath.Dir(abs)
	for {
		if _, err := fsys.Lstat(existing); err == nil {
			break
		}
		parent := filepath.Dir(existing)
		if parent == existing {
			break
		}
		tail = append(tail, filepath.Base(existing))
		existing = parent
	}

	resolved, err := Canonical(fsys, existing)
	if err != nil {
		return "", err
	}
	for i := len(tail) - 1; i >= 0; i-- {
		resolved = filepath.Join(resolved, tail[i])
	}
	return resolved, nil
}

// Within reports whether path equals dir or lies below it. Both must be
// clean absolute paths.
func Within(dir, path string) bool {
	if path == dir {
		return true
	}
	if dir == string(filepath.Separator) {
		return strings.HasPrefix(path, dir)
	}
	return strings.HasPrefix(path, dir+string(filepath.Separator))
}
