package types

import (
	"io/fs"
)

// FS is the filesystem interface required for slinky operations.
// Every call blocks until the OS returns; nothing here is cached.
type FS interface {
	// Metadata
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)

	// EvalSymlinks returns the absolute, symlink-free form of path.
	EvalSymlinks(path string) (string, error)

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error

	// Link operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)
	Link(oldname, newname string) error

	// Other operations
	Remove(name string) error
	Rename(oldpath, newpath string) error
}
