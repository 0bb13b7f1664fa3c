// pkg/testutil/faultfs.go
// DEPENDENCIES: types.FS
// PURPOSE: Inject filesystem errors for selected paths in otherwise real trees

package testutil

import (
	"io/fs"
	"strings"

	"github.com/arthur-debert/slinky/pkg/types"
)

// Operation names accepted by FaultFS.Fail
const (
	OpStat      = "stat"
	OpLstat     = "lstat"
	OpReadDir   = "readdir"
	OpReadlink  = "readlink"
	OpMkdirAll  = "mkdirall"
	OpSymlink   = "symlink"
	OpLink      = "link"
	OpRemove    = "remove"
	OpRename    = "rename"
	OpEvalLinks = "evalsymlinks"
)

type fault struct {
	op     string
	suffix string
	err    error
}

// FaultFS wraps a real types.FS and fails chosen operations on paths
// ending with a given suffix. Two-path operations match either path.
type FaultFS struct {
	types.FS
	faults []fault
	calls  map[string]int
}

// NewFaultFS wraps next
func NewFaultFS(next types.FS) *FaultFS {
	return &FaultFS{FS: next, calls: make(map[string]int)}
}

// Fail makes op return err for any path ending in suffix
func (f *FaultFS) Fail(op, suffix string, err error) *FaultFS {
	f.faults = append(f.faults, fault{op: op, suffix: suffix, err: err})
	return f
}

// Calls reports how many times op was invoked
func (f *FaultFS) Calls(op string) int {
	return f.calls[op]
}

func (f *FaultFS) check(op string, names ...string) error {
	f.calls[op]++
	for _, flt := range f.faults {
		if flt.op != op {
			continue
		}
		for _, name := range names {
			if strings.HasSuffix(name, flt.suffix) {
				return flt.err
			}
		}
	}
	return nil
}

func (f *FaultFS) Stat(name string) (fs.FileInfo, error) {
	if err := f.check(OpStat, name); err != nil {
		return nil, err
	}
	return f.FS.Stat(name)
}

func (f *FaultFS) Lstat(name string) (fs.FileInfo, error) {
	if err := f.check(OpLstat, name); err != nil {
		return nil, err
	}
	return f.FS.Lstat(name)
}

func (f *FaultFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if err := f.check(OpReadDir, name); err != nil {
		return nil, err
	}
	return f.FS.ReadDir(name)
}

func (f *FaultFS) EvalSymlinks(path string) (string, error) {
	if err := f.check(OpEvalLinks, path); err != nil {
		return "", err
	}
	return f.FS.EvalSymlinks(path)
}

func (f *FaultFS) Readlink(name string) (string, error) {
	if err := f.check(OpReadlink, name); err != nil {
		return "", err
	}
	return f.FS.Readlink(name)
}

func (f *FaultFS) MkdirAll(path string, perm fs.FileMode) error {
	if err := f.check(OpMkdirAll, path); err != nil {
		return err
	}
	return f.FS.MkdirAll(path, perm)
}

func (f *FaultFS) Symlink(oldname, newname string) error {
	if err := f.check(OpSymlink, oldname, newname); err != nil {
		return err
	}
	return f.FS.Symlink(oldname, newname)
}

func (f *FaultFS) Link(oldname, newname string) error {
	if err := f.check(OpLink, oldname, newname); err != nil {
		return err
	}
	return f.FS.Link(oldname, newname)
}

func (f *FaultFS) Remove(name string) error {
	if err := f.check(OpRemove, name); err != nil {
		return err
	}
	return f.FS.Remove(name)
}

func (f *FaultFS) Rename(oldpath, newpath string) error {
	if err := f.check(OpRename, oldpath, newpath); err != nil {
		return err
	}
	return f.FS.Rename(oldpath, newpath)
}

var _ types.FS = (*FaultFS)(nil)
