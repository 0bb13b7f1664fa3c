//go:build unix

package filesystem

import (
	"errors"
	"io/fs"
	"syscall"

	"golang.org/x/sys/unix"
)

// FileID identifies a filesystem object by device and inode.
type FileID struct {
	Device uint64
	Inode  uint64
}

// Identity returns the device and inode of path without following a
// final symlink.
func Identity(path string) (FileID, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return FileID{}, err
	}
	return FileID{Device: uint64(st.Dev), Inode: uint64(st.Ino)}, nil
}

// IsCrossDevice reports whether err is the OS refusing to link or rename
// across filesystems.
func IsCrossDevice(err error) bool {
	return errors.Is(err, unix.EXDEV)
}

// DeviceOf returns the device number recorded in info. The second result
// is false when info did not come from a stat of the local filesystem.
func DeviceOf(info fs.FileInfo) (uint64, bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, false
	}
	return uint64(st.Dev), true
}
