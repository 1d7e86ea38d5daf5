//go:build darwin

package fsync

import (
	"os"

	"golang.org/x/sys/unix"
)

// fileSync uses F_FULLFSYNC on macOS. Plain fsync() on Darwin only pushes
// data to the drive, not through its cache; F_FULLFSYNC forces it to
// permanent storage. Falls back to fsync on filesystems that reject it.
func fileSync(f *os.File) error {
	if _, err := unix.FcntlInt(f.Fd(), unix.F_FULLFSYNC, 0); err != nil {
		return f.Sync()
	}
	return nil
}

func dirSync(path string) error {
	d, err := os.Open(path)
	if err != nil {
		return err
	}
	defer d.Close()
	return unix.Fsync(int(d.Fd()))
}
