//go:build linux || freebsd

package fsync

import (
	"os"

	"golang.org/x/sys/unix"
)

// fileSync performs fdatasync, which is sufficient for data durability.
// Metadata-only updates (atime etc.) are not forced out.
func fileSync(f *os.File) error {
	return unix.Fdatasync(int(f.Fd()))
}

// dirSync fsyncs the directory so directory entry updates (the commit
// rename) reach stable storage.
func dirSync(path string) error {
	d, err := os.Open(path)
	if err != nil {
		return err
	}
	defer d.Close()
	return unix.Fsync(int(d.Fd()))
}
