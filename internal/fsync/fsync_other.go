//go:build !linux && !freebsd && !darwin

package fsync

import "os"

func fileSync(f *os.File) error {
	return f.Sync()
}

// dirSync is a no-op where directories cannot be synced (e.g. Windows,
// where the rename itself is journaled by NTFS).
func dirSync(string) error { return nil }
