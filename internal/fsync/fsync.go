// Package fsync provides platform durability shims for the commit protocol.
//
// File pushes a file's data to stable storage before it participates in a
// commit; Dir makes a completed rename durable by syncing the containing
// directory. Platforms without directory sync degrade to a no-op.
package fsync

import "os"

// File flushes f's data to stable storage.
//
// On Linux and FreeBSD this is fdatasync(2); on Darwin F_FULLFSYNC (falling
// back to fsync); elsewhere os.File.Sync.
func File(f *os.File) error {
	return fileSync(f)
}

// Dir syncs the directory at path so a rename inside it survives a crash.
func Dir(path string) error {
	return dirSync(path)
}
