// Package patch is the high-level, one-call API for crash-safe single-byte
// file edits.
//
// # Overview
//
// Each call wraps one edit in a full transaction: back up the original,
// build a draft equal to "original + edit", verify the draft independently,
// and only then replace the original. Files of any size are processed with
// one small fixed buffer; nothing is ever loaded whole.
//
//	res, err := patch.SetByte("/data/blob.bin", 4096, 0x00, nil)
//	res, err := patch.RemoveByte("/data/blob.bin", 4096, nil)
//	res, err := patch.InsertByte("/data/blob.bin", 0, 0x7F, nil)
//
// # Safety
//
// The original file is replaced wholesale after verification, never
// rewritten in place. If anything fails before the commit, the original is
// byte-identical to before the call. If the commit itself fails, the error
// kind is ErrKindCommitUncertain and the <path>.backup.tmp sibling is
// deliberately kept for recovery; Stale lists such leftovers.
//
// Concurrent edits of one path are the caller's problem to serialize; a
// second transaction that finds the first's siblings refuses to run.
package patch
