// Package tx wraps a single-byte edit in a backup/verify/commit transaction.
//
// Transaction Protocol:
//  1. Confirm the original exists; capture its streamed identity
//  2. Create <orig>.backup.tmp (verbatim copy, exclusive-create)
//  3. Build <orig>.draft.tmp via the draft pipeline
//  4. Verify the draft against the original; gating failures abort
//  5. Commit: rename the draft over the original
//  6. Delete the backup, only once the commit is confirmed
//  7. Remove leftover draft state
//
// Crash Recovery:
// The siblings double as the crash journal. A leftover .draft.tmp means a
// build or verify never finished; a leftover .backup.tmp means a commit was
// not confirmed. A new transaction that finds either refuses to run
// (exclusive-create, ErrKindState) instead of silently overwriting the
// evidence; Stale reports them without touching them.
//
// Failures before the commit leave the original byte-identical and clean up
// both siblings best-effort. Failures at or after the commit return
// ErrKindCommitUncertain with the backup deliberately retained for manual
// recovery.
package tx
