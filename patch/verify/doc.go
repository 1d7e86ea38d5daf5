// Package verify proves a draft file is the original plus exactly one edit
// before anything is committed.
//
// # Protocol
//
// Four independent checks run against the original and the draft:
//
//  1. Length (gating): draft length equals original length plus the
//     operation's delta (0 set, -1 remove, +1 insert).
//  2. Pre-position (gating): bytes [0, pos) are identical. Trivially passes
//     when pos is 0 or the original holds at most one byte.
//  3. At-position (advisory): records the old and new byte at the target.
//     Writing a byte over itself is legal, so this check never gates; for
//     inserts it additionally confirms the draft holds the new value.
//  4. Post-position (gating): the remainder is identical once the
//     operation's frame shift is applied. Set compares original[pos+1:]
//     with draft[pos+1:], remove with draft[pos:], insert original[pos:]
//     with draft[pos+1:].
//
// Ranges are streamed chunk by chunk with a bounded buffer, byte-compared
// and fingerprinted; neither file is ever loaded whole.
//
// # Results
//
// Run returns a Report with per-check outcomes; Report.Ok gates the commit.
// An error from Run means the checks could not be carried out at all
// (I/O failure), which is distinct from a check failing.
package verify
