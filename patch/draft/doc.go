// Package draft builds the candidate replacement file for a single-byte
// edit without ever touching the original.
//
// # Pipeline
//
// One four-phase pipeline serves all three operations, parameterized only
// at the apply step:
//
//	Init     open original read-only, exclusive-create <orig>.draft.tmp
//	CopyPre  append original bytes [0, pos) to the draft
//	ApplyAt  set:    write the new value, consume one original byte
//	         remove: consume one original byte, write nothing
//	         insert: write the new value, consume nothing
//	CopyPost append the remaining original bytes (cursor to EOF)
//	Complete flush and close the draft
//
// Remove's skipped byte and Insert's deferred byte are what produce the -1
// and +1 frame shifts; the pipeline itself never seeks backward and never
// rewrites a draft byte it has emitted.
//
// # Failure
//
// Any failure transitions to PhaseFailed: the partial draft is deleted, the
// original is untouched, and a typed error is returned. A draft sibling
// that already exists is treated as a stale leftover from a prior crash and
// refused, not overwritten.
package draft
