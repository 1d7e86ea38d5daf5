// Package types defines the public data model for patchkit: edit operation
// variants, typed errors, file identities, results, and safety limits.
//
// # Edit Operations
//
// An edit is one of three tagged variants, each carrying exactly the fields
// it needs:
//
//	types.SetByte{Pos: 9, Value: 0xFF}    // overwrite, length unchanged
//	types.RemoveByte{Pos: 9}              // delete, length - 1
//	types.InsertByte{Pos: 9, Value: 0x00} // insert, length + 1
//
// Positions are zero-based byte offsets. Set and Remove require the position
// to be inside the file; Insert also accepts the position one past the end
// (append). A zero-length file therefore admits only InsertByte at 0.
//
// # Typed Errors
//
// All failures surface as *types.Error carrying an ErrKind, the operation
// kind, and a numeric offset. Branch with errors.Is against the sentinels:
//
//	_, err := patch.RemoveByte(path, 4, nil)
//	if errors.Is(err, types.ErrCommitUncertain) {
//	    // the backup sibling was kept; manual recovery is possible
//	}
//
// Production error payloads are fixed-size: kind, op, offset. Rich detail
// strings exist only in binaries built with the patchdebug tag.
//
// # Limits
//
// Limits bound the buffer size and accepted file size of one transaction.
// DefaultLimits, StrictLimits and RelaxedLimits cover the common profiles;
// the zero value of Limits behaves like DefaultLimits.
package types
