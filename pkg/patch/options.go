package patch

import (
	"github.com/joshuapare/patchkit/pkg/types"
)

// OperationOptions controls individual high-level operation behavior.
type OperationOptions struct {
	// Limits bounds the transaction's buffer size and accepted file size.
	// If nil, types.DefaultLimits() is used.
	Limits *types.Limits

	// DryRun builds and verifies the draft, then discards it without
	// replacing the original. Useful for checking that an edit would
	// succeed before committing to it.
	DryRun bool
}

// Limits re-exports the limits type for convenience.
type Limits = types.Limits

// Edit operation variants (re-exported for convenience).
type (
	SetByteOp    = types.SetByte
	RemoveByteOp = types.RemoveByte
	InsertByteOp = types.InsertByte
)
