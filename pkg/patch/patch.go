package patch

import (
	"context"

	"github.com/joshuapare/patchkit/internal/fingerprint"
	"github.com/joshuapare/patchkit/patch/tx"
	"github.com/joshuapare/patchkit/pkg/types"
)

// SetByte overwrites the byte at pos in the file at path with value.
// File length is unchanged.
//
// Example:
//
//	res, err := patch.SetByte("/data/image.bin", 1024, 0xFF, nil)
func SetByte(path string, pos int64, value byte, opts *OperationOptions) (*types.Result, error) {
	return Apply(path, types.SetByte{Pos: pos, Value: value}, opts)
}

// RemoveByte deletes the byte at pos in the file at path. All later bytes
// shift back by one and the file shrinks by one byte.
func RemoveByte(path string, pos int64, opts *OperationOptions) (*types.Result, error) {
	return Apply(path, types.RemoveByte{Pos: pos}, opts)
}

// InsertByte inserts value at pos in the file at path. All bytes from pos
// on shift forward by one and the file grows by one byte; pos equal to the
// file length appends.
func InsertByte(path string, pos int64, value byte, opts *OperationOptions) (*types.Result, error) {
	return Apply(path, types.InsertByte{Pos: pos, Value: value}, opts)
}

// Apply runs one edit operation against the file at path inside a full
// backup/verify/commit transaction. On success the original reflects the
// edit; on failure the returned error's kind tells the caller whether the
// original is untouched (everything but ErrKindCommitUncertain) or whether
// the retained backup sibling is needed for recovery.
func Apply(path string, op types.EditOp, opts *OperationOptions) (*types.Result, error) {
	if opts == nil {
		opts = &OperationOptions{}
	}
	m := tx.NewManager(path, op, &tx.Options{Limits: opts.Limits, DryRun: opts.DryRun})
	res, _, err := m.Apply(context.Background())
	return res, err
}

// Identify captures the file's identity (length and content fingerprint)
// by streaming over it with a bounded buffer.
func Identify(path string, limits *types.Limits) (types.FileIdentity, error) {
	l := types.DefaultLimits()
	if limits != nil {
		l = *limits
	}
	return fingerprint.Identify(path, l)
}

// Stale reports leftover draft/backup siblings for path from an
// interrupted prior transaction, without touching them.
func Stale(path string) ([]string, error) {
	return tx.Stale(path)
}
