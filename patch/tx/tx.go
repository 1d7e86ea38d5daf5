package tx

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joshuapare/patchkit/internal/diag"
	"github.com/joshuapare/patchkit/internal/fingerprint"
	"github.com/joshuapare/patchkit/internal/fsync"
	"github.com/joshuapare/patchkit/internal/transfer"
	"github.com/joshuapare/patchkit/patch/draft"
	"github.com/joshuapare/patchkit/patch/verify"
	"github.com/joshuapare/patchkit/pkg/types"
)

// BackupSuffix is appended to the original path to name the backup sibling.
// Its persistence after a crash is the signal for recovery tooling.
const BackupSuffix = ".backup.tmp"

// BackupPath returns the backup sibling path for an original.
func BackupPath(original string) string { return original + BackupSuffix }

// Options controls one transaction.
type Options struct {
	// Limits bounds buffer size and accepted file size.
	// Nil selects types.DefaultLimits().
	Limits *types.Limits

	// DryRun builds and verifies the draft, then discards it without
	// committing. The original and its directory end up exactly as before.
	DryRun bool
}

// Manager owns one single-byte edit transaction on one file. It is the only
// component that ever touches the original, and it opens the original for
// writing only inside the commit step.
//
// A Manager is not safe for concurrent use, and two transactions on the
// same path must be serialized by the caller. Exclusive-create of the
// backup and draft siblings turns a concurrent or crashed predecessor into
// a refusal rather than silent corruption.
type Manager struct {
	path   string
	op     types.EditOp
	limits types.Limits
	dryRun bool

	// failpoint injects a fault after the named step. When it returns an
	// error the sequence stops dead with no cleanup, exactly as a crash
	// would leave the siblings on disk; at the "commit" step the fault
	// surfaces as the commit itself failing. Tests only.
	failpoint func(step string) error
}

// NewManager prepares a transaction applying op to the file at path.
func NewManager(path string, op types.EditOp, opts *Options) *Manager {
	if opts == nil {
		opts = &Options{}
	}
	limits := types.DefaultLimits()
	if opts.Limits != nil {
		limits = *opts.Limits
	}
	return &Manager{
		path:   path,
		op:     op,
		limits: limits.Normalized(),
		dryRun: opts.DryRun,
	}
}

// Apply runs the transaction to completion:
//
//  1. Confirm the original exists and capture its identity
//  2. Create the backup sibling (verbatim copy, exclusive-create)
//  3. Build the draft sibling
//  4. Verify the draft; any gating failure aborts
//  5. Commit: replace the original with the draft
//  6. Delete the backup, only once the commit is confirmed
//  7. Remove leftover draft state
//
// The context is checked once before the sequence starts; there is no
// mid-transaction cancellation.
//
// Failures before step 5 leave the original untouched and clean up the
// siblings best-effort. Failures at or after step 5 return
// ErrKindCommitUncertain and deliberately retain the backup.
func (m *Manager) Apply(ctx context.Context) (*types.Result, *verify.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	// Step 1: original present, regular, identified.
	st, err := os.Stat(m.path)
	if err != nil {
		kind := types.ErrKindIO
		if errors.Is(err, fs.ErrNotExist) {
			kind = types.ErrKindNotFound
		}
		return nil, nil, &types.Error{Kind: kind, Op: m.op.Kind(), Offset: -1, Err: err}
	}
	if !st.Mode().IsRegular() {
		return nil, nil, &types.Error{Kind: types.ErrKindState, Op: m.op.Kind(), Offset: -1,
			Detail: diag.Detail("target is not a regular file")}
	}
	identity, err := fingerprint.Identify(m.path, m.limits)
	if err != nil {
		return nil, nil, m.tagged(err)
	}
	if err := m.op.Validate(identity.Length); err != nil {
		return nil, nil, err
	}

	// Step 2: backup before any mutation attempt.
	backupPath := BackupPath(m.path)
	if err := m.createBackup(backupPath, identity.Length); err != nil {
		return nil, nil, err
	}
	if err := m.crash("backup"); err != nil {
		return nil, nil, err
	}

	// Step 3: draft.
	builder := draft.NewBuilder(m.path, m.op, m.limits)
	written, err := builder.Build()
	if err != nil {
		removeBestEffort(backupPath)
		return nil, nil, err
	}
	if err := m.crash("draft"); err != nil {
		return nil, nil, err
	}

	// Step 4: verification gates the commit.
	rep, err := verify.Run(m.path, builder.Path(), m.op, m.limits)
	if err != nil {
		removeBestEffort(builder.Path())
		removeBestEffort(backupPath)
		return nil, nil, m.tagged(err)
	}
	if !rep.Ok() {
		removeBestEffort(builder.Path())
		removeBestEffort(backupPath)
		return nil, rep, &types.Error{Kind: types.ErrKindVerification, Op: m.op.Kind(), Offset: m.op.Position()}
	}

	res := &types.Result{BytesProcessed: written, Op: m.op.Kind()}

	if m.dryRun {
		removeBestEffort(builder.Path())
		removeBestEffort(backupPath)
		return res, rep, nil
	}
	if err := m.crash("verify"); err != nil {
		return nil, nil, err
	}

	// Step 5: commit. From here on the backup is retained on failure.
	if err := m.commit(builder.Path()); err != nil {
		return nil, rep, &types.Error{Kind: types.ErrKindCommitUncertain, Op: m.op.Kind(), Offset: -1, Err: err}
	}

	// Step 6: backup removal, only after confirmed commit. A failure here
	// is non-fatal; the backup is merely left behind.
	removeBestEffort(backupPath)

	// Step 7: leftover draft state. The rename consumed the draft, so this
	// only matters after a copy-then-delete fallback that lost the race.
	removeBestEffort(builder.Path())

	return res, rep, nil
}

// createBackup makes a verbatim, durable copy of the original at
// backupPath via exclusive-create. A stale leftover backup is a refusal.
func (m *Manager) createBackup(backupPath string, length int64) error {
	src, err := os.Open(m.path)
	if err != nil {
		return &types.Error{Kind: types.ErrKindIO, Op: m.op.Kind(), Offset: -1, Err: err}
	}
	defer src.Close()

	dst, err := os.OpenFile(backupPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return &types.Error{Kind: types.ErrKindState, Op: m.op.Kind(), Offset: -1,
				Detail: diag.Detail("stale backup sibling already exists")}
		}
		return &types.Error{Kind: types.ErrKindIO, Op: m.op.Kind(), Offset: -1, Err: err}
	}

	if _, err := transfer.NewCopier(m.limits.BufferSize).CopyN(dst, src, length); err != nil {
		dst.Close()
		removeBestEffort(backupPath)
		return m.tagged(err)
	}
	if err := fsync.File(dst); err != nil {
		dst.Close()
		removeBestEffort(backupPath)
		return &types.Error{Kind: types.ErrKindIO, Op: m.op.Kind(), Offset: -1, Err: err}
	}
	if err := dst.Close(); err != nil {
		removeBestEffort(backupPath)
		return &types.Error{Kind: types.ErrKindIO, Op: m.op.Kind(), Offset: -1, Err: err}
	}
	return nil
}

// commit replaces the original with the verified draft. Rename first: the
// draft is a sibling in the same directory, so where the platform supports
// it at all the rename is atomic. Platforms or filesystems where the rename
// fails fall back to copy-then-delete, which is NOT atomic; callers get
// ErrKindCommitUncertain (with the backup retained) if even that fails.
func (m *Manager) commit(draftPath string) error {
	if err := m.crash("commit"); err != nil {
		return err
	}
	if err := os.Rename(draftPath, m.path); err == nil {
		return fsync.Dir(filepath.Dir(m.path))
	}

	// Fallback: stream the draft over the original, then drop the draft.
	src, err := os.Open(draftPath)
	if err != nil {
		return err
	}
	defer src.Close()
	st, err := src.Stat()
	if err != nil {
		return err
	}
	dst, err := os.OpenFile(m.path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return err
	}
	if _, err := transfer.NewCopier(m.limits.BufferSize).CopyN(dst, src, st.Size()); err != nil {
		dst.Close()
		return err
	}
	if err := fsync.File(dst); err != nil {
		dst.Close()
		return err
	}
	if err := dst.Close(); err != nil {
		return err
	}
	return os.Remove(draftPath)
}

// tagged stamps the operation kind onto typed errors raised by layers that
// have no operation context.
func (m *Manager) tagged(err error) error {
	var te *types.Error
	if errors.As(err, &te) && te.Op == types.OpUnknown {
		te.Op = m.op.Kind()
	}
	return err
}

func (m *Manager) crash(step string) error {
	if m.failpoint == nil {
		return nil
	}
	return m.failpoint(step)
}

// removeBestEffort cleans up a sibling; failure to clean up is never
// escalated over the error that caused the cleanup.
func removeBestEffort(path string) {
	_ = os.Remove(path)
}

// Stale reports leftover draft/backup siblings for path, without touching
// them. Their presence signals an interrupted prior transaction; removal is
// deliberately left to the operator or a dedicated recovery tool.
func Stale(path string) ([]string, error) {
	var stale []string
	for _, p := range []string{draft.Path(path), BackupPath(path)} {
		if _, err := os.Lstat(p); err == nil {
			stale = append(stale, p)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, &types.Error{Kind: types.ErrKindIO, Offset: -1, Err: err}
		}
	}
	return stale, nil
}
