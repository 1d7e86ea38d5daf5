package draft

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/joshuapare/patchkit/internal/diag"
	"github.com/joshuapare/patchkit/internal/fsync"
	"github.com/joshuapare/patchkit/internal/transfer"
	"github.com/joshuapare/patchkit/pkg/types"
)

// Suffix is appended to the original path to name the draft sibling.
// Its persistence after a crash is the signal for recovery tooling.
const Suffix = ".draft.tmp"

// Path returns the draft sibling path for an original.
func Path(original string) string { return original + Suffix }

// Phase identifies where the builder is in its pipeline.
type Phase int

const (
	PhaseInit Phase = iota
	PhaseCopyPre
	PhaseApplyAt
	PhaseCopyPost
	PhaseComplete
	PhaseFailed
)

// String implements the Stringer interface for Phase.
func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseCopyPre:
		return "copy-pre"
	case PhaseApplyAt:
		return "apply-at"
	case PhaseCopyPost:
		return "copy-post"
	case PhaseComplete:
		return "complete"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Builder constructs a draft file equivalent to "original + edit applied".
//
// One pipeline serves all three operations; they differ only in the ApplyAt
// step. Draft bytes are appended once and never rewritten. The builder is
// not safe for concurrent use and a Builder instance runs Build at most once.
type Builder struct {
	original string
	op       types.EditOp
	limits   types.Limits
	phase    Phase
	written  int64
}

// NewBuilder prepares a build of original's draft sibling for op.
func NewBuilder(original string, op types.EditOp, limits types.Limits) *Builder {
	return &Builder{original: original, op: op, limits: limits.Normalized()}
}

// Phase returns the builder's current phase.
func (b *Builder) Phase() Phase { return b.phase }

// Path returns the draft sibling path this builder writes.
func (b *Builder) Path() string { return Path(b.original) }

// Written returns the number of bytes appended to the draft so far.
func (b *Builder) Written() int64 { return b.written }

// Build runs the pipeline: open original read-only, exclusive-create the
// draft, copy [0, pos), apply the operation at pos, copy the remainder,
// flush and close. It returns the number of bytes written to the draft.
//
// On failure at any phase the partial draft is deleted, the original is
// untouched, and a typed error is returned. A pre-existing draft sibling
// (stale leftover from a prior crash) is a refusal, never an overwrite.
func (b *Builder) Build() (int64, error) {
	b.phase = PhaseInit

	src, err := os.Open(b.original)
	if err != nil {
		kind := types.ErrKindIO
		if errors.Is(err, fs.ErrNotExist) {
			kind = types.ErrKindNotFound
		}
		return 0, b.fail(nil, &types.Error{Kind: kind, Op: b.op.Kind(), Offset: -1, Err: err})
	}
	defer src.Close()

	st, err := src.Stat()
	if err != nil {
		return 0, b.fail(nil, &types.Error{Kind: types.ErrKindIO, Op: b.op.Kind(), Offset: -1, Err: err})
	}
	origLen := st.Size()
	if origLen > b.limits.MaxFileSize {
		return 0, b.fail(nil, &types.Error{Kind: types.ErrKindLimit, Op: b.op.Kind(), Offset: origLen,
			Detail: diag.Detail("original %d bytes exceeds cap %d", origLen, b.limits.MaxFileSize)})
	}
	if err := b.op.Validate(origLen); err != nil {
		return 0, b.fail(nil, err)
	}

	draft, err := os.OpenFile(b.Path(), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			// Stale leftover from a prior crash: surface it, never overwrite.
			return 0, b.fail(nil, &types.Error{Kind: types.ErrKindState, Op: b.op.Kind(), Offset: -1,
				Detail: diag.Detail("stale draft sibling already exists")})
		}
		return 0, b.fail(nil, &types.Error{Kind: types.ErrKindIO, Op: b.op.Kind(), Offset: -1, Err: err})
	}

	copier := transfer.NewCopier(b.limits.BufferSize)
	pos := b.op.Position()

	b.phase = PhaseCopyPre
	n, err := copier.CopyN(draft, src, pos)
	b.written += n
	if err != nil {
		return b.written, b.fail(draft, err)
	}

	b.phase = PhaseApplyAt
	consumed := pos
	switch op := b.op.(type) {
	case types.SetByte:
		// Write the replacement; the original byte is consumed, not copied.
		if err := b.writeValue(draft, op.Value); err != nil {
			return b.written, b.fail(draft, err)
		}
		if err := b.skipSource(src); err != nil {
			return b.written, b.fail(draft, err)
		}
		consumed++
	case types.RemoveByte:
		// The sole step across all operations that drops a source byte.
		if err := b.skipSource(src); err != nil {
			return b.written, b.fail(draft, err)
		}
		consumed++
	case types.InsertByte:
		// The pending original byte stays put; CopyPost picks it up.
		if err := b.writeValue(draft, op.Value); err != nil {
			return b.written, b.fail(draft, err)
		}
	default:
		return b.written, b.fail(draft, &types.Error{Kind: types.ErrKindState, Op: types.OpUnknown, Offset: pos})
	}

	b.phase = PhaseCopyPost
	n, err = copier.CopyToEOF(draft, src, origLen-consumed)
	b.written += n
	if err != nil {
		return b.written, b.fail(draft, err)
	}

	if err := fsync.File(draft); err != nil {
		return b.written, b.fail(draft, &types.Error{Kind: types.ErrKindIO, Op: b.op.Kind(), Offset: b.written, Err: err})
	}
	if err := draft.Close(); err != nil {
		return b.written, b.fail(nil, &types.Error{Kind: types.ErrKindIO, Op: b.op.Kind(), Offset: b.written, Err: err})
	}

	b.phase = PhaseComplete
	return b.written, nil
}

func (b *Builder) writeValue(draft *os.File, v byte) error {
	one := [1]byte{v}
	n, err := draft.Write(one[:])
	if err != nil {
		return &types.Error{Kind: types.ErrKindIO, Op: b.op.Kind(), Offset: b.written, Err: err}
	}
	if n != 1 {
		return &types.Error{Kind: types.ErrKindIO, Op: b.op.Kind(), Offset: b.written, Err: io.ErrShortWrite}
	}
	b.written++
	return nil
}

func (b *Builder) skipSource(src *os.File) error {
	var one [1]byte
	if _, err := io.ReadFull(src, one[:]); err != nil {
		kind := types.ErrKindIO
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			kind = types.ErrKindRange
		}
		return &types.Error{Kind: kind, Op: b.op.Kind(), Offset: b.op.Position(), Err: err}
	}
	return nil
}

// fail transitions to PhaseFailed, deletes the partial draft when this
// builder created one, and tags the error with the operation kind. A draft
// that pre-existed (ErrKindState) is left in place for recovery tooling.
func (b *Builder) fail(draft *os.File, err error) error {
	b.phase = PhaseFailed
	if draft != nil {
		_ = draft.Close()
		_ = os.Remove(b.Path())
	}
	var te *types.Error
	if errors.As(err, &te) && te.Op == types.OpUnknown {
		te.Op = b.op.Kind()
	}
	return err
}
