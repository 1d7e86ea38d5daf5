package types

import "fmt"

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindNotFound        ErrKind = iota // original file does not exist
	ErrKindIO                             // read/write failure; never auto-retried
	ErrKindRange                          // position out of bounds, or source shorter than requested
	ErrKindLimit                          // iteration safety cap hit (fatal)
	ErrKindVerification                   // gating check failed; draft discarded, original untouched
	ErrKindCommitUncertain                // failure at/after replace; backup deliberately retained
	ErrKindState                          // invalid state (e.g. stale leftover temp file, not a regular file)
)

// String implements the Stringer interface for ErrKind.
func (k ErrKind) String() string {
	switch k {
	case ErrKindNotFound:
		return "not found"
	case ErrKindIO:
		return "i/o failure"
	case ErrKindRange:
		return "range exceeded"
	case ErrKindLimit:
		return "limit exceeded"
	case ErrKindVerification:
		return "verification failure"
	case ErrKindCommitUncertain:
		return "commit uncertain, backup preserved"
	case ErrKindState:
		return "invalid state"
	default:
		return fmt.Sprintf("unknown error kind %d", int(k))
	}
}

// Error is a typed error with fixed-size payload fields. Production builds
// carry only the operation kind, a numeric offset, and the taxonomy kind;
// Detail is populated exclusively under the patchdebug build tag and is the
// empty string otherwise. File contents never appear in an Error.
type Error struct {
	Kind   ErrKind
	Op     OpKind // OpUnknown when the failure is below the operation layer
	Offset int64  // byte offset the failure relates to; -1 when not positional
	Detail string // rich diagnostics, debug builds only
	Err    error  // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Kind.String()
	if e.Op != OpUnknown {
		msg += " (op=" + e.Op.String()
		if e.Offset >= 0 {
			msg += fmt.Sprintf(", offset=%d", e.Offset)
		}
		msg += ")"
	} else if e.Offset >= 0 {
		msg += fmt.Sprintf(" (offset=%d)", e.Offset)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match any *Error of the same kind against the bare
// sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == OpUnknown && t.Err == nil
}

// Sentinels for errors.Is checks against the taxonomy.
var (
	ErrNotFound        = &Error{Kind: ErrKindNotFound, Offset: -1}
	ErrIO              = &Error{Kind: ErrKindIO, Offset: -1}
	ErrRange           = &Error{Kind: ErrKindRange, Offset: -1}
	ErrLimit           = &Error{Kind: ErrKindLimit, Offset: -1}
	ErrVerification    = &Error{Kind: ErrKindVerification, Offset: -1}
	ErrCommitUncertain = &Error{Kind: ErrKindCommitUncertain, Offset: -1}
	ErrState           = &Error{Kind: ErrKindState, Offset: -1}
)

// -----------------------------------------------------------------------------
// Edit Operations (tagged variants)
// -----------------------------------------------------------------------------

// OpKind identifies an edit operation variant.
type OpKind int

const (
	OpUnknown OpKind = iota // no operation context (leaf-level failures)
	OpSet                   // overwrite one byte in place
	OpRemove                // delete one byte (-1 frame shift)
	OpInsert                // insert one byte (+1 frame shift)
)

// String implements the Stringer interface for OpKind.
func (k OpKind) String() string {
	switch k {
	case OpSet:
		return "set"
	case OpRemove:
		return "remove"
	case OpInsert:
		return "insert"
	default:
		return "unknown"
	}
}

// EditOp is a single-byte edit. Each variant carries exactly its required
// fields; there is no string- or flag-based dispatch.
type EditOp interface {
	isEdit()

	// Kind reports which variant this is.
	Kind() OpKind

	// Position is the zero-based byte offset the edit applies at.
	Position() int64

	// LengthDelta is the change in file length the edit causes
	// (0 for set, -1 for remove, +1 for insert).
	LengthDelta() int64

	// Validate checks the position against the original file length.
	// Set and Remove require Position < origLen; Insert allows
	// Position == origLen (append).
	Validate(origLen int64) error
}

// SetByte overwrites the byte at Pos with Value. File length is unchanged.
type SetByte struct {
	Pos   int64
	Value byte
}

func (SetByte) isEdit()            {}
func (SetByte) Kind() OpKind       { return OpSet }
func (o SetByte) Position() int64  { return o.Pos }
func (SetByte) LengthDelta() int64 { return 0 }

func (o SetByte) Validate(origLen int64) error {
	return validateWithin(OpSet, o.Pos, origLen)
}

// RemoveByte deletes the byte at Pos. All later bytes shift back by one.
type RemoveByte struct {
	Pos int64
}

func (RemoveByte) isEdit()            {}
func (RemoveByte) Kind() OpKind       { return OpRemove }
func (o RemoveByte) Position() int64  { return o.Pos }
func (RemoveByte) LengthDelta() int64 { return -1 }

func (o RemoveByte) Validate(origLen int64) error {
	return validateWithin(OpRemove, o.Pos, origLen)
}

// InsertByte inserts Value at Pos. All bytes from Pos on shift forward by
// one; Pos equal to the original length appends.
type InsertByte struct {
	Pos   int64
	Value byte
}

func (InsertByte) isEdit()            {}
func (InsertByte) Kind() OpKind       { return OpInsert }
func (o InsertByte) Position() int64  { return o.Pos }
func (InsertByte) LengthDelta() int64 { return 1 }

func (o InsertByte) Validate(origLen int64) error {
	if o.Pos < 0 || o.Pos > origLen {
		return &Error{Kind: ErrKindRange, Op: OpInsert, Offset: o.Pos}
	}
	return nil
}

func validateWithin(op OpKind, pos, origLen int64) error {
	if pos < 0 || pos >= origLen {
		return &Error{Kind: ErrKindRange, Op: op, Offset: pos}
	}
	return nil
}

// -----------------------------------------------------------------------------
// Identities & Results
// -----------------------------------------------------------------------------

// FileIdentity describes a file by streaming over it: its path, byte length,
// and content fingerprint. A full in-memory copy is never materialized.
type FileIdentity struct {
	Path        string
	Length      int64
	Fingerprint uint64
}

// Result reports a completed (or dry-run) edit.
type Result struct {
	// BytesProcessed is the number of bytes written to the replacement file.
	BytesProcessed int64

	// Op is the operation variant that was applied.
	Op OpKind
}
