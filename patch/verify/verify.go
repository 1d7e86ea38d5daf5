package verify

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/joshuapare/patchkit/internal/diag"
	"github.com/joshuapare/patchkit/internal/fingerprint"
	"github.com/joshuapare/patchkit/pkg/types"
)

// Check is the outcome of one verification check. Gating checks block the
// commit on failure; advisory checks are diagnostic only.
type Check struct {
	Name   string
	Gating bool
	Pass   bool
	Detail string // debug builds only
}

// Report holds the independent outcomes of the four checks run against a
// draft. Commit requires Ok().
type Report struct {
	Length Check // draft length == original length + delta
	Pre    Check // [0, pos) identical
	At     Check // advisory: target byte old vs new
	Post   Check // remainder identical under the operation's frame shift
}

// Ok reports whether every gating check passed. The at-position check never
// gates: a same-value overwrite is legal.
func (r *Report) Ok() bool {
	return r.Length.Pass && r.Pre.Pass && r.Post.Pass
}

// Checks returns the four checks in protocol order.
func (r *Report) Checks() []Check {
	return []Check{r.Length, r.Pre, r.At, r.Post}
}

// Run checks a draft against its original for the given operation. The two
// files are streamed side by side with bounded buffers; no compared range is
// ever held in memory. Run returns an error only when the checks themselves
// could not be carried out (I/O failure); check failures are reported in
// the Report.
func Run(originalPath, draftPath string, op types.EditOp, limits types.Limits) (*Report, error) {
	limits = limits.Normalized()
	rep := &Report{
		Length: Check{Name: "length", Gating: true},
		Pre:    Check{Name: "pre-position", Gating: true},
		At:     Check{Name: "at-position"},
		Post:   Check{Name: "post-position", Gating: true},
	}

	of, origLen, err := openForCheck(originalPath)
	if err != nil {
		return nil, err
	}
	defer of.Close()
	df, draftLen, err := openForCheck(draftPath)
	if err != nil {
		return nil, err
	}
	defer df.Close()

	pos := op.Position()

	// Check 1: total byte length.
	wantLen := origLen + op.LengthDelta()
	rep.Length.Pass = draftLen == wantLen
	if !rep.Length.Pass {
		rep.Length.Detail = diag.Detail("draft %d bytes, want %d", draftLen, wantLen)
	}

	// Check 2: pre-position similarity. Trivially passes when there is
	// nothing before the position.
	if pos == 0 || origLen <= 1 {
		rep.Pre.Pass = true
	} else {
		pre := min64(pos, min64(origLen, draftLen))
		eq, detail, err := compareRanges(of, df, 0, 0, pre, limits)
		if err != nil {
			return nil, err
		}
		rep.Pre.Pass = eq && pre == pos
		rep.Pre.Detail = detail
	}

	// Check 3: at-position (advisory). Same and different values are both
	// legal for an overwrite; Insert additionally confirms the draft holds
	// the new value.
	if err := atPosition(rep, of, df, op, origLen, draftLen); err != nil {
		return nil, err
	}

	// Check 4: post-position similarity under the operation's frame shift.
	var oOff, dOff int64
	switch op.Kind() {
	case types.OpSet:
		oOff, dOff = pos+1, pos+1
	case types.OpRemove:
		oOff, dOff = pos+1, pos
	case types.OpInsert:
		oOff, dOff = pos, pos+1
	}
	oRem := origLen - oOff
	dRem := draftLen - dOff
	switch {
	case oRem != dRem:
		rep.Post.Pass = false
		rep.Post.Detail = diag.Detail("tail lengths differ: original %d, draft %d", oRem, dRem)
	case oRem <= 0:
		// Edit at the last byte: no tail to compare.
		rep.Post.Pass = true
	default:
		eq, detail, err := compareRanges(of, df, oOff, dOff, oRem, limits)
		if err != nil {
			return nil, err
		}
		rep.Post.Pass = eq
		rep.Post.Detail = detail
	}

	return rep, nil
}

func atPosition(rep *Report, of, df *os.File, op types.EditOp, origLen, draftLen int64) error {
	pos := op.Position()
	switch op := op.(type) {
	case types.SetByte:
		oldB, err := readByteAt(of, pos)
		if err != nil {
			return err
		}
		if pos >= draftLen {
			// Truncated draft: record the missing byte and leave the
			// gating length/post checks to fail the report.
			rep.At.Pass = false
			rep.At.Detail = diag.Detail("draft has no byte at %d", pos)
			return nil
		}
		newB, err := readByteAt(df, pos)
		if err != nil {
			return err
		}
		rep.At.Pass = true
		if oldB == newB {
			rep.At.Detail = diag.Detail("value unchanged (0x%02X written over itself)", newB)
		} else {
			rep.At.Detail = diag.Detail("0x%02X -> 0x%02X", oldB, newB)
		}
	case types.RemoveByte:
		oldB, err := readByteAt(of, pos)
		if err != nil {
			return err
		}
		rep.At.Pass = true
		rep.At.Detail = diag.Detail("removed 0x%02X", oldB)
	case types.InsertByte:
		if pos >= draftLen {
			rep.At.Pass = false
			rep.At.Detail = diag.Detail("draft has no byte at %d", pos)
			return nil
		}
		got, err := readByteAt(df, pos)
		if err != nil {
			return err
		}
		rep.At.Pass = got == op.Value
		if !rep.At.Pass {
			rep.At.Detail = diag.Detail("draft[%d]=0x%02X, want 0x%02X", pos, got, op.Value)
		}
	}
	return nil
}

// compareRanges streams original[oOff, oOff+n) against draft[dOff, dOff+n)
// chunk by chunk, byte-comparing and fingerprinting both sides. Returns
// whether the ranges are equal.
func compareRanges(of, df *os.File, oOff, dOff, n int64, limits types.Limits) (bool, string, error) {
	if _, err := of.Seek(oOff, io.SeekStart); err != nil {
		return false, "", &types.Error{Kind: types.ErrKindIO, Offset: oOff, Err: err}
	}
	if _, err := df.Seek(dOff, io.SeekStart); err != nil {
		return false, "", &types.Error{Kind: types.ErrKindIO, Offset: dOff, Err: err}
	}

	obuf := make([]byte, limits.BufferSize)
	dbuf := make([]byte, limits.BufferSize)
	var osum, dsum fingerprint.Digest

	maxIter := types.MaxChunks(n, limits.BufferSize)
	var done, iter int64
	for done < n {
		if iter >= maxIter {
			return false, "", &types.Error{Kind: types.ErrKindLimit, Offset: done}
		}
		iter++

		want := n - done
		if want > int64(len(obuf)) {
			want = int64(len(obuf))
		}
		on, oerr := io.ReadFull(of, obuf[:want])
		dn, derr := io.ReadFull(df, dbuf[:want])
		if oerr != nil || derr != nil {
			if truncated(oerr) || truncated(derr) {
				return false, diag.Detail("range ended early at +%d", done), nil
			}
			err := oerr
			if err == nil {
				err = derr
			}
			return false, "", &types.Error{Kind: types.ErrKindIO, Offset: done, Err: err}
		}
		_, _ = osum.Write(obuf[:on])
		_, _ = dsum.Write(dbuf[:dn])
		for i := 0; i < on; i++ {
			if obuf[i] != dbuf[i] {
				return false, diag.Detail("byte mismatch at +%d: 0x%02X vs 0x%02X", done+int64(i), obuf[i], dbuf[i]), nil
			}
		}
		done += int64(on)
	}

	if osum.Sum64() != dsum.Sum64() {
		return false, diag.Detail("fingerprint mismatch: %016X vs %016X", osum.Sum64(), dsum.Sum64()), nil
	}
	return true, "", nil
}

func truncated(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}

func readByteAt(f *os.File, pos int64) (byte, error) {
	var one [1]byte
	if _, err := f.ReadAt(one[:], pos); err != nil {
		return 0, &types.Error{Kind: types.ErrKindIO, Offset: pos, Err: err}
	}
	return one[0], nil
}

func openForCheck(path string) (*os.File, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		kind := types.ErrKindIO
		if errors.Is(err, fs.ErrNotExist) {
			kind = types.ErrKindNotFound
		}
		return nil, 0, &types.Error{Kind: kind, Offset: -1, Err: err}
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, &types.Error{Kind: types.ErrKindIO, Offset: -1, Err: err}
	}
	return f, st.Size(), nil
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
