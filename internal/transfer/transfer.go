// Package transfer implements the bucket brigade: bounded byte-range copies
// between streams using one fixed-size buffer. Every loop is capped at a
// size-derived iteration bound, so a misbehaving source produces a typed
// limit error rather than an infinite loop.
package transfer

import (
	"errors"
	"io"

	"github.com/joshuapare/patchkit/internal/diag"
	"github.com/joshuapare/patchkit/pkg/types"
)

// Copier copies byte ranges with a single reusable buffer. The buffer is
// allocated once and never resized; each chunk is fully written before the
// next read. A Copier is not safe for concurrent use.
type Copier struct {
	buf []byte
}

// NewCopier returns a Copier with a buffer of the given size. Sizes outside
// [1, types.MaxBufferSize] fall back to the default.
func NewCopier(size int) *Copier {
	if size <= 0 || size > types.MaxBufferSize {
		size = types.DefaultBufferSize
	}
	return &Copier{buf: make([]byte, size)}
}

// BufferSize returns the fixed chunk size in bytes.
func (c *Copier) BufferSize() int { return len(c.buf) }

// CopyN copies exactly n bytes from src to dst.
//
// It fails with ErrKindRange if src ends before n bytes were read, with
// ErrKindIO on any read/write error or short write (not retried), and with
// ErrKindLimit if the iteration cap derived from n is exceeded. The number
// of bytes written to dst is returned in every case.
func (c *Copier) CopyN(dst io.Writer, src io.Reader, n int64) (int64, error) {
	if n < 0 {
		return 0, &types.Error{Kind: types.ErrKindRange, Offset: n,
			Detail: diag.Detail("negative range length %d", n)}
	}
	maxIter := types.MaxChunks(n, len(c.buf))
	var copied, iter int64
	for copied < n {
		if iter >= maxIter {
			return copied, &types.Error{Kind: types.ErrKindLimit, Offset: copied,
				Detail: diag.Detail("chunk cap %d exceeded copying %d bytes", maxIter, n)}
		}
		iter++

		want := n - copied
		if want > int64(len(c.buf)) {
			want = int64(len(c.buf))
		}
		rn, rerr := src.Read(c.buf[:want])
		if rn > 0 {
			wn, werr := dst.Write(c.buf[:rn])
			copied += int64(wn)
			if werr != nil {
				return copied, &types.Error{Kind: types.ErrKindIO, Offset: copied, Err: werr}
			}
			if wn != rn {
				return copied, &types.Error{Kind: types.ErrKindIO, Offset: copied, Err: io.ErrShortWrite}
			}
		}
		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				return copied, &types.Error{Kind: types.ErrKindRange, Offset: copied,
					Detail: diag.Detail("source ended after %d of %d bytes", copied, n)}
			}
			return copied, &types.Error{Kind: types.ErrKindIO, Offset: copied, Err: rerr}
		}
	}
	return copied, nil
}

// CopyToEOF copies from src to dst until EOF. The caller supplies the
// expected remaining size; the iteration cap is derived from it, so a source
// that keeps producing past the expectation fails with ErrKindLimit.
func (c *Copier) CopyToEOF(dst io.Writer, src io.Reader, expect int64) (int64, error) {
	maxIter := types.MaxChunks(expect, len(c.buf))
	var copied, iter int64
	for {
		if iter >= maxIter {
			return copied, &types.Error{Kind: types.ErrKindLimit, Offset: copied,
				Detail: diag.Detail("chunk cap %d exceeded copying to EOF (expected %d bytes)", maxIter, expect)}
		}
		iter++

		rn, rerr := src.Read(c.buf)
		if rn > 0 {
			wn, werr := dst.Write(c.buf[:rn])
			copied += int64(wn)
			if werr != nil {
				return copied, &types.Error{Kind: types.ErrKindIO, Offset: copied, Err: werr}
			}
			if wn != rn {
				return copied, &types.Error{Kind: types.ErrKindIO, Offset: copied, Err: io.ErrShortWrite}
			}
		}
		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				return copied, nil
			}
			return copied, &types.Error{Kind: types.ErrKindIO, Offset: copied, Err: rerr}
		}
	}
}
