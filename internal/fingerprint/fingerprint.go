// Package fingerprint computes streamed equality proofs over byte ranges.
//
// The digest mixes each byte's value with its absolute offset (rotate, XOR,
// add), so equal ranges produce equal sums while transposed bytes do not.
// It is an integrity check for the verification protocol, not a
// cryptographic hash. Ranges are never held in memory: the digest consumes
// fixed-size chunks through the bucket brigade.
package fingerprint

import (
	"errors"
	"io/fs"
	"math/bits"
	"os"

	"github.com/joshuapare/patchkit/internal/transfer"
	"github.com/joshuapare/patchkit/pkg/types"
)

// Digest is a position-mixing checksum. The zero value is ready to use.
// Digest implements io.Writer so it can sit on the receiving end of a
// bucket-brigade copy.
type Digest struct {
	sum uint64
	n   int64
}

// Write folds p into the digest. It never fails.
func (d *Digest) Write(p []byte) (int, error) {
	sum, n := d.sum, d.n
	for _, b := range p {
		sum ^= bits.RotateLeft64(uint64(b), int(n%64))
		sum += uint64(b)
		n++
	}
	d.sum, d.n = sum, n
	return len(p), nil
}

// Sum64 returns the current checksum value.
func (d *Digest) Sum64() uint64 { return d.sum }

// Size returns the number of bytes consumed so far.
func (d *Digest) Size() int64 { return d.n }

// Reset returns the digest to its initial state.
func (d *Digest) Reset() { d.sum, d.n = 0, 0 }

// Identify captures a FileIdentity for path by streaming the whole file
// through a Digest with a bounded buffer.
func Identify(path string, limits types.Limits) (types.FileIdentity, error) {
	limits = limits.Normalized()

	f, err := os.Open(path)
	if err != nil {
		kind := types.ErrKindIO
		if errors.Is(err, fs.ErrNotExist) {
			kind = types.ErrKindNotFound
		}
		return types.FileIdentity{}, &types.Error{Kind: kind, Offset: -1, Err: err}
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return types.FileIdentity{}, &types.Error{Kind: types.ErrKindIO, Offset: -1, Err: err}
	}
	if st.Size() > limits.MaxFileSize {
		return types.FileIdentity{}, &types.Error{Kind: types.ErrKindLimit, Offset: st.Size()}
	}

	var d Digest
	n, err := transfer.NewCopier(limits.BufferSize).CopyToEOF(&d, f, st.Size())
	if err != nil {
		return types.FileIdentity{}, err
	}
	return types.FileIdentity{Path: path, Length: n, Fingerprint: d.Sum64()}, nil
}
