package patch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/patchkit/pkg/types"
)

func writeFixture(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.bin")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func readAll(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

var smallOpts = &OperationOptions{Limits: &types.Limits{BufferSize: 2}}

// TestSetByte_RoundTrip: overwriting a byte and then restoring the old value
// reproduces the original file exactly.
func TestSetByte_RoundTrip(t *testing.T) {
	data := []byte("the quick brown fox")
	id0 := identityOf(t, data)

	for _, pos := range []int64{0, 4, int64(len(data)) - 1} {
		path := writeFixture(t, data)

		_, err := SetByte(path, pos, 0xEE, smallOpts)
		require.NoError(t, err)
		require.NotEqual(t, data, readAll(t, path))

		_, err = SetByte(path, pos, data[pos], smallOpts)
		require.NoError(t, err)
		require.Equal(t, data, readAll(t, path))

		id, err := Identify(path, nil)
		require.NoError(t, err)
		require.Equal(t, id0.Fingerprint, id.Fingerprint)
	}
}

// TestSetByte_SameValueNoChange: writing a byte over itself succeeds and
// leaves the content identical.
func TestSetByte_SameValueNoChange(t *testing.T) {
	data := []byte("ABC")
	path := writeFixture(t, data)

	_, err := SetByte(path, 1, 'B', smallOpts)
	require.NoError(t, err)
	require.Equal(t, data, readAll(t, path))
}

// TestInsertRemove_Inverse: inserting a byte and removing it at the same
// position is the identity, at every position including append.
func TestInsertRemove_Inverse(t *testing.T) {
	data := []byte("ABCDE")
	for pos := int64(0); pos <= int64(len(data)); pos++ {
		path := writeFixture(t, data)

		_, err := InsertByte(path, pos, 0x5A, smallOpts)
		require.NoError(t, err)
		require.Len(t, readAll(t, path), len(data)+1)

		_, err = RemoveByte(path, pos, smallOpts)
		require.NoError(t, err)
		require.Equal(t, data, readAll(t, path))
	}
}

// TestLengthLaw: each operation changes the length by exactly its delta.
func TestLengthLaw(t *testing.T) {
	data := []byte("ABCD")

	path := writeFixture(t, data)
	_, err := SetByte(path, 2, 'x', smallOpts)
	require.NoError(t, err)
	require.Len(t, readAll(t, path), len(data))

	path = writeFixture(t, data)
	_, err = RemoveByte(path, 2, smallOpts)
	require.NoError(t, err)
	require.Len(t, readAll(t, path), len(data)-1)

	path = writeFixture(t, data)
	_, err = InsertByte(path, 2, 'x', smallOpts)
	require.NoError(t, err)
	require.Len(t, readAll(t, path), len(data)+1)
}

// TestEmptyFile: on a zero-length file only insert at 0 is legal.
func TestEmptyFile(t *testing.T) {
	path := writeFixture(t, nil)

	_, err := SetByte(path, 0, 'x', smallOpts)
	require.ErrorIs(t, err, types.ErrRange)
	_, err = RemoveByte(path, 0, smallOpts)
	require.ErrorIs(t, err, types.ErrRange)

	_, err = InsertByte(path, 0, 'A', smallOpts)
	require.NoError(t, err)
	require.Equal(t, []byte("A"), readAll(t, path))
}

// TestAppend: insert at the current length grows the file at the end.
func TestAppend(t *testing.T) {
	path := writeFixture(t, []byte("AB"))
	_, err := InsertByte(path, 2, 'C', smallOpts)
	require.NoError(t, err)
	require.Equal(t, []byte("ABC"), readAll(t, path))
}

// TestDryRun verifies without mutating.
func TestDryRun(t *testing.T) {
	data := []byte("ABC")
	path := writeFixture(t, data)

	res, err := RemoveByte(path, 1, &OperationOptions{DryRun: true})
	require.NoError(t, err)
	require.Equal(t, int64(2), res.BytesProcessed)
	require.Equal(t, data, readAll(t, path))

	stale, err := Stale(path)
	require.NoError(t, err)
	require.Empty(t, stale)
}

// TestNilOptions uses defaults throughout.
func TestNilOptions(t *testing.T) {
	path := writeFixture(t, []byte("ABC"))
	res, err := SetByte(path, 0, 'a', nil)
	require.NoError(t, err)
	require.Equal(t, types.OpSet, res.Op)
	require.Equal(t, []byte("aBC"), readAll(t, path))
}

// TestApply_OpVariants drives Apply with the re-exported operation and
// limits types, chaining the three edits on one file.
func TestApply_OpVariants(t *testing.T) {
	path := writeFixture(t, []byte("ABC"))
	limits := Limits{BufferSize: 2}
	opts := &OperationOptions{Limits: &limits}

	_, err := Apply(path, RemoveByteOp{Pos: 1}, opts)
	require.NoError(t, err)
	_, err = Apply(path, InsertByteOp{Pos: 1, Value: 'Z'}, opts)
	require.NoError(t, err)
	_, err = Apply(path, SetByteOp{Pos: 0, Value: 'a'}, opts)
	require.NoError(t, err)

	require.Equal(t, []byte("aZC"), readAll(t, path))
}

// TestLargerThanBuffer exercises multi-chunk copies on both sides of the
// edit position.
func TestLargerThanBuffer(t *testing.T) {
	data := make([]byte, 1000)
	for i := range data {
		data[i] = byte(i % 251)
	}
	path := writeFixture(t, data)

	pos := int64(437)
	_, err := RemoveByte(path, pos, &OperationOptions{Limits: &types.Limits{BufferSize: 64}})
	require.NoError(t, err)

	got := readAll(t, path)
	require.Len(t, got, len(data)-1)
	require.Equal(t, data[:pos], got[:pos])
	require.Equal(t, data[pos+1:], got[pos:])
}

func identityOf(t *testing.T, data []byte) types.FileIdentity {
	t.Helper()
	path := writeFixture(t, data)
	id, err := Identify(path, nil)
	require.NoError(t, err)
	return id
}
