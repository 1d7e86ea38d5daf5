package transfer

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/joshuapare/patchkit/pkg/types"
)

func TestCopyN_Exact(t *testing.T) {
	src := strings.NewReader("0123456789")
	var dst bytes.Buffer

	c := NewCopier(4)
	n, err := c.CopyN(&dst, src, 10)
	if err != nil {
		t.Fatalf("CopyN: %v", err)
	}
	if n != 10 || dst.String() != "0123456789" {
		t.Fatalf("CopyN copied %d bytes, got %q", n, dst.String())
	}
}

func TestCopyN_PartialRange(t *testing.T) {
	src := strings.NewReader("0123456789")
	var dst bytes.Buffer

	n, err := NewCopier(3).CopyN(&dst, src, 7)
	if err != nil {
		t.Fatalf("CopyN: %v", err)
	}
	if n != 7 || dst.String() != "0123456" {
		t.Fatalf("CopyN copied %d bytes, got %q", n, dst.String())
	}
}

func TestCopyN_ShortSource(t *testing.T) {
	src := strings.NewReader("0123")
	var dst bytes.Buffer

	n, err := NewCopier(8).CopyN(&dst, src, 10)
	if !errors.Is(err, types.ErrRange) {
		t.Fatalf("expected range error, got %v", err)
	}
	if n != 4 {
		t.Fatalf("expected 4 bytes copied before failure, got %d", n)
	}
}

func TestCopyN_NegativeRange(t *testing.T) {
	var dst bytes.Buffer
	if _, err := NewCopier(8).CopyN(&dst, strings.NewReader("x"), -1); !errors.Is(err, types.ErrRange) {
		t.Fatalf("expected range error for negative length, got %v", err)
	}
}

// stuckReader returns (0, nil) forever; only the iteration cap stops it.
type stuckReader struct{}

func (stuckReader) Read([]byte) (int, error) { return 0, nil }

func TestCopyN_StuckSourceHitsCap(t *testing.T) {
	var dst bytes.Buffer
	_, err := NewCopier(4).CopyN(&dst, stuckReader{}, 8)
	if !errors.Is(err, types.ErrLimit) {
		t.Fatalf("expected limit error from stuck source, got %v", err)
	}
}

func TestCopyToEOF(t *testing.T) {
	src := strings.NewReader("hello world")
	var dst bytes.Buffer

	n, err := NewCopier(4).CopyToEOF(&dst, src, 11)
	if err != nil {
		t.Fatalf("CopyToEOF: %v", err)
	}
	if n != 11 || dst.String() != "hello world" {
		t.Fatalf("CopyToEOF copied %d bytes, got %q", n, dst.String())
	}
}

func TestCopyToEOF_OverlongSourceHitsCap(t *testing.T) {
	// Source far longer than the expectation the cap is derived from.
	src := strings.NewReader(strings.Repeat("a", 1024))
	var dst bytes.Buffer

	_, err := NewCopier(4).CopyToEOF(&dst, src, 8)
	if !errors.Is(err, types.ErrLimit) {
		t.Fatalf("expected limit error from overlong source, got %v", err)
	}
}

func TestNewCopier_ClampsBadSizes(t *testing.T) {
	if got := NewCopier(0).BufferSize(); got != types.DefaultBufferSize {
		t.Fatalf("zero size: buffer %d, want default %d", got, types.DefaultBufferSize)
	}
	if got := NewCopier(types.MaxBufferSize + 1).BufferSize(); got != types.DefaultBufferSize {
		t.Fatalf("oversize: buffer %d, want default %d", got, types.DefaultBufferSize)
	}
}
