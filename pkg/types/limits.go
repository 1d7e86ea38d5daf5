package types

// ============================================================================
// Safety Limits Constants
// ============================================================================
// These constants bound every loop and buffer in the pipeline. A copy loop
// that exceeds its derived chunk cap fails with ErrKindLimit instead of
// spinning; a buffer is allocated once per operation and never resized.

const (
	// DefaultBufferSize is the bucket-brigade buffer size in bytes.
	// Small and constant: each chunk is fully written before the next read.
	DefaultBufferSize = 64

	// StrictBufferSize is a minimal buffer for constrained environments.
	StrictBufferSize = 16

	// RelaxedBufferSize trades memory for throughput on large files.
	RelaxedBufferSize = 64 << 10 // 65,536 bytes

	// MaxBufferSize caps caller-supplied buffer sizes.
	MaxBufferSize = 1 << 20 // 1,048,576 bytes

	// DefaultMaxFileSize is the largest original accepted by default (2 GiB).
	DefaultMaxFileSize = 2 << 30

	// StrictMaxFileSize is a conservative cap for constrained environments.
	StrictMaxFileSize = 100 << 20 // 104,857,600 bytes

	// RelaxedMaxFileSize allows very large originals (8 GiB).
	RelaxedMaxFileSize = 8 << 30

	// chunkSlack is the headroom added to every derived chunk cap, covering
	// a final partial chunk and one extra zero-byte read at EOF.
	chunkSlack = 2
)

// Limits bounds the resources one transaction may consume.
type Limits struct {
	// BufferSize is the fixed bucket-brigade buffer size in bytes.
	// Zero selects DefaultBufferSize; values above MaxBufferSize are clamped.
	BufferSize int

	// MaxFileSize is the largest original file the transaction accepts.
	// Zero selects DefaultMaxFileSize.
	MaxFileSize int64
}

// DefaultLimits returns the standard limits: a 64-byte buffer and a 2 GiB
// file-size cap.
func DefaultLimits() Limits {
	return Limits{
		BufferSize:  DefaultBufferSize,
		MaxFileSize: DefaultMaxFileSize,
	}
}

// StrictLimits returns conservative limits for safety-critical or
// resource-constrained environments.
func StrictLimits() Limits {
	return Limits{
		BufferSize:  StrictBufferSize,
		MaxFileSize: StrictMaxFileSize,
	}
}

// RelaxedLimits returns permissive limits for bulk work on large files.
func RelaxedLimits() Limits {
	return Limits{
		BufferSize:  RelaxedBufferSize,
		MaxFileSize: RelaxedMaxFileSize,
	}
}

// Normalized returns a copy with zero fields replaced by defaults and the
// buffer size clamped to [1, MaxBufferSize].
func (l Limits) Normalized() Limits {
	if l.BufferSize <= 0 {
		l.BufferSize = DefaultBufferSize
	}
	if l.BufferSize > MaxBufferSize {
		l.BufferSize = MaxBufferSize
	}
	if l.MaxFileSize <= 0 {
		l.MaxFileSize = DefaultMaxFileSize
	}
	return l
}

// MaxChunks derives the iteration cap for a copy loop over at most size
// bytes with the given buffer size: ceil(size/bufSize) plus slack. The cap
// makes every transfer loop terminate even against a misbehaving source.
func MaxChunks(size int64, bufSize int) int64 {
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}
	if size < 0 {
		size = 0
	}
	b := int64(bufSize)
	return (size+b-1)/b + chunkSlack
}
