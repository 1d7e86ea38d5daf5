package types

import "testing"

func TestNormalized(t *testing.T) {
	tests := []struct {
		name string
		in   Limits
		want Limits
	}{
		{"zero value", Limits{}, Limits{BufferSize: DefaultBufferSize, MaxFileSize: DefaultMaxFileSize}},
		{"negative buffer", Limits{BufferSize: -1, MaxFileSize: 10}, Limits{BufferSize: DefaultBufferSize, MaxFileSize: 10}},
		{"oversize buffer clamped", Limits{BufferSize: MaxBufferSize + 1, MaxFileSize: 10}, Limits{BufferSize: MaxBufferSize, MaxFileSize: 10}},
		{"already sane", Limits{BufferSize: 16, MaxFileSize: 100}, Limits{BufferSize: 16, MaxFileSize: 100}},
	}
	for _, tt := range tests {
		if got := tt.in.Normalized(); got != tt.want {
			t.Errorf("%s: Normalized() = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestMaxChunks(t *testing.T) {
	tests := []struct {
		size    int64
		bufSize int
		want    int64
	}{
		{0, 64, 2},
		{1, 64, 3},
		{64, 64, 3},
		{65, 64, 4},
		{1000, 64, 18},
		{-5, 64, 2},
		{100, 0, (100+DefaultBufferSize-1)/DefaultBufferSize + 2},
	}
	for _, tt := range tests {
		if got := MaxChunks(tt.size, tt.bufSize); got != tt.want {
			t.Errorf("MaxChunks(%d, %d) = %d, want %d", tt.size, tt.bufSize, got, tt.want)
		}
	}
}
