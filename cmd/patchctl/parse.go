package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/patchkit/pkg/patch"
	"github.com/joshuapare/patchkit/pkg/types"
)

// parsePosition parses a zero-based byte offset (decimal or 0x-prefixed hex).
func parsePosition(s string) (int64, error) {
	pos, err := strconv.ParseInt(strings.TrimSpace(s), 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid position %q: %w", s, err)
	}
	if pos < 0 {
		return 0, fmt.Errorf("invalid position %q: must be non-negative", s)
	}
	return pos, nil
}

// parseByteValue parses a single byte value (decimal or 0x-prefixed hex,
// range 0-255).
func parseByteValue(s string) (byte, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid byte value %q: want 0-255 or 0x00-0xFF: %w", s, err)
	}
	return byte(v), nil
}

// operationOptions builds OperationOptions from the mutating commands'
// shared flags.
func operationOptions(bufferSize int, dryRun bool) *patch.OperationOptions {
	limits := types.DefaultLimits()
	if bufferSize > 0 {
		limits.BufferSize = bufferSize
	}
	return &patch.OperationOptions{Limits: &limits, DryRun: dryRun}
}
