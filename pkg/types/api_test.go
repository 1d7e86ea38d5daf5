package types

import (
	"errors"
	"fmt"
	"testing"
)

func TestEditOpValidate(t *testing.T) {
	tests := []struct {
		name    string
		op      EditOp
		origLen int64
		wantErr bool
	}{
		{"set within", SetByte{Pos: 2, Value: 'x'}, 3, false},
		{"set at length", SetByte{Pos: 3, Value: 'x'}, 3, true},
		{"set negative", SetByte{Pos: -1, Value: 'x'}, 3, true},
		{"set on empty", SetByte{Pos: 0, Value: 'x'}, 0, true},
		{"remove within", RemoveByte{Pos: 0}, 1, false},
		{"remove at length", RemoveByte{Pos: 1}, 1, true},
		{"remove on empty", RemoveByte{Pos: 0}, 0, true},
		{"insert within", InsertByte{Pos: 1, Value: 'x'}, 3, false},
		{"insert append", InsertByte{Pos: 3, Value: 'x'}, 3, false},
		{"insert past end", InsertByte{Pos: 4, Value: 'x'}, 3, true},
		{"insert on empty", InsertByte{Pos: 0, Value: 'x'}, 0, false},
		{"insert negative", InsertByte{Pos: -1, Value: 'x'}, 3, true},
	}
	for _, tt := range tests {
		err := tt.op.Validate(tt.origLen)
		if tt.wantErr {
			if !errors.Is(err, ErrRange) {
				t.Errorf("%s: expected range error, got %v", tt.name, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
		}
	}
}

func TestEditOpLengthDelta(t *testing.T) {
	if d := (SetByte{}).LengthDelta(); d != 0 {
		t.Errorf("set delta = %d, want 0", d)
	}
	if d := (RemoveByte{}).LengthDelta(); d != -1 {
		t.Errorf("remove delta = %d, want -1", d)
	}
	if d := (InsertByte{}).LengthDelta(); d != 1 {
		t.Errorf("insert delta = %d, want 1", d)
	}
}

func TestErrorIs_MatchesSentinelByKind(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &Error{Kind: ErrKindVerification, Op: OpSet, Offset: 7})
	if !errors.Is(err, ErrVerification) {
		t.Fatal("expected errors.Is match against ErrVerification")
	}
	if errors.Is(err, ErrIO) {
		t.Fatal("kind mismatch must not match")
	}
}

func TestErrorIs_UnwrapsCause(t *testing.T) {
	cause := errors.New("disk on fire")
	err := &Error{Kind: ErrKindIO, Offset: -1, Err: cause}
	if !errors.Is(err, cause) {
		t.Fatal("expected errors.Is to reach the underlying cause")
	}
}

func TestErrorString(t *testing.T) {
	e := &Error{Kind: ErrKindRange, Op: OpRemove, Offset: 12}
	got := e.Error()
	want := "range exceeded (op=remove, offset=12)"
	if got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}
