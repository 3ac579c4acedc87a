package lawk_test

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/kolkov/lawk"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "success"},
		{lawk.ErrFieldOutOfRange, "fields is too small"},
		{lawk.ErrLineOutOfRange, "line is too small"},
		{lawk.ErrOpenFailed, "open file failed"},
		{lawk.ErrPatternCompileError, "pattern compile failed"},
		{lawk.ErrReadFailed, "read failed"},
		{errors.New("other"), "unknown failed"},
		{&lawk.Error{Kind: lawk.OpenFailed, Path: "/x", Err: io.ErrUnexpectedEOF}, "open file failed"},
		{fmt.Errorf("wrapped: %w", lawk.ErrLineOutOfRange), "line is too small"},
	}

	for _, tt := range tests {
		if got := lawk.ErrorMessage(tt.err); got != tt.want {
			t.Errorf("ErrorMessage(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestErrorKindOutOfRange(t *testing.T) {
	if got := lawk.ErrorKind(99).Message(); got != "unknown failed" {
		t.Errorf("Message() = %q", got)
	}
	if got := lawk.ErrorKind(-3).String(); got != "Unknown" {
		t.Errorf("String() = %q", got)
	}
	if got := lawk.FieldOutOfRange.String(); got != "FieldOutOfRange" {
		t.Errorf("String() = %q", got)
	}
}

func TestErrorString(t *testing.T) {
	tests := []struct {
		err  *lawk.Error
		want string
	}{
		{&lawk.Error{Kind: lawk.FieldOutOfRange}, "fields is too small"},
		{&lawk.Error{Kind: lawk.FieldOutOfRange, Path: "in.txt", Line: 4}, "in.txt:4: fields is too small"},
		{&lawk.Error{Kind: lawk.OpenFailed, Path: "in.txt", Err: io.ErrUnexpectedEOF}, "in.txt: open file failed: unexpected EOF"},
		{&lawk.Error{Kind: lawk.LineOutOfRange, Line: 7}, "line 7: line is too small"},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestErrorIs(t *testing.T) {
	err := &lawk.Error{Kind: lawk.LineOutOfRange, Path: "a", Line: 3}
	if !errors.Is(err, lawk.ErrLineOutOfRange) {
		t.Error("expected match on kind")
	}
	if errors.Is(err, lawk.ErrFieldOutOfRange) {
		t.Error("unexpected match on other kind")
	}
	if lawk.KindOf(err) != lawk.LineOutOfRange {
		t.Errorf("KindOf = %v", lawk.KindOf(err))
	}
}

// failingReader yields one line, then a hard error.
type failingReader struct {
	sent bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	if !r.sent {
		r.sent = true
		return copy(p, "first\n"), nil
	}
	return 0, errors.New("device gone")
}

func TestReadFailed(t *testing.T) {
	rec := newRecorder()
	err := lawk.RunReader(&failingReader{}, rec, nil)

	if lawk.KindOf(err) != lawk.ReadFailed {
		t.Fatalf("kind = %v, want ReadFailed (err %v)", lawk.KindOf(err), err)
	}
	if !strings.Contains(err.Error(), "device gone") {
		t.Errorf("err = %v, want cause in message", err)
	}
	if len(rec.rows) != 1 || rec.ends != 0 {
		t.Errorf("actions=%d ends=%d, want 1/0", len(rec.rows), rec.ends)
	}
}
