package record

import (
	"errors"
	"strings"
	"testing"

	"github.com/kolkov/lawk/internal/runtime"
)

// split loads line into a fresh buffer and splits it by delims.
func split(t *testing.T, b *Buffer, line, delims string) Fields {
	t.Helper()
	if err := b.Load([]byte(line)); err != nil {
		t.Fatalf("Load(%q): %v", line, err)
	}
	if err := b.Split(runtime.NewByteSet(delims)); err != nil {
		t.Fatalf("Split(%q, %q): %v", line, delims, err)
	}
	return b.Fields()
}

func mustNew(t *testing.T, lineSize, maxFields int, keepLine bool) *Buffer {
	t.Helper()
	b, err := New(lineSize, maxFields, keepLine)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return b
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		delims string
		want   []string
	}{
		{"simple", "a:b:c", ":", []string{"a", "b", "c"}},
		{"no delimiter present", "abc", ":", []string{"abc"}},
		{"empty line", "", ":", []string{""}},
		{"adjacent delimiters", "a::b", ":", []string{"a", "", "b"}},
		{"leading delimiter", ":a", ":", []string{"", "a"}},
		{"trailing delimiter", "a:", ":", []string{"a", ""}},
		{"only delimiter", ":", ":", []string{"", ""}},
		{"several delimiters", "a,b;c d", ",; ", []string{"a", "b", "c", "d"}},
		{"passwd", "root:x:0:0:root:/root:/bin/bash", ":",
			[]string{"root", "x", "0", "0", "root", "/root", "/bin/bash"}},
		{"tab", "k\tv", "\t", []string{"k", "v"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustNew(t, 512, 10, false)
			f := split(t, b, tt.line, tt.delims)
			got := f.Strings()
			if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
				t.Errorf("fields = %q, want %q", got, tt.want)
			}
			if f.Len() != len(tt.want) {
				t.Errorf("Len() = %d, want %d", f.Len(), len(tt.want))
			}
		})
	}
}

func TestSplitRejoin(t *testing.T) {
	lines := []string{"a:b:c", "x", "", "::", "one:two::four:"}
	for _, line := range lines {
		b := mustNew(t, 512, 10, false)
		f := split(t, b, line, ":")
		if got := strings.Join(f.Strings(), ":"); got != line {
			t.Errorf("rejoin(%q) = %q", line, got)
		}
	}
}

func TestKeepLine(t *testing.T) {
	b := mustNew(t, 512, 10, true)
	f := split(t, b, "a:b:c", ":")
	want := []string{"a:b:c", "a", "b", "c"}
	if got := f.Strings(); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("fields = %q, want %q", got, want)
	}
	if f.Len() != 4 {
		t.Errorf("Len() = %d, want 4", f.Len())
	}
}

func TestKeepLineBufferLayout(t *testing.T) {
	b := mustNew(t, 8, 4, true)
	if len(b.buf) != 2*8+2 {
		t.Errorf("buffer = %d bytes, want %d", len(b.buf), 2*8+2)
	}
	f := split(t, b, "1234567", ",")
	if f.String(0) != "1234567" || f.String(1) != "1234567" {
		t.Errorf("fields = %q", f.Strings())
	}
}

func TestNoSplit(t *testing.T) {
	for _, keep := range []bool{false, true} {
		b := mustNew(t, 512, 10, keep)
		f := split(t, b, "a:b:c", "")
		if f.Len() != 1 || f.String(0) != "a:b:c" {
			t.Errorf("keepLine=%v: fields = %q", keep, f.Strings())
		}
	}
}

func TestSlotsPastCountAreEmpty(t *testing.T) {
	b := mustNew(t, 512, 10, false)
	split(t, b, "a:b:c:d:e", ":")
	f := split(t, b, "x:y", ":")

	if f.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", f.Len())
	}
	for i := 2; i < 12; i++ {
		if f.String(i) != "" || f.Bytes(i) != nil {
			t.Errorf("slot %d = %q, want empty", i, f.String(i))
		}
	}
	if f.String(-1) != "" {
		t.Error("negative slot should be empty")
	}
	for i := range b.slots[2:] {
		if b.slots[2+i] != nil {
			t.Errorf("table slot %d not reset", 2+i)
		}
	}
}

func TestViewsAreCapped(t *testing.T) {
	b := mustNew(t, 512, 10, false)
	f := split(t, b, "ab:cd", ":")
	first := f.Bytes(0)
	if cap(first) != len(first) {
		t.Errorf("cap = %d, len = %d", cap(first), len(first))
	}
	if b.buf[2] != 0 {
		t.Errorf("delimiter byte = %q, want NUL", b.buf[2])
	}
}

func TestFieldOutOfRange(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		maxFields int
		keepLine  bool
	}{
		{"too many fields", "a:b:c:d", 3, false},
		{"trailing empty field overflows", "a:b:", 2, false},
		{"keep line uses slot zero", "a:b", 2, true},
		{"keep line single slot", "a", 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustNew(t, 512, tt.maxFields, tt.keepLine)
			if err := b.Load([]byte(tt.line)); err != nil {
				t.Fatalf("Load: %v", err)
			}
			err := b.Split(runtime.NewByteSet(":"))
			if !errors.Is(err, ErrFieldOutOfRange) {
				t.Errorf("Split err = %v, want ErrFieldOutOfRange", err)
			}
		})
	}
}

func TestExactFieldCapacity(t *testing.T) {
	b := mustNew(t, 512, 3, false)
	f := split(t, b, "a:b:c", ":")
	if f.Len() != 3 {
		t.Errorf("Len() = %d, want 3", f.Len())
	}
}

func TestLineOutOfRange(t *testing.T) {
	b := mustNew(t, 8, 10, false)
	if err := b.Load([]byte("1234567")); err != nil {
		t.Errorf("Load of 7 bytes into size 8: %v", err)
	}
	if err := b.Load([]byte("12345678")); !errors.Is(err, ErrLineOutOfRange) {
		t.Errorf("Load of 8 bytes err = %v, want ErrLineOutOfRange", err)
	}
	if b.Fits(8) || !b.Fits(7) {
		t.Error("Fits boundary is wrong")
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := New(512, 0, false); !errors.Is(err, ErrFieldOutOfRange) {
		t.Errorf("New with 0 fields err = %v", err)
	}
	if _, err := New(0, 10, false); !errors.Is(err, ErrLineOutOfRange) {
		t.Errorf("New with 0 line size err = %v", err)
	}
	b := mustNew(t, 64, 5, false)
	if b.Size() != 64 || b.Cap() != 5 {
		t.Errorf("Size/Cap = %d/%d", b.Size(), b.Cap())
	}
}

func TestZeroFields(t *testing.T) {
	var f Fields
	if f.Len() != 0 || f.String(0) != "" || len(f.Strings()) != 0 {
		t.Error("zero Fields should be empty")
	}
}

func BenchmarkSplit(b *testing.B) {
	buf, _ := New(512, 10, true)
	delims := runtime.NewByteSet(":")
	line := []byte("daemon:x:1:1:daemon:/usr/sbin:/usr/sbin/nologin")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Load(line)
		buf.Split(delims)
	}
}
