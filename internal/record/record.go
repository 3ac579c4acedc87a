// Package record holds the line buffer and field table of a run
// and splits one record at a time into fields.
package record

import (
	"errors"

	"github.com/kolkov/lawk/internal/runtime"
)

var (
	// ErrFieldOutOfRange means a record has more fields than the table holds,
	// or the table has no slot at all.
	ErrFieldOutOfRange = errors.New("field table is too small")

	// ErrLineOutOfRange means a record does not fit the line buffer,
	// or the buffer has no room at all.
	ErrLineOutOfRange = errors.New("line buffer is too small")
)

// Fields is a borrowed view of the split record.
// Slots past Len read as empty. A view is only valid until the next record is
// loaded; use Strings to keep a copy.
type Fields struct {
	slots [][]byte
	n     int
}

// Len returns the number of populated fields.
func (f Fields) Len() int {
	return f.n
}

// Bytes returns field i without copying, or nil when i is not populated.
func (f Fields) Bytes(i int) []byte {
	if i < 0 || i >= f.n {
		return nil
	}
	return f.slots[i]
}

// String returns a copy of field i, or "" when i is not populated.
func (f Fields) String(i int) string {
	return string(f.Bytes(i))
}

// Strings copies all populated fields.
func (f Fields) Strings() []string {
	out := make([]string, f.n)
	for i := 0; i < f.n; i++ {
		out[i] = string(f.slots[i])
	}
	return out
}

// Buffer owns the record storage and field table for one run.
//
// Layout: buf[:size] is the primary region, split in place. With keepLine the
// buffer is 2*size+2 bytes and buf[size+1:] holds the unsplit copy exposed as
// field 0.
type Buffer struct {
	buf      []byte
	size     int
	length   int // bytes of the current record
	keepLine bool
	slots    [][]byte
	n        int
}

// New allocates a buffer for records shorter than lineSize bytes and a table
// of maxFields slots.
func New(lineSize, maxFields int, keepLine bool) (*Buffer, error) {
	if maxFields < 1 {
		return nil, ErrFieldOutOfRange
	}
	if lineSize < 1 {
		return nil, ErrLineOutOfRange
	}
	capacity := lineSize
	if keepLine {
		capacity = 2*lineSize + 2
	}
	return &Buffer{
		buf:      make([]byte, capacity),
		size:     lineSize,
		keepLine: keepLine,
		slots:    make([][]byte, maxFields),
	}, nil
}

// Size returns the line capacity. A record must be shorter than Size.
func (b *Buffer) Size() int {
	return b.size
}

// Cap returns the number of field slots.
func (b *Buffer) Cap() int {
	return len(b.slots)
}

// Fits reports whether a record of n bytes can be loaded.
// One byte of the region is kept for the terminator.
func (b *Buffer) Fits(n int) bool {
	return n < b.size
}

// Load copies line, newline already stripped, into the primary region and
// resets every field slot to empty.
func (b *Buffer) Load(line []byte) error {
	if !b.Fits(len(line)) {
		return ErrLineOutOfRange
	}
	b.length = copy(b.buf[:b.size], line)
	b.buf[b.length] = 0
	b.reset()
	return nil
}

func (b *Buffer) reset() {
	for i := range b.slots {
		b.slots[i] = nil
	}
	b.n = 0
}

// Split tokenizes the loaded record. With an empty delimiter set the whole
// record becomes field 0. Otherwise, when keepLine is set, field 0 is the
// unsplit record and the split fields follow it.
//
// Every delimiter byte separates two fields: adjacent delimiters produce an
// empty field between them and a trailing delimiter an empty last field.
// Delimiter bytes in the primary region are overwritten with NUL.
func (b *Buffer) Split(delims *runtime.ByteSet) error {
	line := b.buf[:b.length]
	if delims.Empty() {
		b.slots[0] = line[:len(line):len(line)]
		b.n = 1
		return nil
	}

	idx := 0
	if b.keepLine {
		whole := b.buf[b.size+1 : b.size+1+len(line)]
		copy(whole, line)
		b.buf[b.size+1+len(line)] = 0
		b.slots[0] = whole[:len(whole):len(whole)]
		idx = 1
	}

	start := 0
	found := true // next byte starts a field
	for i := 0; i < len(line); i++ {
		if found {
			if idx >= len(b.slots) {
				b.n = idx
				return ErrFieldOutOfRange
			}
			start, found = i, false
			idx++
		}
		if delims.Contains(line[i]) {
			line[i] = 0
			b.slots[idx-1] = line[start:i:i]
			found = true
		}
	}

	end := len(line)
	if found {
		if idx >= len(b.slots) {
			b.n = idx
			return ErrFieldOutOfRange
		}
		b.slots[idx] = line[end:end:end]
		idx++
	} else {
		b.slots[idx-1] = line[start:end:end]
	}
	b.n = idx
	return nil
}

// Fields returns a view of the current fields.
func (b *Buffer) Fields() Fields {
	return Fields{slots: b.slots, n: b.n}
}
