package sink

import (
	"bufio"
	"io"
)

// Text writes records as lines of fields joined by OFS.
type Text struct {
	w   *bufio.Writer
	ofs string
	ors string
}

// NewText returns a text sink writing to w. Empty ofs means a single space.
func NewText(w io.Writer, ofs string) *Text {
	if ofs == "" {
		ofs = " "
	}
	return &Text{w: bufio.NewWriter(w), ofs: ofs, ors: "\n"}
}

// Write writes fields joined by OFS and terminated by a newline.
func (t *Text) Write(row int, fields []string) error {
	for i, f := range fields {
		if i > 0 {
			if _, err := t.w.WriteString(t.ofs); err != nil {
				return err
			}
		}
		if _, err := t.w.WriteString(f); err != nil {
			return err
		}
	}
	_, err := t.w.WriteString(t.ors)
	return err
}

// Close flushes buffered output. The underlying writer is not closed.
func (t *Text) Close() error {
	return t.w.Flush()
}
