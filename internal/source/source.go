// Package source reads raw lines from a file or stream.
package source

import (
	"bufio"
	"errors"
	"io"
	"os"
	"syscall"
)

// minBufferSize matches bufio's own minimum read buffer.
const minBufferSize = 16

// ErrLineTooLong is returned by Next when a line does not fit the read buffer.
var ErrLineTooLong = errors.New("line does not fit in the read buffer")

// Source produces the lines of one input, one at a time.
// It is not safe for concurrent use.
type Source struct {
	file   *os.File // nil when wrapping a caller-owned reader
	reader *bufio.Reader
	line   int
}

// Open opens path for reading. lineSize is the longest line, excluding
// its newline, that Next must return without ErrLineTooLong.
func Open(path string, lineSize int) (*Source, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	s := New(file, lineSize)
	s.file = file
	return s, nil
}

// New wraps r. Closing the Source does not close r.
func New(r io.Reader, lineSize int) *Source {
	size := lineSize + 1 // room for the newline
	if size < minBufferSize {
		size = minBufferSize
	}
	return &Source{
		reader: bufio.NewReaderSize(retryReader{r: r}, size),
	}
}

// Next returns the next raw line, including its trailing newline when
// present. The final line without a newline is returned with a nil error;
// the call after it returns io.EOF.
// The returned slice is only valid until the next call to Next.
func (s *Source) Next() ([]byte, error) {
	line, err := s.reader.ReadSlice('\n')
	switch {
	case err == nil:
	case errors.Is(err, bufio.ErrBufferFull):
		s.line++
		return nil, ErrLineTooLong
	case errors.Is(err, io.EOF):
		if len(line) == 0 {
			return nil, io.EOF
		}
	default:
		return nil, err
	}
	s.line++
	return line, nil
}

// Line returns the 1-based number of the line last returned by Next.
func (s *Source) Line() int {
	return s.line
}

// Close releases the file opened by Open. It is safe to call more than once.
func (s *Source) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// retryReader retries reads interrupted by a signal before any byte
// was transferred. A partial read is returned as a plain success.
type retryReader struct {
	r io.Reader
}

func (rr retryReader) Read(p []byte) (int, error) {
	for {
		n, err := rr.r.Read(p)
		if errors.Is(err, syscall.EINTR) {
			if n == 0 {
				continue
			}
			return n, nil
		}
		return n, err
	}
}
