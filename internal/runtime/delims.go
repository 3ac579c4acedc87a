package runtime

// ByteSet is a delimiter set: any member byte separates fields.
// Uses a 256-entry lookup table so a membership test is one load.
// Membership is per byte; a multi-byte UTF-8 character contributes each
// of its bytes.
type ByteSet struct {
	membership [256]bool
	chars      string
}

// NewByteSet builds the set of bytes in chars.
// An empty chars gives an empty set, which callers treat as "do not split".
func NewByteSet(chars string) *ByteSet {
	s := &ByteSet{chars: chars}
	for i := 0; i < len(chars); i++ {
		s.membership[chars[i]] = true
	}
	return s
}

// Contains reports whether b is a delimiter.
func (s *ByteSet) Contains(b byte) bool {
	return s.membership[b]
}

// Empty reports whether the set has no members.
func (s *ByteSet) Empty() bool {
	return s.chars == ""
}

// String returns the delimiter string the set was built from.
func (s *ByteSet) String() string {
	return s.chars
}
