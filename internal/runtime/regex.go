// Package runtime provides the line filters and the delimiter set used by lawk.
package runtime

import (
	"strings"

	"github.com/coregx/coregex"
)

// Syntax selects the regular expression dialect of a pattern.
type Syntax int

const (
	// Extended is POSIX ERE, passed to coregex as is.
	Extended Syntax = iota
	// Basic is POSIX BRE: \( \) \{ \} group and count, ( ) { } + ? | are literals.
	Basic
)

func (s Syntax) String() string {
	if s == Basic {
		return "bre"
	}
	return "ere"
}

// RegexConfig controls pattern compilation.
type RegexConfig struct {
	Syntax     Syntax
	IgnoreCase bool
}

// DefaultConfig returns the ERE, case-sensitive configuration.
func DefaultConfig() RegexConfig {
	return RegexConfig{Syntax: Extended}
}

// Regex is a compiled line filter.
// It is immutable after compilation and safe for concurrent use.
type Regex struct {
	pattern string
	expr    string // pattern as handed to coregex
	re      *coregex.Regexp
	config  RegexConfig
}

// Compile compiles an ERE pattern with default configuration.
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// CompileWithConfig compiles pattern in the dialect named by config.
// BRE patterns are rewritten to the equivalent ERE first.
func CompileWithConfig(pattern string, config RegexConfig) (*Regex, error) {
	expr := pattern
	if config.Syntax == Basic {
		expr = BasicToExtended(pattern)
	}
	if config.IgnoreCase {
		expr = "(?i)" + expr
	}

	re, err := coregex.Compile(expr)
	if err != nil {
		return nil, err
	}

	return &Regex{
		pattern: pattern,
		expr:    expr,
		re:      re,
		config:  config,
	}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return re
}

// Pattern returns the pattern as given by the caller.
func (r *Regex) Pattern() string {
	return r.pattern
}

// Expr returns the expression actually compiled.
func (r *Regex) Expr() string {
	return r.expr
}

// Match reports whether line contains a match.
func (r *Regex) Match(line []byte) bool {
	return r.re.Match(line)
}

// MatchString reports whether s contains a match.
func (r *Regex) MatchString(s string) bool {
	return r.re.MatchString(s)
}

// BasicToExtended rewrites a POSIX basic regular expression into the
// extended form accepted by coregex. GNU escapes \+ \? \| are honored.
// Back-references are passed through and rejected by the compiler.
func BasicToExtended(bre string) string {
	var sb strings.Builder
	sb.Grow(len(bre) + 8)

	// atStart is true where '*' is literal and '^' is an anchor:
	// beginning of pattern, after \( and after \|.
	atStart := true
	for i := 0; i < len(bre); i++ {
		c := bre[i]
		switch c {
		case '\\':
			if i+1 >= len(bre) {
				sb.WriteString(`\\`)
				continue
			}
			i++
			next := bre[i]
			switch next {
			case '(', ')', '{', '}', '|', '+', '?':
				sb.WriteByte(next)
				atStart = next == '(' || next == '|'
				continue
			default:
				sb.WriteByte('\\')
				sb.WriteByte(next)
			}
		case '(', ')', '{', '}', '|', '+', '?':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case '*':
			if atStart {
				sb.WriteString(`\*`)
			} else {
				sb.WriteByte('*')
			}
		case '^':
			if atStart {
				sb.WriteByte('^')
				continue // '*' right after a leading '^' is still literal
			}
			sb.WriteString(`\^`)
		case '$':
			if i == len(bre)-1 || strings.HasPrefix(bre[i+1:], `\)`) || strings.HasPrefix(bre[i+1:], `\|`) {
				sb.WriteByte('$')
			} else {
				sb.WriteString(`\$`)
			}
		case '[':
			i = copyBracket(&sb, bre, i)
		default:
			sb.WriteByte(c)
		}
		atStart = false
	}
	return sb.String()
}

// copyBracket copies the bracket expression starting at bre[i] and returns
// the index of its closing ']'. Backslash is literal inside POSIX brackets,
// so it is escaped for coregex. An unterminated bracket is copied verbatim
// and left for the compiler to reject.
func copyBracket(sb *strings.Builder, bre string, i int) int {
	j := i + 1
	if j < len(bre) && bre[j] == '^' {
		j++
	}
	if j < len(bre) && bre[j] == ']' {
		j++
	}
	for j < len(bre) && bre[j] != ']' {
		if bre[j] == '[' && j+1 < len(bre) && (bre[j+1] == ':' || bre[j+1] == '.' || bre[j+1] == '=') {
			if end := strings.Index(bre[j+2:], string(bre[j+1])+"]"); end >= 0 {
				j += end + 4
				continue
			}
		}
		j++
	}
	if j >= len(bre) {
		sb.WriteString(bre[i:])
		return len(bre) - 1
	}
	for k := i; k <= j; k++ {
		if bre[k] == '\\' {
			sb.WriteString(`\\`)
		} else {
			sb.WriteByte(bre[k])
		}
	}
	return j
}
