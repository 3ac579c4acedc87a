package lawk

import "github.com/kolkov/lawk/internal/runtime"

// Default capacities.
const (
	// DefaultLineSize bounds records when whole-line reservation is off.
	DefaultLineSize = 512
	// ExtendedLineSize bounds records when KeepLine is set and LineSize is not.
	ExtendedLineSize = 5120
	// DefaultMaxFields is the default field table capacity.
	DefaultMaxFields = 10
)

// Syntax selects the dialect of Config.Pattern.
type Syntax = runtime.Syntax

const (
	// Extended is POSIX extended regular expression syntax (the default).
	Extended = runtime.Extended
	// Basic is POSIX basic regular expression syntax.
	Basic = runtime.Basic
)

// Config holds the options of a run. A nil *Config means all defaults.
type Config struct {
	// Delimiters lists the field separator characters; each byte of the
	// string separates fields on its own. Empty disables splitting and
	// field 0 is the whole line.
	Delimiters string

	// Pattern filters lines before splitting. Lines that do not match are
	// skipped without a callback and are not counted. Empty accepts all.
	Pattern string

	// Syntax is the dialect of Pattern (default: Extended).
	Syntax Syntax

	// Keywords further restricts accepted lines to those containing at least
	// one of these literal words. Empty words are ignored.
	Keywords []string

	// IgnoreCase makes Pattern and Keywords match case-insensitively.
	IgnoreCase bool

	// Invert accepts the lines the filter would reject. It has no effect
	// when neither Pattern nor Keywords is set.
	Invert bool

	// KeepLine exposes the unsplit line as field 0, followed by the split
	// fields. Field 0 counts toward MaxFields.
	KeepLine bool

	// LineSize bounds a line, newline excluded: a line of LineSize bytes or
	// more fails the run. Zero means DefaultLineSize, or ExtendedLineSize
	// with KeepLine.
	LineSize int

	// MaxFields is the field table capacity (0 means DefaultMaxFields).
	MaxFields int
}

// applyDefaults fills in default values for unset Config fields.
func (c *Config) applyDefaults() {
	if c.LineSize == 0 {
		c.LineSize = DefaultLineSize
		if c.KeepLine {
			c.LineSize = ExtendedLineSize
		}
	}
	if c.MaxFields == 0 {
		c.MaxFields = DefaultMaxFields
	}
}

// validate checks capacities after defaults are applied.
func (c *Config) validate() error {
	if c.MaxFields < 1 {
		return &Error{Kind: FieldOutOfRange}
	}
	if c.LineSize < 1 {
		return &Error{Kind: LineOutOfRange}
	}
	return nil
}

// filterConfig returns the pattern settings handed to the regex compiler.
func (c *Config) filterConfig() runtime.RegexConfig {
	return runtime.RegexConfig{Syntax: c.Syntax, IgnoreCase: c.IgnoreCase}
}
