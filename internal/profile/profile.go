// Package profile loads lawk CLI profiles from YAML files.
package profile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kolkov/lawk"
)

// Sink kinds.
const (
	SinkText     = "text"
	SinkPostgres = "postgres"
)

// Profile is the on-disk form of a CLI invocation.
type Profile struct {
	Delimiters string   `yaml:"delimiters"`
	Pattern    string   `yaml:"pattern"`
	Syntax     string   `yaml:"syntax"` // "ere" (default) or "bre"
	IgnoreCase bool     `yaml:"ignore_case"`
	Invert     bool     `yaml:"invert"`
	Keywords   []string `yaml:"keywords"`
	KeepLine   bool     `yaml:"keep_line"`
	LineSize   int      `yaml:"line_size"`
	MaxFields  int      `yaml:"max_fields"`

	// Print lists the field slots to output; empty prints all of them.
	Print []int  `yaml:"print"`
	OFS   string `yaml:"ofs"`
	Count bool   `yaml:"count"`

	Sink Sink `yaml:"sink"`
}

// Sink selects where accepted records go.
type Sink struct {
	Kind  string `yaml:"kind"`
	DSN   string `yaml:"dsn"`
	Table string `yaml:"table"`
}

// Load reads and validates the profile at path.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse decodes a YAML profile. Unknown keys are rejected.
func Parse(data []byte) (*Profile, error) {
	p := &Profile{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	p.applyDefaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// applyDefaults fills in default values for unset Profile fields.
func (p *Profile) applyDefaults() {
	if p.Syntax == "" {
		p.Syntax = "ere"
	}
	if p.OFS == "" {
		p.OFS = " "
	}
	if p.Sink.Kind == "" {
		p.Sink.Kind = SinkText
	}
}

// Validate checks values the decoder cannot.
func (p *Profile) Validate() error {
	if _, err := ParseSyntax(p.Syntax); err != nil {
		return err
	}
	if p.LineSize < 0 {
		return fmt.Errorf("line_size must not be negative: %d", p.LineSize)
	}
	if p.MaxFields < 0 {
		return fmt.Errorf("max_fields must not be negative: %d", p.MaxFields)
	}
	for _, n := range p.Print {
		if n < 0 {
			return fmt.Errorf("print: negative field %d", n)
		}
	}
	switch p.Sink.Kind {
	case SinkText:
	case SinkPostgres:
		if p.Sink.DSN == "" {
			return fmt.Errorf("sink: postgres needs a dsn")
		}
		if p.Sink.Table == "" {
			return fmt.Errorf("sink: postgres needs a table")
		}
	default:
		return fmt.Errorf("sink: unknown kind %q", p.Sink.Kind)
	}
	return nil
}

// Config converts the profile into a run configuration.
func (p *Profile) Config() *lawk.Config {
	syntax, _ := ParseSyntax(p.Syntax)
	return &lawk.Config{
		Delimiters: p.Delimiters,
		Pattern:    p.Pattern,
		Syntax:     syntax,
		Keywords:   append([]string(nil), p.Keywords...),
		IgnoreCase: p.IgnoreCase,
		Invert:     p.Invert,
		KeepLine:   p.KeepLine,
		LineSize:   p.LineSize,
		MaxFields:  p.MaxFields,
	}
}

// ParseSyntax maps "ere" / "bre" (any case) to a pattern syntax.
func ParseSyntax(s string) (lawk.Syntax, error) {
	switch strings.ToLower(s) {
	case "", "ere":
		return lawk.Extended, nil
	case "bre":
		return lawk.Basic, nil
	}
	return lawk.Extended, fmt.Errorf("syntax: want ere or bre, got %q", s)
}
