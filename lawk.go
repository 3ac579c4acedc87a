package lawk

import (
	"bytes"
	"errors"
	"io"

	"github.com/kolkov/lawk/internal/record"
	"github.com/kolkov/lawk/internal/runtime"
	"github.com/kolkov/lawk/internal/source"
)

// Version is the lawk version string.
const Version = "0.1.0"

// Run reads the file at path line by line and dispatches each accepted line
// to h. h may be nil, in which case lines are only counted and validated.
//
// The configuration is checked and the pattern compiled before the file is
// opened, and the file is opened before Begin, so a failure of any of these
// steps invokes no callback. config is not modified.
//
// Example:
//
//	var names []string
//	err := lawk.Run("/etc/passwd", lawk.Funcs[*[]string]{
//	    Context: &names,
//	    OnAction: func(row int, f lawk.Fields, names *[]string) lawk.Signal {
//	        *names = append(*names, f.String(0))
//	        return lawk.Continue
//	    },
//	}, &lawk.Config{Delimiters: ":"})
func Run(path string, h Handler, config *Config) error {
	r, err := newRunner(config)
	if err != nil {
		return err
	}

	src, err := source.Open(path, r.rec.Size())
	if err != nil {
		return &Error{Kind: OpenFailed, Path: path, Err: err}
	}
	defer src.Close()

	return r.run(src, path, h)
}

// RunReader is like Run but reads from an already open stream.
// The stream is not closed.
func RunReader(input io.Reader, h Handler, config *Config) error {
	r, err := newRunner(config)
	if err != nil {
		return err
	}
	return r.run(source.New(input, r.rec.Size()), "", h)
}

// runner holds the per-call state of one run: its own buffers, delimiter
// set and filter. Nothing is shared between runs.
type runner struct {
	rec    *record.Buffer
	delims *runtime.ByteSet
	filter *filter
}

func newRunner(config *Config) (*runner, error) {
	cfg := Config{}
	if config != nil {
		cfg = *config
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	f, err := newFilter(&cfg)
	if err != nil {
		return nil, err
	}

	rec, err := record.New(cfg.LineSize, cfg.MaxFields, cfg.KeepLine)
	if err != nil {
		return nil, fromRecordError(err, "", 0)
	}

	return &runner{
		rec:    rec,
		delims: runtime.NewByteSet(cfg.Delimiters),
		filter: f,
	}, nil
}

// run drives the callbacks over src. name labels errors.
func (r *runner) run(src *source.Source, name string, h Handler) error {
	if h == nil {
		h = Funcs[struct{}]{}
	}

	if h.Begin() == Stop {
		h.End(0, r.rec.Fields())
		return nil
	}

	row := 0
	for {
		line, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			if errors.Is(err, source.ErrLineTooLong) {
				return &Error{Kind: LineOutOfRange, Path: name, Line: src.Line()}
			}
			return &Error{Kind: ReadFailed, Path: name, Line: src.Line() + 1, Err: err}
		}

		line = bytes.TrimSuffix(line, []byte{'\n'})
		if !r.rec.Fits(len(line)) {
			return &Error{Kind: LineOutOfRange, Path: name, Line: src.Line()}
		}
		if !r.filter.accept(line) {
			continue
		}

		if err := r.rec.Load(line); err != nil {
			return fromRecordError(err, name, src.Line())
		}
		if err := r.rec.Split(r.delims); err != nil {
			return fromRecordError(err, name, src.Line())
		}

		sig := h.Action(row, r.rec.Fields())
		row++
		if sig == Stop {
			break
		}
	}

	h.End(row, r.rec.Fields())
	return nil
}

// fromRecordError converts a record package error to the public taxonomy.
func fromRecordError(err error, name string, line int) error {
	kind := Unknown
	switch {
	case errors.Is(err, record.ErrFieldOutOfRange):
		kind = FieldOutOfRange
	case errors.Is(err, record.ErrLineOutOfRange):
		kind = LineOutOfRange
	}
	return &Error{Kind: kind, Path: name, Line: line}
}
