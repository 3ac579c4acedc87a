// lawk - split lines into fields and print or store them
//
// Uses manual argument parsing so flags may be glued to their value, as in
// awk's -F: style.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/kolkov/lawk"
	"github.com/kolkov/lawk/internal/profile"
	"github.com/kolkov/lawk/internal/sink"
)

// version is set at build time via -ldflags.
var version = "dev"

const (
	shortUsage = "usage: lawk [-F delims] [-e pattern] [-k word]... [-p fields] [-c profile] [file]"
	longUsage  = `Splitting:
  -F delims         field delimiter characters (default: no splitting)
  -0                keep the whole line as field 0
  -L size           line buffer size in bytes
  -N count          field table capacity

Filtering:
  -e pattern        only process lines matching pattern
  -G                pattern uses POSIX basic syntax (default: extended)
  -k word           only process lines containing word (multiple allowed)
  -i                ignore case in pattern and words
  -v                process the lines that do not match instead

Output:
  -p 1,3            field slots to print (default: all)
  -o ofs            output field separator (default " ")
  -sql dsn          insert records into PostgreSQL instead of printing
  -table name       table for -sql (default "records")
  -count            print the number of processed lines to stderr

Other:
  -c profile        load options from a YAML profile; flags override it
  -h, --help        show this help message
  -version          show lawk version and exit
`
)

// options are the command-line settings layered over a profile.
type options struct {
	set     map[string]bool // flags given on the command line
	flags   profile.Profile
	profile string
}

//nolint:gocyclo,funlen // CLI argument parsing is inherently complex
func main() {
	opts := options{set: make(map[string]bool)}
	f := &opts.flags

	var i int
	for i = 1; i < len(os.Args); i++ {
		arg := os.Args[i]
		if arg == "--" {
			i++
			break
		}
		if arg == "-" || !strings.HasPrefix(arg, "-") {
			break
		}

		// value returns the argument of a flag given as "-x value".
		value := func() string {
			if i+1 >= len(os.Args) {
				errorExitf("flag needs an argument: %s", arg)
			}
			i++
			return os.Args[i]
		}

		switch arg {
		case "-F":
			f.Delimiters = value()
			opts.set["F"] = true
		case "-e":
			f.Pattern = value()
			opts.set["e"] = true
		case "-k":
			f.Keywords = append(f.Keywords, value())
			opts.set["k"] = true
		case "-p":
			f.Print = parseFieldList(value())
			opts.set["p"] = true
		case "-o":
			f.OFS = value()
			opts.set["o"] = true
		case "-L":
			f.LineSize = parsePositive("-L", value())
			opts.set["L"] = true
		case "-N":
			f.MaxFields = parsePositive("-N", value())
			opts.set["N"] = true
		case "-c":
			opts.profile = value()
		case "-sql":
			f.Sink.Kind = profile.SinkPostgres
			f.Sink.DSN = value()
			opts.set["sql"] = true
		case "-table":
			f.Sink.Table = value()
			opts.set["table"] = true
		case "-G":
			f.Syntax = "bre"
			opts.set["G"] = true
		case "-i":
			f.IgnoreCase = true
			opts.set["i"] = true
		case "-v":
			f.Invert = true
			opts.set["v"] = true
		case "-0":
			f.KeepLine = true
			opts.set["0"] = true
		case "-count":
			f.Count = true
			opts.set["count"] = true
		case "-h", "--help":
			fmt.Printf("lawk %s - line and field processor\n\n%s\n\n%s", version, shortUsage, longUsage)
			os.Exit(0)
		case "-version", "--version":
			fmt.Printf("lawk version %s\n", version)
			fmt.Printf("  library: %s\n", lawk.Version)
			fmt.Println("  regex:   coregex")
			os.Exit(0)
		default:
			// Handle flags with no space: -F:, -ebash, -p1,3, -L1024, etc.
			switch {
			case strings.HasPrefix(arg, "-F"):
				f.Delimiters = arg[2:]
				opts.set["F"] = true
			case strings.HasPrefix(arg, "-e"):
				f.Pattern = arg[2:]
				opts.set["e"] = true
			case strings.HasPrefix(arg, "-k"):
				f.Keywords = append(f.Keywords, arg[2:])
				opts.set["k"] = true
			case strings.HasPrefix(arg, "-p"):
				f.Print = parseFieldList(arg[2:])
				opts.set["p"] = true
			case strings.HasPrefix(arg, "-o"):
				f.OFS = arg[2:]
				opts.set["o"] = true
			case strings.HasPrefix(arg, "-L"):
				f.LineSize = parsePositive("-L", arg[2:])
				opts.set["L"] = true
			case strings.HasPrefix(arg, "-N"):
				f.MaxFields = parsePositive("-N", arg[2:])
				opts.set["N"] = true
			case strings.HasPrefix(arg, "-c"):
				opts.profile = arg[2:]
			default:
				errorExitf("flag provided but not defined: %s", arg)
			}
		}
	}

	args := os.Args[i:]
	if len(args) > 1 {
		errorExitf("only one input file is supported\n%s", shortUsage)
	}

	prof, err := opts.resolve()
	if err != nil {
		errorExit(err)
	}

	stdout := bufio.NewWriter(os.Stdout)
	defer stdout.Flush()

	out, err := openSink(prof, stdout)
	if err != nil {
		errorExit(err)
	}

	h := &printer{out: out, slots: prof.Print, count: prof.Count, stderr: os.Stderr}

	var name string
	if len(args) == 0 || args[0] == "-" {
		name = "<stdin>"
		err = lawk.RunReader(os.Stdin, h, prof.Config())
	} else {
		name = args[0]
		err = lawk.Run(name, h, prof.Config())
	}

	closeErr := out.Close()
	if err != nil {
		stdout.Flush()
		errorExitf("%s", describe(err, name))
	}
	if h.err != nil {
		stdout.Flush()
		errorExit(h.err)
	}
	if closeErr != nil {
		stdout.Flush()
		errorExit(closeErr)
	}
}

// resolve loads the profile, if any, and applies command-line overrides.
func (o *options) resolve() (*profile.Profile, error) {
	base := &profile.Profile{}
	if o.profile != "" {
		p, err := profile.Load(o.profile)
		if err != nil {
			return nil, err
		}
		base = p
	}

	f := &o.flags
	if o.set["F"] {
		base.Delimiters = f.Delimiters
	}
	if o.set["e"] {
		base.Pattern = f.Pattern
	}
	if o.set["k"] {
		base.Keywords = f.Keywords
	}
	if o.set["p"] {
		base.Print = f.Print
	}
	if o.set["o"] {
		base.OFS = f.OFS
	}
	if o.set["L"] {
		base.LineSize = f.LineSize
	}
	if o.set["N"] {
		base.MaxFields = f.MaxFields
	}
	if o.set["G"] {
		base.Syntax = f.Syntax
	}
	if o.set["i"] {
		base.IgnoreCase = true
	}
	if o.set["v"] {
		base.Invert = true
	}
	if o.set["0"] {
		base.KeepLine = true
	}
	if o.set["count"] {
		base.Count = true
	}
	if o.set["sql"] {
		base.Sink.Kind = profile.SinkPostgres
		base.Sink.DSN = f.Sink.DSN
		if base.Sink.Table == "" {
			base.Sink.Table = "records"
		}
	}
	if o.set["table"] {
		base.Sink.Table = f.Sink.Table
	}

	if base.Syntax == "" {
		base.Syntax = "ere"
	}
	if base.OFS == "" {
		base.OFS = " "
	}
	if base.Sink.Kind == "" {
		base.Sink.Kind = profile.SinkText
	}
	if err := base.Validate(); err != nil {
		return nil, err
	}
	return base, nil
}

// openSink builds the destination named by the profile.
func openSink(p *profile.Profile, stdout io.Writer) (sink.Sink, error) {
	if p.Sink.Kind == profile.SinkPostgres {
		return sink.OpenPostgres(p.Sink.DSN, p.Sink.Table)
	}
	return sink.NewText(stdout, p.OFS), nil
}

// printer forwards selected fields of every record to a sink.
// A sink failure stops the run and is kept in err.
type printer struct {
	out    sink.Sink
	slots  []int
	count  bool
	stderr io.Writer
	err    error
}

func (p *printer) Begin() lawk.Signal {
	return lawk.Continue
}

func (p *printer) Action(row int, f lawk.Fields) lawk.Signal {
	var fields []string
	if len(p.slots) == 0 {
		fields = f.Strings()
	} else {
		fields = make([]string, len(p.slots))
		for i, slot := range p.slots {
			fields[i] = f.String(slot)
		}
	}
	if err := p.out.Write(row, fields); err != nil {
		p.err = err
		return lawk.Stop
	}
	return lawk.Continue
}

func (p *printer) End(row int, f lawk.Fields) {
	if p.count {
		fmt.Fprintf(p.stderr, "total num: %d\n", row)
	}
}

// parseFieldList parses "1,3,5" into field slots.
func parseFieldList(s string) []int {
	var slots []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			errorExitf("invalid field number: %s", part)
		}
		slots = append(slots, n)
	}
	return slots
}

// parsePositive parses the numeric argument of flag.
func parsePositive(flag, s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		errorExitf("invalid value for %s: %s", flag, s)
	}
	return n
}

// describe formats a run error, naming the input when err does not.
func describe(err error, name string) string {
	var e *lawk.Error
	if errors.As(err, &e) && e.Path == "" && e.Line > 0 {
		named := *e
		named.Path = name
		return named.Error()
	}
	return err.Error()
}

// errorExitf prints formatted error message and exits with code 1
func errorExitf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "lawk: "+format+"\n", args...)
	os.Exit(1)
}

// errorExit prints error and exits with code 1
func errorExit(err error) {
	fmt.Fprintf(os.Stderr, "lawk: %v\n", err)
	os.Exit(1)
}
