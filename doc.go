// Package lawk provides an awk-style record loop for Go programs.
//
// lawk reads a text file line by line, optionally drops lines that do not
// match a regular expression or a keyword set, splits the remaining lines
// into fields on a set of single-character delimiters, and calls back into
// the caller:
//   - Begin once before the first line
//   - Action for every accepted line
//   - End once when the input is exhausted or a callback returned Stop
//
// # Quick Start
//
// Print the login name of every account:
//
//	err := lawk.Run("/etc/passwd", lawk.Funcs[struct{}]{
//	    OnAction: func(row int, f lawk.Fields, _ struct{}) lawk.Signal {
//	        fmt.Println(row, f.String(0))
//	        return lawk.Continue
//	    },
//	}, &lawk.Config{Delimiters: ":"})
//
// # Fields
//
// [Fields] is a borrowed view into the run's fixed buffers: it is valid only
// for the duration of the callback that received it. Slots past the populated
// count read as empty strings. With [Config].KeepLine the unsplit line is
// field 0 and the split fields start at 1.
//
// # Limits
//
// Lines are bounded by [Config].LineSize and the field table by
// [Config].MaxFields. Exceeding either ends the run with an [*Error] of kind
// [LineOutOfRange] or [FieldOutOfRange]; callbacks already made stand, and
// End is not called.
//
// # Error Handling
//
// Every failure is an [*Error] with an [ErrorKind]. [ErrorMessage] maps an
// error to the fixed message of its kind; the library never writes to any
// output stream.
//
// # Thread Safety
//
// Each call to [Run] or [RunReader] allocates its own buffers, so concurrent
// runs are independent. A single run calls its handler from one goroutine.
package lawk
